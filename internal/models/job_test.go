package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJobType(t *testing.T) {
	tests := []struct {
		in      string
		want    JobType
		wantErr bool
	}{
		{in: "Full-time", want: JobTypeFullTime},
		{in: "full-time", want: JobTypeFullTime},
		{in: " PART-TIME ", want: JobTypePartTime},
		{in: "contract", want: JobTypeContract},
		{in: "Internship", want: JobTypeInternship},
		{in: "freelance", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseJobType(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidJobType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJob_DaysAgo(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	job := Job{PostedAt: now.Add(-3*24*time.Hour - time.Hour)}
	assert.Equal(t, 3, job.DaysAgo(now))
	assert.Equal(t, "3 days ago", job.PostedLabel(now))

	today := Job{PostedAt: now.Add(-5 * time.Hour)}
	assert.Equal(t, 0, today.DaysAgo(now))
	assert.Equal(t, "Today", today.PostedLabel(now))

	// clock skew never yields negative ages
	future := Job{PostedAt: now.Add(time.Hour)}
	assert.Equal(t, 0, future.DaysAgo(now))
}

func TestJob_CompanyName(t *testing.T) {
	j := Job{}
	assert.Equal(t, "", j.CompanyName())

	j.Company = &Company{Name: "TechCorp Inc."}
	assert.Equal(t, "TechCorp Inc.", j.CompanyName())
}

func TestJob_Validate(t *testing.T) {
	valid := func() Job {
		return Job{
			Title:       "Backend Engineer",
			Description: "Scale our infrastructure",
			Location:    "New York, NY",
			JobType:     "full-time",
			Company:     &Company{ID: "c-1", Name: "DataSystems"},
		}
	}

	j := valid()
	require.NoError(t, j.Validate())
	assert.Equal(t, JobTypeFullTime, j.JobType, "job type should be normalized")

	cases := map[string]struct {
		mutate func(*Job)
		want   error
	}{
		"missing title":     {func(j *Job) { j.Title = "  " }, ErrTitleRequired},
		"missing desc":      {func(j *Job) { j.Description = "" }, ErrDescRequired},
		"missing location":  {func(j *Job) { j.Location = "" }, ErrLocationRequired},
		"missing company":   {func(j *Job) { j.Company = nil }, ErrCompanyRequired},
		"bad job type":      {func(j *Job) { j.JobType = "gig" }, ErrInvalidJobType},
		"negative position": {func(j *Job) { j.Positions = -1 }, ErrInvalidPositions},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			j := valid()
			tc.mutate(&j)
			err := j.Validate()
			assert.True(t, errors.Is(err, tc.want), "got %v, want %v", err, tc.want)
		})
	}
}

func TestSplitRequirements(t *testing.T) {
	got := SplitRequirements("5+ years of React, Strong TypeScript skills, ,")
	assert.Equal(t, []string{"5+ years of React", "Strong TypeScript skills"}, got)
	assert.Empty(t, SplitRequirements(""))
}

func TestContactMessage_Validate(t *testing.T) {
	m := ContactMessage{Name: " Ann ", Email: "ann@example.com", Message: "hello"}
	require.NoError(t, m.Validate())
	assert.Equal(t, "Ann", m.Name)

	bad := ContactMessage{Name: "Ann", Email: "not-an-email", Message: "hello"}
	assert.ErrorIs(t, bad.Validate(), ErrInvalidEmail)

	empty := ContactMessage{Name: "Ann", Email: "ann@example.com"}
	assert.ErrorIs(t, empty.Validate(), ErrContactMessageRequired)
}

func TestContactStatus_IsValid(t *testing.T) {
	assert.True(t, ContactStatusNew.IsValid())
	assert.True(t, ContactStatusRead.IsValid())
	assert.True(t, ContactStatusReplied.IsValid())
	assert.False(t, ContactStatus("archived").IsValid())
}
