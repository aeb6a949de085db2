// Package models defines shared data types for the application.
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// JobType is the employment type of a posting.
type JobType string

// JobType constants define the labels offered by the post form and the type filter.
const (
	JobTypeFullTime   JobType = "Full-time"
	JobTypePartTime   JobType = "Part-time"
	JobTypeContract   JobType = "Contract"
	JobTypeInternship JobType = "Internship"
)

// JobTypes lists every known job type in display order.
var JobTypes = []JobType{JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship}

// job validation errors
var (
	ErrInvalidJobType   = errors.New("invalid job type")
	ErrTitleRequired    = errors.New("title is required")
	ErrDescRequired     = errors.New("description is required")
	ErrLocationRequired = errors.New("location is required")
	ErrCompanyRequired  = errors.New("company is required")
	ErrInvalidPositions = errors.New("positions must be non-negative")
)

// ParseJobType matches s against the known job types, ignoring case.
func ParseJobType(s string) (JobType, error) {
	s = strings.TrimSpace(s)
	for _, t := range JobTypes {
		if strings.EqualFold(string(t), s) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidJobType, s)
}

// IsValid reports whether t is one of the known job types.
func (t JobType) IsValid() bool {
	_, err := ParseJobType(string(t))
	return err == nil
}

// Job is a single job listing.
//
// Optional members are explicit: a nil Company or an empty Location simply
// never matches a non-empty filter.
type Job struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	Company      *Company `json:"company,omitempty"`

	Location string  `json:"location"`
	JobType  JobType `json:"job_type"`
	Category string  `json:"category,omitempty"`

	// display strings, no arithmetic is done on them
	Salary     string `json:"salary"`
	Experience string `json:"experience,omitempty"`

	Positions int       `json:"positions"`
	PostedAt  time.Time `json:"posted_at"`
}

// CompanyName returns the company name or an empty string when the company is unknown.
func (j *Job) CompanyName() string {
	if j.Company == nil {
		return ""
	}
	return j.Company.Name
}

// DaysAgo returns the number of whole days between the posting time and now.
func (j *Job) DaysAgo(now time.Time) int {
	if j.PostedAt.IsZero() || now.Before(j.PostedAt) {
		return 0
	}
	return int(now.Sub(j.PostedAt) / (24 * time.Hour))
}

// PostedLabel renders the posting age the way job cards show it.
func (j *Job) PostedLabel(now time.Time) string {
	days := j.DaysAgo(now)
	if days == 0 {
		return "Today"
	}
	return fmt.Sprintf("%d days ago", days)
}

// Validate checks a posting submitted by a recruiter.
func (j *Job) Validate() error {
	if strings.TrimSpace(j.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(j.Description) == "" {
		return ErrDescRequired
	}
	if strings.TrimSpace(j.Location) == "" {
		return ErrLocationRequired
	}
	if j.Company == nil || j.Company.ID == "" {
		return ErrCompanyRequired
	}
	t, err := ParseJobType(string(j.JobType))
	if err != nil {
		return err
	}
	j.JobType = t
	if j.Positions < 0 {
		return ErrInvalidPositions
	}
	return nil
}

// SplitRequirements turns the comma separated requirements field of the post form into a list.
func SplitRequirements(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
