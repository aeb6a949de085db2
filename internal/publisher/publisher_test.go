package publisher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/blockedby/jobboard/internal/models"
)

// MockNATSClient mocks the nats client operations we need
type MockNATSClient struct {
	PublishedSubject string
	PublishedData    any
	PublishError     error
}

func (m *MockNATSClient) Publish(_ context.Context, subject string, data any) error {
	m.PublishedSubject = subject
	m.PublishedData = data
	return m.PublishError
}

func TestNATSPublisher_PublishJobPosted(t *testing.T) {
	mock := &MockNATSClient{}
	pub := NewNATSPublisher(mock)

	posted := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	job := &models.Job{
		ID:       "5f0c6a1e-8d8b-4a52-9d0b-8b7a1e0c1f11",
		Title:    "Senior Frontend Developer",
		Company:  &models.Company{Name: "TechCorp"},
		Location: "Bangalore",
		JobType:  models.JobTypeFullTime,
		PostedAt: posted,
	}

	if err := pub.PublishJobPosted(context.Background(), job); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if mock.PublishedSubject != SubjectJobPosted {
		t.Errorf("subject = %s, want %s", mock.PublishedSubject, SubjectJobPosted)
	}

	evt, ok := mock.PublishedData.(JobPostedEvent)
	if !ok {
		t.Fatalf("payload type = %T, want JobPostedEvent", mock.PublishedData)
	}
	if evt.Company != "TechCorp" || evt.JobType != "Full-time" || !evt.PostedAt.Equal(posted) {
		t.Errorf("unexpected event: %+v", evt)
	}
}

func TestNATSPublisher_PublishError(t *testing.T) {
	mock := &MockNATSClient{PublishError: errors.New("no responders")}
	pub := NewNATSPublisher(mock)

	err := pub.PublishJobPosted(context.Background(), &models.Job{ID: "x"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, mock.PublishError) {
		t.Errorf("error %v should wrap publish error", err)
	}
}
