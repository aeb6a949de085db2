// Package publisher emits job board domain events to NATS.
package publisher

import (
	"context"
	"fmt"
	"time"

	"github.com/blockedby/jobboard/internal/models"
)

// SubjectJobPosted is the subject for newly created job postings.
const SubjectJobPosted = "jobs.posted"

// NATSClient interface to allow mocking
type NATSClient interface {
	Publish(ctx context.Context, subject string, data any) error
}

// JobPostedEvent is published after a job posting is stored.
type JobPostedEvent struct {
	JobID    string    `json:"job_id"`
	Title    string    `json:"title"`
	Company  string    `json:"company"`
	Location string    `json:"location"`
	JobType  string    `json:"job_type"`
	Category string    `json:"category,omitempty"`
	PostedAt time.Time `json:"posted_at"`
}

// NewJobPostedEvent builds the event for a stored job.
func NewJobPostedEvent(job *models.Job) JobPostedEvent {
	return JobPostedEvent{
		JobID:    job.ID,
		Title:    job.Title,
		Company:  job.CompanyName(),
		Location: job.Location,
		JobType:  string(job.JobType),
		Category: job.Category,
		PostedAt: job.PostedAt,
	}
}

// NATSPublisher publishes job events over a NATS client.
type NATSPublisher struct {
	js NATSClient
}

// NewNATSPublisher creates a new publisher
func NewNATSPublisher(client NATSClient) *NATSPublisher {
	return &NATSPublisher{js: client}
}

// PublishJobPosted publishes a job posted event
func (p *NATSPublisher) PublishJobPosted(ctx context.Context, job *models.Job) error {
	if err := p.js.Publish(ctx, SubjectJobPosted, NewJobPostedEvent(job)); err != nil {
		return fmt.Errorf("publish job posted: %w", err)
	}
	return nil
}
