package api

import (
	"context"

	"github.com/blockedby/jobboard/internal/models"
)

// JobProvider supplies the full ordered job list the search runs over.
type JobProvider interface {
	Jobs(ctx context.Context) ([]models.Job, error)
	Invalidate(ctx context.Context) error
}

// JobsRepository defines the interface for job data access.
type JobsRepository interface {
	GetByID(ctx context.Context, id string) (*models.Job, error)
	Create(ctx context.Context, j *models.Job) error
}

// CompaniesRepository defines the interface for company data access.
type CompaniesRepository interface {
	List(ctx context.Context, nameQuery string) ([]models.Company, error)
	GetByID(ctx context.Context, id string) (*models.Company, error)
	Create(ctx context.Context, c *models.Company) error
	Update(ctx context.Context, c *models.Company) error
}

// ContactsRepository defines the interface for contact message storage.
type ContactsRepository interface {
	Create(ctx context.Context, m *models.ContactMessage) error
	List(ctx context.Context) ([]models.ContactMessage, error)
	UpdateStatus(ctx context.Context, id string, status models.ContactStatus) error
}

// EventPublisher defines the interface for publishing domain events.
type EventPublisher interface {
	PublishJobPosted(ctx context.Context, job *models.Job) error
}

// HubBroadcaster defines the interface for WebSocket broadcasting.
type HubBroadcaster interface {
	Broadcast(message []byte)
}

// HealthCheck reports whether one dependency is usable.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}
