package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/blockedby/jobboard/internal/models"
)

// ContactsRepository stores contact form messages through GORM.
type ContactsRepository struct {
	db *gorm.DB
}

// NewContactsRepository creates a new contacts repository
func NewContactsRepository(db *gorm.DB) *ContactsRepository {
	return &ContactsRepository{db: db}
}

// Create stores a new message with status "new".
func (r *ContactsRepository) Create(ctx context.Context, m *models.ContactMessage) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.Status = models.ContactStatusNew

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("create contact message: %w", err)
	}
	return nil
}

// List returns every message, newest first.
func (r *ContactsRepository) List(ctx context.Context) ([]models.ContactMessage, error) {
	messages := []models.ContactMessage{}
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	return messages, nil
}

// UpdateStatus sets the handling status of a message.
func (r *ContactsRepository) UpdateStatus(ctx context.Context, id string, status models.ContactStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("update contact status: invalid status %q", status)
	}

	res := r.db.WithContext(ctx).
		Model(&models.ContactMessage{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("update contact status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
