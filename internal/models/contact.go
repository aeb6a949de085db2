package models

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

// ContactStatus is the handling state of a contact message.
type ContactStatus string

// ContactStatus constants define the states an administrator moves a message through.
const (
	ContactStatusNew     ContactStatus = "new"
	ContactStatusRead    ContactStatus = "read"
	ContactStatusReplied ContactStatus = "replied"
)

// IsValid reports whether s is a known contact status.
func (s ContactStatus) IsValid() bool {
	switch s {
	case ContactStatusNew, ContactStatusRead, ContactStatusReplied:
		return true
	}
	return false
}

// contact form errors
var (
	ErrContactNameRequired    = errors.New("name is required")
	ErrContactMessageRequired = errors.New("message is required")
	ErrInvalidEmail           = errors.New("invalid email address")
)

// ContactMessage is a message sent through the public contact form.
type ContactMessage struct {
	ID        string        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string        `json:"name" gorm:"not null"`
	Email     string        `json:"email" gorm:"not null"`
	Subject   string        `json:"subject"`
	Message   string        `json:"message" gorm:"not null"`
	Status    ContactStatus `json:"status" gorm:"type:varchar(16);not null;default:new;index"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// TableName pins the table created by the migrations.
func (ContactMessage) TableName() string {
	return "contact_messages"
}

// Validate checks the contact form fields.
func (m *ContactMessage) Validate() error {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	if m.Name == "" {
		return ErrContactNameRequired
	}
	if _, err := mail.ParseAddress(m.Email); err != nil {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(m.Message) == "" {
		return ErrContactMessageRequired
	}
	return nil
}
