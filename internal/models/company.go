package models

import (
	"errors"
	"strings"
	"time"
)

// ErrCompanyNameRequired is returned when a company is registered without a name.
var ErrCompanyNameRequired = errors.New("company name is required")

// Company is an employer that recruiters post jobs for.
type Company struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Website     string    `json:"website,omitempty"`
	Location    string    `json:"location,omitempty"`
	LogoURL     string    `json:"logo_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate checks the required company fields.
func (c *Company) Validate() error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return ErrCompanyNameRequired
	}
	return nil
}
