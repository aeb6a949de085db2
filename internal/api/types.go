package api

import (
	"time"

	"github.com/blockedby/jobboard/internal/models"
	"github.com/blockedby/jobboard/internal/search"
)

// ============================================================================
// Common Types
// ============================================================================

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status  string            `json:"status" example:"ok" description:"ok, or degraded when a dependency check fails"`
	Version string            `json:"version" example:"dev" description:"Application version"`
	Checks  map[string]string `json:"checks,omitempty" description:"Per dependency status"`
}

// StatusResponse is returned by mutations without a resource body.
type StatusResponse struct {
	Status string `json:"status" example:"updated"`
}

// ============================================================================
// Jobs Types
// ============================================================================

// JobResponse represents a job card in API responses.
type JobResponse struct {
	models.Job
	DaysAgo     int    `json:"days_ago" description:"Whole days since the job was posted"`
	PostedLabel string `json:"posted_label" example:"Today" description:"Human readable posting age"`
}

// JobsListResponse is the result of a job search.
type JobsListResponse struct {
	Jobs  []JobResponse   `json:"jobs" description:"Matching jobs in listing order"`
	Count int             `json:"count" description:"Number of matching jobs"`
	Total int             `json:"total" description:"Number of jobs before filtering"`
	Query search.Criteria `json:"query" description:"Criteria the list was filtered with"`
}

// JobCreateRequest is the recruiter post-a-job form.
type JobCreateRequest struct {
	Title        string   `json:"title" validate:"required" example:"Senior Frontend Developer"`
	Description  string   `json:"description" validate:"required"`
	Requirements []string `json:"requirements"`
	CompanyID    string   `json:"company_id" validate:"required" description:"ID of an existing company"`
	Location     string   `json:"location" validate:"required" example:"Bangalore"`
	JobType      string   `json:"job_type" example:"Full-time" description:"Full-time, Part-time, Contract or Internship"`
	Category     string   `json:"category,omitempty" example:"Frontend Developer"`
	Salary       string   `json:"salary" example:"12-18 LPA"`
	Experience   string   `json:"experience,omitempty" example:"5+ years"`
	Positions    int      `json:"positions" example:"2"`

	// RequirementsText is the comma separated form field, used when Requirements is empty.
	RequirementsText string `json:"requirements_text,omitempty" example:"React, TypeScript"`
}

// JobFromModel converts a job for the API, computing its posting age at now.
func JobFromModel(j models.Job, now time.Time) JobResponse {
	if j.Requirements == nil {
		j.Requirements = []string{}
	}
	return JobResponse{
		Job:         j,
		DaysAgo:     j.DaysAgo(now),
		PostedLabel: j.PostedLabel(now),
	}
}

// JobsFromModels converts a list of jobs preserving order.
func JobsFromModels(jobs []models.Job, now time.Time) []JobResponse {
	out := make([]JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, JobFromModel(j, now))
	}
	return out
}

// ============================================================================
// Facets Types
// ============================================================================

// FacetsResponse lists the filter card groups and carousel categories.
type FacetsResponse struct {
	Groups     []search.FilterGroup `json:"groups"`
	Categories []string             `json:"categories"`
}

// ============================================================================
// Companies Types
// ============================================================================

// CompanyRequest is the body for creating or updating a company.
type CompanyRequest struct {
	Name        string `json:"name" validate:"required" example:"TechCorp"`
	Description string `json:"description,omitempty"`
	Website     string `json:"website,omitempty" example:"https://techcorp.example"`
	Location    string `json:"location,omitempty" example:"Bangalore"`
	LogoURL     string `json:"logo_url,omitempty"`
}

// CompaniesListResponse contains companies matching the name query.
type CompaniesListResponse struct {
	Companies []models.Company `json:"companies"`
	Total     int              `json:"total"`
}

func (r CompanyRequest) toModel(id string) *models.Company {
	return &models.Company{
		ID:          id,
		Name:        r.Name,
		Description: r.Description,
		Website:     r.Website,
		Location:    r.Location,
		LogoURL:     r.LogoURL,
	}
}

// ============================================================================
// Contact Types
// ============================================================================

// ContactRequest is the public contact form.
type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required" example:"jane@example.com"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message" validate:"required"`
}

// ContactMessagesResponse lists received contact messages, newest first.
type ContactMessagesResponse struct {
	Messages []models.ContactMessage `json:"messages"`
	Total    int                     `json:"total"`
}

// ContactStatusRequest changes the handling state of a message.
type ContactStatusRequest struct {
	Status string `json:"status" example:"read" description:"new, read or replied"`
}
