// Package api provides HTTP handlers for the REST API.
package api

import (
	"context"
	"errors"
	"time"

	"github.com/go-fuego/fuego"

	"github.com/blockedby/jobboard/internal/models"
	"github.com/blockedby/jobboard/internal/repository"
	"github.com/blockedby/jobboard/internal/search"
	"github.com/blockedby/jobboard/internal/web"
)

const (
	// latestJobsLimit is the number of cards on the home page.
	latestJobsLimit    = 6
	healthCheckTimeout = 2 * time.Second
)

// ============================================================================
// Health
// ============================================================================

func (s *Server) healthCheck(c fuego.ContextNoBody) (HealthResponse, error) {
	resp := HealthResponse{
		Status:  "ok",
		Version: s.version,
	}

	if len(s.deps.HealthChecks) == 0 {
		return resp, nil
	}

	ctx, cancel := context.WithTimeout(c.Context(), healthCheckTimeout)
	defer cancel()

	resp.Checks = make(map[string]string, len(s.deps.HealthChecks))
	for _, hc := range s.deps.HealthChecks {
		if err := hc.Check(ctx); err != nil {
			s.log.Warn().Err(err).Str("check", hc.Name).Msg("health check failed")
			resp.Checks[hc.Name] = "down"
			resp.Status = "degraded"
			continue
		}
		resp.Checks[hc.Name] = "ok"
	}

	return resp, nil
}

// ============================================================================
// Jobs Handlers
// ============================================================================

func (s *Server) listJobs(c fuego.ContextNoBody) (JobsListResponse, error) {
	category := c.QueryParam("category")
	criteria := criteriaFromQuery(
		c.QueryParam("q"),
		c.QueryParam("selected"),
		category,
		c.QueryParam("location"),
		c.QueryParam("type"),
	)

	jobs, err := s.deps.Jobs.Jobs(c.Context())
	if err != nil {
		return JobsListResponse{}, s.internalError(err, "failed to load jobs")
	}

	matched := search.Filter(jobs, criteria)

	s.log.Debug().
		Str("query", criteria.Combined()).
		Str("location", criteria.Location).
		Str("type", criteria.JobType).
		Bool("known_category", category != "" && s.facets.IsCategory(category)).
		Int("matched", len(matched)).
		Int("total", len(jobs)).
		Msg("job search")

	return JobsListResponse{
		Jobs:  JobsFromModels(matched, s.now()),
		Count: len(matched),
		Total: len(jobs),
		Query: criteria,
	}, nil
}

// criteriaFromQuery maps the search bar, the selected filter value and the
// carousel category onto one criteria. A category replaces the text channel.
func criteriaFromQuery(q, selected, category, location, jobType string) search.Criteria {
	c := search.Criteria{
		Query:    q,
		Selected: selected,
		Location: location,
		JobType:  jobType,
		Category: category,
	}
	return c.Effective()
}

func (s *Server) latestJobs(c fuego.ContextNoBody) (JobsListResponse, error) {
	jobs, err := s.deps.Jobs.Jobs(c.Context())
	if err != nil {
		return JobsListResponse{}, s.internalError(err, "failed to load jobs")
	}

	latest := jobs
	if len(latest) > latestJobsLimit {
		latest = latest[:latestJobsLimit]
	}

	return JobsListResponse{
		Jobs:  JobsFromModels(latest, s.now()),
		Count: len(latest),
		Total: len(jobs),
	}, nil
}

func (s *Server) getJob(c fuego.ContextNoBody) (JobResponse, error) {
	job, err := s.deps.JobsRepo.GetByID(c.Context(), c.PathParam("id"))
	if errors.Is(err, repository.ErrNotFound) {
		return JobResponse{}, fuego.NotFoundError{Detail: "Job not found"}
	}
	if err != nil {
		return JobResponse{}, s.internalError(err, "failed to load job")
	}

	return JobFromModel(*job, s.now()), nil
}

func (s *Server) createJob(c fuego.ContextWithBody[JobCreateRequest]) (JobResponse, error) {
	body, err := c.Body()
	if err != nil {
		return JobResponse{}, fuego.BadRequestError{Detail: err.Error()}
	}

	requirements := body.Requirements
	if len(requirements) == 0 && body.RequirementsText != "" {
		requirements = models.SplitRequirements(body.RequirementsText)
	}

	job := &models.Job{
		Title:        body.Title,
		Description:  body.Description,
		Requirements: requirements,
		Company:      &models.Company{ID: body.CompanyID},
		Location:     body.Location,
		JobType:      models.JobType(body.JobType),
		Category:     body.Category,
		Salary:       body.Salary,
		Experience:   body.Experience,
		Positions:    body.Positions,
	}
	if err := job.Validate(); err != nil {
		return JobResponse{}, fuego.BadRequestError{Detail: err.Error()}
	}

	company, err := s.deps.CompaniesRepo.GetByID(c.Context(), body.CompanyID)
	if errors.Is(err, repository.ErrNotFound) {
		return JobResponse{}, fuego.BadRequestError{Detail: "Unknown company"}
	}
	if err != nil {
		return JobResponse{}, s.internalError(err, "failed to load company")
	}
	job.Company = company

	if err := s.deps.JobsRepo.Create(c.Context(), job); err != nil {
		return JobResponse{}, s.internalError(err, "failed to create job")
	}

	s.log.Info().
		Str("job_id", job.ID).
		Str("company", company.Name).
		Str("title", job.Title).
		Msg("job posted")

	s.announceJob(c.Context(), job)

	return JobFromModel(*job, s.now()), nil
}

// announceJob refreshes the search list and notifies subscribers. Failures
// here never fail the request: the job is already stored.
func (s *Server) announceJob(ctx context.Context, job *models.Job) {
	if err := s.deps.Jobs.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Str("job_id", job.ID).Msg("invalidate jobs cache")
	}

	if s.deps.Hub != nil {
		s.deps.Hub.Broadcast(web.JobPostedEvent(job))
	}

	if s.deps.Publisher != nil {
		if err := s.deps.Publisher.PublishJobPosted(ctx, job); err != nil {
			s.log.Warn().Err(err).Str("job_id", job.ID).Msg("publish job posted")
		}
	}
}

// ============================================================================
// Facets Handlers
// ============================================================================

func (s *Server) getFacets(c fuego.ContextNoBody) (FacetsResponse, error) {
	return FacetsResponse{
		Groups:     s.facets.Groups,
		Categories: s.facets.Categories,
	}, nil
}

// ============================================================================
// Companies Handlers
// ============================================================================

func (s *Server) listCompanies(c fuego.ContextNoBody) (CompaniesListResponse, error) {
	companies, err := s.deps.CompaniesRepo.List(c.Context(), c.QueryParam("q"))
	if err != nil {
		return CompaniesListResponse{}, s.internalError(err, "failed to list companies")
	}

	return CompaniesListResponse{
		Companies: companies,
		Total:     len(companies),
	}, nil
}

func (s *Server) createCompany(c fuego.ContextWithBody[CompanyRequest]) (models.Company, error) {
	body, err := c.Body()
	if err != nil {
		return models.Company{}, fuego.BadRequestError{Detail: err.Error()}
	}

	company := body.toModel("")
	if err := company.Validate(); err != nil {
		return models.Company{}, fuego.BadRequestError{Detail: err.Error()}
	}

	err = s.deps.CompaniesRepo.Create(c.Context(), company)
	if errors.Is(err, repository.ErrConflict) {
		return models.Company{}, fuego.ConflictError{Detail: "Company already exists"}
	}
	if err != nil {
		return models.Company{}, s.internalError(err, "failed to create company")
	}

	return *company, nil
}

func (s *Server) getCompany(c fuego.ContextNoBody) (models.Company, error) {
	company, err := s.deps.CompaniesRepo.GetByID(c.Context(), c.PathParam("id"))
	if errors.Is(err, repository.ErrNotFound) {
		return models.Company{}, fuego.NotFoundError{Detail: "Company not found"}
	}
	if err != nil {
		return models.Company{}, s.internalError(err, "failed to load company")
	}

	return *company, nil
}

func (s *Server) updateCompany(c fuego.ContextWithBody[CompanyRequest]) (models.Company, error) {
	body, err := c.Body()
	if err != nil {
		return models.Company{}, fuego.BadRequestError{Detail: err.Error()}
	}

	company := body.toModel(c.PathParam("id"))
	if err := company.Validate(); err != nil {
		return models.Company{}, fuego.BadRequestError{Detail: err.Error()}
	}

	err = s.deps.CompaniesRepo.Update(c.Context(), company)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Company{}, fuego.NotFoundError{Detail: "Company not found"}
	}
	if errors.Is(err, repository.ErrConflict) {
		return models.Company{}, fuego.ConflictError{Detail: "Company already exists"}
	}
	if err != nil {
		return models.Company{}, s.internalError(err, "failed to update company")
	}

	// company names are denormalized into cached job cards
	if err := s.deps.Jobs.Invalidate(c.Context()); err != nil {
		s.log.Warn().Err(err).Str("company_id", company.ID).Msg("invalidate jobs cache")
	}

	return *company, nil
}

// ============================================================================
// Contact Handlers
// ============================================================================

func (s *Server) createContactMessage(c fuego.ContextWithBody[ContactRequest]) (models.ContactMessage, error) {
	body, err := c.Body()
	if err != nil {
		return models.ContactMessage{}, fuego.BadRequestError{Detail: err.Error()}
	}

	msg := &models.ContactMessage{
		Name:    body.Name,
		Email:   body.Email,
		Subject: body.Subject,
		Message: body.Message,
	}
	if err := msg.Validate(); err != nil {
		return models.ContactMessage{}, fuego.BadRequestError{Detail: err.Error()}
	}

	if err := s.deps.ContactsRepo.Create(c.Context(), msg); err != nil {
		return models.ContactMessage{}, s.internalError(err, "failed to save message")
	}

	s.log.Info().Str("message_id", msg.ID).Msg("contact message received")

	return *msg, nil
}

func (s *Server) listContactMessages(c fuego.ContextNoBody) (ContactMessagesResponse, error) {
	msgs, err := s.deps.ContactsRepo.List(c.Context())
	if err != nil {
		return ContactMessagesResponse{}, s.internalError(err, "failed to list messages")
	}

	return ContactMessagesResponse{
		Messages: msgs,
		Total:    len(msgs),
	}, nil
}

func (s *Server) updateContactStatus(c fuego.ContextWithBody[ContactStatusRequest]) (StatusResponse, error) {
	body, err := c.Body()
	if err != nil {
		return StatusResponse{}, fuego.BadRequestError{Detail: err.Error()}
	}

	status := models.ContactStatus(body.Status)
	if !status.IsValid() {
		return StatusResponse{}, fuego.BadRequestError{Detail: "Invalid status"}
	}

	err = s.deps.ContactsRepo.UpdateStatus(c.Context(), c.PathParam("id"), status)
	if errors.Is(err, repository.ErrNotFound) {
		return StatusResponse{}, fuego.NotFoundError{Detail: "Message not found"}
	}
	if err != nil {
		return StatusResponse{}, s.internalError(err, "failed to update message")
	}

	return StatusResponse{Status: "updated"}, nil
}

// internalError logs the cause and hides it from the client.
func (s *Server) internalError(err error, detail string) error {
	s.log.Error().Err(err).Msg(detail)
	return fuego.InternalServerError{Detail: detail}
}
