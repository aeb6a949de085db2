package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blockedby/jobboard/internal/models"
)

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write breaks a unique constraint.
	ErrConflict = errors.New("already exists")
)

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

const jobColumns = `
	j.id, j.title, j.description, j.requirements, j.location, j.job_type,
	j.category, j.salary, j.experience, j.positions, j.posted_at,
	c.id, c.name, c.description, c.website, c.location, c.logo_url,
	c.created_at, c.updated_at`

// JobsRepository handles jobs table operations
type JobsRepository struct {
	pool *pgxpool.Pool
}

// NewJobsRepository creates a new jobs repository
func NewJobsRepository(pool *pgxpool.Pool) *JobsRepository {
	return &JobsRepository{pool: pool}
}

// ListAll returns every posting, newest first. The order is the order the
// search engine preserves.
func (r *JobsRepository) ListAll(ctx context.Context) ([]models.Job, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+jobColumns+`
		FROM jobs j
		JOIN companies c ON c.id = j.company_id
		ORDER BY j.posted_at DESC, j.id
	`)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	jobs := []models.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate jobs: %w", err)
	}
	return jobs, nil
}

// GetByID returns a job by ID
func (r *JobsRepository) GetByID(ctx context.Context, id string) (*models.Job, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}

	j, err := scanJob(r.pool.QueryRow(ctx, `
		SELECT `+jobColumns+`
		FROM jobs j
		JOIN companies c ON c.id = j.company_id
		WHERE j.id = $1
	`, uid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get job by id: %w", err)
	}
	return j, nil
}

// Create inserts a posting and fills in its ID and posting time.
func (r *JobsRepository) Create(ctx context.Context, j *models.Job) error {
	if j.Company == nil {
		return models.ErrCompanyRequired
	}
	companyID, err := uuid.Parse(j.Company.ID)
	if err != nil {
		return fmt.Errorf("create job: invalid company id %q", j.Company.ID)
	}
	if j.Requirements == nil {
		j.Requirements = []string{}
	}

	var (
		id       uuid.UUID
		postedAt time.Time
	)
	err = r.pool.QueryRow(ctx, `
		INSERT INTO jobs (company_id, title, description, requirements, location,
		                  job_type, category, salary, experience, positions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, posted_at
	`, companyID, j.Title, j.Description, j.Requirements, j.Location,
		string(j.JobType), j.Category, j.Salary, j.Experience, j.Positions,
	).Scan(&id, &postedAt)
	if err != nil {
		return fmt.Errorf("create job: %w", err)
	}

	j.ID = id.String()
	j.PostedAt = postedAt
	return nil
}

func scanJob(row pgx.Row) (*models.Job, error) {
	var (
		j       models.Job
		c       models.Company
		jobID   uuid.UUID
		compID  uuid.UUID
		jobType string
	)
	if err := row.Scan(
		&jobID, &j.Title, &j.Description, &j.Requirements, &j.Location, &jobType,
		&j.Category, &j.Salary, &j.Experience, &j.Positions, &j.PostedAt,
		&compID, &c.Name, &c.Description, &c.Website, &c.Location, &c.LogoURL,
		&c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	j.ID = jobID.String()
	j.JobType = models.JobType(jobType)
	c.ID = compID.String()
	j.Company = &c
	return &j, nil
}
