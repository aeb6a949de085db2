package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blockedby/jobboard/internal/models"
)

// CompaniesRepository handles companies table operations
type CompaniesRepository struct {
	pool *pgxpool.Pool
}

// NewCompaniesRepository creates a new companies repository
func NewCompaniesRepository(pool *pgxpool.Pool) *CompaniesRepository {
	return &CompaniesRepository{pool: pool}
}

// List returns companies whose name contains nameQuery, ignoring case.
// An empty query returns every company. Newest first.
func (r *CompaniesRepository) List(ctx context.Context, nameQuery string) ([]models.Company, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, description, website, location, logo_url, created_at, updated_at
		FROM companies
		WHERE $1 = '' OR STRPOS(LOWER(name), LOWER($1)) > 0
		ORDER BY created_at DESC
	`, strings.TrimSpace(nameQuery))
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	companies := []models.Company{}
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		companies = append(companies, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate companies: %w", err)
	}
	return companies, nil
}

// GetByID returns a company by ID
func (r *CompaniesRepository) GetByID(ctx context.Context, id string) (*models.Company, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}

	c, err := scanCompany(r.pool.QueryRow(ctx, `
		SELECT id, name, description, website, location, logo_url, created_at, updated_at
		FROM companies
		WHERE id = $1
	`, uid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get company by id: %w", err)
	}
	return c, nil
}

// Create registers a new company
func (r *CompaniesRepository) Create(ctx context.Context, c *models.Company) error {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `
		INSERT INTO companies (name, description, website, location, logo_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, c.Name, c.Description, c.Website, c.Location, c.LogoURL,
	).Scan(&id, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create company %q: %w", c.Name, ErrConflict)
		}
		return fmt.Errorf("create company: %w", err)
	}
	c.ID = id.String()
	return nil
}

// Update saves the editable company fields
func (r *CompaniesRepository) Update(ctx context.Context, c *models.Company) error {
	uid, err := uuid.Parse(c.ID)
	if err != nil {
		return ErrNotFound
	}

	err = r.pool.QueryRow(ctx, `
		UPDATE companies
		SET name = $2, description = $3, website = $4, location = $5,
		    logo_url = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`, uid, c.Name, c.Description, c.Website, c.Location, c.LogoURL,
	).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if isUniqueViolation(err) {
			return fmt.Errorf("rename company to %q: %w", c.Name, ErrConflict)
		}
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

func scanCompany(row pgx.Row) (*models.Company, error) {
	var (
		c  models.Company
		id uuid.UUID
	)
	if err := row.Scan(
		&id, &c.Name, &c.Description, &c.Website, &c.Location, &c.LogoURL,
		&c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	c.ID = id.String()
	return &c, nil
}
