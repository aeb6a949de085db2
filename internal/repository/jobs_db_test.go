package repository

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockedby/jobboard/internal/database"
	"github.com/blockedby/jobboard/internal/models"
)

func TestJobsRepository_CreateListGet(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") == "" {
		t.Skip("Skipping integration test; set INTEGRATION_TEST=1 to run")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.New(ctx, dbURL)
	require.NoError(t, err)
	defer db.Close()

	setupSchema(t, db)

	companies := NewCompaniesRepository(db.Pool)
	jobs := NewJobsRepository(db.Pool)

	company := &models.Company{Name: "DataSystems", Location: "New York, NY"}
	require.NoError(t, companies.Create(ctx, company))
	require.NotEmpty(t, company.ID)

	dup := &models.Company{Name: "datasystems"}
	assert.ErrorIs(t, companies.Create(ctx, dup), ErrConflict)

	other := &models.Company{Name: "GrowthLabs"}
	require.NoError(t, companies.Create(ctx, other))
	other.Name = "DATASYSTEMS"
	assert.ErrorIs(t, companies.Update(ctx, other), ErrConflict)

	found, err := companies.List(ctx, "datasys")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, company.ID, found[0].ID)

	older := &models.Job{
		Title:        "Backend Engineer",
		Description:  "Scale our infrastructure",
		Requirements: []string{"Go", "Postgres"},
		Location:     "New York, NY",
		JobType:      models.JobTypeFullTime,
		Salary:       "$130k - $160k",
		Company:      company,
	}
	require.NoError(t, jobs.Create(ctx, older))
	require.NotEmpty(t, older.ID)

	newer := &models.Job{
		Title:       "DevOps Engineer",
		Description: "Optimize the deployment pipeline",
		Location:    "Remote",
		JobType:     models.JobTypeContract,
		Company:     company,
	}
	require.NoError(t, jobs.Create(ctx, newer))

	all, err := jobs.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newer.ID, all[0].ID, "newest posting first")
	assert.Equal(t, "DataSystems", all[1].CompanyName())
	assert.Equal(t, []string{"Go", "Postgres"}, all[1].Requirements)

	got, err := jobs.GetByID(ctx, older.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", got.Title)

	_, err = jobs.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)
}

func setupSchema(t *testing.T, db *database.DB) {
	ctx := context.Background()

	_, _ = db.Pool.Exec(ctx, `
		DROP TABLE IF EXISTS contact_messages CASCADE;
		DROP TABLE IF EXISTS jobs CASCADE;
		DROP TABLE IF EXISTS companies CASCADE;
	`)

	files := []string{
		"../../migrations/0001_create_companies.up.sql",
		"../../migrations/0002_create_jobs.up.sql",
		"../../migrations/0003_create_contact_messages.up.sql",
	}

	for _, f := range files {
		content, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("failed to read migration %s: %v", f, err)
		}
		if _, err := db.Pool.Exec(ctx, string(content)); err != nil {
			t.Fatalf("failed to run migration %s: %v", f, err)
		}
	}
}
