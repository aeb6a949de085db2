package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockedby/jobboard/internal/api"
	"github.com/blockedby/jobboard/internal/cache"
	"github.com/blockedby/jobboard/internal/database"
	"github.com/blockedby/jobboard/internal/logger"
	"github.com/blockedby/jobboard/internal/migrator"
	"github.com/blockedby/jobboard/internal/models"
	"github.com/blockedby/jobboard/internal/repository"
	"github.com/blockedby/jobboard/internal/web"
	"github.com/blockedby/jobboard/migrations"
)

func TestEndToEnd_PostAndSearch(t *testing.T) {
	// this test requires database
	if os.Getenv("INTEGRATION_TEST") == "" {
		t.Skip("Skipping integration test; set INTEGRATION_TEST=1 to run (WARNING: wipes database)")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()

	db, err := database.New(ctx, dbURL)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Pool.Exec(ctx, `DROP TABLE IF EXISTS contact_messages, jobs, companies, schema_migrations CASCADE`)
	require.NoError(t, err)

	m, err := migrator.NewWithFS(migrations.FS)
	require.NoError(t, err)
	require.NoError(t, m.Up(ctx, dbURL))

	hub := web.NewHub()
	go hub.Run()
	defer hub.Stop()

	jobsRepo := repository.NewJobsRepository(db.Pool)
	srv := api.NewServer(&api.Config{
		Port:         0,
		Title:        "Job Board API",
		ContactRPS:   100,
		ContactBurst: 100,
		AdminToken:   "integration",
	}, &api.Dependencies{
		Jobs:          cache.NewJobProvider(jobsRepo, nil, time.Minute, logger.Nop()),
		JobsRepo:      jobsRepo,
		CompaniesRepo: repository.NewCompaniesRepository(db.Pool),
		ContactsRepo:  repository.NewContactsRepository(db.GORM),
		Hub:           hub,
		Logger:        logger.Nop(),
	})

	call := func(method, target string, body any, out any, header ...string) int {
		t.Helper()
		var buf bytes.Buffer
		if body != nil {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
		req := httptest.NewRequest(method, target, &buf)
		req.Header.Set("Content-Type", "application/json")
		for i := 0; i+1 < len(header); i += 2 {
			req.Header.Set(header[i], header[i+1])
		}
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)
		if out != nil && w.Code < 300 {
			require.NoError(t, json.NewDecoder(w.Body).Decode(out), w.Body.String())
		}
		return w.Code
	}

	var company models.Company
	code := call(http.MethodPost, "/api/v1/companies", api.CompanyRequest{Name: "TechCorp", Location: "Bangalore"}, &company)
	require.Less(t, code, 300)
	require.NotEmpty(t, company.ID)

	posts := []api.JobCreateRequest{
		{Title: "Senior Frontend Developer", Description: "React", CompanyID: company.ID, Location: "Bangalore", JobType: "Full-time"},
		{Title: "Backend Developer", Description: "Senior Go engineer", CompanyID: company.ID, Location: "Mumbai", JobType: "Contract"},
	}
	for _, p := range posts {
		var created api.JobResponse
		require.Less(t, call(http.MethodPost, "/api/v1/jobs", p, &created), 300)
		require.NotEmpty(t, created.ID)
		// posted_at has microsecond precision; keep the order deterministic
		time.Sleep(5 * time.Millisecond)
	}

	var all api.JobsListResponse
	require.Equal(t, http.StatusOK, call(http.MethodGet, "/api/v1/jobs", nil, &all))
	require.Equal(t, 2, all.Total)
	assert.Equal(t, "Backend Developer", all.Jobs[0].Title, "newest first")

	var combined api.JobsListResponse
	require.Equal(t, http.StatusOK, call(http.MethodGet, "/api/v1/jobs?q=senior&selected=Bangalore", nil, &combined))
	require.Equal(t, 1, combined.Count)
	assert.Equal(t, "Senior Frontend Developer", combined.Jobs[0].Title)

	require.Less(t, call(http.MethodPost, "/api/v1/contact", api.ContactRequest{Name: "Jane", Email: "jane@example.com", Message: "Hi"}, nil), 300)

	var inbox api.ContactMessagesResponse
	require.Equal(t, http.StatusOK, call(http.MethodGet, "/api/v1/contact/messages", nil, &inbox, "Authorization", "Bearer integration"))
	require.Equal(t, 1, inbox.Total)
	assert.Equal(t, models.ContactStatusNew, inbox.Messages[0].Status)
}
