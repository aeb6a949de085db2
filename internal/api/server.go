package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-fuego/fuego"
	"github.com/go-fuego/fuego/option"

	"github.com/blockedby/jobboard/internal/logger"
	"github.com/blockedby/jobboard/internal/search"
	"github.com/blockedby/jobboard/internal/web"
)

// Server represents the Fuego API server.
type Server struct {
	fuego   *fuego.Server
	http    *http.Server
	handler http.Handler
	deps    *Dependencies
	facets  *search.Facets
	log     *logger.Logger
	limiter *IPRateLimiter
	version string
	now     func() time.Time
}

// Dependencies contains all service dependencies.
type Dependencies struct {
	Jobs          JobProvider
	JobsRepo      JobsRepository
	CompaniesRepo CompaniesRepository
	ContactsRepo  ContactsRepository
	Publisher     EventPublisher // optional
	Hub           HubBroadcaster // optional; a *web.Hub also serves /ws
	Facets        *search.Facets
	Logger        *logger.Logger
	HealthChecks  []HealthCheck
}

// Config holds API server configuration.
type Config struct {
	Port         int
	Title        string
	Description  string
	Version      string
	CORSOrigins  []string
	ContactRPS   float64
	ContactBurst int
	AdminToken   string
}

// routeMiddleware runs on every route, including the handlers mounted on the
// mux directly.
var routeMiddleware = []func(http.Handler) http.Handler{
	middleware.RequestID,
	middleware.RealIP,
	middleware.Logger,
	middleware.Recoverer,
}

// withRouteMiddleware wraps h in routeMiddleware, first entry outermost.
func withRouteMiddleware(h http.Handler) http.Handler {
	for i := len(routeMiddleware) - 1; i >= 0; i-- {
		h = routeMiddleware[i](h)
	}
	return h
}

// NewServer creates a new Fuego API server.
func NewServer(cfg *Config, deps *Dependencies) *Server {
	s := fuego.NewServer(
		fuego.WithAddr(fmt.Sprintf(":%d", cfg.Port)),
		fuego.WithEngineOptions(
			fuego.WithOpenAPIConfig(fuego.OpenAPIConfig{
				PrettyFormatJSON: true,
				JSONFilePath:     "openapi.json",
				SwaggerURL:       "/docs",
				SpecURL:          "/openapi.json",
				UIHandler: func(specURL string) http.Handler {
					return ScalarHandler(specURL, cfg.Title, cfg.Description)
				},
			}),
		),
	)

	// Set OpenAPI info
	s.OpenAPI.Description().Info.Title = cfg.Title
	s.OpenAPI.Description().Info.Description = cfg.Description
	s.OpenAPI.Description().Info.Version = cfg.Version

	// Add Chi middleware (Fuego is net/http compatible)
	for _, mw := range routeMiddleware {
		fuego.Use(s, mw)
	}

	log := deps.Logger
	if log == nil {
		log = logger.Get()
	}
	facets := deps.Facets
	if facets == nil {
		facets = search.DefaultFacets()
	}
	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	srv := &Server{
		fuego:   s,
		deps:    deps,
		facets:  facets,
		log:     log.Component("api"),
		limiter: NewIPRateLimiter(cfg.ContactRPS, cfg.ContactBurst),
		version: version,
		now:     time.Now,
	}

	srv.registerRoutes(cfg)
	srv.mountDocs(cfg.Title, cfg.Description)
	if hub, ok := deps.Hub.(*web.Hub); ok {
		s.Mux.Handle("GET /ws", withRouteMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			web.ServeWs(hub, w, r)
		})))
	}

	srv.handler = cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Retry-After"},
		MaxAge:         300,
	})(s.Mux)

	srv.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           srv.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return srv
}

func (s *Server) registerRoutes(cfg *Config) {
	// Health check
	fuego.Get(s.fuego, "/health", s.healthCheck,
		option.Summary("Health Check"),
		option.Description("Returns the health status of the API"),
		option.Tags("System"),
	)

	// Jobs API
	fuego.Get(s.fuego, "/api/v1/jobs", s.listJobs,
		option.Summary("Search Jobs"),
		option.Description("Filters the job list by text, location, job type and category. All criteria must match; listing order is preserved."),
		option.Tags("Jobs"),
		option.Query("q", "Search bar text, matched against title, company and description"),
		option.Query("selected", "Value picked in the filter card, matched against location, category and the text fields"),
		option.Query("category", "Carousel category; replaces q and selected"),
		option.Query("location", "Location substring"),
		option.Query("type", "Job type (Full-time, Part-time, Contract, Internship)"),
	)

	fuego.Post(s.fuego, "/api/v1/jobs", s.createJob,
		option.Summary("Post Job"),
		option.Description("Creates a job posting for an existing company"),
		option.Tags("Jobs"),
	)

	jobsGroup := fuego.Group(s.fuego, "/api/v1/jobs",
		option.Tags("Jobs"),
	)

	fuego.Get(jobsGroup, "/latest", s.latestJobs,
		option.Summary("Latest Jobs"),
		option.Description("Returns the most recent job postings for the home page"),
	)

	fuego.Get(jobsGroup, "/{id}", s.getJob,
		option.Summary("Get Job"),
		option.Description("Returns a single job by ID"),
	)

	// Facets API
	fuego.Get(s.fuego, "/api/v1/facets", s.getFacets,
		option.Summary("Filter Facets"),
		option.Description("Returns the filter card groups and carousel categories"),
		option.Tags("Jobs"),
	)

	// Companies API
	fuego.Get(s.fuego, "/api/v1/companies", s.listCompanies,
		option.Summary("List Companies"),
		option.Description("Returns companies whose name contains q"),
		option.Tags("Companies"),
		option.Query("q", "Case-insensitive name substring"),
	)

	fuego.Post(s.fuego, "/api/v1/companies", s.createCompany,
		option.Summary("Create Company"),
		option.Description("Registers a new company"),
		option.Tags("Companies"),
	)

	companiesGroup := fuego.Group(s.fuego, "/api/v1/companies",
		option.Tags("Companies"),
	)

	fuego.Get(companiesGroup, "/{id}", s.getCompany,
		option.Summary("Get Company"),
		option.Description("Returns a single company by ID"),
	)

	fuego.Put(companiesGroup, "/{id}", s.updateCompany,
		option.Summary("Update Company"),
		option.Description("Updates an existing company"),
	)

	// Contact API
	publicGroup := fuego.Group(s.fuego, "/api/v1",
		option.Tags("Contact"),
	)
	fuego.Use(publicGroup, s.limiter.Middleware)

	fuego.Post(publicGroup, "/contact", s.createContactMessage,
		option.Summary("Send Contact Message"),
		option.Description("Stores a message from the contact form. Rate limited per client IP."),
	)

	adminGroup := fuego.Group(s.fuego, "/api/v1/contact",
		option.Tags("Contact"),
	)
	fuego.Use(adminGroup, requireAdmin(cfg.AdminToken))

	fuego.Get(adminGroup, "/messages", s.listContactMessages,
		option.Summary("List Contact Messages"),
		option.Description("Returns contact messages, newest first. Requires the admin bearer token."),
	)

	fuego.Put(adminGroup, "/messages/{id}/status", s.updateContactStatus,
		option.Summary("Update Contact Message Status"),
		option.Description("Marks a message as new, read or replied. Requires the admin bearer token."),
	)
}

// mountDocs serves the Scalar UI and the OpenAPI spec generated from the
// registered routes.
func (s *Server) mountDocs(title, description string) {
	s.fuego.Mux.Handle("GET /docs", withRouteMiddleware(ScalarHandler("/openapi.json", title, description)))

	s.fuego.Mux.Handle("GET /openapi.json", withRouteMiddleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		spec := s.fuego.OpenAPI.Description()
		if err := json.NewEncoder(w).Encode(spec); err != nil {
			http.Error(w, "Failed to encode OpenAPI spec", http.StatusInternalServerError)
		}
	})))
}

// Handler returns the root handler including CORS.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves HTTP until Stop is called.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.http.Addr).Msg("api server listening")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("api server: %w", err)
	}
	return nil
}

// Stop gracefully stops the server.
func (s *Server) Stop(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
