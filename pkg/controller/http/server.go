package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	_ "github.com/secmon-lab/covidstat/docs" // registers the OpenAPI document
	"github.com/secmon-lab/covidstat/pkg/domain/interfaces"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

const serviceName = "covidstat"

// Config holds HTTP server configuration
type Config struct {
	addr            string
	corsOrigins     []string
	rateLimit       int
	rateLimitWindow time.Duration
}

// ConfigOption configures Config
type ConfigOption func(*Config)

// WithCORSOrigins sets the allowed CORS origins
func WithCORSOrigins(origins []string) ConfigOption {
	return func(c *Config) {
		c.corsOrigins = origins
	}
}

// WithRateLimit sets the per-IP request limit per window. 0 disables it.
func WithRateLimit(requests int, window time.Duration) ConfigOption {
	return func(c *Config) {
		c.rateLimit = requests
		c.rateLimitWindow = window
	}
}

// NewConfig creates a new Config
func NewConfig(addr string, opts ...ConfigOption) *Config {
	c := &Config{
		addr:            addr,
		corsOrigins:     []string{"*"},
		rateLimit:       100,
		rateLimitWindow: time.Minute,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Server represents the HTTP server
type Server struct {
	*http.Server
	router chi.Router
	stats  interfaces.Stats
}

// NewServer creates a new HTTP server
func NewServer(ctx context.Context, cfg *Config, stats interfaces.Stats) (*Server, error) {
	router := chi.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(MetricsMiddleware)
	router.Use(middleware.Recoverer)
	router.Use(CORSMiddleware(cfg.corsOrigins))

	statsHandler := NewStatsHandler(stats)
	s := &Server{
		router: router,
		stats:  stats,
	}

	// Documentation and operations
	router.Get("/", handleDocsRedirect)
	router.Get("/docs", handleDocsRedirect)
	router.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
	))
	router.Get("/health", s.handleHealth)
	router.Handle("/metrics", promhttp.Handler())

	// Query API
	router.Group(func(r chi.Router) {
		r.Use(RateLimitMiddleware(cfg.rateLimit, cfg.rateLimitWindow))

		getWithSlash(r, "/countries", statsHandler.HandleCountries)
		getWithSlash(r, "/regions", statsHandler.HandleRegions)
		getWithSlash(r, "/deaths", statsHandler.HandleDeaths)
		getWithSlash(r, "/deaths_by_country/{country}", statsHandler.HandleDeathsByCountry)
		getWithSlash(r, "/deaths_by_region/{region}", statsHandler.HandleDeathsByRegion)
		getWithSlash(r, "/deaths_by_country_year/{country}/{year}", statsHandler.HandleDeathsByCountryYear)
		getWithSlash(r, "/deaths_by_region_year/{region}/{year}", statsHandler.HandleDeathsByRegionYear)
		getWithSlash(r, "/max_deaths", statsHandler.HandleMaxDeaths)
		getWithSlash(r, "/min_deaths", statsHandler.HandleMinDeaths)
		getWithSlash(r, "/avg_deaths", statsHandler.HandleAvgDeaths)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(r.Context(), w, http.StatusNotFound, ErrorResponse{Detail: "Not Found"})
	})

	s.Server = &http.Server{
		Addr:              cfg.addr,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
	}

	return s, nil
}

// getWithSlash registers h for path both with and without a trailing slash
func getWithSlash(r chi.Router, path string, h http.HandlerFunc) {
	r.Get(path, h)
	r.Get(path+"/", h)
}

// handleDocsRedirect sends the browser to the interactive API documentation
func handleDocsRedirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/docs/index.html", http.StatusTemporaryRedirect)
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	summary := s.stats.Summary(r.Context())
	writeJSON(r.Context(), w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Service:   serviceName,
		DatasetID: summary.DatasetID.String(),
		Rows:      summary.Rows,
	})
}
