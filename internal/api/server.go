// Package api provides the HTTP API server and handlers for the
// MarketingKreis dashboard.
package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/config"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/sse"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/store"
)

// Version is the API version reported by the health endpoint.
const Version = "1.0.0"

// Server holds dependencies for HTTP handlers.
type Server struct {
	store      *store.Store
	services   *Services
	sseHandler *sse.Handler
	router     *chi.Mux
	api        huma.API
	logger     *slog.Logger

	// readiness probes, nil checks skipped when unset
	readyChecks []func() error
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(cfg config.ServerConfig, st *store.Store, services *Services, sseHandler *sse.Handler, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(cors.Handler(corsOptions(cfg.AllowedOrigins)))
	router.Use(authMiddleware(services.Auth))

	humaConfig := huma.DefaultConfig("MarketingKreis API", Version)
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	RegisterErrorHandler()
	api := humachi.New(router, humaConfig)

	s := &Server{
		store:      st,
		services:   services,
		sseHandler: sseHandler,
		router:     router,
		api:        api,
		logger:     logger,
	}

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerItemRoutes()
	s.registerTaskRoutes()
	s.registerTemplateRoutes()
	s.registerCalendarRoutes()
	s.registerNotificationRoutes()
	s.registerViewRoutes()
	s.registerTaxonomyRoutes()
	s.registerSettingsRoutes()
	s.registerAdminRoutes()
	s.registerReportRoutes()

	// Streaming endpoints bypass huma: SSE and the CSV download need direct
	// access to the response writer.
	router.Get("/api/v1/sync/stream", s.handleEventStream)
	router.Get("/api/v1/items/export", s.handleExportCSV)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// AddReadyCheck registers a dependency probe for the readiness endpoint.
func (s *Server) AddReadyCheck(check func() error) {
	s.readyChecks = append(s.readyChecks, check)
}

// handleEventStream authenticates the SSE connection and hands it to the
// manager. EventSource cannot set headers, so a token query parameter is
// accepted as a fallback.
func (s *Server) handleEventStream(w http.ResponseWriter, r *http.Request) {
	s.sseHandler.ServeHTTP(w, r)
}

// IdentityFromRequest builds the sse.IdentityFunc for the stream endpoint.
func IdentityFromRequest(services *Services) sse.IdentityFunc {
	return func(r *http.Request) (string, bool) {
		token := ""
		if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
			token = authHeader[7:]
		} else {
			token = r.URL.Query().Get("token")
		}
		if token == "" {
			return "", false
		}

		claims, err := services.Auth.VerifyAccessToken(token)
		if err != nil {
			return "", false
		}
		return claims.UserID, claims.Role == "admin" || claims.IsRoot
	}
}

func corsOptions(allowedOrigins []string) cors.Options {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:5173"}
	}
	return cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}
}
