package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/auth"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/config"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/content"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/jobs"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/ratelimit"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/report"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/service"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/sse"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/store"
)

// testEnvelope mirrors APIEnvelope for decoding responses in tests.
type testEnvelope[T any] struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error,omitempty"`
}

// testErrorEnvelope mirrors APIErrorEnvelope.
type testErrorEnvelope struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type noopEmitter struct{}

func (noopEmitter) Emit(any) {}

// testServer bundles the API server with a humatest client.
type testServer struct {
	*Server
	api humatest.TestAPI
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	tmpDir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	st, err := store.New(filepath.Join(tmpDir, "data.db"), nil, store.NewNoopEmitter())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.EnsureDefaultFlags(context.Background()))

	keyHex, err := auth.LoadOrGenerateKey(tmpDir)
	require.NoError(t, err)
	tokens, err := auth.NewTokenService(keyHex, 15*time.Minute, 30*24*time.Hour)
	require.NoError(t, err)

	sessions := service.NewSessionService(st, tokens, logger)
	authService := service.NewAuthService(st, tokens, sessions, ratelimit.New(100, 200), logger)

	registry := jobs.NewRegistry(logger)

	reports, err := report.Open(filepath.Join(tmpDir, "reports.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reports.Close() })

	templates, err := report.NewTemplates("", logger)
	require.NoError(t, err)
	mailer := report.NewMailer(config.ReportConfig{}, templates)
	data := service.NewReportData(st)
	scheduler := jobs.NewScheduler(time.Minute, reports, mailer, data, st, registry, noopEmitter{}, logger)

	services := &Services{
		Auth:          authService,
		Sessions:      sessions,
		Items:         service.NewItemService(st, nil, content.NewBulkRunner(nil, logger), logger),
		Tasks:         service.NewTaskService(st, logger),
		Templates:     service.NewTemplateService(st, logger),
		Calendar:      service.NewCalendarService(st, logger),
		Notifications: service.NewNotificationService(st, logger),
		Views:         service.NewViewService(st, logger),
		Taxonomy:      service.NewTaxonomyService(st, logger),
		Settings:      service.NewSettingsService(st, logger),
		Admin:         service.NewAdminService(st, registry, logger),
		Seed:          service.NewSeedService(st, registry, noopEmitter{}, logger),
		Reports:       service.NewReportService(data, reports, scheduler, logger),
	}

	manager := sse.NewManager(logger)
	sseHandler := sse.NewHandler(manager, IdentityFromRequest(services), logger)

	s := NewServer(config.ServerConfig{Name: "Test"}, st, services, sseHandler, logger)

	return &testServer{Server: s, api: humatest.Wrap(t, s.api)}
}

// setupWorkspace runs the initial setup and returns the root admin's token.
func (ts *testServer) setupWorkspace(t *testing.T) string {
	t.Helper()

	resp := ts.api.Post("/api/v1/auth/setup", map[string]any{
		"email":        "gabi@marketingkreis.de",
		"password":     "sicher-genug-123",
		"display_name": "Gabi Admin",
		"workspace":    "MarketingKreis Test",
	})
	require.Equal(t, http.StatusOK, resp.Code, "setup failed: %s", resp.Body.String())

	var envelope testEnvelope[AuthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.AccessToken)

	return envelope.Data.AccessToken
}

// createMember creates a user with the given role via the admin API and
// logs them in. Returns their access token.
func (ts *testServer) createMember(t *testing.T, adminToken, email, role string) string {
	t.Helper()

	resp := ts.api.Post("/api/v1/admin/users",
		map[string]any{
			"email":        email,
			"password":     "sicher-genug-123",
			"display_name": "Mitglied " + role,
			"role":         role,
		},
		"Authorization: Bearer "+adminToken)
	require.Equal(t, http.StatusOK, resp.Code, "create member failed: %s", resp.Body.String())

	resp = ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    email,
		"password": "sicher-genug-123",
	})
	require.Equal(t, http.StatusOK, resp.Code, "login failed: %s", resp.Body.String())

	var envelope testEnvelope[AuthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	return envelope.Data.AccessToken
}
