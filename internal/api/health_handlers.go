package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"System"},
	}, s.handleHealth)

	huma.Register(s.api, huma.Operation{
		OperationID: "ready",
		Method:      http.MethodGet,
		Path:        "/readyz",
		Summary:     "Readiness check",
		Description: "Verifies the server's storage backends are reachable.",
		Tags:        []string{"System"},
	}, s.handleReady)

	huma.Register(s.api, huma.Operation{
		OperationID: "instance",
		Method:      http.MethodGet,
		Path:        "/api/v1/instance",
		Summary:     "Instance info",
		Description: "Public workspace metadata, including whether first-run setup is pending.",
		Tags:        []string{"System"},
	}, s.handleInstance)
}

// HealthResponse reports liveness.
type HealthResponse struct {
	Status  string `json:"status" doc:"Always healthy when the server responds"`
	Version string `json:"version" doc:"API version"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealth(_ context.Context, _ *struct{}) (*HealthOutput, error) {
	return &HealthOutput{Body: HealthResponse{Status: "healthy", Version: Version}}, nil
}

func (s *Server) handleReady(_ context.Context, _ *struct{}) (*HealthOutput, error) {
	for _, check := range s.readyChecks {
		if err := check(); err != nil {
			s.logger.Error("readiness check failed", "error", err)
			return nil, huma.Error503ServiceUnavailable("Storage backend unavailable")
		}
	}
	return &HealthOutput{Body: HealthResponse{Status: "ready", Version: Version}}, nil
}

// InstanceResponse is the public workspace descriptor.
type InstanceResponse struct {
	WorkspaceName string `json:"workspace_name" doc:"Workspace display name"`
	Version       string `json:"version" doc:"API version"`
	SetupRequired bool   `json:"setup_required" doc:"True until the root user is created"`
}

// InstanceOutput wraps the instance response for Huma.
type InstanceOutput struct {
	Body InstanceResponse
}

func (s *Server) handleInstance(ctx context.Context, _ *struct{}) (*InstanceOutput, error) {
	setupRequired, err := s.services.Auth.IsSetupRequired(ctx)
	if err != nil {
		return nil, err
	}

	settings, err := s.services.Settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	return &InstanceOutput{Body: InstanceResponse{
		WorkspaceName: settings.WorkspaceName,
		Version:       Version,
		SetupRequired: setupRequired,
	}}, nil
}
