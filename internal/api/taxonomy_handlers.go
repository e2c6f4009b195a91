package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/taxonomy"
)

func (s *Server) registerTaxonomyRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getTaxonomy",
		Method:      http.MethodGet,
		Path:        "/api/v1/taxonomy",
		Summary:     "Workspace taxonomy",
		Description: "Channels, formats per channel, and frequent combinations, derived from live data merged with the built-in presets.",
		Tags:        []string{"Taxonomy"},
	}, s.handleGetTaxonomy)
}

// TaxonomyOutput wraps the taxonomy for Huma.
type TaxonomyOutput struct {
	Body *taxonomy.Taxonomy
}

func (s *Server) handleGetTaxonomy(ctx context.Context, _ *struct{}) (*TaxonomyOutput, error) {
	if _, err := s.RequireUser(ctx); err != nil {
		return nil, err
	}

	tax, err := s.services.Taxonomy.Current(ctx)
	if err != nil {
		return nil, err
	}

	return &TaxonomyOutput{Body: tax}, nil
}
