package search

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// Params configures a search query.
type Params struct {
	Query string // User's search query

	// Filters (exact match; empty = no filter)
	Channel string
	Format  string
	Status  string
	OwnerID string
	Tags    []string

	// Due date range in Unix millis (0 = unbounded)
	DueAfter  int64
	DueBefore int64

	// Pagination
	Limit  int
	Offset int

	// Sorting
	SortBy    string // "relevance", "title", "due", "recent"
	SortOrder string // "asc", "desc"

	// Options
	IncludeFacets bool // Include channel/format/status facet counts
	Highlight     bool // Include title match highlighting
}

// DefaultParams returns sensible defaults.
func DefaultParams() Params {
	return Params{
		Limit:         20,
		Offset:        0,
		SortBy:        "relevance",
		SortOrder:     "desc",
		IncludeFacets: true,
		Highlight:     true,
	}
}

// Result represents the search results.
type Result struct {
	Query  string `json:"query"`
	Total  uint64 `json:"total"`
	TookMs int64  `json:"took_ms"`
	Hits   []Hit  `json:"hits"`
	Facets Facets `json:"facets,omitempty"`
}

// Hit represents a single search result.
type Hit struct {
	ID         string            `json:"id"`
	Score      float64           `json:"score"`
	Title      string            `json:"title"`
	Channel    string            `json:"channel,omitempty"`
	Format     string            `json:"format,omitempty"`
	Status     string            `json:"status"`
	OwnerID    string            `json:"owner_id,omitempty"`
	Tags       []string          `json:"tags,omitempty"`
	DueAt      int64             `json:"due_at,omitempty"`
	Highlights map[string]string `json:"highlights,omitempty"`
}

// Facets contains facet counts for the taxonomy dimensions and status.
type Facets struct {
	Channels []FacetCount `json:"channels,omitempty"`
	Formats  []FacetCount `json:"formats,omitempty"`
	Statuses []FacetCount `json:"statuses,omitempty"`
}

// FacetCount represents a facet value and its count.
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Search executes a search query.
func (s *ItemIndex) Search(ctx context.Context, params Params) (*Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	searchQuery := buildSearchQuery(params)

	searchRequest := bleve.NewSearchRequestOptions(searchQuery, params.Limit, params.Offset, false)

	addSorting(searchRequest, params)

	if params.IncludeFacets {
		searchRequest.AddFacet("channel", bleve.NewFacetRequest("channel", 20))
		searchRequest.AddFacet("format", bleve.NewFacetRequest("format", 20))
		searchRequest.AddFacet("status", bleve.NewFacetRequest("status", 10))
	}

	if params.Highlight {
		searchRequest.Highlight = bleve.NewHighlight()
		searchRequest.Highlight.AddField("title")
	}

	searchRequest.Fields = []string{
		"id", "title", "channel", "format", "status", "owner_id", "tags", "due_at",
	}

	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &Result{
		Query:  params.Query,
		Total:  searchResult.Total,
		TookMs: searchResult.Took.Milliseconds(),
		Hits:   make([]Hit, 0, len(searchResult.Hits)),
	}

	for _, hit := range searchResult.Hits {
		h := Hit{
			ID:    hit.ID,
			Score: hit.Score,
		}

		// Extract stored fields
		if t, ok := hit.Fields["title"].(string); ok {
			h.Title = t
		}
		if c, ok := hit.Fields["channel"].(string); ok {
			h.Channel = c
		}
		if f, ok := hit.Fields["format"].(string); ok {
			h.Format = f
		}
		if st, ok := hit.Fields["status"].(string); ok {
			h.Status = st
		}
		if o, ok := hit.Fields["owner_id"].(string); ok {
			h.OwnerID = o
		}
		if d, ok := hit.Fields["due_at"].(float64); ok {
			h.DueAt = int64(d)
		}

		// Tags come back as a string for single values, a slice otherwise
		switch tags := hit.Fields["tags"].(type) {
		case string:
			h.Tags = []string{tags}
		case []interface{}:
			for _, t := range tags {
				if tag, ok := t.(string); ok {
					h.Tags = append(h.Tags, tag)
				}
			}
		}

		// Extract highlights
		if len(hit.Fragments) > 0 {
			h.Highlights = make(map[string]string)
			for field, fragments := range hit.Fragments {
				if len(fragments) > 0 {
					h.Highlights[field] = fragments[0]
				}
			}
		}

		result.Hits = append(result.Hits, h)
	}

	if params.IncludeFacets {
		result.Facets = extractFacets(searchResult)
	}

	return result, nil
}

// buildSearchQuery constructs the Bleve query from params.
func buildSearchQuery(params Params) query.Query {
	var queries []query.Query

	// Main text query over title and notes, with the title boosted and
	// fuzzy/prefix variants for typo tolerance and autocomplete.
	if params.Query != "" {
		textQueries := []query.Query{}

		titleMatch := bleve.NewMatchQuery(params.Query)
		titleMatch.SetField("title")
		titleMatch.SetBoost(3.0)
		textQueries = append(textQueries, titleMatch)

		notesMatch := bleve.NewMatchQuery(params.Query)
		notesMatch.SetField("notes")
		textQueries = append(textQueries, notesMatch)

		fuzzyQuery := bleve.NewFuzzyQuery(params.Query)
		fuzzyQuery.SetFuzziness(1)
		fuzzyQuery.SetField("title")
		fuzzyQuery.SetBoost(0.8)
		textQueries = append(textQueries, fuzzyQuery)

		// Prefix query for autocomplete (minimum 2 chars)
		if len(params.Query) >= 2 {
			prefixQuery := bleve.NewPrefixQuery(strings.ToLower(params.Query))
			prefixQuery.SetField("title")
			prefixQuery.SetBoost(0.5)
			textQueries = append(textQueries, prefixQuery)
		}

		queries = append(queries, bleve.NewDisjunctionQuery(textQueries...))
	}

	// Exact filters on the keyword fields
	for field, value := range map[string]string{
		"channel":  params.Channel,
		"format":   params.Format,
		"status":   params.Status,
		"owner_id": params.OwnerID,
	} {
		if value == "" {
			continue
		}
		tq := bleve.NewTermQuery(value)
		tq.SetField(field)
		queries = append(queries, tq)
	}

	// Tag filter (OR across tags)
	if len(params.Tags) > 0 {
		tagQueries := make([]query.Query, len(params.Tags))
		for i, tag := range params.Tags {
			tq := bleve.NewTermQuery(tag)
			tq.SetField("tags")
			tagQueries[i] = tq
		}
		queries = append(queries, bleve.NewDisjunctionQuery(tagQueries...))
	}

	// Due date range filter
	if params.DueAfter > 0 || params.DueBefore > 0 {
		minDue := float64(params.DueAfter)
		maxDue := float64(params.DueBefore)
		if params.DueBefore == 0 {
			maxDue = math.MaxFloat64
		}
		rangeQuery := bleve.NewNumericRangeQuery(&minDue, &maxDue)
		rangeQuery.SetField("due_at")
		queries = append(queries, rangeQuery)
	}

	// Combine all queries with AND
	if len(queries) == 0 {
		return bleve.NewMatchAllQuery()
	}
	if len(queries) == 1 {
		return queries[0]
	}
	return bleve.NewConjunctionQuery(queries...)
}

// addSorting configures sort order.
func addSorting(req *bleve.SearchRequest, params Params) {
	switch params.SortBy {
	case "title":
		if params.SortOrder == "desc" {
			req.SortBy([]string{"-title"})
		} else {
			req.SortBy([]string{"title"})
		}
	case "due":
		if params.SortOrder == "desc" {
			req.SortBy([]string{"-due_at"})
		} else {
			req.SortBy([]string{"due_at"})
		}
	case "recent":
		if params.SortOrder == "asc" {
			req.SortBy([]string{"updated_at"})
		} else {
			req.SortBy([]string{"-updated_at"})
		}
	default:
		// Relevance (score) is default - Bleve handles this
		req.SortBy([]string{"-_score"})
	}
}

// extractFacets converts Bleve facets to our format.
func extractFacets(result *bleve.SearchResult) Facets {
	facets := Facets{}

	if channelFacet, ok := result.Facets["channel"]; ok {
		for _, term := range channelFacet.Terms.Terms() {
			facets.Channels = append(facets.Channels, FacetCount{
				Value: term.Term,
				Count: term.Count,
			})
		}
	}

	if formatFacet, ok := result.Facets["format"]; ok {
		for _, term := range formatFacet.Terms.Terms() {
			facets.Formats = append(facets.Formats, FacetCount{
				Value: term.Term,
				Count: term.Count,
			})
		}
	}

	if statusFacet, ok := result.Facets["status"]; ok {
		for _, term := range statusFacet.Terms.Terms() {
			facets.Statuses = append(facets.Statuses, FacetCount{
				Value: term.Term,
				Count: term.Count,
			})
		}
	}

	return facets
}
