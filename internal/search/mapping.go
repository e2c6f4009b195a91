package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/lang/de"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve index mapping for item documents.
//
// The mapping is designed with these priorities:
//  1. Fast full-text search on titles with German stemming (the workspace
//     content is German)
//  2. Exact keyword matching for channel/format/status/owner filters
//  3. Numeric range queries on due dates
//  4. Term vectors on the title for highlighting
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()

	// German analyzer as default for text fields
	indexMapping.DefaultAnalyzer = de.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	// --- Text fields (full-text searchable) ---

	// Title - primary search target
	titleFieldMapping := bleve.NewTextFieldMapping()
	titleFieldMapping.Analyzer = de.AnalyzerName
	titleFieldMapping.Store = true
	titleFieldMapping.IncludeTermVectors = true // For highlighting
	docMapping.AddFieldMappingsAt("title", titleFieldMapping)

	// Notes - searchable but not stored (can be long)
	notesFieldMapping := bleve.NewTextFieldMapping()
	notesFieldMapping.Analyzer = de.AnalyzerName
	notesFieldMapping.Store = false
	docMapping.AddFieldMappingsAt("notes", notesFieldMapping)

	// --- Keyword fields (exact match, facetable) ---

	// ID - stored but not analyzed
	idFieldMapping := bleve.NewTextFieldMapping()
	idFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("id", idFieldMapping)

	// Channel and format - the taxonomy dimensions, faceted in the UI.
	// Keyword analyzer keeps multi-word values intact (e.g., "Landing Page").
	channelFieldMapping := bleve.NewTextFieldMapping()
	channelFieldMapping.Analyzer = keyword.Name
	channelFieldMapping.Store = true
	channelFieldMapping.IncludeTermVectors = true // For faceting
	docMapping.AddFieldMappingsAt("channel", channelFieldMapping)

	formatFieldMapping := bleve.NewTextFieldMapping()
	formatFieldMapping.Analyzer = keyword.Name
	formatFieldMapping.Store = true
	formatFieldMapping.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("format", formatFieldMapping)

	// Status - workflow stage filter
	statusFieldMapping := bleve.NewTextFieldMapping()
	statusFieldMapping.Analyzer = keyword.Name
	statusFieldMapping.Store = true
	statusFieldMapping.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("status", statusFieldMapping)

	// Owner - for "my items" scoping
	ownerFieldMapping := bleve.NewTextFieldMapping()
	ownerFieldMapping.Analyzer = keyword.Name
	ownerFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("owner_id", ownerFieldMapping)

	// Tags - keyword analyzer keeps compound slugs intact (e.g., "q4-launch")
	tagsFieldMapping := bleve.NewTextFieldMapping()
	tagsFieldMapping.Analyzer = keyword.Name
	tagsFieldMapping.Store = true
	tagsFieldMapping.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("tags", tagsFieldMapping)

	// --- Numeric fields (range queries, sorting) ---

	dueAtFieldMapping := bleve.NewNumericFieldMapping()
	dueAtFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("due_at", dueAtFieldMapping)

	createdAtFieldMapping := bleve.NewNumericFieldMapping()
	createdAtFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("created_at", createdAtFieldMapping)

	updatedAtFieldMapping := bleve.NewNumericFieldMapping()
	updatedAtFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("updated_at", updatedAtFieldMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}
