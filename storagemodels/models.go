/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"time"

	"github.com/go-openapi/strfmt"
)

// EntityRecord is a single dictionary entry: one canonical value of an entity,
// its textual variants, and the language script it belongs to.
type EntityRecord struct {
	// EntityName is the entity this record is scoped to, e.g. "city".
	EntityName string `json:"entity_data" yaml:"entity_data"`
	// Value is the canonical spelling of the entity instance.
	Value string `json:"value" yaml:"value"`
	// Variants are alternate spellings/synonyms mapping back to Value.
	Variants []string `json:"variants" yaml:"variants"`
	// LanguageScript is the language-script tag of the variants, e.g. "en", "es".
	LanguageScript string `json:"language_script" yaml:"language_script"`
}

// WithSelfVariant returns a copy of the record whose variant set contains the
// canonical value itself. The canonical value must always be retrievable as one
// of its own variants.
func (r EntityRecord) WithSelfVariant() EntityRecord {
	for _, v := range r.Variants {
		if v == r.Value {
			return r
		}
	}
	variants := make([]string, 0, len(r.Variants)+1)
	variants = append(variants, r.Variants...)
	variants = append(variants, r.Value)
	r.Variants = variants
	return r
}

// CRFRecord is one labeled training sentence for an entity: the sentence, the
// substrings of it that are occurrences of the entity, and the language script.
type CRFRecord struct {
	EntityName     string          `json:"entity_data"`
	Sentence       string          `json:"sentence"`
	Entities       []string        `json:"entities"`
	LanguageScript string          `json:"language_script"`
	IngestedAt     strfmt.DateTime `json:"ingested_at,omitempty"`
}

// CRFData holds the training corpus of one entity as parallel lists: Entities[i]
// contains the entity spans occurring in Sentences[i].
type CRFData struct {
	Sentences []string   `json:"sentence_list"`
	Entities  [][]string `json:"entity_list"`
}

// VariantMatch is one fuzzy-search result: a variant found in the corpus mapped
// back to its canonical value. Results are ordered by backend relevance.
type VariantMatch struct {
	Variant string  `json:"variant"`
	Value   string  `json:"value"`
	Score   float64 `json:"score,omitempty"`
}

// IndexOptions carries the recognized knobs for structural and bulk-write
// operations. Unknown backend options are not forwarded; the set below is the
// full contract.
type IndexOptions struct {
	// Timeout bounds the operation. Zero means the configured default.
	Timeout time.Duration
	// BatchSize is the number of documents per bulk batch. Zero means the
	// engine default.
	BatchSize int
}

// SearchOptions carries the recognized knobs for query operations.
type SearchOptions struct {
	// Timeout bounds the query round-trip. Zero means the configured default.
	Timeout time.Duration
	// Size caps the number of hits fetched. Zero means the engine default.
	Size int
}

// TransferJob describes one cross-cluster entity copy. It exists only for the
// duration of a single TransferEntities call.
type TransferJob struct {
	SourceURL      string
	DestinationURL string
	EntityNames    []string
}

// TransferResult reports the per-entity outcome of a transfer. Entities succeed
// or fail independently.
type TransferResult struct {
	EntityName string
	Records    int
	Err        error
}
