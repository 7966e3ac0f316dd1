/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package engine

import (
	"context"

	"github.com/suparena/dictstore/storagemodels"
)

// Engine is the storage-engine abstraction the datastore orchestrates. One
// concrete engine exists today (bleve); the interface keeps the orchestration
// layer engine-agnostic.
//
// Mutation primitives take an explicit target index so the caller can route
// writes through the live-index pointer during a rebuild. Query primitives
// always address the engine's configured logical index.
type Engine interface {
	// Connect ensures a usable backend handle. It is idempotent: repeated
	// calls after a successful connect are no-ops.
	Connect(ctx context.Context) error

	// Close releases the backend handle. The datastore itself never calls it;
	// it exists for process shutdown and tests.
	Close() error

	// CreateIndexes provisions the dictionary index and, when configured, the
	// CRF corpus index. Existing indexes are not an error.
	CreateIndexes(ctx context.Context, opts *storagemodels.IndexOptions) error

	// DeleteIndex drops the dictionary index structurally: schema and all
	// documents. A missing index is not an error.
	DeleteIndex(ctx context.Context, opts *storagemodels.IndexOptions) error

	// IndexExists reports whether the dictionary index is present.
	IndexExists(ctx context.Context) (bool, error)

	// LiveIndex resolves the logical store name to the physical index
	// currently accepting writes. pinned is false when no pointer exists or
	// resolution failed, in which case name is the logical name itself.
	LiveIndex(ctx context.Context, logical string) (name string, pinned bool)

	// IndexRecords bulk-writes dictionary records into the given index.
	// Per-document failures are collected into an errors.BulkError; documents
	// in the same batch succeed or fail independently.
	IndexRecords(ctx context.Context, index string, records []storagemodels.EntityRecord, opts *storagemodels.IndexOptions) error

	// DeleteEntity removes every record of one entity from the given index
	// without dropping the index itself.
	DeleteEntity(ctx context.Context, index, entityName string, opts *storagemodels.IndexOptions) error

	// DeleteEntityData removes an entity's records matching the given values
	// from the given index. Nil values means every record of the entity.
	// A non-empty languageScript restricts the deletion to that script.
	DeleteEntityData(ctx context.Context, index, entityName string, values []string, languageScript string, opts *storagemodels.IndexOptions) error

	// GetEntityDictionary returns the exact value -> variants mapping of one
	// entity, across all languages.
	GetEntityDictionary(ctx context.Context, entityName string, opts *storagemodels.SearchOptions) (map[string][]string, error)

	// GetSimilarDictionary returns variants found in the corpus whose edit
	// distance from tokens of text is within the fuzziness policy, mapped to
	// their canonical values, in backend relevance order.
	GetSimilarDictionary(ctx context.Context, entityName, text string, fuzziness storagemodels.Fuzziness, languageScript string, opts *storagemodels.SearchOptions) ([]storagemodels.VariantMatch, error)

	// GetEntityUniqueValues returns the canonical values of one entity.
	GetEntityUniqueValues(ctx context.Context, entityName string, opts *storagemodels.SearchOptions) ([]string, error)

	// GetEntitySupportedLanguages returns the language-script tags present for
	// one entity.
	GetEntitySupportedLanguages(ctx context.Context, entityName string, opts *storagemodels.SearchOptions) ([]string, error)

	// GetEntityData returns full records of one entity, optionally filtered to
	// a value subset.
	GetEntityData(ctx context.Context, entityName string, values []string, opts *storagemodels.SearchOptions) ([]storagemodels.EntityRecord, error)

	// GetCRFData returns the training corpus of one entity.
	GetCRFData(ctx context.Context, entityName string, opts *storagemodels.SearchOptions) (*storagemodels.CRFData, error)

	// AddCRFRecords appends labeled training sentences to the CRF corpus.
	AddCRFRecords(ctx context.Context, records []storagemodels.CRFRecord, opts *storagemodels.IndexOptions) error

	// TransferEntities copies the named entities' dictionary records from the
	// job's source cluster to its destination. Entities succeed or fail
	// independently; the per-entity outcomes are always returned.
	TransferEntities(ctx context.Context, job storagemodels.TransferJob) ([]storagemodels.TransferResult, error)
}
