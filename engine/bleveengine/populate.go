/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package bleveengine

import (
	"context"
	"fmt"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/google/uuid"

	storeerrors "github.com/suparena/dictstore/errors"
	"github.com/suparena/dictstore/storagemodels"
)

// IndexRecords bulk-writes dictionary records into the given physical index,
// creating it when absent. Documents fail independently: failures are
// collected into a BulkError while the rest of the batch proceeds.
func (e *Engine) IndexRecords(ctx context.Context, index string, records []storagemodels.EntityRecord, opts *storagemodels.IndexOptions) error {
	if err := e.Connect(ctx); err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	im, err := dictionaryMapping(e.settings.DocType)
	if err != nil {
		return err
	}
	idx, err := e.openIndex(index, true, im)
	if err != nil {
		return err
	}

	var failures []storeerrors.DocumentError
	size := batchSize(opts)
	batch := idx.NewBatch()
	flush := func() error {
		if batch.Size() == 0 {
			return nil
		}
		if err := idx.Batch(batch); err != nil {
			return fmt.Errorf("bulk write to %q: %w", index, err)
		}
		batch = idx.NewBatch()
		return nil
	}

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		id := uuid.NewString()
		if rec.Value == "" {
			failures = append(failures, storeerrors.DocumentError{
				ID:         id,
				EntityName: rec.EntityName,
				Err:        storeerrors.NewValidationError("value", "must not be empty"),
			})
			continue
		}
		doc := map[string]interface{}{
			fieldEntityName:     rec.EntityName,
			fieldValue:          rec.Value,
			fieldVariants:       rec.Variants,
			fieldLanguageScript: rec.LanguageScript,
			fieldDocType:        e.settings.DocType,
		}
		if err := batch.Index(id, doc); err != nil {
			failures = append(failures, storeerrors.DocumentError{
				ID:         id,
				EntityName: rec.EntityName,
				Value:      rec.Value,
				Err:        err,
			})
			continue
		}
		if batch.Size() >= size {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := flush(); err != nil {
		return err
	}

	if len(failures) > 0 {
		e.logger.Warn("bulk write finished with per-document failures",
			"index", index, "attempted", len(records), "failed", len(failures))
		return &storeerrors.BulkError{Attempted: len(records), Failures: failures}
	}
	return nil
}

// DeleteEntity removes every record of one entity from the given index. The
// index structure is untouched.
func (e *Engine) DeleteEntity(ctx context.Context, index, entityName string, opts *storagemodels.IndexOptions) error {
	return e.DeleteEntityData(ctx, index, entityName, nil, "", opts)
}

// DeleteEntityData removes an entity's records matching the given values from
// the given index. Nil values clears the whole entity; a non-empty language
// script restricts the deletion to records of that script.
func (e *Engine) DeleteEntityData(ctx context.Context, index, entityName string, values []string, languageScript string, opts *storagemodels.IndexOptions) error {
	if err := e.Connect(ctx); err != nil {
		return err
	}

	im, err := dictionaryMapping(e.settings.DocType)
	if err != nil {
		return err
	}
	idx, err := e.openIndex(index, true, im)
	if err != nil {
		return err
	}

	var timeout = e.settings.TimeoutOrDefault()
	if opts != nil && opts.Timeout > 0 {
		timeout = opts.Timeout
	}

	queries := deletionQueries(entityName, values, languageScript)
	for _, q := range queries {
		if _, err := deleteByQuery(ctx, idx, q, timeout); err != nil {
			return fmt.Errorf("delete entity %q data from %q: %w", entityName, index, err)
		}
	}
	return nil
}

// deletionQueries builds one query per value chunk; large value lists are
// split so no single query carries an unbounded term set.
func deletionQueries(entityName string, values []string, languageScript string) []query.Query {
	base := func() *query.BooleanQuery {
		bq := bleve.NewBooleanQuery()
		bq.AddMust(termQuery(fieldEntityName, entityName))
		if languageScript != "" {
			bq.AddMust(termQuery(fieldLanguageScript, languageScript))
		}
		return bq
	}

	if len(values) == 0 {
		return []query.Query{base()}
	}

	var queries []query.Query
	for start := 0; start < len(values); start += valueChunkSize {
		end := start + valueChunkSize
		if end > len(values) {
			end = len(values)
		}
		dq := bleve.NewDisjunctionQuery()
		for _, v := range values[start:end] {
			dq.AddQuery(termQuery(fieldValue, v))
		}
		bq := base()
		bq.AddMust(dq)
		queries = append(queries, bq)
	}
	return queries
}

// deleteByQuery deletes every document matching q, looping until the query
// returns no hits. Returns the number of documents removed.
func deleteByQuery(ctx context.Context, idx bleve.Index, q query.Query, timeout time.Duration) (int, error) {
	deleted := 0
	for {
		req := bleve.NewSearchRequestOptions(q, defaultSearchSize, 0, false)
		res, err := runSearch(ctx, idx, req, timeout)
		if err != nil {
			return deleted, err
		}
		if len(res.Hits) == 0 {
			return deleted, nil
		}
		batch := idx.NewBatch()
		for _, hit := range res.Hits {
			batch.Delete(hit.ID)
		}
		if err := idx.Batch(batch); err != nil {
			return deleted, err
		}
		deleted += len(res.Hits)
	}
}

func termQuery(field, term string) *query.TermQuery {
	tq := bleve.NewTermQuery(term)
	tq.SetField(field)
	return tq
}
