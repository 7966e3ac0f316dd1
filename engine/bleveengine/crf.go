/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package bleveengine

import (
	"context"
	"fmt"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"

	"github.com/suparena/dictstore/config"
	storeerrors "github.com/suparena/dictstore/errors"
	"github.com/suparena/dictstore/storagemodels"
)

// GetCRFData returns the labeled training corpus of one entity as parallel
// sentence and entity-span lists.
func (e *Engine) GetCRFData(ctx context.Context, entityName string, opts *storagemodels.SearchOptions) (*storagemodels.CRFData, error) {
	if e.settings.CRFIndexName == "" {
		return nil, storeerrors.NewCRFNotConfiguredError(config.EnvCRFIndexName)
	}
	if err := e.Connect(ctx); err != nil {
		return nil, err
	}

	cm, err := crfMapping(e.settings.CRFDocType)
	if err != nil {
		return nil, err
	}
	idx, err := e.openIndex(e.settings.CRFIndexName, true, cm)
	if err != nil {
		return nil, fmt.Errorf("crf index: %w", err)
	}

	req := bleve.NewSearchRequestOptions(termQuery(fieldEntityName, entityName), searchSize(opts), 0, false)
	req.Fields = []string{fieldSentence, fieldEntities}
	res, err := runSearch(ctx, idx, req, searchTimeout(opts, e.settings))
	if err != nil {
		return nil, fmt.Errorf("fetch crf corpus for entity %q: %w", entityName, err)
	}

	data := &storagemodels.CRFData{}
	for _, hit := range res.Hits {
		data.Sentences = append(data.Sentences, fieldString(hit, fieldSentence))
		data.Entities = append(data.Entities, fieldStrings(hit, fieldEntities))
	}
	return data, nil
}

// AddCRFRecords appends labeled training sentences to the CRF corpus index,
// stamping each record with its ingestion time.
func (e *Engine) AddCRFRecords(ctx context.Context, records []storagemodels.CRFRecord, opts *storagemodels.IndexOptions) error {
	if e.settings.CRFIndexName == "" {
		return storeerrors.NewCRFNotConfiguredError(config.EnvCRFIndexName)
	}
	if err := e.Connect(ctx); err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	cm, err := crfMapping(e.settings.CRFDocType)
	if err != nil {
		return err
	}
	idx, err := e.openIndex(e.settings.CRFIndexName, true, cm)
	if err != nil {
		return fmt.Errorf("crf index: %w", err)
	}

	now := strfmt.DateTime(time.Now().UTC())
	var failures []storeerrors.DocumentError
	size := batchSize(opts)
	batch := idx.NewBatch()

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		id := uuid.NewString()
		if rec.Sentence == "" {
			failures = append(failures, storeerrors.DocumentError{
				ID:         id,
				EntityName: rec.EntityName,
				Err:        storeerrors.NewValidationError("sentence", "must not be empty"),
			})
			continue
		}
		ingestedAt := rec.IngestedAt
		if ingestedAt.String() == "" || time.Time(ingestedAt).IsZero() {
			ingestedAt = now
		}
		doc := map[string]interface{}{
			fieldEntityName:     rec.EntityName,
			fieldSentence:       rec.Sentence,
			fieldEntities:       rec.Entities,
			fieldLanguageScript: rec.LanguageScript,
			fieldIngestedAt:     ingestedAt.String(),
			fieldDocType:        e.settings.CRFDocType,
		}
		if err := batch.Index(id, doc); err != nil {
			failures = append(failures, storeerrors.DocumentError{
				ID:         id,
				EntityName: rec.EntityName,
				Err:        err,
			})
			continue
		}
		if batch.Size() >= size {
			if err := idx.Batch(batch); err != nil {
				return fmt.Errorf("bulk write to %q: %w", e.settings.CRFIndexName, err)
			}
			batch = idx.NewBatch()
		}
	}
	if batch.Size() > 0 {
		if err := idx.Batch(batch); err != nil {
			return fmt.Errorf("bulk write to %q: %w", e.settings.CRFIndexName, err)
		}
	}

	if len(failures) > 0 {
		e.logger.Warn("crf bulk write finished with per-document failures",
			"index", e.settings.CRFIndexName, "attempted", len(records), "failed", len(failures))
		return &storeerrors.BulkError{Attempted: len(records), Failures: failures}
	}
	return nil
}
