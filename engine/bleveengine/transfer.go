/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package bleveengine

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/google/uuid"

	"github.com/suparena/dictstore/config"
	storeerrors "github.com/suparena/dictstore/errors"
	"github.com/suparena/dictstore/storagemodels"
)

// TransferEntities copies the named entities' dictionary records from the
// source cluster root to the destination root. Entities succeed or fail
// independently; every entity gets a result even when the call errors early
// for a later one.
func (e *Engine) TransferEntities(ctx context.Context, job storagemodels.TransferJob) ([]storagemodels.TransferResult, error) {
	if err := e.Connect(ctx); err != nil {
		return nil, err
	}

	srcRoot := job.SourceURL
	if srcRoot == "" {
		srcRoot = e.settings.SourceURL
	}
	if srcRoot == "" {
		return nil, storeerrors.NewSettingsError("entity transfer needs a source URL; set " + config.EnvSourceURL)
	}

	dstRoot := job.DestinationURL
	if dstRoot == "" {
		dstRoot = e.settings.DestinationURL
	}
	if dstRoot == "" {
		return nil, storeerrors.NewSettingsError("entity transfer needs a destination URL; set " + config.EnvDestinationURL)
	}

	im, err := dictionaryMapping(e.settings.DocType)
	if err != nil {
		return nil, err
	}

	src, releaseSrc, err := e.indexHandleAt(srcRoot, e.settings.IndexName, false, nil)
	if err != nil {
		return nil, fmt.Errorf("open transfer source: %w", err)
	}
	defer releaseSrc()

	dst, releaseDst, err := e.indexHandleAt(dstRoot, e.settings.IndexName, true, im)
	if err != nil {
		return nil, fmt.Errorf("open transfer destination: %w", err)
	}
	defer releaseDst()

	timeout := e.settings.TimeoutOrDefault()
	results := make([]storagemodels.TransferResult, 0, len(job.EntityNames))
	for _, name := range job.EntityNames {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		n, err := e.transferEntity(ctx, src, dst, name, timeout)
		if err != nil {
			e.logger.Warn("entity transfer failed", "entity", name, "error", err)
		} else {
			e.logger.Info("entity transferred", "entity", name, "records", n)
		}
		results = append(results, storagemodels.TransferResult{
			EntityName: name,
			Records:    n,
			Err:        err,
		})
	}
	return results, nil
}

// transferEntity replaces the entity's records in dst with those read from src.
func (e *Engine) transferEntity(ctx context.Context, src, dst bleve.Index, entityName string, timeout time.Duration) (int, error) {
	records, err := entityRecords(ctx, src, entityName, nil, defaultSearchSize, timeout)
	if err != nil {
		return 0, fmt.Errorf("read source records: %w", err)
	}
	if len(records) == 0 {
		return 0, fmt.Errorf("entity %q has no records at the source", entityName)
	}

	// Stale destination records of the entity are dropped first so the
	// transfer is a replacement, not an accumulation.
	if _, err := deleteByQuery(ctx, dst, termQuery(fieldEntityName, entityName), timeout); err != nil {
		return 0, fmt.Errorf("clear destination records: %w", err)
	}

	batch := dst.NewBatch()
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		doc := map[string]interface{}{
			fieldEntityName:     rec.EntityName,
			fieldValue:          rec.Value,
			fieldVariants:       rec.Variants,
			fieldLanguageScript: rec.LanguageScript,
			fieldDocType:        e.settings.DocType,
		}
		if err := batch.Index(uuid.NewString(), doc); err != nil {
			return 0, fmt.Errorf("stage record for value %q: %w", rec.Value, err)
		}
		if batch.Size() >= defaultBatchSize {
			if err := dst.Batch(batch); err != nil {
				return 0, fmt.Errorf("write destination records: %w", err)
			}
			batch = dst.NewBatch()
		}
	}
	if batch.Size() > 0 {
		if err := dst.Batch(batch); err != nil {
			return 0, fmt.Errorf("write destination records: %w", err)
		}
	}
	return len(records), nil
}

// indexHandleAt opens the named index under an arbitrary root directory. When
// the root is this engine's own, the cached handle is reused (bleve allows one
// handle per index directory); otherwise a standalone handle is opened and the
// release callback closes it.
func (e *Engine) indexHandleAt(root, name string, create bool, im mapping.IndexMapping) (bleve.Index, func(), error) {
	if filepath.Clean(root) == filepath.Clean(e.root()) {
		idx, err := e.openIndex(name, create, im)
		if err != nil {
			return nil, nil, err
		}
		return idx, func() {}, nil
	}

	path := filepath.Join(root, name)
	idx, err := bleve.Open(path)
	if err == bleve.ErrorIndexPathDoesNotExist {
		if !create {
			return nil, nil, fmt.Errorf("index %q does not exist under %q", name, root)
		}
		idx, err = bleve.New(path, im)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open index %q under %q: %w", name, root, err)
	}
	release := func() {
		if err := idx.Close(); err != nil {
			e.logger.Warn("closing transfer index failed", "path", path, "error", err)
		}
	}
	return idx, release, nil
}
