/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package bleveengine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/suparena/dictstore/storagemodels"
)

// CreateIndexes provisions the dictionary index and, when a CRF index is
// configured, the CRF corpus index. Repeated provisioning during deploys is
// expected, so an index that already exists is success.
func (e *Engine) CreateIndexes(ctx context.Context, opts *storagemodels.IndexOptions) error {
	if err := e.Connect(ctx); err != nil {
		return err
	}

	im, err := dictionaryMapping(e.settings.DocType)
	if err != nil {
		return err
	}
	if _, err := e.openIndex(e.settings.IndexName, true, im); err != nil {
		return fmt.Errorf("create dictionary index: %w", err)
	}
	e.logger.Debug("dictionary index ready",
		"index", e.settings.IndexName, "doc_type", e.settings.DocType)

	if e.settings.CRFIndexName == "" {
		return nil
	}
	cm, err := crfMapping(e.settings.CRFDocType)
	if err != nil {
		return err
	}
	if _, err := e.openIndex(e.settings.CRFIndexName, true, cm); err != nil {
		return fmt.Errorf("create crf index: %w", err)
	}
	e.logger.Debug("crf index ready",
		"index", e.settings.CRFIndexName, "doc_type", e.settings.CRFDocType)
	return nil
}

// DeleteIndex drops the dictionary index: schema and all documents. A missing
// index is success.
func (e *Engine) DeleteIndex(ctx context.Context, opts *storagemodels.IndexOptions) error {
	if err := e.Connect(ctx); err != nil {
		return err
	}

	if err := e.closeIndex(e.settings.IndexName); err != nil {
		e.logger.Warn("closing dictionary index before delete failed",
			"index", e.settings.IndexName, "error", err)
	}

	path := filepath.Join(e.root(), e.settings.IndexName)
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("delete dictionary index: %w", err)
	}
	return nil
}

// IndexExists reports whether the dictionary index is present on disk.
func (e *Engine) IndexExists(ctx context.Context) (bool, error) {
	if err := e.Connect(ctx); err != nil {
		return false, err
	}

	// An index directory without its metadata file is an incomplete create,
	// not a live index.
	meta := filepath.Join(e.root(), e.settings.IndexName, "index_meta.json")
	if _, err := os.Stat(meta); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat index %q: %w", e.settings.IndexName, err)
	}
	return true, nil
}
