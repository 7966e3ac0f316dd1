/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package bleveengine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search"

	"github.com/suparena/dictstore/config"
	"github.com/suparena/dictstore/engine"
	storeerrors "github.com/suparena/dictstore/errors"
	"github.com/suparena/dictstore/storagemodels"
)

// Name is the engine name this implementation registers under.
const Name = config.EngineBleve

const (
	defaultSearchSize = 10000
	defaultBatchSize  = 500
	valueChunkSize    = 500
)

func init() {
	engine.Register(Name, func(settings config.EngineSettings, logger *slog.Logger) (engine.Engine, error) {
		return New(settings, logger)
	})
}

// Engine implements engine.Engine on top of embedded bleve indexes. The
// connection URL is a root directory; each physical index is a bleve index
// directory beneath it.
type Engine struct {
	settings config.EngineSettings
	logger   *slog.Logger

	mu        sync.Mutex
	connected bool
	indexes   map[string]bleve.Index
}

// New constructs a bleve engine. The connection is not opened until Connect.
func New(settings config.EngineSettings, logger *slog.Logger) (*Engine, error) {
	if settings.IndexName == "" {
		return nil, storeerrors.NewSettingsError("bleve engine needs an index name; set " + config.EnvIndexName)
	}
	if settings.ConnectionURL == "" {
		return nil, storeerrors.NewSettingsError("bleve engine needs a connection URL (root directory); set " + config.EnvConnectionURL)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		settings: settings,
		logger:   logger,
		indexes:  make(map[string]bleve.Index),
	}, nil
}

func (e *Engine) root() string { return e.settings.ConnectionURL }

// Connect ensures the engine root directory is usable. Idempotent.
func (e *Engine) Connect(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.connected {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(e.root(), 0o755); err != nil {
		return storeerrors.NewConnectionError(Name, err)
	}
	e.connected = true
	return nil
}

// Close closes every open index handle.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	var firstErr error
	for name, idx := range e.indexes {
		if err := idx.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close index %q: %w", name, err)
		}
		delete(e.indexes, name)
	}
	e.connected = false
	return firstErr
}

// openIndex returns an open handle for the physical index name, opening or
// (when create is set) creating the bleve index beneath the root. Handles are
// cached; bleve allows only one handle per index directory.
func (e *Engine) openIndex(name string, create bool, im mapping.IndexMapping) (bleve.Index, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if idx, ok := e.indexes[name]; ok {
		return idx, nil
	}

	path := filepath.Join(e.root(), name)
	idx, err := bleve.Open(path)
	if err == bleve.ErrorIndexPathDoesNotExist {
		if !create {
			return nil, fmt.Errorf("index %q does not exist", name)
		}
		idx, err = bleve.New(path, im)
	}
	if err != nil {
		return nil, fmt.Errorf("open index %q: %w", name, err)
	}

	e.indexes[name] = idx
	return idx, nil
}

// closeIndex drops a cached handle, if any.
func (e *Engine) closeIndex(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	idx, ok := e.indexes[name]
	if !ok {
		return nil
	}
	delete(e.indexes, name)
	return idx.Close()
}

// runSearch executes a search request under the per-call timeout.
func runSearch(ctx context.Context, idx bleve.Index, req *bleve.SearchRequest, timeout time.Duration) (*bleve.SearchResult, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return idx.SearchInContext(ctx, req)
}

func searchSize(opts *storagemodels.SearchOptions) int {
	if opts != nil && opts.Size > 0 {
		return opts.Size
	}
	return defaultSearchSize
}

func searchTimeout(opts *storagemodels.SearchOptions, settings config.EngineSettings) time.Duration {
	if opts != nil && opts.Timeout > 0 {
		return opts.Timeout
	}
	return settings.TimeoutOrDefault()
}

func batchSize(opts *storagemodels.IndexOptions) int {
	if opts != nil && opts.BatchSize > 0 {
		return opts.BatchSize
	}
	return defaultBatchSize
}

// fieldString extracts a single stored string field from a hit. Bleve returns
// stored fields as string or []interface{} depending on cardinality.
func fieldString(hit *search.DocumentMatch, name string) string {
	switch v := hit.Fields[name].(type) {
	case string:
		return v
	case []interface{}:
		if len(v) > 0 {
			if s, ok := v[0].(string); ok {
				return s
			}
		}
	}
	return ""
}

// fieldStrings extracts a stored string-array field from a hit.
func fieldStrings(hit *search.DocumentMatch, name string) []string {
	switch v := hit.Fields[name].(type) {
	case string:
		return []string{v}
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
