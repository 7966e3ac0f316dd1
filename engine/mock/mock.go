/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides a scriptable in-memory implementation of engine.Engine
// for testing the orchestration layer without a real backend.
package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/suparena/dictstore/errors"
	"github.com/suparena/dictstore/storagemodels"
)

// Engine is an in-memory engine.Engine. Records live in a map keyed by entity
// name; mutations record the physical index they were routed to so tests can
// assert live-index routing.
type Engine struct {
	mu      sync.RWMutex
	records map[string][]storagemodels.EntityRecord
	crf     map[string][]storagemodels.CRFRecord

	liveIndexes map[string]string
	// MutatedIndexes records, in call order, the physical index each mutation
	// primitive was asked to write to.
	mutatedIndexes []string
	calls          []string

	connectError  error
	indexError    error
	deleteError   error
	queryError    error
	crfError      error
	transferError error

	connected    bool
	connectCalls int
	indexExists  bool

	similarFunc func(entityName, text string, fuzziness storagemodels.Fuzziness, languageScript string) []storagemodels.VariantMatch
}

// New creates a mock engine with an existing, empty index.
func New() *Engine {
	return &Engine{
		records:     make(map[string][]storagemodels.EntityRecord),
		crf:         make(map[string][]storagemodels.CRFRecord),
		liveIndexes: make(map[string]string),
		indexExists: true,
	}
}

// WithConnectError makes Connect return an error.
func (m *Engine) WithConnectError(err error) *Engine {
	m.connectError = err
	return m
}

// WithIndexError makes bulk-write operations return an error.
func (m *Engine) WithIndexError(err error) *Engine {
	m.indexError = err
	return m
}

// WithDeleteError makes delete operations return an error.
func (m *Engine) WithDeleteError(err error) *Engine {
	m.deleteError = err
	return m
}

// WithQueryError makes query operations return an error.
func (m *Engine) WithQueryError(err error) *Engine {
	m.queryError = err
	return m
}

// WithCRFError makes CRF corpus operations return an error.
func (m *Engine) WithCRFError(err error) *Engine {
	m.crfError = err
	return m
}

// WithTransferError makes TransferEntities return an error.
func (m *Engine) WithTransferError(err error) *Engine {
	m.transferError = err
	return m
}

// WithLiveIndex pins a logical store name to a physical index.
func (m *Engine) WithLiveIndex(logical, physical string) *Engine {
	m.liveIndexes[logical] = physical
	return m
}

// WithIndexExists sets the IndexExists answer.
func (m *Engine) WithIndexExists(exists bool) *Engine {
	m.indexExists = exists
	return m
}

// WithSimilarFunc sets a custom fuzzy-search function.
func (m *Engine) WithSimilarFunc(f func(entityName, text string, fuzziness storagemodels.Fuzziness, languageScript string) []storagemodels.VariantMatch) *Engine {
	m.similarFunc = f
	return m
}

func (m *Engine) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *Engine) recordMutation(call, index string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
	m.mutatedIndexes = append(m.mutatedIndexes, index)
}

// Connect implements engine.Engine.
func (m *Engine) Connect(ctx context.Context) error {
	m.record("Connect")
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectCalls++
	if m.connectError != nil {
		return m.connectError
	}
	m.connected = true
	return nil
}

// Close implements engine.Engine.
func (m *Engine) Close() error {
	m.record("Close")
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connected = false
	return nil
}

// CreateIndexes implements engine.Engine.
func (m *Engine) CreateIndexes(ctx context.Context, opts *storagemodels.IndexOptions) error {
	m.record("CreateIndexes")
	if m.indexError != nil {
		return m.indexError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.indexExists = true
	return nil
}

// DeleteIndex implements engine.Engine.
func (m *Engine) DeleteIndex(ctx context.Context, opts *storagemodels.IndexOptions) error {
	m.record("DeleteIndex")
	if m.deleteError != nil {
		return m.deleteError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.indexExists = false
	m.records = make(map[string][]storagemodels.EntityRecord)
	return nil
}

// IndexExists implements engine.Engine.
func (m *Engine) IndexExists(ctx context.Context) (bool, error) {
	m.record("IndexExists")
	if m.queryError != nil {
		return false, m.queryError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.indexExists, nil
}

// LiveIndex implements engine.Engine.
func (m *Engine) LiveIndex(ctx context.Context, logical string) (string, bool) {
	m.record("LiveIndex")
	m.mu.RLock()
	defer m.mu.RUnlock()
	if physical, ok := m.liveIndexes[logical]; ok && physical != "" {
		return physical, true
	}
	return logical, false
}

// IndexRecords implements engine.Engine.
func (m *Engine) IndexRecords(ctx context.Context, index string, records []storagemodels.EntityRecord, opts *storagemodels.IndexOptions) error {
	m.recordMutation("IndexRecords", index)
	if m.indexError != nil {
		return m.indexError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range records {
		m.records[rec.EntityName] = append(m.records[rec.EntityName], rec)
	}
	return nil
}

// DeleteEntity implements engine.Engine.
func (m *Engine) DeleteEntity(ctx context.Context, index, entityName string, opts *storagemodels.IndexOptions) error {
	m.recordMutation("DeleteEntity", index)
	if m.deleteError != nil {
		return m.deleteError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, entityName)
	return nil
}

// DeleteEntityData implements engine.Engine.
func (m *Engine) DeleteEntityData(ctx context.Context, index, entityName string, values []string, languageScript string, opts *storagemodels.IndexOptions) error {
	m.recordMutation("DeleteEntityData", index)
	if m.deleteError != nil {
		return m.deleteError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	drop := func(rec storagemodels.EntityRecord) bool {
		if languageScript != "" && rec.LanguageScript != languageScript {
			return false
		}
		if len(values) == 0 {
			return true
		}
		for _, v := range values {
			if rec.Value == v {
				return true
			}
		}
		return false
	}

	var kept []storagemodels.EntityRecord
	for _, rec := range m.records[entityName] {
		if !drop(rec) {
			kept = append(kept, rec)
		}
	}
	if len(kept) == 0 {
		delete(m.records, entityName)
	} else {
		m.records[entityName] = kept
	}
	return nil
}

// GetEntityDictionary implements engine.Engine.
func (m *Engine) GetEntityDictionary(ctx context.Context, entityName string, opts *storagemodels.SearchOptions) (map[string][]string, error) {
	m.record("GetEntityDictionary")
	if m.queryError != nil {
		return nil, m.queryError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make(map[string][]string)
	for _, rec := range m.records[entityName] {
		result[rec.Value] = append(result[rec.Value], rec.Variants...)
	}
	return result, nil
}

// GetSimilarDictionary implements engine.Engine.
func (m *Engine) GetSimilarDictionary(ctx context.Context, entityName, text string, fuzziness storagemodels.Fuzziness, languageScript string, opts *storagemodels.SearchOptions) ([]storagemodels.VariantMatch, error) {
	m.record("GetSimilarDictionary")
	if m.queryError != nil {
		return nil, m.queryError
	}
	if m.similarFunc != nil {
		return m.similarFunc(entityName, text, fuzziness, languageScript), nil
	}
	return nil, nil
}

// GetEntityUniqueValues implements engine.Engine.
func (m *Engine) GetEntityUniqueValues(ctx context.Context, entityName string, opts *storagemodels.SearchOptions) ([]string, error) {
	m.record("GetEntityUniqueValues")
	if m.queryError != nil {
		return nil, m.queryError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[string]struct{})
	var values []string
	for _, rec := range m.records[entityName] {
		if _, dup := seen[rec.Value]; dup {
			continue
		}
		seen[rec.Value] = struct{}{}
		values = append(values, rec.Value)
	}
	return values, nil
}

// GetEntitySupportedLanguages implements engine.Engine.
func (m *Engine) GetEntitySupportedLanguages(ctx context.Context, entityName string, opts *storagemodels.SearchOptions) ([]string, error) {
	m.record("GetEntitySupportedLanguages")
	if m.queryError != nil {
		return nil, m.queryError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[string]struct{})
	var langs []string
	for _, rec := range m.records[entityName] {
		if _, dup := seen[rec.LanguageScript]; dup {
			continue
		}
		seen[rec.LanguageScript] = struct{}{}
		langs = append(langs, rec.LanguageScript)
	}
	return langs, nil
}

// GetEntityData implements engine.Engine.
func (m *Engine) GetEntityData(ctx context.Context, entityName string, values []string, opts *storagemodels.SearchOptions) ([]storagemodels.EntityRecord, error) {
	m.record("GetEntityData")
	if m.queryError != nil {
		return nil, m.queryError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(values) == 0 {
		return append([]storagemodels.EntityRecord(nil), m.records[entityName]...), nil
	}
	want := make(map[string]struct{}, len(values))
	for _, v := range values {
		want[v] = struct{}{}
	}
	var out []storagemodels.EntityRecord
	for _, rec := range m.records[entityName] {
		if _, ok := want[rec.Value]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

// GetCRFData implements engine.Engine.
func (m *Engine) GetCRFData(ctx context.Context, entityName string, opts *storagemodels.SearchOptions) (*storagemodels.CRFData, error) {
	m.record("GetCRFData")
	if m.crfError != nil {
		return nil, m.crfError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	data := &storagemodels.CRFData{}
	for _, rec := range m.crf[entityName] {
		data.Sentences = append(data.Sentences, rec.Sentence)
		data.Entities = append(data.Entities, rec.Entities)
	}
	return data, nil
}

// AddCRFRecords implements engine.Engine.
func (m *Engine) AddCRFRecords(ctx context.Context, records []storagemodels.CRFRecord, opts *storagemodels.IndexOptions) error {
	m.record("AddCRFRecords")
	if m.crfError != nil {
		return m.crfError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range records {
		m.crf[rec.EntityName] = append(m.crf[rec.EntityName], rec)
	}
	return nil
}

// TransferEntities implements engine.Engine.
func (m *Engine) TransferEntities(ctx context.Context, job storagemodels.TransferJob) ([]storagemodels.TransferResult, error) {
	m.record("TransferEntities")
	if m.transferError != nil {
		return nil, m.transferError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	results := make([]storagemodels.TransferResult, 0, len(job.EntityNames))
	for _, name := range job.EntityNames {
		recs, ok := m.records[name]
		if !ok {
			results = append(results, storagemodels.TransferResult{
				EntityName: name,
				Err:        errors.NewValidationError("entity", fmt.Sprintf("entity %q has no records", name)),
			})
			continue
		}
		results = append(results, storagemodels.TransferResult{EntityName: name, Records: len(recs)})
	}
	return results, nil
}

// Helper methods for assertions

// Calls returns the recorded call names in order.
func (m *Engine) Calls() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.calls...)
}

// MutationTargets returns the physical indexes mutations were routed to, in
// call order.
func (m *Engine) MutationTargets() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.mutatedIndexes...)
}

// ConnectCalls returns how many times Connect was invoked.
func (m *Engine) ConnectCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connectCalls
}

// RecordCount returns the number of stored records of one entity.
func (m *Engine) RecordCount(entityName string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records[entityName])
}

// SetRecords seeds the entity records directly.
func (m *Engine) SetRecords(entityName string, records []storagemodels.EntityRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[entityName] = records
}
