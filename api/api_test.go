/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/dictstore"
	"github.com/suparena/dictstore/config"
	"github.com/suparena/dictstore/engine/mock"
	"github.com/suparena/dictstore/storagemodels"
)

func newTestServer(t *testing.T, m *mock.Engine, crfConfigured bool) *httptest.Server {
	t.Helper()

	settings := config.EngineSettings{
		IndexName:     "entity_data",
		DocType:       "data_dictionary",
		ConnectionURL: t.TempDir(),
	}
	if crfConfigured {
		settings.CRFIndexName = "entity_examples"
		settings.CRFDocType = "training_dictionary"
	}
	cfg := &config.StoreConfig{
		Engine:  config.EngineBleve,
		Engines: map[string]config.EngineSettings{config.EngineBleve: settings},
	}

	store, err := dictstore.New(cfg, dictstore.WithEngine(m))
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(NewServer(store, logger).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (int, response) {
	t.Helper()
	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()

	var body response
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	return res.StatusCode, body
}

func seededMock() *mock.Engine {
	m := mock.New()
	m.SetRecords("city", []storagemodels.EntityRecord{
		{EntityName: "city", Value: "Mumbai", Variants: []string{"mumbai", "bombay"}, LanguageScript: "en"},
	})
	return m
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, mock.New(), true)
	status, body := get(t, srv.URL+"/health")
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, body.Success)
}

func TestDictionaryEndpoint(t *testing.T) {
	srv := newTestServer(t, seededMock(), true)
	status, body := get(t, srv.URL+"/v1/entities/city/dictionary")
	require.Equal(t, http.StatusOK, status)
	require.True(t, body.Success)

	dict, ok := body.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, dict, "Mumbai")
}

func TestValuesEndpoint(t *testing.T) {
	srv := newTestServer(t, seededMock(), true)
	status, body := get(t, srv.URL+"/v1/entities/city/values")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []interface{}{"Mumbai"}, body.Data)
}

func TestSimilarEndpointRequiresText(t *testing.T) {
	srv := newTestServer(t, seededMock(), true)
	status, body := get(t, srv.URL+"/v1/entities/city/similar")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, body.Success)
	assert.NotEmpty(t, body.Error)
}

func TestSimilarEndpointRejectsBadFuzziness(t *testing.T) {
	srv := newTestServer(t, seededMock(), true)
	status, _ := get(t, srv.URL+"/v1/entities/city/similar?text=mumbi&fuzziness=banana")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSimilarEndpoint(t *testing.T) {
	m := seededMock().WithSimilarFunc(func(entityName, text string, fuzziness storagemodels.Fuzziness, languageScript string) []storagemodels.VariantMatch {
		return []storagemodels.VariantMatch{{Variant: "mumbai", Value: "Mumbai", Score: 1.5}}
	})
	srv := newTestServer(t, m, true)

	status, body := get(t, srv.URL+"/v1/entities/city/similar?text=mumbi&fuzziness=auto:4,7&language=en")
	require.Equal(t, http.StatusOK, status)
	matches, ok := body.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, matches, 1)
}

func TestCRFEndpointUnconfigured(t *testing.T) {
	srv := newTestServer(t, seededMock(), false)
	status, body := get(t, srv.URL+"/v1/entities/city/crf")
	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, body.Success)
}

func TestDataEndpointValueFilter(t *testing.T) {
	srv := newTestServer(t, seededMock(), true)
	status, body := get(t, srv.URL+"/v1/entities/city/data?values=Mumbai")
	require.Equal(t, http.StatusOK, status)
	records, ok := body.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, records, 1)

	status, body = get(t, srv.URL+"/v1/entities/city/data?values=Paris")
	require.Equal(t, http.StatusOK, status)
	records, _ = body.Data.([]interface{})
	assert.Empty(t, records)
}
