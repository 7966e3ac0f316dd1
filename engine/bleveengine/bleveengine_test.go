/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package bleveengine

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/dictstore/config"
	storeerrors "github.com/suparena/dictstore/errors"
	"github.com/suparena/dictstore/storagemodels"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSettings(root string) config.EngineSettings {
	return config.EngineSettings{
		IndexName:     "entity_data",
		DocType:       "data_dictionary",
		CRFIndexName:  "entity_examples",
		CRFDocType:    "training_dictionary",
		ConnectionURL: root,
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(testSettings(t.TempDir()), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func cityRecords() []storagemodels.EntityRecord {
	return []storagemodels.EntityRecord{
		{
			EntityName:     "city",
			Value:          "Mumbai",
			Variants:       []string{"mumbai", "bombay"},
			LanguageScript: "en",
		},
		{
			EntityName:     "city",
			Value:          "New Delhi",
			Variants:       []string{"new delhi", "delhi", "dilli"},
			LanguageScript: "en",
		},
		{
			EntityName:     "city",
			Value:          "Santiago",
			Variants:       []string{"santiago", "stgo"},
			LanguageScript: "en",
		},
	}
}

func seed(t *testing.T, e *Engine) {
	t.Helper()
	require.NoError(t, e.IndexRecords(context.Background(), e.settings.IndexName, cityRecords(), nil))
}

func TestNewValidatesSettings(t *testing.T) {
	s := testSettings(t.TempDir())
	s.IndexName = ""
	_, err := New(s, testLogger())
	require.Error(t, err)
	assert.True(t, storeerrors.IsSettingsMisconfigured(err))

	s = testSettings("")
	_, err = New(s, testLogger())
	require.Error(t, err)
	assert.True(t, storeerrors.IsSettingsMisconfigured(err))
}

func TestIndexLifecycle(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	exists, err := e.IndexExists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, e.CreateIndexes(ctx, nil))
	exists, err = e.IndexExists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)

	// Provisioning again must not fail.
	require.NoError(t, e.CreateIndexes(ctx, nil))

	require.NoError(t, e.DeleteIndex(ctx, nil))
	exists, err = e.IndexExists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting a missing index must not fail either.
	require.NoError(t, e.DeleteIndex(ctx, nil))
}

func TestIndexRecordsAndDictionary(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	seed(t, e)

	dict, err := e.GetEntityDictionary(ctx, "city", nil)
	require.NoError(t, err)
	require.Len(t, dict, 3)
	assert.ElementsMatch(t, []string{"mumbai", "bombay"}, dict["Mumbai"])
	assert.ElementsMatch(t, []string{"new delhi", "delhi", "dilli"}, dict["New Delhi"])

	values, err := e.GetEntityUniqueValues(ctx, "city", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mumbai", "New Delhi", "Santiago"}, values)

	langs, err := e.GetEntitySupportedLanguages(ctx, "city", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"en"}, langs)

	// Unknown entities yield empty results, not errors.
	dict, err = e.GetEntityDictionary(ctx, "vehicle", nil)
	require.NoError(t, err)
	assert.Empty(t, dict)
}

func TestIndexRecordsCollectsDocumentFailures(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	records := []storagemodels.EntityRecord{
		{EntityName: "city", Value: "Mumbai", Variants: []string{"mumbai"}, LanguageScript: "en"},
		{EntityName: "city", Variants: []string{"ghost"}, LanguageScript: "en"},
	}
	err := e.IndexRecords(ctx, e.settings.IndexName, records, nil)
	require.Error(t, err)

	be, ok := storeerrors.AsBulkError(err)
	require.True(t, ok)
	assert.Equal(t, 2, be.Attempted)
	require.Len(t, be.Failures, 1)
	assert.Equal(t, "city", be.Failures[0].EntityName)

	// The valid document of the same batch must have landed.
	values, err := e.GetEntityUniqueValues(ctx, "city", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mumbai"}, values)
}

func TestGetEntityDataValueFilter(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	seed(t, e)

	records, err := e.GetEntityData(ctx, "city", []string{"Mumbai", "Santiago"}, nil)
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, rec := range records {
		assert.Equal(t, "city", rec.EntityName)
		assert.Contains(t, []string{"Mumbai", "Santiago"}, rec.Value)
	}

	all, err := e.GetEntityData(ctx, "city", nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDeleteEntityDataByValues(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	seed(t, e)

	err := e.DeleteEntityData(ctx, e.settings.IndexName, "city", []string{"Mumbai"}, "en", nil)
	require.NoError(t, err)

	values, err := e.GetEntityUniqueValues(ctx, "city", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"New Delhi", "Santiago"}, values)

	// A mismatched language script must leave records untouched.
	err = e.DeleteEntityData(ctx, e.settings.IndexName, "city", []string{"Santiago"}, "es", nil)
	require.NoError(t, err)
	values, err = e.GetEntityUniqueValues(ctx, "city", nil)
	require.NoError(t, err)
	assert.Contains(t, values, "Santiago")
}

func TestDeleteEntity(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	seed(t, e)
	require.NoError(t, e.IndexRecords(ctx, e.settings.IndexName, []storagemodels.EntityRecord{
		{EntityName: "restaurant", Value: "Barbeque Nation", Variants: []string{"barbeque nation"}, LanguageScript: "en"},
	}, nil))

	require.NoError(t, e.DeleteEntity(ctx, e.settings.IndexName, "city", nil))

	values, err := e.GetEntityUniqueValues(ctx, "city", nil)
	require.NoError(t, err)
	assert.Empty(t, values)

	// Other entities in the same index survive.
	values, err = e.GetEntityUniqueValues(ctx, "restaurant", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Barbeque Nation"}, values)
}

func TestGetSimilarDictionaryFuzzy(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	seed(t, e)

	matches, err := e.GetSimilarDictionary(ctx, "city", "mumbi", storagemodels.DefaultFuzziness, "en", nil)
	require.NoError(t, err)
	require.NotEmpty(t, matches)

	byVariant := map[string]string{}
	for _, m := range matches {
		byVariant[m.Variant] = m.Value
	}
	assert.Equal(t, "Mumbai", byVariant["mumbai"])
	// "bombay" shares a record with "mumbai" but is out of edit range of the query.
	assert.NotContains(t, byVariant, "bombay")
}

func TestGetSimilarDictionaryMultiToken(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	seed(t, e)

	matches, err := e.GetSimilarDictionary(ctx, "city", "new delhi", storagemodels.DefaultFuzziness, "en", nil)
	require.NoError(t, err)

	byVariant := map[string]string{}
	for _, m := range matches {
		byVariant[m.Variant] = m.Value
	}
	assert.Equal(t, "New Delhi", byVariant["new delhi"])
	assert.Equal(t, "New Delhi", byVariant["delhi"])
}

func TestGetSimilarDictionaryExact(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	seed(t, e)

	exact := storagemodels.FixedFuzziness(0)

	matches, err := e.GetSimilarDictionary(ctx, "city", "stgo", exact, "en", nil)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "stgo", matches[0].Variant)
	assert.Equal(t, "Santiago", matches[0].Value)

	matches, err = e.GetSimilarDictionary(ctx, "city", "stg", exact, "en", nil)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestGetSimilarDictionaryEmptyText(t *testing.T) {
	e := newTestEngine(t)
	seed(t, e)

	matches, err := e.GetSimilarDictionary(context.Background(), "city", "  ,. ", storagemodels.DefaultFuzziness, "en", nil)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestLiveIndexPointer(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	require.NoError(t, e.Connect(ctx))

	name, pinned := e.LiveIndex(ctx, "entity_data")
	assert.Equal(t, "entity_data", name)
	assert.False(t, pinned)

	require.NoError(t, e.SetLiveIndex("entity_data", "entity_data_v2"))
	name, pinned = e.LiveIndex(ctx, "entity_data")
	assert.Equal(t, "entity_data_v2", name)
	assert.True(t, pinned)

	require.NoError(t, e.SetLiveIndex("entity_data", ""))
	name, pinned = e.LiveIndex(ctx, "entity_data")
	assert.Equal(t, "entity_data", name)
	assert.False(t, pinned)

	// Removing an absent pointer is fine.
	require.NoError(t, e.SetLiveIndex("entity_data", ""))
}

func TestCRFCorpus(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	records := []storagemodels.CRFRecord{
		{
			EntityName:     "city",
			Sentence:       "book a flight from mumbai to delhi",
			Entities:       []string{"mumbai", "delhi"},
			LanguageScript: "en",
		},
		{
			EntityName:     "city",
			Sentence:       "weather in santiago today",
			Entities:       []string{"santiago"},
			LanguageScript: "en",
		},
	}
	require.NoError(t, e.AddCRFRecords(ctx, records, nil))

	data, err := e.GetCRFData(ctx, "city", nil)
	require.NoError(t, err)
	require.Len(t, data.Sentences, 2)
	require.Len(t, data.Entities, 2)

	// Hit order is not guaranteed; check the sentence/entities pairing instead.
	paired := map[string][]string{}
	for i, s := range data.Sentences {
		paired[s] = data.Entities[i]
	}
	assert.ElementsMatch(t, []string{"mumbai", "delhi"}, paired["book a flight from mumbai to delhi"])
	assert.ElementsMatch(t, []string{"santiago"}, paired["weather in santiago today"])
}

func TestCRFNotConfigured(t *testing.T) {
	s := testSettings(t.TempDir())
	s.CRFIndexName = ""
	e, err := New(s, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })

	_, err = e.GetCRFData(context.Background(), "city", nil)
	require.Error(t, err)
	assert.True(t, storeerrors.IsCRFNotConfigured(err))

	err = e.AddCRFRecords(context.Background(), []storagemodels.CRFRecord{{EntityName: "city", Sentence: "x"}}, nil)
	require.Error(t, err)
	assert.True(t, storeerrors.IsCRFNotConfigured(err))
}

func TestTransferEntities(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	seed(t, e)

	destRoot := t.TempDir()
	results, err := e.TransferEntities(ctx, storagemodels.TransferJob{
		SourceURL:      e.settings.ConnectionURL,
		DestinationURL: destRoot,
		EntityNames:    []string{"city", "vehicle"},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "city", results[0].EntityName)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, 3, results[0].Records)

	// Entities absent at the source fail individually without aborting the job.
	assert.Equal(t, "vehicle", results[1].EntityName)
	assert.Error(t, results[1].Err)

	dest, err := New(testSettings(destRoot), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = dest.Close() })

	values, err := dest.GetEntityUniqueValues(ctx, "city", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mumbai", "New Delhi", "Santiago"}, values)
}

func TestTransferEntitiesNeedsSource(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.TransferEntities(context.Background(), storagemodels.TransferJob{
		DestinationURL: t.TempDir(),
		EntityNames:    []string{"city"},
	})
	require.Error(t, err)
	assert.True(t, storeerrors.IsSettingsMisconfigured(err))
}

func TestTransferEntitiesNeedsDestination(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.TransferEntities(context.Background(), storagemodels.TransferJob{
		SourceURL:   e.settings.ConnectionURL,
		EntityNames: []string{"city"},
	})
	require.Error(t, err)
	assert.True(t, storeerrors.IsSettingsMisconfigured(err))
}
