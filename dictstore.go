/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dictstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/suparena/dictstore/config"
	"github.com/suparena/dictstore/engine"
	"github.com/suparena/dictstore/entitydata"
	storeerrors "github.com/suparena/dictstore/errors"
	"github.com/suparena/dictstore/storagemodels"
)

// DataStore is the public surface of the entity-dictionary store. It binds a
// configuration to one engine instance and routes every operation through it.
// Construct one per configuration with New; it is safe for concurrent use when
// the underlying engine is.
type DataStore struct {
	cfg      *config.StoreConfig
	settings config.EngineSettings
	engine   engine.Engine
	logger   *slog.Logger
}

// Option customizes a DataStore at construction.
type Option func(*DataStore)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(d *DataStore) { d.logger = logger }
}

// WithEngine injects a pre-built engine instead of constructing one from the
// registry. Intended for tests and embedders with custom engines.
func WithEngine(e engine.Engine) Option {
	return func(d *DataStore) { d.engine = e }
}

// New builds a DataStore from the configuration. The engine name must be set
// and carry settings; an engine without a registered factory yields an
// engine-not-implemented error. No backend connection is made here: engines
// connect lazily on first use.
func New(cfg *config.StoreConfig, opts ...Option) (*DataStore, error) {
	if cfg == nil || cfg.Engine == "" {
		return nil, storeerrors.NewSettingsError("no engine selected; set " + config.EnvEngine)
	}
	settings, ok := cfg.Settings()
	if !ok {
		return nil, storeerrors.NewSettingsError(fmt.Sprintf("no settings for engine %q", cfg.Engine))
	}

	d := &DataStore{
		cfg:      cfg,
		settings: settings,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.engine == nil {
		eng, err := engine.New(cfg.Engine, settings, d.logger)
		if err != nil {
			return nil, err
		}
		d.engine = eng
	}
	return d, nil
}

// Close releases the engine's backend handle.
func (d *DataStore) Close() error {
	return d.engine.Close()
}

// requireDocTypes checks the configuration pieces structural operations need.
func (d *DataStore) requireDocTypes() error {
	if d.settings.DocType == "" {
		return storeerrors.NewSettingsError("dictionary doc type missing; set " + config.EnvDocType)
	}
	if d.settings.CRFIndexName != "" && d.settings.CRFDocType == "" {
		return storeerrors.NewSettingsError("crf doc type missing; set " + config.EnvCRFDocType)
	}
	return nil
}

func (d *DataStore) requireCRF() error {
	if d.settings.CRFIndexName == "" {
		return storeerrors.NewCRFNotConfiguredError(config.EnvCRFIndexName)
	}
	if d.settings.CRFDocType == "" {
		return storeerrors.NewSettingsError("crf doc type missing; set " + config.EnvCRFDocType)
	}
	return nil
}

// liveIndex resolves the physical index mutations must target. During a
// rebuild the pointer pins writes to the fresh index; otherwise the logical
// name is used directly.
func (d *DataStore) liveIndex(ctx context.Context) string {
	name, pinned := d.engine.LiveIndex(ctx, d.settings.IndexName)
	if pinned {
		d.logger.Debug("mutation routed through live index pointer",
			"logical", d.settings.IndexName, "physical", name)
	}
	return name
}

// Create provisions the dictionary index and, when configured, the CRF corpus
// index. Indexes that already exist are left as they are.
func (d *DataStore) Create(ctx context.Context, opts *storagemodels.IndexOptions) error {
	if err := d.requireDocTypes(); err != nil {
		return err
	}
	return d.engine.CreateIndexes(ctx, opts)
}

// Delete drops the dictionary index. A missing index is success.
func (d *DataStore) Delete(ctx context.Context, opts *storagemodels.IndexOptions) error {
	return d.engine.DeleteIndex(ctx, opts)
}

// Exists reports whether the dictionary index is present. When the engine
// cannot answer, the failure is logged and Exists reports false rather than
// erroring, so callers can treat the answer as "not usable".
func (d *DataStore) Exists(ctx context.Context) bool {
	exists, err := d.engine.IndexExists(ctx)
	if err != nil {
		d.logger.Warn("index existence check failed", "error", err)
		return false
	}
	return exists
}

// Populate loads entity CSV files from dir plus any explicitly named files and
// bulk-writes their records into the configured dictionary index. Documents
// fail independently; per-document failures surface as an errors.BulkError
// while the rest of the data lands.
func (d *DataStore) Populate(ctx context.Context, dir string, files []string, opts *storagemodels.IndexOptions) error {
	if err := d.requireDocTypes(); err != nil {
		return err
	}
	records, err := entitydata.LoadAll(dir, files)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		d.logger.Warn("no entity records found to populate", "dir", dir, "files", len(files))
		return nil
	}
	d.logger.Info("populating dictionary index",
		"index", d.settings.IndexName, "records", len(records))
	return d.engine.IndexRecords(ctx, d.settings.IndexName, records, opts)
}

// Repopulate rebuilds the dictionary index from scratch: delete, create,
// populate. The steps are not transactional; a populate failure leaves a
// freshly created, partially filled index behind.
func (d *DataStore) Repopulate(ctx context.Context, dir string, files []string, opts *storagemodels.IndexOptions) error {
	if err := d.Delete(ctx, opts); err != nil {
		return fmt.Errorf("repopulate: %w", err)
	}
	if err := d.Create(ctx, opts); err != nil {
		return fmt.Errorf("repopulate: %w", err)
	}
	return d.Populate(ctx, dir, files, opts)
}

// DeleteEntity removes every record of one entity from the live index.
func (d *DataStore) DeleteEntity(ctx context.Context, entityName string) error {
	if entityName == "" {
		return storeerrors.NewValidationError("entityName", "must not be empty")
	}
	return d.engine.DeleteEntity(ctx, d.liveIndex(ctx), entityName, nil)
}

// AddEntityData appends records to one entity in the live index. Each record
// is stamped with the entity name and guaranteed to carry its canonical value
// among its variants.
func (d *DataStore) AddEntityData(ctx context.Context, entityName string, records []storagemodels.EntityRecord) error {
	if entityName == "" {
		return storeerrors.NewValidationError("entityName", "must not be empty")
	}
	if len(records) == 0 {
		return nil
	}
	prepared := make([]storagemodels.EntityRecord, 0, len(records))
	for _, rec := range records {
		rec.EntityName = entityName
		prepared = append(prepared, rec.WithSelfVariant())
	}
	return d.engine.IndexRecords(ctx, d.liveIndex(ctx), prepared, nil)
}

// UpdateEntityData upserts records by canonical value within one language
// script: records of the entity whose value appears in the replacement set are
// deleted in that script, then the replacements are written. Both steps target
// the live index.
func (d *DataStore) UpdateEntityData(ctx context.Context, entityName string, records []storagemodels.EntityRecord, languageScript string) error {
	if entityName == "" {
		return storeerrors.NewValidationError("entityName", "must not be empty")
	}
	if len(records) == 0 {
		return nil
	}

	index := d.liveIndex(ctx)
	values := make([]string, 0, len(records))
	prepared := make([]storagemodels.EntityRecord, 0, len(records))
	for _, rec := range records {
		rec.EntityName = entityName
		if languageScript != "" {
			rec.LanguageScript = languageScript
		}
		values = append(values, rec.Value)
		prepared = append(prepared, rec.WithSelfVariant())
	}

	if err := d.engine.DeleteEntityData(ctx, index, entityName, values, languageScript, nil); err != nil {
		return fmt.Errorf("update entity %q: %w", entityName, err)
	}
	return d.engine.IndexRecords(ctx, index, prepared, nil)
}

// DeleteEntityDataByValues removes the entity's records with the given values
// from the live index. Nil values wipes every record of the entity.
func (d *DataStore) DeleteEntityDataByValues(ctx context.Context, entityName string, values []string) error {
	if entityName == "" {
		return storeerrors.NewValidationError("entityName", "must not be empty")
	}
	return d.engine.DeleteEntityData(ctx, d.liveIndex(ctx), entityName, values, "", nil)
}

// GetEntityDictionary returns the value -> variants mapping of one entity
// across all language scripts.
func (d *DataStore) GetEntityDictionary(ctx context.Context, entityName string) (map[string][]string, error) {
	return d.engine.GetEntityDictionary(ctx, entityName, nil)
}

// GetSimilarDictionary returns variants similar to text under the fuzziness
// policy, mapped to their canonical values, in backend relevance order. The
// zero Fuzziness means the default policy.
func (d *DataStore) GetSimilarDictionary(ctx context.Context, entityName, text string, fuzziness storagemodels.Fuzziness, languageScript string) ([]storagemodels.VariantMatch, error) {
	if fuzziness.IsZero() {
		fuzziness = storagemodels.DefaultFuzziness
	}
	return d.engine.GetSimilarDictionary(ctx, entityName, text, fuzziness, languageScript, nil)
}

// GetEntityUniqueValues returns the canonical values of one entity.
func (d *DataStore) GetEntityUniqueValues(ctx context.Context, entityName string) ([]string, error) {
	return d.engine.GetEntityUniqueValues(ctx, entityName, nil)
}

// GetEntitySupportedLanguages returns the language scripts present for one
// entity.
func (d *DataStore) GetEntitySupportedLanguages(ctx context.Context, entityName string) ([]string, error) {
	return d.engine.GetEntitySupportedLanguages(ctx, entityName, nil)
}

// GetEntityData returns full records of one entity, optionally filtered to a
// value subset.
func (d *DataStore) GetEntityData(ctx context.Context, entityName string, values []string) ([]storagemodels.EntityRecord, error) {
	return d.engine.GetEntityData(ctx, entityName, values, nil)
}

// GetCRFDataForEntityName returns the labeled training corpus of one entity.
// Deployments without a CRF index get a resource-not-configured error;
// dictionary operations are unaffected.
func (d *DataStore) GetCRFDataForEntityName(ctx context.Context, entityName string) (*storagemodels.CRFData, error) {
	if err := d.requireCRF(); err != nil {
		return nil, err
	}
	return d.engine.GetCRFData(ctx, entityName, nil)
}

// UpdateEntityCRFData appends labeled training sentences for one entity.
// sentences and entityLists are parallel: entityLists[i] holds the entity
// spans occurring in sentences[i].
func (d *DataStore) UpdateEntityCRFData(ctx context.Context, entityName string, entityLists [][]string, languageScript string, sentences []string) error {
	if entityName == "" {
		return storeerrors.NewValidationError("entityName", "must not be empty")
	}
	if len(entityLists) != len(sentences) {
		return storeerrors.NewValidationError("sentences",
			fmt.Sprintf("got %d sentences for %d entity lists", len(sentences), len(entityLists)))
	}
	if err := d.requireCRF(); err != nil {
		return err
	}

	records := make([]storagemodels.CRFRecord, 0, len(sentences))
	for i, sentence := range sentences {
		records = append(records, storagemodels.CRFRecord{
			EntityName:     entityName,
			Sentence:       sentence,
			Entities:       entityLists[i],
			LanguageScript: languageScript,
		})
	}
	return d.engine.AddCRFRecords(ctx, records, nil)
}

// TransferEntities copies the named entities from the configured source
// cluster to the destination cluster. Only the bleve engine supports it;
// entities succeed or fail independently and every entity gets a result.
func (d *DataStore) TransferEntities(ctx context.Context, entityNames []string) ([]storagemodels.TransferResult, error) {
	if d.cfg.Engine != config.EngineBleve {
		return nil, storeerrors.NewTransferNotSupportedError(d.cfg.Engine)
	}
	if len(entityNames) == 0 {
		return nil, storeerrors.NewValidationError("entityNames", "must not be empty")
	}
	job := storagemodels.TransferJob{
		SourceURL:      d.settings.SourceURL,
		DestinationURL: d.settings.DestinationURL,
		EntityNames:    entityNames,
	}
	return d.engine.TransferEntities(ctx, job)
}
