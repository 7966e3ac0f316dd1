/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Engine names with implementations.
const (
	// EngineBleve is the embedded search-engine backend.
	EngineBleve = "bleve"
)

// DefaultRequestTimeout is applied to every backend call that does not carry an
// explicit timeout.
const DefaultRequestTimeout = 20 * time.Second

// Environment variable names consumed by FromEnv.
const (
	EnvEngine         = "DICTSTORE_ENGINE"
	EnvIndexName      = "DICTSTORE_INDEX_NAME"
	EnvDocType        = "DICTSTORE_DOC_TYPE"
	EnvCRFIndexName   = "DICTSTORE_CRF_INDEX_NAME"
	EnvCRFDocType     = "DICTSTORE_CRF_DOC_TYPE"
	EnvConnectionURL  = "DICTSTORE_CONNECTION_URL"
	EnvSourceURL      = "DICTSTORE_SOURCE_URL"
	EnvDestinationURL = "DICTSTORE_DESTINATION_URL"
	EnvRequestTimeout = "DICTSTORE_REQUEST_TIMEOUT"
	EnvLogLevel       = "DICTSTORE_LOG_LEVEL"
	EnvConfigFile     = "DICTSTORE_CONFIG"
)

// EngineSettings is the per-engine settings bag. For the bleve engine the
// connection URL is the root directory holding the physical index directories.
type EngineSettings struct {
	// IndexName is the logical dictionary index/store name.
	IndexName string `yaml:"index_name"`
	// DocType is the document type of dictionary entries.
	DocType string `yaml:"doc_type"`
	// CRFIndexName is the CRF corpus index. Empty means the deployment has no
	// CRF corpus; dictionary operations are unaffected.
	CRFIndexName string `yaml:"crf_index_name"`
	// CRFDocType is the document type of CRF training records.
	CRFDocType string `yaml:"crf_doc_type"`
	// ConnectionURL locates the engine.
	ConnectionURL string `yaml:"connection_url"`
	// SourceURL overrides the transfer source cluster.
	SourceURL string `yaml:"source_url"`
	// DestinationURL is the transfer destination cluster.
	DestinationURL string `yaml:"destination_url"`
	// RequestTimeout is the default per-call timeout.
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// TimeoutOrDefault returns the configured request timeout, or
// DefaultRequestTimeout when unset.
func (s EngineSettings) TimeoutOrDefault() time.Duration {
	if s.RequestTimeout > 0 {
		return s.RequestTimeout
	}
	return DefaultRequestTimeout
}

// StoreConfig selects an engine and carries the settings of every configured
// engine. It is read once at construction of a DataStore and never mutated.
type StoreConfig struct {
	Engine   string                    `yaml:"engine"`
	Engines  map[string]EngineSettings `yaml:"engines"`
	LogLevel string                    `yaml:"log_level"`
}

// Settings returns the settings of the selected engine.
func (c *StoreConfig) Settings() (EngineSettings, bool) {
	if c == nil || c.Engines == nil {
		return EngineSettings{}, false
	}
	s, ok := c.Engines[c.Engine]
	return s, ok
}

// FromEnv builds a StoreConfig from environment variables. A .env file in the
// working directory is loaded first, if present.
func FromEnv() (*StoreConfig, error) {
	_ = godotenv.Load()

	cfg := &StoreConfig{
		Engine:   os.Getenv(EnvEngine),
		LogLevel: os.Getenv(EnvLogLevel),
		Engines:  map[string]EngineSettings{},
	}

	settings := EngineSettings{
		IndexName:      os.Getenv(EnvIndexName),
		DocType:        os.Getenv(EnvDocType),
		CRFIndexName:   os.Getenv(EnvCRFIndexName),
		CRFDocType:     os.Getenv(EnvCRFDocType),
		ConnectionURL:  os.Getenv(EnvConnectionURL),
		SourceURL:      os.Getenv(EnvSourceURL),
		DestinationURL: os.Getenv(EnvDestinationURL),
	}
	if raw := os.Getenv(EnvRequestTimeout); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs < 0 {
			return nil, fmt.Errorf("%s: invalid timeout %q", EnvRequestTimeout, raw)
		}
		settings.RequestTimeout = time.Duration(secs) * time.Second
	}

	if cfg.Engine != "" {
		cfg.Engines[cfg.Engine] = settings
	}
	return cfg, nil
}

// FromFile reads a YAML StoreConfig.
func FromFile(path string) (*StoreConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg StoreConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Load builds the effective configuration: the YAML file named by
// DICTSTORE_CONFIG when set, environment variables otherwise.
func Load() (*StoreConfig, error) {
	_ = godotenv.Load()
	if path := os.Getenv(EnvConfigFile); path != "" {
		return FromFile(path)
	}
	return FromEnv()
}
