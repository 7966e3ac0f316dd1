/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package engine

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/dictstore/config"
	storeerrors "github.com/suparena/dictstore/errors"
)

func TestRegisterAndNew(t *testing.T) {
	var gotSettings config.EngineSettings
	Register("registry-test", func(settings config.EngineSettings, logger *slog.Logger) (Engine, error) {
		gotSettings = settings
		return nil, nil
	})

	_, err := New("registry-test", config.EngineSettings{IndexName: "entities"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "entities", gotSettings.IndexName)

	assert.Contains(t, Registered(), "registry-test")
}

func TestNewUnknownEngine(t *testing.T) {
	_, err := New("sqlserver", config.EngineSettings{}, slog.Default())

	require.Error(t, err)
	assert.True(t, storeerrors.IsEngineNotImplemented(err))
}

func TestRegisterDuplicatePanics(t *testing.T) {
	factory := func(config.EngineSettings, *slog.Logger) (Engine, error) { return nil, nil }

	Register("registry-dup", factory)
	assert.Panics(t, func() { Register("registry-dup", factory) })
}
