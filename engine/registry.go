/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package engine

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/suparena/dictstore/config"
	storeerrors "github.com/suparena/dictstore/errors"
)

// Factory builds an engine from its settings bag.
type Factory func(settings config.EngineSettings, logger *slog.Logger) (Engine, error)

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
)

// Register registers an engine factory under a name. Engine implementations
// call it from init(). If a factory is already registered for the name, it
// panics to prevent accidental overrides.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("engine registry: engine %q already registered", name))
	}
	factories[name] = f
}

// New builds the engine registered under name. An unknown name yields an
// EngineNotImplementedError.
func New(name string, settings config.EngineSettings, logger *slog.Logger) (Engine, error) {
	mu.RLock()
	f, ok := factories[name]
	mu.RUnlock()
	if !ok {
		return nil, storeerrors.NewEngineNotImplementedError(name)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return f(settings, logger)
}

// Registered returns the names of all registered engines, sorted.
func Registered() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
