/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package bleveengine

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// livePointerPath returns the pointer file mapping a logical store name to the
// physical index currently accepting writes. Rebuild tooling writes it when it
// flips traffic to a fresh index; single-index deployments never have one.
func (e *Engine) livePointerPath(logical string) string {
	return filepath.Join(e.root(), logical+".live")
}

// LiveIndex resolves the logical store name to the live write index. When no
// pointer exists, the logical name itself is returned with pinned=false: a
// missing pointer means no rebuild is in progress. An unreadable or empty
// pointer also falls back to the logical name, but is logged, since it may be
// masking a broken rebuild.
func (e *Engine) LiveIndex(ctx context.Context, logical string) (string, bool) {
	data, err := os.ReadFile(e.livePointerPath(logical))
	if err != nil {
		if !os.IsNotExist(err) {
			e.logger.Warn("live index pointer unreadable, using logical name",
				"logical", logical, "error", err)
		}
		return logical, false
	}

	name := strings.TrimSpace(string(data))
	if name == "" {
		e.logger.Warn("live index pointer empty, using logical name", "logical", logical)
		return logical, false
	}
	return name, true
}

// SetLiveIndex points the logical store name at a physical index. An empty
// physical name removes the pointer. Used by rebuild tooling and tests.
func (e *Engine) SetLiveIndex(logical, physical string) error {
	path := e.livePointerPath(logical)
	if physical == "" {
		err := os.Remove(path)
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := os.MkdirAll(e.root(), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(physical+"\n"), 0o644)
}
