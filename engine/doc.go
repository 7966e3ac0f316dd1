/*
Package engine defines the storage-engine abstraction for dictstore's
persistence layer.

The main interface is Engine, which exposes the primitive operations the
datastore orchestrates: connection lifecycle, index lifecycle, live-index
resolution, bulk population/mutation, the dictionary and CRF query surface,
and cross-cluster transfer.

Implementations:
  - bleveengine: embedded search-engine implementation backed by bleve
  - mock: scriptable in-memory implementation for testing

Engines register a Factory by name; the datastore resolves the configured
engine through New, so adding a backend never touches callers.
*/
package engine
