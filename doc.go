/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

/*
Package dictstore is an entity-dictionary store: it persists, queries and
maintains named entities (city, brand, person-name, ...) that map canonical
values to textual variants inside a pluggable search-engine backend, plus an
optional CRF training corpus of labeled sentences per entity.

The DataStore service object is the public surface. It binds a configuration
to one engine, routes mutations through the live-index pointer during index
rebuilds, and exposes index lifecycle, bulk population, exact and fuzzy
dictionary queries, the CRF corpus and cross-cluster entity transfer.

Basic Usage:

	cfg, _ := config.Load()
	store, err := dictstore.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	// Provision and fill the dictionary index from CSV entity files.
	_ = store.Create(ctx, nil)
	_ = store.Populate(ctx, "data/entity_data", nil, nil)

	// Fuzzy variant lookup.
	matches, _ := store.GetSimilarDictionary(ctx, "city", "mumbi",
		storagemodels.DefaultFuzziness, "en")

Engines register themselves by name; importing the bleve engine package wires
up the embedded backend:

	import _ "github.com/suparena/dictstore/engine/bleveengine"
*/
package dictstore
