/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package bleveengine implements the storage engine on embedded bleve indexes.
//
// The connection URL is a root directory. Each physical index is a bleve index
// directory beneath it, and the live-index pointer of a logical store is a
// plain text file named "<logical>.live" next to the index directories.
//
// Importing the package registers the engine under the name "bleve".
package bleveengine
