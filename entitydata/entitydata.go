/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package entitydata loads entity dictionaries from CSV files. One file holds
// one entity; the file name (without extension) is the entity name. Columns
// are the canonical value, a pipe-delimited variant list, and an optional
// language script (default "en").
package entitydata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	storeerrors "github.com/suparena/dictstore/errors"
	"github.com/suparena/dictstore/storagemodels"
)

const (
	// VariantSeparator splits the variant column into individual variants.
	VariantSeparator = "|"

	defaultLanguageScript = "en"
)

// LoadFile reads one entity CSV file. The entity name is derived from the file
// name. Every returned record contains its canonical value among its variants.
func LoadFile(path string) ([]storagemodels.EntityRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open entity file: %w", err)
	}
	defer f.Close()

	entityName := entityNameFromPath(path)
	if entityName == "" {
		return nil, storeerrors.NewValidationError("file", fmt.Sprintf("cannot derive an entity name from %q", path))
	}
	records, err := parse(f, entityName)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}

// LoadDirectory reads every .csv file directly under dir. A missing directory
// is an error; an empty one yields no records.
func LoadDirectory(dir string) ([]storagemodels.EntityRecord, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read entity directory: %w", err)
	}

	var records []storagemodels.EntityRecord
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}
		recs, err := LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}
	return records, nil
}

// LoadAll combines a directory scan with explicitly named files. Either part
// may be empty, but not both.
func LoadAll(dir string, files []string) ([]storagemodels.EntityRecord, error) {
	if dir == "" && len(files) == 0 {
		return nil, storeerrors.NewValidationError("source", "need an entity data directory or explicit files")
	}

	var records []storagemodels.EntityRecord
	if dir != "" {
		recs, err := LoadDirectory(dir)
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}
	for _, path := range files {
		recs, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}
	return records, nil
}

func entityNameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func parse(r io.Reader, entityName string) ([]storagemodels.EntityRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var records []storagemodels.EntityRecord
	line := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		line++

		// A leading header row is tolerated.
		if line == 1 && isHeader(row) {
			continue
		}
		if len(row) < 1 || strings.TrimSpace(row[0]) == "" {
			continue
		}

		rec := storagemodels.EntityRecord{
			EntityName:     entityName,
			Value:          strings.TrimSpace(row[0]),
			LanguageScript: defaultLanguageScript,
		}
		if len(row) > 1 {
			for _, v := range strings.Split(row[1], VariantSeparator) {
				if v = strings.TrimSpace(v); v != "" {
					rec.Variants = append(rec.Variants, v)
				}
			}
		}
		if len(row) > 2 && strings.TrimSpace(row[2]) != "" {
			rec.LanguageScript = strings.TrimSpace(row[2])
		}
		records = append(records, rec.WithSelfVariant())
	}
}

func isHeader(row []string) bool {
	if len(row) == 0 {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(row[0])) {
	case "value", "entity", "entity_data":
		return true
	}
	return false
}
