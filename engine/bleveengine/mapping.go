/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package bleveengine

import (
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/v2/mapping"
)

// Document field names shared by the dictionary and CRF indexes.
const (
	fieldEntityName     = "entity_data"
	fieldValue          = "value"
	fieldVariants       = "variants"
	fieldLanguageScript = "language_script"
	fieldDocType        = "doc_type"
	fieldSentence       = "sentence"
	fieldEntities       = "entities"
	fieldIngestedAt     = "ingested_at"
)

// variantAnalyzerName analyzes variant text: unicode tokens, lowercased, no
// stemming, so edit distances stay faithful to the stored spelling.
const variantAnalyzerName = "variant_lowercase"

func keywordField() *mapping.FieldMapping {
	fm := bleve.NewTextFieldMapping()
	fm.Analyzer = keyword.Name
	fm.Store = true
	fm.IncludeInAll = false
	return fm
}

func storedTextField(analyzer string) *mapping.FieldMapping {
	fm := bleve.NewTextFieldMapping()
	fm.Analyzer = analyzer
	fm.Store = true
	fm.IncludeInAll = false
	return fm
}

func baseMapping() (*mapping.IndexMappingImpl, error) {
	im := bleve.NewIndexMapping()
	err := im.AddCustomAnalyzer(variantAnalyzerName, map[string]interface{}{
		"type":          custom.Name,
		"tokenizer":     unicode.Name,
		"token_filters": []string{lowercase.Name},
	})
	if err != nil {
		return nil, fmt.Errorf("add analyzer %q: %w", variantAnalyzerName, err)
	}
	im.TypeField = fieldDocType
	return im, nil
}

// dictionaryMapping maps one dictionary document type: keyword fields for the
// entity name, canonical value and language script, analyzed text for variants.
func dictionaryMapping(docType string) (mapping.IndexMapping, error) {
	im, err := baseMapping()
	if err != nil {
		return nil, err
	}

	dm := bleve.NewDocumentMapping()
	dm.AddFieldMappingsAt(fieldEntityName, keywordField())
	dm.AddFieldMappingsAt(fieldValue, keywordField())
	dm.AddFieldMappingsAt(fieldLanguageScript, keywordField())
	dm.AddFieldMappingsAt(fieldVariants, storedTextField(variantAnalyzerName))

	im.AddDocumentMapping(docType, dm)
	return im, nil
}

// crfMapping maps one CRF training document type.
func crfMapping(docType string) (mapping.IndexMapping, error) {
	im, err := baseMapping()
	if err != nil {
		return nil, err
	}

	dm := bleve.NewDocumentMapping()
	dm.AddFieldMappingsAt(fieldEntityName, keywordField())
	dm.AddFieldMappingsAt(fieldLanguageScript, keywordField())
	dm.AddFieldMappingsAt(fieldSentence, storedTextField(variantAnalyzerName))
	dm.AddFieldMappingsAt(fieldEntities, storedTextField(variantAnalyzerName))
	dm.AddFieldMappingsAt(fieldIngestedAt, keywordField())

	im.AddDocumentMapping(docType, dm)
	return im, nil
}
