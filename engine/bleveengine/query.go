/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package bleveengine

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/suparena/dictstore/storagemodels"
)

// englishLanguageScript is always eligible for fuzzy matches alongside the
// requested script.
const englishLanguageScript = "en"

// facetSize caps the terms facets used for unique-value and language listings.
// Dictionaries beyond this size need the cap raised.
const facetSize = 100000

func (e *Engine) dictionaryIndex(ctx context.Context) (bleve.Index, error) {
	if err := e.Connect(ctx); err != nil {
		return nil, err
	}
	idx, err := e.openIndex(e.settings.IndexName, false, nil)
	if err != nil {
		return nil, fmt.Errorf("dictionary index: %w", err)
	}
	return idx, nil
}

// GetEntityDictionary returns the stored value -> variants mapping of one
// entity across all language scripts.
func (e *Engine) GetEntityDictionary(ctx context.Context, entityName string, opts *storagemodels.SearchOptions) (map[string][]string, error) {
	idx, err := e.dictionaryIndex(ctx)
	if err != nil {
		return nil, err
	}

	records, err := entityRecords(ctx, idx, entityName, nil, searchSize(opts), searchTimeout(opts, e.settings))
	if err != nil {
		return nil, err
	}

	result := make(map[string][]string, len(records))
	for _, rec := range records {
		result[rec.Value] = mergeVariants(result[rec.Value], rec.Variants)
	}
	return result, nil
}

// GetEntityUniqueValues returns the canonical values of one entity, sorted.
func (e *Engine) GetEntityUniqueValues(ctx context.Context, entityName string, opts *storagemodels.SearchOptions) ([]string, error) {
	return e.entityFacet(ctx, entityName, fieldValue, opts)
}

// GetEntitySupportedLanguages returns the language scripts present for one
// entity, sorted.
func (e *Engine) GetEntitySupportedLanguages(ctx context.Context, entityName string, opts *storagemodels.SearchOptions) ([]string, error) {
	return e.entityFacet(ctx, entityName, fieldLanguageScript, opts)
}

func (e *Engine) entityFacet(ctx context.Context, entityName, field string, opts *storagemodels.SearchOptions) ([]string, error) {
	idx, err := e.dictionaryIndex(ctx)
	if err != nil {
		return nil, err
	}

	req := bleve.NewSearchRequestOptions(termQuery(fieldEntityName, entityName), 0, 0, false)
	req.AddFacet("unique_terms", bleve.NewFacetRequest(field, facetSize))

	res, err := runSearch(ctx, idx, req, searchTimeout(opts, e.settings))
	if err != nil {
		return nil, fmt.Errorf("facet on %q for entity %q: %w", field, entityName, err)
	}

	var terms []string
	if facet, ok := res.Facets["unique_terms"]; ok && facet.Terms != nil {
		for _, term := range facet.Terms.Terms() {
			terms = append(terms, term.Term)
		}
	}
	sort.Strings(terms)
	return terms, nil
}

// GetEntityData returns full records of one entity, optionally filtered to a
// value subset.
func (e *Engine) GetEntityData(ctx context.Context, entityName string, values []string, opts *storagemodels.SearchOptions) ([]storagemodels.EntityRecord, error) {
	idx, err := e.dictionaryIndex(ctx)
	if err != nil {
		return nil, err
	}
	return entityRecords(ctx, idx, entityName, values, searchSize(opts), searchTimeout(opts, e.settings))
}

// GetSimilarDictionary runs the fuzzy variant search: a boolean query anchored
// on the entity name, with one fuzzy clause per token of text. Hits arrive in
// relevance order; each stored variant is reported once, mapped to the
// canonical value of its highest-scoring record.
func (e *Engine) GetSimilarDictionary(ctx context.Context, entityName, text string, fuzziness storagemodels.Fuzziness, languageScript string, opts *storagemodels.SearchOptions) ([]storagemodels.VariantMatch, error) {
	idx, err := e.dictionaryIndex(ctx)
	if err != nil {
		return nil, err
	}

	tokens := tokenize(text)
	if len(tokens) == 0 {
		return nil, nil
	}

	bq := bleve.NewBooleanQuery()
	bq.AddMust(termQuery(fieldEntityName, entityName))
	if languageScript != "" {
		lq := bleve.NewDisjunctionQuery(
			termQuery(fieldLanguageScript, languageScript),
			termQuery(fieldLanguageScript, englishLanguageScript),
		)
		bq.AddMust(lq)
	}
	for _, token := range tokens {
		fq := bleve.NewFuzzyQuery(token)
		fq.SetField(fieldVariants)
		fq.SetFuzziness(fuzziness.Distance(len([]rune(token))))
		fq.SetPrefix(1)
		bq.AddShould(fq)
	}
	bq.SetMinShould(1)

	req := bleve.NewSearchRequestOptions(bq, searchSize(opts), 0, false)
	req.Fields = []string{fieldValue, fieldVariants, fieldLanguageScript}

	e.logger.Debug("running fuzzy dictionary query",
		"entity", entityName, "tokens", len(tokens), "fuzziness", fuzziness.String())
	res, err := runSearch(ctx, idx, req, searchTimeout(opts, e.settings))
	if err != nil {
		return nil, fmt.Errorf("fuzzy query for entity %q: %w", entityName, err)
	}

	var matches []storagemodels.VariantMatch
	seen := make(map[string]struct{})
	for _, hit := range res.Hits {
		value := fieldString(hit, fieldValue)
		for _, variant := range fieldStrings(hit, fieldVariants) {
			variant = strings.Join(strings.Fields(variant), " ")
			if variant == "" {
				continue
			}
			if _, dup := seen[variant]; dup {
				continue
			}
			if !variantWithinThreshold(variant, tokens, fuzziness) {
				continue
			}
			seen[variant] = struct{}{}
			matches = append(matches, storagemodels.VariantMatch{
				Variant: variant,
				Value:   value,
				Score:   hit.Score,
			})
		}
	}
	return matches, nil
}

// variantWithinThreshold reports whether every token of the variant is within
// the allowed edit distance of some query token. The distance bound is keyed
// by query-token length, matching how the engine applies fuzziness.
func variantWithinThreshold(variant string, queryTokens []string, fuzziness storagemodels.Fuzziness) bool {
	variantTokens := tokenize(variant)
	if len(variantTokens) == 0 {
		return false
	}
	for _, vt := range variantTokens {
		if !tokenWithinThreshold(vt, queryTokens, fuzziness) {
			return false
		}
	}
	return true
}

func tokenWithinThreshold(token string, queryTokens []string, fuzziness storagemodels.Fuzziness) bool {
	for _, qt := range queryTokens {
		max := fuzziness.Distance(len([]rune(qt)))
		if boundedLevenshtein(token, qt, max) <= max {
			return true
		}
	}
	return false
}

// tokenize lowercases and splits on anything that is not a letter or digit.
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// entityRecords fetches the stored records of one entity, optionally filtered
// to a value subset (chunked so no single query carries an unbounded term set).
func entityRecords(ctx context.Context, idx bleve.Index, entityName string, values []string, size int, timeout time.Duration) ([]storagemodels.EntityRecord, error) {
	var queries []query.Query
	if len(values) == 0 {
		queries = append(queries, termQuery(fieldEntityName, entityName))
	} else {
		for start := 0; start < len(values); start += valueChunkSize {
			end := start + valueChunkSize
			if end > len(values) {
				end = len(values)
			}
			dq := bleve.NewDisjunctionQuery()
			for _, v := range values[start:end] {
				dq.AddQuery(termQuery(fieldValue, v))
			}
			bq := bleve.NewBooleanQuery()
			bq.AddMust(termQuery(fieldEntityName, entityName))
			bq.AddMust(dq)
			queries = append(queries, bq)
		}
	}

	var records []storagemodels.EntityRecord
	for _, q := range queries {
		req := bleve.NewSearchRequestOptions(q, size, 0, false)
		req.Fields = []string{fieldEntityName, fieldValue, fieldVariants, fieldLanguageScript}
		res, err := runSearch(ctx, idx, req, timeout)
		if err != nil {
			return nil, fmt.Errorf("fetch records for entity %q: %w", entityName, err)
		}
		for _, hit := range res.Hits {
			records = append(records, storagemodels.EntityRecord{
				EntityName:     fieldString(hit, fieldEntityName),
				Value:          fieldString(hit, fieldValue),
				Variants:       fieldStrings(hit, fieldVariants),
				LanguageScript: fieldString(hit, fieldLanguageScript),
			})
		}
	}
	return records, nil
}

func mergeVariants(existing, incoming []string) []string {
	seen := make(map[string]struct{}, len(existing))
	for _, v := range existing {
		seen[v] = struct{}{}
	}
	for _, v := range incoming {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		existing = append(existing, v)
	}
	return existing
}
