/*
Package errors provides semantic error types for the dictstore library.

The package defines the failure kinds surfaced by the datastore with specific
types that can be checked using the standard errors.Is() function or the
provided helper functions.

Common Errors:

	var (
	    ErrSettingsMisconfigured = errors.New("datastore settings improperly configured")
	    ErrEngineNotImplemented  = errors.New("engine not implemented")
	    ErrEngineConnection      = errors.New("engine connection failed")
	    ErrTransferNotSupported  = errors.New("entity transfer not supported by engine")
	    ErrCRFIndexNotConfigured = errors.New("crf index not configured")
	    ErrInvalidInput          = errors.New("invalid input")
	)

Usage:

	// Check error type
	crf, err := store.GetCRFDataForEntityName(ctx, "person_name")
	if err != nil {
	    if errors.IsCRFNotConfigured(err) {
	        // Deployment has no CRF corpus; dictionary operations still work
	        return nil, nil
	    }
	    return nil, err
	}

	// Create typed errors
	err := errors.NewSettingsError("bleve engine needs a doc type")
	err := errors.NewValidationError("sentences", "length mismatch with entity lists")

Configuration and unsupported-operation errors surface immediately and distinctly
so deployment misconfiguration stays diagnosable. Bulk writes report per-document
failures as a BulkError rather than a single opaque failure, mirroring the batch
semantics of the underlying search engine.
*/
package errors
