/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrSettingsMisconfigured is returned when the datastore configuration is missing or invalid
	ErrSettingsMisconfigured = errors.New("datastore settings improperly configured")

	// ErrEngineNotImplemented is returned when the configured engine has no implementation
	ErrEngineNotImplemented = errors.New("engine not implemented")

	// ErrEngineConnection is returned when the engine does not yield a usable connection
	ErrEngineConnection = errors.New("engine connection failed")

	// ErrTransferNotSupported is returned when entity transfer is requested on an engine
	// that does not support it
	ErrTransferNotSupported = errors.New("entity transfer not supported by engine")

	// ErrCRFIndexNotConfigured is returned when a CRF corpus operation is requested
	// without a CRF index in the configuration
	ErrCRFIndexNotConfigured = errors.New("crf index not configured")

	// ErrOperationNotSupported is returned when an engine cannot answer a request at all
	ErrOperationNotSupported = errors.New("operation not supported by engine")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// SettingsError represents a fatal configuration problem detected before any backend call
type SettingsError struct {
	Reason string
}

func (e *SettingsError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("datastore settings improperly configured: %s", e.Reason)
	}
	return "datastore settings improperly configured"
}

func (e *SettingsError) Is(target error) bool {
	return target == ErrSettingsMisconfigured
}

// EngineNotImplementedError is raised when the selected engine name has no registered factory
type EngineNotImplementedError struct {
	Engine string
}

func (e *EngineNotImplementedError) Error() string {
	return fmt.Sprintf("engine %q is not implemented", e.Engine)
}

func (e *EngineNotImplementedError) Is(target error) bool {
	return target == ErrEngineNotImplemented
}

// ConnectionError wraps a failure to obtain a usable engine handle
type ConnectionError struct {
	Engine string
	Err    error
}

func (e *ConnectionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unable to connect to engine %q: %v", e.Engine, e.Err)
	}
	return fmt.Sprintf("unable to connect to engine %q", e.Engine)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

func (e *ConnectionError) Is(target error) bool {
	return target == ErrEngineConnection
}

// TransferNotSupportedError is raised when TransferEntities is called on a non-bleve engine
type TransferNotSupportedError struct {
	Engine string
}

func (e *TransferNotSupportedError) Error() string {
	return fmt.Sprintf("entity transfer is not supported by engine %q", e.Engine)
}

func (e *TransferNotSupportedError) Is(target error) bool {
	return target == ErrTransferNotSupported
}

// CRFNotConfiguredError is raised when CRF corpus operations are requested on a store
// whose deployment has no CRF index. Dictionary operations are unaffected by it.
type CRFNotConfiguredError struct {
	Missing string
}

func (e *CRFNotConfiguredError) Error() string {
	return fmt.Sprintf("crf corpus not configured: missing %s", e.Missing)
}

func (e *CRFNotConfiguredError) Is(target error) bool {
	return target == ErrCRFIndexNotConfigured
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// DocumentError records the failure of a single document inside a bulk write.
type DocumentError struct {
	ID         string
	EntityName string
	Value      string
	Err        error
}

func (e DocumentError) Error() string {
	return fmt.Sprintf("document %s (entity %q, value %q): %v", e.ID, e.EntityName, e.Value, e.Err)
}

func (e DocumentError) Unwrap() error { return e.Err }

// BulkError aggregates per-document failures of a bulk write. Documents in the same
// batch succeed or fail independently; a BulkError therefore never implies the whole
// batch was lost.
type BulkError struct {
	Attempted int
	Failures  []DocumentError
}

func (e *BulkError) Error() string {
	return fmt.Sprintf("bulk write: %d of %d documents failed", len(e.Failures), e.Attempted)
}

// Helper functions for creating errors

// NewSettingsError creates a new SettingsError
func NewSettingsError(reason string) error {
	return &SettingsError{Reason: reason}
}

// NewEngineNotImplementedError creates a new EngineNotImplementedError
func NewEngineNotImplementedError(engine string) error {
	return &EngineNotImplementedError{Engine: engine}
}

// NewConnectionError creates a new ConnectionError
func NewConnectionError(engine string, err error) error {
	return &ConnectionError{Engine: engine, Err: err}
}

// NewTransferNotSupportedError creates a new TransferNotSupportedError
func NewTransferNotSupportedError(engine string) error {
	return &TransferNotSupportedError{Engine: engine}
}

// NewCRFNotConfiguredError creates a new CRFNotConfiguredError
func NewCRFNotConfiguredError(missing string) error {
	return &CRFNotConfiguredError{Missing: missing}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsSettingsMisconfigured checks if an error is a configuration error
func IsSettingsMisconfigured(err error) bool {
	return errors.Is(err, ErrSettingsMisconfigured)
}

// IsEngineNotImplemented checks if an error is an engine-not-implemented error
func IsEngineNotImplemented(err error) bool {
	return errors.Is(err, ErrEngineNotImplemented)
}

// IsConnection checks if an error is a connection error
func IsConnection(err error) bool {
	return errors.Is(err, ErrEngineConnection)
}

// IsTransferNotSupported checks if an error is a transfer-not-supported error
func IsTransferNotSupported(err error) bool {
	return errors.Is(err, ErrTransferNotSupported)
}

// IsCRFNotConfigured checks if an error is a CRF-not-configured error
func IsCRFNotConfigured(err error) bool {
	return errors.Is(err, ErrCRFIndexNotConfigured)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// AsBulkError extracts a BulkError from an error chain, if present
func AsBulkError(err error) (*BulkError, bool) {
	var be *BulkError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
