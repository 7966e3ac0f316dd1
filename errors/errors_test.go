/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSettingsError(t *testing.T) {
	err := NewSettingsError("bleve engine needs a doc type")

	if !IsSettingsMisconfigured(err) {
		t.Error("expected IsSettingsMisconfigured to return true")
	}
	if !errors.Is(err, ErrSettingsMisconfigured) {
		t.Error("expected errors.Is to match ErrSettingsMisconfigured")
	}

	want := `datastore settings improperly configured: bleve engine needs a doc type`
	if err.Error() != want {
		t.Errorf("unexpected message: %q", err.Error())
	}

	bare := &SettingsError{}
	if bare.Error() != "datastore settings improperly configured" {
		t.Errorf("unexpected bare message: %q", bare.Error())
	}
}

func TestEngineNotImplementedError(t *testing.T) {
	err := NewEngineNotImplementedError("redis")

	if !IsEngineNotImplemented(err) {
		t.Error("expected IsEngineNotImplemented to return true")
	}
	if IsSettingsMisconfigured(err) {
		t.Error("engine-not-implemented must not match configuration errors")
	}
	if err.Error() != `engine "redis" is not implemented` {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestConnectionError(t *testing.T) {
	cause := errors.New("root directory unwritable")
	err := NewConnectionError("bleve", cause)

	if !IsConnection(err) {
		t.Error("expected IsConnection to return true")
	}
	if !errors.Is(err, cause) {
		t.Error("expected wrapped cause to be reachable via errors.Is")
	}
}

func TestTransferNotSupportedError(t *testing.T) {
	err := NewTransferNotSupportedError("mock")

	if !IsTransferNotSupported(err) {
		t.Error("expected IsTransferNotSupported to return true")
	}
	if IsConnection(err) {
		t.Error("transfer error must not match connection errors")
	}
}

func TestCRFNotConfiguredError(t *testing.T) {
	err := NewCRFNotConfiguredError("crf index name")

	if !IsCRFNotConfigured(err) {
		t.Error("expected IsCRFNotConfigured to return true")
	}
	if IsSettingsMisconfigured(err) {
		t.Error("crf-not-configured is distinct from the general configuration error")
	}
	if err.Error() != "crf corpus not configured: missing crf index name" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("sentences", "must match entity list length")

	if !IsValidationError(err) {
		t.Error("expected IsValidationError to return true")
	}
	if err.Error() != `validation failed for field "sentences": must match entity list length` {
		t.Errorf("unexpected message: %q", err.Error())
	}

	noField := NewValidationError("", "empty record set")
	if noField.Error() != "validation failed: empty record set" {
		t.Errorf("unexpected message: %q", noField.Error())
	}
}

func TestBulkError(t *testing.T) {
	be := &BulkError{
		Attempted: 10,
		Failures: []DocumentError{
			{ID: "a1", EntityName: "city", Value: "Mumbai", Err: errors.New("mapping conflict")},
			{ID: "b2", EntityName: "city", Value: "Pune", Err: errors.New("mapping conflict")},
		},
	}

	var err error = be
	if err.Error() != "bulk write: 2 of 10 documents failed" {
		t.Errorf("unexpected message: %q", err.Error())
	}

	wrapped := fmt.Errorf("populate: %w", err)
	got, ok := AsBulkError(wrapped)
	if !ok {
		t.Fatal("expected AsBulkError to find the BulkError in the chain")
	}
	if len(got.Failures) != 2 {
		t.Errorf("expected 2 failures, got %d", len(got.Failures))
	}
	if !errors.Is(got.Failures[0], got.Failures[0].Err) {
		t.Error("expected DocumentError to unwrap to its cause")
	}
}

func TestErrorWrapping(t *testing.T) {
	err := fmt.Errorf("create index: %w", NewSettingsError("missing doc type"))

	if !IsSettingsMisconfigured(err) {
		t.Error("expected wrapped configuration error to be detected")
	}

	var se *SettingsError
	if !errors.As(err, &se) {
		t.Fatal("expected errors.As to extract *SettingsError")
	}
	if se.Reason != "missing doc type" {
		t.Errorf("unexpected reason: %q", se.Reason)
	}
}
