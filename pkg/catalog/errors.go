package catalog

import (
	"encoding/json"
	"fmt"
)

// ErrorKind classifies a failed catalog lookup.
type ErrorKind string

const (
	// KindUnreachable represents network, connection and timeout failures.
	KindUnreachable ErrorKind = "upstream_unreachable"

	// KindHTTPError represents a non-2xx response from the catalog.
	KindHTTPError ErrorKind = "upstream_http_error"

	// KindMalformedPayload represents a body that does not decode into the expected shape.
	KindMalformedPayload ErrorKind = "upstream_malformed_payload"

	// KindGameNotFound represents an empty or absent data array.
	KindGameNotFound ErrorKind = "game_not_found"

	// KindFieldMissing represents a record without a favoritedCount value.
	KindFieldMissing ErrorKind = "field_missing"
)

// Error is a classified catalog failure.
type Error struct {
	Kind ErrorKind

	// StatusCode is the upstream HTTP status, 0 when no response was received.
	StatusCode int

	Message string

	// Payload holds the raw upstream body for contract violations.
	Payload json.RawMessage

	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("catalog %s error (status %d): %s: %v",
			e.Kind, e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("catalog %s error (status %d): %s",
		e.Kind, e.StatusCode, e.Message)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}
