package proxy

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Sternrassler/game-likes-proxy/pkg/catalog"
)

// Common errors returned by request validation.
var (
	// ErrMissingParameter is returned when universeId is absent or empty.
	ErrMissingParameter = errors.New("missing universeId parameter")

	// ErrInvalidParameter is returned when universeId is not a positive integer.
	ErrInvalidParameter = errors.New("invalid universeId parameter")
)

// Error kinds reported in logs and metrics for failures that are not catalog errors.
const (
	kindMissingParameter = "missing_parameter"
	kindInvalidParameter = "invalid_parameter"
	kindInternal         = "internal"
)

// errorBody is the JSON body of every failed response.
type errorBody struct {
	Error string `json:"error"`

	// APIResponse echoes the upstream payload when it violated the expected contract.
	APIResponse json.RawMessage `json:"api_response,omitempty"`
}

// classifiedError is the HTTP rendering of an error.
type classifiedError struct {
	status int
	kind   string
	body   errorBody
}

// classify maps an error from validation or lookup to a status, kind and client-facing body.
// Wrapped causes are never copied into the body.
func classify(err error) classifiedError {
	switch {
	case errors.Is(err, ErrMissingParameter):
		return classifiedError{
			status: http.StatusBadRequest,
			kind:   kindMissingParameter,
			body:   errorBody{Error: "Missing 'universeId' query parameter."},
		}
	case errors.Is(err, ErrInvalidParameter):
		return classifiedError{
			status: http.StatusBadRequest,
			kind:   kindInvalidParameter,
			body:   errorBody{Error: "Invalid 'universeId' provided. Must be a positive integer."},
		}
	}

	var catErr *catalog.Error
	if !errors.As(err, &catErr) {
		return classifiedError{
			status: http.StatusInternalServerError,
			kind:   kindInternal,
			body:   errorBody{Error: "An internal server error occurred."},
		}
	}

	c := classifiedError{
		status: http.StatusInternalServerError,
		kind:   string(catErr.Kind),
	}

	switch catErr.Kind {
	case catalog.KindUnreachable:
		c.body.Error = "Failed to connect to catalog API."
	case catalog.KindHTTPError:
		c.body.Error = fmt.Sprintf("Catalog API returned HTTP %d.", catErr.StatusCode)
	case catalog.KindMalformedPayload:
		c.body.Error = "Catalog API returned a malformed response."
	case catalog.KindGameNotFound:
		c.status = http.StatusNotFound
		c.body.Error = "Game information not found (data array empty/missing)."
	case catalog.KindFieldMissing:
		c.body.Error = "favoritedCount not found in catalog API response (unexpected)."
		if json.Valid(catErr.Payload) {
			c.body.APIResponse = catErr.Payload
		}
	default:
		c.body.Error = "An internal server error occurred."
	}

	return c
}
