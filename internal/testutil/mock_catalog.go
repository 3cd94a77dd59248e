// Package testutil provides testing utilities for the likes proxy.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// MockCatalogResponse defines the behavior for a mock catalog response.
type MockCatalogResponse struct {
	StatusCode int
	Body       string
	Delay      time.Duration
}

// MockCatalog is a configurable mock games catalog API.
// Responses are keyed by the universeIds query parameter.
type MockCatalog struct {
	server    *httptest.Server
	mu        sync.RWMutex
	responses map[string]MockCatalogResponse

	requestCount int
	lastQuery    string
}

// NewMockCatalog creates a new mock catalog server.
func NewMockCatalog() *MockCatalog {
	mock := &MockCatalog{
		responses: make(map[string]MockCatalogResponse),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("universeIds")

		mock.mu.Lock()
		mock.requestCount++
		mock.lastQuery = r.URL.RawQuery
		resp, exists := mock.responses[id]
		mock.mu.Unlock()

		if !exists {
			resp = NewEmptyResponse()
		}

		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	}))

	return mock
}

// URL returns the mock catalog endpoint URL.
func (m *MockCatalog) URL() string {
	return m.server.URL + "/v1/games"
}

// Close shuts down the mock server.
func (m *MockCatalog) Close() {
	m.server.Close()
}

// Reset clears all tracking counters.
func (m *MockCatalog) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount = 0
	m.lastQuery = ""
}

// SetResponse configures the response for a universe.
func (m *MockCatalog) SetResponse(universeID int64, resp MockCatalogResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[fmt.Sprint(universeID)] = resp
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockCatalog) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.requestCount
}

// GetLastQuery returns the raw query string of the last request.
func (m *MockCatalog) GetLastQuery() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastQuery
}

// NewGameResponse creates a 200 OK response reporting favoritedCount.
func NewGameResponse(favoritedCount int64) MockCatalogResponse {
	return MockCatalogResponse{
		StatusCode: http.StatusOK,
		Body:       fmt.Sprintf(`{"data":[{"id":1,"name":"Test Game","favoritedCount":%d}]}`, favoritedCount),
	}
}

// NewEmptyResponse creates a 200 OK response with no matching games.
func NewEmptyResponse() MockCatalogResponse {
	return MockCatalogResponse{
		StatusCode: http.StatusOK,
		Body:       `{"data":[]}`,
	}
}

// NewMissingFieldResponse creates a 200 OK response whose record has no favoritedCount.
func NewMissingFieldResponse() MockCatalogResponse {
	return MockCatalogResponse{
		StatusCode: http.StatusOK,
		Body:       `{"data":[{"id":1,"name":"Test Game"}]}`,
	}
}

// NewMalformedResponse creates a 200 OK response that is not valid JSON.
func NewMalformedResponse() MockCatalogResponse {
	return MockCatalogResponse{
		StatusCode: http.StatusOK,
		Body:       `<html>not json</html>`,
	}
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockCatalogResponse {
	return MockCatalogResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"errors":[{"code":0,"message":"InternalServerError"}]}`,
	}
}

// NewRateLimitResponse creates a 429 Too Many Requests response.
func NewRateLimitResponse() MockCatalogResponse {
	return MockCatalogResponse{
		StatusCode: http.StatusTooManyRequests,
		Body:       `{"errors":[{"code":0,"message":"Too many requests"}]}`,
	}
}
