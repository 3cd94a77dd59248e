package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/Sternrassler/game-likes-proxy/internal/testutil"
	"github.com/Sternrassler/game-likes-proxy/pkg/config"
	"github.com/rs/zerolog"
)

func newTestServer(t *testing.T, mock *testutil.MockCatalog) *httptest.Server {
	t.Helper()

	cfg := config.Default()
	cfg.Upstream.URL = mock.URL()

	handler, err := buildHandler(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Failed to build handler: %v", err)
	}

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func getLikes(t *testing.T, baseURL, universeID string) (int, map[string]any) {
	t.Helper()

	resp, err := http.Get(baseURL + "/getGameLikes?universeId=" + universeID)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode response: %v", err)
	}
	return resp.StatusCode, body
}

func TestProxy_EndToEnd(t *testing.T) {
	mock := testutil.NewMockCatalog()
	defer mock.Close()
	mock.SetResponse(1818, testutil.NewGameResponse(4200))

	server := newTestServer(t, mock)

	status, body := getLikes(t, server.URL, "1818")
	if status != http.StatusOK {
		t.Fatalf("Status = %d, want 200", status)
	}
	if body["likes"] != float64(4200) || body["cached"] != false {
		t.Errorf("Body = %v, want likes=4200 cached=false", body)
	}

	status, body = getLikes(t, server.URL, "1818")
	if status != http.StatusOK {
		t.Fatalf("Status = %d, want 200", status)
	}
	if body["likes"] != float64(4200) || body["cached"] != true {
		t.Errorf("Body = %v, want likes=4200 cached=true", body)
	}

	if mock.GetRequestCount() != 1 {
		t.Errorf("Upstream requests = %d, want 1", mock.GetRequestCount())
	}

	status, _ = getLikes(t, server.URL, "abc")
	if status != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", status)
	}

	status, _ = getLikes(t, server.URL, "777")
	if status != http.StatusNotFound {
		t.Errorf("Status = %d, want 404 for unknown game", status)
	}
}

func TestProxy_ConcurrentRequests(t *testing.T) {
	mock := testutil.NewMockCatalog()
	defer mock.Close()
	mock.SetResponse(55, testutil.NewGameResponse(12))

	server := newTestServer(t, mock)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := http.Get(server.URL + "/getGameLikes?universeId=55")
			if err != nil {
				t.Errorf("Request failed: %v", err)
				return
			}
			defer resp.Body.Close()

			var body map[string]any
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Errorf("Decode response: %v", err)
				return
			}
			if resp.StatusCode != http.StatusOK || body["likes"] != float64(12) {
				t.Errorf("Got status %d body %v, want 200 likes=12", resp.StatusCode, body)
			}
		}()
	}
	wg.Wait()
}

func TestHealthEndpoint(t *testing.T) {
	mock := testutil.NewMockCatalog()
	defer mock.Close()

	server := newTestServer(t, mock)

	resp, err := http.Get(server.URL + "/health")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
	if string(body) != "OK" {
		t.Errorf("Expected body 'OK', got %s", string(body))
	}
}

func TestMetricsEndpoint(t *testing.T) {
	mock := testutil.NewMockCatalog()
	defer mock.Close()

	server := newTestServer(t, mock)

	resp, err := http.Get(server.URL + "/metrics")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	bodyStr := string(body)
	if !strings.Contains(bodyStr, "# HELP") || !strings.Contains(bodyStr, "# TYPE") {
		t.Error("Expected Prometheus format metrics output")
	}
	if !strings.Contains(bodyStr, "likes_cache_entries") {
		t.Error("Expected metrics output to contain likes_cache_entries")
	}
}

func TestConfigCommand(t *testing.T) {
	t.Setenv(config.EnvPort, "6060")
	t.Setenv(config.EnvCacheTTLSeconds, "45")

	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"config"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("config command failed: %v", err)
	}

	output := out.String()
	if !strings.Contains(output, "0.0.0.0:6060") {
		t.Errorf("Expected listen address with env port, got %q", output)
	}
	if !strings.Contains(output, "45s") {
		t.Errorf("Expected ttl from env, got %q", output)
	}
}

func TestLoadConfig_InvalidEnv(t *testing.T) {
	t.Setenv(config.EnvCacheCapacity, "0")

	if _, err := loadConfig(""); err == nil {
		t.Error("Expected validation error for zero capacity")
	}
}
