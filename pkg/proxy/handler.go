package proxy

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Sternrassler/game-likes-proxy/pkg/catalog"
	"github.com/Sternrassler/game-likes-proxy/pkg/metrics"
	"github.com/rs/zerolog"
)

// WelcomeText is served at the root path.
const WelcomeText = "Welcome to the Game Likes Proxy! Use the /getGameLikes endpoint with a universeId. " +
	"Example: /getGameLikes?universeId=1234567890"

// Handler serves the proxy's HTTP routes.
type Handler struct {
	service *Service
	logger  zerolog.Logger
	mux     *http.ServeMux
}

// NewHandler creates the HTTP handler for the proxy:
//
//	GET /                               welcome text
//	GET /getGameLikes?universeId=<id>   likes lookup
//	GET /health                         liveness
//	GET /metrics                        Prometheus metrics
func NewHandler(service *Service, logger zerolog.Logger) *Handler {
	h := &Handler{
		service: service,
		logger:  logger,
		mux:     http.NewServeMux(),
	}

	h.mux.HandleFunc("/{$}", h.handleHome)
	h.mux.HandleFunc("/getGameLikes", h.handleGetGameLikes)
	h.mux.HandleFunc("/health", h.handleHealth)
	h.mux.Handle("/metrics", metrics.Handler())
	h.mux.HandleFunc("/", h.handleNotFound)

	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	withRequestContext(h.logger, h.mux).ServeHTTP(w, r)
}

func (h *Handler) handleHome(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(WelcomeText))
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (h *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorBody{Error: "Not found."})
}

func (h *Handler) handleGetGameLikes(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	logger := zerolog.Ctx(r.Context())

	universeID, err := ParseUniverseID(r.URL.Query().Get("universeId"))
	if err != nil {
		h.writeError(w, logger, err)
		return
	}

	lookupLogger := logger.With().Int64("universe_id", universeID).Logger()

	result, err := h.service.Lookup(r.Context(), universeID)
	if err != nil {
		h.writeError(w, &lookupLogger, err)
		return
	}

	lookupLogger.Info().
		Int64("likes", result.Likes).
		Bool("cached", result.Cached).
		Msg("Likes lookup succeeded")

	writeJSON(w, http.StatusOK, result)
}

// writeError renders err as a JSON error response and logs the diagnostic detail.
func (h *Handler) writeError(w http.ResponseWriter, logger *zerolog.Logger, err error) {
	c := classify(err)
	lookupErrorsTotal.WithLabelValues(c.kind).Inc()

	var event *zerolog.Event
	switch {
	case c.status < http.StatusInternalServerError:
		event = logger.Info()
	case c.kind == string(catalog.KindUnreachable):
		event = logger.Error()
	default:
		event = logger.Warn()
	}

	var catErr *catalog.Error
	if errors.As(err, &catErr) && len(catErr.Payload) > 0 {
		event = event.RawJSON("api_response", catErr.Payload)
	}

	event.Err(err).
		Str("error_kind", c.kind).
		Int("status_code", c.status).
		Msg("Likes lookup failed")

	writeJSON(w, c.status, c.body)
}

// allowGet rejects methods other than GET and HEAD with 405.
func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", "GET, HEAD")
	writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "Method not allowed."})
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
