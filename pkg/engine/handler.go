// Core HTTP request handler for the arithmetic service.

package engine

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/getcalcd/calcd/pkg/calc"
	"github.com/getcalcd/calcd/pkg/logging"
)

// resultResponse is the body returned by every arithmetic route.
type resultResponse struct {
	Result int64 `json:"result"`
}

// errorResponse is the body returned for client errors.
type errorResponse struct {
	Error string `json:"error"`
}

// Handler routes incoming requests to the arithmetic operations.
// Each request is handled independently; there is no cross-request state.
type Handler struct {
	root    http.Handler
	log     *slog.Logger
	metrics *metrics
}

// NewHandler creates a new Handler with all routes registered.
func NewHandler() *Handler {
	h := &Handler{
		log:     logging.Nop(),
		metrics: newMetrics(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.handleGreeting)
	for _, op := range calc.Operations() {
		mux.HandleFunc(fmt.Sprintf("GET /%s/{num1}/{num2}", op.Name), h.handleOperation(op))
	}
	mux.HandleFunc("GET /healthz", h.handleHealthz)
	mux.Handle("GET /metrics", promhttp.HandlerFor(h.metrics.registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/", h.handleNotFound)

	h.root = h.instrument(mux)
	return h
}

// SetLogger sets the operational logger used for access logging.
func (h *Handler) SetLogger(log *slog.Logger) {
	if log != nil {
		h.log = log
	}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.root.ServeHTTP(w, r)
}

// handleGreeting serves the fixed greeting on the root path.
func (h *Handler) handleGreeting(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"Hello": "World"})
}

// handleOperation serves one arithmetic route. The two path segments must
// coerce to int64; anything else is a client error from the routing layer.
func (h *Handler) handleOperation(op calc.Operation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := strconv.ParseInt(r.PathValue("num1"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid integer %q for num1", r.PathValue("num1")))
			return
		}
		b, err := strconv.ParseInt(r.PathValue("num2"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid integer %q for num2", r.PathValue("num2")))
			return
		}
		writeJSON(w, http.StatusOK, resultResponse{Result: op.Apply(a, b)})
	}
}

// handleNotFound is the fallback for paths outside the route table.
func (h *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, fmt.Sprintf("no route for %s", r.URL.Path))
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response with the given status code.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
