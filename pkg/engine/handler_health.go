// Liveness probe handler for the calcd engine.

package engine

import (
	"net/http"
	"time"
)

// handleHealthz handles the liveness probe endpoint.
func (h *Handler) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	response := map[string]string{"status": "healthy", "timestamp": time.Now().UTC().Format(time.RFC3339)}
	writeJSON(w, http.StatusOK, response)
}
