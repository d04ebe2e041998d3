package httpapi

import (
	"net/http"
	"time"

	"jobview-engine/internal/state"
)

type HealthHandler struct {
	Store *state.Store
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	st := h.Store.Snapshot()
	writeJSON(w, map[string]any{
		"ok":     true,
		"time":   time.Now().Format(time.RFC3339),
		"loaded": st.Loaded(),
		"jobs":   len(st.All),
	})
}
