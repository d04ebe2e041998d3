package httpapi

import (
	"bytes"
	"net/http"

	log "github.com/sirupsen/logrus"

	"jobview-engine/internal/state"
	"jobview-engine/internal/view"
)

type PageHandler struct {
	Store *state.Store
}

func (h PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	page := view.NewPage(h.Store.Snapshot(), h.Store.TakeNotice())
	var buf bytes.Buffer
	if err := view.Render(&buf, page); err != nil {
		log.WithError(err).WithField("request_id", RequestIDFrom(r.Context())).Error("[page] render failed")
		WriteError(w, r, http.StatusInternalServerError, "internal_error", "could not render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}
