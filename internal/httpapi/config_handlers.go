package httpapi

import (
	"net/http"

	"jobview-engine/internal/config"
)

type ConfigHandler struct {
	Cfg config.Config
}

func (h ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Cfg)
}
