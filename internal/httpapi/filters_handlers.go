package httpapi

import (
	"net/http"

	"jobview-engine/internal/filter"
	"jobview-engine/internal/state"
)

type FiltersHandler struct {
	Store *state.Store
}

func (h FiltersHandler) Get(w http.ResponseWriter, r *http.Request) {
	st := h.Store.Snapshot()
	writeJSON(w, map[string]any{
		"categories": st.Categories,
		"selection":  st.Selection,
		"known":      st.Categories.Contains(st.Selection),
	})
}

func (h FiltersHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var sel filter.Selection
	err := decodeInput(r, &sel, func(get func(string) string) {
		sel = filter.Selection{Level: get("level"), Type: get("type"), Skill: get("skill")}
	})
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "invalid filter selection: "+err.Error())
		return
	}

	st := h.Store.ApplyFilter(RequestIDFrom(r.Context()), sel)

	if wantsHTML(r) {
		backToPage(w, r)
		return
	}
	writeJSON(w, map[string]any{
		"selection": st.Selection,
		"known":     st.Categories.Contains(st.Selection),
		"count":     len(st.Active),
		"jobs":      st.Active,
	})
}
