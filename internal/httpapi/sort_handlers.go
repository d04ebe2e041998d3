package httpapi

import (
	"net/http"

	"jobview-engine/internal/order"
	"jobview-engine/internal/state"
)

type SortHandler struct {
	Store *state.Store
}

type sortInput struct {
	Sort string `json:"sort"`
}

func (h SortHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var in sortInput
	err := decodeInput(r, &in, func(get func(string) string) {
		in.Sort = get("sort")
	})
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "invalid sort request: "+err.Error())
		return
	}
	key, err := order.ParseKey(in.Sort)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "unknown_sort", err.Error())
		return
	}

	st := h.Store.ApplySort(RequestIDFrom(r.Context()), key)

	if wantsHTML(r) {
		backToPage(w, r)
		return
	}
	writeJSON(w, map[string]any{
		"sort":  st.SortKey,
		"count": len(st.Active),
		"jobs":  st.Active,
	})
}
