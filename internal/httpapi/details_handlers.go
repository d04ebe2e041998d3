package httpapi

import (
	"html/template"
	"net/http"

	"jobview-engine/internal/domain"
	"jobview-engine/internal/state"
)

type DetailsHandler struct {
	Store *state.Store
}

type detailsResponse struct {
	Open   bool           `json:"open"`
	Job    *domain.Job    `json:"job,omitempty"`
	Fields []domain.Field `json:"fields,omitempty"`
	HTML   template.HTML  `json:"html,omitempty"`
}

func details(st state.State) detailsResponse {
	if st.Detail == nil {
		return detailsResponse{}
	}
	return detailsResponse{
		Open:   true,
		Job:    st.Detail,
		Fields: st.Detail.Fields(),
		HTML:   st.Detail.DetailsHTML(),
	}
}

func (h DetailsHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, details(h.Store.Snapshot()))
}

type showInput struct {
	Title string `json:"title"`
}

// Show opens the first job with the given title. Unknown titles are ignored.
func (h DetailsHandler) Show(w http.ResponseWriter, r *http.Request) {
	var in showInput
	err := decodeInput(r, &in, func(get func(string) string) {
		in.Title = get("title")
	})
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "invalid details request: "+err.Error())
		return
	}

	st, ok := h.Store.ShowDetails(RequestIDFrom(r.Context()), in.Title)

	if wantsHTML(r) {
		backToPage(w, r)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, details(st))
}

func (h DetailsHandler) Close(w http.ResponseWriter, r *http.Request) {
	h.Store.CloseDetails(RequestIDFrom(r.Context()))

	if wantsHTML(r) {
		backToPage(w, r)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
