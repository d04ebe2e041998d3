package httpapi

import (
	"errors"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"jobview-engine/internal/domain"
	"jobview-engine/internal/ingest"
	"jobview-engine/internal/state"
)

type JobsHandler struct {
	Store    *state.Store
	MaxBytes int64
}

type jobsResponse struct {
	LoadID string       `json:"load_id,omitempty"`
	File   string       `json:"file,omitempty"`
	Count  int          `json:"count"`
	Total  int          `json:"total"`
	Jobs   []domain.Job `json:"jobs"`
}

// List returns the active (filtered and sorted) subset.
func (h JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	st := h.Store.Snapshot()
	writeJSON(w, jobsResponse{
		LoadID: st.LoadID, File: st.FileName,
		Count: len(st.Active), Total: len(st.All), Jobs: st.Active,
	})
}

func (h JobsHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	st := h.Store.Snapshot()
	writeJSON(w, jobsResponse{
		LoadID: st.LoadID, File: st.FileName,
		Count: len(st.All), Total: len(st.All), Jobs: st.All,
	})
}

// Upload takes the export from the multipart field "jobFile".
func (h JobsHandler) Upload(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFrom(r.Context())
	if h.MaxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes)
	}

	f, hdr, err := r.FormFile("jobFile")
	var mbe *http.MaxBytesError
	switch {
	case errors.As(err, &mbe):
		h.tooLarge(w, r)
		return
	case errors.Is(err, http.ErrMissingFile):
		// No file picked: same rejection as a wrong name.
		_, err = h.Store.Load(reqID, "", strings.NewReader(""))
		h.loadFailed(w, r, err)
		return
	case err != nil:
		WriteError(w, r, http.StatusBadRequest, "bad_request", "expected a multipart form with field jobFile")
		return
	}
	defer f.Close()

	st, err := h.Store.Load(reqID, hdr.Filename, f)
	if err != nil {
		h.loadFailed(w, r, err)
		return
	}

	if wantsHTML(r) {
		backToPage(w, r)
		return
	}
	writeJSON(w, map[string]any{
		"load_id":    st.LoadID,
		"file":       st.FileName,
		"jobs":       len(st.All),
		"categories": st.Categories,
	})
}

const tooLargeMsg = "export is larger than upload.max_bytes"

func (h JobsHandler) tooLarge(w http.ResponseWriter, r *http.Request) {
	if wantsHTML(r) {
		h.Store.SetNotice(tooLargeMsg)
		backToPage(w, r)
		return
	}
	WriteError(w, r, http.StatusRequestEntityTooLarge, "payload_too_large", tooLargeMsg)
}

// loadFailed answers a rejected upload. Page users get the message as a
// notice on the next render; API callers only get the error body.
func (h JobsHandler) loadFailed(w http.ResponseWriter, r *http.Request, err error) {
	if wantsHTML(r) {
		h.Store.SetNotice(uploadNotice(err))
		backToPage(w, r)
		return
	}
	switch {
	case errors.Is(err, ingest.ErrWrongFile):
		WriteError(w, r, http.StatusBadRequest, "wrong_file", ingest.ErrWrongFile.Error())
	case errors.Is(err, ingest.ErrMalformed):
		WriteError(w, r, http.StatusBadRequest, "malformed_payload", ingest.ErrMalformed.Error())
	default:
		log.WithError(err).Error("[upload] read failed")
		WriteError(w, r, http.StatusBadRequest, "bad_request", "could not read the uploaded file")
	}
}

func uploadNotice(err error) string {
	switch {
	case errors.Is(err, ingest.ErrWrongFile):
		return ingest.ErrWrongFile.Error()
	case errors.Is(err, ingest.ErrMalformed):
		return ingest.ErrMalformed.Error()
	default:
		return "could not read the uploaded file"
	}
}
