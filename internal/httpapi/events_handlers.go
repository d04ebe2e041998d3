package httpapi

import (
	"fmt"
	"io"
	"net/http"

	"jobview-engine/internal/events"
)

// EventsHandler streams state changes so an open page can refresh itself.
type EventsHandler struct {
	Hub *events.Hub
}

func writeSSE(w io.Writer, f http.Flusher, data string) {
	fmt.Fprintf(w, "event: message\ndata: %s\n\n", data)
	f.Flush()
}

func (h EventsHandler) ServeSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteError(w, r, http.StatusInternalServerError, "stream_unsupported", "Streaming unsupported")
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := h.Hub.Subscribe()
	defer h.Hub.Unsubscribe(ch)

	writeSSE(w, flusher, events.MakeEvent(RequestIDFrom(r.Context()), events.Ping, 1, nil))

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			writeSSE(w, flusher, msg)
		}
	}
}
