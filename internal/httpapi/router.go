package httpapi

import "net/http"

// NewMux wires every user action of the page to its handler.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Page
	ph := PageHandler{Store: d.Store}
	mux.HandleFunc("/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ph.Index,
	}))

	// Jobs
	jh := JobsHandler{Store: d.Store, MaxBytes: d.Cfg.Upload.MaxBytes}
	mux.Handle("/upload", RateLimit(d.UploadLimiter)(methodMux(map[string]http.HandlerFunc{
		http.MethodPost: jh.Upload,
	})))
	mux.HandleFunc("/jobs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.List,
	}))
	mux.HandleFunc("/jobs/all", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.ListAll,
	}))

	// Filters
	fh := FiltersHandler{Store: d.Store}
	mux.HandleFunc("/filters", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: fh.Get,
	}))
	mux.HandleFunc("/filters/apply", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: fh.Apply,
	}))

	// Sort
	sh := SortHandler{Store: d.Store}
	mux.HandleFunc("/sort/apply", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.Apply,
	}))

	// Details (forms can't send DELETE, hence /details/close)
	dh := DetailsHandler{Store: d.Store}
	mux.HandleFunc("/details", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:    dh.Get,
		http.MethodPost:   dh.Show,
		http.MethodDelete: dh.Close,
	}))
	mux.HandleFunc("/details/close", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: dh.Close,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	hh := HealthHandler{Store: d.Store}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	ch := ConfigHandler{Cfg: d.Cfg}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
	}))

	return mux
}

// NewHandler is the mux behind the standard middleware chain.
func NewHandler(d Deps) http.Handler {
	return Chain(NewMux(d), RequestID, Recover, AccessLog, Cors)
}
