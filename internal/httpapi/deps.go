package httpapi

import (
	"jobview-engine/internal/config"
	"jobview-engine/internal/events"
	"jobview-engine/internal/state"
)

type Deps struct {
	Store *state.Store
	Hub   *events.Hub

	// Effective config, already validated
	Cfg config.Config

	// Throttles /upload per client; nil disables it
	UploadLimiter *ClientLimiter
}
