package state

import (
	"errors"
	"io"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"jobview-engine/internal/events"
	"jobview-engine/internal/filter"
	"jobview-engine/internal/ingest"
	"jobview-engine/internal/order"
)

// Store owns the session state. Every user action runs under one lock, so
// readers only ever see whole snapshots.
type Store struct {
	mu     sync.Mutex
	cur    State
	notice string

	sorter *order.Sorter
	hub    *events.Hub
	now    func() time.Time
}

func NewStore(sorter *order.Sorter, hub *events.Hub) *Store {
	return &Store{
		cur:    Initial(),
		sorter: sorter,
		hub:    hub,
		now:    time.Now,
	}
}

func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// SetNotice queues a message for the next page render.
func (s *Store) SetNotice(msg string) {
	s.mu.Lock()
	s.notice = msg
	s.mu.Unlock()
}

// TakeNotice returns the pending user-facing message once.
func (s *Store) TakeNotice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.notice
	s.notice = ""
	return n
}

// Load reads and parses the upload, then swaps it in. On any error the
// current records are kept.
func (s *Store) Load(reqID, name string, r io.Reader) (State, error) {
	// Parsing happens outside the lock; only the swap is serialised.
	jobs, err := ingest.Load(name, r)
	if err != nil {
		s.reject(reqID, name, err)
		return s.Snapshot(), err
	}

	s.mu.Lock()
	s.cur = Load(name, jobs, s.now().UTC())
	s.notice = ""
	next := s.cur
	s.mu.Unlock()

	s.publish(reqID, events.JobsLoaded, map[string]any{
		"load_id": next.LoadID,
		"file":    next.FileName,
		"jobs":    len(next.All),
	})
	return next, nil
}

func (s *Store) reject(reqID, name string, err error) {
	reason := "malformed_payload"
	if errors.Is(err, ingest.ErrWrongFile) {
		reason = "wrong_file"
	}
	log.WithFields(log.Fields{"file": name, "reason": reason}).WithError(err).Warn("[store] load rejected")

	s.publish(reqID, events.LoadRejected, map[string]any{"file": name, "reason": reason})
}

func (s *Store) ApplyFilter(reqID string, sel filter.Selection) State {
	s.mu.Lock()
	s.cur = ApplyFilter(s.cur, sel, s.sorter)
	next := s.cur
	s.mu.Unlock()

	s.publish(reqID, events.FiltersApplied, map[string]any{
		"selection": next.Selection,
		"active":    len(next.Active),
	})
	return next
}

func (s *Store) ApplySort(reqID string, key order.Key) State {
	s.mu.Lock()
	s.cur = ApplySort(s.cur, key, s.sorter)
	next := s.cur
	s.mu.Unlock()

	s.publish(reqID, events.SortApplied, map[string]any{
		"sort":   next.SortKey,
		"active": len(next.Active),
	})
	return next
}

// ShowDetails reports false, and publishes nothing, when no job has the title.
func (s *Store) ShowDetails(reqID, title string) (State, bool) {
	s.mu.Lock()
	next, ok := ShowDetails(s.cur, title)
	s.cur = next
	s.mu.Unlock()

	if ok {
		s.publish(reqID, events.DetailsOpened, map[string]any{"title": title})
	}
	return next, ok
}

func (s *Store) CloseDetails(reqID string) State {
	s.mu.Lock()
	s.cur = CloseDetails(s.cur)
	next := s.cur
	s.mu.Unlock()

	s.publish(reqID, events.DetailsClosed, nil)
	return next
}

func (s *Store) publish(reqID, typ string, data any) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(events.MakeEvent(reqID, typ, 1, data))
}
