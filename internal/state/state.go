package state

import (
	"time"

	"github.com/google/uuid"

	"jobview-engine/internal/domain"
	"jobview-engine/internal/filter"
	"jobview-engine/internal/order"
)

// State is one immutable snapshot of the session. Handlers return a new
// State and never modify the slices of the one they were given.
type State struct {
	All        []domain.Job      `json:"-"`
	Active     []domain.Job      `json:"-"`
	Categories filter.Categories `json:"categories"`
	Selection  filter.Selection  `json:"selection"`
	SortKey    order.Key         `json:"sort"`
	Detail     *domain.Job       `json:"detail,omitempty"`

	LoadID   string    `json:"load_id,omitempty"`
	FileName string    `json:"file,omitempty"`
	LoadedAt time.Time `json:"loaded_at,omitempty"`
}

func Initial() State {
	return State{
		All:        []domain.Job{},
		Active:     []domain.Job{},
		Categories: filter.Derive(nil),
		Selection:  filter.DefaultSelection(),
	}
}

func (s State) Loaded() bool { return s.LoadID != "" }

// Load replaces the whole record set. Filters, sort and the detail panel reset.
func Load(name string, jobs []domain.Job, at time.Time) State {
	if jobs == nil {
		jobs = []domain.Job{}
	}
	return State{
		All:        jobs,
		Active:     append([]domain.Job{}, jobs...),
		Categories: filter.Derive(jobs),
		Selection:  filter.DefaultSelection(),
		SortKey:    order.None,
		LoadID:     uuid.NewString(),
		FileName:   name,
		LoadedAt:   at,
	}
}

// ApplyFilter recomputes Active from All: filter first, then the current sort.
func ApplyFilter(s State, sel filter.Selection, sorter *order.Sorter) State {
	s.Selection = sel.Normalize()
	s.Active = sorter.Sort(filter.Apply(s.All, s.Selection), s.SortKey)
	return s
}

// ApplySort reorders the current Active subset.
func ApplySort(s State, key order.Key, sorter *order.Sorter) State {
	s.SortKey = key
	s.Active = sorter.Sort(s.Active, key)
	return s
}

// ShowDetails opens the first job in All with this exact title. A miss
// leaves the state as it was.
func ShowDetails(s State, title string) (State, bool) {
	for _, j := range s.All {
		if j.Title == title {
			s.Detail = &j
			return s, true
		}
	}
	return s, false
}

func CloseDetails(s State) State {
	s.Detail = nil
	return s
}
