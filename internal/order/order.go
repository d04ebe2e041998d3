package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"jobview-engine/internal/domain"
)

// Key names one of the fixed orderings offered by the sort control.
type Key string

const (
	None         Key = ""
	TitleAsc     Key = "titleAsc"
	TitleDesc    Key = "titleDesc"
	PostedNewest Key = "postedNewest"
	PostedOldest Key = "postedOldest"
)

var ErrUnknownKey = errors.New("unknown sort option")

// Keys lists the selectable orderings in control order.
func Keys() []Key {
	return []Key{TitleAsc, TitleDesc, PostedNewest, PostedOldest}
}

func (k Key) Label() string {
	switch k {
	case TitleAsc:
		return "Title (A-Z)"
	case TitleDesc:
		return "Title (Z-A)"
	case PostedNewest:
		return "Posted (Newest)"
	case PostedOldest:
		return "Posted (Oldest)"
	default:
		return "None"
	}
}

func ParseKey(s string) (Key, error) {
	k := Key(s)
	if slices.Contains(Keys(), k) {
		return k, nil
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownKey, s)
}

// Sorter orders jobs. Titles compare with the collation rules of its locale.
type Sorter struct {
	tag language.Tag
}

func NewSorter(locale string) (*Sorter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("sorting locale %q: %w", locale, err)
	}
	return &Sorter{tag: tag}, nil
}

func (s *Sorter) Locale() string {
	return s.tag.String()
}

type dated struct {
	job domain.Job
	at  time.Time
}

// Sort returns a reordered copy of jobs. Equal keys keep their input order.
func (s *Sorter) Sort(jobs []domain.Job, key Key) []domain.Job {
	out := slices.Clone(jobs)
	if out == nil {
		out = []domain.Job{}
	}

	switch key {
	case TitleAsc, TitleDesc:
		// Collator keeps scratch buffers, so one per call.
		c := collate.New(s.tag)
		slices.SortStableFunc(out, func(a, b domain.Job) int {
			if key == TitleDesc {
				a, b = b, a
			}
			return c.CompareString(a.Title, b.Title)
		})
	case PostedNewest, PostedOldest:
		ds := make([]dated, len(out))
		for i, j := range out {
			ds[i] = dated{job: j, at: j.PostedAt()}
		}
		slices.SortStableFunc(ds, func(a, b dated) int {
			if key == PostedNewest {
				a, b = b, a
			}
			return a.at.Compare(b.at)
		})
		for i, d := range ds {
			out[i] = d.job
		}
	}
	return out
}
