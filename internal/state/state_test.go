package state

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobview-engine/internal/domain"
	"jobview-engine/internal/events"
	"jobview-engine/internal/filter"
	"jobview-engine/internal/ingest"
	"jobview-engine/internal/order"
)

const examplePayload = `[{"Title":"A","Posted":"2024-01-01","Level":"Entry"},{"Title":"B","Posted":"not-a-date","Level":"Expert"}]`

func newSorter(t *testing.T) *order.Sorter {
	t.Helper()
	s, err := order.NewSorter("en")
	require.NoError(t, err)
	return s
}

func titles(jobs []domain.Job) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.Title)
	}
	return out
}

func loadedStore(t *testing.T) (*Store, *events.Hub) {
	t.Helper()
	hub := events.NewHub()
	s := NewStore(newSorter(t), hub)
	_, err := s.Load("", ingest.ExpectedFilename, strings.NewReader(examplePayload))
	require.NoError(t, err)
	return s, hub
}

func TestLoadResetsEverything(t *testing.T) {
	sorter := newSorter(t)
	jobs := []domain.Job{
		domain.NewJob("A", "2024-01-01", "", "Entry", "", ""),
		domain.NewJob("B", "not-a-date", "", "Expert", "", ""),
	}
	prev := ApplySort(ApplyFilter(Load("x", jobs, time.Now()), filter.Selection{Level: "Entry"}, sorter), order.TitleDesc, sorter)
	prev, _ = ShowDetails(prev, "A")

	next := Load(ingest.ExpectedFilename, jobs[1:], time.Now())

	assert.Equal(t, []string{"B"}, titles(next.All))
	assert.Equal(t, []string{"B"}, titles(next.Active))
	assert.Equal(t, filter.DefaultSelection(), next.Selection)
	assert.Equal(t, order.None, next.SortKey)
	assert.Nil(t, next.Detail)
	assert.Equal(t, []string{filter.All, "Expert"}, next.Categories.Levels)
	assert.NotEqual(t, prev.LoadID, next.LoadID)
}

func TestApplyFilterExample(t *testing.T) {
	s, _ := loadedStore(t)

	st := s.ApplyFilter("", filter.Selection{Level: "Entry", Type: filter.All, Skill: filter.All})

	assert.Equal(t, []string{"A"}, titles(st.Active))
	assert.Equal(t, []string{"A", "B"}, titles(st.All))
}

func TestApplyFilterKeepsSortChoice(t *testing.T) {
	s, _ := loadedStore(t)

	s.ApplySort("", order.PostedOldest)
	st := s.ApplyFilter("", filter.DefaultSelection())

	assert.Equal(t, []string{"B", "A"}, titles(st.Active))
}

func TestApplySortExample(t *testing.T) {
	s, _ := loadedStore(t)

	assert.Equal(t, []string{"A", "B"}, titles(s.ApplySort("", order.PostedNewest).Active))
	assert.Equal(t, []string{"B", "A"}, titles(s.ApplySort("", order.PostedOldest).Active))
	assert.Equal(t, []string{"A", "B"}, titles(s.Snapshot().All))
}

func TestApplySortOnlyReordersActive(t *testing.T) {
	s, _ := loadedStore(t)
	s.ApplyFilter("", filter.Selection{Level: "Expert"})

	st := s.ApplySort("", order.TitleAsc)

	assert.Equal(t, []string{"B"}, titles(st.Active))
	assert.Equal(t, "Expert", st.Selection.Level)
}

func TestWrongFileLeavesState(t *testing.T) {
	s, _ := loadedStore(t)
	before := s.Snapshot()

	st, err := s.Load("", "jobs.json", strings.NewReader(`[]`))

	assert.ErrorIs(t, err, ingest.ErrWrongFile)
	assert.Equal(t, before, st)
	assert.Equal(t, before, s.Snapshot())
	assert.Empty(t, s.TakeNotice())
}

func TestNoticeIsTakenOnce(t *testing.T) {
	s := NewStore(newSorter(t), nil)

	s.SetNotice(ingest.ErrWrongFile.Error())

	assert.Contains(t, s.TakeNotice(), "upwork_jobs.json")
	assert.Empty(t, s.TakeNotice())
}

func TestLoadClearsNotice(t *testing.T) {
	s := NewStore(newSorter(t), nil)
	s.SetNotice("stale")

	_, err := s.Load("", ingest.ExpectedFilename, strings.NewReader(`[]`))

	require.NoError(t, err)
	assert.Empty(t, s.TakeNotice())
}

func TestMalformedPayloadLeavesState(t *testing.T) {
	s, _ := loadedStore(t)
	before := s.Snapshot()

	_, err := s.Load("", ingest.ExpectedFilename, strings.NewReader(`{not valid json`))

	assert.ErrorIs(t, err, ingest.ErrMalformed)
	assert.Equal(t, before, s.Snapshot())
}

func TestMalformedFirstLoadStaysEmpty(t *testing.T) {
	s := NewStore(newSorter(t), nil)

	_, err := s.Load("", ingest.ExpectedFilename, strings.NewReader(`[`))

	require.Error(t, err)
	assert.False(t, s.Snapshot().Loaded())
	assert.Empty(t, s.Snapshot().All)
}

func TestShowDetailsFirstMatch(t *testing.T) {
	jobs := []domain.Job{
		domain.NewJob("dup", "", "", "", "", "first"),
		domain.NewJob("dup", "", "", "", "", "second"),
	}
	st, ok := ShowDetails(Load(ingest.ExpectedFilename, jobs, time.Now()), "dup")

	require.True(t, ok)
	assert.Equal(t, "first", st.Detail.Detail)
}

func TestShowDetailsSearchesAllRecords(t *testing.T) {
	s, _ := loadedStore(t)
	s.ApplyFilter("", filter.Selection{Level: "Entry"})

	st, ok := s.ShowDetails("", "B")

	require.True(t, ok)
	assert.Equal(t, "Expert", st.Detail.Level)
}

func TestShowDetailsMissIsNoop(t *testing.T) {
	s, hub := loadedStore(t)
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)
	before := s.Snapshot()

	st, ok := s.ShowDetails("", "nope")

	assert.False(t, ok)
	assert.Equal(t, before, st)
	assert.Len(t, ch, 0)
}

func TestCloseDetails(t *testing.T) {
	s, _ := loadedStore(t)
	s.ShowDetails("", "A")

	st := s.CloseDetails("")

	assert.Nil(t, st.Detail)
}

func TestStorePublishesEvents(t *testing.T) {
	hub := events.NewHub()
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)
	s := NewStore(newSorter(t), hub)

	_, _ = s.Load("r1", "jobs.json", strings.NewReader(`[]`))
	_, _ = s.Load("r2", ingest.ExpectedFilename, strings.NewReader(examplePayload))
	s.ApplyFilter("r3", filter.DefaultSelection())
	s.ApplySort("r4", order.TitleAsc)
	s.ShowDetails("r5", "A")
	s.CloseDetails("r6")

	var got []string
	for len(ch) > 0 {
		var e events.Event
		require.NoError(t, json.Unmarshal([]byte(<-ch), &e))
		got = append(got, e.Type+"/"+e.RequestID)
	}
	assert.Equal(t, []string{
		"load_rejected/r1",
		"jobs_loaded/r2",
		"filters_applied/r3",
		"sort_applied/r4",
		"details_opened/r5",
		"details_closed/r6",
	}, got)
}

func TestActiveIsAlwaysSubsetOfAll(t *testing.T) {
	s, _ := loadedStore(t)
	steps := []func() State{
		func() State { return s.ApplyFilter("", filter.Selection{Level: "Expert"}) },
		func() State { return s.ApplySort("", order.TitleDesc) },
		func() State { return s.ApplyFilter("", filter.DefaultSelection()) },
		func() State { return s.ApplySort("", order.PostedNewest) },
	}
	for _, step := range steps {
		st := step()
		count := map[domain.Job]int{}
		for _, j := range st.All {
			count[j]++
		}
		for _, j := range st.Active {
			count[j]--
			assert.GreaterOrEqual(t, count[j], 0)
		}
	}
}
