package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jobview-engine/internal/domain"
)

func sample() []domain.Job {
	return []domain.Job{
		domain.NewJob("A", "2024-01-01", "Hourly", "Entry", "Go", ""),
		domain.NewJob("B", "not-a-date", "Fixed", "Expert", "Rust", ""),
		domain.NewJob("C", "2024-02-01", "Hourly", "Entry", "Rust", ""),
		domain.NewJob("D", "", "", "Intermediate", "Go", ""),
	}
}

func titles(jobs []domain.Job) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.Title)
	}
	return out
}

func TestDerive(t *testing.T) {
	c := Derive(sample())

	assert.Equal(t, []string{All, "Entry", "Expert", "Intermediate"}, c.Levels)
	assert.Equal(t, []string{All, "Hourly", "Fixed", domain.Unknown}, c.Types)
	assert.Equal(t, []string{All, "Go", "Rust"}, c.Skills)
}

func TestDeriveEmpty(t *testing.T) {
	c := Derive(nil)

	assert.Equal(t, Categories{Levels: []string{All}, Types: []string{All}, Skills: []string{All}}, c)
}

func TestDeriveDoesNotRepeatAll(t *testing.T) {
	c := Derive([]domain.Job{domain.NewJob("x", "", "", All, "", "")})

	assert.Equal(t, []string{All}, c.Levels)
}

func TestApply(t *testing.T) {
	tests := map[string]struct {
		sel  Selection
		want []string
	}{
		"default keeps everything":    {sel: DefaultSelection(), want: []string{"A", "B", "C", "D"}},
		"zero value keeps everything": {sel: Selection{}, want: []string{"A", "B", "C", "D"}},
		"level":                       {sel: Selection{Level: "Entry"}, want: []string{"A", "C"}},
		"level and skill":             {sel: Selection{Level: "Entry", Skill: "Rust"}, want: []string{"C"}},
		"all three":                   {sel: Selection{Level: "Expert", Type: "Fixed", Skill: "Rust"}, want: []string{"B"}},
		"unknown placeholder":         {sel: Selection{Type: domain.Unknown}, want: []string{"D"}},
		"case sensitive":              {sel: Selection{Level: "entry"}, want: []string{}},
		"no partial match":            {sel: Selection{Skill: "Ru"}, want: []string{}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, titles(Apply(sample(), tc.sel)))
		})
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	sel := Selection{Level: "Entry", Type: All, Skill: All}
	jobs := sample()

	once := Apply(jobs, sel)
	twice := Apply(jobs, sel)

	assert.Equal(t, once, twice)
	assert.Equal(t, once, Apply(once, sel))
}

func TestApplyDoesNotAliasInput(t *testing.T) {
	jobs := sample()

	out := Apply(jobs, DefaultSelection())
	out[0].Title = "changed"

	assert.Equal(t, "A", jobs[0].Title)
}

func TestApplyReturnsSubset(t *testing.T) {
	jobs := sample()
	index := map[domain.Job]int{}
	for _, j := range jobs {
		index[j]++
	}

	for _, j := range Apply(jobs, Selection{Skill: "Go"}) {
		assert.Positive(t, index[j])
		index[j]--
	}
}

func TestContains(t *testing.T) {
	c := Derive(sample())

	assert.True(t, c.Contains(DefaultSelection()))
	assert.True(t, c.Contains(Selection{Level: "Expert"}))
	assert.False(t, c.Contains(Selection{Level: "Guru"}))
}

func TestIsDefault(t *testing.T) {
	assert.True(t, Selection{}.IsDefault())
	assert.True(t, DefaultSelection().IsDefault())
	assert.False(t, Selection{Skill: "Go"}.IsDefault())
}
