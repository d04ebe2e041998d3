package filter

import (
	"jobview-engine/internal/domain"
)

// All is the wildcard choice offered first in every dimension.
const All = "All"

type Selection struct {
	Level string `json:"level"`
	Type  string `json:"type"`
	Skill string `json:"skill"`
}

func DefaultSelection() Selection {
	return Selection{Level: All, Type: All, Skill: All}
}

// Normalize maps empty choices to All.
func (s Selection) Normalize() Selection {
	if s.Level == "" {
		s.Level = All
	}
	if s.Type == "" {
		s.Type = All
	}
	if s.Skill == "" {
		s.Skill = All
	}
	return s
}

func (s Selection) IsDefault() bool {
	return s.Normalize() == DefaultSelection()
}

// Categories holds the choices for each dropdown, All first, then values
// in the order they were first seen.
type Categories struct {
	Levels []string `json:"levels"`
	Types  []string `json:"types"`
	Skills []string `json:"skills"`
}

func Derive(jobs []domain.Job) Categories {
	return Categories{
		Levels: distinct(jobs, func(j domain.Job) string { return j.Level }),
		Types:  distinct(jobs, func(j domain.Job) string { return j.Type }),
		Skills: distinct(jobs, func(j domain.Job) string { return j.Skill }),
	}
}

func distinct(jobs []domain.Job, field func(domain.Job) string) []string {
	seen := map[string]bool{All: true}
	out := []string{All}
	for _, j := range jobs {
		v := field(j)
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// Contains reports whether every choice in sel is offered.
func (c Categories) Contains(sel Selection) bool {
	sel = sel.Normalize()
	return has(c.Levels, sel.Level) && has(c.Types, sel.Type) && has(c.Skills, sel.Skill)
}

func has(xs []string, v string) bool {
	if v == All {
		return true
	}
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func matches(want, got string) bool {
	return want == All || want == got
}

// Apply keeps jobs matching every non-All choice exactly. The result is a new
// slice in input order.
func Apply(jobs []domain.Job, sel Selection) []domain.Job {
	sel = sel.Normalize()
	out := make([]domain.Job, 0, len(jobs))
	for _, j := range jobs {
		if matches(sel.Level, j.Level) && matches(sel.Type, j.Type) && matches(sel.Skill, j.Skill) {
			out = append(out, j)
		}
	}
	return out
}
