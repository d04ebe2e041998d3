package view

import (
	"embed"
	"html/template"
	"io"

	"jobview-engine/internal/domain"
	"jobview-engine/internal/ingest"
	"jobview-engine/internal/order"
	"jobview-engine/internal/state"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const excerptLen = 160

type Option struct {
	Value    string
	Label    string
	Selected bool
}

type selectArgs struct {
	ID      string
	Name    string
	Options []Option
}

// Card is the list summary of one job.
type Card struct {
	Title   string
	Posted  string
	Type    string
	Level   string
	Skill   string
	Excerpt string
}

type Page struct {
	ExpectedFile string
	Notice       string

	Loaded   bool
	FileName string
	Count    int
	Total    int
	// UnknownFilter is set when a selected value is not in the loaded export.
	UnknownFilter bool

	Levels []Option
	Types  []Option
	Skills []Option
	Sorts  []Option

	Jobs   []Card
	Detail template.HTML
}

var pageTmpl = template.Must(template.New("page.html.tmpl").Funcs(template.FuncMap{
	"args": func(id, name string, opts []Option) selectArgs {
		return selectArgs{ID: id, Name: name, Options: opts}
	},
}).ParseFS(templateFS, "templates/page.html.tmpl"))

func NewPage(st state.State, notice string) Page {
	p := Page{
		ExpectedFile:  ingest.ExpectedFilename,
		Notice:        notice,
		Loaded:        st.Loaded(),
		FileName:      st.FileName,
		Count:         len(st.Active),
		Total:         len(st.All),
		UnknownFilter: !st.Categories.Contains(st.Selection),
		Levels:        options(st.Categories.Levels, st.Selection.Level),
		Types:         options(st.Categories.Types, st.Selection.Type),
		Skills:        options(st.Categories.Skills, st.Selection.Skill),
		Sorts:         sortOptions(st.SortKey),
		Jobs:          make([]Card, 0, len(st.Active)),
	}
	for _, j := range st.Active {
		p.Jobs = append(p.Jobs, card(j))
	}
	if st.Detail != nil {
		p.Detail = st.Detail.DetailsHTML()
	}
	return p
}

func card(j domain.Job) Card {
	c := Card{
		Title:  j.Title,
		Posted: j.Posted,
		Type:   j.Type,
		Level:  j.Level,
		Skill:  j.Skill,
	}
	if j.Detail != domain.NoDetails {
		c.Excerpt = j.Excerpt(excerptLen)
	}
	return c
}

// options keeps a selected value the export does not offer, so the form
// still shows what the list is filtered on.
func options(values []string, selected string) []Option {
	out := make([]Option, 0, len(values)+1)
	found := false
	for _, v := range values {
		out = append(out, Option{Value: v, Label: v, Selected: v == selected})
		found = found || v == selected
	}
	if !found && selected != "" {
		out = append(out, Option{Value: selected, Label: selected + " (not in file)", Selected: true})
	}
	return out
}

func sortOptions(cur order.Key) []Option {
	var out []Option
	for _, k := range order.Keys() {
		out = append(out, Option{Value: string(k), Label: k.Label(), Selected: k == cur})
	}
	return out
}

func Render(w io.Writer, p Page) error {
	return pageTmpl.Execute(w, p)
}
