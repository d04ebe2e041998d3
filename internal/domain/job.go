package domain

import (
	"html/template"
	"strings"
	"time"

	"github.com/jinzhu/now"
	log "github.com/sirupsen/logrus"
)

const (
	Unknown   = "Unknown"
	NoDetails = "No details available"
)

// Job is one listing from the export. Build it with NewJob so no field is left blank.
type Job struct {
	Title  string `json:"title"`
	Posted string `json:"posted"` // raw, as exported
	Type   string `json:"type"`
	Level  string `json:"level"`
	Skill  string `json:"skill"`
	Detail string `json:"detail"`
}

type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

func NewJob(title, posted, typ, level, skill, detail string) Job {
	return Job{
		Title:  orDefault(title, Unknown),
		Posted: orDefault(posted, Unknown),
		Type:   orDefault(typ, Unknown),
		Level:  orDefault(level, Unknown),
		Skill:  orDefault(skill, Unknown),
		Detail: orDefault(detail, NoDetails),
	}
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// Every layout carries a full calendar date. The jinzhu/now defaults also
// accept bare clock times and numbers, which it fills in from today.
var postedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-1-2",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006/1/2",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2, 2006 15:04",
	"01/02/2006",
	"1/2/2006",
	"Mon, 02 Jan 2006 15:04:05 MST",
}

var postedParser = &now.Config{
	TimeLocation: time.UTC,
	TimeFormats:  postedLayouts,
}

// PostedAt parses Posted. Unparseable values are logged and come back as the zero
// time, which orders before every real date.
func (j Job) PostedAt() time.Time {
	t, err := postedParser.Parse(strings.TrimSpace(j.Posted))
	if err != nil {
		log.WithFields(log.Fields{
			"title":  j.Title,
			"posted": j.Posted,
		}).Warn("[jobs] invalid posted date")
		return time.Time{}
	}
	return t
}

func (j Job) Fields() []Field {
	return []Field{
		{Label: "Title", Value: j.Title},
		{Label: "Posted", Value: j.Posted},
		{Label: "Type", Value: j.Type},
		{Label: "Level", Value: j.Level},
		{Label: "Skill", Value: j.Skill},
		{Label: "Detail", Value: j.Detail},
	}
}

// DetailsHTML is the labelled fragment shown in the detail panel.
func (j Job) DetailsHTML() template.HTML {
	var b strings.Builder
	for i, f := range j.Fields() {
		if i > 0 {
			b.WriteString("<br>\n")
		}
		b.WriteString("<strong>")
		b.WriteString(f.Label)
		b.WriteString(":</strong> ")
		b.WriteString(template.HTMLEscapeString(f.Value))
	}
	return template.HTML(b.String())
}
