package domain

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CleanText collapses whitespace (including nbsp) to single spaces.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.Join(strings.Fields(s), " ")
}

// PlainText strips markup from s. Upwork details are sometimes exported as HTML.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return CleanText(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return CleanText(s)
	}
	return CleanText(doc.Text())
}

// Excerpt is the plain-text Detail cut to at most n runes.
func (j Job) Excerpt(n int) string {
	txt := PlainText(j.Detail)
	r := []rune(txt)
	if n <= 0 || len(r) <= n {
		return txt
	}
	return strings.TrimSpace(string(r[:n])) + "…"
}
