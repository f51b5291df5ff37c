package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/kakuyomu"
)

// Ensure BodyExtractor implements kakuyomu.BodyExtractor at compile time.
var _ kakuyomu.BodyExtractor = (*BodyExtractor)(nil)

const (
	episodeBodySelector = "div.widget-episodeBody.js-episode-body"

	// blankClass marks paragraphs that only carry vertical spacing.
	blankClass = "blank"
)

// BodyExtractor reads episode prose from an episode page.
type BodyExtractor struct{}

// NewBodyExtractor creates a new BodyExtractor.
func NewBodyExtractor() *BodyExtractor {
	return &BodyExtractor{}
}

// ExtractBody returns the episode paragraphs joined by newlines.
func (e *BodyExtractor) ExtractBody(html string) string {
	doc, err := parse(html)
	if err != nil {
		return kakuyomu.ContentNotFound
	}

	body := doc.Find(episodeBodySelector).First()
	if body.Length() == 0 {
		return kakuyomu.ContentNotFound
	}

	var paragraphs []string
	body.Find("p").Each(func(_ int, p *goquery.Selection) {
		if p.HasClass(blankClass) {
			return
		}
		paragraphs = append(paragraphs, strings.TrimSpace(p.Text()))
	})

	return strings.Join(paragraphs, "\n")
}
