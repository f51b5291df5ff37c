// Package goquery implements kakuyomu page extraction on top of
// github.com/PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/kakuyomu"
)

// parse builds a queryable document from raw HTML.
func parse(s string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return nil, kakuyomu.Errorf(kakuyomu.EMALFORMED, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// text returns the trimmed text of the first element in sel.
func text(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.First().Text())
}
