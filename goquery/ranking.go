package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/kakuyomu"
)

// Ensure RankingScraper implements kakuyomu.RankingScraper at compile time.
var _ kakuyomu.RankingScraper = (*RankingScraper)(nil)

// Ranking page selectors.
const (
	rankingEntrySelector = "div.widget-work.float-parent"
	rankSelector         = "p.widget-work-rank"
	titleSelector        = "a.widget-workCard-titleLabel"
	authorSelector       = "a.widget-workCard-authorLabel"
	reviewSelector       = `a[itemprop="reviewBody"]`
	tagSelector          = `a[href*="/tags/"]`
	introSelector        = "p.widget-workCard-introduction"
)

const worksMarker = "/works/"

// RankingScraper reads ranking entries directly from ranking page markup.
// Ranking pages carry no usable state graph.
type RankingScraper struct{}

// NewRankingScraper creates a new RankingScraper.
func NewRankingScraper() *RankingScraper {
	return &RankingScraper{}
}

// ScrapeRankings returns up to limit ranking entries in document order.
func (s *RankingScraper) ScrapeRankings(html string, limit int) ([]*kakuyomu.RankingRecord, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}

	limit = kakuyomu.Limit(limit, kakuyomu.DefaultRankingLimit)
	rankings := []*kakuyomu.RankingRecord{}
	doc.Find(rankingEntrySelector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if len(rankings) == limit {
			return false
		}
		rankings = append(rankings, scrapeEntry(sel))
		return true
	})

	return rankings, nil
}

// scrapeEntry reads each field independently; a missing element leaves
// only its own field empty.
func scrapeEntry(sel *goquery.Selection) *kakuyomu.RankingRecord {
	r := &kakuyomu.RankingRecord{
		Rank:        text(sel.Find(rankSelector)),
		Author:      text(sel.Find(authorSelector)),
		Catchphrase: text(sel.Find(reviewSelector)),
	}

	// Only the first introduction paragraph counts, and only its link.
	r.Introduction = text(sel.Find(introSelector).First().Find("a"))

	title := sel.Find(titleSelector).First()
	if title.Length() > 0 {
		r.Title = text(title)
		if href, ok := title.Attr("href"); ok {
			r.ID = WorkIDFromPath(href)
		}
	}

	sel.Find(tagSelector).Each(func(_ int, tag *goquery.Selection) {
		label := tag.Find("span").First()
		if label.Length() == 0 {
			return
		}
		r.Tags = append(r.Tags, text(label))
	})

	return r
}

// WorkIDFromPath returns the path segment that follows "/works/" in href,
// or "" when href has no such segment.
func WorkIDFromPath(href string) string {
	i := strings.LastIndex(href, worksMarker)
	if i < 0 {
		return ""
	}
	id := href[i+len(worksMarker):]
	if j := strings.IndexAny(id, "/?#"); j >= 0 {
		id = id[:j]
	}
	return id
}
