package mock

import "github.com/fwojciec/kakuyomu"

var _ kakuyomu.StateExtractor = (*StateExtractor)(nil)

// StateExtractor is a mock implementation of kakuyomu.StateExtractor.
type StateExtractor struct {
	ExtractFn func(html string) (*kakuyomu.StateGraph, error)
}

func (e *StateExtractor) Extract(html string) (*kakuyomu.StateGraph, error) {
	return e.ExtractFn(html)
}

var _ kakuyomu.RankingScraper = (*RankingScraper)(nil)

// RankingScraper is a mock implementation of kakuyomu.RankingScraper.
type RankingScraper struct {
	ScrapeRankingsFn func(html string, limit int) ([]*kakuyomu.RankingRecord, error)
}

func (s *RankingScraper) ScrapeRankings(html string, limit int) ([]*kakuyomu.RankingRecord, error) {
	return s.ScrapeRankingsFn(html, limit)
}

var _ kakuyomu.BodyExtractor = (*BodyExtractor)(nil)

// BodyExtractor is a mock implementation of kakuyomu.BodyExtractor.
type BodyExtractor struct {
	ExtractBodyFn func(html string) string
}

func (e *BodyExtractor) ExtractBody(html string) string {
	return e.ExtractBodyFn(html)
}
