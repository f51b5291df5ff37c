// Package site implements kakuyomu.Service against the kakuyomu.jp page
// layout: it fetches pages, extracts entities and renders them.
package site

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/kakuyomu"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds concurrent episode fetches in ReadWork.
const DefaultConcurrency = 3

// Ensure Service implements kakuyomu.Service at compile time.
var _ kakuyomu.Service = (*Service)(nil)

// Service reads kakuyomu pages through a Fetcher.
type Service struct {
	Fetcher kakuyomu.Fetcher
	States  kakuyomu.StateExtractor
	Scraper kakuyomu.RankingScraper
	Bodies  kakuyomu.BodyExtractor

	// BaseURL defaults to kakuyomu.DefaultBaseURL.
	BaseURL string

	// Concurrency defaults to DefaultConcurrency.
	Concurrency int
}

// TopPage renders the works embedded in the top page.
func (s *Service) TopPage(ctx context.Context, limit int) (string, error) {
	g, err := s.state(ctx, kakuyomu.TopPageURL(s.baseURL()))
	if err != nil {
		return "", err
	}
	keys := kakuyomu.Select(g, kakuyomu.ListingWork, limit, kakuyomu.DefaultWorkLimit)
	return kakuyomu.Render(g.Records(keys), kakuyomu.KindWork), nil
}

// SearchWorks renders the works of a search result page.
func (s *Service) SearchWorks(ctx context.Context, params kakuyomu.SearchParams) (string, error) {
	if err := params.Validate(); err != nil {
		return "", err
	}
	g, err := s.state(ctx, kakuyomu.SearchURL(s.baseURL(), params))
	if err != nil {
		return "", err
	}
	keys := kakuyomu.Select(g, kakuyomu.SearchWork, params.Limit, kakuyomu.DefaultWorkLimit)
	return kakuyomu.Render(g.Records(keys), kakuyomu.KindWork), nil
}

// WorkEpisodes renders the episode list of a work.
func (s *Service) WorkEpisodes(ctx context.Context, workID string, limit int) (string, error) {
	if workID == "" {
		return "", kakuyomu.Errorf(kakuyomu.EINVALID, "work ID required")
	}
	g, err := s.state(ctx, kakuyomu.WorkURL(s.baseURL(), workID))
	if err != nil {
		return "", err
	}
	keys := kakuyomu.Select(g, kakuyomu.Episode, limit, kakuyomu.DefaultEpisodeLimit)
	return kakuyomu.Render(g.Records(keys), kakuyomu.KindEpisode), nil
}

// EpisodeContent returns the body of an episode, or kakuyomu.ContentNotFound
// when the page has none.
func (s *Service) EpisodeContent(ctx context.Context, workID, episodeID string) (string, error) {
	if workID == "" {
		return "", kakuyomu.Errorf(kakuyomu.EINVALID, "work ID required")
	}
	if episodeID == "" {
		return "", kakuyomu.Errorf(kakuyomu.EINVALID, "episode ID required")
	}
	html, err := s.fetch(ctx, kakuyomu.EpisodeURL(s.baseURL(), workID, episodeID))
	if err != nil {
		return "", err
	}
	return s.Bodies.ExtractBody(html), nil
}

// Rankings renders a ranking page scraped from markup.
func (s *Service) Rankings(ctx context.Context, params kakuyomu.RankingParams) (string, error) {
	html, err := s.fetch(ctx, kakuyomu.RankingURL(s.baseURL(), params.Genre, params.Period))
	if err != nil {
		return "", err
	}
	rankings, err := s.Scraper.ScrapeRankings(html, params.Limit)
	if err != nil {
		return "", err
	}
	return kakuyomu.Render(kakuyomu.RankingRecords(rankings), kakuyomu.KindRankingWork), nil
}

// ReadWork fetches the episode list of a work and then the bodies of the
// selected episodes concurrently. Output keeps episode list order. The first
// failed fetch cancels the rest and fails the call.
func (s *Service) ReadWork(ctx context.Context, workID string, limit int) (string, error) {
	if workID == "" {
		return "", kakuyomu.Errorf(kakuyomu.EINVALID, "work ID required")
	}
	base := s.baseURL()
	g, err := s.state(ctx, kakuyomu.WorkURL(base, workID))
	if err != nil {
		return "", err
	}

	keys := kakuyomu.Select(g, kakuyomu.Episode, limit, kakuyomu.DefaultEpisodeLimit)
	episodes := readableEpisodes(g, keys)
	bodies := make([]string, len(episodes))

	eg, ectx := errgroup.WithContext(ctx)
	eg.SetLimit(s.concurrency())
	for i, ep := range episodes {
		eg.Go(func() error {
			html, err := s.fetch(ectx, kakuyomu.EpisodeURL(base, workID, ep.id))
			if err != nil {
				return err
			}
			bodies[i] = s.Bodies.ExtractBody(html)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return "", err
	}

	var b strings.Builder
	for i, ep := range episodes {
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", ep.title, bodies[i])
	}
	return b.String(), nil
}

type episodeRef struct {
	id    string
	title string
}

// readableEpisodes pairs selected episode keys with the IDs and titles used
// to fetch and label them. The ID falls back to the key suffix and the title
// to the key. Episodes with no derivable ID are dropped.
func readableEpisodes(g *kakuyomu.StateGraph, keys []string) []episodeRef {
	var refs []episodeRef
	for _, key := range keys {
		rec, _ := g.Record(key)
		ref := episodeRef{id: rec.Text("id"), title: rec.Text("title")}
		if ref.id == "" {
			ref.id = strings.TrimPrefix(key, "Episode:")
		}
		if ref.id == "" {
			continue
		}
		if ref.title == "" {
			ref.title = key
		}
		refs = append(refs, ref)
	}
	return refs
}

func (s *Service) state(ctx context.Context, url string) (*kakuyomu.StateGraph, error) {
	html, err := s.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return s.States.Extract(html)
}

// fetch retrieves url, reporting any failure as EFETCH.
func (s *Service) fetch(ctx context.Context, url string) (string, error) {
	html, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		if kakuyomu.ErrorCode(err) == kakuyomu.EFETCH {
			return "", err
		}
		return "", kakuyomu.Errorf(kakuyomu.EFETCH, "fetch %s: %v", url, err)
	}
	return html, nil
}

func (s *Service) baseURL() string {
	if s.BaseURL == "" {
		return kakuyomu.DefaultBaseURL
	}
	return strings.TrimSuffix(s.BaseURL, "/")
}

func (s *Service) concurrency() int {
	if s.Concurrency <= 0 {
		return DefaultConcurrency
	}
	return s.Concurrency
}
