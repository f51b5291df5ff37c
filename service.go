package kakuyomu

import (
	"context"
	"net/url"
	"strconv"
)

// DefaultBaseURL is the root of the content source.
const DefaultBaseURL = "https://kakuyomu.jp"

// Ranking defaults.
const (
	DefaultRankingGenre  = "all"
	DefaultRankingPeriod = "daily"
)

// Service reads the content source and renders results as text.
type Service interface {
	// TopPage lists works featured on the top page.
	TopPage(ctx context.Context, limit int) (string, error)

	// SearchWorks lists works matching a search.
	// Returns EINVALID if the query is empty.
	SearchWorks(ctx context.Context, params SearchParams) (string, error)

	// WorkEpisodes lists the episodes of a work.
	// Returns EINVALID if workID is empty.
	WorkEpisodes(ctx context.Context, workID string, limit int) (string, error)

	// EpisodeContent returns the body text of an episode.
	// Returns EINVALID if either ID is empty.
	EpisodeContent(ctx context.Context, workID, episodeID string) (string, error)

	// Rankings lists ranked works for a genre and period.
	Rankings(ctx context.Context, params RankingParams) (string, error)

	// ReadWork returns the titles and bodies of the first limit episodes
	// of a work. Returns EINVALID if workID is empty.
	ReadWork(ctx context.Context, workID string, limit int) (string, error)
}

// SearchParams holds the search query and its optional filters.
// Empty filters are not sent.
type SearchParams struct {
	Query                         string
	Page                          int
	ExcludeQuery                  string
	SerialStatus                  string
	GenreName                     string
	TotalReviewPointRange         string
	TotalCharacterCountRange      string
	PublishedDateRange            string
	LastEpisodePublishedDateRange string
	Limit                         int
}

// Validate returns an error if the params contain invalid fields.
func (p *SearchParams) Validate() error {
	if p.Query == "" {
		return Errorf(EINVALID, "search query required")
	}
	return nil
}

// Values returns the upstream query string parameters.
func (p *SearchParams) Values() url.Values {
	page := p.Page
	if page <= 0 {
		page = 1
	}
	v := url.Values{}
	v.Set("q", p.Query)
	v.Set("page", strconv.Itoa(page))
	optional := []struct{ key, value string }{
		{"ex_q", p.ExcludeQuery},
		{"serial_status", p.SerialStatus},
		{"genre_name", p.GenreName},
		{"total_review_point_range", p.TotalReviewPointRange},
		{"total_character_count_range", p.TotalCharacterCountRange},
		{"published_date_range", p.PublishedDateRange},
		{"last_episode_published_date_range", p.LastEpisodePublishedDateRange},
	}
	for _, o := range optional {
		if o.value != "" {
			v.Set(o.key, o.value)
		}
	}
	return v
}

// RankingParams selects a ranking page.
type RankingParams struct {
	Genre  string
	Period string
	Limit  int
}

// TopPageURL returns the top page URL.
func TopPageURL(base string) string {
	return base + "/"
}

// SearchURL returns the search results URL for params.
func SearchURL(base string, params SearchParams) string {
	return base + "/search?" + params.Values().Encode()
}

// WorkURL returns the URL of a work, which lists its episodes.
func WorkURL(base, workID string) string {
	return base + "/works/" + url.PathEscape(workID)
}

// EpisodeURL returns the URL of an episode page.
func EpisodeURL(base, workID, episodeID string) string {
	return WorkURL(base, workID) + "/episodes/" + url.PathEscape(episodeID)
}

// RankingURL returns the URL of a ranking page. Empty genre and period fall
// back to DefaultRankingGenre and DefaultRankingPeriod.
func RankingURL(base, genre, period string) string {
	if genre == "" {
		genre = DefaultRankingGenre
	}
	if period == "" {
		period = DefaultRankingPeriod
	}
	return base + "/rankings/" + url.PathEscape(genre) + "/" + url.PathEscape(period)
}
