package site_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/fwojciec/kakuyomu"
	"github.com/fwojciec/kakuyomu/goquery"
	kakuhttp "github.com/fwojciec/kakuyomu/http"
	"github.com/fwojciec/kakuyomu/mock"
	"github.com/fwojciec/kakuyomu/site"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseURL = "https://kakuyomu.test"

func statePage(state string) string {
	return `<html><body><script id="__NEXT_DATA__" type="application/json">{"props":{"pageProps":{"__APOLLO_STATE__":` +
		state + `}}}</script></body></html>`
}

func episodePage(paragraphs ...string) string {
	var b strings.Builder
	b.WriteString(`<html><body><div class="widget-episodeBody js-episode-body">`)
	for _, p := range paragraphs {
		b.WriteString("<p>" + p + "</p>")
	}
	b.WriteString(`</div></body></html>`)
	return b.String()
}

// pages returns a fetcher serving fixed documents by URL and recording
// every requested URL.
func pages(docs map[string]string) (*mock.Fetcher, func() []string) {
	var mu sync.Mutex
	var requested []string
	f := &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			mu.Lock()
			requested = append(requested, url)
			mu.Unlock()
			html, ok := docs[url]
			if !ok {
				return "", kakuyomu.Errorf(kakuyomu.EFETCH, "HTTP 404 for %s", url)
			}
			return html, nil
		},
		CloseFn: func() error { return nil },
	}
	return f, func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), requested...)
	}
}

func newService(f kakuyomu.Fetcher) *site.Service {
	return &site.Service{
		Fetcher: f,
		States:  goquery.NewNextDataExtractor(),
		Scraper: goquery.NewRankingScraper(),
		Bodies:  goquery.NewBodyExtractor(),
		BaseURL: baseURL,
	}
}

func TestService_TopPage(t *testing.T) {
	t.Parallel()

	t.Run("renders works with broad predicate", func(t *testing.T) {
		t.Parallel()

		f, _ := pages(map[string]string{
			baseURL + "/": statePage(`{
				"ROOT_QUERY":{"__typename":"Query"},
				"Work:1":{"id":"1","title":"一","catchphrase":"キャッチ","introduction":"紹介\n二行目"},
				"Work:2":{"id":"2","title":"二"}
			}`),
		})

		out, err := newService(f).TopPage(context.Background(), 10)

		require.NoError(t, err)
		assert.Equal(t, "ID: 1\nタイトル: 一\nキャッチフレーズ: キャッチ\nイントロダクション:\n```\n紹介\n二行目\n```\n\nID: 2\nタイトル: 二\n\n", out)
	})

	t.Run("applies limit", func(t *testing.T) {
		t.Parallel()

		f, _ := pages(map[string]string{
			baseURL + "/": statePage(`{"Work:1":{"id":"1"},"Work:2":{"id":"2"},"Work:3":{"id":"3"}}`),
		})

		out, err := newService(f).TopPage(context.Background(), 2)

		require.NoError(t, err)
		assert.Equal(t, "ID: 1\n\nID: 2\n\n", out)
	})

	t.Run("returns malformed error without state", func(t *testing.T) {
		t.Parallel()

		f, _ := pages(map[string]string{baseURL + "/": "<html></html>"})

		_, err := newService(f).TopPage(context.Background(), 10)

		require.Error(t, err)
		assert.Equal(t, kakuyomu.EMALFORMED, kakuyomu.ErrorCode(err))
	})

	t.Run("returns fetch error", func(t *testing.T) {
		t.Parallel()

		f, _ := pages(nil)

		_, err := newService(f).TopPage(context.Background(), 10)

		require.Error(t, err)
		assert.Equal(t, kakuyomu.EFETCH, kakuyomu.ErrorCode(err))
	})

	t.Run("reports plain fetcher errors as fetch errors", func(t *testing.T) {
		t.Parallel()

		f := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "", errors.New("connection reset")
			},
		}

		_, err := newService(f).TopPage(context.Background(), 10)

		require.Error(t, err)
		assert.Equal(t, kakuyomu.EFETCH, kakuyomu.ErrorCode(err))
		assert.Contains(t, kakuyomu.ErrorMessage(err), "connection reset")
	})
}

func TestService_SearchWorks(t *testing.T) {
	t.Parallel()

	t.Run("renders only Work: keys", func(t *testing.T) {
		t.Parallel()

		params := kakuyomu.SearchParams{Query: "剣", GenreName: "fantasy"}
		f, requested := pages(map[string]string{
			kakuyomu.SearchURL(baseURL, params): statePage(`{
				"WorkSearchConnection:abc":{"totalCount":2},
				"Work:1":{"id":"1","title":"剣の物語","tagLabels":["剣","冒険"]}
			}`),
		})

		out, err := newService(f).SearchWorks(context.Background(), params)

		require.NoError(t, err)
		assert.Equal(t, "ID: 1\nタイトル: 剣の物語\nタグ: 剣, 冒険\n\n", out)
		require.Len(t, requested(), 1)
		assert.Contains(t, requested()[0], "/search?")
		assert.Contains(t, requested()[0], "genre_name=fantasy")
		assert.Contains(t, requested()[0], "page=1")
	})

	t.Run("requires query", func(t *testing.T) {
		t.Parallel()

		f, requested := pages(nil)

		_, err := newService(f).SearchWorks(context.Background(), kakuyomu.SearchParams{})

		require.Error(t, err)
		assert.Equal(t, kakuyomu.EINVALID, kakuyomu.ErrorCode(err))
		assert.Empty(t, requested())
	})
}

func TestService_WorkEpisodes(t *testing.T) {
	t.Parallel()

	t.Run("renders episodes", func(t *testing.T) {
		t.Parallel()

		f, _ := pages(map[string]string{
			baseURL + "/works/100": statePage(`{
				"Work:100":{"id":"100","title":"作品"},
				"Episode:1":{"id":"1","title":"第一話","publishedAt":"2024-01-01T00:00:00Z"},
				"Episode:2":{"id":"2","title":"第二話"}
			}`),
		})

		out, err := newService(f).WorkEpisodes(context.Background(), "100", 0)

		require.NoError(t, err)
		assert.Equal(t, "ID: 1\nタイトル: 第一話\n公開日: 2024-01-01T00:00:00Z\n\nID: 2\nタイトル: 第二話\n\n", out)
	})

	t.Run("uses default limit for non-positive limit", func(t *testing.T) {
		t.Parallel()

		var entries []string
		for i := 1; i <= 25; i++ {
			entries = append(entries, fmt.Sprintf(`"Episode:%d":{"id":"%d"}`, i, i))
		}
		f, _ := pages(map[string]string{
			baseURL + "/works/100": statePage("{" + strings.Join(entries, ",") + "}"),
		})

		for _, limit := range []int{0, -5} {
			out, err := newService(f).WorkEpisodes(context.Background(), "100", limit)

			require.NoError(t, err)
			assert.Equal(t, kakuyomu.DefaultEpisodeLimit, strings.Count(out, "ID: "), "limit %d", limit)
		}
	})

	t.Run("requires work ID", func(t *testing.T) {
		t.Parallel()

		f, _ := pages(nil)

		_, err := newService(f).WorkEpisodes(context.Background(), "", 10)

		assert.Equal(t, kakuyomu.EINVALID, kakuyomu.ErrorCode(err))
	})
}

func TestService_EpisodeContent(t *testing.T) {
	t.Parallel()

	t.Run("returns body", func(t *testing.T) {
		t.Parallel()

		f, _ := pages(map[string]string{
			baseURL + "/works/100/episodes/200": episodePage("一行目", "二行目"),
		})

		out, err := newService(f).EpisodeContent(context.Background(), "100", "200")

		require.NoError(t, err)
		assert.Equal(t, "一行目\n二行目", out)
	})

	t.Run("returns sentinel when body is missing", func(t *testing.T) {
		t.Parallel()

		f, _ := pages(map[string]string{
			baseURL + "/works/100/episodes/200": "<html><body></body></html>",
		})

		out, err := newService(f).EpisodeContent(context.Background(), "100", "200")

		require.NoError(t, err)
		assert.Equal(t, kakuyomu.ContentNotFound, out)
	})

	t.Run("requires both IDs", func(t *testing.T) {
		t.Parallel()

		f, _ := pages(nil)
		svc := newService(f)

		_, err := svc.EpisodeContent(context.Background(), "", "200")
		assert.Equal(t, kakuyomu.EINVALID, kakuyomu.ErrorCode(err))

		_, err = svc.EpisodeContent(context.Background(), "100", "")
		assert.Equal(t, kakuyomu.EINVALID, kakuyomu.ErrorCode(err))
	})
}

func TestService_Rankings(t *testing.T) {
	t.Parallel()

	t.Run("renders scraped rankings with default path", func(t *testing.T) {
		t.Parallel()

		f, _ := pages(map[string]string{
			baseURL + "/rankings/all/daily": `<html><body>
<div class="widget-work float-parent">
	<p class="widget-work-rank">1</p>
	<a class="widget-workCard-titleLabel" href="/works/777">題名</a>
	<a class="widget-workCard-authorLabel" href="/users/u">著者</a>
	<a href="/tags/x"><span>タグ</span></a>
</div>
<div class="widget-work float-parent">
	<p class="widget-work-rank">2</p>
</div>
</body></html>`,
		})

		out, err := newService(f).Rankings(context.Background(), kakuyomu.RankingParams{})

		require.NoError(t, err)
		assert.Equal(t, "順位: 1\nID: 777\nタイトル: 題名\n作者: 著者\nタグ: タグ\n\n順位: 2\n\n", out)
	})

	t.Run("uses genre and period", func(t *testing.T) {
		t.Parallel()

		f, requested := pages(map[string]string{
			baseURL + "/rankings/fantasy/weekly": "<html></html>",
		})

		out, err := newService(f).Rankings(context.Background(), kakuyomu.RankingParams{Genre: "fantasy", Period: "weekly"})

		require.NoError(t, err)
		assert.Empty(t, out)
		assert.Equal(t, []string{baseURL + "/rankings/fantasy/weekly"}, requested())
	})
}

func TestService_ReadWork(t *testing.T) {
	t.Parallel()

	t.Run("returns episode bodies in list order", func(t *testing.T) {
		t.Parallel()

		f, requested := pages(map[string]string{
			baseURL + "/works/100": statePage(`{
				"Episode:1":{"id":"1","title":"第一話"},
				"Episode:2":{"id":"2","title":"第二話"},
				"Episode:3":{"title":"第三話"}
			}`),
			baseURL + "/works/100/episodes/1": episodePage("いち"),
			baseURL + "/works/100/episodes/2": episodePage("に"),
			baseURL + "/works/100/episodes/3": episodePage("さん"),
		})

		out, err := newService(f).ReadWork(context.Background(), "100", 0)

		require.NoError(t, err)
		assert.Equal(t, "## 第一話\n\nいち\n\n## 第二話\n\nに\n\n## 第三話\n\nさん\n\n", out)
		assert.Len(t, requested(), 4)
	})

	t.Run("fails when an episode fetch fails", func(t *testing.T) {
		t.Parallel()

		f, _ := pages(map[string]string{
			baseURL + "/works/100": statePage(`{"Episode:1":{"id":"1"},"Episode:2":{"id":"2"}}`),
			baseURL + "/works/100/episodes/1": episodePage("いち"),
		})

		_, err := newService(f).ReadWork(context.Background(), "100", 10)

		require.Error(t, err)
		assert.Equal(t, kakuyomu.EFETCH, kakuyomu.ErrorCode(err))
	})

	t.Run("respects limit", func(t *testing.T) {
		t.Parallel()

		f, requested := pages(map[string]string{
			baseURL + "/works/100": statePage(`{"Episode:1":{"id":"1","title":"a"},"Episode:2":{"id":"2","title":"b"}}`),
			baseURL + "/works/100/episodes/1": episodePage("いち"),
		})

		out, err := newService(f).ReadWork(context.Background(), "100", 1)

		require.NoError(t, err)
		assert.Equal(t, "## a\n\nいち\n\n", out)
		assert.Len(t, requested(), 2)
	})

	t.Run("skips episodes without an ID", func(t *testing.T) {
		t.Parallel()

		f, requested := pages(map[string]string{
			baseURL + "/works/100": statePage(`{"Episode:":{"title":"無題"},"Episode:1":{"id":"1","title":"a"}}`),
			baseURL + "/works/100/episodes/1": episodePage("いち"),
		})

		out, err := newService(f).ReadWork(context.Background(), "100", 0)

		require.NoError(t, err)
		assert.Equal(t, "## a\n\nいち\n\n", out)
		assert.Equal(t, []string{baseURL + "/works/100", baseURL + "/works/100/episodes/1"}, requested())
	})
}

func TestService_OverHTTP(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/works/1/episodes/2":
			_, _ = w.Write([]byte(episodePage("本文")))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	svc := newService(kakuhttp.NewFetcher())
	svc.BaseURL = server.URL + "/"

	out, err := svc.EpisodeContent(context.Background(), "1", "2")
	require.NoError(t, err)
	assert.Equal(t, "本文", out)

	_, err = svc.WorkEpisodes(context.Background(), "1", 10)
	require.Error(t, err)
	assert.Equal(t, kakuyomu.EFETCH, kakuyomu.ErrorCode(err))
	assert.Contains(t, err.Error(), "404")
}
