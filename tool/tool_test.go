package tool_test

import (
	"context"
	"testing"

	"github.com/fwojciec/kakuyomu"
	"github.com/fwojciec/kakuyomu/mock"
	"github.com/fwojciec/kakuyomu/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Call(t *testing.T) {
	t.Parallel()

	t.Run("lists standard tools in order", func(t *testing.T) {
		t.Parallel()

		r := tool.NewRegistry(&mock.Service{})

		assert.Equal(t, []string{
			"get_top_page",
			"search_works",
			"get_work_episodes",
			"get_episode_content",
			"get_rankings",
			"read_work",
		}, r.Names())
	})

	t.Run("returns error text for unknown tool", func(t *testing.T) {
		t.Parallel()

		r := tool.NewRegistry(&mock.Service{})

		_, err := r.Invoke(context.Background(), "delete_everything", nil)
		assert.Equal(t, kakuyomu.EUNKNOWN, kakuyomu.ErrorCode(err))

		out := r.Call(context.Background(), "delete_everything", nil)
		assert.Equal(t, "エラーが発生しました: unknown tool \"delete_everything\"", out)
	})

	t.Run("applies defaults for missing arguments", func(t *testing.T) {
		t.Parallel()

		var gotLimit int
		var gotRanking kakuyomu.RankingParams
		svc := &mock.Service{
			WorkEpisodesFn: func(_ context.Context, workID string, limit int) (string, error) {
				gotLimit = limit
				return "episodes", nil
			},
			RankingsFn: func(_ context.Context, params kakuyomu.RankingParams) (string, error) {
				gotRanking = params
				return "rankings", nil
			},
		}
		r := tool.NewRegistry(svc)

		assert.Equal(t, "episodes", r.Call(context.Background(), "get_work_episodes", tool.Args{"work_id": "1"}))
		assert.Equal(t, kakuyomu.DefaultEpisodeLimit, gotLimit)

		assert.Equal(t, "rankings", r.Call(context.Background(), "get_rankings", nil))
		assert.Equal(t, kakuyomu.RankingParams{Limit: kakuyomu.DefaultRankingLimit}, gotRanking)
	})

	t.Run("maps search arguments", func(t *testing.T) {
		t.Parallel()

		var got kakuyomu.SearchParams
		svc := &mock.Service{
			SearchWorksFn: func(_ context.Context, params kakuyomu.SearchParams) (string, error) {
				got = params
				return "ok", nil
			},
		}
		r := tool.NewRegistry(svc)

		out := r.Call(context.Background(), "search_works", tool.Args{
			"q":                                 "魔法",
			"page":                              "2",
			"ex_q":                              "恋愛",
			"serial_status":                     "completed",
			"genre_name":                        "fantasy",
			"total_review_point_range":          "100-",
			"total_character_count_range":       "-50000",
			"published_date_range":              "1y",
			"last_episode_published_date_range": "1w",
			"limit":                             "3",
		})

		assert.Equal(t, "ok", out)
		assert.Equal(t, kakuyomu.SearchParams{
			Query:                         "魔法",
			Page:                          2,
			ExcludeQuery:                  "恋愛",
			SerialStatus:                  "completed",
			GenreName:                     "fantasy",
			TotalReviewPointRange:         "100-",
			TotalCharacterCountRange:      "-50000",
			PublishedDateRange:            "1y",
			LastEpisodePublishedDateRange: "1w",
			Limit:                         3,
		}, got)
	})

	t.Run("reports missing required argument as text", func(t *testing.T) {
		t.Parallel()

		r := tool.NewRegistry(&mock.Service{})

		assert.Equal(t, "エラーが発生しました: q required", r.Call(context.Background(), "search_works", nil))
		assert.Equal(t, "エラーが発生しました: episode_id required",
			r.Call(context.Background(), "get_episode_content", tool.Args{"work_id": "1"}))
	})

	t.Run("reports invalid integer as text", func(t *testing.T) {
		t.Parallel()

		r := tool.NewRegistry(&mock.Service{})

		out := r.Call(context.Background(), "get_top_page", tool.Args{"limit": "ten"})

		assert.Equal(t, "エラーが発生しました: limit must be an integer, got \"ten\"", out)
	})

	t.Run("converts service errors to text", func(t *testing.T) {
		t.Parallel()

		svc := &mock.Service{
			TopPageFn: func(_ context.Context, _ int) (string, error) {
				return "", kakuyomu.Errorf(kakuyomu.EFETCH, "HTTP 503 for https://kakuyomu.jp/")
			},
		}
		r := tool.NewRegistry(svc)

		out := r.Call(context.Background(), "get_top_page", nil)

		assert.Equal(t, "エラーが発生しました: HTTP 503 for https://kakuyomu.jp/", out)
	})

	t.Run("register replaces tool of same name", func(t *testing.T) {
		t.Parallel()

		r := tool.NewRegistry(&mock.Service{})
		r.Register(tool.Tool{
			Name: "get_top_page",
			Handler: func(context.Context, tool.Args) (string, error) {
				return "replaced", nil
			},
		})

		assert.Equal(t, "replaced", r.Call(context.Background(), "get_top_page", nil))
		assert.Len(t, r.Names(), 6)
	})
}

func TestRegistry_Info(t *testing.T) {
	t.Parallel()

	info := tool.NewRegistry(&mock.Service{}).Info()

	assert.Contains(t, info, "1. get_top_page - トップページから最新作品一覧を取得")
	assert.Contains(t, info, "6. read_work")
}

func TestParseArgs(t *testing.T) {
	t.Parallel()

	t.Run("parses pairs", func(t *testing.T) {
		t.Parallel()

		args, err := tool.ParseArgs([]string{"work_id=1", "q=a=b", "empty="})

		require.NoError(t, err)
		assert.Equal(t, tool.Args{"work_id": "1", "q": "a=b", "empty": ""}, args)
	})

	t.Run("rejects pair without key", func(t *testing.T) {
		t.Parallel()

		_, err := tool.ParseArgs([]string{"novalue"})
		assert.Equal(t, kakuyomu.EINVALID, kakuyomu.ErrorCode(err))

		_, err = tool.ParseArgs([]string{"=x"})
		assert.Equal(t, kakuyomu.EINVALID, kakuyomu.ErrorCode(err))
	})
}
