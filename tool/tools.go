package tool

import (
	"context"

	"github.com/fwojciec/kakuyomu"
)

func standardTools(svc kakuyomu.Service) []Tool {
	return []Tool{
		{
			Name:        "get_top_page",
			Description: "トップページから最新作品一覧を取得",
			Handler: func(ctx context.Context, args Args) (string, error) {
				limit, err := args.Int("limit", kakuyomu.DefaultWorkLimit)
				if err != nil {
					return "", err
				}
				return svc.TopPage(ctx, limit)
			},
		},
		{
			Name:        "search_works",
			Description: "作品を検索",
			Handler: func(ctx context.Context, args Args) (string, error) {
				q, err := args.Required("q")
				if err != nil {
					return "", err
				}
				page, err := args.Int("page", 1)
				if err != nil {
					return "", err
				}
				limit, err := args.Int("limit", kakuyomu.DefaultWorkLimit)
				if err != nil {
					return "", err
				}
				return svc.SearchWorks(ctx, kakuyomu.SearchParams{
					Query:                         q,
					Page:                          page,
					ExcludeQuery:                  args.Get("ex_q"),
					SerialStatus:                  args.Get("serial_status"),
					GenreName:                     args.Get("genre_name"),
					TotalReviewPointRange:         args.Get("total_review_point_range"),
					TotalCharacterCountRange:      args.Get("total_character_count_range"),
					PublishedDateRange:            args.Get("published_date_range"),
					LastEpisodePublishedDateRange: args.Get("last_episode_published_date_range"),
					Limit:                         limit,
				})
			},
		},
		{
			Name:        "get_work_episodes",
			Description: "作品のエピソード一覧を取得",
			Handler: func(ctx context.Context, args Args) (string, error) {
				workID, err := args.Required("work_id")
				if err != nil {
					return "", err
				}
				limit, err := args.Int("limit", kakuyomu.DefaultEpisodeLimit)
				if err != nil {
					return "", err
				}
				return svc.WorkEpisodes(ctx, workID, limit)
			},
		},
		{
			Name:        "get_episode_content",
			Description: "エピソードの本文を取得",
			Handler: func(ctx context.Context, args Args) (string, error) {
				workID, err := args.Required("work_id")
				if err != nil {
					return "", err
				}
				episodeID, err := args.Required("episode_id")
				if err != nil {
					return "", err
				}
				return svc.EpisodeContent(ctx, workID, episodeID)
			},
		},
		{
			Name:        "get_rankings",
			Description: "ランキングページから作品ランキングを取得",
			Handler: func(ctx context.Context, args Args) (string, error) {
				limit, err := args.Int("limit", kakuyomu.DefaultRankingLimit)
				if err != nil {
					return "", err
				}
				return svc.Rankings(ctx, kakuyomu.RankingParams{
					Genre:  args.Get("genre"),
					Period: args.Get("period"),
					Limit:  limit,
				})
			},
		},
		{
			Name:        "read_work",
			Description: "作品のエピソード本文をまとめて取得",
			Handler: func(ctx context.Context, args Args) (string, error) {
				workID, err := args.Required("work_id")
				if err != nil {
					return "", err
				}
				limit, err := args.Int("limit", kakuyomu.DefaultEpisodeLimit)
				if err != nil {
					return "", err
				}
				return svc.ReadWork(ctx, workID, limit)
			},
		},
	}
}
