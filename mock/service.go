package mock

import (
	"context"

	"github.com/fwojciec/kakuyomu"
)

var _ kakuyomu.Service = (*Service)(nil)

// Service is a mock implementation of kakuyomu.Service.
type Service struct {
	TopPageFn        func(ctx context.Context, limit int) (string, error)
	SearchWorksFn    func(ctx context.Context, params kakuyomu.SearchParams) (string, error)
	WorkEpisodesFn   func(ctx context.Context, workID string, limit int) (string, error)
	EpisodeContentFn func(ctx context.Context, workID, episodeID string) (string, error)
	RankingsFn       func(ctx context.Context, params kakuyomu.RankingParams) (string, error)
	ReadWorkFn       func(ctx context.Context, workID string, limit int) (string, error)
}

func (s *Service) TopPage(ctx context.Context, limit int) (string, error) {
	return s.TopPageFn(ctx, limit)
}

func (s *Service) SearchWorks(ctx context.Context, params kakuyomu.SearchParams) (string, error) {
	return s.SearchWorksFn(ctx, params)
}

func (s *Service) WorkEpisodes(ctx context.Context, workID string, limit int) (string, error) {
	return s.WorkEpisodesFn(ctx, workID, limit)
}

func (s *Service) EpisodeContent(ctx context.Context, workID, episodeID string) (string, error) {
	return s.EpisodeContentFn(ctx, workID, episodeID)
}

func (s *Service) Rankings(ctx context.Context, params kakuyomu.RankingParams) (string, error) {
	return s.RankingsFn(ctx, params)
}

func (s *Service) ReadWork(ctx context.Context, workID string, limit int) (string, error) {
	return s.ReadWorkFn(ctx, workID, limit)
}
