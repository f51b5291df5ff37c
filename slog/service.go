package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/kakuyomu"
)

// Ensure LoggingService implements kakuyomu.Service.
var _ kakuyomu.Service = (*LoggingService)(nil)

// LoggingService wraps a Service and logs every operation with its
// parameters, output size, duration and error.
type LoggingService struct {
	next   kakuyomu.Service
	logger *slog.Logger
}

// NewLoggingService creates a new LoggingService.
func NewLoggingService(next kakuyomu.Service, logger *slog.Logger) *LoggingService {
	return &LoggingService{next: next, logger: logger}
}

func (s *LoggingService) log(ctx context.Context, op string, begin time.Time, out string, err error, attrs ...any) {
	level := slog.LevelInfo
	if err != nil {
		level = slog.LevelError
	}
	attrs = append(attrs,
		"bytes", len(out),
		"duration", time.Since(begin),
		"err", err,
	)
	s.logger.Log(ctx, level, op, attrs...)
}

// TopPage delegates to the wrapped service and logs the operation.
func (s *LoggingService) TopPage(ctx context.Context, limit int) (out string, err error) {
	defer func(begin time.Time) {
		s.log(ctx, "get_top_page", begin, out, err, "limit", limit)
	}(time.Now())
	return s.next.TopPage(ctx, limit)
}

// SearchWorks delegates to the wrapped service and logs the operation.
func (s *LoggingService) SearchWorks(ctx context.Context, params kakuyomu.SearchParams) (out string, err error) {
	defer func(begin time.Time) {
		s.log(ctx, "search_works", begin, out, err,
			"q", params.Query,
			"page", params.Page,
			"limit", params.Limit,
		)
	}(time.Now())
	return s.next.SearchWorks(ctx, params)
}

// WorkEpisodes delegates to the wrapped service and logs the operation.
func (s *LoggingService) WorkEpisodes(ctx context.Context, workID string, limit int) (out string, err error) {
	defer func(begin time.Time) {
		s.log(ctx, "get_work_episodes", begin, out, err, "work_id", workID, "limit", limit)
	}(time.Now())
	return s.next.WorkEpisodes(ctx, workID, limit)
}

// EpisodeContent delegates to the wrapped service and logs the operation.
func (s *LoggingService) EpisodeContent(ctx context.Context, workID, episodeID string) (out string, err error) {
	defer func(begin time.Time) {
		s.log(ctx, "get_episode_content", begin, out, err, "work_id", workID, "episode_id", episodeID)
	}(time.Now())
	return s.next.EpisodeContent(ctx, workID, episodeID)
}

// Rankings delegates to the wrapped service and logs the operation.
func (s *LoggingService) Rankings(ctx context.Context, params kakuyomu.RankingParams) (out string, err error) {
	defer func(begin time.Time) {
		s.log(ctx, "get_rankings", begin, out, err,
			"genre", params.Genre,
			"period", params.Period,
			"limit", params.Limit,
		)
	}(time.Now())
	return s.next.Rankings(ctx, params)
}

// ReadWork delegates to the wrapped service and logs the operation.
func (s *LoggingService) ReadWork(ctx context.Context, workID string, limit int) (out string, err error) {
	defer func(begin time.Time) {
		s.log(ctx, "read_work", begin, out, err, "work_id", workID, "limit", limit)
	}(time.Now())
	return s.next.ReadWork(ctx, workID, limit)
}
