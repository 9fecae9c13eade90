// Package search runs the outlier search pipeline: query, fetch, score, rank
package search

import (
	"context"
	"strings"

	"github.com/researchaccelerator-hub/outlier-search/client"
	"github.com/researchaccelerator-hub/outlier-search/common"
	"github.com/researchaccelerator-hub/outlier-search/model/youtube"
	"github.com/researchaccelerator-hub/outlier-search/rank"
	"github.com/researchaccelerator-hub/outlier-search/scoring"
	"github.com/rs/zerolog/log"
)

// Searcher executes searches against a VideoSource with a fixed strategy.
// It keeps no state between searches.
type Searcher struct {
	source           client.VideoSource
	strategy         scoring.Strategy
	maxSearchResults int64
}

// Option customises a Searcher
type Option func(*Searcher)

// WithSearchResults sets how many results each search request asks for,
// capped at client.MaxBatchSize
func WithSearchResults(n int64) Option {
	return func(s *Searcher) {
		s.maxSearchResults = n
	}
}

// NewSearcher creates a new searcher
func NewSearcher(source client.VideoSource, strategy scoring.Strategy, opts ...Option) *Searcher {
	s := &Searcher{
		source:           source,
		strategy:         strategy,
		maxSearchResults: client.MaxBatchSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RunSearch executes one search and returns at most youtube.MaxResults
// ranked results. It returns ErrNoResults when nothing matched and an
// *APIError when a search or details request failed.
func (s *Searcher) RunSearch(ctx context.Context, criteria youtube.SearchCriteria) ([]youtube.ScoredResult, error) {
	criteria.Keyword = strings.TrimSpace(criteria.Keyword)
	if criteria.Keyword == "" {
		return nil, ErrEmptyKeyword
	}

	logger := log.With().
		Str("search_id", common.GenerateSearchID()).
		Str("keyword", criteria.Keyword).
		Str("strategy", s.strategy.Name()).
		Logger()

	logger.Info().
		Float64("min_score", criteria.MinScore).
		Str("duration", string(criteria.DurationClass)).
		Str("sort", string(criteria.SortKey)).
		Int("channel_scope", len(criteria.ChannelIDs)).
		Msg("Starting search")

	// 1. Find candidate videos
	videoIDs, err := collectVideoIDs(ctx, s.source, BuildQueries(criteria, s.maxSearchResults), logger)
	if err != nil {
		logger.Error().Err(err).Msg("Search request failed")
		return nil, err
	}
	if len(videoIDs) == 0 {
		logger.Info().Msg("Search returned no videos")
		return nil, ErrNoResults
	}

	// 2. Fetch details
	videos, err := fetchDetails(ctx, s.source, videoIDs, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Video details request failed")
		return nil, err
	}
	applyDurations(videos, logger)

	// 3. Score
	var channels map[string]youtube.ChannelContext
	if scoring.NeedsChannelStats(s.strategy) {
		channels = aggregateChannels(ctx, s.source, videos, logger)
	}
	scored := s.score(videos, channels)

	// 4. Filter and rank
	results := rank.Apply(scored, criteria)

	logger.Info().
		Int("candidates", len(videoIDs)).
		Int("fetched", len(videos)).
		Int("results", len(results)).
		Msg("Search completed")

	if len(results) == 0 {
		return nil, ErrNoResults
	}
	return results, nil
}

func (s *Searcher) score(videos []*youtube.YouTubeVideo, channels map[string]youtube.ChannelContext) []youtube.ScoredResult {
	_, multiplier := s.strategy.(*scoring.ChannelMultiplier)

	scored := make([]youtube.ScoredResult, 0, len(videos))
	for _, video := range videos {
		result := youtube.ScoredResult{
			YouTubeVideo:   video,
			Score:          s.strategy.Score(video, channels[video.ChannelID]),
			EngagementRate: scoring.EngagementRate(video),
		}
		if multiplier {
			result.Tier = string(scoring.Tier(result.Score))
		}
		scored = append(scored, result)
	}
	return scored
}
