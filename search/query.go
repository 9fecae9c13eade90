package search

import (
	"context"

	"github.com/researchaccelerator-hub/outlier-search/client"
	"github.com/researchaccelerator-hub/outlier-search/model/youtube"
	"github.com/rs/zerolog"
)

// Query is one search.list request
type Query struct {
	Keyword    string
	ChannelID  string
	MaxResults int64
}

// BuildQueries turns the criteria into one query per allowed channel, or a
// single unscoped query when no channels are given.
func BuildQueries(criteria youtube.SearchCriteria, maxResults int64) []Query {
	if maxResults <= 0 || maxResults > client.MaxBatchSize {
		maxResults = client.MaxBatchSize
	}

	if len(criteria.ChannelIDs) == 0 {
		return []Query{{Keyword: criteria.Keyword, MaxResults: maxResults}}
	}

	queries := make([]Query, 0, len(criteria.ChannelIDs))
	for _, channelID := range criteria.ChannelIDs {
		queries = append(queries, Query{
			Keyword:    criteria.Keyword,
			ChannelID:  channelID,
			MaxResults: maxResults,
		})
	}
	return queries
}

// collectVideoIDs runs the queries in order and returns the distinct video
// IDs in first-seen order.
func collectVideoIDs(ctx context.Context, source client.VideoSource, queries []Query, logger zerolog.Logger) ([]string, error) {
	seen := make(map[string]bool)
	var videoIDs []string

	for _, q := range queries {
		ids, err := source.Search(ctx, q.Keyword, q.ChannelID, q.MaxResults)
		if err != nil {
			return nil, &APIError{Op: "search", Err: err}
		}

		logger.Debug().
			Str("channel_id", q.ChannelID).
			Int("video_count", len(ids)).
			Msg("Search query returned videos")

		for _, id := range ids {
			if seen[id] {
				continue
			}
			seen[id] = true
			videoIDs = append(videoIDs, id)
		}
	}

	return videoIDs, nil
}
