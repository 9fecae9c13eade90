package search

import (
	"context"

	"github.com/researchaccelerator-hub/outlier-search/client"
	"github.com/researchaccelerator-hub/outlier-search/model/youtube"
	"github.com/rs/zerolog"
)

// ChunkIDs splits ids into consecutive batches of at most size elements
func ChunkIDs(ids []string, size int) [][]string {
	if size <= 0 {
		size = client.MaxBatchSize
	}

	batches := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		batches = append(batches, ids[start:end])
	}
	return batches
}

// fetchDetails retrieves video details batch by batch and flattens them in
// the order of videoIDs.
func fetchDetails(ctx context.Context, source client.VideoSource, videoIDs []string, logger zerolog.Logger) ([]*youtube.YouTubeVideo, error) {
	videos := make([]*youtube.YouTubeVideo, 0, len(videoIDs))

	for i, batch := range ChunkIDs(videoIDs, client.MaxBatchSize) {
		details, err := source.GetVideosByIDs(ctx, batch)
		if err != nil {
			return nil, &APIError{Op: "videos", Err: err}
		}

		logger.Debug().
			Int("batch", i).
			Int("requested", len(batch)).
			Int("returned", len(details)).
			Msg("Fetched video details batch")

		videos = append(videos, details...)
	}

	return videos, nil
}

// applyDurations fills DurationSeconds from the raw ISO value. Unparseable
// values are logged and left at 0.
func applyDurations(videos []*youtube.YouTubeVideo, logger zerolog.Logger) {
	for _, video := range videos {
		seconds, err := youtube.ParseDuration(video.Duration)
		if err != nil {
			logger.Warn().Err(err).Str("video_id", video.ID).Msg("Using zero duration")
		}
		video.DurationSeconds = seconds
	}
}
