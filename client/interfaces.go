// Package client provides access to the YouTube Data API
package client

import (
	"context"

	"github.com/researchaccelerator-hub/outlier-search/model/youtube"
)

// MaxBatchSize is the largest number of IDs a single videos.list call accepts
const MaxBatchSize = 50

// VideoSource is the set of YouTube operations the search pipeline needs
type VideoSource interface {
	// Search returns the IDs of videos matching keyword, optionally restricted
	// to one channel, in the order the API ranked them
	Search(ctx context.Context, keyword, channelID string, maxResults int64) ([]string, error)

	// GetVideosByIDs returns details for at most MaxBatchSize videos, in the
	// order of videoIDs. IDs the API does not return are skipped.
	GetVideosByIDs(ctx context.Context, videoIDs []string) ([]*youtube.YouTubeVideo, error)

	// GetChannelInfo retrieves the statistics of a YouTube channel
	GetChannelInfo(ctx context.Context, channelID string) (*youtube.YouTubeChannel, error)
}
