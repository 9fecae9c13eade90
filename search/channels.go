package search

import (
	"context"

	"github.com/researchaccelerator-hub/outlier-search/client"
	"github.com/researchaccelerator-hub/outlier-search/model/youtube"
	"github.com/rs/zerolog"
)

// aggregateChannels looks up every distinct channel of videos once and
// returns its baseline. A failed lookup is logged and yields the zero
// context for that channel; it never fails the search.
func aggregateChannels(ctx context.Context, source client.VideoSource, videos []*youtube.YouTubeVideo, logger zerolog.Logger) map[string]youtube.ChannelContext {
	contexts := make(map[string]youtube.ChannelContext)

	for _, video := range videos {
		if video.ChannelID == "" {
			continue
		}
		if _, done := contexts[video.ChannelID]; done {
			continue
		}

		channel, err := source.GetChannelInfo(ctx, video.ChannelID)
		if err != nil {
			logger.Warn().Err(err).Str("channel_id", video.ChannelID).Msg("Channel statistics unavailable, using zero baseline")
			contexts[video.ChannelID] = youtube.ChannelContext{}
			continue
		}

		contexts[video.ChannelID] = youtube.ChannelContext{
			SubscriberCount: channel.SubscriberCount,
			AvgViews:        channel.AverageViews(),
		}
	}

	logger.Debug().Int("channel_count", len(contexts)).Msg("Channel statistics aggregated")
	return contexts
}
