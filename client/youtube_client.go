package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/researchaccelerator-hub/outlier-search/model/youtube"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/googleapi/transport"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"
)

// DefaultTimeout bounds each HTTP request made to the Data API
const DefaultTimeout = 30 * time.Second

// YouTubeDataClient implements VideoSource on top of the YouTube Data API v3
type YouTubeDataClient struct {
	service  *ytapi.Service
	apiKey   string
	endpoint string
	timeout  time.Duration
}

// Option customises a YouTubeDataClient
type Option func(*YouTubeDataClient)

// WithEndpoint overrides the API base URL
func WithEndpoint(endpoint string) Option {
	return func(c *YouTubeDataClient) {
		c.endpoint = endpoint
	}
}

// WithTimeout sets the per-request HTTP timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *YouTubeDataClient) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// NewYouTubeDataClient creates a new YouTube data client. The key is used
// for every request the client makes.
func NewYouTubeDataClient(apiKey string, opts ...Option) (*YouTubeDataClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("YouTube API key is required")
	}

	c := &YouTubeDataClient{
		apiKey:  apiKey,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Connect creates the underlying API service
func (c *YouTubeDataClient) Connect(ctx context.Context) error {
	log.Info().Msg("Connecting to YouTube API")

	httpClient := &http.Client{
		Timeout:   c.timeout,
		Transport: &transport.APIKey{Key: c.apiKey},
	}

	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if c.endpoint != "" {
		opts = append(opts, option.WithEndpoint(c.endpoint))
	}

	service, err := ytapi.NewService(ctx, opts...)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create YouTube service")
		return fmt.Errorf("failed to create YouTube service: %w", err)
	}

	c.service = service
	log.Info().Msg("Connected to YouTube API successfully")
	return nil
}

// Disconnect drops the API service
func (c *YouTubeDataClient) Disconnect(ctx context.Context) error {
	c.service = nil
	return nil
}

// Search runs a single search.list request for videos
func (c *YouTubeDataClient) Search(ctx context.Context, keyword, channelID string, maxResults int64) ([]string, error) {
	if c.service == nil {
		return nil, fmt.Errorf("YouTube client not connected")
	}
	if maxResults <= 0 || maxResults > MaxBatchSize {
		maxResults = MaxBatchSize
	}

	call := c.service.Search.List([]string{"id"}).
		Q(keyword).
		Type("video").
		MaxResults(maxResults).
		Context(ctx)
	if channelID != "" {
		call = call.ChannelId(channelID)
	}

	response, err := call.Do()
	if err != nil {
		log.Error().Err(err).Str("keyword", keyword).Str("channel_id", channelID).Msg("YouTube search failed")
		return nil, fmt.Errorf("failed to search YouTube: %w", err)
	}

	videoIDs := make([]string, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		videoIDs = append(videoIDs, item.Id.VideoId)
	}

	log.Debug().
		Str("keyword", keyword).
		Str("channel_id", channelID).
		Int("video_count", len(videoIDs)).
		Msg("YouTube search completed")

	return videoIDs, nil
}

// GetVideosByIDs fetches snippet, statistics and content details for one batch of videos
func (c *YouTubeDataClient) GetVideosByIDs(ctx context.Context, videoIDs []string) ([]*youtube.YouTubeVideo, error) {
	if c.service == nil {
		return nil, fmt.Errorf("YouTube client not connected")
	}
	if len(videoIDs) == 0 {
		return []*youtube.YouTubeVideo{}, nil
	}
	if len(videoIDs) > MaxBatchSize {
		return nil, fmt.Errorf("too many video IDs in one request: %d (max %d)", len(videoIDs), MaxBatchSize)
	}

	response, err := c.service.Videos.List([]string{"snippet", "statistics", "contentDetails"}).
		Id(videoIDs...).
		Context(ctx).
		Do()
	if err != nil {
		log.Error().Err(err).Strs("video_ids", videoIDs).Msg("Failed to get video details")
		return nil, fmt.Errorf("failed to get video details: %w", err)
	}

	byID := make(map[string]*youtube.YouTubeVideo, len(response.Items))
	for _, item := range response.Items {
		byID[item.Id] = convertVideo(item)
	}

	// the API does not guarantee response order
	videos := make([]*youtube.YouTubeVideo, 0, len(videoIDs))
	for _, id := range videoIDs {
		video, ok := byID[id]
		if !ok {
			log.Debug().Str("video_id", id).Msg("Video missing from details response")
			continue
		}
		videos = append(videos, video)
	}
	return videos, nil
}

// GetChannelInfo retrieves the statistics of a YouTube channel
func (c *YouTubeDataClient) GetChannelInfo(ctx context.Context, channelID string) (*youtube.YouTubeChannel, error) {
	if c.service == nil {
		return nil, fmt.Errorf("YouTube client not connected")
	}

	response, err := c.service.Channels.List([]string{"snippet", "statistics"}).
		Id(channelID).
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		log.Error().Err(err).Str("channel_id", channelID).Msg("Failed to get channel from YouTube API")
		return nil, fmt.Errorf("failed to get channel from YouTube API: %w", err)
	}

	if len(response.Items) == 0 {
		return nil, fmt.Errorf("channel not found on YouTube: %s", channelID)
	}

	item := response.Items[0]
	channel := &youtube.YouTubeChannel{ID: item.Id}
	if item.Snippet != nil {
		channel.Title = item.Snippet.Title
	}
	if item.Statistics != nil {
		channel.SubscriberCount = int64(item.Statistics.SubscriberCount)
		channel.ViewCount = int64(item.Statistics.ViewCount)
		channel.VideoCount = int64(item.Statistics.VideoCount)
	}

	log.Debug().
		Str("channel_id", channel.ID).
		Str("title", channel.Title).
		Int64("subscribers", channel.SubscriberCount).
		Int64("view_count", channel.ViewCount).
		Int64("video_count", channel.VideoCount).
		Msg("YouTube channel info retrieved")

	return channel, nil
}

func convertVideo(item *ytapi.Video) *youtube.YouTubeVideo {
	video := &youtube.YouTubeVideo{
		ID:         item.Id,
		Thumbnails: make(map[string]string),
	}

	if s := item.Snippet; s != nil {
		video.ChannelID = s.ChannelId
		video.ChannelTitle = s.ChannelTitle
		video.Title = s.Title
		video.Description = s.Description
		video.Tags = s.Tags

		if publishedAt, err := time.Parse(time.RFC3339, s.PublishedAt); err == nil {
			video.PublishedAt = publishedAt
		} else if s.PublishedAt != "" {
			log.Warn().Err(err).Str("video_id", item.Id).Str("date", s.PublishedAt).Msg("Failed to parse video published date")
		}

		if t := s.Thumbnails; t != nil {
			for size, thumb := range map[string]*ytapi.Thumbnail{
				"default":  t.Default,
				"medium":   t.Medium,
				"high":     t.High,
				"standard": t.Standard,
				"maxres":   t.Maxres,
			} {
				if thumb != nil && thumb.Url != "" {
					video.Thumbnails[size] = thumb.Url
				}
			}
		}
	}

	if st := item.Statistics; st != nil {
		video.ViewCount = int64(st.ViewCount)
		video.LikeCount = int64(st.LikeCount)
		video.CommentCount = int64(st.CommentCount)
	}

	if cd := item.ContentDetails; cd != nil {
		video.Duration = cd.Duration
	}

	return video
}
