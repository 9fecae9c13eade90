// Package youtube contains the YouTube data models used by the outlier search
package youtube

import (
	"fmt"
	"strings"
	"time"
)

// MaxResults is the number of results a search returns at most
const MaxResults = 10

// ShortFormLimit is the duration in seconds below which a video counts as short form
const ShortFormLimit = 180

// YouTubeChannel represents a YouTube channel and its public statistics
type YouTubeChannel struct {
	ID              string
	Title           string
	SubscriberCount int64
	ViewCount       int64
	VideoCount      int64
}

// AverageViews returns the channel's total views divided by its video count,
// or 0 when the channel has no videos.
func (c *YouTubeChannel) AverageViews() float64 {
	if c == nil || c.VideoCount <= 0 {
		return 0
	}
	return float64(c.ViewCount) / float64(c.VideoCount)
}

// YouTubeVideo represents one fetched YouTube video
type YouTubeVideo struct {
	ID              string
	ChannelID       string
	ChannelTitle    string
	Title           string
	Description     string
	Tags            []string
	PublishedAt     time.Time
	ViewCount       int64
	LikeCount       int64
	CommentCount    int64
	Duration        string // raw ISO-8601 value from contentDetails
	DurationSeconds int64
	Thumbnails      map[string]string
}

// URL returns the watch URL of the video
func (v *YouTubeVideo) URL() string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", v.ID)
}

// ThumbnailURL returns the best available thumbnail
func (v *YouTubeVideo) ThumbnailURL() string {
	for _, size := range []string{"maxres", "standard", "high", "medium", "default"} {
		if url, ok := v.Thumbnails[size]; ok && url != "" {
			return url
		}
	}
	return ""
}

// ChannelRef is one entry of a channel allow-list
type ChannelRef struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// ChannelContext carries the per-channel baseline used by channel-relative
// scoring. The zero value means the baseline is unknown.
type ChannelContext struct {
	SubscriberCount int64
	AvgViews        float64
}

// ScoredResult is a video together with the values derived from it during scoring
type ScoredResult struct {
	*YouTubeVideo
	Score          float64
	EngagementRate float64
	Tier           string
}

// DurationClass buckets videos by length
type DurationClass string

const (
	DurationAll   DurationClass = "all"
	DurationShort DurationClass = "short"
	DurationLong  DurationClass = "long"
)

// ParseDurationClass converts a config value into a DurationClass
func ParseDurationClass(s string) (DurationClass, error) {
	switch DurationClass(strings.ToLower(strings.TrimSpace(s))) {
	case "", DurationAll:
		return DurationAll, nil
	case DurationShort:
		return DurationShort, nil
	case DurationLong:
		return DurationLong, nil
	}
	return "", fmt.Errorf("invalid duration class '%s', must be one of: all, short, long", s)
}

// Matches reports whether a video of the given length belongs to the class
func (d DurationClass) Matches(seconds int64) bool {
	switch d {
	case DurationShort:
		return seconds < ShortFormLimit
	case DurationLong:
		return seconds >= ShortFormLimit
	default:
		return true
	}
}

// SortKey selects the field results are ordered by
type SortKey string

const (
	SortByScore SortKey = "score"
	SortByViews SortKey = "views"
)

// ParseSortKey converts a config value into a SortKey
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortByScore:
		return SortByScore, nil
	case SortByViews:
		return SortByViews, nil
	}
	return "", fmt.Errorf("invalid sort key '%s', must be one of: score, views", s)
}

// SearchCriteria holds the user supplied parameters of one search
type SearchCriteria struct {
	Keyword       string
	MinScore      float64
	DurationClass DurationClass
	SortKey       SortKey
	// ChannelIDs restricts the search to these channels when non-empty
	ChannelIDs []string
}
