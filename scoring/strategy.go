// Package scoring implements the outlier score strategies applied to each fetched video
package scoring

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/researchaccelerator-hub/outlier-search/model/youtube"
)

// Strategy computes an outlier score for a single video. Implementations are
// pure: they never fail and substitute 0 for missing inputs.
type Strategy interface {
	// Name returns the identifier used in configuration
	Name() string

	// Score returns the outlier score of the video given its channel baseline
	Score(video *youtube.YouTubeVideo, channel youtube.ChannelContext) float64
}

// Kind selects one of the available strategies
type Kind string

const (
	KindSubscriberNormalized Kind = "subscriber"
	KindEngagementDuration   Kind = "engagement"
	KindChannelMultiplier    Kind = "channel"
)

// ParseKind converts a config value into a Kind
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case "", KindSubscriberNormalized:
		return KindSubscriberNormalized, nil
	case KindEngagementDuration:
		return KindEngagementDuration, nil
	case KindChannelMultiplier:
		return KindChannelMultiplier, nil
	}
	return "", fmt.Errorf("invalid strategy '%s', must be one of: subscriber, engagement, channel", s)
}

// NeedsChannelStats reports whether s reads the ChannelContext passed to Score
func NeedsChannelStats(s Strategy) bool {
	switch s.(type) {
	case *SubscriberNormalized, *ChannelMultiplier:
		return true
	}
	return false
}

// New builds the strategy for kind. mode is only read by the engagement strategy.
func New(kind Kind, mode DurationMode, now func() time.Time) (Strategy, error) {
	switch kind {
	case KindSubscriberNormalized:
		return &SubscriberNormalized{Now: now}, nil
	case KindEngagementDuration:
		if mode != ModeDivide && mode != ModeDecay {
			return nil, fmt.Errorf("invalid engagement mode '%s'", mode)
		}
		return &EngagementDuration{Mode: mode}, nil
	case KindChannelMultiplier:
		return &ChannelMultiplier{}, nil
	}
	return nil, fmt.Errorf("unknown strategy kind '%s'", kind)
}

// EngagementRate returns (likes + comments) / views as a percentage
func EngagementRate(video *youtube.YouTubeVideo) float64 {
	if video == nil {
		return 0
	}
	return float64(video.LikeCount+video.CommentCount) / math.Max(float64(video.ViewCount), 1) * 100
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
