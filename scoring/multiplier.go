package scoring

import (
	"github.com/researchaccelerator-hub/outlier-search/model/youtube"
)

// TierLevel is the display bucket of an outlier multiplier
type TierLevel string

const (
	TierLow     TierLevel = "low"
	TierMid     TierLevel = "mid"
	TierHigh    TierLevel = "high"
	TierExtreme TierLevel = "extreme"
)

// Tier buckets a multiplier at the 2, 5 and 10 boundaries
func Tier(multiplier float64) TierLevel {
	switch {
	case multiplier < 2:
		return TierLow
	case multiplier < 5:
		return TierMid
	case multiplier < 10:
		return TierHigh
	default:
		return TierExtreme
	}
}

// ChannelMultiplier scores a video as its views divided by the average
// views per video of its channel.
type ChannelMultiplier struct{}

func (m *ChannelMultiplier) Name() string {
	return string(KindChannelMultiplier)
}

// Score returns 0 when the channel average is unknown
func (m *ChannelMultiplier) Score(video *youtube.YouTubeVideo, channel youtube.ChannelContext) float64 {
	if video == nil || channel.AvgViews <= 0 {
		return 0
	}
	return float64(video.ViewCount) / channel.AvgViews
}
