package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/researchaccelerator-hub/outlier-search/model/youtube"
)

// DurationMode picks how the engagement score is adjusted for video length
type DurationMode string

const (
	// ModeDivide divides the engagement base by (minutes + 1)
	ModeDivide DurationMode = "divide"
	// ModeDecay multiplies the base by an exponential decay favouring shorter videos
	ModeDecay DurationMode = "decay"
)

// ParseMode converts a config value into a DurationMode
func ParseMode(s string) (DurationMode, error) {
	switch DurationMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeDivide:
		return ModeDivide, nil
	case ModeDecay:
		return ModeDecay, nil
	}
	return "", fmt.Errorf("invalid engagement mode '%s', must be one of: divide, decay", s)
}

// EngagementDuration scores absolute engagement (log views and likes)
// adjusted by video length. The result is unbounded, usually 0 to 30.
type EngagementDuration struct {
	Mode DurationMode
}

func (e *EngagementDuration) Name() string {
	return string(KindEngagementDuration) + ":" + string(e.Mode)
}

func (e *EngagementDuration) Score(video *youtube.YouTubeVideo, _ youtube.ChannelContext) float64 {
	if video == nil {
		return 0
	}

	minutes := float64(video.DurationSeconds) / 60
	base := 1.5*math.Log(float64(video.ViewCount)+1) + 2*math.Log(float64(video.LikeCount)+1)

	if e.Mode == ModeDecay {
		return base * (0.8 + 0.2*math.Exp(-minutes/30)*5)
	}
	return base / (minutes + 1)
}
