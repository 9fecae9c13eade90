package scoring

import (
	"math"
	"testing"
	"time"

	"github.com/researchaccelerator-hub/outlier-search/model/youtube"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var referenceTime = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return referenceTime }

func TestSubscriberNormalized_Score(t *testing.T) {
	s := &SubscriberNormalized{Now: fixedNow}

	video := &youtube.YouTubeVideo{
		ViewCount:    60000,
		LikeCount:    3000,
		CommentCount: 300,
		PublishedAt:  referenceTime.Add(-5 * 24 * time.Hour),
	}
	channel := youtube.ChannelContext{SubscriberCount: 10000}

	c := s.Components(video, channel)
	assert.Equal(t, int64(6), c.DaysSincePublished)
	assert.InDelta(t, 6.0, c.ViewSubRatio, 1e-9)
	assert.InDelta(t, 5.0, c.LikeViewRatio, 1e-9)
	assert.InDelta(t, 5.0, c.CommentViewRatio, 1e-9)
	assert.InDelta(t, 10000.0, c.ViewVelocity, 1e-9)
	assert.InDelta(t, 20.0/3.0, c.NormalizedVelocity, 1e-9)
	assert.InDelta(t, 8.0/14.0*3, c.RecencyBoost, 1e-9)

	assert.Equal(t, 5.27, s.Score(video, channel))
}

func TestSubscriberNormalized_Bounded(t *testing.T) {
	s := &SubscriberNormalized{Now: fixedNow}

	video := &youtube.YouTubeVideo{
		ViewCount:    1_000_000_000_000,
		LikeCount:    1_000_000_000_000,
		CommentCount: 1_000_000_000_000,
		PublishedAt:  referenceTime,
	}

	c := s.Components(video, youtube.ChannelContext{})
	assert.Equal(t, 10.0, c.ViewSubRatio)
	assert.Equal(t, 30.0, c.LikeViewRatio)
	assert.Equal(t, 50.0, c.CommentViewRatio)
	assert.Equal(t, 10.0, c.NormalizedVelocity)
	assert.Equal(t, int64(1), c.DaysSincePublished)

	assert.Equal(t, 20.28, s.Score(video, youtube.ChannelContext{}))
}

func TestSubscriberNormalized_MonotonicInViews(t *testing.T) {
	s := &SubscriberNormalized{Now: fixedNow}
	channel := youtube.ChannelContext{SubscriberCount: 5000}
	published := referenceTime.Add(-30 * 24 * time.Hour)

	previous := -1.0
	for views := int64(0); views <= 10_000_000; views = views*3 + 1 {
		score := s.Score(&youtube.YouTubeVideo{ViewCount: views, PublishedAt: published}, channel)
		assert.GreaterOrEqual(t, score, previous, "views=%d", views)
		previous = score
	}
}

func TestSubscriberNormalized_MissingFields(t *testing.T) {
	s := &SubscriberNormalized{Now: fixedNow}

	assert.Equal(t, 0.0, s.Score(nil, youtube.ChannelContext{}))

	// unknown publish date counts as one day old, which earns the recency boost
	score := s.Score(&youtube.YouTubeVideo{}, youtube.ChannelContext{})
	assert.Equal(t, round2(13.0/14.0*3*0.1), score)
}

func TestSubscriberNormalized_FuturePublishDate(t *testing.T) {
	s := &SubscriberNormalized{Now: fixedNow}
	c := s.Components(&youtube.YouTubeVideo{PublishedAt: referenceTime.Add(72 * time.Hour)}, youtube.ChannelContext{})
	assert.Equal(t, int64(1), c.DaysSincePublished)
}

func TestEngagementDuration_Divide(t *testing.T) {
	e := &EngagementDuration{Mode: ModeDivide}
	video := &youtube.YouTubeVideo{ViewCount: 1000, LikeCount: 100, DurationSeconds: 540}

	base := 1.5*math.Log(1001) + 2*math.Log(101)
	assert.InDelta(t, base/10, e.Score(video, youtube.ChannelContext{}), 1e-9)
}

func TestEngagementDuration_Decay(t *testing.T) {
	e := &EngagementDuration{Mode: ModeDecay}
	video := &youtube.YouTubeVideo{ViewCount: 1000, LikeCount: 100}

	base := 1.5*math.Log(1001) + 2*math.Log(101)
	assert.InDelta(t, base*1.8, e.Score(video, youtube.ChannelContext{}), 1e-9)

	short := e.Score(&youtube.YouTubeVideo{ViewCount: 1000, LikeCount: 100, DurationSeconds: 60}, youtube.ChannelContext{})
	long := e.Score(&youtube.YouTubeVideo{ViewCount: 1000, LikeCount: 100, DurationSeconds: 3600}, youtube.ChannelContext{})
	assert.Greater(t, short, long)
}

func TestEngagementDuration_ZeroInputs(t *testing.T) {
	for _, mode := range []DurationMode{ModeDivide, ModeDecay} {
		e := &EngagementDuration{Mode: mode}
		assert.Equal(t, 0.0, e.Score(&youtube.YouTubeVideo{}, youtube.ChannelContext{}))
		assert.Equal(t, 0.0, e.Score(nil, youtube.ChannelContext{}))
	}
}

func TestChannelMultiplier(t *testing.T) {
	m := &ChannelMultiplier{}
	channel := youtube.ChannelContext{AvgViews: 10000}

	assert.InDelta(t, 0.1, m.Score(&youtube.YouTubeVideo{ViewCount: 1000}, channel), 1e-9)
	assert.InDelta(t, 5.0, m.Score(&youtube.YouTubeVideo{ViewCount: 50000}, channel), 1e-9)
	assert.InDelta(t, 0.02, m.Score(&youtube.YouTubeVideo{ViewCount: 200}, channel), 1e-9)

	assert.Equal(t, 0.0, m.Score(&youtube.YouTubeVideo{ViewCount: 50000}, youtube.ChannelContext{}))
	assert.Equal(t, 0.0, m.Score(nil, channel))
}

func TestTier(t *testing.T) {
	tests := []struct {
		multiplier float64
		want       TierLevel
	}{
		{0, TierLow},
		{1.9, TierLow},
		{2.0, TierMid},
		{4.9, TierMid},
		{5.0, TierHigh},
		{9.9, TierHigh},
		{10.0, TierExtreme},
		{250, TierExtreme},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Tier(tt.multiplier), "multiplier %v", tt.multiplier)
	}
}

func TestEngagementRate(t *testing.T) {
	assert.InDelta(t, 5.5, EngagementRate(&youtube.YouTubeVideo{ViewCount: 2000, LikeCount: 100, CommentCount: 10}), 1e-9)
	assert.InDelta(t, 300.0, EngagementRate(&youtube.YouTubeVideo{LikeCount: 3}), 1e-9)
	assert.Equal(t, 0.0, EngagementRate(nil))
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		mode     DurationMode
		wantName string
		wantErr  bool
	}{
		{name: "subscriber", kind: KindSubscriberNormalized, wantName: "subscriber"},
		{name: "engagement divide", kind: KindEngagementDuration, mode: ModeDivide, wantName: "engagement:divide"},
		{name: "engagement decay", kind: KindEngagementDuration, mode: ModeDecay, wantName: "engagement:decay"},
		{name: "engagement without mode", kind: KindEngagementDuration, wantErr: true},
		{name: "channel", kind: KindChannelMultiplier, wantName: "channel"},
		{name: "unknown", kind: Kind("views"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.kind, tt.mode, fixedNow)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, s.Name())
		})
	}
}

func TestNeedsChannelStats(t *testing.T) {
	assert.True(t, NeedsChannelStats(&SubscriberNormalized{}))
	assert.True(t, NeedsChannelStats(&ChannelMultiplier{}))
	assert.False(t, NeedsChannelStats(&EngagementDuration{Mode: ModeDecay}))
}

func TestParseKindAndMode(t *testing.T) {
	kind, err := ParseKind("")
	require.NoError(t, err)
	assert.Equal(t, KindSubscriberNormalized, kind)

	kind, err = ParseKind("Engagement")
	require.NoError(t, err)
	assert.Equal(t, KindEngagementDuration, kind)

	_, err = ParseKind("ratio")
	assert.Error(t, err)

	mode, err := ParseMode("DECAY")
	require.NoError(t, err)
	assert.Equal(t, ModeDecay, mode)

	_, err = ParseMode("linear")
	assert.Error(t, err)
}
