package scoring

import (
	"math"
	"time"

	"github.com/researchaccelerator-hub/outlier-search/model/youtube"
)

const (
	maxViewSubRatio       = 10
	maxLikeViewRatio      = 30
	maxCommentViewRatio   = 50
	maxNormalizedVelocity = 10
	recencyWindowDays     = 14
)

// Components holds the capped sub-scores that make up the subscriber
// normalized score.
type Components struct {
	ViewSubRatio       float64
	LikeViewRatio      float64
	CommentViewRatio   float64
	DaysSincePublished int64
	ViewVelocity       float64
	RecencyBoost       float64
	NormalizedVelocity float64
}

// SubscriberNormalized scores a video against its channel's subscriber
// count, blended with engagement ratios, view velocity and recency.
// Scores fall roughly between 0 and 10.
type SubscriberNormalized struct {
	// Now returns the reference time for age calculations; time.Now when nil
	Now func() time.Time
}

func (s *SubscriberNormalized) Name() string {
	return string(KindSubscriberNormalized)
}

func (s *SubscriberNormalized) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Components computes each weighted input of the score
func (s *SubscriberNormalized) Components(video *youtube.YouTubeVideo, channel youtube.ChannelContext) Components {
	if video == nil {
		return Components{DaysSincePublished: 1}
	}

	views := float64(video.ViewCount)
	likes := float64(video.LikeCount)
	comments := float64(video.CommentCount)
	subscribers := float64(channel.SubscriberCount)

	days := int64(1)
	if !video.PublishedAt.IsZero() {
		age := s.now().Sub(video.PublishedAt)
		days = int64(math.Floor(age.Hours()/24)) + 1
		if days < 1 {
			days = 1
		}
	}

	c := Components{
		ViewSubRatio:       math.Min(views/math.Max(subscribers, 1), maxViewSubRatio),
		LikeViewRatio:      math.Min(likes/math.Max(views, 1)*100, maxLikeViewRatio),
		CommentViewRatio:   math.Min(comments/math.Max(views, 1)*1000, maxCommentViewRatio),
		DaysSincePublished: days,
		ViewVelocity:       views / float64(days),
	}
	c.RecencyBoost = math.Max(0, float64(recencyWindowDays-min(days, recencyWindowDays))/recencyWindowDays) * 3
	c.NormalizedVelocity = math.Min(math.Log10(math.Max(c.ViewVelocity, 1))/6*10, maxNormalizedVelocity)
	return c
}

// Score returns the weighted blend of the components rounded to 2 decimals
func (s *SubscriberNormalized) Score(video *youtube.YouTubeVideo, channel youtube.ChannelContext) float64 {
	c := s.Components(video, channel)
	score := 0.35*c.ViewSubRatio +
		0.25*c.LikeViewRatio +
		0.15*c.CommentViewRatio +
		0.15*c.NormalizedVelocity +
		0.10*c.RecencyBoost
	return round2(score)
}
