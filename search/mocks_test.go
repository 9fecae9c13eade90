package search

import (
	"context"

	"github.com/researchaccelerator-hub/outlier-search/model/youtube"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
)

// MockVideoSource is a mock implementation of client.VideoSource
type MockVideoSource struct {
	mock.Mock
}

func (m *MockVideoSource) Search(ctx context.Context, keyword, channelID string, maxResults int64) ([]string, error) {
	args := m.Called(ctx, keyword, channelID, maxResults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockVideoSource) GetVideosByIDs(ctx context.Context, videoIDs []string) ([]*youtube.YouTubeVideo, error) {
	args := m.Called(ctx, videoIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if fn, ok := args.Get(0).(detailsFunc); ok {
		return fn(ctx, videoIDs), args.Error(1)
	}
	return args.Get(0).([]*youtube.YouTubeVideo), args.Error(1)
}

func (m *MockVideoSource) GetChannelInfo(ctx context.Context, channelID string) (*youtube.YouTubeChannel, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*youtube.YouTubeChannel), args.Error(1)
}

// detailsFunc lets a GetVideosByIDs expectation compute its return value
type detailsFunc func(ctx context.Context, ids []string) []*youtube.YouTubeVideo

// echoDetails builds one video per requested ID, in request order
func echoDetails(build func(id string) *youtube.YouTubeVideo) detailsFunc {
	return func(_ context.Context, ids []string) []*youtube.YouTubeVideo {
		videos := make([]*youtube.YouTubeVideo, 0, len(ids))
		for _, id := range ids {
			videos = append(videos, build(id))
		}
		return videos
	}
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}
