// Package rank filters and orders scored search results
package rank

import (
	"slices"
	"strings"

	"github.com/researchaccelerator-hub/outlier-search/model/youtube"
)

// Apply keeps the results that mention the keyword, beat the score
// threshold and fall in the requested duration class, orders them by the
// sort key (descending, ties keep input order) and returns at most
// youtube.MaxResults of them. The input slice is not modified.
func Apply(results []youtube.ScoredResult, criteria youtube.SearchCriteria) []youtube.ScoredResult {
	kept := make([]youtube.ScoredResult, 0, len(results))
	for _, r := range results {
		if r.YouTubeVideo == nil {
			continue
		}
		if !MatchesKeyword(r.YouTubeVideo, criteria.Keyword) {
			continue
		}
		if !(r.Score > criteria.MinScore) {
			continue
		}
		if !criteria.DurationClass.Matches(r.DurationSeconds) {
			continue
		}
		kept = append(kept, r)
	}

	slices.SortStableFunc(kept, compareBy(criteria.SortKey))

	if len(kept) > youtube.MaxResults {
		kept = kept[:youtube.MaxResults]
	}
	return kept
}

// MatchesKeyword reports whether keyword occurs case-insensitively in the
// video's title, description or any of its tags.
func MatchesKeyword(video *youtube.YouTubeVideo, keyword string) bool {
	needle := strings.ToLower(keyword)
	if strings.Contains(strings.ToLower(video.Title), needle) ||
		strings.Contains(strings.ToLower(video.Description), needle) {
		return true
	}
	for _, tag := range video.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func compareBy(key youtube.SortKey) func(a, b youtube.ScoredResult) int {
	if key == youtube.SortByViews {
		return func(a, b youtube.ScoredResult) int {
			switch {
			case a.ViewCount > b.ViewCount:
				return -1
			case a.ViewCount < b.ViewCount:
				return 1
			}
			return 0
		}
	}
	return func(a, b youtube.ScoredResult) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	}
}
