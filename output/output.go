// Package output renders ranked search results for the terminal or for
// downstream tooling
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/researchaccelerator-hub/outlier-search/model/youtube"
)

// Format selects how results are written
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
)

// ParseFormat converts a config value into a Format
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatJSONL:
		return FormatJSONL, nil
	}
	return "", fmt.Errorf("invalid output '%s', must be one of: table, json, jsonl", s)
}

// Record is the serialised form of one ranked result
type Record struct {
	Rank            int       `json:"rank"`
	VideoID         string    `json:"video_id"`
	Title           string    `json:"title"`
	ChannelID       string    `json:"channel_id,omitempty"`
	ChannelTitle    string    `json:"channel_title,omitempty"`
	URL             string    `json:"url"`
	ThumbnailURL    string    `json:"thumbnail_url,omitempty"`
	PublishedAt     time.Time `json:"published_at"`
	ViewCount       int64     `json:"view_count"`
	LikeCount       int64     `json:"like_count"`
	CommentCount    int64     `json:"comment_count"`
	DurationSeconds int64     `json:"duration_seconds"`
	Duration        string    `json:"duration"`
	Score           float64   `json:"score"`
	EngagementRate  float64   `json:"engagement_rate"`
	Tier            string    `json:"tier,omitempty"`
}

// NewRecords converts results into records, ranked from 1 in input order
func NewRecords(results []youtube.ScoredResult) []Record {
	records := make([]Record, 0, len(results))
	for i, r := range results {
		if r.YouTubeVideo == nil {
			continue
		}
		records = append(records, Record{
			Rank:            i + 1,
			VideoID:         r.ID,
			Title:           r.Title,
			ChannelID:       r.ChannelID,
			ChannelTitle:    r.ChannelTitle,
			URL:             r.URL(),
			ThumbnailURL:    r.ThumbnailURL(),
			PublishedAt:     r.PublishedAt,
			ViewCount:       r.ViewCount,
			LikeCount:       r.LikeCount,
			CommentCount:    r.CommentCount,
			DurationSeconds: r.DurationSeconds,
			Duration:        youtube.FormatDuration(r.DurationSeconds),
			Score:           r.Score,
			EngagementRate:  r.EngagementRate,
			Tier:            r.Tier,
		})
	}
	return records
}

// Render writes results to w in the given format
func Render(w io.Writer, format Format, results []youtube.ScoredResult) error {
	records := NewRecords(results)

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("failed to encode results: %w", err)
		}
		return nil
	case FormatJSONL:
		enc := json.NewEncoder(w)
		for _, record := range records {
			if err := enc.Encode(record); err != nil {
				return fmt.Errorf("failed to encode result %s: %w", record.VideoID, err)
			}
		}
		return nil
	case FormatTable, "":
		return renderTable(w, records)
	}
	return fmt.Errorf("unsupported output format '%s'", format)
}

func renderTable(w io.Writer, records []Record) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSCORE\tTIER\tVIEWS\tENGAGEMENT\tDURATION\tCHANNEL\tTITLE\tURL")
	for _, r := range records {
		tier := r.Tier
		if tier == "" {
			tier = "-"
		}
		fmt.Fprintf(tw, "%d\t%.2f\t%s\t%d\t%.2f%%\t%s\t%s\t%s\t%s\n",
			r.Rank, r.Score, tier, r.ViewCount, r.EngagementRate, r.Duration,
			truncate(r.ChannelTitle, 24), truncate(r.Title, 60), r.URL)
	}
	return tw.Flush()
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
