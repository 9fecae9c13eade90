package common

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/researchaccelerator-hub/outlier-search/model/youtube"
	"github.com/rs/zerolog/log"
)

// GenerateSearchID returns a unique identifier used to correlate the log
// lines of one search invocation.
func GenerateSearchID() string {
	return uuid.New().String()
}

// DownloadURLFile fetches the body of url into memory.
func DownloadURLFile(url string) ([]byte, error) {
	log.Info().Str("url", url).Msg("Downloading URL file")

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 Outlier-Search/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status code: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	log.Info().Str("url", url).Int("bytes", len(data)).Msg("URL file downloaded successfully")
	return data, nil
}

// LoadChannelAllowList reads a channel allow-list from a local file or an
// http(s) URL. See ParseChannelAllowList for the format.
func LoadChannelAllowList(source string) ([]youtube.ChannelRef, error) {
	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		data, err = DownloadURLFile(source)
	} else {
		log.Debug().Str("filename", source).Msg("Reading channel allow-list")
		data, err = os.ReadFile(source)
		if err != nil {
			err = fmt.Errorf("failed to read file: %w", err)
		}
	}
	if err != nil {
		return nil, err
	}

	channels, err := ParseChannelAllowList(string(data))
	if err != nil {
		return nil, err
	}

	log.Debug().Int("channel_count", len(channels)).Msg("Channel allow-list loaded")
	return channels, nil
}

// ParseChannelAllowList parses one channel per line as "id" or "id,name".
// Empty lines and lines starting with '#' are ignored, and repeated IDs
// keep their first occurrence.
func ParseChannelAllowList(content string) ([]youtube.ChannelRef, error) {
	var channels []youtube.ChannelRef
	seen := make(map[string]bool)

	for i, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		id, name, _ := strings.Cut(line, ",")
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("line %d: missing channel id", i+1)
		}
		if seen[id] {
			continue
		}
		seen[id] = true

		channels = append(channels, youtube.ChannelRef{ID: id, Name: strings.TrimSpace(name)})
	}

	return channels, nil
}

// ChannelIDs returns the IDs of refs in order
func ChannelIDs(refs []youtube.ChannelRef) []string {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.ID)
	}
	return ids
}
