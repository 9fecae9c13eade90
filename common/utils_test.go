package common

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/researchaccelerator-hub/outlier-search/model/youtube"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSearchID(t *testing.T) {
	first := GenerateSearchID()
	second := GenerateSearchID()

	_, err := uuid.Parse(first)
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestParseChannelAllowList(t *testing.T) {
	content := `# finance channels
UC111, Money Talks

UC222
  UC333 ,Budget Hub  
UC111,duplicate
`
	channels, err := ParseChannelAllowList(content)
	require.NoError(t, err)
	assert.Equal(t, []youtube.ChannelRef{
		{ID: "UC111", Name: "Money Talks"},
		{ID: "UC222"},
		{ID: "UC333", Name: "Budget Hub"},
	}, channels)
	assert.Equal(t, []string{"UC111", "UC222", "UC333"}, ChannelIDs(channels))

	_, err = ParseChannelAllowList("UC1\n,orphan name\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")

	channels, err = ParseChannelAllowList("")
	assert.NoError(t, err)
	assert.Empty(t, channels)
}

func TestLoadChannelAllowList_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "channels.txt")
	require.NoError(t, os.WriteFile(path, []byte("UCabc,Alpha\nUCdef,Beta\n"), 0o644))

	channels, err := LoadChannelAllowList(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"UCabc", "UCdef"}, ChannelIDs(channels))

	_, err = LoadChannelAllowList(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadChannelAllowList_URL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Mozilla/5.0 Outlier-Search/1.0", r.Header.Get("User-Agent"))
		fmt.Fprintln(w, "UCremote,Remote Channel")
	}))
	defer server.Close()

	channels, err := LoadChannelAllowList(server.URL)
	require.NoError(t, err)
	assert.Equal(t, []youtube.ChannelRef{{ID: "UCremote", Name: "Remote Channel"}}, channels)
}

func TestDownloadURLFile(t *testing.T) {
	t.Run("HTTP error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		_, err := DownloadURLFile(server.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad status code: 404")
	})

	t.Run("connection refused", func(t *testing.T) {
		_, err := DownloadURLFile("http://127.0.0.1:65534")
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "failed to download file"))
	})
}
