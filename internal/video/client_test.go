package video

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

const searchBody = `{
	"nextPageToken": "NEXT",
	"prevPageToken": "PREV",
	"pageInfo": {"totalResults": 42},
	"items": [
		{
			"id": {"videoId": "vid-1"},
			"snippet": {
				"title": "Live at the Forum",
				"publishedAt": "2024-01-02T03:04:05Z",
				"channelTitle": "Band Channel",
				"thumbnails": {
					"default": {"url": "https://img.example.com/default.jpg"},
					"medium": {"url": "https://img.example.com/medium.jpg"}
				}
			}
		},
		{
			"id": {"videoId": "vid-2"},
			"snippet": {
				"title": "",
				"publishedAt": "2024-01-01T00:00:00Z",
				"channelTitle": "Band Channel",
				"thumbnails": {
					"default": {"url": "https://img.example.com/only-default.jpg"}
				}
			}
		}
	]
}`

func TestClient_ChannelVideos(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchBody))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", nil)
	page, err := client.ChannelVideos(context.Background(), "UC123", "TOKEN", 6)

	assert.NoError(t, err)
	assert.Equal(t, map[string]string{
		"part":       "snippet",
		"channelId":  "UC123",
		"key":        "test-key",
		"maxResults": "6",
		"type":       "video",
		"order":      "date",
		"pageToken":  "TOKEN",
	}, gotQuery)

	assert.Equal(t, "NEXT", page.NextPageToken)
	assert.Equal(t, "PREV", page.PrevPageToken)
	assert.Equal(t, 42, page.TotalResults)
	assert.Len(t, page.Items, 2)

	assert.Equal(t, "vid-1", page.Items[0].VideoID)
	assert.Equal(t, "Live at the Forum", page.Items[0].Title)
	assert.Equal(t, "https://img.example.com/medium.jpg", page.Items[0].Thumbnail)

	// Missing title and medium thumbnail fall back.
	assert.Equal(t, "Untitled", page.Items[1].Title)
	assert.Equal(t, "https://img.example.com/only-default.jpg", page.Items[1].Thumbnail)
}

func TestClient_ChannelVideos_PageSizeBounds(t *testing.T) {
	var gotMaxResults string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMaxResults = r.URL.Query().Get("maxResults")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", nil)

	_, err := client.ChannelVideos(context.Background(), "UC123", "", 0)
	assert.NoError(t, err)
	assert.Equal(t, "6", gotMaxResults)

	_, err = client.ChannelVideos(context.Background(), "UC123", "", 500)
	assert.NoError(t, err)
	assert.Equal(t, "50", gotMaxResults)
}

func TestClient_ChannelVideos_MissingKey(t *testing.T) {
	client := NewClient("http://unused.example.com", "", nil)
	page, err := client.ChannelVideos(context.Background(), "UC123", "", 6)
	assert.Equal(t, ErrMissingAPIKey, err)
	assert.Nil(t, page)
}

func TestClient_ChannelVideos_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": {"message": "quotaExceeded"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", nil)
	page, err := client.ChannelVideos(context.Background(), "UC123", "", 6)

	assert.Error(t, err)
	assert.Nil(t, page)
	assert.Contains(t, err.Error(), "quotaExceeded")
}
