// Package video looks up a channel's videos through the YouTube Data
// API v3 search endpoint, paginated by opaque continuation tokens.
package video

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"bandbook/internal/cache"
)

const (
	defaultBaseURL  = "https://www.googleapis.com/youtube/v3"
	defaultPageSize = 6
	maxPageSize     = 50 // YouTube's maxResults ceiling
	lookupCacheTTL  = 5 * time.Minute
)

// ErrMissingAPIKey is returned when no YouTube API key is configured.
var ErrMissingAPIKey = errors.New("missing YouTube API key")

// Video is one channel video in a lookup result.
type Video struct {
	ID           string `json:"id"`
	VideoID      string `json:"videoId"`
	Title        string `json:"title"`
	PublishedAt  string `json:"publishedAt"`
	Thumbnail    string `json:"thumbnail"`
	ChannelTitle string `json:"channelTitle"`
}

// Page is one page of channel videos with continuation tokens.
type Page struct {
	Items         []Video `json:"items"`
	NextPageToken string  `json:"nextPageToken"`
	PrevPageToken string  `json:"prevPageToken"`
	TotalResults  int     `json:"totalResults"`
}

// Client queries the video search API with rate limiting and response
// caching. The quota cost of search calls makes both worthwhile.
type Client struct {
	baseURL    string
	key        string
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *cache.Client
}

// NewClient creates a video lookup client.
func NewClient(baseURL, key string, cache *cache.Client) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		key:        key,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(5), 5),
		cache:      cache,
	}
}

type searchResponse struct {
	NextPageToken string `json:"nextPageToken"`
	PrevPageToken string `json:"prevPageToken"`
	PageInfo      struct {
		TotalResults int `json:"totalResults"`
	} `json:"pageInfo"`
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			PublishedAt  string `json:"publishedAt"`
			ChannelTitle string `json:"channelTitle"`
			Thumbnails   struct {
				Default struct {
					URL string `json:"url"`
				} `json:"default"`
				Medium struct {
					URL string `json:"url"`
				} `json:"medium"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

// ChannelVideos fetches one page of a channel's videos, newest first.
// pageToken is the opaque continuation token from a previous page, or
// empty for the first page.
func (c *Client) ChannelVideos(ctx context.Context, channelID, pageToken string, pageSize int) (*Page, error) {
	if c.key == "" {
		return nil, ErrMissingAPIKey
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	cacheKey := fmt.Sprintf("yt:search:%s:%s:%d", channelID, pageToken, pageSize)
	if data, _ := c.cache.Get(ctx, cacheKey); data != nil {
		var cached Page
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("channelId", channelID)
	params.Set("key", c.key)
	params.Set("maxResults", strconv.Itoa(pageSize))
	params.Set("type", "video")
	params.Set("order", "date")
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("video lookup request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error.Message != "" {
			return nil, fmt.Errorf("video lookup failed (status %d): %s", resp.StatusCode, errResp.Error.Message)
		}
		return nil, fmt.Errorf("video lookup failed: status %d", resp.StatusCode)
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	page := &Page{
		Items:         make([]Video, 0, len(decoded.Items)),
		NextPageToken: decoded.NextPageToken,
		PrevPageToken: decoded.PrevPageToken,
		TotalResults:  decoded.PageInfo.TotalResults,
	}
	for _, item := range decoded.Items {
		title := item.Snippet.Title
		if title == "" {
			title = "Untitled"
		}
		thumb := item.Snippet.Thumbnails.Medium.URL
		if thumb == "" {
			thumb = item.Snippet.Thumbnails.Default.URL
		}
		page.Items = append(page.Items, Video{
			ID:           item.ID.VideoID,
			VideoID:      item.ID.VideoID,
			Title:        title,
			PublishedAt:  item.Snippet.PublishedAt,
			Thumbnail:    thumb,
			ChannelTitle: item.Snippet.ChannelTitle,
		})
	}

	if payload, err := json.Marshal(page); err == nil {
		_ = c.cache.Set(ctx, cacheKey, payload, lookupCacheTTL)
	}
	return page, nil
}
