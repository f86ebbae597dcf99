// Package trackdata resolves display metadata for an external media id,
// trying the oEmbed endpoint first and falling back to scraping the watch
// page when the video is not embeddable.
package trackdata

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	ErrVideoNotFound      = errors.New("video not found")
	ErrVideoNotEmbeddable = errors.New("video is not embeddable")
)

type TrackData struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

type Client struct {
	httpClient *http.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Get(ctx context.Context, mediaId string) (*TrackData, error) {
	trackData, err := c.getWithEmbed(ctx, mediaId)
	if err != nil {
		if !errors.Is(err, ErrVideoNotEmbeddable) {
			return nil, fmt.Errorf("failed to get track data with embed: %w", err)
		}

		trackData, err = c.getFromPage(ctx, mediaId)
		if err != nil {
			return nil, fmt.Errorf("failed to get track data from page: %w", err)
		}
	}

	return trackData, nil
}
