// Package youtube queries the YouTube Data API for educational video
// candidates. Ranking happens upstream; this client only gathers raw
// metadata per query.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/SSHRIHARI006/GyanForge/internal/domain"
)

const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a search client. The timeout applies per query variant;
// 10s is the recommended ceiling.
func NewClient(apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			ChannelTitle string `json:"channelTitle"`
			Thumbnails   struct {
				High struct {
					URL string `json:"url"`
				} `json:"high"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

type videosResponse struct {
	Items []struct {
		ID             string `json:"id"`
		ContentDetails struct {
			Duration string `json:"duration"` // ISO 8601, e.g. PT12M34S
		} `json:"contentDetails"`
		Statistics struct {
			ViewCount string `json:"viewCount"`
		} `json:"statistics"`
	} `json:"items"`
}

// Search runs one query and returns up to limit candidates with durations
// and view counts attached.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]domain.VideoCandidate, error) {
	if limit <= 0 {
		limit = 5
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(limit))
	params.Set("key", c.apiKey)

	var search searchResponse
	if err := c.getJSON(ctx, c.baseURL+"/search?"+params.Encode(), &search); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	if len(search.Items) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(search.Items))
	for _, item := range search.Items {
		ids = append(ids, item.ID.VideoID)
	}

	detailParams := url.Values{}
	detailParams.Set("part", "contentDetails,statistics")
	detailParams.Set("id", strings.Join(ids, ","))
	detailParams.Set("key", c.apiKey)

	details := map[string]struct{ duration, views string }{}
	var videos videosResponse
	if err := c.getJSON(ctx, c.baseURL+"/videos?"+detailParams.Encode(), &videos); err == nil {
		for _, item := range videos.Items {
			details[item.ID] = struct{ duration, views string }{
				duration: formatISODuration(item.ContentDetails.Duration),
				views:    item.Statistics.ViewCount,
			}
		}
	}

	candidates := make([]domain.VideoCandidate, 0, len(search.Items))
	for _, item := range search.Items {
		detail := details[item.ID.VideoID]
		candidates = append(candidates, domain.VideoCandidate{
			ID:          item.ID.VideoID,
			Title:       item.Snippet.Title,
			Description: item.Snippet.Description,
			Thumbnail:   item.Snippet.Thumbnails.High.URL,
			Duration:    detail.duration,
			Views:       detail.views,
			Channel:     item.Snippet.ChannelTitle,
			URL:         "https://www.youtube.com/watch?v=" + item.ID.VideoID,
		})
	}
	return candidates, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}

// formatISODuration converts an ISO 8601 duration (PT1H2M3S) to the
// display form used elsewhere (h:mm:ss or m:ss).
func formatISODuration(iso string) string {
	rest, ok := strings.CutPrefix(iso, "PT")
	if !ok {
		return ""
	}
	var hours, minutes, seconds int
	if i := strings.Index(rest, "H"); i >= 0 {
		hours, _ = strconv.Atoi(rest[:i])
		rest = rest[i+1:]
	}
	if i := strings.Index(rest, "M"); i >= 0 {
		minutes, _ = strconv.Atoi(rest[:i])
		rest = rest[i+1:]
	}
	if i := strings.Index(rest, "S"); i >= 0 {
		seconds, _ = strconv.Atoi(rest[:i])
	}
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
