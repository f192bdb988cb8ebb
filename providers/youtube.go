package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"creative-radar/config"
	"creative-radar/httpclient"
	"creative-radar/models"
)

const defaultYouTubeBaseURL = "https://www.googleapis.com/youtube/v3"

// YouTube 는 YouTube Data API v3 의 search.list 와 videos.list 를 사용한다.
type YouTube struct {
	client     *httpclient.BaseClient
	apiKey     string
	maxResults int
}

func NewYouTube(cfg config.YouTubeConfig, apiKey string, httpClient *http.Client) *YouTube {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultYouTubeBaseURL
	}
	return &YouTube{
		client:     httpclient.NewBaseClient(httpClient, baseURL),
		apiKey:     apiKey,
		maxResults: cfg.MaxResults,
	}
}

func (y *YouTube) Name() string { return "youtube" }

type youtubeSearchResponse struct {
	Items []json.RawMessage `json:"items"`
}

type youtubeVideosResponse struct {
	Items []struct {
		ID         string          `json:"id"`
		Statistics json.RawMessage `json:"statistics"`
	} `json:"items"`
}

// Search options: maxResults (1-50).
func (y *YouTube) Search(ctx context.Context, queries []string, opts Options) ([]models.NormalizedResult, error) {
	if y.apiKey == "" {
		config.Logger.Warn("[youtube] YOUTUBE_API_KEY is not set, skipping YouTube search")
		return []models.NormalizedResult{}, nil
	}

	maxResults := opts.Int("maxResults", y.maxResults)
	if maxResults <= 0 {
		maxResults = 10
	}

	results := []models.NormalizedResult{}
	for _, q := range queries {
		found, err := y.searchQuery(ctx, q, maxResults)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			config.Logger.Warnf("[youtube] query %q failed: %v", q, err)
			continue
		}
		results = append(results, found...)
	}
	return results, nil
}

func (y *YouTube) searchQuery(ctx context.Context, q string, maxResults int) ([]models.NormalizedResult, error) {
	var searchResp youtubeSearchResponse
	err := y.client.GetJSON(ctx, "/search", url.Values{
		"part":       {"snippet"},
		"q":          {q},
		"type":       {"video"},
		"maxResults": {strconv.Itoa(maxResults)},
		"key":        {y.apiKey},
	}, nil, &searchResp)
	if err != nil {
		return nil, err
	}
	if len(searchResp.Items) == 0 {
		return nil, nil
	}

	items := make([]item, 0, len(searchResp.Items))
	ids := make([]string, 0, len(searchResp.Items))
	for _, raw := range searchResp.Items {
		it, err := decodeItem(raw)
		if err != nil {
			config.Logger.Warnf("[youtube] skipping malformed item: %v", err)
			continue
		}
		if id := it.str("id.videoId"); id != "" {
			items = append(items, it)
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var videosResp youtubeVideosResponse
	err = y.client.GetJSON(ctx, "/videos", url.Values{
		"part": {"statistics,contentDetails"},
		"id":   {strings.Join(ids, ",")},
		"key":  {y.apiKey},
	}, nil, &videosResp)
	if err != nil {
		return nil, err
	}
	stats := make(map[string]json.RawMessage, len(videosResp.Items))
	for _, v := range videosResp.Items {
		stats[v.ID] = v.Statistics
	}

	results := make([]models.NormalizedResult, 0, len(items))
	for _, it := range items {
		videoID := it.str("id.videoId")
		stat := stats[videoID]
		if len(stat) == 0 {
			stat = json.RawMessage(`{}`)
		}
		raw, err := sjson.SetRawBytes(it.raw, "statistics", stat)
		if err != nil {
			raw = it.raw
		}

		watchURL := "https://www.youtube.com/watch?v=" + videoID
		results = append(results, models.NormalizedResult{
			Platform:     "youtube",
			ContentType:  "video",
			ExternalID:   videoID,
			URL:          watchURL,
			ThumbnailURL: it.str("snippet.thumbnails.high.url", "snippet.thumbnails.default.url"),
			MediaURL:     watchURL,
			Title:        it.str("snippet.title"),
			Description:  it.str("snippet.description"),
			Author:       it.str("snippet.channelTitle"),
			AuthorURL:    "https://www.youtube.com/channel/" + it.str("snippet.channelId"),
			Engagement: models.Engagement{
				Views:    statNumber(stat, "viewCount"),
				Likes:    statNumber(stat, "likeCount"),
				Comments: statNumber(stat, "commentCount"),
			},
			RawData: raw,
		})
	}
	return results, nil
}

// statNumber 는 YouTube 가 문자열로 내려주는 통계 값을 숫자로 바꾼다.
func statNumber(stat json.RawMessage, key string) int64 {
	return gjson.GetBytes(stat, key).Int()
}
