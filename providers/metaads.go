package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"creative-radar/config"
	"creative-radar/httpclient"
	"creative-radar/models"
)

const defaultSearchAPIBaseURL = "https://www.searchapi.io/api/v1"

// MetaAds 는 searchapi.io 의 meta_ad_library 엔진으로 활성 광고를 찾는다.
type MetaAds struct {
	client  *httpclient.BaseClient
	apiKey  string
	country string
}

func NewMetaAds(cfg config.MetaAdsConfig, apiKey string, httpClient *http.Client) *MetaAds {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultSearchAPIBaseURL
	}
	country := cfg.Country
	if country == "" {
		country = "ALL"
	}
	return &MetaAds{client: httpclient.NewBaseClient(httpClient, baseURL), apiKey: apiKey, country: country}
}

func (m *MetaAds) Name() string { return "meta-ads" }

// 응답 스키마가 바뀌어 왔기 때문에 세 필드 중 처음으로 존재하는 목록을 사용한다.
type metaAdsResponse struct {
	Ads            []json.RawMessage `json:"ads"`
	Results        []json.RawMessage `json:"results"`
	OrganicResults []json.RawMessage `json:"organic_results"`
}

func (r metaAdsResponse) items() []json.RawMessage {
	switch {
	case r.Ads != nil:
		return r.Ads
	case r.Results != nil:
		return r.Results
	default:
		return r.OrganicResults
	}
}

// Search options: country, media_type.
func (m *MetaAds) Search(ctx context.Context, queries []string, opts Options) ([]models.NormalizedResult, error) {
	if m.apiKey == "" {
		return softSkip(m.Name(), "SEARCHAPI_KEY"), nil
	}

	results := []models.NormalizedResult{}
	for _, q := range queries {
		var resp metaAdsResponse
		err := m.client.GetJSON(ctx, "/search", url.Values{
			"engine":        {"meta_ad_library"},
			"q":             {q},
			"country":       {opts.String("country", m.country)},
			"media_type":    {opts.String("media_type", "video")},
			"active_status": {"active"},
			"api_key":       {m.apiKey},
		}, nil, &resp)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			config.Logger.Warnf("[meta-ads] query %q failed: %v", q, err)
			continue
		}
		results = append(results, normalizeItems(m.Name(), resp.items(), normalizeAd)...)
	}
	return results, nil
}

func normalizeAd(it item, raw json.RawMessage) models.NormalizedResult {
	return models.NormalizedResult{
		Platform:     "meta-ads",
		ContentType:  "ad",
		ExternalID:   it.str("id", "ad_id"),
		URL:          it.str("link", "url", "ad_snapshot_url"),
		ThumbnailURL: it.str("thumbnail", "image"),
		MediaURL:     it.str("video_url", "media_url", "link"),
		Title:        it.str("title", "page_name"),
		Description:  it.str("body", "description", "ad_creative_body"),
		Author:       it.str("page_name", "advertiser"),
		AuthorURL:    it.str("page_url", "byline_url"),
		Engagement: models.Engagement{
			Views:    it.num("impressions", "views"),
			Likes:    it.num("likes"),
			Comments: it.num("comments"),
		},
		RawData: raw,
	}
}
