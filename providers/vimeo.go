package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"creative-radar/config"
	"creative-radar/httpclient"
	"creative-radar/models"
)

const defaultVimeoBaseURL = "https://api.vimeo.com"

type VimeoCredentials struct {
	ClientID     string
	ClientSecret string
	AccessToken  string
}

func (c VimeoCredentials) complete() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.AccessToken != ""
}

type Vimeo struct {
	client  *httpclient.BaseClient
	creds   VimeoCredentials
	perPage int
}

func NewVimeo(cfg config.VimeoConfig, creds VimeoCredentials, httpClient *http.Client) *Vimeo {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultVimeoBaseURL
	}
	return &Vimeo{
		client:  httpclient.NewBaseClient(httpClient, baseURL),
		creds:   creds,
		perPage: cfg.PerPage,
	}
}

func (v *Vimeo) Name() string { return "vimeo" }

type vimeoSearchResponse struct {
	Data []json.RawMessage `json:"data"`
}

// Search options: per_page.
func (v *Vimeo) Search(ctx context.Context, queries []string, opts Options) ([]models.NormalizedResult, error) {
	if !v.creds.complete() {
		return softSkip(v.Name(), "VIMEO_CLIENT_ID/VIMEO_CLIENT_SECRET/VIMEO_ACCESS_TOKEN"), nil
	}
	perPage := opts.Int("per_page", v.perPage)
	if perPage <= 0 {
		perPage = 10
	}
	header := http.Header{
		"Authorization": {"bearer " + v.creds.AccessToken},
		"Accept":        {"application/vnd.vimeo.*+json;version=3.4"},
	}

	results := []models.NormalizedResult{}
	for _, q := range queries {
		var resp vimeoSearchResponse
		err := v.client.GetJSON(ctx, "/videos", url.Values{
			"query":    {q},
			"per_page": {strconv.Itoa(perPage)},
			"sort":     {"relevant"},
		}, header, &resp)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			config.Logger.Warnf("[vimeo] query %q failed: %v", q, err)
			continue
		}
		results = append(results, normalizeItems(v.Name(), resp.Data, normalizeVimeo)...)
	}
	return results, nil
}

func normalizeVimeo(it item, raw json.RawMessage) models.NormalizedResult {
	uri := it.str("uri")
	videoID := uri[strings.LastIndex(uri, "/")+1:]

	picture := it.str("pictures.base_link")
	// 가장 큰 썸네일이 마지막에 온다.
	if n := it.num("pictures.sizes.#"); n > 0 {
		if link := it.str("pictures.sizes." + strconv.FormatInt(n-1, 10) + ".link"); link != "" {
			picture = link
		}
	}
	link := it.str("link")
	if link == "" {
		link = "https://vimeo.com/" + videoID
	}

	return models.NormalizedResult{
		Platform:     "vimeo",
		ContentType:  "video",
		ExternalID:   videoID,
		URL:          link,
		ThumbnailURL: picture,
		MediaURL:     link,
		Title:        it.str("name"),
		Description:  it.str("description"),
		Author:       it.str("user.name"),
		AuthorURL:    it.str("user.link"),
		Engagement: models.Engagement{
			Views:    it.num("stats.plays"),
			Likes:    it.num("metadata.connections.likes.total"),
			Comments: it.num("metadata.connections.comments.total"),
		},
		RawData: raw,
	}
}
