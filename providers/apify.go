package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"creative-radar/config"
	"creative-radar/httpclient"
	"creative-radar/models"
)

const defaultApifyBaseURL = "https://api.apify.com"

// apifyActor 는 Apify 액터를 동기 실행하고 데이터셋 항목을 그대로 돌려받는다.
type apifyActor struct {
	client *httpclient.BaseClient
	token  string
	actor  string
}

func newApifyActor(cfg config.ApifyConfig, token string, httpClient *http.Client) apifyActor {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultApifyBaseURL
	}
	return apifyActor{
		client: httpclient.NewBaseClient(httpClient, baseURL),
		token:  token,
		actor:  cfg.Actor,
	}
}

func (a apifyActor) configured() bool {
	return a.token != "" && a.actor != ""
}

// run 은 POST /v2/acts/{owner~name}/run-sync-get-dataset-items 를 호출한다.
func (a apifyActor) run(ctx context.Context, input map[string]any) ([]json.RawMessage, error) {
	path := "/v2/acts/" + strings.ReplaceAll(a.actor, "/", "~") + "/run-sync-get-dataset-items"
	var items []json.RawMessage
	if err := a.client.PostJSON(ctx, path, url.Values{"token": {a.token}}, nil, input, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// normalizeItems 는 항목별로 디코딩하고 깨진 항목은 건너뛴다.
func normalizeItems(provider string, raws []json.RawMessage, normalize func(item, json.RawMessage) models.NormalizedResult) []models.NormalizedResult {
	results := make([]models.NormalizedResult, 0, len(raws))
	for _, raw := range raws {
		it, err := decodeItem(raw)
		if err != nil {
			config.Logger.Warnf("[%s] skipping malformed item: %v", provider, err)
			continue
		}
		results = append(results, normalize(it, raw))
	}
	return results
}

func softSkip(provider, missing string) []models.NormalizedResult {
	config.Logger.Warnf("[%s] %s is not set, skipping %s search", provider, missing, provider)
	return []models.NormalizedResult{}
}
