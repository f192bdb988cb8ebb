package providers

import (
	"context"
	"encoding/json"
	"net/http"

	"creative-radar/config"
	"creative-radar/models"
)

// Pinterest 는 쿼리마다 액터를 따로 실행한다.
type Pinterest struct {
	actor    apifyActor
	maxItems int
}

func NewPinterest(cfg config.ApifyConfig, token string, httpClient *http.Client) *Pinterest {
	return &Pinterest{actor: newApifyActor(cfg, token, httpClient), maxItems: cfg.MaxItems}
}

func (s *Pinterest) Name() string { return "pinterest" }

// Search options: maxItems.
func (s *Pinterest) Search(ctx context.Context, queries []string, opts Options) ([]models.NormalizedResult, error) {
	if !s.actor.configured() {
		return softSkip(s.Name(), "APIFY_TOKEN"), nil
	}
	maxItems := opts.Int("maxItems", s.maxItems)

	results := []models.NormalizedResult{}
	for _, q := range queries {
		raws, err := s.actor.run(ctx, map[string]any{"search": q, "maxItems": maxItems})
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			config.Logger.Warnf("[pinterest] query %q failed: %v", q, err)
			continue
		}
		results = append(results, normalizeItems(s.Name(), raws, normalizePin)...)
	}
	return results, nil
}

func normalizePin(it item, raw json.RawMessage) models.NormalizedResult {
	username := it.str("pinner.username")
	author := prefixed("@", username)
	if author == "" {
		author = it.str("author")
	}
	authorURL := it.str("pinner.profileUrl")
	if authorURL == "" && username != "" {
		authorURL = "https://www.pinterest.com/" + username + "/"
	}

	return models.NormalizedResult{
		Platform:     "pinterest",
		ContentType:  "pin",
		ExternalID:   it.str("id"),
		URL:          it.str("link", "url"),
		ThumbnailURL: it.str("imageLargeUrl", "imageUrl", "thumbnailUrl"),
		MediaURL:     it.str("imageLargeUrl", "imageUrl", "videoUrl"),
		Title:        it.str("title", "gridTitle"),
		Description:  it.str("description", "richSummary"),
		Author:       author,
		AuthorURL:    authorURL,
		Engagement: models.Engagement{
			Views:    it.num("viewCount", "views"),
			Likes:    it.num("saveCount", "saves", "likes"),
			Comments: it.num("commentCount", "comments"),
		},
		RawData: raw,
	}
}
