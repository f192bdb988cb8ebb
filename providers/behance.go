package providers

import (
	"context"
	"encoding/json"
	"net/http"

	"creative-radar/config"
	"creative-radar/models"
)

type Behance struct {
	actor    apifyActor
	maxItems int
}

func NewBehance(cfg config.ApifyConfig, token string, httpClient *http.Client) *Behance {
	return &Behance{actor: newApifyActor(cfg, token, httpClient), maxItems: cfg.MaxItems}
}

func (s *Behance) Name() string { return "behance" }

// Search options: maxitems (소문자, 액터 입력 이름 그대로).
func (s *Behance) Search(ctx context.Context, queries []string, opts Options) ([]models.NormalizedResult, error) {
	if !s.actor.configured() {
		return softSkip(s.Name(), "APIFY_TOKEN"), nil
	}
	maxItems := opts.Int("maxitems", s.maxItems)

	results := []models.NormalizedResult{}
	for _, q := range queries {
		raws, err := s.actor.run(ctx, map[string]any{"search": q, "maxitems": maxItems})
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			config.Logger.Warnf("[behance] query %q failed: %v", q, err)
			continue
		}
		results = append(results, normalizeItems(s.Name(), raws, normalizeBehance)...)
	}
	return results, nil
}

func normalizeBehance(it item, raw json.RawMessage) models.NormalizedResult {
	description := it.str("description")
	if description == "" {
		description = it.joined("fields")
	}

	return models.NormalizedResult{
		Platform:     "behance",
		ContentType:  "image",
		ExternalID:   it.str("id"),
		URL:          it.str("url", "link"),
		ThumbnailURL: it.str("coverImage", "thumbnailUrl", "imageUrl"),
		MediaURL:     it.str("coverImage", "imageUrl"),
		Title:        it.str("name", "title"),
		Description:  description,
		Author:       it.str("owners.0.displayName", "creator.displayName", "author"),
		AuthorURL:    it.str("owners.0.url", "creator.url"),
		Engagement: models.Engagement{
			Views:    it.num("stats.views", "views"),
			Likes:    it.num("stats.appreciations", "appreciations", "likes"),
			Comments: it.num("stats.comments", "comments"),
		},
		RawData: raw,
	}
}
