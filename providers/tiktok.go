package providers

import (
	"context"
	"encoding/json"
	"net/http"

	"creative-radar/config"
	"creative-radar/models"
)

type TikTok struct {
	actor    apifyActor
	maxItems int
}

func NewTikTok(cfg config.ApifyConfig, token string, httpClient *http.Client) *TikTok {
	return &TikTok{actor: newApifyActor(cfg, token, httpClient), maxItems: cfg.MaxItems}
}

func (s *TikTok) Name() string { return "tiktok" }

// Search options: maxItems.
func (s *TikTok) Search(ctx context.Context, queries []string, opts Options) ([]models.NormalizedResult, error) {
	if !s.actor.configured() {
		return softSkip(s.Name(), "APIFY_TOKEN"), nil
	}
	if len(queries) == 0 {
		return []models.NormalizedResult{}, nil
	}

	raws, err := s.actor.run(ctx, map[string]any{
		"searchQueries": queries,
		"searchType":    "search",
		"maxItems":      opts.Int("maxItems", s.maxItems),
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		config.Logger.Warnf("[tiktok] search failed: %v", err)
		return []models.NormalizedResult{}, nil
	}
	return normalizeItems(s.Name(), raws, normalizeTikTok), nil
}

func normalizeTikTok(it item, raw json.RawMessage) models.NormalizedResult {
	name := it.str("authorMeta.name")
	author := prefixed("@", name)
	if author == "" {
		author = it.str("author")
	}
	authorURL := it.str("authorMeta.profileUrl")
	if authorURL == "" && name != "" {
		authorURL = "https://www.tiktok.com/@" + name
	}

	return models.NormalizedResult{
		Platform:     "tiktok",
		ContentType:  "video",
		ExternalID:   it.str("id"),
		URL:          it.str("webVideoUrl", "url"),
		ThumbnailURL: it.str("coverUrl", "thumbnailUrl"),
		MediaURL:     it.str("videoUrl", "downloadUrl"),
		Title:        it.str("text", "title"),
		Description:  it.str("text", "description"),
		Author:       author,
		AuthorURL:    authorURL,
		Engagement: models.Engagement{
			Views:    it.num("playCount", "videoMeta.playCount"),
			Likes:    it.num("diggCount", "likes"),
			Comments: it.num("commentCount", "comments"),
		},
		RawData: raw,
	}
}
