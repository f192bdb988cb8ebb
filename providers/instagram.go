package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"creative-radar/config"
	"creative-radar/models"
)

// Instagram 은 해시태그 검색을 한 번의 액터 실행으로 처리한다.
type Instagram struct {
	actor          apifyActor
	resultsPerPage int
}

func NewInstagram(cfg config.ApifyConfig, token string, httpClient *http.Client) *Instagram {
	return &Instagram{actor: newApifyActor(cfg, token, httpClient), resultsPerPage: cfg.MaxItems}
}

func (s *Instagram) Name() string { return "instagram" }

// Search options: resultsPerPage.
func (s *Instagram) Search(ctx context.Context, queries []string, opts Options) ([]models.NormalizedResult, error) {
	if !s.actor.configured() {
		return softSkip(s.Name(), "APIFY_TOKEN"), nil
	}
	if len(queries) == 0 {
		return []models.NormalizedResult{}, nil
	}

	hashtags := make([]string, 0, len(queries))
	for _, q := range queries {
		hashtags = append(hashtags, strings.TrimPrefix(q, "#"))
	}

	raws, err := s.actor.run(ctx, map[string]any{
		"hashtags":       hashtags,
		"searchType":     "hashtag",
		"resultsPerPage": opts.Int("resultsPerPage", s.resultsPerPage),
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		config.Logger.Warnf("[instagram] search failed: %v", err)
		return []models.NormalizedResult{}, nil
	}
	return normalizeItems(s.Name(), raws, normalizeInstagram), nil
}

func normalizeInstagram(it item, raw json.RawMessage) models.NormalizedResult {
	contentType := it.str("type")
	if contentType == "" {
		contentType = "image"
		if it.has("videoUrl") {
			contentType = "video"
		}
	}
	postURL := it.str("url")
	if postURL == "" {
		if code := it.str("shortCode"); code != "" {
			postURL = "https://www.instagram.com/p/" + code + "/"
		}
	}
	owner := it.str("ownerUsername")
	authorURL := ""
	if owner != "" {
		authorURL = "https://www.instagram.com/" + owner + "/"
	}

	return models.NormalizedResult{
		Platform:     "instagram",
		ContentType:  contentType,
		ExternalID:   it.str("id", "shortCode"),
		URL:          postURL,
		ThumbnailURL: it.str("displayUrl", "thumbnailUrl"),
		MediaURL:     it.str("videoUrl", "displayUrl"),
		Description:  it.str("caption"),
		Author:       prefixed("@", owner),
		AuthorURL:    authorURL,
		Engagement: models.Engagement{
			Views:    it.num("videoViewCount", "viewCount"),
			Likes:    it.num("likesCount", "likes"),
			Comments: it.num("commentsCount", "comments"),
		},
		RawData: raw,
	}
}
