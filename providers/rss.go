package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
	"unicode"

	"creative-radar/config"
	"creative-radar/feeder"
	"creative-radar/models"
	"creative-radar/preview"
)

// RSS 는 설정된 영감용 피드에서 쿼리 토큰이 제목/설명에 포함된 항목을 결과로 만든다.
// 썸네일이 없는 항목은 본문 페이지에서 og:image 등을 찾아 보완한다.
type RSS struct {
	feeds      []string
	maxItems   int
	maxPreview int
	fetcher    *feeder.Fetcher
	previewer  *preview.Fetcher
}

func NewRSS(cfg config.RSSConfig, httpClient *http.Client) *RSS {
	return &RSS{
		feeds:      cfg.Feeds,
		maxItems:   cfg.MaxItems,
		maxPreview: cfg.MaxPreview,
		fetcher:    feeder.NewFetcher(httpClient),
		previewer:  preview.NewFetcher(httpClient),
	}
}

func (r *RSS) Name() string { return "rss" }

type rssRaw struct {
	GUID        string    `json:"guid"`
	Feed        string    `json:"feed"`
	FeedTitle   string    `json:"feed_title"`
	Categories  []string  `json:"categories,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// Search options: max_items, max_preview.
func (r *RSS) Search(ctx context.Context, queries []string, opts Options) ([]models.NormalizedResult, error) {
	if len(r.feeds) == 0 {
		return softSkip(r.Name(), "providers.rss.feeds"), nil
	}
	terms := queryTerms(queries)
	if len(terms) == 0 {
		return []models.NormalizedResult{}, nil
	}
	maxItems := opts.Int("max_items", r.maxItems)
	previewBudget := opts.Int("max_preview", r.maxPreview)

	results := []models.NormalizedResult{}
	for _, feedURL := range r.feeds {
		items, err := r.fetcher.Fetch(ctx, feedURL, maxItems)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			config.Logger.Warnf("[rss] feed %s failed: %v", feedURL, err)
			continue
		}

		for _, fi := range items {
			if !matchesAny(fi.Title+" "+fi.Description, terms) {
				continue
			}
			res := normalizeFeedItem(feedURL, fi)
			if res.ThumbnailURL == "" && res.URL != "" && previewBudget > 0 {
				previewBudget--
				if p, err := r.previewer.Fetch(ctx, res.URL); err == nil {
					res.ThumbnailURL = p.Image
					res.MediaURL = p.Image
					if res.Description == "" {
						res.Description = p.Excerpt
					}
				} else {
					config.Logger.Warnf("[rss] preview %s failed: %v", res.URL, err)
				}
			}
			results = append(results, res)
		}
	}
	return results, nil
}

func normalizeFeedItem(feedURL string, fi feeder.FeedItem) models.NormalizedResult {
	raw, _ := json.Marshal(rssRaw{
		GUID:        fi.GUID,
		Feed:        feedURL,
		FeedTitle:   fi.FeedTitle,
		Categories:  fi.Categories,
		PublishedAt: fi.PublishedAt,
	})
	author := fi.Author
	if author == "" {
		author = fi.FeedTitle
	}
	return models.NormalizedResult{
		Platform:     "rss",
		ContentType:  "article",
		ExternalID:   fi.GUID,
		URL:          fi.Link,
		ThumbnailURL: fi.ImageURL,
		MediaURL:     fi.ImageURL,
		Title:        fi.Title,
		Description:  fi.Description,
		Author:       author,
		AuthorURL:    fi.FeedLink,
		RawData:      raw,
	}
}

// queryTerms 는 쿼리를 소문자 단어로 쪼갠다. 해시태그 같은 기호는 단어에서 떨어져 나간다.
func queryTerms(queries []string) []string {
	seen := map[string]struct{}{}
	var terms []string
	for _, q := range queries {
		for _, tok := range words(q) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			terms = append(terms, tok)
		}
	}
	return terms
}

// matchesAny 는 단어 경계로 비교한다. "art" 는 "Art direction" 과는 맞고 "party" 와는 맞지 않는다.
func matchesAny(text string, terms []string) bool {
	set := make(map[string]struct{})
	for _, w := range words(text) {
		set[w] = struct{}{}
	}
	for _, t := range terms {
		if _, ok := set[t]; ok {
			return true
		}
	}
	return false
}

// words 는 글자, 숫자, 하이픈으로 이루어진 소문자 단어 목록을 돌려준다.
func words(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})
	out := fields[:0]
	for _, f := range fields {
		if f = strings.Trim(f, "-"); f != "" {
			out = append(out, f)
		}
	}
	return out
}
