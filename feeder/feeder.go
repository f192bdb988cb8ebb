package feeder

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// FeedItem 은 RSS/Atom 항목에서 레퍼런스로 쓸 수 있는 필드만 추린 값이다.
type FeedItem struct {
	GUID        string
	Title       string
	Link        string
	Description string
	Author      string
	ImageURL    string
	Categories  []string
	PublishedAt time.Time
	FeedTitle   string
	FeedLink    string
}

// Fetcher 는 주어진 http.Client 로 피드를 읽는다.
type Fetcher struct {
	parser *gofeed.Parser
}

func NewFetcher(httpClient *http.Client) *Fetcher {
	fp := gofeed.NewParser()
	if httpClient != nil {
		fp.Client = httpClient
	}
	return &Fetcher{parser: fp}
}

// Fetch returns the items of one feed. If limit is greater than 0, only the
// first limit items are returned.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string, limit int) ([]FeedItem, error) {
	feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, err
	}

	items := make([]FeedItem, 0, len(feed.Items))
	for _, item := range feed.Items {
		var published time.Time
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			published = *item.UpdatedParsed
		}

		fi := FeedItem{
			GUID:        item.GUID,
			Title:       item.Title,
			Link:        item.Link,
			Description: item.Description,
			Categories:  item.Categories,
			PublishedAt: published,
			FeedTitle:   feed.Title,
			FeedLink:    feed.Link,
		}
		if fi.GUID == "" {
			fi.GUID = item.Link
		}
		if item.Author != nil {
			fi.Author = item.Author.Name
		} else if len(item.Authors) > 0 && item.Authors[0] != nil {
			fi.Author = item.Authors[0].Name
		}
		if item.Image != nil {
			fi.ImageURL = item.Image.URL
		} else {
			for _, enc := range item.Enclosures {
				if enc != nil && strings.HasPrefix(enc.Type, "image/") {
					fi.ImageURL = enc.URL
					break
				}
			}
		}
		items = append(items, fi)
	}

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}
