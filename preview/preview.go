package preview

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

const maxPageBytes = 4 << 20

// Preview 는 페이지에서 복원한 썸네일과 요약문이다.
type Preview struct {
	Title   string
	Image   string
	Excerpt string
}

// Fetcher 는 결과 페이지를 내려받아 Preview 를 만든다.
type Fetcher struct {
	client *http.Client
}

func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{client: client}
}

func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (Preview, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return Preview{}, err
	}
	req.Header.Set("Accept", "text/html")

	resp, err := f.client.Do(req)
	if err != nil {
		return Preview{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Preview{}, fmt.Errorf("unexpected status code %d when fetching %s", resp.StatusCode, pageURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return Preview{}, err
	}
	return ParseHTML(string(body), pageURL)
}

// ParseHTML 은 readability 결과를 우선 사용하고, 이미지가 없으면
// Open Graph / Twitter 카드 메타 → link rel 순으로 찾는다.
func ParseHTML(htmlStr string, pageURL string) (Preview, error) {
	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return Preview{}, err
	}

	var baseURL *url.URL
	if pageURL != "" {
		if u, err := url.Parse(pageURL); err == nil {
			baseURL = u
		}
	}

	var p Preview
	if article, err := readability.FromDocument(doc, baseURL); err == nil {
		p.Title = strings.TrimSpace(article.Title)
		p.Image = article.Image
		p.Excerpt = strings.TrimSpace(article.Excerpt)
	}

	if p.Image == "" {
		p.Image = findMetaContent(doc, "property", "og:image", "og:image:url", "og:image:secure_url")
	}
	if p.Image == "" {
		p.Image = findMetaContent(doc, "name", "twitter:image", "twitter:image:src", "thumbnail", "image")
	}
	if p.Image == "" {
		p.Image = findLinkImage(doc)
	}
	if p.Excerpt == "" {
		p.Excerpt = findMetaContent(doc, "property", "og:description")
	}
	if p.Excerpt == "" {
		p.Excerpt = findMetaContent(doc, "name", "description", "twitter:description")
	}

	p.Image = resolveURL(p.Image, baseURL)
	return p, nil
}

func findMetaContent(root *html.Node, key string, candidates ...string) string {
	candidateSet := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		candidateSet[c] = struct{}{}
	}

	var result string
	walk(root, func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.Data != "meta" {
			return false
		}
		var attrValue, content string
		for _, a := range n.Attr {
			switch strings.ToLower(a.Key) {
			case key:
				attrValue = strings.ToLower(a.Val)
			case "content":
				content = a.Val
			}
		}
		if _, ok := candidateSet[attrValue]; ok && content != "" {
			result = content
			return true
		}
		return false
	})
	return result
}

func findLinkImage(root *html.Node) string {
	var result string
	walk(root, func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.Data != "link" {
			return false
		}
		var rel, href string
		for _, a := range n.Attr {
			switch strings.ToLower(a.Key) {
			case "rel":
				rel = strings.ToLower(a.Val)
			case "href":
				href = a.Val
			}
		}
		if href != "" && (rel == "image_src" || strings.Contains(rel, "thumbnail")) {
			result = href
			return true
		}
		return false
	})
	return result
}

// walk 는 visit 이 true 를 반환하면 탐색을 멈춘다.
func walk(n *html.Node, visit func(*html.Node) bool) bool {
	if n == nil {
		return false
	}
	if visit(n) {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if walk(c, visit) {
			return true
		}
	}
	return false
}

func resolveURL(src string, baseURL *url.URL) string {
	if src == "" {
		return ""
	}
	parsed, err := url.Parse(src)
	if err != nil || parsed.IsAbs() || baseURL == nil {
		return src
	}
	return baseURL.ResolveReference(parsed).String()
}
