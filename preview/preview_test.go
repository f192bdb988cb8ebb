package preview

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseHTMLMetaFallbacks(t *testing.T) {
	testCases := []struct {
		name        string
		html        string
		pageURL     string
		wantImage   string
		wantExcerpt string
	}{
		{
			name:        "open graph",
			html:        `<html><head><meta property="og:image" content="https://cdn.example.com/og.jpg"><meta property="og:description" content="Warm lobby light"></head><body></body></html>`,
			wantImage:   "https://cdn.example.com/og.jpg",
			wantExcerpt: "Warm lobby light",
		},
		{
			name:      "twitter card",
			html:      `<html><head><meta name="twitter:image" content="https://cdn.example.com/tw.jpg"></head><body></body></html>`,
			wantImage: "https://cdn.example.com/tw.jpg",
		},
		{
			name:      "relative link rel resolved",
			html:      `<html><head><link rel="image_src" href="/img/thumb.png"></head><body></body></html>`,
			pageURL:   "https://studio.example.com/work/1",
			wantImage: "https://studio.example.com/img/thumb.png",
		},
		{
			name: "nothing found",
			html: `<html><head></head><body><p>hi</p></body></html>`,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			got, err := ParseHTML(testCase.html, testCase.pageURL)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Image != testCase.wantImage {
				t.Fatalf("expected image %q, got %q", testCase.wantImage, got.Image)
			}
			if testCase.wantExcerpt != "" && got.Excerpt != testCase.wantExcerpt {
				t.Fatalf("expected excerpt %q, got %q", testCase.wantExcerpt, got.Excerpt)
			}
		})
	}
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, `<html><head><meta property="og:image" content="/cover.jpg"></head><body></body></html>`)
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client())
	got, err := f.Fetch(context.Background(), srv.URL+"/post")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Image != srv.URL+"/cover.jpg" {
		t.Fatalf("unexpected image %q", got.Image)
	}

	if _, err := f.Fetch(context.Background(), srv.URL+"/missing"); err == nil {
		t.Fatalf("expected error for 404")
	}
}
