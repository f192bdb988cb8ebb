package providers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creative-radar/config"
)

func TestYouTubeSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "yt-key", r.URL.Query().Get("key"))
		switch r.URL.Path {
		case "/search":
			if r.URL.Query().Get("q") == "broken" {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			assert.Equal(t, "5", r.URL.Query().Get("maxResults"))
			io.WriteString(w, `{"items":[{"id":{"videoId":"abc"},"snippet":{"title":"Hotel reel","description":"lobby","channelTitle":"Studio","channelId":"ch1","thumbnails":{"default":{"url":"https://i.ytimg.com/abc.jpg"}}}}]}`)
		case "/videos":
			assert.Equal(t, "abc", r.URL.Query().Get("id"))
			io.WriteString(w, `{"items":[{"id":"abc","statistics":{"viewCount":"1000","likeCount":"10","commentCount":"2"}}]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	yt := NewYouTube(config.YouTubeConfig{BaseURL: srv.URL, MaxResults: 10}, "yt-key", srv.Client())
	results, err := yt.Search(context.Background(), []string{"broken", "hotel"}, Options{"maxResults": 5})

	require.NoError(t, err)
	require.Len(t, results, 1)
	r := results[0]
	assertNormalized(t, "youtube", r)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc", r.URL)
	assert.Equal(t, "https://i.ytimg.com/abc.jpg", r.ThumbnailURL)
	assert.Equal(t, "https://www.youtube.com/channel/ch1", r.AuthorURL)
	assert.Equal(t, int64(1000), r.Engagement.Views)
	assert.Equal(t, int64(10), r.Engagement.Likes)
	assert.Equal(t, int64(2), r.Engagement.Comments)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(r.RawData, &raw))
	assert.Contains(t, raw, "statistics")
}

func TestInstagramRunsActorOnceWithHashtags(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/v2/acts/apidojo~instagram-scraper/run-sync-get-dataset-items", r.URL.Path)
		assert.Equal(t, "apify-token", r.URL.Query().Get("token"))

		var input map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		assert.Equal(t, []any{"hotel", "cinematic"}, input["hashtags"])
		assert.Equal(t, float64(15), input["resultsPerPage"])

		io.WriteString(w, `[
			{"id":"1","shortCode":"Cx1","videoUrl":"https://cdn/v.mp4","displayUrl":"https://cdn/d.jpg","caption":"lobby","ownerUsername":"grandhotel","videoViewCount":500,"likesCount":40,"commentsCount":3},
			"not an object",
			{"shortCode":"Cx2","displayUrl":"https://cdn/e.jpg"}
		]`)
	}))
	defer srv.Close()

	cfg := config.ApifyConfig{BaseURL: srv.URL, Actor: "apidojo/instagram-scraper", MaxItems: 15}
	ig := NewInstagram(cfg, "apify-token", srv.Client())
	results, err := ig.Search(context.Background(), []string{"#hotel", "cinematic"}, nil)

	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	require.Len(t, results, 2)

	assertNormalized(t, "instagram", results[0])
	assert.Equal(t, "video", results[0].ContentType)
	assert.Equal(t, "https://cdn/v.mp4", results[0].MediaURL)
	assert.Equal(t, "@grandhotel", results[0].Author)
	assert.Equal(t, "https://www.instagram.com/grandhotel/", results[0].AuthorURL)
	assert.Equal(t, "https://www.instagram.com/p/Cx1/", results[0].URL)
	assert.Equal(t, int64(500), results[0].Engagement.Views)

	assert.Equal(t, "image", results[1].ContentType)
	assert.Equal(t, "Cx2", results[1].ExternalID)
	assert.Equal(t, "https://cdn/e.jpg", results[1].MediaURL)
}

func TestApifyFailureYieldsEmptyList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	}))
	defer srv.Close()

	cfg := config.ApifyConfig{BaseURL: srv.URL, Actor: "apidojo/tiktok-scraper"}
	results, err := NewTikTok(cfg, "t", srv.Client()).Search(context.Background(), []string{"hotel"}, nil)

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestPinterestContinuesAfterFailedQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var input map[string]any
		json.NewDecoder(r.Body).Decode(&input)
		if input["search"] == "bad" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		io.WriteString(w, `[{"id":"p1","link":"https://pin.it/p1","imageUrl":"https://i.pinimg.com/p1.jpg","gridTitle":"Warm lobby","pinner":{"username":"moodboards"},"saveCount":77}]`)
	}))
	defer srv.Close()

	cfg := config.ApifyConfig{BaseURL: srv.URL, Actor: "epctex/pinterest-scraper"}
	results, err := NewPinterest(cfg, "t", srv.Client()).Search(context.Background(), []string{"bad", "good"}, nil)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assertNormalized(t, "pinterest", results[0])
	assert.Equal(t, "Warm lobby", results[0].Title)
	assert.Equal(t, "@moodboards", results[0].Author)
	assert.Equal(t, "https://www.pinterest.com/moodboards/", results[0].AuthorURL)
	assert.Equal(t, int64(77), results[0].Engagement.Likes)
}

func TestBehanceFieldFallbacks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.URL.Path, "/v2/acts/scrapestorm~"))
		io.WriteString(w, `[{"id":"b1","url":"https://behance.net/b1","coverImage":"https://mir-s3/b1.jpg","name":"Hotel identity","fields":["Branding","Photography"],"owners":[{"displayName":"Nine","url":"https://behance.net/nine"}],"stats":{"views":900,"appreciations":12,"comments":1}}]`)
	}))
	defer srv.Close()

	cfg := config.ApifyConfig{BaseURL: srv.URL, Actor: "scrapestorm/behance-images-search-scraper-fast-and-cheap"}
	results, err := NewBehance(cfg, "t", srv.Client()).Search(context.Background(), []string{"hotel"}, Options{"maxitems": 3})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assertNormalized(t, "behance", results[0])
	assert.Equal(t, "Branding, Photography", results[0].Description)
	assert.Equal(t, "Nine", results[0].Author)
	assert.Equal(t, int64(12), results[0].Engagement.Likes)
}

func TestVimeoSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "bearer vimeo-token", r.Header.Get("Authorization"))
		assert.Equal(t, "relevant", r.URL.Query().Get("sort"))
		io.WriteString(w, `{"data":[{"uri":"/videos/76979871","link":"https://vimeo.com/76979871","name":"Hotel film","pictures":{"base_link":"https://i.vimeocdn.com/base","sizes":[{"link":"https://i.vimeocdn.com/small"},{"link":"https://i.vimeocdn.com/large"}]},"user":{"name":"Director","link":"https://vimeo.com/director"},"stats":{"plays":4200},"metadata":{"connections":{"likes":{"total":120},"comments":{"total":8}}}}]}`)
	}))
	defer srv.Close()

	creds := VimeoCredentials{ClientID: "id", ClientSecret: "secret", AccessToken: "vimeo-token"}
	results, err := NewVimeo(config.VimeoConfig{BaseURL: srv.URL}, creds, srv.Client()).Search(context.Background(), []string{"hotel"}, nil)

	require.NoError(t, err)
	require.Len(t, results, 1)
	r := results[0]
	assertNormalized(t, "vimeo", r)
	assert.Equal(t, "76979871", r.ExternalID)
	assert.Equal(t, "https://i.vimeocdn.com/large", r.ThumbnailURL)
	assert.Equal(t, int64(4200), r.Engagement.Views)
	assert.Equal(t, int64(120), r.Engagement.Likes)
	assert.Equal(t, int64(8), r.Engagement.Comments)
}

func TestVimeoRequiresAllCredentials(t *testing.T) {
	v := NewVimeo(config.VimeoConfig{BaseURL: "http://127.0.0.1:1"}, VimeoCredentials{AccessToken: "only-token"}, nil)
	results, err := v.Search(context.Background(), []string{"hotel"}, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestMetaAdsUsesFirstPresentList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "meta_ad_library", q.Get("engine"))
		assert.Equal(t, "ALL", q.Get("country"))
		assert.Equal(t, "active", q.Get("active_status"))
		io.WriteString(w, `{"results":[{"ad_id":"ad9","ad_snapshot_url":"https://facebook.com/ads/library/?id=ad9","page_name":"Grand Hotel","ad_creative_body":"Stay in style","impressions":"15000"}]}`)
	}))
	defer srv.Close()

	results, err := NewMetaAds(config.MetaAdsConfig{BaseURL: srv.URL}, "sk", srv.Client()).Search(context.Background(), []string{"luxury hotel"}, nil)

	require.NoError(t, err)
	require.Len(t, results, 1)
	r := results[0]
	assertNormalized(t, "meta-ads", r)
	assert.Equal(t, "ad", r.ContentType)
	assert.Equal(t, "Grand Hotel", r.Title)
	assert.Equal(t, "Grand Hotel", r.Author)
	assert.Equal(t, "Stay in style", r.Description)
	assert.Equal(t, int64(15000), r.Engagement.Views)
}

func TestRSSFiltersByQueryTermsAndRecoversThumbnail(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/feed", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<?xml version="1.0"?><rss version="2.0"><channel><title>Motion Daily</title><link>`+srv.URL+`</link>
<item><title>Cinematic hotel lobby</title><link>`+srv.URL+`/post/1</link><guid>post-1</guid></item>
<item><title>Pottery tips</title><link>`+srv.URL+`/post/2</link></item>
</channel></rss>`)
	})
	mux.HandleFunc("/post/1", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<html><head><meta property="og:image" content="/img/lobby.jpg"></head><body></body></html>`)
	})

	feed := NewRSS(config.RSSConfig{Feeds: []string{srv.URL + "/feed"}, MaxItems: 10, MaxPreview: 2}, srv.Client())
	results, err := feed.Search(context.Background(), []string{"#hotel"}, nil)

	require.NoError(t, err)
	require.Len(t, results, 1)
	r := results[0]
	assertNormalized(t, "rss", r)
	assert.Equal(t, "post-1", r.ExternalID)
	assert.Equal(t, srv.URL+"/img/lobby.jpg", r.ThumbnailURL)
	assert.Equal(t, "Motion Daily", r.Author)
}

func TestRSSMatchesWholeWordsOnly(t *testing.T) {
	terms := queryTerms([]string{"#Art", "b-roll"})
	assert.Equal(t, []string{"art", "b-roll"}, terms)

	testCases := []struct {
		text string
		want bool
	}{
		{text: "Art direction for spring", want: true},
		{text: "Street art, at night", want: true},
		{text: "Party start guide", want: false},
		{text: "Hotel B-roll pack", want: true},
		{text: "Rolling shots", want: false},
	}
	for _, testCase := range testCases {
		if got := matchesAny(testCase.text, terms); got != testCase.want {
			t.Fatalf("matchesAny(%q) = %v, want %v", testCase.text, got, testCase.want)
		}
	}
}
