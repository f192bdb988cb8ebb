package providers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creative-radar/config"
	"creative-radar/models"
)

func TestOptionsInt(t *testing.T) {
	opts := Options{
		"a": 5,
		"b": float64(7),
		"c": json.Number("9"),
		"d": "11",
		"e": "nope",
	}

	testCases := []struct {
		key  string
		want int
	}{
		{key: "a", want: 5},
		{key: "b", want: 7},
		{key: "c", want: 9},
		{key: "d", want: 11},
		{key: "e", want: 3},
		{key: "missing", want: 3},
	}
	for _, testCase := range testCases {
		if got := opts.Int(testCase.key, 3); got != testCase.want {
			t.Fatalf("key %s: expected %d, got %d", testCase.key, testCase.want, got)
		}
	}

	var nilOpts Options
	assert.Equal(t, 3, nilOpts.Int("a", 3))
	assert.Equal(t, "x", nilOpts.String("a", "x"))
}

func TestRegistryCanonicalizesNames(t *testing.T) {
	reg := NewDefaultRegistry(config.Default().Providers, config.Secrets{}, nil)

	a, ok := reg.Get("meta_ads")
	require.True(t, ok)
	assert.Equal(t, "meta-ads", a.Name())

	_, ok = reg.Get("myspace")
	assert.False(t, ok)

	assert.Equal(t, []string{"behance", "instagram", "meta-ads", "pinterest", "rss", "tiktok", "vimeo", "youtube"}, reg.Names())
}

func TestRegistryPanicsOnDuplicate(t *testing.T) {
	reg := NewRegistry(NewRSS(config.RSSConfig{}, nil))
	assert.Panics(t, func() { reg.Register(NewRSS(config.RSSConfig{}, nil)) })
}

func TestSoftSkipWithoutCredentials(t *testing.T) {
	reg := NewDefaultRegistry(config.Default().Providers, config.Secrets{}, nil)

	for _, name := range reg.Names() {
		t.Run(name, func(t *testing.T) {
			a, _ := reg.Get(name)
			results, err := a.Search(context.Background(), []string{"luxury hotel"}, nil)
			require.NoError(t, err)
			assert.NotNil(t, results)
			assert.Empty(t, results)
		})
	}
}

func TestItemPaths(t *testing.T) {
	it, err := decodeItem(json.RawMessage(`{
		"owners": [{"displayName": "Studio Nine", "url": "https://behance.net/nine"}],
		"stats": {"views": 1200, "appreciations": "34"},
		"fields": ["Photography", "", "Motion"],
		"big": 12345678901234,
		"empty": ""
	}`))
	require.NoError(t, err)

	assert.Equal(t, "Studio Nine", it.str("owners.0.displayName"))
	assert.Equal(t, "", it.str("owners.1.displayName"))
	assert.Equal(t, "", it.str("empty", "missing", "owners.0.nope", "big.x"))
	assert.Equal(t, "12345678901234", it.str("big"))
	assert.Equal(t, int64(1200), it.num("stats.views"))
	assert.Equal(t, int64(34), it.num("stats.appreciations"))
	assert.Equal(t, int64(12345678901234), it.num("big"))
	assert.Equal(t, int64(0), it.num("stats.comments"))
	assert.Equal(t, "Photography, Motion", it.joined("fields"))
	assert.True(t, it.has("stats.views"))
	assert.False(t, it.has("stats.comments"))
	assert.Equal(t, int64(3), it.num("fields.#"))
}

func TestDecodeItemRejectsNonObjects(t *testing.T) {
	for _, raw := range []string{`[1,2]`, `"text"`, `{"a":`, `null`} {
		if _, err := decodeItem(json.RawMessage(raw)); err == nil {
			t.Fatalf("expected error for %s", raw)
		}
	}
}

// 결과 스키마의 필수 식별 필드가 채워졌는지 확인한다.
func assertNormalized(t *testing.T, platform string, r models.NormalizedResult) {
	t.Helper()
	assert.Equal(t, platform, r.Platform)
	assert.NotEmpty(t, r.ExternalID)
	assert.NotEmpty(t, r.URL)
	assert.NotEmpty(t, r.RawData)
}
