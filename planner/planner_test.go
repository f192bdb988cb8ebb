package planner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creative-radar/config"
	"creative-radar/llm"
	"creative-radar/models"
)

type fakeGenerator struct {
	text  string
	err   error
	calls int
	last  llm.Request
}

func (f *fakeGenerator) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	f.calls++
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return &llm.Response{Text: f.text}, nil
}

func assertWellFormed(t *testing.T, plan models.QueryPlan) {
	t.Helper()
	require.NotEmpty(t, plan.ScoringCriteria)
	for _, name := range models.KnownProviders {
		queries, ok := plan.SearchQueries[name]
		require.True(t, ok, "missing provider key %s", name)
		require.NotNil(t, queries, "nil query list for %s", name)
	}
}

func TestTokenize(t *testing.T) {
	testCases := []struct {
		name  string
		brief string
		want  []string
	}{
		{
			name:  "drops short tokens and punctuation",
			brief: "Find luxury hotel cinematic reels!",
			want:  []string{"find", "luxury", "hotel", "cinematic", "reels"},
		},
		{
			name:  "dedupes preserving first seen order",
			brief: "Hotel hotel HOTEL, drone-shots drone",
			want:  []string{"hotel", "droneshots", "drone"},
		},
		{
			name:  "caps pool at ten",
			brief: "alpha bravo charlie delta echoo foxtrot golf1 hotel india juliet kilo1 lima1",
			want:  []string{"alpha", "bravo", "charlie", "delta", "echoo", "foxtrot", "golf1", "hotel", "india", "juliet"},
		},
		{
			name:  "only short tokens",
			brief: "a an the of",
			want:  []string{},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			got := Tokenize(testCase.brief)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestFallbackDerivesQueriesPerProvider(t *testing.T) {
	plan := Fallback("Find luxury hotel cinematic reels")

	assert.Equal(t, []string{"find", "luxury", "hotel"}, plan.SearchQueries["youtube"])
	assert.Equal(t, []string{"#find", "#luxury", "#hotel"}, plan.SearchQueries["instagram"])
	assert.Equal(t, []string{"find", "luxury"}, plan.SearchQueries["pinterest"])
	assert.Equal(t, []string{"find"}, plan.SearchQueries["meta-ads"])
	assert.Equal(t, models.StringList{"find", "luxury", "hotel", "cinematic", "reels"}, plan.VisualKeywords)
	assert.Equal(t, "Find luxury hotel cinematic reels", plan.ScoringCriteria)
}

func TestFallbackEmptyPoolStillQueries(t *testing.T) {
	p := New(nil, config.Default().LLM)

	plan := p.Plan(context.Background(), "a b c !!")

	assertWellFormed(t, plan)
	for _, name := range []string{"youtube", "tiktok", "vimeo", "meta-ads"} {
		assert.Equal(t, []string{"creative"}, plan.SearchQueries[name], name)
	}
	assert.Equal(t, []string{"#creative"}, plan.SearchQueries["instagram"])
}

func TestPlanWithModelOutput(t *testing.T) {
	testCases := []struct {
		name         string
		text         string
		err          error
		wantYouTube  []string
		wantMetaAds  []string
		wantCriteria string
		wantFellBack bool
	}{
		{
			name:         "json in code fence with alias key",
			text:         "```json\n{\"search_queries\":{\"youtube\":[\"hotel b-roll\"],\"meta_ads\":[\"resort ad\"]},\"scoring_criteria\":\"warm light\"}\n```",
			wantYouTube:  []string{"hotel b-roll"},
			wantMetaAds:  []string{"resort ad"},
			wantCriteria: "warm light",
		},
		{
			name:         "json wrapped in prose, empty criteria",
			text:         `Sure! {"search_queries":{"youtube":["a"]},"scoring_criteria":"  "} Let me know.`,
			wantYouTube:  []string{"a"},
			wantMetaAds:  []string{},
			wantCriteria: "Find luxury hotel cinematic reels",
		},
		{
			name:         "schema hint object before answer",
			text:         `Shape: {"search_queries": "map"} Answer: {"search_queries":{"youtube":["neon alley"]},"scoring_criteria":"neon"}`,
			wantYouTube:  []string{"neon alley"},
			wantMetaAds:  []string{},
			wantCriteria: "neon",
		},
		{
			name:         "malformed output",
			text:         `{"search_queries": [1, 2`,
			wantFellBack: true,
		},
		{
			name:         "backend error",
			err:          errors.New("quota exceeded"),
			wantFellBack: true,
		},
	}

	brief := "Find luxury hotel cinematic reels"
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			gen := &fakeGenerator{text: testCase.text, err: testCase.err}
			p := New(gen, config.Default().LLM)

			plan := p.Plan(context.Background(), brief)

			assertWellFormed(t, plan)
			require.Equal(t, 1, gen.calls)
			assert.Equal(t, brief, gen.last.Prompt)
			if testCase.wantFellBack {
				assert.Equal(t, Fallback(brief).SearchQueries["youtube"], plan.SearchQueries["youtube"])
				assert.Equal(t, brief, plan.ScoringCriteria)
				return
			}
			assert.Equal(t, testCase.wantYouTube, plan.SearchQueries["youtube"])
			assert.Equal(t, testCase.wantMetaAds, plan.SearchQueries["meta-ads"])
			assert.Equal(t, testCase.wantCriteria, plan.ScoringCriteria)
			_, aliasKept := plan.SearchQueries["meta_ads"]
			assert.False(t, aliasKept)
		})
	}
}

func TestPlanAlwaysWellFormed(t *testing.T) {
	briefs := []string{"x", "Find luxury hotel cinematic reels", "    ", "호텔 시네마틱 릴스 레퍼런스", "!!!???"}
	p := New(nil, config.Default().LLM)
	for _, brief := range briefs {
		assertWellFormed(t, p.Plan(context.Background(), brief))
	}
}
