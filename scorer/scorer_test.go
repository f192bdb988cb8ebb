package scorer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creative-radar/config"
	"creative-radar/llm"
	"creative-radar/models"
)

type fakeGenerator struct {
	mu      sync.Mutex
	prompts []string
	fn      func(prompt string) (string, error)
}

func (f *fakeGenerator) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, req.Prompt)
	f.mu.Unlock()

	text, err := f.fn(req.Prompt)
	if err != nil {
		return nil, err
	}
	return &llm.Response{Text: text}, nil
}

var indexPattern = regexp.MustCompile(`"index": (\d+)`)

// indicesIn 은 프롬프트에 포함된 전역 인덱스를 추출한다.
func indicesIn(prompt string) []int {
	var out []int
	for _, m := range indexPattern.FindAllStringSubmatch(prompt, -1) {
		var i int
		fmt.Sscanf(m[1], "%d", &i)
		out = append(out, i)
	}
	return out
}

func inputs(n int) []models.NormalizedResult {
	out := make([]models.NormalizedResult, n)
	for i := range out {
		out[i] = models.NormalizedResult{Platform: "youtube", Title: fmt.Sprintf("result %d", i), ContentType: "video"}
	}
	return out
}

func newScorer(gen llm.Generator) *Scorer {
	cfg := config.Default()
	return New(gen, cfg.Search, cfg.LLM)
}

func TestEmptyInputMakesNoCall(t *testing.T) {
	gen := &fakeGenerator{fn: func(string) (string, error) { return "[]", nil }}

	records := newScorer(gen).Score(context.Background(), nil, "criteria")

	assert.NotNil(t, records)
	assert.Empty(t, records)
	assert.Empty(t, gen.prompts)
}

func TestNoBackendReturnsDefaultPerInput(t *testing.T) {
	records := newScorer(nil).Score(context.Background(), inputs(35), "criteria")

	require.Len(t, records, 35)
	for i, r := range records {
		assert.Equal(t, i, r.Index)
		assert.Equal(t, 0.5, r.RelevanceScore)
		assert.Equal(t, AnalysisNoBackend, r.Analysis)
		assert.NotNil(t, r.Tags)
		assert.Empty(t, r.Tags)
	}
}

func TestBatchesUseGlobalIndices(t *testing.T) {
	gen := &fakeGenerator{fn: func(prompt string) (string, error) {
		var recs []ScoreRecord
		for _, i := range indicesIn(prompt) {
			recs = append(recs, ScoreRecord{Index: i, RelevanceScore: 0.8, Analysis: "ok", Tags: []string{"warm"}})
		}
		b, _ := json.Marshal(recs)
		return "```json\n" + string(b) + "\n```", nil
	}}

	records := newScorer(gen).Score(context.Background(), inputs(65), "warm light")

	require.Len(t, gen.prompts, 3)
	assert.Equal(t, 0, indicesIn(gen.prompts[0])[0])
	assert.Equal(t, 30, indicesIn(gen.prompts[1])[0])
	assert.Equal(t, 60, indicesIn(gen.prompts[2])[0])
	assert.Len(t, indicesIn(gen.prompts[2]), 5)
	assert.True(t, strings.HasPrefix(gen.prompts[0], "Scoring criteria:\nwarm light\n"))

	require.Len(t, records, 65)
	for i, r := range records {
		assert.Equal(t, i, r.Index)
	}
}

func TestBatchFailureDegradesOnlyThatBatch(t *testing.T) {
	gen := &fakeGenerator{fn: func(prompt string) (string, error) {
		idx := indicesIn(prompt)
		switch idx[0] {
		case 0:
			return `[{"index": 2, "relevance_score": 0.9, "analysis": "great", "tags": ["drone"]}]`, nil
		case 30:
			return "", errors.New("503 overloaded")
		default:
			return "I could not score these.", nil
		}
	}}

	records := newScorer(gen).Score(context.Background(), inputs(65), "criteria")

	// batch 0: 희소 출력 1건, batch 1: 호출 실패 30건, batch 2: 파싱 실패 5건
	require.Len(t, records, 1+30+5)
	assert.Equal(t, ScoreRecord{Index: 2, RelevanceScore: 0.9, Analysis: "great", Tags: []string{"drone"}}, records[0])
	for _, r := range records[1:31] {
		assert.Equal(t, 0.5, r.RelevanceScore)
		assert.Equal(t, AnalysisCallFailed, r.Analysis)
	}
	assert.Equal(t, 30, records[1].Index)
	for _, r := range records[31:] {
		assert.Equal(t, AnalysisParseError, r.Analysis)
	}
	assert.Equal(t, 60, records[31].Index)
}

func TestParallelBatchesKeepOrder(t *testing.T) {
	gen := &fakeGenerator{fn: func(prompt string) (string, error) {
		i := indicesIn(prompt)[0]
		return fmt.Sprintf(`[{"index": %d, "relevance_score": 1.4, "analysis": "", "tags": null}]`, i), nil
	}}
	cfg := config.Default()
	cfg.Search.ScoreBatchSize = 10
	cfg.Search.ScoreParallelism = 4
	s := New(gen, cfg.Search, cfg.LLM)

	records := s.Score(context.Background(), inputs(45), "criteria")

	require.Len(t, records, 5)
	for b, r := range records {
		assert.Equal(t, b*10, r.Index)
		// 점수는 보정하지 않는다.
		assert.Equal(t, 1.4, r.RelevanceScore)
		assert.NotNil(t, r.Tags)
	}
}

func TestProjectionTruncatesAndSummarizes(t *testing.T) {
	long := strings.Repeat("가", 500)
	batch := []models.NormalizedResult{{
		Title:       long,
		Description: long,
		Author:      long,
		Engagement:  models.Engagement{Views: 1000, Likes: 10, Comments: 2},
	}, {}}

	got := projectBatch(30, batch)

	require.Len(t, got, 2)
	assert.Equal(t, 30, got[0].Index)
	assert.Equal(t, 200, len([]rune(got[0].Title)))
	assert.Equal(t, 300, len([]rune(got[0].Description)))
	assert.Equal(t, 100, len([]rune(got[0].Author)))
	assert.Equal(t, "1000 views, 10 likes, 2 comments", got[0].Engagement)
	assert.Equal(t, "unknown", got[0].Platform)
	assert.Equal(t, 31, got[1].Index)
	assert.Equal(t, "N/A", got[1].Engagement)
}

func TestByIndex(t *testing.T) {
	records := []ScoreRecord{
		{Index: 1, RelevanceScore: 0.7},
		{Index: 1, RelevanceScore: 0.2},
		{Index: 9, RelevanceScore: 0.9},
		{Index: -1, RelevanceScore: 0.9},
	}

	idx := ByIndex(records, 3)

	assert.Len(t, idx, 1)
	assert.Equal(t, 0.7, idx[1].RelevanceScore)
}

func TestProseArrayBeforeResultsIsSkipped(t *testing.T) {
	gen := &fakeGenerator{fn: func(string) (string, error) {
		return "Scores use the range [0, 1].\n```json\n" +
			`[{"index":0,"relevance_score":0.9,"analysis":"sharp","tags":["neon"]}]` +
			"\n```", nil
	}}

	records := newScorer(gen).Score(context.Background(), inputs(2), "criteria")

	require.Len(t, records, 1)
	assert.Equal(t, ScoreRecord{Index: 0, RelevanceScore: 0.9, Analysis: "sharp", Tags: []string{"neon"}}, records[0])
}

func TestMalformedElementDegradesOnlyItself(t *testing.T) {
	testCases := []struct {
		name  string
		reply string
		want  []ScoreRecord
	}{
		{
			name:  "bad tags keeps index",
			reply: `[{"index":0,"relevance_score":0.9,"analysis":"ok","tags":["a"]},{"index":1,"relevance_score":0.8,"analysis":"x","tags":"solo"}]`,
			want: []ScoreRecord{
				{Index: 0, RelevanceScore: 0.9, Analysis: "ok", Tags: []string{"a"}},
				{Index: 1, RelevanceScore: 0.5, Analysis: AnalysisParseError, Tags: []string{}},
			},
		},
		{
			name:  "unreadable index is dropped",
			reply: `[{"index":"one","relevance_score":0.8},null,{"index":1,"relevance_score":0.7,"analysis":"","tags":null}]`,
			want: []ScoreRecord{
				{Index: 1, RelevanceScore: 0.7, Analysis: "", Tags: []string{}},
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			gen := &fakeGenerator{fn: func(string) (string, error) { return testCase.reply, nil }}

			records := newScorer(gen).Score(context.Background(), inputs(2), "criteria")

			assert.Equal(t, testCase.want, records)
		})
	}
}
