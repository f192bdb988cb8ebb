package scorer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"

	"creative-radar/config"
	"creative-radar/llm"
	"creative-radar/models"
)

const SYSTEM_INSTRUCTION = `
You are a creative research assistant. Score each result for creative and visual relevance to the brief: composition, lighting, editing, mood and production technique matter more than a literal topic match.
The response MUST be a JSON array only, no explanation. Each element: {"index": 0, "relevance_score": 0.85, "analysis": "1-2 sentence analysis", "tags": ["tag1", "tag2"]}
Use the index given for each result. Only include results scoring above 0.3.
`

const (
	DefaultScore = 0.5

	AnalysisNoBackend  = "Scored by default, scoring backend not configured."
	AnalysisCallFailed = "Scored by default, scoring call failed."
	AnalysisParseError = "Could not parse AI scoring response."

	maxTitleRunes       = 200
	maxDescriptionRunes = 300
	maxAuthorRunes      = 100
)

// ScoreRecord 는 채점 백엔드가 돌려준(또는 대체 생성한) 결과 1건의 평가다.
// Index 는 전체 입력 목록 기준 위치다.
type ScoreRecord struct {
	Index          int      `json:"index"`
	RelevanceScore float64  `json:"relevance_score"`
	Analysis       string   `json:"analysis"`
	Tags           []string `json:"tags"`
}

// projection 은 채점 백엔드에 보내는 축약 표현이다.
type projection struct {
	Index       int    `json:"index"`
	Platform    string `json:"platform"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Author      string `json:"author"`
	Engagement  string `json:"engagement"`
	ContentType string `json:"content_type"`
}

type Scorer struct {
	generator   llm.Generator
	batchSize   int
	parallelism int
	maxTokens   int32
}

func New(generator llm.Generator, searchCfg config.SearchConfig, llmCfg config.LLMConfig) *Scorer {
	batchSize := searchCfg.ScoreBatchSize
	if batchSize <= 0 {
		batchSize = 30
	}
	parallelism := searchCfg.ScoreParallelism
	if parallelism <= 0 {
		parallelism = 1
	}
	return &Scorer{
		generator:   generator,
		batchSize:   batchSize,
		parallelism: parallelism,
		maxTokens:   llmCfg.ScorerMaxTokens,
	}
}

// Score returns score records keyed by global index. The output is sparse:
// the backend may omit entries below the relevance floor. A failed batch
// degrades to default records for that batch only.
func (s *Scorer) Score(ctx context.Context, results []models.NormalizedResult, criteria string) []ScoreRecord {
	if len(results) == 0 {
		return []ScoreRecord{}
	}
	if s.generator == nil {
		config.Logger.Warn("[scorer] no generator configured, returning default scores")
		return defaults(0, len(results), AnalysisNoBackend)
	}

	numBatches := (len(results) + s.batchSize - 1) / s.batchSize
	perBatch := make([][]ScoreRecord, numBatches)

	var g errgroup.Group
	g.SetLimit(s.parallelism)
	for b := 0; b < numBatches; b++ {
		offset := b * s.batchSize
		end := min(offset+s.batchSize, len(results))
		g.Go(func() error {
			perBatch[b] = s.scoreBatch(ctx, b, offset, results[offset:end], criteria)
			return nil
		})
	}
	g.Wait()

	records := make([]ScoreRecord, 0, len(results))
	for _, batch := range perBatch {
		records = append(records, batch...)
	}
	return records
}

func (s *Scorer) scoreBatch(ctx context.Context, batchIdx, offset int, batch []models.NormalizedResult, criteria string) []ScoreRecord {
	payload, err := json.MarshalIndent(projectBatch(offset, batch), "", "  ")
	if err != nil {
		return defaults(offset, len(batch), AnalysisCallFailed)
	}

	resp, err := s.generator.Generate(ctx, llm.Request{
		SystemInstruction: SYSTEM_INSTRUCTION,
		Prompt:            fmt.Sprintf("Scoring criteria:\n%s\n\nResults to score:\n%s", criteria, payload),
		MaxOutputTokens:   s.maxTokens,
	})
	if err != nil {
		config.Logger.Errorf("[scorer] batch %d call failed: %v", batchIdx, err)
		return defaults(offset, len(batch), AnalysisCallFailed)
	}

	records, err := parseRecords(batchIdx, resp.Text)
	if err != nil {
		config.Logger.Warnf("[scorer] batch %d unparseable: %v", batchIdx, err)
		return defaults(offset, len(batch), AnalysisParseError)
	}
	config.DebugWithFields("[scorer] batch scored", config.Fields{
		"batch":         batchIdx,
		"size":          len(batch),
		"returned":      len(records),
		"latency_ms":    resp.Log.LatencyMs,
		"output_tokens": resp.Log.TokenUsage.OutputTokens,
	})
	return records
}

// parseRecords 는 응답에서 객체 배열을 찾아 원소별로 디코딩한다. 형식이 틀린 원소는
// 인덱스를 읽을 수 있으면 파싱 실패 기본값으로, 아니면 건너뛴다.
func parseRecords(batchIdx int, text string) ([]ScoreRecord, error) {
	raw, ok := llm.ExtractArrayFunc(text, llm.DecodesInto[[]map[string]json.RawMessage])
	if !ok {
		return nil, errors.New("response did not contain a JSON array of objects")
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, err
	}
	records := make([]ScoreRecord, 0, len(elems))
	for i, elem := range elems {
		if gjson.ParseBytes(elem).Type == gjson.Null {
			continue
		}
		var rec ScoreRecord
		if err := json.Unmarshal(elem, &rec); err != nil {
			idx := gjson.GetBytes(elem, "index")
			if idx.Type != gjson.Number {
				config.Logger.Warnf("[scorer] batch %d element %d skipped: %v", batchIdx, i, err)
				continue
			}
			config.Logger.Warnf("[scorer] batch %d element %d (index %d) malformed: %v", batchIdx, i, idx.Int(), err)
			records = append(records, defaults(int(idx.Int()), 1, AnalysisParseError)...)
			continue
		}
		if rec.Tags == nil {
			rec.Tags = []string{}
		}
		records = append(records, rec)
	}
	return records, nil
}

// projectBatch builds the per-item payload for one batch. Indices are global.
func projectBatch(offset int, batch []models.NormalizedResult) []projection {
	out := make([]projection, len(batch))
	for i, r := range batch {
		out[i] = projection{
			Index:       offset + i,
			Platform:    orDefault(r.Platform, "unknown"),
			Title:       truncate(r.Title, maxTitleRunes),
			Description: truncate(r.Description, maxDescriptionRunes),
			Author:      truncate(r.Author, maxAuthorRunes),
			Engagement:  SummarizeEngagement(r.Engagement),
			ContentType: orDefault(r.ContentType, "unknown"),
		}
	}
	return out
}

// SummarizeEngagement 는 "1000 views, 10 likes, 2 comments" 형태로 반응 지표를 요약한다.
func SummarizeEngagement(e models.Engagement) string {
	if e == (models.Engagement{}) {
		return "N/A"
	}
	return fmt.Sprintf("%d views, %d likes, %d comments", e.Views, e.Likes, e.Comments)
}

func defaults(offset, n int, analysis string) []ScoreRecord {
	out := make([]ScoreRecord, n)
	for i := range out {
		out[i] = ScoreRecord{Index: offset + i, RelevanceScore: DefaultScore, Analysis: analysis, Tags: []string{}}
	}
	return out
}

func truncate(s string, maxRunes int) string {
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxRunes])
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// ByIndex 는 레코드를 전역 인덱스로 색인한다. 같은 인덱스가 여러 번 오면 처음 것을 쓰고,
// 입력 범위(0..n-1) 밖의 인덱스는 무시한다.
func ByIndex(records []ScoreRecord, n int) map[int]ScoreRecord {
	idx := make(map[int]ScoreRecord, len(records))
	for _, r := range records {
		if r.Index < 0 || r.Index >= n {
			continue
		}
		if _, dup := idx[r.Index]; dup {
			continue
		}
		idx[r.Index] = r
	}
	return idx
}
