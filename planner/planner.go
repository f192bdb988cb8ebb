package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"creative-radar/config"
	"creative-radar/llm"
	"creative-radar/models"
)

const SYSTEM_INSTRUCTION = `
You are a creative research assistant for a production agency.
Parse the creative brief into structured search parameters for these platforms: youtube, instagram, tiktok, pinterest, behance, vimeo, meta_ads.
For every platform write a mix of roughly 60% literal queries (matching the subject of the brief) and 40% lateral queries (technique, mood, lighting, editing style or cross-industry references that share the visual language).
Instagram queries are hashtags. Pinterest and behance get two queries, meta_ads gets one, the others three.
The response MUST be a valid JSON object with these keys:
{
  "search_queries": {"youtube": ["..."], "instagram": ["#..."], "tiktok": ["..."], "pinterest": ["..."], "behance": ["..."], "vimeo": ["..."], "meta_ads": ["..."]},
  "content_types": ["reel", "short", "video", "image"],
  "visual_keywords": ["..."],
  "reference_brands": ["..."],
  "lateral_inspiration": ["..."],
  "scoring_criteria": "A rubric describing which visual and creative qualities make a result highly relevant."
}
Return JSON only, no explanation.
`

const (
	maxPoolTokens     = 10
	minTokenRunes     = 4
	defaultQuery      = "creative"
	literalQueryCount = 3
)

var defaultContentTypes = []string{"reel", "short", "video", "image"}

// Planner 는 브리프를 프로바이더별 검색어와 채점 기준으로 확장한다.
// generator 가 nil 이면 항상 결정적 대체 경로를 사용한다.
type Planner struct {
	generator llm.Generator
	maxTokens int32
	known     []string
}

func New(generator llm.Generator, cfg config.LLMConfig) *Planner {
	return &Planner{
		generator: generator,
		maxTokens: cfg.PlannerMaxTokens,
		known:     models.KnownProviders,
	}
}

// Plan always returns a well-formed plan: every known provider key is present
// and scoring_criteria is non-empty. Backend or parse failures fall back to
// keyword extraction and are only logged.
func (p *Planner) Plan(ctx context.Context, brief string) models.QueryPlan {
	if p.generator == nil {
		config.Logger.Warn("[planner] no generator configured, using fallback keyword extraction")
		return p.finalize(Fallback(brief), brief)
	}

	plan, err := p.planWithModel(ctx, brief)
	if err != nil {
		config.Logger.Warnf("[planner] model planning failed, using fallback: %v", err)
		return p.finalize(Fallback(brief), brief)
	}
	return p.finalize(plan, brief)
}

func (p *Planner) planWithModel(ctx context.Context, brief string) (models.QueryPlan, error) {
	var plan models.QueryPlan

	resp, err := p.generator.Generate(ctx, llm.Request{
		SystemInstruction: SYSTEM_INSTRUCTION,
		Prompt:            brief,
		MaxOutputTokens:   p.maxTokens,
	})
	if err != nil {
		return plan, err
	}

	raw, ok := llm.ExtractObjectFunc(resp.Text, llm.DecodesInto[models.QueryPlan])
	if !ok {
		return plan, errors.New("response did not contain a JSON object")
	}
	if err := json.Unmarshal(raw, &plan); err != nil {
		return plan, fmt.Errorf("decode plan: %w", err)
	}

	config.DebugWithFields("[planner] plan generated", config.Fields{
		"model_name":    resp.Log.ModelName,
		"latency_ms":    resp.Log.LatencyMs,
		"output_tokens": resp.Log.TokenUsage.OutputTokens,
	})
	return plan, nil
}

func (p *Planner) finalize(plan models.QueryPlan, brief string) models.QueryPlan {
	plan.Normalize(p.known)
	if strings.TrimSpace(plan.ScoringCriteria) == "" {
		plan.ScoringCriteria = criteriaFor(brief)
	}
	if plan.ContentTypes == nil {
		plan.ContentTypes = models.StringList{}
	}
	if plan.VisualKeywords == nil {
		plan.VisualKeywords = models.StringList{}
	}
	if plan.ReferenceBrands == nil {
		plan.ReferenceBrands = models.StringList{}
	}
	return plan
}

// criteriaFor 는 브리프 원문을 채점 기준으로 사용한다. 공백 브리프는 검증 단계에서 걸러지지만
// 플래너 단독 호출을 위해 기본 기준을 둔다.
func criteriaFor(brief string) string {
	if b := strings.TrimSpace(brief); b != "" {
		return b
	}
	return "Visually striking creative references with strong composition, lighting and editing."
}
