package pipeline

import (
	"creative-radar/models"
	"creative-radar/scorer"
)

// Assessment 는 결과 1건에 붙는 평가다. 채점 백엔드가 돌려준 레코드(Scored)이거나
// 누락되어 합성된 기본값(Unscored) 중 하나다.
type Assessment interface {
	apply(r *models.ScoredResult)
}

type Scored struct {
	Record scorer.ScoreRecord
}

// Unscored 는 점수 0, 빈 분석, 빈 태그로 병합된다.
type Unscored struct{}

func (s Scored) apply(r *models.ScoredResult) {
	r.AIRelevanceScore = s.Record.RelevanceScore
	r.AIAnalysis = s.Record.Analysis
	r.AITags = s.Record.Tags
	if r.AITags == nil {
		r.AITags = []string{}
	}
}

func (Unscored) apply(r *models.ScoredResult) {
	r.AIRelevanceScore = 0
	r.AIAnalysis = ""
	r.AITags = []string{}
}

// Assess 는 평탄화된 위치 i 마다 평가를 하나씩 만든다.
func Assess(n int, records []scorer.ScoreRecord) []Assessment {
	byIndex := scorer.ByIndex(records, n)
	out := make([]Assessment, n)
	for i := range out {
		if rec, ok := byIndex[i]; ok {
			out[i] = Scored{Record: rec}
		} else {
			out[i] = Unscored{}
		}
	}
	return out
}

// Merge 는 결과와 평가를 위치 기준으로 합친다. 입력 순서가 곧 저장 순서다.
func Merge(results []models.NormalizedResult, records []scorer.ScoreRecord) []models.ScoredResult {
	assessments := Assess(len(results), records)
	merged := make([]models.ScoredResult, len(results))
	for i, r := range results {
		merged[i] = models.ScoredResult{NormalizedResult: r}
		assessments[i].apply(&merged[i])
	}
	return merged
}
