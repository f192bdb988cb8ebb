package dto

import (
	"encoding/json"
	"time"

	"creative-radar/models"
)

// SearchRequestDTO 는 POST /search 본문이다.
// platforms 는 문자열 배열 또는 "all" 을 받는다.
type SearchRequestDTO struct {
	Brief     string                    `json:"brief" example:"Find luxury hotel cinematic reels with warm light"`
	Platforms json.RawMessage           `json:"platforms,omitempty" swaggertype:"array,string" example:"youtube,instagram"`
	Options   map[string]map[string]any `json:"options,omitempty"`
}

type SearchResponseDTO struct {
	SearchID  string                `json:"search_id"`
	QueryPlan models.QueryPlan      `json:"query_plan"`
	Results   []models.ScoredResult `json:"results"`
}

// SearchHistoryItemDTO 는 저장된 검색 기록이다. query_plan 은 파싱해서 내려준다.
type SearchHistoryItemDTO struct {
	ID          string            `json:"id"`
	Brief       string            `json:"brief"`
	QueryPlan   *models.QueryPlan `json:"query_plan"`
	Providers   []string          `json:"providers"`
	ResultCount int               `json:"result_count"`
	CreatedAt   time.Time         `json:"created_at"`
}

type SearchDetailDTO struct {
	Search  SearchHistoryItemDTO  `json:"search"`
	Results []models.ScoredResult `json:"results"`
}
