package models

import (
	"encoding/json"
	"strings"
)

// KnownProviders 는 쿼리 플랜이 항상 키로 포함해야 하는 프로바이더 목록이다.
// 이름은 레지스트리의 정규 키(하이픈 형태)를 따른다.
var KnownProviders = []string{
	"youtube",
	"instagram",
	"tiktok",
	"pinterest",
	"behance",
	"vimeo",
	"meta-ads",
	"rss",
}

// CanonicalProvider normalizes a provider name to its registry key.
// The planning backend writes "meta_ads" while the registry uses "meta-ads".
func CanonicalProvider(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
}

// QueryPlan 은 브리프를 프로바이더별 검색어와 채점 기준으로 확장한 결과다.
type QueryPlan struct {
	SearchQueries      map[string][]string `json:"search_queries" bson:"search_queries"`
	ContentTypes       StringList          `json:"content_types" bson:"content_types"`
	VisualKeywords     StringList          `json:"visual_keywords" bson:"visual_keywords"`
	ReferenceBrands    StringList          `json:"reference_brands" bson:"reference_brands"`
	ScoringCriteria    string              `json:"scoring_criteria" bson:"scoring_criteria"`
	LateralInspiration StringList          `json:"lateral_inspiration,omitempty" bson:"lateral_inspiration,omitempty"`
}

// Normalize rewrites every query key to its canonical form and makes sure each
// known provider has a (possibly empty) list. Lists under alias keys are merged
// into the canonical key in the order they were produced.
func (p *QueryPlan) Normalize(known []string) {
	normalized := make(map[string][]string, len(known))
	for key, queries := range p.SearchQueries {
		canonical := CanonicalProvider(key)
		normalized[canonical] = append(normalized[canonical], cleanQueries(queries)...)
	}
	for _, name := range known {
		if normalized[name] == nil {
			normalized[name] = []string{}
		}
	}
	p.SearchQueries = normalized
}

// QueriesFor returns the queries planned for a provider, or an empty list.
func (p QueryPlan) QueriesFor(provider string) []string {
	if q, ok := p.SearchQueries[provider]; ok {
		return q
	}
	if q, ok := p.SearchQueries[CanonicalProvider(provider)]; ok {
		return q
	}
	return []string{}
}

// Marshal serializes the plan for storage on the search record.
func (p QueryPlan) Marshal() (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func cleanQueries(queries []string) []string {
	out := make([]string, 0, len(queries))
	for _, q := range queries {
		if q = strings.TrimSpace(q); q != "" {
			out = append(out, q)
		}
	}
	return out
}

// StringList 는 JSON 배열 또는 단일 문자열을 모두 허용하는 문자열 목록이다.
// 모델 응답이 "content_types": "video" 처럼 단일 값을 주는 경우에도 플랜 전체를 버리지 않기 위해 사용한다.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*l = many
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	if one == "" {
		*l = StringList{}
		return nil
	}
	*l = StringList{one}
	return nil
}
