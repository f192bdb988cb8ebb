package models

import (
	"encoding/json"
	"time"
)

// Engagement 는 플랫폼별 반응 지표를 공통 스키마로 맞춘 값이다.
type Engagement struct {
	Views    int64 `bson:"views" json:"views"`
	Likes    int64 `bson:"likes" json:"likes"`
	Comments int64 `bson:"comments" json:"comments"`
}

// NormalizedResult is one content reference produced by a provider adapter.
// RawData carries the provider payload verbatim.
type NormalizedResult struct {
	Platform     string          `bson:"platform" json:"platform"`
	ContentType  string          `bson:"content_type" json:"content_type"`
	ExternalID   string          `bson:"external_id" json:"external_id"`
	URL          string          `bson:"url" json:"url"`
	ThumbnailURL string          `bson:"thumbnail_url" json:"thumbnail_url"`
	MediaURL     string          `bson:"media_url" json:"media_url"`
	Title        string          `bson:"title" json:"title"`
	Description  string          `bson:"description" json:"description"`
	Author       string          `bson:"author" json:"author"`
	AuthorURL    string          `bson:"author_url" json:"author_url"`
	Engagement   Engagement      `bson:"engagement" json:"engagement"`
	RawData      json.RawMessage `bson:"raw_data,omitempty" json:"raw_data,omitempty"`
}

// ScoredResult is a NormalizedResult with the relevance assessment attached.
// Collection/table: results
type ScoredResult struct {
	ID               string `bson:"_id" json:"id"`
	SearchID         string `bson:"search_id" json:"search_id"`
	NormalizedResult `bson:",inline"`
	AIRelevanceScore float64   `bson:"ai_relevance_score" json:"ai_relevance_score"`
	AIAnalysis       string    `bson:"ai_analysis" json:"ai_analysis"`
	AITags           []string  `bson:"ai_tags" json:"ai_tags"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
}
