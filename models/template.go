package models

import "time"

// Template 은 자주 쓰는 브리프 형식을 저장한 것이다.
// Collection/table: templates
type Template struct {
	ID               string    `bson:"_id" json:"id"`
	Name             string    `bson:"name" json:"name"`
	Category         string    `bson:"category" json:"category"`
	BriefTemplate    string    `bson:"brief_template" json:"brief_template"`
	DefaultPlatforms []string  `bson:"default_platforms" json:"default_platforms"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
}

var allPlatforms = []string{"youtube", "instagram", "tiktok", "pinterest", "behance", "vimeo", "meta-ads"}

// DefaultTemplates 는 스토어가 비어 있을 때 최초 1회 시딩되는 템플릿이다.
func DefaultTemplates() []Template {
	return []Template{
		{
			Name:             "Hotel / Hospitality",
			Category:         "hospitality",
			BriefTemplate:    "Find {content_type} references for a luxury hotel, {style} visual style. Brand reference: {brand}. Focus: {focus_areas}",
			DefaultPlatforms: AllPlatforms(),
		},
		{
			Name:             "FMCG Product",
			Category:         "fmcg",
			BriefTemplate:    "Find references for a {product_type} brand, {style} product photography/video. Elements: {elements}",
			DefaultPlatforms: AllPlatforms(),
		},
		{
			Name:             "Automotive Campaign",
			Category:         "automotive",
			BriefTemplate:    "Find references for automotive campaign, {vehicle_type}, {style} feel. Shot types: {shots}. Brand level: {brand}",
			DefaultPlatforms: AllPlatforms(),
		},
		{
			Name:             "Festival / Event",
			Category:         "events",
			BriefTemplate:    "Find references for {event_type} coverage, {style} style. Focus: {elements}. Scale: {scale}",
			DefaultPlatforms: AllPlatforms(),
		},
		{
			Name:             "Wedding Film",
			Category:         "wedding",
			BriefTemplate:    "Find wedding film references, {style} style, {setting}. Elements: {elements}. Tier: {tier}",
			DefaultPlatforms: AllPlatforms(),
		},
		{
			Name:             "Competitor Ads",
			Category:         "ads",
			BriefTemplate:    "Find active ads from {competitor} and similar brands in {industry}. Focus on {ad_format} creatives. Market: {market}",
			DefaultPlatforms: []string{"meta-ads", "instagram", "youtube"},
		},
		{
			Name:             "Social Media Trends",
			Category:         "trends",
			BriefTemplate:    "Find trending {content_type} in {niche}, what formats and styles are performing right now. Platforms: {platforms}",
			DefaultPlatforms: []string{"instagram", "tiktok", "youtube"},
		},
	}
}

// AllPlatforms returns the platform list used when a template does not name one.
func AllPlatforms() []string {
	out := make([]string, len(allPlatforms))
	copy(out, allPlatforms)
	return out
}
