package dto

type CreateTemplateRequestDTO struct {
	Name             string   `json:"name" example:"Hotel / Hospitality"`
	Category         string   `json:"category" example:"hospitality"`
	BriefTemplate    string   `json:"brief_template" example:"Find {content_type} references for a luxury hotel"`
	DefaultPlatforms []string `json:"default_platforms"`
}
