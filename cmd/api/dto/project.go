package dto

import "creative-radar/models"

type CreateProjectRequestDTO struct {
	Name        string `json:"name" example:"Hotel pitch Q3"`
	Client      string `json:"client" example:"Acme Resorts"`
	Description string `json:"description"`
}

// UpdateProjectRequestDTO 는 부분 업데이트다. 생략된 필드는 유지된다.
type UpdateProjectRequestDTO struct {
	Name        *string `json:"name,omitempty"`
	Client      *string `json:"client,omitempty"`
	Description *string `json:"description,omitempty"`
}

type AddProjectItemRequestDTO struct {
	ResultID string `json:"result_id"`
	Notes    string `json:"notes"`
}

type ProjectDetailDTO struct {
	models.Project
	Items []models.ProjectItemDetail `json:"items"`
}
