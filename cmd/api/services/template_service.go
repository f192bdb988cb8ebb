package services

import (
	"context"
	"strings"

	"creative-radar/cmd/api/dto"
	"creative-radar/models"
	"creative-radar/pipeline"
	"creative-radar/repositories"
)

type TemplateService struct {
	store repositories.TemplateStore
}

func NewTemplateService(store repositories.TemplateStore) *TemplateService {
	return &TemplateService{store: store}
}

func (s *TemplateService) List(ctx context.Context) ([]models.Template, error) {
	return s.store.ListTemplates(ctx)
}

func (s *TemplateService) Create(ctx context.Context, in dto.CreateTemplateRequestDTO) (models.Template, error) {
	if strings.TrimSpace(in.Name) == "" {
		return models.Template{}, &pipeline.ValidationError{Field: "name", Reason: "name is required and must be a string"}
	}
	if strings.TrimSpace(in.BriefTemplate) == "" {
		return models.Template{}, &pipeline.ValidationError{Field: "brief_template", Reason: "brief_template is required and must be a string"}
	}
	return s.store.CreateTemplate(ctx, models.Template{
		Name:             strings.TrimSpace(in.Name),
		Category:         in.Category,
		BriefTemplate:    in.BriefTemplate,
		DefaultPlatforms: in.DefaultPlatforms,
	})
}

func (s *TemplateService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteTemplate(ctx, id)
}
