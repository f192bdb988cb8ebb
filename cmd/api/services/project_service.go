package services

import (
	"context"
	"strings"

	"creative-radar/cmd/api/dto"
	"creative-radar/models"
	"creative-radar/pipeline"
	"creative-radar/repositories"
)

type ProjectService struct {
	store repositories.ProjectStore
}

func NewProjectService(store repositories.ProjectStore) *ProjectService {
	return &ProjectService{store: store}
}

func (s *ProjectService) List(ctx context.Context) ([]models.Project, error) {
	return s.store.ListProjects(ctx)
}

func (s *ProjectService) Create(ctx context.Context, in dto.CreateProjectRequestDTO) (models.Project, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Project{}, &pipeline.ValidationError{Field: "name", Reason: "name is required and must be a string"}
	}
	return s.store.CreateProject(ctx, models.Project{Name: name, Client: in.Client, Description: in.Description})
}

func (s *ProjectService) Get(ctx context.Context, id string) (dto.ProjectDetailDTO, error) {
	p, err := s.store.GetProject(ctx, id)
	if err != nil {
		return dto.ProjectDetailDTO{}, err
	}
	items, err := s.store.ListProjectItems(ctx, id)
	if err != nil {
		return dto.ProjectDetailDTO{}, err
	}
	return dto.ProjectDetailDTO{Project: p, Items: items}, nil
}

func (s *ProjectService) Update(ctx context.Context, id string, in dto.UpdateProjectRequestDTO) (models.Project, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return models.Project{}, &pipeline.ValidationError{Field: "name", Reason: "name must not be empty"}
	}
	return s.store.UpdateProject(ctx, id, models.ProjectUpdate{Name: in.Name, Client: in.Client, Description: in.Description})
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteProject(ctx, id)
}

func (s *ProjectService) AddItem(ctx context.Context, projectID string, in dto.AddProjectItemRequestDTO) (models.ProjectItem, error) {
	if strings.TrimSpace(in.ResultID) == "" {
		return models.ProjectItem{}, &pipeline.ValidationError{Field: "result_id", Reason: "result_id is required"}
	}
	return s.store.AddProjectItem(ctx, projectID, in.ResultID, in.Notes)
}

func (s *ProjectService) RemoveItem(ctx context.Context, projectID, itemID string) error {
	return s.store.RemoveProjectItem(ctx, projectID, itemID)
}
