package repositories

import (
	"context"
	"errors"

	"creative-radar/models"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

// SearchWriter 는 검색 1건을 저장하는 쓰기 연산이다. RunInTx 안에서만 얻을 수 있으며
// 세 연산은 같은 트랜잭션으로 커밋되거나 함께 롤백된다.
type SearchWriter interface {
	CreateSearch(ctx context.Context, brief, serializedPlan string, providers []string) (string, error)
	// InsertResults 는 입력 순서를 저장 순서로 보존한다. ID/CreatedAt 이 비어 있으면 채운다.
	InsertResults(ctx context.Context, searchID string, results []models.ScoredResult) error
	UpdateResultCount(ctx context.Context, searchID string, n int) error
}

type SearchStore interface {
	// RunInTx 는 fn 이 에러를 반환하면 모든 쓰기를 롤백한다.
	RunInTx(ctx context.Context, fn func(tx SearchWriter) error) error
	ListSearches(ctx context.Context, limit int) ([]models.SearchRecord, error)
	GetSearch(ctx context.Context, id string) (models.SearchRecord, error)
	// ListResults 는 점수 내림차순, 같은 점수는 저장 순서로 반환한다.
	ListResults(ctx context.Context, searchID string) ([]models.ScoredResult, error)
	// DeleteSearch 는 결과도 함께 삭제한다.
	DeleteSearch(ctx context.Context, id string) error
}

type ProjectStore interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	CreateProject(ctx context.Context, p models.Project) (models.Project, error)
	GetProject(ctx context.Context, id string) (models.Project, error)
	ListProjectItems(ctx context.Context, projectID string) ([]models.ProjectItemDetail, error)
	UpdateProject(ctx context.Context, id string, upd models.ProjectUpdate) (models.Project, error)
	DeleteProject(ctx context.Context, id string) error
	AddProjectItem(ctx context.Context, projectID, resultID, notes string) (models.ProjectItem, error)
	RemoveProjectItem(ctx context.Context, projectID, itemID string) error
}

type TemplateStore interface {
	ListTemplates(ctx context.Context) ([]models.Template, error)
	CreateTemplate(ctx context.Context, t models.Template) (models.Template, error)
	DeleteTemplate(ctx context.Context, id string) error
	// SeedTemplates 는 템플릿이 하나도 없을 때만 삽입하고 삽입 건수를 반환한다.
	SeedTemplates(ctx context.Context, templates []models.Template) (int, error)
}

type Store interface {
	SearchStore
	ProjectStore
	TemplateStore
	Close() error
}
