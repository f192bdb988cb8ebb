package models

import "time"

// Project 는 검색 결과를 큐레이션해 모아두는 보드다.
// Collection/table: projects
type Project struct {
	ID          string    `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Client      string    `bson:"client" json:"client"`
	Description string    `bson:"description" json:"description"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// ProjectItem links a saved result to a project.
// Collection/table: project_items, unique on (project_id, result_id)
type ProjectItem struct {
	ID        string    `bson:"_id" json:"id"`
	ProjectID string    `bson:"project_id" json:"project_id"`
	ResultID  string    `bson:"result_id" json:"result_id"`
	Notes     string    `bson:"notes" json:"notes"`
	AddedAt   time.Time `bson:"added_at" json:"added_at"`
}

// ProjectItemDetail 는 프로젝트 조회 시 아이템과 원본 결과를 함께 내려주기 위한 조인 결과다.
type ProjectItemDetail struct {
	ItemID  string       `json:"item_id"`
	Notes   string       `json:"notes"`
	AddedAt time.Time    `json:"added_at"`
	Result  ScoredResult `json:"result"`
}

// ProjectUpdate 는 부분 업데이트 입력이다. nil 필드는 기존 값을 유지한다.
type ProjectUpdate struct {
	Name        *string
	Client      *string
	Description *string
}
