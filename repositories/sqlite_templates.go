package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"creative-radar/models"
)

func (s *SQLiteStore) ListTemplates(ctx context.Context) ([]models.Template, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, category, brief_template, default_platforms, created_at FROM templates ORDER BY category, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Template{}
	for rows.Next() {
		var (
			t         models.Template
			platforms string
			createdAt string
		)
		if err := rows.Scan(&t.ID, &t.Name, &t.Category, &t.BriefTemplate, &platforms, &createdAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(platforms), &t.DefaultPlatforms); err != nil {
			return nil, fmt.Errorf("decode default_platforms: %w", err)
		}
		if t.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// CreateTemplate 은 DefaultPlatforms 가 비어 있으면 전체 플랫폼을 사용한다.
func (s *SQLiteStore) CreateTemplate(ctx context.Context, t models.Template) (models.Template, error) {
	return insertTemplate(ctx, s.db, t, s.now())
}

func insertTemplate(ctx context.Context, q querier, t models.Template, now time.Time) (models.Template, error) {
	t.ID = newID()
	if len(t.DefaultPlatforms) == 0 {
		t.DefaultPlatforms = models.AllPlatforms()
	}
	platforms, err := json.Marshal(t.DefaultPlatforms)
	if err != nil {
		return t, err
	}
	created := formatTime(now)
	_, err = q.ExecContext(ctx,
		`INSERT INTO templates (id, name, category, brief_template, default_platforms, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.Category, t.BriefTemplate, string(platforms), created,
	)
	if err != nil {
		return t, fmt.Errorf("insert template: %w", err)
	}
	t.CreatedAt, _ = parseTime(created)
	return t, nil
}

func (s *SQLiteStore) SeedTemplates(ctx context.Context, templates []models.Template) (int, error) {
	inserted := 0
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var count int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM templates`).Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		now := s.now()
		for _, t := range templates {
			if _, err := insertTemplate(ctx, tx, t, now); err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func (s *SQLiteStore) DeleteTemplate(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM templates WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("template %s: %w", id, ErrNotFound)
	}
	return nil
}
