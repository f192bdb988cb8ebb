package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"creative-radar/models"
)

const projectColumns = `id, name, client, description, created_at, updated_at`

func scanProject(row interface{ Scan(dest ...any) error }) (models.Project, error) {
	var (
		p                    models.Project
		createdAt, updatedAt string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Client, &p.Description, &createdAt, &updatedAt); err != nil {
		return p, err
	}
	var err error
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return p, err
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return p, err
	}
	return p, nil
}

func (s *SQLiteStore) ListProjects(ctx context.Context) ([]models.Project, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY updated_at DESC, rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) CreateProject(ctx context.Context, p models.Project) (models.Project, error) {
	now := s.now()
	p.ID = newID()
	p.CreatedAt, p.UpdatedAt = now, now
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO projects (`+projectColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Client, p.Description, formatTime(now), formatTime(now),
	)
	if err != nil {
		return models.Project{}, fmt.Errorf("insert project: %w", err)
	}
	return s.GetProject(ctx, p.ID)
}

func (s *SQLiteStore) GetProject(ctx context.Context, id string) (models.Project, error) {
	return getProject(ctx, s.db, id)
}

func getProject(ctx context.Context, q querier, id string) (models.Project, error) {
	p, err := scanProject(q.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return p, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return p, err
}

func (s *SQLiteStore) ListProjectItems(ctx context.Context, projectID string) ([]models.ProjectItemDetail, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT pi.id, pi.notes, pi.added_at, `+resultColumns+`
		FROM project_items pi
		JOIN results r ON r.id = pi.result_id
		WHERE pi.project_id = ?
		ORDER BY pi.added_at DESC, pi.rowid DESC`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.ProjectItemDetail{}
	for rows.Next() {
		var (
			d       models.ProjectItemDetail
			addedAt string
		)
		r, err := scanResult(rows, &d.ItemID, &d.Notes, &addedAt)
		if err != nil {
			return nil, err
		}
		if d.AddedAt, err = parseTime(addedAt); err != nil {
			return nil, err
		}
		d.Result = r
		out = append(out, d)
	}
	return out, rows.Err()
}

// UpdateProject 는 nil 이 아닌 필드만 바꾸고 updated_at 을 갱신한다.
func (s *SQLiteStore) UpdateProject(ctx context.Context, id string, upd models.ProjectUpdate) (models.Project, error) {
	existing, err := s.GetProject(ctx, id)
	if err != nil {
		return existing, err
	}
	if upd.Name != nil {
		existing.Name = *upd.Name
	}
	if upd.Client != nil {
		existing.Client = *upd.Client
	}
	if upd.Description != nil {
		existing.Description = *upd.Description
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE projects SET name = ?, client = ?, description = ?, updated_at = ? WHERE id = ?`,
		existing.Name, existing.Client, existing.Description, formatTime(s.now()), id,
	)
	if err != nil {
		return models.Project{}, fmt.Errorf("update project: %w", err)
	}
	return s.GetProject(ctx, id)
}

func (s *SQLiteStore) DeleteProject(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) AddProjectItem(ctx context.Context, projectID, resultID, notes string) (models.ProjectItem, error) {
	item := models.ProjectItem{
		ID:        newID(),
		ProjectID: projectID,
		ResultID:  resultID,
		Notes:     notes,
		AddedAt:   s.now(),
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := getProject(ctx, tx, projectID); err != nil {
			return err
		}
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM results WHERE id = ?`, resultID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("result %s: %w", resultID, ErrNotFound)
		}
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO project_items (id, project_id, result_id, notes, added_at) VALUES (?, ?, ?, ?, ?)`,
			item.ID, projectID, resultID, notes, formatTime(item.AddedAt),
		)
		if isUniqueViolation(err) {
			return fmt.Errorf("item already exists in project: %w", ErrDuplicate)
		}
		if err != nil {
			return err
		}
		return touchProject(ctx, tx, projectID, formatTime(item.AddedAt))
	})
	if err != nil {
		return models.ProjectItem{}, err
	}
	item.AddedAt, _ = parseTime(formatTime(item.AddedAt))
	return item, nil
}

func (s *SQLiteStore) RemoveProjectItem(ctx context.Context, projectID, itemID string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM project_items WHERE id = ? AND project_id = ?`, itemID, projectID)
		if err != nil {
			return err
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			return fmt.Errorf("item %s not found in project: %w", itemID, ErrNotFound)
		}
		return touchProject(ctx, tx, projectID, formatTime(s.now()))
	})
}

func touchProject(ctx context.Context, q querier, projectID, at string) error {
	_, err := q.ExecContext(ctx, `UPDATE projects SET updated_at = ? WHERE id = ?`, at, projectID)
	return err
}

func (s *SQLiteStore) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
