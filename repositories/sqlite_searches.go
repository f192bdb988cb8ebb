package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"creative-radar/models"
)

type sqliteSearchWriter struct {
	q   querier
	now func() time.Time
}

func (w *sqliteSearchWriter) CreateSearch(ctx context.Context, brief, serializedPlan string, providers []string) (string, error) {
	id := newID()
	providersJSON, err := json.Marshal(providers)
	if err != nil {
		return "", err
	}
	_, err = w.q.ExecContext(ctx,
		`INSERT INTO searches (id, brief, query_plan, providers, result_count, created_at) VALUES (?, ?, ?, ?, 0, ?)`,
		id, brief, serializedPlan, string(providersJSON), formatTime(w.now()),
	)
	if err != nil {
		return "", fmt.Errorf("insert search: %w", err)
	}
	return id, nil
}

func (w *sqliteSearchWriter) InsertResults(ctx context.Context, searchID string, results []models.ScoredResult) error {
	if len(results) == 0 {
		return nil
	}
	stmt, err := w.q.PrepareContext(ctx, `
		INSERT INTO results (
			id, search_id, position, platform, content_type, external_id, url, thumbnail_url,
			media_url, title, description, author, author_url, engagement,
			ai_relevance_score, ai_analysis, ai_tags, raw_data, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert results: %w", err)
	}
	defer stmt.Close()

	now := w.now()
	for i, r := range results {
		id := r.ID
		if id == "" {
			id = newID()
		}
		createdAt := formatTime(now)
		if !r.CreatedAt.IsZero() {
			createdAt = formatTime(r.CreatedAt)
		}
		engagement, err := json.Marshal(r.Engagement)
		if err != nil {
			return err
		}
		tags, err := json.Marshal(r.AITags)
		if err != nil {
			return err
		}
		var raw sql.NullString
		if r.RawData != nil {
			raw = sql.NullString{String: string(r.RawData), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx,
			id, searchID, i, r.Platform, r.ContentType, r.ExternalID, r.URL, r.ThumbnailURL,
			r.MediaURL, r.Title, r.Description, r.Author, r.AuthorURL, string(engagement),
			r.AIRelevanceScore, r.AIAnalysis, string(tags), raw, createdAt,
		); err != nil {
			return fmt.Errorf("insert result %d: %w", i, err)
		}
	}
	return nil
}

func (w *sqliteSearchWriter) UpdateResultCount(ctx context.Context, searchID string, n int) error {
	res, err := w.q.ExecContext(ctx, `UPDATE searches SET result_count = ? WHERE id = ?`, n, searchID)
	if err != nil {
		return fmt.Errorf("update result count: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("search %s: %w", searchID, ErrNotFound)
	}
	return nil
}

const searchColumns = `id, brief, query_plan, providers, result_count, created_at`

func scanSearch(row interface{ Scan(dest ...any) error }) (models.SearchRecord, error) {
	var (
		s         models.SearchRecord
		providers string
		createdAt string
	)
	if err := row.Scan(&s.ID, &s.Brief, &s.QueryPlan, &providers, &s.ResultCount, &createdAt); err != nil {
		return s, err
	}
	if err := json.Unmarshal([]byte(providers), &s.Providers); err != nil {
		return s, fmt.Errorf("decode providers: %w", err)
	}
	t, err := parseTime(createdAt)
	if err != nil {
		return s, err
	}
	s.CreatedAt = t
	return s, nil
}

func (s *SQLiteStore) ListSearches(ctx context.Context, limit int) ([]models.SearchRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `SELECT `+searchColumns+` FROM searches ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.SearchRecord{}
	for rows.Next() {
		rec, err := scanSearch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) GetSearch(ctx context.Context, id string) (models.SearchRecord, error) {
	rec, err := scanSearch(s.db.QueryRowContext(ctx, `SELECT `+searchColumns+` FROM searches WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return rec, fmt.Errorf("search %s: %w", id, ErrNotFound)
	}
	return rec, err
}

const resultColumns = `r.id, r.search_id, r.platform, r.content_type, r.external_id, r.url, r.thumbnail_url,
	r.media_url, r.title, r.description, r.author, r.author_url, r.engagement,
	r.ai_relevance_score, r.ai_analysis, r.ai_tags, r.raw_data, r.created_at`

func scanResult(row interface{ Scan(dest ...any) error }, extra ...any) (models.ScoredResult, error) {
	var (
		r          models.ScoredResult
		engagement string
		tags       string
		raw        sql.NullString
		createdAt  string
	)
	dest := append(extra, &r.ID, &r.SearchID, &r.Platform, &r.ContentType, &r.ExternalID, &r.URL, &r.ThumbnailURL,
		&r.MediaURL, &r.Title, &r.Description, &r.Author, &r.AuthorURL, &engagement,
		&r.AIRelevanceScore, &r.AIAnalysis, &tags, &raw, &createdAt)
	if err := row.Scan(dest...); err != nil {
		return r, err
	}
	if err := json.Unmarshal([]byte(engagement), &r.Engagement); err != nil {
		return r, fmt.Errorf("decode engagement: %w", err)
	}
	if err := json.Unmarshal([]byte(tags), &r.AITags); err != nil {
		return r, fmt.Errorf("decode ai_tags: %w", err)
	}
	if raw.Valid {
		r.RawData = json.RawMessage(raw.String)
	}
	t, err := parseTime(createdAt)
	if err != nil {
		return r, err
	}
	r.CreatedAt = t
	return r, nil
}

func (s *SQLiteStore) ListResults(ctx context.Context, searchID string) ([]models.ScoredResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+resultColumns+` FROM results r WHERE r.search_id = ? ORDER BY r.ai_relevance_score DESC, r.position ASC`,
		searchID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.ScoredResult{}
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) DeleteSearch(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM searches WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("search %s: %w", id, ErrNotFound)
	}
	return nil
}
