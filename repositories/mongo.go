package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"creative-radar/models"
)

const (
	colSearches     = "searches"
	colResults      = "results"
	colProjects     = "projects"
	colProjectItems = "project_items"
	colTemplates    = "templates"
)

// resultDoc 는 저장 순서를 보존하기 위해 position 을 함께 기록한다.
type resultDoc struct {
	models.ScoredResult `bson:",inline"`
	Position            int `bson:"position"`
}

// MongoStore 는 MongoDB 기반 저장소다. RunInTx 는 세션 트랜잭션을 사용하므로
// 레플리카셋 구성이 필요하다. 인덱스는 db.OpenMongo 가 만든다.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
	now    func() time.Time
}

func NewMongoStore(client *mongo.Client, db *mongo.Database) *MongoStore {
	return &MongoStore{client: client, db: db, now: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }}
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) col(name string) *mongo.Collection {
	return s.db.Collection(name)
}

func (s *MongoStore) RunInTx(ctx context.Context, fn func(tx SearchWriter) error) error {
	return s.withTx(ctx, func(sc mongo.SessionContext) error {
		return fn(&mongoSearchWriter{store: s, ctx: sc})
	})
}

// withTx 는 fn 을 하나의 세션 트랜잭션으로 실행한다. fn 이 에러를 돌려주면 전부 롤백된다.
func (s *MongoStore) withTx(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	session, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// mongoSearchWriter 는 전달받은 ctx 대신 세션 컨텍스트로 쓰기를 수행한다.
type mongoSearchWriter struct {
	store *MongoStore
	ctx   mongo.SessionContext
}

func (w *mongoSearchWriter) CreateSearch(_ context.Context, brief, serializedPlan string, providers []string) (string, error) {
	rec := models.SearchRecord{
		ID:        newID(),
		Brief:     brief,
		QueryPlan: serializedPlan,
		Providers: providers,
		CreatedAt: w.store.now(),
	}
	if rec.Providers == nil {
		rec.Providers = []string{}
	}
	if _, err := w.store.col(colSearches).InsertOne(w.ctx, rec); err != nil {
		return "", fmt.Errorf("insert search: %w", err)
	}
	return rec.ID, nil
}

func (w *mongoSearchWriter) InsertResults(_ context.Context, searchID string, results []models.ScoredResult) error {
	if len(results) == 0 {
		return nil
	}
	now := w.store.now()
	docs := make([]interface{}, 0, len(results))
	for i, r := range results {
		if r.ID == "" {
			r.ID = newID()
		}
		r.SearchID = searchID
		if r.CreatedAt.IsZero() {
			r.CreatedAt = now
		}
		// BSON datetime 은 밀리초까지만 보존한다
		r.CreatedAt = r.CreatedAt.UTC().Truncate(time.Millisecond)
		if r.AITags == nil {
			r.AITags = []string{}
		}
		docs = append(docs, resultDoc{ScoredResult: r, Position: i})
	}
	_, err := w.store.col(colResults).InsertMany(w.ctx, docs, options.InsertMany().SetOrdered(true))
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("insert results: %w: %v", ErrDuplicate, err)
	}
	if err != nil {
		return fmt.Errorf("insert results: %w", err)
	}
	return nil
}

func (w *mongoSearchWriter) UpdateResultCount(_ context.Context, searchID string, n int) error {
	res, err := w.store.col(colSearches).UpdateByID(w.ctx, searchID, bson.M{"$set": bson.M{"result_count": n}})
	if err != nil {
		return fmt.Errorf("update result count: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("search %s: %w", searchID, ErrNotFound)
	}
	return nil
}

func (s *MongoStore) ListSearches(ctx context.Context, limit int) ([]models.SearchRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(int64(limit))
	return findAll[models.SearchRecord](ctx, s.col(colSearches), bson.M{}, opts)
}

func (s *MongoStore) GetSearch(ctx context.Context, id string) (models.SearchRecord, error) {
	var rec models.SearchRecord
	err := s.col(colSearches).FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return rec, fmt.Errorf("search %s: %w", id, ErrNotFound)
	}
	return rec, err
}

func (s *MongoStore) ListResults(ctx context.Context, searchID string) ([]models.ScoredResult, error) {
	opts := options.Find().SetSort(bson.D{{Key: "ai_relevance_score", Value: -1}, {Key: "position", Value: 1}})
	docs, err := findAll[resultDoc](ctx, s.col(colResults), bson.M{"search_id": searchID}, opts)
	if err != nil {
		return nil, err
	}
	out := make([]models.ScoredResult, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.ScoredResult)
	}
	return out, nil
}

// DeleteSearch 는 결과와 그 결과를 참조하는 프로젝트 아이템까지 한 트랜잭션에서 지운다.
// 자식부터 지우므로 중간에 실패해도 고아 문서가 남지 않는다.
func (s *MongoStore) DeleteSearch(ctx context.Context, id string) error {
	return s.withTx(ctx, func(sc mongo.SessionContext) error {
		cur, err := s.col(colResults).Find(sc, bson.M{"search_id": id}, options.Find().SetProjection(bson.M{"_id": 1}))
		if err != nil {
			return err
		}
		var ids []struct {
			ID string `bson:"_id"`
		}
		if err := cur.All(sc, &ids); err != nil {
			return err
		}
		resultIDs := make([]string, 0, len(ids))
		for _, r := range ids {
			resultIDs = append(resultIDs, r.ID)
		}
		if len(resultIDs) > 0 {
			if _, err := s.col(colProjectItems).DeleteMany(sc, bson.M{"result_id": bson.M{"$in": resultIDs}}); err != nil {
				return err
			}
		}
		if _, err := s.col(colResults).DeleteMany(sc, bson.M{"search_id": id}); err != nil {
			return err
		}

		res, err := s.col(colSearches).DeleteOne(sc, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if res.DeletedCount == 0 {
			return fmt.Errorf("search %s: %w", id, ErrNotFound)
		}
		return nil
	})
}

func (s *MongoStore) ListProjects(ctx context.Context) ([]models.Project, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	return findAll[models.Project](ctx, s.col(colProjects), bson.M{}, opts)
}

func (s *MongoStore) CreateProject(ctx context.Context, p models.Project) (models.Project, error) {
	now := s.now()
	p.ID = newID()
	p.CreatedAt, p.UpdatedAt = now, now
	if _, err := s.col(colProjects).InsertOne(ctx, p); err != nil {
		return models.Project{}, fmt.Errorf("insert project: %w", err)
	}
	return p, nil
}

func (s *MongoStore) GetProject(ctx context.Context, id string) (models.Project, error) {
	var p models.Project
	err := s.col(colProjects).FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return p, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return p, err
}

func (s *MongoStore) ListProjectItems(ctx context.Context, projectID string) ([]models.ProjectItemDetail, error) {
	opts := options.Find().SetSort(bson.D{{Key: "added_at", Value: -1}})
	items, err := findAll[models.ProjectItem](ctx, s.col(colProjectItems), bson.M{"project_id": projectID}, opts)
	if err != nil {
		return nil, err
	}
	out := []models.ProjectItemDetail{}
	if len(items) == 0 {
		return out, nil
	}

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ResultID)
	}
	docs, err := findAll[resultDoc](ctx, s.col(colResults), bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.ScoredResult, len(docs))
	for _, d := range docs {
		byID[d.ID] = d.ScoredResult
	}
	for _, it := range items {
		r, ok := byID[it.ResultID]
		if !ok {
			continue
		}
		out = append(out, models.ProjectItemDetail{ItemID: it.ID, Notes: it.Notes, AddedAt: it.AddedAt, Result: r})
	}
	return out, nil
}

func (s *MongoStore) UpdateProject(ctx context.Context, id string, upd models.ProjectUpdate) (models.Project, error) {
	set := bson.M{"updated_at": s.now()}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Client != nil {
		set["client"] = *upd.Client
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	res, err := s.col(colProjects).UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return models.Project{}, fmt.Errorf("update project: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.Project{}, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return s.GetProject(ctx, id)
}

func (s *MongoStore) DeleteProject(ctx context.Context, id string) error {
	return s.withTx(ctx, func(sc mongo.SessionContext) error {
		if _, err := s.col(colProjectItems).DeleteMany(sc, bson.M{"project_id": id}); err != nil {
			return err
		}
		res, err := s.col(colProjects).DeleteOne(sc, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if res.DeletedCount == 0 {
			return fmt.Errorf("project %s: %w", id, ErrNotFound)
		}
		return nil
	})
}

func (s *MongoStore) AddProjectItem(ctx context.Context, projectID, resultID, notes string) (models.ProjectItem, error) {
	if _, err := s.GetProject(ctx, projectID); err != nil {
		return models.ProjectItem{}, err
	}
	if err := s.col(colResults).FindOne(ctx, bson.M{"_id": resultID}).Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.ProjectItem{}, fmt.Errorf("result %s: %w", resultID, ErrNotFound)
		}
		return models.ProjectItem{}, err
	}

	item := models.ProjectItem{
		ID:        newID(),
		ProjectID: projectID,
		ResultID:  resultID,
		Notes:     notes,
		AddedAt:   s.now(),
	}
	_, err := s.col(colProjectItems).InsertOne(ctx, item)
	if mongo.IsDuplicateKeyError(err) {
		return models.ProjectItem{}, fmt.Errorf("item already exists in project: %w", ErrDuplicate)
	}
	if err != nil {
		return models.ProjectItem{}, err
	}
	_, err = s.col(colProjects).UpdateByID(ctx, projectID, bson.M{"$set": bson.M{"updated_at": item.AddedAt}})
	return item, err
}

func (s *MongoStore) RemoveProjectItem(ctx context.Context, projectID, itemID string) error {
	res, err := s.col(colProjectItems).DeleteOne(ctx, bson.M{"_id": itemID, "project_id": projectID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("item %s not found in project: %w", itemID, ErrNotFound)
	}
	_, err = s.col(colProjects).UpdateByID(ctx, projectID, bson.M{"$set": bson.M{"updated_at": s.now()}})
	return err
}

func (s *MongoStore) ListTemplates(ctx context.Context) ([]models.Template, error) {
	opts := options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}})
	return findAll[models.Template](ctx, s.col(colTemplates), bson.M{}, opts)
}

func (s *MongoStore) CreateTemplate(ctx context.Context, t models.Template) (models.Template, error) {
	t.ID = newID()
	t.CreatedAt = s.now()
	if len(t.DefaultPlatforms) == 0 {
		t.DefaultPlatforms = models.AllPlatforms()
	}
	if _, err := s.col(colTemplates).InsertOne(ctx, t); err != nil {
		return t, fmt.Errorf("insert template: %w", err)
	}
	return t, nil
}

func (s *MongoStore) DeleteTemplate(ctx context.Context, id string) error {
	res, err := s.col(colTemplates).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("template %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *MongoStore) SeedTemplates(ctx context.Context, templates []models.Template) (int, error) {
	n, err := s.col(colTemplates).CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	inserted := 0
	for _, t := range templates {
		if _, err := s.CreateTemplate(ctx, t); err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

func findAll[T any](ctx context.Context, col *mongo.Collection, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	cur, err := col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
