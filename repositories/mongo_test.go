package repositories_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"creative-radar/config"
	"creative-radar/db"
	"creative-radar/models"
	"creative-radar/repositories"
)

// newMongoStore 는 MONGO_URI 가 가리키는 레플리카셋에 테스트 전용 DB 를 만든다.
func newMongoStore(t *testing.T) (*repositories.MongoStore, *mongo.Database) {
	t.Helper()
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set; skipping MongoDB integration test")
	}
	ctx := context.Background()
	name := fmt.Sprintf("creative_radar_test_%d", time.Now().UnixNano())
	client, database, err := db.OpenMongo(ctx, config.StorageConfig{MongoURI: uri, MongoDB: name})
	require.NoError(t, err)
	store := repositories.NewMongoStore(client, database)
	t.Cleanup(func() {
		_ = database.Drop(context.Background())
		store.Close()
	})
	return store, database
}

func TestMongoRunInTxRollsBack(t *testing.T) {
	ctx := context.Background()
	store, database := newMongoStore(t)

	dup := scored("youtube", "dup", 0.5)
	dup.ID = "fixed-id"

	var searchID string
	err := store.RunInTx(ctx, func(tx repositories.SearchWriter) error {
		id, err := tx.CreateSearch(ctx, "brief", "{}", []string{"youtube"})
		if err != nil {
			return err
		}
		searchID = id
		return tx.InsertResults(ctx, id, []models.ScoredResult{scored("youtube", "one", 0.5), dup, dup})
	})
	require.ErrorIs(t, err, repositories.ErrDuplicate)

	_, err = store.GetSearch(ctx, searchID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	n, err := database.Collection("results").CountDocuments(ctx, bson.M{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMongoResultRoundTripKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	store, _ := newMongoStore(t)

	in := scored("youtube", "a", 0.7)
	in.CreatedAt = time.Date(2026, 3, 1, 10, 20, 30, 123456789, time.UTC)
	searchID := saveSearch(t, store, in)

	got, err := store.ListResults(ctx, searchID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].CreatedAt.Equal(in.CreatedAt.Truncate(time.Millisecond)), "created_at %v", got[0].CreatedAt)

	want := in
	want.ID, want.SearchID, want.CreatedAt = got[0].ID, searchID, got[0].CreatedAt
	assert.Equal(t, want, got[0])
}

func TestMongoDeleteSearchCascades(t *testing.T) {
	ctx := context.Background()
	store, database := newMongoStore(t)
	searchID := saveSearch(t, store, scored("youtube", "a", 0.5), scored("tiktok", "b", 0.4))
	keepID := saveSearch(t, store, scored("youtube", "keep", 0.5))
	results, err := store.ListResults(ctx, searchID)
	require.NoError(t, err)
	kept, err := store.ListResults(ctx, keepID)
	require.NoError(t, err)

	project, err := store.CreateProject(ctx, models.Project{Name: "Board"})
	require.NoError(t, err)
	_, err = store.AddProjectItem(ctx, project.ID, results[0].ID, "")
	require.NoError(t, err)
	_, err = store.AddProjectItem(ctx, project.ID, kept[0].ID, "")
	require.NoError(t, err)

	require.NoError(t, store.DeleteSearch(ctx, searchID))

	n, err := database.Collection("results").CountDocuments(ctx, bson.M{"search_id": searchID})
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = database.Collection("project_items").CountDocuments(ctx, bson.M{"project_id": project.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n, "only the item of the surviving search remains")

	assert.ErrorIs(t, store.DeleteSearch(ctx, searchID), repositories.ErrNotFound)
}

func TestMongoDeleteProjectCascades(t *testing.T) {
	ctx := context.Background()
	store, database := newMongoStore(t)
	searchID := saveSearch(t, store, scored("youtube", "a", 0.5))
	results, err := store.ListResults(ctx, searchID)
	require.NoError(t, err)

	project, err := store.CreateProject(ctx, models.Project{Name: "Board"})
	require.NoError(t, err)
	_, err = store.AddProjectItem(ctx, project.ID, results[0].ID, "note")
	require.NoError(t, err)

	require.NoError(t, store.DeleteProject(ctx, project.ID))

	_, err = store.GetProject(ctx, project.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	n, err := database.Collection("project_items").CountDocuments(ctx, bson.M{"project_id": project.ID})
	require.NoError(t, err)
	assert.Zero(t, n)
	// 결과 자체는 검색에 속하므로 남는다
	left, err := store.ListResults(ctx, searchID)
	require.NoError(t, err)
	assert.Len(t, left, 1)

	assert.ErrorIs(t, store.DeleteProject(ctx, project.ID), repositories.ErrNotFound)
}
