package db

import (
	"context"
	"fmt"

	"creative-radar/config"
	"creative-radar/models"
	"creative-radar/repositories"
)

// Open 은 storage.driver 에 맞는 저장소를 열고 기본 템플릿을 시딩한다.
func Open(ctx context.Context, cfg config.StorageConfig) (repositories.Store, error) {
	var store repositories.Store
	switch cfg.Driver {
	case "", "sqlite":
		conn, err := OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		store = repositories.NewSQLiteStore(conn)
	case "mongo":
		cl, database, err := OpenMongo(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("open mongo: %w", err)
		}
		store = repositories.NewMongoStore(cl, database)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}

	n, err := store.SeedTemplates(ctx, models.DefaultTemplates())
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("seed templates: %w", err)
	}
	if n > 0 {
		config.Logger.Infof("seeded %d default templates", n)
	}
	return store, nil
}
