// Package repomanager opens the configured store and vends the repositories
// built on top of it.
package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophsocial/internal/server/config"
	"github.com/dmitrijs2005/gophsocial/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users() users.Repository
	// Ping reports whether the underlying store is reachable.
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// New connects to the backend selected by cfg.Storage and prepares its schema.
func New(ctx context.Context, cfg *config.Config) (RepositoryManager, error) {
	var (
		m   RepositoryManager
		err error
	)

	switch cfg.Storage {
	case config.StorageMongo:
		m, err = NewMongoRepositoryManager(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case config.StoragePostgres:
		m, err = NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
	case config.StorageMemory:
		m = NewMemoryRepositoryManager()
	default:
		err = fmt.Errorf("unknown storage %q", cfg.Storage)
	}

	if err != nil {
		return nil, err
	}
	return m, nil
}
