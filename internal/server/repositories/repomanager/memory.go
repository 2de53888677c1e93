package repomanager

import (
	"context"

	"github.com/dmitrijs2005/gophsocial/internal/server/repositories/users"
)

// MemoryRepositoryManager keeps everything in process memory.
type MemoryRepositoryManager struct {
	users *users.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{users: users.NewMemoryRepository()}
}

func (m *MemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *MemoryRepositoryManager) Ping(ctx context.Context) error {
	return m.users.Ping(ctx)
}

func (m *MemoryRepositoryManager) Close(ctx context.Context) error {
	return nil
}

var _ RepositoryManager = (*MemoryRepositoryManager)(nil)
