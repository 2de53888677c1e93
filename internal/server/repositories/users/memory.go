package users

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophsocial/internal/common"
	"github.com/dmitrijs2005/gophsocial/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps users in process memory. Intended for development
// and tests; data is lost on restart.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*models.User
	byEmail map[string]string
	now     func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]*models.User),
		byEmail: make(map[string]string),
		now:     time.Now,
	}
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[user.Email]; taken {
		return nil, common.ErrorAlreadyExists
	}

	stored := user.Clone()
	stored.ID = uuid.NewString()
	stored.Date = r.now().UTC()
	if stored.Followers == nil {
		stored.Followers = []models.Follower{}
	}

	r.byID[stored.ID] = stored
	r.byEmail[stored.Email] = stored.ID

	return stored.Clone(), nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return r.byID[id].Clone(), nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, common.ErrorNotFound
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[uid.String()]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u.Clone(), nil
}

func (r *MemoryRepository) AddFollower(ctx context.Context, userID, followerID string, at time.Time) (*models.User, error) {
	userID, followerID, err := parseIDs(userID, followerID)
	if err != nil {
		return nil, err
	}
	if userID == followerID {
		return nil, common.ErrSelfFollow
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if !u.AddFollower(followerID, at) {
		return nil, common.ErrAlreadyFollowed
	}
	return u.Clone(), nil
}

func (r *MemoryRepository) RemoveFollower(ctx context.Context, userID, followerID string) (*models.User, error) {
	userID, followerID, err := parseIDs(userID, followerID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if !u.RemoveFollower(followerID) {
		return nil, common.ErrNotFollowed
	}
	return u.Clone(), nil
}

// Ping reports only context cancellation.
func (r *MemoryRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

var _ Repository = (*MemoryRepository)(nil)
