package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophsocial/internal/server/config"
	"github.com/dmitrijs2005/gophsocial/internal/server/models"
	usersrepo "github.com/dmitrijs2005/gophsocial/internal/server/repositories/users"
)

// --- helpers ---

type fakeRepoManager struct {
	users usersrepo.Repository
}

func (m *fakeRepoManager) Users() usersrepo.Repository     { return m.users }
func (m *fakeRepoManager) Ping(ctx context.Context) error  { return nil }
func (m *fakeRepoManager) Close(ctx context.Context) error { return nil }

// fakeUsersRepo returns canned results and counts calls.
type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	getOut *models.User
	getErr error

	followOut *models.User
	followErr error

	calls int
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.calls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.calls++
	return f.getOut, f.getErr
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	f.calls++
	return f.getOut, f.getErr
}

func (f *fakeUsersRepo) AddFollower(ctx context.Context, userID, followerID string, at time.Time) (*models.User, error) {
	f.calls++
	return f.followOut, f.followErr
}

func (f *fakeUsersRepo) RemoveFollower(ctx context.Context, userID, followerID string) (*models.User, error) {
	f.calls++
	return f.followOut, f.followErr
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:  "k",
		TokenTTL:   time.Hour,
		BcryptCost: 4,
	}
}

func newMemoryServices(t *testing.T) (*UserService, *FollowService) {
	t.Helper()
	rm := &fakeRepoManager{users: usersrepo.NewMemoryRepository()}
	return NewUserService(rm, testConfig()), NewFollowService(rm)
}
