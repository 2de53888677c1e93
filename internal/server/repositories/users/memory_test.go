package users

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophsocial/internal/common"
	"github.com/dmitrijs2005/gophsocial/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	u, err := r.Create(ctx, &models.User{Name: "B", Email: "b@x.com"})
	require.NoError(t, err)

	someone, err := r.Create(ctx, &models.User{Name: "S", Email: "s@x.com"})
	require.NoError(t, err)

	got, err := r.AddFollower(ctx, u.ID, someone.ID, time.Now())
	require.NoError(t, err)
	got.Followers[0].User = "tampered"
	got.Name = "tampered"

	stored, err := r.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "B", stored.Name)
	assert.Equal(t, someone.ID, stored.Followers[0].User)
}

func TestMemoryRepository_CreateSetsDate(t *testing.T) {
	r := NewMemoryRepository()
	fixed := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return fixed }

	u, err := r.Create(context.Background(), &models.User{Email: "x@x.com"})
	require.NoError(t, err)
	assert.Equal(t, fixed, u.Date)
	assert.NotNil(t, u.Followers)
}

func TestMemoryRepository_Ping(t *testing.T) {
	r := NewMemoryRepository()
	assert.NoError(t, r.Ping(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, r.Ping(ctx))
}

func TestMemoryRepository_AcceptsUppercaseIDs(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	a, err := r.Create(ctx, &models.User{Email: "a@x.com"})
	require.NoError(t, err)
	b, err := r.Create(ctx, &models.User{Email: "b@x.com"})
	require.NoError(t, err)

	got, err := r.GetByID(ctx, strings.ToUpper(b.ID))
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	got, err = r.AddFollower(ctx, strings.ToUpper(b.ID), strings.ToUpper(a.ID), time.Now())
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.Followers[0].User)

	_, err = r.AddFollower(ctx, b.ID, a.ID, time.Now())
	assert.ErrorIs(t, err, common.ErrAlreadyFollowed)
}
