// Package users persists user accounts and their follower lists.
//
// Three implementations share the Repository contract: MongoDB (the default
// document store), PostgreSQL and an in-process map. Follower mutations are
// single conditional writes in every backend, so concurrent follow requests
// can neither lose updates nor create duplicate records.
package users

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophsocial/internal/server/models"
)

type Repository interface {
	// Create stores a new user and fills in ID and Date. A taken email
	// yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail expects an already normalised email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns common.ErrorNotFound for unknown or malformed ids.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// AddFollower prepends followerID to userID's followers unless it is
	// already there (common.ErrAlreadyFollowed) and returns the updated user.
	// Ids are compared in canonical form; following oneself yields
	// common.ErrSelfFollow.
	AddFollower(ctx context.Context, userID, followerID string, at time.Time) (*models.User, error)

	// RemoveFollower removes followerID from userID's followers
	// (common.ErrNotFollowed when absent) and returns the updated user.
	RemoveFollower(ctx context.Context, userID, followerID string) (*models.User, error)
}
