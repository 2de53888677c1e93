package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophsocial/internal/common"
	"github.com/dmitrijs2005/gophsocial/internal/server/models"
	"github.com/dmitrijs2005/gophsocial/internal/server/repositories/repomanager"
)

// FollowService maintains the follower lists. Each operation is a single
// conditional write in the store, so concurrent requests cannot produce
// duplicate records or lose updates.
type FollowService struct {
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewFollowService(m repomanager.RepositoryManager) *FollowService {
	return &FollowService{repomanager: m, now: time.Now}
}

// Follow records actorID as a follower of targetID and returns the updated
// target. The store repeats the self-follow check on canonical ids.
func (s *FollowService) Follow(ctx context.Context, actorID, targetID string) (*models.User, error) {
	if actorID == targetID {
		return nil, common.ErrSelfFollow
	}

	user, err := s.repomanager.Users().AddFollower(ctx, targetID, actorID, s.now().UTC())
	if err != nil {
		return nil, mapRelationshipError(err)
	}
	return user, nil
}

// Unfollow removes actorID from the followers of targetID and returns the
// updated target.
func (s *FollowService) Unfollow(ctx context.Context, actorID, targetID string) (*models.User, error) {
	user, err := s.repomanager.Users().RemoveFollower(ctx, targetID, actorID)
	if err != nil {
		return nil, mapRelationshipError(err)
	}
	return user, nil
}

func mapRelationshipError(err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return common.ErrorNotFound
	case errors.Is(err, common.ErrAlreadyFollowed):
		return common.ErrAlreadyFollowed
	case errors.Is(err, common.ErrNotFollowed):
		return common.ErrNotFollowed
	case errors.Is(err, common.ErrSelfFollow):
		return common.ErrSelfFollow
	default:
		return fmt.Errorf("error updating followers: %w", err)
	}
}
