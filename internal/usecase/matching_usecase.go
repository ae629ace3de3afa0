package usecase

import (
	"context"
	"errors"
	"log"

	"brainswap/internal/domain/matching"
	"brainswap/internal/domain/user"

	"github.com/google/uuid"
)

// ErrFetchFailed is any document-store read failure. The matcher fails
// closed: partial results computed before the failure are discarded.
var ErrFetchFailed = errors.New("fetch failed")

type MatchingUsecase interface {
	ListMutualMatches(ctx context.Context, userID uuid.UUID) ([]matching.MutualMatch, error)
}

type Matching struct {
	users  user.Repository
	logger *log.Logger
}

func NewMatchingUsecase(users user.Repository, logger *log.Logger) *Matching {
	if logger == nil {
		logger = log.Default()
	}
	return &Matching{users: users, logger: logger}
}

func (u *Matching) ListMutualMatches(ctx context.Context, userID uuid.UUID) ([]matching.MutualMatch, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	me, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrFetchFailed
	}

	if len(me.Connections) == 0 {
		return []matching.MutualMatch{}, nil
	}

	conns, err := u.users.BatchGetByIDs(ctx, me.Connections)
	if err != nil {
		u.logger.Printf("[Matching] connection fetch failed user=%s: %v", userID, err)
		return nil, ErrFetchFailed
	}

	profiles := make([]matching.Profile, 0, len(conns))
	for _, c := range conns {
		profiles = append(profiles, matching.Profile{
			UserID:      c.ID,
			DisplayName: c.Name,
			TeachNames:  c.TeachSkillNames(),
			LearnNames:  c.SkillsToLearn,
		})
	}

	myProfile := matching.Profile{
		UserID:     me.ID,
		TeachNames: me.TeachSkillNames(),
		LearnNames: me.SkillsToLearn,
	}
	return matching.Mutual(myProfile, profiles), nil
}
