package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("user not found")

type Repository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// BatchGetByIDs resolves many users by id. Ids that no longer resolve to
	// a document are skipped, not errored; result order follows ids order.
	BatchGetByIDs(ctx context.Context, ids []uuid.UUID) ([]User, error)

	// UpdateProfile merge-writes name/bio and the skill lists, leaving
	// credentials untouched.
	UpdateProfile(ctx context.Context, u User) error

	// SaveTeachSkills merge-writes only the skills_to_teach list.
	SaveTeachSkills(ctx context.Context, id uuid.UUID, skills []TeachSkill) error

	// SaveLearnSkills merge-writes only the skills_to_learn list.
	SaveLearnSkills(ctx context.Context, id uuid.UUID, skills []string) error

	// AddConnection appends other to id's connections if absent.
	AddConnection(ctx context.Context, id, other uuid.UUID) error
}
