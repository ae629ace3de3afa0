package usecase

import (
	"context"
	"errors"
	"strings"

	"brainswap/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrSkillAlreadyListed = errors.New("skill already listed")
	ErrLearnSkillNotFound = errors.New("learn skill not found")
)

type UpdateProfileInput struct {
	Name *string
	Bio  *string
}

type UserUsecase interface {
	GetMe(ctx context.Context, userID uuid.UUID) (user.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (user.User, error)
	AddTeachSkill(ctx context.Context, userID uuid.UUID, name string) (user.User, error)
	RemoveTeachSkill(ctx context.Context, userID uuid.UUID, name string) (user.User, error)
	AddLearnSkill(ctx context.Context, userID uuid.UUID, name string) (user.User, error)
	RemoveLearnSkill(ctx context.Context, userID uuid.UUID, name string) (user.User, error)
}

type User struct {
	users user.Repository
}

func NewUserUsecase(users user.Repository) *User {
	return &User{users: users}
}

func (u *User) GetMe(ctx context.Context, userID uuid.UUID) (user.User, error) {
	usr, err := u.get(ctx, userID)
	if err != nil {
		return user.User{}, err
	}
	return sanitize(usr), nil
}

func (u *User) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (user.User, error) {
	usr, err := u.get(ctx, userID)
	if err != nil {
		return user.User{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return user.User{}, ErrInvalidInput
		}
		usr.Name = name
	}
	if in.Bio != nil {
		usr.Bio = strings.TrimSpace(*in.Bio)
	}

	if err := u.users.UpdateProfile(ctx, usr); err != nil {
		return user.User{}, ErrInternal
	}
	return u.GetMe(ctx, userID)
}

// AddTeachSkill appends an unverified teach skill. Verification only ever
// happens through a passing quiz.
func (u *User) AddTeachSkill(ctx context.Context, userID uuid.UUID, name string) (user.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return user.User{}, ErrInvalidInput
	}

	usr, err := u.get(ctx, userID)
	if err != nil {
		return user.User{}, err
	}
	for _, s := range usr.SkillsToTeach {
		if s.Name == name {
			return user.User{}, ErrSkillAlreadyListed
		}
	}

	skills := append(usr.SkillsToTeach, user.TeachSkill{Name: name, Verified: false})
	if err := u.users.SaveTeachSkills(ctx, userID, skills); err != nil {
		return user.User{}, ErrInternal
	}
	return u.GetMe(ctx, userID)
}

func (u *User) RemoveTeachSkill(ctx context.Context, userID uuid.UUID, name string) (user.User, error) {
	usr, err := u.get(ctx, userID)
	if err != nil {
		return user.User{}, err
	}

	skills := make([]user.TeachSkill, 0, len(usr.SkillsToTeach))
	removed := false
	for _, s := range usr.SkillsToTeach {
		if s.Name == name {
			removed = true
			continue
		}
		skills = append(skills, s)
	}
	if !removed {
		return user.User{}, ErrTeachSkillNotFound
	}

	if err := u.users.SaveTeachSkills(ctx, userID, skills); err != nil {
		return user.User{}, ErrInternal
	}
	return u.GetMe(ctx, userID)
}

func (u *User) AddLearnSkill(ctx context.Context, userID uuid.UUID, name string) (user.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return user.User{}, ErrInvalidInput
	}

	usr, err := u.get(ctx, userID)
	if err != nil {
		return user.User{}, err
	}
	for _, s := range usr.SkillsToLearn {
		if s == name {
			return user.User{}, ErrSkillAlreadyListed
		}
	}

	skills := append(usr.SkillsToLearn, name)
	if err := u.users.SaveLearnSkills(ctx, userID, skills); err != nil {
		return user.User{}, ErrInternal
	}
	return u.GetMe(ctx, userID)
}

func (u *User) RemoveLearnSkill(ctx context.Context, userID uuid.UUID, name string) (user.User, error) {
	usr, err := u.get(ctx, userID)
	if err != nil {
		return user.User{}, err
	}

	skills := make([]string, 0, len(usr.SkillsToLearn))
	removed := false
	for _, s := range usr.SkillsToLearn {
		if s == name {
			removed = true
			continue
		}
		skills = append(skills, s)
	}
	if !removed {
		return user.User{}, ErrLearnSkillNotFound
	}

	if err := u.users.SaveLearnSkills(ctx, userID, skills); err != nil {
		return user.User{}, ErrInternal
	}
	return u.GetMe(ctx, userID)
}

func (u *User) get(ctx context.Context, userID uuid.UUID) (user.User, error) {
	if userID == uuid.Nil {
		return user.User{}, ErrUnauthorized
	}
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, ErrFetchFailed
	}
	return usr, nil
}

func sanitize(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
