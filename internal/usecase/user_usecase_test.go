package usecase

import (
	"context"
	"errors"
	"testing"

	"brainswap/internal/domain/user"

	"github.com/google/uuid"
)

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	me := user.User{ID: uuid.New(), Name: "Ana", Bio: "old bio", PasswordHash: "hash"}
	uc := NewUserUsecase(newMockUserRepo(me))

	bio := "teaches guitar"
	got, err := uc.UpdateProfile(context.Background(), me.ID, UpdateProfileInput{Bio: &bio})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Name != "Ana" {
		t.Fatalf("name must be untouched, got %q", got.Name)
	}
	if got.Bio != "teaches guitar" {
		t.Fatalf("unexpected bio %q", got.Bio)
	}
	if got.PasswordHash != "" {
		t.Fatalf("password hash leaked")
	}
}

func TestUpdateProfile_BlankNameRejected(t *testing.T) {
	me := user.User{ID: uuid.New(), Name: "Ana"}
	uc := NewUserUsecase(newMockUserRepo(me))

	blank := "   "
	if _, err := uc.UpdateProfile(context.Background(), me.ID, UpdateProfileInput{Name: &blank}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAddTeachSkill_StartsUnverified(t *testing.T) {
	me := user.User{ID: uuid.New()}
	uc := NewUserUsecase(newMockUserRepo(me))

	got, err := uc.AddTeachSkill(context.Background(), me.ID, "Guitar")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got.SkillsToTeach) != 1 {
		t.Fatalf("unexpected skills: %+v", got.SkillsToTeach)
	}
	if got.SkillsToTeach[0].Verified {
		t.Fatalf("new skill must start unverified")
	}

	if _, err := uc.AddTeachSkill(context.Background(), me.ID, "Guitar"); !errors.Is(err, ErrSkillAlreadyListed) {
		t.Fatalf("expected ErrSkillAlreadyListed, got %v", err)
	}
}

func TestRemoveTeachSkill_DropsVerificationWithIt(t *testing.T) {
	me := user.User{
		ID: uuid.New(),
		SkillsToTeach: []user.TeachSkill{
			{Name: "Guitar", Verified: true},
			{Name: "Piano"},
		},
	}
	repo := newMockUserRepo(me)
	uc := NewUserUsecase(repo)

	got, err := uc.RemoveTeachSkill(context.Background(), me.ID, "Guitar")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got.SkillsToTeach) != 1 || got.SkillsToTeach[0].Name != "Piano" {
		t.Fatalf("unexpected skills: %+v", got.SkillsToTeach)
	}

	if _, err := uc.RemoveTeachSkill(context.Background(), me.ID, "Guitar"); !errors.Is(err, ErrTeachSkillNotFound) {
		t.Fatalf("expected ErrTeachSkillNotFound, got %v", err)
	}
}

func TestLearnSkills_AddAndRemove(t *testing.T) {
	me := user.User{ID: uuid.New(), SkillsToLearn: []string{"Spanish"}}
	uc := NewUserUsecase(newMockUserRepo(me))

	got, err := uc.AddLearnSkill(context.Background(), me.ID, "Guitar")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got.SkillsToLearn) != 2 {
		t.Fatalf("unexpected learn skills: %v", got.SkillsToLearn)
	}

	if _, err := uc.AddLearnSkill(context.Background(), me.ID, "Spanish"); !errors.Is(err, ErrSkillAlreadyListed) {
		t.Fatalf("expected ErrSkillAlreadyListed, got %v", err)
	}

	got, err = uc.RemoveLearnSkill(context.Background(), me.ID, "Spanish")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got.SkillsToLearn) != 1 || got.SkillsToLearn[0] != "Guitar" {
		t.Fatalf("unexpected learn skills: %v", got.SkillsToLearn)
	}

	if _, err := uc.RemoveLearnSkill(context.Background(), me.ID, "Spanish"); !errors.Is(err, ErrLearnSkillNotFound) {
		t.Fatalf("expected ErrLearnSkillNotFound, got %v", err)
	}
}
