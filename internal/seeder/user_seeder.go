package seeder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"brainswap/internal/docstore"
	"brainswap/internal/domain/user"
	"brainswap/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// demoPassword is the login for every seeded account. Dev environments only.
const demoPassword = "brainswap-demo"

type demoUser struct {
	name  string
	email string
	bio   string
	teach []user.TeachSkill
	learn []string
}

var demoUsers = []demoUser{
	{
		name:  "Ana Silva",
		email: "ana@example.com",
		bio:   "Classical guitarist, wants to order tapas properly",
		teach: []user.TeachSkill{{Name: "Guitar", Verified: true}},
		learn: []string{"Spanish"},
	},
	{
		name:  "Carla Ortiz",
		email: "carla@example.com",
		bio:   "Madrid born, hopeless with chords",
		teach: []user.TeachSkill{{Name: "Spanish", Verified: true}, {Name: "Cooking"}},
		learn: []string{"Guitar"},
	},
	{
		name:  "Ben Walker",
		email: "ben@example.com",
		bio:   "Photographer learning to cook",
		teach: []user.TeachSkill{{Name: "Photography"}},
		learn: []string{"Cooking"},
	},
}

// connectedPairs are indexes into demoUsers that start out connected.
var connectedPairs = [][2]int{{0, 1}, {1, 2}}

// UserSeeder writes a small cohort of connected users so matching, chat and
// proposals have something to work with on a fresh database.
type UserSeeder struct{}

func (UserSeeder) Name() string { return "users" }

func (UserSeeder) Run(ctx context.Context, store docstore.Store) error {
	repo := repository.NewDocUserRepository(store, nil)

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	ids := make([]uuid.UUID, len(demoUsers))
	for i, d := range demoUsers {
		existing, err := repo.GetByEmail(ctx, d.email)
		if err == nil {
			ids[i] = existing.ID
			continue
		}
		if !errors.Is(err, user.ErrNotFound) {
			return fmt.Errorf("lookup %s: %w", d.email, err)
		}

		u := user.User{
			ID:            uuid.New(),
			Name:          d.name,
			Email:         d.email,
			PasswordHash:  string(hash),
			Bio:           d.bio,
			SkillsToTeach: d.teach,
			SkillsToLearn: d.learn,
			CreatedAt:     time.Now().UTC(),
		}
		if err := repo.Create(ctx, u); err != nil {
			return fmt.Errorf("create %s: %w", d.email, err)
		}
		ids[i] = u.ID
	}

	for _, pair := range connectedPairs {
		a, b := ids[pair[0]], ids[pair[1]]
		if err := repo.AddConnection(ctx, a, b); err != nil {
			return err
		}
		if err := repo.AddConnection(ctx, b, a); err != nil {
			return err
		}
	}
	return nil
}
