package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"brainswap/internal/docstore"
	"brainswap/internal/domain/user"

	"github.com/google/uuid"
)

const usersCollection = "users"

type DocUserRepository struct {
	store  docstore.Store
	logger *log.Logger
}

func NewDocUserRepository(store docstore.Store, logger *log.Logger) *DocUserRepository {
	if logger == nil {
		logger = log.Default()
	}
	return &DocUserRepository{store: store, logger: logger}
}

func (r *DocUserRepository) Create(ctx context.Context, u user.User) error {
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	if u.SkillsToTeach == nil {
		u.SkillsToTeach = []user.TeachSkill{}
	}
	if u.SkillsToLearn == nil {
		u.SkillsToLearn = []string{}
	}
	if u.Connections == nil {
		u.Connections = []uuid.UUID{}
	}

	doc, err := docstore.ToDocument(u)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, usersCollection, u.ID.String(), doc, false)
}

func (r *DocUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	snap, err := r.store.Get(ctx, usersCollection, id.String())
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return decodeUser(snap)
}

func (r *DocUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	snaps, err := r.store.Query(ctx, usersCollection, "email", docstore.OpEqual, email)
	if err != nil {
		return user.User{}, err
	}
	if len(snaps) == 0 {
		return user.User{}, user.ErrNotFound
	}
	return decodeUser(snaps[0])
}

func (r *DocUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, user.ErrNotFound) {
		return false, nil
	}
	return false, err
}

func (r *DocUserRepository) BatchGetByIDs(ctx context.Context, ids []uuid.UUID) ([]user.User, error) {
	if len(ids) == 0 {
		return []user.User{}, nil
	}

	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.String())
	}

	snaps, err := batchFetch(ctx, r.store, usersCollection, raw, docstore.MaxInValues)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]user.User, len(snaps))
	for _, snap := range snaps {
		u, err := decodeUser(snap)
		if err != nil {
			return nil, err
		}
		byID[snap.ID] = u
	}

	// Flatten back into ids order; ids without a document are skipped, not
	// errored.
	out := make([]user.User, 0, len(ids))
	for _, id := range raw {
		u, ok := byID[id]
		if !ok {
			r.logger.Printf("[Users] skipping dangling connection id=%s", id)
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (r *DocUserRepository) UpdateProfile(ctx context.Context, u user.User) error {
	fields := docstore.Document{
		"name":            u.Name,
		"bio":             u.Bio,
		"skills_to_teach": u.SkillsToTeach,
		"skills_to_learn": u.SkillsToLearn,
		"updated_at":      time.Now().UTC(),
	}
	return r.set(ctx, u.ID, fields)
}

func (r *DocUserRepository) SaveTeachSkills(ctx context.Context, id uuid.UUID, skills []user.TeachSkill) error {
	if skills == nil {
		skills = []user.TeachSkill{}
	}
	return r.set(ctx, id, docstore.Document{
		"skills_to_teach": skills,
		"updated_at":      time.Now().UTC(),
	})
}

func (r *DocUserRepository) SaveLearnSkills(ctx context.Context, id uuid.UUID, skills []string) error {
	if skills == nil {
		skills = []string{}
	}
	return r.set(ctx, id, docstore.Document{
		"skills_to_learn": skills,
		"updated_at":      time.Now().UTC(),
	})
}

func (r *DocUserRepository) AddConnection(ctx context.Context, id, other uuid.UUID) error {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u.HasConnection(other) {
		return nil
	}
	conns := append(u.Connections, other)
	return r.set(ctx, id, docstore.Document{
		"connections": conns,
		"updated_at":  time.Now().UTC(),
	})
}

// set merge-writes fields, leaving everything else on the document alone.
func (r *DocUserRepository) set(ctx context.Context, id uuid.UUID, fields docstore.Document) error {
	doc, err := docstore.ToDocument(fields)
	if err != nil {
		return err
	}
	err = r.store.Set(ctx, usersCollection, id.String(), doc, true)
	if err != nil {
		return err
	}
	return nil
}

func decodeUser(snap docstore.Snapshot) (user.User, error) {
	var u user.User
	if err := snap.DataTo(&u); err != nil {
		return user.User{}, err
	}
	return u, nil
}

var _ user.Repository = (*DocUserRepository)(nil)
