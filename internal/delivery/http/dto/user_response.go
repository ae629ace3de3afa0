package dto

import (
	"time"

	"brainswap/internal/domain/user"

	"github.com/google/uuid"
)

type TeachSkillResponse struct {
	Name     string `json:"name"`
	Verified bool   `json:"verified"`
}

type UserProfileResponse struct {
	ID            uuid.UUID            `json:"id"`
	Name          string               `json:"name"`
	Email         string               `json:"email"`
	Bio           string               `json:"bio"`
	SkillsToTeach []TeachSkillResponse `json:"skills_to_teach"`
	SkillsToLearn []string             `json:"skills_to_learn"`
	Connections   []uuid.UUID          `json:"connections"`
	CreatedAt     time.Time            `json:"created_at"`
}

// ConnectionProfileResponse is the trimmed view of somebody else's profile.
type ConnectionProfileResponse struct {
	ID            uuid.UUID            `json:"id"`
	Name          string               `json:"name"`
	Bio           string               `json:"bio"`
	SkillsToTeach []TeachSkillResponse `json:"skills_to_teach"`
	SkillsToLearn []string             `json:"skills_to_learn"`
}

func FromUser(u user.User) UserProfileResponse {
	out := UserProfileResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Bio:           u.Bio,
		SkillsToTeach: teachSkills(u.SkillsToTeach),
		SkillsToLearn: u.SkillsToLearn,
		Connections:   u.Connections,
		CreatedAt:     u.CreatedAt,
	}
	if out.SkillsToLearn == nil {
		out.SkillsToLearn = []string{}
	}
	if out.Connections == nil {
		out.Connections = []uuid.UUID{}
	}
	return out
}

func FromConnection(u user.User) ConnectionProfileResponse {
	out := ConnectionProfileResponse{
		ID:            u.ID,
		Name:          u.Name,
		Bio:           u.Bio,
		SkillsToTeach: teachSkills(u.SkillsToTeach),
		SkillsToLearn: u.SkillsToLearn,
	}
	if out.SkillsToLearn == nil {
		out.SkillsToLearn = []string{}
	}
	return out
}

func teachSkills(skills []user.TeachSkill) []TeachSkillResponse {
	out := make([]TeachSkillResponse, 0, len(skills))
	for _, s := range skills {
		out = append(out, TeachSkillResponse{Name: s.Name, Verified: s.Verified})
	}
	return out
}
