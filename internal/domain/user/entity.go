package user

import (
	"time"

	"github.com/google/uuid"
)

// TeachSkill is a skill a user offers to teach. Verified flips to true only
// after a passing quiz verdict for that exact skill name.
type TeachSkill struct {
	Name     string `json:"name"`
	Verified bool   `json:"verified"`
}

// User is the profile document. Connections is kept symmetric by the
// request-acceptance flow: if A lists B, B lists A. Nothing in the store
// enforces that.
type User struct {
	ID            uuid.UUID    `json:"id"`
	Name          string       `json:"name"`
	Email         string       `json:"email"`
	PasswordHash  string       `json:"password_hash,omitempty"`
	Bio           string       `json:"bio,omitempty"`
	SkillsToTeach []TeachSkill `json:"skills_to_teach"`
	SkillsToLearn []string     `json:"skills_to_learn"`
	Connections   []uuid.UUID  `json:"connections"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// TeachSkillNames returns the names of SkillsToTeach in list order.
func (u User) TeachSkillNames() []string {
	names := make([]string, 0, len(u.SkillsToTeach))
	for _, s := range u.SkillsToTeach {
		names = append(names, s.Name)
	}
	return names
}

// HasConnection reports whether other is listed in Connections.
func (u User) HasConnection(other uuid.UUID) bool {
	for _, c := range u.Connections {
		if c == other {
			return true
		}
	}
	return false
}

// VerifyTeachSkill marks the teach skill with the exact given name as
// verified. Returns false if no such skill exists.
func (u *User) VerifyTeachSkill(name string) bool {
	for i := range u.SkillsToTeach {
		if u.SkillsToTeach[i].Name == name {
			u.SkillsToTeach[i].Verified = true
			return true
		}
	}
	return false
}
