package dto

import (
	"brainswap/internal/domain/matching"

	"github.com/google/uuid"
)

type MutualMatchResponse struct {
	UserID            uuid.UUID `json:"user_id"`
	DisplayName       string    `json:"display_name"`
	TeachesWhatILearn []string  `json:"teaches_what_i_learn"`
	WantsWhatITeach   []string  `json:"wants_what_i_teach"`
}

func FromMutualMatches(matches []matching.MutualMatch) []MutualMatchResponse {
	out := make([]MutualMatchResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, MutualMatchResponse{
			UserID:            m.UserID,
			DisplayName:       m.DisplayName,
			TeachesWhatILearn: m.TeachesWhatILearn,
			WantsWhatITeach:   m.WantsWhatITeach,
		})
	}
	return out
}
