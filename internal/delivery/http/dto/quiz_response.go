package dto

import (
	"brainswap/internal/usecase"

	"github.com/google/uuid"
)

type QuizQuestionResponse struct {
	Index           int      `json:"index"`
	Question        string   `json:"question"`
	Options         []string `json:"options"`
	TimeLeftSeconds int      `json:"time_left_seconds"`
}

type QuizSessionResponse struct {
	SessionID      uuid.UUID            `json:"session_id"`
	Skill          string               `json:"skill"`
	TotalQuestions int                  `json:"total_questions"`
	Question       QuizQuestionResponse `json:"question"`
}

type QuizAnswerResponse struct {
	Index         int    `json:"index"`
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer"`
	LastQuestion  bool   `json:"last_question"`
}

type QuizVerdictResponse struct {
	CorrectCount      int   `json:"correct_count"`
	Total             int   `json:"total"`
	Passed            bool  `json:"passed"`
	VerifiedPersisted *bool `json:"verified_persisted,omitempty"`
}

type QuizStatusResponse struct {
	SessionID uuid.UUID             `json:"session_id"`
	Skill     string                `json:"skill"`
	State     string                `json:"state"`
	Question  *QuizQuestionResponse `json:"question,omitempty"`
	Verdict   *QuizVerdictResponse  `json:"verdict,omitempty"`
}

func FromQuizSession(v usecase.QuizSessionView) QuizSessionResponse {
	return QuizSessionResponse{
		SessionID:      v.SessionID,
		Skill:          v.Skill,
		TotalQuestions: v.TotalQuestions,
		Question:       fromQuizQuestion(v.Question),
	}
}

func FromQuizAnswer(v usecase.QuizAnswerView) QuizAnswerResponse {
	return QuizAnswerResponse{
		Index:         v.Index,
		Correct:       v.Correct,
		CorrectAnswer: v.CorrectAnswer,
		LastQuestion:  v.LastQuestion,
	}
}

func FromQuizStatus(v usecase.QuizStatusView) QuizStatusResponse {
	out := QuizStatusResponse{
		SessionID: v.SessionID,
		Skill:     v.Skill,
		State:     v.State,
	}
	if v.Question != nil {
		q := fromQuizQuestion(*v.Question)
		out.Question = &q
	}
	if v.Verdict != nil {
		out.Verdict = &QuizVerdictResponse{
			CorrectCount:      v.Verdict.CorrectCount,
			Total:             v.Verdict.Total,
			Passed:            v.Verdict.Passed,
			VerifiedPersisted: v.Verdict.VerifiedPersisted,
		}
	}
	return out
}

func fromQuizQuestion(v usecase.QuizQuestionView) QuizQuestionResponse {
	return QuizQuestionResponse{
		Index:           v.Index,
		Question:        v.Question,
		Options:         v.Options,
		TimeLeftSeconds: v.TimeLeftSeconds,
	}
}
