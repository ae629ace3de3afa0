package usecase

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"brainswap/internal/domain/quiz"
	"brainswap/internal/domain/user"
	"brainswap/internal/infrastructure/cache"
	"brainswap/internal/infrastructure/quizgen"

	"github.com/google/uuid"
)

var (
	ErrQuizNotReady        = errors.New("no quiz cached for skill")
	ErrQuizGenUnavailable  = errors.New("quiz generator unavailable")
	ErrTeachSkillNotFound  = errors.New("teach skill not found")
	ErrQuizSessionNotFound = errors.New("quiz session not found")
)

// QuizCache is the slice of the cache the quiz flow needs.
type QuizCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// verdictRetention keeps a finished session around long enough for a status
// poll to collect the verdict; after that the session is purged whether or
// not anyone ever asked.
const verdictRetention = time.Minute

type QuizQuestionView struct {
	Index           int
	Question        string
	Options         []string
	TimeLeftSeconds int
}

type QuizSessionView struct {
	SessionID      uuid.UUID
	Skill          string
	TotalQuestions int
	Question       QuizQuestionView
}

type QuizAnswerView struct {
	Index         int
	Correct       bool
	CorrectAnswer string
	LastQuestion  bool
}

type QuizVerdictView struct {
	CorrectCount int
	Total        int
	Passed       bool
	// VerifiedPersisted is set only for passing verdicts: false means the
	// verified flag could not be written, while the verdict itself stands.
	VerifiedPersisted *bool
}

type QuizStatusView struct {
	SessionID uuid.UUID
	Skill     string
	State     string
	Question  *QuizQuestionView
	Verdict   *QuizVerdictView
}

type QuizUsecase interface {
	GenerateQuiz(ctx context.Context, userID uuid.UUID, skill string) (int, error)
	StartVerification(ctx context.Context, userID uuid.UUID, skill string) (QuizSessionView, error)
	SubmitAnswer(ctx context.Context, userID, sessionID uuid.UUID, selected string) (QuizAnswerView, error)
	SessionStatus(ctx context.Context, userID, sessionID uuid.UUID) (QuizStatusView, error)
}

type Quiz struct {
	users    user.Repository
	cache    QuizCache
	gen      quizgen.Client
	cacheTTL time.Duration
	logger   *log.Logger

	sessionOpts quiz.Options

	mu       sync.Mutex
	sessions map[uuid.UUID]*quizSession
}

type quizSession struct {
	userID uuid.UUID
	skill  string
	total  int
	sess   *quiz.Session

	mu        sync.Mutex
	verdict   *quiz.Verdict
	persisted *bool
}

func NewQuizUsecase(users user.Repository, quizCache QuizCache, gen quizgen.Client, cacheTTL time.Duration, logger *log.Logger) *Quiz {
	if logger == nil {
		logger = log.Default()
	}
	if cacheTTL <= 0 {
		cacheTTL = 24 * time.Hour
	}
	return &Quiz{
		users:    users,
		cache:    quizCache,
		gen:      gen,
		cacheTTL: cacheTTL,
		logger:   logger,
		sessions: make(map[uuid.UUID]*quizSession),
	}
}

func (u *Quiz) GenerateQuiz(ctx context.Context, userID uuid.UUID, skill string) (int, error) {
	if userID == uuid.Nil {
		return 0, ErrUnauthorized
	}
	if u.gen == nil {
		return 0, ErrQuizGenUnavailable
	}

	if err := u.requireTeachSkill(ctx, userID, skill); err != nil {
		return 0, err
	}

	questions, err := u.gen.GenerateQuiz(ctx, skill)
	if err != nil {
		u.logger.Printf("[Quiz] generation failed skill=%q: %v", skill, err)
		return 0, ErrQuizGenUnavailable
	}

	if err := u.cache.SetJSON(ctx, cache.QuizKey(skill), questions, u.cacheTTL); err != nil {
		u.logger.Printf("[Quiz] cache write failed skill=%q: %v", skill, err)
		return 0, ErrInternal
	}
	return len(questions), nil
}

func (u *Quiz) StartVerification(ctx context.Context, userID uuid.UUID, skill string) (QuizSessionView, error) {
	if userID == uuid.Nil {
		return QuizSessionView{}, ErrUnauthorized
	}
	if err := u.requireTeachSkill(ctx, userID, skill); err != nil {
		return QuizSessionView{}, err
	}

	var questions []quiz.Question
	found, err := u.cache.GetJSON(ctx, cache.QuizKey(skill), &questions)
	if err != nil || !found {
		return QuizSessionView{}, ErrQuizNotReady
	}
	if err := quiz.ValidateQuestions(questions); err != nil {
		return QuizSessionView{}, ErrQuizNotReady
	}

	id := uuid.New()
	qs := &quizSession{userID: userID, skill: skill, total: len(questions)}

	opts := u.sessionOpts
	opts.OnVerdict = func(v quiz.Verdict) { u.finishSession(id, qs, v) }
	sess, err := quiz.NewSession(questions, opts)
	if err != nil {
		return QuizSessionView{}, ErrQuizNotReady
	}
	qs.sess = sess

	u.mu.Lock()
	u.sessions[id] = qs
	u.mu.Unlock()

	sess.Start()

	idx, q, ok := sess.CurrentQuestion()
	if !ok {
		return QuizSessionView{}, ErrInternal
	}
	return QuizSessionView{
		SessionID:      id,
		Skill:          skill,
		TotalQuestions: len(questions),
		Question:       questionView(idx, q, sess),
	}, nil
}

func (u *Quiz) SubmitAnswer(_ context.Context, userID, sessionID uuid.UUID, selected string) (QuizAnswerView, error) {
	qs, err := u.session(userID, sessionID)
	if err != nil {
		return QuizAnswerView{}, err
	}

	res, err := qs.sess.Answer(selected)
	if err != nil {
		return QuizAnswerView{}, err
	}
	return QuizAnswerView{
		Index:         res.Index,
		Correct:       res.Correct,
		CorrectAnswer: res.Answer,
		LastQuestion:  res.LastQuestion,
	}, nil
}

func (u *Quiz) SessionStatus(_ context.Context, userID, sessionID uuid.UUID) (QuizStatusView, error) {
	qs, err := u.session(userID, sessionID)
	if err != nil {
		return QuizStatusView{}, err
	}

	view := QuizStatusView{SessionID: sessionID, Skill: qs.skill}

	qs.mu.Lock()
	verdict := qs.verdict
	persisted := qs.persisted
	qs.mu.Unlock()

	if verdict != nil {
		view.State = "done"
		view.Verdict = &QuizVerdictView{
			CorrectCount:      verdict.CorrectCount,
			Total:             verdict.Total,
			Passed:            verdict.Passed,
			VerifiedPersisted: persisted,
		}
		// The session is ephemeral; reporting the verdict destroys it.
		u.dropSession(sessionID)
		return view, nil
	}

	if idx, q, ok := qs.sess.CurrentQuestion(); ok {
		view.State = "awaiting_answer"
		qv := questionView(idx, q, qs.sess)
		view.Question = &qv
		return view, nil
	}

	view.State = "scoring"
	return view, nil
}

func (u *Quiz) session(userID, sessionID uuid.UUID) (*quizSession, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	qs, ok := u.sessions[sessionID]
	if !ok || qs.userID != userID {
		return nil, ErrQuizSessionNotFound
	}
	return qs, nil
}

// finishSession runs once per session, off the timer goroutine. The verified
// write deliberately uses a fresh context: the verdict already happened and
// should land even if the triggering request is gone.
func (u *Quiz) finishSession(id uuid.UUID, qs *quizSession, v quiz.Verdict) {
	var persisted *bool
	if v.Passed {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		ok := u.persistVerified(ctx, qs.userID, qs.skill)
		persisted = &ok
	}

	qs.mu.Lock()
	qs.verdict = &v
	qs.persisted = persisted
	qs.mu.Unlock()

	u.logger.Printf("[Quiz] verdict user=%s skill=%q correct=%d/%d passed=%v",
		qs.userID, qs.skill, v.CorrectCount, v.Total, v.Passed)

	// Abandoned sessions would otherwise sit in the map forever; a status
	// poll collecting the verdict just makes the purge a no-op.
	u.afterFunc(verdictRetention, func() { u.dropSession(id) })
}

func (u *Quiz) dropSession(id uuid.UUID) {
	u.mu.Lock()
	delete(u.sessions, id)
	u.mu.Unlock()
}

func (u *Quiz) afterFunc(d time.Duration, f func()) quiz.Timer {
	if u.sessionOpts.After != nil {
		return u.sessionOpts.After(d, f)
	}
	return time.AfterFunc(d, f)
}

func (u *Quiz) persistVerified(ctx context.Context, userID uuid.UUID, skill string) bool {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		u.logger.Printf("[Quiz] verified write failed user=%s skill=%q: %v", userID, skill, err)
		return false
	}
	if !usr.VerifyTeachSkill(skill) {
		u.logger.Printf("[Quiz] verified write skipped, skill gone user=%s skill=%q", userID, skill)
		return false
	}
	if err := u.users.SaveTeachSkills(ctx, userID, usr.SkillsToTeach); err != nil {
		u.logger.Printf("[Quiz] verified write failed user=%s skill=%q: %v", userID, skill, err)
		return false
	}
	return true
}

func (u *Quiz) requireTeachSkill(ctx context.Context, userID uuid.UUID, skill string) error {
	if skill == "" {
		return ErrInvalidInput
	}
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return ErrFetchFailed
	}
	for _, s := range usr.SkillsToTeach {
		if s.Name == skill {
			return nil
		}
	}
	return ErrTeachSkillNotFound
}

func questionView(idx int, q quiz.Question, sess *quiz.Session) QuizQuestionView {
	// Answer must never reach the client.
	return QuizQuestionView{
		Index:           idx,
		Question:        q.Question,
		Options:         q.Options,
		TimeLeftSeconds: int(sess.TimeLeft(time.Now()).Seconds()),
	}
}
