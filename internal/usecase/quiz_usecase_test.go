package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"brainswap/internal/domain/quiz"
	"brainswap/internal/domain/user"

	"github.com/google/uuid"
)

type fakeQuizCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	getErr  error
	setErr  error
}

func newFakeQuizCache() *fakeQuizCache {
	return &fakeQuizCache{entries: make(map[string][]byte)}
}

func (c *fakeQuizCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	if c.getErr != nil {
		return false, c.getErr
	}
	c.mu.Lock()
	raw, ok := c.entries[key]
	c.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, out)
}

func (c *fakeQuizCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.entries[key] = raw
	c.mu.Unlock()
	return nil
}

type fakeQuizGen struct {
	questions []quiz.Question
	err       error
	lastSkill string
}

func (g *fakeQuizGen) GenerateQuiz(_ context.Context, skill string) ([]quiz.Question, error) {
	g.lastSkill = skill
	if g.err != nil {
		return nil, g.err
	}
	return g.questions, nil
}

// stubTimer and stubTimers mirror the session tests: nothing fires on its
// own, the test drains the queue by hand.
type stubTimer struct {
	f       func()
	stopped bool
}

func (t *stubTimer) Stop() bool {
	t.stopped = true
	return true
}

type stubTimers struct {
	mu      sync.Mutex
	pending []*stubTimer
}

func (s *stubTimers) after(_ time.Duration, f func()) quiz.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &stubTimer{f: f}
	s.pending = append(s.pending, t)
	return t
}

func (s *stubTimers) fire(t *testing.T) {
	t.Helper()
	s.mu.Lock()
	var next *stubTimer
	for len(s.pending) > 0 {
		c := s.pending[0]
		s.pending = s.pending[1:]
		if !c.stopped {
			next = c
			break
		}
	}
	s.mu.Unlock()
	if next == nil {
		t.Fatalf("no pending timer to fire")
	}
	next.f()
}

func quizQuestions(n int) []quiz.Question {
	qs := make([]quiz.Question, 0, n)
	for i := 0; i < n; i++ {
		qs = append(qs, quiz.Question{
			Question: "q",
			Options:  []string{"right", "wrong"},
			Answer:   "right",
		})
	}
	return qs
}

func teachUser(skill string) user.User {
	return user.User{
		ID:            uuid.New(),
		SkillsToTeach: []user.TeachSkill{{Name: skill}},
	}
}

func newQuizUsecaseForTest(repo user.Repository, cache *fakeQuizCache, gen *fakeQuizGen, timers *stubTimers) *Quiz {
	uc := NewQuizUsecase(repo, cache, nil, time.Hour, nil)
	if gen != nil {
		uc.gen = gen
	}
	if timers != nil {
		uc.sessionOpts.After = timers.after
	}
	return uc
}

func TestGenerateQuiz_CachesQuestions(t *testing.T) {
	me := teachUser("Guitar")
	cache := newFakeQuizCache()
	gen := &fakeQuizGen{questions: quizQuestions(5)}

	uc := newQuizUsecaseForTest(newMockUserRepo(me), cache, gen, nil)
	n, err := uc.GenerateQuiz(context.Background(), me.ID, "Guitar")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if n != 5 {
		t.Fatalf("expected 5 questions, got %d", n)
	}
	if gen.lastSkill != "Guitar" {
		t.Fatalf("generator got skill %q", gen.lastSkill)
	}
	if _, ok := cache.entries["quiz_Guitar"]; !ok {
		t.Fatalf("questions were not cached under quiz_Guitar")
	}
}

func TestGenerateQuiz_RequiresListedTeachSkill(t *testing.T) {
	me := teachUser("Guitar")
	uc := newQuizUsecaseForTest(newMockUserRepo(me), newFakeQuizCache(), &fakeQuizGen{}, nil)

	if _, err := uc.GenerateQuiz(context.Background(), me.ID, "Spanish"); !errors.Is(err, ErrTeachSkillNotFound) {
		t.Fatalf("expected ErrTeachSkillNotFound, got %v", err)
	}
}

func TestGenerateQuiz_GeneratorDown(t *testing.T) {
	me := teachUser("Guitar")
	gen := &fakeQuizGen{err: errors.New("refused")}
	uc := newQuizUsecaseForTest(newMockUserRepo(me), newFakeQuizCache(), gen, nil)

	if _, err := uc.GenerateQuiz(context.Background(), me.ID, "Guitar"); !errors.Is(err, ErrQuizGenUnavailable) {
		t.Fatalf("expected ErrQuizGenUnavailable, got %v", err)
	}
}

func TestGenerateQuiz_NoGeneratorConfigured(t *testing.T) {
	me := teachUser("Guitar")
	uc := newQuizUsecaseForTest(newMockUserRepo(me), newFakeQuizCache(), nil, nil)

	if _, err := uc.GenerateQuiz(context.Background(), me.ID, "Guitar"); !errors.Is(err, ErrQuizGenUnavailable) {
		t.Fatalf("expected ErrQuizGenUnavailable, got %v", err)
	}
}

func TestStartVerification_NoCachedQuiz(t *testing.T) {
	me := teachUser("Guitar")
	uc := newQuizUsecaseForTest(newMockUserRepo(me), newFakeQuizCache(), nil, nil)

	if _, err := uc.StartVerification(context.Background(), me.ID, "Guitar"); !errors.Is(err, ErrQuizNotReady) {
		t.Fatalf("expected ErrQuizNotReady, got %v", err)
	}
}

func TestStartVerification_ServesFirstQuestionWithoutAnswer(t *testing.T) {
	me := teachUser("Guitar")
	cache := newFakeQuizCache()
	if err := cache.SetJSON(context.Background(), "quiz_Guitar", quizQuestions(5), 0); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	timers := &stubTimers{}
	uc := newQuizUsecaseForTest(newMockUserRepo(me), cache, nil, timers)

	view, err := uc.StartVerification(context.Background(), me.ID, "Guitar")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if view.TotalQuestions != 5 {
		t.Fatalf("expected 5 questions, got %d", view.TotalQuestions)
	}
	if view.Question.Index != 0 {
		t.Fatalf("expected first question, got index %d", view.Question.Index)
	}
	if len(view.Question.Options) != 2 {
		t.Fatalf("options missing: %+v", view.Question)
	}
}

func TestSubmitAnswer_WrongUserCannotAnswer(t *testing.T) {
	me := teachUser("Guitar")
	cache := newFakeQuizCache()
	_ = cache.SetJSON(context.Background(), "quiz_Guitar", quizQuestions(5), 0)

	timers := &stubTimers{}
	uc := newQuizUsecaseForTest(newMockUserRepo(me), cache, nil, timers)
	view, err := uc.StartVerification(context.Background(), me.ID, "Guitar")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if _, err := uc.SubmitAnswer(context.Background(), uuid.New(), view.SessionID, "right"); !errors.Is(err, ErrQuizSessionNotFound) {
		t.Fatalf("expected ErrQuizSessionNotFound, got %v", err)
	}
}

func TestQuizFlow_PassPersistsVerifiedSkill(t *testing.T) {
	me := teachUser("Guitar")
	repo := newMockUserRepo(me)
	cache := newFakeQuizCache()
	_ = cache.SetJSON(context.Background(), "quiz_Guitar", quizQuestions(5), 0)

	timers := &stubTimers{}
	uc := newQuizUsecaseForTest(repo, cache, nil, timers)
	view, err := uc.StartVerification(context.Background(), me.ID, "Guitar")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	// Answer 4 correctly, miss the last one. Each answer arms a reveal
	// timer that advances to the next question.
	for i := 0; i < 5; i++ {
		selected := "right"
		if i == 4 {
			selected = "wrong"
		}
		res, err := uc.SubmitAnswer(context.Background(), me.ID, view.SessionID, selected)
		if err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
		if res.Index != i {
			t.Fatalf("answer %d scored index %d", i, res.Index)
		}
		if res.CorrectAnswer != "right" {
			t.Fatalf("reveal missing on answer %d: %+v", i, res)
		}
		timers.fire(t) // reveal delay
	}

	status, err := uc.SessionStatus(context.Background(), me.ID, view.SessionID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if status.State != "done" || status.Verdict == nil {
		t.Fatalf("expected done verdict, got %+v", status)
	}
	if !status.Verdict.Passed || status.Verdict.CorrectCount != 4 {
		t.Fatalf("expected 4/5 pass, got %+v", status.Verdict)
	}
	if status.Verdict.VerifiedPersisted == nil || !*status.Verdict.VerifiedPersisted {
		t.Fatalf("expected verified write, got %+v", status.Verdict.VerifiedPersisted)
	}

	stored, err := repo.GetByID(context.Background(), me.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(stored.SkillsToTeach) != 1 || !stored.SkillsToTeach[0].Verified {
		t.Fatalf("skill not marked verified: %+v", stored.SkillsToTeach)
	}

	// The verdict is reported once, then the session is gone.
	if _, err := uc.SessionStatus(context.Background(), me.ID, view.SessionID); !errors.Is(err, ErrQuizSessionNotFound) {
		t.Fatalf("expected session gone after verdict, got %v", err)
	}
}

func TestQuizFlow_FailLeavesSkillUnverified(t *testing.T) {
	me := teachUser("Guitar")
	repo := newMockUserRepo(me)
	cache := newFakeQuizCache()
	_ = cache.SetJSON(context.Background(), "quiz_Guitar", quizQuestions(5), 0)

	timers := &stubTimers{}
	uc := newQuizUsecaseForTest(repo, cache, nil, timers)
	view, err := uc.StartVerification(context.Background(), me.ID, "Guitar")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	for i := 0; i < 5; i++ {
		if _, err := uc.SubmitAnswer(context.Background(), me.ID, view.SessionID, "wrong"); err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
		timers.fire(t)
	}

	status, err := uc.SessionStatus(context.Background(), me.ID, view.SessionID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if status.Verdict == nil || status.Verdict.Passed {
		t.Fatalf("expected failing verdict, got %+v", status.Verdict)
	}
	if status.Verdict.VerifiedPersisted != nil {
		t.Fatalf("failing verdict must not touch the profile: %+v", status.Verdict)
	}

	stored, _ := repo.GetByID(context.Background(), me.ID)
	if stored.SkillsToTeach[0].Verified {
		t.Fatalf("skill must stay unverified after a fail")
	}
}

func TestQuizFlow_AbandonedSessionPurgedAfterVerdict(t *testing.T) {
	me := teachUser("Guitar")
	cache := newFakeQuizCache()
	_ = cache.SetJSON(context.Background(), "quiz_Guitar", quizQuestions(5), 0)

	timers := &stubTimers{}
	uc := newQuizUsecaseForTest(newMockUserRepo(me), cache, nil, timers)
	view, err := uc.StartVerification(context.Background(), me.ID, "Guitar")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	// Drive the quiz to its verdict without ever polling the status, as an
	// abandoning client would.
	for i := 0; i < 5; i++ {
		if _, err := uc.SubmitAnswer(context.Background(), me.ID, view.SessionID, "wrong"); err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
		timers.fire(t)
	}

	uc.mu.Lock()
	retained := len(uc.sessions)
	uc.mu.Unlock()
	if retained != 1 {
		t.Fatalf("expected the finished session held for the retention window, got %d", retained)
	}

	// The retention timer armed at verdict time fires and purges the entry.
	timers.fire(t)

	uc.mu.Lock()
	retained = len(uc.sessions)
	uc.mu.Unlock()
	if retained != 0 {
		t.Fatalf("expected session purged after retention, %d entries remain", retained)
	}
	if _, err := uc.SessionStatus(context.Background(), me.ID, view.SessionID); !errors.Is(err, ErrQuizSessionNotFound) {
		t.Fatalf("expected ErrQuizSessionNotFound after purge, got %v", err)
	}
}

func TestQuizFlow_TimeoutAdvancesToNextQuestion(t *testing.T) {
	me := teachUser("Guitar")
	cache := newFakeQuizCache()
	_ = cache.SetJSON(context.Background(), "quiz_Guitar", quizQuestions(5), 0)

	timers := &stubTimers{}
	uc := newQuizUsecaseForTest(newMockUserRepo(me), cache, nil, timers)
	view, err := uc.StartVerification(context.Background(), me.ID, "Guitar")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	// Let the first question time out: countdown fires, then the reveal
	// delay advances to question 1.
	timers.fire(t)
	timers.fire(t)

	if _, err := uc.SubmitAnswer(context.Background(), me.ID, view.SessionID, "right"); err != nil {
		t.Fatalf("answer after timeout advance: %v", err)
	}

	status, err := uc.SessionStatus(context.Background(), me.ID, view.SessionID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if status.State != "scoring" {
		t.Fatalf("expected scoring between answer and reveal, got %q", status.State)
	}
}
