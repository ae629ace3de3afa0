package quiz

import (
	"errors"
	"sync"
	"time"
)

// Session drives a fixed sequence of questions with a per-question countdown:
//
//	AwaitingAnswer(i) -> Scoring(i) -> AwaitingAnswer(i+1) ... -> Verdict -> Done
//
// Exactly one countdown is active at a time, owned by the current question
// index; arming a new countdown always cancels the previous one. Each index
// accepts exactly one scoring transition, so an answer arriving after the
// countdown already fired is a no-op.
type Session struct {
	mu        sync.Mutex
	questions []Question
	state     State
	index     int
	correct   int
	scored    bool

	budget      time.Duration
	revealDelay time.Duration
	after       AfterFunc
	onVerdict   func(Verdict)

	timer    Timer
	deadline time.Time
	verdict  Verdict
}

type State int

const (
	StateAwaitingAnswer State = iota
	StateScoring
	StateDone
)

const (
	// DefaultQuestionBudget is the countdown per question.
	DefaultQuestionBudget = 30 * time.Second
	// DefaultRevealDelay holds the correct/incorrect result before advancing.
	DefaultRevealDelay = time.Second
	// PassThreshold is a fixed count, independent of the number of questions.
	// With fewer than 4 questions a pass is unreachable; preserved as-is.
	PassThreshold = 4
)

var (
	ErrNotAwaitingAnswer = errors.New("no answer expected now")
	ErrSessionDone       = errors.New("session already finished")
)

type Verdict struct {
	CorrectCount int
	Total        int
	Passed       bool
}

type AnswerResult struct {
	Index        int
	Selected     string
	Answer       string
	Correct      bool
	LastQuestion bool
}

// Timer is the cancellable handle returned by AfterFunc. The stdlib
// *time.Timer satisfies it.
type Timer interface {
	Stop() bool
}

type AfterFunc func(d time.Duration, f func()) Timer

func stdAfter(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type Options struct {
	QuestionBudget time.Duration
	RevealDelay    time.Duration
	After          AfterFunc
	// OnVerdict runs once, outside the session lock, when the last question
	// has been scored and the reveal delay elapsed.
	OnVerdict func(Verdict)
}

func NewSession(questions []Question, opts Options) (*Session, error) {
	if err := ValidateQuestions(questions); err != nil {
		return nil, err
	}

	s := &Session{
		questions:   questions,
		state:       StateAwaitingAnswer,
		budget:      opts.QuestionBudget,
		revealDelay: opts.RevealDelay,
		after:       opts.After,
		onVerdict:   opts.OnVerdict,
	}
	if s.budget <= 0 {
		s.budget = DefaultQuestionBudget
	}
	if s.revealDelay <= 0 {
		s.revealDelay = DefaultRevealDelay
	}
	if s.after == nil {
		s.after = stdAfter
	}
	return s, nil
}

// Start arms the countdown for the first question.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAwaitingAnswer || s.index != 0 || s.scored {
		return
	}
	s.armCountdown(0)
}

// Answer scores the given selection against the current question. Selections
// outside AwaitingAnswer, including after the countdown already fired the
// no-answer path, return ErrNotAwaitingAnswer and change nothing.
func (s *Session) Answer(selected string) (AnswerResult, error) {
	s.mu.Lock()
	if s.state == StateDone {
		s.mu.Unlock()
		return AnswerResult{}, ErrSessionDone
	}
	if s.state != StateAwaitingAnswer || s.scored {
		s.mu.Unlock()
		return AnswerResult{}, ErrNotAwaitingAnswer
	}

	idx := s.index
	q := s.questions[idx]
	correct := selected == q.Answer
	if correct {
		s.correct++
	}
	s.score(idx)
	res := AnswerResult{
		Index:        idx,
		Selected:     selected,
		Answer:       q.Answer,
		Correct:      correct,
		LastQuestion: idx+1 >= len(s.questions),
	}
	s.mu.Unlock()
	return res, nil
}

// CurrentQuestion returns the question awaiting an answer, without the
// answer field stripped; callers presenting it to a client must not leak
// Answer.
func (s *Session) CurrentQuestion() (int, Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAwaitingAnswer {
		return 0, Question{}, false
	}
	return s.index, s.questions[s.index], true
}

// TimeLeft reports the remaining countdown for the current question.
func (s *Session) TimeLeft(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAwaitingAnswer || s.deadline.IsZero() {
		return 0
	}
	left := s.deadline.Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Verdict returns the final tally once the session is done.
func (s *Session) Verdict() (Verdict, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateDone {
		return Verdict{}, false
	}
	return s.verdict, true
}

// expire is the countdown firing for question idx: equivalent to selecting a
// sentinel that never equals the correct answer.
func (s *Session) expire(idx int) {
	s.mu.Lock()
	if s.state != StateAwaitingAnswer || s.index != idx || s.scored {
		s.mu.Unlock()
		return
	}
	s.score(idx)
	s.mu.Unlock()
}

// score moves AwaitingAnswer(idx) to Scoring(idx) and schedules the advance
// after the reveal delay. Caller holds the lock.
func (s *Session) score(idx int) {
	s.scored = true
	s.state = StateScoring
	s.stopCountdown()
	s.timer = s.after(s.revealDelay, func() { s.advance(idx) })
}

func (s *Session) advance(idx int) {
	s.mu.Lock()
	if s.state != StateScoring || s.index != idx {
		s.mu.Unlock()
		return
	}

	if idx+1 < len(s.questions) {
		s.index = idx + 1
		s.scored = false
		s.state = StateAwaitingAnswer
		s.armCountdown(s.index)
		s.mu.Unlock()
		return
	}

	s.state = StateDone
	s.stopCountdown()
	s.verdict = Verdict{
		CorrectCount: s.correct,
		Total:        len(s.questions),
		Passed:       s.correct >= PassThreshold,
	}
	v := s.verdict
	cb := s.onVerdict
	s.mu.Unlock()

	if cb != nil {
		cb(v)
	}
}

// armCountdown resets the full budget for idx. Caller holds the lock.
func (s *Session) armCountdown(idx int) {
	s.stopCountdown()
	s.deadline = time.Now().Add(s.budget)
	s.timer = s.after(s.budget, func() { s.expire(idx) })
}

func (s *Session) stopCountdown() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
