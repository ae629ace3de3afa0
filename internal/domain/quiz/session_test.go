package quiz

import (
	"sync"
	"testing"
	"time"
)

// manualTimers replaces the wall clock: every armed timer is queued and only
// fires when the test says so.
type manualTimers struct {
	mu      sync.Mutex
	pending []*manualTimer
}

type manualTimer struct {
	d       time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	t.stopped = true
	return !t.fired
}

func (m *manualTimers) after(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTimer{d: d, f: f}
	m.pending = append(m.pending, t)
	return t
}

// fire runs the oldest pending timer that has not been stopped.
func (m *manualTimers) fire(t *testing.T) {
	t.Helper()
	m.mu.Lock()
	var next *manualTimer
	for len(m.pending) > 0 {
		c := m.pending[0]
		m.pending = m.pending[1:]
		if !c.stopped {
			next = c
			break
		}
	}
	m.mu.Unlock()
	if next == nil {
		t.Fatalf("no pending timer to fire")
	}
	next.fired = true
	next.f()
}

func questions(n int, answer string) []Question {
	qs := make([]Question, 0, n)
	for i := 0; i < n; i++ {
		qs = append(qs, Question{
			Question: "q",
			Options:  []string{answer, "wrong"},
			Answer:   answer,
		})
	}
	return qs
}

func newTestSession(t *testing.T, qs []Question, tm *manualTimers, onVerdict func(Verdict)) *Session {
	t.Helper()
	s, err := NewSession(qs, Options{After: tm.after, OnVerdict: onVerdict})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	s.Start()
	return s
}

func TestSession_RejectsMalformedQuestions(t *testing.T) {
	cases := [][]Question{
		nil,
		{},
		{{Question: "", Options: []string{"a"}, Answer: "a"}},
		{{Question: "q", Options: nil, Answer: "a"}},
	}
	for i, qs := range cases {
		if _, err := NewSession(qs, Options{}); err == nil {
			t.Fatalf("case %d: expected error for malformed questions", i)
		}
	}
}

func TestSession_CorrectCountMatchesSelections(t *testing.T) {
	tm := &manualTimers{}
	qs := []Question{
		{Question: "q0", Options: []string{"a", "b"}, Answer: "a"},
		{Question: "q1", Options: []string{"a", "b"}, Answer: "b"},
		{Question: "q2", Options: []string{"a", "b"}, Answer: "a"},
	}
	var verdict Verdict
	s := newTestSession(t, qs, tm, func(v Verdict) { verdict = v })

	selections := []string{"a", "a", "a"} // correct, wrong, correct
	for i, sel := range selections {
		res, err := s.Answer(sel)
		if err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
		if res.Index != i {
			t.Fatalf("answer %d: got index %d", i, res.Index)
		}
		tm.fire(t) // reveal delay
	}

	if verdict.CorrectCount != 2 || verdict.Total != 3 {
		t.Fatalf("expected 2/3, got %d/%d", verdict.CorrectCount, verdict.Total)
	}
	if verdict.Passed {
		t.Fatalf("2 correct must not pass")
	}
}

func TestSession_TimeoutNeverCorrect(t *testing.T) {
	// Timeout must not count as correct even when the answer key is the
	// empty string.
	tm := &manualTimers{}
	qs := []Question{{Question: "q", Options: []string{"a"}, Answer: ""}}
	var verdict Verdict
	_ = newTestSession(t, qs, tm, func(v Verdict) { verdict = v })

	tm.fire(t) // countdown expires
	tm.fire(t) // reveal delay

	if verdict.CorrectCount != 0 {
		t.Fatalf("timeout scored as correct: %d", verdict.CorrectCount)
	}
}

func TestSession_LateAnswerAfterTimeoutIsNoOp(t *testing.T) {
	tm := &manualTimers{}
	s := newTestSession(t, questions(2, "a"), tm, nil)

	tm.fire(t) // countdown for question 0 expires

	if _, err := s.Answer("a"); err != ErrNotAwaitingAnswer {
		t.Fatalf("expected ErrNotAwaitingAnswer, got %v", err)
	}

	tm.fire(t) // reveal delay, advance to question 1
	res, err := s.Answer("a")
	if err != nil {
		t.Fatalf("question 1 answer: %v", err)
	}
	if res.Index != 1 || !res.Correct {
		t.Fatalf("unexpected result after advance: %+v", res)
	}
	tm.fire(t)

	v, ok := s.Verdict()
	if !ok {
		t.Fatalf("expected verdict")
	}
	if v.CorrectCount != 1 {
		t.Fatalf("late answer leaked into score: %d", v.CorrectCount)
	}
}

func TestSession_DoubleAnswerOnSameQuestionRejected(t *testing.T) {
	tm := &manualTimers{}
	s := newTestSession(t, questions(2, "a"), tm, nil)

	if _, err := s.Answer("a"); err != nil {
		t.Fatalf("first answer: %v", err)
	}
	if _, err := s.Answer("a"); err != ErrNotAwaitingAnswer {
		t.Fatalf("second answer on same index must be rejected, got %v", err)
	}
}

func TestSession_PassRequiresFourCorrect(t *testing.T) {
	// Four correct out of five, with a timeout on the last question.
	tm := &manualTimers{}
	var verdict Verdict
	s := newTestSession(t, questions(5, "a"), tm, func(v Verdict) { verdict = v })

	for i := 0; i < 4; i++ {
		if _, err := s.Answer("a"); err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
		tm.fire(t)
	}
	tm.fire(t) // question 4 countdown expires
	tm.fire(t) // reveal delay

	if verdict.CorrectCount != 4 {
		t.Fatalf("expected 4 correct, got %d", verdict.CorrectCount)
	}
	if !verdict.Passed {
		t.Fatalf("4 correct must pass")
	}
}

func TestSession_PassUnreachableWithThreeQuestions(t *testing.T) {
	// The threshold is a fixed count, so a perfect 3/3 still fails.
	tm := &manualTimers{}
	var verdict Verdict
	s := newTestSession(t, questions(3, "a"), tm, func(v Verdict) { verdict = v })

	for i := 0; i < 3; i++ {
		if _, err := s.Answer("a"); err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
		tm.fire(t)
	}

	if verdict.CorrectCount != 3 {
		t.Fatalf("expected 3 correct, got %d", verdict.CorrectCount)
	}
	if verdict.Passed {
		t.Fatalf("3/3 must not pass with a fixed threshold of %d", PassThreshold)
	}
}

func TestSession_AnswerCancelsCountdown(t *testing.T) {
	tm := &manualTimers{}
	s := newTestSession(t, questions(1, "a"), tm, nil)

	countdown := tm.pending[0]
	if _, err := s.Answer("a"); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if !countdown.stopped {
		t.Fatalf("countdown must be cancelled when the answer scores")
	}
	tm.fire(t)

	if _, err := s.Answer("a"); err != ErrSessionDone {
		t.Fatalf("expected ErrSessionDone after verdict, got %v", err)
	}
	v, ok := s.Verdict()
	if !ok || v.CorrectCount != 1 {
		t.Fatalf("unexpected verdict: %+v ok=%v", v, ok)
	}
}
