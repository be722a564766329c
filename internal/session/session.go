// Package session implements the typing-test state machine.
package session

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotReady is returned by Elapsed before the session has completed.
var ErrNotReady = errors.New("session not completed")

// Phase describes the session lifecycle.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseInProgress
	PhaseCompleted
)

// Status is the recorded correctness of one target position.
type Status int

const (
	Untyped Status = iota
	Correct
	Incorrect
)

// Outcome records the status of a target position and, for an incorrect
// position, the rune that was actually typed.
type Outcome struct {
	Status Status
	Typed  rune
}

// KeyKind distinguishes the two inputs the engine understands.
type KeyKind int

const (
	KindChar KeyKind = iota
	KindBackspace
)

// Key is one input event. The input boundary must map everything else
// (arrows, modifiers, function keys) away before calling Feed.
type Key struct {
	Kind KeyKind
	Rune rune
}

// Char builds a character key.
func Char(r rune) Key { return Key{Kind: KindChar, Rune: r} }

// Backspace builds a backspace key.
func Backspace() Key { return Key{Kind: KindBackspace} }

// Step reports what a Feed call did.
type Step int

const (
	// StepCorrect: the typed rune matched the target and the cursor advanced.
	StepCorrect Step = iota
	// StepIncorrect: the typed rune did not match; the cursor still advanced.
	StepIncorrect
	// StepErased: backspace moved the cursor back and cleared that position.
	StepErased
	// StepIgnored: backspace at position 0.
	StepIgnored
	// StepFinished: the session is already completed; nothing changed.
	StepFinished
)

// Session tracks one typing test over a fixed target text.
//
// Outcomes are contiguous: positions before the cursor are typed, positions
// at or after it are Untyped. The clock starts on the first accepted
// keystroke and stops when the cursor reaches the end of the target.
type Session struct {
	target   []rune
	outcomes []Outcome
	cursor   int
	phase    Phase

	startedAt time.Time
	endedAt   time.Time
	now       func() time.Time
}

// Snapshot is a read-only view of the session for rendering and scoring.
type Snapshot struct {
	Target   []rune
	Outcomes []Outcome
	Cursor   int
	Phase    Phase
}

// New creates a session over the given target text using the wall clock.
func New(text string) (*Session, error) {
	return NewWithClock(text, time.Now)
}

// NewWithClock creates a session with an injected clock, used in tests to
// make timing deterministic.
func NewWithClock(text string, now func() time.Time) (*Session, error) {
	target := []rune(text)
	if len(target) == 0 {
		return nil, fmt.Errorf("target text is empty")
	}
	return &Session{
		target:   target,
		outcomes: make([]Outcome, len(target)),
		now:      now,
	}, nil
}

// Feed consumes one key event and returns what happened. After the session
// completes, Feed is a pure no-op that reports StepFinished.
func (s *Session) Feed(key Key) Step {
	if s.phase == PhaseCompleted {
		return StepFinished
	}
	switch key.Kind {
	case KindBackspace:
		if s.cursor == 0 {
			return StepIgnored
		}
		s.cursor--
		s.outcomes[s.cursor] = Outcome{}
		return StepErased
	default:
		return s.feedChar(key.Rune)
	}
}

func (s *Session) feedChar(r rune) Step {
	if s.cursor >= len(s.target) {
		// Unreachable while phase tracking is correct.
		return StepFinished
	}
	// The clock starts before the first outcome is recorded so elapsed
	// time covers the first keystroke.
	if s.phase == PhaseNotStarted {
		s.phase = PhaseInProgress
		s.startedAt = s.now()
	}

	step := StepCorrect
	if s.target[s.cursor] == r {
		s.outcomes[s.cursor] = Outcome{Status: Correct}
	} else {
		s.outcomes[s.cursor] = Outcome{Status: Incorrect, Typed: r}
		step = StepIncorrect
	}
	s.cursor++

	if s.cursor == len(s.target) {
		s.phase = PhaseCompleted
		s.endedAt = s.now()
	}
	return step
}

// Snapshot returns a copy of the session state. It never mutates.
func (s *Session) Snapshot() Snapshot {
	target := make([]rune, len(s.target))
	copy(target, s.target)
	outcomes := make([]Outcome, len(s.outcomes))
	copy(outcomes, s.outcomes)
	return Snapshot{
		Target:   target,
		Outcomes: outcomes,
		Cursor:   s.cursor,
		Phase:    s.phase,
	}
}

// Elapsed returns the time between the first keystroke and completion.
// It fails with ErrNotReady until the session has completed.
func (s *Session) Elapsed() (time.Duration, error) {
	if s.phase != PhaseCompleted {
		return 0, ErrNotReady
	}
	return s.endedAt.Sub(s.startedAt), nil
}
