package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
)

// ErrNoCurrentWord is returned when a result is submitted with an empty queue
var ErrNoCurrentWord = errors.New("no current word to answer")

// Shuffler permutes n elements through swap. rand.Shuffle satisfies it.
type Shuffler func(n int, swap func(i, j int))

// LearnedMarker records a correctly answered word
type LearnedMarker interface {
	MarkLearned(ctx context.Context, index int) (bool, error)
}

// TestSession quizzes a day's words in shuffled order. A remembered word
// leaves the queue and is marked learned; a forgotten word moves to the back.
// The session completes when the queue is empty, so every word must be
// answered correctly once.
type TestSession struct {
	id       string
	day      int
	size     int
	queue    []int
	revealed bool
	marker   LearnedMarker
}

// NewTestSession creates a session over words using a uniform shuffle.
// A nil shuffle uses math/rand.
func NewTestSession(day int, words []int, shuffle Shuffler, marker LearnedMarker) (*TestSession, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: day %d has no words", ErrInvalidDay, day)
	}
	if shuffle == nil {
		shuffle = rand.Shuffle
	}

	queue := make([]int, len(words))
	copy(queue, words)
	shuffle(len(queue), func(i, j int) {
		queue[i], queue[j] = queue[j], queue[i]
	})

	return &TestSession{
		id:     uuid.New().String(),
		day:    day,
		size:   len(queue),
		queue:  queue,
		marker: marker,
	}, nil
}

// ID returns the session identifier
func (t *TestSession) ID() string { return t.id }

// Day returns the day being tested
func (t *TestSession) Day() int { return t.day }

// Size returns the number of distinct words in the session
func (t *TestSession) Size() int { return t.size }

// Remaining returns the number of words still to answer correctly
func (t *TestSession) Remaining() int { return len(t.queue) }

// Completed reports whether every word has been answered correctly
func (t *TestSession) Completed() bool { return len(t.queue) == 0 }

// Revealed reports whether the answer side of the current word is shown
func (t *TestSession) Revealed() bool { return t.revealed }

// Current returns the word at the head of the queue
func (t *TestSession) Current() (int, bool) {
	if len(t.queue) == 0 {
		return 0, false
	}
	return t.queue[0], true
}

// Queue returns a copy of the queue, head first
func (t *TestSession) Queue() []int {
	out := make([]int, len(t.queue))
	copy(out, t.queue)
	return out
}

// Reveal shows the answer side. Repeated calls have no further effect.
func (t *TestSession) Reveal() {
	if len(t.queue) > 0 {
		t.revealed = true
	}
}

// Submit records the learner's answer for the current word
func (t *TestSession) Submit(ctx context.Context, remembered bool) error {
	head, ok := t.Current()
	if !ok {
		return ErrNoCurrentWord
	}

	if remembered {
		if _, err := t.marker.MarkLearned(ctx, head); err != nil {
			return fmt.Errorf("failed to record word %d: %w", head, err)
		}
		t.queue = t.queue[1:]
	} else {
		copy(t.queue, t.queue[1:])
		t.queue[len(t.queue)-1] = head
	}

	t.revealed = false
	return nil
}
