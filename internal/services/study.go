package services

import (
	"fmt"

	"github.com/google/uuid"
)

// StudySession is a cursor over one day's words
type StudySession struct {
	id     string
	day    int
	words  []int
	cursor int

	// signaled is set while the completion signal for the current visit to
	// the last card has been raised; finished once it has ever been raised
	signaled bool
	finished bool
}

// NewStudySession starts studying words (the indices of day) at the first card
func NewStudySession(day int, words []int) (*StudySession, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: day %d has no words", ErrInvalidDay, day)
	}

	s := &StudySession{
		id:    uuid.New().String(),
		day:   day,
		words: make([]int, len(words)),
	}
	copy(s.words, words)
	return s, nil
}

// ID returns the session identifier
func (s *StudySession) ID() string { return s.id }

// Day returns the day being studied
func (s *StudySession) Day() int { return s.day }

// Len returns the number of words in the session
func (s *StudySession) Len() int { return len(s.words) }

// Position returns the 0-based cursor
func (s *StudySession) Position() int { return s.cursor }

// Current returns the word index under the cursor
func (s *StudySession) Current() int { return s.words[s.cursor] }

// Words returns a copy of the session's word indices
func (s *StudySession) Words() []int {
	out := make([]int, len(s.words))
	copy(out, s.words)
	return out
}

// AtStart reports whether the cursor is on the first card
func (s *StudySession) AtStart() bool { return s.cursor == 0 }

// AtEnd reports whether the cursor is on the last card
func (s *StudySession) AtEnd() bool { return s.cursor == len(s.words)-1 }

// Finished reports whether the completion signal has been raised
func (s *StudySession) Finished() bool { return s.finished }

// CanStartTest reports whether a test may be started from this session
func (s *StudySession) CanStartTest() bool { return s.AtEnd() || s.finished }

// Prev moves to the previous card. It is a no-op on the first card.
func (s *StudySession) Prev() bool {
	if s.cursor == 0 {
		return false
	}
	s.cursor--
	s.signaled = false
	return true
}

// Next moves to the next card. On the last card it does not move and
// instead returns true, once per arrival at the last card, to signal that
// studying is complete.
func (s *StudySession) Next() bool {
	if s.cursor < len(s.words)-1 {
		s.cursor++
		return false
	}
	if s.signaled {
		return false
	}
	s.signaled = true
	s.finished = true
	return true
}
