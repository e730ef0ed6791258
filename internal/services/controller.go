package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/lehmann314159/wordtrainer/internal/models"
)

// View names the active screen
type View string

const (
	ViewDashboard  View = "dashboard"
	ViewStudy      View = "study"
	ViewTest       View = "test"
	ViewCompletion View = "completion"
)

// CommandType identifies a user action
type CommandType string

const (
	CmdSelectDay    CommandType = "select_day"
	CmdPrevCard     CommandType = "prev_card"
	CmdNextCard     CommandType = "next_card"
	CmdStartTest    CommandType = "start_test"
	CmdRevealAnswer CommandType = "reveal_answer"
	CmdSubmitResult CommandType = "submit_result"
	CmdGoHome       CommandType = "go_home"
)

// Command is one user action. SessionID, when set, must match the active
// study or test session.
type Command struct {
	Type       CommandType `json:"type"`
	Day        int         `json:"day,omitempty"`
	Remembered bool        `json:"remembered,omitempty"`
	SessionID  string      `json:"session_id,omitempty"`
}

var (
	// ErrInvalidCommand is returned for a command the active view does not accept
	ErrInvalidCommand = errors.New("command not valid in the current view")

	// ErrStaleSession is returned for a command aimed at a replaced session
	ErrStaleSession = errors.New("command targets an inactive session")
)

// Controller drives the trainer: dashboard, study, test and completion views.
// It holds at most one session; replacing or leaving a session discards it.
// A Controller is not safe for concurrent use.
type Controller struct {
	catalog  *Catalog
	progress *ProgressStore
	days     *DayPartitioner
	shuffle  Shuffler

	view  View
	study *StudySession
	test  *TestSession

	completedDay   int
	completedWords int
}

// NewController creates a controller. A nil shuffle uses math/rand.
func NewController(catalog *Catalog, progress *ProgressStore, days *DayPartitioner, shuffle Shuffler) *Controller {
	return &Controller{
		catalog:  catalog,
		progress: progress,
		days:     days,
		shuffle:  shuffle,
		view:     ViewDashboard,
	}
}

// Start loads persisted progress and shows the dashboard
func (c *Controller) Start(ctx context.Context) {
	c.progress.Load(ctx)
	c.discardSession()
	c.view = ViewDashboard
}

// View returns the active view
func (c *Controller) View() View {
	return c.view
}

// Dispatch applies cmd. A rejected command leaves the state unchanged.
func (c *Controller) Dispatch(ctx context.Context, cmd Command) error {
	switch cmd.Type {
	case CmdSelectDay:
		return c.selectDay(cmd.Day)
	case CmdPrevCard:
		return c.withStudy(cmd, func(s *StudySession) error {
			s.Prev()
			return nil
		})
	case CmdNextCard:
		return c.withStudy(cmd, func(s *StudySession) error {
			s.Next()
			return nil
		})
	case CmdStartTest:
		return c.withStudy(cmd, c.startTest)
	case CmdRevealAnswer:
		return c.withTest(cmd, func(t *TestSession) error {
			t.Reveal()
			return nil
		})
	case CmdSubmitResult:
		if c.view == ViewCompletion {
			return ErrNoCurrentWord
		}
		return c.withTest(cmd, func(t *TestSession) error {
			return c.submit(ctx, t, cmd.Remembered)
		})
	case CmdGoHome:
		c.discardSession()
		c.view = ViewDashboard
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", ErrInvalidCommand, cmd.Type)
	}
}

func (c *Controller) selectDay(day int) error {
	words, err := c.days.Words(day)
	if err != nil {
		return err
	}

	study, err := NewStudySession(day, words)
	if err != nil {
		return err
	}

	c.discardSession()
	c.study = study
	c.view = ViewStudy
	return nil
}

func (c *Controller) startTest(s *StudySession) error {
	if !s.CanStartTest() {
		return fmt.Errorf("%w: study not finished", ErrInvalidCommand)
	}

	test, err := NewTestSession(s.Day(), s.Words(), c.shuffle, c.progress)
	if err != nil {
		return err
	}

	c.discardSession()
	c.test = test
	c.view = ViewTest
	return nil
}

func (c *Controller) submit(ctx context.Context, t *TestSession, remembered bool) error {
	// A result is only accepted for the word whose answer is on screen
	if !t.Revealed() {
		return fmt.Errorf("%w: answer not revealed", ErrInvalidCommand)
	}
	if err := t.Submit(ctx, remembered); err != nil {
		return err
	}

	if t.Completed() {
		c.completedDay = t.Day()
		c.completedWords = t.Size()
		c.test = nil
		c.view = ViewCompletion
	}
	return nil
}

func (c *Controller) withStudy(cmd Command, fn func(*StudySession) error) error {
	if c.view != ViewStudy || c.study == nil {
		return fmt.Errorf("%w: %s in %s view", ErrInvalidCommand, cmd.Type, c.view)
	}
	if cmd.SessionID != "" && cmd.SessionID != c.study.ID() {
		return ErrStaleSession
	}
	return fn(c.study)
}

func (c *Controller) withTest(cmd Command, fn func(*TestSession) error) error {
	if c.view != ViewTest || c.test == nil {
		return fmt.Errorf("%w: %s in %s view", ErrInvalidCommand, cmd.Type, c.view)
	}
	if cmd.SessionID != "" && cmd.SessionID != c.test.ID() {
		return ErrStaleSession
	}
	return fn(c.test)
}

func (c *Controller) discardSession() {
	c.study = nil
	c.test = nil
	c.completedDay = 0
	c.completedWords = 0
}

// Snapshot is a read-only picture of the controller for rendering
type Snapshot struct {
	View         View               `json:"view"`
	TotalLearned int                `json:"total_learned"`
	TotalWords   int                `json:"total_words"`
	Days         []models.DayStatus `json:"days"`
	Study        *StudyView         `json:"study,omitempty"`
	Test         *TestView          `json:"test,omitempty"`
	Completion   *CompletionView    `json:"completion,omitempty"`
}

// StudyView describes the study screen. Position is 1-based.
type StudyView struct {
	SessionID    string `json:"session_id"`
	Day          int    `json:"day"`
	Position     int    `json:"position"`
	Total        int    `json:"total"`
	Card         *Card  `json:"card"`
	CanPrev      bool   `json:"can_prev"`
	CanNext      bool   `json:"can_next"`
	CanStartTest bool   `json:"can_start_test"`
	Finished     bool   `json:"finished"`
}

// TestView describes the test screen. Card carries only the front side
// until the answer is revealed.
type TestView struct {
	SessionID string `json:"session_id"`
	Day       int    `json:"day"`
	Card      *Card  `json:"card"`
	Revealed  bool   `json:"revealed"`
	Remaining int    `json:"remaining"`
	Total     int    `json:"total"`
}

// CompletionView describes the screen shown after a test drains
type CompletionView struct {
	Day   int `json:"day"`
	Words int `json:"words"`
}

// State returns a snapshot of the active view and the dashboard
func (c *Controller) State() *Snapshot {
	snap := &Snapshot{
		View:         c.view,
		TotalLearned: c.progress.Count(),
		TotalWords:   c.catalog.Len(),
		Days:         c.days.Statuses(c.progress),
	}

	switch c.view {
	case ViewStudy:
		s := c.study
		snap.Study = &StudyView{
			SessionID:    s.ID(),
			Day:          s.Day(),
			Position:     s.Position() + 1,
			Total:        s.Len(),
			Card:         c.card(s.Current()),
			CanPrev:      !s.AtStart(),
			CanNext:      !s.AtEnd(),
			CanStartTest: s.CanStartTest(),
			Finished:     s.Finished(),
		}
	case ViewTest:
		t := c.test
		tv := &TestView{
			SessionID: t.ID(),
			Day:       t.Day(),
			Revealed:  t.Revealed(),
			Remaining: t.Remaining(),
			Total:     t.Size(),
		}
		if idx, ok := t.Current(); ok {
			tv.Card = c.card(idx)
			if tv.Card != nil && !tv.Revealed {
				tv.Card = tv.Card.Front()
			}
		}
		snap.Test = tv
	case ViewCompletion:
		snap.Completion = &CompletionView{Day: c.completedDay, Words: c.completedWords}
	}

	return snap
}

// Card returns the card of the word at index
func (c *Controller) Card(index int) (*Card, error) {
	w, err := c.catalog.Word(index)
	if err != nil {
		return nil, err
	}
	return BuildCard(index, w), nil
}

// card is Card for indices taken from a valid day
func (c *Controller) card(index int) *Card {
	card, err := c.Card(index)
	if err != nil {
		return nil
	}
	return card
}
