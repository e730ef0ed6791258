package api

import (
	"context"
	"sync"

	"github.com/lehmann314159/wordtrainer/internal/services"
)

// Trainer serializes access to a Controller shared by concurrent requests
type Trainer struct {
	mu   sync.Mutex
	ctrl *services.Controller
}

// NewTrainer wraps ctrl. ctrl must already be started.
func NewTrainer(ctrl *services.Controller) *Trainer {
	return &Trainer{ctrl: ctrl}
}

// Dispatch applies cmd and returns the resulting state
func (t *Trainer) Dispatch(ctx context.Context, cmd services.Command) (*services.Snapshot, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.ctrl.Dispatch(ctx, cmd); err != nil {
		return nil, err
	}
	return t.ctrl.State(), nil
}

// State returns the current state
func (t *Trainer) State() *services.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ctrl.State()
}

// Card returns the card of the word at index
func (t *Trainer) Card(index int) (*services.Card, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ctrl.Card(index)
}
