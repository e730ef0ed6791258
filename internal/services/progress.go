package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/lehmann314159/wordtrainer/internal/repository"
)

// DefaultProgressKey is the store entry holding the learned word indices
const DefaultProgressKey = "learned_ids"

// ProgressStore tracks the set of learned word indices and persists it as a
// JSON list under a single key. The set only grows; every member is a valid
// catalog index.
type ProgressStore struct {
	kv          repository.KVStore
	key         string
	catalogSize int

	learned []int
	members map[int]struct{}
}

// NewProgressStore creates an empty progress store; call Load to read
// persisted state
func NewProgressStore(kv repository.KVStore, key string, catalogSize int) *ProgressStore {
	if key == "" {
		key = DefaultProgressKey
	}
	return &ProgressStore{
		kv:          kv,
		key:         key,
		catalogSize: catalogSize,
		members:     make(map[int]struct{}),
	}
}

// Load reads the persisted learned set. A missing or malformed entry yields
// an empty set; Load never fails.
func (p *ProgressStore) Load(ctx context.Context) []int {
	p.learned = nil
	p.members = make(map[int]struct{})

	raw, err := p.kv.Get(ctx, p.key)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Printf("progress: failed to read %q, starting empty: %v", p.key, err)
		}
		return p.Learned()
	}

	var stored []int
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		log.Printf("progress: discarding malformed entry %q: %v", p.key, err)
		return p.Learned()
	}

	for _, idx := range stored {
		if !p.valid(idx) {
			log.Printf("progress: dropping out-of-range index %d", idx)
			continue
		}
		p.add(idx)
	}

	return p.Learned()
}

// Save overwrites the persisted set with learned. Duplicates and invalid
// indices are dropped; saving the same set twice writes the same value.
func (p *ProgressStore) Save(ctx context.Context, learned []int) error {
	next := make([]int, 0, len(learned))
	seen := make(map[int]struct{}, len(learned))
	for _, idx := range learned {
		if _, dup := seen[idx]; dup || !p.valid(idx) {
			continue
		}
		seen[idx] = struct{}{}
		next = append(next, idx)
	}

	if err := p.write(ctx, next); err != nil {
		return err
	}

	p.learned = next
	p.members = seen
	return nil
}

// MarkLearned adds index to the set and persists it. It reports whether the
// set changed; an index already present causes no write.
func (p *ProgressStore) MarkLearned(ctx context.Context, index int) (bool, error) {
	if p.Contains(index) {
		return false, nil
	}
	if !p.valid(index) {
		return false, fmt.Errorf("%w: %d", ErrWordIndexOutOfRange, index)
	}

	next := make([]int, len(p.learned), len(p.learned)+1)
	copy(next, p.learned)
	next = append(next, index)

	// The in-memory set changes only after a successful write
	if err := p.write(ctx, next); err != nil {
		return false, err
	}

	p.learned = next
	p.members[index] = struct{}{}
	return true, nil
}

// Contains reports whether index has been learned
func (p *ProgressStore) Contains(index int) bool {
	_, ok := p.members[index]
	return ok
}

// Count returns the number of learned words
func (p *ProgressStore) Count() int {
	return len(p.learned)
}

// Learned returns the learned indices in the order they were learned
func (p *ProgressStore) Learned() []int {
	out := make([]int, len(p.learned))
	copy(out, p.learned)
	return out
}

func (p *ProgressStore) valid(index int) bool {
	return index >= 0 && index < p.catalogSize
}

func (p *ProgressStore) add(index int) {
	if _, ok := p.members[index]; ok {
		return
	}
	p.members[index] = struct{}{}
	p.learned = append(p.learned, index)
}

func (p *ProgressStore) write(ctx context.Context, learned []int) error {
	data, err := json.Marshal(learned)
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}
	if err := p.kv.Set(ctx, p.key, string(data)); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}
