package services

import (
	"context"
	"fmt"

	"github.com/lehmann314159/wordtrainer/internal/models"
	"github.com/lehmann314159/wordtrainer/internal/repository"
)

// countingStore counts writes and can be told to fail them
type countingStore struct {
	*repository.MemoryStore
	sets    int
	failSet error
}

func newCountingStore() *countingStore {
	return &countingStore{MemoryStore: repository.NewMemoryStore()}
}

func (s *countingStore) Set(ctx context.Context, key, value string) error {
	if s.failSet != nil {
		return s.failSet
	}
	s.sets++
	return s.MemoryStore.Set(ctx, key, value)
}

func testWords(n int) []models.Word {
	words := make([]models.Word, n)
	for i := range words {
		words[i] = models.Word{
			Word:    fmt.Sprintf("word%d", i),
			Meaning: fmt.Sprintf("meaning %d", i),
		}
	}
	return words
}

// swapFirstTwo is a deterministic Shuffler
func swapFirstTwo(n int, swap func(i, j int)) {
	if n > 1 {
		swap(0, 1)
	}
}

// noShuffle keeps the original order
func noShuffle(int, func(i, j int)) {}

type setOf map[int]bool

func (s setOf) Contains(i int) bool { return s[i] }
