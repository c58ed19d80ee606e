package question

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gokatarajesh/trivia-api/internal/db/models"
)

// AllCategories is the quiz category id that draws from every category.
const AllCategories int64 = 0

// RandSource picks an index in [0, n).
type RandSource interface {
	IntN(n int) int
}

// NewRandSource returns a PCG source. A zero seed is replaced by the clock.
func NewRandSource(seed int64) RandSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

type candidateLister interface {
	ListExcluding(ctx context.Context, categoryID int64, excludeIDs []int64) ([]models.Question, error)
}

// Selector draws a random question the player has not seen yet.
type Selector struct {
	repo candidateLister

	mu  sync.Mutex
	rnd RandSource
}

func NewSelector(repo candidateLister, rnd RandSource) *Selector {
	if rnd == nil {
		rnd = NewRandSource(0)
	}
	return &Selector{repo: repo, rnd: rnd}
}

// Next returns a uniformly random question from categoryID (or any category
// for AllCategories) that is not in exclude, or nil when none remain.
func (s *Selector) Next(ctx context.Context, categoryID int64, exclude []int64) (*Question, error) {
	pool, err := s.repo.ListExcluding(ctx, categoryID, exclude)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, nil
	}

	s.mu.Lock()
	idx := s.rnd.IntN(len(pool))
	s.mu.Unlock()

	picked := toDomain(pool[idx])
	return &picked, nil
}
