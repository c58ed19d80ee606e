package question

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/db/models"
)

type stubLister struct {
	rows       []models.Question
	err        error
	categoryID int64
	exclude    []int64
}

func (s *stubLister) ListExcluding(_ context.Context, categoryID int64, excludeIDs []int64) ([]models.Question, error) {
	s.categoryID = categoryID
	s.exclude = excludeIDs
	return s.rows, s.err
}

func TestSelectorReturnsNilWhenPoolEmpty(t *testing.T) {
	sel := NewSelector(&stubLister{}, fixedRand(0))

	got, err := sel.Next(context.Background(), 3, []int64{1, 2})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSelectorPicksWithInjectedSource(t *testing.T) {
	lister := &stubLister{rows: []models.Question{
		{ID: 10, Question: "a", Category: 2},
		{ID: 11, Question: "b", Category: 2},
		{ID: 12, Question: "c", Category: 2},
	}}
	sel := NewSelector(lister, fixedRand(1))

	got, err := sel.Next(context.Background(), 2, []int64{9})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(11), got.ID)
	assert.Equal(t, int64(2), lister.categoryID)
	assert.Equal(t, []int64{9}, lister.exclude)
}

func TestSelectorPropagatesStoreError(t *testing.T) {
	sel := NewSelector(&stubLister{err: errStoreDown}, nil)

	_, err := sel.Next(context.Background(), AllCategories, nil)
	assert.ErrorIs(t, err, errStoreDown)
}

func TestSelectorSeededSourceIsDeterministic(t *testing.T) {
	rows := make([]models.Question, 20)
	for i := range rows {
		rows[i] = models.Question{ID: int64(i + 1)}
	}

	draw := func() []int64 {
		sel := NewSelector(&stubLister{rows: rows}, NewRandSource(42))
		var ids []int64
		for i := 0; i < 10; i++ {
			got, err := sel.Next(context.Background(), AllCategories, nil)
			require.NoError(t, err)
			ids = append(ids, got.ID)
		}
		return ids
	}

	assert.Equal(t, draw(), draw())
}

func TestSelectorConcurrentUse(t *testing.T) {
	rows := []models.Question{{ID: 1}, {ID: 2}, {ID: 3}}
	sel := NewSelector(&stubLister{rows: rows}, NewRandSource(7))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				got, err := sel.Next(context.Background(), AllCategories, nil)
				if assert.NoError(t, err) && assert.NotNil(t, got) {
					assert.Contains(t, []int64{1, 2, 3}, got.ID)
				}
			}
		}()
	}
	wg.Wait()
}
