package session

import (
	"sync"
	"testing"
	"time"

	"mindcare-be/internal/repository/memory"
	"mindcare-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager() *Manager {
	return NewManager(memory.NewSessionRepository(time.Hour, time.Minute))
}

func TestLoadOrCreate(t *testing.T) {
	m := newManager()

	s, created := m.LoadOrCreate("")
	require.True(t, created)
	assert.NotEmpty(t, s.ID)

	again, created := m.LoadOrCreate(s.ID)
	assert.False(t, created)
	assert.Same(t, s, again)

	unknown, created := m.LoadOrCreate("evicted-id")
	assert.True(t, created)
	assert.Equal(t, "evicted-id", unknown.ID)
	assert.Empty(t, unknown.History)
	assert.False(t, unknown.InQuestionnaire())
}

func TestLoadOrCreateConcurrentSameId(t *testing.T) {
	m := newManager()

	var wg sync.WaitGroup
	got := make([]*store.Session, 32)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i], _ = m.LoadOrCreate("shared")
		}(i)
	}
	wg.Wait()

	for _, s := range got {
		assert.Same(t, got[0], s)
	}
}

func TestGetAndDelete(t *testing.T) {
	m := newManager()
	s := m.Create()

	_, ok := m.Get(s.ID)
	assert.True(t, ok)

	m.Delete(s.ID)
	_, ok = m.Get(s.ID)
	assert.False(t, ok)
}
