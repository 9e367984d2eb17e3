package memory

import (
	"testing"
	"time"

	"mindcare-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository(t *testing.T) {
	repo := NewSessionRepository(time.Hour, time.Minute)

	s := store.NewSession("a")
	require.True(t, repo.Add(s))
	assert.False(t, repo.Add(store.NewSession("a")))

	got, ok := repo.Get("a")
	require.True(t, ok)
	assert.Same(t, s, got)
	assert.Equal(t, 1, repo.Count())

	repo.Delete("a")
	_, ok = repo.Get("a")
	assert.False(t, ok)
}

func TestSessionRepositoryExpires(t *testing.T) {
	repo := NewSessionRepository(20*time.Millisecond, time.Hour)
	repo.Save(store.NewSession("b"))

	time.Sleep(40 * time.Millisecond)
	_, ok := repo.Get("b")
	assert.False(t, ok)
}
