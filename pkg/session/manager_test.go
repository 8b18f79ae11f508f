package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_CreateAndGet(t *testing.T) {
	m := NewManager(time.Hour)

	created := m.Create("token-a", "keerthan", nil)
	require.NotNil(t, created.Leads)
	require.NotNil(t, created.Walkins)

	got, ok := m.Get("token-a")
	require.True(t, ok)
	assert.Equal(t, "keerthan", got.Username)
	assert.Same(t, created, got)

	_, ok = m.Get("token-b")
	assert.False(t, ok)
}

func TestManager_ExpiredSessionRefused(t *testing.T) {
	m := NewManager(time.Millisecond)
	m.Create("token-a", "keerthan", nil)

	time.Sleep(5 * time.Millisecond)

	_, ok := m.Get("token-a")
	assert.False(t, ok)
	assert.Equal(t, 0, m.Count(), "an expired session is dropped on access")
}

func TestManager_Sweep(t *testing.T) {
	m := NewManager(time.Minute)
	m.Create("token-a", "a", nil).CreatedAt = time.Now().Add(-2 * time.Minute)
	m.Create("token-b", "b", nil).CreatedAt = time.Now().Add(-90 * time.Second)
	m.Create("token-c", "c", nil)

	removed := m.Sweep()

	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, m.Count())
	_, ok := m.Get("token-c")
	assert.True(t, ok)
}

func TestManager_Delete(t *testing.T) {
	m := NewManager(time.Hour)
	m.Create("token-a", "keerthan", nil)

	m.Delete("token-a")

	_, ok := m.Get("token-a")
	assert.False(t, ok)
}

func TestSession_RememberView(t *testing.T) {
	m := NewManager(time.Hour)
	s := m.Create("tok", "maria", nil)

	assert.False(t, s.RememberView("leads", "a"), "first sighting is not a change")
	assert.False(t, s.RememberView("leads", "a"))
	assert.True(t, s.RememberView("leads", "b"))
	assert.False(t, s.RememberView("walkin", "a"), "kinds tracked independently")
}
