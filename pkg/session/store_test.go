package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Lifecycle(t *testing.T) {
	store := NewStore()

	token := store.Create(42)
	require.NotEmpty(t, token)

	userID, ok := store.Lookup(token)
	assert.True(t, ok)
	assert.Equal(t, uint(42), userID)
	assert.Equal(t, 1, store.Len())

	store.Delete(token)

	_, ok = store.Lookup(token)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestStore_LookupUnknownToken(t *testing.T) {
	store := NewStore()

	_, ok := store.Lookup("not-a-token")
	assert.False(t, ok)
}

func TestStore_TokensAreUnique(t *testing.T) {
	store := NewStore()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token := store.Create(uint(i))
		assert.False(t, seen[token], "token issued twice: %s", token)
		seen[token] = true
	}
	assert.Equal(t, 100, store.Len())
}

func TestStore_SameUserMultipleSessions(t *testing.T) {
	store := NewStore()

	first := store.Create(7)
	second := store.Create(7)
	require.NotEqual(t, first, second)

	store.Delete(first)

	userID, ok := store.Lookup(second)
	assert.True(t, ok)
	assert.Equal(t, uint(7), userID)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	store := NewStore()

	var wg sync.WaitGroup
	tokens := make([]string, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tokens[i] = store.Create(uint(i))
		}(i)
	}
	wg.Wait()

	for i, token := range tokens {
		userID, ok := store.Lookup(token)
		require.True(t, ok, fmt.Sprintf("session %d missing", i))
		assert.Equal(t, uint(i), userID)
	}
}

func TestStore_CloseDropsSessions(t *testing.T) {
	store := NewStore()
	token := store.Create(1)

	store.Close()

	_, ok := store.Lookup(token)
	assert.False(t, ok)

	// New sessions after close are not kept.
	after := store.Create(2)
	_, ok = store.Lookup(after)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}
