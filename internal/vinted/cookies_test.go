package vinted_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/vinted-search/internal/vinted"
)

func TestMemoryStore_SetGetClear(t *testing.T) {
	t.Parallel()

	s := vinted.NewMemoryStore(vinted.WithFallback(nil))

	_, ok := s.Get("fr")
	assert.False(t, ok)

	s.Set("fr", "access_token_web=a")
	s.Set("de", "access_token_web=b")
	s.Set("fr", "access_token_web=c")

	got, ok := s.Get("fr")
	require.True(t, ok)
	assert.Equal(t, "access_token_web=c", got)
	got, ok = s.Get("de")
	require.True(t, ok)
	assert.Equal(t, "access_token_web=b", got)

	s.Clear()
	for _, variant := range []string{"fr", "de"} {
		_, ok = s.Get(variant)
		assert.False(t, ok, variant)
	}
}

func TestMemoryStore_EnvFallback(t *testing.T) {
	t.Setenv("VINTED_API_FR_COOKIE", "access_token_web=from-env")

	s := vinted.NewMemoryStore()

	got, ok := s.Get("fr")
	require.True(t, ok)
	assert.Equal(t, "access_token_web=from-env", got)

	// Stored entries take precedence over the environment.
	s.Set("fr", "access_token_web=stored")
	got, _ = s.Get("fr")
	assert.Equal(t, "access_token_web=stored", got)

	// Clearing falls through to the environment again.
	s.Clear()
	got, ok = s.Get("fr")
	require.True(t, ok)
	assert.Equal(t, "access_token_web=from-env", got)

	_, ok = s.Get("de")
	assert.False(t, ok)
}

func TestMemoryStore_EnvFallbackEmptyValue(t *testing.T) {
	t.Setenv("VINTED_API_IT_COOKIE", "")

	s := vinted.NewMemoryStore()
	_, ok := s.Get("it")
	assert.False(t, ok)
}

func TestCookieEnvName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "VINTED_API_FR_COOKIE", vinted.CookieEnvName("VINTED_API", "fr"))
	assert.Equal(t, "MY_COM_COOKIE", vinted.CookieEnvName("MY", "com"))
}

func TestChainFallback(t *testing.T) {
	t.Parallel()

	s := vinted.NewMemoryStore(vinted.WithFallback(vinted.ChainFallback(
		nil,
		vinted.StaticFallback(map[string]string{"fr": "access_token_web=static-fr"}),
		vinted.StaticFallback(map[string]string{"fr": "ignored", "de": "access_token_web=static-de"}),
	)))

	got, ok := s.Get("fr")
	require.True(t, ok)
	assert.Equal(t, "access_token_web=static-fr", got)

	got, ok = s.Get("de")
	require.True(t, ok)
	assert.Equal(t, "access_token_web=static-de", got)

	_, ok = s.Get("es")
	assert.False(t, ok)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	s := vinted.NewMemoryStore(vinted.WithFallback(nil))
	variants := []string{"fr", "de", "es", "it"}

	const goroutines = 32

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := range goroutines {
		go func() {
			defer wg.Done()
			v := variants[i%len(variants)]
			for j := range 100 {
				s.Set(v, fmt.Sprintf("access_token_web=%s-%d", v, j))
				got, ok := s.Get(v)
				assert.True(t, ok)
				assert.Contains(t, got, "access_token_web="+v+"-")
			}
		}()
	}
	wg.Wait()

	for _, v := range variants {
		got, ok := s.Get(v)
		require.True(t, ok, v)
		assert.Equal(t, "access_token_web="+v+"-99", got)
	}
}
