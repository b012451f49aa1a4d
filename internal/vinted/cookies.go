package vinted

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// DefaultCookieEnvPrefix prefixes the environment variables consulted for
// fallback cookies, e.g. VINTED_API_FR_COOKIE.
const DefaultCookieEnvPrefix = "VINTED_API"

// CookieStore holds the current session cookie per site variant.
type CookieStore interface {
	Get(variant string) (string, bool)
	Set(variant, cookie string)
	Clear()
}

// FallbackFunc supplies a cookie for a variant when the store has none.
type FallbackFunc func(variant string) (string, bool)

// EnvFallback reads <prefix>_<VARIANT>_COOKIE from the environment.
func EnvFallback(prefix string) FallbackFunc {
	return func(variant string) (string, bool) {
		v, ok := os.LookupEnv(CookieEnvName(prefix, variant))
		if !ok || v == "" {
			return "", false
		}
		return v, true
	}
}

// CookieEnvName returns the environment variable name holding the
// fallback cookie for variant.
func CookieEnvName(prefix, variant string) string {
	return fmt.Sprintf("%s_%s_COOKIE", prefix, strings.ToUpper(variant))
}

// StaticFallback serves cookies from a fixed map keyed by variant.
func StaticFallback(cookies map[string]string) FallbackFunc {
	return func(variant string) (string, bool) {
		v, ok := cookies[variant]
		if !ok || v == "" {
			return "", false
		}
		return v, true
	}
}

// ChainFallback tries each fallback in order.
func ChainFallback(fallbacks ...FallbackFunc) FallbackFunc {
	return func(variant string) (string, bool) {
		for _, f := range fallbacks {
			if f == nil {
				continue
			}
			if v, ok := f(variant); ok {
				return v, true
			}
		}
		return "", false
	}
}

// MemoryStore is an in-memory CookieStore. Entries live until Clear is
// called or they are overwritten. Safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	cookies  map[string]string
	fallback FallbackFunc
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithFallback replaces the environment fallback. Pass nil to disable
// fallbacks entirely.
func WithFallback(f FallbackFunc) MemoryStoreOption {
	return func(s *MemoryStore) {
		s.fallback = f
	}
}

// NewMemoryStore creates a store that falls back to
// VINTED_API_<VARIANT>_COOKIE environment variables.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		cookies:  make(map[string]string),
		fallback: EnvFallback(DefaultCookieEnvPrefix),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the stored cookie for variant, then the fallback value.
func (s *MemoryStore) Get(variant string) (string, bool) {
	s.mu.RLock()
	v, ok := s.cookies[variant]
	s.mu.RUnlock()
	if ok {
		return v, true
	}

	if s.fallback == nil {
		return "", false
	}
	return s.fallback(strings.ToLower(variant))
}

// Set stores cookie for variant, overwriting any previous value.
func (s *MemoryStore) Set(variant, cookie string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cookies[variant] = cookie
}

// Clear removes every stored cookie. Fallbacks still apply afterwards.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.cookies)
}
