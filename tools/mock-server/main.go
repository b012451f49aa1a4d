// Package main implements a mock Vinted site for local development. It hands
// out rotating session cookies from the site root and serves catalog and
// brands endpoints that reject stale cookies the way the real API does.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

const invalidTokenBody = `{"code":100,"message":"Token d'authentification invalide","message_code":"invalid_authentication_token"}`

type catalogResponse struct {
	Items      []json.RawMessage `json:"items"`
	Pagination pagination        `json:"pagination"`
}

type pagination struct {
	CurrentPage  int `json:"current_page"`
	TotalPages   int `json:"total_pages"`
	TotalEntries int `json:"total_entries"`
	PerPage      int `json:"per_page"`
}

type itemSummary struct {
	Title string `json:"title"`
}

type brand struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	ItemCount int    `json:"item_count"`
}

var brands = []brand{
	{ID: 53, Title: "Nike", Slug: "nike", ItemCount: 2401337},
	{ID: 14, Title: "Adidas", Slug: "adidas", ItemCount: 1803212},
	{ID: 7, Title: "H&M", Slug: "h-m", ItemCount: 3120554},
	{ID: 10, Title: "Levi's", Slug: "levis", ItemCount: 602118},
	{ID: 73952, Title: "Stone Island", Slug: "stone-island", ItemCount: 48210},
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	fixtureFile := flag.String("fixture", "", "path to a catalog response fixture (generated items when empty)")
	tokenTTL := flag.Duration("token-ttl", 10*time.Minute, "lifetime of issued session cookies, 0 for no expiry")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	items := generatedItems(120)
	if *fixtureFile != "" {
		fixture, err := loadFixture(*fixtureFile)
		if err != nil {
			logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
			os.Exit(1)
		}
		items = fixture.Items
	}
	logger.Info("loaded items", "count", len(items))

	sessions := newSessions(*tokenTTL, time.Now)

	mux := newMux(logger, items, sessions)

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock Vinted server", "addr", addr, "token_ttl", *tokenTTL)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newMux(logger *slog.Logger, items []json.RawMessage, s *sessions) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", rootHandler(logger, s))
	mux.HandleFunc("GET /api/v2/catalog/items", s.require(catalogHandler(logger, items)))
	mux.HandleFunc("GET /api/v2/brands", s.require(brandsHandler()))
	return mux
}

func loadFixture(path string) (*catalogResponse, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var resp catalogResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &resp, nil
}

// generatedItems returns n listings, newest first.
func generatedItems(n int) []json.RawMessage {
	titles := []string{"Nike Air Max 90", "Adidas Samba OG", "Levi's 501 jeans", "Stone Island overshirt", "H&M wool coat"}
	items := make([]json.RawMessage, 0, n)
	for i := range n {
		id := int64(4000000000 - i)
		title := titles[i%len(titles)]
		item := map[string]any{
			"id":              id,
			"title":           title,
			"price":           map[string]string{"amount": strconv.Itoa(10 + i%90) + ".0", "currency_code": "EUR"},
			"url":             fmt.Sprintf("https://www.vinted.fr/items/%d", id),
			"brand_title":     strings.Fields(title)[0],
			"size_title":      "M",
			"status":          "Very good",
			"favourite_count": i % 17,
			"photo":           map[string]string{"url": fmt.Sprintf("https://images.example/%d.jpg", id)},
			"user":            map[string]any{"id": 1000 + i%7, "login": fmt.Sprintf("seller%d", i%7)},
		}
		raw, _ := json.Marshal(item) //nolint:errcheck // map of plain values always encodes
		items = append(items, raw)
	}
	return items
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

// sessions tracks the single valid session cookie.
type sessions struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	n       int
	current string
	expires time.Time
}

func newSessions(ttl time.Duration, now func() time.Time) *sessions {
	return &sessions{ttl: ttl, now: now}
}

// issue rotates the session cookie. Older cookies stop working.
func (s *sessions) issue() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	s.current = fmt.Sprintf("access_token_web=mock-%d-%d", os.Getpid(), s.n)
	s.expires = s.now().Add(s.ttl)
	return s.current
}

func (s *sessions) valid(cookie string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == "" || cookie != s.current {
		return false
	}
	return s.ttl <= 0 || s.now().Before(s.expires)
}

func (s *sessions) require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.valid(r.Header.Get("Cookie")) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(invalidTokenBody)) //nolint:errcheck // best-effort write in mock server
			return
		}
		next(w, r)
	}
}

func rootHandler(logger *slog.Logger, s *sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		tok := s.issue()
		w.Header().Add("Set-Cookie", "anon_id=mock; Path=/")
		w.Header().Add("Set-Cookie", tok+"; Path=/; HttpOnly; Secure")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<!doctype html><title>Vinted</title>")) //nolint:errcheck // best-effort write in mock server
		logger.Info("issued session cookie")
	}
}

func catalogHandler(logger *slog.Logger, all []json.RawMessage) http.HandlerFunc {
	type indexedItem struct {
		raw   json.RawMessage
		title string
	}
	items := make([]indexedItem, 0, len(all))
	for _, raw := range all {
		var s itemSummary
		//nolint:errcheck,gosec // fixture data is trusted; title extraction is best-effort
		json.Unmarshal(raw, &s)
		items = append(items, indexedItem{raw: raw, title: strings.ToLower(s.Title)})
	}

	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		text := strings.ToLower(q.Get("search_text"))
		perPage := positiveInt(q.Get("per_page"), 24)
		page := positiveInt(q.Get("page"), 1)

		var matched []json.RawMessage
		for _, item := range items {
			if text == "" || strings.Contains(item.title, text) {
				matched = append(matched, item.raw)
			}
		}

		total := len(matched)
		start := (page - 1) * perPage
		if start >= total {
			matched = []json.RawMessage{}
		} else {
			matched = matched[start:min(start+perPage, total)]
		}

		resp := catalogResponse{
			Items: matched,
			Pagination: pagination{
				CurrentPage:  page,
				TotalPages:   (total + perPage - 1) / perPage,
				TotalEntries: total,
				PerPage:      perPage,
			},
		}

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(resp)
		logger.Info("catalog", "search_text", text, "matched", total, "returned", len(matched), "page", page)
	}
}

func brandsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kw := strings.ToLower(r.URL.Query().Get("keyword"))
		matched := []brand{}
		for _, b := range brands {
			if strings.Contains(strings.ToLower(b.Title), kw) {
				matched = append(matched, b)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(map[string]any{"brands": matched})
	}
}

func positiveInt(s string, def int) int {
	if v, err := strconv.Atoi(s); err == nil && v > 0 {
		return v
	}
	return def
}
