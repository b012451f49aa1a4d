package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/donaldgifford/vinted-search/internal/vinted"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, ttl time.Duration, now func() time.Time) (*httptest.Server, *sessions) {
	t.Helper()
	s := newSessions(ttl, now)
	srv := httptest.NewServer(newMux(testLogger(), generatedItems(60), s))
	t.Cleanup(srv.Close)
	return srv, s
}

func newClient(srv *httptest.Server) *vinted.Client {
	return vinted.New(
		vinted.WithHTTPClient(srv.Client()),
		vinted.WithCookieStore(vinted.NewMemoryStore(vinted.WithFallback(nil))),
		vinted.WithSiteURL(func(string) string { return srv.URL }),
	)
}

func TestLoadFixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	data, err := json.Marshal(catalogResponse{Items: generatedItems(3)})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	fixture, err := loadFixture(path)
	if err != nil {
		t.Fatalf("loadFixture: %v", err)
	}
	if len(fixture.Items) != 3 {
		t.Errorf("items=%d, want 3", len(fixture.Items))
	}

	if _, err := loadFixture(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing fixture")
	}
}

func TestRootHandler_RotatesCookie(t *testing.T) {
	s := newSessions(0, time.Now)
	handler := rootHandler(testLogger(), s)

	first := httptest.NewRecorder()
	handler(first, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	second := httptest.NewRecorder()
	handler(second, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	cookies := first.Header().Values("Set-Cookie")
	if len(cookies) != 2 || !strings.HasPrefix(cookies[1], "access_token_web=") {
		t.Fatalf("Set-Cookie=%v, want anon_id and access_token_web", cookies)
	}
	tok1 := strings.Split(cookies[1], ";")[0]
	tok2 := strings.Split(second.Header().Values("Set-Cookie")[1], ";")[0]
	if tok1 == tok2 {
		t.Error("expected a new token on every visit")
	}
	if s.valid(tok1) {
		t.Error("expected the older token to be revoked")
	}
	if !s.valid(tok2) {
		t.Error("expected the latest token to be valid")
	}
}

func TestRequire_RejectsMissingCookie(t *testing.T) {
	srv, _ := newTestServer(t, 0, time.Now)

	resp, err := srv.Client().Get(srv.URL + "/api/v2/catalog/items")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status=%d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != invalidTokenBody {
		t.Errorf("body=%s", body)
	}
}

func TestCatalogHandler_FilterAndPaginate(t *testing.T) {
	handler := catalogHandler(testLogger(), generatedItems(50))

	tests := []struct {
		name      string
		query     string
		wantItems int
		wantTotal int
		wantPages int
	}{
		{name: "default page size", query: "", wantItems: 24, wantTotal: 50, wantPages: 3},
		{name: "text filter", query: "search_text=samba&per_page=96", wantItems: 10, wantTotal: 10, wantPages: 1},
		{name: "last page", query: "per_page=20&page=3", wantItems: 10, wantTotal: 50, wantPages: 3},
		{name: "past the end", query: "per_page=20&page=9", wantItems: 0, wantTotal: 50, wantPages: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v2/catalog/items?"+tt.query, http.NoBody)
			w := httptest.NewRecorder()
			handler(w, req)

			var resp catalogResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if len(resp.Items) != tt.wantItems {
				t.Errorf("items=%d, want %d", len(resp.Items), tt.wantItems)
			}
			if resp.Pagination.TotalEntries != tt.wantTotal {
				t.Errorf("total=%d, want %d", resp.Pagination.TotalEntries, tt.wantTotal)
			}
			if resp.Pagination.TotalPages != tt.wantPages {
				t.Errorf("pages=%d, want %d", resp.Pagination.TotalPages, tt.wantPages)
			}
		})
	}
}

func TestClientAgainstMock_Search(t *testing.T) {
	srv, _ := newTestServer(t, 0, time.Now)
	c := newClient(srv)

	data, err := c.Search(context.Background(),
		"https://www.vinted.fr/catalog?search_text=levi&per_page=5", nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	resp, err := vinted.DecodeCatalog(data)
	if err != nil {
		t.Fatalf("DecodeCatalog: %v", err)
	}
	if len(resp.Items) != 5 {
		t.Fatalf("items=%d, want 5", len(resp.Items))
	}
	if resp.Items[0].Price.CurrencyCode != "EUR" {
		t.Errorf("currency=%q, want EUR", resp.Items[0].Price.CurrencyCode)
	}
}

func TestClientAgainstMock_ExpiredCookieRecovers(t *testing.T) {
	var offset atomic.Int64
	start := time.Now()
	clock := func() time.Time { return start.Add(time.Duration(offset.Load())) }
	srv, _ := newTestServer(t, time.Minute, clock)
	c := newClient(srv)
	ctx := context.Background()
	url := "https://www.vinted.fr/catalog?search_text=nike"

	if _, err := c.Search(ctx, url, nil); err != nil {
		t.Fatalf("first search: %v", err)
	}

	offset.Store(int64(2 * time.Minute))
	if _, err := c.Search(ctx, url, nil); err == nil {
		t.Fatal("expected the expired cookie to be rejected")
	}
	c.Wait()

	if _, err := c.Search(ctx, url, nil); err != nil {
		t.Fatalf("search after refresh: %v", err)
	}
}

func TestClientAgainstMock_Brands(t *testing.T) {
	srv, _ := newTestServer(t, 0, time.Now)
	c := newClient(srv)

	data, err := c.Brands(context.Background(), "nike", "")
	if err != nil {
		t.Fatalf("Brands: %v", err)
	}
	resp, err := vinted.DecodeBrands(data)
	if err != nil {
		t.Fatalf("DecodeBrands: %v", err)
	}
	if len(resp.Brands) != 1 || resp.Brands[0].ID != 53 {
		t.Errorf("brands=%+v, want only Nike", resp.Brands)
	}
}
