// Package engine polls saved catalog searches and notifies about listings
// that were not present in the previous polls.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/donaldgifford/vinted-search/internal/metrics"
	"github.com/donaldgifford/vinted-search/internal/notify"
	"github.com/donaldgifford/vinted-search/internal/vinted"
)

const defaultMaxSeen = 5000

// Watch is a saved catalog search.
type Watch struct {
	Name   string
	URL    string
	Params map[string]string
}

// Engine runs watches against the Vinted API and tracks which listings each
// watch has already reported. The first successful poll of a watch only
// records the current listings.
type Engine struct {
	client   vinted.VintedClient
	notifier notify.Notifier
	watches  []Watch
	log      *slog.Logger

	staggerOffset time.Duration
	maxSeen       int

	mu   sync.Mutex
	seen map[string]map[int64]struct{}
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// WithStaggerOffset sets the delay between polling each watch.
func WithStaggerOffset(d time.Duration) EngineOption {
	return func(e *Engine) {
		e.staggerOffset = d
	}
}

// WithMaxSeen bounds the number of remembered listing IDs per watch. When
// exceeded, only the IDs of the latest response are kept.
func WithMaxSeen(n int) EngineOption {
	return func(e *Engine) {
		e.maxSeen = n
	}
}

// NewEngine creates a new Engine with injected dependencies.
func NewEngine(
	c vinted.VintedClient,
	n notify.Notifier,
	watches []Watch,
	opts ...EngineOption,
) *Engine {
	eng := &Engine{
		client:        c,
		notifier:      n,
		watches:       watches,
		log:           slog.Default(),
		staggerOffset: 2 * time.Second,
		maxSeen:       defaultMaxSeen,
		seen:          make(map[string]map[int64]struct{}, len(watches)),
	}
	for _, opt := range opts {
		opt(eng)
	}
	return eng
}

// Watches returns the configured watches.
func (eng *Engine) Watches() []Watch {
	return eng.watches
}

// Seen returns how many listing IDs are remembered for the named watch.
func (eng *Engine) Seen(name string) int {
	eng.mu.Lock()
	defer eng.mu.Unlock()
	return len(eng.seen[name])
}

// RunPoll polls every watch once. Watch failures are logged and do not stop
// the cycle, except an exhausted daily API budget.
func (eng *Engine) RunPoll(ctx context.Context) error {
	start := time.Now()
	defer func() {
		metrics.WatchPollDuration.Observe(time.Since(start).Seconds())
	}()

	for i := range eng.watches {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		w := &eng.watches[i]
		eng.log.Debug("polling watch", "name", w.Name)

		err := eng.PollWatch(ctx, w)
		metrics.WatchPollsTotal.WithLabelValues(pollOutcome(err)).Inc()

		if err != nil {
			switch {
			case errors.Is(err, vinted.ErrDailyLimitReached):
				eng.log.Warn("daily API limit reached, stopping poll", "watch", w.Name)
				return nil
			case errors.Is(err, vinted.ErrAuthExpired):
				eng.log.Warn("session cookie expired, watch will be retried next cycle", "watch", w.Name)
			default:
				eng.log.Error("watch poll failed", "watch", w.Name, "error", err)
			}
		}

		if i < len(eng.watches)-1 && eng.staggerOffset > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(eng.staggerOffset):
			}
		}
	}

	return nil
}

// PollWatch searches one watch and sends its new listings as one batch.
func (eng *Engine) PollWatch(ctx context.Context, w *Watch) error {
	data, err := eng.client.Search(ctx, w.URL, w.Params)
	if err != nil {
		return fmt.Errorf("searching watch %q: %w", w.Name, err)
	}

	resp, err := vinted.DecodeCatalog(data)
	if err != nil {
		return fmt.Errorf("decoding watch %q: %w", w.Name, err)
	}

	fresh, primed := eng.diff(w.Name, resp.Items)
	if !primed {
		eng.log.Info("watch primed", "watch", w.Name, "listings", len(resp.Items))
		return nil
	}
	if len(fresh) == 0 {
		return nil
	}

	metrics.WatchNewItemsTotal.Add(float64(len(fresh)))
	eng.log.Info("new listings found", "watch", w.Name, "count", len(fresh))

	alerts := make([]notify.AlertPayload, 0, len(fresh))
	for i := range fresh {
		alerts = append(alerts, toAlert(w.Name, &fresh[i]))
	}

	if err := eng.notifier.SendBatchAlert(ctx, alerts, w.Name); err != nil {
		metrics.NotificationFailuresTotal.Inc()
		return fmt.Errorf("notifying watch %q: %w", w.Name, err)
	}
	return nil
}

// diff records items as seen for the watch and returns those that were not
// seen before. primed is false on the first call for a watch.
func (eng *Engine) diff(name string, items []vinted.Item) (fresh []vinted.Item, primed bool) {
	eng.mu.Lock()
	defer eng.mu.Unlock()

	set, primed := eng.seen[name]
	if !primed {
		set = make(map[int64]struct{}, len(items))
		eng.seen[name] = set
	}

	for i := range items {
		if _, ok := set[items[i].ID]; ok {
			continue
		}
		set[items[i].ID] = struct{}{}
		if primed {
			fresh = append(fresh, items[i])
		}
	}

	if eng.maxSeen > 0 && len(set) > eng.maxSeen {
		trimmed := make(map[int64]struct{}, len(items))
		for i := range items {
			trimmed[items[i].ID] = struct{}{}
		}
		eng.seen[name] = trimmed
	}

	return fresh, primed
}

func toAlert(watchName string, item *vinted.Item) notify.AlertPayload {
	a := notify.AlertPayload{
		WatchName:  watchName,
		ItemID:     item.ID,
		Title:      item.Title,
		URL:        item.URL,
		Price:      item.DisplayPrice(),
		Brand:      item.BrandTitle,
		Size:       item.SizeTitle,
		Condition:  item.Status,
		Favourites: item.FavouriteCount,
	}
	if item.Photo != nil {
		a.ImageURL = item.Photo.URL
	}
	if item.User != nil {
		a.Seller = item.User.Login
	}
	return a
}

func pollOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, vinted.ErrDailyLimitReached):
		return "rate_limited"
	case errors.Is(err, vinted.ErrAuthExpired):
		return "auth_expired"
	default:
		return "error"
	}
}
