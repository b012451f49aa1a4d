// Package notify defines the notification interface and implementations
// for new listing alerts.
package notify

import (
	"context"
)

// AlertPayload describes one newly listed item matching a watch.
type AlertPayload struct {
	WatchName  string
	ItemID     int64
	Title      string
	URL        string
	ImageURL   string
	Price      string
	Brand      string
	Size       string
	Condition  string
	Seller     string
	Favourites int
}

// Notifier delivers listing alerts.
type Notifier interface {
	SendAlert(ctx context.Context, alert *AlertPayload) error
	SendBatchAlert(ctx context.Context, alerts []AlertPayload, watchName string) error
}
