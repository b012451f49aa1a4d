package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier implements Notifier by logging discarded alerts. It is used
// when no webhook is configured.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards alerts with a log message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// SendAlert logs and discards a single alert.
func (n *NoOpNotifier) SendAlert(_ context.Context, alert *AlertPayload) error {
	n.log.Info("new listing",
		"watch", alert.WatchName,
		"title", alert.Title,
		"price", alert.Price,
		"url", alert.URL,
	)
	return nil
}

// SendBatchAlert logs each alert of the batch.
func (n *NoOpNotifier) SendBatchAlert(ctx context.Context, alerts []AlertPayload, watchName string) error {
	n.log.Debug("batch notification discarded (no backend configured)",
		"watch", watchName,
		"count", len(alerts),
	)
	for i := range alerts {
		_ = n.SendAlert(ctx, &alerts[i]) //nolint:errcheck // never fails
	}
	return nil
}
