package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/donaldgifford/vinted-search/internal/metrics"
)

const (
	colorTeal = 0x09B1BA // listing
	colorGrey = 0x95A5A6 // overflow summary

	// Discord allows max 10 embeds per message.
	maxEmbeds = 10
)

// ErrRateLimited is returned when Discord answers 429.
var ErrRateLimited = errors.New("discord rate limited (429)")

// DiscordNotifier implements Notifier via Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

type discordWebhookPayload struct {
	Content string         `json:"content,omitempty"`
	Embeds  []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	URL         string              `json:"url,omitempty"`
	Color       int                 `json:"color"`
	Description string              `json:"description,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
	Image       *discordImage       `json:"image,omitempty"`
	Footer      *discordFooter      `json:"footer,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordImage struct {
	URL string `json:"url"`
}

type discordFooter struct {
	Text string `json:"text"`
}

// SendAlert sends a single alert as a Discord embed.
func (d *DiscordNotifier) SendAlert(ctx context.Context, alert *AlertPayload) error {
	return d.post(ctx, discordWebhookPayload{
		Embeds: []discordEmbed{buildEmbed(alert)},
	})
}

// SendBatchAlert sends up to ten alerts as a single Discord message. Larger
// batches are summarized by a trailing embed.
func (d *DiscordNotifier) SendBatchAlert(
	ctx context.Context,
	alerts []AlertPayload,
	watchName string,
) error {
	if len(alerts) == 0 {
		return nil
	}

	limit := min(len(alerts), maxEmbeds)
	if len(alerts) > maxEmbeds {
		limit = maxEmbeds - 1
	}

	embeds := make([]discordEmbed, 0, maxEmbeds)
	for i := range limit {
		embeds = append(embeds, buildEmbed(&alerts[i]))
	}

	if rest := len(alerts) - limit; rest > 0 {
		embeds = append(embeds, discordEmbed{
			Title:       fmt.Sprintf("... and %d more new listings for %s", rest, watchName),
			Color:       colorGrey,
			Description: "Open the watch URL to see all of them.",
		})
	}

	return d.post(ctx, discordWebhookPayload{
		Content: fmt.Sprintf("%d new listings for **%s**", len(alerts), watchName),
		Embeds:  embeds,
	})
}

func buildEmbed(alert *AlertPayload) discordEmbed {
	embed := discordEmbed{
		Title: alert.Title,
		URL:   alert.URL,
		Color: colorTeal,
	}

	for _, f := range []discordEmbedField{
		{Name: "Price", Value: alert.Price, Inline: true},
		{Name: "Brand", Value: alert.Brand, Inline: true},
		{Name: "Size", Value: alert.Size, Inline: true},
		{Name: "Condition", Value: alert.Condition, Inline: true},
		{Name: "Seller", Value: alert.Seller, Inline: true},
		{Name: "Favourites", Value: strconv.Itoa(alert.Favourites), Inline: true},
	} {
		// Discord rejects embeds with empty field values.
		if f.Value != "" {
			embed.Fields = append(embed.Fields, f)
		}
	}

	if alert.ImageURL != "" {
		embed.Image = &discordImage{URL: alert.ImageURL}
	}
	if alert.WatchName != "" {
		embed.Footer = &discordFooter{Text: alert.WatchName}
	}

	return embed
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) error {
	start := time.Now()
	defer func() {
		metrics.NotificationDuration.Observe(time.Since(start).Seconds())
	}()

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.webhookURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return ErrRateLimited
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}
