package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/vinted-search/internal/engine"
)

// WatchRunner is the part of the watch engine exposed over HTTP.
type WatchRunner interface {
	RunPoll(ctx context.Context) error
	Watches() []engine.Watch
	Seen(name string) int
}

// WatchesHandler lists watches and triggers polls.
type WatchesHandler struct {
	runner WatchRunner
}

// NewWatchesHandler creates a new WatchesHandler.
func NewWatchesHandler(r WatchRunner) *WatchesHandler {
	return &WatchesHandler{runner: r}
}

// WatchSummary describes one configured watch.
type WatchSummary struct {
	Name   string            `json:"name"             example:"jordans"`
	URL    string            `json:"url"              example:"https://www.vinted.fr/catalog?search_text=jordan"`
	Params map[string]string `json:"params,omitempty"`
	Seen   int               `json:"seen"             example:"96" doc:"Listing IDs remembered for this watch"`
}

// ListWatchesOutput is the response body for the list endpoint.
type ListWatchesOutput struct {
	Body []WatchSummary
}

// PollOutput is the response body for the poll endpoint.
type PollOutput struct {
	Body StatusResponse
}

// List returns the configured watches.
func (h *WatchesHandler) List(_ context.Context, _ *struct{}) (*ListWatchesOutput, error) {
	watches := h.runner.Watches()
	out := &ListWatchesOutput{Body: make([]WatchSummary, 0, len(watches))}
	for _, w := range watches {
		out.Body = append(out.Body, WatchSummary{
			Name:   w.Name,
			URL:    w.URL,
			Params: w.Params,
			Seen:   h.runner.Seen(w.Name),
		})
	}
	return out, nil
}

// Poll runs every watch once, outside the schedule.
func (h *WatchesHandler) Poll(ctx context.Context, _ *struct{}) (*PollOutput, error) {
	if err := h.runner.RunPoll(ctx); err != nil {
		return nil, huma.Error500InternalServerError("watch poll failed: " + err.Error())
	}

	resp := &PollOutput{}
	resp.Body.Status = "poll completed"
	return resp, nil
}

// RegisterWatchRoutes registers watch endpoints with the Huma API.
func RegisterWatchRoutes(api huma.API, h *WatchesHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-watches",
		Method:      http.MethodGet,
		Path:        "/api/v1/watches",
		Summary:     "List watches",
		Description: "Returns the configured watches and how many listings each has seen.",
		Tags:        []string{"watches"},
	}, h.List)

	huma.Register(api, huma.Operation{
		OperationID: "poll-watches",
		Method:      http.MethodPost,
		Path:        "/api/v1/watches/poll",
		Summary:     "Poll watches now",
		Description: "Searches every watch once and notifies about new listings.",
		Tags:        []string{"watches"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.Poll)
}
