package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/vinted-search/internal/vinted"
)

// QuotaHandler reports the outbound API budget.
type QuotaHandler struct {
	rl *vinted.RateLimiter
}

// NewQuotaHandler creates a new QuotaHandler. rl may be nil.
func NewQuotaHandler(rl *vinted.RateLimiter) *QuotaHandler {
	return &QuotaHandler{rl: rl}
}

// QuotaOutput is the response body for the quota endpoint.
type QuotaOutput struct {
	Body struct {
		DailyLimit int64     `json:"daily_limit" example:"2000"                 doc:"Configured daily call budget, 0 when unlimited"`
		DailyUsed  int64     `json:"daily_used"  example:"142"                  doc:"Calls made in the current 24-hour window"`
		Remaining  int64     `json:"remaining"   example:"1858"                 doc:"Calls left in the current window, -1 when unlimited"`
		ResetAt    time.Time `json:"reset_at"    example:"2026-06-16T14:30:00Z" doc:"When the current 24-hour window expires"`
	}
}

// GetQuota returns the current API budget status.
func (h *QuotaHandler) GetQuota(_ context.Context, _ *struct{}) (*QuotaOutput, error) {
	resp := &QuotaOutput{}
	if h.rl == nil {
		resp.Body.Remaining = -1
		return resp, nil
	}

	resp.Body.DailyLimit = h.rl.MaxDaily()
	resp.Body.DailyUsed = h.rl.Used()
	resp.Body.Remaining = h.rl.Remaining()
	resp.Body.ResetAt = h.rl.ResetAt()

	return resp, nil
}

// RegisterQuotaRoutes registers the quota endpoint with the Huma API.
func RegisterQuotaRoutes(api huma.API, h *QuotaHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-quota",
		Method:      http.MethodGet,
		Path:        "/api/v1/quota",
		Summary:     "Get Vinted API budget status",
		Description: "Returns calls used in the current window, the remaining budget and the window reset time.",
		Tags:        []string{"vinted"},
	}, h.GetQuota)
}
