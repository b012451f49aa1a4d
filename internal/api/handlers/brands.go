package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/vinted-search/internal/vinted"
)

// BrandsHandler handles brand lookups.
type BrandsHandler struct {
	client vinted.VintedClient
}

// NewBrandsHandler creates a new BrandsHandler.
func NewBrandsHandler(client vinted.VintedClient) *BrandsHandler {
	return &BrandsHandler{client: client}
}

// BrandsInput is the request for the brands endpoint.
type BrandsInput struct {
	Keyword string `query:"keyword" required:"true" minLength:"1" doc:"Brand name fragment" example:"nike"`
	Variant string `query:"variant" pattern:"^[a-z]+$" doc:"Site variant (default fr)" example:"de"`
}

// BrandsOutput carries the brands API payload unchanged.
type BrandsOutput struct {
	Body json.RawMessage
}

// Brands looks up brand IDs usable in brand_ids[] catalog filters.
func (h *BrandsHandler) Brands(ctx context.Context, input *BrandsInput) (*BrandsOutput, error) {
	data, err := h.client.Brands(ctx, input.Keyword, input.Variant)
	if err != nil {
		return nil, upstreamError(err)
	}
	return &BrandsOutput{Body: data}, nil
}

// RegisterBrandsRoutes registers the brands endpoint with the Huma API.
func RegisterBrandsRoutes(api huma.API, h *BrandsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-brands",
		Method:      http.MethodGet,
		Path:        "/api/v1/brands",
		Summary:     "Look up brands",
		Description: "Returns the raw brands payload for a keyword on the given site variant.",
		Tags:        []string{"search"},
		Errors:      []int{http.StatusTooManyRequests, http.StatusBadGateway},
	}, h.Brands)
}
