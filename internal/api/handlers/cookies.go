package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/vinted-search/internal/vinted"
)

// CookiesHandler manages the session cookies held by the client.
type CookiesHandler struct {
	client vinted.VintedClient
}

// NewCookiesHandler creates a new CookiesHandler.
func NewCookiesHandler(client vinted.VintedClient) *CookiesHandler {
	return &CookiesHandler{client: client}
}

// AcquireCookieInput is the request for the acquire endpoint.
type AcquireCookieInput struct {
	Variant string `path:"variant" pattern:"^[a-z]+$" doc:"Site variant" example:"fr"`
}

// AcquireCookieOutput is the response body for the acquire endpoint.
type AcquireCookieOutput struct {
	Body struct {
		Variant string `json:"variant" example:"fr"`
		Cookie  string `json:"cookie"  example:"access_token_web=eyJ0eXAiOiJKV1Qi..." doc:"Session cookie, sent as-is in the Cookie header"`
	}
}

// Acquire fetches a fresh session cookie for a variant and stores it.
func (h *CookiesHandler) Acquire(ctx context.Context, input *AcquireCookieInput) (*AcquireCookieOutput, error) {
	cookie, err := h.client.AcquireCookie(ctx, input.Variant)
	if err != nil {
		return nil, huma.Error502BadGateway("acquiring cookie: " + err.Error())
	}

	resp := &AcquireCookieOutput{}
	resp.Body.Variant = input.Variant
	resp.Body.Cookie = cookie
	return resp, nil
}

// Clear drops every stored cookie.
func (h *CookiesHandler) Clear(_ context.Context, _ *struct{}) (*struct{}, error) {
	h.client.ClearCookies()
	return nil, nil //nolint:nilnil // huma replies 204 on nil output
}

// RegisterCookiesRoutes registers cookie endpoints with the Huma API.
func RegisterCookiesRoutes(api huma.API, h *CookiesHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "acquire-cookie",
		Method:      http.MethodPost,
		Path:        "/api/v1/cookies/{variant}",
		Summary:     "Acquire a session cookie",
		Description: "Fetches the site root of the variant and stores the session cookie it sets.",
		Tags:        []string{"cookies"},
		Errors:      []int{http.StatusBadGateway},
	}, h.Acquire)

	huma.Register(api, huma.Operation{
		OperationID:   "clear-cookies",
		Method:        http.MethodDelete,
		Path:          "/api/v1/cookies",
		Summary:       "Clear session cookies",
		Description:   "Forgets every stored cookie. Cookies from configuration or environment still apply.",
		Tags:          []string{"cookies"},
		DefaultStatus: http.StatusNoContent,
	}, h.Clear)
}
