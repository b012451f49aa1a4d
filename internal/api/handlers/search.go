package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/vinted-search/internal/vinted"
	"github.com/donaldgifford/vinted-search/pkg/query"
)

// SearchHandler handles catalog search and URL translation requests.
type SearchHandler struct {
	client vinted.VintedClient
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(client vinted.VintedClient) *SearchHandler {
	return &SearchHandler{client: client}
}

// SearchBody is the request body shared by search and translate.
type SearchBody struct {
	URL    string            `json:"url"              minLength:"1" doc:"Catalog page URL as copied from the browser" example:"https://www.vinted.fr/catalog?search_text=nike&catalog[]=1206"`
	Params map[string]string `json:"params,omitempty"               doc:"Extra API parameters, overriding those from the URL"`
}

// SearchInput is the request for the search endpoint.
type SearchInput struct {
	Body SearchBody
}

// SearchOutput carries the catalog API payload unchanged.
type SearchOutput struct {
	Body json.RawMessage
}

// TranslateOutput is the response body for the translate endpoint.
type TranslateOutput struct {
	Body query.ParsedQuery
}

// Search runs the catalog search behind a Vinted catalog URL.
func (h *SearchHandler) Search(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	data, err := h.client.Search(ctx, input.Body.URL, input.Body.Params)
	if err != nil {
		return nil, upstreamError(err)
	}
	return &SearchOutput{Body: data}, nil
}

// Translate returns the API query a catalog URL maps to, without calling
// Vinted.
func (h *SearchHandler) Translate(_ context.Context, input *SearchInput) (*TranslateOutput, error) {
	return &TranslateOutput{Body: h.client.Translate(input.Body.URL, input.Body.Params)}, nil
}

// RegisterSearchRoutes registers search endpoints with the Huma API.
func RegisterSearchRoutes(api huma.API, h *SearchHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "search-catalog",
		Method:      http.MethodPost,
		Path:        "/api/v1/search",
		Summary:     "Search the Vinted catalog",
		Description: "Translates a catalog page URL into an API query and returns the raw " +
			"catalog items payload. URLs that are not Vinted catalog URLs yield an empty array.",
		Tags:   []string{"search"},
		Errors: []int{http.StatusUnauthorized, http.StatusTooManyRequests, http.StatusBadGateway},
	}, h.Search)

	huma.Register(api, huma.Operation{
		OperationID: "translate-url",
		Method:      http.MethodPost,
		Path:        "/api/v1/translate",
		Summary:     "Translate a catalog URL",
		Description: "Shows the site variant and API query string derived from a catalog page URL.",
		Tags:        []string{"search"},
	}, h.Translate)
}
