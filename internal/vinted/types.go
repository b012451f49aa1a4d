package vinted

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CatalogResponse is the subset of the catalog items payload used by the
// watcher and the CLI.
type CatalogResponse struct {
	Items      []Item      `json:"items"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination holds catalog paging information.
type Pagination struct {
	CurrentPage  int `json:"current_page"`
	TotalPages   int `json:"total_pages"`
	TotalEntries int `json:"total_entries"`
	PerPage      int `json:"per_page"`
}

// Item is a single catalog listing.
type Item struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	Price          Price  `json:"price"`
	Currency       string `json:"currency,omitempty"`
	URL            string `json:"url"`
	BrandTitle     string `json:"brand_title"`
	SizeTitle      string `json:"size_title"`
	Status         string `json:"status"`
	FavouriteCount int    `json:"favourite_count"`
	Photo          *Photo `json:"photo,omitempty"`
	User           *User  `json:"user,omitempty"`
}

// Photo is the main listing picture.
type Photo struct {
	URL string `json:"url"`
}

// User is the seller.
type User struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
}

// Price accepts both shapes the API has used: a bare amount string with a
// sibling currency field, and an {amount, currency_code} object.
type Price struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currency_code"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &p.Amount)
	}

	type plain Price
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decoding price: %w", err)
	}
	*p = Price(v)
	return nil
}

// String renders the price as "12.5 EUR".
func (p Price) String() string {
	if p.CurrencyCode == "" {
		return p.Amount
	}
	return p.Amount + " " + p.CurrencyCode
}

// DisplayPrice renders the price with whichever currency field is set.
func (i *Item) DisplayPrice() string {
	if i.Price.CurrencyCode == "" && i.Currency != "" {
		return i.Price.Amount + " " + i.Currency
	}
	return i.Price.String()
}

// Brand is one entry of the brands endpoint.
type Brand struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	ItemCount  int    `json:"item_count"`
	IsFavorite bool   `json:"is_favourite"`
}

// BrandsResponse is the brands endpoint payload.
type BrandsResponse struct {
	Brands []Brand `json:"brands"`
}

// DecodeCatalog parses a catalog payload returned by Search. The empty
// array returned for untranslatable URLs decodes to an empty response.
func DecodeCatalog(data json.RawMessage) (*CatalogResponse, error) {
	if isEmptyArray(data) {
		return &CatalogResponse{}, nil
	}
	var resp CatalogResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parsing catalog response: %w", err)
	}
	return &resp, nil
}

// DecodeBrands parses a payload returned by Brands.
func DecodeBrands(data json.RawMessage) (*BrandsResponse, error) {
	var resp BrandsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parsing brands response: %w", err)
	}
	return &resp, nil
}

func isEmptyArray(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("[]"))
}
