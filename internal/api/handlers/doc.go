// Package handlers implements the HTTP handlers of the vinted-search API.
package handlers

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/vinted-search/internal/vinted"
)

// StatusResponse is a generic status response body.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// upstreamError maps a Vinted client error to an HTTP error.
func upstreamError(err error) error {
	switch {
	case errors.Is(err, vinted.ErrAuthExpired):
		return huma.Error401Unauthorized("Vinted session expired, a refresh was scheduled; retry the request", err)
	case errors.Is(err, vinted.ErrDailyLimitReached):
		return huma.Error429TooManyRequests("daily Vinted API budget exhausted", err)
	default:
		return huma.Error502BadGateway("Vinted API error: " + err.Error())
	}
}
