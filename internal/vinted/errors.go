package vinted

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Sentinel errors. Match with errors.Is.
var (
	// ErrTransport wraps failures to build, send or read an HTTP exchange.
	ErrTransport = errors.New("transport failure")

	// ErrNoCookieHeader means the site root answered without any Set-Cookie header.
	ErrNoCookieHeader = errors.New("no cookies found in the headers")

	// ErrTokenNotFound means Set-Cookie headers were present but none carried the session token.
	ErrTokenNotFound = errors.New("session cookie not found in the headers")

	// ErrMalformedResponse means the API body was not valid JSON.
	ErrMalformedResponse = errors.New("malformed API response")

	// ErrUnexpectedStatus means the API answered with a non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected API status")

	// ErrAuthExpired marks a search that failed because the session cookie
	// was rejected. A refresh has been scheduled; retry the call.
	ErrAuthExpired = errors.New("authentication token invalid or expired")
)

const (
	invalidTokenMessage = "Token d'authentification invalide"
	invalidTokenCode    = "invalid_authentication_token"

	maxBodyInError = 512
)

// ResponseError describes an API response that could not be used. It
// wraps either ErrMalformedResponse or ErrUnexpectedStatus.
type ResponseError struct {
	StatusCode  int
	Body        []byte
	Message     string
	MessageCode string

	kind error
}

func (e *ResponseError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (status %d): %s", e.kind, e.StatusCode, e.Message)
	}
	body := e.Body
	if len(body) > maxBodyInError {
		body = body[:maxBodyInError]
	}
	return fmt.Sprintf("%s (status %d): %s", e.kind, e.StatusCode, body)
}

func (e *ResponseError) Unwrap() error {
	return e.kind
}

// apiErrorBody is the JSON shape of Vinted API error responses.
type apiErrorBody struct {
	Code        int    `json:"code"`
	Message     string `json:"message"`
	MessageCode string `json:"message_code"`
}

func newMalformedError(status int, body []byte) *ResponseError {
	return &ResponseError{StatusCode: status, Body: body, kind: ErrMalformedResponse}
}

func newStatusError(status int, body []byte) *ResponseError {
	e := &ResponseError{StatusCode: status, Body: body, kind: ErrUnexpectedStatus}
	var apiErr apiErrorBody
	if json.Unmarshal(body, &apiErr) == nil {
		e.Message = apiErr.Message
		e.MessageCode = apiErr.MessageCode
	}
	return e
}

// isAuthExpired reports whether err carries an API body saying the
// session token was rejected.
func isAuthExpired(err error) bool {
	var re *ResponseError
	if !errors.As(err, &re) {
		return false
	}
	return re.Message == invalidTokenMessage || re.MessageCode == invalidTokenCode
}
