package vinted

import (
	"net/http"
	"strings"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
)

// DefaultUserAgent is sent when no user agent is configured.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// browserHeaders returns the header set of a browser issuing a same-origin
// XHR against origin. Accept-Encoding is left to the transport.
func browserHeaders(userAgent, origin string) http.Header {
	h := make(http.Header, 16)
	h.Set("User-Agent", userAgent)
	h.Set("Accept", "application/json, text/plain, */*")
	h.Set("Accept-Language", "fr-FR, en-US")
	h.Set("Sec-Fetch-Dest", "empty")
	h.Set("Sec-Fetch-Mode", "cors")
	h.Set("Sec-Fetch-Site", "same-origin")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("Origin", strings.TrimRight(origin, "/"))
	h.Set("DNT", "1")
	h.Set("Upgrade-Insecure-Requests", "1")
	h.Set("TE", "trailers")
	h.Set("Sec-Ch-Ua-Mobile", "?1")
	h.Set("Priority", "u=0, i")
	return h
}

// NewHTTPClient returns an *http.Client without a timeout. Callers bound
// latency through the request context. With cloudflareBypass the
// transport mimics a browser TLS and header fingerprint.
func NewHTTPClient(cloudflareBypass bool) *http.Client {
	var rt http.RoundTripper = http.DefaultTransport.(*http.Transport).Clone()
	if cloudflareBypass {
		rt = cloudflarebp.AddCloudFlareByPass(rt)
	}
	return &http.Client{Transport: rt}
}
