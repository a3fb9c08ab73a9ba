// Package transport provides the HTTP primitive abstraction reference
// backends call through (GET, POST, GET_PDF), keeping cookie/redirect/
// user-agent handling and retry policy out of backend code per the
// library's design.
package transport

import (
	"context"
	"net/http"
)

// Transport is the narrow HTTP surface the federation engine's reference
// backends depend on. A backend never touches net/http directly.
type Transport interface {
	// Get issues an HTTP GET and returns the response body.
	Get(ctx context.Context, url string, headers http.Header) ([]byte, error)
	// Post issues an HTTP POST with the given body and returns the response body.
	Post(ctx context.Context, url string, body []byte, headers http.Header) ([]byte, error)
	// GetBinary issues an HTTP GET using a browser-style user-agent, suited
	// to fetching PDFs from portals that reject non-browser clients.
	GetBinary(ctx context.Context, url string) ([]byte, error)
}
