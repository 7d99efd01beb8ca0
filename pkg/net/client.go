package net

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// GetBearerClient returns an HTTP client that sends the given API key as an
// `Authorization: Bearer <key>` header on every request, the scheme the
// economic indicator endpoints expect. The key is static for the life of
// the client; there is no refresh flow. The underlying transport carries
// the same bounded timeouts as the default GetJSON client.
func GetBearerClient(ctx context.Context, key string) *http.Client {
	base := &http.Client{
		Timeout:   timeoutInSeconds * time.Second,
		Transport: reqTransport,
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, base)

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{
			TokenType:   "Bearer",
			AccessToken: key,
		},
	)
	return oauth2.NewClient(ctx, ts)
}
