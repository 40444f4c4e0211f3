// Package qlclient is the entry point for creating QubeLint API clients.
package qlclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/qubelint-io/qapi-client/internal/client"
	"github.com/qubelint-io/qapi-client/pkg/qapi"
)

// New creates a client for the server named in config. The server URL is
// normalized before use: a trailing slash is dropped and a bare host gets
// an https scheme.
func New(ctx context.Context, config *qapi.Config) (qapi.Client, error) {
	if config == nil {
		return nil, qapi.ErrConfigRequired
	}

	if config.ServerURL == "" {
		return nil, qapi.ErrServerURLRequired
	}

	serverURL, err := normalizeServerURL(config.ServerURL)
	if err != nil {
		return nil, err
	}

	config.ServerURL = serverURL

	apiClient, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return apiClient, nil
}

// NewWithToken creates a client authenticating with a user token.
func NewWithToken(ctx context.Context, serverURL, token string) (qapi.Client, error) {
	return New(ctx, &qapi.Config{
		ServerURL: serverURL,
		Token:     token,
	})
}

// NewWithBasicAuth creates a client authenticating with login and password.
func NewWithBasicAuth(ctx context.Context, serverURL, username, password string) (qapi.Client, error) {
	return New(ctx, &qapi.Config{
		ServerURL: serverURL,
		Username:  username,
		Password:  password,
	})
}

// NewAnonymous creates a client without credentials. Useful against
// instances that allow anonymous browsing.
func NewAnonymous(ctx context.Context, serverURL string) (qapi.Client, error) {
	return New(ctx, &qapi.Config{
		ServerURL: serverURL,
	})
}

// normalizeServerURL trims the trailing slash and defaults the scheme to
// https so "qube.example.com" and "https://qube.example.com/" both work.
func normalizeServerURL(serverURL string) (string, error) {
	normalized := strings.TrimSuffix(serverURL, "/")

	if !strings.HasPrefix(normalized, "http://") && !strings.HasPrefix(normalized, "https://") {
		normalized = "https://" + normalized
	}

	parsed, err := url.Parse(normalized)
	if err != nil {
		return "", fmt.Errorf("parsing server URL: %w", err)
	}

	if parsed.Host == "" {
		return "", fmt.Errorf("%w: %s", qapi.ErrNoHostInURL, serverURL)
	}

	return normalized, nil
}
