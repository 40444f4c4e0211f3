//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/qubelint-io/qapi-client/pkg/qapi"
	"github.com/qubelint-io/qapi-client/pkg/qlclient"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	ServerURL string
	Token     string
	Username  string
	Password  string
	Verbose   bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		ServerURL: os.Getenv("QAPI_SERVER_URL"),
		Token:     os.Getenv("QAPI_TOKEN"),
		Username:  os.Getenv("QAPI_USERNAME"),
		Password:  os.Getenv("QAPI_PASSWORD"),
		Verbose:   os.Getenv("QAPI_VERBOSE") == "true",
	}
}

// SkipIfMissingConfig skips the test when no live server is configured
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.ServerURL == "" {
		t.Skip("QAPI_SERVER_URL not set, skipping integration test")
	}

	if config.Token == "" && config.Username == "" {
		t.Skip("QAPI_TOKEN or QAPI_USERNAME not set, skipping integration test")
	}
}

// NewClient creates a client against the configured live server
func (config *TestConfig) NewClient(ctx context.Context) (qapi.Client, error) {
	cfg := &qapi.Config{
		ServerURL: config.ServerURL,
		Token:     config.Token,
		Username:  config.Username,
		Password:  config.Password,
		Debug:     config.Verbose,
	}

	client, err := qlclient.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating integration test client: %w", err)
	}

	return client, nil
}

// GenerateTestName creates a unique resource name for a test run
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
