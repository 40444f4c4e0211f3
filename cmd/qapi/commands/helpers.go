package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/qubelint-io/qapi-client/internal/constants"
	"github.com/qubelint-io/qapi-client/pkg/qapi"
	"github.com/qubelint-io/qapi-client/pkg/qlclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// CreateClient builds an API client from the effective configuration
// (flags, environment, config file).
func CreateClient(cmd *cobra.Command) (qapi.Client, error) {
	serverURL := viper.GetString("server")
	if serverURL == "" {
		return nil, qapi.ErrServerURLRequired
	}

	config := &qapi.Config{
		ServerURL: serverURL,
		Token:     viper.GetString("token"),
		Username:  viper.GetString("username"),
		Password:  viper.GetString("password"),
		Debug:     viper.GetBool("verbose"),
	}

	client, err := qlclient.New(cmd.Context(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// renderJSON writes v to stdout as indented JSON.
func renderJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(v)
	if err != nil {
		return fmt.Errorf("failed to encode as JSON: %w", err)
	}

	return nil
}

// renderYAML writes v to stdout as YAML.
func renderYAML(v interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)

	err := encoder.Encode(v)
	if err != nil {
		return fmt.Errorf("failed to encode as YAML: %w", err)
	}

	return nil
}

// truncateMessage shortens long issue messages for table output.
func truncateMessage(message string) string {
	if len(message) > constants.MessageDisplayLength {
		return message[:constants.MessageDisplayLength-3] + "..."
	}

	return message
}

// orNotAvailable substitutes the N/A placeholder for empty values.
func orNotAvailable(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}

// yesNo renders a boolean for table cells.
func yesNo(value bool) string {
	if value {
		return "yes"
	}

	return "no"
}
