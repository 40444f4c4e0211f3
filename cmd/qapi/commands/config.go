package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/qubelint-io/qapi-client/internal/constants"
	"github.com/qubelint-io/qapi-client/pkg/qapi"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// configKeys are the settings the config command accepts.
var configKeys = map[string]string{
	"server":   "server URL",
	"token":    "authentication token",
	"username": "login name",
	"password": "password",
	"output":   "default output format (table, json, yaml)",
}

// sensitiveKeys are masked in config listings.
var sensitiveKeys = map[string]bool{
	"token":    true,
	"password": true,
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage qapi CLI configuration stored in ~/.qapi/config.yml",
	}

	cmd.AddCommand(newConfigGetCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigListCommand())

	return cmd
}

func newConfigGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if _, known := configKeys[key]; !known {
				return fmt.Errorf("%w: %s", qapi.ErrUnknownConfigKey, key)
			}

			fmt.Println(viper.GetString(key))

			return nil
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if _, known := configKeys[key]; !known {
				return fmt.Errorf("%w: %s", qapi.ErrUnknownConfigKey, key)
			}

			viper.Set(key, value)

			return saveConfig()
		},
	}
}

func newConfigListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			keys := make([]string, 0, len(configKeys))
			for key := range configKeys {
				keys = append(keys, key)
			}

			sort.Strings(keys)

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Key", "Value")

			for _, key := range keys {
				value := viper.GetString(key)
				if value != "" && sensitiveKeys[key] {
					value = constants.MaskedSecret
				}

				_ = table.Append(key, orNotAvailable(value))
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}

// saveConfig writes the current viper state back to the config file,
// creating ~/.qapi/config.yml on first use.
func saveConfig() error {
	if configFile := viper.ConfigFileUsed(); configFile != "" {
		if err := viper.WriteConfig(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to find home directory: %w", err)
	}

	configDir := filepath.Join(home, ".qapi")
	if err := os.MkdirAll(configDir, constants.ConfigDirPerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := filepath.Join(configDir, "config.yml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	// viper does not honor restrictive permissions on its own
	if err := os.Chmod(configFile, constants.ConfigFilePerm); err != nil {
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}

	return nil
}
