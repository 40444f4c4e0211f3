package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/qubelint-io/qapi-client/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewSystemCommand creates the system command group.
func NewSystemCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "system",
		Short: "Inspect the server",
		Long:  "Check server status and health",
	}

	cmd.AddCommand(newSystemStatusCommand())
	cmd.AddCommand(newSystemHealthCommand())
	cmd.AddCommand(newSystemPingCommand())

	return cmd
}

func newSystemStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show server status",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			status, err := client.System().Status(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get server status: %w", err)
			}

			switch viper.GetString("output") {
			case constants.FormatJSON:
				return renderJSON(status)
			case constants.FormatYAML:
				return renderYAML(status)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("Status", status.Status)
				_ = table.Append("Version", status.Version)
				_ = table.Append("ID", status.ID)
				_ = table.Render()

				return nil
			}
		},
	}
}

func newSystemHealthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show server health (requires admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			health, err := client.System().Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get server health: %w", err)
			}

			switch viper.GetString("output") {
			case constants.FormatJSON:
				return renderJSON(health)
			case constants.FormatYAML:
				return renderYAML(health)
			default:
				_, _ = fmt.Fprintf(os.Stdout, "Health: %s\n", health.Health)

				for _, cause := range health.Causes {
					_, _ = fmt.Fprintf(os.Stdout, "  - %s\n", cause.Message)
				}

				return nil
			}
		},
	}
}

func newSystemPingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the server answers",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			if err := client.System().Ping(cmd.Context()); err != nil {
				return fmt.Errorf("ping failed: %w", err)
			}

			fmt.Println("pong")

			return nil
		},
	}
}
