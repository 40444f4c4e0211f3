package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/qubelint-io/qapi-client/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewQualityGatesCommand creates the quality gates command group.
func NewQualityGatesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "qualitygates",
		Aliases: []string{"qualitygate", "qg"},
		Short:   "Manage quality gates",
		Long:    "List quality gates and check project gate status",
	}

	cmd.AddCommand(newQualityGatesListCommand())
	cmd.AddCommand(newQualityGatesShowCommand())
	cmd.AddCommand(newQualityGatesStatusCommand())

	return cmd
}

func newQualityGatesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List quality gates",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			gates, err := client.QualityGates().List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list quality gates: %w", err)
			}

			switch viper.GetString("output") {
			case constants.FormatJSON:
				return renderJSON(gates)
			case constants.FormatYAML:
				return renderYAML(gates)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Name", "Default", "Built-in", "Conditions")

				for _, gate := range gates {
					_ = table.Append(gate.Name, yesNo(gate.IsDefault), yesNo(gate.IsBuiltIn), fmt.Sprintf("%d", len(gate.Conditions)))
				}

				_ = table.Render()

				return nil
			}
		},
	}
}

func newQualityGatesShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Show a quality gate and its conditions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			gate, err := client.QualityGates().Show(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get quality gate: %w", err)
			}

			switch viper.GetString("output") {
			case constants.FormatJSON:
				return renderJSON(gate)
			case constants.FormatYAML:
				return renderYAML(gate)
			default:
				_, _ = fmt.Fprintf(os.Stdout, "Quality Gate: %s\n\n", gate.Name)

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Metric", "Operator", "Threshold")

				for _, condition := range gate.Conditions {
					_ = table.Append(condition.Metric, condition.Op, condition.Error)
				}

				_ = table.Render()

				return nil
			}
		},
	}
}

func newQualityGatesStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status PROJECT_KEY",
		Short: "Show the quality gate status of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			status, err := client.QualityGates().ProjectStatus(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get project gate status: %w", err)
			}

			switch viper.GetString("output") {
			case constants.FormatJSON:
				return renderJSON(status)
			case constants.FormatYAML:
				return renderYAML(status)
			default:
				_, _ = fmt.Fprintf(os.Stdout, "Quality Gate: %s\n\n", status.Status)

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Metric", "Status", "Actual", "Threshold")

				for _, condition := range status.Conditions {
					_ = table.Append(condition.MetricKey, condition.Status, condition.ActualValue, condition.ErrorThreshold)
				}

				_ = table.Render()

				return nil
			}
		},
	}
}
