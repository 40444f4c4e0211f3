package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/qubelint-io/qapi-client/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// defaultMetrics is what `qapi measures show` fetches when no metrics are
// requested explicitly.
var defaultMetrics = []string{"bugs", "vulnerabilities", "code_smells", "coverage", "duplicated_lines_density"}

// NewMeasuresCommand creates the measures command group.
func NewMeasuresCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "measures",
		Aliases: []string{"measure", "m"},
		Short:   "Read component measures",
		Long:    "Read current and historical metric values of analyzed components",
	}

	cmd.AddCommand(newMeasuresShowCommand())
	cmd.AddCommand(newMeasuresHistoryCommand())

	return cmd
}

func newMeasuresShowCommand() *cobra.Command {
	var metrics []string

	cmd := &cobra.Command{
		Use:   "show COMPONENT_KEY",
		Short: "Show current measures of a component",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			if len(metrics) == 0 {
				metrics = defaultMetrics
			}

			component, err := client.Measures().Component(cmd.Context(), args[0], metrics)
			if err != nil {
				return fmt.Errorf("failed to get measures: %w", err)
			}

			switch viper.GetString("output") {
			case constants.FormatJSON:
				return renderJSON(component)
			case constants.FormatYAML:
				return renderYAML(component)
			default:
				_, _ = fmt.Fprintf(os.Stdout, "Component: %s (%s)\n\n", component.Name, component.Key)

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Metric", "Value")

				for _, measure := range component.Measures {
					_ = table.Append(measure.Metric, orNotAvailable(measure.Value))
				}

				_ = table.Render()

				return nil
			}
		},
	}

	cmd.Flags().StringSliceVar(&metrics, "metrics", nil, "metric keys to fetch (comma-separated)")

	return cmd
}

func newMeasuresHistoryCommand() *cobra.Command {
	var metrics []string

	cmd := &cobra.Command{
		Use:   "history COMPONENT_KEY",
		Short: "Show the metric history of a component",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			if len(metrics) == 0 {
				metrics = []string{"coverage"}
			}

			history, err := client.Measures().History(cmd.Context(), args[0], metrics)
			if err != nil {
				return fmt.Errorf("failed to get measure history: %w", err)
			}

			switch viper.GetString("output") {
			case constants.FormatJSON:
				return renderJSON(history)
			case constants.FormatYAML:
				return renderYAML(history)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Metric", "Date", "Value")

				for _, entry := range history {
					for _, point := range entry.History {
						_ = table.Append(entry.Metric, point.Date.Format("2006-01-02"), point.Value)
					}
				}

				_ = table.Render()

				return nil
			}
		},
	}

	cmd.Flags().StringSliceVar(&metrics, "metrics", nil, "metric keys to fetch (comma-separated)")

	return cmd
}
