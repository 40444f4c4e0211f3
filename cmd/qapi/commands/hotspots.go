package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/qubelint-io/qapi-client/internal/constants"
	"github.com/qubelint-io/qapi-client/pkg/qapi"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewHotspotsCommand creates the hotspots command group.
func NewHotspotsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "hotspots",
		Aliases: []string{"hotspot", "hs"},
		Short:   "Manage security hotspots",
		Long:    "Search and review security hotspots",
	}

	cmd.AddCommand(newHotspotsListCommand())
	cmd.AddCommand(newHotspotsShowCommand())
	cmd.AddCommand(newHotspotsReviewCommand())

	return cmd
}

func newHotspotsListCommand() *cobra.Command {
	var (
		projectKey string
		status     string
		allPages   bool
		pageSize   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List security hotspots",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			search := client.Hotspots().Search()
			search.PageSize(pageSize)

			if projectKey != "" {
				search.ProjectKey(projectKey)
			}

			if status != "" {
				search.Status(status)
			}

			ctx := cmd.Context()

			if allPages {
				hotspots, err := search.Collect(ctx)
				if err != nil {
					return fmt.Errorf("failed to list hotspots: %w", err)
				}

				return outputHotspotsList(hotspots, len(hotspots), allPages)
			}

			page, err := search.Execute(ctx)
			if err != nil {
				return fmt.Errorf("failed to list hotspots: %w", err)
			}

			return outputHotspotsList(page.Items, page.Paging.Total, allPages)
		},
	}

	cmd.Flags().StringVar(&projectKey, "project", "", "filter by project key")
	cmd.Flags().StringVar(&status, "status", "", "filter by review status (TO_REVIEW, REVIEWED)")
	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&pageSize, "page-size", constants.DefaultPageSize, "results per page")

	return cmd
}

func outputHotspotsList(hotspots []qapi.Hotspot, total int, allPages bool) error {
	switch viper.GetString("output") {
	case constants.FormatJSON:
		return renderJSON(hotspots)
	case constants.FormatYAML:
		return renderYAML(hotspots)
	default:
		if len(hotspots) == 0 {
			_, _ = os.Stdout.WriteString("No hotspots found\n")

			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Key", "Category", "Probability", "Status", "Message")

		for _, hotspot := range hotspots {
			_ = table.Append(
				hotspot.Key,
				hotspot.SecurityCategory,
				hotspot.VulnerabilityProbability,
				hotspot.Status,
				truncateMessage(hotspot.Message),
			)
		}

		_ = table.Render()

		if !allPages && total > len(hotspots) {
			_, _ = fmt.Fprintf(os.Stdout, "\nShowing %d of %d hotspots. Use --all to fetch all pages.\n", len(hotspots), total)
		}

		return nil
	}
}

func newHotspotsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show HOTSPOT_KEY",
		Short: "Show hotspot details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			hotspot, err := client.Hotspots().Show(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get hotspot: %w", err)
			}

			switch viper.GetString("output") {
			case constants.FormatJSON:
				return renderJSON(hotspot)
			case constants.FormatYAML:
				return renderYAML(hotspot)
			default:
				_, _ = fmt.Fprintf(os.Stdout, "Hotspot: %s\n", hotspot.Key)
				_, _ = fmt.Fprintf(os.Stdout, "  Project: %s\n", hotspot.Project)
				_, _ = fmt.Fprintf(os.Stdout, "  Category: %s\n", hotspot.SecurityCategory)
				_, _ = fmt.Fprintf(os.Stdout, "  Probability: %s\n", hotspot.VulnerabilityProbability)
				_, _ = fmt.Fprintf(os.Stdout, "  Status: %s\n", hotspot.Status)
				_, _ = fmt.Fprintf(os.Stdout, "  Message: %s\n", hotspot.Message)

				return nil
			}
		},
	}
}

func newHotspotsReviewCommand() *cobra.Command {
	var resolution string

	cmd := &cobra.Command{
		Use:   "review HOTSPOT_KEY STATUS",
		Short: "Change the review status of a hotspot",
		Long:  "Set the review status (TO_REVIEW or REVIEWED) with an optional resolution",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			if err := client.Hotspots().ChangeStatus(cmd.Context(), args[0], args[1], resolution); err != nil {
				return fmt.Errorf("failed to change hotspot status: %w", err)
			}

			fmt.Printf("Hotspot %s is now %s\n", args[0], args[1])

			return nil
		},
	}

	cmd.Flags().StringVar(&resolution, "resolution", "", "resolution when marking REVIEWED (FIXED, SAFE, ACKNOWLEDGED)")

	return cmd
}
