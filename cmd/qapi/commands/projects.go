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

// NewProjectsCommand creates the projects command group.
func NewProjectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project", "p"},
		Short:   "Manage projects",
		Long:    "List, create, and delete analyzed projects",
	}

	cmd.AddCommand(newProjectsListCommand())
	cmd.AddCommand(newProjectsCreateCommand())
	cmd.AddCommand(newProjectsDeleteCommand())

	return cmd
}

func newProjectsListCommand() *cobra.Command {
	var (
		query    string
		allPages bool
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Long:  "List projects visible to the current user",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			search := client.Projects().Search()
			search.PageSize(pageSize)

			if query != "" {
				search.Query(query)
			}

			projects, total, err := collectProjects(cmd, search, allPages)
			if err != nil {
				return err
			}

			return outputProjectsList(projects, total, allPages)
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "filter by key or name")
	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&pageSize, "page-size", constants.DefaultPageSize, "results per page")

	return cmd
}

func collectProjects(cmd *cobra.Command, search *qapi.ProjectSearch, allPages bool) ([]qapi.Project, int, error) {
	ctx := cmd.Context()

	if allPages {
		projects, err := search.Collect(ctx)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to list projects: %w", err)
		}

		return projects, len(projects), nil
	}

	page, err := search.Execute(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}

	return page.Items, page.Paging.Total, nil
}

func outputProjectsList(projects []qapi.Project, total int, allPages bool) error {
	switch viper.GetString("output") {
	case constants.FormatJSON:
		return renderJSON(projects)
	case constants.FormatYAML:
		return renderYAML(projects)
	default:
		if len(projects) == 0 {
			_, _ = os.Stdout.WriteString("No projects found\n")

			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Key", "Name", "Visibility", "Last Analysis")

		for _, project := range projects {
			lastAnalysis := constants.NotAvailable
			if !project.LastAnalysisDate.IsZero() {
				lastAnalysis = project.LastAnalysisDate.Format("2006-01-02 15:04:05")
			}

			_ = table.Append(project.Key, project.Name, project.Visibility, lastAnalysis)
		}

		_ = table.Render()

		if !allPages && total > len(projects) {
			_, _ = fmt.Fprintf(os.Stdout, "\nShowing %d of %d projects. Use --all to fetch all pages.\n", len(projects), total)
		}

		return nil
	}
}

func newProjectsCreateCommand() *cobra.Command {
	var (
		name       string
		visibility string
	)

	cmd := &cobra.Command{
		Use:   "create PROJECT_KEY",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			if name == "" {
				name = args[0]
			}

			project, err := client.Projects().Create(cmd.Context(), &qapi.ProjectCreateRequest{
				Key:        args[0],
				Name:       name,
				Visibility: visibility,
			})
			if err != nil {
				return fmt.Errorf("failed to create project: %w", err)
			}

			fmt.Printf("Created project '%s' (%s)\n", project.Name, project.Key)

			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "display name (defaults to the key)")
	cmd.Flags().StringVar(&visibility, "visibility", "", "project visibility (public, private)")

	return cmd
}

func newProjectsDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete PROJECT_KEY",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				fmt.Printf("Really delete project '%s'? This cannot be undone. (y/N): ", args[0])

				var response string
				_, _ = fmt.Scanln(&response)

				if response != "y" && response != "Y" {
					fmt.Println("Cancelled")

					return nil
				}
			}

			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			if err := client.Projects().Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to delete project: %w", err)
			}

			fmt.Printf("Deleted project '%s'\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")

	return cmd
}
