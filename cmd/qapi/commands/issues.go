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

// NewIssuesCommand creates the issues command group.
func NewIssuesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "issues",
		Aliases: []string{"issue", "i"},
		Short:   "Manage issues",
		Long:    "Search and triage code quality issues",
	}

	cmd.AddCommand(newIssuesListCommand())
	cmd.AddCommand(newIssuesAssignCommand())
	cmd.AddCommand(newIssuesTransitionCommand())
	cmd.AddCommand(newIssuesTagsCommand())
	cmd.AddCommand(newIssuesCommentCommand())

	return cmd
}

func newIssuesListCommand() *cobra.Command {
	var (
		projects   []string
		severities []string
		statuses   []string
		types      []string
		assignees  []string
		tags       []string
		allPages   bool
		pageSize   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List issues",
		Long:  "Search issues with optional filtering",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			search := client.Issues().Search()
			search.PageSize(pageSize)

			if len(projects) > 0 {
				search.ComponentKeys(projects...)
			}

			if len(severities) > 0 {
				search.Severities(severities...)
			}

			if len(statuses) > 0 {
				search.Statuses(statuses...)
			}

			if len(types) > 0 {
				search.Types(types...)
			}

			if len(assignees) > 0 {
				search.Assignees(assignees...)
			}

			if len(tags) > 0 {
				search.Tags(tags...)
			}

			ctx := cmd.Context()

			if allPages {
				issues, err := search.Collect(ctx)
				if err != nil {
					return fmt.Errorf("failed to list issues: %w", err)
				}

				return outputIssuesList(issues, len(issues), allPages)
			}

			page, err := search.Execute(ctx)
			if err != nil {
				return fmt.Errorf("failed to list issues: %w", err)
			}

			return outputIssuesList(page.Items, page.Paging.Total, allPages)
		},
	}

	cmd.Flags().StringSliceVar(&projects, "projects", nil, "filter by project keys (comma-separated)")
	cmd.Flags().StringSliceVar(&severities, "severities", nil, "filter by severities (comma-separated)")
	cmd.Flags().StringSliceVar(&statuses, "statuses", nil, "filter by statuses (comma-separated)")
	cmd.Flags().StringSliceVar(&types, "types", nil, "filter by issue types (comma-separated)")
	cmd.Flags().StringSliceVar(&assignees, "assignees", nil, "filter by assignee logins (comma-separated)")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "filter by tags (comma-separated)")
	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&pageSize, "page-size", constants.DefaultPageSize, "results per page")

	return cmd
}

func outputIssuesList(issues []qapi.Issue, total int, allPages bool) error {
	switch viper.GetString("output") {
	case constants.FormatJSON:
		return renderJSON(issues)
	case constants.FormatYAML:
		return renderYAML(issues)
	default:
		if len(issues) == 0 {
			_, _ = os.Stdout.WriteString("No issues found\n")

			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Key", "Severity", "Type", "Status", "Assignee", "Message")

		for _, issue := range issues {
			_ = table.Append(
				issue.Key,
				issue.Severity,
				issue.Type,
				issue.Status,
				orNotAvailable(issue.Assignee),
				truncateMessage(issue.Message),
			)
		}

		_ = table.Render()

		if !allPages && total > len(issues) {
			_, _ = fmt.Fprintf(os.Stdout, "\nShowing %d of %d issues. Use --all to fetch all pages.\n", len(issues), total)
		}

		return nil
	}
}

func newIssuesAssignCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "assign ISSUE_KEY LOGIN",
		Short: "Assign an issue",
		Long:  "Assign an issue to a user, or pass an empty login to unassign",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			issue, err := client.Issues().Assign(cmd.Context(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to assign issue: %w", err)
			}

			fmt.Printf("Issue %s assigned to %s\n", issue.Key, orNotAvailable(issue.Assignee))

			return nil
		},
	}
}

func newIssuesTransitionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "transition ISSUE_KEY TRANSITION",
		Short: "Apply a workflow transition",
		Long:  "Apply a workflow transition such as confirm, resolve, falsepositive, or reopen",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			issue, err := client.Issues().DoTransition(cmd.Context(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to transition issue: %w", err)
			}

			fmt.Printf("Issue %s is now %s\n", issue.Key, issue.Status)

			return nil
		},
	}
}

func newIssuesTagsCommand() *cobra.Command {
	var tags []string

	cmd := &cobra.Command{
		Use:   "tags ISSUE_KEY",
		Short: "Replace the tags of an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			issue, err := client.Issues().SetTags(cmd.Context(), args[0], tags)
			if err != nil {
				return fmt.Errorf("failed to set issue tags: %w", err)
			}

			fmt.Printf("Issue %s tagged: %v\n", issue.Key, issue.Tags)

			return nil
		},
	}

	cmd.Flags().StringSliceVar(&tags, "tags", nil, "tags to set (comma-separated, empty clears)")

	return cmd
}

func newIssuesCommentCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "comment ISSUE_KEY TEXT",
		Short: "Add a comment to an issue",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			issue, err := client.Issues().AddComment(cmd.Context(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to add comment: %w", err)
			}

			fmt.Printf("Comment added to issue %s\n", issue.Key)

			return nil
		},
	}
}
