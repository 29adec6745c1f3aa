package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwhitfield/jiractl/jira"
)

func newCreateCmd() *cobra.Command {
	var (
		description string
		descFile    string
		issueType   string
		priority    string
		assignee    string
		parent      string
		project     string
		labels      []string
	)

	cmd := &cobra.Command{
		Use:   "create SUMMARY",
		Short: "Create a new issue",
		Long: `Create a new issue. The description is markdown and may be given
inline with --description or read from a file with --file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newJiraClient()
			if err != nil {
				return err
			}

			desc, err := readDescription(description, descFile)
			if err != nil {
				return err
			}

			created, err := client.CreateIssue(cmd.Context(), jira.CreateIssueParams{
				Summary:       args[0],
				Description:   desc,
				IssueType:     issueType,
				Priority:      priority,
				AssigneeEmail: assignee,
				ParentKey:     parent,
				ProjectKey:    project,
				Labels:        labels,
			})
			if err != nil {
				return wrapErr(err, client)
			}

			if jsonOutput {
				return printJSON(created)
			}
			printSuccess("Created %s", created.Key)
			printInfo("%s", client.BrowseURL(created.Key))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Issue description (markdown)")
	cmd.Flags().StringVarP(&descFile, "file", "f", "", "Read description from a markdown file")
	cmd.Flags().StringVarP(&issueType, "type", "t", "Story", "Issue type (Story, Task, Bug, Epic, ...)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "Priority name")
	cmd.Flags().StringVarP(&assignee, "assignee", "a", "", "Assignee email")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent issue key")
	cmd.Flags().StringVar(&project, "project", "", "Project key (overrides JIRA_PROJECT_KEY)")
	cmd.Flags().StringSliceVarP(&labels, "label", "l", nil, "Label (repeatable)")

	return cmd
}

func newUpdateCmd() *cobra.Command {
	var (
		summary     string
		description string
		descFile    string
		priority    string
		assignee    string
		labels      []string
	)

	cmd := &cobra.Command{
		Use:   "update ISSUE-KEY",
		Short: "Update fields on an existing issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newJiraClient()
			if err != nil {
				return err
			}

			desc, err := readDescription(description, descFile)
			if err != nil {
				return err
			}

			params := jira.UpdateIssueParams{
				Summary:       summary,
				Description:   desc,
				Priority:      priority,
				AssigneeEmail: assignee,
			}
			if cmd.Flags().Changed("label") {
				params.Labels = labels
			}

			if err := client.UpdateIssue(cmd.Context(), args[0], params); err != nil {
				return wrapErr(err, client)
			}

			printSuccess("Updated %s", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&summary, "summary", "s", "", "New summary")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description (markdown)")
	cmd.Flags().StringVarP(&descFile, "file", "f", "", "Read description from a markdown file")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "New priority name")
	cmd.Flags().StringVarP(&assignee, "assignee", "a", "", "New assignee email")
	cmd.Flags().StringSliceVarP(&labels, "label", "l", nil, "Replace labels (repeatable; pass none to clear)")

	return cmd
}

func newGetCmd() *cobra.Command {
	var showComments bool
	var showHistory bool

	cmd := &cobra.Command{
		Use:   "get ISSUE-KEY",
		Short: "Show an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newJiraClient()
			if err != nil {
				return err
			}

			issue, err := client.GetIssue(cmd.Context(), args[0])
			if err != nil {
				return wrapErr(err, client)
			}

			if jsonOutput {
				return printJSON(issue)
			}
			printIssueDetail(client, issue)

			if showComments {
				comments, err := client.GetComments(cmd.Context(), args[0])
				if err != nil {
					return wrapErr(err, client)
				}
				printComments(comments)
			}

			if showHistory {
				entries, err := client.GetChangelog(cmd.Context(), args[0])
				if err != nil {
					return wrapErr(err, client)
				}
				printChangelog(entries)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showComments, "comments", false, "Include comments")
	cmd.Flags().BoolVar(&showHistory, "history", false, "Include change history")

	return cmd
}

func printChangelog(entries []jira.ChangelogEntry) {
	if len(entries) == 0 {
		return
	}
	fmt.Println("\nHistory:")
	for _, entry := range entries {
		for _, item := range entry.Items {
			fmt.Printf("  %s  %s: %s -> %s (%s)\n",
				formatIssueTime(entry.Created),
				item.Field, item.FromString, item.ToString,
				userName(entry.Author))
		}
	}
}
