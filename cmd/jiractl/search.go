package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwhitfield/jiractl/jira"
)

func newSearchCmd() *cobra.Command {
	var (
		maxResults int
		all        bool
	)

	cmd := &cobra.Command{
		Use:   "search JQL",
		Short: "Search issues with JQL",
		Long: `Search issues using Jira Query Language, for example:

  jiractl search 'project = PROJ AND status = "In Progress"'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newJiraClient()
			if err != nil {
				return err
			}

			var issues []jira.Issue
			var total int

			if all {
				issues, err = client.SearchIterator(args[0], nil).All(cmd.Context())
				total = len(issues)
			} else {
				var resp *jira.SearchResponse
				resp, err = client.SearchIssues(cmd.Context(), args[0], &jira.SearchOptions{
					MaxResults: maxResults,
				})
				if resp != nil {
					issues = resp.Issues
					total = resp.Total
				}
			}
			if err != nil {
				return wrapErr(err, client)
			}

			return renderIssueList(issues, total)
		},
	}

	cmd.Flags().IntVarP(&maxResults, "max", "m", 50, "Maximum results per page")
	cmd.Flags().BoolVar(&all, "all", false, "Fetch every matching issue")

	return cmd
}

func newMyIssuesCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "my-issues",
		Short: "List issues assigned to you",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newJiraClient()
			if err != nil {
				return err
			}

			issues, err := client.MyIssues(cmd.Context(), email)
			if err != nil {
				return wrapErr(err, client)
			}
			return renderIssueList(issues, len(issues))
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Look up another user's issues")

	return cmd
}

func newRecentCmd() *cobra.Command {
	var (
		days    int
		project string
	)

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently updated issues in a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newJiraClient()
			if err != nil {
				return err
			}

			issues, err := client.RecentIssues(cmd.Context(), days, project)
			if err != nil {
				return wrapErr(err, client)
			}
			return renderIssueList(issues, len(issues))
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 7, "How many days back to look")
	cmd.Flags().StringVar(&project, "project", "", "Project key (overrides JIRA_PROJECT_KEY)")

	return cmd
}

func renderIssueList(issues []jira.Issue, total int) error {
	if jsonOutput {
		return printJSON(issues)
	}
	if len(issues) == 0 {
		printInfo("No issues found.")
		return nil
	}
	fmt.Println(issueTable(issues))
	printInfo("Showing %d of %d issues", len(issues), total)
	return nil
}
