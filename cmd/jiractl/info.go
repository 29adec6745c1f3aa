package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInfoCmd() *cobra.Command {
	var (
		showPriorities bool
		showStatuses   bool
		showTypes      bool
		project        string
	)

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show project metadata",
		Long: `Show project metadata: issue types, priorities, and statuses. With no
flags the project summary and its issue types are printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newJiraClient()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			if showPriorities {
				priorities, err := client.GetPriorities(ctx)
				if err != nil {
					return wrapErr(err, client)
				}
				if jsonOutput {
					return printJSON(priorities)
				}
				fmt.Println("Priorities:")
				for _, p := range priorities {
					fmt.Printf("  %s\n", p.Name)
				}
				return nil
			}

			if showStatuses {
				groups, err := client.GetStatuses(ctx, project)
				if err != nil {
					return wrapErr(err, client)
				}
				if jsonOutput {
					return printJSON(groups)
				}
				for _, g := range groups {
					if g.Name != "" {
						fmt.Printf("%s:\n", g.Name)
					} else {
						fmt.Println("Statuses:")
					}
					for _, s := range g.Statuses {
						fmt.Printf("  %s\n", s.Name)
					}
				}
				return nil
			}

			if showTypes {
				types, err := client.GetIssueTypes(ctx, project)
				if err != nil {
					return wrapErr(err, client)
				}
				if jsonOutput {
					return printJSON(types)
				}
				fmt.Println("Issue types:")
				for _, t := range types {
					fmt.Printf("  %s\n", t.Name)
				}
				return nil
			}

			proj, err := client.GetProject(ctx, project)
			if err != nil {
				return wrapErr(err, client)
			}
			if jsonOutput {
				return printJSON(proj)
			}
			fmt.Printf("%s  %s\n", proj.Key, proj.Name)
			if proj.Lead != nil {
				fmt.Printf("  Lead: %s\n", proj.Lead.DisplayName)
			}
			if len(proj.IssueTypes) > 0 {
				fmt.Println("  Issue types:")
				for _, t := range proj.IssueTypes {
					fmt.Printf("    %s\n", t.Name)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showPriorities, "priorities", false, "List priorities")
	cmd.Flags().BoolVar(&showStatuses, "statuses", false, "List statuses by issue type")
	cmd.Flags().BoolVar(&showTypes, "types", false, "List issue types")
	cmd.Flags().StringVar(&project, "project", "", "Project key (overrides JIRA_PROJECT_KEY)")

	return cmd
}
