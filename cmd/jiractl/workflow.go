package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTransitionCmd() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "transition ISSUE-KEY [STATUS]",
		Short: "Move an issue to another status",
		Long: `Move an issue to the named status. The status is matched against the
available transitions, exact name first, then substring. With --list the
available transitions are printed instead.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newJiraClient()
			if err != nil {
				return err
			}

			if list || len(args) == 1 {
				transitions, err := client.ListTransitions(cmd.Context(), args[0])
				if err != nil {
					return wrapErr(err, client)
				}
				if jsonOutput {
					return printJSON(transitions)
				}
				fmt.Printf("Available transitions for %s:\n", args[0])
				for _, t := range transitions {
					if t.To != nil {
						fmt.Printf("  %s\n", t.To.Name)
					}
				}
				return nil
			}

			if err := client.TransitionIssue(cmd.Context(), args[0], args[1]); err != nil {
				return wrapErr(err, client)
			}
			printSuccess("Moved %s to %s", args[0], args[1])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "List available transitions")

	return cmd
}

func newAssignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign ISSUE-KEY EMAIL",
		Short: "Assign an issue to a user by email",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newJiraClient()
			if err != nil {
				return err
			}

			if err := client.AssignIssue(cmd.Context(), args[0], args[1]); err != nil {
				return wrapErr(err, client)
			}
			printSuccess("Assigned %s to %s", args[0], args[1])
			return nil
		},
	}

	return cmd
}

func newLinkCmd() *cobra.Command {
	var (
		linkType string
		epic     string
	)

	cmd := &cobra.Command{
		Use:   "link ISSUE-KEY [OTHER-KEY]",
		Short: "Link two issues, or link an issue to an epic",
		Long: `Link two issues with the given link type (default "Relates"), or with
--epic make the issue a child of an epic.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newJiraClient()
			if err != nil {
				return err
			}

			if epic != "" {
				if err := client.LinkToEpic(cmd.Context(), args[0], epic); err != nil {
					return wrapErr(err, client)
				}
				printSuccess("Linked %s to epic %s", args[0], epic)
				return nil
			}

			if len(args) != 2 {
				return fmt.Errorf("either a second issue key or --epic is required")
			}
			if err := client.LinkIssues(cmd.Context(), args[0], args[1], linkType); err != nil {
				return wrapErr(err, client)
			}
			printSuccess("Linked %s to %s (%s)", args[0], args[1], linkType)
			return nil
		},
	}

	cmd.Flags().StringVarP(&linkType, "type", "t", "Relates", "Link type name")
	cmd.Flags().StringVar(&epic, "epic", "", "Epic key to link the issue under")

	return cmd
}
