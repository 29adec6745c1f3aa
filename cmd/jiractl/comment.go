package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwhitfield/jiractl/adf"
	"github.com/mwhitfield/jiractl/jira"
)

func newCommentCmd() *cobra.Command {
	var (
		bodyFile string
		list     bool
	)

	cmd := &cobra.Command{
		Use:   "comment ISSUE-KEY [TEXT]",
		Short: "Add a comment to an issue",
		Long: `Add a markdown comment to an issue. The text may be given inline or
read from a file with --file. With --list existing comments are printed
instead.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newJiraClient()
			if err != nil {
				return err
			}

			if list {
				comments, err := client.GetComments(cmd.Context(), args[0])
				if err != nil {
					return wrapErr(err, client)
				}
				if jsonOutput {
					return printJSON(comments)
				}
				printComments(comments)
				return nil
			}

			body := ""
			if len(args) == 2 {
				body = args[1]
			}
			body, err = readDescription(body, bodyFile)
			if err != nil {
				return err
			}
			if body == "" {
				return fmt.Errorf("comment text is required (inline or --file)")
			}

			comment, err := client.AddComment(cmd.Context(), args[0], body)
			if err != nil {
				return wrapErr(err, client)
			}
			printSuccess("Added comment %s to %s", comment.ID, args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&bodyFile, "file", "f", "", "Read comment text from a markdown file")
	cmd.Flags().BoolVarP(&list, "list", "l", false, "List existing comments")

	return cmd
}

func printComments(comments []jira.Comment) {
	if len(comments) == 0 {
		printInfo("No comments.")
		return
	}
	fmt.Println("\nComments:")
	for _, c := range comments {
		fmt.Printf("  %s  %s\n", userName(c.Author), formatIssueTime(c.Created))
		text, err := adf.FromAny(c.Body)
		if err != nil || text == "" {
			continue
		}
		fmt.Println(indent(text, "    "))
		fmt.Println()
	}
}

func newAttachCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attach ISSUE-KEY FILE...",
		Short: "Upload files as attachments",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newJiraClient()
			if err != nil {
				return err
			}

			for _, path := range args[1:] {
				attachments, err := client.AttachFile(cmd.Context(), args[0], path)
				if err != nil {
					return wrapErr(err, client)
				}
				for _, a := range attachments {
					printSuccess("Attached %s (%d bytes)", a.Filename, a.Size)
				}
			}
			return nil
		},
	}

	return cmd
}
