package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"

	"github.com/mwhitfield/jiractl/adf"
	"github.com/mwhitfield/jiractl/jira"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	keyColor     = color.New(color.FgYellow, color.Bold)
)

func printSuccess(format string, args ...any) {
	successColor.Printf(format+"\n", args...)
}

func printError(format string, args ...any) {
	errorColor.Fprintf(os.Stderr, format+"\n", args...)
}

func printInfo(format string, args ...any) {
	infoColor.Printf(format+"\n", args...)
}

var tableBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

// issueTable renders issues as a bordered grid.
func issueTable(issues []jira.Issue) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorderStyle).
		Headers("KEY", "TYPE", "STATUS", "PRIORITY", "ASSIGNEE", "SUMMARY")

	for _, issue := range issues {
		t.Row(
			issue.Key,
			fieldName(issue.Fields.IssueType),
			statusName(issue.Fields.Status),
			priorityName(issue.Fields.Priority),
			userName(issue.Fields.Assignee),
			truncate(issue.Fields.Summary, 60),
		)
	}

	return t.String()
}

func fieldName(it *jira.IssueType) string {
	if it == nil {
		return "-"
	}
	return it.Name
}

func statusName(s *jira.Status) string {
	if s == nil {
		return "-"
	}
	return s.Name
}

func priorityName(p *jira.Priority) string {
	if p == nil {
		return "-"
	}
	return p.Name
}

func userName(u *jira.User) string {
	if u == nil {
		return "Unassigned"
	}
	return u.DisplayName
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// printIssueDetail writes a full single-issue view.
func printIssueDetail(client *jira.Client, issue *jira.Issue) {
	keyColor.Printf("%s", issue.Key)
	fmt.Printf("  %s\n\n", issue.Fields.Summary)

	fmt.Printf("  Type:      %s\n", fieldName(issue.Fields.IssueType))
	fmt.Printf("  Status:    %s\n", statusName(issue.Fields.Status))
	fmt.Printf("  Priority:  %s\n", priorityName(issue.Fields.Priority))
	fmt.Printf("  Assignee:  %s\n", userName(issue.Fields.Assignee))
	fmt.Printf("  Reporter:  %s\n", userName(issue.Fields.Reporter))
	if len(issue.Fields.Labels) > 0 {
		fmt.Printf("  Labels:    %s\n", strings.Join(issue.Fields.Labels, ", "))
	}
	if issue.Fields.Parent != nil {
		fmt.Printf("  Parent:    %s\n", issue.Fields.Parent.Key)
	}
	fmt.Printf("  Created:   %s\n", formatIssueTime(issue.Fields.Created))
	fmt.Printf("  Updated:   %s\n", formatIssueTime(issue.Fields.Updated))
	fmt.Printf("  URL:       %s\n", client.BrowseURL(issue.Key))

	if issue.Fields.Description != nil {
		text, err := adf.FromAny(issue.Fields.Description)
		if err == nil && text != "" {
			fmt.Printf("\n%s\n", indent(text, "  "))
		}
	}
}

func formatIssueTime(raw string) string {
	if raw == "" {
		return "-"
	}
	t, err := jira.ParseTime(raw)
	if err != nil {
		return raw
	}
	return t.Format("2006-01-02 15:04")
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
