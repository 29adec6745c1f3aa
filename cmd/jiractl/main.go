package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mwhitfield/jiractl/config"
	clierrors "github.com/mwhitfield/jiractl/errors"
	"github.com/mwhitfield/jiractl/jira"
)

var (
	verbose    bool
	jsonOutput bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "jiractl",
		Short: "jiractl - Jira issue management from the command line",
		Long: `jiractl creates, searches, and updates Jira Cloud issues.
Issue descriptions and comments are written in markdown and converted
to Jira's document format automatically.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print raw JSON instead of formatted output")

	rootCmd.AddCommand(
		newCreateCmd(),
		newUpdateCmd(),
		newGetCmd(),
		newSearchCmd(),
		newTransitionCmd(),
		newAssignCmd(),
		newLinkCmd(),
		newCommentCmd(),
		newAttachCmd(),
		newMyIssuesCmd(),
		newRecentCmd(),
		newInfoCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		printError("%v", err)
		os.Exit(clierrors.ExitCode(err))
	}
}

// newJiraClient loads config and builds a client; errors are already
// user-friendly.
func newJiraClient() (*jira.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, &clierrors.CLIError{
			Err:        err,
			Message:    "Configuration is incomplete.",
			Details:    err.Error(),
			Suggestion: "Set JIRA_URL, JIRA_EMAIL, and JIRA_API_TOKEN in the environment or in ~/.jira.env.",
		}
	}
	return jira.NewClient(cfg)
}

// wrapErr attaches user-facing context to API errors.
func wrapErr(err error, client *jira.Client) error {
	serverURL := ""
	if client != nil {
		serverURL = client.URL()
	}
	return clierrors.Wrap(err, serverURL)
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// readDescription resolves description input: a file path via --file wins
// over the inline flag value.
func readDescription(inline, fromFile string) (string, error) {
	if fromFile == "" {
		return inline, nil
	}
	data, err := os.ReadFile(fromFile)
	if err != nil {
		return "", fmt.Errorf("read description file: %w", err)
	}
	return string(data), nil
}
