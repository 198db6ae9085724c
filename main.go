// Package main provides the calan CLI entry point.
// calan analyzes calendar exports against an HR directory to surface
// meeting load, cost, and collaboration patterns.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mdomarsaleem1/calendar-analytics/cmd"
	"github.com/mdomarsaleem1/calendar-analytics/pkg/buildinfo"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "calan",
	Short: "Calendar analytics for organizations",
	Long: `calan analyzes calendar exports against an HR directory.

It classifies meetings (one-on-ones, team meetings, all-hands, external,
focus time), measures timing and fragmentation, estimates meeting cost,
and scores cross-functional collaboration and manager one-on-one
coverage. Reports render as text, markdown, HTML, or JSON.

COMMON WORKFLOWS:
  First look:        calan demo
  Try with data:     calan generate-sample  →  calan analyze --hris sample_data/hris_data.json --calendars sample_data/calendars
  Real analysis:     calan analyze --hris hris.json --calendars ./calendars --output report.html --format html
  One person:        calan individual --email jane@example.com --hris hris.json --calendars ./calendars

DISCOVERY:
  calan <command> --help   Flags and examples for any command
  calan config show        Effective configuration`,
}

// Version command flags.
var (
	versionOutputJSON bool
	versionChangelog  bool
)

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Print the version, commit hash, and build time of the calan CLI.

Use --changelog to show commits since the last tag.
Use --json for machine-readable output.

Examples:
  calan version
  calan version --changelog
  calan version --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := buildinfo.Get("calan")

		if versionChangelog {
			tagCmd := exec.Command("git", "describe", "--tags", "--abbrev=0")
			tagOut, err := tagCmd.Output()
			lastTag := strings.TrimSpace(string(tagOut))
			if err != nil || lastTag == "" {
				lastTag = "" // No tags, show all commits
			}

			var logCmd *exec.Cmd
			if lastTag != "" {
				logCmd = exec.Command("git", "log", "--oneline", lastTag+"..HEAD")
			} else {
				logCmd = exec.Command("git", "log", "--oneline")
			}

			logOut, err := logCmd.Output()
			if err != nil {
				return fmt.Errorf("failed to get git log: %w", err)
			}
			changelog := strings.TrimSpace(string(logOut))

			if versionOutputJSON {
				type commit struct {
					Hash    string `json:"hash"`
					Message string `json:"message"`
				}
				commits := []commit{}
				if changelog != "" {
					for _, line := range strings.Split(changelog, "\n") {
						fields := strings.SplitN(line, " ", 2)
						if len(fields) == 2 {
							commits = append(commits, commit{Hash: fields[0], Message: fields[1]})
						}
					}
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(commits)
			}

			out := cmd.OutOrStdout()
			if changelog == "" {
				fmt.Fprintln(out, "No commits since last tag.")
			} else {
				fmt.Fprintln(out, changelog)
			}
			return nil
		}

		if versionOutputJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "calan version %s\n", info.Version)
		fmt.Fprintf(out, "  commit:     %s\n", info.Commit)
		fmt.Fprintf(out, "  built:      %s\n", info.BuildTime)
		fmt.Fprintf(out, "  go:         %s\n", info.GoVersion)
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionOutputJSON, "json", false, "output as JSON")
	versionCmd.Flags().BoolVar(&versionChangelog, "changelog", false, "show commits since last tag")

	rootCmd.AddGroup(
		&cobra.Group{ID: "analysis", Title: "Analysis:"},
		&cobra.Group{ID: "data", Title: "Sample Data:"},
		&cobra.Group{ID: "setup", Title: "Setup:"},
	)

	analyzeCmd := cmd.NewAnalyzeCommand(nil)
	analyzeCmd.GroupID = "analysis"
	rootCmd.AddCommand(analyzeCmd)

	individualCmd := cmd.NewIndividualCommand(nil)
	individualCmd.GroupID = "analysis"
	rootCmd.AddCommand(individualCmd)

	demoCmd := cmd.NewDemoCommand(nil)
	demoCmd.GroupID = "analysis"
	rootCmd.AddCommand(demoCmd)

	reportCmd := cmd.NewReportCommand(nil)
	reportCmd.GroupID = "analysis"
	rootCmd.AddCommand(reportCmd)

	generateCmd := cmd.NewGenerateSampleCommand(nil)
	generateCmd.GroupID = "data"
	rootCmd.AddCommand(generateCmd)

	configCmd := cmd.NewConfigCommand(nil)
	configCmd.GroupID = "setup"
	rootCmd.AddCommand(configCmd)

	rootCmd.AddCommand(versionCmd)
}

func main() {
	// Cancel the run context on interrupt so partial output is flushed.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nReceived interrupt signal, shutting down...")
		cancel()
		os.Exit(1)
	}()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
