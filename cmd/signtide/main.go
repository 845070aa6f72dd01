package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "signtide",
	Short: "Signtide - batch check-in orchestrator for cloud drive accounts",
	Long: `Signtide drives an ordered list of cloud drive accounts through their
daily check-in: login, repeated personal and family sign-in actions, and a
capacity read. Accounts are grouped into fixed-size cohorts sharing a family
ID; each cohort's capacity growth is reconciled against its first account.

The aggregated run log is pushed to the configured notification channels
(WxPusher, Telegram) when the run ends.`,
	Version: Version,
}

func init() {
	// Set version template
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"Signtide version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	rootCmd.AddCommand(runCmd)
}
