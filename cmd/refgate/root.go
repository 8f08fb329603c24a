package main

import (
	"os"

	"github.com/spf13/cobra"

	"refgate/internal/platform/logger"
)

var (
	// Global flags
	repoDir    string
	policyFile string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "refgate",
	Short: "Administer the refgate repository update gate",
	Long: `refgate manages the server-side update gate that enforces per-branch
push policy: merge-only branches accept only merge commits, auth-only
branches accept only verifiably signed commits.

Core Commands:
  check    Dry-run one ref update through the gate
  policy   Show the resolved policy for a branch
  install  Install the update hook into a repository
  version  Show version information`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := "warn"
		if verbose {
			level = "debug"
		}
		logger.Init(logger.Options{
			Level:     level,
			Format:    "console",
			Component: "refgate-cli",
			Writer:    os.Stderr,
		})
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&repoDir, "repo", "r", "", "Repository directory (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&policyFile, "policy-file", "", "Resolve policy from a YAML file instead of the repository configuration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}
