package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"refgate/internal/gitcli"
	"refgate/internal/platform/logger"
	"refgate/internal/services/gate/policy"
)

var policyCmd = &cobra.Command{
	Use:   "policy <branch>",
	Short: "Show the resolved policy for a branch",
	Long: `Resolve and print the effective policy for a branch short name, from
the repository configuration (refgate.<branch>.*) or, with --policy-file,
from a provisioned YAML document.

Examples:
  refgate policy secure
  refgate --policy-file /etc/refgate/policy.yaml policy release`,
	Args: cobra.ExactArgs(1),
	RunE: runPolicy,
}

func init() {
	rootCmd.AddCommand(policyCmd)
}

func runPolicy(cmd *cobra.Command, args []string) error {
	branch := args[0]

	var src policy.Source = policy.NewGitConfig(gitcli.NewExec(repoDir))
	if policyFile != "" {
		src = policy.NewFileSource(policyFile)
	}

	pol, err := policy.NewResolver(src, *logger.Get()).Resolve(cmd.Context(), branch)
	if err != nil {
		return fmt.Errorf("resolve policy for %s: %w", branch, err)
	}

	fmt.Printf("branch:       %s\n", branch)
	fmt.Printf("merge-only:   %v\n", pol.MergeOnly)
	fmt.Printf("auth-only:    %v\n", pol.AuthOnly)
	trust := pol.TrustStorePath
	if trust == "" {
		trust = "(ambient keyring)"
	}
	fmt.Printf("trust store:  %s\n", trust)
	if !pol.Enforcing() {
		fmt.Println("\nno constraints enforced; all updates to this branch are accepted")
	}
	return nil
}
