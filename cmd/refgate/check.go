package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"refgate/internal/modkit"
	"refgate/internal/modkit/module"
	"refgate/internal/platform/config"
	"refgate/internal/platform/logger"
	"refgate/internal/services/gate/domain"

	gatemod "refgate/internal/services/gate/module"
)

var checkCmd = &cobra.Command{
	Use:   "check <refname> <old-id> <new-id>",
	Short: "Dry-run one ref update through the gate",
	Long: `Evaluate a ref update exactly as the installed hook would, without
touching any ref. Exit code 0 means the update would be accepted, 1 that
it would be rejected.

Examples:
  refgate check refs/heads/secure $(git rev-parse secure~1) $(git rev-parse secure)
  refgate -r /srv/git/app.git check refs/heads/release 0000000000000000000000000000000000000000 <sha>`,
	Args: cobra.ExactArgs(3),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	deps := modkit.Deps{Cfg: config.New(), Log: *logger.Get()}
	mod := gatemod.New(deps, gatemod.Options{RepoDir: repoDir, PolicyFile: policyFile})
	module.Register(mod.Name(), mod.Ports())

	ports, ok := module.PortsAs[gatemod.Ports](mod.Name())
	if !ok {
		return fmt.Errorf("gate ports not registered")
	}

	upd := domain.RefUpdate{RefName: args[0], OldID: args[1], NewID: args[2]}
	verdict, err := ports.Gate.Evaluate(cmd.Context(), upd)
	if err != nil {
		return fmt.Errorf("evaluate %s: %w", upd.RefName, err)
	}
	if !verdict.Allowed {
		fmt.Printf("reject  %s: %s\n", upd.RefName, verdict.Reason)
		os.Exit(1)
	}
	fmt.Printf("accept  %s\n", upd.RefName)
	return nil
}
