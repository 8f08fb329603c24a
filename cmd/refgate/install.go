package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	installHookBin string
	installForce   bool
	installCopy    bool
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the update hook into a repository",
	Long: `Link (or with --copy, copy) the refgate-update binary into the
repository's hooks directory as "update". By default the binary is looked
up next to this executable, then on PATH.

Examples:
  refgate -r /srv/git/app.git install
  refgate -r /srv/git/app.git install --copy --force`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func init() {
	installCmd.Flags().StringVar(&installHookBin, "hook-bin", "", "Path to the refgate-update binary")
	installCmd.Flags().BoolVarP(&installForce, "force", "f", false, "Replace an existing update hook")
	installCmd.Flags().BoolVar(&installCopy, "copy", false, "Copy the binary instead of symlinking")
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	src, err := hookBinary()
	if err != nil {
		return err
	}

	dir := repoDir
	if dir == "" {
		dir = "."
	}
	hooksDir := filepath.Join(dir, "hooks")
	if _, err := os.Stat(hooksDir); err != nil {
		return fmt.Errorf("no hooks directory at %s; is %s a git repository?", hooksDir, dir)
	}
	dst := filepath.Join(hooksDir, "update")

	if _, err := os.Lstat(dst); err == nil {
		if !installForce {
			return fmt.Errorf("%s already exists; use --force to replace it", dst)
		}
		if err := os.Remove(dst); err != nil {
			return fmt.Errorf("remove existing hook: %w", err)
		}
	}

	if installCopy {
		if err := copyExecutable(src, dst); err != nil {
			return err
		}
	} else {
		if err := os.Symlink(src, dst); err != nil {
			return fmt.Errorf("link hook: %w", err)
		}
	}
	fmt.Printf("installed %s -> %s\n", dst, src)
	return nil
}

// hookBinary locates refgate-update: explicit flag, sibling of this
// executable, then PATH
func hookBinary() (string, error) {
	if installHookBin != "" {
		abs, err := filepath.Abs(installHookBin)
		if err != nil {
			return "", err
		}
		if _, err := os.Stat(abs); err != nil {
			return "", fmt.Errorf("hook binary %s: %w", abs, err)
		}
		return abs, nil
	}
	if self, err := os.Executable(); err == nil {
		sibling := filepath.Join(filepath.Dir(self), "refgate-update")
		if _, err := os.Stat(sibling); err == nil {
			return sibling, nil
		}
	}
	if found, err := exec.LookPath("refgate-update"); err == nil {
		return filepath.Abs(found)
	}
	return "", fmt.Errorf("refgate-update binary not found; pass --hook-bin")
}

func copyExecutable(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read %s: %w", src, err)
	}
	if err := os.WriteFile(dst, data, 0o755); err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}
	return nil
}
