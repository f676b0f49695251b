package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/listo-app/listo/internal/model"
)

func newConfigCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}
	cmd.AddCommand(newConfigInitCommand(e))
	return cmd
}

func newConfigInitCommand(e *env) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the current settings to the config file",
		Long: `Write the effective settings (defaults, environment and flags) to the
config file. Secrets are never written; keep them in the keyring.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(e.configPath); err == nil && !force {
				return fmt.Errorf("config %s already exists, use --force to overwrite", e.configPath)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("checking config %s: %w", e.configPath, err)
			}

			if err := model.SaveConfig(e.configPath, e.cfg); err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "wrote %s\n", e.configPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
