package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/listo-app/listo/internal/credential"
)

func newSecretsCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secrets",
		Short: "Store secrets in the OS keyring",
		Long: fmt.Sprintf(`Store secrets in the OS keyring instead of the config file.

Known keys: %v. Values from the config file or the environment take
precedence over the keyring.`, credential.Keys),
	}
	cmd.AddCommand(newSecretsSetCommand(e))
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <key>",
		Short: "Remove a secret from the keyring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.secrets.Delete(args[0]); err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	})
	return cmd
}

func newSecretsSetCommand(e *env) *cobra.Command {
	var value string

	cmd := &cobra.Command{
		Use:   "set <key>",
		Short: "Save a secret to the keyring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if value == "" {
				err := huh.NewForm(
					huh.NewGroup(
						huh.NewInput().
							Title(key).
							Description("Stored in the OS keyring").
							EchoMode(huh.EchoModePassword).
							Value(&value).
							Validate(func(s string) error {
								if s == "" {
									return fmt.Errorf("value is required")
								}
								return nil
							}),
					),
				).Run()
				if err != nil {
					return err
				}
			}

			if err := e.secrets.Set(key, value); err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "saved %s\n", key)
			return nil
		},
	}

	cmd.Flags().StringVar(&value, "value", "", "secret value; prompted for when empty")
	return cmd
}
