package cli

import (
	"github.com/spf13/cobra"
)

func newMigrateCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Long:  "Open the configured database, apply any pending migrations and print the schema version.",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := e.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			v, err := st.SchemaVersion(cmd.Context())
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "%s schema at version %d\n", st.Driver(), v)
			return nil
		},
	}
}
