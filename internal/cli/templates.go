package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/listo-app/listo/internal/model"
	"github.com/listo-app/listo/internal/theme"
)

func newTemplatesCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "templates",
		Aliases: []string{"tpl"},
		Short:   "Manage the template gallery",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "seed <file.yaml>",
		Short: "Load approved templates from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := e.services(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close()

			n, err := svc.templates.SeedPath(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "created %d templates\n", n)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "pending",
		Short: "List templates awaiting review",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := e.services(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close()

			pending, err := svc.templates.Pending(cmd.Context())
			if err != nil {
				return err
			}
			if len(pending) == 0 {
				printf(cmd.OutOrStdout(), "no pending templates\n")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), templateTable(pending))
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "approve <template-id>",
		Short: "Publish a template and create its translations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := e.services(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close()

			res, err := svc.templates.Approve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "approved %s (%d translations)\n", res.Template.ID, len(res.Translations))
			if len(res.Translations) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), templateTable(res.Translations))
			}
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "reject <template-id>",
		Short: "Reject a pending template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := e.services(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close()

			tpl, err := svc.templates.Reject(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "rejected %s\n", tpl.ID)
			return nil
		},
	})
	return cmd
}

func templateTable(lists []model.List) string {
	rows := make([][]string, 0, len(lists))
	for _, l := range lists {
		category := ""
		if l.TemplateCategory != nil {
			category = *l.TemplateCategory
		}
		rows = append(rows, []string{l.ID, l.Title, category, l.Language, l.Status, strconv.Itoa(l.UseCount)})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.ColorBorder)).
		Headers("ID", "TITLE", "CATEGORY", "LANG", "STATUS", "USES").
		Rows(rows...).
		String()
}
