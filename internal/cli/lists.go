package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/listo-app/listo/internal/theme"
)

func newListsCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Inspect and maintain lists",
	}
	cmd.AddCommand(newListsShowCommand(e))
	cmd.AddCommand(newListsNukeCommand(e))
	return cmd
}

func newListsShowCommand(e *env) *cobra.Command {
	var (
		showIDs   bool
		themeName string
	)

	cmd := &cobra.Command{
		Use:   "show <list-id>",
		Short: "Print a list and its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if themeName != "" && !theme.Valid(themeName) {
				return fmt.Errorf("unknown theme %q, known themes: %v", themeName, theme.Names())
			}

			svc, err := e.services(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close()

			view, err := svc.lists.GetList(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			name := view.List.Theme
			if themeName != "" {
				name = &themeName
			}
			out := theme.Render(view.List, view.Items, theme.For(name), theme.RenderOptions{ShowIDs: showIDs})
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showIDs, "ids", false, "print item ids")
	cmd.Flags().StringVar(&themeName, "theme", "", "render with this theme instead of the list's own")
	return cmd
}

var errAborted = errors.New("aborted")

func newListsNukeCommand(e *env) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "nuke <list-id>",
		Short: "Delete every item of a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if !yes {
				confirmed := false
				err := huh.NewForm(
					huh.NewGroup(
						huh.NewConfirm().
							Title(fmt.Sprintf("Delete all items of list %q?", id)).
							Description("The list itself stays, but its items cannot be restored.").
							Affirmative("Yes, delete").
							Negative("No").
							Value(&confirmed),
					),
				).Run()
				if err != nil {
					return err
				}
				if !confirmed {
					return errAborted
				}
			}

			svc, err := e.services(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close()

			n, err := svc.lists.Nuke(cmd.Context(), id)
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "deleted %d items from %s\n", n, id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
