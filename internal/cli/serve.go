package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/listo-app/listo/internal/httpapi"
)

func newServeCommand(e *env) *cobra.Command {
	var (
		addr     string
		seedPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, e, addr, seedPath)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides the config")
	cmd.Flags().StringVar(&seedPath, "seed", "", "YAML template file to seed before serving")
	return cmd
}

func runServe(ctx context.Context, e *env, addr, seedPath string) error {
	svc, err := e.services(ctx)
	if err != nil {
		return err
	}
	defer svc.Close()

	if seedPath != "" {
		n, err := svc.templates.SeedPath(ctx, seedPath)
		if err != nil {
			return err
		}
		e.log.Info("seed loaded", zap.String("path", seedPath), zap.Int("created", n))
	}

	if e.cfg.Admin.Secret == "" {
		e.log.Warn("no admin secret configured, admin routes are disabled")
	}

	srv := httpapi.New(httpapi.Deps{
		Lists:       svc.lists,
		Templates:   svc.templates,
		AI:          svc.gen,
		Health:      svc.store,
		AdminSecret: e.cfg.Admin.Secret,
		Log:         e.log,
	})

	cfg := e.cfg.Server
	if addr != "" {
		cfg.Addr = addr
	}
	return srv.Run(ctx, cfg)
}
