// Package cli wires configuration, logging, the store and the services into
// the listo command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/listo-app/listo/internal/ai"
	"github.com/listo-app/listo/internal/checklist"
	"github.com/listo-app/listo/internal/credential"
	"github.com/listo-app/listo/internal/logging"
	"github.com/listo-app/listo/internal/model"
	"github.com/listo-app/listo/internal/store"
	"github.com/listo-app/listo/internal/templates"
)

// Version is stamped at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

// SecretStore reads and writes the secrets kept outside the config file.
type SecretStore interface {
	credential.Getter
	Set(key, value string) error
	Delete(key string) error
}

// env is the state shared by every subcommand once the root has parsed its
// persistent flags.
type env struct {
	configPath string
	dsn        string
	driver     string
	logLevel   string
	noKeyring  bool

	secrets SecretStore
	cfg     *model.AppConfig
	log     *zap.Logger
}

// NewRootCommand builds the listo command tree using the OS keyring for
// secrets.
func NewRootCommand() *cobra.Command {
	return newRootCommand(credential.System{})
}

func newRootCommand(secrets SecretStore) *cobra.Command {
	e := &env{secrets: secrets}

	root := &cobra.Command{
		Use:   "listo",
		Short: "Listo - shareable checklists",
		Long: `Listo serves simple shareable checklists over HTTP.

Besides the server it offers maintenance commands for lists, the template
gallery and the secrets kept in the OS keyring.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if e.log != nil {
				_ = e.log.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&e.configPath, "config", model.DefaultConfigPath(), "config file")
	flags.StringVar(&e.driver, "driver", "", "database driver (postgres or sqlite), overrides the config")
	flags.StringVar(&e.dsn, "db", "", "database DSN, overrides the config")
	flags.StringVar(&e.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVar(&e.noKeyring, "no-keyring", false, "do not read secrets from the OS keyring")

	root.AddCommand(newServeCommand(e))
	root.AddCommand(newMigrateCommand(e))
	root.AddCommand(newListsCommand(e))
	root.AddCommand(newTemplatesCommand(e))
	root.AddCommand(newSecretsCommand(e))
	root.AddCommand(newConfigCommand(e))
	root.AddCommand(newVersionCommand())

	return root
}

func (e *env) setup() error {
	cfg, err := model.LoadConfig(e.configPath)
	if err != nil {
		return err
	}
	if e.driver != "" {
		cfg.Database.Driver = e.driver
	}
	if e.dsn != "" {
		cfg.Database.DSN = e.dsn
	}
	if e.logLevel != "" {
		cfg.Log.Level = e.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}

	if !e.noKeyring && e.secrets != nil {
		if err := credential.Fill(cfg, e.secrets); err != nil {
			log.Warn("reading secrets from keyring", zap.Error(err))
		}
	}

	e.cfg = cfg
	e.log = log
	return nil
}

func (e *env) openStore() (*store.SQLStore, error) {
	st, err := store.Open(e.cfg.Database, e.log)
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", e.cfg.Database.Driver, err)
	}
	return st, nil
}

// generator returns the Gemini client, or ai.Disabled when no API key is
// configured.
func (e *env) generator(ctx context.Context) (ai.Generator, error) {
	gen, err := ai.NewGemini(ctx, e.cfg.AI, e.log)
	if errors.Is(err, ai.ErrDisabled) {
		e.log.Info("ai disabled, no gemini api key configured")
		return ai.Disabled{}, nil
	}
	if err != nil {
		return nil, err
	}
	return gen, nil
}

type services struct {
	store     *store.SQLStore
	lists     *checklist.Service
	templates *templates.Service
	gen       ai.Generator
}

func (s *services) Close() error {
	return s.store.Close()
}

func (e *env) services(ctx context.Context) (*services, error) {
	st, err := e.openStore()
	if err != nil {
		return nil, err
	}
	gen, err := e.generator(ctx)
	if err != nil {
		st.Close()
		return nil, err
	}
	return &services{
		store:     st,
		lists:     checklist.New(st, e.log),
		templates: templates.New(st, gen, e.cfg.Templates, e.log),
		gen:       gen,
	}, nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		// No config or database needed.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "listo %s\n", Version)
		},
	}
}

func printf(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format, args...)
}
