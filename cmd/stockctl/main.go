// Command stockctl opera el inventario desde la terminal: migraciones, validación de
// operaciones y ajustes por conteo, con la misma configuración que la API.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/stockops/internal/bootstrap"
	"github.com/jhoicas/stockops/pkg/config"
	"github.com/jhoicas/stockops/pkg/logger"
)

type cli struct {
	store   string
	timeout time.Duration
	verbose bool

	cfg       *config.Config
	log       *logger.Logger
	container *bootstrap.Container
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "stockctl",
		Short:         "Herramienta de línea de comandos de StockOps",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd.Context())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.container != nil {
				c.container.Close()
			}
		},
	}
	root.PersistentFlags().StringVar(&c.store, "store", "", "Backend de almacenamiento: postgres | memory (por defecto STORE_BACKEND)")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", 30*time.Second, "Timeout de la operación")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Logs en nivel debug")

	root.AddCommand(c.migrateCmd(), c.validateCmd(), c.adjustCmd())
	return root
}

func (c *cli) setup(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if c.store != "" {
		cfg.App.Store = c.store
	}
	level := cfg.Log.Level
	if c.verbose {
		level = "debug"
	}
	c.cfg = cfg
	c.log = logger.New(logger.Config{Env: cfg.App.Env, Level: level, Out: os.Stderr})

	container, err := bootstrap.New(ctx, cfg, c.log)
	if err != nil {
		return err
	}
	c.container = container
	return nil
}

func (c *cli) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), c.timeout)
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
