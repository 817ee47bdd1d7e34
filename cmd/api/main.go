// @title Dog Care API
// @version 1.0
// @description Registro de perros por usuario: salud, cuidados, entrenamiento, paseos y equipamiento.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"fmt"
	"os"

	"dog-care-api/internal/platform/config"
	"dog-care-api/internal/platform/logger"

	"github.com/spf13/cobra"
)

// se pisa con -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:           "dog-care-api",
		Short:         "API de registro de perros",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// sin subcomando => serve
			return runServe(cmd.Context(), cfgPath)
		},
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "ruta al archivo YAML de configuración")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Levanta el servidor HTTP",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runServe(cmd.Context(), cfgPath)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Aplica el schema embebido a la base configurada",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runMigrate(cmd.Context(), cfgPath)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Imprime la versión",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version)
			},
		},
	)
	return root
}

func loadConfig(path string) (config.Config, logger.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}
	log := logger.FromConfig(cfg.Log.Level, cfg.Log.Format, cfg.Log.App)
	return cfg, log, nil
}
