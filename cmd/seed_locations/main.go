// seed_locations carga países y estados desde un catálogo XML usando los mismos casos de uso de la API.
//
// Uso:
//
//	go run ./cmd/seed_locations                      # catálogo embebido
//	go run ./cmd/seed_locations paises.xml --only MX,CO
//	go run ./cmd/seed_locations --dry-run             # valida contra un store en memoria
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/memory"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/postgres"
	"github.com/jhoicas/catalogo-api/pkg/config"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

var (
	dryRun  bool
	migrate bool
	only    []string
	actorID int64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "seed_locations [catalogo.xml]",
		Short: "Carga países y estados desde un catálogo XML",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSeed,
	}
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "procesa el catálogo en memoria sin tocar la base de datos")
	rootCmd.Flags().BoolVar(&migrate, "migrate", false, "aplica las migraciones antes de cargar")
	rootCmd.Flags().StringSliceVar(&only, "only", nil, "limita la carga a estos códigos ISO alpha-2")
	rootCmd.Flags().Int64Var(&actorID, "actor", 0, "ID de usuario para created_by (0 = sin actor)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Out: cmd.ErrOrStderr()}).Named("seed")

	cat, err := loadCatalog(args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		repos repository.Repos
		tx    usecase.TxRunner
	)
	if dryRun {
		store := memory.NewStore()
		repos, tx = store.Repos(), store
		log.Info().Msg("dry-run: store en memoria")
	} else {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		defer pool.Close()
		if migrate || cfg.DB.AutoMigrate {
			if _, err := postgres.Migrate(ctx, pool); err != nil {
				return err
			}
		}
		repos, tx = postgres.NewRepos(pool), postgres.NewTxRunner(pool)
	}

	s := &seeder{
		countries: usecase.NewCountryUseCase(repos, tx, nil),
		states:    usecase.NewStateUseCase(repos, tx, nil),
		log:       log,
	}
	if actorID > 0 {
		s.actor = &actorID
	}

	stats, err := s.run(ctx, cat, isoFilter(only))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), stats.String())
	return nil
}

func loadCatalog(args []string) (*catalog, error) {
	var r io.Reader = bytes.NewReader(defaultCatalog)
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, fmt.Errorf("abrir catálogo: %w", err)
		}
		defer f.Close()
		r = f
	}
	return parseCatalog(r)
}

func isoFilter(codes []string) map[string]bool {
	if len(codes) == 0 {
		return nil
	}
	out := make(map[string]bool, len(codes))
	for _, c := range codes {
		out[strings.ToUpper(strings.TrimSpace(c))] = true
	}
	return out
}
