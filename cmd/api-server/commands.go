package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"bookshelf/database"
	"bookshelf/internal/cache"
	"bookshelf/internal/config"
	"bookshelf/internal/ingestion/books"
	"bookshelf/internal/logger"
	"bookshelf/internal/microservices/http-api/repository"
	"bookshelf/internal/microservices/http-api/service"
)

// newRootCmd builds the api-server command tree. Running it without a
// subcommand starts the server.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "api-server",
		Short:         "Bookshelf HTTP API for users, books and reading lists",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP API",
			Args:  cobra.NoArgs,
			RunE:  runServe,
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update the database schema and exit",
			Args:  cobra.NoArgs,
			RunE:  runMigrate,
		},
		newImportCmd(),
	)
	return root
}

// bootstrap loads config and installs the default logger.
func bootstrap() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	log := logger.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)
	return cfg, log, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, cfg, log); err != nil {
		log.Error("api server stopped", "error", err)
		return err
	}
	return nil
}

func runMigrate(_ *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	cfg.DBAutoMigrate = false
	db, err := database.Connect(cfg, log)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		log.Error("Migration failed", "error", err)
		return err
	}
	log.Info("Migration complete")
	return nil
}

func newImportCmd() *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "import-books <file.csv>",
		Short: "Bulk-load books from a CSV file",
		Long: `Reads a CSV file whose header names the columns title, author, genre and
publicationYear, and adds each valid row as a new book. Rejected rows are
reported on stdout as JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			db, err := database.Connect(cfg, log)
			if err != nil {
				return err
			}
			defer database.Close(db)

			bookSvc := service.NewBookService(
				repository.NewBookRepository(db),
				repository.NewReadingListRepository(db),
				cache.Noop{},
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			res, err := books.NewImporter(bookSvc, workers).ImportCSV(ctx, f)
			if res != nil {
				log.Info("Import finished",
					"imported", res.Imported,
					"failed", res.Failed,
					"rejected", len(res.Rejected),
				)
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if encErr := enc.Encode(res); encErr != nil {
					return encErr
				}
			}
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "concurrent inserts")
	return cmd
}
