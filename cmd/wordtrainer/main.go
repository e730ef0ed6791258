package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/lehmann314159/wordtrainer/internal/api"
	"github.com/lehmann314159/wordtrainer/internal/config"
	"github.com/lehmann314159/wordtrainer/internal/i18n"
	"github.com/lehmann314159/wordtrainer/internal/repository"
	"github.com/lehmann314159/wordtrainer/internal/services"
	"github.com/lehmann314159/wordtrainer/internal/tui"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	flags := pflag.NewFlagSet("wordtrainer", pflag.ExitOnError)
	configPath := flags.String("config", "", "path to the config file (default $CONFIG_PATH or config.yaml)")
	flags.String("mode", config.ModeServe, "front end to run: serve or tui")
	flags.Parse(os.Args[1:])

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	if *configPath == "" {
		*configPath = os.Getenv("CONFIG_PATH")
	}
	if *configPath == "" {
		*configPath = "config.yaml"
	}

	cfg, err := config.Load(*configPath, flags)
	if err != nil {
		return err
	}
	log.Println("Configuration loaded successfully")

	tr, err := i18n.New(cfg.App.Language)
	if err != nil {
		return err
	}

	catalog, result, err := services.LoadCatalog(cfg.Catalog.Path, cfg.Catalog.Sheet)
	if err != nil {
		return err
	}
	for _, msg := range result.Errors {
		log.Printf("catalog: %s", msg)
	}
	log.Printf("Catalog loaded: %d words (%d rows skipped)", catalog.Len(), result.Skipped)

	store, err := repository.Open(repository.Options{
		Driver:   cfg.Storage.Driver,
		DSN:      cfg.Storage.DSN,
		RedisURI: cfg.Storage.RedisURI,
	})
	if err != nil {
		return err
	}
	defer store.Close()
	log.Printf("Progress storage opened (%s)", cfg.Storage.Driver)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	progress := services.NewProgressStore(store, cfg.Storage.Key, catalog.Len())
	days := services.NewDayPartitioner(catalog.Len(), cfg.App.PageSize)
	ctrl := services.NewController(catalog, progress, days, nil)
	ctrl.Start(ctx)

	if cfg.App.Mode == config.ModeTUI {
		// The terminal belongs to the UI from here on
		log.SetOutput(io.Discard)
		return tui.Run(ctx, ctrl, tr)
	}

	return serve(ctx, cfg, ctrl, tr)
}

func serve(ctx context.Context, cfg *config.Config, ctrl *services.Controller, tr *i18n.I18n) error {
	trainer := api.NewTrainer(ctrl)

	wh, err := api.NewWebHandler(trainer, tr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.NewRouter(api.NewHandler(trainer), wh, cfg.Server.APIToken),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Println("Received shutdown signal, stopping server...")
	case err := <-errChan:
		return err
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}

	log.Println("Server stopped successfully")
	return nil
}
