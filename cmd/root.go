package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"recipebox/config"
	"recipebox/editor"
	"recipebox/logger"
	"recipebox/recipes"
	"recipebox/storage"
)

var configFile string

// app is the state shared by every command once the root pre-run has loaded
// configuration and the recipe collection.
type app struct {
	cfg   *config.Config
	kv    storage.KV
	store *recipes.Store
	ids   *editor.ClockIDs
}

var current *app

var rootCmd = &cobra.Command{
	Use:   config.AppName,
	Short: "A personal recipe box",
	Long: `recipebox keeps your recipes in a single local (or Firestore) store.
Add, edit, list and remove recipes from the terminal or serve them over HTTP.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	logger.Init(cfg.LogLevel)
	if cfg.LogDir != "" {
		if err := logger.AddFileLogger(cfg.LogDir); err != nil {
			return fmt.Errorf("configuring file logger: %w", err)
		}
	}

	kv, err := storage.Open(cmd.Context(), cfg.Storage)
	if err != nil {
		return fmt.Errorf("opening %s storage: %w", cfg.Storage.Backend, err)
	}

	store := recipes.New(kv, logger.Logger)
	ids := editor.NewClockIDs()
	for _, r := range store.Load(cmd.Context()) {
		ids.Observe(r.ID)
	}

	logger.Logger.Debug().
		Str("backend", cfg.Storage.Backend).
		Int("recipes", len(store.List())).
		Msg("Recipe store ready")

	current = &app{cfg: cfg, kv: kv, store: store, ids: ids}

	return nil
}

func teardown() error {
	if current == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := current.store.Close(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to flush recipes")
	}

	err := current.kv.Close()
	current = nil

	return err
}

// run executes the command tree and always releases the store, so pending
// writes are flushed even when a command fails.
func run() error {
	err := rootCmd.Execute()
	if terr := teardown(); terr != nil && err == nil {
		err = terr
	}
	return err
}

func Execute() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default recipebox.yaml in . or the user config dir)")
}
