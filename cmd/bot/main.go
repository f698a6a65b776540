package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/escalopa/odoj-bot/internal/adapter/httpapi"
	"github.com/escalopa/odoj-bot/internal/adapter/i18n"
	"github.com/escalopa/odoj-bot/internal/adapter/postgres"
	"github.com/escalopa/odoj-bot/internal/adapter/redis"
	"github.com/escalopa/odoj-bot/internal/adapter/supabase"
	"github.com/escalopa/odoj-bot/internal/adapter/telegram"
	"github.com/escalopa/odoj-bot/internal/application"
	"github.com/escalopa/odoj-bot/internal/config"
	"github.com/escalopa/odoj-bot/internal/domain"
	"github.com/escalopa/odoj-bot/internal/logger"
	"github.com/escalopa/odoj-bot/internal/quran"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("application error")
	}
}

func run() error {
	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if err := logger.Setup(cfg.App.LogLevel, cfg.App.LogFormat); err != nil {
		return err
	}
	log.Info().Str("path", configPath).Msg("configuration loaded")

	// The reference tables are checked before anything else starts
	table, err := quran.NewCanonicalTable()
	if err != nil {
		return fmt.Errorf("quran tables: %w", err)
	}
	calc := quran.NewCalculator(table)

	ramadanStart, err := cfg.App.RamadanStartDate()
	if err != nil {
		return err
	}
	defaultLang := domain.Language(cfg.App.DefaultLanguage)

	// Create context cancelled on shutdown signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize i18n
	translations, err := i18n.NewI18n(cfg.App.LocalesDir, defaultLang)
	if err != nil {
		return err
	}
	log.Info().Str("dir", cfg.App.LocalesDir).Msg("i18n initialized")

	// Initialize Redis FSM
	fsm, err := redis.NewFSM(cfg.Redis.URI)
	if err != nil {
		return err
	}
	defer fsm.Close()
	log.Info().Msg("redis FSM connected")

	store, storeCloser, err := newStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer storeCloser.Close()
	log.Info().Str("driver", cfg.Store.Driver).Msg("reading store initialized")

	service := application.NewReadingService(calc, store, fsm, translations, application.Options{
		Location:        cfg.App.Location(),
		RamadanStart:    ramadanStart,
		AdminIDs:        cfg.Telegram.AdminIDs,
		DefaultLanguage: defaultLang,
	})

	bot, err := telegram.NewBot(cfg.Telegram.Token, service, translations)
	if err != nil {
		return err
	}
	log.Info().Msg("telegram bot initialized")

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Msg("starting bot")
		if err := bot.Start(ctx); err != nil {
			return fmt.Errorf("bot: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		return bot.Stop()
	})

	if cfg.HTTP.Enabled {
		server := httpapi.NewServer(cfg.HTTP.Addr, service, translations, defaultLang)
		g.Go(func() error {
			if err := server.Start(ctx); err != nil {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info().Msg("stopped")
	return nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// newStore opens the reading store selected by store.driver
func newStore(ctx context.Context, cfg config.StoreConfig) (domain.ReadingStorePort, io.Closer, error) {
	switch cfg.Driver {
	case config.StorePostgres:
		connectCtx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()

		db, err := postgres.Connect(connectCtx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}

		if err := postgres.RunMigrations(connectCtx, db, cfg.MigrationsPath); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("run migrations: %w", err)
		}

		return postgres.NewStore(db), db, nil
	default:
		return supabase.NewStore(cfg.SupabaseURL, cfg.SupabaseKey), closerFunc(func() error { return nil }), nil
	}
}
