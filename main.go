package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campuspay/pricing-engine/assistant"
	"github.com/campuspay/pricing-engine/config"
	"github.com/campuspay/pricing-engine/loader"
	"github.com/campuspay/pricing-engine/pricing"
	"github.com/campuspay/pricing-engine/server"
	"github.com/campuspay/pricing-engine/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	config.LoadEnvFile()
	cfg := config.FromEnv()

	// Create context that cancels on SIGINT or SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	tableLoader := loader.New()
	snap := pricing.NewSnapshot(pricing.ParseRecords(tableLoader.Load(ctx, cfg.DataSource)))
	store := pricing.NewStore(snap)
	if snap.Len() == 0 {
		log.Warn().Str("source", cfg.DataSource).Msg("no comparable sales loaded, estimates will use the default base")
	} else {
		log.Info().Int("records", snap.Len()).Str("source", cfg.DataSource).Msg("comparable sales table loaded")
	}

	var cache storage.ReplyCache
	if cfg.CacheDBPath != "" {
		sqliteCache, err := storage.NewSQLiteCache(cfg.CacheDBPath)
		if err != nil {
			log.Warn().Err(err).Msg("reply cache disabled")
		} else {
			cache = sqliteCache
			defer sqliteCache.Close()
			log.Info().Str("dbPath", cfg.CacheDBPath).Msg("reply cache initialized")
		}
	}

	client := assistant.NewClient(assistant.ClientOpts{
		APIKey: cfg.CerebrasAPIKey,
		APIURL: cfg.CerebrasAPIURL,
		Model:  cfg.ChatModel,
	})
	if client.Configured() {
		log.Info().Str("model", client.Model()).Msg("chat backend configured")
	} else {
		log.Info().Msg("chat backend not configured, assistant will answer from local data")
	}
	bridge := assistant.NewBridge(client, store, cache)

	router := server.NewRouter(store, func(ctx context.Context) string {
		return tableLoader.Load(ctx, cfg.DataSource)
	}, bridge)

	srv := &http.Server{Addr: cfg.Addr, Handler: router}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		log.Error().Err(err).Msg("shutdown with error")
	} else {
		log.Info().Msg("shutdown complete")
	}
}
