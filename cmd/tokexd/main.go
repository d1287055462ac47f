package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/avandersen/tokex/params"
	"github.com/avandersen/tokex/pkg/api"
	"github.com/avandersen/tokex/pkg/exchange"
	"github.com/avandersen/tokex/pkg/storage"
	"github.com/avandersen/tokex/pkg/util"
)

func main() {
	// Load config from .env file and environment variables
	cfg := params.LoadFromEnv("")

	sugar, err := util.NewLogger(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer sugar.Sync()
	sugar.Infow("logger_initialized", "file", cfg.Log.File, "level", cfg.Log.Level)

	// ---- Store: document source for pairs, resting orders, trades ----
	var store storage.Store
	if cfg.Storage.Dir == "" {
		sugar.Warn("no DATA_DIR configured, using in-memory store")
		store = storage.NewInMemoryStore()
	} else {
		ps, err := storage.NewPebbleStore(cfg.Storage.Dir)
		if err != nil {
			sugar.Fatalw("store_open_failed", "dir", cfg.Storage.Dir, "err", err)
		}
		store = ps
	}
	defer store.Close()

	// ---- Pair registry: warm from stored pair documents ----
	registry := exchange.NewPairRegistry()
	pairs, err := store.ListPairs()
	if err != nil {
		sugar.Fatalw("pair_load_failed", "err", err)
	}
	for _, p := range pairs {
		if err := registry.Register(p); err != nil {
			sugar.Warnw("pair_register_failed", "code", p.Code, "err", err)
		}
	}
	if registry.Count() == 0 {
		sugar.Warn("no pairs configured; seed pair documents before serving quotes")
	}
	sugar.Infow("pairs_loaded", "count", registry.Count())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ---- API server ----
	server := api.NewServer(store, registry, api.Config{
		DepthLimit:  cfg.Book.DepthLimit,
		CORSOrigins: cfg.Server.CORSOrigins,
	}, sugar)

	go func() {
		if err := server.Start(cfg.Server.Addr); err != nil {
			sugar.Fatalw("api_server_failed", "err", err)
		}
	}()

	sugar.Infow("tokexd_started", "addr", cfg.Server.Addr, "pairs", registry.Count())

	<-ctx.Done()
	sugar.Info("shutting down")
}
