package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/shopx/nthcart/internal/config"
	"github.com/shopx/nthcart/internal/httpx"
	"github.com/shopx/nthcart/internal/journal"
	journalsqlite "github.com/shopx/nthcart/internal/journal/sqlite"
	"github.com/shopx/nthcart/internal/pkg/cache"
	"github.com/shopx/nthcart/internal/pkg/metrics"
	"github.com/shopx/nthcart/internal/pkg/telemetry"
	"github.com/shopx/nthcart/internal/store"
)

const serviceName = "shop-server"

func main() {
	telemetry.InitLogger()
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if cfg.TracingEnabled {
		shutdown, err := telemetry.SetupTracer(ctx, serviceName, cfg.OTLPEndpoint, cfg.Environment)
		if err != nil {
			slog.Error("tracer setup failed", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				slog.Error("tracer shutdown failed", "error", err)
			}
		}()
	}

	shop := store.New(store.Config{
		NthOrderForDiscount: cfg.NthOrderForDiscount,
		DiscountPercent:     cfg.DiscountPercent,
	})

	var orderJournal journal.Repository
	if cfg.JournalPath != "" {
		repo, err := journalsqlite.Open(cfg.JournalPath)
		if err != nil {
			slog.Error("order journal open failed", "path", cfg.JournalPath, "error", err)
			os.Exit(1)
		}
		defer repo.Close()
		orderJournal = repo
		slog.Info("order journal enabled", "path", cfg.JournalPath)
	}

	var idemCache cache.Cache
	if cfg.RedisAddr != "" {
		idemCache = cache.NewRedisCache(cfg.RedisAddr, serviceName)
		slog.Info("checkout idempotency cache enabled", "addr", cfg.RedisAddr)
	}

	handler := httpx.NewHandler(shop, orderJournal, idemCache)
	router := httpx.NewRouter(handler, metrics.NewServerMetrics(serviceName))

	slog.Info("shop server listening",
		"addr", cfg.HTTPAddr,
		"nth_order_for_discount", cfg.NthOrderForDiscount,
		"discount_percent", cfg.DiscountPercent,
	)
	if err := http.ListenAndServe(cfg.HTTPAddr, router); err != nil {
		slog.Error("http server failed", "error", err)
		os.Exit(1)
	}
}
