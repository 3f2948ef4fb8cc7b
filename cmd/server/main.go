package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"otsus/internal/audit"
	"otsus/internal/decision"
	decisionHandler "otsus/internal/decision/handler"
	decisionMetrics "otsus/internal/decision/metrics"
	decisionStore "otsus/internal/decision/store"
	"otsus/internal/platform/config"
	"otsus/internal/platform/httpserver"
	"otsus/internal/platform/logger"
	"otsus/internal/platform/postgres"
	platformRedis "otsus/internal/platform/redis"
	httptransport "otsus/internal/transport/http"
	"otsus/pkg/platform/pseudonym"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in internal/decision.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hasher, err := pseudonym.NewHasher(cfg.PseudonymKey)
	if err != nil {
		log.Error("pseudonym hasher init failed", "error", err)
		os.Exit(1)
	}

	// Decision records: Postgres when configured, Redis as the lightweight
	// alternative, in-memory otherwise.
	var recordStore decision.Store
	var auditStore audit.Store = audit.NewInMemoryStore()
	switch {
	case cfg.PostgresURL != "":
		pool, err := postgres.NewPool(ctx, cfg.PostgresURL)
		if err != nil {
			log.Error("postgres pool init failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		recordStore = decisionStore.NewPostgresStore(pool)

		db, err := postgres.NewDB(ctx, cfg.PostgresURL)
		if err != nil {
			log.Error("postgres init failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		auditStore = audit.NewPostgresStore(db)
	case cfg.RedisURL != "":
		client, err := platformRedis.New(cfg.RedisURL)
		if err != nil {
			log.Error("redis init failed", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		recordStore = decisionStore.NewRedisStore(client.Client, cfg.RedisRetention)
	default:
		recordStore = decisionStore.NewInMemoryStore()
		log.Warn("no store configured, decision records are in-memory only")
	}

	var auditSink audit.Sink
	if len(cfg.KafkaBrokers) > 0 {
		sink, err := audit.NewKafkaSink(cfg.KafkaBrokers, cfg.AuditTopic)
		if err != nil {
			log.Error("kafka sink init failed", "error", err)
			os.Exit(1)
		}
		defer sink.Close()
		auditSink = sink
	}

	publisher := audit.NewPublisher(cfg.AuditBuffer, log)
	worker := audit.NewWorker(auditStore, auditSink, publisher.Inbox(), log)

	engine := decision.NewEngine(cfg.Decision)
	service, err := decision.NewService(engine, recordStore, publisher, hasher, decisionMetrics.New(), log)
	if err != nil {
		log.Error("decision service init failed", "error", err)
		os.Exit(1)
	}

	handler := decisionHandler.New(service, log)
	router := httptransport.NewRouter(handler, log, cfg.RequestTimeout)
	srv := httpserver.New(cfg.Addr, router, cfg.ReadHeaderTimeout)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting otsus", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
