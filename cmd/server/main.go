package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"flock/internal/domain"
	httpapi "flock/internal/http"
	"flock/internal/notify"
	notifykafka "flock/internal/notify/kafka"
	notifyworker "flock/internal/notify/worker"
	"flock/internal/platform/config"
	"flock/internal/platform/httpserver"
	"flock/internal/platform/logger"
	platformredis "flock/internal/platform/redis"
	"flock/internal/registration/cache"
	"flock/internal/registration/handler"
	regmetrics "flock/internal/registration/metrics"
	"flock/internal/registration/service"
	"flock/internal/registration/store"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in internal/registration.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	checks := map[string]httpapi.HealthCheck{}

	// Registration stores: postgres when configured, seeded memory otherwise.
	var stores map[string]service.Store
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("postgres connect failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := store.EnsureSchema(ctx, pool); err != nil {
			log.Error("postgres schema setup failed", "error", err)
			os.Exit(1)
		}
		checks["postgres"] = pool.Ping

		stores = make(map[string]service.Store, len(domain.All()))
		for _, d := range domain.All() {
			stores[d.Key] = store.NewPostgres(pool, d.Key)
		}
		log.Info("using postgres registration store")
	} else {
		stores = make(map[string]service.Store, len(domain.All()))
		for d, subjects := range store.DemoSubjects() {
			mem := store.NewMemory()
			store.SeedDemoSubjects(mem, subjects)
			stores[d] = mem
		}
		log.Info("using in-memory registration store with demo subjects")
	}

	// Summary cache: redis when configured, in-process otherwise.
	var summaries cache.Summary
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connect failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		checks["redis"] = redisClient.Health
		summaries = cache.NewRedisSummary(redisClient.Client, cfg.SummaryCacheTTL, log)
	} else {
		summaries = cache.NewMemorySummary(cfg.SummaryCacheTTL)
	}

	g, ctx := errgroup.WithContext(ctx)

	// Notification dispatch: kafka publisher + consumer group when brokers
	// are configured, in-process channel otherwise. Either way the
	// disposition worker renders notices through the log sender.
	worker := notifyworker.New(notifyworker.LogSender{Logger: log}, log)

	var dispatcher notify.Dispatcher
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err := notifykafka.NewPublisher(ctx, cfg.KafkaBrokers, cfg.DispositionTopic, log)
		if err != nil {
			log.Error("kafka publisher setup failed", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()
		dispatcher = publisher

		consumer, err := notifykafka.NewConsumer(cfg.KafkaBrokers, cfg.DispositionTopic,
			"flock-disposition-worker", log, worker.Handle)
		if err != nil {
			log.Error("kafka consumer setup failed", "error", err)
			os.Exit(1)
		}
		g.Go(func() error { return consumer.Run(ctx) })
		log.Info("using kafka notification dispatcher", "topic", cfg.DispositionTopic)
	} else {
		channel := notify.NewChannel(256)
		defer channel.Close()
		dispatcher = channel
		g.Go(func() error { return worker.Run(ctx, channel.Payloads()) })
		log.Info("using in-process notification dispatcher")
	}

	metrics := regmetrics.New()

	handlers := make([]*handler.Handler, 0, len(domain.All()))
	for _, d := range domain.All() {
		svc := service.New(d, stores[d.Key], dispatcher,
			service.WithLogger(log),
			service.WithMetrics(metrics),
			service.WithSummaryCache(summaries),
		)
		handlers = append(handlers, handler.New(svc, d, log))
	}

	router := httpapi.NewRouter(handlers, cfg.AdminToken, log, checks)
	srv := httpserver.New(cfg.Addr, router)

	g.Go(func() error {
		log.Info("starting flock", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}
