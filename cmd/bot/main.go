package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lnpeers/tplbot/internal/bot"
	"github.com/lnpeers/tplbot/internal/currency"
	"github.com/lnpeers/tplbot/internal/database"
	apperrors "github.com/lnpeers/tplbot/internal/errors"
	"github.com/lnpeers/tplbot/internal/health"
	"github.com/lnpeers/tplbot/internal/i18n"
	"github.com/lnpeers/tplbot/internal/idempotency"
	"github.com/lnpeers/tplbot/internal/jobs"
	jobhandlers "github.com/lnpeers/tplbot/internal/jobs/handlers"
	"github.com/lnpeers/tplbot/internal/middleware"
	"github.com/lnpeers/tplbot/internal/order"
	"github.com/lnpeers/tplbot/internal/repository"
	"github.com/lnpeers/tplbot/internal/user"
	"github.com/lnpeers/tplbot/internal/usercache"
	"github.com/lnpeers/tplbot/internal/wizard"
	"github.com/lnpeers/tplbot/pkg/config"
	"github.com/lnpeers/tplbot/pkg/graceful"
	"github.com/lnpeers/tplbot/pkg/logger"
	"github.com/lnpeers/tplbot/pkg/metrics"
	pkgredis "github.com/lnpeers/tplbot/pkg/redis"

	_ "github.com/lib/pq"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, v, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	log := logger.New(*cfg)
	slog.SetDefault(log)

	if cfg.Sentry.Enabled {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.AppEnv,
		}); err != nil {
			log.Error("failed to initialize sentry", slog.Any("error", err))
			os.Exit(1)
		}
		defer sentry.Flush(2 * time.Second)
	}

	config.Watch(v, log, func(config.Config) {})

	log.Info("starting template bot", slog.String("env", cfg.AppEnv))

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Error("error closing database", slog.Any("error", cerr))
		}
	}()

	if err := db.PingContext(ctx); err != nil {
		log.Error("failed to ping database", slog.Any("error", err))
		os.Exit(1)
	}

	migrator := database.NewMigrator(db, log)
	if err := migrator.ApplyDir(ctx, "migrations"); err != nil {
		log.Error("failed to apply migrations", slog.Any("error", err))
		os.Exit(1)
	}

	rdb, err := pkgredis.New(ctx, cfg.Redis)
	if err != nil {
		log.Error("failed to connect to redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if cerr := rdb.Close(); cerr != nil {
			log.Error("error closing redis", slog.Any("error", cerr))
		}
	}()

	translations, err := i18n.Load("en")
	if err != nil {
		log.Error("failed to load translations", slog.Any("error", err))
		os.Exit(1)
	}
	t := translations.Translator("en")

	b, err := bot.New(*cfg, log)
	if err != nil {
		log.Error("failed to initialize bot", slog.Any("error", err))
		os.Exit(1)
	}
	transport := b.Transport()

	userRepo := repository.NewUserRepository(db, log)
	userCache := usercache.New(rdb.Client, cfg.Users.CacheTTL)
	userService := user.NewService(userRepo, userCache, log)
	templates := repository.NewTemplateRepository(db, log)

	orders := order.NewService(db, cfg.Orders.MaxPending, log)
	broadcaster := order.NewChannelBroadcaster(transport, cfg.Bot.OffersChannelID, t, log)
	publisher := order.NewPublisher(orders, orders, broadcaster, transport, t, log)

	sessions := wizard.NewStore()
	engine := wizard.NewEngine(sessions, templates, currency.NewTable(), publisher, transport, t, log)

	idempotencyManager := idempotency.NewRedisManager(rdb.Client, log)
	errHandler := apperrors.NewHandler(log, cfg.Sentry.Enabled)

	b.Setup(engine, userService, templates, publisher, t, idempotencyManager, errHandler)

	go sessions.RunJanitor(ctx, cfg.Wizard.SweepInterval, cfg.Wizard.SessionTTL, log)
	go metrics.NewSessionCollector(sessions).Run(ctx)

	checker := health.NewChecker(log)
	checker.AddCheck("postgres", health.NewDBChecker(db))
	checker.AddCheck("redis", health.NewRedisChecker(rdb.Client))
	checker.AddCheck("telegram", health.NewTelegramChecker(b.Telebot()))

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	scheduler := jobs.NewScheduler(redisOpt, log)
	if err := scheduler.RegisterTasks(cfg.Jobs.HeartbeatSchedule); err != nil {
		log.Error("failed to register scheduled tasks", slog.Any("error", err))
		os.Exit(1)
	}
	scheduler.Run()
	defer scheduler.Shutdown()

	worker := jobs.NewWorker(redisOpt, cfg.Jobs.WorkerConcurrency, map[string]int{
		jobs.QueueCritical: 6,
		jobs.QueueDefault:  3,
		jobs.QueueLow:      1,
	}, log)
	worker.RegisterHandler(jobs.TaskTypeHeartbeat, jobhandlers.NewHeartbeatHandler(checker, transport, cfg.Bot.OperatorsChatID, log))
	go func() {
		if err := worker.Run(); err != nil {
			log.Error("jobs worker stopped", slog.Any("error", err))
		}
	}()
	defer worker.Shutdown()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		results := checker.Check(r.Context())

		w.Header().Set("Content-Type", "application/json")
		if !health.Healthy(results) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(results)
	})

	httpHandler := logger.Middleware(middleware.New(log)(mux))
	srv := graceful.NewServer(log, &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           httpHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}, cfg.Server.ShutdownTimeout)

	go b.Start()
	defer b.Stop()

	if err := srv.ListenAndServe(ctx); err != nil {
		log.Error("http server exited with error", slog.Any("error", err))
	}

	log.Info("template bot shutting down")
}
