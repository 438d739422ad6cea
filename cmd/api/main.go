package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tendus-stephan/coreflowhr/db"
	"github.com/tendus-stephan/coreflowhr/modules/account"
	"github.com/tendus-stephan/coreflowhr/pkg/clientip"
	"github.com/tendus-stephan/coreflowhr/pkg/config"
	"github.com/tendus-stephan/coreflowhr/pkg/email"
	"github.com/tendus-stephan/coreflowhr/pkg/httpserver"
	"github.com/tendus-stephan/coreflowhr/pkg/identity"
	"github.com/tendus-stephan/coreflowhr/pkg/logger"
	"github.com/tendus-stephan/coreflowhr/pkg/pg"
	"github.com/tendus-stephan/coreflowhr/pkg/ratelimiter"
	"github.com/tendus-stephan/coreflowhr/pkg/redis"
	"github.com/tendus-stephan/coreflowhr/pkg/requestid"
	"github.com/tendus-stephan/coreflowhr/svc/emailchange"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("api stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		appCfg   config.App
		httpCfg  httpserver.Config
		pgCfg    pg.Config
		redisCfg redis.Config
		mailCfg  email.Config
	)
	for _, load := range []func() error{
		func() error { return config.Load(&appCfg) },
		func() error { return config.Load(&httpCfg) },
		func() error { return config.Load(&pgCfg) },
		func() error { return config.Load(&redisCfg) },
		func() error { return config.Load(&mailCfg) },
	} {
		if err := load(); err != nil {
			return err
		}
	}
	if err := appCfg.Validate(); err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(appCfg.Env, appCfg.Name),
		logger.WithContextExtractors(
			requestid.LogExtractor(),
			clientip.LogExtractor(),
			identity.LogExtractor(),
		),
	)
	logger.SetAsDefault(log)

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, pgCfg, db.Migrations, db.MigrationsDir, log.With(logger.Component("migrations"))); err != nil {
		return err
	}

	rdb, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error("close redis", logger.Error(err))
		}
	}()

	mailer, err := newMailer(appCfg, mailCfg, log)
	if err != nil {
		return err
	}

	verifier, err := identity.NewVerifier(appCfg.SupabaseJWTSecret.Bytes(), appCfg.SupabaseJWTAudience)
	if err != nil {
		return err
	}

	svc, err := emailchange.NewService(
		emailchange.Config{
			Secret:       appCfg.EmailChangeSecret.Bytes(),
			TTL:          appCfg.EmailChangeTTL,
			BaseURL:      appCfg.BaseURL,
			AppName:      appCfg.Name,
			SupportEmail: mailCfg.SupportEmail,
		},
		emailchange.NewPGStorage(pool),
		redis.NewLedger(rdb, redisCfg.LedgerPrefix),
		mailer,
		emailchange.WithLogger(log),
	)
	if err != nil {
		return err
	}

	changeLimiter, err := ratelimiter.New(
		redis.NewRateLimitStore(rdb),
		"ratelimit:email_change:",
		ratelimiter.Config{Limit: appCfg.EmailChangeRateLimit, Window: appCfg.EmailChangeRateWindow},
	)
	if err != nil {
		return err
	}

	changeHandler := emailchange.NewHandler(svc, log,
		emailchange.WithRequestLimit(ratelimiter.Middleware(changeLimiter, identity.UserKey, log)),
	)

	r := chi.NewRouter()
	r.Use(requestid.New())
	r.Use(clientMiddleware(appCfg.TrustProxyHeaders))
	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(log, 2*time.Second,
		httpserver.Check{Name: "postgres", Fn: pg.Healthcheck(pool)},
		httpserver.Check{Name: "redis", Fn: redis.Healthcheck(rdb)},
	))
	r.Mount("/account", account.Router(account.RouterOptions{
		Authenticate: identity.Middleware(verifier, log),
		EmailChange:  changeHandler,
	}))

	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))
	if err := srv.Run(ctx, r); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// newMailer delivers through Postmark when it is configured and writes mail
// to disk otherwise, which only development allows.
func newMailer(app config.App, cfg email.Config, log *slog.Logger) (email.EmailSender, error) {
	if cfg.HasPostmark() {
		return email.NewPostmarkClient(cfg)
	}
	if app.Env == logger.EnvProduction || app.Env == logger.EnvStaging {
		return nil, fmt.Errorf("%w: Postmark tokens are required in %s", email.ErrInvalidConfig, app.Env)
	}

	dir := app.EmailDevDir
	if dir == "" {
		dir = "tmp/emails"
	}
	log.Info("postmark not configured, writing emails to disk", slog.String("dir", dir))
	return email.NewDevSender(dir), nil
}

func clientMiddleware(trustProxy bool) func(http.Handler) http.Handler {
	if trustProxy {
		return clientip.New(clientip.WithTrustProxy())
	}
	return clientip.New()
}
