// Command server runs the CSE Motors web application.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/robfig/cron/v3"

	"github.com/cse340/motors/internal/account"
	"github.com/cse340/motors/internal/config"
	"github.com/cse340/motors/internal/handlers"
	"github.com/cse340/motors/internal/inventory"
	"github.com/cse340/motors/internal/message"
	"github.com/cse340/motors/internal/nav"
	"github.com/cse340/motors/internal/static"
	"github.com/cse340/motors/internal/views"
	"github.com/cse340/motors/internal/web"
	"github.com/cse340/motors/middlewares"
	"github.com/cse340/motors/pkg/cache"
	"github.com/cse340/motors/pkg/cookie"
	"github.com/cse340/motors/pkg/db"
	"github.com/cse340/motors/pkg/health"
	"github.com/cse340/motors/pkg/logger"
	"github.com/cse340/motors/pkg/redis"
	"github.com/cse340/motors/pkg/session"
	"github.com/cse340/motors/pkg/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New().Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	log := logger.NewFromConfig(cfg.Log, os.Stdout, middlewares.RequestIDExtractor())

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	provider := db.NewProvider(cfg.Database(), log)
	runOpts := []web.RunOption{
		web.Address(cfg.ListenAddr()),
		web.Logger(log),
		web.ShutdownTimeout(cfg.ShutdownTimeout),
	}
	checks := health.Checks{"postgres": db.Healthcheck(provider)}

	// Expired sessions are pruned on a schedule, not per request.
	scheduler := cron.New()
	store, err := sessionStore(cfg, provider, scheduler, log)
	if err != nil {
		return err
	}

	tokens, err := token.New(cfg.AccessTokenSecret)
	if err != nil {
		return errors.Join(errors.New("ACCESS_TOKEN_SECRET is required"), err)
	}

	navCache := cache.Cache[[]web.NavLink](cache.NewMemory[[]web.NavLink](cfg.NavCacheTTL))
	if cfg.Redis.Enabled() {
		client, err := redis.Open(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		navCache = cache.NewRedis[[]web.NavLink](client, "motors:", cfg.NavCacheTTL)
		checks["redis"] = redis.Healthcheck(client)
		runOpts = append(runOpts, web.ShutdownHook(redis.Shutdown(client)))
	}

	inv := inventory.NewRepository(provider)
	links := nav.New(inv, nav.WithCache(navCache, cfg.NavCacheTTL))

	d := web.NewDispatcher()
	handlers.New(handlers.Deps{
		Nav:       links.Links,
		Inventory: inv,
		Accounts:  account.NewRepository(provider),
		Messages:  message.NewRepository(provider),
		Tokens:    tokens,
	}).Register(d)

	opts := []web.Option{
		web.WithLogger(log),
		web.WithCookieManager(cookie.New(
			cookie.WithSecret(cfg.Session.Secret),
			cookie.WithSecure(cfg.CookieSecure()),
		)),
		web.WithStages(
			middlewares.RequestID(),
			middlewares.Session(store,
				middlewares.WithSessionCookie(cfg.Session.CookieName),
				middlewares.WithSessionMaxAge(cfg.Session.MaxAge),
			),
			middlewares.Flash(),
			middlewares.Body(middlewares.DefaultBodyLimit),
			middlewares.Cookies(),
			middlewares.AuthToken(tokens),
		),
		web.WithDispatcher(d),
		web.WithErrorHandler(web.NewErrorHandler(links.Links, func(v web.ErrorView) web.Component {
			return views.ErrorPage(v)
		}, log)),
		web.WithReadiness(health.ReadinessHandler(checks, health.WithLogger(log))),
	}

	assets, err := static.NewDir(cfg.PublicDir)
	if err != nil {
		log.Warn("static assets disabled", slog.String("dir", cfg.PublicDir), slog.Any("error", err))
	} else {
		opts = append(opts, web.WithStatic(assets))
	}

	runOpts = append(runOpts,
		web.StartupHook(func(context.Context) error {
			scheduler.Start()
			return nil
		}),
		web.ShutdownHook(func(context.Context) error {
			<-scheduler.Stop().Done()
			return nil
		}),
		web.ShutdownHook(db.Shutdown(provider)),
		web.WithContext(ctx),
	)

	return web.Run(web.New(opts...), runOpts...)
}

// sessionStore picks the configured backend and schedules pruning of expired rows.
func sessionStore(cfg config.Config, provider *db.Provider, c *cron.Cron, log *slog.Logger) (session.Store, error) {
	var store interface {
		session.Store
		session.Pruner
	}
	switch cfg.Session.Store {
	case "memory":
		store = session.NewMemoryStore()
	case "postgres", "":
		store = session.NewPostgresStore(provider, session.WithTable(cfg.Session.Table))
	default:
		return nil, errors.New("unknown SESSION_STORE: " + cfg.Session.Store)
	}

	if _, err := session.SchedulePrune(c, store, cfg.Session.PruneInterval, log); err != nil {
		return nil, err
	}
	return store, nil
}
