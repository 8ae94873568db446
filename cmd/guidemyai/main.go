package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"go.uber.org/fx"

	"guidemyai/config"
	"guidemyai/internal/delivery"
	"guidemyai/internal/delivery/http"
	"guidemyai/internal/delivery/http/middleware"
	"guidemyai/internal/delivery/http/router"
	"guidemyai/internal/delivery/http/router/handler"
	"guidemyai/internal/infra/auth"
	"guidemyai/internal/infra/auth/google"
	logs "guidemyai/internal/infra/log"
	"guidemyai/internal/infra/persistence/postgres"
	"guidemyai/internal/metrics"
	"guidemyai/internal/usecase"
	"guidemyai/internal/usecase/impl"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			runMigrations,
			startSessionCleanup,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
		metrics.NewCollector,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewCredentialRepository,
			postgres.NewSessionRepository,
			postgres.NewRuleRepository,
			postgres.NewMCPRepository,
			postgres.NewProfileRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewCookieSigner,
			google.NewOAuthService,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewRuleService,
			impl.NewMCPService,
			impl.NewProfileService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			router.NewPublicRoutes,
			middleware.NewAuthMiddleware,
			middleware.NewRequestIDMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewHomeHandler,
			handler.NewAuthHandler,
			handler.NewOAuthHandler,
			handler.NewRuleHandler,
			handler.NewMCPHandler,
			handler.NewProfileHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

const sessionCleanupInterval = time.Hour

type sessionCleanupParams struct {
	fx.In
	fx.Lifecycle

	Auth   usecase.AuthUsecase
	Logger *slog.Logger
}

// startSessionCleanup purges expired sessions on a timer. Expired tokens are
// also dropped lazily on lookup; this sweep keeps the table from growing with
// sessions nobody presents again.
func startSessionCleanup(params sessionCleanupParams) {
	ctx, cancel := context.WithCancel(context.Background())

	params.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				ticker := time.NewTicker(sessionCleanupInterval)
				defer ticker.Stop()

				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						if err := params.Auth.PurgeExpiredSessions(ctx); err != nil {
							params.Logger.Warn("Failed to purge expired sessions", slog.Any("error", err))
						}
					}
				}
			}()

			return nil
		},
		OnStop: func(context.Context) error {
			cancel()

			return nil
		},
	})
}

func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations")

	return postgres.RunMigrations(cfg.Postgres)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
