package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/grindheim/ladderlight/internal/adapters/aliasrepository"
	"github.com/grindheim/ladderlight/internal/adapters/cache"
	"github.com/grindheim/ladderlight/internal/adapters/database"
	"github.com/grindheim/ladderlight/internal/adapters/leaderboardprovider"
	"github.com/grindheim/ladderlight/internal/adapters/matchprovider"
	"github.com/grindheim/ladderlight/internal/app"
	"github.com/grindheim/ladderlight/internal/config"
	"github.com/grindheim/ladderlight/internal/domain"
	"github.com/grindheim/ladderlight/internal/ports"
	"github.com/grindheim/ladderlight/internal/reporting"
	"github.com/grindheim/ladderlight/internal/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// TODO: Put in config
const PROD_DOMAIN_SUFFIX = "ladderlight.gg"
const STAGING_DOMAIN_SUFFIX = "ladderlight.pages.dev"

func main() {
	ctx := context.Background()

	instanceID := uuid.New().String()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("instanceID", instanceID)

	fail := func(msg string, args ...any) {
		logger.Error(msg, args...)
		os.Exit(1)
	}

	config, err := config.ConfigFromEnv()
	if err != nil {
		fail("Failed to load config", "error", err.Error())
	}
	logger.Info("Loaded config", "config", config.NonSensitiveString())

	if config.OtelEnabled() {
		shutdown, err := telemetry.SetupOTelSDK(ctx, "ladderlight")
		if err != nil {
			fail("Failed to initialize OpenTelemetry", "error", err.Error())
		}
		defer func() {
			if err := shutdown(ctx); err != nil {
				logger.Error("Failed to shut down OpenTelemetry", "error", err.Error())
			}
		}()
	}

	httpClient := &http.Client{
		Timeout:   10 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	ladderAPI, err := matchprovider.NewLadderAPIOrMock(config, httpClient)
	if err != nil {
		fail("Failed to initialize ladder API", "error", err.Error())
	}
	logger.Info("Initialized ladder API")

	leaderboard, err := leaderboardprovider.NewLadderLeaderboardOrMock(config, httpClient)
	if err != nil {
		fail("Failed to initialize leaderboard", "error", err.Error())
	}
	entryCache := cache.NewTTLCache[*domain.LadderEntry](1 * time.Minute)
	cachedLeaderboard := leaderboardprovider.NewCachedLeaderboard(leaderboard, entryCache)

	sentryMiddleware, flush, err := reporting.NewSentryMiddlewareOrMock(config)
	if err != nil {
		fail("Failed to initialize Sentry", "error", err.Error())
	}
	defer flush()
	logger.Info("Initialized Sentry middleware")

	logger.Info("Initializing database connection")
	db, err := database.NewCloudsqlPostgresDatabase(config)
	if err != nil {
		fail("Failed to initialize database connection", "error", err.Error())
	}
	logger.Info("Initialized database connection")

	repositorySchemaName := database.GetSchemaName(!config.IsProduction())

	err = database.NewDatabaseMigrator(db, logger.With("component", "migrator")).Migrate(ctx, repositorySchemaName)
	if err != nil {
		fail("Failed to migrate database", "error", err.Error())
	}

	aliasRepo := aliasrepository.NewPostgres(db, repositorySchemaName, time.Now)
	logger.Info("Initialized AliasRepository")

	allowedOrigins, err := ports.NewDomainSuffixes(PROD_DOMAIN_SUFFIX, STAGING_DOMAIN_SUFFIX)
	if err != nil {
		fail("Failed to initialize allowed origins", "error", err.Error())
	}

	enumerateGames := app.BuildEnumerateGames(ladderAPI)
	computeWinRate := app.BuildComputeWinRate(enumerateGames, time.Now)
	getLastMatch := app.BuildGetLastMatch(enumerateGames)
	getRank := app.BuildGetRank(cachedLeaderboard)
	registerAlias := app.BuildRegisterAlias(aliasRepo)
	resolveAlias := app.BuildResolveAlias(aliasRepo)

	http.HandleFunc(
		"OPTIONS /v1/rank",
		ports.BuildCORSHandler(allowedOrigins),
	)
	http.HandleFunc(
		"GET /v1/rank",
		ports.MakeGetRankHandler(
			getRank,
			allowedOrigins,
			logger.With("port", "rank"),
			sentryMiddleware,
		),
	)

	http.HandleFunc(
		"OPTIONS /v1/winrate",
		ports.BuildCORSHandler(allowedOrigins),
	)
	http.HandleFunc(
		"GET /v1/winrate",
		ports.MakeGetWinRateHandler(
			computeWinRate,
			resolveAlias,
			allowedOrigins,
			logger.With("port", "winrate"),
			sentryMiddleware,
		),
	)

	http.HandleFunc(
		"OPTIONS /v1/lastmatch",
		ports.BuildCORSHandler(allowedOrigins),
	)
	http.HandleFunc(
		"GET /v1/lastmatch",
		ports.MakeGetLastMatchHandler(
			getLastMatch,
			resolveAlias,
			allowedOrigins,
			logger.With("port", "lastmatch"),
			sentryMiddleware,
		),
	)

	http.HandleFunc(
		"OPTIONS /v1/aliases",
		ports.BuildCORSHandler(allowedOrigins),
	)
	http.HandleFunc(
		"POST /v1/aliases",
		ports.MakeRegisterAliasHandler(
			registerAlias,
			allowedOrigins,
			logger.With("port", "aliases"),
			sentryMiddleware,
		),
	)
	http.HandleFunc(
		"GET /v1/aliases",
		ports.MakeGetAliasHandler(
			resolveAlias,
			allowedOrigins,
			logger.With("port", "aliases"),
			sentryMiddleware,
		),
	)

	logger.Info("Init complete")
	err = http.ListenAndServe(fmt.Sprintf(":%s", config.Port()), nil)
	if errors.Is(err, http.ErrServerClosed) {
		logger.Info("Server shutdown")
	} else {
		fail("Server error", "error", err.Error())
	}
}
