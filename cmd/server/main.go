package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/aserikov/cryptofolio-backend/internal/adapter/ai"
	"github.com/aserikov/cryptofolio-backend/internal/adapter/cache"
	httpadapter "github.com/aserikov/cryptofolio-backend/internal/adapter/http"
	"github.com/aserikov/cryptofolio-backend/internal/adapter/news"
	"github.com/aserikov/cryptofolio-backend/internal/adapter/pricefeed"
	"github.com/aserikov/cryptofolio-backend/internal/adapter/repository/postgres"
	"github.com/aserikov/cryptofolio-backend/internal/domain"
	"github.com/aserikov/cryptofolio-backend/internal/usecase/allocation"
	"github.com/aserikov/cryptofolio-backend/internal/usecase/budgets"
	"github.com/aserikov/cryptofolio-backend/internal/usecase/explain"
	"github.com/aserikov/cryptofolio-backend/internal/usecase/holdings"
	"github.com/aserikov/cryptofolio-backend/internal/usecase/ledger"
	"github.com/aserikov/cryptofolio-backend/internal/usecase/pricing"
	"github.com/aserikov/cryptofolio-backend/internal/usecase/rates"
	"github.com/aserikov/cryptofolio-backend/internal/usecase/seeder"
	"github.com/aserikov/cryptofolio-backend/internal/usecase/watchlist"
)

const (
	defaultAPIToken = "dev-token"
	defaultPort     = "8080"

	defaultQuoteTTL     = 60 * time.Second
	feedTimeout         = 10 * time.Second
	newsTimeout         = 10 * time.Second
	generatorTimeout    = 60 * time.Second
	shutdownGracePeriod = 10 * time.Second
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// 1. Setup Database
	dbConnStr := os.Getenv("DB_CONN_STR")
	if dbConnStr == "" {
		// If explicit string is missing, build it from individual vars (Docker friendly)
		host := envOr("DB_HOST", "localhost")
		port := envOr("DB_PORT", "5432")
		user := envOr("DB_USER", "postgres")
		password := envOr("DB_PASSWORD", "postgres")
		dbname := envOr("DB_NAME", "cryptofolio")

		dbConnStr = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host, port, user, password, dbname)
	}

	// Add 2-second delay to ensure Postgres is up (Simple retry)
	time.Sleep(2 * time.Second)

	db, err := postgres.NewDB(dbConnStr)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// 2. Initialize Repositories (Postgres)
	holdingRepo := postgres.NewHoldingRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	rateRepo := postgres.NewExchangeRateRepository(db)
	watchlistRepo := postgres.NewWatchlistRepository(db)
	budgetRepo := postgres.NewBudgetRepository(db)
	userRepo := postgres.NewUserRepository(db)

	// 3. Initialize upstream adapters
	feed := pricefeed.NewCoinGecko(os.Getenv("COINGECKO_BASE_URL"), feedTimeout, log)
	newsSource := news.NewNewsAPI(os.Getenv("NEWS_API_KEY"), "", newsTimeout)
	generator := ai.NewOpenAI(os.Getenv("OPENAI_API_KEY"), os.Getenv("OPENAI_MODEL"), generatorTimeout)

	quoteTTL := defaultQuoteTTL
	if raw := os.Getenv("QUOTE_TTL_SECONDS"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			log.Fatal().Str("value", raw).Msg("QUOTE_TTL_SECONDS must be a positive integer")
		}
		quoteTTL = time.Duration(seconds) * time.Second
	}

	// Quote cache backend: Redis when REDIS_ADDR is set, in-process otherwise
	var quoteCache domain.QuoteCache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Fatal().Err(err).Str("addr", addr).Msg("failed to connect to redis")
		}
		quoteCache = cache.NewRedis(client, quoteTTL, log)
		log.Info().Str("addr", addr).Msg("using redis quote cache")
	} else {
		quoteCache = cache.NewMemory(quoteTTL)
		log.Info().Dur("ttl", quoteTTL).Msg("using in-memory quote cache")
	}

	// 4. Initialize Services (Use Cases)
	pricingService := pricing.NewService(feed, quoteCache, log)
	allocationService := allocation.NewService(holdingRepo, transactionRepo, rateRepo, pricingService, log)
	explainService := explain.NewService(pricingService, newsSource, generator, log)
	holdingsService := holdings.NewService(holdingRepo)
	ledgerService := ledger.NewService(transactionRepo)
	ratesService := rates.NewService(rateRepo)
	watchlistService := watchlist.NewService(watchlistRepo)
	budgetsService := budgets.NewService(budgetRepo)

	// Initialize Seeder and run it
	systemSeeder := seeder.NewSeeder(userRepo)
	if err := systemSeeder.Seed(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to seed default user")
	}
	log.Info().Str("user_id", seeder.DefaultUserID.String()).Msg("default user ready")

	// 5. Start HTTP Server
	apiToken := envOr("API_TOKEN", defaultAPIToken)

	app := fiber.New(fiber.Config{
		AppName: "cryptofolio-backend",
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	server := httpadapter.NewServer(
		allocationService,
		explainService,
		holdingsService,
		ledgerService,
		ratesService,
		watchlistService,
		budgetsService,
		feed,
		seeder.DefaultUserID,
		log,
	)
	server.RegisterRoutes(app, apiToken)

	port := envOr("PORT", defaultPort)
	go func() {
		log.Info().Str("port", port).Msg("http server listening")
		if err := app.Listen(":" + port); err != nil {
			log.Fatal().Err(err).Msg("http server stopped")
		}
	}()

	waitForShutdown(app, log)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(app *fiber.App, log zerolog.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("shutting down gracefully")

	if err := app.ShutdownWithTimeout(shutdownGracePeriod); err != nil {
		log.Error().Err(err).Msg("shutdown did not complete cleanly")
	}
	log.Info().Msg("http server stopped")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
