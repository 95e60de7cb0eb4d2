package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crossborder-remit/config"
	"crossborder-remit/internal/adapter/ethrpc"
	httpHandler "crossborder-remit/internal/adapter/http/handler"
	"crossborder-remit/internal/adapter/messaging/kafka"
	memStorage "crossborder-remit/internal/adapter/storage/memory"
	pgStorage "crossborder-remit/internal/adapter/storage/postgres"
	redisStorage "crossborder-remit/internal/adapter/storage/redis"
	"crossborder-remit/internal/core/ports"
	"crossborder-remit/internal/service"
	"crossborder-remit/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
)

// ledgerStores groups the repositories backing the active ledger driver.
type ledgerStores struct {
	profiles     ports.ProfileRepository
	transactions ports.TransactionRepository
	rates        ports.ExchangeRateRepository
	kycDocuments ports.KYCDocumentRepository
	wallets      ports.WalletRepository
	audit        ports.AuditRepository
}

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	gin.SetMode(cfg.Server.Mode)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Str("ledger", cfg.Ledger.Driver).
		Str("change_feed", cfg.Ledger.ChangeFeed).
		Msg("Starting Cross-Border Remit")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	var healthCheckers []ports.HealthChecker

	// Redis is optional: the rate cache, rate limits and the pub/sub feed need it
	var rdb *goredis.Client
	if cfg.Redis.Enabled {
		rdb, err = redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		healthCheckers = append(healthCheckers, redisStorage.NewHealthCheck(rdb))
		log.Info().Msg("Redis connected")
	}

	// Change feed transport. The memory ledger publishes into whichever hub
	// is selected; the postgres trigger feeds the listener directly.
	var (
		feed      ports.ChangeFeed
		publisher ports.ChangePublisher
	)
	switch cfg.Ledger.ChangeFeed {
	case "redis":
		redisFeed := redisStorage.NewChangeFeed(rdb, cfg.Ledger.RedisChannelPrefix, log)
		if err := redisFeed.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to start Redis change feed")
		}
		defer redisFeed.Close()
		feed, publisher = redisFeed, redisFeed
	case "memory":
		memFeed := memStorage.NewChangeFeed(log)
		feed, publisher = memFeed, memFeed
	}

	// Ledger repositories
	var stores ledgerStores
	switch cfg.Ledger.Driver {
	case "postgres":
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()
		log.Info().Msg("PostgreSQL connected")

		stores = ledgerStores{
			profiles:     pgStorage.NewProfileRepo(pool),
			transactions: pgStorage.NewTransactionRepo(pool),
			rates:        pgStorage.NewExchangeRateRepo(pool),
			kycDocuments: pgStorage.NewKYCDocumentRepo(pool),
			wallets:      pgStorage.NewWalletRepo(pool),
			audit:        pgStorage.NewAuditRepo(pool),
		}
		healthCheckers = append(healthCheckers, pgStorage.NewHealthCheck(pool))

		if cfg.Ledger.ChangeFeed == "postgres" {
			listener := pgStorage.NewChangeListener(pool, cfg.Ledger.NotifyChannel, log)
			if err := listener.Start(ctx); err != nil {
				log.Fatal().Err(err).Msg("Failed to start ledger change listener")
			}
			defer listener.Close()
			feed = listener
		}
	case "memory":
		ledger := memStorage.NewLedger(publisher, log)
		if cfg.Ledger.MemorySeedRate > 0 {
			ledger.SeedRate(cfg.Transfer.CurrencyPair, cfg.Ledger.MemorySeedRate, "seed")
		}
		stores = ledgerStores{
			profiles:     ledger.Profiles(),
			transactions: ledger.Transactions(),
			rates:        ledger.Rates(),
			kycDocuments: ledger.KYCDocuments(),
			wallets:      ledger.Wallets(),
			audit:        ledger.Audit(),
		}
		log.Warn().Msg("Using in-memory ledger, data is lost on restart")
	}

	// Settlement events
	var events ports.EventPublisher = kafka.NoopPublisher{}
	if cfg.Kafka.Enabled {
		producer, err := kafka.Connect(cfg.Kafka.Brokers, kafka.Topics{
			TransferRequested: cfg.Kafka.TransferTopic,
			KYCSubmitted:      cfg.Kafka.KYCTopic,
		}, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Kafka")
		}
		defer producer.Close()
		events = producer
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Msg("Kafka producer connected")
	}

	// Wallet bridge
	var provider ports.WalletProvider
	if cfg.Wallet.RPCURL != "" {
		p, err := ethrpc.Dial(ctx, cfg.Wallet.RPCURL, log)
		if err != nil {
			log.Fatal().Err(err).Str("rpc_url", cfg.Wallet.RPCURL).Msg("Failed to dial wallet provider")
		}
		defer p.Close()
		provider = p
	} else {
		log.Warn().Msg("No wallet provider configured, wallet operations will fail with WAL_001")
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := service.NewMetrics(registry)

	// Redis-backed stores
	var (
		rateCache      ports.RateCache
		rateLimitStore ports.RateLimitStore
	)
	if rdb != nil {
		rateCache = redisStorage.NewRateCache(rdb)
		rateLimitStore = redisStorage.NewRateLimitStore(rdb)
	}

	// Initialize core services
	encSvc, err := service.NewXChaChaEncryptionService(cfg.Crypto.Key)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize encryption service")
	}
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	auditSvc := service.NewAuditService(stores.audit, log)
	rateSvc := service.NewRateService(stores.rates, rateCache, cfg.Transfer.CurrencyPair, cfg.RateCache.TTL, metrics, log)
	quoteSvc := service.NewQuoteService(rateSvc)
	reportingSvc := service.NewReportingService(stores.transactions)

	workspaces := service.NewRegistry(service.RegistryDeps{
		Profiles:     stores.profiles,
		Transactions: stores.transactions,
		KYCDocuments: stores.kycDocuments,
		Wallets:      stores.wallets,
		Rates:        rateSvc,
		Feed:         feed,
		Events:       events,
		Encryption:   encSvc,
		Provider:     provider,
		Metrics:      metrics,
	}, service.RegistryConfig{
		Transfer: service.TransferConfig{
			CurrencyPair:   cfg.Transfer.CurrencyPair,
			NetworkLabel:   cfg.Transfer.NetworkLabel,
			SuccessDisplay: cfg.Transfer.SuccessDisplay,
			HistoryLimit:   cfg.Transfer.HistoryLimit,
		},
		KYCAtomicWrites: cfg.KYC.AtomicWrites,
		Chain:           chainParams(cfg.Wallet),
	}, log)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Workspaces:     workspaces,
		Rates:          rateSvc,
		Quotes:         quoteSvc,
		Reporting:      reportingSvc,
		TokenSvc:       tokenSvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: healthCheckers,
		AuditSvc:       auditSvc,
		Metrics:        metrics,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           httpHandler.WithCORS(router, cfg.CORS.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// Release every session's subscriptions before the feeds go away
	workspaces.CloseAll()
	stop()

	log.Info().Msg("Server exited")
}

func chainParams(w config.WalletConfig) ports.ChainParams {
	return ports.ChainParams{
		ChainID:   w.ChainID,
		ChainName: w.ChainName,
		NativeCurrency: ports.NativeCurrency{
			Name:     w.NativeCurrencyName,
			Symbol:   w.NativeCurrencySymbol,
			Decimals: w.NativeCurrencyDecimals,
		},
		RPCURLs:           w.RPCURLs,
		BlockExplorerURLs: w.ExplorerURLs,
	}
}
