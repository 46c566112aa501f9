// Package main provides the unified daemon: ingestion scheduler, HTTP
// API and Prometheus metrics in one process.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/AmrendraTheCoder/microTerm/internal/api"
	"github.com/AmrendraTheCoder/microTerm/internal/events"
	"github.com/AmrendraTheCoder/microTerm/internal/ingest"
	"github.com/AmrendraTheCoder/microTerm/internal/ingest/stub"
	"github.com/AmrendraTheCoder/microTerm/internal/ledger"
	"github.com/AmrendraTheCoder/microTerm/internal/observability"
	"github.com/AmrendraTheCoder/microTerm/internal/resolver"
	"github.com/AmrendraTheCoder/microTerm/internal/scheduler"
	"github.com/AmrendraTheCoder/microTerm/internal/storage"
	chstore "github.com/AmrendraTheCoder/microTerm/internal/storage/clickhouse"
	"github.com/AmrendraTheCoder/microTerm/internal/storage/memory"
	"github.com/AmrendraTheCoder/microTerm/internal/storage/migrations"
	pgstore "github.com/AmrendraTheCoder/microTerm/internal/storage/postgres"
	"github.com/AmrendraTheCoder/microTerm/internal/summary"
	"github.com/AmrendraTheCoder/microTerm/internal/unlock"
)

// allStores holds all storage implementations.
type allStores struct {
	filings   storage.FilingStore
	alerts    storage.TransferAlertStore
	articles  storage.ArticleStore
	quotes    storage.QuoteStore
	addresses storage.KnownAddressStore
	unlocks   storage.UnlockStore
	gates     storage.GateUseStore
	receipts  storage.NFTReceiptStore
	actions   storage.AgentActionStore
	ledger    storage.LedgerStore
	runs      storage.IngestRunStore
}

func main() {
	// Load .env file if exists
	_ = godotenv.Load()

	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string (optional)")
	redisURL := flag.String("redis-url", os.Getenv("REDIS_URL"), "Redis connection URL for the summary cache (optional)")
	kafkaBrokers := flag.String("kafka-brokers", os.Getenv("KAFKA_BROKERS"), "Comma-separated Kafka brokers (optional)")
	transferWSURL := flag.String("transfer-ws-url", os.Getenv("TRANSFER_WS_URL"), "WebSocket URL of the transfer feed (optional)")
	openaiKey := flag.String("openai-api-key", os.Getenv("OPENAI_API_KEY"), "OpenAI API key for LLM summaries (optional)")
	apiAddr := flag.String("api-addr", ":8080", "HTTP API listen address")
	corsOrigins := flag.String("cors-origins", os.Getenv("CORS_ORIGINS"), "Comma-separated allowed CORS origins")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL")

	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags)

	if !*useMemory && *postgresDSN == "" {
		logger.Fatal("--postgres-dsn is required (use --use-memory for in-memory storage)")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stores, cleanup, err := createStores(ctx, *postgresDSN, *useMemory)
	if err != nil {
		logger.Fatalf("Failed to create stores: %v", err)
	}
	defer cleanup()

	if *clickhouseDSN != "" {
		chConn, err := chstore.NewConn(ctx, *clickhouseDSN)
		if err != nil {
			logger.Fatalf("Failed to connect to ClickHouse: %v", err)
		}
		defer chConn.Close()
		if err := migrations.RunClickhouseMigrations(ctx, chConn); err != nil {
			logger.Fatalf("ClickHouse migrations failed: %v", err)
		}
		stores.runs = chstore.NewIngestRunStore(chConn)
	}

	metrics := observability.NewMetrics("microterm")

	// Event publisher
	var publisher events.Publisher = events.NopPublisher{}
	if *kafkaBrokers != "" {
		kp := events.NewKafkaPublisher(strings.Split(*kafkaBrokers, ","))
		defer kp.Close()
		publisher = kp
		logger.Printf("Publishing events to Kafka: %s", *kafkaBrokers)
	}

	// Services
	addressResolver := resolver.New(stores.addresses)
	loyalty := ledger.New(ledger.Options{Store: stores.ledger, Logger: logger})
	unlocks := unlock.New(unlock.Options{
		Unlocks:  stores.unlocks,
		Gates:    stores.gates,
		Receipts: stores.receipts,
		Actions:  stores.actions,
		Loyalty:  loyalty,
		Events:   publisher,
		Logger:   logger,
	})

	var summarizer summary.Summarizer = summary.NewTemplateSummarizer()
	if *openaiKey != "" {
		summarizer = summary.NewOpenAISummarizer(summary.OpenAISummarizerOptions{
			APIKey: *openaiKey,
			Logger: logger,
		})
		logger.Println("Using OpenAI summarizer")
	}
	var cache summary.Cache = summary.NewMemoryCache()
	if *redisURL != "" {
		opt, err := redis.ParseURL(*redisURL)
		if err != nil {
			logger.Fatalf("Invalid --redis-url: %v", err)
		}
		client := redis.NewClient(opt)
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Fatalf("Redis ping failed: %v", err)
		}
		cache = summary.NewRedisCache(client)
		logger.Println("Using Redis summary cache")
	}
	summaries := summary.NewService(summary.ServiceOptions{
		Summarizer: summarizer,
		Cache:      cache,
		Logger:     logger,
	})

	// Ingestion jobs
	jobs, err := buildJobs(ctx, stores, addressResolver, publisher, *transferWSURL, logger)
	if err != nil {
		logger.Fatalf("Failed to build ingestion jobs: %v", err)
	}
	sched := scheduler.New(scheduler.Options{
		Jobs:    jobs,
		Runs:    stores.runs,
		Metrics: metrics,
		Logger:  logger,
	})

	// HTTP API
	server := api.NewServer(api.Options{
		Filings:   stores.filings,
		Alerts:    stores.alerts,
		Articles:  stores.articles,
		Quotes:    stores.quotes,
		Loyalty:   loyalty,
		Unlocks:   unlocks,
		Summaries: summaries,
		Metrics:   metrics,
		Logger:    logger,
	})
	var origins []string
	if *corsOrigins != "" {
		origins = strings.Split(*corsOrigins, ",")
	}
	httpServer := &http.Server{
		Addr:    *apiAddr,
		Handler: server.Router(origins),
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, shutting down...", sig)
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Printf("HTTP shutdown: %v", err)
		}
	}()

	go func() {
		logger.Printf("HTTP API listening on %s", *apiAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server error: %v", err)
		}
	}()

	if err := sched.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatalf("Scheduler error: %v", err)
	}

	logger.Println("Shutdown complete")
}

// createStores creates all required stores.
func createStores(ctx context.Context, postgresDSN string, useMemory bool) (*allStores, func(), error) {
	if useMemory {
		gates := memory.NewGateUseStore()
		stores := &allStores{
			filings:   memory.NewFilingStore(),
			alerts:    memory.NewTransferAlertStore(),
			articles:  memory.NewArticleStore(),
			quotes:    memory.NewQuoteStore(),
			addresses: memory.NewKnownAddressStore(),
			unlocks:   memory.NewUnlockStore(),
			gates:     gates,
			receipts:  memory.NewNFTReceiptStore(),
			actions:   memory.NewAgentActionStore(),
			ledger:    memory.NewLedgerStore(gates),
			runs:      memory.NewIngestRunStore(),
		}
		return stores, func() {}, nil
	}

	pool, err := pgstore.NewPool(ctx, postgresDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	stores := &allStores{
		filings:   pgstore.NewFilingStore(pool),
		alerts:    pgstore.NewTransferAlertStore(pool),
		articles:  pgstore.NewArticleStore(pool),
		quotes:    pgstore.NewQuoteStore(pool),
		addresses: pgstore.NewKnownAddressStore(pool),
		unlocks:   pgstore.NewUnlockStore(pool),
		gates:     pgstore.NewGateUseStore(pool),
		receipts:  pgstore.NewNFTReceiptStore(pool),
		actions:   pgstore.NewAgentActionStore(pool),
		ledger:    pgstore.NewLedgerStore(pool),
	}
	return stores, pool.Close, nil
}

// buildJobs assembles the ingestion jobs. Sources without external
// configuration fall back to empty stubs so the pipeline shape stays
// intact in development.
func buildJobs(ctx context.Context, stores *allStores, r *resolver.AddressResolver, publisher events.Publisher, transferWSURL string, logger *log.Logger) ([]ingest.Job, error) {
	var transferSource ingest.TransferSource = &stub.TransferSource{}
	if transferWSURL != "" {
		ws := ingest.NewWSTransferSource(ingest.WSTransferSourceOptions{
			URL:    transferWSURL,
			Logger: logger,
		})
		if err := ws.Start(ctx); err != nil {
			return nil, err
		}
		transferSource = ws
		logger.Printf("Subscribed to transfer feed: %s", transferWSURL)
	}

	return []ingest.Job{
		ingest.NewFilingJob(ingest.FilingJobOptions{
			Source: &stub.FilingSource{},
			Store:  stores.filings,
			Events: publisher,
			Logger: logger,
		}),
		ingest.NewTransferJob(ingest.TransferJobOptions{
			Source:   transferSource,
			Store:    stores.alerts,
			Resolver: r,
			Events:   publisher,
			Logger:   logger,
		}),
		ingest.NewNewsJob(ingest.NewsJobOptions{
			Source: &stub.ArticleSource{},
			Store:  stores.articles,
			Logger: logger,
		}),
		ingest.NewMarketJob(ingest.MarketJobOptions{
			Source: &stub.QuoteSource{},
			Store:  stores.quotes,
			Logger: logger,
		}),
	}, nil
}
