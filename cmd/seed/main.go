// Package main seeds reference and sample data: known addresses, sample
// deals, whale alerts, news and market quotes. Idempotent; inserts that
// hit an existing natural key are skipped, reference data is upserted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/AmrendraTheCoder/microTerm/internal/domain"
	"github.com/AmrendraTheCoder/microTerm/internal/resolver"
	"github.com/AmrendraTheCoder/microTerm/internal/storage"
	"github.com/AmrendraTheCoder/microTerm/internal/storage/migrations"
	pgstore "github.com/AmrendraTheCoder/microTerm/internal/storage/postgres"
)

// knownAddresses is the reference label set for whale alert resolution.
var knownAddresses = []*domain.KnownAddress{
	{Address: "0x28c6c06298d514db089934071355e5743bf21d60", Label: "Binance Hot Wallet", Category: "exchange"},
	{Address: "0x21a31ee1afc51d94c2efccaa2092ad1028285549", Label: "Binance Cold Wallet", Category: "exchange"},
	{Address: "0x3f5ce5fbfe3e9af3971dd833d26ba9b5c936f0be", Label: "Binance", Category: "exchange"},
	{Address: "0xd551234ae421e3bcba99a0da6d736074f22192ff", Label: "Binance", Category: "exchange"},
	{Address: "0x564286362092d8e7936f0549571a803b203aaced", Label: "Binance", Category: "exchange"},
	{Address: "0x0681d8db095565fe8a346fa0277bffde9c0edbbf", Label: "Binance", Category: "exchange"},
	{Address: "0xfe9e8709d3215310075d67e3ed32a380ccf451c8", Label: "Binance", Category: "exchange"},
	{Address: "0x4e9ce36e442e55ecd9025b9a6e0d88485d628a67", Label: "Binance", Category: "exchange"},
	{Address: "0xbe0eb53f46cd790cd13851d5eff43d12404d33e8", Label: "Binance", Category: "exchange"},
	{Address: "0xf977814e90da44bfa03b6295a0616a897441acec", Label: "Binance", Category: "exchange"},
	{Address: "0x8894e0a0c962cb723c1976a4421c95949be2d4e3", Label: "Binance Hot Wallet", Category: "exchange"},
	{Address: "0x40ec5b33f54e0e8a33a975908c5ba1c14e5bbbdf", Label: "Polygon (Matic): ERC20 Bridge", Category: "bridge"},
	{Address: "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", Label: "USDC Contract", Category: "token"},
	{Address: "0xdac17f958d2ee523a2206206994597c13d831ec7", Label: "Tether: USDT Stablecoin", Category: "token"},
	{Address: "0x47ac0fb4f2d84898e4d9e7b4dab3c24507a6d503", Label: "Wintermute Trading", Category: "market_maker"},
	{Address: "0x2faf487a4414fe77e2327f0bf4ae2a264a776ad2", Label: "FTX Exchange", Category: "exchange"},
	{Address: "0x5041ed759dd4afc3a72b8192c143f72f4724081a", Label: "Jump Trading", Category: "market_maker"},
	{Address: "0x1111111254fb6c44bac0bed2854e76f90643097d", Label: "1inch: Aggregation Router", Category: "defi"},
	{Address: "0x68b3465833fb72a70ecdf485e0e4c7bd8665fc45", Label: "Uniswap V3: Router 2", Category: "defi"},
	{Address: "0x3fc91a3afd70395cd496c647d5a6cc9d4b2b7fad", Label: "Uniswap: Universal Router", Category: "defi"},
}

func main() {
	_ = godotenv.Load()

	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	withSamples := flag.Bool("with-samples", true, "Seed sample deals/alerts/news/quotes in addition to reference data")
	flag.Parse()

	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags)

	if *postgresDSN == "" {
		logger.Fatal("--postgres-dsn is required")
	}

	ctx := context.Background()
	pool, err := pgstore.NewPool(ctx, *postgresDSN)
	if err != nil {
		logger.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		logger.Fatalf("Migrations failed: %v", err)
	}

	r := resolver.New(pgstore.NewKnownAddressStore(pool))
	if err := r.Seed(ctx, knownAddresses); err != nil {
		logger.Fatalf("Seeding known addresses failed: %v", err)
	}
	logger.Printf("Seeded %d known addresses", len(knownAddresses))

	if !*withSamples {
		return
	}

	if err := seedSamples(ctx, pool, logger); err != nil {
		logger.Fatalf("Seeding samples failed: %v", err)
	}
	logger.Println("Seeding complete")
}

func seedSamples(ctx context.Context, pool *pgstore.Pool, logger *log.Logger) error {
	now := time.Now().UTC()

	quotes := pgstore.NewQuoteStore(pool)
	for _, q := range []*domain.Quote{
		{Symbol: "BTC", Price: decimal.RequireFromString("64234.50"), Change24h: 2.5},
		{Symbol: "ETH", Price: decimal.RequireFromString("3456.78"), Change24h: -1.2},
		{Symbol: "SOL", Price: decimal.RequireFromString("145.32"), Change24h: 5.8},
		{Symbol: "NVDA", Price: decimal.RequireFromString("892.45"), Change24h: 1.4},
		{Symbol: "COIN", Price: decimal.RequireFromString("234.12"), Change24h: -0.8},
	} {
		q.UpdatedAt = now
		if err := quotes.Upsert(ctx, q); err != nil {
			return fmt.Errorf("seed quote %s: %w", q.Symbol, err)
		}
	}
	logger.Println("Seeded 5 market quotes")

	filings := pgstore.NewFilingStore(pool)
	deals := []*domain.Filing{
		{CompanyName: "Anthropic AI", AmountRaised: decimal.NewFromInt(750_000_000), FilingURL: "https://sec.gov/filing/anthropic-2024", Sector: "AI/ML", FiledAt: now.AddDate(0, 0, -1), Premium: true},
		{CompanyName: "Stripe Payments", AmountRaised: decimal.NewFromInt(500_000_000), FilingURL: "https://sec.gov/filing/stripe-2024", Sector: "Fintech", FiledAt: now.AddDate(0, 0, -2), Premium: true},
		{CompanyName: "SpaceX Launch", AmountRaised: decimal.NewFromInt(350_000_000), FilingURL: "https://sec.gov/filing/spacex-2024", Sector: "Aerospace", FiledAt: now.AddDate(0, 0, -3), Premium: true},
		{CompanyName: "Databricks Inc", AmountRaised: decimal.NewFromInt(450_000_000), FilingURL: "https://sec.gov/filing/databricks-2024", Sector: "Cloud/Data", FiledAt: now.AddDate(0, 0, -4), Premium: true},
		{CompanyName: "Canva Design", AmountRaised: decimal.NewFromInt(200_000_000), FilingURL: "https://sec.gov/filing/canva-2024", Sector: "SaaS", FiledAt: now.AddDate(0, 0, -5), Premium: true},
	}
	inserted := 0
	for _, d := range deals {
		if err := insertIgnoringDuplicate(filings.Insert(ctx, d)); err != nil {
			return fmt.Errorf("seed deal %s: %w", d.CompanyName, err)
		} else if d.ID != 0 {
			inserted++
		}
	}
	logger.Printf("Seeded %d private deals", inserted)

	uniswapPool := "uniswap-v3"
	alerts := pgstore.NewTransferAlertStore(pool)
	whales := []*domain.TransferAlert{
		{TxHash: "0xseed0000000000000000000000000000000001", SenderAddress: "0xabc123", SenderLabel: "Binance Hot Wallet", ReceiverAddress: "0xdef456", ReceiverLabel: domain.UnknownWalletLabel, TokenSymbol: "USDC", TokenAddress: "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", Amount: decimal.NewFromInt(5_000_000), ObservedAt: now.Add(-2 * time.Hour), Premium: true},
		{TxHash: "0xseed0000000000000000000000000000000002", SenderAddress: "0x789xyz", SenderLabel: "Coinbase", ReceiverAddress: "0x456def", ReceiverLabel: "DeFi Protocol", TokenSymbol: "ETH", TokenAddress: "0xethaddr", Amount: decimal.NewFromInt(1_500), ObservedAt: now.Add(-5 * time.Hour), Premium: true},
		{TxHash: "0xseed0000000000000000000000000000000003", SenderAddress: "0xwhale1", SenderLabel: "Whale #1", ReceiverAddress: "0xdexpool", ReceiverLabel: "Uniswap V3", TokenSymbol: "AERO", TokenAddress: "0xaerotoken", Amount: decimal.NewFromInt(250_000), PoolAddress: &uniswapPool, Tradeable: true, ObservedAt: now.Add(-8 * time.Hour), Premium: true},
		{TxHash: "0xseed0000000000000000000000000000000004", SenderAddress: "0xwhale2", SenderLabel: "Jump Trading", ReceiverAddress: "0xwalletx", ReceiverLabel: domain.UnknownWalletLabel, TokenSymbol: "SOL", TokenAddress: "0xsoladdr", Amount: decimal.NewFromInt(50_000), ObservedAt: now.Add(-12 * time.Hour), Premium: true},
		{TxHash: "0xseed0000000000000000000000000000000005", SenderAddress: "0xvcfund", SenderLabel: "a16z Crypto", ReceiverAddress: "0xprojecty", ReceiverLabel: "New Project", TokenSymbol: "USDC", TokenAddress: "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", Amount: decimal.NewFromInt(10_000_000), ObservedAt: now.Add(-20 * time.Hour), Premium: true},
	}
	inserted = 0
	for _, a := range whales {
		if err := insertIgnoringDuplicate(alerts.Insert(ctx, a)); err != nil {
			return fmt.Errorf("seed alert %s: %w", a.TxHash, err)
		} else if a.ID != 0 {
			inserted++
		}
	}
	logger.Printf("Seeded %d whale alerts", inserted)

	articles := pgstore.NewArticleStore(pool)
	news := []*domain.Article{
		{Title: "Bitcoin ETF Sees Record Inflows", Summary: "Institutional investors pour $2B into Bitcoin ETFs", Sentiment: domain.SentimentBullish, Source: "Bloomberg", URL: "https://bloomberg.com/btc-etf", PublishedAt: now.Add(-1 * time.Hour), Premium: true},
		{Title: "Ethereum Upgrade Delayed", Summary: "Developers postpone major network upgrade to Q2", Sentiment: domain.SentimentBearish, Source: "CoinDesk", URL: "https://coindesk.com/eth-delay", PublishedAt: now.Add(-3 * time.Hour), Premium: true},
		{Title: "Solana DeFi TVL Hits All-Time High", Summary: "Total value locked surpasses $5B milestone", Sentiment: domain.SentimentBullish, Source: "The Block", URL: "https://theblock.co/solana-tvl", PublishedAt: now.Add(-6 * time.Hour), Premium: true},
		{Title: "SEC Approves New Crypto Framework", Summary: "Regulatory clarity for digital assets expected", Sentiment: domain.SentimentBullish, Source: "Reuters", URL: "https://reuters.com/sec-crypto", PublishedAt: now.Add(-9 * time.Hour), Premium: true},
		{Title: "Major Exchange Hack Reported", Summary: "Unknown exchange loses $50M in security breach", Sentiment: domain.SentimentBearish, Source: "CryptoNews", URL: "https://cryptonews.com/hack", PublishedAt: now.Add(-11 * time.Hour), Premium: true},
	}
	inserted = 0
	for _, n := range news {
		if err := insertIgnoringDuplicate(articles.Insert(ctx, n)); err != nil {
			return fmt.Errorf("seed article %s: %w", n.URL, err)
		} else if n.ID != 0 {
			inserted++
		}
	}
	logger.Printf("Seeded %d news items", inserted)

	return nil
}

// insertIgnoringDuplicate treats an existing natural key as success so
// re-running the seeder is harmless.
func insertIgnoringDuplicate(err error) error {
	if errors.Is(err, storage.ErrDuplicateKey) {
		return nil
	}
	return err
}
