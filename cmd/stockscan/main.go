package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"stockscan/pkg/broker"
	"stockscan/pkg/history"
	"stockscan/pkg/index"
	"stockscan/pkg/indicator"
	"stockscan/pkg/ledger"
	"stockscan/pkg/ratings"
	"stockscan/pkg/scan"
)

func main() {
	debug := flag.Bool("debug", false, "compute and report all signals but submit no orders and write no ledger entries")
	shortWindow := flag.Int("short", indicator.DefaultShortWindow, "short EMA window in trading days")
	longWindow := flag.Int("long", indicator.DefaultLongWindow, "long EMA window in trading days")
	ledgerPath := flag.String("ledger", "tradehistory.csv", "path of the append-only trade history file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	logger := zap.Must(zap.NewProduction())
	if *debug {
		logger = zap.Must(zap.NewDevelopment())
	}
	defer logger.Sync()

	if *shortWindow >= *longWindow {
		logger.Fatal("short window must be smaller than long window",
			zap.Int("short", *shortWindow), zap.Int("long", *longWindow))
	}

	apiKey := os.Getenv("ALPACA_API_KEY")
	apiSecret := os.Getenv("ALPACA_SECRET_KEY")
	if apiKey == "" || apiSecret == "" {
		logger.Fatal("ALPACA_API_KEY and ALPACA_SECRET_KEY must be set")
	}

	alpaca := broker.NewAlpaca(broker.Config{
		APIKey:    apiKey,
		APISecret: apiSecret,
		BaseURL:   os.Getenv("ALPACA_BASE_URL"),
	}, logger)

	scanner := &scan.Scanner{
		Broker:      alpaca,
		Universe:    index.NewScraper(logger),
		Ratings:     ratings.NewClient(os.Getenv("RATINGS_BASE_URL"), logger),
		History:     history.NewCache(alpaca),
		Ledger:      ledger.New(*ledgerPath),
		Logger:      logger,
		Out:         os.Stdout,
		ShortWindow: *shortWindow,
		LongWindow:  *longWindow,
		Debug:       *debug,
	}

	if err := scanner.Run(); err != nil {
		logger.Fatal("scan aborted", zap.Error(err))
	}
}
