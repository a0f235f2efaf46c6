// Package entity defines the domain models for the symbols feature.
package entity

// Symbol is one distinct ticker present in the Price Store.
type Symbol struct {
	Code   string // Ticker symbol (e.g., "AAPL")
	Market string // Exchange of origin
	Rows   int64  // Number of daily records stored for the symbol
}

// MarketCounts holds the number of price records per exchange.
type MarketCounts struct {
	NYSE   int64
	NASDAQ int64
}
