// Package entity defines the domain models for the prices feature.
package entity

import (
	"strings"
	"time"
)

// Market is the exchange a price record was ingested from.
type Market string

const (
	MarketNASDAQ  Market = "NASDAQ"
	MarketNYSE    Market = "NYSE"
	MarketUnknown Market = "UNKNOWN"
)

// MarketFromName tags a record by the archive or file name it came from.
func MarketFromName(name string) Market {
	upper := strings.ToUpper(name)
	switch {
	case strings.Contains(upper, string(MarketNASDAQ)):
		return MarketNASDAQ
	case strings.Contains(upper, string(MarketNYSE)):
		return MarketNYSE
	default:
		return MarketUnknown
	}
}

// PriceRecord is one daily OHLCV observation for a symbol.
// It is identified by (Symbol, Date) and never mutated after ingestion.
type PriceRecord struct {
	Market Market    // Exchange of origin
	Symbol string    // Ticker symbol (e.g., "AAPL")
	Date   time.Time // Trading day, UTC midnight
	Open   float64   // Opening price
	High   float64   // Highest price of the day
	Low    float64   // Lowest price of the day
	Close  float64   // Closing price
	Volume int64     // Trading volume
}

// PriceType names one of the four price columns exposed by the API.
type PriceType string

const (
	PriceOpen  PriceType = "open"
	PriceClose PriceType = "close"
	PriceHigh  PriceType = "high"
	PriceLow   PriceType = "low"
)

// ParsePriceType matches s case-insensitively against the four price columns.
func ParsePriceType(s string) (PriceType, bool) {
	switch PriceType(strings.ToLower(strings.TrimSpace(s))) {
	case PriceOpen:
		return PriceOpen, true
	case PriceClose:
		return PriceClose, true
	case PriceHigh:
		return PriceHigh, true
	case PriceLow:
		return PriceLow, true
	default:
		return "", false
	}
}

// Value returns the column of r named by t.
func (r PriceRecord) Value(t PriceType) float64 {
	switch t {
	case PriceOpen:
		return r.Open
	case PriceHigh:
		return r.High
	case PriceLow:
		return r.Low
	default:
		return r.Close
	}
}
