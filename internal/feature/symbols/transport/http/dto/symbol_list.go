// Package dto defines data transfer objects for the symbols HTTP API.
package dto

// SymbolItem represents a symbol in the API response.
type SymbolItem struct {
	Symbol string `json:"symbol"`
	Market string `json:"market"`
	Rows   int64  `json:"rows"`
}

type RowCountResponse struct {
	RowCount int64 `json:"row_count"`
}

type UniqueStockCountResponse struct {
	UniqueStockCount int64 `json:"unique_stock_count"`
}

// MarketCountResponse keeps the lower-case market keys of the original API.
type MarketCountResponse struct {
	NYSE   int64 `json:"nyse"`
	NASDAQ int64 `json:"nasdaq"`
}
