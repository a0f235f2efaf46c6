package dto

// PriceInfo は1日分の指定価格です。キーは "date" と価格種別名（例: "open"）です。
type PriceInfo map[string]any

// PricesResponse は GET /prices/:priceType/:symbol のレスポンスDTOです。
type PricesResponse struct {
	Symbol    string      `json:"symbol"`     // 銘柄コード
	PriceInfo []PriceInfo `json:"price_info"` // 日付昇順の価格
}

// YearCountResponse は GET /prices/year/:year のレスポンスDTOです。
type YearCountResponse struct {
	Year  int   `json:"year"`
	Count int64 `json:"count"`
}
