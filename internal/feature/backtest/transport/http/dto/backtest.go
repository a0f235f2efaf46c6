package dto

// BackTestRequest は POST /backtest のリクエストボディです。
type BackTestRequest struct {
	Value1       string `json:"value_1" binding:"required"`       // 例: "O7"
	Value2       string `json:"value_2" binding:"required"`       // 例: "C0"
	Operator     string `json:"operator" binding:"required"`      // LT | LTE
	PurchaseType string `json:"purchase_type" binding:"required"` // B | S
	StartDate    string `json:"start_date" binding:"required"`
	EndDate      string `json:"end_date" binding:"required"`
}

// BackTestResponse は POST /backtest のレスポンスボディです。
type BackTestResponse struct {
	Return          float64 `json:"return"`
	NumObservations int64   `json:"num_observations"`
}
