package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"stock_api/internal/feature/ledger/domain/entity"
	"stock_api/internal/feature/ledger/transport/handler"
	"stock_api/internal/feature/ledger/usecase"
)

// mockAccountUsecase はAccountUsecaseインターフェースのモック実装です。
type mockAccountUsecase struct {
	ListFunc   func(ctx context.Context) ([]entity.Account, error)
	CreateFunc func(ctx context.Context, name string) (*entity.Account, error)
	DeleteFunc func(ctx context.Context, id uint) error
	GetFunc    func(ctx context.Context, id uint) (*entity.AccountDetail, error)
}

func (m *mockAccountUsecase) List(ctx context.Context) ([]entity.Account, error) {
	return m.ListFunc(ctx)
}

func (m *mockAccountUsecase) Create(ctx context.Context, name string) (*entity.Account, error) {
	return m.CreateFunc(ctx, name)
}

func (m *mockAccountUsecase) Delete(ctx context.Context, id uint) error {
	return m.DeleteFunc(ctx, id)
}

func (m *mockAccountUsecase) Get(ctx context.Context, id uint) (*entity.AccountDetail, error) {
	return m.GetFunc(ctx, id)
}

// mockReturnCalculator はReturnCalculatorインターフェースのモック実装です。
type mockReturnCalculator struct {
	AccountReturnFunc func(ctx context.Context, accountID uint) (*entity.AccountReturn, error)
}

func (m *mockReturnCalculator) AccountReturn(ctx context.Context, accountID uint) (*entity.AccountReturn, error) {
	return m.AccountReturnFunc(ctx, accountID)
}

// mockHoldingUsecase はHoldingUsecaseインターフェースのモック実装です。
type mockHoldingUsecase struct {
	CreateFunc   func(ctx context.Context, in usecase.HoldingInput) (*entity.Holding, error)
	DeleteFunc   func(ctx context.Context, in usecase.HoldingInput) error
	BySymbolFunc func(ctx context.Context, symbol string) ([]entity.Holding, error)
}

func (m *mockHoldingUsecase) Create(ctx context.Context, in usecase.HoldingInput) (*entity.Holding, error) {
	return m.CreateFunc(ctx, in)
}

func (m *mockHoldingUsecase) Delete(ctx context.Context, in usecase.HoldingInput) error {
	return m.DeleteFunc(ctx, in)
}

func (m *mockHoldingUsecase) BySymbol(ctx context.Context, symbol string) ([]entity.Holding, error) {
	return m.BySymbolFunc(ctx, symbol)
}

func newLedgerRouter(acc *mockAccountUsecase, calc *mockReturnCalculator, hold *mockHoldingUsecase) *gin.Engine {
	ah := handler.NewAccountHandler(acc, calc)
	hh := handler.NewHoldingHandler(hold)
	r := gin.New()
	r.GET("/accounts", ah.List)
	r.POST("/accounts", ah.Create)
	r.DELETE("/accounts", ah.Delete)
	r.GET("/accounts/return/:id", ah.Return)
	r.GET("/accounts/:id", ah.Get)
	r.POST("/stocks", hh.Create)
	r.DELETE("/stocks", hh.Delete)
	r.GET("/stocks/:symbol", hh.BySymbol)
	return r
}

func do(r *gin.Engine, method, url, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, url, nil)
	} else {
		req = httptest.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

var (
	purchased = time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
	sold      = time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)
)

// TestAccountHandler はアカウント系エンドポイントをテーブル駆動テストで検証します。
func TestAccountHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	acc := &mockAccountUsecase{
		ListFunc: func(context.Context) ([]entity.Account, error) {
			return []entity.Account{{ID: 1, Name: "alice"}, {ID: 2, Name: "bob"}}, nil
		},
		CreateFunc: func(_ context.Context, name string) (*entity.Account, error) {
			if name == "alice" {
				return nil, usecase.ErrAccountNameTaken
			}
			return &entity.Account{ID: 3, Name: name}, nil
		},
		DeleteFunc: func(_ context.Context, id uint) error {
			if id != 1 {
				return usecase.ErrAccountNotFound
			}
			return nil
		},
		GetFunc: func(_ context.Context, id uint) (*entity.AccountDetail, error) {
			if id != 1 {
				return nil, usecase.ErrAccountNotFound
			}
			return &entity.AccountDetail{
				Account: entity.Account{ID: 1, Name: "alice"},
				Holdings: []entity.Holding{
					{AccountID: 1, Symbol: "AAPL", PurchaseDate: purchased, SaleDate: sold, NumberOfShares: 10},
				},
			}, nil
		},
	}
	calc := &mockReturnCalculator{AccountReturnFunc: func(_ context.Context, id uint) (*entity.AccountReturn, error) {
		switch id {
		case 1:
			return &entity.AccountReturn{AccountID: 1, TotalReturn: 255.5}, nil
		case 2:
			return &entity.AccountReturn{AccountID: 2, TotalReturn: 0}, nil
		default:
			return nil, usecase.ErrAccountNotFound
		}
	}}
	r := newLedgerRouter(acc, calc, &mockHoldingUsecase{})

	tests := []struct {
		name           string
		method         string
		url            string
		body           string
		expectedStatus int
		expectedBody   string
	}{
		{"list accounts", http.MethodGet, "/accounts", "", http.StatusOK,
			`[{"account_id":1,"name":"alice"},{"account_id":2,"name":"bob"}]`},
		{"create account", http.MethodPost, "/accounts", `{"name":"carol"}`, http.StatusCreated,
			`{"account_id":3,"name":"carol"}`},
		{"create duplicate account", http.MethodPost, "/accounts", `{"name":"alice"}`, http.StatusConflict,
			`{"error":"account name already exists"}`},
		{"create without name", http.MethodPost, "/accounts", `{}`, http.StatusBadRequest,
			`{"error":"name is required"}`},
		{"delete account", http.MethodDelete, "/accounts", `{"account_id":1}`, http.StatusOK,
			`{"account_id":1}`},
		{"delete unknown account", http.MethodDelete, "/accounts", `{"account_id":9}`, http.StatusNotFound,
			`{"error":"account not found"}`},
		{"get account", http.MethodGet, "/accounts/1", "", http.StatusOK,
			`{"account_id":1,"name":"alice","stock_holdings":[{"account_id":1,"symbol":"AAPL","purchase_date":"2020-01-02","sale_date":"2020-06-01","number_of_shares":10}]}`},
		{"get unknown account", http.MethodGet, "/accounts/9", "", http.StatusNotFound,
			`{"error":"account not found"}`},
		{"get account with bad id", http.MethodGet, "/accounts/abc", "", http.StatusBadRequest,
			`{"error":"account id must be a positive integer"}`},
		{"account return", http.MethodGet, "/accounts/return/1", "", http.StatusOK,
			`{"account_id":1,"return":255.5}`},
		{"account return without holdings", http.MethodGet, "/accounts/return/2", "", http.StatusOK,
			`{"account_id":2,"return":0}`},
		{"account return unknown account", http.MethodGet, "/accounts/return/9", "", http.StatusNotFound,
			`{"error":"account not found"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, tt.method, tt.url, tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

// TestHoldingHandler は保有系エンドポイントをテーブル駆動テストで検証します。
func TestHoldingHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	stored := entity.Holding{AccountID: 1, Symbol: "AAPL", PurchaseDate: purchased, SaleDate: sold, NumberOfShares: 10}
	hold := &mockHoldingUsecase{
		CreateFunc: func(_ context.Context, in usecase.HoldingInput) (*entity.Holding, error) {
			if in.AccountID != 1 {
				return nil, usecase.ErrAccountNotFound
			}
			return &stored, nil
		},
		DeleteFunc: func(_ context.Context, in usecase.HoldingInput) error {
			if in.NumberOfShares != 10 {
				return usecase.ErrHoldingNotFound
			}
			return nil
		},
		BySymbolFunc: func(_ context.Context, symbol string) ([]entity.Holding, error) {
			if symbol == "AAPL" {
				return []entity.Holding{stored}, nil
			}
			return nil, nil
		},
	}
	r := newLedgerRouter(&mockAccountUsecase{}, &mockReturnCalculator{}, hold)

	body := func(accountID, shares string) string {
		return `{"account_id":` + accountID + `,"symbol":"AAPL","purchase_date":"2020-01-02","sale_date":"2020-06-01","number_of_shares":` + shares + `}`
	}
	storedJSON := `{"account_id":1,"symbol":"AAPL","purchase_date":"2020-01-02","sale_date":"2020-06-01","number_of_shares":10}`

	tests := []struct {
		name           string
		method         string
		url            string
		body           string
		expectedStatus int
		expectedBody   string
	}{
		{"create holding", http.MethodPost, "/stocks", body("1", "10"), http.StatusCreated, storedJSON},
		{"create holding for unknown account", http.MethodPost, "/stocks", body("9", "10"), http.StatusNotFound,
			`{"error":"account not found"}`},
		{"create holding without fields", http.MethodPost, "/stocks", `{"account_id":1}`, http.StatusBadRequest,
			`{"error":"account_id, symbol, purchase_date and sale_date are required"}`},
		{"delete holding", http.MethodDelete, "/stocks", body("1", "10"), http.StatusOK, `{"deleted":true}`},
		{"delete unmatched holding", http.MethodDelete, "/stocks", body("1", "11"), http.StatusNotFound,
			`{"error":"holding not found"}`},
		{"holdings by symbol", http.MethodGet, "/stocks/AAPL", "", http.StatusOK, `[` + storedJSON + `]`},
		{"holdings by symbol without rows", http.MethodGet, "/stocks/ZZZZ", "", http.StatusOK, `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, tt.method, tt.url, tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
