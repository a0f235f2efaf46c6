// Package entity defines the value objects of a back-test request.
package entity

import (
	"strconv"
	"strings"
	"time"

	priceentity "stock_api/internal/feature/prices/domain/entity"
)

// MaxLagDays bounds the look-back of a single value code.
const MaxLagDays = 36500

// Field is the price column a value code refers to.
type Field byte

const (
	FieldOpen  Field = 'O'
	FieldClose Field = 'C'
	FieldHigh  Field = 'H'
	FieldLow   Field = 'L'
)

// Of returns the column of r named by f.
func (f Field) Of(r priceentity.PriceRecord) float64 {
	switch f {
	case FieldOpen:
		return r.Open
	case FieldHigh:
		return r.High
	case FieldLow:
		return r.Low
	default:
		return r.Close
	}
}

func (f Field) String() string { return string(rune(f)) }

// LaggedField is a parsed value code such as "O7": the open price seven days earlier.
type LaggedField struct {
	Field   Field
	LagDays int
}

func (l LaggedField) String() string {
	return l.Field.String() + strconv.Itoa(l.LagDays)
}

// ParseLaggedField parses one upper-case letter of O, C, H or L followed by decimal digits.
func ParseLaggedField(s string) (LaggedField, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return LaggedField{}, false
	}
	f := Field(s[0])
	switch f {
	case FieldOpen, FieldClose, FieldHigh, FieldLow:
	default:
		return LaggedField{}, false
	}
	digits := s[1:]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return LaggedField{}, false
		}
	}
	lag, err := strconv.Atoi(digits)
	if err != nil || lag > MaxLagDays {
		return LaggedField{}, false
	}
	return LaggedField{Field: f, LagDays: lag}, true
}

// Operator compares the two lagged values.
type Operator string

const (
	OperatorLT  Operator = "LT"
	OperatorLTE Operator = "LTE"
)

// ParseOperator accepts LT and LTE in any case.
func ParseOperator(s string) (Operator, bool) {
	switch op := Operator(strings.ToUpper(strings.TrimSpace(s))); op {
	case OperatorLT, OperatorLTE:
		return op, true
	default:
		return "", false
	}
}

// Holds reports whether a op b.
func (o Operator) Holds(a, b float64) bool {
	if o == OperatorLTE {
		return a <= b
	}
	return a < b
}

// PurchaseType is the side of the hypothetical trade.
type PurchaseType string

const (
	PurchaseBuy  PurchaseType = "B"
	PurchaseSell PurchaseType = "S"
)

// ParsePurchaseType accepts B and S in any case.
func ParsePurchaseType(s string) (PurchaseType, bool) {
	switch pt := PurchaseType(strings.ToUpper(strings.TrimSpace(s))); pt {
	case PurchaseBuy, PurchaseSell:
		return pt, true
	default:
		return "", false
	}
}

// DayReturn is close - open for a long position and open - close for a short one.
func (p PurchaseType) DayReturn(open, close float64) float64 {
	if p == PurchaseBuy {
		return close - open
	}
	return open - close
}

// Request is a validated back-test request.
type Request struct {
	ValueA       LaggedField
	ValueB       LaggedField
	Operator     Operator
	PurchaseType PurchaseType
	Start        time.Time
	End          time.Time
}

// MaxLag is the larger of the two look-backs.
func (r Request) MaxLag() int {
	return max(r.ValueA.LagDays, r.ValueB.LagDays)
}

// AlignedRow is a price observation with up to two lagged comparison values.
// HasA and HasB are false when the lagged date has no record for the symbol.
type AlignedRow struct {
	Symbol string
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64

	ValueA float64
	HasA   bool
	ValueB float64
	HasB   bool
}

// Result is the outcome of a back-test.
type Result struct {
	TotalReturn  float64
	Observations int64
}
