// Package entity defines the domain models for the ledger feature.
package entity

import "time"

// Account owns a set of holdings. Name is unique.
type Account struct {
	ID   uint
	Name string
}

// Holding is a closed position of an account. It has no identity of its own:
// two holdings with equal fields are the same holding.
type Holding struct {
	AccountID      uint
	Symbol         string
	PurchaseDate   time.Time
	SaleDate       time.Time
	NumberOfShares int64
}

// AccountDetail is an account together with its holdings.
type AccountDetail struct {
	Account
	Holdings []Holding
}

// AccountReturn is the realized nominal return of an account.
type AccountReturn struct {
	AccountID   uint
	TotalReturn float64
}
