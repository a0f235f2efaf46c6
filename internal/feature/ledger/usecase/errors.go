package usecase

import "stock_api/internal/shared/apperror"

var (
	// ErrAccountNotFound is returned when no account has the id.
	ErrAccountNotFound = apperror.New(apperror.KindNotFound, "account not found")

	// ErrAccountNameTaken is returned when an account with the name already exists.
	ErrAccountNameTaken = apperror.New(apperror.KindConflict, "account name already exists")

	// ErrHoldingNotFound is returned when no stored holding equals the requested tuple.
	ErrHoldingNotFound = apperror.New(apperror.KindNotFound, "holding not found")

	ErrMissingField  = apperror.New(apperror.KindValidation, "missing required field")
	ErrInvalidDate   = apperror.New(apperror.KindValidation, "invalid date")
	ErrInvalidShares = apperror.New(apperror.KindValidation, "number_of_shares must be positive")

	// ErrInvalidHoldingDates is returned when sale_date is before purchase_date.
	ErrInvalidHoldingDates = apperror.New(apperror.KindValidation, "sale_date must not be before purchase_date")

	// ErrPriceNotFound is returned when a holding date has no price record for the symbol.
	ErrPriceNotFound = apperror.New(apperror.KindValidation, "no price record for symbol on date")
)
