package usecase

import "stock_api/internal/shared/apperror"

var (
	// ErrInvalidPriceType is returned when the price type is not one of open, close, high or low.
	ErrInvalidPriceType = apperror.New(apperror.KindValidation, "invalid price type")

	// ErrInvalidYear is returned when the year path parameter is not a plausible year.
	ErrInvalidYear = apperror.New(apperror.KindValidation, "invalid year")

	// ErrSymbolNotFound is returned when no price record exists for the symbol.
	ErrSymbolNotFound = apperror.New(apperror.KindNotFound, "symbol not found in the data")

	// ErrYearNotFound is returned when no price record falls in the year.
	ErrYearNotFound = apperror.New(apperror.KindNotFound, "year not found in the data")
)
