package usecase

import "stock_api/internal/shared/apperror"

var (
	// ErrInvalidDate is returned when start_date or end_date is malformed or is not a stored trading date.
	ErrInvalidDate = apperror.New(apperror.KindValidation, "invalid date")

	// ErrInvalidRange is returned when start_date is after end_date.
	ErrInvalidRange = apperror.New(apperror.KindValidation, "start_date must not be after end_date")

	// ErrInvalidValueCode is returned when value_1 or value_2 is not a field letter followed by a lag.
	ErrInvalidValueCode = apperror.New(apperror.KindValidation, "invalid value code")

	ErrInvalidOperator     = apperror.New(apperror.KindValidation, "operator must be LT or LTE")
	ErrInvalidPurchaseType = apperror.New(apperror.KindValidation, "purchase_type must be B or S")
)
