package errors

import (
	"errors"
)

var (
	ErrInvalidQuality = errors.New("invalid quality")
	ErrInvalidItem    = errors.New("invalid item")
	ErrItemNotFound   = errors.New("item not found")

	ErrInvalidDays        = errors.New("invalid number of days")
	ErrAdvanceInProgress  = errors.New("another day advance is in progress")
	ErrDayAlreadyAdvanced = errors.New("day already advanced")

	ErrTransactionFailed = errors.New("transaction failed")
)
