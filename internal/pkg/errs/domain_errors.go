package errs

import "errors"

// Sentinel errors shared between the usecase layers and the handlers.
var (
	// Input errors
	ErrEmptyCustomerName = errors.New("customer name is empty")
	ErrInvalidDuration   = errors.New("invalid reservation duration")
	ErrInvalidTimeSlot   = errors.New("invalid time slot")

	// Booking rule rejections
	ErrInsufficientLeadTime = errors.New("insufficient lead time")
	ErrWeeklyQuotaExceeded  = errors.New("weekly reservation quota exceeded")
	ErrReservationConflict  = errors.New("reservation conflict")

	// Query errors
	ErrInvalidDateRange = errors.New("invalid date range")

	// Operation errors
	ErrStorageFailure = errors.New("storage operation failed")
)
