package billing

import "errors"

var (
	// ErrNotFound is returned when an invoice does not exist.
	ErrNotFound = errors.New("invoice not found")

	// ErrInvalidPeriod is returned for a month outside 1-12 or an
	// implausible year.
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrDuplicateInvoice is returned when an invoice already exists for
	// the same room and period. Generation treats it as a skip.
	ErrDuplicateInvoice = errors.New("invoice already exists for room and period")

	// ErrMissingTariff is returned for a room with neither a price
	// override nor a room type; such a room cannot be billed.
	ErrMissingTariff = errors.New("room has no price and no room type")

	// ErrNegativeConsumption is returned when a meter's new reading is
	// below its old reading. The room is skipped so an operator can fix
	// the reading instead of the fee being silently clamped.
	ErrNegativeConsumption = errors.New("meter reading went backwards")

	// ErrInvalidAbsence is returned for a negative absent-day count or
	// one exceeding the days in the period.
	ErrInvalidAbsence = errors.New("invalid absent day count")

	// ErrInvalidAmount is returned for a payment amount <= 0.
	ErrInvalidAmount = errors.New("payment amount must be positive")

	// ErrAlreadyPaid is returned by MarkFullyPaid on a settled invoice.
	ErrAlreadyPaid = errors.New("invoice is already fully paid")

	// ErrInvoicePaid is returned when a billed-amount mutation is
	// attempted after money has been collected.
	ErrInvoicePaid = errors.New("invoice already has payments recorded")
)
