package punch

import "errors"

var (
	// Submission errors
	ErrOutsideGeofence       = errors.New("you must be on-site to punch in or out")
	ErrEmployeeWrongLocation = errors.New("employee does not belong to this location")

	// Correction errors
	ErrPunchNotFound    = errors.New("punch not found")
	ErrFutureTimestamp  = errors.New("punch timestamp cannot be in the future")
	ErrNothingToUpdate  = errors.New("at least one of type or timestamp must change")
	ErrInvalidRetention = errors.New("retention window must be positive")
)
