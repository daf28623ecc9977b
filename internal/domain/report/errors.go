package report

import "errors"

var (
	ErrInvalidTimezone       = errors.New("location timezone is not a valid zone identifier")
	ErrInvalidPeriodSelector = errors.New("invalid period selector")
)
