package employee

import "errors"

var (
	ErrEmployeeNotFound        = errors.New("employee not found")
	ErrEmployeeAlreadyInactive = errors.New("employee is already terminated")
	ErrEmployeeInactive        = errors.New("employee is no longer active")
)
