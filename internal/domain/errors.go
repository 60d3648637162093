package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("record not found")
	ErrNoDataReturned      = errors.New("no data returned after insert")
	ErrNotReady            = errors.New("logbook is still loading")
	ErrValidation          = errors.New("validation failed")
	ErrUnknownDepartment   = errors.New("department is not in the department list")
	ErrEmptyDepartmentName = errors.New("department name cannot be empty")
	ErrDuplicateDepartment = errors.New("department with this name already exists")
	ErrDepartmentIndex     = errors.New("department index out of range")
)

// StoreError is a transport or store failure reported by a persistence call.
type StoreError struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Kind, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// ValidationError carries the reason a record was rejected before any store call.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %v", ErrValidation, e.Err)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
