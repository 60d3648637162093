package dto

import (
	"time"
)

// WorkEntryRequest - create/update payload for a work entry
type WorkEntryRequest struct {
	StartDate             string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	WorkType              string  `json:"work_type" validate:"required,min=1,max=200"`
	Department            string  `json:"department" validate:"required,min=1,max=200"`
	EndDate               string  `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	PersonInCharge        string  `json:"person_in_charge" validate:"required,min=1,max=200"`
	Status                string  `json:"status" validate:"required,status"`
	Notes                 string  `json:"notes" validate:"max=2000"`
	PurchaseRequestNumber string  `json:"purchase_request_number" validate:"max=100"`
}

// BackupEntryRequest - create/update payload for a backup entry
type BackupEntryRequest struct {
	Date           string     `json:"date" validate:"required,datetime=2006-01-02"`
	Shift          string     `json:"shift" validate:"required,shift"`
	PersonInCharge string     `json:"person_in_charge" validate:"required,min=1,max=200"`
	CreatedAt      *time.Time `json:"created_at"`
}

// DepartmentRequest - add/rename payload for a department
type DepartmentRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// EntryListQuery - filters of the work entry list and export
type EntryListQuery struct {
	Search     string
	Status     string `validate:"omitempty,status"`
	Department string
	Date       string `validate:"omitempty,datetime=2006-01-02"`
}

// WorkEntryResponse - work entry as returned to clients
type WorkEntryResponse struct {
	ID                    int64   `json:"id"`
	StartDate             string  `json:"start_date"`
	WorkType              string  `json:"work_type"`
	Department            string  `json:"department"`
	EndDate               *string `json:"end_date"`
	PersonInCharge        string  `json:"person_in_charge"`
	Status                string  `json:"status"`
	Notes                 string  `json:"notes"`
	PurchaseRequestNumber string  `json:"purchase_request_number"`
}

// BackupEntryResponse - backup entry as returned to clients
type BackupEntryResponse struct {
	ID             int64      `json:"id"`
	Date           string     `json:"date"`
	Shift          string     `json:"shift"`
	PersonInCharge string     `json:"person_in_charge"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
}

// ListResponse wraps a collection with its size and the next local id.
type ListResponse[T any] struct {
	Items  []T   `json:"items"`
	Total  int   `json:"total"`
	NextID int64 `json:"next_id"`
}

// DepartmentListResponse - current department list
type DepartmentListResponse struct {
	Departments []string `json:"departments"`
}

// HealthResponse - liveness and logbook state
type HealthResponse struct {
	Status string `json:"status"`
	State  string `json:"state"`
}

// ErrorResponse - standard error body
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
