package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar date format used on the wire and in exports.
const DateLayout = "2006-01-02"

// Kind identifies one of the two record kinds of the logbook.
type Kind string

const (
	KindWorkEntry   Kind = "work_entry"
	KindBackupEntry Kind = "backup_entry"
)

// Status is the progress state of a work entry.
type Status string

const (
	StatusCompleted  Status = "Completed"
	StatusInProgress Status = "In Progress"
	StatusPending    Status = "Pending"
)

// Statuses lists every valid status in display order.
var Statuses = []Status{StatusCompleted, StatusInProgress, StatusPending}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return slices.Contains(Statuses, s)
}

// Shift is the part of the day a database backup was taken in.
type Shift string

const (
	ShiftMorning   Shift = "Morning"
	ShiftAfternoon Shift = "Afternoon"
	ShiftEvening   Shift = "Evening"
)

// Shifts lists every valid shift in display order.
var Shifts = []Shift{ShiftMorning, ShiftAfternoon, ShiftEvening}

// Valid reports whether s is one of the known shifts.
func (s Shift) Valid() bool {
	return slices.Contains(Shifts, s)
}

// WorkEntry is an IT work ticket as the application sees it.
// RowID is the identifier assigned by the row store and never leaves the server.
type WorkEntry struct {
	ID                    int64      `json:"id"`
	RowID                 uuid.UUID  `json:"-"`
	StartDate             time.Time  `json:"start_date" validate:"required"`
	WorkType              string     `json:"work_type" validate:"required,max=200"`
	Department            string     `json:"department" validate:"required,max=200"`
	EndDate               *time.Time `json:"end_date,omitempty"`
	PersonInCharge        string     `json:"person_in_charge" validate:"required,max=200"`
	Status                Status     `json:"status" validate:"required,status"`
	Notes                 string     `json:"notes"`
	PurchaseRequestNumber string     `json:"purchase_request_number"`
}

// Open reports whether the work has no end date yet.
func (e WorkEntry) Open() bool {
	return e.EndDate == nil
}

// BackupEntry records one database backup shift.
type BackupEntry struct {
	ID             int64      `json:"id"`
	RowID          uuid.UUID  `json:"-"`
	Date           time.Time  `json:"date" validate:"required"`
	Shift          Shift      `json:"shift" validate:"required,shift"`
	PersonInCharge string     `json:"person_in_charge" validate:"required,max=200"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
}
