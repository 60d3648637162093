package service

import (
	"strings"
	"time"

	"github.com/it-logbook-api/internal/domain"
)

// EntryFilter narrows the work entry list. The zero value matches everything.
type EntryFilter struct {
	// Search is matched case-insensitively against every text and date field.
	Search     string
	Status     domain.Status
	Department string
	// Date matches entries that started or ended on that day.
	Date *time.Time
}

// Match reports whether e passes every criterion set on f.
func (f EntryFilter) Match(e domain.WorkEntry) bool {
	if f.Status != "" && e.Status != f.Status {
		return false
	}
	if f.Department != "" && e.Department != f.Department {
		return false
	}
	if f.Date != nil {
		day := f.Date.Format(domain.DateLayout)
		if formatDay(&e.StartDate) != day && formatDay(e.EndDate) != day {
			return false
		}
	}
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		return matchesSearch(e, term)
	}
	return true
}

func matchesSearch(e domain.WorkEntry, term string) bool {
	fields := []string{
		formatDay(&e.StartDate),
		e.WorkType,
		e.Department,
		formatDay(e.EndDate),
		e.PersonInCharge,
		string(e.Status),
		e.Notes,
		e.PurchaseRequestNumber,
	}
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func formatDay(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(domain.DateLayout)
}
