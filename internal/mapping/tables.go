package mapping

import (
	"github.com/it-logbook-api/internal/domain"
)

// WorkEntries maps domain.WorkEntry to domain.WorkEntryRow.
var WorkEntries = Table[domain.WorkEntry, domain.WorkEntryRow]{
	Fields: []Field[domain.WorkEntry, domain.WorkEntryRow]{
		{
			Name: "startDate", Column: "start_date",
			ToRow:   func(a *domain.WorkEntry, r *domain.WorkEntryRow) { r.StartDate = a.StartDate },
			FromRow: func(r *domain.WorkEntryRow, a *domain.WorkEntry) { a.StartDate = r.StartDate },
		},
		{
			Name: "workType", Column: "work_type",
			ToRow:   func(a *domain.WorkEntry, r *domain.WorkEntryRow) { r.WorkType = a.WorkType },
			FromRow: func(r *domain.WorkEntryRow, a *domain.WorkEntry) { a.WorkType = r.WorkType },
		},
		{
			Name: "department", Column: "department",
			ToRow:   func(a *domain.WorkEntry, r *domain.WorkEntryRow) { r.Department = a.Department },
			FromRow: func(r *domain.WorkEntryRow, a *domain.WorkEntry) { a.Department = r.Department },
		},
		{
			Name: "endDate", Column: "end_date",
			ToRow:   func(a *domain.WorkEntry, r *domain.WorkEntryRow) { r.EndDate = a.EndDate },
			FromRow: func(r *domain.WorkEntryRow, a *domain.WorkEntry) { a.EndDate = r.EndDate },
		},
		{
			Name: "personInCharge", Column: "pic",
			ToRow:   func(a *domain.WorkEntry, r *domain.WorkEntryRow) { r.PIC = a.PersonInCharge },
			FromRow: func(r *domain.WorkEntryRow, a *domain.WorkEntry) { a.PersonInCharge = r.PIC },
		},
		{
			Name: "status", Column: "status",
			ToRow:   func(a *domain.WorkEntry, r *domain.WorkEntryRow) { r.Status = string(a.Status) },
			FromRow: func(r *domain.WorkEntryRow, a *domain.WorkEntry) { a.Status = domain.Status(r.Status) },
		},
		{
			Name: "notes", Column: "notes",
			ToRow:   func(a *domain.WorkEntry, r *domain.WorkEntryRow) { r.Notes = nullable(a.Notes) },
			FromRow: func(r *domain.WorkEntryRow, a *domain.WorkEntry) { a.Notes = deref(r.Notes) },
		},
		{
			Name: "purchaseRequestNumber", Column: "purchase_request_number",
			ToRow: func(a *domain.WorkEntry, r *domain.WorkEntryRow) {
				r.PurchaseRequestNumber = nullable(a.PurchaseRequestNumber)
			},
			FromRow: func(r *domain.WorkEntryRow, a *domain.WorkEntry) {
				a.PurchaseRequestNumber = deref(r.PurchaseRequestNumber)
			},
		},
	},
	identity: func(a *domain.WorkEntry, r *domain.WorkEntryRow, toRow bool) {
		if toRow {
			r.ID = a.RowID
			return
		}
		a.RowID = r.ID
		a.ID = ProjectID(r.ID)
	},
}

// BackupEntries maps domain.BackupEntry to domain.BackupEntryRow.
var BackupEntries = Table[domain.BackupEntry, domain.BackupEntryRow]{
	Fields: []Field[domain.BackupEntry, domain.BackupEntryRow]{
		{
			Name: "date", Column: "date",
			ToRow:   func(a *domain.BackupEntry, r *domain.BackupEntryRow) { r.Date = a.Date },
			FromRow: func(r *domain.BackupEntryRow, a *domain.BackupEntry) { a.Date = r.Date },
		},
		{
			Name: "shift", Column: "shift",
			ToRow:   func(a *domain.BackupEntry, r *domain.BackupEntryRow) { r.Shift = string(a.Shift) },
			FromRow: func(r *domain.BackupEntryRow, a *domain.BackupEntry) { a.Shift = domain.Shift(r.Shift) },
		},
		{
			Name: "personInCharge", Column: "pic",
			ToRow:   func(a *domain.BackupEntry, r *domain.BackupEntryRow) { r.PIC = a.PersonInCharge },
			FromRow: func(r *domain.BackupEntryRow, a *domain.BackupEntry) { a.PersonInCharge = r.PIC },
		},
		{
			Name: "createdAt", Column: "timestamp",
			ToRow:   func(a *domain.BackupEntry, r *domain.BackupEntryRow) { r.Timestamp = a.CreatedAt },
			FromRow: func(r *domain.BackupEntryRow, a *domain.BackupEntry) { a.CreatedAt = r.Timestamp },
		},
	},
	identity: func(a *domain.BackupEntry, r *domain.BackupEntryRow, toRow bool) {
		if toRow {
			r.ID = a.RowID
			return
		}
		a.RowID = r.ID
		a.ID = ProjectID(r.ID)
	},
}
