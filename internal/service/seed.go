package service

import (
	"slices"
	"time"

	"github.com/it-logbook-api/internal/domain"
)

// Seed holds the bundled records served when the row store is unreachable.
type Seed struct {
	WorkEntries   []domain.WorkEntry
	BackupEntries []domain.BackupEntry
}

// DefaultDepartments is the department list written on first use.
var DefaultDepartments = []string{
	"IT Infrastructure",
	"Finance",
	"HR",
	"Marketing",
	"Sales",
	"Operations",
	"Executive",
	"Development",
	"QA",
}

// DefaultSeed returns the bundled sample logbook.
func DefaultSeed() Seed {
	closed := seedDay("2023-05-12")
	return Seed{
		WorkEntries: []domain.WorkEntry{
			{
				ID:                    1,
				StartDate:             seedDay("2023-05-10"),
				WorkType:              "Network Maintenance",
				Department:            "IT Infrastructure",
				EndDate:               &closed,
				PersonInCharge:        "John Doe",
				Status:                domain.StatusCompleted,
				Notes:                 "Replaced faulty router in server room",
				PurchaseRequestNumber: "PR-2023-001",
			},
			{
				ID:                    2,
				StartDate:             seedDay("2023-05-15"),
				WorkType:              "Software Installation",
				Department:            "Finance",
				PersonInCharge:        "Jane Smith",
				Status:                domain.StatusInProgress,
				Notes:                 "Installing accounting software on 5 workstations",
				PurchaseRequestNumber: "PR-2023-002",
			},
			{
				ID:                    3,
				StartDate:             seedDay("2023-05-18"),
				WorkType:              "Hardware Replacement",
				Department:            "HR",
				PersonInCharge:        "Mike Johnson",
				Status:                domain.StatusPending,
				Notes:                 "Replace 3 monitors with new LED displays",
				PurchaseRequestNumber: "PR-2023-003",
			},
		},
		BackupEntries: []domain.BackupEntry{},
	}
}

func (s Seed) clone() Seed {
	return Seed{
		WorkEntries:   slices.Clone(s.WorkEntries),
		BackupEntries: slices.Clone(s.BackupEntries),
	}
}

func seedDay(s string) time.Time {
	d, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}
