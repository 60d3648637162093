package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkEntryRow is the persisted shape of a work entry.
type WorkEntryRow struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey"`
	StartDate             time.Time  `gorm:"type:date;not null"`
	WorkType              string     `gorm:"type:varchar(200);not null"`
	Department            string     `gorm:"type:varchar(200);not null"`
	EndDate               *time.Time `gorm:"type:date"`
	PIC                   string     `gorm:"column:pic;type:varchar(200);not null"`
	Status                string     `gorm:"type:varchar(20);not null"`
	Notes                 *string    `gorm:"type:text"`
	PurchaseRequestNumber *string    `gorm:"type:varchar(100)"`
	CreatedAt             time.Time  `gorm:"autoCreateTime"`
	UpdatedAt             time.Time  `gorm:"autoUpdateTime"`
}

// TableName sets the table name for GORM.
func (WorkEntryRow) TableName() string {
	return "logbook_entries"
}

// BeforeCreate assigns the native identifier when the caller left it empty.
func (r *WorkEntryRow) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// BackupEntryRow is the persisted shape of a backup entry.
type BackupEntryRow struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Date      time.Time  `gorm:"type:date;not null"`
	Shift     string     `gorm:"type:varchar(20);not null"`
	PIC       string     `gorm:"column:pic;type:varchar(200);not null"`
	Timestamp *time.Time `gorm:"column:timestamp"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
}

func (BackupEntryRow) TableName() string {
	return "backup_logs"
}

func (r *BackupEntryRow) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
