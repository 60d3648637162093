package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/it-logbook-api/internal/domain"
	"github.com/it-logbook-api/internal/mapping"
	"gorm.io/gorm"
)

// BackupEntryRepository persists backup entries in the row store.
type BackupEntryRepository interface {
	FetchAll(ctx context.Context) ([]domain.BackupEntry, error)
	Create(ctx context.Context, entry domain.BackupEntry) (domain.BackupEntry, error)
	Update(ctx context.Context, entry domain.BackupEntry) error
	Delete(ctx context.Context, rowID uuid.UUID) error
}

type backupEntryRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewBackupEntryRepository(db *gorm.DB) BackupEntryRepository {
	return &backupEntryRepository{db: db, now: time.Now}
}

func (r *backupEntryRepository) FetchAll(ctx context.Context) ([]domain.BackupEntry, error) {
	var rows []domain.BackupEntryRow
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, storeError("fetch", domain.KindBackupEntry, err)
	}

	entries := make([]domain.BackupEntry, len(rows))
	for i, row := range rows {
		entries[i] = mapping.BackupEntries.FromRow(row)
	}
	return entries, nil
}

// Create stores entry, stamping it with the current time when it has none.
func (r *backupEntryRepository) Create(ctx context.Context, entry domain.BackupEntry) (domain.BackupEntry, error) {
	entry.RowID = uuid.Nil
	if entry.CreatedAt == nil {
		now := r.now().UTC()
		entry.CreatedAt = &now
	}
	row := mapping.BackupEntries.ToRow(entry)

	result := r.db.WithContext(ctx).Create(&row)
	if result.Error != nil {
		return domain.BackupEntry{}, storeError("create", domain.KindBackupEntry, result.Error)
	}
	if result.RowsAffected == 0 || row.ID == uuid.Nil {
		return domain.BackupEntry{}, storeError("create", domain.KindBackupEntry, domain.ErrNoDataReturned)
	}

	return mapping.BackupEntries.FromRow(row), nil
}

func (r *backupEntryRepository) Update(ctx context.Context, entry domain.BackupEntry) error {
	if entry.RowID == uuid.Nil {
		return fmt.Errorf("update %s %d: %w", domain.KindBackupEntry, entry.ID, domain.ErrNotFound)
	}

	row := mapping.BackupEntries.ToRow(entry)
	result := r.db.WithContext(ctx).
		Model(&domain.BackupEntryRow{ID: row.ID}).
		Select(mapping.BackupEntries.Columns()).
		Updates(&row)
	if result.Error != nil {
		return storeError("update", domain.KindBackupEntry, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("update %s %d: %w", domain.KindBackupEntry, entry.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *backupEntryRepository) Delete(ctx context.Context, rowID uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.BackupEntryRow{}, "id = ?", rowID)
	if result.Error != nil {
		return storeError("delete", domain.KindBackupEntry, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete %s %s: %w", domain.KindBackupEntry, rowID, domain.ErrNotFound)
	}
	return nil
}
