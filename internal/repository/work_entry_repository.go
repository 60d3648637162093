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

// WorkEntryRepository persists work entries in the row store.
type WorkEntryRepository interface {
	FetchAll(ctx context.Context) ([]domain.WorkEntry, error)
	Create(ctx context.Context, entry domain.WorkEntry) (domain.WorkEntry, error)
	Update(ctx context.Context, entry domain.WorkEntry) error
	Delete(ctx context.Context, rowID uuid.UUID) error
}

type workEntryRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewWorkEntryRepository creates a GORM backed repository.
func NewWorkEntryRepository(db *gorm.DB) WorkEntryRepository {
	return &workEntryRepository{db: db, now: time.Now}
}

func (r *workEntryRepository) FetchAll(ctx context.Context) ([]domain.WorkEntry, error) {
	var rows []domain.WorkEntryRow
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, storeError("fetch", domain.KindWorkEntry, err)
	}

	entries := make([]domain.WorkEntry, len(rows))
	for i, row := range rows {
		entries[i] = mapping.WorkEntries.FromRow(row)
	}
	return entries, nil
}

func (r *workEntryRepository) Create(ctx context.Context, entry domain.WorkEntry) (domain.WorkEntry, error) {
	entry.RowID = uuid.Nil
	row := mapping.WorkEntries.ToRow(entry)

	result := r.db.WithContext(ctx).Create(&row)
	if result.Error != nil {
		return domain.WorkEntry{}, storeError("create", domain.KindWorkEntry, result.Error)
	}
	if result.RowsAffected == 0 || row.ID == uuid.Nil {
		return domain.WorkEntry{}, storeError("create", domain.KindWorkEntry, domain.ErrNoDataReturned)
	}

	return mapping.WorkEntries.FromRow(row), nil
}

func (r *workEntryRepository) Update(ctx context.Context, entry domain.WorkEntry) error {
	if entry.RowID == uuid.Nil {
		return fmt.Errorf("update %s %d: %w", domain.KindWorkEntry, entry.ID, domain.ErrNotFound)
	}

	row := mapping.WorkEntries.ToRow(entry)
	row.UpdatedAt = r.now()

	// Select forces NULL for emptied optional columns.
	columns := append(mapping.WorkEntries.Columns(), "updated_at")
	result := r.db.WithContext(ctx).
		Model(&domain.WorkEntryRow{ID: row.ID}).
		Select(columns).
		Updates(&row)
	if result.Error != nil {
		return storeError("update", domain.KindWorkEntry, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("update %s %d: %w", domain.KindWorkEntry, entry.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *workEntryRepository) Delete(ctx context.Context, rowID uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.WorkEntryRow{}, "id = ?", rowID)
	if result.Error != nil {
		return storeError("delete", domain.KindWorkEntry, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete %s %s: %w", domain.KindWorkEntry, rowID, domain.ErrNotFound)
	}
	return nil
}

func storeError(op string, kind domain.Kind, err error) error {
	return &domain.StoreError{Op: op, Kind: kind, Err: err}
}
