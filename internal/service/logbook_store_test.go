package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/it-logbook-api/internal/domain"
	"github.com/it-logbook-api/internal/mapping"
	"github.com/it-logbook-api/internal/service"
)

var errUnreachable = errors.New("connection refused")

type fakeWorkRepo struct {
	mu        sync.Mutex
	rows      []domain.WorkEntry
	fetchErr  error
	createErr error
	updateErr error
	deleteErr error
	calls     int
	nextRowID func() uuid.UUID
}

func (f *fakeWorkRepo) FetchAll(ctx context.Context) ([]domain.WorkEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.fetchErr != nil {
		return nil, &domain.StoreError{Op: "fetch", Kind: domain.KindWorkEntry, Err: f.fetchErr}
	}
	return append([]domain.WorkEntry(nil), f.rows...), nil
}

func (f *fakeWorkRepo) Create(ctx context.Context, entry domain.WorkEntry) (domain.WorkEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.createErr != nil {
		return domain.WorkEntry{}, &domain.StoreError{Op: "create", Kind: domain.KindWorkEntry, Err: f.createErr}
	}
	id := uuid.New()
	if f.nextRowID != nil {
		id = f.nextRowID()
	}
	entry.RowID = id
	entry.ID = mapping.ProjectID(id)
	f.rows = append(f.rows, entry)
	return entry, nil
}

func (f *fakeWorkRepo) Update(ctx context.Context, entry domain.WorkEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.updateErr != nil {
		return &domain.StoreError{Op: "update", Kind: domain.KindWorkEntry, Err: f.updateErr}
	}
	for i := range f.rows {
		if f.rows[i].RowID == entry.RowID {
			f.rows[i] = entry
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeWorkRepo) Delete(ctx context.Context, rowID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.deleteErr != nil {
		return &domain.StoreError{Op: "delete", Kind: domain.KindWorkEntry, Err: f.deleteErr}
	}
	for i := range f.rows {
		if f.rows[i].RowID == rowID {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeWorkRepo) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeBackupRepo struct {
	mu        sync.Mutex
	rows      []domain.BackupEntry
	fetchErr  error
	createErr error
	calls     int
}

func (f *fakeBackupRepo) FetchAll(ctx context.Context) ([]domain.BackupEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.fetchErr != nil {
		return nil, &domain.StoreError{Op: "fetch", Kind: domain.KindBackupEntry, Err: f.fetchErr}
	}
	return append([]domain.BackupEntry(nil), f.rows...), nil
}

func (f *fakeBackupRepo) Create(ctx context.Context, entry domain.BackupEntry) (domain.BackupEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.createErr != nil {
		return domain.BackupEntry{}, &domain.StoreError{Op: "create", Kind: domain.KindBackupEntry, Err: f.createErr}
	}
	entry.RowID = uuid.New()
	entry.ID = mapping.ProjectID(entry.RowID)
	f.rows = append(f.rows, entry)
	return entry, nil
}

func (f *fakeBackupRepo) Update(ctx context.Context, entry domain.BackupEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	for i := range f.rows {
		if f.rows[i].RowID == entry.RowID {
			f.rows[i] = entry
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeBackupRepo) Delete(ctx context.Context, rowID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	for i := range f.rows {
		if f.rows[i].RowID == rowID {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type staticCatalog []string

func (c staticCatalog) Contains(ctx context.Context, name string) (bool, error) {
	for _, n := range c {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func day(s string) time.Time {
	d, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func draftEntry() domain.WorkEntry {
	return domain.WorkEntry{
		StartDate:      day("2024-04-01"),
		WorkType:       "Laptop Setup",
		Department:     "HR",
		PersonInCharge: "Rina",
		Status:         domain.StatusPending,
	}
}

func newStore(t *testing.T, work *fakeWorkRepo, backups *fakeBackupRepo) *service.LogbookStore {
	t.Helper()
	store := service.NewLogbookStore(work, backups, staticCatalog{"HR", "Finance"}, testLogger(), service.Options{
		Seed: service.DefaultSeed(),
	})
	return store
}

func loadedStore(t *testing.T, work *fakeWorkRepo, backups *fakeBackupRepo) *service.LogbookStore {
	t.Helper()
	store := newStore(t, work, backups)
	store.Load(context.Background())
	require.Equal(t, service.StateReady, store.State())
	return store
}

func TestLoad_BothKindsFromStore(t *testing.T) {
	rowID := uuid.New()
	work := &fakeWorkRepo{rows: []domain.WorkEntry{{ID: mapping.ProjectID(rowID), RowID: rowID, WorkType: "Audit"}}}
	backups := &fakeBackupRepo{}
	store := newStore(t, work, backups)

	assert.Equal(t, service.StateLoading, store.State())
	report := store.Load(context.Background())

	assert.Equal(t, service.StateReady, store.State())
	assert.Equal(t, service.SourceStore, report.WorkEntries.Source)
	assert.Equal(t, 1, report.WorkEntries.Count)
	assert.Equal(t, service.SourceStore, report.BackupEntries.Source)
	assert.NoError(t, report.WorkEntries.Err)
	assert.Len(t, store.WorkEntries(service.EntryFilter{}), 1)
}

func TestLoad_OneKindFailsIndependently(t *testing.T) {
	backupRow := uuid.New()
	work := &fakeWorkRepo{fetchErr: errUnreachable}
	backups := &fakeBackupRepo{rows: []domain.BackupEntry{{
		ID: mapping.ProjectID(backupRow), RowID: backupRow, Date: day("2024-03-01"),
		Shift: domain.ShiftMorning, PersonInCharge: "Budi",
	}}}
	store := newStore(t, work, backups)

	report := store.Load(context.Background())

	assert.Equal(t, service.StateReady, store.State())
	assert.Equal(t, service.SourceSeed, report.WorkEntries.Source)
	assert.ErrorIs(t, report.WorkEntries.Err, errUnreachable)
	assert.Equal(t, service.SourceStore, report.BackupEntries.Source)

	entries := store.WorkEntries(service.EntryFilter{})
	require.Len(t, entries, len(service.DefaultSeed().WorkEntries))
	assert.Equal(t, "Network Maintenance", entries[0].WorkType)

	got := store.BackupEntries()
	require.Len(t, got, 1)
	assert.Equal(t, backupRow, got[0].RowID)
}

func TestLoad_ResolvesProjectedIDCollisions(t *testing.T) {
	a := uuid.MustParse("0000000a-0000-4000-8000-000000000001")
	b := uuid.MustParse("0000000a-0000-4000-8000-000000000002")
	work := &fakeWorkRepo{rows: []domain.WorkEntry{
		{ID: mapping.ProjectID(a), RowID: a, WorkType: "first"},
		{ID: mapping.ProjectID(b), RowID: b, WorkType: "second"},
	}}
	store := loadedStore(t, work, &fakeBackupRepo{})

	entries := store.WorkEntries(service.EntryFilter{})
	require.Len(t, entries, 2)
	assert.Equal(t, int64(10), entries[0].ID)
	assert.Equal(t, int64(11), entries[1].ID)
}

func TestMutationsBeforeLoad(t *testing.T) {
	work := &fakeWorkRepo{}
	store := newStore(t, work, &fakeBackupRepo{})

	_, err := store.AddWorkEntry(context.Background(), draftEntry())
	assert.ErrorIs(t, err, domain.ErrNotReady)
	assert.ErrorIs(t, store.DeleteWorkEntry(context.Background(), 1), domain.ErrNotReady)
	assert.Equal(t, 0, work.callCount())
}

func TestAddWorkEntry(t *testing.T) {
	work := &fakeWorkRepo{}
	store := loadedStore(t, work, &fakeBackupRepo{})

	created, err := store.AddWorkEntry(context.Background(), draftEntry())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.RowID)
	assert.Equal(t, mapping.ProjectID(created.RowID), created.ID)

	got, err := store.WorkEntry(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestAddWorkEntry_CollidingProjectionGetsNextID(t *testing.T) {
	fixed := uuid.MustParse("00000001-0000-4000-8000-000000000000")
	work := &fakeWorkRepo{nextRowID: func() uuid.UUID { return fixed }}
	store := loadedStore(t, work, &fakeBackupRepo{})

	first, err := store.AddWorkEntry(context.Background(), draftEntry())
	require.NoError(t, err)
	fixed = uuid.MustParse("00000001-0000-4000-8000-000000000001")
	second, err := store.AddWorkEntry(context.Background(), draftEntry())
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
}

func TestAddWorkEntry_NoDataReturned(t *testing.T) {
	work := &fakeWorkRepo{createErr: domain.ErrNoDataReturned}
	store := loadedStore(t, work, &fakeBackupRepo{})
	before := store.WorkEntries(service.EntryFilter{})

	_, err := store.AddWorkEntry(context.Background(), draftEntry())

	assert.ErrorIs(t, err, domain.ErrNoDataReturned)
	assert.Equal(t, before, store.WorkEntries(service.EntryFilter{}))
}

func TestAddWorkEntry_ValidationFailsBeforeStore(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(e *domain.WorkEntry)
		target error
	}{
		{"missing work type", func(e *domain.WorkEntry) { e.WorkType = "" }, domain.ErrValidation},
		{"missing start date", func(e *domain.WorkEntry) { e.StartDate = time.Time{} }, domain.ErrValidation},
		{"missing person in charge", func(e *domain.WorkEntry) { e.PersonInCharge = "" }, domain.ErrValidation},
		{"unknown status", func(e *domain.WorkEntry) { e.Status = "Done" }, domain.ErrValidation},
		{"unknown department", func(e *domain.WorkEntry) { e.Department = "Legal" }, domain.ErrUnknownDepartment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			work := &fakeWorkRepo{}
			store := loadedStore(t, work, &fakeBackupRepo{})
			calls := work.callCount()

			entry := draftEntry()
			tt.mutate(&entry)
			_, err := store.AddWorkEntry(context.Background(), entry)

			assert.ErrorIs(t, err, tt.target)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Equal(t, calls, work.callCount())
		})
	}
}

func TestUpdateWorkEntry(t *testing.T) {
	work := &fakeWorkRepo{}
	store := loadedStore(t, work, &fakeBackupRepo{})
	created, err := store.AddWorkEntry(context.Background(), draftEntry())
	require.NoError(t, err)

	end := day("2024-04-03")
	change := created
	change.RowID = uuid.Nil
	change.Status = domain.StatusCompleted
	change.EndDate = &end

	updated, err := store.UpdateWorkEntry(context.Background(), change)
	require.NoError(t, err)
	assert.Equal(t, created.RowID, updated.RowID)

	got, err := store.WorkEntry(created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, got.Status)
	assert.False(t, got.Open())
}

func TestUpdateWorkEntry_UnknownIDIssuesNoStoreCall(t *testing.T) {
	work := &fakeWorkRepo{}
	store := loadedStore(t, work, &fakeBackupRepo{})
	calls := work.callCount()

	entry := draftEntry()
	entry.ID = 999
	_, err := store.UpdateWorkEntry(context.Background(), entry)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, calls, work.callCount())
}

func TestUpdateWorkEntry_StoreFailureLeavesCollection(t *testing.T) {
	work := &fakeWorkRepo{}
	store := loadedStore(t, work, &fakeBackupRepo{})
	created, err := store.AddWorkEntry(context.Background(), draftEntry())
	require.NoError(t, err)

	work.updateErr = errUnreachable
	change := created
	change.WorkType = "Changed"
	_, err = store.UpdateWorkEntry(context.Background(), change)

	var storeErr *domain.StoreError
	require.True(t, errors.As(err, &storeErr))
	got, _ := store.WorkEntry(created.ID)
	assert.Equal(t, "Laptop Setup", got.WorkType)
}

func TestDeleteWorkEntry(t *testing.T) {
	work := &fakeWorkRepo{}
	store := loadedStore(t, work, &fakeBackupRepo{})
	created, err := store.AddWorkEntry(context.Background(), draftEntry())
	require.NoError(t, err)

	require.NoError(t, store.DeleteWorkEntry(context.Background(), created.ID))
	_, err = store.WorkEntry(created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	calls := work.callCount()
	assert.ErrorIs(t, store.DeleteWorkEntry(context.Background(), created.ID), domain.ErrNotFound)
	assert.Equal(t, calls, work.callCount())
}

func TestDeleteWorkEntry_StoreFailureKeepsEntry(t *testing.T) {
	work := &fakeWorkRepo{}
	store := loadedStore(t, work, &fakeBackupRepo{})
	created, err := store.AddWorkEntry(context.Background(), draftEntry())
	require.NoError(t, err)

	work.deleteErr = errUnreachable
	assert.ErrorIs(t, store.DeleteWorkEntry(context.Background(), created.ID), errUnreachable)

	_, err = store.WorkEntry(created.ID)
	assert.NoError(t, err)
}

func TestSnapshotsAreNotAffectedByLaterMutations(t *testing.T) {
	work := &fakeWorkRepo{}
	store := loadedStore(t, work, &fakeBackupRepo{})
	snapshot := store.WorkEntries(service.EntryFilter{})

	_, err := store.AddWorkEntry(context.Background(), draftEntry())
	require.NoError(t, err)

	assert.Len(t, snapshot, 0)
	assert.Len(t, store.WorkEntries(service.EntryFilter{}), 1)
}

func TestNextIDs(t *testing.T) {
	store := loadedStore(t, &fakeWorkRepo{fetchErr: errUnreachable}, &fakeBackupRepo{})

	assert.Equal(t, int64(4), store.NextWorkEntryID())
	assert.Equal(t, int64(1), store.NextBackupEntryID())
}

func TestBackupEntryLifecycle(t *testing.T) {
	backups := &fakeBackupRepo{}
	store := loadedStore(t, &fakeWorkRepo{}, backups)

	created, err := store.AddBackupEntry(context.Background(), domain.BackupEntry{
		Date: day("2024-03-01"), Shift: domain.ShiftMorning, PersonInCharge: "Budi",
	})
	require.NoError(t, err)

	_, err = store.AddBackupEntry(context.Background(), domain.BackupEntry{
		Date: day("2024-03-01"), Shift: "Night", PersonInCharge: "Budi",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	change := created
	change.Shift = domain.ShiftEvening
	_, err = store.UpdateBackupEntry(context.Background(), change)
	require.NoError(t, err)

	got, err := store.BackupEntry(created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ShiftEvening, got.Shift)

	require.NoError(t, store.DeleteBackupEntry(context.Background(), created.ID))
	assert.Empty(t, store.BackupEntries())
}

func TestAddBackupEntry_StoreFailure(t *testing.T) {
	backups := &fakeBackupRepo{createErr: errUnreachable}
	store := loadedStore(t, &fakeWorkRepo{}, backups)

	_, err := store.AddBackupEntry(context.Background(), domain.BackupEntry{
		Date: day("2024-03-01"), Shift: domain.ShiftMorning, PersonInCharge: "Budi",
	})

	assert.ErrorIs(t, err, errUnreachable)
	assert.Empty(t, store.BackupEntries())
}

func TestExportWorkEntries(t *testing.T) {
	store := loadedStore(t, &fakeWorkRepo{fetchErr: errUnreachable}, &fakeBackupRepo{})
	now := time.Date(2024, 5, 6, 12, 0, 0, 0, time.UTC)

	doc := store.ExportWorkEntries(service.EntryFilter{Status: domain.StatusInProgress}, now)

	assert.Equal(t, "IT_Logbook_2024-05-06.csv", doc.Filename)
	lines := strings.Split(string(doc.Body), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], `"Software Installation"`)
	assert.Contains(t, lines[1], `"-"`)

	again := store.ExportWorkEntries(service.EntryFilter{Status: domain.StatusInProgress}, now)
	assert.Equal(t, doc, again)
}

func TestExportBackupEntries(t *testing.T) {
	store := loadedStore(t, &fakeWorkRepo{}, &fakeBackupRepo{})

	doc := store.ExportBackupEntries(time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, "Backup_DB_Logs_2024-05-06.csv", doc.Filename)
	assert.Equal(t, "No,Date,Shift,PIC", string(doc.Body))
}
