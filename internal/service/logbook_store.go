package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/it-logbook-api/internal/domain"
	"github.com/it-logbook-api/internal/export"
	"github.com/it-logbook-api/internal/repository"
)

// State is the lifecycle state of a LogbookStore.
type State int

const (
	StateLoading State = iota
	StateReady
)

func (s State) String() string {
	if s == StateReady {
		return "ready"
	}
	return "loading"
}

// Source tells where a collection was loaded from.
type Source string

const (
	SourceStore Source = "store"
	SourceSeed  Source = "seed"
)

// KindReport is the load outcome for one record kind.
type KindReport struct {
	Source Source
	Count  int
	Err    error
}

// LoadReport is the outcome of LogbookStore.Load.
type LoadReport struct {
	WorkEntries   KindReport
	BackupEntries KindReport
}

// DepartmentCatalog answers whether a department name is known.
type DepartmentCatalog interface {
	Contains(ctx context.Context, name string) (bool, error)
}

// Options configures a LogbookStore.
type Options struct {
	Seed               Seed
	WorkExportPrefix   string
	BackupExportPrefix string
}

// LogbookStore holds the work and backup collections of one session.
//
// Collections are never modified in place: every mutation builds a new slice
// and swaps it in, so readers always see a complete collection. Store calls
// happen outside the lock; when two mutations race on the same id the last
// response to arrive wins.
type LogbookStore struct {
	entryRepo   repository.WorkEntryRepository
	backupRepo  repository.BackupEntryRepository
	departments DepartmentCatalog
	validate    *validator.Validate
	logger      *slog.Logger
	opts        Options

	mu      sync.RWMutex
	state   State
	entries []domain.WorkEntry
	backups []domain.BackupEntry
}

// NewLogbookStore creates a store in the Loading state. Call Load before use.
func NewLogbookStore(
	entryRepo repository.WorkEntryRepository,
	backupRepo repository.BackupEntryRepository,
	departments DepartmentCatalog,
	logger *slog.Logger,
	opts Options,
) *LogbookStore {
	if opts.WorkExportPrefix == "" {
		opts.WorkExportPrefix = "IT_Logbook"
	}
	if opts.BackupExportPrefix == "" {
		opts.BackupExportPrefix = "Backup_DB_Logs"
	}
	return &LogbookStore{
		entryRepo:   entryRepo,
		backupRepo:  backupRepo,
		departments: departments,
		validate:    NewValidator(),
		logger:      logger,
		opts:        opts,
		state:       StateLoading,
	}
}

// Load fetches both collections and moves the store to Ready. A kind whose
// fetch fails is replaced by its seed data without affecting the other kind.
func (s *LogbookStore) Load(ctx context.Context) LoadReport {
	var (
		wg      sync.WaitGroup
		report  LoadReport
		entries []domain.WorkEntry
		backups []domain.BackupEntry
	)
	seed := s.opts.Seed.clone()

	wg.Go(func() {
		fetched, err := s.entryRepo.FetchAll(ctx)
		if err != nil {
			s.logger.Warn("failed to load work entries, using seed data", slog.Any("error", err))
			entries = seed.WorkEntries
			report.WorkEntries = KindReport{Source: SourceSeed, Count: len(entries), Err: err}
			return
		}
		if n := resolveIDs(fetched, workEntryID); n > 0 {
			s.logger.Warn("reassigned colliding work entry ids", slog.Int("count", n))
		}
		entries = fetched
		report.WorkEntries = KindReport{Source: SourceStore, Count: len(entries)}
	})
	wg.Go(func() {
		fetched, err := s.backupRepo.FetchAll(ctx)
		if err != nil {
			s.logger.Warn("failed to load backup entries, using seed data", slog.Any("error", err))
			backups = seed.BackupEntries
			report.BackupEntries = KindReport{Source: SourceSeed, Count: len(backups), Err: err}
			return
		}
		if n := resolveIDs(fetched, backupEntryID); n > 0 {
			s.logger.Warn("reassigned colliding backup entry ids", slog.Int("count", n))
		}
		backups = fetched
		report.BackupEntries = KindReport{Source: SourceStore, Count: len(backups)}
	})
	wg.Wait()

	s.mu.Lock()
	s.entries = entries
	s.backups = backups
	s.state = StateReady
	s.mu.Unlock()

	s.logger.Info("logbook loaded",
		slog.String("work_entries_source", string(report.WorkEntries.Source)),
		slog.Int("work_entries", report.WorkEntries.Count),
		slog.String("backup_entries_source", string(report.BackupEntries.Source)),
		slog.Int("backup_entries", report.BackupEntries.Count),
	)
	return report
}

// State returns the current lifecycle state.
func (s *LogbookStore) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// WorkEntries returns the entries matching filter in collection order.
func (s *LogbookStore) WorkEntries(filter EntryFilter) []domain.WorkEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.WorkEntry, 0, len(s.entries))
	for _, e := range s.entries {
		if filter.Match(e) {
			result = append(result, e)
		}
	}
	return result
}

// WorkEntry returns the entry with the given application id.
func (s *LogbookStore) WorkEntry(id int64) (domain.WorkEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := indexOfWorkEntry(s.entries, id)
	if i < 0 {
		return domain.WorkEntry{}, fmt.Errorf("work entry %d: %w", id, domain.ErrNotFound)
	}
	return s.entries[i], nil
}

// NextWorkEntryID returns the id the next locally numbered work entry would get.
func (s *LogbookStore) NextWorkEntryID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return NextID(workEntryIDs(s.entries))
}

// AddWorkEntry validates draft, persists it and appends the stored record.
func (s *LogbookStore) AddWorkEntry(ctx context.Context, draft domain.WorkEntry) (domain.WorkEntry, error) {
	if err := s.checkReady(); err != nil {
		return domain.WorkEntry{}, err
	}
	if err := s.validateWorkEntry(ctx, draft); err != nil {
		return domain.WorkEntry{}, err
	}

	created, err := s.entryRepo.Create(ctx, draft)
	if err != nil {
		return domain.WorkEntry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if created.ID <= 0 || indexOfWorkEntry(s.entries, created.ID) >= 0 {
		created.ID = NextID(workEntryIDs(s.entries))
	}
	s.entries = append(slices.Clip(s.entries), created)
	return created, nil
}

// UpdateWorkEntry replaces the entry with the same id. The native row id is
// taken from the in-memory record; unknown ids fail before any store call.
func (s *LogbookStore) UpdateWorkEntry(ctx context.Context, entry domain.WorkEntry) (domain.WorkEntry, error) {
	if err := s.checkReady(); err != nil {
		return domain.WorkEntry{}, err
	}
	current, err := s.WorkEntry(entry.ID)
	if err != nil {
		return domain.WorkEntry{}, err
	}
	if err := s.validateWorkEntry(ctx, entry); err != nil {
		return domain.WorkEntry{}, err
	}

	entry.RowID = current.RowID
	if err := s.entryRepo.Update(ctx, entry); err != nil {
		return domain.WorkEntry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOfWorkEntry(s.entries, entry.ID); i >= 0 {
		updated := slices.Clone(s.entries)
		updated[i] = entry
		s.entries = updated
	}
	return entry, nil
}

// DeleteWorkEntry removes the entry with the given id.
func (s *LogbookStore) DeleteWorkEntry(ctx context.Context, id int64) error {
	if err := s.checkReady(); err != nil {
		return err
	}
	current, err := s.WorkEntry(id)
	if err != nil {
		return err
	}

	if err := s.entryRepo.Delete(ctx, current.RowID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = slices.DeleteFunc(slices.Clone(s.entries), func(e domain.WorkEntry) bool {
		return e.ID == id
	})
	return nil
}

// BackupEntries returns every backup entry in collection order.
func (s *LogbookStore) BackupEntries() []domain.BackupEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.backups)
}

// BackupEntry returns the backup entry with the given application id.
func (s *LogbookStore) BackupEntry(id int64) (domain.BackupEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := indexOfBackupEntry(s.backups, id)
	if i < 0 {
		return domain.BackupEntry{}, fmt.Errorf("backup entry %d: %w", id, domain.ErrNotFound)
	}
	return s.backups[i], nil
}

func (s *LogbookStore) NextBackupEntryID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return NextID(backupEntryIDs(s.backups))
}

func (s *LogbookStore) AddBackupEntry(ctx context.Context, draft domain.BackupEntry) (domain.BackupEntry, error) {
	if err := s.checkReady(); err != nil {
		return domain.BackupEntry{}, err
	}
	if err := s.validateStruct(draft); err != nil {
		return domain.BackupEntry{}, err
	}

	created, err := s.backupRepo.Create(ctx, draft)
	if err != nil {
		return domain.BackupEntry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if created.ID <= 0 || indexOfBackupEntry(s.backups, created.ID) >= 0 {
		created.ID = NextID(backupEntryIDs(s.backups))
	}
	s.backups = append(slices.Clip(s.backups), created)
	return created, nil
}

func (s *LogbookStore) UpdateBackupEntry(ctx context.Context, entry domain.BackupEntry) (domain.BackupEntry, error) {
	if err := s.checkReady(); err != nil {
		return domain.BackupEntry{}, err
	}
	current, err := s.BackupEntry(entry.ID)
	if err != nil {
		return domain.BackupEntry{}, err
	}
	if err := s.validateStruct(entry); err != nil {
		return domain.BackupEntry{}, err
	}

	entry.RowID = current.RowID
	if entry.CreatedAt == nil {
		entry.CreatedAt = current.CreatedAt
	}
	if err := s.backupRepo.Update(ctx, entry); err != nil {
		return domain.BackupEntry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOfBackupEntry(s.backups, entry.ID); i >= 0 {
		updated := slices.Clone(s.backups)
		updated[i] = entry
		s.backups = updated
	}
	return entry, nil
}

func (s *LogbookStore) DeleteBackupEntry(ctx context.Context, id int64) error {
	if err := s.checkReady(); err != nil {
		return err
	}
	current, err := s.BackupEntry(id)
	if err != nil {
		return err
	}

	if err := s.backupRepo.Delete(ctx, current.RowID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.backups = slices.DeleteFunc(slices.Clone(s.backups), func(e domain.BackupEntry) bool {
		return e.ID == id
	})
	return nil
}

// ExportWorkEntries renders the entries matching filter as a CSV document.
func (s *LogbookStore) ExportWorkEntries(filter EntryFilter, now time.Time) export.Document {
	return export.New(s.opts.WorkExportPrefix, now, s.WorkEntries(filter), export.WorkEntryColumns)
}

// ExportBackupEntries renders every backup entry as a CSV document.
func (s *LogbookStore) ExportBackupEntries(now time.Time) export.Document {
	return export.New(s.opts.BackupExportPrefix, now, s.BackupEntries(), export.BackupEntryColumns)
}

func (s *LogbookStore) checkReady() error {
	if s.State() != StateReady {
		return domain.ErrNotReady
	}
	return nil
}

func (s *LogbookStore) validateWorkEntry(ctx context.Context, e domain.WorkEntry) error {
	if err := s.validateStruct(e); err != nil {
		return err
	}
	if s.departments == nil {
		return nil
	}
	known, err := s.departments.Contains(ctx, e.Department)
	if err != nil {
		return err
	}
	if !known {
		return &domain.ValidationError{Err: fmt.Errorf("%q: %w", e.Department, domain.ErrUnknownDepartment)}
	}
	return nil
}

func (s *LogbookStore) validateStruct(v any) error {
	if err := s.validate.Struct(v); err != nil {
		return &domain.ValidationError{Err: err}
	}
	return nil
}

func indexOfWorkEntry(entries []domain.WorkEntry, id int64) int {
	return slices.IndexFunc(entries, func(e domain.WorkEntry) bool { return e.ID == id })
}

func indexOfBackupEntry(entries []domain.BackupEntry, id int64) int {
	return slices.IndexFunc(entries, func(e domain.BackupEntry) bool { return e.ID == id })
}

func workEntryIDs(entries []domain.WorkEntry) []int64 {
	ids := make([]int64, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}

func backupEntryIDs(entries []domain.BackupEntry) []int64 {
	ids := make([]int64, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}
