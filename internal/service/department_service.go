package service

import (
	"context"
	"slices"
	"strings"

	"github.com/it-logbook-api/internal/domain"
	"github.com/it-logbook-api/internal/repository"
)

// DepartmentService manages the department reference list.
// Every mutation reads the whole list, changes it and writes it back; two
// concurrent callers can overwrite each other (last write wins).
type DepartmentService interface {
	List(ctx context.Context) ([]string, error)
	Add(ctx context.Context, name string) ([]string, error)
	Rename(ctx context.Context, index int, name string) ([]string, error)
	Delete(ctx context.Context, index int) ([]string, error)
	Contains(ctx context.Context, name string) (bool, error)
}

type departmentService struct {
	store    repository.DepartmentStore
	defaults []string
}

// NewDepartmentService creates a service over store seeded with defaults.
func NewDepartmentService(store repository.DepartmentStore, defaults []string) DepartmentService {
	return &departmentService{
		store:    store,
		defaults: slices.Clone(defaults),
	}
}

// List returns the stored departments, persisting the defaults on first use.
func (s *departmentService) List(ctx context.Context) ([]string, error) {
	names, ok, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	if ok {
		return names, nil
	}

	names = slices.Clone(s.defaults)
	if err := s.store.Save(names); err != nil {
		return nil, err
	}
	return names, nil
}

func (s *departmentService) Add(ctx context.Context, name string) ([]string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrEmptyDepartmentName
	}

	names, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if slices.Contains(names, name) {
		return nil, domain.ErrDuplicateDepartment
	}

	updated := append(slices.Clone(names), name)
	if err := s.store.Save(updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Rename replaces the name at index. Existing work entries keep the old name.
func (s *departmentService) Rename(ctx context.Context, index int, name string) ([]string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrEmptyDepartmentName
	}

	names, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(names) {
		return nil, domain.ErrDepartmentIndex
	}
	if i := slices.Index(names, name); i >= 0 && i != index {
		return nil, domain.ErrDuplicateDepartment
	}

	updated := slices.Clone(names)
	updated[index] = name
	if err := s.store.Save(updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *departmentService) Delete(ctx context.Context, index int) ([]string, error) {
	names, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(names) {
		return nil, domain.ErrDepartmentIndex
	}

	updated := slices.Delete(slices.Clone(names), index, index+1)
	if err := s.store.Save(updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *departmentService) Contains(ctx context.Context, name string) (bool, error) {
	names, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(names, name), nil
}
