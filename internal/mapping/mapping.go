// Package mapping translates logbook records between the application shape
// and the row shape persisted by the store.
//
// Each kind has a Table: an ordered list of field pairs, each with the
// transform for both directions. Identity fields are handled by the table
// itself so that the projection of the native identifier lives in one place.
package mapping

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// Field pairs an application field with its storage column.
type Field[A, R any] struct {
	Name    string
	Column  string
	ToRow   func(a *A, r *R)
	FromRow func(r *R, a *A)
}

// Table is a bidirectional mapping between an application record A and a row R.
type Table[A, R any] struct {
	Fields   []Field[A, R]
	identity func(a *A, r *R, toRow bool)
}

// ToRow builds the storage row for a. The row identifier is copied only when
// a already carries one.
func (t Table[A, R]) ToRow(a A) R {
	var r R
	for _, f := range t.Fields {
		f.ToRow(&a, &r)
	}
	if t.identity != nil {
		t.identity(&a, &r, true)
	}
	return r
}

// FromRow builds the application record for r, including its integer id.
func (t Table[A, R]) FromRow(r R) A {
	var a A
	for _, f := range t.Fields {
		f.FromRow(&r, &a)
	}
	if t.identity != nil {
		t.identity(&a, &r, false)
	}
	return a
}

// Columns returns the storage columns in table order.
func (t Table[A, R]) Columns() []string {
	cols := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		cols[i] = f.Column
	}
	return cols
}

// ProjectID derives an application id from a native identifier by reading its
// leading 32 bits as an unsigned integer. The result is stable for a given row
// but distinct rows may share it; callers that keep a collection must check
// for collisions.
func ProjectID(id uuid.UUID) int64 {
	if id == uuid.Nil {
		return 0
	}
	return int64(binary.BigEndian.Uint32(id[:4]))
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
