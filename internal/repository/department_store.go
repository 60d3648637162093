package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

const (
	bucketSettings = "settings"    // key-scoped application settings
	keyDepartments = "departments" // JSON array of department names
)

// DepartmentStore keeps the department name list as reference data,
// independent of the row store.
type DepartmentStore interface {
	// Load returns the stored list; ok is false when nothing was saved yet.
	Load() (names []string, ok bool, err error)
	Save(names []string) error
	Close() error
}

type boltDepartmentStore struct {
	db *bbolt.DB
}

// NewBoltDepartmentStore opens (or creates) the bbolt file at path.
func NewBoltDepartmentStore(path string) (DepartmentStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open reference data store: %w", err)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketSettings))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &boltDepartmentStore{db: db}, nil
}

func (s *boltDepartmentStore) Load() ([]string, bool, error) {
	var (
		names []string
		found bool
	)
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(bucketSettings)).Get([]byte(keyDepartments))
		if data == nil {
			return nil
		}
		found = true
		return json.Unmarshal(data, &names)
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to load departments: %w", err)
	}
	return names, found, nil
}

func (s *boltDepartmentStore) Save(names []string) error {
	if names == nil {
		names = []string{}
	}
	data, err := json.Marshal(names)
	if err != nil {
		return err
	}
	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketSettings)).Put([]byte(keyDepartments), data)
	})
	if err != nil {
		return fmt.Errorf("failed to save departments: %w", err)
	}
	return nil
}

func (s *boltDepartmentStore) Close() error {
	return s.db.Close()
}
