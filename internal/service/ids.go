package service

import "github.com/it-logbook-api/internal/domain"

// NextID returns the id for the next record of a collection: one more than the
// largest existing id, or 1 for an empty collection. Two callers working from
// the same snapshot get the same answer, so it is only used for seed data and
// for resolving projected-id collisions inside the store.
func NextID(ids []int64) int64 {
	var maxID int64
	for _, id := range ids {
		if id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}

// resolveIDs rewrites ids that are non-positive or already used earlier in
// records, keeping the first occurrence of every id.
func resolveIDs[T any](records []T, id func(*T) *int64) int {
	seen := make(map[int64]struct{}, len(records))
	var maxID int64
	var collided []int

	for i := range records {
		p := id(&records[i])
		if _, dup := seen[*p]; dup || *p <= 0 {
			collided = append(collided, i)
			continue
		}
		seen[*p] = struct{}{}
		if *p > maxID {
			maxID = *p
		}
	}

	for _, i := range collided {
		maxID++
		*id(&records[i]) = maxID
	}
	return len(collided)
}

func workEntryID(e *domain.WorkEntry) *int64 { return &e.ID }
func backupEntryID(e *domain.BackupEntry) *int64 { return &e.ID }
