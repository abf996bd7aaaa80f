package repository

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a keyed row does not exist
	ErrNotFound = errors.New("record not found")
	// ErrConstraint is matched by storage errors caused by a violated foreign key or NOT NULL constraint
	ErrConstraint = errors.New("constraint violation")
	// ErrUnknownMigration is returned when the store was migrated by a newer schema
	ErrUnknownMigration = errors.New("store has unknown migrations applied")
)

// StorageError wraps a failure of the underlying store during a single operation
type StorageError struct {
	Op    string
	Table string
	Err   error
}

func (e *StorageError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Table, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Ordering names a sort order of a full-table read
type Ordering string

const (
	OrderByID            Ordering = "byID"
	OrderByName          Ordering = "byName"
	OrderByAgeAscending  Ordering = "byAgeAscending"
	OrderByAgeDescending Ordering = "byAgeDescending"
	OrderByStatus        Ordering = "byStatus"
)

// Repository defines the data access contract of one entity type.
// K is the key type: int64 for surrogate ids, string for Land.
type Repository[T any, K comparable] interface {
	// Write operations
	Save(ctx context.Context, entity *T) error
	DeleteByIDs(ctx context.Context, ids []K) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)

	// Read operations
	Get(ctx context.Context, id K) (*T, error)
	List(ctx context.Context, ordering Ordering) ([]T, error)
	Count(ctx context.Context) (int64, error)
}

// ChangeType describes what a committed write did
type ChangeType string

const (
	ChangeSaved    ChangeType = "saved"
	ChangeDeleted  ChangeType = "deleted"
	ChangeSeeded   ChangeType = "seeded"
	ChangeMigrated ChangeType = "migrated"
)

// Change is emitted after every committed write transaction
type Change struct {
	Type  ChangeType `json:"type"`
	Table string     `json:"table"`
	Rows  int64      `json:"rows"`
}
