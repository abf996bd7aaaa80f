// Package repository defines the data access contracts for KanuControl.
//
// This package provides the repository abstraction layer for persisting and
// retrieving domain entities. The actual implementation is in the sqlite
// subpackage.
//
// # Repository Interface
//
// Repository[T, K] is implemented once per entity type: insert-or-update with
// Save, removal with DeleteByIDs and DeleteAll, and ordered full-table reads.
//
// # Change Notifications
//
// Every committed write produces a Change. The hub package turns these into
// fresh results for live queries.
//
// # Errors
//
// Validation failures are domain.ValidationError values and leave the store
// untouched. Failures of the store itself are *StorageError; a violated foreign
// key also matches ErrConstraint.
package repository
