package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	"kanucontrol/internal/repository"
)

// ============================================================================
// Null Type Conversion Helpers
// ============================================================================

// stringToNull stores empty strings as NULL
func stringToNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// int64PtrToNull stores nil references as NULL
func int64PtrToNull(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}

// nullString scans a nullable TEXT column, NULL becoming ""
type nullString struct{ dst *string }

func (n nullString) Scan(src any) error {
	var ns sql.NullString
	if err := ns.Scan(src); err != nil {
		return err
	}
	*n.dst = ns.String
	return nil
}

// nullInt scans a nullable INTEGER column, NULL becoming 0
type nullInt struct{ dst *int }

func (n nullInt) Scan(src any) error {
	var ni sql.NullInt64
	if err := ni.Scan(src); err != nil {
		return err
	}
	*n.dst = int(ni.Int64)
	return nil
}

// nullFloat scans a nullable REAL column, NULL becoming 0
type nullFloat struct{ dst *float64 }

func (n nullFloat) Scan(src any) error {
	var nf sql.NullFloat64
	if err := nf.Scan(src); err != nil {
		return err
	}
	*n.dst = nf.Float64
	return nil
}

// nullBool scans a nullable BOOLEAN column, NULL becoming false
type nullBool struct{ dst *bool }

func (n nullBool) Scan(src any) error {
	var nb sql.NullBool
	if err := nb.Scan(src); err != nil {
		return err
	}
	*n.dst = nb.Bool
	return nil
}

// nullInt64Ptr scans a nullable reference column, NULL becoming nil
type nullInt64Ptr struct{ dst **int64 }

func (n nullInt64Ptr) Scan(src any) error {
	var ni sql.NullInt64
	if err := ni.Scan(src); err != nil {
		return err
	}
	if !ni.Valid {
		*n.dst = nil
		return nil
	}
	v := ni.Int64
	*n.dst = &v
	return nil
}

// ============================================================================
// SQL Building Helpers
// ============================================================================

// quoteIdent quotes a table or column name
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// columnList renders quoted, comma separated column names
func columnList(columns []string) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = quoteIdent(c)
	}
	return strings.Join(quoted, ", ")
}

// placeholders renders n comma separated "?" markers
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// ============================================================================
// Error Helpers
// ============================================================================

// isConstraintErr reports whether err comes from a violated SQLite constraint
func isConstraintErr(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "FOREIGN KEY constraint failed") ||
		strings.Contains(msg, "NOT NULL constraint failed") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// storageErr wraps a store failure; sentinel errors of the repository package pass through
func storageErr(op, table string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return err
	}
	var se *repository.StorageError
	if errors.As(err, &se) {
		return err
	}
	if isConstraintErr(err) {
		err = fmt.Errorf("%w: %v", repository.ErrConstraint, err)
	}
	return &repository.StorageError{Op: op, Table: table, Err: err}
}

// removeStoreFiles deletes a store file and the journal files SQLite keeps next to it
func removeStoreFiles(path string) error {
	for _, suffix := range []string{"", "-wal", "-shm", "-journal"} {
		if err := os.Remove(path + suffix); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}
