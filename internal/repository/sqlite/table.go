package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"kanucontrol/internal/repository"
)

// Table implements repository.Repository for one entity type.
//
// Rows with a zero surrogate key are inserted and receive the assigned id;
// rows with a key are updated. Tables keyed by a natural key (autoKey false)
// are written with an upsert.
type Table[T any, K comparable] struct {
	store   *Store
	name    string
	key     string
	autoKey bool
	columns []string

	// orderings maps a named sort order to its ORDER BY clause. The empty
	// Ordering and OrderByID always sort by key.
	orderings map[repository.Ordering]string

	keyOf  func(*T) K
	setKey func(*T, int64)
	values func(*T) []any
	dest   func(*T) []any

	// prepare validates a row and fills derived columns before it is written
	prepare func(*T, time.Time) error
}

var _ repository.Repository[struct{}, int64] = (*Table[struct{}, int64])(nil)

// Name returns the SQL table name
func (t *Table[T, K]) Name() string {
	return t.name
}

// Orderings returns the named sort orders the table supports besides key order
func (t *Table[T, K]) Orderings() []repository.Ordering {
	out := make([]repository.Ordering, 0, len(t.orderings))
	for o := range t.orderings {
		out = append(out, o)
	}
	return out
}

func (t *Table[T, K]) selectSQL() string {
	return fmt.Sprintf("SELECT %s, %s FROM %s", quoteIdent(t.key), columnList(t.columns), quoteIdent(t.name))
}

func (t *Table[T, K]) insertSQL() string {
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(t.name), columnList(t.columns), placeholders(len(t.columns)))
}

func (t *Table[T, K]) updateSQL() string {
	sets := make([]string, len(t.columns))
	for i, c := range t.columns {
		sets[i] = quoteIdent(c) + " = ?"
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?", quoteIdent(t.name), strings.Join(sets, ", "), quoteIdent(t.key))
}

func (t *Table[T, K]) upsertSQL() string {
	sets := make([]string, len(t.columns))
	for i, c := range t.columns {
		sets[i] = fmt.Sprintf("%s = excluded.%s", quoteIdent(c), quoteIdent(c))
	}
	return fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES (%s) ON CONFLICT(%s) DO UPDATE SET %s",
		quoteIdent(t.name), quoteIdent(t.key), columnList(t.columns), placeholders(len(t.columns)+1),
		quoteIdent(t.key), strings.Join(sets, ", "))
}

// Save validates the entity, fills its derived columns and writes it in its own
// transaction. The caller's value is only updated once the write committed.
func (t *Table[T, K]) Save(ctx context.Context, entity *T) error {
	if entity == nil {
		return fmt.Errorf("save %s: nil entity", t.name)
	}
	row := *entity
	if t.prepare != nil {
		if err := t.prepare(&row, t.store.now()); err != nil {
			return err
		}
	}

	err := t.store.write(ctx, func(tx *sql.Tx) (repository.Change, error) {
		if err := t.saveTx(ctx, tx, &row); err != nil {
			return repository.Change{}, err
		}
		return repository.Change{Type: repository.ChangeSaved, Table: t.name, Rows: 1}, nil
	})
	if err != nil {
		logErrorf("save %s failed: %v", t.name, err)
		return storageErr("save", t.name, err)
	}

	*entity = row
	logDebugf("saved %s %v", t.name, t.keyOf(entity))
	return nil
}

func (t *Table[T, K]) saveTx(ctx context.Context, tx *sql.Tx, row *T) error {
	if !t.autoKey {
		args := append([]any{t.keyOf(row)}, t.values(row)...)
		_, err := tx.ExecContext(ctx, t.upsertSQL(), args...)
		return err
	}

	var zero K
	if t.keyOf(row) == zero {
		res, err := tx.ExecContext(ctx, t.insertSQL(), t.values(row)...)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		t.setKey(row, id)
		return nil
	}

	args := append(t.values(row), t.keyOf(row))
	res, err := tx.ExecContext(ctx, t.updateSQL(), args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %v: %w", t.name, t.keyOf(row), repository.ErrNotFound)
	}
	return nil
}

// DeleteByIDs removes the rows with the given keys and returns how many were
// removed from this table. Rows removed by cascading foreign keys are not counted.
func (t *Table[T, K]) DeleteByIDs(ctx context.Context, ids []K) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE %s IN (%s)", quoteIdent(t.name), quoteIdent(t.key), placeholders(len(ids)))
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	return t.delete(ctx, query, args...)
}

// DeleteAll removes every row of the table
func (t *Table[T, K]) DeleteAll(ctx context.Context) (int64, error) {
	return t.delete(ctx, "DELETE FROM "+quoteIdent(t.name))
}

func (t *Table[T, K]) delete(ctx context.Context, query string, args ...any) (int64, error) {
	var deleted int64
	err := t.store.write(ctx, func(tx *sql.Tx) (repository.Change, error) {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return repository.Change{}, err
		}
		deleted, err = res.RowsAffected()
		if err != nil {
			return repository.Change{}, err
		}
		return repository.Change{Type: repository.ChangeDeleted, Table: t.name, Rows: deleted}, nil
	})
	if err != nil {
		logErrorf("delete from %s failed: %v", t.name, err)
		return 0, storageErr("delete", t.name, err)
	}
	logDebugf("deleted %d rows from %s", deleted, t.name)
	return deleted, nil
}

// Get returns the row with the given key or repository.ErrNotFound
func (t *Table[T, K]) Get(ctx context.Context, id K) (*T, error) {
	query := t.selectSQL() + fmt.Sprintf(" WHERE %s = ?", quoteIdent(t.key))

	var row T
	err := t.store.db.QueryRowContext(ctx, query, id).Scan(t.dest(&row)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s %v: %w", t.name, id, repository.ErrNotFound)
	}
	if err != nil {
		return nil, storageErr("get", t.name, err)
	}
	return &row, nil
}

// List returns all rows in the given order. The result is read by a single
// statement and therefore reflects one committed state of the store.
func (t *Table[T, K]) List(ctx context.Context, ordering repository.Ordering) ([]T, error) {
	orderBy, err := t.orderBy(ordering)
	if err != nil {
		return nil, err
	}

	rows, err := t.store.db.QueryContext(ctx, t.selectSQL()+" ORDER BY "+orderBy)
	if err != nil {
		return nil, storageErr("list", t.name, err)
	}
	defer rows.Close()

	result := []T{}
	for rows.Next() {
		var row T
		if err := rows.Scan(t.dest(&row)...); err != nil {
			return nil, storageErr("list", t.name, err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list", t.name, err)
	}
	return result, nil
}

func (t *Table[T, K]) orderBy(ordering repository.Ordering) (string, error) {
	if ordering == "" || ordering == repository.OrderByID {
		return quoteIdent(t.key), nil
	}
	clause, ok := t.orderings[ordering]
	if !ok {
		return "", fmt.Errorf("list %s: unknown ordering %q", t.name, ordering)
	}
	return clause, nil
}

// Count returns the number of rows in the table
func (t *Table[T, K]) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := t.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+quoteIdent(t.name)).Scan(&n); err != nil {
		return 0, storageErr("count", t.name, err)
	}
	return n, nil
}
