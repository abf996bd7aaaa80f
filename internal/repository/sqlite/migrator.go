package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"kanucontrol/internal/repository"
)

// Migration is one named, ordered schema step
type Migration struct {
	Name string
	Up   func(ctx context.Context, tx *sql.Tx) error
}

// Migrator applies registered migrations in registration order and records
// every applied name in schema_migrations.
type Migrator struct {
	migrations []Migration

	// EraseOnSchemaChange drops the whole store and migrates again when the
	// applied migrations no longer produce the schema found in the store.
	// Only builds tagged dev enable it.
	EraseOnSchemaChange bool
}

// Register appends a migration
func (m *Migrator) Register(name string, up func(ctx context.Context, tx *sql.Tx) error) {
	m.migrations = append(m.migrations, Migration{Name: name, Up: up})
}

// Names returns the registered migration names in order
func (m *Migrator) Names() []string {
	names := make([]string, len(m.migrations))
	for i, mig := range m.migrations {
		names[i] = mig.Name
	}
	return names
}

const createMigrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	identifier TEXT NOT NULL PRIMARY KEY,
	applied_at TEXT NOT NULL
)`

func (m *Migrator) check() error {
	seen := make(map[string]bool, len(m.migrations))
	for i, mig := range m.migrations {
		if mig.Name == "" {
			return fmt.Errorf("migration %d has no name", i)
		}
		if mig.Up == nil {
			return fmt.Errorf("migration %s has no body", mig.Name)
		}
		if seen[mig.Name] {
			return fmt.Errorf("migration %s registered twice", mig.Name)
		}
		seen[mig.Name] = true
	}
	return nil
}

// Migrate applies every pending migration inside a single transaction and
// returns the names it applied. A failing step rolls back the whole run.
func (m *Migrator) Migrate(ctx context.Context, db *sql.DB) ([]string, error) {
	if err := m.check(); err != nil {
		return nil, err
	}

	if m.EraseOnSchemaChange {
		changed, err := m.schemaChanged(ctx, db)
		if err != nil {
			return nil, fmt.Errorf("compare schema: %w", err)
		}
		if changed {
			logInfof("schema changed, erasing store")
			if err := eraseSchema(ctx, db); err != nil {
				return nil, fmt.Errorf("erase store: %w", err)
			}
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	applied, err := m.migrateTx(ctx, tx, nil)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	for _, name := range applied {
		logInfof("applied migration %s", name)
	}
	return applied, nil
}

// migrateTx runs the pending migrations on tx. When only is non-nil just the
// names it contains are considered.
func (m *Migrator) migrateTx(ctx context.Context, tx *sql.Tx, only map[string]bool) ([]string, error) {
	if _, err := tx.ExecContext(ctx, createMigrationsTable); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}

	done, err := appliedMigrations(ctx, tx)
	if err != nil {
		return nil, err
	}

	registered := make(map[string]bool, len(m.migrations))
	for _, mig := range m.migrations {
		registered[mig.Name] = true
	}
	var unknown []string
	for _, name := range done {
		if !registered[name] {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("%w: %s", repository.ErrUnknownMigration, strings.Join(unknown, ", "))
	}

	isDone := make(map[string]bool, len(done))
	for _, name := range done {
		isDone[name] = true
	}

	var applied []string
	now := time.Now().UTC().Format(time.RFC3339)
	for _, mig := range m.migrations {
		if isDone[mig.Name] || (only != nil && !only[mig.Name]) {
			continue
		}
		if err := mig.Up(ctx, tx); err != nil {
			return nil, fmt.Errorf("migration %s: %w", mig.Name, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO schema_migrations (identifier, applied_at) VALUES (?, ?)`, mig.Name, now); err != nil {
			return nil, fmt.Errorf("record migration %s: %w", mig.Name, err)
		}
		applied = append(applied, mig.Name)
	}
	return applied, nil
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func appliedMigrations(ctx context.Context, q queryer) ([]string, error) {
	rows, err := q.QueryContext(ctx, `SELECT identifier FROM schema_migrations ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func hasMigrationsTable(ctx context.Context, q queryer) (bool, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = 'schema_migrations'`)
	if err != nil {
		return false, err
	}
	defer rows.Close()
	return rows.Next(), rows.Err()
}

// schemaDump renders the store's schema objects in a stable order
func schemaDump(ctx context.Context, q queryer) (string, error) {
	rows, err := q.QueryContext(ctx, `SELECT type, name, tbl_name, COALESCE(sql, '')
		FROM sqlite_master
		WHERE name NOT LIKE 'sqlite_%' AND name <> 'schema_migrations'
		ORDER BY type, name`)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	var b strings.Builder
	for rows.Next() {
		var typ, name, tbl, ddl string
		if err := rows.Scan(&typ, &name, &tbl, &ddl); err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "%s|%s|%s|%s\n", typ, name, tbl, ddl)
	}
	return b.String(), rows.Err()
}

// schemaChanged rebuilds the applied migrations in a scratch in-memory
// database and compares the result with the live store
func (m *Migrator) schemaChanged(ctx context.Context, db *sql.DB) (bool, error) {
	exists, err := hasMigrationsTable(ctx, db)
	if err != nil {
		return false, err
	}
	if !exists {
		dump, err := schemaDump(ctx, db)
		if err != nil {
			return false, err
		}
		// objects without bookkeeping were not created by this migrator
		return dump != "", nil
	}

	done, err := appliedMigrations(ctx, db)
	if err != nil {
		return false, err
	}
	only := make(map[string]bool, len(done))
	for _, name := range done {
		if !m.isRegistered(name) {
			return true, nil
		}
		only[name] = true
	}

	scratch, err := sql.Open(driverName, ":memory:?_pragma=foreign_keys(1)")
	if err != nil {
		return false, err
	}
	defer scratch.Close()
	scratch.SetMaxOpenConns(1)

	tx, err := scratch.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	if _, err := m.migrateTx(ctx, tx, only); err != nil {
		return false, err
	}

	want, err := schemaDump(ctx, tx)
	if err != nil {
		return false, err
	}
	got, err := schemaDump(ctx, db)
	if err != nil {
		return false, err
	}
	if want != got {
		logDebugf("schema differs:\nwant:\n%s\ngot:\n%s", want, got)
		return true, nil
	}
	return false, nil
}

func (m *Migrator) isRegistered(name string) bool {
	for _, mig := range m.migrations {
		if mig.Name == name {
			return true
		}
	}
	return false
}

// eraseSchema drops every schema object of the store, newest first
func eraseSchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `PRAGMA defer_foreign_keys = ON`); err != nil {
		return err
	}

	rows, err := tx.QueryContext(ctx, `SELECT type, name FROM sqlite_master
		WHERE type IN ('table', 'view', 'trigger') AND name NOT LIKE 'sqlite_%'
		ORDER BY rowid DESC`)
	if err != nil {
		return err
	}
	type object struct{ typ, name string }
	var objects []object
	for rows.Next() {
		var o object
		if err := rows.Scan(&o.typ, &o.name); err != nil {
			rows.Close()
			return err
		}
		objects = append(objects, o)
	}
	if err := rows.Close(); err != nil {
		return err
	}

	// triggers and views first so no dropped table is still referenced
	for _, pass := range []string{"trigger", "view", "table"} {
		for _, o := range objects {
			if o.typ != pass {
				continue
			}
			stmt := fmt.Sprintf("DROP %s IF EXISTS %s", strings.ToUpper(o.typ), quoteIdent(o.name))
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("drop %s %s: %w", o.typ, o.name, err)
			}
		}
	}

	return tx.Commit()
}
