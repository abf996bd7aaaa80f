package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"kanucontrol/internal/domain"
	"kanucontrol/internal/repository"
)

const (
	driverName = "sqlite"

	// MemoryPath opens a private in-memory store
	MemoryPath = ":memory:"

	defaultBusyTimeout = 5 * time.Second
)

// Options control how a store is opened
type Options struct {
	// Reset deletes the store file and its journals before opening
	Reset bool
	// BusyTimeout is how long a connection waits for a lock held elsewhere
	BusyTimeout time.Duration
	// Now is the clock used for derived dates; defaults to time.Now
	Now func() time.Time
}

// Store is the KanuControl SQLite store. Writes are serialized; reads run
// concurrently on the connection pool and see the last committed state.
type Store struct {
	db      *sql.DB
	path    string
	now     func() time.Time
	writeMu sync.Mutex

	migrator *Migrator

	hookMu sync.RWMutex
	hooks  []func(repository.Change)

	Personen        *Table[domain.Person, int64]
	Vereine         *Table[domain.Verein, int64]
	Funktionen      *Table[domain.Funktion, int64]
	Mitglieder      *Table[domain.Mitglied, int64]
	Laender         *Table[domain.Land, string]
	KjpPositionen   *Table[domain.KjpPosition, int64]
	Veranstaltungen *Table[domain.Veranstaltung, int64]
	Teilnahmen      *Table[domain.Teilnahme, int64]
	Reisekosten     *Table[domain.Reisekosten, int64]
	Mitfahrer       *Table[domain.Mitfahrer, int64]
	Finanzen        *Table[domain.Finanzen, int64]
}

// Open opens or creates the store at path, applies pending migrations and
// seeds the default Funktion rows into an empty store.
func Open(ctx context.Context, path string, opts Options) (*Store, error) {
	if opts.BusyTimeout <= 0 {
		opts.BusyTimeout = defaultBusyTimeout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	memory := path == MemoryPath
	if !memory {
		if opts.Reset {
			if err := removeStoreFiles(path); err != nil {
				return nil, fmt.Errorf("failed to reset store: %w", err)
			}
			logInfof("store %s reset", path)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	db, err := sql.Open(driverName, dsn(path, opts.BusyTimeout))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if memory {
		// every connection would see its own empty database
		db.SetMaxOpenConns(1)
		db.SetConnMaxLifetime(0)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{
		db:       db,
		path:     path,
		now:      opts.Now,
		migrator: newMigrator(),
	}
	s.Personen = newPersonTable(s)
	s.Vereine = newVereinTable(s)
	s.Funktionen = newFunktionTable(s)
	s.Mitglieder = newMitgliedTable(s)
	s.Laender = newLandTable(s)
	s.KjpPositionen = newKjpPositionTable(s)
	s.Veranstaltungen = newVeranstaltungTable(s)
	s.Teilnahmen = newTeilnahmeTable(s)
	s.Reisekosten = newReisekostenTable(s)
	s.Mitfahrer = newMitfahrerTable(s)
	s.Finanzen = newFinanzenTable(s)

	if _, err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	if _, err := s.SeedFunktionen(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}

	logInfof("store opened at %s", path)
	return s, nil
}

func dsn(path string, busyTimeout time.Duration) string {
	return fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_txlock=immediate",
		path, busyTimeout.Milliseconds())
}

// Path returns the location the store was opened at
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate applies pending migrations and returns their names. Running it on
// an up to date store applies nothing.
func (s *Store) Migrate(ctx context.Context) ([]string, error) {
	s.writeMu.Lock()
	applied, err := s.migrator.Migrate(ctx, s.db)
	s.writeMu.Unlock()
	if err != nil {
		return nil, err
	}

	if len(applied) > 0 {
		s.notify(repository.Change{Type: repository.ChangeMigrated, Rows: int64(len(applied))})
	}
	return applied, nil
}

// OnCommit registers fn to be called after every committed write. Hooks run
// on the writing goroutine after the write lock was released.
func (s *Store) OnCommit(fn func(repository.Change)) {
	s.hookMu.Lock()
	defer s.hookMu.Unlock()
	s.hooks = append(s.hooks, fn)
}

func (s *Store) notify(change repository.Change) {
	s.hookMu.RLock()
	hooks := append([]func(repository.Change){}, s.hooks...)
	s.hookMu.RUnlock()

	for _, fn := range hooks {
		fn(change)
	}
}

// write runs fn in a transaction while holding the store's write lock and
// notifies the commit hooks once it committed.
func (s *Store) write(ctx context.Context, fn func(tx *sql.Tx) (repository.Change, error)) error {
	s.writeMu.Lock()
	change, err := s.inTx(ctx, fn)
	s.writeMu.Unlock()
	if err != nil {
		return err
	}

	if change.Type != "" {
		s.notify(change)
	}
	return nil
}

func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) (repository.Change, error)) (repository.Change, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return repository.Change{}, err
	}
	defer tx.Rollback()

	change, err := fn(tx)
	if err != nil {
		return repository.Change{}, err
	}
	if err := tx.Commit(); err != nil {
		return repository.Change{}, err
	}
	return change, nil
}

// ChangePersonStatus sets only the active flag of a person and stamps the
// status date with today
func (s *Store) ChangePersonStatus(ctx context.Context, id int64, active bool) (*domain.Person, error) {
	today := s.now().Format(domain.DateLayout)
	err := s.write(ctx, func(tx *sql.Tx) (repository.Change, error) {
		res, err := tx.ExecContext(ctx,
			`UPDATE person SET status = ?, statusDatum = ? WHERE id = ?`, active, today, id)
		if err != nil {
			return repository.Change{}, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return repository.Change{}, err
		}
		if n == 0 {
			return repository.Change{}, fmt.Errorf("person %d: %w", id, repository.ErrNotFound)
		}
		return repository.Change{Type: repository.ChangeSaved, Table: "person", Rows: n}, nil
	})
	if err != nil {
		return nil, storageErr("change status", "person", err)
	}
	return s.Personen.Get(ctx, id)
}

// Counts returns the number of rows per table
func (s *Store) Counts(ctx context.Context) (map[string]int64, error) {
	type counter interface {
		Name() string
		Count(ctx context.Context) (int64, error)
	}
	tables := []counter{
		s.Laender, s.Personen, s.Vereine, s.KjpPositionen, s.Funktionen, s.Veranstaltungen,
		s.Finanzen, s.Reisekosten, s.Mitfahrer, s.Mitglieder, s.Teilnahmen,
	}

	counts := make(map[string]int64, len(tables))
	for _, t := range tables {
		n, err := t.Count(ctx)
		if err != nil {
			return nil, err
		}
		counts[t.Name()] = n
	}
	return counts, nil
}
