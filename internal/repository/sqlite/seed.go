package sqlite

import (
	"context"
	"database/sql"

	"kanucontrol/internal/domain"
	"kanucontrol/internal/repository"
)

// SeedFunktionen inserts the default Funktion rows when the funktion table is
// empty and returns how many rows it inserted. A store that already holds any
// Funktion is left alone.
func (s *Store) SeedFunktionen(ctx context.Context) (int, error) {
	var inserted int
	err := s.write(ctx, func(tx *sql.Tx) (repository.Change, error) {
		var existing int64
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM funktion`).Scan(&existing); err != nil {
			return repository.Change{}, err
		}
		if existing > 0 {
			logDebugf("funktion holds %d rows, nothing to seed", existing)
			return repository.Change{}, nil
		}

		stmt, err := tx.PrepareContext(ctx, `INSERT INTO funktion (name) VALUES (?)`)
		if err != nil {
			return repository.Change{}, err
		}
		defer stmt.Close()

		for _, name := range domain.SeedFunktionen {
			if _, err := stmt.ExecContext(ctx, name); err != nil {
				return repository.Change{}, err
			}
		}
		inserted = len(domain.SeedFunktionen)
		return repository.Change{Type: repository.ChangeSeeded, Table: "funktion", Rows: int64(inserted)}, nil
	})
	if err != nil {
		return 0, storageErr("seed", "funktion", err)
	}
	if inserted > 0 {
		logInfof("seeded %d funktion rows", inserted)
	}
	return inserted, nil
}
