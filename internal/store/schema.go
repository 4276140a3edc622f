package store

import (
	"context"
	"fmt"
)

// EnsureSchema creates the states and cities tables when they do not exist.
// Production databases are provisioned externally; this exists for the
// sqlite driver in development and tests.
func (s *Store) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS states (
			name TEXT NOT NULL,
			abbreviation TEXT NOT NULL,
			PRIMARY KEY (abbreviation)
		)`,
		`CREATE TABLE IF NOT EXISTS cities (
			name TEXT NOT NULL,
			state_abbreviation TEXT NOT NULL,
			population INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cities_population ON cities (population DESC)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	return nil
}

// InsertState and InsertCity load fixture rows; test helpers only.

func (s *Store) InsertState(ctx context.Context, st State) error {
	query, args, err := s.sb.
		Insert("states").
		Columns("name", "abbreviation").
		Values(st.Name, st.Abbreviation).
		ToSql()
	if err != nil {
		return fmt.Errorf("build state insert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert state: %w", err)
	}
	return nil
}

func (s *Store) InsertCity(ctx context.Context, c City, population int) error {
	query, args, err := s.sb.
		Insert("cities").
		Columns("name", "state_abbreviation", "population").
		Values(c.Name, c.StateAbbreviation, population).
		ToSql()
	if err != nil {
		return fmt.Errorf("build city insert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert city: %w", err)
	}
	return nil
}
