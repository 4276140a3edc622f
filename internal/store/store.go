// Package store is the read-only data access layer for the city and state
// tables backing the site.
package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// State is one row of the states table.
type State struct {
	Name         string
	Abbreviation string
}

// City is one row of the cities table. Population orders the sitemap
// sequence but is never rendered.
type City struct {
	Name              string
	StateAbbreviation string
}

type Store struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

// Open connects using the configured driver, "postgres" (lib/pq) or
// "sqlite" (modernc). The placeholder format follows the driver.
func Open(driver, dsn string) (*Store, error) {
	var driverName string
	var placeholder sq.PlaceholderFormat

	switch driver {
	case "postgres":
		driverName = "postgres"
		placeholder = sq.Dollar
	case "sqlite":
		driverName = "sqlite"
		placeholder = sq.Question
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)

	return &Store{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(placeholder),
	}, nil
}

// Attach wraps an existing connection, placeholders in question-mark form.
// Used by tests with an in-memory SQLite database.
func Attach(db *sql.DB) *Store {
	return &Store{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}
}

func (s *Store) Close() error { return s.db.Close() }

// ListStates returns every state ordered by name.
func (s *Store) ListStates(ctx context.Context) ([]State, error) {
	query, args, err := s.sb.
		Select("name", "abbreviation").
		From("states").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build states query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query states: %w", err)
	}
	defer rows.Close()

	var states []State
	for rows.Next() {
		var st State
		if err := rows.Scan(&st.Name, &st.Abbreviation); err != nil {
			return nil, fmt.Errorf("scan state: %w", err)
		}
		states = append(states, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("states rows: %w", err)
	}

	return states, nil
}

// ListCities returns one offset/limit window of cities in descending
// population order. Name breaks population ties so the sequence stays
// stable between calls.
func (s *Store) ListCities(ctx context.Context, offset, limit int) ([]City, error) {
	query, args, err := s.sb.
		Select("name", "state_abbreviation").
		From("cities").
		OrderBy("population DESC", "name ASC", "state_abbreviation ASC").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build cities query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query cities: %w", err)
	}
	defer rows.Close()

	var cities []City
	for rows.Next() {
		var c City
		if err := rows.Scan(&c.Name, &c.StateAbbreviation); err != nil {
			return nil, fmt.Errorf("scan city: %w", err)
		}
		cities = append(cities, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cities rows: %w", err)
	}

	return cities, nil
}

// CountCities returns the total number of city rows.
func (s *Store) CountCities(ctx context.Context) (int, error) {
	query, args, err := s.sb.
		Select("COUNT(*)").
		From("cities").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count cities: %w", err)
	}

	return count, nil
}
