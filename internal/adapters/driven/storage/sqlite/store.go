package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/sitemap/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/sitemap/internal/core/domain"
	"github.com/custodia-labs/sitemap/internal/core/ports/driven"
)

// Store is a SQLite-based storage that provides access to the
// store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.sitemap/data/routes.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".sitemap", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "routes.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// RouteStore returns a RouteStore interface backed by this store.
func (s *Store) RouteStore() driven.RouteStore {
	return &routeStore{store: s}
}

// migrate runs all pending migrations in version order.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_routes.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("starting migration %s: %w", name, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %s: %w", name, err)
		}
	}

	return nil
}

// SchemaVersion returns the highest applied migration version.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	row := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&version); err != nil {
		return 0, fmt.Errorf("getting schema version: %w", err)
	}
	return version, nil
}

// ==================== Route Store ====================

// routeStore implements driven.RouteStore.
type routeStore struct {
	store *Store
}

var _ driven.RouteStore = (*routeStore)(nil)

const routeColumns = `id, name, matcher, pattern, param, action, target, mime, status, position, created_at`

// Save stores or updates a route.
func (s *routeStore) Save(ctx context.Context, route domain.Route) error {
	if route.CreatedAt.IsZero() {
		route.CreatedAt = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO routes (`+routeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			matcher = excluded.matcher,
			pattern = excluded.pattern,
			param = excluded.param,
			action = excluded.action,
			target = excluded.target,
			mime = excluded.mime,
			status = excluded.status,
			position = excluded.position
	`, route.ID, route.Name, string(route.MatcherOrDefault()), route.Pattern, route.Param,
		string(route.Action), route.Target, route.MIME, route.Status, route.Position, route.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving route: %w", err)
	}
	return nil
}

// Get retrieves a route by ID.
func (s *routeStore) Get(ctx context.Context, id string) (*domain.Route, error) {
	row := s.store.db.QueryRowContext(ctx, `SELECT `+routeColumns+` FROM routes WHERE id = ?`, id)

	route, err := scanRoute(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning route: %w", err)
	}
	return route, nil
}

// Delete removes a route. Deleting a missing route returns domain.ErrNotFound.
func (s *routeStore) Delete(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, `DELETE FROM routes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting route: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting route: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns all routes ordered by position, then creation time.
func (s *routeStore) List(ctx context.Context) ([]domain.Route, error) {
	rows, err := s.store.db.QueryContext(ctx,
		`SELECT `+routeColumns+` FROM routes ORDER BY position, created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing routes: %w", err)
	}
	defer rows.Close()

	var routes []domain.Route
	for rows.Next() {
		route, err := scanRoute(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning route: %w", err)
		}
		routes = append(routes, *route)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating routes: %w", err)
	}
	return routes, nil
}

// NextPosition returns the position after the last stored route.
func (s *routeStore) NextPosition(ctx context.Context) (int, error) {
	var next int
	row := s.store.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(position) + 1, 0) FROM routes`)
	if err := row.Scan(&next); err != nil {
		return 0, fmt.Errorf("getting next position: %w", err)
	}
	return next, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRoute(row scanner) (*domain.Route, error) {
	var route domain.Route
	var matcher, action string
	var createdAt sql.NullTime
	if err := row.Scan(&route.ID, &route.Name, &matcher, &route.Pattern, &route.Param,
		&action, &route.Target, &route.MIME, &route.Status, &route.Position, &createdAt); err != nil {
		return nil, err
	}
	route.Matcher = domain.MatcherType(matcher)
	route.Action = domain.Action(action)
	if createdAt.Valid {
		route.CreatedAt = createdAt.Time
	}
	return &route, nil
}
