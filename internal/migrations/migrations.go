// Package migrations applies the embedded SQL schema through database/sql
// and the lib/pq driver.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"creatorhub_backend/internal/logger"

	_ "github.com/lib/pq"
)

//go:embed sql/*.sql
var embedded embed.FS

// Files is the schema shipped with the binary.
func Files() fs.FS {
	sub, err := fs.Sub(embedded, "sql")
	if err != nil {
		panic(err)
	}
	return sub
}

const createVersionTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
    version    INTEGER PRIMARY KEY,
    name       VARCHAR(255) NOT NULL,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

var fileNamePattern = regexp.MustCompile(`^(\d+)_([a-z0-9_]+)\.(up|down)\.sql$`)

type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// ParseFileName splits 0001_init.up.sql into version, name and direction.
func ParseFileName(name string) (version int, title, direction string, err error) {
	m := fileNamePattern.FindStringSubmatch(name)
	if m == nil {
		return 0, "", "", fmt.Errorf("invalid migration file name: %s", name)
	}
	version, err = strconv.Atoi(m[1])
	if err != nil {
		return 0, "", "", fmt.Errorf("invalid migration version in %s: %w", name, err)
	}
	return version, m[2], m[3], nil
}

// Load reads every migration in fsys, sorted by version. Each version needs
// both an up and a down file.
func Load(fsys fs.FS) ([]Migration, error) {
	byVersion := map[int]*Migration{}

	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		version, name, direction, err := ParseFileName(d.Name())
		if err != nil {
			return nil
		}
		body, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		m, ok := byVersion[version]
		if !ok {
			m = &Migration{Version: version, Name: name}
			byVersion[version] = m
		}
		if direction == "up" {
			m.Up = string(body)
		} else {
			m.Down = string(body)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan migrations: %w", err)
	}

	out := make([]Migration, 0, len(byVersion))
	var incomplete []int
	for v, m := range byVersion {
		if strings.TrimSpace(m.Up) == "" || strings.TrimSpace(m.Down) == "" {
			incomplete = append(incomplete, v)
			continue
		}
		out = append(out, *m)
	}
	if len(incomplete) > 0 {
		sort.Ints(incomplete)
		return nil, fmt.Errorf("incomplete migrations (missing up or down): %v", incomplete)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// Pending returns the migrations newer than current, in order.
func Pending(all []Migration, current int) []Migration {
	var out []Migration
	for _, m := range all {
		if m.Version > current {
			out = append(out, m)
		}
	}
	return out
}

// Migrator runs migrations against a Postgres database.
type Migrator struct {
	db         *sql.DB
	migrations []Migration
}

func New(db *sql.DB, migrations []Migration) *Migrator {
	return &Migrator{db: db, migrations: migrations}
}

// Open connects with the lib/pq driver and loads the embedded schema.
func Open(dsn string) (*Migrator, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	migrations, err := Load(Files())
	if err != nil {
		db.Close()
		return nil, err
	}
	return New(db, migrations), nil
}

// Pending returns the migrations not yet applied to the database.
func (m *Migrator) Pending(ctx context.Context) ([]Migration, error) {
	current, err := m.Version(ctx)
	if err != nil {
		return nil, err
	}
	return Pending(m.migrations, current), nil
}

func (m *Migrator) Close() error {
	return m.db.Close()
}

func (m *Migrator) init(ctx context.Context) error {
	start := time.Now()
	_, err := m.db.ExecContext(ctx, createVersionTable)
	logger.DBLog("create_schema_migrations", "schema_migrations", time.Since(start), err)
	return err
}

// Version is the highest applied migration, 0 when none.
func (m *Migrator) Version(ctx context.Context) (int, error) {
	if err := m.init(ctx); err != nil {
		return 0, err
	}
	var version int
	err := m.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&version)
	return version, err
}

// Up applies every pending migration, each in its own transaction.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	current, err := m.Version(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}

	pending := Pending(m.migrations, current)
	logger.Info("Migrating up", "current_version", current, "pending", len(pending))

	for _, mig := range pending {
		err := m.apply(ctx, mig.Up, func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`, mig.Version, mig.Name)
			return err
		})
		logger.DBLog("migrate_up", fmt.Sprintf("%04d_%s", mig.Version, mig.Name), 0, err)
		if err != nil {
			return 0, fmt.Errorf("migration %d failed: %w", mig.Version, err)
		}
	}
	return len(pending), nil
}

// Down rolls back the latest applied migration.
func (m *Migrator) Down(ctx context.Context) error {
	current, err := m.Version(ctx)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current == 0 {
		logger.Info("Nothing to roll back")
		return nil
	}

	for _, mig := range m.migrations {
		if mig.Version != current {
			continue
		}
		err := m.apply(ctx, mig.Down, func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, `DELETE FROM schema_migrations WHERE version = $1`, mig.Version)
			return err
		})
		logger.DBLog("migrate_down", fmt.Sprintf("%04d_%s", mig.Version, mig.Name), 0, err)
		return err
	}
	return fmt.Errorf("applied migration %d is unknown to this binary", current)
}

func (m *Migrator) apply(ctx context.Context, script string, record func(tx *sql.Tx) error) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, stmt := range SplitStatements(script) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("%w\nSQL: %s", err, stmt)
		}
	}
	if err := record(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// SplitStatements splits a script on semicolons and drops comment-only lines.
// The schema has no semicolons inside literals.
func SplitStatements(script string) []string {
	var lines []string
	for _, line := range strings.Split(script, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		lines = append(lines, line)
	}

	var out []string
	for _, stmt := range strings.Split(strings.Join(lines, "\n"), ";") {
		if s := strings.TrimSpace(stmt); s != "" {
			out = append(out, s)
		}
	}
	return out
}
