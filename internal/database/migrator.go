package database

import (
	"bufio"
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/deppfellow/classroom/internal/config"
	"github.com/deppfellow/classroom/internal/errs"
	"github.com/deppfellow/classroom/internal/sqlerr"
	tern "github.com/jackc/tern/v2/migrate"
)

// Embed the schema files at compile time so the binary carries them.
// Every statement is "create if not exists", so running them again is a no-op.
//
//go:embed migrations/*.sql
var migrations embed.FS

// Tables lists the classroom tables in creation order.
var Tables = []string{"Cohort", "Instructor", "Student", "Exercise", "StudentExercise"}

// schemaVersionTable is where tern records the applied version on PostgreSQL.
const schemaVersionTable = "schema_version"

// EnsureSchema creates the classroom tables when they are missing.
//
// SQLite executes the embedded statements directly. PostgreSQL runs them
// through tern so the applied version is recorded in schema_version.
//
// Any failure is returned as an errs.KindSchema error: reports must not run
// against a partial schema.
func (db *Database) EnsureSchema(ctx context.Context) error {
	var err error
	switch db.Driver {
	case config.DriverPostgres:
		err = db.migratePostgres(ctx)
	default:
		err = db.applyStatements(ctx, migrations, "migrations")
	}
	if err != nil {
		return errs.NewSchemaError("ensuring classroom schema", err)
	}
	return nil
}

// applyStatements executes every .sql file under dir in name order.
func (db *Database) applyStatements(ctx context.Context, fsys fs.FS, dir string) error {
	names, err := fs.Glob(fsys, dir+"/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(names)

	for _, name := range names {
		body, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading %s: %w", name, err)
		}
		for _, stmt := range SplitStatements(string(body)) {
			if _, err := db.DB.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("executing %s: %w", name, sqlerr.HandleError(err))
			}
		}
	}

	db.log.Debug().Int("files", len(names)).Str("dir", dir).Msg("applied sql files")
	return nil
}

// migratePostgres runs the embedded schema using jackc/tern.
//
// Behavior:
//   - Acquire one connection from the pool (tern needs a *pgx.Conn)
//   - Create tern migrator and load embedded migrations
//   - Run migrations to latest
//   - Log whether it was already up-to-date or migrated
func (db *Database) migratePostgres(ctx context.Context) error {
	conn, err := db.Pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquiring connection for migrations: %w", err)
	}
	defer conn.Release()

	m, err := tern.NewMigrator(ctx, conn.Conn(), schemaVersionTable)
	if err != nil {
		return fmt.Errorf("constructing database migrator: %w", err)
	}

	subtree, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("retrieving database migrations subtree: %w", err)
	}

	if err := m.LoadMigrations(subtree); err != nil {
		return fmt.Errorf("loading database migrations: %w", err)
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	if err := m.Migrate(ctx); err != nil {
		return sqlerr.HandleError(err)
	}

	if from == int32(len(m.Migrations)) {
		db.log.Info().Msgf("database schema up to date, version %d", len(m.Migrations))
	} else {
		db.log.Info().Msgf("migrated database schema, from %d to %d", from, len(m.Migrations))
	}
	return nil
}

// MissingTables returns the classroom tables that cannot be queried.
func (db *Database) MissingTables(ctx context.Context) ([]string, error) {
	var missing []string
	for _, table := range Tables {
		ok, err := db.tableExists(ctx, table)
		if err != nil {
			return nil, err
		}
		if !ok {
			missing = append(missing, table)
		}
	}
	return missing, nil
}

// tableExists runs an empty select on table. A schema error means the table
// is missing; any other failure is returned.
func (db *Database) tableExists(ctx context.Context, table string) (bool, error) {
	rows, err := db.DB.QueryContext(ctx, "SELECT 1 FROM "+table+" WHERE 1 = 0")
	if err == nil {
		for rows.Next() {
		}
		err = rows.Err()
		if closeErr := rows.Close(); err == nil {
			err = closeErr
		}
	}
	if err == nil {
		return true, nil
	}

	err = sqlerr.HandleError(err)
	if errs.KindOf(err) == errs.KindSchema {
		return false, nil
	}
	return false, err
}

// SplitStatements splits a semicolon-terminated SQL script into executable statements.
// It drops blank lines and single-line comments that start with "--".
func SplitStatements(script string) []string {
	scanner := bufio.NewScanner(strings.NewReader(script))
	var stmts []string
	var current strings.Builder

	flush := func() {
		stmt := strings.TrimSpace(current.String())
		if stmt != "" {
			stmts = append(stmts, stmt)
		}
		current.Reset()
	}

	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteByte('\n')
		if strings.HasSuffix(trimmed, ";") {
			flush()
		}
	}

	if tail := strings.TrimSpace(current.String()); tail != "" {
		stmts = append(stmts, tail)
	}

	return stmts
}
