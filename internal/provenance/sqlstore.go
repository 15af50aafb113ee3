package provenance

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	_ "github.com/mattn/go-sqlite3"

	"github.com/alexisbeaulieu97/dataprep/internal/logger"
)

//go:embed migrations/*.sql
var migrations embed.FS

const insertRecord = `INSERT INTO provenance_records
	(run_id, position, step, preparator, parameters, input_rows, output_rows, error_count, started_at, duration_ms, revision)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const selectRecords = `SELECT run_id, position, step, preparator, parameters, input_rows, output_rows, error_count, started_at, duration_ms, revision
	FROM provenance_records WHERE run_id = ? ORDER BY position`

// SQLStore persists records to SQLite.
type SQLStore struct {
	db  *sql.DB
	log *logger.Logger
}

// OpenSQLStore opens (creating it when needed) the database at path and applies
// pending migrations.
func OpenSQLStore(ctx context.Context, path string, log *logger.Logger) (*SQLStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "create directory for %s", path)
		}
	}

	log.With("path", path).Debug("opening provenance database")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, errors.Wrapf(err, "apply %q", pragma)
		}
	}

	if err := Migrate(ctx, db, log); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewSQLStore(db, log), nil
}

// NewSQLStore wraps an already migrated database.
func NewSQLStore(db *sql.DB, log *logger.Logger) *SQLStore {
	return &SQLStore{db: db, log: log}
}

// Migrate applies the embedded migrations that are not recorded in
// schema_migrations yet, each in its own transaction.
func Migrate(ctx context.Context, db *sql.DB, log *logger.Logger) error {
	entries, err := migrations.ReadDir("migrations")
	if err != nil {
		return errors.Wrap(err, "read migrations")
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	slices.Sort(files)

	for _, name := range files {
		version := strings.Split(name, "_")[0]

		var applied bool
		err := db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = ?)", version).Scan(&applied)
		// Before 000 runs the table does not exist yet.
		if err != nil && version != "000" {
			return errors.Wrapf(err, "check migration %s", name)
		}
		if applied {
			log.With("migration", name).Debug("skipping applied migration")
			continue
		}

		body, err := migrations.ReadFile("migrations/" + name)
		if err != nil {
			return errors.Wrapf(err, "read %s", name)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return errors.Wrapf(err, "begin tx for %s", name)
		}
		if _, err := tx.ExecContext(ctx, string(body)); err != nil {
			_ = tx.Rollback()
			return errors.Wrapf(err, "execute %s", name)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			_ = tx.Rollback()
			return errors.Wrapf(err, "record %s", name)
		}
		if err := tx.Commit(); err != nil {
			return errors.Wrapf(err, "commit %s", name)
		}
		log.With("migration", name).Info("applied migration")
	}
	return nil
}

// Append implements Sink.
func (s *SQLStore) Append(ctx context.Context, r Record) error {
	params, err := json.Marshal(r.Parameters)
	if err != nil {
		return errors.Wrap(err, "encode parameters")
	}

	_, err = s.db.ExecContext(ctx, insertRecord,
		r.RunID,
		r.Position,
		r.Step,
		r.Preparator,
		string(params),
		r.InputRows,
		r.OutputRows,
		r.ErrorCount,
		r.StartedAt.UTC().Format(time.RFC3339Nano),
		r.Duration.Milliseconds(),
		r.Revision,
	)
	return errors.Wrapf(err, "insert provenance record for step %q", r.Step)
}

// Records returns the records of one run ordered by step position.
func (s *SQLStore) Records(ctx context.Context, runID string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, selectRecords, runID)
	if err != nil {
		return nil, errors.Wrap(err, "query provenance records")
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			r          Record
			params     string
			startedAt  string
			durationMS int64
		)
		if err := rows.Scan(&r.RunID, &r.Position, &r.Step, &r.Preparator, &params,
			&r.InputRows, &r.OutputRows, &r.ErrorCount, &startedAt, &durationMS, &r.Revision); err != nil {
			return nil, errors.Wrap(err, "scan provenance record")
		}
		if err := json.Unmarshal([]byte(params), &r.Parameters); err != nil {
			return nil, errors.Wrap(err, "decode parameters")
		}
		if r.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, errors.Wrap(err, "decode started_at")
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		out = append(out, r)
	}
	return out, errors.Wrap(rows.Err(), "iterate provenance records")
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
