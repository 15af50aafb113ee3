package provenance

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cockroachdb/errors"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/dataprep/internal/logger"
)

func sampleRecord(position int) Record {
	return Record{
		RunID:      "run-1",
		Position:   position,
		Step:       "rename_id",
		Preparator: "rename-property",
		Parameters: map[string]string{"property": "id", "new_name": "ID"},
		InputRows:  20,
		OutputRows: 20,
		StartedAt:  time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC),
		Duration:   1500 * time.Millisecond,
		Revision:   "abc123",
	}
}

func TestRepositoryAppendOnly(t *testing.T) {
	t.Parallel()

	repo := NewRepository()
	rec := sampleRecord(0)
	require.NoError(t, repo.Append(context.Background(), rec))
	require.NoError(t, repo.Append(context.Background(), sampleRecord(1)))

	rec.Parameters["property"] = "mutated"

	records := repo.Records()
	require.Len(t, records, 2)
	require.Equal(t, 2, repo.Len())
	require.Equal(t, "id", records[0].Parameters["property"])
	require.Equal(t, 1, records[1].Position)
}

func TestSQLStoreAppendWithMock(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rec := sampleRecord(2)
	mock.ExpectExec(`INSERT INTO provenance_records`).
		WithArgs(
			rec.RunID,
			rec.Position,
			rec.Step,
			rec.Preparator,
			`{"new_name":"ID","property":"id"}`,
			rec.InputRows,
			rec.OutputRows,
			rec.ErrorCount,
			"2024-03-01T10:00:00Z",
			int64(1500),
			rec.Revision,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	store := NewSQLStore(db, logger.Nop())
	require.NoError(t, store.Append(context.Background(), rec))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreAppendPropagatesFailure(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO provenance_records`).WillReturnError(errors.New("disk full"))

	store := NewSQLStore(db, logger.Nop())
	err = store.Append(context.Background(), sampleRecord(0))
	require.Error(t, err)
	require.Contains(t, err.Error(), "disk full")
	require.Contains(t, err.Error(), "rename_id")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateReportsQueryFailure(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).WithArgs("000").WillReturnError(errors.New("no such table: schema_migrations"))
	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO schema_migrations`).WithArgs("000").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT EXISTS`).WithArgs("001").WillReturnError(errors.New("database is locked"))

	err = Migrate(context.Background(), db, logger.Nop())
	require.Error(t, err)
	require.Contains(t, err.Error(), "001_create_provenance_records.sql")
	require.Contains(t, err.Error(), "database is locked")
	require.NotContains(t, err.Error(), "missing")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state", "provenance.db")
	store, err := OpenSQLStore(context.Background(), path, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Append(context.Background(), sampleRecord(1)))
	require.NoError(t, store.Append(context.Background(), sampleRecord(0)))

	other := sampleRecord(0)
	other.RunID = "run-2"
	require.NoError(t, store.Append(context.Background(), other))

	records, err := store.Records(context.Background(), "run-1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, 0, records[0].Position)
	require.Equal(t, sampleRecord(0), records[0])

	require.NoError(t, Migrate(context.Background(), store.db, logger.Nop()), "migrations are idempotent")
}

func initGitRepo(t *testing.T) (string, string) {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "pipelines"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pipelines", "pokemon.yaml"), []byte("version: \"1.0\"\n"), 0o644))
	_, err = wt.Add("pipelines/pokemon.yaml")
	require.NoError(t, err)

	hash, err := wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Dataprep",
			Email: "dataprep@example.com",
			When:  time.Now(),
		},
	})
	require.NoError(t, err)

	return dir, hash.String()
}

func TestResolveRevision(t *testing.T) {
	t.Parallel()

	dir, want := initGitRepo(t)

	got, err := ResolveRevision(filepath.Join(dir, "pipelines", "pokemon.yaml"))
	require.NoError(t, err)
	require.Equal(t, want, got)

	got, err = ResolveRevision(dir)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestResolveRevisionOutsideRepository(t *testing.T) {
	t.Parallel()

	got, err := ResolveRevision(filepath.Join(t.TempDir(), "pipeline.yaml"))
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestResolveRevisionWithoutCommits(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	got, err := ResolveRevision(dir)
	require.NoError(t, err)
	require.Empty(t, got)
}
