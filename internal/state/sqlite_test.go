package state

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore()
	require.NoError(t, store.Open(":memory:"))
	require.NoError(t, store.Migrate())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleRun(startedAt time.Time) *ScanRun {
	return &ScanRun{
		StartedAt:    startedAt,
		CompletedAt:  startedAt.Add(2 * time.Second),
		BaselinePath: ".secretsift.baseline",
		FilesScanned: 120,
		SecretsFound: 4,
		NewSecrets:   1,
	}
}

func TestSaveAndListScanRuns(t *testing.T) {
	store := newTestStore(t)

	first := sampleRun(time.Now().Add(-time.Hour))
	second := sampleRun(time.Now())
	second.SecretsFound = 7

	require.NoError(t, store.SaveScanRun(first, nil))
	require.NoError(t, store.SaveScanRun(second, nil))

	assert.NotEmpty(t, first.ID, "ID is assigned on save")
	assert.NotEqual(t, first.ID, second.ID)

	runs, err := store.ListScanRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, second.ID, runs[0].ID)
	assert.Equal(t, 7, runs[0].SecretsFound)
	assert.Equal(t, first.ID, runs[1].ID)
	assert.WithinDuration(t, first.StartedAt, runs[1].StartedAt, time.Millisecond)
}

func TestListScanRunsLimit(t *testing.T) {
	store := newTestStore(t)
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		require.NoError(t, store.SaveScanRun(sampleRun(base.Add(time.Duration(i)*time.Minute)), nil))
	}

	runs, err := store.ListScanRuns(3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)

	// Non-positive limit falls back to the default.
	runs, err = store.ListScanRuns(0)
	require.NoError(t, err)
	assert.Len(t, runs, 5)
}

func TestDetectorCounts(t *testing.T) {
	store := newTestStore(t)
	run := sampleRun(time.Now())
	counts := []DetectorCount{
		{Type: "KeywordDetector", Count: 3},
		{Type: "AWSAccessKey", Count: 1},
	}
	require.NoError(t, store.SaveScanRun(run, counts))

	got, err := store.DetectorCounts(run.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Sorted by detector type.
	assert.Equal(t, "AWSAccessKey", got[0].Type)
	assert.Equal(t, 1, got[0].Count)
	assert.Equal(t, "KeywordDetector", got[1].Type)
	assert.Equal(t, run.ID, got[1].RunID)
}

func TestStoreRequiresOpen(t *testing.T) {
	store := NewSQLiteStore()

	assert.Error(t, store.SaveScanRun(sampleRun(time.Now()), nil))
	_, err := store.ListScanRuns(1)
	assert.Error(t, err)
	_, err = store.DetectorCounts("x")
	assert.Error(t, err)
	assert.Error(t, store.Migrate())
	assert.NoError(t, store.Close(), "closing an unopened store is a no-op")
}

func TestSaveScanRunRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	store := NewSQLiteStoreWithDB(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO scan_runs").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err = store.SaveScanRun(sampleRun(time.Now()), nil)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveScanRunCountInsertFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	store := NewSQLiteStoreWithDB(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO scan_runs").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO detector_counts").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err = store.SaveScanRun(sampleRun(time.Now()), []DetectorCount{{Type: "KeywordDetector", Count: 1}})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
