package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spincat/pixelpet/internal/factory"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "pixelpet.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func cardAt(t *testing.T, createdAt time.Time) factory.ProductCard {
	t.Helper()
	card := factory.NewProductCard(factory.NewLine())
	card.CreatedAt = createdAt
	return card
}

func TestNewDB_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "pixelpet.db")

	db, err := NewDB(path)
	require.NoError(t, err)
	defer db.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestNewDB_BacksUpExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pixelpet.db")

	first, err := NewDB(path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewDB(path)
	require.NoError(t, err)
	defer second.Close()

	_, err = os.Stat(path + ".bak")
	assert.NoError(t, err, "pre-migration backup should exist")
}

func TestNewDB_ConfiguresWAL(t *testing.T) {
	db := newTestDB(t)

	var mode string
	require.NoError(t, db.Connection().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestRunRepository_SaveAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := db.Runs()

	card := cardAt(t, time.Now())
	id, err := repo.Save(card)
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := repo.FindByBatch(card.BatchID)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, card.TrackingNumber, got.Card.TrackingNumber)
	assert.Equal(t, card.Scores, got.Card.Scores)
	assert.Equal(t, card.Overall, got.Card.Overall)
	assert.Equal(t, card.Rating, got.Card.Rating)
	assert.Equal(t, card.CreatedAt.Unix(), got.Card.CreatedAt.Unix())
}

func TestRunRepository_FindMissingReturnsTypedError(t *testing.T) {
	db := newTestDB(t)
	repo := db.Runs()

	_, err := repo.FindByBatch("no-such-batch")
	require.Error(t, err)
	var notFound *RunNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestRunRepository_ListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := db.Runs()

	base := time.Now().Add(-time.Hour)
	var batches []string
	for i := 0; i < 5; i++ {
		card := cardAt(t, base.Add(time.Duration(i)*time.Minute))
		_, err := repo.Save(card)
		require.NoError(t, err)
		batches = append(batches, card.BatchID)
	}

	runs, err := repo.List(0)
	require.NoError(t, err)
	require.Len(t, runs, 5)
	assert.Equal(t, batches[4], runs[0].Card.BatchID, "newest run first")
	assert.Equal(t, batches[0], runs[4].Card.BatchID)

	limited, err := repo.List(2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, batches[4], limited[0].Card.BatchID)
}

func TestRunRepository_Prune(t *testing.T) {
	db := newTestDB(t)
	repo := db.Runs()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 6; i++ {
		_, err := repo.Save(cardAt(t, base.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
	}

	removed, err := repo.Prune(2)
	require.NoError(t, err)
	assert.EqualValues(t, 4, removed)

	runs, err := repo.List(0)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestRunRepository_DuplicateBatchRejected(t *testing.T) {
	db := newTestDB(t)
	repo := db.Runs()

	card := cardAt(t, time.Now())
	_, err := repo.Save(card)
	require.NoError(t, err)

	_, err = repo.Save(card)
	assert.Error(t, err, "batch_guid is unique")
}
