package workers_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/stock-ledger/internal/workers"
	"github.com/ammerola/stock-ledger/test/helpers"
)

func TestCleanupProcessor_CleanupTempFiles(t *testing.T) {
	dir := t.TempDir()

	stale := filepath.Join(dir, "stale.xlsx")
	fresh := filepath.Join(dir, "fresh.pdf")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o600))
	require.NoError(t, os.WriteFile(fresh, []byte("new"), 0o600))

	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	p := workers.NewCleanupProcessor(dir, 24*time.Hour, helpers.TestLogger())
	require.NoError(t, p.CleanupTempFiles(context.Background(), workers.NewCleanupTempFilesTask()))

	_, err := os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(fresh)
	assert.NoError(t, err)
}

func TestCleanupProcessor_MissingDir(t *testing.T) {
	p := workers.NewCleanupProcessor(filepath.Join(t.TempDir(), "absent"), time.Hour, helpers.TestLogger())
	assert.NoError(t, p.CleanupTempFiles(context.Background(), workers.NewCleanupTempFilesTask()))
}
