package watch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wsd/internal/structures"
	"wsd/internal/testutil"
)

func guardConfig(path string) *structures.Config {
	return &structures.Config{
		LocalStore: structures.LocalStore{FilePath: path},
	}
}

func TestDailyGuard_FreshStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "days.bin")
	g := NewDailyGuard(guardConfig(path), &testutil.MockLogger{})

	assert.False(t, g.HasRecordedToday())
}

func TestDailyGuard_MarkAndCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "days.bin")
	g := NewDailyGuard(guardConfig(path), &testutil.MockLogger{})

	require.NoError(t, g.MarkRecordedToday())
	assert.True(t, g.HasRecordedToday())
}

func TestDailyGuard_PersistsAcrossRestarts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "days.bin")
	g := NewDailyGuard(guardConfig(path), &testutil.MockLogger{})
	require.NoError(t, g.MarkRecordedToday())

	reloaded := NewDailyGuard(guardConfig(path), &testutil.MockLogger{})
	assert.True(t, reloaded.HasRecordedToday())
}

func TestDailyGuard_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "days.bin")
	g := NewDailyGuard(guardConfig(path), &testutil.MockLogger{})

	require.NoError(t, g.MarkRecordedToday())
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestDailyGuard_CorruptStoreResolvesToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "days.bin")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0644))

	logger := &testutil.MockLogger{}
	g := NewDailyGuard(guardConfig(path), logger)

	assert.False(t, g.HasRecordedToday())
	assert.NotEmpty(t, logger.Entries())
}

func TestDailyGuard_MarkIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "days.bin")
	g := NewDailyGuard(guardConfig(path), &testutil.MockLogger{})

	require.NoError(t, g.MarkRecordedToday())
	require.NoError(t, g.MarkRecordedToday())
	assert.True(t, g.HasRecordedToday())
}
