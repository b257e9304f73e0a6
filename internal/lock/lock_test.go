package lock

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	lock := New("/tmp/test", "render")
	assert.Equal(t, "/tmp/test/.kiln/locks/render.lock", lock.path)
}

func TestLock_AcquireRelease(t *testing.T) {
	tmpDir := t.TempDir()
	lock := New(tmpDir, "render")

	err := lock.Acquire()
	require.NoError(t, err)

	lockPath := filepath.Join(tmpDir, ".kiln", "locks", "render.lock")
	_, err = os.Stat(lockPath)
	require.NoError(t, err)

	err = lock.Release()
	require.NoError(t, err)

	_, err = os.Stat(lockPath)
	assert.True(t, os.IsNotExist(err))
}

func TestLock_DoubleAcquire(t *testing.T) {
	tmpDir := t.TempDir()
	lock1 := New(tmpDir, "render")
	lock2 := New(tmpDir, "render")

	err := lock1.Acquire()
	require.NoError(t, err)
	defer lock1.Release()

	err = lock2.Acquire()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "another render operation is already running")
}

func TestLock_ReleaseWithoutAcquire(t *testing.T) {
	lock := New(t.TempDir(), "render")
	require.NoError(t, lock.Release())
}

func TestWithLock(t *testing.T) {
	executed := false
	err := WithLock(t.TempDir(), "bake", func() error {
		executed = true
		return nil
	})

	require.NoError(t, err)
	assert.True(t, executed)
}

func TestWithLock_Blocked(t *testing.T) {
	tmpDir := t.TempDir()
	lock := New(tmpDir, "bake")

	require.NoError(t, lock.Acquire())
	defer lock.Release()

	err := WithLock(tmpDir, "bake", func() error { return nil })
	assert.Error(t, err)
}

func TestWithLock_ReleasedAfterError(t *testing.T) {
	tmpDir := t.TempDir()

	err := WithLock(tmpDir, "bake", func() error {
		return os.ErrPermission
	})
	assert.ErrorIs(t, err, os.ErrPermission)

	// Lock must be free again.
	require.NoError(t, WithLock(tmpDir, "bake", func() error { return nil }))
}
