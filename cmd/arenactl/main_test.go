package main

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/c2h5oh/datasize"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	arena "github.com/pavanmanishd/arena/v2"
	"github.com/pavanmanishd/arena/v2/vmem"
)

func newLinear(t *testing.T, capacity int) *arena.LinearAllocator {
	t.Helper()
	a, err := arena.NewLinear(capacity)
	if errors.Is(err, vmem.ErrUnsupported) {
		t.Skip("virtual memory is not supported on this platform")
	}
	require.NoError(t, err)
	t.Cleanup(a.Release)
	return a
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("", "")
	require.NoError(t, err)
	require.Equal(t, "default", cfg.Name)
	require.Equal(t, arena.DefaultCapacity, cfg.Capacity)

	path := filepath.Join(t.TempDir(), "arena.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: cli\ncapacity: 2MB\n"), 0o644))

	cfg, err = loadConfig(path, "")
	require.NoError(t, err)
	require.Equal(t, "cli", cfg.Name)
	require.Equal(t, 2*datasize.MB, cfg.Capacity)

	cfg, err = loadConfig(path, "4KB")
	require.NoError(t, err)
	require.Equal(t, 4*datasize.KB, cfg.Capacity)

	_, err = loadConfig(path, "plenty")
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("unknown: 1\n"), 0o644))
	_, err = loadConfig(bad, "")
	require.Error(t, err)

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.yaml"), "")
	require.Error(t, err)
}

func TestRollback(t *testing.T) {
	a := newLinear(t, 1000)
	res, err := rollback(a)
	require.NoError(t, err)
	require.EqualValues(t, 17, res.first)
	require.EqualValues(t, 55, res.second)
	require.Equal(t, a.Capacity()/8-1, res.fillers)
	require.Equal(t, 16, a.InUse())
}

func TestResize(t *testing.T) {
	a := newLinear(t, 1_000_000)
	require.NoError(t, resize(a, 1024))
	require.Zero(t, a.InUse())
	require.Zero(t, a.Metrics().Moves)

	require.Error(t, resize(a, 0))
}

func TestBuildSet(t *testing.T) {
	for _, colliding := range []int{0, 3} {
		a := newLinear(t, 16<<20)
		st, err := buildSet(a, 500, colliding)
		require.NoError(t, err)
		require.Equal(t, 500, st.keys)
		require.LessOrEqual(t, 4*st.keys, 3*st.buckets)
		if colliding > 0 {
			require.Greater(t, st.probes.Max, 100)
		}
	}
}

func TestFill(t *testing.T) {
	a := newLinear(t, 1<<20)
	require.NoError(t, fill(a, 10, 64, 8, 32))

	m := a.Metrics()
	require.EqualValues(t, 10+5, m.Allocations)
	require.EqualValues(t, 5, m.Moves)

	require.Error(t, fill(a, 1, 8, 0, 0))
	require.Error(t, fill(a, 1, 8, 24, 0))
}

func TestDescribe(t *testing.T) {
	require.Empty(t, describe(errors.New("plain")))

	err := errors.Wrap(syscall.Errno(12), "vmem: reserve 4096 bytes")
	require.Contains(t, describe(err), "platform error 0x0000000C")
}
