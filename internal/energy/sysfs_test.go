package energy

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content+"\n"), 0o644))
}

func writeRaplZone(t *testing.T, root, dir, name string, energy, maxRange uint64) string {
	t.Helper()
	zone := filepath.Join(root, "class", "powercap", dir)
	writeFile(t, filepath.Join(zone, "name"), name)
	writeFile(t, filepath.Join(zone, "max_energy_range_uj"), strconv.FormatUint(maxRange, 10))
	writeFile(t, filepath.Join(zone, "energy_uj"), strconv.FormatUint(energy, 10))
	return filepath.Join(zone, "energy_uj")
}

func TestRAPLBackend(t *testing.T) {
	ctx := context.Background()

	t.Run("sums package and dram deltas in joules", func(t *testing.T) {
		root := t.TempDir()
		pkg := writeRaplZone(t, root, "intel-rapl:0", "package-0", 1_000_000, 262_143_328_850)
		core := writeRaplZone(t, root, "intel-rapl:0:0", "core", 10, 262_143_328_850)
		dram := writeRaplZone(t, root, "intel-rapl:0:1", "dram", 500_000, 65_712_999_613)

		b := NewRAPLBackend(root)
		assert.Equal(t, MethodRAPL, b.Method())

		s, err := b.Open(ctx)
		require.NoError(t, err)
		defer s.Close()

		writeFile(t, pkg, "3000000")
		writeFile(t, dram, "1000000")
		writeFile(t, core, "99999999")

		j, err := s.Stop(ctx, 0)
		require.NoError(t, err)
		assert.InDelta(t, 2.5, j, 1e-9)
	})

	t.Run("handles counter wraparound", func(t *testing.T) {
		root := t.TempDir()
		pkg := writeRaplZone(t, root, "intel-rapl:0", "package-0", 9_000_000, 10_000_000)

		s, err := NewRAPLBackend(root).Open(ctx)
		require.NoError(t, err)

		writeFile(t, pkg, "1000000")
		j, err := s.Stop(ctx, 0)
		require.NoError(t, err)
		assert.InDelta(t, 2.0, j, 1e-9)
	})

	t.Run("ignores mmio mirror of the package counter", func(t *testing.T) {
		root := t.TempDir()
		pkg := writeRaplZone(t, root, "intel-rapl:0", "package-0", 0, 262_143_328_850)
		mmio := writeRaplZone(t, root, "intel-rapl-mmio:0", "package-0", 0, 262_143_328_850)

		s, err := NewRAPLBackend(root).Open(ctx)
		require.NoError(t, err)

		writeFile(t, pkg, "1000000")
		writeFile(t, mmio, "1000000")
		j, err := s.Stop(ctx, 0)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, j, 1e-9)
	})

	t.Run("unavailable when only the mmio mirror exists", func(t *testing.T) {
		root := t.TempDir()
		writeRaplZone(t, root, "intel-rapl-mmio:0", "package-0", 1, 100)

		_, err := NewRAPLBackend(root).Open(ctx)
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("unavailable without package zone", func(t *testing.T) {
		root := t.TempDir()
		writeRaplZone(t, root, "intel-rapl:0:1", "dram", 1, 100)

		_, err := NewRAPLBackend(root).Open(ctx)
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("unavailable without powercap class", func(t *testing.T) {
		_, err := NewRAPLBackend(t.TempDir()).Open(ctx)
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("unavailable when counter cannot be read", func(t *testing.T) {
		root := t.TempDir()
		pkg := writeRaplZone(t, root, "intel-rapl:0", "package-0", 1, 100)
		require.NoError(t, os.Remove(pkg))

		_, err := NewRAPLBackend(root).Open(ctx)
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}

func TestHwmonBackend(t *testing.T) {
	ctx := context.Background()

	t.Run("sums every energy counter", func(t *testing.T) {
		root := t.TempDir()
		c1 := filepath.Join(root, "class", "hwmon", "hwmon0", "energy1_input")
		c2 := filepath.Join(root, "class", "hwmon", "hwmon0", "energy2_input")
		c3 := filepath.Join(root, "class", "hwmon", "hwmon3", "energy1_input")
		writeFile(t, c1, "100")
		writeFile(t, c2, "200")
		writeFile(t, c3, "300")
		writeFile(t, filepath.Join(root, "class", "hwmon", "hwmon1", "temp1_input"), "42000")

		b := NewHwmonBackend(root)
		assert.Equal(t, MethodHwmon, b.Method())

		s, err := b.Open(ctx)
		require.NoError(t, err)
		defer s.Close()

		writeFile(t, c1, "1000100")
		writeFile(t, c2, "500200")
		writeFile(t, c3, "300")

		j, err := s.Stop(ctx, 0)
		require.NoError(t, err)
		assert.InDelta(t, 1.5, j, 1e-9)
	})

	t.Run("unavailable without counters", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "class", "hwmon", "hwmon0", "temp1_input"), "42000")

		_, err := NewHwmonBackend(root).Open(ctx)
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("unavailable on malformed counter", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "class", "hwmon", "hwmon0", "energy1_input"), "n/a")

		_, err := NewHwmonBackend(root).Open(ctx)
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}

func TestCounterDelta(t *testing.T) {
	assert.Equal(t, uint64(5), counterDelta(10, 15, 100))
	assert.Equal(t, uint64(15), counterDelta(90, 5, 100))
	assert.Equal(t, uint64(0), counterDelta(90, 5, 0))
}
