package hidusage

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetDefaultForTest clears the process-wide singleton so tests can
// exercise LoadDefault's single-initialization discipline independently.
func resetDefaultForTest() {
	defaultOnce = sync.Once{}
	defaultTable = nil
	defaultErr = nil
}

const sampleGenericDesktop = `(001)	Generic Desktop
0001	Pointer
0002	Mouse
0004	Joystick
0006	Keyboard
0030	X
0031	Y
0033	Rx
000e	Reserved for future use
0090-0091	Reserved Range
`

const sampleButton = `(009)	Button
0001	Button 1
0002	Button 2
0003	Button 3
`

func writeHUTFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "generic_desktop.hut"), []byte(sampleGenericDesktop), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "button.hut"), []byte(sampleButton), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored, not .hut"), 0o644))
	return dir
}

func TestLoad_PageAndUsageNames(t *testing.T) {
	dir := writeHUTFixtures(t)
	table, err := Load(dir)
	require.NoError(t, err)

	name, ok := table.PageName(1)
	assert.True(t, ok)
	assert.Equal(t, "Generic Desktop", name)

	name, ok = table.PageName(9)
	assert.True(t, ok)
	assert.Equal(t, "Button", name)

	_, ok = table.PageName(0xFFFF)
	assert.False(t, ok)
}

func TestLoad_UsageNames(t *testing.T) {
	dir := writeHUTFixtures(t)
	table, err := Load(dir)
	require.NoError(t, err)

	name, ok := table.UsageName((1 << 16) | 0x0030)
	assert.True(t, ok)
	assert.Equal(t, "X", name)

	name, ok = table.UsageName((9 << 16) | 0x0002)
	assert.True(t, ok)
	assert.Equal(t, "Button 2", name)

	_, ok = table.UsageName((1 << 16) | 0x9999)
	assert.False(t, ok)
}

func TestLoad_SkipsReservedAndRanged(t *testing.T) {
	dir := writeHUTFixtures(t)
	table, err := Load(dir)
	require.NoError(t, err)

	_, ok := table.UsageName((1 << 16) | 0x000e)
	assert.False(t, ok, "reserved usage must not be registered")

	// 0x90 and 0x91 are only declared via the skipped ranged line.
	_, ok = table.UsageName((1 << 16) | 0x0090)
	assert.False(t, ok)
}

func TestLoad_MissingDirectory(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
}

func TestLoadDefault_SingleInitialization(t *testing.T) {
	dir := writeHUTFixtures(t)

	resetDefaultForTest()
	t1, err1 := LoadDefault(dir)
	require.NoError(t, err1)

	// A second call, even with a different (bogus) directory, must return
	// the already-loaded table rather than re-reading the filesystem.
	t2, err2 := LoadDefault(filepath.Join(t.TempDir(), "ignored"))
	require.NoError(t, err2)
	assert.Same(t, t1, t2)
}
