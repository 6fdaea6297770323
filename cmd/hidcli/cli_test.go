package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

var twoButtonMouse = []byte{
	0x05, 0x01, 0x09, 0x02, 0xA1, 0x01, 0x09, 0x01, 0xA1, 0x00,
	0x05, 0x09, 0x19, 0x01, 0x29, 0x03, 0x15, 0x00, 0x25, 0x01,
	0x95, 0x03, 0x75, 0x01, 0x81, 0x02, 0x95, 0x01, 0x75, 0x05,
	0x81, 0x03, 0x05, 0x01, 0x09, 0x30, 0x09, 0x31, 0x15, 0x81,
	0x25, 0x7F, 0x75, 0x08, 0x95, 0x02, 0x81, 0x06, 0xC0, 0xC0,
}

// writeTestHUT builds a usage-table directory a CLI test can point --hut-dir
// at, and returns its path.
func writeTestHUT(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	const generic = "(001)\tGeneric Desktop\n0002\tMouse\n0030\tX\n0031\tY\n"
	const button = "(009)\tButton\n0001\tButton 1\n0002\tButton 2\n0003\tButton 3\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "generic_desktop.hut"), []byte(generic), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "button.hut"), []byte(button), 0o644))
	return dir
}

// writeTestDescriptor writes raw as a whitespace-separated hex file and
// returns its path.
func writeTestDescriptor(t *testing.T, name string, raw []byte) string {
	t.Helper()
	var buf bytes.Buffer
	for i, b := range raw {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(hexByte(b))
	}
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func hexByte(b byte) string {
	const digits = "0123456789abcdef"
	return string([]byte{digits[b>>4], digits[b&0xF]})
}

// resetCLIFlagState restores the package-level flag variables bound to
// subcommand flags, since pflag leaves a Var-bound flag at its last-set
// value across Execute calls that omit it.
func resetCLIFlagState() {
	parseKernelFormat = false
	decodeDiffFile = ""
	diffAsText = false
}

// runCLI executes rootCmd with args, returning combined stdout and the
// resulting error.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetCLIFlagState()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}
