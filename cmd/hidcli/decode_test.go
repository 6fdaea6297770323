package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCmd_Flags(t *testing.T) {
	flag := decodeCmd.Flags().Lookup("diff")
	require.NotNil(t, flag)
	assert.Equal(t, "", flag.DefValue)
}

func TestDecodeCmd_ArgsValidation(t *testing.T) {
	assert.Error(t, decodeCmd.Args(decodeCmd, []string{"a"}))
	assert.Error(t, decodeCmd.Args(decodeCmd, []string{"a", "b", "c"}))
	assert.NoError(t, decodeCmd.Args(decodeCmd, []string{"a", "b"}))
}

func TestDecodeCmd_PrintsJSONFields(t *testing.T) {
	hutDir := writeTestHUT(t)
	descriptor := writeTestDescriptor(t, "mouse.rdesc", twoButtonMouse)

	out, err := runCLI(t, "decode", "--hut-dir", hutDir, descriptor, "01 0a f6")
	require.NoError(t, err)
	assert.Contains(t, out, `"report_id"`)
	assert.Contains(t, out, `"B1"`)
}

func TestDecodeCmd_DiffNoDifferences(t *testing.T) {
	hutDir := writeTestHUT(t)
	descriptor := writeTestDescriptor(t, "mouse.rdesc", twoButtonMouse)

	baseline, err := runCLI(t, "decode", "--hut-dir", hutDir, descriptor, "01 0a f6")
	require.NoError(t, err)

	expectedPath := filepath.Join(t.TempDir(), "expected.json")
	require.NoError(t, os.WriteFile(expectedPath, []byte(baseline), 0o644))

	out, err := runCLI(t, "decode", "--hut-dir", hutDir, "--diff", expectedPath, descriptor, "01 0a f6")
	require.NoError(t, err)
	assert.Contains(t, out, "no differences")
}

func TestDecodeCmd_DiffMismatchReturnsError(t *testing.T) {
	hutDir := writeTestHUT(t)
	descriptor := writeTestDescriptor(t, "mouse.rdesc", twoButtonMouse)

	expectedPath := filepath.Join(t.TempDir(), "expected.json")
	require.NoError(t, os.WriteFile(expectedPath, []byte(`{"report_id":-1,"fields":[]}`), 0o644))

	out, err := runCLI(t, "decode", "--hut-dir", hutDir, "--diff", expectedPath, descriptor, "01 0a f6")
	assert.Error(t, err)
	assert.NotEmpty(t, out)
}

func TestDecodeCmd_InvalidHexPayloadErrors(t *testing.T) {
	hutDir := writeTestHUT(t)
	descriptor := writeTestDescriptor(t, "mouse.rdesc", twoButtonMouse)

	_, err := runCLI(t, "decode", "--hut-dir", hutDir, descriptor, "zz")
	assert.Error(t, err)
}
