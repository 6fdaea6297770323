package hidprint

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srg/hidrd/internal/hidreport"
	"github.com/srg/hidrd/internal/hidtag"
	"github.com/srg/hidrd/internal/hidusage"
	"github.com/srg/hidrd/internal/testutils"
)

var twoButtonMouse = []byte{
	0x05, 0x01, 0x09, 0x02, 0xA1, 0x01, 0x09, 0x01, 0xA1, 0x00,
	0x05, 0x09, 0x19, 0x01, 0x29, 0x03, 0x15, 0x00, 0x25, 0x01,
	0x95, 0x03, 0x75, 0x01, 0x81, 0x02, 0x95, 0x01, 0x75, 0x05,
	0x81, 0x03, 0x05, 0x01, 0x09, 0x30, 0x09, 0x31, 0x15, 0x81,
	0x25, 0x7F, 0x75, 0x08, 0x95, 0x02, 0x81, 0x06, 0xC0, 0xC0,
}

func loadTestUsages(t *testing.T) *hidusage.Table {
	t.Helper()
	dir := t.TempDir()
	const generic = "(001)\tGeneric Desktop\n0002\tMouse\n0030\tX\n0031\tY\n"
	const button = "(009)\tButton\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "generic_desktop.hut"), []byte(generic), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "button.hut"), []byte(button), 0o644))
	table, err := hidusage.Load(dir)
	require.NoError(t, err)
	return table
}

func TestPrinter_CollectionIndent(t *testing.T) {
	usages := loadTestUsages(t)
	model, err := hidreport.Parse(twoButtonMouse)
	require.NoError(t, err)

	p := New(usages)
	lines := p.Lines(model.Items())
	require.NotEmpty(t, lines)

	// item[2] is the outer "Collection (Application)" - printed at indent 0.
	assert.Equal(t, "Collection (Application)", strings.TrimSpace(lines[2].Human))
	assert.Equal(t, 0, lines[2].Indent)

	// item[4] is the nested "Collection (Physical)" - printed at indent 1.
	assert.Equal(t, "Collection (Physical)", strings.TrimSpace(lines[4].Human))
	assert.Equal(t, 1, lines[4].Indent)

	last := lines[len(lines)-1]
	assert.Equal(t, "End Collection", strings.TrimSpace(last.Human))
	assert.Equal(t, 0, last.Indent)
}

func TestPrinter_UsagePageAndVendorFallback(t *testing.T) {
	usages := loadTestUsages(t)
	model, err := hidreport.Parse(twoButtonMouse)
	require.NoError(t, err)

	p := New(usages)
	lines := p.Lines(model.Items())
	assert.Equal(t, "Usage Page (Generic Desktop)", strings.TrimSpace(lines[0].Human))
	assert.Equal(t, "Usage (Mouse)", strings.TrimSpace(lines[1].Human))

	vendor := New(nil)
	vendorLine := vendor.humanForm(model.Items()[0])
	assert.Equal(t, "Usage Page (Vendor Usage Page 0x01)", vendorLine)
}

func TestPrinter_InputFlags(t *testing.T) {
	usages := loadTestUsages(t)
	model, err := hidreport.Parse(twoButtonMouse)
	require.NoError(t, err)

	p := New(usages)
	lines := p.Lines(model.Items())

	// Input items in this descriptor: indices 12 (Var,Abs), 15 (Cnst,Var,Abs), 23 (Var,Rel).
	assert.Equal(t, "Input (Data,Var,Abs)", strings.TrimSpace(lines[12].Human))
	assert.Equal(t, "Input (Cnst,Var,Abs)", strings.TrimSpace(lines[15].Human))
	assert.Equal(t, "Input (Data,Var,Rel)", strings.TrimSpace(lines[23].Human))
}

func TestPrinter_LogicalMinimumSignedArg(t *testing.T) {
	usages := loadTestUsages(t)
	model, err := hidreport.Parse(twoButtonMouse)
	require.NoError(t, err)

	p := New(usages)
	lines := p.Lines(model.Items())

	found := false
	for _, line := range lines {
		if strings.Contains(line.Human, "Logical Minimum (-127)") {
			found = true
			break
		}
	}
	assert.True(t, found, "expected a Logical Minimum(-127) line, not (129)")
}

func TestPrinter_UnitRendering(t *testing.T) {
	// System=1 (SILinear); length exponent nibble (bits 4-7) = 1
	// (Centimeter, exponent suffix omitted since it's 1); mass exponent
	// nibble (bits 8-11) = 0xF, two's-complement -1 -> Gram^-1. Length
	// renders before mass in the output, matching the ascending nibble
	// order of the wire format.
	value := uint32(1) | (uint32(1) << 4) | (uint32(0xF) << 8)
	got := unitForm(value)
	assert.Equal(t, "(Centimeter,Gram^-1,SILinear)", got)
}

func TestPrinter_SensorUsageModifier(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sensor.hut"), []byte("(032)\tSensor\n0200\tSensor State\n"), 0o644))
	sensorUsages, err := hidusage.Load(dir)
	require.NoError(t, err)

	p := New(sensorUsages)
	// Usage Page 0x20 (Sensor), raw usage id 0x2200: base id 0x0200 with
	// modifier nibble 0x2 (Mod Max).
	item := hidtag.Item{Tag: hidtag.TagUsage, RawValue: 0x2200, UsagePage: sensorUsagePage}
	got := p.usageForm(item)
	assert.Equal(t, "Usage (Sensor State | Mod Max)", got)
}

func TestPrinter_DumpTwoItems(t *testing.T) {
	usages := loadTestUsages(t)
	model, err := hidreport.Parse(twoButtonMouse)
	require.NoError(t, err)

	p := New(usages)
	out := p.Dump(model.Items()[:2])
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)

	asserter := testutils.NewDescriptorDumpAsserter(t)
	for i, want := range []string{"0x05, 0x01,", "0x09, 0x02,"} {
		assert.True(t, strings.HasPrefix(lines[i], want))
	}
	asserter.Assert(lines[0], "0x05, 0x01,"+strings.Repeat(" ", 30-len("0x05, 0x01,"))+" // Usage Page (Generic Desktop)")
	assert.Contains(t, lines[1], "Usage (Mouse)")
}
