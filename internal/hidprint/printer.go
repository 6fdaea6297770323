// Package hidprint renders a decoded item stream as the two parallel forms
// HID tooling traditionally shows side by side: raw hex bytes and a
// human-readable descriptor listing.
package hidprint

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/srg/hidrd/internal/hidtag"
	"github.com/srg/hidrd/internal/hidusage"
)

// Line is one Item rendered as its raw and human forms.
type Line struct {
	Raw    string
	Human  string
	Indent int
}

// Printer renders Item streams using a Usage Table for name resolution.
type Printer struct {
	usages *hidusage.Table
}

// New builds a Printer backed by usages. usages may be nil, in which case
// every page and usage renders as its numeric fallback.
func New(usages *hidusage.Table) *Printer {
	return &Printer{usages: usages}
}

// Lines renders every item in order, tracking Collection/End Collection
// indent the way the reference tooling does: a Collection line prints at
// its enclosing indent and increases indent for what follows; an End
// Collection line prints at the decreased indent.
func (p *Printer) Lines(items []hidtag.Item) []Line {
	lines := make([]Line, 0, len(items))
	indent := 0
	for _, item := range items {
		lineIndent := indent
		if item.Tag == hidtag.TagCollection {
			indent++
		} else if item.Tag == hidtag.TagEndCollection {
			indent--
			lineIndent = indent
		}
		lines = append(lines, Line{
			Raw:    rawForm(item),
			Human:  strings.Repeat("  ", lineIndent) + p.humanForm(item),
			Indent: lineIndent,
		})
	}
	return lines
}

// Dump renders the item stream as "raw // human" lines, one per item.
func (p *Printer) Dump(items []hidtag.Item) string {
	var b strings.Builder
	for _, line := range p.Lines(items) {
		raw := line.Raw
		if len(raw) < 30 {
			raw += strings.Repeat(" ", 30-len(raw))
		}
		human := line.Human
		if len(human) < 35 {
			human += strings.Repeat(" ", 35-len(human))
		}
		fmt.Fprintf(&b, "%s // %s\n", raw, human)
	}
	return b.String()
}

// DumpColor writes the same "raw // human" lines as Dump, colorizing the raw
// bytes and human tag name when w is a terminal. It auto-detects via
// golang.org/x/term the way an interactive CLI command would; pass
// force=true to colorize regardless (e.g. when the caller already decided,
// such as a --color flag).
func (p *Printer) DumpColor(w io.Writer, items []hidtag.Item, force bool) {
	enable := force
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		enable = true
	}
	raw := color.New(color.FgCyan)
	human := color.New(color.FgYellow)
	raw.EnableColor()
	human.EnableColor()
	if !enable {
		raw.DisableColor()
		human.DisableColor()
	}

	for _, line := range p.Lines(items) {
		rawText := line.Raw
		if len(rawText) < 30 {
			rawText += strings.Repeat(" ", 30-len(rawText))
		}
		humanText := line.Human
		if len(humanText) < 35 {
			humanText += strings.Repeat(" ", 35-len(humanText))
		}
		fmt.Fprintf(w, "%s // %s\n", raw.Sprint(rawText), human.Sprint(humanText))
	}
}

// DumpKernel renders the item stream in the Linux-kernel "hid-rdesc" C
// comment format: one tab-indented raw-bytes line followed by the human
// description as a trailing C comment.
func (p *Printer) DumpKernel(items []hidtag.Item) string {
	var b strings.Builder
	for _, line := range p.Lines(items) {
		fmt.Fprintf(&b, "\t%s\t/* %s */\n", line.Raw, strings.TrimLeft(line.Human, " "))
	}
	return b.String()
}

func rawForm(item hidtag.Item) string {
	parts := make([]string, len(item.RawBytes))
	for i, b := range item.RawBytes {
		parts[i] = fmt.Sprintf("0x%02x", b)
	}
	return strings.Join(parts, ", ") + ","
}

func (p *Printer) humanForm(item hidtag.Item) string {
	switch item.Tag {
	case hidtag.TagReportID, hidtag.TagUsageMinimum, hidtag.TagUsageMaximum,
		hidtag.TagLogicalMinimum, hidtag.TagPhysicalMinimum,
		hidtag.TagLogicalMaximum, hidtag.TagPhysicalMaximum,
		hidtag.TagReportSize, hidtag.TagReportCount, hidtag.TagUnitExponent:
		return fmt.Sprintf("%s (%d)", item.Tag, numericArg(item))

	case hidtag.TagCollection:
		name, ok := collectionNames[item.RawValue]
		if !ok {
			name = fmt.Sprintf("Vendor 0x%02x", item.RawValue)
		}
		return fmt.Sprintf("Collection (%s)", name)

	case hidtag.TagEndCollection:
		return "End Collection"

	case hidtag.TagUsagePage:
		if name, ok := p.pageName(uint16(item.RawValue)); ok {
			return fmt.Sprintf("Usage Page (%s)", name)
		}
		return fmt.Sprintf("Usage Page (Vendor Usage Page 0x%02x)", item.RawValue)

	case hidtag.TagUsage:
		return p.usageForm(item)

	case hidtag.TagInput, hidtag.TagOutput, hidtag.TagFeature:
		return fmt.Sprintf("%s %s", item.Tag, flagForm(item.RawValue))

	case hidtag.TagUnit:
		return fmt.Sprintf("Unit %s", unitForm(item.RawValue))

	case hidtag.TagPush, hidtag.TagPop:
		return item.Tag.String()

	default:
		return item.Tag.String()
	}
}

func numericArg(item hidtag.Item) int32 {
	if item.IsSigned {
		return item.SignedValue
	}
	return int32(item.RawValue)
}

func (p *Printer) pageName(page uint16) (string, bool) {
	if p.usages == nil {
		return "", false
	}
	return p.usages.PageName(page)
}

func (p *Printer) usageName(usage uint32) (string, bool) {
	if p.usages == nil {
		return "", false
	}
	return p.usages.UsageName(usage)
}

func (p *Printer) usageForm(item hidtag.Item) string {
	combined := uint32(item.UsagePage)<<16 | item.RawValue
	if name, ok := p.usageName(combined); ok {
		return fmt.Sprintf("Usage (%s)", name)
	}
	if uint32(item.UsagePage) == sensorUsagePage {
		mod := (combined & 0xF000) >> 12
		base := combined &^ 0xF000
		if baseName, ok := p.usageName(base); ok {
			return fmt.Sprintf("Usage (%s | %s)", baseName, sensorModifierNames[mod])
		}
	}
	return fmt.Sprintf("Usage (Vendor Usage 0x%02x)", item.RawValue)
}

func flagForm(flags uint32) string {
	var b strings.Builder
	b.WriteString("(")
	if flags&(1<<0) != 0 {
		b.WriteString("Cnst,")
	} else {
		b.WriteString("Data,")
	}
	if flags&(1<<1) != 0 {
		b.WriteString("Var,")
	} else {
		b.WriteString("Arr,")
	}
	if flags&(1<<2) != 0 {
		b.WriteString("Rel")
	} else {
		b.WriteString("Abs")
	}
	if flags&(1<<3) != 0 {
		b.WriteString(",Wrap")
	}
	if flags&(1<<4) != 0 {
		b.WriteString(",NonLin")
	}
	if flags&(1<<5) != 0 {
		b.WriteString(",NoPref")
	}
	if flags&(1<<6) != 0 {
		b.WriteString(",Null")
	}
	if flags&(1<<7) != 0 {
		b.WriteString(",Vol")
	}
	if flags&(1<<8) != 0 {
		b.WriteString(",Buff")
	}
	b.WriteString(")")
	return b.String()
}

// unitForm decodes the Unit item: a system nibble plus six per-dimension
// exponent nibbles, rendered length, mass, time, temperature, current,
// luminous intensity (ascending nibble position) rather than the
// descending order the reference tooling used — see the Unit ordering
// decision recorded for this rendering.
func unitForm(value uint32) string {
	system := int(value & 0xF)
	dims := [6][5]string{
		unitLengthNames,
		unitMassNames,
		unitTimeNames,
		unitTemperatureNames,
		unitCurrentNames,
		unitLuminousNames,
	}

	var parts []string
	for i := 1; i <= 6; i++ {
		nibble := (value >> uint(i*4)) & 0xF
		exp := hidtag.TwosComplement(nibble, 4)
		if exp == 0 {
			continue
		}
		name := dims[i-1][system]
		if exp != 1 {
			name = fmt.Sprintf("%s^%d", name, exp)
		}
		parts = append(parts, name)
	}
	parts = append(parts, unitSystemNames[system])
	return "(" + strings.Join(parts, ",") + ")"
}
