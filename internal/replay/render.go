package replay

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/srg/hidrd/internal/hiddecode"
	"github.com/srg/hidrd/internal/hidreport"
)

// RenderReport formats one decoded report event the way the reference
// replay tooling's get_report did: a right-justified timestamp, an optional
// "ReportID: N" prefix for numbered reports, then each field in descriptor
// order separated by "|" — Constant fields as "#", Variable fields as
// "Usage: value" (consecutive fields sharing the same usage are comma-joined
// and wrap to a second line once a usage repeats), Array fields as
// "PageName [slot, slot, ...]".
func RenderReport(time string, reportID int16, numbered bool, fields []hiddecode.DecodedField) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%10s ", time)
	sep := ""
	if numbered {
		fmt.Fprintf(&b, "ReportID: %d ", reportID)
		sep = "/"
	}
	indent := b.Len()

	type prevField struct {
		kind  hidreport.FieldKind
		usage uint32
		flags hidreport.InputFlags
		valid bool
	}
	var prev prevField
	usagesPrinted := map[string]bool{}

	for _, f := range fields {
		switch f.Kind {
		case hidreport.FieldConstant:
			fmt.Fprintf(&b, "%s # ", sep)

		case hidreport.FieldVariable:
			label := " " + f.UsageName + ":"
			if usagesPrinted[label] {
				usagesPrinted = map[string]bool{}
				b.WriteString("\n" + strings.Repeat(" ", indent))
			}
			usagesPrinted[label] = true

			s := sep
			if prev.valid && prev.kind == f.Kind && prev.usage == f.Usage && prev.flags == f.Flags {
				s = ","
				label = ""
			}

			var value string
			if f.Truncated {
				value = "<.>"
			} else if width := valueWidth(f.BitSize); width > 0 {
				value = fmt.Sprintf("%*d", width, f.Value)
			} else {
				value = fmt.Sprintf("%d", f.Value)
			}
			fmt.Fprintf(&b, "%s%s %s ", s, label, value)

		case hidreport.FieldArray:
			pageName := f.UsagePageName
			if pageName == "" {
				pageName = "Array"
			}
			names := make([]string, len(f.Slots))
			for i, slot := range f.Slots {
				names[i] = slot.Name
			}
			fmt.Fprintf(&b, "%s%s [%s] ", sep, pageName, strings.Join(names, ", "))
		}

		sep = "|"
		prev = prevField{kind: f.Kind, usage: f.Usage, flags: f.Flags, valid: true}
	}

	return b.String()
}

// valueWidth mirrors the reference tooling's decimal field width: the digit
// count of the field's maximum unsigned value plus one, so values right
// align across a column of same-size fields. Single-bit fields are left
// unpadded.
func valueWidth(size int) int {
	if size <= 1 {
		return 0
	}
	return len(strconv.FormatInt(int64(1)<<uint(size), 10)) + 1
}
