// Package hiddecode decodes a raw HID report payload against a Report
// Model: it extracts each Field Spec's value at its bit offset, sign-extends
// where required, and binds the result to its usage name.
package hiddecode

import (
	"fmt"
	"strings"

	"github.com/srg/hidrd/internal/hidreport"
	"github.com/srg/hidrd/internal/hidtag"
	"github.com/srg/hidrd/internal/hidusage"
)

// truncatedPlaceholder marks a field (or array slot) that reads entirely
// past the end of a short payload.
const truncatedPlaceholder = "<.>"

// ArraySlot is one resolved value of an Array Field Spec.
type ArraySlot struct {
	Raw  int32
	Name string // resolved usage name, "NN" hex fallback, or "" (null slot)
}

// DecodedField is one Field Spec's decoded result.
type DecodedField struct {
	Kind          hidreport.FieldKind
	UsagePage     uint16
	UsagePageName string
	BitSize       int
	Flags         hidreport.InputFlags

	// Variable only.
	Usage     uint32
	UsageName string
	Value     int32

	// Array only.
	Slots []ArraySlot

	Truncated bool
}

// Decode resolves payload against model (trying payload[0] as a Report ID
// first, then the unnumbered report, then the lenient largest-match
// fallback — see ReportModel.LookupEntry) and decodes every Field Spec of
// the matched report in order. It returns the matched report ID (-1 if
// unnumbered) alongside the decoded fields.
func Decode(model *hidreport.ReportModel, usages *hidusage.Table, payload []byte) ([]DecodedField, int16, error) {
	if len(payload) == 0 {
		return nil, 0, &UnresolvedReportError{ReportID: -1, PayloadSize: 0}
	}

	candidate := int16(payload[0])
	entry := model.LookupEntry(candidate, len(payload))
	if entry == nil {
		return nil, 0, &UnresolvedReportError{ReportID: candidate, PayloadSize: len(payload)}
	}

	bitOffset := 0
	if entry.ReportID != -1 {
		bitOffset = 8
	}

	fields := make([]DecodedField, 0, len(entry.Fields))
	for _, spec := range entry.Fields {
		df := DecodedField{Kind: spec.Kind, UsagePage: spec.UsagePage, BitSize: spec.BitSize, Flags: spec.Flags}
		if name, ok := usages.PageName(spec.UsagePage); ok {
			df.UsagePageName = name
		}

		switch spec.Kind {
		case hidreport.FieldConstant:
			_, truncated := getValue(payload, bitOffset, spec.BitSize, false)
			df.Truncated = truncated
			bitOffset += spec.BitSize

		case hidreport.FieldVariable:
			v, truncated := getValue(payload, bitOffset, spec.BitSize, spec.LogicalMin < 0)
			df.Truncated = truncated
			df.Usage = spec.Usage
			df.Value = v
			if truncated {
				df.UsageName = truncatedPlaceholder
			} else {
				df.UsageName = renderUsage(usages, spec.Usage)
			}
			bitOffset += spec.BitSize

		case hidreport.FieldArray:
			signed := spec.LogicalMin < 0
			slots := make([]ArraySlot, 0, spec.Count)
			for i := 0; i < spec.Count; i++ {
				v, truncated := getValue(payload, bitOffset, spec.BitSize, signed)
				bitOffset += spec.BitSize
				if truncated {
					df.Truncated = true
					slots = append(slots, ArraySlot{Raw: v, Name: truncatedPlaceholder})
					continue
				}
				slots = append(slots, ArraySlot{Raw: v, Name: renderArraySlot(usages, spec, df.UsagePageName, v)})
			}
			df.Slots = slots
		}

		fields = append(fields, df)
	}

	return fields, entry.ReportID, nil
}

// getValue extracts size bits starting at startBit from payload, least
// significant bit first, optionally sign-extending. Bytes beyond the end
// of payload are treated as zero; if startBit itself falls past the end,
// the field is reported as truncated.
func getValue(payload []byte, startBit, size int, signed bool) (int32, bool) {
	if size <= 0 {
		return 0, false
	}
	startByte := startBit / 8
	if startByte >= len(payload) {
		return 0, true
	}
	endByte := (startBit+size)/8 + 1
	if endByte > len(payload) {
		endByte = len(payload)
	}

	var raw uint64
	for i := startByte; i < endByte; i++ {
		raw |= uint64(payload[i]) << uint(8*(i-startByte))
	}

	raw >>= uint(startBit % 8)
	if size < 64 {
		raw &= (uint64(1) << uint(size)) - 1
	}

	val := int32(raw)
	if signed && size > 1 {
		val = hidtag.TwosComplement(uint32(raw), size)
	}
	return val, false
}

// renderUsage resolves a combined 32-bit usage to display text: "B<n>" on
// the Button page, its Usage Table name, or a "0xNNNN" fallback.
func renderUsage(usages *hidusage.Table, usage uint32) string {
	page := uint16(usage >> 16)
	if name, ok := usages.PageName(page); ok && name == "Button" {
		return fmt.Sprintf("B%d", usage&0xFF)
	}
	if name, ok := usages.UsageName(usage); ok {
		return name
	}
	return fmt.Sprintf("0x%04x", usage)
}

// renderArraySlot renders one Array slot's raw value: empty if out of the
// field's logical range, its resolved usage name when the slot indexes
// into the field's usage list on a non-vendor page (skipping "no event
// indicated" entries), or a 2-digit hex fallback.
func renderArraySlot(usages *hidusage.Table, spec hidreport.FieldSpec, pageName string, v int32) string {
	if v < spec.LogicalMin || v > spec.LogicalMax {
		return ""
	}
	if !strings.Contains(strings.ToLower(pageName), "vendor") && v > 0 && int(v) < len(spec.UsageList) {
		name := renderUsage(usages, spec.UsageList[v])
		if strings.Contains(strings.ToLower(name), "no event indicated") {
			return ""
		}
		return name
	}
	return fmt.Sprintf("%02x", uint32(v))
}
