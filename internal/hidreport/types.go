// Package hidreport implements the HID descriptor parser: it consumes the
// item stream produced by internal/hidtag, maintains the global/local
// parser scope, and builds a read-only Report Model keyed by report ID.
package hidreport

import (
	"github.com/srg/hidrd/internal/hidtag"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// FieldKind distinguishes the three shapes a decoded slot can take.
type FieldKind uint8

const (
	FieldConstant FieldKind = iota // padding
	FieldVariable                  // one usage
	FieldArray                     // a usage table indexed by the field's value
)

// InputFlags mirrors the Input/Output/Feature flag byte's bit meanings.
type InputFlags uint16

const (
	FlagConstant InputFlags = 1 << iota
	FlagVariable
	FlagRelative
	FlagWrap
	FlagNonLinear
	FlagNoPreferred
	FlagNullState
	FlagVolatile
	FlagBufferedBytes
)

// FieldSpec is one decoded slot inside a report.
type FieldSpec struct {
	Kind      FieldKind
	BitSize   int
	Count     int // always 1 after expansion, except Array/Constant
	UsagePage uint16
	Usage     uint32   // Variable
	UsageList []uint32 // Array
	LogicalMin int32
	LogicalMax int32
	Flags      InputFlags
}

// ReportEntry is one report's worth of Field Specs plus its total byte size.
type ReportEntry struct {
	ReportID int16
	ByteSize int
	Fields   []FieldSpec
}

// ReportModel is the read-only result of parsing a descriptor. It is safe
// to share and query concurrently once Parse returns.
type ReportModel struct {
	reports      *orderedmap.OrderedMap[int16, *ReportEntry]
	items        []hidtag.Item
	win8         bool
	multitouchID int16
}

// Reports returns every declared report, in first-declared order.
func (m *ReportModel) Reports() []ReportEntry {
	out := make([]ReportEntry, 0, m.reports.Len())
	for pair := m.reports.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, *pair.Value)
	}
	return out
}

// Lookup returns the Field Specs for a report, leniently. See LookupEntry
// for the matching rules. Returns nil if nothing matches.
func (m *ReportModel) Lookup(reportID int16, payloadSize int) []FieldSpec {
	entry := m.LookupEntry(reportID, payloadSize)
	if entry == nil {
		return nil
	}
	return entry.Fields
}

// LookupEntry resolves a report leniently. It first tries an exact
// (reportID, payloadSize) match. If that misses and the descriptor
// declared an unnumbered report, it retries with reportID=-1. Failing
// that, it returns the largest declared report with the same ID whose
// declared size is <= payloadSize (devices sometimes pad trailing bytes).
// Returns nil if nothing matches. Callers that need to know whether the
// matched report carries a Report ID prefix byte should inspect the
// returned entry's ReportID field (-1 means unnumbered).
func (m *ReportModel) LookupEntry(reportID int16, payloadSize int) *ReportEntry {
	if entry, ok := m.reports.Get(reportID); ok && entry.ByteSize == payloadSize {
		return entry
	}
	if reportID != -1 {
		if entry, ok := m.reports.Get(int16(-1)); ok && entry.ByteSize == payloadSize {
			return entry
		}
	}

	var best *ReportEntry
	for pair := m.reports.Oldest(); pair != nil; pair = pair.Next() {
		entry := pair.Value
		if entry.ReportID != reportID {
			continue
		}
		if entry.ByteSize > payloadSize {
			continue
		}
		if best == nil || entry.ByteSize > best.ByteSize {
			best = entry
		}
	}
	return best
}

// Items returns the original item sequence, for pretty-printing.
func (m *ReportModel) Items() []hidtag.Item {
	return m.items
}

// Win8 reports whether a Feature item carried the Microsoft Win8
// touchscreen certification usage (0xff0000c5).
func (m *ReportModel) Win8() bool {
	return m.win8
}

// MultitouchReportID returns the report ID whose Usage list contained the
// Digitizer Contact Count usage (0x000d0051), or -1 if none did.
func (m *ReportModel) MultitouchReportID() int16 {
	return m.multitouchID
}
