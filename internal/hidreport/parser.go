package hidreport

import (
	"github.com/srg/hidrd/internal/hidtag"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const win8TouchUsage = 0xFF0000C5
const multitouchContactCountUsage = 0x000D0051

// globalState is the subset of parser state that Push/Pop save and restore.
// Local state is deliberately excluded: Push/Pop never touch it.
type globalState struct {
	usagePage     uint32
	logicalMin    int32
	logicalMax    int32
	physicalMin   int32
	physicalMax   int32
	unitExponent  int32
	unit          uint32
	reportSize    int
	reportCount   int
	reportID      int16
}

// localState is cleared after every Main item and after every Usage Page
// or Collection change.
type localState struct {
	usageList      []uint32
	usageMin       uint32
	usageMinSet    bool
	usageMax       uint32
	usageMaxSet    bool
	designatorMin  int
	designatorMax  int
	stringMin      int
	stringMax      int
}

func (l *localState) reset() {
	*l = localState{}
}

// parser walks a decoded item stream and accumulates the Report Model.
type parser struct {
	global globalState
	local  localState
	stack  []globalState

	reports *orderedmap.OrderedMap[int16, *ReportEntry]
	current *ReportEntry
	bitSize int // bits accumulated into the current report so far

	win8         bool
	multitouchID int16
}

// Parse decodes and interprets a complete HID report descriptor, returning
// the resulting Report Model. Parse fails only on a malformed item stream
// (unknown tag, truncated payload, or Pop with an empty stack); semantic
// oddities in an otherwise well-formed descriptor (e.g. Usage with no
// preceding Usage Page) are tolerated the way real HID parsers tolerate
// them.
func Parse(descriptor []byte) (*ReportModel, error) {
	items, err := hidtag.Decode(descriptor)
	if err != nil {
		return nil, &ParseError{Offset: offsetOf(err), Reason: "decoding item stream", Err: err}
	}

	p := &parser{
		global:       globalState{reportID: -1},
		reports:      orderedmap.New[int16, *ReportEntry](),
		multitouchID: -1,
	}

	annotated := make([]hidtag.Item, len(items))
	for idx, item := range items {
		item.UsagePage = uint16(p.global.usagePage >> 16)
		if err := p.apply(item); err != nil {
			return nil, err
		}
		annotated[idx] = item
	}
	p.flush()

	return &ReportModel{
		reports:      p.reports,
		items:        annotated,
		win8:         p.win8,
		multitouchID: p.multitouchID,
	}, nil
}

func offsetOf(err error) int {
	switch e := err.(type) {
	case *hidtag.UnknownTagError:
		return e.Offset
	case *hidtag.TruncatedItemError:
		return e.Offset
	default:
		return 0
	}
}

func (p *parser) apply(item hidtag.Item) error {
	switch item.Tag {
	case hidtag.TagUsagePage:
		p.global.usagePage = item.RawValue << 16
		p.local.reset()

	case hidtag.TagLogicalMinimum:
		p.global.logicalMin = item.SignedValue
	case hidtag.TagLogicalMaximum:
		p.global.logicalMax = reinterpretMaximum(item.RawValue, item.Size, p.global.logicalMin)
	case hidtag.TagPhysicalMinimum:
		p.global.physicalMin = item.SignedValue
	case hidtag.TagPhysicalMaximum:
		p.global.physicalMax = reinterpretMaximum(item.RawValue, item.Size, p.global.physicalMin)
	case hidtag.TagUnitExponent:
		p.global.unitExponent = item.SignedValue
	case hidtag.TagUnit:
		p.global.unit = item.RawValue
	case hidtag.TagReportSize:
		p.global.reportSize = int(item.RawValue)
	case hidtag.TagReportCount:
		p.global.reportCount = int(item.RawValue)

	case hidtag.TagReportID:
		if p.bitSize > 8 {
			p.flush()
		}
		p.global.reportID = int16(item.RawValue)
		p.bitSize = 8

	case hidtag.TagPush:
		p.stack = append(p.stack, p.global)
	case hidtag.TagPop:
		if len(p.stack) == 0 {
			return &ParseError{Offset: item.Offset, Reason: "Pop with empty Global-state stack"}
		}
		p.global = p.stack[len(p.stack)-1]
		p.stack = p.stack[:len(p.stack)-1]

	case hidtag.TagUsage:
		combined := p.global.usagePage | item.RawValue
		p.local.usageList = append(p.local.usageList, combined)
		if combined == multitouchContactCountUsage {
			p.multitouchID = p.global.reportID
		}
	case hidtag.TagUsageMinimum:
		p.local.usageMin = p.global.usagePage | item.RawValue
		p.local.usageMinSet = true
	case hidtag.TagUsageMaximum:
		p.local.usageMax = p.global.usagePage | item.RawValue
		p.local.usageMaxSet = true
	case hidtag.TagDesignatorIndex, hidtag.TagDesignatorMinimum, hidtag.TagDesignatorMaximum,
		hidtag.TagStringIndex, hidtag.TagStringMinimum, hidtag.TagStringMaximum, hidtag.TagDelimiter:
		// Not surfaced in the Report Model; tracked in Items() only.

	case hidtag.TagInput:
		p.expandMain(InputFlags(item.RawValue), false)
	case hidtag.TagOutput:
		p.expandMain(InputFlags(item.RawValue), false)
	case hidtag.TagFeature:
		p.expandMain(InputFlags(item.RawValue), true)

	case hidtag.TagCollection, hidtag.TagEndCollection:
		p.local.reset()
	}
	return nil
}

// reinterpretMaximum decides whether a Logical/Physical Maximum's raw bytes
// should be read as unsigned or as a two's-complement signed value: if the
// minimum (always signed) exceeds the maximum read as unsigned, the maximum
// is reinterpreted as signed too.
func reinterpretMaximum(raw uint32, size int, logicalMin int32) int32 {
	unsigned := int32(raw)
	if logicalMin > unsigned {
		return hidtag.TwosComplement(raw, size*8)
	}
	return unsigned
}

func (p *parser) ensureReport() {
	if p.current == nil {
		p.current = &ReportEntry{ReportID: p.global.reportID}
	}
}

// flush commits the in-progress report accumulator to the model, mirroring
// the original tool's behavior of dropping an accumulator that never grew
// past the Report ID's own 8-bit prefix.
func (p *parser) flush() {
	if p.current == nil || p.bitSize <= 8 {
		p.current = nil
		p.bitSize = 0
		return
	}
	byteSize := (p.bitSize + 7) / 8
	entry := p.current
	entry.ByteSize = byteSize

	if existing, ok := p.reports.Get(entry.ReportID); ok {
		existing.Fields = append(existing.Fields, entry.Fields...)
		if byteSize > existing.ByteSize {
			existing.ByteSize = byteSize
		}
	} else {
		p.reports.Set(entry.ReportID, entry)
	}

	p.current = nil
	p.bitSize = 0
}

func (p *parser) expandMain(flags InputFlags, isFeature bool) {
	p.ensureReport()

	size := p.global.reportSize
	count := p.global.reportCount

	switch {
	case flags&FlagConstant != 0:
		p.current.Fields = append(p.current.Fields, FieldSpec{
			Kind:       FieldConstant,
			BitSize:    size * count,
			Count:      1,
			UsagePage:  uint16(p.global.usagePage >> 16),
			LogicalMin: p.global.logicalMin,
			LogicalMax: p.global.logicalMax,
			Flags:      flags,
		})

	case flags&FlagVariable != 0:
		for i := 0; i < count; i++ {
			usage := p.usageForIndex(i)
			if isFeature && usage == win8TouchUsage {
				p.win8 = true
			}
			p.current.Fields = append(p.current.Fields, FieldSpec{
				Kind:       FieldVariable,
				BitSize:    size,
				Count:      1,
				UsagePage:  uint16(p.global.usagePage >> 16),
				Usage:      usage,
				LogicalMin: p.global.logicalMin,
				LogicalMax: p.global.logicalMax,
				Flags:      flags,
			})
		}

	default: // Array
		usages := p.local.usageList
		if len(usages) == 0 && p.local.usageMinSet && p.local.usageMaxSet {
			for u := p.local.usageMin; u <= p.local.usageMax; u++ {
				usages = append(usages, u)
			}
		}
		if isFeature && len(usages) > 0 && usages[len(usages)-1] == win8TouchUsage {
			p.win8 = true
		}
		p.current.Fields = append(p.current.Fields, FieldSpec{
			Kind:       FieldArray,
			BitSize:    size,
			Count:      count,
			UsagePage:  uint16(p.global.usagePage >> 16),
			UsageList:  usages,
			LogicalMin: p.global.logicalMin,
			LogicalMax: p.global.logicalMax,
			Flags:      flags,
		})
	}

	p.bitSize += size * count
	p.local.reset()
}

// usageForIndex resolves the usage assigned to the i'th Variable field of a
// Main item: the usage_min..usage_max range if both were declared, else the
// i'th entry of the explicit usage list (repeating the last entry once the
// list is exhausted, or 0 if the list was empty).
func (p *parser) usageForIndex(i int) uint32 {
	if p.local.usageMinSet && p.local.usageMaxSet {
		u := p.local.usageMin + uint32(i)
		if u > p.local.usageMax {
			u = p.local.usageMax
		}
		return u
	}
	if len(p.local.usageList) == 0 {
		return 0
	}
	if i < len(p.local.usageList) {
		return p.local.usageList[i]
	}
	return p.local.usageList[len(p.local.usageList)-1]
}
