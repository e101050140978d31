// Package analyzer executes a compiled HID report descriptor's item
// stream forward through HID's state machine (HID 1.11 §6.2.2) and
// produces a structured hidlayout.DescriptorLayout describing every
// field it would place in a report.
package analyzer

import (
	"fmt"
	"strconv"

	"github.com/iancoleman/strcase"

	"github.com/gpineda-dev/hiddesc/pkg/hiderr"
	"github.com/gpineda-dev/hiddesc/pkg/hidlayout"
	"github.com/gpineda-dev/hiddesc/pkg/hidusage"
	"github.com/gpineda-dev/hiddesc/pkg/items"
)

type globalSnapshot struct {
	usagePage    *uint16
	logicalMin   *int32
	logicalMax   *int32
	physicalMin  *int32
	physicalMax  *int32
	unitExponent *int32
	unit         *uint32
	reportSize   *int
	reportCount  *int
}

type scanState struct {
	usagePage    *uint16
	logicalMin   *int32
	logicalMax   *int32
	physicalMin  *int32
	physicalMax  *int32
	unitExponent *int32
	unit         *uint32
	reportSize   *int
	reportCount  *int

	usages       []uint16
	pendingUsageMin *uint16

	currentReportID uint8
	cursors         map[uint8]map[string]int
	stack           []globalSnapshot
}

func newScanState() *scanState {
	return &scanState{cursors: make(map[uint8]map[string]int)}
}

func (s *scanState) snapshot() globalSnapshot {
	return globalSnapshot{
		usagePage: s.usagePage, logicalMin: s.logicalMin, logicalMax: s.logicalMax,
		physicalMin: s.physicalMin, physicalMax: s.physicalMax,
		unitExponent: s.unitExponent, unit: s.unit,
		reportSize: s.reportSize, reportCount: s.reportCount,
	}
}

func (s *scanState) push() {
	s.stack = append(s.stack, s.snapshot())
}

// pop restores the most recent pushed global state. It fails with
// *hiderr.StateStackUnderflow if the stack is empty; this is a
// deliberate behavior choice for this toolkit, flagging a Pop with no
// matching Push as an error rather than silently ignoring it.
func (s *scanState) pop(offset int) error {
	if len(s.stack) == 0 {
		return &hiderr.StateStackUnderflow{Offset: offset}
	}
	snap := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	s.usagePage, s.logicalMin, s.logicalMax = snap.usagePage, snap.logicalMin, snap.logicalMax
	s.physicalMin, s.physicalMax = snap.physicalMin, snap.physicalMax
	s.unitExponent, s.unit = snap.unitExponent, snap.unit
	s.reportSize, s.reportCount = snap.reportSize, snap.reportCount
	return nil
}

func (s *scanState) cursor(reportType string) int {
	m, ok := s.cursors[s.currentReportID]
	if !ok {
		return 0
	}
	return m[reportType]
}

func (s *scanState) advanceCursor(reportType string, bits int) {
	m, ok := s.cursors[s.currentReportID]
	if !ok {
		m = make(map[string]int)
		s.cursors[s.currentReportID] = m
	}
	m[reportType] += bits
}

// Analyzer turns a raw descriptor byte stream into a hidlayout.DescriptorLayout.
type Analyzer struct {
	// nameCounts is keyed per (report_id, report_type) section so that
	// two different sections' fields never disambiguate against each
	// other, per §4.4's "within a report section" scoping.
	nameCounts map[string]map[string]int
	collDepth  int
}

// New returns a ready-to-use Analyzer.
func New() *Analyzer {
	return &Analyzer{nameCounts: make(map[string]map[string]int)}
}

// Analyze parses and executes the descriptor in data, returning the
// resulting layout.
func (a *Analyzer) Analyze(data []byte) (*hidlayout.DescriptorLayout, error) {
	parsed, err := items.Parse(data)
	if err != nil {
		return nil, err
	}
	layout := hidlayout.NewDescriptorLayout()
	state := newScanState()

	offset := 0
	for _, it := range parsed {
		if err := a.step(layout, state, it, offset); err != nil {
			return nil, err
		}
		offset += 1 + len(it.Data)
	}
	if a.collDepth != 0 {
		return nil, &hiderr.UnbalancedCollection{Offset: offset, Reason: "descriptor ends with an unclosed Collection"}
	}
	return layout, nil
}

func (a *Analyzer) step(layout *hidlayout.DescriptorLayout, s *scanState, it items.Item, offset int) error {
	switch it.Tag {
	case items.TagUsagePage:
		v := uint16(it.Uint32())
		s.usagePage = &v
	case items.TagLogicalMin:
		v := it.Int32()
		s.logicalMin = &v
	case items.TagLogicalMax:
		v := it.Int32()
		s.logicalMax = &v
	case items.TagPhysicalMin:
		v := it.Int32()
		s.physicalMin = &v
	case items.TagPhysicalMax:
		v := it.Int32()
		s.physicalMax = &v
	case items.TagUnitExponent:
		v := it.Int32()
		s.unitExponent = &v
	case items.TagUnit:
		v := it.Uint32()
		s.unit = &v
	case items.TagReportSize:
		v := int(it.Uint32())
		s.reportSize = &v
	case items.TagReportCount:
		v := int(it.Uint32())
		s.reportCount = &v
	case items.TagReportID:
		s.currentReportID = uint8(it.Uint32())
	case items.TagPush:
		s.push()
	case items.TagPop:
		return s.pop(offset)
	case items.TagUsage:
		s.usages = append(s.usages, uint16(it.Uint32()))
	case items.TagUsageMin:
		v := uint16(it.Uint32())
		s.pendingUsageMin = &v
	case items.TagUsageMax:
		max := uint16(it.Uint32())
		if s.pendingUsageMin != nil {
			for u := *s.pendingUsageMin; u <= max; u++ {
				s.usages = append(s.usages, u)
			}
			s.pendingUsageMin = nil
		}
	case items.TagCollection:
		a.collDepth++
		s.usages = nil
	case items.TagEndCollection:
		a.collDepth--
		if a.collDepth < 0 {
			return &hiderr.UnbalancedCollection{Offset: offset, Reason: "EndCollection without matching Collection"}
		}
	case items.TagInput:
		a.processMainItem(layout, s, "input", mainFlagsByte(it))
	case items.TagOutput:
		a.processMainItem(layout, s, "output", mainFlagsByte(it))
	case items.TagFeature:
		a.processMainItem(layout, s, "feature", mainFlagsByte(it))
	}
	return nil
}

// mainFlagsByte reads a Main item's flags payload, treating a
// zero-length payload (legal per HID 1.11, equivalent to all flags
// clear) the same as an explicit 0x00 byte.
func mainFlagsByte(it items.Item) byte {
	if len(it.Data) == 0 {
		return 0
	}
	return it.Data[0]
}

func deref32(p *int32) int32 {
	if p == nil {
		return 0
	}
	return *p
}

func derefInt(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func derefUint16(p *uint16) uint16 {
	if p == nil {
		return 0
	}
	return *p
}

func (a *Analyzer) processMainItem(layout *hidlayout.DescriptorLayout, s *scanState, reportType string, flags byte) {
	logicalMin := deref32(s.logicalMin)
	logicalMax := deref32(s.logicalMax)
	physicalMin := deref32(s.physicalMin)
	physicalMax := deref32(s.physicalMax)
	usagePage := derefUint16(s.usagePage)
	size := derefInt(s.reportSize, 0)
	count := derefInt(s.reportCount, 0)
	isSigned := logicalMin < 0
	isArray := flags&0x02 == 0

	// hasUsage reflects whether this Main item queued any usage at all,
	// not whether a given slot's resolved usage ID happens to be 0: an
	// array expanded from UsageMin(0) legitimately has a usage ID of 0
	// on its first slot, and that slot is real data, not padding.
	hasUsage := len(s.usages) > 0

	baseOffset := s.cursor(reportType)
	for i := 0; i < count; i++ {
		usageID := lastOrZero(s.usages, i)
		var name string
		if isArray {
			name = hidusage.PageName(usagePage)
		} else {
			name = hidusage.UsageName(usagePage, usageID)
		}
		name = a.disambiguate(s.currentReportID, reportType, name, hasUsage)

		field := &hidlayout.Field{
			Name:          name,
			GoName:        strcase.ToCamel(name),
			BitOffset:     baseOffset + i*size,
			BitSize:       size,
			UsagePage:     usagePage,
			UsageID:       usageID,
			LogicalMin:    logicalMin,
			LogicalMax:    logicalMax,
			PhysicalMin:   physicalMin,
			PhysicalMax:   physicalMax,
			IsSigned:      isSigned,
			HasUsage:      hasUsage,
			ReportID:      s.currentReportID,
			ReportType:    reportType,
			UsagePageName: hidusage.PageName(usagePage),
		}
		_ = layout.AddField(field)
	}
	s.advanceCursor(reportType, size*count)
	s.usages = nil
}

// lastOrZero returns usages[i] if in range, otherwise the last element
// (repeating it for a field run shorter of usages than report count),
// or the zero usage ID if usages is empty entirely (an unlabeled
// padding run).
func lastOrZero(usages []uint16, i int) uint16 {
	if len(usages) == 0 {
		return 0
	}
	if i < len(usages) {
		return usages[i]
	}
	return usages[len(usages)-1]
}

// disambiguate appends a numeric suffix to repeated field names within
// one (report_id, report_type) section, except for true padding fields
// (hasUsage false — the Main item queued no usage at all), which all
// legitimately share a name and are never disambiguated. A field with
// UsageID == 0 but hasUsage true (e.g. the first slot of a KeyboardKeys
// array expanded from UsageMin(0)) is real data and must still be
// disambiguated against its siblings, since it otherwise collides with
// the next slot's identical usage-page name. Counts are scoped per
// section so that, e.g., an "X" field in report ID 1's Input section
// never collides with an unrelated "X" field in report ID 2's Input
// section.
func (a *Analyzer) disambiguate(reportID uint8, reportType, name string, hasUsage bool) string {
	if !hasUsage {
		return name
	}
	key := fmt.Sprintf("%d:%s", reportID, reportType)
	counts, ok := a.nameCounts[key]
	if !ok {
		counts = make(map[string]int)
		a.nameCounts[key] = counts
	}
	counts[name]++
	n := counts[name]
	if n == 1 {
		return name
	}
	return name + "_" + strconv.Itoa(n)
}
