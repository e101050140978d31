// Package hidlayout holds the structured representation of a HID report
// descriptor produced by the analyzer: one Field per emitted Main-item
// slot, grouped into per-report-type sections and indexed by report ID.
package hidlayout

import (
	"fmt"

	"github.com/gpineda-dev/hiddesc/pkg/hiderr"
)

// Field describes one bit-packed value within a report.
type Field struct {
	Name     string
	GoName   string
	BitOffset int
	BitSize   int

	UsagePage uint16
	UsageID   uint16

	LogicalMin  int32
	LogicalMax  int32
	PhysicalMin int32
	PhysicalMax int32

	IsSigned bool

	// HasUsage records whether the Main item this field came from queued
	// any usage at all (a Usage/UsageMin/UsageMax item), as opposed to
	// having none queued. This is distinct from UsageID == 0: an array
	// field expanded from UsageMin(0)/UsageMax(N) (e.g. KeyboardKeys)
	// legitimately has UsageID == 0 on its first slot, but that slot is
	// real data, not padding, because the Main item did queue a usage
	// range. Only a Main item with an empty usage queue is padding.
	HasUsage bool

	ReportID   uint8
	ReportType string // "input", "output", "feature"

	UsagePageName string
}

// Mask returns the bit mask for this field's width.
func (f *Field) Mask() uint64 {
	return (uint64(1) << uint(f.BitSize)) - 1
}

// ByteOffset returns the byte offset of the first byte containing this
// field's bits.
func (f *Field) ByteOffset() int { return f.BitOffset / 8 }

// IsPadding reports whether this field exists only to fill space. A
// field is padding exactly when its Main item queued no usage at all,
// not merely when its resolved UsageID happens to be 0 (see HasUsage).
func (f *Field) IsPadding() bool { return !f.HasUsage }

// ValidateValue reports whether value lies within the field's logical
// range.
func (f *Field) ValidateValue(value int64) bool {
	return value >= int64(f.LogicalMin) && value <= int64(f.LogicalMax)
}

// DefaultValue returns the value an unset field should decode/encode as:
// 0 for unsigned fields, LogicalMin for signed fields (matching the
// reference runtime's zero-state convention).
func (f *Field) DefaultValue() int64 {
	if f.IsSigned {
		return int64(f.LogicalMin)
	}
	return 0
}

// ToMap renders the field as a JSON-friendly map, per the structured
// output requirement for descriptor inspection.
func (f *Field) ToMap() map[string]any {
	return map[string]any{
		"name":            f.Name,
		"go_name":         f.GoName,
		"bit_offset":      f.BitOffset,
		"bit_size":        f.BitSize,
		"byte_offset":     f.ByteOffset(),
		"mask":            f.Mask(),
		"usage_page":      f.UsagePage,
		"usage_page_name": f.UsagePageName,
		"usage_id":        f.UsageID,
		"logical_min":     f.LogicalMin,
		"logical_max":     f.LogicalMax,
		"physical_min":    f.PhysicalMin,
		"physical_max":    f.PhysicalMax,
		"is_signed":       f.IsSigned,
		"report_id":       f.ReportID,
		"report_type":     f.ReportType,
	}
}

// ReportSection groups the fields of one report type (input, output or
// feature) within a single report ID.
type ReportSection struct {
	ReportType string
	Fields     []*Field
}

// AddField appends a field to the section.
func (s *ReportSection) AddField(f *Field) { s.Fields = append(s.Fields, f) }

// HasFields reports whether the section carries any fields.
func (s *ReportSection) HasFields() bool { return len(s.Fields) > 0 }

// SizeBytes returns the number of bytes needed to hold every field in
// the section, computed from the highest bit extent actually used
// (ceil((bit_offset+bit_size)/8)), not from a running cursor, so a
// section is sized correctly even if fields were added out of order.
func (s *ReportSection) SizeBytes() int {
	maxBit := 0
	for _, f := range s.Fields {
		end := f.BitOffset + f.BitSize
		if end > maxBit {
			maxBit = end
		}
	}
	return (maxBit + 7) / 8
}

// DefaultValues returns a map of field name to that field's default
// value, for every non-padding field in the section.
func (s *ReportSection) DefaultValues() map[string]int64 {
	out := make(map[string]int64)
	for _, f := range s.Fields {
		if f.IsPadding() {
			continue
		}
		out[f.Name] = f.DefaultValue()
	}
	return out
}

// Validate checks that data names only known fields (unless allowExtra)
// and, unless allowMissing, that every non-padding field is present.
func (s *ReportSection) Validate(data map[string]int64, allowMissing, allowExtra bool) error {
	known := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		if f.IsPadding() {
			continue
		}
		known[f.Name] = true
	}
	if !allowExtra {
		for name := range data {
			if !known[name] {
				return &hiderr.UnknownField{Field: name}
			}
		}
	}
	if !allowMissing {
		for name := range known {
			if _, ok := data[name]; !ok {
				return &hiderr.UnknownField{Field: name}
			}
		}
	}
	return nil
}

// ReportLayout holds every section (input/output/feature) sharing a
// single report ID.
type ReportLayout struct {
	ReportID uint8
	Input    ReportSection
	Output   ReportSection
	Feature  ReportSection
}

func newReportLayout(id uint8) *ReportLayout {
	return &ReportLayout{
		ReportID: id,
		Input:    ReportSection{ReportType: "input"},
		Output:   ReportSection{ReportType: "output"},
		Feature:  ReportSection{ReportType: "feature"},
	}
}

// Section returns the section matching reportType, or nil if reportType
// is not one of "input", "output", "feature".
func (r *ReportLayout) Section(reportType string) *ReportSection {
	switch reportType {
	case "input":
		return &r.Input
	case "output":
		return &r.Output
	case "feature":
		return &r.Feature
	default:
		return nil
	}
}

// AddField records f under the section matching f.ReportType.
func (r *ReportLayout) AddField(f *Field) error {
	s := r.Section(f.ReportType)
	if s == nil {
		return fmt.Errorf("unknown report type %q", f.ReportType)
	}
	s.AddField(f)
	return nil
}

// Fields returns every field across all three sections, input first.
func (r *ReportLayout) Fields() []*Field {
	var out []*Field
	out = append(out, r.Input.Fields...)
	out = append(out, r.Output.Fields...)
	out = append(out, r.Feature.Fields...)
	return out
}

// DescriptorLayout indexes a complete set of ReportLayouts by report ID,
// as produced by the analyzer from a compiled descriptor.
type DescriptorLayout struct {
	reports map[uint8]*ReportLayout
	order   []uint8
}

// NewDescriptorLayout returns an empty layout.
func NewDescriptorLayout() *DescriptorLayout {
	return &DescriptorLayout{reports: make(map[uint8]*ReportLayout)}
}

// ListReportIDs returns every report ID present, in first-seen order.
func (d *DescriptorLayout) ListReportIDs() []uint8 {
	out := make([]uint8, len(d.order))
	copy(out, d.order)
	return out
}

// GetReportLayout returns the layout for reportID, creating it if it
// does not yet exist.
func (d *DescriptorLayout) GetReportLayout(reportID uint8) *ReportLayout {
	if rl, ok := d.reports[reportID]; ok {
		return rl
	}
	rl := newReportLayout(reportID)
	d.reports[reportID] = rl
	d.order = append(d.order, reportID)
	return rl
}

// LookupReportLayout returns the layout for reportID without creating
// one, reporting ok=false if it is absent.
func (d *DescriptorLayout) LookupReportLayout(reportID uint8) (*ReportLayout, bool) {
	rl, ok := d.reports[reportID]
	return rl, ok
}

// AddField records f under the layout for f.ReportID, creating that
// report's layout on first use.
func (d *DescriptorLayout) AddField(f *Field) error {
	return d.GetReportLayout(f.ReportID).AddField(f)
}

// HasMultipleReportIDs reports whether reports in this layout must be
// prefixed with a Report ID byte on the wire. This is true whenever more
// than one report ID is present, but ALSO true when exactly one report
// ID is present and it is non-zero: a descriptor that explicitly
// assigns Report ID 2 to its only report still frames every transfer
// with that ID byte, even though there is no ambiguity to resolve.
func (d *DescriptorLayout) HasMultipleReportIDs() bool {
	switch len(d.order) {
	case 0:
		return false
	case 1:
		return d.order[0] != 0
	default:
		return true
	}
}

// ResolveReportID picks the report ID a caller meant when they didn't
// name one explicitly. It returns 0 for an empty layout, the sole ID
// when there is exactly one, and fails with *hiderr.UnknownReportID
// when the layout is ambiguous and no ID was given.
func (d *DescriptorLayout) ResolveReportID(reportID *uint8) (uint8, error) {
	if reportID != nil {
		if _, ok := d.reports[*reportID]; !ok {
			return 0, &hiderr.UnknownReportID{ReportID: *reportID}
		}
		return *reportID, nil
	}
	switch len(d.order) {
	case 0:
		return 0, nil
	case 1:
		return d.order[0], nil
	default:
		return 0, &hiderr.UnknownReportID{ReportID: 0}
	}
}

// GetSize returns the byte size of the named section for reportID, not
// including a leading Report ID byte.
func (d *DescriptorLayout) GetSize(reportID uint8, reportType string) int {
	rl, ok := d.reports[reportID]
	if !ok {
		return 0
	}
	s := rl.Section(reportType)
	if s == nil {
		return 0
	}
	return s.SizeBytes()
}

// Fields returns every field across every report ID and section.
func (d *DescriptorLayout) Fields() []*Field {
	var out []*Field
	for _, id := range d.order {
		out = append(out, d.reports[id].Fields()...)
	}
	return out
}
