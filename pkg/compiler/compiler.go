// Package compiler walks a Schema tree and emits the HID report
// descriptor byte stream for it, tracking HID's Global state table so
// that only changed values are serialized, per HID 1.11 §6.2.2.
package compiler

import (
	"go.uber.org/multierr"

	"github.com/gpineda-dev/hiddesc/pkg/hiderr"
	"github.com/gpineda-dev/hiddesc/pkg/items"
	"github.com/gpineda-dev/hiddesc/pkg/schema"
)

// Config controls optional compiler behavior beyond the core emission
// algorithm.
type Config struct {
	// AutoPadInput, when true (the default via NewConfig), appends a
	// constant field to round the Input report's bit length up to a
	// byte boundary. AutoPadOutput and AutoPadFeature do the same for
	// the Output and Feature streams, but default to false since most
	// host-side report parsers only require Input reports to be
	// byte-aligned.
	AutoPadInput   bool
	AutoPadOutput  bool
	AutoPadFeature bool
}

// NewConfig returns the default Config: auto-pad Input only.
func NewConfig() Config {
	return Config{AutoPadInput: true}
}

type state struct {
	usagePage    *uint16
	logicalMin   *int32
	logicalMax   *int32
	physicalMin  *int32
	physicalMax  *int32
	unitExponent *int32
	unit         *uint32
	reportSize   *int
	reportCount  *int

	currentReportID uint8
	bitCursor       map[string]int
}

func newState() *state {
	return &state{bitCursor: map[string]int{"input": 0, "output": 0, "feature": 0}}
}

// Compile walks root depth-first and returns the resulting item list.
// root may be a *schema.Collection, *schema.ReportGroup, or a bare
// *schema.Field.
func Compile(root schema.Node, cfg Config) ([]items.Item, error) {
	c := &compiler{cfg: cfg, state: newState()}
	if err := c.visit(root); err != nil {
		return nil, err
	}
	c.alignToByte()
	return c.out, nil
}

type compiler struct {
	cfg   Config
	state *state
	out   []items.Item
}

func (c *compiler) emit(it items.Item) { c.out = append(c.out, it) }

func (c *compiler) visit(n schema.Node) error {
	switch v := n.(type) {
	case *schema.Collection:
		return c.visitCollection(v)
	case *schema.ReportGroup:
		return c.visitReportGroup(v)
	case *schema.Field:
		return c.visitField(v)
	default:
		return &hiderr.InvalidSchema{Node: "unknown", Reason: "unsupported schema node type"}
	}
}

func (c *compiler) visitReportGroup(g *schema.ReportGroup) error {
	if g.ID != c.state.currentReportID {
		c.emit(items.NewUnsigned(items.TagReportID, uint32(g.ID)))
		c.state.currentReportID = g.ID
	}
	for _, child := range g.Children {
		if err := c.visit(child); err != nil {
			return err
		}
	}
	return nil
}

func (c *compiler) visitCollection(col *schema.Collection) error {
	if col.UsagePage == 0 || col.Usage == 0 {
		return &hiderr.InvalidSchema{Node: "collection", Reason: "collection requires a usage page and a usage"}
	}
	if c.state.usagePage == nil || *c.state.usagePage != col.UsagePage {
		c.emit(items.NewUnsigned(items.TagUsagePage, uint32(col.UsagePage)))
		page := col.UsagePage
		c.state.usagePage = &page
	}
	c.emit(items.NewUnsigned(items.TagUsage, uint32(col.Usage)))
	c.emit(items.Item{Tag: items.TagCollection, Data: []byte{col.TypeID}})
	for _, child := range col.Children {
		if err := c.visit(child); err != nil {
			return err
		}
	}
	c.emit(items.NewBare(items.TagEndCollection))
	return nil
}

func (c *compiler) visitField(f *schema.Field) error {
	if err := validateField(f); err != nil {
		return err
	}
	st := c.state

	if st.usagePage == nil || *st.usagePage != f.UsagePage {
		c.emit(items.NewUnsigned(items.TagUsagePage, uint32(f.UsagePage)))
		page := f.UsagePage
		st.usagePage = &page
	}
	if st.logicalMin == nil || *st.logicalMin != f.LogicalMin {
		c.emit(items.NewSigned(items.TagLogicalMin, f.LogicalMin))
		v := f.LogicalMin
		st.logicalMin = &v
	}
	if st.logicalMax == nil || *st.logicalMax != f.LogicalMax {
		c.emit(items.NewSigned(items.TagLogicalMax, f.LogicalMax))
		v := f.LogicalMax
		st.logicalMax = &v
	}
	if f.PhysicalMin != nil && (st.physicalMin == nil || *st.physicalMin != *f.PhysicalMin) {
		c.emit(items.NewSigned(items.TagPhysicalMin, *f.PhysicalMin))
		v := *f.PhysicalMin
		st.physicalMin = &v
	}
	if f.PhysicalMax != nil && (st.physicalMax == nil || *st.physicalMax != *f.PhysicalMax) {
		c.emit(items.NewSigned(items.TagPhysicalMax, *f.PhysicalMax))
		v := *f.PhysicalMax
		st.physicalMax = &v
	}
	if f.UnitExponent != nil && (st.unitExponent == nil || *st.unitExponent != *f.UnitExponent) {
		c.emit(items.NewSigned(items.TagUnitExponent, *f.UnitExponent))
		v := *f.UnitExponent
		st.unitExponent = &v
	}
	if f.Unit != nil && (st.unit == nil || *st.unit != *f.Unit) {
		c.emit(items.NewUnsigned(items.TagUnit, *f.Unit))
		v := *f.Unit
		st.unit = &v
	}
	if st.reportSize == nil || *st.reportSize != f.Size {
		c.emit(items.NewUnsigned(items.TagReportSize, uint32(f.Size)))
		v := f.Size
		st.reportSize = &v
	}
	if st.reportCount == nil || *st.reportCount != f.Count {
		c.emit(items.NewUnsigned(items.TagReportCount, uint32(f.Count)))
		v := f.Count
		st.reportCount = &v
	}

	c.emitUsages(f.Usages)
	c.emit(items.Item{Tag: mainTagFor(f.ReportType), Data: []byte{mainFlags(f)}})

	st.bitCursor[f.ReportType] += f.Size * f.Count
	return nil
}

// emitUsages emits the local usage items for a field: nothing for a
// padding field with no usages, a single Usage item for one usage, a
// UsageMin/UsageMax pair when the usage list is a contiguous ascending
// run, or one Usage item per value otherwise.
func (c *compiler) emitUsages(usages []uint16) {
	switch len(usages) {
	case 0:
		return
	case 1:
		c.emit(items.NewUnsigned(items.TagUsage, uint32(usages[0])))
		return
	}
	if isContiguousAscending(usages) {
		c.emit(items.NewUnsigned(items.TagUsageMin, uint32(usages[0])))
		c.emit(items.NewUnsigned(items.TagUsageMax, uint32(usages[len(usages)-1])))
		return
	}
	for _, u := range usages {
		c.emit(items.NewUnsigned(items.TagUsage, uint32(u)))
	}
}

func isContiguousAscending(usages []uint16) bool {
	for i := 1; i < len(usages); i++ {
		if usages[i] != usages[i-1]+1 {
			return false
		}
	}
	return true
}

func mainTagFor(reportType string) items.Tag {
	switch reportType {
	case "output":
		return items.TagOutput
	case "feature":
		return items.TagFeature
	default:
		return items.TagInput
	}
}

// mainFlags builds the Main item flags byte: bit0 Constant, bit1
// Variable (array when clear), bit2 Relative. The remaining bits
// (Wrap, NonLinear, NoPreferredState, NullState, Volatile,
// BufferedBytes) are not exposed by any Schema widget and are always
// left clear.
func mainFlags(f *schema.Field) byte {
	var flags byte
	if f.IsConstant {
		flags |= 0x01
	}
	if f.IsVariable {
		flags |= 0x02
	}
	if f.IsRelative {
		flags |= 0x04
	}
	return flags
}

func validateField(f *schema.Field) error {
	if f.Size <= 0 {
		return &hiderr.InvalidSchema{Node: f.Name, Reason: "field size must be positive"}
	}
	if f.Count <= 0 {
		return &hiderr.InvalidSchema{Node: f.Name, Reason: "field count must be positive"}
	}
	if f.LogicalMin > f.LogicalMax {
		return &hiderr.InvalidSchema{Node: f.Name, Reason: "logical_min exceeds logical_max"}
	}
	switch f.ReportType {
	case "input", "output", "feature":
	default:
		return &hiderr.InvalidSchema{Node: f.Name, Reason: "report_type must be input, output or feature"}
	}
	return nil
}

// Validate walks root and reports every invalid field it finds, rather
// than stopping at the first one, so a schema with several mistakes can
// be fixed in one pass instead of one compile-and-fail cycle per
// mistake.
func Validate(root schema.Node) error {
	var err error
	walkFields(root, func(f *schema.Field) {
		if fieldErr := validateField(f); fieldErr != nil {
			err = multierr.Append(err, fieldErr)
		}
	})
	return err
}

func walkFields(n schema.Node, visit func(*schema.Field)) {
	switch v := n.(type) {
	case *schema.Field:
		visit(v)
	case *schema.Collection:
		for _, child := range v.Children {
			walkFields(child, visit)
		}
	case *schema.ReportGroup:
		for _, child := range v.Children {
			walkFields(child, visit)
		}
	}
}

// alignToByte appends a constant padding field for each report type
// whose auto-pad option is enabled and whose emitted bit length is not
// already a multiple of 8. The state's Global registers are
// deliberately left untouched afterward: this padding is an end-of-
// stream fixup, not a field a later Main item should diff against.
func (c *compiler) alignToByte() {
	c.alignType("input", c.cfg.AutoPadInput)
	c.alignType("output", c.cfg.AutoPadOutput)
	c.alignType("feature", c.cfg.AutoPadFeature)
}

func (c *compiler) alignType(reportType string, enabled bool) {
	if !enabled {
		return
	}
	used := c.state.bitCursor[reportType] % 8
	if used == 0 {
		return
	}
	pad := 8 - used
	c.emit(items.NewUnsigned(items.TagReportSize, uint32(pad)))
	c.emit(items.NewUnsigned(items.TagReportCount, 1))
	c.emit(items.Item{Tag: mainTagFor(reportType), Data: []byte{0x01}})
}
