// Package schema defines the declarative tree that the compiler walks to
// produce a HID report descriptor: fields grouped into collections and,
// optionally, scoped to report IDs without an accompanying HID
// Collection item.
package schema

// Node is any element of a Schema tree: a Field, a Collection, or a
// ReportGroup.
type Node interface {
	node()
}

// Field describes one Main item's worth of state: a run of `Count`
// fields, each `Size` bits wide, sharing a usage page, logical/physical
// range, unit, and main-item flags. Usages is consulted positionally,
// repeating its last entry if shorter than Count, exactly as the
// compiler's usage-emission logic and the analyzer's field-naming logic
// both expect.
type Field struct {
	UsagePage  uint16
	Usages     []uint16
	Size       int
	Count      int

	LogicalMin int32
	LogicalMax int32

	PhysicalMin *int32
	PhysicalMax *int32
	UnitExponent *int32
	Unit         *uint32

	ReportType string // "input", "output", or "feature"

	IsRelative bool
	IsConstant bool
	IsVariable bool // false means Array

	Name string
}

func (*Field) node() {}

// IsArray reports whether the field is a HID array rather than a
// variable field.
func (f *Field) IsArray() bool { return !f.IsVariable }

// Collection wraps a subtree in a HID Collection/EndCollection pair.
type Collection struct {
	UsagePage uint16
	Usage     uint16
	TypeID    uint8
	Children  []Node
}

func (*Collection) node() {}

// Add appends a child node and returns the collection, for fluent tree
// construction.
func (c *Collection) Add(n Node) *Collection {
	c.Children = append(c.Children, n)
	return c
}

// ReportGroup scopes its children to a Report ID without emitting a
// Collection/EndCollection pair — it is a pure bookkeeping node for the
// compiler's report-ID tracking, not a HID collection.
type ReportGroup struct {
	ID       uint8
	Children []Node
}

func (*ReportGroup) node() {}

// Add appends a child node and returns the group, for fluent tree
// construction.
func (g *ReportGroup) Add(n Node) *ReportGroup {
	g.Children = append(g.Children, n)
	return g
}
