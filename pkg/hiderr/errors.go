// Package hiderr defines the error taxonomy shared by the items, compiler,
// analyzer and codec packages. Every error surfaced by a top-level call
// (Compile, Analyze, Encode, Decode) is one of the concrete types below so
// that callers can branch on taxonomy with errors.As instead of string
// matching.
package hiderr

import "fmt"

// MalformedDescriptor indicates a truncated byte stream, an invalid size
// code, or an item whose payload runs past the end of the buffer.
type MalformedDescriptor struct {
	Offset int
	Reason string
}

func (e *MalformedDescriptor) Error() string {
	return fmt.Sprintf("malformed descriptor at byte offset %d: %s", e.Offset, e.Reason)
}

// UnsupportedLongItem is raised when the HID long-item marker (0xFE) is
// encountered; long items are reserved by HID 1.11 but unused in practice
// and this toolkit does not implement them.
type UnsupportedLongItem struct {
	Offset int
}

func (e *UnsupportedLongItem) Error() string {
	return fmt.Sprintf("unsupported long item at byte offset %d", e.Offset)
}

// UnbalancedCollection is raised when an EndCollection item appears without
// a matching open Collection, or when a Collection is never closed before
// the descriptor ends.
type UnbalancedCollection struct {
	Offset int
	Reason string
}

func (e *UnbalancedCollection) Error() string {
	return fmt.Sprintf("unbalanced collection at byte offset %d: %s", e.Offset, e.Reason)
}

// StateStackUnderflow is raised when a Pop item is encountered with an
// empty push stack.
type StateStackUnderflow struct {
	Offset int
}

func (e *StateStackUnderflow) Error() string {
	return fmt.Sprintf("pop with empty state stack at byte offset %d", e.Offset)
}

// InvalidSchema is raised by the Compiler when a Schema node is internally
// inconsistent (missing usage page, negative counts, inverted logical
// range, ...).
type InvalidSchema struct {
	Node   string
	Reason string
}

func (e *InvalidSchema) Error() string {
	return fmt.Sprintf("invalid schema node %s: %s", e.Node, e.Reason)
}

// FieldOverflow is raised by the Codec's Encode in strict mode when a value
// falls outside a field's logical range.
type FieldOverflow struct {
	Field      string
	Value      int64
	LogicalMin int32
	LogicalMax int32
}

func (e *FieldOverflow) Error() string {
	return fmt.Sprintf("value %d for field %q out of range [%d, %d]", e.Value, e.Field, e.LogicalMin, e.LogicalMax)
}

// UnknownField is raised by the Codec's Encode when the caller's mapping
// names a field that does not exist in the selected report section.
type UnknownField struct {
	Field string
}

func (e *UnknownField) Error() string {
	return fmt.Sprintf("unknown field %q for selected report section", e.Field)
}

// UnknownReportID is raised by the Codec's Decode when the first byte of a
// multiplexed report matches no section in the layout.
type UnknownReportID struct {
	ReportID uint8
}

func (e *UnknownReportID) Error() string {
	return fmt.Sprintf("unknown report ID %d", e.ReportID)
}
