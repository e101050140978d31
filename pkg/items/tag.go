// Package items defines the set of HID short-item tags and serializes /
// parses them to and from the byte stream defined by USB HID 1.11 §6.2.2.
package items

// Tag identifies a HID short item. The byte value already carries the
// item's Type in bits 3-2 (as in the header byte); the size
// code (bits 1-0) is supplied separately at serialization time, so every
// Tag constant below always has its own low two bits clear.
type Tag uint8

// Main items (Type = Main).
const (
	TagInput         Tag = 0x80
	TagOutput        Tag = 0x90
	TagFeature       Tag = 0xB0
	TagCollection    Tag = 0xA0
	TagEndCollection Tag = 0xC0
)

// Global items (Type = Global).
const (
	TagUsagePage    Tag = 0x04
	TagLogicalMin   Tag = 0x14
	TagLogicalMax   Tag = 0x24
	TagPhysicalMin  Tag = 0x34
	TagPhysicalMax  Tag = 0x44
	TagUnitExponent Tag = 0x54
	TagUnit         Tag = 0x64
	TagReportSize   Tag = 0x74
	TagReportID     Tag = 0x84
	TagReportCount  Tag = 0x94
	TagPush         Tag = 0xA4
	TagPop          Tag = 0xB4
)

// Local items (Type = Local).
const (
	TagUsage             Tag = 0x08
	TagUsageMin          Tag = 0x18
	TagUsageMax          Tag = 0x28
	TagDesignatorIndex   Tag = 0x38
	TagDesignatorMin     Tag = 0x48
	TagDesignatorMax     Tag = 0x58
	TagStringIndex       Tag = 0x78
	TagStringMin         Tag = 0x88
	TagStringMax         Tag = 0x98
	TagDelimiter         Tag = 0xA8
)

// ItemType classifies a Tag as carrying persistent state (Global), a
// per-field label consumed at the next Main item (Local), or field
// generation itself (Main).
type ItemType uint8

const (
	ItemTypeMain     ItemType = 0
	ItemTypeGlobal   ItemType = 1
	ItemTypeLocal    ItemType = 2
	ItemTypeReserved ItemType = 3
)

// Type returns the item type encoded in the tag's bits 3-2.
func (t Tag) Type() ItemType {
	return ItemType((t & 0x0C) >> 2)
}

// SizeCode is the 2-bit payload-size selector in a short item's header
// byte: 0 → 0 bytes, 1 → 1 byte, 2 → 2 bytes, 3 → 4 bytes.
type SizeCode uint8

const (
	SizeCode0  SizeCode = 0
	SizeCode8  SizeCode = 1
	SizeCode16 SizeCode = 2
	SizeCode32 SizeCode = 3
)

// PayloadLen returns the number of payload bytes a size code represents.
func (s SizeCode) PayloadLen() int {
	switch s {
	case SizeCode0:
		return 0
	case SizeCode8:
		return 1
	case SizeCode16:
		return 2
	case SizeCode32:
		return 4
	default:
		return 0
	}
}

// sizeCodeForLen is the inverse of PayloadLen for the four legal lengths.
func sizeCodeForLen(n int) SizeCode {
	switch n {
	case 0:
		return SizeCode0
	case 1:
		return SizeCode8
	case 2:
		return SizeCode16
	default:
		return SizeCode32
	}
}

// header returns the one-byte short-item prefix for this tag at the given
// size code: (tag & 0xFC) | size_code. The mask is redundant for our own
// constants (already clear in their low bits) but keeps the formula
// correct for a Tag value reconstructed from a raw header byte.
func (t Tag) header(size SizeCode) byte {
	return byte(t&0xFC) | byte(size)
}

// isUnsigned reports whether a tag's payload is interpreted as an unsigned
// integer rather than signed two's complement. Grounded in the reference
// parser: usage identifiers, counts and sizes are unsigned; logical/
// physical extents, unit exponent and unit are signed.
func (t Tag) isUnsigned() bool {
	switch t {
	case TagUsagePage, TagUsage, TagUsageMin, TagUsageMax,
		TagReportID, TagReportSize, TagReportCount:
		return true
	default:
		return false
	}
}

// Name returns a short human-readable identifier for known tags, used in
// structured output and error messages. Unknown tags render as "Unknown".
func (t Tag) Name() string {
	switch t {
	case TagInput:
		return "Input"
	case TagOutput:
		return "Output"
	case TagFeature:
		return "Feature"
	case TagCollection:
		return "Collection"
	case TagEndCollection:
		return "EndCollection"
	case TagUsagePage:
		return "UsagePage"
	case TagLogicalMin:
		return "LogicalMin"
	case TagLogicalMax:
		return "LogicalMax"
	case TagPhysicalMin:
		return "PhysicalMin"
	case TagPhysicalMax:
		return "PhysicalMax"
	case TagUnitExponent:
		return "UnitExponent"
	case TagUnit:
		return "Unit"
	case TagReportSize:
		return "ReportSize"
	case TagReportID:
		return "ReportID"
	case TagReportCount:
		return "ReportCount"
	case TagPush:
		return "Push"
	case TagPop:
		return "Pop"
	case TagUsage:
		return "Usage"
	case TagUsageMin:
		return "UsageMin"
	case TagUsageMax:
		return "UsageMax"
	case TagDesignatorIndex:
		return "DesignatorIndex"
	case TagDesignatorMin:
		return "DesignatorMin"
	case TagDesignatorMax:
		return "DesignatorMax"
	case TagStringIndex:
		return "StringIndex"
	case TagStringMin:
		return "StringMin"
	case TagStringMax:
		return "StringMax"
	case TagDelimiter:
		return "Delimiter"
	default:
		return "Unknown"
	}
}
