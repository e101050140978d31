package hidusage

import "fmt"

// PageName returns the human-readable name of a usage page, falling back
// to a vendor-defined label for the reserved vendor range and a generic
// placeholder for everything else.
func PageName(pageID uint16) string {
	if name, ok := pageNames[pageID]; ok {
		return name
	}
	if pageID >= 0xFF00 && pageID <= 0xFFFF {
		return fmt.Sprintf("Vendor Defined (0x%04X)", pageID)
	}
	return fmt.Sprintf("Unknown Page 0x%02X", pageID)
}

// UsageName returns the human-readable name of a usage within a page.
// usageID 0 always names a padding field, regardless of page, matching
// the analyzer's field-naming rule.
func UsageName(pageID, usageID uint16) string {
	if usageID == 0 {
		return "Padding / Reserved"
	}
	switch pageID {
	case ButtonPageID:
		return fmt.Sprintf("Button_%d", ButtonNumber(usageID))
	case GenericDesktopPageID:
		if name, ok := genericDesktopNames[usageID]; ok {
			return name
		}
	case KeyboardPageID:
		if name, ok := keyboardNames[usageID]; ok {
			return name
		}
		if name, ok := keyboardLetterOrDigitName(usageID); ok {
			return name
		}
	case LedPageID:
		if name, ok := ledNames[usageID]; ok {
			return name
		}
	case ConsumerPageID:
		if name, ok := consumerNames[usageID]; ok {
			return name
		}
	}
	return fmt.Sprintf("Usage 0x%02X", usageID)
}

// collectionTypeNames gives display names for the standard HID
// collection types (HID 1.11 §6.2.2.4).
var collectionTypeNames = map[uint8]string{
	0x00: "Physical",
	0x01: "Application",
	0x02: "Logical",
	0x03: "Report",
	0x04: "Named Array",
	0x05: "Usage Switch",
	0x06: "Usage Modifier",
}

// CollectionTypeName returns the human-readable name of a collection type.
func CollectionTypeName(typeID uint8) string {
	if name, ok := collectionTypeNames[typeID]; ok {
		return name
	}
	return fmt.Sprintf("Unknown Collection Type 0x%02X", typeID)
}
