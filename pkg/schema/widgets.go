package schema

import "github.com/gpineda-dev/hiddesc/pkg/hidusage"

// NewAxis builds a single-field variable input on the Generic Desktop
// page for a linear or rotational axis, with the caller's bit width,
// logical range, and relative/absolute choice.
func NewAxis(usage uint16, size int, minVal, maxVal int32, relative bool) *Field {
	return &Field{
		UsagePage:  hidusage.GenericDesktopPageID,
		Usages:     []uint16{usage},
		Size:       size,
		Count:      1,
		LogicalMin: minVal,
		LogicalMax: maxVal,
		ReportType: "input",
		IsRelative: relative,
		IsVariable: true,
	}
}

// NewButtonArray builds a run of 1-bit variable button fields on the
// Button page, starting at the given 1-based button number.
func NewButtonArray(count int, startIndex int) *Field {
	usages := make([]uint16, count)
	for i := 0; i < count; i++ {
		usages[i] = hidusage.MakeButtonUsage(startIndex + i)
	}
	return &Field{
		UsagePage:  hidusage.ButtonPageID,
		Usages:     usages,
		Size:       1,
		Count:      count,
		LogicalMin: 0,
		LogicalMax: 1,
		ReportType: "input",
		IsVariable: true,
	}
}

// NewPadding builds a constant field of the given bit width with no
// usage, used to fill a report out to a byte boundary or to reserve
// space for a future field.
func NewPadding(bits int) *Field {
	return &Field{
		Size:       bits,
		Count:      1,
		LogicalMin: 0,
		LogicalMax: 0,
		ReportType: "input",
		IsConstant: true,
		IsVariable: true,
	}
}

// NewDPad builds a 4-bit variable hat-switch field reporting direction
// in 45-degree increments (logical 0-7, eight directions), using
// English Rotation units of degrees. The Null State flag is not set.
func NewDPad() *Field {
	physMin := int32(0)
	physMax := int32(315)
	unitExp := int32(0)
	unit := uint32(0x14)
	return &Field{
		UsagePage:    hidusage.GenericDesktopPageID,
		Usages:       []uint16{hidusage.HatSwitch},
		Size:         4,
		Count:        1,
		LogicalMin:   0,
		LogicalMax:   7,
		PhysicalMin:  &physMin,
		PhysicalMax:  &physMax,
		UnitExponent: &unitExp,
		Unit:         &unit,
		ReportType:   "input",
		IsVariable:   true,
	}
}

// NewKeyboardKeys builds an array field reporting up to `count`
// simultaneously pressed keys from the full Keyboard/Keypad usage range
// (0x00-0x65), one byte per slot.
func NewKeyboardKeys(count int) *Field {
	usages := make([]uint16, 0x66)
	for i := range usages {
		usages[i] = uint16(i)
	}
	return &Field{
		UsagePage:  hidusage.KeyboardPageID,
		Usages:     usages,
		Size:       8,
		Count:      count,
		LogicalMin: 0,
		LogicalMax: 101,
		ReportType: "input",
		IsVariable: false,
	}
}

// NewLedArray builds a 5-bit variable output field for the standard
// keyboard indicator LEDs: Num Lock, Caps Lock, Scroll Lock, Compose,
// Kana.
func NewLedArray() *Field {
	return &Field{
		UsagePage: hidusage.LedPageID,
		Usages: []uint16{
			hidusage.LedNumLock, hidusage.LedCapsLock, hidusage.LedScrollLock,
			hidusage.LedCompose, hidusage.LedKana,
		},
		Size:       1,
		Count:      5,
		LogicalMin: 0,
		LogicalMax: 1,
		ReportType: "output",
		IsVariable: true,
	}
}

// NewMediaKeys builds a variable input field on the Consumer page for
// common media-control keys, optionally including playback transport
// controls and volume controls.
func NewMediaKeys(withVolume, withPlayback bool) *Field {
	var usages []uint16
	if withPlayback {
		usages = append(usages, hidusage.ScanNextTrack, hidusage.ScanPrevTrack, hidusage.Stop)
	}
	if withVolume {
		usages = append(usages, hidusage.Mute, hidusage.VolumeIncrement, hidusage.VolumeDecrement)
	}
	return &Field{
		UsagePage:  hidusage.ConsumerPageID,
		Usages:     usages,
		Size:       1,
		Count:      len(usages),
		LogicalMin: 0,
		LogicalMax: 1,
		ReportType: "input",
		IsVariable: true,
	}
}
