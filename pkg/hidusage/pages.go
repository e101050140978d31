// Package hidusage holds the usage page tables needed to name fields
// during analysis: page names, per-usage names, and collection type
// names. Tables are grounded in the HID Usage Tables specification, kept
// to the pages this toolkit's widgets and examples actually exercise.
package hidusage

// GenericDesktopPage usages (HID Usage Tables §4).
const (
	GenericDesktopPageID uint16 = 0x01

	Pointer              uint16 = 0x01
	Mouse                uint16 = 0x02
	Joystick             uint16 = 0x04
	GamePad              uint16 = 0x05
	Keyboard             uint16 = 0x06
	Keypad               uint16 = 0x07
	MultiAxisController  uint16 = 0x08
	X                    uint16 = 0x30
	Y                    uint16 = 0x31
	Z                    uint16 = 0x32
	Rx                   uint16 = 0x33
	Ry                   uint16 = 0x34
	Rz                   uint16 = 0x35
	Slider               uint16 = 0x36
	Dial                 uint16 = 0x37
	Wheel                uint16 = 0x38
	HatSwitch            uint16 = 0x39
	SystemControl        uint16 = 0x80
	SystemPowerDown      uint16 = 0x81
	SystemSleep          uint16 = 0x82
	SystemWakeUp         uint16 = 0x83
	SystemContextMenu    uint16 = 0x84
	SystemMainMenu       uint16 = 0x85
	SystemAppMenu        uint16 = 0x86
	SystemMenuHelp       uint16 = 0x87
	SystemMenuExit       uint16 = 0x88
	SystemMenuSelect     uint16 = 0x89
	SystemMenuRight      uint16 = 0x8A
	SystemMenuLeft       uint16 = 0x8B
	SystemMenuUp         uint16 = 0x8C
	SystemMenuDown       uint16 = 0x8D
)

var genericDesktopNames = map[uint16]string{
	Pointer: "Pointer", Mouse: "Mouse", Joystick: "Joystick", GamePad: "Game_Pad",
	Keyboard: "Keyboard", Keypad: "Keypad", MultiAxisController: "Multi_Axis_Controller",
	X: "X", Y: "Y", Z: "Z", Rx: "Rx", Ry: "Ry", Rz: "Rz",
	Slider: "Slider", Dial: "Dial", Wheel: "Wheel", HatSwitch: "Hat_Switch",
	SystemControl: "System_Control", SystemPowerDown: "System_Power_Down",
	SystemSleep: "System_Sleep", SystemWakeUp: "System_Wake_Up",
	SystemContextMenu: "System_Context_Menu", SystemMainMenu: "System_Main_Menu",
	SystemAppMenu: "System_App_Menu", SystemMenuHelp: "System_Menu_Help",
	SystemMenuExit: "System_Menu_Exit", SystemMenuSelect: "System_Menu_Select",
	SystemMenuRight: "System_Menu_Right", SystemMenuLeft: "System_Menu_Left",
	SystemMenuUp: "System_Menu_Up", SystemMenuDown: "System_Menu_Down",
}

// ButtonPage usage IDs are button numbers themselves (§12): usage 1 is
// Button_1, usage 32 is Button_32, and so on.
const (
	ButtonPageID uint16 = 0x09
	NoButton     uint16 = 0x00
)

// MakeButtonUsage returns the usage ID for a 1-based button number.
func MakeButtonUsage(n int) uint16 { return uint16(n) }

// ButtonNumber returns the 1-based button number for a Button page usage
// ID, or 0 if usageID is NoButton.
func ButtonNumber(usageID uint16) int { return int(usageID) }

// KeyboardPage usages (HID Usage Tables §10), the subset this toolkit's
// widgets and examples need.
const (
	KeyboardPageID uint16 = 0x07

	KeyNoEvent        uint16 = 0x00
	KeyErrorRollOver  uint16 = 0x01
	KeyPostFail       uint16 = 0x02
	KeyErrorUndefined uint16 = 0x03
	KeyA              uint16 = 0x04
	KeyZ              uint16 = 0x1D
	Key1              uint16 = 0x1E
	Key0              uint16 = 0x27
	KeyEnter          uint16 = 0x28
	KeyEscape         uint16 = 0x29
	KeyBackspace      uint16 = 0x2A
	KeyTab            uint16 = 0x2B
	KeySpace          uint16 = 0x2C
	KeyLeftControl    uint16 = 0xE0
	KeyLeftShift      uint16 = 0xE1
	KeyLeftAlt        uint16 = 0xE2
	KeyLeftGUI        uint16 = 0xE3
	KeyRightControl   uint16 = 0xE4
	KeyRightShift     uint16 = 0xE5
	KeyRightAlt       uint16 = 0xE6
	KeyRightGUI       uint16 = 0xE7
)

var keyboardNames = map[uint16]string{
	KeyNoEvent: "No_Event", KeyErrorRollOver: "Error_Roll_Over", KeyPostFail: "Post_Fail",
	KeyErrorUndefined: "Error_Undefined", KeyEnter: "Enter", KeyEscape: "Escape",
	KeyBackspace: "Backspace", KeyTab: "Tab", KeySpace: "Space",
	KeyLeftControl: "Left_Control", KeyLeftShift: "Left_Shift", KeyLeftAlt: "Left_Alt",
	KeyLeftGUI: "Left_GUI", KeyRightControl: "Right_Control", KeyRightShift: "Right_Shift",
	KeyRightAlt: "Right_Alt", KeyRightGUI: "Right_GUI",
}

func keyboardLetterOrDigitName(usageID uint16) (string, bool) {
	if usageID >= KeyA && usageID <= KeyZ {
		return string(rune('A' + (usageID - KeyA))), true
	}
	if usageID >= Key1 && usageID < Key0 {
		return string(rune('1' + (usageID - Key1))), true
	}
	if usageID == Key0 {
		return "0", true
	}
	return "", false
}

// LedPage usages (HID Usage Tables §11).
const (
	LedPageID uint16 = 0x08

	LedNumLock             uint16 = 0x01
	LedCapsLock            uint16 = 0x02
	LedScrollLock          uint16 = 0x03
	LedCompose             uint16 = 0x04
	LedKana                uint16 = 0x05
	LedPower               uint16 = 0x06
	LedShift               uint16 = 0x07
	LedDoNotDisturb        uint16 = 0x08
	LedMute                uint16 = 0x09
	LedToneEnable          uint16 = 0x0A
	LedHighCutFilter       uint16 = 0x0B
	LedLowCutFilter        uint16 = 0x0C
	LedEqualizerEnable     uint16 = 0x0D
	LedSoundFieldOn        uint16 = 0x0E
	LedSurroundOn          uint16 = 0x0F
	LedRepeat              uint16 = 0x10
	LedStereo              uint16 = 0x11
	LedSamplingRateDetect  uint16 = 0x12
)

var ledNames = map[uint16]string{
	LedNumLock: "Num_Lock", LedCapsLock: "Caps_Lock", LedScrollLock: "Scroll_Lock",
	LedCompose: "Compose", LedKana: "Kana", LedPower: "Power", LedShift: "Shift",
	LedDoNotDisturb: "Do_Not_Disturb", LedMute: "Mute", LedToneEnable: "Tone_Enable",
	LedHighCutFilter: "High_Cut_Filter", LedLowCutFilter: "Low_Cut_Filter",
	LedEqualizerEnable: "Equalizer_Enable", LedSoundFieldOn: "Sound_Field_On",
	LedSurroundOn: "Surround_On", LedRepeat: "Repeat", LedStereo: "Stereo",
	LedSamplingRateDetect: "Sampling_Rate_Detect",
}

// ConsumerPage usages (HID Usage Tables §15), the subset this toolkit's
// MediaKeys widget needs plus a handful of common extras.
const (
	ConsumerPageID uint16 = 0x0C

	ConsumerControl   uint16 = 0x01
	Power             uint16 = 0x30
	Reset             uint16 = 0x31
	Sleep             uint16 = 0x32
	Play              uint16 = 0xB0
	Pause             uint16 = 0xB1
	Record            uint16 = 0xB2
	FastForward       uint16 = 0xB3
	Rewind            uint16 = 0xB4
	ScanNextTrack     uint16 = 0xB5
	ScanPrevTrack     uint16 = 0xB6
	Stop              uint16 = 0xB7
	Eject             uint16 = 0xB8
	RandomPlay        uint16 = 0xB9
	Volume            uint16 = 0xE0
	Mute              uint16 = 0xE2
	Bass              uint16 = 0xE3
	Treble            uint16 = 0xE4
	BassBoost         uint16 = 0xE5
	VolumeIncrement   uint16 = 0xE9
	VolumeDecrement   uint16 = 0xEA
	ALCalculator      uint16 = 0x192
	ALLocalBrowser    uint16 = 0x194
	ACSearch          uint16 = 0x221
	ACHome            uint16 = 0x223
	ACBack            uint16 = 0x224
	ACForward         uint16 = 0x225
	ACStop            uint16 = 0x226
	ACRefresh         uint16 = 0x227
	ACBookmarks       uint16 = 0x22A
)

var consumerNames = map[uint16]string{
	ConsumerControl: "Consumer_Control", Power: "Power", Reset: "Reset", Sleep: "Sleep",
	Play: "Play", Pause: "Pause", Record: "Record", FastForward: "Fast_Forward",
	Rewind: "Rewind", ScanNextTrack: "Scan_Next_Track", ScanPrevTrack: "Scan_Prev_Track",
	Stop: "Stop", Eject: "Eject", RandomPlay: "Random_Play", Volume: "Volume",
	Mute: "Mute", Bass: "Bass", Treble: "Treble", BassBoost: "Bass_Boost",
	VolumeIncrement: "Volume_Increment", VolumeDecrement: "Volume_Decrement",
	ALCalculator: "AL_Calculator", ALLocalBrowser: "AL_Local_Browser",
	ACSearch: "AC_Search", ACHome: "AC_Home", ACBack: "AC_Back", ACForward: "AC_Forward",
	ACStop: "AC_Stop", ACRefresh: "AC_Refresh", ACBookmarks: "AC_Bookmarks",
}

// pageNames maps known usage page IDs to their display name.
var pageNames = map[uint16]string{
	GenericDesktopPageID: "Generic Desktop",
	ButtonPageID:         "Button",
	KeyboardPageID:       "Keyboard/Keypad",
	LedPageID:            "LED",
	ConsumerPageID:       "Consumer",
}
