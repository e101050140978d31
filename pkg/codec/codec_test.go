package codec

import (
	"encoding/hex"
	"testing"

	"github.com/gpineda-dev/hiddesc/pkg/analyzer"
	"github.com/gpineda-dev/hiddesc/pkg/compiler"
	"github.com/gpineda-dev/hiddesc/pkg/hiderr"
	"github.com/gpineda-dev/hiddesc/pkg/hidusage"
	"github.com/gpineda-dev/hiddesc/pkg/items"
	"github.com/gpineda-dev/hiddesc/pkg/schema"
)

const mouseHex = "05010902A10005091500250175019503190129038102050025007505950181030501158125" +
	"7F7508093081020931810209388102C0"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	data, err := hex.DecodeString(mouseHex)
	if err != nil {
		t.Fatalf("bad test hex: %v", err)
	}
	layout, err := analyzer.New().Analyze(data)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	values := map[string]int64{
		"Button_1": 1, "Button_2": 0, "Button_3": 1,
		"X": -10, "Y": 20, "Wheel": -1,
	}
	wire, err := Encode(layout, nil, "input", values, Strict())
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if len(wire) != 4 {
		t.Fatalf("expected a 4-byte report, got %d bytes", len(wire))
	}

	decoded, err := Decode(layout, wire, "input")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded.Values["Button_1"] != true || decoded.Values["Button_2"] != false || decoded.Values["Button_3"] != true {
		t.Fatalf("button decode mismatch: %+v", decoded.Values)
	}
	if decoded.Values["X"] != int64(-10) || decoded.Values["Y"] != int64(20) || decoded.Values["Wheel"] != int64(-1) {
		t.Fatalf("axis decode mismatch: %+v", decoded.Values)
	}
}

func TestEncodeStrictOverflowRejected(t *testing.T) {
	data, err := hex.DecodeString(mouseHex)
	if err != nil {
		t.Fatalf("bad test hex: %v", err)
	}
	layout, err := analyzer.New().Analyze(data)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	_, err = Encode(layout, nil, "input", map[string]int64{"X": 200}, Strict())
	var overflow *hiderr.FieldOverflow
	if err == nil {
		t.Fatal("expected FieldOverflow in strict mode")
	}
	if !asFieldOverflow(err, &overflow) {
		t.Fatalf("expected *hiderr.FieldOverflow, got %T: %v", err, err)
	}
}

func TestEncodeClampOverflowAccepted(t *testing.T) {
	data, err := hex.DecodeString(mouseHex)
	if err != nil {
		t.Fatalf("bad test hex: %v", err)
	}
	layout, err := analyzer.New().Analyze(data)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	wire, err := Encode(layout, nil, "input", map[string]int64{"X": 200}, Clamp())
	if err != nil {
		t.Fatalf("Encode with clamp should not fail: %v", err)
	}
	decoded, err := Decode(layout, wire, "input")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded.Values["X"] != int64(127) {
		t.Fatalf("expected clamp to logical max 127, got %v", decoded.Values["X"])
	}
}

func TestEncodeDecodeReportIDPrefixing(t *testing.T) {
	group := &schema.ReportGroup{ID: 2}
	group.Add(schema.NewAxis(hidusage.X, 8, -127, 127, false))

	compiled, err := compiler.Compile(group, compiler.NewConfig())
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	layout, err := analyzer.New().Analyze(items.Bytes(compiled))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if !layout.HasMultipleReportIDs() {
		t.Fatal("a single explicit non-zero report ID must still be framed")
	}

	wire, err := Encode(layout, nil, "input", map[string]int64{"X": 5}, Strict())
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if wire[0] != 2 {
		t.Fatalf("expected leading report ID byte 2, got %d", wire[0])
	}

	decoded, err := Decode(layout, wire, "input")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded.ReportID != 2 || decoded.Values["X"] != int64(5) {
		t.Fatalf("unexpected decode: %+v", decoded)
	}
}

// TestJoystickLayoutEndToEnd builds a Thrustmaster T.16000M-shaped
// descriptor (16 buttons, a hat switch, X/Y/Rz/Slider axes, and four
// vendor-defined Feature bytes) from schema widgets and Field nodes,
// with explicit Padding nodes between the axes, and checks that the
// compiler's output and the analyzer's forward scan agree on every
// field's bit offset.
func TestJoystickLayoutEndToEnd(t *testing.T) {
	col := &schema.Collection{
		UsagePage: hidusage.GenericDesktopPageID,
		Usage:     hidusage.Joystick,
		TypeID:    0x01,
	}
	col.Add(schema.NewButtonArray(16, 1)).
		Add(schema.NewDPad()).
		Add(schema.NewPadding(4)).
		Add(&schema.Field{
			UsagePage: hidusage.GenericDesktopPageID, Usages: []uint16{hidusage.X},
			Size: 14, Count: 1, LogicalMin: 0, LogicalMax: 16383,
			ReportType: "input", IsVariable: true,
		}).
		Add(schema.NewPadding(2)).
		Add(&schema.Field{
			UsagePage: hidusage.GenericDesktopPageID, Usages: []uint16{hidusage.Y},
			Size: 14, Count: 1, LogicalMin: 0, LogicalMax: 16383,
			ReportType: "input", IsVariable: true,
		}).
		Add(schema.NewPadding(2)).
		Add(&schema.Field{
			UsagePage: hidusage.GenericDesktopPageID, Usages: []uint16{hidusage.Rz},
			Size: 8, Count: 1, LogicalMin: 0, LogicalMax: 255,
			ReportType: "input", IsVariable: true,
		}).
		Add(&schema.Field{
			UsagePage: hidusage.GenericDesktopPageID, Usages: []uint16{hidusage.Slider},
			Size: 8, Count: 1, LogicalMin: 0, LogicalMax: 255,
			ReportType: "input", IsVariable: true,
		})
	for i := uint16(1); i <= 4; i++ {
		col.Add(&schema.Field{
			UsagePage: 0xFF00, Usages: []uint16{i},
			Size: 8, Count: 1, LogicalMin: 0, LogicalMax: 255,
			ReportType: "feature", IsVariable: true,
		})
	}

	compiled, err := compiler.Compile(col, compiler.NewConfig())
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	layout, err := analyzer.New().Analyze(items.Bytes(compiled))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	rl, ok := layout.LookupReportLayout(0)
	if !ok {
		t.Fatal("expected implicit report ID 0")
	}

	byName := map[string]int{}
	for _, f := range rl.Input.Fields {
		byName[f.Name] = f.BitOffset
	}
	wantOffsets := map[string]int{
		"Button_1": 0, "Button_16": 15,
		"Hat_Switch": 16,
		"X":          24, "Y": 40, "Rz": 56, "Slider": 64,
	}
	for name, want := range wantOffsets {
		got, found := byName[name]
		if !found {
			t.Fatalf("expected field %q in Input section, fields: %+v", name, byName)
		}
		if got != want {
			t.Fatalf("field %q: expected bit offset %d, got %d", name, want, got)
		}
	}

	xField := rl.Input.Fields[0]
	for _, f := range rl.Input.Fields {
		if f.Name == "X" {
			xField = f
		}
	}
	if xField.BitSize != 14 || xField.LogicalMax != 16383 || xField.IsSigned {
		t.Fatalf("unexpected X field shape: %+v", xField)
	}

	if len(rl.Feature.Fields) != 4 {
		t.Fatalf("expected 4 feature fields, got %d", len(rl.Feature.Fields))
	}
	for i, f := range rl.Feature.Fields {
		if f.BitOffset != i*8 || f.BitSize != 8 {
			t.Fatalf("feature field %d: unexpected shape %+v", i, f)
		}
	}

	wire, err := Encode(layout, nil, "input", map[string]int64{
		"Button_1": 1, "X": 8000, "Y": 400,
	}, Strict())
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	decoded, err := Decode(layout, wire, "input")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded.Values["X"] != int64(8000) || decoded.Values["Y"] != int64(400) {
		t.Fatalf("unexpected decode: %+v", decoded.Values)
	}
	if decoded.Values["Button_1"] != true {
		t.Fatalf("expected Button_1 true, got %+v", decoded.Values["Button_1"])
	}
}

// TestEncodeDecodeKeyboardKeysArraySlotsRoundTrip guards against
// conflating an array slot whose resolved usage ID happens to be 0
// (the first slot of a UsageMin(0)-based array, like KeyboardKeys) with
// true padding. If IsPadding() misclassified it, Encode/Decode would
// silently skip the slot and it would always decode back as 0.
func TestEncodeDecodeKeyboardKeysArraySlotsRoundTrip(t *testing.T) {
	field := schema.NewKeyboardKeys(2)
	compiled, err := compiler.Compile(field, compiler.NewConfig())
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	layout, err := analyzer.New().Analyze(items.Bytes(compiled))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	rl, ok := layout.LookupReportLayout(0)
	if !ok {
		t.Fatal("expected implicit report ID 0")
	}
	if len(rl.Input.Fields) != 2 {
		t.Fatalf("expected 2 array slots, got %d: %+v", len(rl.Input.Fields), rl.Input.Fields)
	}
	first, second := rl.Input.Fields[0], rl.Input.Fields[1]
	if first.Name == second.Name {
		t.Fatalf("array slots must be disambiguated, both named %q", first.Name)
	}
	if first.IsPadding() || second.IsPadding() {
		t.Fatalf("KeyboardKeys slots must not be treated as padding: %+v, %+v", first, second)
	}

	wire, err := Encode(layout, nil, "input", map[string]int64{
		first.Name: 4, second.Name: 5,
	}, Strict())
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	decoded, err := Decode(layout, wire, "input")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded.Values[first.Name] != int64(4) || decoded.Values[second.Name] != int64(5) {
		t.Fatalf("unexpected decode: %+v", decoded.Values)
	}
}

func asFieldOverflow(err error, target **hiderr.FieldOverflow) bool {
	if fo, ok := err.(*hiderr.FieldOverflow); ok {
		*target = fo
		return true
	}
	return false
}
