package analyzer

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gpineda-dev/hiddesc/pkg/compiler"
	"github.com/gpineda-dev/hiddesc/pkg/hidusage"
	"github.com/gpineda-dev/hiddesc/pkg/items"
	"github.com/gpineda-dev/hiddesc/pkg/schema"
)

const mouseHex = "05010902A10005091500250175019503190129038102050025007505950181030501158125" +
	"7F7508093081020931810209388102C0"

func TestAnalyzeSimpleMouse(t *testing.T) {
	data, err := hex.DecodeString(mouseHex)
	require.NoError(t, err)

	layout, err := New().Analyze(data)
	require.NoError(t, err)

	ids := layout.ListReportIDs()
	require.Equal(t, []uint8{0}, ids, "expected a single implicit report ID 0")

	rl, ok := layout.LookupReportLayout(0)
	require.True(t, ok)
	fields := rl.Input.Fields
	require.Len(t, fields, 7, "3 buttons, 1 padding, X, Y, Wheel")

	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	require.Equal(t, []string{"Button_1", "Button_2", "Button_3", "Padding / Reserved", "X", "Y", "Wheel"}, names)

	x := fields[4]
	require.Equal(t, 8, x.BitOffset)
	require.Equal(t, 8, x.BitSize)
	require.True(t, x.IsSigned)
	require.Equal(t, int32(-127), x.LogicalMin)
	require.Equal(t, int32(127), x.LogicalMax)
}

func TestAnalyzePaddingNeverDisambiguated(t *testing.T) {
	data, err := hex.DecodeString(mouseHex)
	require.NoError(t, err)

	layout, err := New().Analyze(data)
	require.NoError(t, err)

	rl, ok := layout.LookupReportLayout(0)
	require.True(t, ok)
	require.Equal(t, "Padding / Reserved", rl.Input.Fields[3].Name)
}

func TestAnalyzeUnbalancedCollectionRejected(t *testing.T) {
	data, err := hex.DecodeString("05010902A1000509")
	require.NoError(t, err)

	_, err = New().Analyze(data)
	require.Error(t, err, "expected error for unclosed collection")
}

func TestAnalyzePopWithoutPushFails(t *testing.T) {
	_, err := New().Analyze([]byte{0xB4})
	require.Error(t, err, "expected StateStackUnderflow for Pop with no matching Push")
}

// TestAnalyzeDisambiguationScopedPerSection builds a descriptor with two
// Report IDs, each carrying an Input field named "X", and checks that
// neither gets a "_2" suffix: disambiguation applies within a report
// section (§4.4), not across the whole descriptor.
func TestAnalyzeDisambiguationScopedPerSection(t *testing.T) {
	col := &schema.Collection{UsagePage: hidusage.GenericDesktopPageID, Usage: hidusage.Mouse, TypeID: 0x01}
	first := &schema.ReportGroup{ID: 1}
	first.Add(schema.NewAxis(hidusage.X, 8, -127, 127, false))
	second := &schema.ReportGroup{ID: 2}
	second.Add(schema.NewAxis(hidusage.X, 8, -127, 127, false))
	col.Add(first).Add(second)

	got, err := compiler.Compile(col, compiler.NewConfig())
	require.NoError(t, err)

	layout, err := New().Analyze(items.Bytes(got))
	require.NoError(t, err)

	rl1, ok := layout.LookupReportLayout(1)
	require.True(t, ok)
	require.Equal(t, "X", rl1.Input.Fields[0].Name)

	rl2, ok := layout.LookupReportLayout(2)
	require.True(t, ok)
	require.Equal(t, "X", rl2.Input.Fields[0].Name, "second report's X must not be disambiguated against the first report's X")
}

// TestAnalyzeKeyboardKeysArraySlotsNotPaddingAndDisambiguated guards the
// Array/padding conflation: KeyboardKeys expands UsageMin(0)..UsageMax(101)
// into a usage queue whose first entry is 0, but that Main item did queue
// usages, so none of its slots are padding, and each slot still needs a
// distinct name since they all share the "Keyboard/Keypad" page name.
func TestAnalyzeKeyboardKeysArraySlotsNotPaddingAndDisambiguated(t *testing.T) {
	field := schema.NewKeyboardKeys(3)
	compiled, err := compiler.Compile(field, compiler.NewConfig())
	require.NoError(t, err)

	layout, err := New().Analyze(items.Bytes(compiled))
	require.NoError(t, err)

	rl, ok := layout.LookupReportLayout(0)
	require.True(t, ok)
	require.Len(t, rl.Input.Fields, 3)

	seen := make(map[string]bool)
	for _, f := range rl.Input.Fields {
		require.False(t, f.IsPadding(), "KeyboardKeys slot %q must not be padding", f.Name)
		require.True(t, f.HasUsage, "KeyboardKeys slot %q must record that its Main item queued usages", f.Name)
		require.False(t, seen[f.Name], "duplicate field name %q across array slots", f.Name)
		seen[f.Name] = true
	}
}

// TestAnalyzePhysicalRangeCarriedThrough checks that PhysicalMin/
// PhysicalMax, tracked in scanState and emitted by the compiler, survive
// into the resulting hidlayout.Field instead of being silently dropped.
func TestAnalyzePhysicalRangeCarriedThrough(t *testing.T) {
	dPad := schema.NewDPad()
	compiled, err := compiler.Compile(dPad, compiler.NewConfig())
	require.NoError(t, err)

	layout, err := New().Analyze(items.Bytes(compiled))
	require.NoError(t, err)

	rl, ok := layout.LookupReportLayout(0)
	require.True(t, ok)
	// The 4-bit hat switch plus the 4-bit constant field NewConfig's
	// Input auto-padding appends to reach a byte boundary.
	require.Len(t, rl.Input.Fields, 2)

	hat := rl.Input.Fields[0]
	require.Equal(t, int32(0), hat.PhysicalMin)
	require.Equal(t, int32(315), hat.PhysicalMax)
}
