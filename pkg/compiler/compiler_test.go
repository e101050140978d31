package compiler

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/gpineda-dev/hiddesc/pkg/hidusage"
	"github.com/gpineda-dev/hiddesc/pkg/items"
	"github.com/gpineda-dev/hiddesc/pkg/schema"
)

func TestCompileSimpleMouse(t *testing.T) {
	col := &schema.Collection{
		UsagePage: hidusage.GenericDesktopPageID,
		Usage:     hidusage.Mouse,
		TypeID:    0x00,
	}
	col.Add(schema.NewButtonArray(3, 1)).
		Add(schema.NewPadding(5)).
		Add(schema.NewAxis(hidusage.X, 8, -127, 127, false)).
		Add(schema.NewAxis(hidusage.Y, 8, -127, 127, false)).
		Add(schema.NewAxis(hidusage.Wheel, 8, -127, 127, false))

	got, err := Compile(col, NewConfig())
	require.NoError(t, err)

	// This toolkit's NewSigned/NewUnsigned always take the zero-payload
	// branch for value 0 (see pkg/items.TestNewSignedZeroIsBarePayload),
	// so every zero re-emission here (ButtonArray's LogicalMinimum(0),
	// Padding's UsagePage(0) and LogicalMaximum(0)) is one byte shorter
	// than the always-≥1-byte convention a literal transcription of the
	// HID spec's documented mouse example would produce. 50 bytes, not
	// 53: LogicalMinimum(0) is a bare 0x14 with no payload, and
	// Padding's UsagePage(0)/LogicalMaximum(0) are bare 0x04/0x24.
	want := "05010902A1000509142501750195031901290381020424750595018103050115812" +
		"57F7508093081020931810209388102C0"
	wantBytes, err := hex.DecodeString(want)
	require.NoError(t, err, "bad expected hex")

	gotBytes := items.Bytes(got)
	assert.Equal(t, hex.EncodeToString(wantBytes), hex.EncodeToString(gotBytes), "compiled descriptor mismatch")
}

func TestCompileInvalidLogicalRangeRejected(t *testing.T) {
	f := schema.NewAxis(hidusage.X, 8, 10, -10, false)
	_, err := Compile(f, NewConfig())
	require.Error(t, err, "expected error for inverted logical range")
}

func TestValidateAggregatesMultipleErrors(t *testing.T) {
	col := &schema.Collection{UsagePage: hidusage.GenericDesktopPageID, Usage: hidusage.Mouse}
	col.Add(&schema.Field{Size: 0, Count: 1, ReportType: "input"}).
		Add(&schema.Field{Size: 1, Count: -1, ReportType: "input"})

	err := Validate(col)
	require.Error(t, err, "expected validation errors")
	assert.Len(t, multierr.Errors(err), 2, "expected 2 aggregated errors: %v", err)
}

func TestCompileReportGroupEmitsReportIDOnce(t *testing.T) {
	group := &schema.ReportGroup{ID: 2}
	group.Add(schema.NewAxis(hidusage.X, 8, -127, 127, false))
	group.Add(schema.NewAxis(hidusage.Y, 8, -127, 127, false))

	got, err := Compile(group, NewConfig())
	require.NoError(t, err)

	count := 0
	for _, it := range got {
		if it.Tag == items.TagReportID {
			count++
		}
	}
	assert.Equal(t, 1, count, "expected exactly one ReportID item")
}
