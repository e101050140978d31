// Package codec encodes and decodes HID reports against a
// hidlayout.DescriptorLayout, packing and unpacking each field's bits
// with little-endian, LSB-first arithmetic as mandated by HID 1.11
// §6.2.2 — not the MSB-first bit-string scheme used elsewhere in this
// toolkit for cosmetic rendering.
package codec

import (
	"math/big"

	"github.com/gpineda-dev/hiddesc/pkg/hiderr"
	"github.com/gpineda-dev/hiddesc/pkg/hidlayout"
	"github.com/gpineda-dev/hiddesc/pkg/hidusage"
)

// Options controls overflow behavior for Encode. Build one with Strict
// or Clamp rather than a bare Options{}. Strict rejects any value
// outside a field's logical range with *hiderr.FieldOverflow. Clamp
// instead rounds out-of-range values to the nearest bound — a
// deliberate addition over the reference runtime, which always raises.
type Options struct {
	Strict bool
}

// Strict returns Options configured to reject out-of-range values.
func Strict() Options { return Options{Strict: true} }

// Clamp returns Options configured to clamp out-of-range values instead
// of rejecting them.
func Clamp() Options { return Options{Strict: false} }

// Decoded is the result of decoding one report: the resolved report ID
// and a value per named (non-padding) field.
type Decoded struct {
	ReportID uint8
	Values   map[string]any
}

// Encode packs values into the wire bytes for reportID's reportType
// section. If reportID is nil, the report ID is resolved automatically:
// it must be unambiguous, i.e. the layout has at most one report ID.
// The returned bytes are prefixed with the report ID byte exactly when
// layout.HasMultipleReportIDs() is true.
func Encode(layout *hidlayout.DescriptorLayout, reportID *uint8, reportType string, values map[string]int64, opts Options) ([]byte, error) {
	resolvedID, err := layout.ResolveReportID(reportID)
	if err != nil {
		return nil, err
	}
	rl, ok := layout.LookupReportLayout(resolvedID)
	if !ok {
		return nil, &hiderr.UnknownReportID{ReportID: resolvedID}
	}
	section := rl.Section(reportType)
	if err := section.Validate(values, true, false); err != nil {
		return nil, err
	}
	size := section.SizeBytes()

	acc := new(big.Int)
	for _, f := range section.Fields {
		if f.IsPadding() {
			continue
		}
		value, ok := values[f.Name]
		if !ok {
			value = f.DefaultValue()
		}
		coerced, err := coerceValue(f, value, opts)
		if err != nil {
			return nil, err
		}
		packed := encodeTwosComplement(coerced, f.BitSize)
		shifted := new(big.Int).Lsh(packed, uint(f.BitOffset))
		acc.Or(acc, shifted)
	}

	raw := leBytes(acc, size)
	if !layout.HasMultipleReportIDs() {
		return raw, nil
	}
	return append([]byte{resolvedID}, raw...), nil
}

// Decode unpacks the wire bytes of one report for reportType. When
// layout.HasMultipleReportIDs() is true, the first byte of data is
// consumed as the report ID and used to select the section; otherwise
// the layout's sole (implicit) report ID 0 is used.
func Decode(layout *hidlayout.DescriptorLayout, data []byte, reportType string) (*Decoded, error) {
	reportID, payload := uint8(0), data
	if layout.HasMultipleReportIDs() {
		if len(data) == 0 {
			return nil, &hiderr.UnknownReportID{ReportID: 0}
		}
		reportID, payload = data[0], data[1:]
	}
	rl, ok := layout.LookupReportLayout(reportID)
	if !ok {
		return nil, &hiderr.UnknownReportID{ReportID: reportID}
	}
	section := rl.Section(reportType)

	bigInt := new(big.Int).SetBytes(reverseBytes(payload))
	out := &Decoded{ReportID: reportID, Values: make(map[string]any)}
	for _, f := range section.Fields {
		if f.IsPadding() {
			continue
		}
		shifted := new(big.Int).Rsh(bigInt, uint(f.BitOffset))
		mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(f.BitSize)), big.NewInt(1))
		raw := new(big.Int).And(shifted, mask)

		value := decodeTwosComplement(raw, f.BitSize, f.IsSigned)
		if f.UsagePage == hidusage.ButtonPageID && f.BitSize == 1 {
			out.Values[f.Name] = value != 0
		} else {
			out.Values[f.Name] = value
		}
	}
	return out, nil
}

// coerceValue range-checks or clamps value against f's logical range
// depending on opts.Strict.
func coerceValue(f *hidlayout.Field, value int64, opts Options) (int64, error) {
	if f.ValidateValue(value) {
		return value, nil
	}
	if opts.Strict {
		return 0, &hiderr.FieldOverflow{
			Field: f.Name, Value: value,
			LogicalMin: f.LogicalMin, LogicalMax: f.LogicalMax,
		}
	}
	if value < int64(f.LogicalMin) {
		return int64(f.LogicalMin), nil
	}
	return int64(f.LogicalMax), nil
}

// encodeTwosComplement converts a signed int64 to its bitSize-wide
// two's complement representation, returned as a non-negative big.Int
// ready to be OR-shifted into an accumulator.
func encodeTwosComplement(value int64, bitSize int) *big.Int {
	if value >= 0 {
		return big.NewInt(value)
	}
	mod := new(big.Int).Lsh(big.NewInt(1), uint(bitSize))
	return new(big.Int).Add(mod, big.NewInt(value))
}

// decodeTwosComplement interprets raw (already masked to bitSize bits)
// as a two's complement value if signed, or returns it as-is otherwise.
func decodeTwosComplement(raw *big.Int, bitSize int, signed bool) int64 {
	if !signed {
		return raw.Int64()
	}
	signBit := new(big.Int).Lsh(big.NewInt(1), uint(bitSize-1))
	if raw.Cmp(signBit) < 0 {
		return raw.Int64()
	}
	mod := new(big.Int).Lsh(big.NewInt(1), uint(bitSize))
	return new(big.Int).Sub(raw, mod).Int64()
}

// leBytes renders v as exactly n little-endian bytes.
func leBytes(v *big.Int, n int) []byte {
	be := v.Bytes()
	out := make([]byte, n)
	for i := 0; i < len(be) && i < n; i++ {
		out[i] = be[len(be)-1-i]
	}
	return out
}

// reverseBytes returns a copy of b with byte order reversed, used to
// feed little-endian wire bytes to big.Int.SetBytes, which expects
// big-endian input.
func reverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}
