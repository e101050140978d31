package items

import (
	"encoding/binary"
	"io"

	"github.com/gpineda-dev/hiddesc/pkg/hiderr"
)

// Item is a single HID short item: a tag plus its raw little-endian
// payload bytes (length 0, 1, 2 or 4). Unknown tags are represented the
// same way, which keeps Parse/Serialize round-trips lossless even for
// tags this package does not otherwise interpret.
type Item struct {
	Tag  Tag
	Data []byte
}

// Int32 interprets the payload per the tag's signedness and sign-extends
// it to an int32. A zero-length payload decodes to 0.
func (it Item) Int32() int32 {
	if it.Tag.isUnsigned() {
		return int32(it.Uint32())
	}
	switch len(it.Data) {
	case 0:
		return 0
	case 1:
		return int32(int8(it.Data[0]))
	case 2:
		return int32(int16(binary.LittleEndian.Uint16(it.Data)))
	default:
		return int32(binary.LittleEndian.Uint32(pad4(it.Data)))
	}
}

// Uint32 interprets the payload as an unsigned little-endian integer,
// regardless of the tag's declared signedness.
func (it Item) Uint32() uint32 {
	switch len(it.Data) {
	case 0:
		return 0
	case 1:
		return uint32(it.Data[0])
	case 2:
		return uint32(binary.LittleEndian.Uint16(it.Data))
	default:
		return binary.LittleEndian.Uint32(pad4(it.Data))
	}
}

func pad4(b []byte) []byte {
	if len(b) >= 4 {
		return b[:4]
	}
	out := make([]byte, 4)
	copy(out, b)
	return out
}

// NewSigned builds an Item carrying the minimal-width two's complement
// encoding of value for the given tag, per the serialization contract in
// §4.1: size_code=0 represents the value 0, otherwise the smallest of
// {1,2,4} bytes that can hold value in two's complement is chosen.
func NewSigned(tag Tag, value int32) Item {
	if value == 0 {
		return Item{Tag: tag, Data: nil}
	}
	switch {
	case value >= -128 && value <= 127:
		return Item{Tag: tag, Data: []byte{byte(int8(value))}}
	case value >= -32768 && value <= 32767:
		buf := make([]byte, 2)
		binary.LittleEndian.PutUint16(buf, uint16(int16(value)))
		return Item{Tag: tag, Data: buf}
	default:
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, uint32(value))
		return Item{Tag: tag, Data: buf}
	}
}

// NewUnsigned builds an Item carrying the minimal-width unsigned encoding
// of value, following the same size-code rules as NewSigned.
func NewUnsigned(tag Tag, value uint32) Item {
	if value == 0 {
		return Item{Tag: tag, Data: nil}
	}
	switch {
	case value <= 0xFF:
		return Item{Tag: tag, Data: []byte{byte(value)}}
	case value <= 0xFFFF:
		buf := make([]byte, 2)
		binary.LittleEndian.PutUint16(buf, uint16(value))
		return Item{Tag: tag, Data: buf}
	default:
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, value)
		return Item{Tag: tag, Data: buf}
	}
}

// NewBare builds a zero-payload item, for tags like EndCollection, Push
// and Pop that never carry data.
func NewBare(tag Tag) Item {
	return Item{Tag: tag}
}

// Serialize writes the item's header byte and payload to w.
func (it Item) Serialize(w io.Writer) error {
	size := sizeCodeForLen(len(it.Data))
	if _, err := w.Write([]byte{it.Tag.header(size)}); err != nil {
		return err
	}
	if len(it.Data) == 0 {
		return nil
	}
	_, err := w.Write(it.Data)
	return err
}

// Equal reports whether two items carry the same tag and payload bytes,
// used by the P1 round-trip property test.
func (it Item) Equal(other Item) bool {
	if it.Tag != other.Tag || len(it.Data) != len(other.Data) {
		return false
	}
	for i := range it.Data {
		if it.Data[i] != other.Data[i] {
			return false
		}
	}
	return true
}

// Parse decodes every short item in data, in order. It fails with
// *hiderr.MalformedDescriptor on a truncated stream, or
// *hiderr.UnsupportedLongItem on the 0xFE long-item marker.
func Parse(data []byte) ([]Item, error) {
	var out []Item
	offset := 0
	for offset < len(data) {
		header := data[offset]
		if header == 0xFE {
			return nil, &hiderr.UnsupportedLongItem{Offset: offset}
		}
		tag := Tag(header & 0xFC)
		size := SizeCode(header & 0x03)
		payloadLen := size.PayloadLen()
		itemStart := offset
		offset++
		if offset+payloadLen > len(data) {
			return nil, &hiderr.MalformedDescriptor{
				Offset: itemStart,
				Reason: "payload runs past end of stream",
			}
		}
		var payload []byte
		if payloadLen > 0 {
			payload = make([]byte, payloadLen)
			copy(payload, data[offset:offset+payloadLen])
		}
		out = append(out, Item{Tag: tag, Data: payload})
		offset += payloadLen
	}
	return out, nil
}

// Bytes serializes a full item list to a byte slice, as produced by the
// Compiler and consumed by the Analyzer.
func Bytes(list []Item) []byte {
	size := 0
	for _, it := range list {
		size += 1 + len(it.Data)
	}
	out := make([]byte, 0, size)
	for _, it := range list {
		sizeCode := sizeCodeForLen(len(it.Data))
		out = append(out, it.Tag.header(sizeCode))
		out = append(out, it.Data...)
	}
	return out
}
