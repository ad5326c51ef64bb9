package cqlwire

import (
	"errors"
	"math/big"
	"net/netip"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"gopkg.in/inf.v0"
)

func decodeTestColumnType(t *testing.T, in []byte) *ColumnType {
	t.Helper()
	rd := newTestDecoder(in)
	ct, err := decodeColumnType(rd, MaxTypeDepth)
	if err != nil {
		t.Fatal("decoding column type failed:", err)
	}
	if rd.remaining() != 0 {
		t.Error("decoding column type left", rd.remaining(), "bytes unconsumed")
	}
	return ct
}

func TestDecodeColumnTypeScalar(t *testing.T) {
	ct := decodeTestColumnType(t, []byte{0x00, 0x0D})
	if ct.Type != TypeVarchar || ct.Key != nil || ct.Elem != nil {
		t.Error("decoded", ct, "instead of varchar")
	}
}

func TestDecodeColumnTypeNested(t *testing.T) {
	// map<varchar, list<int>>
	ct := decodeTestColumnType(t, []byte{0x00, 0x21, 0x00, 0x0D, 0x00, 0x20, 0x00, 0x09})
	if ct.String() != "map<varchar, list<int>>" {
		t.Error("decoded", ct)
	}
	if ct.Type != TypeMap || ct.Key.Type != TypeVarchar || ct.Elem.Type != TypeList || ct.Elem.Elem.Type != TypeInt {
		t.Errorf("decoded structure is wrong: %#v", ct)
	}
}

func TestDecodeColumnTypeUnknown(t *testing.T) {
	rd := newTestDecoder([]byte{0x00, 0x13})
	_, err := decodeColumnType(rd, MaxTypeDepth)
	unsupported, ok := err.(UnsupportedColumnTypeError)
	if !ok {
		t.Fatal("expected UnsupportedColumnTypeError, got", err)
	}
	if unsupported.ID != 0x13 {
		t.Error("error names id", unsupported.ID, "instead of 0x13")
	}
}

func TestDecodeColumnTypeDepthBound(t *testing.T) {
	defer func(d int) { MaxTypeDepth = d }(MaxTypeDepth)
	MaxTypeDepth = 4

	// list<list<list<int>>> fits exactly
	rd := newTestDecoder([]byte{0x00, 0x20, 0x00, 0x20, 0x00, 0x20, 0x00, 0x09})
	if _, err := decodeColumnType(rd, MaxTypeDepth); err != nil {
		t.Error("nesting within the bound failed:", err)
	}

	// one level deeper does not
	rd = newTestDecoder([]byte{0x00, 0x20, 0x00, 0x20, 0x00, 0x20, 0x00, 0x20, 0x00, 0x09})
	var decodeErr PacketDecodingError
	if _, err := decodeColumnType(rd, MaxTypeDepth); !errors.As(err, &decodeErr) {
		t.Error("nesting past the bound returned", err)
	}
}

func scalarType(t Type) *ColumnType { return &ColumnType{Type: t} }

func TestDecodeRawValueScalars(t *testing.T) {
	tests := []struct {
		name string
		ct   *ColumnType
		in   []byte
		want interface{}
	}{
		{"varchar", scalarType(TypeVarchar), []byte("hello"), "hello"},
		{"empty varchar", scalarType(TypeVarchar), []byte{}, ""},
		{"ascii", scalarType(TypeAscii), []byte("ok"), "ok"},
		{"blob", scalarType(TypeBlob), []byte{0xDE, 0xAD}, []byte{0xDE, 0xAD}},
		{"boolean true", scalarType(TypeBoolean), []byte{0x01}, true},
		{"boolean false", scalarType(TypeBoolean), []byte{0x00}, false},
		{"int", scalarType(TypeInt), []byte{0x00, 0x00, 0x00, 0x2A}, int32(42)},
		{"negative int", scalarType(TypeInt), []byte{0xFF, 0xFF, 0xFF, 0xF9}, int32(-7)},
		{"bigint", scalarType(TypeBigint), []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, int64(-1)},
		{"counter", scalarType(TypeCounter), []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x09}, int64(9)},
		{"float", scalarType(TypeFloat), []byte{0x40, 0x60, 0x00, 0x00}, float32(3.5)},
		{"double", scalarType(TypeDouble), []byte{0x3F, 0xF4, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, float64(1.25)},
		{
			"timestamp", scalarType(TypeTimestamp),
			[]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x03, 0xE8},
			time.UnixMilli(1000).UTC(),
		},
		{
			"uuid", scalarType(TypeUUID),
			[]byte{
				0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07,
				0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F,
			},
			uuid.MustParse("00010203-0405-0607-0809-0a0b0c0d0e0f"),
		},
		{"inet v4", scalarType(TypeInet), []byte{0x04, 0x7F, 0x00, 0x00, 0x01}, netip.MustParseAddr("127.0.0.1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeRawValue(tt.in, tt.ct)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("decoded %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestDecodeRawValueVarint(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want *big.Int
	}{
		{"zero length", []byte{}, big.NewInt(0)},
		{"positive", []byte{0x01, 0xF4}, big.NewInt(500)},
		{"minus one", []byte{0xFF}, big.NewInt(-1)},
		{"minus 128", []byte{0x80}, big.NewInt(-128)},
		{"wide negative", []byte{0xFE, 0x0C}, big.NewInt(-500)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeRawValue(tt.in, scalarType(TypeVarint))
			if err != nil {
				t.Fatal(err)
			}
			if got.(*big.Int).Cmp(tt.want) != 0 {
				t.Errorf("decoded %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDecodeRawValueDecimal(t *testing.T) {
	// 5.00: scale 2, unscaled 500
	got, err := decodeRawValue([]byte{0x00, 0x00, 0x00, 0x02, 0x01, 0xF4}, scalarType(TypeDecimal))
	if err != nil {
		t.Fatal(err)
	}
	want := inf.NewDec(500, 2)
	if got.(*inf.Dec).Cmp(want) != 0 {
		t.Error("decoded", got, "want", want)
	}
}

func TestDecodeRawValueSizeMismatch(t *testing.T) {
	bad := []struct {
		name string
		ct   *ColumnType
		in   []byte
	}{
		{"3 byte int", scalarType(TypeInt), []byte{0x00, 0x00, 0x2A}},
		{"empty boolean", scalarType(TypeBoolean), []byte{}},
		{"15 byte uuid", scalarType(TypeUUID), make([]byte, 15)},
		{"truncated decimal", scalarType(TypeDecimal), []byte{0x00, 0x00}},
		{"inet without size byte", scalarType(TypeInet), []byte{}},
		{"inet size lies", scalarType(TypeInet), []byte{0x10, 0x7F, 0x00, 0x00, 0x01}},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			var decodeErr PacketDecodingError
			if _, err := decodeRawValue(tt.in, tt.ct); !errors.As(err, &decodeErr) {
				t.Error("decoding returned", err)
			}
		})
	}
}

func TestDecodeValueNull(t *testing.T) {
	types := []*ColumnType{
		scalarType(TypeInt),
		scalarType(TypeVarchar),
		scalarType(TypeBlob),
		{Type: TypeList, Elem: scalarType(TypeInt)},
		{Type: TypeMap, Key: scalarType(TypeVarchar), Elem: scalarType(TypeInt)},
	}
	for _, ct := range types {
		rd := newTestDecoder([]byte{0xFF, 0xFF, 0xFF, 0xFF})
		v, err := decodeValue(rd, ct)
		if err != nil {
			t.Fatal(ct, err)
		}
		if v != nil {
			t.Errorf("null %s decoded to %#v", ct, v)
		}
	}
}

func TestDecodeValueEmptyNotNull(t *testing.T) {
	rd := newTestDecoder([]byte{0x00, 0x00, 0x00, 0x00})
	v, err := decodeValue(rd, scalarType(TypeVarchar))
	if err != nil {
		t.Fatal(err)
	}
	if v != "" {
		t.Errorf("zero-length varchar decoded to %#v, want empty string", v)
	}
}

func TestDecodeListValue(t *testing.T) {
	// [5, -7]
	raw := []byte{
		0x00, 0x02,
		0x00, 0x04, 0x00, 0x00, 0x00, 0x05,
		0x00, 0x04, 0xFF, 0xFF, 0xFF, 0xF9,
	}
	got, err := decodeRawValue(raw, &ColumnType{Type: TypeList, Elem: scalarType(TypeInt)})
	if err != nil {
		t.Fatal(err)
	}
	want := []interface{}{int32(5), int32(-7)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("decoded %#v, want %#v", got, want)
	}
}

func TestDecodeSetValueDeduplicates(t *testing.T) {
	// {5, 5, 7} on the wire
	raw := []byte{
		0x00, 0x03,
		0x00, 0x04, 0x00, 0x00, 0x00, 0x05,
		0x00, 0x04, 0x00, 0x00, 0x00, 0x05,
		0x00, 0x04, 0x00, 0x00, 0x00, 0x07,
	}
	got, err := decodeRawValue(raw, &ColumnType{Type: TypeSet, Elem: scalarType(TypeInt)})
	if err != nil {
		t.Fatal(err)
	}
	want := []interface{}{int32(5), int32(7)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("decoded %#v, want %#v", got, want)
	}
}

func TestDecodeMapValueLastWriteWins(t *testing.T) {
	// {"a": 1, "a": 2}
	raw := []byte{
		0x00, 0x02,
		0x00, 0x01, 'a',
		0x00, 0x04, 0x00, 0x00, 0x00, 0x01,
		0x00, 0x01, 'a',
		0x00, 0x04, 0x00, 0x00, 0x00, 0x02,
	}
	got, err := decodeRawValue(raw, &ColumnType{Type: TypeMap, Key: scalarType(TypeVarchar), Elem: scalarType(TypeInt)})
	if err != nil {
		t.Fatal(err)
	}
	m := got.(map[interface{}]interface{})
	if len(m) != 1 || m["a"] != int32(2) {
		t.Errorf("decoded %#v", m)
	}
}

func TestDecodeMapValueBlobKeys(t *testing.T) {
	raw := []byte{
		0x00, 0x01,
		0x00, 0x02, 0xDE, 0xAD,
		0x00, 0x04, 0x00, 0x00, 0x00, 0x01,
	}
	got, err := decodeRawValue(raw, &ColumnType{Type: TypeMap, Key: scalarType(TypeBlob), Elem: scalarType(TypeInt)})
	if err != nil {
		t.Fatal(err)
	}
	m := got.(map[interface{}]interface{})
	if len(m) != 1 || m[string([]byte{0xDE, 0xAD})] != int32(1) {
		t.Errorf("decoded %#v", m)
	}
}

func TestDecodeCollectionCountBound(t *testing.T) {
	// claims 512 elements with 2 bytes of payload
	raw := []byte{0x02, 0x00, 0x00, 0x00}
	var decodeErr PacketDecodingError
	if _, err := decodeRawValue(raw, &ColumnType{Type: TypeList, Elem: scalarType(TypeInt)}); !errors.As(err, &decodeErr) {
		t.Error("oversized element count returned", err)
	}
}

func TestDecodeCollectionTrailingBytes(t *testing.T) {
	raw := []byte{
		0x00, 0x01,
		0x00, 0x04, 0x00, 0x00, 0x00, 0x05,
		0xFF,
	}
	var decodeErr PacketDecodingError
	if _, err := decodeRawValue(raw, &ColumnType{Type: TypeList, Elem: scalarType(TypeInt)}); !errors.As(err, &decodeErr) {
		t.Error("trailing bytes returned", err)
	}
}
