package cqlwire

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/big"
	"net/netip"
	"reflect"
	"time"

	"github.com/google/uuid"
	"gopkg.in/inf.v0"
)

// Type identifies a CQL column type on the wire.
type Type uint16

const (
	TypeAscii     Type = 0x0001
	TypeBigint    Type = 0x0002
	TypeBlob      Type = 0x0003
	TypeBoolean   Type = 0x0004
	TypeCounter   Type = 0x0005
	TypeDecimal   Type = 0x0006
	TypeDouble    Type = 0x0007
	TypeFloat     Type = 0x0008
	TypeInt       Type = 0x0009
	TypeTimestamp Type = 0x000B
	TypeUUID      Type = 0x000C
	TypeVarchar   Type = 0x000D
	TypeVarint    Type = 0x000E
	TypeTimeUUID  Type = 0x000F
	TypeInet      Type = 0x0010
	TypeList      Type = 0x0020
	TypeMap       Type = 0x0021
	TypeSet       Type = 0x0022
)

func (t Type) String() string {
	switch t {
	case TypeAscii:
		return "ascii"
	case TypeBigint:
		return "bigint"
	case TypeBlob:
		return "blob"
	case TypeBoolean:
		return "boolean"
	case TypeCounter:
		return "counter"
	case TypeDecimal:
		return "decimal"
	case TypeDouble:
		return "double"
	case TypeFloat:
		return "float"
	case TypeInt:
		return "int"
	case TypeTimestamp:
		return "timestamp"
	case TypeUUID:
		return "uuid"
	case TypeVarchar:
		return "varchar"
	case TypeVarint:
		return "varint"
	case TypeTimeUUID:
		return "timeuuid"
	case TypeInet:
		return "inet"
	case TypeList:
		return "list"
	case TypeMap:
		return "map"
	case TypeSet:
		return "set"
	default:
		return fmt.Sprintf("unknown_0x%04x", uint16(t))
	}
}

// ColumnType describes the type of one result column. Collection types carry
// their nested types: Elem for list/set elements and map values, Key for map
// keys only. Scalar types carry neither.
type ColumnType struct {
	Type Type
	Key  *ColumnType
	Elem *ColumnType
}

func (ct *ColumnType) String() string {
	switch ct.Type {
	case TypeList:
		return fmt.Sprintf("list<%s>", ct.Elem)
	case TypeMap:
		return fmt.Sprintf("map<%s, %s>", ct.Key, ct.Elem)
	case TypeSet:
		return fmt.Sprintf("set<%s>", ct.Elem)
	default:
		return ct.Type.String()
	}
}

// decodeColumnType reads one type descriptor, recursing into nested
// descriptors for collections. depth starts at MaxTypeDepth and counts down;
// the wire format itself has no nesting bound, so the decoder imposes one.
func decodeColumnType(pd packetDecoder, depth int) (*ColumnType, error) {
	if depth <= 0 {
		return nil, PacketDecodingError{fmt.Sprintf("column type nested deeper than %d", MaxTypeDepth)}
	}
	id, err := pd.getUint16()
	if err != nil {
		return nil, err
	}
	t := Type(id)
	switch t {
	case TypeAscii, TypeBigint, TypeBlob, TypeBoolean, TypeCounter,
		TypeDecimal, TypeDouble, TypeFloat, TypeInt, TypeTimestamp,
		TypeUUID, TypeVarchar, TypeVarint, TypeTimeUUID, TypeInet:
		return &ColumnType{Type: t}, nil
	case TypeList, TypeSet:
		elem, err := decodeColumnType(pd, depth-1)
		if err != nil {
			return nil, err
		}
		return &ColumnType{Type: t, Elem: elem}, nil
	case TypeMap:
		key, err := decodeColumnType(pd, depth-1)
		if err != nil {
			return nil, err
		}
		elem, err := decodeColumnType(pd, depth-1)
		if err != nil {
			return nil, err
		}
		return &ColumnType{Type: t, Key: key, Elem: elem}, nil
	default:
		return nil, UnsupportedColumnTypeError{ID: id}
	}
}

// decodeValue reads one i32-length-framed cell of type ct. A negative length
// is a null cell and decodes to nil, distinct from a zero-length value.
func decodeValue(pd packetDecoder, ct *ColumnType) (interface{}, error) {
	raw, err := pd.getBytes()
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	return decodeRawValue(raw, ct)
}

// decodeRawValue decodes exactly the bytes of one non-null value.
//
// Go representations: ascii/varchar -> string, blob -> []byte, boolean ->
// bool, int -> int32, bigint/counter -> int64, float -> float32, double ->
// float64, timestamp -> time.Time (UTC, ms precision), uuid/timeuuid ->
// uuid.UUID, varint -> *big.Int, decimal -> *inf.Dec, inet -> netip.Addr,
// list/set -> []interface{}, map -> map[interface{}]interface{}.
func decodeRawValue(raw []byte, ct *ColumnType) (interface{}, error) {
	switch ct.Type {
	case TypeAscii, TypeVarchar:
		// bytes are passed through untouched; text validity is the caller's
		// concern
		return string(raw), nil
	case TypeBlob:
		return raw, nil
	case TypeBoolean:
		if len(raw) != 1 {
			return nil, PacketDecodingError{fmt.Sprintf("boolean of %d bytes", len(raw))}
		}
		return raw[0] != 0, nil
	case TypeInt:
		if len(raw) != 4 {
			return nil, PacketDecodingError{fmt.Sprintf("int of %d bytes", len(raw))}
		}
		return int32(binary.BigEndian.Uint32(raw)), nil
	case TypeBigint, TypeCounter:
		if len(raw) != 8 {
			return nil, PacketDecodingError{fmt.Sprintf("%s of %d bytes", ct.Type, len(raw))}
		}
		return int64(binary.BigEndian.Uint64(raw)), nil
	case TypeFloat:
		if len(raw) != 4 {
			return nil, PacketDecodingError{fmt.Sprintf("float of %d bytes", len(raw))}
		}
		return math.Float32frombits(binary.BigEndian.Uint32(raw)), nil
	case TypeDouble:
		if len(raw) != 8 {
			return nil, PacketDecodingError{fmt.Sprintf("double of %d bytes", len(raw))}
		}
		return math.Float64frombits(binary.BigEndian.Uint64(raw)), nil
	case TypeTimestamp:
		if len(raw) != 8 {
			return nil, PacketDecodingError{fmt.Sprintf("timestamp of %d bytes", len(raw))}
		}
		ms := int64(binary.BigEndian.Uint64(raw))
		return time.UnixMilli(ms).UTC(), nil
	case TypeUUID, TypeTimeUUID:
		u, err := uuid.FromBytes(raw)
		if err != nil {
			return nil, PacketDecodingError{fmt.Sprintf("%s of %d bytes", ct.Type, len(raw))}
		}
		return u, nil
	case TypeVarint:
		return decodeVarint(raw), nil
	case TypeDecimal:
		if len(raw) < 4 {
			return nil, PacketDecodingError{fmt.Sprintf("decimal of %d bytes", len(raw))}
		}
		scale := int32(binary.BigEndian.Uint32(raw))
		return inf.NewDecBig(decodeVarint(raw[4:]), inf.Scale(scale)), nil
	case TypeInet:
		if len(raw) < 1 {
			return nil, PacketDecodingError{"inet value missing size byte"}
		}
		size := int(raw[0])
		if (size != 4 && size != 16) || len(raw) != 1+size {
			return nil, PacketDecodingError{fmt.Sprintf("inet value of %d bytes with size byte %d", len(raw), size)}
		}
		addr, _ := netip.AddrFromSlice(raw[1:])
		return addr, nil
	case TypeList:
		return decodeList(raw, ct.Elem)
	case TypeSet:
		return decodeSet(raw, ct.Elem)
	case TypeMap:
		return decodeMap(raw, ct.Key, ct.Elem)
	default:
		return nil, UnsupportedColumnTypeError{ID: uint16(ct.Type)}
	}
}

// decodeVarint interprets raw as a big-endian two's-complement integer of
// arbitrary length. An empty encoding is zero.
func decodeVarint(raw []byte) *big.Int {
	n := new(big.Int).SetBytes(raw)
	if len(raw) > 0 && raw[0]&0x80 != 0 {
		n.Sub(n, new(big.Int).Lsh(big.NewInt(1), uint(len(raw))*8))
	}
	return n
}

// collectionDecoder positions a fresh cursor over one collection value's bytes
// and reads the u16 element count, bounding it against the bytes actually
// present (every element costs at least its own u16 length prefix).
func collectionDecoder(raw []byte) (*realDecoder, int, error) {
	rd := &realDecoder{buf: &Buffer{data: raw}}
	n, err := rd.getUint16()
	if err != nil {
		return nil, 0, err
	}
	if int(n)*2 > rd.remaining() {
		return nil, 0, PacketDecodingError{fmt.Sprintf("collection of %d elements in %d bytes", n, rd.remaining())}
	}
	return rd, int(n), nil
}

// decodeShortValue reads one u16-length-prefixed collection element, returning
// both the decoded value and its raw encoding (the raw form is the identity
// used for set/map de-duplication).
func decodeShortValue(rd *realDecoder, ct *ColumnType) (interface{}, []byte, error) {
	n, err := rd.getUint16()
	if err != nil {
		return nil, nil, err
	}
	raw, err := rd.getRawBytes(int(n))
	if err != nil {
		return nil, nil, err
	}
	v, err := decodeRawValue(raw, ct)
	return v, raw, err
}

func decodeList(raw []byte, elem *ColumnType) ([]interface{}, error) {
	rd, n, err := collectionDecoder(raw)
	if err != nil {
		return nil, err
	}
	out := make([]interface{}, 0, n)
	for i := 0; i < n; i++ {
		el, _, err := decodeShortValue(rd, elem)
		if err != nil {
			return nil, err
		}
		out = append(out, el)
	}
	if rd.remaining() != 0 {
		return nil, PacketDecodingError{fmt.Sprintf("%d trailing bytes after list elements", rd.remaining())}
	}
	return out, nil
}

func decodeSet(raw []byte, elem *ColumnType) ([]interface{}, error) {
	rd, n, err := collectionDecoder(raw)
	if err != nil {
		return nil, err
	}
	out := make([]interface{}, 0, n)
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		el, rawEl, err := decodeShortValue(rd, elem)
		if err != nil {
			return nil, err
		}
		// equal CQL values share an encoding, so the raw bytes are the
		// membership key; first occurrence wins, order is preserved
		if _, dup := seen[string(rawEl)]; dup {
			continue
		}
		seen[string(rawEl)] = struct{}{}
		out = append(out, el)
	}
	if rd.remaining() != 0 {
		return nil, PacketDecodingError{fmt.Sprintf("%d trailing bytes after set elements", rd.remaining())}
	}
	return out, nil
}

func decodeMap(raw []byte, key, elem *ColumnType) (map[interface{}]interface{}, error) {
	rd, n, err := collectionDecoder(raw)
	if err != nil {
		return nil, err
	}
	out := make(map[interface{}]interface{}, n)
	keys := make(map[string]interface{}, n)
	for i := 0; i < n; i++ {
		k, rawKey, err := decodeShortValue(rd, key)
		if err != nil {
			return nil, err
		}
		v, _, err := decodeShortValue(rd, elem)
		if err != nil {
			return nil, err
		}
		kk := mapKey(k)
		// duplicate raw encodings must collapse to one entry even when the
		// decoded key is pointer-typed (varint, decimal): reuse the first
		// decoded key so the overwrite lands on the same map slot
		if prev, ok := keys[string(rawKey)]; ok {
			kk = prev
		} else {
			keys[string(rawKey)] = kk
		}
		out[kk] = v
	}
	if rd.remaining() != 0 {
		return nil, PacketDecodingError{fmt.Sprintf("%d trailing bytes after map entries", rd.remaining())}
	}
	return out, nil
}

// mapKey converts decoded values Go cannot use as map keys. Blobs become
// strings; every other value the decoder produces for a legal CQL key type is
// comparable. Collections as keys are not legal CQL, but bytes claiming one
// must not panic the decoder, hence the reflect fallback.
func mapKey(v interface{}) interface{} {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	if v != nil && !reflect.TypeOf(v).Comparable() {
		return fmt.Sprint(v)
	}
	return v
}
