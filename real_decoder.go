package cqlwire

import (
	"encoding/binary"
	"fmt"
	"net/netip"

	"github.com/google/uuid"
)

// realDecoder implements packetDecoder over the shared buffer, advancing its
// cursor by exactly the bytes each read consumes.
type realDecoder struct {
	buf *Buffer
}

func (rd *realDecoder) remaining() int {
	return rd.buf.Len()
}

func (rd *realDecoder) getInt8() (int8, error) {
	raw, err := rd.buf.read(1)
	if err != nil {
		return -1, err
	}
	return int8(raw[0]), nil
}

func (rd *realDecoder) getUint8() (uint8, error) {
	raw, err := rd.buf.read(1)
	if err != nil {
		return 0, err
	}
	return raw[0], nil
}

func (rd *realDecoder) getInt16() (int16, error) {
	raw, err := rd.buf.read(2)
	if err != nil {
		return -1, err
	}
	return int16(binary.BigEndian.Uint16(raw)), nil
}

func (rd *realDecoder) getUint16() (uint16, error) {
	raw, err := rd.buf.read(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(raw), nil
}

func (rd *realDecoder) getInt32() (int32, error) {
	raw, err := rd.buf.read(4)
	if err != nil {
		return -1, err
	}
	return int32(binary.BigEndian.Uint32(raw)), nil
}

func (rd *realDecoder) getInt64() (int64, error) {
	raw, err := rd.buf.read(8)
	if err != nil {
		return -1, err
	}
	return int64(binary.BigEndian.Uint64(raw)), nil
}

func (rd *realDecoder) getString() (string, error) {
	n, err := rd.getUint16()
	if err != nil {
		return "", err
	}
	raw, err := rd.buf.read(int(n))
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (rd *realDecoder) getStringList() ([]string, error) {
	n, err := rd.getUint16()
	if err != nil {
		return nil, err
	}
	if int(n)*2 > rd.remaining() {
		return nil, PacketDecodingError{fmt.Sprintf("string list of %d entries in %d bytes", n, rd.remaining())}
	}
	list := make([]string, 0, n)
	for i := 0; i < int(n); i++ {
		s, err := rd.getString()
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, nil
}

func (rd *realDecoder) getBytes() ([]byte, error) {
	n, err := rd.getInt32()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, nil
	}
	return rd.getRawBytes(int(n))
}

func (rd *realDecoder) getShortBytes() ([]byte, error) {
	n, err := rd.getUint16()
	if err != nil {
		return nil, err
	}
	return rd.getRawBytes(int(n))
}

func (rd *realDecoder) getUUID() (uuid.UUID, error) {
	raw, err := rd.buf.read(16)
	if err != nil {
		return uuid.Nil, err
	}
	u, err := uuid.FromBytes(raw)
	if err != nil {
		return uuid.Nil, PacketDecodingError{err.Error()}
	}
	return u, nil
}

func (rd *realDecoder) getConsistency() (Consistency, error) {
	v, err := rd.getUint16()
	return Consistency(v), err
}

func (rd *realDecoder) getStringMultimap() (map[string][]string, error) {
	n, err := rd.getUint16()
	if err != nil {
		return nil, err
	}
	if int(n)*4 > rd.remaining() {
		return nil, PacketDecodingError{fmt.Sprintf("string multimap of %d entries in %d bytes", n, rd.remaining())}
	}
	mm := make(map[string][]string, n)
	for i := 0; i < int(n); i++ {
		key, err := rd.getString()
		if err != nil {
			return nil, err
		}
		values, err := rd.getStringList()
		if err != nil {
			return nil, err
		}
		mm[key] = values
	}
	return mm, nil
}

func (rd *realDecoder) getInet() (netip.Addr, error) {
	size, err := rd.getUint8()
	if err != nil {
		return netip.Addr{}, err
	}
	if size != 4 && size != 16 {
		return netip.Addr{}, PacketDecodingError{fmt.Sprintf("invalid inet address size %d", size)}
	}
	raw, err := rd.buf.read(int(size))
	if err != nil {
		return netip.Addr{}, err
	}
	addr, ok := netip.AddrFromSlice(raw)
	if !ok {
		return netip.Addr{}, PacketDecodingError{fmt.Sprintf("invalid inet address of %d bytes", size)}
	}
	return addr, nil
}

func (rd *realDecoder) getInetPort() (netip.AddrPort, error) {
	addr, err := rd.getInet()
	if err != nil {
		return netip.AddrPort{}, err
	}
	port, err := rd.getInt32()
	if err != nil {
		return netip.AddrPort{}, err
	}
	if port < 0 || port > 65535 {
		return netip.AddrPort{}, PacketDecodingError{fmt.Sprintf("invalid port %d", port)}
	}
	return netip.AddrPortFrom(addr, uint16(port)), nil
}

func (rd *realDecoder) getRawBytes(length int) ([]byte, error) {
	raw, err := rd.buf.read(length)
	if err != nil {
		return nil, err
	}
	// copy: the raw slice aliases the shared buffer, which is discarded and
	// reused between frames
	out := make([]byte, length)
	copy(out, raw)
	return out, nil
}
