package cqlwire

import (
	"net/netip"

	"github.com/google/uuid"
)

// packetDecoder is the interface providing helpers for reading with CQL's
// encoding rules. Types implementing Response only need to worry about
// calling these methods in the right order; the concrete decoder owns the
// cursor and the remaining byte budget.
type packetDecoder interface {
	remaining() int

	getInt8() (int8, error)
	getUint8() (uint8, error)
	getInt16() (int16, error)
	getUint16() (uint16, error)
	getInt32() (int32, error)
	getInt64() (int64, error)

	// getString reads a u16-length-prefixed UTF-8 string.
	getString() (string, error)
	// getStringList reads a u16 count followed by that many strings.
	getStringList() ([]string, error)
	// getBytes reads an i32-length-prefixed byte blob; a negative length
	// decodes to nil.
	getBytes() ([]byte, error)
	// getShortBytes reads a u16-length-prefixed byte blob.
	getShortBytes() ([]byte, error)
	// getUUID reads 16 raw bytes.
	getUUID() (uuid.UUID, error)
	getConsistency() (Consistency, error)
	// getStringMultimap reads a u16 count of (string, string list) pairs.
	getStringMultimap() (map[string][]string, error)
	// getInet reads a u8 address size (4 or 16) plus that many address bytes.
	getInet() (netip.Addr, error)
	// getInetPort reads an inet address followed by an i32 port.
	getInetPort() (netip.AddrPort, error)

	// getRawBytes reads exactly length bytes with no prefix.
	getRawBytes(length int) ([]byte, error)
}
