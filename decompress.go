package cqlwire

import (
	"encoding/binary"
	"fmt"

	"github.com/eapache/go-xerial-snappy"
	"github.com/pierrec/lz4/v4"
)

// CompressionCodec represents the body compression negotiated at STARTUP.
type CompressionCodec int8

const (
	CompressionNone CompressionCodec = iota
	CompressionSnappy
	CompressionLZ4
)

func (cc CompressionCodec) String() string {
	switch cc {
	case CompressionNone:
		return "none"
	case CompressionSnappy:
		return "snappy"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", int8(cc))
	}
}

// decompress inflates one compressed frame body. Snappy blocks are
// self-describing; lz4 bodies carry the uncompressed length as a big-endian
// u32 before the block.
func decompress(cc CompressionCodec, data []byte) ([]byte, error) {
	switch cc {
	case CompressionNone:
		return data, nil
	case CompressionSnappy:
		out, err := snappy.Decode(data)
		if err != nil {
			return nil, PacketDecodingError{fmt.Sprintf("snappy body: %v", err)}
		}
		return out, nil
	case CompressionLZ4:
		if len(data) < 4 {
			return nil, PacketDecodingError{"lz4 body missing length prefix"}
		}
		size := binary.BigEndian.Uint32(data)
		if size > uint32(MaxFrameLength) {
			return nil, PacketDecodingError{fmt.Sprintf("lz4 uncompressed length %d outside allowed bounds", size)}
		}
		out := make([]byte, size)
		n, err := lz4.UncompressBlock(data[4:], out)
		if err != nil {
			return nil, PacketDecodingError{fmt.Sprintf("lz4 body: %v", err)}
		}
		return out[:n], nil
	default:
		return nil, PacketDecodingError{fmt.Sprintf("invalid compression specified (%d)", cc)}
	}
}
