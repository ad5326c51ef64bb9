package cqlwire

import (
	"errors"
	"fmt"
)

// ErrInsufficientData is returned when decoding runs off the end of the
// buffered bytes. The frame assembler only invokes a body decoder once the
// declared body length has arrived, so if this error escapes a completed
// frame the body lied about the sizes of its own fields.
var ErrInsufficientData = errors.New("cqlwire: insufficient data to decode packet, more bytes expected")

// PacketDecodingError is returned when a frame's bytes are well delimited but
// malformed: a length field pointing outside the body, an invalid inet size,
// a body decoder finishing away from its declared boundary, and so on.
type PacketDecodingError struct {
	Info string
}

func (err PacketDecodingError) Error() string {
	return fmt.Sprintf("cqlwire: error decoding packet: %s", err.Info)
}

// ProtocolDirectionError is returned when the version byte of a frame header
// has its top bit clear, marking a request frame. This decoder only ever
// processes server responses, so a request on the inbound stream means the
// connection is hopelessly confused.
type ProtocolDirectionError struct {
	Version uint8
}

func (err ProtocolDirectionError) Error() string {
	return fmt.Sprintf("cqlwire: request frame on response stream (version byte 0x%02x)", err.Version)
}

// UnsupportedOperationError is returned when a frame header carries an opcode
// this decoder has no body decoder for, typically a sign of version skew
// between client and server.
type UnsupportedOperationError struct {
	Opcode Opcode
}

func (err UnsupportedOperationError) Error() string {
	return fmt.Sprintf("cqlwire: unsupported operation 0x%02x", uint8(err.Opcode))
}

// UnsupportedResultKindError is returned when a RESULT body carries an
// unrecognized kind tag.
type UnsupportedResultKindError struct {
	Kind int32
}

func (err UnsupportedResultKindError) Error() string {
	return fmt.Sprintf("cqlwire: unsupported result kind 0x%02x", err.Kind)
}

// UnsupportedColumnTypeError is returned when result metadata carries an
// unrecognized column type id.
type UnsupportedColumnTypeError struct {
	ID uint16
}

func (err UnsupportedColumnTypeError) Error() string {
	return fmt.Sprintf("cqlwire: unsupported column type 0x%04x", err.ID)
}

// UnsupportedEventTypeError is returned when an EVENT body carries an
// unrecognized event type string.
type UnsupportedEventTypeError struct {
	Type string
}

func (err UnsupportedEventTypeError) Error() string {
	return fmt.Sprintf("cqlwire: unsupported event type %q", err.Type)
}

// ConfigurationError is the type of error returned from a constructor (e.g.
// NewFrameReader) when the specified configuration is invalid.
type ConfigurationError string

func (err ConfigurationError) Error() string {
	return "cqlwire: invalid configuration (" + string(err) + ")"
}
