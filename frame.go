package cqlwire

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	frameHeaderLen = 8

	frameFlagCompressed uint8 = 0x01
	frameFlagTracing    uint8 = 0x02

	// the top bit of the version byte is the direction: set for responses
	frameDirectionMask uint8 = 0x80
)

// frameHeader is the fixed 8-byte prefix of every frame: version, flags,
// stream id, opcode, and the declared body length. Immutable once decoded.
type frameHeader struct {
	version uint8 // low 7 bits of the version byte
	flags   uint8
	stream  uint8
	opcode  Opcode
	length  int32
}

func (h *frameHeader) decode(pd packetDecoder) error {
	versionByte, err := pd.getUint8()
	if err != nil {
		return err
	}
	if versionByte&frameDirectionMask == 0 {
		return ProtocolDirectionError{Version: versionByte}
	}
	h.version = versionByte &^ frameDirectionMask
	if h.flags, err = pd.getUint8(); err != nil {
		return err
	}
	if h.stream, err = pd.getUint8(); err != nil {
		return err
	}
	op, err := pd.getUint8()
	if err != nil {
		return err
	}
	h.opcode = Opcode(op)
	if h.length, err = pd.getInt32(); err != nil {
		return err
	}
	if h.length < 0 || h.length > MaxFrameLength {
		return PacketDecodingError{fmt.Sprintf("frame length %d outside allowed bounds", h.length)}
	}
	return nil
}

// frame assembly states, strictly forward-moving
type frameState int

const (
	awaitingHeader frameState = iota
	awaitingBody
	frameComplete
)

// Frame incrementally assembles one response message from the shared buffer.
// The I/O layer feeds it byte chunks as they arrive; Feed returns immediately
// whether or not the frame completed, and Complete tells the caller when the
// decoded response is available. A frame is either awaiting its header,
// awaiting its body, or complete; it never moves backwards.
//
// Frames on one buffer are strictly sequential: construct the next Frame only
// after the current one reports Complete, at which point the current frame's
// bytes have been discarded and the buffer front is the next frame's first
// byte.
type Frame struct {
	conf    *Config
	buf     *Buffer
	state   frameState
	header  frameHeader
	traceID *uuid.UUID
	body    Response
	err     error
}

// NewFrame constructs a frame assembler over buf. A nil conf gets defaults.
func NewFrame(conf *Config, buf *Buffer) *Frame {
	if conf == nil {
		conf = NewConfig()
	}
	return &Frame{conf: conf, buf: buf}
}

// Feed appends chunk to the shared buffer and advances the assembly as far as
// the buffered bytes allow. It never blocks: with too few bytes for the next
// step it simply returns, and the caller retries after the next read. Any
// error is fatal for the frame and is returned again on subsequent feeds.
func (f *Frame) Feed(chunk []byte) error {
	if f.err != nil {
		return f.err
	}
	f.buf.Append(chunk)
	if f.state == frameComplete {
		// late bytes belong to the next frame; nothing to do here
		return nil
	}
	f.err = f.advance()
	return f.err
}

func (f *Frame) advance() error {
	if f.state == awaitingHeader && f.buf.Len() >= frameHeaderLen {
		if err := f.header.decode(&realDecoder{buf: f.buf}); err != nil {
			return err
		}
		f.state = awaitingBody
	}
	if f.state == awaitingBody && f.buf.Len() >= int(f.header.length) {
		// exactly one decode attempt: state moves to complete or err sticks
		if err := f.decodeBody(); err != nil {
			return err
		}
		f.state = frameComplete
	}
	return nil
}

// decodeBody runs the opcode's body decoder over exactly the declared byte
// range, then drops this frame's bytes from the buffer front. Bytes beyond
// the declared length are preserved for the next frame.
func (f *Frame) decodeBody() error {
	length := int(f.header.length)
	if f.header.flags&frameFlagCompressed != 0 && length > 0 {
		if err := f.decodeCompressedBody(length); err != nil {
			return err
		}
	} else {
		rd := &realDecoder{buf: f.buf}
		before := rd.remaining()
		body, err := f.decodeTracedBody(rd)
		if err != nil {
			return err
		}
		if consumed := before - rd.remaining(); consumed != length {
			return PacketDecodingError{fmt.Sprintf("body decoder consumed %d of %d declared bytes", consumed, length)}
		}
		f.body = body
	}
	f.buf.discardConsumed()
	return nil
}

// decodeTracedBody strips the trace id a traced response prepends to its
// body, then runs the opcode's body decoder.
func (f *Frame) decodeTracedBody(rd *realDecoder) (Response, error) {
	if f.header.flags&frameFlagTracing != 0 {
		id, err := rd.getUUID()
		if err != nil {
			return nil, err
		}
		f.traceID = &id
	}
	return decodeResponseBody(rd, f.header.opcode, f.header.version)
}

func (f *Frame) decodeCompressedBody(length int) error {
	if f.conf.Compression == CompressionNone {
		return PacketDecodingError{"compressed frame without negotiated compression"}
	}
	deflated, err := (&realDecoder{buf: f.buf}).getRawBytes(length)
	if err != nil {
		return err
	}
	inflated, err := decompress(f.conf.Compression, deflated)
	if err != nil {
		return err
	}
	rd := &realDecoder{buf: &Buffer{data: inflated}}
	body, err := f.decodeTracedBody(rd)
	if err != nil {
		return err
	}
	if rd.remaining() != 0 {
		return PacketDecodingError{fmt.Sprintf("body decoder left %d inflated bytes unconsumed", rd.remaining())}
	}
	f.body = body
	return nil
}

// Complete reports whether the frame's body has been decoded.
func (f *Frame) Complete() bool {
	return f.state == frameComplete
}

// StreamID correlates this response to its originating request. Valid once
// the header has arrived; zero before that.
func (f *Frame) StreamID() uint8 {
	return f.header.stream
}

// ProtocolVersion is the version the server encoded this frame with (the low
// 7 bits of the header's version byte).
func (f *Frame) ProtocolVersion() uint8 {
	return f.header.version
}

// Opcode is the frame's message kind tag.
func (f *Frame) Opcode() Opcode {
	return f.header.opcode
}

// Length is the body byte count the header declared.
func (f *Frame) Length() int32 {
	return f.header.length
}

// TraceID returns the server-side trace session id, or nil for an untraced
// frame. Valid only once Complete reports true.
func (f *Frame) TraceID() *uuid.UUID {
	return f.traceID
}

// Response returns the decoded body. Valid only once Complete reports true.
func (f *Frame) Response() Response {
	return f.body
}
