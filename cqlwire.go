// Package cqlwire implements the response side of the CQL binary protocol: it
// turns the raw byte chunks an I/O layer reads off a Cassandra connection into
// typed response messages.
//
// The package never touches the network itself. The connection layer owns a
// Buffer, appends socket reads to it, and drives a Frame (or a FrameReader for
// a whole stream of frames) until it reports completion. Which protocol
// version and body compression are in effect is negotiated elsewhere and
// passed in via Config; the decoder is told, it does not ask.
package cqlwire

import (
	"io"
	"log"
)

// StdLogger is used to log error messages.
type StdLogger interface {
	Print(v ...interface{})
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

// Logger is the instance of a StdLogger interface that cqlwire writes its
// messages to. By default it is set to discard all log messages, but you can
// set it to redirect wherever you want.
var Logger StdLogger = log.New(io.Discard, "[cqlwire] ", log.LstdFlags)

// MaxFrameLength is the maximum body length a frame header may declare, in
// bytes. Headers declaring more fail decoding instead of making the caller
// buffer without bound.
var MaxFrameLength int32 = 256 * 1024 * 1024

// MaxTypeDepth is the maximum nesting depth of collection column types. The
// type descriptors in a result's metadata are self-describing and recursive;
// this bounds how far an adversarial server can push the decoder's stack.
var MaxTypeDepth = 128
