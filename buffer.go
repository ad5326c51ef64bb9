package cqlwire

// Buffer is the growable FIFO byte queue shared between the I/O layer and the
// decoder. The I/O layer owns it and appends chunks as they arrive off the
// socket; the decoder reads from the front through a cursor and discards a
// frame's bytes once that frame is complete. Everything past the cursor
// belongs to the current or a future frame.
//
// The zero value is an empty buffer ready for use.
type Buffer struct {
	data []byte
	off  int
}

// Append adds p to the back of the buffer.
func (b *Buffer) Append(p []byte) {
	b.data = append(b.data, p...)
}

// Len reports the number of bytes not yet consumed by the cursor.
func (b *Buffer) Len() int {
	return len(b.data) - b.off
}

// read returns the next n bytes and advances the cursor past them. The
// returned slice aliases the buffer and is only valid until the next discard;
// callers that retain bytes must copy them.
func (b *Buffer) read(n int) ([]byte, error) {
	if n < 0 || b.Len() < n {
		return nil, ErrInsufficientData
	}
	p := b.data[b.off : b.off+n]
	b.off += n
	return p, nil
}

// discardConsumed drops everything before the cursor so the backing array does
// not grow without bound across frames.
func (b *Buffer) discardConsumed() {
	b.data = b.data[b.off:]
	b.off = 0
}
