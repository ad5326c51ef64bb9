package cqlwire

import "github.com/rcrowley/go-metrics"

// FrameReader decodes a connection's response stream frame by frame. The
// reactor feeds it raw chunks in arrival order; completed frames come back in
// the order their bytes arrived, ready to be matched to in-flight requests by
// stream id. The reader owns the buffer and enforces the sequencing rule: a
// new frame only starts consuming once the previous frame's bytes are
// decoded and discarded.
type FrameReader struct {
	conf *Config
	buf  *Buffer
	cur  *Frame
	err  error

	incomingByteRate metrics.Meter
	responseRate     metrics.Meter
	responseSize     metrics.Histogram
}

// NewFrameReader validates conf (nil gets defaults) and returns a reader for
// one connection's response stream.
func NewFrameReader(conf *Config) (*FrameReader, error) {
	if conf == nil {
		conf = NewConfig()
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	buf := &Buffer{}
	r := &FrameReader{
		conf:             conf,
		buf:              buf,
		cur:              NewFrame(conf, buf),
		incomingByteRate: metrics.GetOrRegisterMeter("incoming-byte-rate", conf.MetricRegistry),
		responseRate:     metrics.GetOrRegisterMeter("response-rate", conf.MetricRegistry),
		responseSize:     getOrRegisterHistogram("response-size", conf.MetricRegistry),
	}
	return r, nil
}

// Feed appends chunk to the stream and returns every frame it completed, in
// order. One chunk can finish several back-to-back frames, or none. A decode
// error poisons the stream: Feed reports it now and on every later call, and
// the caller is expected to drop the connection. Frames completed before the
// poisoning error are still returned alongside it.
func (r *FrameReader) Feed(chunk []byte) ([]*Frame, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.incomingByteRate.Mark(int64(len(chunk)))

	var done []*Frame
	if err := r.cur.Feed(chunk); err != nil {
		return done, r.poison(err)
	}
	for r.cur.Complete() {
		r.responseRate.Mark(1)
		r.responseSize.Update(int64(r.cur.Length()))
		getOrRegisterOpcodeMeter("response-rate", r.cur.Opcode(), r.conf.MetricRegistry).Mark(1)
		done = append(done, r.cur)

		// leftover buffered bytes may already hold the next frame
		r.cur = NewFrame(r.conf, r.buf)
		if err := r.cur.Feed(nil); err != nil {
			return done, r.poison(err)
		}
	}
	return done, nil
}

// Buffered reports the bytes received but not yet consumed by a completed
// frame.
func (r *FrameReader) Buffered() int {
	return r.buf.Len()
}

func (r *FrameReader) poison(err error) error {
	Logger.Printf("frame reader: response stream unusable: %v\n", err)
	r.err = err
	return err
}
