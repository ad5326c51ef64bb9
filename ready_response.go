package cqlwire

// ReadyResponse is the server's zero-byte acknowledgment of a STARTUP
// message.
type ReadyResponse struct{}

func (r *ReadyResponse) decode(pd packetDecoder, version uint8) error {
	return nil
}
