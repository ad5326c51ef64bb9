package cqlwire

// SupportedResponse lists the startup options the server offers, e.g.
// CQL_VERSION and COMPRESSION, each with its possible values.
type SupportedResponse struct {
	Options map[string][]string
}

func (r *SupportedResponse) decode(pd packetDecoder, version uint8) (err error) {
	r.Options, err = pd.getStringMultimap()
	return err
}
