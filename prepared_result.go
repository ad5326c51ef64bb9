package cqlwire

// PreparedResult is the result of a PREPARE: the opaque statement id to
// execute with, and the metadata describing the statement's bind markers.
// There is no row data.
type PreparedResult struct {
	ID       []byte
	Metadata []*ColumnSpec
}

func (r *PreparedResult) decode(pd packetDecoder, version uint8) (err error) {
	if r.ID, err = pd.getShortBytes(); err != nil {
		return err
	}
	r.Metadata, err = decodeMetadata(pd, version)
	return err
}
