package cqlwire

// AuthenticateResponse tells the client which authenticator class the server
// requires. Driving the actual SASL exchange is the connection layer's job;
// this package only delivers the demand.
type AuthenticateResponse struct {
	Authenticator string
}

func (r *AuthenticateResponse) decode(pd packetDecoder, version uint8) (err error) {
	r.Authenticator, err = pd.getString()
	return err
}
