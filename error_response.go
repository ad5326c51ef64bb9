package cqlwire

// Server error codes. Codes with structured detail fields get a
// DetailedErrorResponse; everything else, including codes this list does not
// know about, decodes as a bare ErrorResponse.
const (
	ErrCodeServerError     int32 = 0x0000
	ErrCodeProtocolError   int32 = 0x000A
	ErrCodeBadCredentials  int32 = 0x0100
	ErrCodeUnavailable     int32 = 0x1000
	ErrCodeOverloaded      int32 = 0x1001
	ErrCodeIsBootstrapping int32 = 0x1002
	ErrCodeTruncateError   int32 = 0x1003
	ErrCodeWriteTimeout    int32 = 0x1100
	ErrCodeReadTimeout     int32 = 0x1200
	ErrCodeSyntaxError     int32 = 0x2000
	ErrCodeUnauthorized    int32 = 0x2100
	ErrCodeInvalid         int32 = 0x2200
	ErrCodeConfigError     int32 = 0x2300
	ErrCodeAlreadyExists   int32 = 0x2400
	ErrCodeUnprepared      int32 = 0x2500
)

// ErrorResponse is a successfully decoded ERROR message. It is data, not a Go
// error: the query failed, the decode did not.
type ErrorResponse struct {
	Code    int32
	Message string
}

func (r *ErrorResponse) decode(pd packetDecoder, version uint8) (err error) {
	if r.Code, err = pd.getInt32(); err != nil {
		return err
	}
	r.Message, err = pd.getString()
	return err
}

// DetailedErrorResponse carries the structured fields some error codes append
// after the message. The detail keys depend on the code:
//
//	unavailable:    cl, required, alive
//	write_timeout:  cl, received, blockfor, write_type
//	read_timeout:   cl, received, blockfor, data_present
//	already_exists: ks, table
//	unprepared:     id
type DetailedErrorResponse struct {
	ErrorResponse
	Details map[string]interface{}
}

func (r *DetailedErrorResponse) decode(pd packetDecoder, version uint8) error {
	if err := r.ErrorResponse.decode(pd, version); err != nil {
		return err
	}
	return r.decodeDetails(pd, version)
}

func (r *DetailedErrorResponse) decodeDetails(pd packetDecoder, version uint8) error {
	d := make(map[string]interface{})
	switch r.Code {
	case ErrCodeUnavailable:
		cl, err := pd.getConsistency()
		if err != nil {
			return err
		}
		required, err := pd.getInt32()
		if err != nil {
			return err
		}
		alive, err := pd.getInt32()
		if err != nil {
			return err
		}
		d["cl"], d["required"], d["alive"] = cl, required, alive
	case ErrCodeWriteTimeout:
		cl, err := pd.getConsistency()
		if err != nil {
			return err
		}
		received, err := pd.getInt32()
		if err != nil {
			return err
		}
		blockfor, err := pd.getInt32()
		if err != nil {
			return err
		}
		writeType, err := pd.getString()
		if err != nil {
			return err
		}
		d["cl"], d["received"], d["blockfor"], d["write_type"] = cl, received, blockfor, writeType
	case ErrCodeReadTimeout:
		cl, err := pd.getConsistency()
		if err != nil {
			return err
		}
		received, err := pd.getInt32()
		if err != nil {
			return err
		}
		blockfor, err := pd.getInt32()
		if err != nil {
			return err
		}
		dataPresent, err := pd.getUint8()
		if err != nil {
			return err
		}
		d["cl"], d["received"], d["blockfor"], d["data_present"] = cl, received, blockfor, dataPresent != 0
	case ErrCodeAlreadyExists:
		ks, err := pd.getString()
		if err != nil {
			return err
		}
		table, err := pd.getString()
		if err != nil {
			return err
		}
		d["ks"], d["table"] = ks, table
	case ErrCodeUnprepared:
		id, err := pd.getShortBytes()
		if err != nil {
			return err
		}
		d["id"] = id
	}
	r.Details = d
	return nil
}

// decodeErrorResponse reads the code and message, then the per-code detail
// fields for the codes that have them.
func decodeErrorResponse(pd packetDecoder, version uint8) (Response, error) {
	base := &ErrorResponse{}
	if err := base.decode(pd, version); err != nil {
		return nil, err
	}
	switch base.Code {
	case ErrCodeUnavailable, ErrCodeWriteTimeout, ErrCodeReadTimeout,
		ErrCodeAlreadyExists, ErrCodeUnprepared:
		detailed := &DetailedErrorResponse{ErrorResponse: *base}
		if err := detailed.decodeDetails(pd, version); err != nil {
			return nil, err
		}
		return detailed, nil
	default:
		return base, nil
	}
}
