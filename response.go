package cqlwire

import "fmt"

// Opcode identifies a protocol message kind. Request opcodes are listed for
// diagnostics only; this package decodes responses.
type Opcode uint8

const (
	OpError         Opcode = 0x00
	OpStartup       Opcode = 0x01
	OpReady         Opcode = 0x02
	OpAuthenticate  Opcode = 0x03
	OpOptions       Opcode = 0x05
	OpSupported     Opcode = 0x06
	OpQuery         Opcode = 0x07
	OpResult        Opcode = 0x08
	OpPrepare       Opcode = 0x09
	OpExecute       Opcode = 0x0A
	OpRegister      Opcode = 0x0B
	OpEvent         Opcode = 0x0C
)

func (o Opcode) String() string {
	switch o {
	case OpError:
		return "ERROR"
	case OpStartup:
		return "STARTUP"
	case OpReady:
		return "READY"
	case OpAuthenticate:
		return "AUTHENTICATE"
	case OpOptions:
		return "OPTIONS"
	case OpSupported:
		return "SUPPORTED"
	case OpQuery:
		return "QUERY"
	case OpResult:
		return "RESULT"
	case OpPrepare:
		return "PREPARE"
	case OpExecute:
		return "EXECUTE"
	case OpRegister:
		return "REGISTER"
	case OpEvent:
		return "EVENT"
	default:
		return fmt.Sprintf("UNKNOWN_0x%02x", uint8(o))
	}
}

// Response is implemented by every message body the server can send. It is a
// closed union: the unexported decode method keeps implementations inside
// this package so opcode dispatch stays exhaustive.
type Response interface {
	decode(pd packetDecoder, version uint8) error
}

// decodeResponseBody dispatches on the opcode and decodes one frame body. The
// decoder must consume exactly the frame's declared length; the frame
// assembler checks that after the call.
func decodeResponseBody(pd packetDecoder, op Opcode, version uint8) (Response, error) {
	switch op {
	case OpError:
		return decodeErrorResponse(pd, version)
	case OpReady:
		return decodeSimpleResponse(&ReadyResponse{}, pd, version)
	case OpAuthenticate:
		return decodeSimpleResponse(&AuthenticateResponse{}, pd, version)
	case OpSupported:
		return decodeSimpleResponse(&SupportedResponse{}, pd, version)
	case OpResult:
		return decodeResultResponse(pd, version)
	case OpEvent:
		return decodeEventResponse(pd, version)
	default:
		return nil, UnsupportedOperationError{Opcode: op}
	}
}

func decodeSimpleResponse(body Response, pd packetDecoder, version uint8) (Response, error) {
	if err := body.decode(pd, version); err != nil {
		return nil, err
	}
	return body, nil
}
