package cqlwire

import "fmt"

// Consistency describes the replica-acknowledgment requirement a query was
// executed with. It appears in the detail fields of unavailable and timeout
// errors.
type Consistency uint16

const (
	ConsistencyAny         Consistency = 0x00
	ConsistencyOne         Consistency = 0x01
	ConsistencyTwo         Consistency = 0x02
	ConsistencyThree       Consistency = 0x03
	ConsistencyQuorum      Consistency = 0x04
	ConsistencyAll         Consistency = 0x05
	ConsistencyLocalQuorum Consistency = 0x06
	ConsistencyEachQuorum  Consistency = 0x07
	ConsistencySerial      Consistency = 0x08
	ConsistencyLocalSerial Consistency = 0x09
	ConsistencyLocalOne    Consistency = 0x0A
)

func (c Consistency) String() string {
	switch c {
	case ConsistencyAny:
		return "ANY"
	case ConsistencyOne:
		return "ONE"
	case ConsistencyTwo:
		return "TWO"
	case ConsistencyThree:
		return "THREE"
	case ConsistencyQuorum:
		return "QUORUM"
	case ConsistencyAll:
		return "ALL"
	case ConsistencyLocalQuorum:
		return "LOCAL_QUORUM"
	case ConsistencyEachQuorum:
		return "EACH_QUORUM"
	case ConsistencySerial:
		return "SERIAL"
	case ConsistencyLocalSerial:
		return "LOCAL_SERIAL"
	case ConsistencyLocalOne:
		return "LOCAL_ONE"
	default:
		return fmt.Sprintf("UNKNOWN_CONS_0x%x", uint16(c))
	}
}
