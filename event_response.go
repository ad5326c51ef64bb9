package cqlwire

import "net/netip"

// Event type strings a REGISTER subscription can deliver.
const (
	EventTypeSchemaChange   = "SCHEMA_CHANGE"
	EventTypeStatusChange   = "STATUS_CHANGE"
	EventTypeTopologyChange = "TOPOLOGY_CHANGE"
)

// decodeEventResponse reads the event type string and dispatches on its
// literal value.
func decodeEventResponse(pd packetDecoder, version uint8) (Response, error) {
	eventType, err := pd.getString()
	if err != nil {
		return nil, err
	}
	var body Response
	switch eventType {
	case EventTypeSchemaChange:
		body = &SchemaChangeEvent{}
	case EventTypeStatusChange:
		body = &StatusChangeEvent{}
	case EventTypeTopologyChange:
		body = &TopologyChangeEvent{}
	default:
		return nil, UnsupportedEventTypeError{Type: eventType}
	}
	if err := body.decode(pd, version); err != nil {
		return nil, err
	}
	return body, nil
}

// SchemaChangeEvent announces a DDL change ("CREATED", "UPDATED", "DROPPED").
// Table is empty when the change affected a whole keyspace.
type SchemaChangeEvent struct {
	Change   string
	Keyspace string
	Table    string
}

func (e *SchemaChangeEvent) decode(pd packetDecoder, version uint8) (err error) {
	if e.Change, err = pd.getString(); err != nil {
		return err
	}
	if e.Keyspace, err = pd.getString(); err != nil {
		return err
	}
	e.Table, err = pd.getString()
	return err
}

// StatusChangeEvent announces a node going "UP" or "DOWN".
type StatusChangeEvent struct {
	Change  string
	Address netip.AddrPort
}

func (e *StatusChangeEvent) decode(pd packetDecoder, version uint8) (err error) {
	if e.Change, err = pd.getString(); err != nil {
		return err
	}
	e.Address, err = pd.getInetPort()
	return err
}

// TopologyChangeEvent announces a node joining ("NEW_NODE") or leaving
// ("REMOVED_NODE") the cluster.
type TopologyChangeEvent struct {
	Change  string
	Address netip.AddrPort
}

func (e *TopologyChangeEvent) decode(pd packetDecoder, version uint8) (err error) {
	if e.Change, err = pd.getString(); err != nil {
		return err
	}
	e.Address, err = pd.getInetPort()
	return err
}
