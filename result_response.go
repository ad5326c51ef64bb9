package cqlwire

// ResultKind is the sub-tag distinguishing the five RESULT body layouts.
type ResultKind int32

const (
	ResultKindVoid         ResultKind = 0x0001
	ResultKindRows         ResultKind = 0x0002
	ResultKindSetKeyspace  ResultKind = 0x0003
	ResultKindPrepared     ResultKind = 0x0004
	ResultKindSchemaChange ResultKind = 0x0005
)

// decodeResultResponse reads the kind tag and dispatches to the matching
// sub-kind decoder.
func decodeResultResponse(pd packetDecoder, version uint8) (Response, error) {
	kind, err := pd.getInt32()
	if err != nil {
		return nil, err
	}
	var body Response
	switch ResultKind(kind) {
	case ResultKindVoid:
		body = &VoidResult{}
	case ResultKindRows:
		body = &RowsResult{}
	case ResultKindSetKeyspace:
		body = &SetKeyspaceResult{}
	case ResultKindPrepared:
		body = &PreparedResult{}
	case ResultKindSchemaChange:
		body = &SchemaChangeResult{}
	default:
		return nil, UnsupportedResultKindError{Kind: kind}
	}
	if err := body.decode(pd, version); err != nil {
		return nil, err
	}
	return body, nil
}

// VoidResult is the result of a query that returns nothing.
type VoidResult struct{}

func (r *VoidResult) decode(pd packetDecoder, version uint8) error {
	return nil
}

// SetKeyspaceResult acknowledges a USE query.
type SetKeyspaceResult struct {
	Keyspace string
}

func (r *SetKeyspaceResult) decode(pd packetDecoder, version uint8) (err error) {
	r.Keyspace, err = pd.getString()
	return err
}

// SchemaChangeResult reports the schema alteration a DDL query performed.
// Table is empty when the change affected a whole keyspace.
type SchemaChangeResult struct {
	Change   string
	Keyspace string
	Table    string
}

func (r *SchemaChangeResult) decode(pd packetDecoder, version uint8) (err error) {
	if r.Change, err = pd.getString(); err != nil {
		return err
	}
	if r.Keyspace, err = pd.getString(); err != nil {
		return err
	}
	r.Table, err = pd.getString()
	return err
}
