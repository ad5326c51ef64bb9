package cqlwire

import "fmt"

// ColumnSpec describes one column of a result set: where it lives and how its
// values decode. All rows of a result share one ordered spec sequence.
type ColumnSpec struct {
	Keyspace string
	Table    string
	Name     string
	Type     *ColumnType
}

// Row maps column names to decoded values. Values are built in declared
// column order, so a name collision resolves to the last column of that name.
type Row map[string]interface{}

// metadata flags
const flagGlobalTableSpec int32 = 0x0001

// decodeMetadata reads a metadata block: flags, column count, then one spec
// per column. With the global-table-spec flag set, the keyspace and table
// names appear once up front and are shared by every column.
func decodeMetadata(pd packetDecoder, version uint8) ([]*ColumnSpec, error) {
	flags, err := pd.getInt32()
	if err != nil {
		return nil, err
	}
	count, err := pd.getInt32()
	if err != nil {
		return nil, err
	}
	// a column spec is at least 4 bytes (empty name + scalar type id)
	if count < 0 || int64(count)*4 > int64(pd.remaining()) {
		return nil, PacketDecodingError{fmt.Sprintf("metadata of %d columns in %d bytes", count, pd.remaining())}
	}

	var globalKeyspace, globalTable string
	if flags&flagGlobalTableSpec != 0 {
		if globalKeyspace, err = pd.getString(); err != nil {
			return nil, err
		}
		if globalTable, err = pd.getString(); err != nil {
			return nil, err
		}
	}

	specs := make([]*ColumnSpec, 0, count)
	for i := int32(0); i < count; i++ {
		spec := &ColumnSpec{Keyspace: globalKeyspace, Table: globalTable}
		if flags&flagGlobalTableSpec == 0 {
			if spec.Keyspace, err = pd.getString(); err != nil {
				return nil, err
			}
			if spec.Table, err = pd.getString(); err != nil {
				return nil, err
			}
		}
		if spec.Name, err = pd.getString(); err != nil {
			return nil, err
		}
		if spec.Type, err = decodeColumnType(pd, MaxTypeDepth); err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// RowsResult is the result of a SELECT: the column metadata followed by the
// row values, decoded per column type.
type RowsResult struct {
	Metadata []*ColumnSpec
	Rows     []Row
}

func (r *RowsResult) decode(pd packetDecoder, version uint8) (err error) {
	if r.Metadata, err = decodeMetadata(pd, version); err != nil {
		return err
	}
	count, err := pd.getInt32()
	if err != nil {
		return err
	}
	cols := len(r.Metadata)
	switch {
	case count < 0:
		return PacketDecodingError{fmt.Sprintf("negative row count %d", count)}
	case cols == 0 && count > 0:
		return PacketDecodingError{fmt.Sprintf("%d rows with no columns", count)}
	case int64(count)*int64(cols)*4 > int64(pd.remaining()):
		// every cell carries at least its own i32 length
		return PacketDecodingError{fmt.Sprintf("%d rows of %d columns in %d bytes", count, cols, pd.remaining())}
	}

	r.Rows = make([]Row, 0, count)
	for i := int32(0); i < count; i++ {
		row := make(Row, cols)
		for _, spec := range r.Metadata {
			v, err := decodeValue(pd, spec.Type)
			if err != nil {
				return err
			}
			row[spec.Name] = v
		}
		r.Rows = append(r.Rows, row)
	}
	return nil
}
