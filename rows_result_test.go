package cqlwire

import (
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

var (
	globalSpecRows = []byte{
		0x00, 0x00, 0x00, 0x02, // kind: rows

		0x00, 0x00, 0x00, 0x01, // flags: global table spec
		0x00, 0x00, 0x00, 0x02, // two columns
		0x00, 0x03, 'k', 's', '1',
		0x00, 0x03, 't', 'b', 'l',
		0x00, 0x04, 'n', 'a', 'm', 'e',
		0x00, 0x0D, // varchar
		0x00, 0x03, 'a', 'g', 'e',
		0x00, 0x09, // int

		0x00, 0x00, 0x00, 0x02, // two rows
		0x00, 0x00, 0x00, 0x05, 'a', 'l', 'i', 'c', 'e',
		0x00, 0x00, 0x00, 0x04, 0x00, 0x00, 0x00, 0x1E,
		0xFF, 0xFF, 0xFF, 0xFF, // null name
		0x00, 0x00, 0x00, 0x04, 0xFF, 0xFF, 0xFF, 0xF9,
	}

	perColumnSpecRows = []byte{
		0x00, 0x00, 0x00, 0x02, // kind: rows

		0x00, 0x00, 0x00, 0x00, // flags: per-column table specs
		0x00, 0x00, 0x00, 0x01, // one column
		0x00, 0x03, 'k', 's', '2',
		0x00, 0x02, 't', '2',
		0x00, 0x02, 'i', 'd',
		0x00, 0x0C, // uuid

		0x00, 0x00, 0x00, 0x00, // no rows
	}

	nestedCollectionRows = []byte{
		0x00, 0x00, 0x00, 0x02, // kind: rows

		0x00, 0x00, 0x00, 0x01, // flags: global table spec
		0x00, 0x00, 0x00, 0x01, // one column
		0x00, 0x02, 'k', 's',
		0x00, 0x01, 't',
		0x00, 0x01, 'm',
		0x00, 0x21, 0x00, 0x0D, 0x00, 0x20, 0x00, 0x09, // map<varchar, list<int>>

		0x00, 0x00, 0x00, 0x01, // one row
		0x00, 0x00, 0x00, 0x17, // 23 byte cell
		0x00, 0x01, // one entry
		0x00, 0x03, 'f', 'o', 'o',
		0x00, 0x0E, // 14 byte list
		0x00, 0x02,
		0x00, 0x04, 0x00, 0x00, 0x00, 0x05,
		0x00, 0x04, 0xFF, 0xFF, 0xFF, 0xF9,
	}
)

func TestRowsResultGlobalTableSpec(t *testing.T) {
	resp := testResponseDecodable(t, "global spec rows", globalSpecRows, OpResult, 2)
	rows, ok := resp.(*RowsResult)
	if !ok {
		t.Fatalf("decoded %T, want *RowsResult", resp)
	}

	wantMetadata := []*ColumnSpec{
		{Keyspace: "ks1", Table: "tbl", Name: "name", Type: scalarType(TypeVarchar)},
		{Keyspace: "ks1", Table: "tbl", Name: "age", Type: scalarType(TypeInt)},
	}
	if !reflect.DeepEqual(rows.Metadata, wantMetadata) {
		t.Error(spew.Sprintf("decoded metadata does not match\ngot: %+v\nwant: %+v", rows.Metadata, wantMetadata))
	}

	wantRows := []Row{
		{"name": "alice", "age": int32(30)},
		{"name": nil, "age": int32(-7)},
	}
	if !reflect.DeepEqual(rows.Rows, wantRows) {
		t.Error(spew.Sprintf("decoded rows do not match\ngot: %+v\nwant: %+v", rows.Rows, wantRows))
	}
}

func TestRowsResultPerColumnTableSpec(t *testing.T) {
	resp := testResponseDecodable(t, "per-column spec rows", perColumnSpecRows, OpResult, 2)
	rows := resp.(*RowsResult)

	wantMetadata := []*ColumnSpec{
		{Keyspace: "ks2", Table: "t2", Name: "id", Type: scalarType(TypeUUID)},
	}
	if !reflect.DeepEqual(rows.Metadata, wantMetadata) {
		t.Error(spew.Sprintf("decoded metadata does not match\ngot: %+v\nwant: %+v", rows.Metadata, wantMetadata))
	}
	if len(rows.Rows) != 0 {
		t.Error("decoded", len(rows.Rows), "rows from an empty result")
	}
}

func TestRowsResultNestedCollections(t *testing.T) {
	resp := testResponseDecodable(t, "nested collection rows", nestedCollectionRows, OpResult, 2)
	rows := resp.(*RowsResult)

	if got := rows.Metadata[0].Type.String(); got != "map<varchar, list<int>>" {
		t.Error("decoded column type", got)
	}

	want := Row{"m": map[interface{}]interface{}{
		"foo": []interface{}{int32(5), int32(-7)},
	}}
	if !reflect.DeepEqual(rows.Rows[0], want) {
		t.Error(spew.Sprintf("decoded row does not match\ngot: %+v\nwant: %+v", rows.Rows[0], want))
	}
}

func TestRowsResultCountBounds(t *testing.T) {
	truncated := []byte{
		0x00, 0x00, 0x00, 0x02,
		0x00, 0x00, 0x00, 0x01,
		0x00, 0x00, 0x7F, 0xFF, // 32767 columns, no spec bytes
	}
	testResponseDecodeError(t, "column count bound", truncated, OpResult, 2)

	hugeRows := []byte{
		0x00, 0x00, 0x00, 0x02,
		0x00, 0x00, 0x00, 0x01,
		0x00, 0x00, 0x00, 0x01,
		0x00, 0x02, 'k', 's',
		0x00, 0x01, 't',
		0x00, 0x01, 'c',
		0x00, 0x09,
		0x7F, 0xFF, 0xFF, 0xFF, // 2^31-1 rows, no cell bytes
	}
	testResponseDecodeError(t, "row count bound", hugeRows, OpResult, 2)
}
