package connection

import (
	"fmt"

	"github.com/hzamani/cassandra-go/datacodec"
	"github.com/hzamani/cassandra-go/message"
	"github.com/hzamani/cassandra-go/primitive"
)

// BindExecuteValues encodes args positionally against a prepared statement's bound-variable types, using datacodec
// to produce the wire representation for each one. It is a convenience on top of QueryParams.Values: nothing
// requires it, a caller may always build a []*primitive.Value by hand.
func BindExecuteValues(version primitive.ProtocolVersion, stmt *PreparedStatement, args ...interface{}) ([]*primitive.Value, error) {
	if stmt.Variables == nil {
		return nil, fmt.Errorf("prepared statement has no bound variables")
	}
	columns := stmt.Variables.Columns
	if len(columns) != len(args) {
		return nil, fmt.Errorf("expected %d bound values, got %d", len(columns), len(args))
	}
	values := make([]*primitive.Value, len(args))
	for i, col := range columns {
		if args[i] == nil {
			values[i] = &primitive.Value{Type: primitive.ValueTypeNull}
			continue
		}
		codec, err := datacodec.NewCodec(col.Type)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col.Name, err)
		}
		contents, err := codec.Encode(args[i], version)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col.Name, err)
		}
		values[i] = &primitive.Value{Type: primitive.ValueTypeRegular, Contents: contents}
	}
	return values, nil
}

// ScanRow decodes row into dest, column by column, using the CQL types described by metadata. dest entries follow
// the same conventions as datacodec.Codec.Decode: typically pointers to the destination values.
func ScanRow(version primitive.ProtocolVersion, metadata *message.RowsMetadata, row message.Row, dest ...interface{}) error {
	columns := metadata.Columns
	if len(columns) != len(dest) {
		return fmt.Errorf("expected %d scan destinations, got %d", len(columns), len(dest))
	}
	for i, col := range columns {
		codec, err := datacodec.NewCodec(col.Type)
		if err != nil {
			return fmt.Errorf("column %s: %w", col.Name, err)
		}
		if _, err := codec.Decode(row[i], dest[i], version); err != nil {
			return fmt.Errorf("column %s: %w", col.Name, err)
		}
	}
	return nil
}
