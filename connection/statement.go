package connection

import "github.com/hzamani/cassandra-go/message"

// PreparedStatement is the handle returned by Prepare. It carries everything Execute needs to resubmit the
// statement by id, and everything BindExecuteValues and ScanRow need to interpret its bound variables and result
// columns.
type PreparedStatement struct {
	QueryId          []byte
	ResultMetadataId []byte
	Variables        *message.VariablesMetadata
	ResultMetadata   *message.RowsMetadata
}
