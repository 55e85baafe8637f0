package connection

import (
	"github.com/hzamani/cassandra-go/message"
	"github.com/hzamani/cassandra-go/primitive"
)

// DefaultPageSize is used whenever QueryParams.PageSize is left at zero.
const DefaultPageSize = int32(100)

// QueryParams is the set of options this core recognizes for Query and Execute calls. Fields left at their zero
// value fall back to the defaults noted below; there is no way to ask the server for something outside this set.
type QueryParams struct {
	// Consistency defaults to primitive.ConsistencyLevelOne.
	Consistency primitive.ConsistencyLevel
	// SkipMetadata asks the server to omit result metadata from rows replies, relying on a previously cached one.
	SkipMetadata bool
	// PageSize defaults to DefaultPageSize. A value of -1 disables paging.
	PageSize int32
	// PagingState resumes a previous paged query. Most callers never set this themselves: the paging streamer sets
	// it on the follow-up queries it issues on their behalf.
	PagingState []byte
	// SerialConsistency, if set, overrides the consistency used for the query's serial phase (lightweight
	// transactions).
	SerialConsistency *primitive.ConsistencyLevel
	// Timestamp, if set, overrides the server-assigned write timestamp.
	Timestamp *int64
	// Values binds positional markers ('?') in the query, in order.
	Values []*primitive.Value
	// NamedValues binds named markers (':name') in the query. Mutually exclusive with Values.
	NamedValues map[string]*primitive.Value
}

func (p QueryParams) toOptions() *message.QueryOptions {
	consistency := p.Consistency
	if consistency == primitive.ConsistencyLevel(0) {
		consistency = primitive.ConsistencyLevelOne
	}
	pageSize := p.PageSize
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	return &message.QueryOptions{
		Consistency:       consistency,
		PositionalValues:  p.Values,
		NamedValues:       p.NamedValues,
		SkipMetadata:      p.SkipMetadata,
		PageSize:          pageSize,
		PagingState:       p.PagingState,
		SerialConsistency: p.SerialConsistency,
		DefaultTimestamp:  p.Timestamp,
	}
}
