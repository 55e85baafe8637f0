package connection

import (
	"errors"
	"fmt"

	"github.com/hzamani/cassandra-go/primitive"
)

// ErrStopped is returned to every pending and waiting caller once the connection has been stopped, and to any
// caller submitting a request afterwards.
var ErrStopped = errors.New("connection stopped")

// ErrBusy is returned when the stream-id space is exhausted: the next id to assign still has an un-replied entry
// in the stream table.
var ErrBusy = errors.New("no stream id available, connection busy")

// ServerError is returned to a caller when the server replies with an Error frame for a routed request. It
// carries the protocol-level error code and message unchanged.
type ServerError struct {
	Code    primitive.ErrorCode
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error %v: %s", e.Code, e.Message)
}
