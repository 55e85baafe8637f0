package connection

import "github.com/hzamani/cassandra-go/message"

// Result is the outcome the actor hands back for a single routed request. It is unexported machinery: the public
// operations on Connection (Query, Execute, Prepare, Options, Register) each unwrap it into their own return type,
// so callers never see a Result directly.
//
// Exactly one of the three fields is meaningful: Err on failure, Stream once a paged result starts streaming, Body
// otherwise.
type Result struct {
	Err    error
	Body   message.Message
	Stream *rowStream
}
