// Package connection implements a single-node CQL client connection: one actor goroutine that owns a TCP socket,
// negotiates the startup handshake, multiplexes concurrent requests over protocol stream ids, reconnects with
// backoff on failure, and streams paged query results and server-pushed events back to callers.
package connection

import (
	"fmt"

	"github.com/hzamani/cassandra-go/frame"
	"github.com/hzamani/cassandra-go/message"
	"github.com/hzamani/cassandra-go/primitive"
)

// QueryResult is what Query and Execute hand back to the caller. Exactly one of Void, Rows or Stream is set: Void
// for statements that return nothing (most DML and DDL), Rows for a statement that returned a single page of rows,
// and Stream once the result turned out to span more than one page.
type QueryResult struct {
	Void   bool
	Rows   *RowPage
	Stream <-chan RowPage
}

// Connection is a client connection to a single CQL node. All exported methods are safe to call concurrently: each
// one hands its request to the connection's actor goroutine and waits for the answer.
type Connection struct {
	cfg    *Config
	events *eventBroadcaster

	calls    chan callRequest
	useReqs  chan useRequest
	stopReqs chan chan struct{}

	closed chan struct{}
}

// NewConnection creates a Connection and starts its actor goroutine immediately. The actor begins disconnected and
// connects asynchronously; Query, Execute and the other operations may be called right away; they simply queue
// until the handshake completes.
func NewConnection(cfg Config) *Connection {
	resolved := cfg.withDefaults()
	codec := frame.NewCodec()

	events := newEventBroadcaster(resolved.EventBufferSize)
	c := &Connection{
		cfg:      resolved,
		events:   events,
		calls:    make(chan callRequest),
		useReqs:  make(chan useRequest),
		stopReqs: make(chan chan struct{}),
		closed:   make(chan struct{}),
	}

	a := newActor(resolved, codec, events, c.calls, c.useReqs, c.stopReqs)
	go func() {
		a.run()
		close(c.closed)
	}()
	return c
}

// call submits body to the actor and blocks for its single reply, or the first reply if the result turns out to be
// paged.
func (c *Connection) call(body message.Message) (Result, error) {
	reply := make(chan Result, 1)
	select {
	case c.calls <- callRequest{body: body, reply: reply}:
	case <-c.closed:
		return Result{}, ErrStopped
	}
	select {
	case res := <-reply:
		return res, res.Err
	case <-c.closed:
		return Result{}, ErrStopped
	}
}

// Options asks the server which STARTUP options and values it supports.
func (c *Connection) Options() (map[string][]string, error) {
	res, err := c.call(&message.Options{})
	if err != nil {
		return nil, err
	}
	supported, ok := res.Body.(*message.Supported)
	if !ok {
		return nil, fmt.Errorf("unexpected reply to OPTIONS: %T", res.Body)
	}
	return supported.Options, nil
}

// Use sets the default keyspace for subsequent queries on this connection. While the connection is running it never
// fails: it always updates the connection's own notion of the default keyspace and, once connected, sends USE without
// waiting for or reporting its reply. The same USE is resent on every reconnect. Once the connection has been
// stopped, Use returns ErrStopped.
func (c *Connection) Use(keyspace string) error {
	done := make(chan struct{})
	select {
	case c.useReqs <- useRequest{keyspace: keyspace, done: done}:
	case <-c.closed:
		return ErrStopped
	}
	select {
	case <-done:
		return nil
	case <-c.closed:
		return nil
	}
}

// Query executes cql with the given parameters. When the result spans more than one page, QueryResult.Stream is
// set instead of Rows; the caller ranges over it to receive each page as the connection fetches it.
func (c *Connection) Query(cql string, params QueryParams) (*QueryResult, error) {
	return c.runQuery(&message.Query{Query: cql, Options: params.toOptions()})
}

// Prepare asks the server to parse and cache cql, returning a handle that Execute resubmits by id.
func (c *Connection) Prepare(cql string) (*PreparedStatement, error) {
	res, err := c.call(&message.Prepare{Query: cql})
	if err != nil {
		return nil, err
	}
	prepared, ok := res.Body.(*message.PreparedResult)
	if !ok {
		return nil, fmt.Errorf("unexpected reply to PREPARE: %T", res.Body)
	}
	return &PreparedStatement{
		QueryId:          prepared.PreparedQueryId,
		ResultMetadataId: prepared.ResultMetadataId,
		Variables:        prepared.VariablesMetadata,
		ResultMetadata:   prepared.ResultMetadata,
	}, nil
}

// Execute runs a previously prepared statement.
func (c *Connection) Execute(stmt *PreparedStatement, params QueryParams) (*QueryResult, error) {
	return c.runQuery(&message.Execute{
		QueryId:          stmt.QueryId,
		ResultMetadataId: stmt.ResultMetadataId,
		Options:          params.toOptions(),
	})
}

func (c *Connection) runQuery(body message.Message) (*QueryResult, error) {
	res, err := c.call(body)
	if err != nil {
		return nil, err
	}
	if res.Stream != nil {
		return &QueryResult{Stream: res.Stream.out()}, nil
	}
	switch m := res.Body.(type) {
	case *message.VoidResult:
		return &QueryResult{Void: true}, nil
	case *message.SetKeyspaceResult:
		return &QueryResult{Void: true}, nil
	case *message.SchemaChangeResult:
		return &QueryResult{Void: true}, nil
	case *message.RowsResult:
		return &QueryResult{Rows: &RowPage{Metadata: m.Metadata, Rows: m.Data}}, nil
	default:
		return nil, fmt.Errorf("unexpected reply to query: %T", res.Body)
	}
}

// Register subscribes to server-pushed events of the given types. Every call creates its own independent
// subscription: the returned channel receives every event delivered to this connection from then on, until Stop is
// called. The subscription only takes effect once the server has acknowledged the REGISTER request.
func (c *Connection) Register(eventTypes ...primitive.EventType) (<-chan Event, error) {
	res, err := c.call(&message.Register{EventTypes: eventTypes})
	if err != nil {
		return nil, err
	}
	if _, ok := res.Body.(*message.Ready); !ok {
		return nil, fmt.Errorf("unexpected reply to REGISTER: %T", res.Body)
	}
	return c.events.subscribe(), nil
}

// Stop closes the underlying socket (if any), fails every pending and waiting call with ErrStopped, and
// permanently shuts down the actor. Stop is idempotent.
func (c *Connection) Stop() {
	done := make(chan struct{})
	select {
	case c.stopReqs <- done:
		<-done
	case <-c.closed:
	}
}
