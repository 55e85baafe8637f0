package connection

import (
	"context"
	"net"
	"time"

	"github.com/hzamani/cassandra-go/frame"
	"github.com/hzamani/cassandra-go/message"
	"github.com/hzamani/cassandra-go/primitive"
	"github.com/rs/zerolog/log"
)

// callRequest is a mailbox message for Query, Execute, Prepare, Options and Register: every operation that expects
// exactly one routed reply (which, for Query/Execute, may turn into a stream of replies once paging starts).
type callRequest struct {
	body  message.Message
	reply chan Result
}

// useRequest is the mailbox message for Use. It never enters the stream table: the actor updates its own notion of
// the default keyspace and, if connected, fires a USE query without waiting for or routing its reply.
type useRequest struct {
	keyspace string
	done     chan struct{}
}

// actor owns every piece of mutable connection state and runs on a single goroutine. Nothing in this struct is
// touched from any other goroutine; the mailbox channels on Connection are the only way in.
type actor struct {
	cfg    *Config
	codec  frame.Codec
	events *eventBroadcaster

	calls    chan callRequest
	useReqs  chan useRequest
	stopReqs chan chan struct{}

	conn         net.Conn
	incoming     chan *frame.Frame
	transportErr chan error

	table    *streamTable
	waiting  []*pendingRequest
	keyspace string
	backoff  *backoff
}

func newActor(cfg *Config, codec frame.Codec, events *eventBroadcaster, calls chan callRequest, useReqs chan useRequest, stopReqs chan chan struct{}) *actor {
	return &actor{
		cfg:      cfg,
		codec:    codec,
		events:   events,
		calls:    calls,
		useReqs:  useReqs,
		stopReqs: stopReqs,
		table:    newStreamTable(),
		keyspace: cfg.Keyspace,
		backoff:  newBackoff(),
	}
}

// run is the actor's entire lifetime: alternate between connecting (with backoff) and serving requests while
// connected, until stop is requested.
func (a *actor) run() {
	for {
		if !a.connectLoop() {
			return
		}
		a.serveReady()
	}
}

type dialResult struct {
	conn net.Conn
	err  error
}

// connectLoop dials and performs the handshake, retrying with backoff on transient failure, while still draining
// the mailbox so that Query/Use/Stop submitted while disconnected are never lost. It returns false once the
// connection has been permanently stopped.
func (a *actor) connectLoop() bool {
	for {
		dialCh := make(chan dialResult, 1)
		go a.dial(dialCh)

		var res dialResult
		dialed := false
		for !dialed {
			select {
			case res = <-dialCh:
				dialed = true
			case call := <-a.calls:
				a.waiting = append(a.waiting, &pendingRequest{body: call.body, reply: singleReplier(call.reply)})
			case req := <-a.useReqs:
				a.applyUseOffline(req)
			case done := <-a.stopReqs:
				a.shutdownAll(done)
				return false
			}
		}

		if res.err != nil {
			log.Error().Err(res.err).Msgf("cannot connect to %s", a.cfg.address())
			if !a.sleep(a.backoff.next()) {
				return false
			}
			continue
		}

		a.conn = res.conn
		ready, fatal := a.handshake()
		if fatal {
			log.Error().Msgf("handshake with %s failed, stopping", a.cfg.address())
			a.shutdownAll(nil)
			return false
		}
		if !ready {
			if !a.sleep(a.backoff.next()) {
				return false
			}
			continue
		}

		a.backoff.reset()
		a.enterReady()
		return true
	}
}

func (a *actor) dial(result chan<- dialResult) {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Timeout)
	defer cancel()
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", a.cfg.address())
	result <- dialResult{conn: conn, err: err}
}

// sleep waits out a backoff delay while still servicing the mailbox, so a caller blocked in Query or Use during a
// reconnect attempt is never kept waiting longer than necessary once the connection comes back.
func (a *actor) sleep(d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	for {
		select {
		case <-timer.C:
			return true
		case call := <-a.calls:
			a.waiting = append(a.waiting, &pendingRequest{body: call.body, reply: singleReplier(call.reply)})
		case req := <-a.useReqs:
			a.applyUseOffline(req)
		case done := <-a.stopReqs:
			a.shutdownAll(done)
			return false
		}
	}
}

func (a *actor) applyUseOffline(req useRequest) {
	a.keyspace = req.keyspace
	close(req.done)
}

// handshake performs the synchronous STARTUP exchange described for the connecting phase: a bounded, explicitly
// polled read rather than the push-mode delivery used once the connection is ready. ready is true only when the
// server replied READY; fatal is true when the rejection should not be retried (a protocol-level Error, or any
// other unexpected response).
func (a *actor) handshake() (ready bool, fatal bool) {
	if err := a.conn.SetDeadline(time.Now().Add(a.cfg.Timeout)); err != nil {
		log.Error().Err(err).Msg("cannot set handshake deadline")
		_ = a.conn.Close()
		return false, false
	}
	startup := message.NewStartup()
	out := frame.NewFrame(a.cfg.Version, streamIdFireAndForget, startup)
	if err := a.codec.EncodeFrame(out, a.conn); err != nil {
		log.Error().Err(err).Msg("cannot send STARTUP")
		_ = a.conn.Close()
		return false, false
	}
	reply, err := a.codec.DecodeFrame(a.conn)
	if err != nil {
		log.Error().Err(err).Msg("cannot read handshake reply")
		_ = a.conn.Close()
		return false, false
	}
	switch body := reply.Body.Message.(type) {
	case *message.Ready:
		_ = a.conn.SetDeadline(time.Time{})
		return true, false
	case message.Error:
		log.Error().Msgf("handshake rejected: %v: %v", body.GetErrorCode(), body.GetErrorMessage())
		_ = a.conn.Close()
		return false, true
	default:
		log.Error().Msgf("unexpected handshake reply: %v", reply.Body.Message)
		_ = a.conn.Close()
		return false, true
	}
}

// enterReady starts the reader goroutine, fires the implicit USE if a keyspace is configured, and resubmits
// everything that queued up in waiting while the connection was down.
func (a *actor) enterReady() {
	a.incoming = make(chan *frame.Frame, 16)
	a.transportErr = make(chan error, 1)
	go readLoop(a.codec, a.conn, a.incoming, a.transportErr)

	if a.keyspace != "" {
		a.sendUse(a.keyspace)
	}

	waiting := a.waiting
	a.waiting = nil
	for _, req := range waiting {
		a.send(req.body, req.reply)
	}
}

func (a *actor) sendUse(keyspace string) {
	body := &message.Query{
		Query:   "USE " + keyspace,
		Options: &message.QueryOptions{Consistency: primitive.ConsistencyLevelOne},
	}
	out := frame.NewFrame(a.cfg.Version, streamIdImplicitUse, body)
	if err := a.codec.EncodeFrame(out, a.conn); err != nil {
		log.Error().Err(err).Msg("cannot send implicit USE")
		a.triggerDisconnect()
	}
}

func readLoop(codec frame.Codec, conn net.Conn, incoming chan<- *frame.Frame, transportErr chan<- error) {
	for {
		f, err := codec.DecodeFrame(conn)
		if err != nil {
			transportErr <- err
			return
		}
		incoming <- f
	}
}

// serveReady is the actor's steady-state loop: route calls, apply USE, dispatch incoming frames, until the
// connection drops or a stop is requested.
func (a *actor) serveReady() {
	for {
		select {
		case call := <-a.calls:
			a.send(call.body, singleReplier(call.reply))
		case req := <-a.useReqs:
			a.applyUseOnline(req)
		case done := <-a.stopReqs:
			a.shutdownAll(done)
			return
		case f, ok := <-a.incoming:
			if !ok {
				a.disconnect()
				return
			}
			a.dispatch(f)
		case err := <-a.transportErr:
			log.Error().Err(err).Msg("transport error, reconnecting")
			a.disconnect()
			return
		}
	}
}

func (a *actor) applyUseOnline(req useRequest) {
	a.keyspace = req.keyspace
	a.sendUse(req.keyspace)
	close(req.done)
}

// send assigns a stream id and writes body, or queues it in waiting if there is no live connection. A write failure
// is treated the same as any other transport-transient error: the request is queued for resubmission and a
// reconnect is triggered.
func (a *actor) send(body message.Message, rep replier) {
	if a.conn == nil {
		a.waiting = append(a.waiting, &pendingRequest{body: body, reply: rep})
		return
	}
	id := a.table.nextId()
	if a.table.has(id) {
		a.replyErr(rep, ErrBusy)
		return
	}
	out := frame.NewFrame(a.cfg.Version, id, body)
	if err := a.codec.EncodeFrame(out, a.conn); err != nil {
		log.Error().Err(err).Msg("cannot write frame, reconnecting")
		a.waiting = append(a.waiting, &pendingRequest{body: body, reply: rep})
		a.triggerDisconnect()
		return
	}
	a.table.put(id, &pendingRequest{body: body, reply: rep})
}

// triggerDisconnect closes the current connection so that its reader goroutine observes the failure and the main
// select loop in serveReady takes the disconnect path on its next iteration.
func (a *actor) triggerDisconnect() {
	if a.conn != nil {
		_ = a.conn.Close()
	}
}

// disconnect moves every in-flight stream table entry back onto the waiting queue (never failing them outright,
// per the protocol's own disconnect semantics) and resets the stream id allocator.
func (a *actor) disconnect() {
	if a.conn != nil {
		_ = a.conn.Close()
		a.conn = nil
	}
	a.waiting = append(a.waiting, a.table.drain()...)
}

func (a *actor) shutdownAll(done chan struct{}) {
	if a.conn != nil {
		_ = a.conn.Close()
		a.conn = nil
	}
	for _, req := range a.table.drain() {
		a.replyErr(req.reply, ErrStopped)
	}
	for _, req := range a.waiting {
		a.replyErr(req.reply, ErrStopped)
	}
	a.waiting = nil
	a.events.closeAll()
	if done != nil {
		close(done)
	}
}

func (a *actor) replyOk(rep replier, body message.Message) {
	if rep.single == nil {
		return
	}
	rep.single <- Result{Body: body}
}

func (a *actor) replyErr(rep replier, err error) {
	if rep.isStreaming() {
		rep.stream.close()
		return
	}
	if rep.single == nil {
		return
	}
	rep.single <- Result{Err: err}
}

// dispatch routes one decoded incoming frame by its stream id, per the protocol's own addressing rules.
func (a *actor) dispatch(f *frame.Frame) {
	switch f.Header.StreamId {
	case streamIdEvent:
		if event, ok := f.Body.Message.(message.Event); ok {
			a.events.publish(event)
		} else {
			log.Warn().Msgf("frame on the event stream id was not an event: %v", f.Body.Message)
		}
		return
	case streamIdFireAndForget:
		return
	case streamIdImplicitUse:
		if errMsg, ok := f.Body.Message.(message.Error); ok {
			log.Error().Msgf("implicit USE rejected: %v: %v", errMsg.GetErrorCode(), errMsg.GetErrorMessage())
		}
		return
	}

	req, found := a.table.take(f.Header.StreamId)
	if !found {
		log.Warn().Msgf("reply for unknown stream id %d, dropping", f.Header.StreamId)
		return
	}
	a.deliver(req, f.Body.Message)
}

func (a *actor) deliver(req *pendingRequest, body message.Message) {
	if errMsg, ok := body.(message.Error); ok {
		a.replyErr(req.reply, &ServerError{Code: errMsg.GetErrorCode(), Message: errMsg.GetErrorMessage()})
		return
	}
	if rows, ok := body.(*message.RowsResult); ok {
		a.deliverRows(req, rows)
		return
	}
	a.replyOk(req.reply, body)
}

// deliverRows implements the paged-result streamer: the first page that carries a paging state upgrades a regular
// reply into a stream, every following page is pushed onto it, and each page that itself still has a paging state
// causes a follow-up query to be resubmitted with a fresh stream id, carrying that paging state forward.
func (a *actor) deliverRows(req *pendingRequest, rows *message.RowsResult) {
	hasMore := len(rows.Metadata.PagingState) > 0

	rep := req.reply
	if !rep.isStreaming() {
		if !hasMore {
			a.replyOk(rep, rows)
			return
		}
		stream := newRowStream(a.cfg.EventBufferSize)
		rep.single <- Result{Stream: stream}
		close(rep.single)
		rep = streamReplier(stream)
	}

	rep.stream.push(rows.Metadata, rows.Data)

	if hasMore {
		followUp := withPagingState(req.body, rows.Metadata.PagingState)
		a.send(followUp, rep)
	} else {
		rep.stream.close()
	}
}

func withPagingState(body message.Message, pagingState []byte) message.Message {
	switch m := body.(type) {
	case *message.Query:
		opts := *m.Options
		opts.PagingState = pagingState
		return &message.Query{Query: m.Query, Options: &opts}
	case *message.Execute:
		opts := *m.Options
		opts.PagingState = pagingState
		return &message.Execute{QueryId: m.QueryId, ResultMetadataId: m.ResultMetadataId, Options: &opts}
	default:
		return body
	}
}
