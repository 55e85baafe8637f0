package connection

import (
	"github.com/hzamani/cassandra-go/message"
)

// Reserved stream ids, per the protocol's framing and this core's own conventions.
const (
	streamIdEvent          int16 = -1
	streamIdFireAndForget  int16 = 0
	streamIdImplicitUse    int16 = 1
	streamIdFirstAvailable int16 = 2
	streamIdLastAvailable  int16 = 32767
)

// replier routes a dispatcher decision back to whoever issued the original request. It is the tagged variant
// described by the design: a request is either answered once (singleReply) or, once paging begins, answered many
// times over a channel (streamReply).
type replier struct {
	single chan<- Result
	stream *rowStream
}

func singleReplier(ch chan<- Result) replier {
	return replier{single: ch}
}

func streamReplier(s *rowStream) replier {
	return replier{stream: s}
}

func (r replier) isStreaming() bool {
	return r.stream != nil
}

// pendingRequest is the stream table's value type: the original request (kept so it can be cloned and re-issued,
// either across a disconnect or for a paging follow-up) paired with the replier that owns its eventual answer.
//
// A caller that times out simply stops listening on its replier; nothing here tracks that, which is why every
// replier channel is created with a buffer of one (see Connection.call in connection.go) — delivering to an
// abandoned call must never block the actor.
type pendingRequest struct {
	body  message.Message
	reply replier
}

// streamTable maps in-flight protocol stream ids to their pendingRequest. It is never touched outside the actor
// goroutine, so it carries no internal locking.
type streamTable struct {
	entries map[int16]*pendingRequest
	lastId  int16
}

func newStreamTable() *streamTable {
	return &streamTable{
		entries: make(map[int16]*pendingRequest),
		lastId:  streamIdLastAvailable, // so the first nextId() call yields streamIdFirstAvailable
	}
}

// nextId allocates the next user stream id, wrapping from 32767 back to 2. It does not check for collisions;
// callers must consult has before committing to an id.
func (t *streamTable) nextId() int16 {
	if t.lastId >= streamIdLastAvailable {
		t.lastId = streamIdFirstAvailable
	} else {
		t.lastId++
	}
	return t.lastId
}

func (t *streamTable) has(id int16) bool {
	_, found := t.entries[id]
	return found
}

func (t *streamTable) put(id int16, req *pendingRequest) {
	t.entries[id] = req
}

func (t *streamTable) take(id int16) (*pendingRequest, bool) {
	req, found := t.entries[id]
	if found {
		delete(t.entries, id)
	}
	return req, found
}

func (t *streamTable) len() int {
	return len(t.entries)
}

// drain removes every entry from the table and returns them, used when a disconnect moves in-flight work back to
// the waiting queue.
func (t *streamTable) drain() []*pendingRequest {
	drained := make([]*pendingRequest, 0, len(t.entries))
	for id, req := range t.entries {
		drained = append(drained, req)
		delete(t.entries, id)
	}
	t.lastId = streamIdLastAvailable
	return drained
}
