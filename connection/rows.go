package connection

import (
	"github.com/hzamani/cassandra-go/message"
	"github.com/rs/zerolog/log"
)

// RowPage is one page of a paged result, delivered in server order over a Stream.
type RowPage struct {
	Metadata *message.RowsMetadata
	Rows     message.RowSet
}

// rowStream is the actor-owned producer side of a paged query. The actor pushes one RowPage per reply it receives
// for this query and closes its pages channel once the server reports no further paging state. push never blocks: a caller
// that falls behind the buffer (Config.EventBufferSize) sees its page dropped and a warning logged rather than
// stalling request/response routing for every other in-flight call on the actor goroutine, the same lagging-
// consumer trade-off made for event subscriptions (see eventBroadcaster.publish).
type rowStream struct {
	pages chan RowPage
}

func newRowStream(buffer int) *rowStream {
	return &rowStream{pages: make(chan RowPage, buffer)}
}

func (s *rowStream) push(metadata *message.RowsMetadata, rows message.RowSet) {
	select {
	case s.pages <- RowPage{Metadata: metadata, Rows: rows}:
	default:
		log.Warn().Msg("row stream consumer is lagging, dropping page")
	}
}

func (s *rowStream) close() {
	close(s.pages)
}

func (s *rowStream) out() <-chan RowPage {
	return s.pages
}
