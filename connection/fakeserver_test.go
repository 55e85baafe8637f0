package connection

import (
	"net"
	"testing"

	"github.com/hzamani/cassandra-go/frame"
	"github.com/hzamani/cassandra-go/message"
	"github.com/hzamani/cassandra-go/primitive"
	"github.com/stretchr/testify/require"
)

// fakeServer is a minimal, single-client stand-in for a CQL node, just enough to drive Connection through a
// handshake and a scripted exchange. It intentionally does not reuse the teacher's own client/server.go: that
// harness speaks for a multi-client proxy able to route arbitrary traffic, which is more machinery than a single
// connection's own tests need.
type fakeServer struct {
	t        *testing.T
	listener net.Listener
	codec    frame.Codec
}

func startFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	return &fakeServer{t: t, listener: listener, codec: frame.NewCodec()}
}

func (s *fakeServer) port() int {
	return s.listener.Addr().(*net.TCPAddr).Port
}

func (s *fakeServer) close() {
	_ = s.listener.Close()
}

func (s *fakeServer) accept() net.Conn {
	conn, err := s.listener.Accept()
	require.NoError(s.t, err)
	return conn
}

// acceptAndHandshake accepts one connection and completes the STARTUP/READY exchange, returning the live conn for
// further scripting.
func (s *fakeServer) acceptAndHandshake() net.Conn {
	conn := s.accept()
	s.expectHandshake(conn)
	return conn
}

func (s *fakeServer) expectHandshake(conn net.Conn) {
	in, err := s.codec.DecodeFrame(conn)
	require.NoError(s.t, err)
	_, ok := in.Body.Message.(*message.Startup)
	require.True(s.t, ok, "expected STARTUP, got %T", in.Body.Message)
	reply := frame.NewFrame(in.Header.Version, in.Header.StreamId, &message.Ready{})
	require.NoError(s.t, s.codec.EncodeFrame(reply, conn))
}

// expectHandshakeFails reads the STARTUP and rejects it with a protocol error, then closes the socket, mimicking a
// node that refuses the connection outright.
func (s *fakeServer) expectHandshakeFails(conn net.Conn) {
	in, err := s.codec.DecodeFrame(conn)
	require.NoError(s.t, err)
	_, ok := in.Body.Message.(*message.Startup)
	require.True(s.t, ok, "expected STARTUP, got %T", in.Body.Message)
	reply := frame.NewFrame(in.Header.Version, in.Header.StreamId, &message.ProtocolError{ErrorMessage: "unsupported version"})
	require.NoError(s.t, s.codec.EncodeFrame(reply, conn))
	_ = conn.Close()
}

// readNext decodes the next frame sent by the client.
func (s *fakeServer) readNext(conn net.Conn) *frame.Frame {
	f, err := s.codec.DecodeFrame(conn)
	require.NoError(s.t, err)
	return f
}

// reply sends body back on the given stream id.
func (s *fakeServer) reply(conn net.Conn, version primitive.ProtocolVersion, streamId int16, body message.Message) {
	out := frame.NewFrame(version, streamId, body)
	require.NoError(s.t, s.codec.EncodeFrame(out, conn))
}
