package connection

import (
	"net"
	"strconv"
	"time"

	"github.com/hzamani/cassandra-go/primitive"
)

const (
	DefaultHostname = "127.0.0.1"
	DefaultPort     = 9042
	DefaultTimeout  = time.Millisecond * 5000
)

const (
	backoffInitial    = time.Millisecond * 500
	backoffMultiplier = 1.6
	backoffMax        = time.Millisecond * 12000
	backoffJitter     = 0.1
)

// Config holds the options recognized when constructing a Connection.
type Config struct {
	// Hostname is the target node's address. Defaults to DefaultHostname.
	Hostname string
	// Port is the target node's CQL port. Defaults to DefaultPort.
	Port int
	// Timeout bounds the handshake's synchronous frame read. Defaults to DefaultTimeout.
	Timeout time.Duration
	// Keyspace, if set, is sent as an implicit USE after every successful handshake.
	Keyspace string
	// Version is the CQL protocol version to negotiate. Defaults to primitive.ProtocolVersion4.
	Version primitive.ProtocolVersion
	// EventBufferSize bounds how many undelivered events the broadcaster queues per subscriber before it is
	// considered lagging. Defaults to DefaultEventBufferSize.
	EventBufferSize int
}

const DefaultEventBufferSize = 32

func (c *Config) withDefaults() *Config {
	cfg := *c
	if cfg.Hostname == "" {
		cfg.Hostname = DefaultHostname
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Version == 0 {
		cfg.Version = primitive.ProtocolVersion4
	}
	if cfg.EventBufferSize == 0 {
		cfg.EventBufferSize = DefaultEventBufferSize
	}
	return &cfg
}

func (c *Config) address() string {
	return net.JoinHostPort(c.Hostname, strconv.Itoa(c.Port))
}
