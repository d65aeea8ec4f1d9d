package twitch

import (
	"crypto/tls"
	"net"
	"sync"
)

// Addresses of the Twitch chat servers.
const (
	ServerAddr         = "irc.chat.twitch.tv:6697"
	ServerAddrInsecure = "irc.chat.twitch.tv:6667"
)

// Connection is the network connection between the session and the Twitch
// server.  The session owns the connection exclusively and installs the two
// callbacks before calling Connect.
type Connection interface {
	// SetMessageReceived installs the callback invoked with raw bytes
	// whenever data arrives from the server.
	SetMessageReceived(func(data string))

	// SetDisconnected installs the callback invoked when the server
	// closes its end of the connection.
	SetDisconnected(func())

	// Connect establishes the connection.  It blocks until the
	// connection either succeeds or fails.
	Connect() error

	// Send queues the given text to be sent to the server.
	Send(data string)

	// Disconnect breaks the connection.
	Disconnect()
}

// ConnectionFactory makes a new, unconnected Connection to the Twitch
// server.  The session calls it once per LogIn.
type ConnectionFactory func() Connection

// NetConnection is a Connection over a TCP socket, optionally wrapped in
// TLS.  The zero value is not usable; use NewNetConnection.
type NetConnection struct {
	addr string
	tls  bool

	onMessage func(data string)
	onClosed  func()

	mu   sync.Mutex
	conn net.Conn
}

// NewNetConnection returns a Connection that dials addr over TCP, with TLS
// when useTLS is set.
func NewNetConnection(addr string, useTLS bool) *NetConnection {
	return &NetConnection{addr: addr, tls: useTLS}
}

func (c *NetConnection) SetMessageReceived(f func(data string)) {
	c.onMessage = f
}

func (c *NetConnection) SetDisconnected(f func()) {
	c.onClosed = f
}

func (c *NetConnection) Connect() error {
	conn, err := net.Dial("tcp", c.addr)
	if err != nil {
		return err
	}
	if c.tls {
		host, _, _ := net.SplitHostPort(c.addr) // should succeed since net.Dial did.
		conn = tls.Client(conn, &tls.Config{
			ServerName: host,
		})
		if err := conn.(*tls.Conn).Handshake(); err != nil {
			conn.Close()
			return err
		}
	}
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
	go c.readLoop(conn)
	return nil
}

func (c *NetConnection) readLoop(conn net.Conn) {
	buf := make([]byte, 4096)
	for {
		n, err := conn.Read(buf)
		if n > 0 && c.onMessage != nil {
			c.onMessage(string(buf[:n]))
		}
		if err != nil {
			if c.onClosed != nil {
				c.onClosed()
			}
			return
		}
	}
}

func (c *NetConnection) Send(data string) {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return
	}
	_, _ = conn.Write([]byte(data))
}

func (c *NetConnection) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()
	if conn != nil {
		_ = conn.Close()
	}
}
