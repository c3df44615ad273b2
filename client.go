package diskdb

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/diskdb/diskdb-go/protocol"
)

// Client is a DiskDB client speaking the line protocol over a single TCP
// connection.
//
// A Client serves one logical caller at a time: the protocol is strictly
// request/response with no pipelining, so a command must not be sent before
// the previous reply (including its multi-value frame) has been fully
// drained. An internal mutex serializes operations, which makes a Client
// safe for concurrent use but never concurrent on the wire. For parallel
// operations, use multiple Clients.
type Client struct {
	// Configuration
	config *config

	// Connection state
	mu     sync.Mutex
	conn   net.Conn
	reader *protocol.Reader
	writer *protocol.Writer

	// Observability
	logger  Logger
	metrics MetricsCollector
}

// New creates a new Client with the given options.
//
// The client is created without a connection. The first operation dials
// lazily; use Connect to dial eagerly and surface connection failures up
// front.
//
// Example:
//
//	client, err := diskdb.New(
//		diskdb.WithHost("localhost"),
//		diskdb.WithPort(6380),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
func New(opts ...Option) (*Client, error) {
	cfg := defaultConfig()

	// Apply options
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	// The framing window must be shorter than the operational read timeout,
	// or end-of-frame detection and genuine read failures become
	// indistinguishable.
	if cfg.framingWindow >= cfg.readTimeout {
		return nil, ErrInvalidConfig
	}

	return &Client{
		config:  cfg,
		logger:  cfg.logger,
		metrics: cfg.metrics,
	}, nil
}

// Connect establishes the connection to the server. It is optional: any
// operation dials on demand. Calling Connect on a connected client is a
// no-op.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ensureConnected(ctx)
}

// Close closes the connection to the server. The client itself remains
// usable: the next operation dials a fresh connection. Closing an
// unconnected client is a no-op.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.teardown()
}

// Connected reports whether the client currently holds an open connection.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// ensureConnected dials if no connection is active. Callers must hold c.mu.
func (c *Client) ensureConnected(ctx context.Context) error {
	if c.conn != nil {
		return nil
	}

	addr := c.config.addr()
	c.logger.Debug("Connecting to server", Field{Key: "addr", Value: addr})

	var conn net.Conn
	var err error

	dialer := &net.Dialer{
		Timeout: c.config.connectTimeout,
	}

	if c.config.tlsConfig != nil {
		tlsDialer := &tls.Dialer{
			NetDialer: dialer,
			Config:    c.config.tlsConfig,
		}
		conn, err = tlsDialer.DialContext(ctx, "tcp", addr)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}

	if err != nil {
		c.recordMetricError("connection")
		return &ConnectionError{Addr: addr, Err: err}
	}

	c.conn = conn
	if c.reader == nil {
		c.reader = protocol.NewReader(conn)
		c.writer = protocol.NewWriter(conn)
	} else {
		c.reader.Reset(conn)
		c.writer.Reset(conn)
	}

	if c.metrics != nil {
		c.metrics.RecordReconnection()
	}

	c.logger.Info("Connected to server", Field{Key: "addr", Value: addr})
	return nil
}

// teardown closes and discards the current connection. A torn-down
// connection is never reused; the next operation dials a new one. Callers
// must hold c.mu.
func (c *Client) teardown() error {
	if c.conn == nil {
		return nil
	}

	err := c.conn.Close()
	c.conn = nil
	return err
}

// send encodes one command line and writes it under the write deadline.
// Callers must hold c.mu. A write failure tears the connection down.
func (c *Client) send(name string, args ...string) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(c.config.writeTimeout)); err != nil {
		c.teardown()
		return &ConnectionError{Addr: c.config.addr(), Err: err}
	}

	if err := c.writer.WriteCommand(name, args...); err != nil {
		// Unrepresentable argument: the command never reached the wire and
		// the connection is still clean.
		var perr *protocol.ProtocolError
		if errors.As(err, &perr) {
			return err
		}
		c.teardown()
		c.recordMetricError("connection")
		return &ConnectionError{Addr: c.config.addr(), Err: err}
	}
	if err := c.writer.Flush(); err != nil {
		c.teardown()
		c.recordMetricError("connection")
		return &ConnectionError{Addr: c.config.addr(), Err: err}
	}
	return nil
}

// readReply reads exactly one line under the operational read deadline and
// classifies it. For single-line replies a deadline expiry is a genuine
// failure, not an end-of-frame signal.
func (c *Client) readReply() (string, error) {
	if err := c.conn.SetReadDeadline(time.Now().Add(c.config.readTimeout)); err != nil {
		c.teardown()
		return "", &ConnectionError{Addr: c.config.addr(), Err: err}
	}

	line, err := c.reader.ReadLine()
	if err != nil {
		c.teardown()
		if isTimeout(err) {
			c.recordMetricError("timeout")
			return "", ErrTimeout
		}
		c.recordMetricError("connection")
		if isClosed(err) {
			return "", &ConnectionError{Addr: c.config.addr(), Err: ErrClosed}
		}
		return "", &ConnectionError{Addr: c.config.addr(), Err: err}
	}

	if protocol.ClassifyLine(line) == protocol.ReplyError {
		return "", newCommandError(protocol.ErrorMessage(line))
	}
	return line, nil
}

// readFrame collects a multi-value frame: an unbounded line sequence whose
// only end-of-frame signals are the stream going quiet within the framing
// window, a blank line, or the peer closing the stream.
//
// The read deadline is shrunk to the framing window for the duration of the
// frame and restored to the operational timeout on every exit path. A quiet
// window only ends the frame when the receive buffer is clean: a partially
// received line means the server is still mid-reply, and completing that
// line is governed by the operational timeout, as for any single-line read.
// Peer closure surfaces whatever was collected rather than discarding a
// complete reply that happened to precede the close.
func (c *Client) readFrame() ([]string, error) {
	defer func() {
		if c.conn != nil {
			c.conn.SetReadDeadline(time.Now().Add(c.config.readTimeout))
		}
	}()

	lines := make([]string, 0, 8)
	for {
		window := c.config.framingWindow
		midLine := c.reader.HasPending()
		if midLine {
			window = c.config.readTimeout
		}
		if err := c.conn.SetReadDeadline(time.Now().Add(window)); err != nil {
			c.teardown()
			return nil, &ConnectionError{Addr: c.config.addr(), Err: err}
		}

		line, err := c.reader.ReadLine()
		if err != nil {
			if isTimeout(err) {
				if !c.reader.HasPending() {
					// Stream went quiet: the frame is complete.
					return lines, nil
				}
				if midLine {
					// Stalled mid-line past the operational timeout. The
					// held fragment would be prepended to the next reply,
					// so the connection cannot serve another command.
					c.teardown()
					c.recordMetricError("timeout")
					return nil, ErrTimeout
				}
				// Bytes landed inside the window without completing the
				// line; the server is still sending.
				continue
			}
			// Server-initiated close after a full reply is itself valid;
			// surface what was collected and let the next operation dial a
			// fresh connection.
			c.teardown()
			if isClosed(err) {
				return lines, nil
			}
			c.recordMetricError("connection")
			return nil, &ConnectionError{Addr: c.config.addr(), Err: err}
		}

		if line == "" {
			return lines, nil
		}
		lines = append(lines, line)
	}
}

// call sends a command and reads its single-line reply.
func (c *Client) call(name string, args ...string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()
	if err := c.ensureConnected(context.Background()); err != nil {
		return "", err
	}

	if err := c.send(name, args...); err != nil {
		return "", err
	}

	before := c.reader.BytesRead()
	line, err := c.readReply()
	c.recordNetworkBytes(before)
	if err != nil {
		if isCommandFailure(err) {
			c.recordMetricError("command")
		}
		return "", err
	}

	c.recordCommand(name, start)
	return line, nil
}

// callFrame sends a command and collects its multi-value frame.
func (c *Client) callFrame(name string, args ...string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()
	if err := c.ensureConnected(context.Background()); err != nil {
		return nil, err
	}

	if err := c.send(name, args...); err != nil {
		return nil, err
	}

	before := c.reader.BytesRead()
	lines, err := c.readFrame()
	c.recordNetworkBytes(before)
	if err != nil {
		return nil, err
	}

	// A lone error line is still recognizable inside a frame: the server
	// replies "ERROR: ..." to a malformed or mistyped multi-value command
	// exactly as it does for single-line ones.
	if len(lines) == 1 && protocol.ClassifyLine(lines[0]) == protocol.ReplyError {
		c.recordMetricError("command")
		return nil, newCommandError(protocol.ErrorMessage(lines[0]))
	}

	c.recordCommand(name, start)
	return lines, nil
}

// newCommandError maps a server error message to its error kind.
func newCommandError(msg string) error {
	if strings.Contains(msg, protocol.WrongTypeMarker) {
		return &TypeMismatchError{Message: msg}
	}
	return &CommandError{Message: msg}
}

// isTimeout reports whether a read or write failed by deadline expiry.
func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// isClosed reports whether a read failed because the peer closed the stream.
func isClosed(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, net.ErrClosed)
}

// isCommandFailure reports whether an error came from the server rather than
// the transport.
func isCommandFailure(err error) bool {
	var cmdErr *CommandError
	var typeErr *TypeMismatchError
	return errors.As(err, &cmdErr) || errors.As(err, &typeErr)
}

func (c *Client) recordCommand(name string, start time.Time) {
	if c.metrics != nil {
		c.metrics.RecordCommand(name, time.Since(start))
	}
}

func (c *Client) recordNetworkBytes(before int64) {
	if c.metrics != nil && c.reader != nil {
		if delta := c.reader.BytesRead() - before; delta > 0 {
			c.metrics.RecordNetworkBytes(delta)
		}
	}
}

func (c *Client) recordMetricError(errorType string) {
	if c.metrics != nil {
		c.metrics.RecordError(errorType)
	}
}
