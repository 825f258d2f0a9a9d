package apiclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"golang.org/x/sys/unix"

	"github.com/lundmar/input-emulator/pkg/message"
)

var (
	// ErrServerNotRunning is returned when nothing listens on the socket.
	ErrServerNotRunning = errors.New("server not running")
	// ErrNoResponse is returned when the server hangs up without replying.
	ErrNoResponse = errors.New("no response from server")
)

// Config controls low-level transport behavior such as timeouts. Zero values
// mean no timeout.
type Config struct {
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Transport sends one framed request per connection and reads the single
// framed response.
type Transport struct {
	addr string
	mock func(req message.Message) (message.Message, error)
	cfg  Config

	// Trace, when set, is called with every raw frame sent ("tx") and
	// received ("rx").
	Trace func(direction string, frame []byte)
}

// NewTransport creates a new low-level transport for the abstract socket addr.
func NewTransport(addr string) *Transport { return NewTransportWithConfig(addr, nil) }

// NewTransportWithConfig creates a new low-level transport with optional timeouts configuration.
func NewTransportWithConfig(addr string, cfg *Config) *Transport {
	var c Config
	if cfg != nil {
		c = *cfg
	}
	return &Transport{addr: addr, cfg: c}
}

// NewMockTransport creates a transport that returns canned responses without real networking.
func NewMockTransport(responder func(req message.Message) (message.Message, error)) *Transport {
	return &Transport{addr: "mock", mock: responder}
}

func (c *Transport) Addr() string { return c.addr }

// Do sends req and returns the response.
func (c *Transport) Do(req message.Message) (message.Message, error) {
	return c.DoCtx(context.Background(), req)
}

// DoCtx is like Do but honors the provided context and configured timeouts.
func (c *Transport) DoCtx(ctx context.Context, req message.Message) (message.Message, error) {
	if c.mock != nil {
		return c.mock(req)
	}
	if err := ctx.Err(); err != nil {
		return message.Message{}, fmt.Errorf("dial: %w", err)
	}
	d := &net.Dialer{Timeout: c.cfg.DialTimeout}
	conn, err := d.DialContext(ctx, "unix", c.addr)
	if err != nil {
		if errors.Is(err, unix.ECONNREFUSED) || errors.Is(err, unix.ENOENT) {
			return message.Message{}, fmt.Errorf("dial %s: %w", c.addr, ErrServerNotRunning)
		}
		return message.Message{}, fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { _ = conn.SetDeadline(time.Now()) })
	defer stop()

	frame := message.Encode(req.Type, req.Payload)
	c.trace("tx", frame)
	if c.cfg.WriteTimeout > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
	}
	if err := message.Write(conn, req); err != nil {
		return message.Message{}, ctxErr(ctx, fmt.Errorf("write: %w", err))
	}

	if c.cfg.ReadTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(c.cfg.ReadTimeout))
	}
	rsp, err := message.Read(conn)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return message.Message{}, ErrNoResponse
		}
		return message.Message{}, ctxErr(ctx, fmt.Errorf("read: %w", err))
	}
	c.trace("rx", message.Encode(rsp.Type, rsp.Payload))
	return rsp, nil
}

func (c *Transport) trace(direction string, frame []byte) {
	if c.Trace != nil {
		c.Trace(direction, frame)
	}
}

// ctxErr prefers the context's error when the deadline was forced by
// cancellation.
func ctxErr(ctx context.Context, err error) error {
	if cerr := ctx.Err(); cerr != nil {
		return fmt.Errorf("%w: %w", cerr, err)
	}
	return err
}
