package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"

	"golang.org/x/sys/unix"

	"github.com/lundmar/input-emulator/internal/device"
	"github.com/lundmar/input-emulator/internal/log"
	"github.com/lundmar/input-emulator/pkg/apitypes"
	"github.com/lundmar/input-emulator/pkg/message"
)

// DefaultSocket is the abstract unix socket name the server binds.
const DefaultSocket = "@input-emulator.socket"

var ErrAlreadyRunning = errors.New("server already running")

// Server accepts one peer at a time, reads one request, sends one response
// and closes the peer.
type Server struct {
	addr     string
	ln       net.Listener
	logger   *slog.Logger
	raw      log.RawLogger
	router   *Router
	registry *device.Registry
}

// New creates a Server for reg listening on addr once opened.
func New(reg *device.Registry, addr string, logger *slog.Logger, raw log.RawLogger) *Server {
	if raw == nil {
		raw = log.NewRaw(nil)
	}
	return &Server{
		addr:     addr,
		logger:   logger,
		raw:      raw,
		router:   NewRouter(),
		registry: reg,
	}
}

// Router returns the router used by the server so callers can register handlers.
func (a *Server) Router() *Router { return a.router }

// Registry returns the device registry handed to the handlers.
func (a *Server) Registry() *device.Registry { return a.registry }

func (a *Server) Addr() string { return a.addr }

// Open binds the socket with a listen backlog of one.
func (a *Server) Open() error {
	ln, err := listen(a.addr)
	if err != nil {
		return err
	}
	a.ln = ln
	a.logger.Info("API listening", "socket", a.addr)
	return nil
}

func listen(name string) (net.Listener, error) {
	fd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("socket: %w", err)
	}
	if err := unix.Bind(fd, &unix.SockaddrUnix{Name: name}); err != nil {
		_ = unix.Close(fd)
		if errors.Is(err, unix.EADDRINUSE) {
			return nil, fmt.Errorf("bind %s: %w", name, ErrAlreadyRunning)
		}
		return nil, fmt.Errorf("bind %s: %w", name, err)
	}
	if err := unix.Listen(fd, 1); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("listen %s: %w", name, err)
	}
	f := os.NewFile(uintptr(fd), name)
	defer f.Close()
	ln, err := net.FileListener(f)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", name, err)
	}
	return ln, nil
}

// Close stops the server. A blocked Serve returns nil.
func (a *Server) Close() {
	if a.ln != nil {
		_ = a.ln.Close()
	}
}

// Serve handles peers until a handler asks for shutdown, the listener is
// closed, or a fatal error occurs.
func (a *Server) Serve() error {
	if a.ln == nil {
		return errors.New("serve: server not open")
	}
	defer a.Close()
	for {
		c, err := a.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				a.logger.Info("API server stopped")
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		shutdown, err := a.handleConn(c)
		if err != nil {
			return err
		}
		if shutdown {
			a.logger.Info("no devices online, shutting down")
			return nil
		}
	}
}

func (a *Server) handleConn(conn net.Conn) (bool, error) {
	defer conn.Close()

	m, err := message.Read(conn)
	if err != nil {
		if errors.Is(err, io.EOF) {
			a.logger.Debug("peer closed without a request")
			return false, nil
		}
		return false, fmt.Errorf("receive: %w", err)
	}
	a.raw.Log("rx", message.Encode(m.Type, m.Payload))

	logger := a.logger.With("type", m.Type.String())
	logger.Debug("api request", "payload_length", len(m.Payload))

	req, err := apitypes.DecodeRequest(m)
	if err != nil {
		logger.Warn("rejecting malformed request", "error", err)
		a.send(conn, logger, message.Message{Type: message.Error, Payload: []byte(err.Error())})
		return false, nil
	}

	h := a.router.Match(m.Type)
	if h == nil {
		logger.Error("api no handler")
		a.send(conn, logger, message.Message{Type: message.Error, Payload: []byte("no handler for " + m.Type.String())})
		return false, nil
	}

	res := &Response{Type: message.OK}
	if err := h(&Request{Type: m.Type, Payload: req}, res, logger); err != nil {
		logger.Error("api handler error", "error", err)
		a.send(conn, logger, message.Message{Type: message.Error, Payload: []byte(err.Error())})
		var fatal *device.FatalError
		if errors.As(err, &fatal) {
			return false, err
		}
		return res.Shutdown, nil
	}
	logger.Debug("api handler success", "response", res.Type.String())
	a.send(conn, logger, message.Message{Type: res.Type, Payload: []byte(res.Text)})
	return res.Shutdown, nil
}

// send writes the single response of a connection. A peer that went away
// early does not affect the server.
func (a *Server) send(w io.Writer, logger *slog.Logger, m message.Message) {
	frame := message.Encode(m.Type, m.Payload)
	a.raw.Log("tx", frame)
	if err := message.Write(w, m); err != nil {
		logger.Warn("api write response", "error", err)
	}
}
