package testing

import (
	"fmt"
	"net"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lundmar/input-emulator/internal/device"
	"github.com/lundmar/input-emulator/internal/keymap"
	"github.com/lundmar/input-emulator/internal/log"
	"github.com/lundmar/input-emulator/internal/server/api"
	"github.com/lundmar/input-emulator/pkg/message"
)

var socketSeq atomic.Int64

// SocketName returns an abstract socket name unique to this test process.
func SocketName() string {
	return fmt.Sprintf("@input-emulator-test-%d-%d", os.Getpid(), socketSeq.Add(1))
}

// TestServer is an API server running in the background on a fake driver.
type TestServer struct {
	Addr     string
	Driver   *FakeDriver
	Server   *api.Server
	Registry *device.Registry

	done    chan struct{}
	exitErr error
}

// StartAPIServer starts a server on a fresh socket and calls register so the
// test can install the handlers it needs. The registry must not be touched
// by the test until WaitExit has returned.
func StartAPIServer(t *testing.T, register func(r *api.Router, reg *device.Registry)) *TestServer {
	t.Helper()
	drv := NewFakeDriver()
	km, err := keymap.Get(keymap.DefaultLayout)
	if err != nil {
		t.Fatalf("keymap: %v", err)
	}
	reg := device.NewRegistry(drv, device.Options{Keymap: km, Sleep: drv.Sleep}, log.Discard())

	addr := SocketName()
	srv := api.New(reg, addr, log.Discard(), log.NewRaw(nil))
	if register != nil {
		register(srv.Router(), reg)
	}
	if err := srv.Open(); err != nil {
		t.Fatalf("api open failed: %v", err)
	}

	ts := &TestServer{Addr: addr, Driver: drv, Server: srv, Registry: reg, done: make(chan struct{})}
	go func() {
		ts.exitErr = srv.Serve()
		close(ts.done)
	}()

	t.Cleanup(func() {
		srv.Close()
		select {
		case <-ts.done:
		case <-time.After(time.Second):
		}
	})
	return ts
}

// Exited reports whether Serve has returned.
func (s *TestServer) Exited() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// WaitExit waits for Serve to return and reports its error. It fails the
// test when the server is still running after timeout.
func (s *TestServer) WaitExit(t *testing.T, timeout time.Duration) error {
	t.Helper()
	select {
	case <-s.done:
		return s.exitErr
	case <-time.After(timeout):
		t.Fatalf("server still running after %s", timeout)
		return nil
	}
}

// SendRaw writes frame as-is and returns the decoded response.
func SendRaw(t *testing.T, addr string, frame []byte) message.Message {
	t.Helper()
	c, err := net.Dial("unix", addr)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer c.Close()
	if _, err := c.Write(frame); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	m, err := message.Read(c)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	return m
}
