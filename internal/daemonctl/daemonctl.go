// Package daemonctl launches the background server process and waits for it
// to come up.
package daemonctl

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gofrs/flock"
)

const (
	DefaultStartTimeout = 5 * time.Second
	pollInterval        = 20 * time.Millisecond
)

var (
	ErrStartTimeout = errors.New("timeout waiting for server")
	ErrServerExited = errors.New("server exited during startup")
	ErrLocked       = errors.New("another launch is in progress")
)

// Child is a launched server process.
type Child struct {
	cmd  *exec.Cmd
	done chan struct{}
	err  error
}

func (c *Child) Pid() int { return c.cmd.Process.Pid }

// Done is closed once the process has exited.
func (c *Child) Done() <-chan struct{} { return c.done }

// Err is the exit error, valid after Done is closed.
func (c *Child) Err() error { return c.err }

// Launch starts "<executable> serve <args...>" detached from the terminal:
// a new session with stdio on /dev/null.
func Launch(executablePath string, args []string) (*Child, error) {
	if strings.TrimSpace(executablePath) == "" {
		return nil, fmt.Errorf("resolve executable: executable path is empty")
	}
	devNull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", os.DevNull, err)
	}
	defer devNull.Close()

	cmd := exec.Command(executablePath, append([]string{"serve"}, args...)...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = devNull, devNull, devNull
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("launch server: %w", err)
	}

	c := &Child{cmd: cmd, done: make(chan struct{})}
	go func() {
		c.err = cmd.Wait()
		close(c.done)
	}()
	return c, nil
}

// WaitForServer polls addr until it accepts a connection. It fails early
// when child exits first; child may be nil.
func WaitForServer(ctx context.Context, addr string, child *Child, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var exited <-chan struct{}
	if child != nil {
		exited = child.Done()
	}
	t := time.NewTicker(pollInterval)
	defer t.Stop()
	for {
		if Ready(addr) {
			return nil
		}
		select {
		case <-exited:
			if Ready(addr) {
				return nil
			}
			return fmt.Errorf("%w: %v", ErrServerExited, child.Err())
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return fmt.Errorf("%w after %s", ErrStartTimeout, timeout)
			}
			return ctx.Err()
		case <-t.C:
		}
	}
}

// Ready reports whether a server accepts connections on addr. The probe
// connection closes without sending a request.
func Ready(addr string) bool {
	c, err := net.Dial("unix", addr)
	if err != nil {
		return false
	}
	_ = c.Close()
	return true
}

// Lock serializes concurrent launches through a file lock at path.
type Lock struct {
	fl *flock.Flock
}

// AcquireLock takes the launch lock, waiting until ctx is done.
func AcquireLock(ctx context.Context, path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}
	fl := flock.New(path)
	ok, err := fl.TryLockContext(ctx, pollInterval)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %s", ErrLocked, path)
		}
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}
	return &Lock{fl: fl}, nil
}

func (l *Lock) Unlock() error {
	return l.fl.Unlock()
}
