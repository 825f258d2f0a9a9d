package daemonctl

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const childEnv = "INPUT_EMULATOR_DAEMONCTL_CHILD"

// TestMain doubles as the launched server when childEnv is set. The child
// receives "serve <mode> <addr>".
func TestMain(m *testing.M) {
	if os.Getenv(childEnv) == "1" && len(os.Args) >= 4 && os.Args[1] == "serve" {
		os.Exit(runChild(os.Args[2], os.Args[3]))
	}
	os.Exit(m.Run())
}

func runChild(mode, addr string) int {
	switch mode {
	case "listen":
		ln, err := net.Listen("unix", addr)
		if err != nil {
			return 2
		}
		defer ln.Close()
		c, err := ln.Accept()
		if err != nil {
			return 2
		}
		_ = c.Close()
		return 0
	default:
		return 3
	}
}

func socketName(t *testing.T) string {
	return fmt.Sprintf("@input-emulator-daemonctl-%d-%s", os.Getpid(), t.Name())
}

func TestLaunchAndWait(t *testing.T) {
	t.Setenv(childEnv, "1")
	addr := socketName(t)

	child, err := Launch(os.Args[0], []string{"listen", addr})
	require.NoError(t, err)
	assert.Positive(t, child.Pid())

	require.NoError(t, WaitForServer(context.Background(), addr, child, 5*time.Second))
	select {
	case <-child.Done():
		assert.NoError(t, child.Err())
	case <-time.After(5 * time.Second):
		t.Fatal("child did not exit after the probe")
	}
}

func TestWaitForServerChildFails(t *testing.T) {
	t.Setenv(childEnv, "1")
	addr := socketName(t)

	child, err := Launch(os.Args[0], []string{"fail", addr})
	require.NoError(t, err)

	err = WaitForServer(context.Background(), addr, child, 5*time.Second)
	assert.ErrorIs(t, err, ErrServerExited)
}

func TestWaitForServerTimeout(t *testing.T) {
	err := WaitForServer(context.Background(), socketName(t), nil, 60*time.Millisecond)
	assert.ErrorIs(t, err, ErrStartTimeout)
}

func TestLaunchEmptyPath(t *testing.T) {
	_, err := Launch(" ", nil)
	assert.Error(t, err)
}

func TestLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run", "server.lock")

	l, err := AcquireLock(context.Background(), path)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()
	_, err = AcquireLock(ctx, path)
	assert.ErrorIs(t, err, ErrLocked)

	require.NoError(t, l.Unlock())
	l2, err := AcquireLock(context.Background(), path)
	require.NoError(t, err)
	assert.NoError(t, l2.Unlock())
}
