package api_test

import (
	"errors"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lundmar/input-emulator/internal/device"
	"github.com/lundmar/input-emulator/internal/log"
	"github.com/lundmar/input-emulator/internal/server/api"
	th "github.com/lundmar/input-emulator/internal/testing"
	"github.com/lundmar/input-emulator/pkg/apitypes"
	"github.com/lundmar/input-emulator/pkg/message"
)

func okHandler(_ *api.Request, _ *api.Response, _ *slog.Logger) error { return nil }

func TestServerRejectsBadRequests(t *testing.T) {
	tests := []struct {
		name    string
		frame   []byte
		wantMsg string
	}{
		{
			name:    "unknown type",
			frame:   message.Encode(message.Type(200), nil),
			wantMsg: "unknown request type",
		},
		{
			name:    "response type sent as request",
			frame:   message.Encode(message.OK, nil),
			wantMsg: "unknown request type",
		},
		{
			name:    "short payload",
			frame:   message.Encode(message.KeyboardKey, []byte{1, 2}),
			wantMsg: "invalid payload length",
		},
		{
			name:    "status with payload",
			frame:   message.Encode(message.Status, []byte{0}),
			wantMsg: "invalid payload length",
		},
		{
			name:    "no handler",
			frame:   message.Encode(message.MouseMove, make([]byte, 8)),
			wantMsg: "no handler",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := th.StartAPIServer(t, func(r *api.Router, _ *device.Registry) {
				r.Register(message.Status, okHandler)
				r.Register(message.KeyboardKey, okHandler)
			})
			rsp := th.SendRaw(t, ts.Addr, tt.frame)
			assert.Equal(t, message.Error, rsp.Type)
			assert.Contains(t, string(rsp.Payload), tt.wantMsg)

			// still serving
			rsp = th.SendRaw(t, ts.Addr, message.Encode(message.Status, nil))
			assert.Equal(t, message.OK, rsp.Type)
			assert.Empty(t, ts.Driver.Records())
		})
	}
}

func TestServerIgnoresPeerWithoutRequest(t *testing.T) {
	ts := th.StartAPIServer(t, func(r *api.Router, _ *device.Registry) {
		r.Register(message.Status, okHandler)
	})

	c, err := net.Dial("unix", ts.Addr)
	require.NoError(t, err)
	require.NoError(t, c.Close())

	rsp := th.SendRaw(t, ts.Addr, message.Encode(message.Status, nil))
	assert.Equal(t, message.OK, rsp.Type)
	assert.False(t, ts.Exited())
}

func TestServerPartialFrameIsFatal(t *testing.T) {
	ts := th.StartAPIServer(t, nil)

	c, err := net.Dial("unix", ts.Addr)
	require.NoError(t, err)
	frame := message.Encode(message.KeyboardKey, []byte{30, 0, 0, 0})
	_, err = c.Write(frame[:3])
	require.NoError(t, err)
	require.NoError(t, c.Close())

	err = ts.WaitExit(t, 2*time.Second)
	assert.ErrorIs(t, err, message.ErrTruncated)
}

func TestServerHandlerShutdown(t *testing.T) {
	ts := th.StartAPIServer(t, func(r *api.Router, _ *device.Registry) {
		r.Register(message.Stop, func(_ *api.Request, res *api.Response, _ *slog.Logger) error {
			res.Shutdown = true
			return nil
		})
	})
	stop, err := apitypes.EncodeRequest(&apitypes.Stop{Class: apitypes.ClassAll})
	require.NoError(t, err)

	rsp := th.SendRaw(t, ts.Addr, message.Encode(stop.Type, stop.Payload))
	assert.Equal(t, message.OK, rsp.Type)
	assert.NoError(t, ts.WaitExit(t, 2*time.Second))
}

func TestServerFatalHandlerError(t *testing.T) {
	fatal := &device.FatalError{Class: apitypes.ClassKeyboard, Op: "create", Err: errors.New("no uinput")}
	ts := th.StartAPIServer(t, func(r *api.Router, _ *device.Registry) {
		r.Register(message.Status, func(_ *api.Request, _ *api.Response, _ *slog.Logger) error {
			return fatal
		})
	})

	rsp := th.SendRaw(t, ts.Addr, message.Encode(message.Status, nil))
	assert.Equal(t, message.Error, rsp.Type)
	assert.Contains(t, string(rsp.Payload), "no uinput")

	err := ts.WaitExit(t, 2*time.Second)
	var fe *device.FatalError
	assert.True(t, errors.As(err, &fe))
}

func TestServerStatusTextResponse(t *testing.T) {
	ts := th.StartAPIServer(t, func(r *api.Router, _ *device.Registry) {
		r.Register(message.Status, func(_ *api.Request, res *api.Response, _ *slog.Logger) error {
			res.StatusText("mouse: /sys/devices/virtual/input/input3\n")
			return nil
		})
	})
	rsp := th.SendRaw(t, ts.Addr, message.Encode(message.Status, nil))
	assert.Equal(t, message.StatusText, rsp.Type)
	assert.Equal(t, "mouse: /sys/devices/virtual/input/input3\n", string(rsp.Payload))
}

func TestServerAlreadyRunning(t *testing.T) {
	ts := th.StartAPIServer(t, nil)

	second := api.New(ts.Registry, ts.Addr, log.Discard(), nil)
	err := second.Open()
	assert.ErrorIs(t, err, api.ErrAlreadyRunning)
}

func TestServeWithoutOpen(t *testing.T) {
	srv := api.New(nil, th.SocketName(), log.Discard(), nil)
	assert.Error(t, srv.Serve())
}

func TestRouterMissing(t *testing.T) {
	r := api.NewRouter()
	assert.Len(t, r.Missing(), len(apitypes.RequestTypes()))

	for _, rt := range apitypes.RequestTypes() {
		if rt != message.Stop {
			r.Register(rt, okHandler)
		}
	}
	assert.Equal(t, []message.Type{message.Stop}, r.Missing())

	r.Register(message.Stop, okHandler)
	assert.Empty(t, r.Missing())
	assert.NotNil(t, r.Match(message.Stop))
	assert.Nil(t, r.Match(message.OK))
}
