package apiclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lundmar/input-emulator/pkg/apitypes"
	"github.com/lundmar/input-emulator/pkg/message"
)

var ErrUnexpectedResponse = errors.New("unexpected response")

// ServerError carries the text of an Error response.
type ServerError struct {
	Request message.Type
	Msg     string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("%s: %s", e.Request, e.Msg)
}

// Client provides typed request helpers on top of a Transport. Every call
// opens a fresh connection.
type Client struct{ transport *Transport }

// New constructs a client for the server bound to the abstract socket addr.
func New(addr string) *Client { return &Client{transport: NewTransport(addr)} }

// NewWithConfig constructs a client with custom transport timeouts.
func NewWithConfig(addr string, cfg *Config) *Client {
	return &Client{transport: NewTransportWithConfig(addr, cfg)}
}

// WithTransport constructs a Client using a custom Transport implementation.
// This is primarily useful for testing.
func WithTransport(t *Transport) *Client { return &Client{transport: t} }

func (c *Client) Transport() *Transport { return c.transport }

// KeyboardStart brings the keyboard online. Each stroke holds its key for
// typeDelay.
func (c *Client) KeyboardStart(typeDelay time.Duration) error {
	return c.KeyboardStartCtx(context.Background(), typeDelay)
}

func (c *Client) KeyboardStartCtx(ctx context.Context, typeDelay time.Duration) error {
	return c.expectOK(ctx, &apitypes.KeyboardStart{TypeDelayMs: millis(typeDelay)})
}

// KeyboardKey strokes key: press, hold for the type delay, release.
func (c *Client) KeyboardKey(key uint32) error {
	return c.KeyboardKeyCtx(context.Background(), key)
}

func (c *Client) KeyboardKeyCtx(ctx context.Context, key uint32) error {
	return c.expectOK(ctx, &apitypes.KeyboardKey{Key: key})
}

func (c *Client) KeyboardKeyDown(key uint32) error {
	return c.KeyboardKeyDownCtx(context.Background(), key)
}

func (c *Client) KeyboardKeyDownCtx(ctx context.Context, key uint32) error {
	return c.expectOK(ctx, &apitypes.KeyboardKeyDown{Key: key})
}

func (c *Client) KeyboardKeyUp(key uint32) error {
	return c.KeyboardKeyUpCtx(context.Background(), key)
}

func (c *Client) KeyboardKeyUpCtx(ctx context.Context, key uint32) error {
	return c.expectOK(ctx, &apitypes.KeyboardKeyUp{Key: key})
}

// KeyboardType types text using the server's keyboard layout.
func (c *Client) KeyboardType(text string) error {
	return c.KeyboardTypeCtx(context.Background(), text)
}

func (c *Client) KeyboardTypeCtx(ctx context.Context, text string) error {
	return c.expectOK(ctx, &apitypes.KeyboardType{Text: text})
}

// MouseStart brings the mouse online with the given absolute axis bounds.
func (c *Client) MouseStart(xMax, yMax uint32) error {
	return c.MouseStartCtx(context.Background(), xMax, yMax)
}

func (c *Client) MouseStartCtx(ctx context.Context, xMax, yMax uint32) error {
	return c.expectOK(ctx, &apitypes.MouseStart{XMax: xMax, YMax: yMax})
}

func (c *Client) MouseMove(dx, dy int32) error {
	return c.MouseMoveCtx(context.Background(), dx, dy)
}

func (c *Client) MouseMoveCtx(ctx context.Context, dx, dy int32) error {
	return c.expectOK(ctx, &apitypes.MouseMove{DX: dx, DY: dy})
}

// MouseClick presses and releases button.
func (c *Client) MouseClick(button int32) error {
	return c.MouseClickCtx(context.Background(), button)
}

func (c *Client) MouseClickCtx(ctx context.Context, button int32) error {
	return c.expectOK(ctx, &apitypes.MouseButton{Button: button})
}

func (c *Client) MouseButtonDown(button int32) error {
	return c.MouseButtonDownCtx(context.Background(), button)
}

func (c *Client) MouseButtonDownCtx(ctx context.Context, button int32) error {
	return c.expectOK(ctx, &apitypes.MouseButtonDown{Button: button})
}

func (c *Client) MouseButtonUp(button int32) error {
	return c.MouseButtonUpCtx(context.Background(), button)
}

func (c *Client) MouseButtonUpCtx(ctx context.Context, button int32) error {
	return c.expectOK(ctx, &apitypes.MouseButtonUp{Button: button})
}

// MouseScroll turns the vertical wheel; positive ticks scroll up.
func (c *Client) MouseScroll(ticks int32) error {
	return c.MouseScrollCtx(context.Background(), ticks)
}

func (c *Client) MouseScrollCtx(ctx context.Context, ticks int32) error {
	return c.expectOK(ctx, &apitypes.MouseScroll{Ticks: ticks})
}

// TouchStart brings the touch device online.
func (c *Client) TouchStart(xMax, yMax, slots uint32) error {
	return c.TouchStartCtx(context.Background(), xMax, yMax, slots)
}

func (c *Client) TouchStartCtx(ctx context.Context, xMax, yMax, slots uint32) error {
	return c.expectOK(ctx, &apitypes.TouchStart{XMax: xMax, YMax: yMax, Slots: slots})
}

// TouchTap touches x,y for duration and lifts.
func (c *Client) TouchTap(x, y uint32, duration time.Duration) error {
	return c.TouchTapCtx(context.Background(), x, y, duration)
}

func (c *Client) TouchTapCtx(ctx context.Context, x, y uint32, duration time.Duration) error {
	return c.expectOK(ctx, &apitypes.TouchTap{X: x, Y: y, DurationMs: millis(duration)})
}

// Status returns the raw status text, one line per online device.
func (c *Client) Status() (string, error) {
	return c.StatusCtx(context.Background())
}

func (c *Client) StatusCtx(ctx context.Context) (string, error) {
	rsp, err := c.call(ctx, &apitypes.Status{})
	if err != nil {
		return "", err
	}
	if rsp.Type != message.StatusText {
		return "", fmt.Errorf("%w: %s", ErrUnexpectedResponse, rsp.Type)
	}
	return string(rsp.Payload), nil
}

// StatusLines is Status parsed into lines.
func (c *Client) StatusLines() ([]apitypes.StatusLine, error) {
	return c.StatusLinesCtx(context.Background())
}

func (c *Client) StatusLinesCtx(ctx context.Context) ([]apitypes.StatusLine, error) {
	text, err := c.StatusCtx(ctx)
	if err != nil {
		return nil, err
	}
	return apitypes.ParseStatus(text)
}

// Stop takes the devices of class offline. The server exits once none are
// left.
func (c *Client) Stop(class apitypes.Class) error {
	return c.StopCtx(context.Background(), class)
}

func (c *Client) StopCtx(ctx context.Context, class apitypes.Class) error {
	return c.expectOK(ctx, &apitypes.Stop{Class: class})
}

func (c *Client) call(ctx context.Context, req apitypes.Request) (message.Message, error) {
	m, err := apitypes.EncodeRequest(req)
	if err != nil {
		return message.Message{}, fmt.Errorf("encode %s: %w", req.Type(), err)
	}
	rsp, err := c.transport.DoCtx(ctx, m)
	if err != nil {
		return message.Message{}, err
	}
	if rsp.Type == message.Error {
		return message.Message{}, &ServerError{Request: req.Type(), Msg: string(rsp.Payload)}
	}
	return rsp, nil
}

func (c *Client) expectOK(ctx context.Context, req apitypes.Request) error {
	rsp, err := c.call(ctx, req)
	if err != nil {
		return err
	}
	if rsp.Type != message.OK {
		return fmt.Errorf("%w: %s", ErrUnexpectedResponse, rsp.Type)
	}
	return nil
}

func millis(d time.Duration) uint32 {
	if d <= 0 {
		return 0
	}
	return uint32(d / time.Millisecond)
}
