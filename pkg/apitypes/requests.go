// Package apitypes holds the typed payloads exchanged between the CLI and the
// server. Every request type has its own struct; the wire message type is
// derived from the struct, never passed alongside it.
package apitypes

import (
	"encoding"
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/lundmar/input-emulator/pkg/message"
)

var (
	ErrPayloadLength = errors.New("invalid payload length")
	ErrUnknownType   = errors.New("unknown request type")
	ErrInvalidText   = errors.New("text must be non-empty valid UTF-8")
)

// Request is implemented by every payload the server accepts.
type Request interface {
	Type() message.Type
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
}

type KeyboardStart struct {
	TypeDelayMs uint32
}

type KeyboardKey struct {
	Key uint32
}

type KeyboardKeyDown struct {
	Key uint32
}

type KeyboardKeyUp struct {
	Key uint32
}

type KeyboardType struct {
	Text string
}

type MouseStart struct {
	XMax uint32
	YMax uint32
}

type MouseMove struct {
	DX int32
	DY int32
}

// MouseButton is a click: press, short hold, release.
type MouseButton struct {
	Button int32
}

type MouseButtonDown struct {
	Button int32
}

type MouseButtonUp struct {
	Button int32
}

type MouseScroll struct {
	Ticks int32
}

type TouchStart struct {
	XMax  uint32
	YMax  uint32
	Slots uint32
}

type TouchTap struct {
	X          uint32
	Y          uint32
	DurationMs uint32
}

type Status struct{}

type Stop struct {
	Class Class
}

func (KeyboardStart) Type() message.Type   { return message.KeyboardStart }
func (KeyboardKey) Type() message.Type     { return message.KeyboardKey }
func (KeyboardKeyDown) Type() message.Type { return message.KeyboardKeyDown }
func (KeyboardKeyUp) Type() message.Type   { return message.KeyboardKeyUp }
func (KeyboardType) Type() message.Type    { return message.KeyboardType }
func (MouseStart) Type() message.Type      { return message.MouseStart }
func (MouseMove) Type() message.Type       { return message.MouseMove }
func (MouseButton) Type() message.Type     { return message.MouseButton }
func (MouseButtonDown) Type() message.Type { return message.MouseButtonDown }
func (MouseButtonUp) Type() message.Type   { return message.MouseButtonUp }
func (MouseScroll) Type() message.Type     { return message.MouseScroll }
func (TouchStart) Type() message.Type      { return message.TouchStart }
func (TouchTap) Type() message.Type        { return message.TouchTap }
func (Status) Type() message.Type          { return message.Status }
func (Stop) Type() message.Type            { return message.Stop }

func (r KeyboardStart) MarshalBinary() ([]byte, error) { return putWords(r.TypeDelayMs), nil }
func (r *KeyboardStart) UnmarshalBinary(b []byte) error {
	w, err := getWords(r.Type(), b, 1)
	if err != nil {
		return err
	}
	r.TypeDelayMs = w[0]
	return nil
}

func (r KeyboardKey) MarshalBinary() ([]byte, error) { return putWords(r.Key), nil }
func (r *KeyboardKey) UnmarshalBinary(b []byte) error {
	w, err := getWords(r.Type(), b, 1)
	if err != nil {
		return err
	}
	r.Key = w[0]
	return nil
}

func (r KeyboardKeyDown) MarshalBinary() ([]byte, error) { return putWords(r.Key), nil }
func (r *KeyboardKeyDown) UnmarshalBinary(b []byte) error {
	w, err := getWords(r.Type(), b, 1)
	if err != nil {
		return err
	}
	r.Key = w[0]
	return nil
}

func (r KeyboardKeyUp) MarshalBinary() ([]byte, error) { return putWords(r.Key), nil }
func (r *KeyboardKeyUp) UnmarshalBinary(b []byte) error {
	w, err := getWords(r.Type(), b, 1)
	if err != nil {
		return err
	}
	r.Key = w[0]
	return nil
}

func (r KeyboardType) MarshalBinary() ([]byte, error) {
	if err := validText(r.Text); err != nil {
		return nil, err
	}
	return []byte(r.Text), nil
}

func (r *KeyboardType) UnmarshalBinary(b []byte) error {
	if err := validText(string(b)); err != nil {
		return err
	}
	r.Text = string(b)
	return nil
}

func validText(s string) error {
	if s == "" || !utf8.ValidString(s) {
		return ErrInvalidText
	}
	return nil
}

func (r MouseStart) MarshalBinary() ([]byte, error) { return putWords(r.XMax, r.YMax), nil }
func (r *MouseStart) UnmarshalBinary(b []byte) error {
	w, err := getWords(r.Type(), b, 2)
	if err != nil {
		return err
	}
	r.XMax, r.YMax = w[0], w[1]
	return nil
}

func (r MouseMove) MarshalBinary() ([]byte, error) {
	return putWords(uint32(r.DX), uint32(r.DY)), nil
}

func (r *MouseMove) UnmarshalBinary(b []byte) error {
	w, err := getWords(r.Type(), b, 2)
	if err != nil {
		return err
	}
	r.DX, r.DY = int32(w[0]), int32(w[1])
	return nil
}

func (r MouseButton) MarshalBinary() ([]byte, error) { return putWords(uint32(r.Button)), nil }
func (r *MouseButton) UnmarshalBinary(b []byte) error {
	w, err := getWords(r.Type(), b, 1)
	if err != nil {
		return err
	}
	r.Button = int32(w[0])
	return nil
}

func (r MouseButtonDown) MarshalBinary() ([]byte, error) { return putWords(uint32(r.Button)), nil }
func (r *MouseButtonDown) UnmarshalBinary(b []byte) error {
	w, err := getWords(r.Type(), b, 1)
	if err != nil {
		return err
	}
	r.Button = int32(w[0])
	return nil
}

func (r MouseButtonUp) MarshalBinary() ([]byte, error) { return putWords(uint32(r.Button)), nil }
func (r *MouseButtonUp) UnmarshalBinary(b []byte) error {
	w, err := getWords(r.Type(), b, 1)
	if err != nil {
		return err
	}
	r.Button = int32(w[0])
	return nil
}

func (r MouseScroll) MarshalBinary() ([]byte, error) { return putWords(uint32(r.Ticks)), nil }
func (r *MouseScroll) UnmarshalBinary(b []byte) error {
	w, err := getWords(r.Type(), b, 1)
	if err != nil {
		return err
	}
	r.Ticks = int32(w[0])
	return nil
}

func (r TouchStart) MarshalBinary() ([]byte, error) {
	return putWords(r.XMax, r.YMax, r.Slots), nil
}

func (r *TouchStart) UnmarshalBinary(b []byte) error {
	w, err := getWords(r.Type(), b, 3)
	if err != nil {
		return err
	}
	r.XMax, r.YMax, r.Slots = w[0], w[1], w[2]
	return nil
}

func (r TouchTap) MarshalBinary() ([]byte, error) {
	return putWords(r.X, r.Y, r.DurationMs), nil
}

func (r *TouchTap) UnmarshalBinary(b []byte) error {
	w, err := getWords(r.Type(), b, 3)
	if err != nil {
		return err
	}
	r.X, r.Y, r.DurationMs = w[0], w[1], w[2]
	return nil
}

func (Status) MarshalBinary() ([]byte, error) { return nil, nil }
func (r *Status) UnmarshalBinary(b []byte) error {
	_, err := getWords(r.Type(), b, 0)
	return err
}

func (r Stop) MarshalBinary() ([]byte, error) { return putWords(uint32(r.Class)), nil }
func (r *Stop) UnmarshalBinary(b []byte) error {
	w, err := getWords(r.Type(), b, 1)
	if err != nil {
		return err
	}
	c := Class(w[0])
	if c > ClassAll {
		return fmt.Errorf("%w: %d", ErrUnknownClass, w[0])
	}
	r.Class = c
	return nil
}

func putWords(words ...uint32) []byte {
	b := make([]byte, 4*len(words))
	for i, w := range words {
		binary.NativeEndian.PutUint32(b[4*i:], w)
	}
	return b
}

func getWords(t message.Type, b []byte, n int) ([]uint32, error) {
	if len(b) != 4*n {
		return nil, fmt.Errorf("%w: %s expects %d bytes, got %d", ErrPayloadLength, t, 4*n, len(b))
	}
	w := make([]uint32, n)
	for i := range w {
		w[i] = binary.NativeEndian.Uint32(b[4*i:])
	}
	return w, nil
}

var decoders = map[message.Type]func() Request{
	message.KeyboardStart:   func() Request { return &KeyboardStart{} },
	message.KeyboardKey:     func() Request { return &KeyboardKey{} },
	message.KeyboardKeyDown: func() Request { return &KeyboardKeyDown{} },
	message.KeyboardKeyUp:   func() Request { return &KeyboardKeyUp{} },
	message.KeyboardType:    func() Request { return &KeyboardType{} },
	message.MouseStart:      func() Request { return &MouseStart{} },
	message.MouseMove:       func() Request { return &MouseMove{} },
	message.MouseButton:     func() Request { return &MouseButton{} },
	message.MouseButtonDown: func() Request { return &MouseButtonDown{} },
	message.MouseButtonUp:   func() Request { return &MouseButtonUp{} },
	message.MouseScroll:     func() Request { return &MouseScroll{} },
	message.TouchStart:      func() Request { return &TouchStart{} },
	message.TouchTap:        func() Request { return &TouchTap{} },
	message.Status:          func() Request { return &Status{} },
	message.Stop:            func() Request { return &Stop{} },
}

// RequestTypes lists every message type that is valid as a request.
func RequestTypes() []message.Type {
	out := make([]message.Type, 0, len(decoders))
	for t := message.KeyboardStart; t <= message.Stop; t++ {
		if _, ok := decoders[t]; ok {
			out = append(out, t)
		}
	}
	return out
}

// DecodeRequest turns a received frame into its typed request. The returned
// value is a pointer to one of the request structs in this package.
func DecodeRequest(m message.Message) (Request, error) {
	newReq, ok := decoders[m.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, m.Type)
	}
	req := newReq()
	if err := req.UnmarshalBinary(m.Payload); err != nil {
		return nil, err
	}
	return req, nil
}

// EncodeRequest builds the frame for req.
func EncodeRequest(req Request) (message.Message, error) {
	p, err := req.MarshalBinary()
	if err != nil {
		return message.Message{}, err
	}
	return message.Message{Type: req.Type(), Payload: p}, nil
}
