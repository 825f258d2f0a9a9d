// Package message implements the framing used on the input-emulator socket.
//
// A frame is a 5 byte header, the message type followed by the payload
// length as a native-order uint32, then exactly payload-length bytes.
package message

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// HeaderSize is the packed size of Header on the wire.
const HeaderSize = 5

// MaxPayload bounds the payload length accepted from a peer.
const MaxPayload = 1 << 20

var (
	ErrTruncated       = errors.New("message truncated")
	ErrPayloadTooLarge = errors.New("payload too large")
)

// Type identifies a request or response.
type Type uint8

const (
	KeyboardStart Type = iota
	KeyboardKey
	KeyboardKeyDown
	KeyboardKeyUp
	KeyboardType
	MouseStart
	MouseMove
	MouseButton
	MouseButtonDown
	MouseButtonUp
	MouseScroll
	TouchStart
	TouchTap
	Status
	Stop
	StatusText
	OK
	Error
)

var typeNames = [...]string{
	KeyboardStart:   "kbd-start",
	KeyboardKey:     "kbd-key",
	KeyboardKeyDown: "kbd-keydown",
	KeyboardKeyUp:   "kbd-keyup",
	KeyboardType:    "kbd-type",
	MouseStart:      "mouse-start",
	MouseMove:       "mouse-move",
	MouseButton:     "mouse-click",
	MouseButtonDown: "mouse-down",
	MouseButtonUp:   "mouse-up",
	MouseScroll:     "mouse-scroll",
	TouchStart:      "touch-start",
	TouchTap:        "touch-tap",
	Status:          "status",
	Stop:            "stop",
	StatusText:      "status-text",
	OK:              "ok",
	Error:           "error",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("type(%d)", uint8(t))
}

// IsResponse reports whether t is only valid in the server to client direction.
func (t Type) IsResponse() bool {
	return t == StatusText || t == OK || t == Error
}

// Header is the fixed part of every frame.
type Header struct {
	Type          Type
	PayloadLength uint32
}

// Message is a decoded frame.
type Message struct {
	Type    Type
	Payload []byte
}

// Encode builds the wire form of a message.
func Encode(t Type, payload []byte) []byte {
	b := make([]byte, HeaderSize+len(payload))
	b[0] = byte(t)
	binary.NativeEndian.PutUint32(b[1:HeaderSize], uint32(len(payload)))
	copy(b[HeaderSize:], payload)
	return b
}

// Decode parses a complete frame held in b. Trailing bytes are rejected.
func Decode(b []byte) (Message, error) {
	if len(b) < HeaderSize {
		return Message{}, ErrTruncated
	}
	h := parseHeader(b)
	if h.PayloadLength > MaxPayload {
		return Message{}, fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, h.PayloadLength)
	}
	rest := b[HeaderSize:]
	if uint32(len(rest)) < h.PayloadLength {
		return Message{}, ErrTruncated
	}
	if uint32(len(rest)) > h.PayloadLength {
		return Message{}, fmt.Errorf("%d trailing bytes after payload", uint32(len(rest))-h.PayloadLength)
	}
	return Message{Type: h.Type, Payload: append([]byte(nil), rest...)}, nil
}

func parseHeader(b []byte) Header {
	return Header{
		Type:          Type(b[0]),
		PayloadLength: binary.NativeEndian.Uint32(b[1:HeaderSize]),
	}
}

// ReadHeader reads one header from r. io.EOF is returned only when the peer
// closed the stream before sending any byte.
func ReadHeader(r io.Reader) (Header, error) {
	var buf [HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return Header{}, io.EOF
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return Header{}, ErrTruncated
		}
		return Header{}, err
	}
	h := parseHeader(buf[:])
	if h.PayloadLength > MaxPayload {
		return Header{}, fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, h.PayloadLength)
	}
	return h, nil
}

// ReadPayload reads exactly h.PayloadLength bytes.
func ReadPayload(r io.Reader, h Header) ([]byte, error) {
	if h.PayloadLength == 0 {
		return nil, nil
	}
	p := make([]byte, h.PayloadLength)
	if _, err := io.ReadFull(r, p); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrTruncated
		}
		return nil, err
	}
	return p, nil
}

// Read reads one complete message.
func Read(r io.Reader) (Message, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return Message{}, err
	}
	p, err := ReadPayload(r, h)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: h.Type, Payload: p}, nil
}

// Write sends m, retrying short writes until the frame is fully written.
func Write(w io.Writer, m Message) error {
	return writeAll(w, Encode(m.Type, m.Payload))
}

func writeAll(w io.Writer, b []byte) error {
	for len(b) > 0 {
		n, err := w.Write(b)
		if err != nil {
			return fmt.Errorf("write frame: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("write frame: %w", io.ErrShortWrite)
		}
		b = b[n:]
	}
	return nil
}
