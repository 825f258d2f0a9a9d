package apitypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lundmar/input-emulator/pkg/message"
)

func TestRequestRoundTrip(t *testing.T) {
	tests := []Request{
		&KeyboardStart{TypeDelayMs: 40},
		&KeyboardKey{Key: 30},
		&KeyboardKeyDown{Key: 42},
		&KeyboardKeyUp{Key: 42},
		&KeyboardType{Text: "Hej æøå"},
		&MouseStart{XMax: 1024, YMax: 768},
		&MouseMove{DX: -5, DY: 12},
		&MouseButton{Button: 0x110},
		&MouseButtonDown{Button: 0x111},
		&MouseButtonUp{Button: 0x111},
		&MouseScroll{Ticks: -3},
		&TouchStart{XMax: 1920, YMax: 1080, Slots: 4},
		&TouchTap{X: 100, Y: 200, DurationMs: 15},
		&Status{},
		&Stop{Class: ClassAll},
	}
	for _, req := range tests {
		t.Run(req.Type().String(), func(t *testing.T) {
			m, err := EncodeRequest(req)
			require.NoError(t, err)
			assert.Equal(t, req.Type(), m.Type)

			wire := message.Encode(m.Type, m.Payload)
			got, err := message.Decode(wire)
			require.NoError(t, err)

			decoded, err := DecodeRequest(got)
			require.NoError(t, err)
			assert.Equal(t, req, decoded)
		})
	}
}

func TestDecodeRequestRejectsBadLengths(t *testing.T) {
	tests := []struct {
		name    string
		msg     message.Message
		wantErr error
	}{
		{"short key", message.Message{Type: message.KeyboardKey, Payload: []byte{30, 0}}, ErrPayloadLength},
		{"long key", message.Message{Type: message.KeyboardKey, Payload: make([]byte, 8)}, ErrPayloadLength},
		{"empty mouse start", message.Message{Type: message.MouseStart}, ErrPayloadLength},
		{"status with payload", message.Message{Type: message.Status, Payload: []byte{1}}, ErrPayloadLength},
		{"short touch tap", message.Message{Type: message.TouchTap, Payload: make([]byte, 8)}, ErrPayloadLength},
		{"empty text", message.Message{Type: message.KeyboardType}, ErrInvalidText},
		{"invalid utf8", message.Message{Type: message.KeyboardType, Payload: []byte{0xff, 0xfe}}, ErrInvalidText},
		{"bad stop class", message.Message{Type: message.Stop, Payload: []byte{9, 0, 0, 0}}, ErrUnknownClass},
		{"response as request", message.Message{Type: message.OK}, ErrUnknownType},
		{"unknown type", message.Message{Type: message.Type(99)}, ErrUnknownType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRequest(tt.msg)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRequestTypes(t *testing.T) {
	types := RequestTypes()
	assert.Len(t, types, 15)
	for _, typ := range types {
		assert.False(t, typ.IsResponse(), typ.String())
	}
}
