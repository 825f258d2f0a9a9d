package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lundmar/input-emulator/internal/evcode"
	"github.com/lundmar/input-emulator/internal/server/api"
	"github.com/lundmar/input-emulator/pkg/apitypes"
	"github.com/lundmar/input-emulator/pkg/message"
)

func TestPayload(t *testing.T) {
	t.Run("matching type", func(t *testing.T) {
		want := &apitypes.MouseMove{DX: -5, DY: 7}
		got, err := payload[apitypes.MouseMove](&api.Request{Type: message.MouseMove, Payload: want})
		require.NoError(t, err)
		assert.Same(t, want, got)
	})

	t.Run("other request type", func(t *testing.T) {
		_, err := payload[apitypes.MouseMove](&api.Request{Type: message.MouseMove, Payload: &apitypes.KeyboardKey{Key: 30}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "*apitypes.KeyboardKey")
	})

	t.Run("no payload", func(t *testing.T) {
		_, err := payload[apitypes.Status](&api.Request{Type: message.Status})
		assert.Error(t, err)
	})
}

func TestCode(t *testing.T) {
	tests := []struct {
		name    string
		in      int32
		want    uint16
		wantErr bool
	}{
		{name: "first", in: 1, want: 1},
		{name: "last", in: int32(evcode.KeyMax), want: evcode.KeyMax},
		{name: "zero", in: 0, wantErr: true},
		{name: "negative", in: -1, wantErr: true},
		{name: "past max", in: int32(evcode.KeyMax) + 1, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := code(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
