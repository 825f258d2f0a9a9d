package handler

import (
	"log/slog"
	"time"

	"github.com/lundmar/input-emulator/internal/device"
	"github.com/lundmar/input-emulator/internal/keymap"
	"github.com/lundmar/input-emulator/internal/server/api"
	"github.com/lundmar/input-emulator/pkg/apitypes"
)

// KeyboardStart returns a handler that brings the keyboard online.
func KeyboardStart(reg *device.Registry) api.HandlerFunc {
	return func(req *api.Request, _ *api.Response, _ *slog.Logger) error {
		p, err := payload[apitypes.KeyboardStart](req)
		if err != nil {
			return err
		}
		_, err = reg.Keyboard.Create(time.Duration(p.TypeDelayMs) * time.Millisecond)
		return err
	}
}

// KeyboardKey returns a handler that strokes one key.
func KeyboardKey(reg *device.Registry) api.HandlerFunc {
	return func(req *api.Request, _ *api.Response, _ *slog.Logger) error {
		p, err := payload[apitypes.KeyboardKey](req)
		if err != nil {
			return err
		}
		key, err := code(p.Key)
		if err != nil {
			return err
		}
		return reg.Keyboard.Stroke(key)
	}
}

func KeyboardKeyDown(reg *device.Registry) api.HandlerFunc {
	return func(req *api.Request, _ *api.Response, _ *slog.Logger) error {
		p, err := payload[apitypes.KeyboardKeyDown](req)
		if err != nil {
			return err
		}
		key, err := code(p.Key)
		if err != nil {
			return err
		}
		return reg.Keyboard.Press(key)
	}
}

func KeyboardKeyUp(reg *device.Registry) api.HandlerFunc {
	return func(req *api.Request, _ *api.Response, _ *slog.Logger) error {
		p, err := payload[apitypes.KeyboardKeyUp](req)
		if err != nil {
			return err
		}
		key, err := code(p.Key)
		if err != nil {
			return err
		}
		return reg.Keyboard.Release(key)
	}
}

// KeyboardType returns a handler that types text using the server's layout.
// Characters missing from the layout are skipped.
func KeyboardType(reg *device.Registry) api.HandlerFunc {
	return func(req *api.Request, _ *api.Response, logger *slog.Logger) error {
		p, err := payload[apitypes.KeyboardType](req)
		if err != nil {
			return err
		}
		skipped, err := reg.Keyboard.Type(keymap.Normalize(p.Text))
		if len(skipped) > 0 {
			logger.Info("typed text with unmapped characters", "skipped", string(skipped))
		}
		return err
	}
}
