package handler

import (
	"log/slog"
	"time"

	"github.com/lundmar/input-emulator/internal/device"
	"github.com/lundmar/input-emulator/internal/server/api"
	"github.com/lundmar/input-emulator/pkg/apitypes"
)

func TouchStart(reg *device.Registry) api.HandlerFunc {
	return func(req *api.Request, _ *api.Response, _ *slog.Logger) error {
		p, err := payload[apitypes.TouchStart](req)
		if err != nil {
			return err
		}
		_, err = reg.Touch.Create(device.TouchConfig{XMax: p.XMax, YMax: p.YMax, Slots: p.Slots})
		return err
	}
}

// TouchTap returns a handler that taps once at the requested position.
func TouchTap(reg *device.Registry) api.HandlerFunc {
	return func(req *api.Request, _ *api.Response, _ *slog.Logger) error {
		p, err := payload[apitypes.TouchTap](req)
		if err != nil {
			return err
		}
		return reg.Touch.Tap(p.X, p.Y, time.Duration(p.DurationMs)*time.Millisecond)
	}
}
