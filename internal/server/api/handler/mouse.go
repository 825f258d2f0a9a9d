package handler

import (
	"log/slog"

	"github.com/lundmar/input-emulator/internal/device"
	"github.com/lundmar/input-emulator/internal/server/api"
	"github.com/lundmar/input-emulator/pkg/apitypes"
)

func MouseStart(reg *device.Registry) api.HandlerFunc {
	return func(req *api.Request, _ *api.Response, _ *slog.Logger) error {
		p, err := payload[apitypes.MouseStart](req)
		if err != nil {
			return err
		}
		_, err = reg.Mouse.Create(device.MouseConfig{XMax: p.XMax, YMax: p.YMax})
		return err
	}
}

func MouseMove(reg *device.Registry) api.HandlerFunc {
	return func(req *api.Request, _ *api.Response, _ *slog.Logger) error {
		p, err := payload[apitypes.MouseMove](req)
		if err != nil {
			return err
		}
		return reg.Mouse.Move(p.DX, p.DY)
	}
}

func MouseClick(reg *device.Registry) api.HandlerFunc {
	return func(req *api.Request, _ *api.Response, _ *slog.Logger) error {
		p, err := payload[apitypes.MouseButton](req)
		if err != nil {
			return err
		}
		btn, err := code(p.Button)
		if err != nil {
			return err
		}
		return reg.Mouse.Click(btn)
	}
}

func MouseButtonDown(reg *device.Registry) api.HandlerFunc {
	return func(req *api.Request, _ *api.Response, _ *slog.Logger) error {
		p, err := payload[apitypes.MouseButtonDown](req)
		if err != nil {
			return err
		}
		btn, err := code(p.Button)
		if err != nil {
			return err
		}
		return reg.Mouse.Press(btn)
	}
}

func MouseButtonUp(reg *device.Registry) api.HandlerFunc {
	return func(req *api.Request, _ *api.Response, _ *slog.Logger) error {
		p, err := payload[apitypes.MouseButtonUp](req)
		if err != nil {
			return err
		}
		btn, err := code(p.Button)
		if err != nil {
			return err
		}
		return reg.Mouse.Release(btn)
	}
}

func MouseScroll(reg *device.Registry) api.HandlerFunc {
	return func(req *api.Request, _ *api.Response, _ *slog.Logger) error {
		p, err := payload[apitypes.MouseScroll](req)
		if err != nil {
			return err
		}
		return reg.Mouse.Scroll(p.Ticks)
	}
}
