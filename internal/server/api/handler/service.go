package handler

import (
	"log/slog"

	"github.com/lundmar/input-emulator/internal/device"
	"github.com/lundmar/input-emulator/internal/server/api"
	"github.com/lundmar/input-emulator/pkg/apitypes"
)

// Status returns a handler that lists the online devices, one line each.
func Status(reg *device.Registry) api.HandlerFunc {
	return func(_ *api.Request, res *api.Response, _ *slog.Logger) error {
		res.StatusText(apitypes.FormatStatus(reg.Status()))
		return nil
	}
}

// Stop returns a handler that tears down the requested devices. Once no
// device is left online the server shuts down after replying.
func Stop(reg *device.Registry) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		p, err := payload[apitypes.Stop](req)
		if err != nil {
			return err
		}
		err = reg.Destroy(p.Class)
		res.Shutdown = reg.RefCount() == 0
		logger.Info("stop", "class", p.Class.String(), "refs", reg.RefCount())
		return err
	}
}
