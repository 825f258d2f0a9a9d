// Package handler implements one API handler per request type.
//
// Handlers are factories closing over the device registry. Error logging is
// centralized in the API server; handlers only return errors.
package handler

import (
	"fmt"

	"github.com/lundmar/input-emulator/internal/device"
	"github.com/lundmar/input-emulator/internal/evcode"
	"github.com/lundmar/input-emulator/internal/server/api"
	"github.com/lundmar/input-emulator/pkg/message"
)

// RegisterAll installs every request handler on r.
func RegisterAll(r *api.Router, reg *device.Registry) {
	r.Register(message.KeyboardStart, KeyboardStart(reg))
	r.Register(message.KeyboardKey, KeyboardKey(reg))
	r.Register(message.KeyboardKeyDown, KeyboardKeyDown(reg))
	r.Register(message.KeyboardKeyUp, KeyboardKeyUp(reg))
	r.Register(message.KeyboardType, KeyboardType(reg))
	r.Register(message.MouseStart, MouseStart(reg))
	r.Register(message.MouseMove, MouseMove(reg))
	r.Register(message.MouseButton, MouseClick(reg))
	r.Register(message.MouseButtonDown, MouseButtonDown(reg))
	r.Register(message.MouseButtonUp, MouseButtonUp(reg))
	r.Register(message.MouseScroll, MouseScroll(reg))
	r.Register(message.TouchStart, TouchStart(reg))
	r.Register(message.TouchTap, TouchTap(reg))
	r.Register(message.Status, Status(reg))
	r.Register(message.Stop, Stop(reg))
}

func payload[T any](req *api.Request) (*T, error) {
	p, ok := any(req.Payload).(*T)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected payload %T", req.Type, req.Payload)
	}
	return p, nil
}

// code checks that a key or button number from the wire fits the kernel's
// code space.
func code[N int32 | uint32](v N) (uint16, error) {
	if v <= 0 || int64(v) > int64(evcode.KeyMax) {
		return 0, fmt.Errorf("code %d out of range 1..%d", v, evcode.KeyMax)
	}
	return uint16(v), nil
}
