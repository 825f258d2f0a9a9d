package api

import (
	"log/slog"

	"github.com/lundmar/input-emulator/pkg/apitypes"
	"github.com/lundmar/input-emulator/pkg/message"
)

// Request is a decoded request. Payload holds a pointer to the apitypes
// struct matching Type.
type Request struct {
	Type    message.Type
	Payload apitypes.Request
}

// Response is filled in by a handler. It starts out as OK.
type Response struct {
	Type message.Type
	Text string
	// Shutdown asks the server to exit once the response is sent.
	Shutdown bool
}

// StatusText turns the response into a status text reply.
func (r *Response) StatusText(text string) {
	r.Type = message.StatusText
	r.Text = text
}

// HandlerFunc handles one request. A returned error is sent to the client as
// an Error response.
type HandlerFunc func(req *Request, res *Response, logger *slog.Logger) error

// Router maps request types to handlers.
type Router struct {
	handlers map[message.Type]HandlerFunc
}

func NewRouter() *Router {
	return &Router{handlers: make(map[message.Type]HandlerFunc)}
}

// Register installs h for t, replacing any earlier handler.
func (r *Router) Register(t message.Type, h HandlerFunc) {
	r.handlers[t] = h
}

func (r *Router) Match(t message.Type) HandlerFunc {
	return r.handlers[t]
}

// Missing lists request types that have no handler.
func (r *Router) Missing() []message.Type {
	var out []message.Type
	for _, t := range apitypes.RequestTypes() {
		if _, ok := r.handlers[t]; !ok {
			out = append(out, t)
		}
	}
	return out
}
