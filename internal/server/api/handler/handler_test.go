package handler_test

import (
	"testing"
	"time"

	"github.com/lundmar/input-emulator/internal/device"
	"github.com/lundmar/input-emulator/internal/evcode"
	"github.com/lundmar/input-emulator/internal/server/api"
	"github.com/lundmar/input-emulator/internal/server/api/handler"
	handlerTest "github.com/lundmar/input-emulator/internal/testing"
	"github.com/lundmar/input-emulator/pkg/apiclient"
)

// startServer runs a server with every handler installed.
func startServer(t *testing.T) (*handlerTest.TestServer, *apiclient.Client) {
	t.Helper()
	ts := handlerTest.StartAPIServer(t, func(r *api.Router, reg *device.Registry) {
		handler.RegisterAll(r, reg)
	})
	return ts, apiclient.New(ts.Addr)
}

func emit(typ, code uint16, value int32) handlerTest.Record {
	return handlerTest.Record{Op: "emit", Type: typ, Code: code, Value: value}
}

func sleep(d time.Duration) handlerTest.Record {
	return handlerTest.Record{Op: "sleep", Delay: d}
}

var syn = emit(evcode.EvSyn, evcode.SynReport, 0)

// events returns the emit and sleep records with the sysname cleared.
func events(d *handlerTest.FakeDriver) []handlerTest.Record {
	recs := d.Ops("emit", "sleep")
	for i := range recs {
		recs[i].Sysname = ""
	}
	return recs
}
