// Package testing holds helpers shared by the server and handler tests.
package testing

import (
	"fmt"
	"sync"
	"time"

	"github.com/lundmar/input-emulator/internal/device"
)

// Record is one call observed by FakeDriver, in call order.
type Record struct {
	Op      string // create, emit, sleep or destroy
	Sysname string
	Type    uint16
	Code    uint16
	Value   int32
	Delay   time.Duration
	Caps    device.Capabilities
}

// FakeDriver implements device.Driver in memory and records every call,
// including sleeps when its Sleep method is passed in device.Options.
type FakeDriver struct {
	mu      sync.Mutex
	records []Record
	next    int

	CreateErr  error
	EmitErr    error
	DestroyErr error
}

func NewFakeDriver() *FakeDriver {
	return &FakeDriver{next: 10}
}

func (d *FakeDriver) Create(caps device.Capabilities) (device.Handle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.CreateErr != nil {
		return nil, d.CreateErr
	}
	h := &fakeHandle{d: d, sysname: fmt.Sprintf("input%d", d.next)}
	d.next++
	d.records = append(d.records, Record{Op: "create", Sysname: h.sysname, Caps: caps})
	return h, nil
}

func (d *FakeDriver) Sleep(delay time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.records = append(d.records, Record{Op: "sleep", Delay: delay})
}

// Records returns a copy of everything recorded so far.
func (d *FakeDriver) Records() []Record {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Record(nil), d.records...)
}

// Ops returns the records with Op in ops, all records when ops is empty.
func (d *FakeDriver) Ops(ops ...string) []Record {
	var out []Record
	for _, r := range d.Records() {
		if len(ops) == 0 {
			out = append(out, r)
			continue
		}
		for _, op := range ops {
			if r.Op == op {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// FailCreate makes later Create calls fail with err. It is safe to call
// while a server is using the driver.
func (d *FakeDriver) FailCreate(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.CreateErr = err
}

// FailEmit makes later Emit calls fail with err.
func (d *FakeDriver) FailEmit(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.EmitErr = err
}

// FailDestroy makes later handle Destroy calls fail with err.
func (d *FakeDriver) FailDestroy(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.DestroyErr = err
}

func (d *FakeDriver) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.records = nil
}

type fakeHandle struct {
	d         *FakeDriver
	sysname   string
	destroyed bool
}

func (h *fakeHandle) Emit(typ, code uint16, value int32) error {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	if h.destroyed {
		return fmt.Errorf("%s: emit after destroy", h.sysname)
	}
	if h.d.EmitErr != nil {
		return h.d.EmitErr
	}
	h.d.records = append(h.d.records, Record{Op: "emit", Sysname: h.sysname, Type: typ, Code: code, Value: value})
	return nil
}

func (h *fakeHandle) Sysname() string { return h.sysname }

func (h *fakeHandle) Destroy() error {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	if h.destroyed {
		return fmt.Errorf("%s: destroyed twice", h.sysname)
	}
	h.destroyed = true
	h.d.records = append(h.d.records, Record{Op: "destroy", Sysname: h.sysname})
	return h.d.DestroyErr
}
