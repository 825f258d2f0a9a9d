package uinput

import (
	"log/slog"
	"strings"
	"time"

	"github.com/pilebones/go-udev/netlink"
)

// settleWatch listens for udev announcing the event node of a freshly
// created device. It must be started before UI_DEV_CREATE so the add event
// cannot be missed.
type settleWatch struct {
	conn   *netlink.UEventConn
	queue  chan netlink.UEvent
	errs   chan error
	quit   chan struct{}
	logger *slog.Logger
}

// startSettleWatch returns nil when the udev netlink socket is unavailable,
// e.g. inside a container without udevd.
func startSettleWatch(logger *slog.Logger) *settleWatch {
	conn := new(netlink.UEventConn)
	if err := conn.Connect(netlink.UdevEvent); err != nil {
		logger.Debug("udev netlink unavailable, falling back to fixed settle delay", "error", err)
		return nil
	}

	action := "add"
	rules := &netlink.RuleDefinitions{}
	rules.AddRule(netlink.RuleDefinition{
		Action: &action,
		Env: map[string]string{
			"SUBSYSTEM": "input",
		},
	})

	w := &settleWatch{
		conn:   conn,
		queue:  make(chan netlink.UEvent, 16),
		errs:   make(chan error, 4),
		logger: logger,
	}
	w.quit = conn.Monitor(w.queue, w.errs, rules)
	return w
}

// wait blocks until udev reports a device node below the sysfs directory of
// sysname, or timeout passes.
func (w *settleWatch) wait(sysname string, timeout time.Duration) bool {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for {
		select {
		case ev := <-w.queue:
			if matchesNode(ev, sysname) {
				w.logger.Debug("device node ready", "sysname", sysname, "devname", ev.Env["DEVNAME"])
				return true
			}
		case err := <-w.errs:
			w.logger.Debug("udev monitor error", "error", err)
		case <-timer.C:
			return false
		}
	}
}

// close stops the monitor. Its goroutine sends unconditionally into queue
// and errs, so both are drained until it reports the read failure it exits
// on, bounded by monitorDrainLimit.
func (w *settleWatch) close() {
	close(w.quit)
	_ = w.conn.Close()
	go drainMonitor(w.queue, w.errs, monitorDrainLimit)
}

const monitorDrainLimit = 5 * time.Second

func drainMonitor(queue <-chan netlink.UEvent, errs <-chan error, limit time.Duration) {
	timer := time.NewTimer(limit)
	defer timer.Stop()
	for {
		select {
		case <-queue:
		case err := <-errs:
			// parse failures are skipped by the monitor; anything else ends it
			if !strings.HasPrefix(err.Error(), "unable to parse") {
				return
			}
		case <-timer.C:
			return
		}
	}
}

func matchesNode(ev netlink.UEvent, sysname string) bool {
	if sysname == "" || ev.Env["DEVNAME"] == "" {
		return false
	}
	return strings.HasPrefix(ev.Env["DEVPATH"], "/devices/virtual/input/"+sysname+"/")
}
