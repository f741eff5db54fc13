// Package netmanager wraps the NetworkManager D-Bus service.
// This file contains the Client type which owns the bus subscription
// and produces snapshots and change events.
package netmanager

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/yllada/netbar/common"
)

// D-Bus names used by NetworkManager.
const (
	nmService = "org.freedesktop.NetworkManager"
	nmPath    = dbus.ObjectPath("/org/freedesktop/NetworkManager")

	nmIface         = "org.freedesktop.NetworkManager"
	nmDeviceIface   = "org.freedesktop.NetworkManager.Device"
	nmWirelessIface = "org.freedesktop.NetworkManager.Device.Wireless"
	nmAPIface       = "org.freedesktop.NetworkManager.AccessPoint"
	nmActiveIface   = "org.freedesktop.NetworkManager.Connection.Active"

	propsIface     = "org.freedesktop.DBus.Properties"
	dbusIface      = "org.freedesktop.DBus"
	nullObjectPath = "/"
)

// Client observes NetworkManager over the system bus.
//
// After New succeeds, Snapshot and Events are always usable: an unreachable
// service yields empty snapshots while the client probes for it in the
// background with backoff.
type Client struct {
	conn   *dbus.Conn
	sigCh  chan *dbus.Signal
	events chan Event
	done   chan struct{}

	mu         sync.Mutex
	available  bool
	recovering bool
	closeOnce  sync.Once
}

// New connects to the system bus and subscribes to NetworkManager change
// signals. It fails only when the system bus itself is unreachable; an absent
// NetworkManager service degrades to empty snapshots instead.
func New() (*Client, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, common.WrapError(err, "connecting to system bus")
	}
	return newWithConn(conn)
}

func newWithConn(conn *dbus.Conn) (*Client, error) {
	c := &Client{
		conn:      conn,
		sigCh:     make(chan *dbus.Signal, 32),
		events:    make(chan Event, 1),
		done:      make(chan struct{}),
		available: true,
	}

	matches := [][]dbus.MatchOption{
		{
			dbus.WithMatchInterface(propsIface),
			dbus.WithMatchMember("PropertiesChanged"),
			dbus.WithMatchPathNamespace(nmPath),
		},
		{
			dbus.WithMatchInterface(nmIface),
			dbus.WithMatchSender(nmService),
		},
		{
			dbus.WithMatchInterface(dbusIface),
			dbus.WithMatchMember("NameOwnerChanged"),
			dbus.WithMatchArg(0, nmService),
		},
	}
	for _, opts := range matches {
		if err := conn.AddMatchSignal(opts...); err != nil {
			return nil, common.WrapError(err, "adding signal match")
		}
	}

	conn.Signal(c.sigCh)
	go c.dispatch()

	return c, nil
}

// Events returns the change notification channel. The channel is buffered
// and coalesced: a pending notification absorbs later ones, so receivers
// always re-read Snapshot rather than counting events.
func (c *Client) Events() <-chan Event {
	return c.events
}

// Snapshot queries the service for the current set of connections.
// When the service is unreachable it returns a zero Snapshot and starts
// probing for the service in the background.
func (c *Client) Snapshot() Snapshot {
	snap, err := c.fetchSnapshot()
	if err != nil {
		common.LogWarn("netmanager: snapshot failed: %v", err)
		c.markUnavailable()
		return Snapshot{}
	}
	c.markAvailable()
	return snap
}

// Close releases the signal subscription. The shared bus connection itself
// stays open for other users in the process.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.RemoveSignal(c.sigCh)
	})
}

// dispatch forwards bus signals as coalesced events until Close.
func (c *Client) dispatch() {
	for {
		select {
		case <-c.done:
			return
		case sig := <-c.sigCh:
			if sig == nil {
				continue
			}
			if sig.Name == dbusIface+".NameOwnerChanged" {
				c.handleOwnerChange(sig)
				continue
			}
			c.notify()
		}
	}
}

// handleOwnerChange tracks the service appearing and disappearing from
// the bus. Both edges produce an event so the consumer re-renders.
func (c *Client) handleOwnerChange(sig *dbus.Signal) {
	if len(sig.Body) < 3 {
		return
	}
	newOwner, ok := sig.Body[2].(string)
	if !ok {
		return
	}

	if newOwner == "" {
		common.LogWarn("netmanager: service left the bus")
		c.markUnavailable()
	} else {
		common.LogInfo("netmanager: service appeared on the bus")
		c.markAvailable()
	}
	c.notify()
}

// notify delivers one coalesced event without blocking.
func (c *Client) notify() {
	select {
	case c.events <- Event{}:
	default:
	}
}

func (c *Client) markAvailable() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.available = true
}

// markUnavailable flips the availability flag and starts a single
// backoff probe loop for the service.
func (c *Client) markUnavailable() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.recovering {
		return
	}
	c.available = false
	c.recovering = true
	go c.recover()
}

// recover probes the service with exponential backoff until it answers,
// then emits an event so consumers refresh.
func (c *Client) recover() {
	delay := common.ResubscribeDelay
	for {
		select {
		case <-c.done:
			return
		case <-time.After(delay):
		}

		err := c.ping()
		if err == nil {
			c.mu.Lock()
			c.available = true
			c.recovering = false
			c.mu.Unlock()
			common.LogInfo("netmanager: service reachable again")
			c.notify()
			return
		}
		if errors.Is(err, common.ErrServiceAbsent) {
			common.LogDebug("netmanager: %v", err)
		}

		delay *= 2
		if delay > common.ResubscribeMaxDelay {
			delay = common.ResubscribeMaxDelay
		}
	}
}

// ping checks that the service answers on the bus. An unknown-service reply
// means NetworkManager is not installed or not activatable, as opposed to
// restarting.
func (c *Client) ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), common.BusCallTimeout)
	defer cancel()

	obj := c.conn.Object(nmService, nmPath)
	if err := obj.CallWithContext(ctx, "org.freedesktop.DBus.Peer.Ping", 0).Err; err != nil {
		var dbusErr dbus.Error
		if errors.As(err, &dbusErr) && dbusErr.Name == "org.freedesktop.DBus.Error.ServiceUnknown" {
			return fmt.Errorf("%w: %v", common.ErrServiceAbsent, err)
		}
		return fmt.Errorf("%w: %v", common.ErrServiceUnavailable, err)
	}
	return nil
}

// prop reads one property into out. Each read carries its own call timeout
// so a wedged service cannot stall a snapshot indefinitely.
func (c *Client) prop(path dbus.ObjectPath, iface, name string, out interface{}) error {
	ctx, cancel := context.WithTimeout(context.Background(), common.BusCallTimeout)
	defer cancel()

	obj := c.conn.Object(nmService, path)
	var variant dbus.Variant
	if err := obj.CallWithContext(ctx, propsIface+".Get", 0, iface, name).Store(&variant); err != nil {
		return err
	}
	return variant.Store(out)
}

// fetchSnapshot queries the full connection state from the service.
// It can fail mid-query when the topology changes underneath it; callers
// treat any failure as a degraded snapshot and wait for the next event.
func (c *Client) fetchSnapshot() (Snapshot, error) {
	var devicePaths []dbus.ObjectPath
	if err := c.prop(nmPath, nmIface, "Devices", &devicePaths); err != nil {
		return Snapshot{}, fmt.Errorf("%w: querying devices: %v", common.ErrServiceUnavailable, err)
	}

	var activePaths []dbus.ObjectPath
	if err := c.prop(nmPath, nmIface, "ActiveConnections", &activePaths); err != nil {
		return Snapshot{}, common.WrapError(err, "querying active connections")
	}

	primary := ""
	var primaryPath dbus.ObjectPath
	if err := c.prop(nmPath, nmIface, "PrimaryConnection", &primaryPath); err == nil && string(primaryPath) != nullObjectPath {
		primary = string(primaryPath)
	}

	devices := make([]deviceInfo, 0, len(devicePaths))
	for _, path := range devicePaths {
		dev, err := c.fetchDevice(path)
		if err != nil {
			return Snapshot{}, common.WrapError(err, "querying device")
		}
		devices = append(devices, dev)
	}

	actives := make([]activeInfo, 0, len(activePaths))
	for _, path := range activePaths {
		var connType string
		if err := c.prop(path, nmActiveIface, "Type", &connType); err != nil {
			return Snapshot{}, common.WrapError(err, "querying active connection")
		}
		actives = append(actives, activeInfo{path: string(path), connType: connType})
	}

	return assembleSnapshot(primary, actives, devices), nil
}

// fetchDevice reads one device's type and state, plus the access point
// strength for activated wifi devices.
func (c *Client) fetchDevice(path dbus.ObjectPath) (deviceInfo, error) {
	dev := deviceInfo{path: string(path)}

	if err := c.prop(path, nmDeviceIface, "DeviceType", &dev.devType); err != nil {
		return dev, err
	}
	if err := c.prop(path, nmDeviceIface, "State", &dev.state); err != nil {
		return dev, err
	}

	if kindForDeviceType(dev.devType) == KindWifi && deviceActivated(dev.state) {
		var apPath dbus.ObjectPath
		if err := c.prop(path, nmWirelessIface, "ActiveAccessPoint", &apPath); err == nil &&
			string(apPath) != nullObjectPath {
			// Strength can vanish with the access point mid-query.
			_ = c.prop(apPath, nmAPIface, "Strength", &dev.strength)
		}
	}

	return dev, nil
}
