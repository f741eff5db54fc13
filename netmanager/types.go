// Package netmanager wraps the NetworkManager D-Bus service.
// This file contains the connection data model shared with consumers.
package netmanager

// Kind classifies a connection by its transport.
type Kind int

const (
	KindWired Kind = iota
	KindWifi
	KindCellular
	KindVPN
	KindOther
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindWired:
		return "Wired"
	case KindWifi:
		return "Wifi"
	case KindCellular:
		return "Cellular"
	case KindVPN:
		return "VPN"
	case KindOther:
		return "Other"
	default:
		return "Unknown"
	}
}

// Connection is one known connection or connection-capable device.
//
// Active connections carry the object path of the NetworkManager active
// connection as their ID. Kinds with a device but no active connection are
// represented by an inactive record whose ID is the device path, so that
// consumers can still tell a disabled device from a missing one.
//
// Enabled is a device-level flag and is distinct from Active: a device can
// be disabled at the hardware or software level independent of whether any
// connection is active on it.
type Connection struct {
	// ID is the D-Bus object path identifying this connection.
	ID string
	// Kind is the connection transport.
	Kind Kind
	// Active reports whether the connection is currently activated.
	Active bool
	// Enabled reports whether the backing device is enabled.
	Enabled bool
	// Strength is the wireless signal strength from 0 to 100.
	// Only meaningful for KindWifi.
	Strength uint8
}

// Snapshot is a point-in-time view of all known connections.
//
// Connections preserves the service-reported order: active connections
// first, as listed by the service, followed by inactive device-backed
// records. PrimaryID is the service's own "primary connection" designation,
// empty when the service reports none.
//
// A zero Snapshot is what consumers see while the service is unreachable.
type Snapshot struct {
	PrimaryID   string
	Connections []Connection
}

// Event signals that the set of known connections may have changed.
// Events are level-triggered and carry no payload: receivers call
// Snapshot to observe the current state.
type Event struct{}
