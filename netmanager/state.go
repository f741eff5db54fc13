// Package netmanager wraps the NetworkManager D-Bus service.
// This file contains the pure mapping from raw service-reported values
// to the connection data model.
package netmanager

// NetworkManager device types (NMDeviceType).
const (
	nmDeviceTypeEthernet uint32 = 1
	nmDeviceTypeWifi     uint32 = 2
	nmDeviceTypeModem    uint32 = 8
)

// NetworkManager device states (NMDeviceState).
const (
	nmDeviceStateUnmanaged    uint32 = 10
	nmDeviceStateUnavailable  uint32 = 20
	nmDeviceStateDisconnected uint32 = 30
	nmDeviceStateActivated    uint32 = 100
)

// kindForDeviceType maps a NetworkManager device type to a Kind.
// Device types this module does not display map to KindOther.
func kindForDeviceType(devType uint32) Kind {
	switch devType {
	case nmDeviceTypeEthernet:
		return KindWired
	case nmDeviceTypeWifi:
		return KindWifi
	case nmDeviceTypeModem:
		return KindCellular
	default:
		return KindOther
	}
}

// kindForConnectionType maps a NetworkManager connection type string,
// as reported on active connections, to a Kind.
func kindForConnectionType(connType string) Kind {
	switch connType {
	case "vpn", "wireguard":
		return KindVPN
	case "802-3-ethernet":
		return KindWired
	case "802-11-wireless":
		return KindWifi
	case "gsm", "cdma":
		return KindCellular
	default:
		return KindOther
	}
}

// deviceEnabled reports whether a device in the given state is usable.
// Unmanaged and unavailable devices count as disabled.
func deviceEnabled(state uint32) bool {
	return state >= nmDeviceStateDisconnected
}

// deviceActivated reports whether a device has a fully activated connection.
func deviceActivated(state uint32) bool {
	return state == nmDeviceStateActivated
}

// deviceInfo is the raw state queried for one device.
type deviceInfo struct {
	path     string
	devType  uint32
	state    uint32
	strength uint8 // wifi only, from the active access point
}

// activeInfo is the raw state queried for one active connection.
type activeInfo struct {
	path     string
	connType string
}

// assembleSnapshot builds a Snapshot from raw service-reported state.
//
// Active connections come first, in service order. Each non-VPN kind with a
// device but no active connection contributes one inactive record, so the
// arbiter can still pick a representative kind when nothing is connected.
func assembleSnapshot(primary string, actives []activeInfo, devices []deviceInfo) Snapshot {
	snap := Snapshot{PrimaryID: primary}

	activeKinds := make(map[Kind]bool)
	for _, ac := range actives {
		kind := kindForConnectionType(ac.connType)
		conn := Connection{
			ID:      ac.path,
			Kind:    kind,
			Active:  true,
			Enabled: true,
		}
		if kind == KindWifi {
			conn.Strength = wifiStrength(devices)
		}
		snap.Connections = append(snap.Connections, conn)
		activeKinds[kind] = true
	}

	seenKinds := make(map[Kind]bool)
	for _, dev := range devices {
		kind := kindForDeviceType(dev.devType)
		if kind == KindOther || activeKinds[kind] || seenKinds[kind] {
			continue
		}
		seenKinds[kind] = true
		snap.Connections = append(snap.Connections, Connection{
			ID:      dev.path,
			Kind:    kind,
			Active:  false,
			Enabled: deviceEnabled(dev.state),
		})
	}

	return snap
}

// wifiStrength returns the signal strength of the first activated wifi
// device, or 0 when none is available.
func wifiStrength(devices []deviceInfo) uint8 {
	for _, dev := range devices {
		if kindForDeviceType(dev.devType) == KindWifi && deviceActivated(dev.state) {
			return dev.strength
		}
	}
	return 0
}
