// Package indicator contains the connection-state indicator module.
// This file contains the mapping from arbitrated state to an icon
// reference.
package indicator

import (
	"github.com/yllada/netbar/config"
	"github.com/yllada/netbar/netmanager"
)

// ResolveIcon maps the displayed connection to a configured icon
// reference. It is pure: identical inputs always yield the identical
// reference, and it performs no I/O.
//
// When no connection is displayed at all there is no kind to consult, so
// the wifi disconnected icon doubles as the global fallback; the same
// reference therefore shows while the network-management service is
// unreachable.
func ResolveIcon(state PrimaryState, cfg *config.Module) string {
	if !state.Present {
		return cfg.Icons.Wifi.Disconnected
	}

	conn := state.Connection
	switch conn.Kind {
	case netmanager.KindWired:
		// Wired has no disabled variant, so a disabled device falls
		// through to disconnected.
		if conn.Active {
			return cfg.Icons.Wired.Connected
		}
		return cfg.Icons.Wired.Disconnected

	case netmanager.KindWifi:
		if conn.Active {
			return wifiLevelIcon(conn.Strength, cfg.Icons.Wifi.Levels, cfg.Icons.Wifi.Disconnected)
		}
		if !conn.Enabled {
			return cfg.Icons.Wifi.Disabled
		}
		return cfg.Icons.Wifi.Disconnected

	case netmanager.KindCellular:
		if conn.Active {
			return cfg.Icons.Cellular.Connected
		}
		if !conn.Enabled {
			return cfg.Icons.Cellular.Disabled
		}
		return cfg.Icons.Cellular.Disconnected

	case netmanager.KindVPN:
		if conn.Active {
			return cfg.Icons.VPN.Connected
		}
		return cfg.Icons.Wifi.Disconnected

	default:
		return cfg.Icons.Wifi.Disconnected
	}
}

// wifiLevelIcon indexes the levels table by bucketed signal strength.
// The index is clamped to the table, never out of bounds.
func wifiLevelIcon(strength uint8, levels []string, fallback string) string {
	if len(levels) == 0 {
		return fallback
	}
	return levels[StrengthToLevel(strength, len(levels))]
}

// StrengthToLevel converts a signal strength percentage (0-100) to a
// level from 0 to levels-1, worst to best.
//
// The buckets follow the ones nmcli reports for five levels (0-4, 5-29,
// 30-54, 55-79, 80-100), generalized to any level count by linear
// interpolation above the bottom bucket. Out-of-range strength clamps to
// the nearest end.
func StrengthToLevel(strength uint8, levels int) int {
	if levels <= 1 {
		return 0
	}
	if strength < 5 {
		return 0
	}
	level := (int(strength)-5)*(levels-1)/100 + 1
	if level > levels-1 {
		level = levels - 1
	}
	return level
}
