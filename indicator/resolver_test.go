package indicator

import (
	"testing"

	"github.com/yllada/netbar/config"
	"github.com/yllada/netbar/netmanager"
)

func TestResolveIcon_ActiveConnections(t *testing.T) {
	cfg := config.Default()

	tests := []struct {
		name     string
		conn     netmanager.Connection
		expected string
	}{
		{
			name:     "wired connected",
			conn:     netmanager.Connection{Kind: netmanager.KindWired, Active: true, Enabled: true},
			expected: "icon:network-wired-symbolic",
		},
		{
			name:     "cellular connected",
			conn:     netmanager.Connection{Kind: netmanager.KindCellular, Active: true, Enabled: true},
			expected: "icon:network-cellular-connected-symbolic",
		},
		{
			name:     "vpn connected",
			conn:     netmanager.Connection{Kind: netmanager.KindVPN, Active: true, Enabled: true},
			expected: "icon:network-vpn-symbolic",
		},
		{
			name:     "wifi excellent signal",
			conn:     netmanager.Connection{Kind: netmanager.KindWifi, Active: true, Enabled: true, Strength: 95},
			expected: "icon:network-wireless-signal-excellent-symbolic",
		},
		{
			name:     "wifi no signal",
			conn:     netmanager.Connection{Kind: netmanager.KindWifi, Active: true, Enabled: true, Strength: 0},
			expected: "icon:network-wireless-signal-none-symbolic",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveIcon(PrimaryState{Connection: tt.conn, Present: true}, cfg)
			if got != tt.expected {
				t.Errorf("ResolveIcon() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestResolveIcon_InactiveStates(t *testing.T) {
	cfg := config.Default()

	tests := []struct {
		name     string
		conn     netmanager.Connection
		expected string
	}{
		{
			name:     "wifi device disabled",
			conn:     netmanager.Connection{Kind: netmanager.KindWifi},
			expected: "icon:network-wireless-hardware-disabled-symbolic",
		},
		{
			name:     "wifi enabled but disconnected",
			conn:     netmanager.Connection{Kind: netmanager.KindWifi, Enabled: true},
			expected: "icon:network-wireless-offline-symbolic",
		},
		{
			name:     "cellular device disabled",
			conn:     netmanager.Connection{Kind: netmanager.KindCellular},
			expected: "icon:network-cellular-hardware-disabled-symbolic",
		},
		{
			name:     "cellular enabled but disconnected",
			conn:     netmanager.Connection{Kind: netmanager.KindCellular, Enabled: true},
			expected: "icon:network-cellular-offline-symbolic",
		},
		{
			// Wired has no disabled variant in the icon tables, so a
			// disabled device falls through to disconnected.
			name:     "wired device disabled",
			conn:     netmanager.Connection{Kind: netmanager.KindWired},
			expected: "icon:network-wired-symbolic",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveIcon(PrimaryState{Connection: tt.conn, Present: true}, cfg)
			if got != tt.expected {
				t.Errorf("ResolveIcon() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestResolveIcon_GlobalFallback(t *testing.T) {
	cfg := config.Default()

	got := ResolveIcon(PrimaryState{}, cfg)
	if got != "icon:network-wireless-offline-symbolic" {
		t.Errorf("ResolveIcon(none) = %q, want the global fallback", got)
	}
}

func TestResolveIcon_DisabledWifiViaArbitration(t *testing.T) {
	// End to end over arbiter and resolver: zero connections, wifi device
	// disabled.
	cfg := config.Default()
	snap := netmanager.Snapshot{
		Connections: []netmanager.Connection{
			{ID: "/dev/wifi", Kind: netmanager.KindWifi},
		},
	}

	got := ResolveIcon(Arbitrate(snap), cfg)
	if got != "icon:network-wireless-hardware-disabled-symbolic" {
		t.Errorf("resolved %q, want the wifi disabled icon", got)
	}
}

func TestResolveIcon_WiredIgnoresInactiveEntries(t *testing.T) {
	cfg := config.Default()
	snap := netmanager.Snapshot{
		Connections: []netmanager.Connection{
			{ID: "/ac/eth", Kind: netmanager.KindWired, Active: true, Enabled: true},
			{ID: "/dev/wifi", Kind: netmanager.KindWifi, Enabled: true},
			{ID: "/dev/modem", Kind: netmanager.KindCellular},
		},
	}

	got := ResolveIcon(Arbitrate(snap), cfg)
	if got != "icon:network-wired-symbolic" {
		t.Errorf("resolved %q, want the wired connected icon regardless of inactive entries", got)
	}
}

func TestResolveIcon_Pure(t *testing.T) {
	cfg := config.Default()
	state := PrimaryState{
		Connection: netmanager.Connection{Kind: netmanager.KindWifi, Active: true, Strength: 64},
		Present:    true,
	}

	first := ResolveIcon(state, cfg)
	second := ResolveIcon(state, cfg)
	if first != second {
		t.Errorf("ResolveIcon() not idempotent: %q then %q", first, second)
	}
}

func TestStrengthToLevel(t *testing.T) {
	// Five-level buckets matching the ones nmcli reports.
	tests := []struct {
		strength uint8
		expected int
	}{
		{0, 0},
		{4, 0},
		{5, 1},
		{6, 1},
		{29, 1},
		{30, 2},
		{54, 2},
		{55, 3},
		{79, 3},
		{80, 4},
		{100, 4},
	}

	for _, tt := range tests {
		if got := StrengthToLevel(tt.strength, 5); got != tt.expected {
			t.Errorf("StrengthToLevel(%d, 5) = %d, want %d", tt.strength, got, tt.expected)
		}
	}
}

func TestStrengthToLevel_Clamping(t *testing.T) {
	// Out-of-range strength clamps to the last level instead of indexing
	// out of bounds.
	if got := StrengthToLevel(255, 5); got != 4 {
		t.Errorf("StrengthToLevel(255, 5) = %d, want 4", got)
	}

	// Degenerate level counts.
	if got := StrengthToLevel(80, 1); got != 0 {
		t.Errorf("StrengthToLevel(80, 1) = %d, want 0", got)
	}
	if got := StrengthToLevel(80, 0); got != 0 {
		t.Errorf("StrengthToLevel(80, 0) = %d, want 0", got)
	}

	// Every strength maps inside the table for a large level count.
	for s := 0; s <= 255; s++ {
		level := StrengthToLevel(uint8(s), 20)
		if level < 0 || level > 19 {
			t.Fatalf("StrengthToLevel(%d, 20) = %d, out of range", s, level)
		}
	}
}

func TestResolveIcon_LevelIndexNeverPanics(t *testing.T) {
	cfg := config.Default()
	cfg.Icons.Wifi.Levels = []string{"icon:only-level"}

	state := PrimaryState{
		Connection: netmanager.Connection{Kind: netmanager.KindWifi, Active: true, Strength: 200},
		Present:    true,
	}

	if got := ResolveIcon(state, cfg); got != "icon:only-level" {
		t.Errorf("ResolveIcon() = %q, want the single configured level", got)
	}
}
