package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yllada/netbar/common"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.IconSize != 24 {
		t.Errorf("IconSize = %d, want 24", cfg.IconSize)
	}

	tests := []struct {
		key      string
		got      string
		expected string
	}{
		{"icons.wired.connected", cfg.Icons.Wired.Connected, "icon:network-wired-symbolic"},
		{"icons.wired.disconnected", cfg.Icons.Wired.Disconnected, "icon:network-wired-symbolic"},
		{"icons.wifi.disconnected", cfg.Icons.Wifi.Disconnected, "icon:network-wireless-offline-symbolic"},
		{"icons.wifi.disabled", cfg.Icons.Wifi.Disabled, "icon:network-wireless-hardware-disabled-symbolic"},
		{"icons.cellular.connected", cfg.Icons.Cellular.Connected, "icon:network-cellular-connected-symbolic"},
		{"icons.cellular.disconnected", cfg.Icons.Cellular.Disconnected, "icon:network-cellular-offline-symbolic"},
		{"icons.cellular.disabled", cfg.Icons.Cellular.Disabled, "icon:network-cellular-hardware-disabled-symbolic"},
		{"icons.vpn.connected", cfg.Icons.VPN.Connected, "icon:network-vpn-symbolic"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("%s = %q, want %q", tt.key, tt.got, tt.expected)
			}
		})
	}

	if len(cfg.Icons.Wifi.Levels) != 5 {
		t.Fatalf("wifi levels = %d, want 5-step signal icon set", len(cfg.Icons.Wifi.Levels))
	}
	if cfg.Icons.Wifi.Levels[0] != "icon:network-wireless-signal-none-symbolic" {
		t.Errorf("first level = %q, want signal-none (worst first)", cfg.Icons.Wifi.Levels[0])
	}
	if cfg.Icons.Wifi.Levels[4] != "icon:network-wireless-signal-excellent-symbolic" {
		t.Errorf("last level = %q, want signal-excellent (best last)", cfg.Icons.Wifi.Levels[4])
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.IconSize != 24 {
		t.Errorf("IconSize = %d, want default 24", cfg.IconSize)
	}
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
icon_size: 32
icons:
  wifi:
    disconnected: "icon:custom-offline"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.IconSize != 32 {
		t.Errorf("IconSize = %d, want 32", cfg.IconSize)
	}
	if cfg.Icons.Wifi.Disconnected != "icon:custom-offline" {
		t.Errorf("wifi.disconnected = %q, want overridden value", cfg.Icons.Wifi.Disconnected)
	}

	// Untouched keys keep their defaults.
	if cfg.Icons.Wifi.Disabled != "icon:network-wireless-hardware-disabled-symbolic" {
		t.Errorf("wifi.disabled = %q, want default", cfg.Icons.Wifi.Disabled)
	}
	if len(cfg.Icons.Wifi.Levels) != 5 {
		t.Errorf("wifi levels = %d, want default 5", len(cfg.Icons.Wifi.Levels))
	}
}

func TestLoad_RejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, `
icon_size: 24
refresh_interval: 5
`)

	if _, err := Load(path); err == nil {
		t.Error("Load() should reject unknown fields")
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		sentinel error
	}{
		{
			name:     "negative icon size",
			yaml:     "icon_size: -3",
			sentinel: common.ErrInvalidIconSize,
		},
		{
			name:     "empty icon reference",
			yaml:     "icons:\n  vpn:\n    connected: \"\"",
			sentinel: common.ErrInvalidIconRef,
		},
		{
			name:     "bare icon prefix",
			yaml:     "icons:\n  wired:\n    connected: \"icon:\"",
			sentinel: common.ErrInvalidIconRef,
		},
		{
			name:     "empty levels",
			yaml:     "icons:\n  wifi:\n    levels: []",
			sentinel: common.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.yaml))
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("Load() error = %v, want %v", err, tt.sentinel)
			}
		})
	}
}

func TestValidate_LiteralPathReference(t *testing.T) {
	cfg := Default()
	cfg.Icons.VPN.Connected = "/usr/share/icons/custom/vpn.png"

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() should accept literal paths, got %v", err)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}
