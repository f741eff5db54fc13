// Package config provides the indicator module configuration.
// It handles loading, defaulting, and validating the icon tables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yllada/netbar/common"
)

// Module is the configuration for one indicator module instance.
// It is immutable after loading: the render loop reads it for its whole
// lifetime and a change requires a module restart.
type Module struct {
	// IconSize is the rendered icon size in pixels.
	IconSize int `yaml:"icon_size"`
	// Icons holds the per-kind icon reference tables.
	Icons Icons `yaml:"icons"`
}

// Icons groups the icon references by connection kind.
type Icons struct {
	Wired    WiredIcons    `yaml:"wired"`
	Wifi     WifiIcons     `yaml:"wifi"`
	Cellular CellularIcons `yaml:"cellular"`
	VPN      VPNIcons      `yaml:"vpn"`
}

// WiredIcons are the icon references for wired connections.
// Wired has no hardware-disabled variant.
type WiredIcons struct {
	Connected    string `yaml:"connected"`
	Disconnected string `yaml:"disconnected"`
}

// WifiIcons are the icon references for wireless connections.
// Levels is ordered worst to best signal.
type WifiIcons struct {
	Levels       []string `yaml:"levels"`
	Disconnected string   `yaml:"disconnected"`
	Disabled     string   `yaml:"disabled"`
}

// CellularIcons are the icon references for cellular connections.
type CellularIcons struct {
	Connected    string `yaml:"connected"`
	Disconnected string `yaml:"disconnected"`
	Disabled     string `yaml:"disabled"`
}

// VPNIcons are the icon references for VPN connections.
// VPN has no signal-level or disabled concept.
type VPNIcons struct {
	Connected string `yaml:"connected"`
}

// Default returns the module configuration with every key at its
// documented default.
func Default() *Module {
	return &Module{
		IconSize: common.DefaultIconSize,
		Icons: Icons{
			Wired: WiredIcons{
				Connected:    "icon:network-wired-symbolic",
				Disconnected: "icon:network-wired-symbolic",
			},
			Wifi: WifiIcons{
				Levels: []string{
					"icon:network-wireless-signal-none-symbolic",
					"icon:network-wireless-signal-weak-symbolic",
					"icon:network-wireless-signal-ok-symbolic",
					"icon:network-wireless-signal-good-symbolic",
					"icon:network-wireless-signal-excellent-symbolic",
				},
				Disconnected: "icon:network-wireless-offline-symbolic",
				Disabled:     "icon:network-wireless-hardware-disabled-symbolic",
			},
			Cellular: CellularIcons{
				Connected:    "icon:network-cellular-connected-symbolic",
				Disconnected: "icon:network-cellular-offline-symbolic",
				Disabled:     "icon:network-cellular-hardware-disabled-symbolic",
			},
			VPN: VPNIcons{
				Connected: "icon:network-vpn-symbolic",
			},
		},
	}
}

// DefaultPath returns the default configuration file location.
func DefaultPath() (string, error) {
	configDir, err := common.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, common.ConfigFileName), nil
}

// Load loads the module configuration from the given file.
// A missing file yields the defaults. Present keys overlay the defaults,
// and the result is validated before being returned.
func Load(path string) (*Module, error) {
	cfg := Default()

	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, common.WrapError(err, "opening configuration")
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true) // strict validation: reject unknown fields

	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrConfigLoad, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate verifies that configuration values are usable.
// A failure here aborts construction of the module that owns this
// configuration, not the whole process.
func (c *Module) Validate() error {
	if c.IconSize <= 0 {
		return fmt.Errorf("%w: icon_size must be positive, got %d",
			common.ErrInvalidIconSize, c.IconSize)
	}

	refs := map[string]string{
		"icons.wired.connected":       c.Icons.Wired.Connected,
		"icons.wired.disconnected":    c.Icons.Wired.Disconnected,
		"icons.wifi.disconnected":     c.Icons.Wifi.Disconnected,
		"icons.wifi.disabled":         c.Icons.Wifi.Disabled,
		"icons.cellular.connected":    c.Icons.Cellular.Connected,
		"icons.cellular.disconnected": c.Icons.Cellular.Disconnected,
		"icons.cellular.disabled":     c.Icons.Cellular.Disabled,
		"icons.vpn.connected":         c.Icons.VPN.Connected,
	}
	for key, ref := range refs {
		if err := validateIconRef(ref); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}

	if len(c.Icons.Wifi.Levels) == 0 {
		return fmt.Errorf("%w: icons.wifi.levels must not be empty",
			common.ErrInvalidConfig)
	}
	for i, ref := range c.Icons.Wifi.Levels {
		if err := validateIconRef(ref); err != nil {
			return fmt.Errorf("icons.wifi.levels[%d]: %w", i, err)
		}
	}

	return nil
}

// validateIconRef checks a single icon reference: either a theme icon name
// prefixed "icon:", or a literal path. Resolving the reference to pixels is
// the host bar's job.
func validateIconRef(ref string) error {
	if ref == "" {
		return fmt.Errorf("%w: empty reference", common.ErrInvalidIconRef)
	}
	if strings.HasPrefix(ref, "icon:") && len(ref) == len("icon:") {
		return fmt.Errorf("%w: %q has no icon name", common.ErrInvalidIconRef, ref)
	}
	return nil
}
