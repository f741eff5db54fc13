// Package common provides shared constants, types, and utilities
// used across NetBar.
package common

import "time"

// Application metadata.
const (
	// AppID is the unique identifier for the application.
	AppID = "com.netbar.app"
	// AppName is the display name of the application.
	AppName = "NetBar"
	// ConfigDirName is the name of the configuration directory.
	ConfigDirName = "netbar"
)

// File names used by the application.
const (
	ConfigFileName  = "config.yaml"
	HistoryFileName = "history.db"
	LogFileName     = "netbar.log"
)

// Default timeouts and intervals.
const (
	// BusCallTimeout is the maximum time to wait for a single D-Bus call.
	BusCallTimeout = 5 * time.Second
	// ResubscribeDelay is the initial delay before reconnecting to the
	// network-management service after it becomes unreachable.
	ResubscribeDelay = 1 * time.Second
	// ResubscribeMaxDelay caps the reconnect backoff.
	ResubscribeMaxDelay = 30 * time.Second
)

// UI constants.
const (
	// DefaultIconSize is the icon size in pixels when the module
	// configuration does not set one.
	DefaultIconSize = 24
	// TrayIconSize is the size of the system tray icon.
	TrayIconSize = 22
)

// Stylesheet hooks exposed to the host bar.
const (
	// ContainerClass is the CSS class applied to the module root element.
	ContainerClass = "networkmanager"
	// IconClass is the CSS class applied to the module icon element.
	IconClass = "icon"
)
