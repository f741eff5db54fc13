// Package ui provides the bundled host surface for the indicator.
//
// The indicator core only emits render requests (icon reference plus pixel
// size); this package is one possible host for them. It runs a system tray
// icon, rasterizes theme icon references into PNG glyphs, and forwards
// module output to the tray.
//
// A bar or shell embedding the indicator as a library supplies its own
// indicator.Sink instead and never imports this package.
package ui
