// Package ui provides the bundled tray surface for the indicator.
// This file contains the system tray host.
package ui

import (
	"context"
	"strings"
	"sync"

	"fyne.io/systray"

	"github.com/yllada/netbar/common"
	"github.com/yllada/netbar/indicator"
)

// TrayHost runs one indicator module behind a system tray icon. It
// implements indicator.Sink: render updates become the tray icon, tooltip,
// and status menu entry.
type TrayHost struct {
	renderer *IconRenderer

	mu         sync.Mutex
	ready      bool
	pending    *indicator.RenderRequest
	statusItem *systray.MenuItem

	module *indicator.Module
	runCtx context.Context
}

// NewTrayHost creates a tray host with the default palette.
func NewTrayHost() *TrayHost {
	return &TrayHost{
		renderer: NewIconRenderer(DefaultPalette()),
	}
}

// Render implements indicator.Sink. Updates arriving before the tray is
// ready are held and applied once it is; only the newest one matters.
func (t *TrayHost) Render(req indicator.RenderRequest) {
	t.mu.Lock()
	if !t.ready {
		held := req
		t.pending = &held
		t.mu.Unlock()
		return
	}
	status := t.statusItem
	t.mu.Unlock()

	t.apply(req, status)
}

// Run starts the tray and the module's render loop. It blocks until the
// context is cancelled or the user quits from the tray menu. This must be
// called from the main goroutine.
func (t *TrayHost) Run(ctx context.Context, module *indicator.Module) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	t.module = module
	t.runCtx = runCtx

	go func() {
		<-runCtx.Done()
		systray.Quit()
	}()

	systray.Run(t.onReady, t.onExit)
}

// onReady is called when the systray is ready.
func (t *TrayHost) onReady() {
	systray.SetTitle(common.AppName)
	systray.SetTooltip(common.AppName)

	statusItem := systray.AddMenuItem("Checking connection...", "Current connection state")
	statusItem.Disable()

	systray.AddSeparator()

	quitItem := systray.AddMenuItem("Quit", "Close "+common.AppName)
	go func() {
		for range quitItem.ClickedCh {
			systray.Quit()
		}
	}()

	t.mu.Lock()
	t.ready = true
	t.statusItem = statusItem
	held := t.pending
	t.pending = nil
	t.mu.Unlock()

	if held != nil {
		t.apply(*held, statusItem)
	}

	go func() {
		if err := t.module.Run(t.runCtx); err != nil {
			common.LogError("Tray host: indicator loop failed: %v", err)
		}
	}()
}

// onExit is called when the systray is about to exit.
func (t *TrayHost) onExit() {
	common.LogInfo("Tray host shut down")
}

// apply pushes one render update to the tray surfaces.
func (t *TrayHost) apply(req indicator.RenderRequest, status *systray.MenuItem) {
	systray.SetIcon(t.renderer.Render(req.Icon, req.Size))

	label := strings.TrimPrefix(req.Icon, "icon:")
	systray.SetTooltip(common.AppName + " - " + label)
	if status != nil {
		status.SetTitle(label)
	}
}
