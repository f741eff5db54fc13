// Package indicator contains the connection-state indicator module.
// This file contains the Module render loop tying the adapter, arbiter,
// and resolver together.
package indicator

import (
	"context"

	"github.com/google/uuid"

	"github.com/yllada/netbar/common"
	"github.com/yllada/netbar/config"
	"github.com/yllada/netbar/netmanager"
)

// RenderRequest is one render update sent to the host bar. The host is
// responsible for resolving Icon (a theme icon name prefixed "icon:", or a
// literal path) to pixels at Size. ContainerClass and IconClass are the
// stylesheet hooks a bar surface applies to the module's elements; hosts
// without styling (such as the tray) ignore them.
type RenderRequest struct {
	Icon           string
	Size           int
	ContainerClass string
	IconClass      string
}

// Sink consumes render updates from a module. Implementations belong to
// the host bar.
type Sink interface {
	// Render applies one render update.
	Render(RenderRequest)
}

// Source is the adapter surface the module consumes.
// *netmanager.Client satisfies it.
type Source interface {
	// Snapshot returns the current set of known connections.
	Snapshot() netmanager.Snapshot
	// Events returns the change notification channel.
	Events() <-chan netmanager.Event
}

// Module is one indicator module instance: it owns its configuration, its
// adapter subscription, and its last-rendered state. No state is shared
// between module instances.
type Module struct {
	id     string
	cfg    *config.Module
	source Source
	sink   Sink

	// onChange is invoked after each emitted render, outside any lock.
	onChange func(PrimaryState, string)

	rendered bool
	lastIcon string
	lastID   string
}

// New creates an indicator module. The configuration is validated here:
// an invalid configuration fails this module's construction without
// affecting any other module in the host process.
func New(cfg *config.Module, source Source, sink Sink) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, common.WrapError(err, "indicator module")
	}
	return &Module{
		id:     uuid.NewString(),
		cfg:    cfg,
		source: source,
		sink:   sink,
	}, nil
}

// ID returns the module instance identifier.
func (m *Module) ID() string {
	return m.id
}

// SetOnChange sets a callback invoked with the arbitrated state and
// resolved icon each time a render is emitted. Must be called before Run.
func (m *Module) SetOnChange(fn func(state PrimaryState, icon string)) {
	m.onChange = fn
}

// Run performs one immediate arbitration and render, then re-runs the
// cycle on every adapter event until the context is cancelled. It returns
// nil on clean shutdown; no render is guaranteed delivered after shutdown
// begins.
func (m *Module) Run(ctx context.Context) error {
	common.LogInfo("indicator %s: starting", m.id)
	m.cycle()

	for {
		select {
		case <-ctx.Done():
			common.LogInfo("indicator %s: stopping", m.id)
			return nil
		case _, ok := <-m.source.Events():
			if !ok {
				common.LogInfo("indicator %s: event stream closed", m.id)
				return nil
			}
			m.cycle()
		}
	}
}

// cycle recomputes the displayed connection and emits a render update if
// the resolved icon or the connection identity changed since the last
// emission.
func (m *Module) cycle() {
	snap := m.source.Snapshot()
	state := Arbitrate(snap)
	icon := ResolveIcon(state, m.cfg)

	if m.rendered && icon == m.lastIcon && state.ID() == m.lastID {
		return
	}
	m.rendered = true
	m.lastIcon = icon
	m.lastID = state.ID()

	common.LogDebug("indicator %s: rendering %s for %q", m.id, icon, m.lastID)
	m.sink.Render(RenderRequest{
		Icon:           icon,
		Size:           m.cfg.IconSize,
		ContainerClass: common.ContainerClass,
		IconClass:      common.IconClass,
	})

	if m.onChange != nil {
		m.onChange(state, icon)
	}
}
