// Package indicator contains the connection-state indicator module.
// This file contains primary-connection arbitration.
package indicator

import "github.com/yllada/netbar/netmanager"

// PrimaryState is the arbitration result: at most one displayed
// connection, or none. It is a read-only projection of one snapshot,
// recomputed on every input change and never a source of truth.
type PrimaryState struct {
	Connection netmanager.Connection
	Present    bool
}

// ID returns the displayed connection's identity, or "" when none.
func (s PrimaryState) ID() string {
	if !s.Present {
		return ""
	}
	return s.Connection.ID
}

// kindPrecedence orders kinds for the local fallback policy.
// Lower is higher priority. VPN and wifi rank first because they are
// most often layered on top of other connections.
func kindPrecedence(k netmanager.Kind) int {
	switch k {
	case netmanager.KindVPN:
		return 0
	case netmanager.KindWifi:
		return 1
	case netmanager.KindWired:
		return 2
	case netmanager.KindCellular:
		return 3
	default:
		return 4
	}
}

// Arbitrate reduces a snapshot to the single displayed connection.
//
// When the service designates a primary connection and that connection is
// active, it wins: the arbiter does not re-rank what the service already
// ranked. Otherwise the local precedence VPN > Wifi > Wired > Cellular >
// Other picks among the active connections, and within one kind the first
// connection in service-reported order wins.
//
// With no active connection at all, the arbiter still picks a
// representative inactive device-backed record by the same precedence, so
// the resolver knows which kind's disconnected or disabled icon applies.
// An empty snapshot arbitrates to none.
func Arbitrate(snap netmanager.Snapshot) PrimaryState {
	if snap.PrimaryID != "" {
		for _, conn := range snap.Connections {
			if conn.ID == snap.PrimaryID && conn.Active {
				return PrimaryState{Connection: conn, Present: true}
			}
		}
	}

	if best, ok := pick(snap.Connections, true); ok {
		return PrimaryState{Connection: best, Present: true}
	}
	if best, ok := pick(snap.Connections, false); ok {
		return PrimaryState{Connection: best, Present: true}
	}
	return PrimaryState{}
}

// pick selects the highest-precedence connection matching the wanted
// activity, keeping the earliest on ties.
func pick(conns []netmanager.Connection, active bool) (netmanager.Connection, bool) {
	best := -1
	for i, conn := range conns {
		if conn.Active != active {
			continue
		}
		if best == -1 || kindPrecedence(conn.Kind) < kindPrecedence(conns[best].Kind) {
			best = i
		}
	}
	if best == -1 {
		return netmanager.Connection{}, false
	}
	return conns[best], true
}
