package history

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/yllada/netbar/common"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_RecordAndRecent(t *testing.T) {
	store := openTestStore(t)

	base := time.Now().Add(-time.Hour).Truncate(time.Second)
	entries := []Entry{
		{At: base, Kind: "Wired", ConnectionID: "/ac/eth", Icon: "icon:network-wired-symbolic"},
		{At: base.Add(time.Minute), Kind: "Wifi", ConnectionID: "/ac/wifi", Icon: "icon:network-wireless-signal-good-symbolic"},
		{At: base.Add(2 * time.Minute), Kind: "VPN", ConnectionID: "/ac/vpn", Icon: "icon:network-vpn-symbolic"},
	}
	for _, entry := range entries {
		if err := store.Record(entry); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	recent, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}

	if len(recent) != 3 {
		t.Fatalf("got %d entries, want 3", len(recent))
	}

	// Newest first.
	if recent[0].Kind != "VPN" || recent[2].Kind != "Wired" {
		t.Errorf("unexpected order: %v, %v, %v", recent[0].Kind, recent[1].Kind, recent[2].Kind)
	}

	if !recent[2].At.Equal(base) {
		t.Errorf("At = %v, want %v", recent[2].At, base)
	}
	if recent[0].ConnectionID != "/ac/vpn" {
		t.Errorf("ConnectionID = %q, want /ac/vpn", recent[0].ConnectionID)
	}
}

func TestStore_RecentLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		entry := Entry{
			At:   time.Now().Add(time.Duration(i) * time.Second),
			Kind: "Wifi",
			Icon: "icon:network-wireless-signal-ok-symbolic",
		}
		if err := store.Record(entry); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	recent, err := store.Recent(2)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(recent) != 2 {
		t.Errorf("got %d entries, want 2", len(recent))
	}
}

func TestStore_RecordDefaultsTimestamp(t *testing.T) {
	store := openTestStore(t)

	if err := store.Record(Entry{Kind: "none", Icon: "icon:network-wireless-offline-symbolic"}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	recent, err := store.Recent(1)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("got %d entries, want 1", len(recent))
	}
	if recent[0].At.IsZero() {
		t.Error("Record() should default a zero timestamp to now")
	}
}

func TestStore_Prune(t *testing.T) {
	store := openTestStore(t)

	old := Entry{At: time.Now().Add(-48 * time.Hour), Kind: "Wired", Icon: "icon:network-wired-symbolic"}
	fresh := Entry{At: time.Now(), Kind: "Wifi", Icon: "icon:network-wireless-signal-ok-symbolic"}
	for _, entry := range []Entry{old, fresh} {
		if err := store.Record(entry); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	removed, err := store.Prune(time.Now().Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("Prune() removed %d, want 1", removed)
	}

	recent, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(recent) != 1 || recent[0].Kind != "Wifi" {
		t.Errorf("remaining entries = %+v, want only the fresh one", recent)
	}
}

func TestStore_ClosedRejectsOperations(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if err := store.Record(Entry{Kind: "Wifi"}); !errors.Is(err, common.ErrClosed) {
		t.Errorf("Record() after close error = %v, want ErrClosed", err)
	}
	if _, err := store.Recent(1); !errors.Is(err, common.ErrClosed) {
		t.Errorf("Recent() after close error = %v, want ErrClosed", err)
	}
	if _, err := store.Prune(time.Now()); !errors.Is(err, common.ErrClosed) {
		t.Errorf("Prune() after close error = %v, want ErrClosed", err)
	}
}
