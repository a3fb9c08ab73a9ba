package scipaper

import "testing"

func TestRegistry_RegisterNewestFirst(t *testing.T) {
	reg := newRegistry(Noop)
	first := reg.Register(BackendDescriptor{Name: "a", Capabilities: CapFill}, nil, nil, nil)
	second := reg.Register(BackendDescriptor{Name: "b", Capabilities: CapFill}, nil, nil, nil)

	if reg.entries[0].id != second || reg.entries[1].id != first {
		t.Fatalf("expected newest-registered backend first, got order %+v", reg.entries)
	}
}

func TestRegistry_SnapshotIsRegistrationOrder(t *testing.T) {
	reg := newRegistry(Noop)
	reg.Register(BackendDescriptor{Name: "a"}, nil, nil, nil)
	reg.Register(BackendDescriptor{Name: "b"}, nil, nil, nil)

	snap := reg.Snapshot()
	if len(snap) != 2 || snap[0].Name != "a" || snap[1].Name != "b" {
		t.Fatalf("expected snapshot in registration order, got %+v", snap)
	}
}

type warnCounter struct {
	Sink
	warns int
}

func (w *warnCounter) Warnf(format string, args ...any) { w.warns++ }

func TestRegistry_UnregisterRemovesAndWarnsOnUnknown(t *testing.T) {
	log := &warnCounter{Sink: Noop}
	reg := newRegistry(log)
	id := reg.Register(BackendDescriptor{Name: "a"}, nil, nil, nil)
	reg.Unregister(id)
	if reg.Count() != 0 {
		t.Fatalf("expected backend to be removed")
	}
	// Unregistering again should not panic, and should warn.
	reg.Unregister(id)
	if log.warns != 1 {
		t.Fatalf("expected one warning for the unknown id, got %d", log.warns)
	}
}

func TestRegistry_IDByName(t *testing.T) {
	reg := newRegistry(Noop)
	id := reg.Register(BackendDescriptor{Name: "crossref"}, nil, nil, nil)
	if got := reg.idByName("crossref"); got != id {
		t.Fatalf("idByName = %d, want %d", got, id)
	}
	if got := reg.idByName("missing"); got != 0 {
		t.Fatalf("idByName for unknown name = %d, want 0", got)
	}
}
