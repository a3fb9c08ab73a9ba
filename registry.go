package scipaper

import "fmt"

// registry is the process-wide ordered backend collection (§4.2): a list
// of registration records plus a lazily-rebuilt descriptor snapshot for
// listing. Per §5 it is single-caller-thread by contract; it carries no
// internal mutex, matching "provide an optional mutex behind a
// compile-time flag" being left to an embedder rather than baked in here.
type registry struct {
	entries  []backendEntry
	nextID   int
	snapshot []BackendDescriptor
	dirty    bool

	log Sink
}

func newRegistry(log Sink) *registry {
	if log == nil {
		log = Noop
	}
	return &registry{nextID: 1, dirty: true, log: log}
}

// Register implements Registrar: insert at index 0 so newest-registered is
// tried first, per §4.1.
func (reg *registry) Register(desc BackendDescriptor, fill FillFunc, getText GetTextFunc, getPDF GetPDFFunc) int {
	id := reg.nextID
	reg.nextID++
	entry := backendEntry{id: id, desc: desc, fill: fill, getText: getText, getPDF: getPDF}
	reg.entries = append([]backendEntry{entry}, reg.entries...)
	reg.dirty = true
	return id
}

// Unregister removes the backend with the given id. Unknown ids are
// logged and otherwise a no-op (§4.1).
func (reg *registry) Unregister(id int) {
	for i, e := range reg.entries {
		if e.id == id {
			reg.entries = append(reg.entries[:i], reg.entries[i+1:]...)
			reg.dirty = true
			return
		}
	}
	reg.log.Warnf("scipaper: unregister of unknown backend id %d", id)
}

// Count returns the number of registered backends.
func (reg *registry) Count() int { return len(reg.entries) }

// Snapshot returns the current descriptors in registration order
// (oldest-registered first), rebuilding the cache if it was invalidated
// since the last call.
func (reg *registry) Snapshot() []BackendDescriptor {
	if reg.dirty {
		snap := make([]BackendDescriptor, 0, len(reg.entries))
		for i := len(reg.entries) - 1; i >= 0; i-- {
			snap = append(snap, reg.entries[i].desc)
		}
		reg.snapshot = snap
		reg.dirty = false
	}
	return reg.snapshot
}

// idByName returns the id of the backend named n, or 0 if absent (§4.2).
func (reg *registry) idByName(n string) int {
	for _, e := range reg.entries {
		if e.desc.Name == n {
			return e.id
		}
	}
	return 0
}

// byID returns the entry with the given id, if present.
func (reg *registry) byID(id int) (backendEntry, bool) {
	for _, e := range reg.entries {
		if e.id == id {
			return e, true
		}
	}
	return backendEntry{}, false
}

// leakWarning formats the names of any remaining backends for the
// post-teardown warning (§4.1, §4.7).
func (reg *registry) leakWarning() string {
	if len(reg.entries) == 0 {
		return ""
	}
	names := make([]string, 0, len(reg.entries))
	for _, e := range reg.entries {
		names = append(names, e.desc.Name)
	}
	return fmt.Sprintf("leaked backends: %v", names)
}

var _ Registrar = (*registry)(nil)
