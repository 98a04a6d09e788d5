package extension

// Enabled describes which named extensions are locally turned on. Index 0
// (the handshake extension) has no corresponding flag: it is always
// enabled.
type Enabled struct {
	Metadata     bool
	PeerExchange bool
}

// entry is one row of the fixed extension table: a name (empty for the
// handshake extension, which is identified by id 0 rather than by name),
// an enable predicate evaluated lazily against the current Enabled set,
// and a decode function.
type entry struct {
	name    string
	enabled func(Enabled) bool
	decode  func(payload []byte) (Message, error)
}

// Registry is the fixed, process-lifetime table of supported extensions.
// Index 0 is the handshake, 1 is ut_metadata (BEP 9), 2 is ut_pex (BEP 11).
// The table itself never changes at runtime; only the Enabled set consulted
// by each entry's predicate does.
type Registry struct {
	entries [3]entry
	enabled Enabled
}

// NewRegistry builds the fixed registry against the given enabled set.
func NewRegistry(enabled Enabled) *Registry {
	r := &Registry{enabled: enabled}
	r.entries[0] = entry{
		name:    "",
		enabled: func(Enabled) bool { return true },
		decode:  decodeHandshake,
	}
	r.entries[1] = entry{
		name:    "ut_metadata",
		enabled: func(e Enabled) bool { return e.Metadata },
		decode:  decodeMetadata,
	}
	r.entries[2] = entry{
		name:    "ut_pex",
		enabled: func(e Enabled) bool { return e.PeerExchange },
		decode:  decodePeerExchange,
	}
	return r
}

// SetEnabled replaces the enabled set consulted by every entry's predicate.
// Safe to call while decodes are in flight on other goroutines only if the
// caller serializes writes against reads itself (see spec.md §5).
func (r *Registry) SetEnabled(enabled Enabled) { r.enabled = enabled }

// Enabled returns the registry's current enabled set.
func (r *Registry) Enabled() Enabled { return r.enabled }

// NameAt returns the registered name for a local extension index, or ""
// for the handshake extension (index 0) or an out-of-range index.
func (r *Registry) NameAt(index int) string {
	if index < 0 || index >= len(r.entries) {
		return ""
	}
	return r.entries[index].name
}

// Decode looks up the registry entry at index id. It fails with
// UnknownExtensionId if there is no such entry, ExpectExtensionEnabled if
// the entry's predicate is currently false, and otherwise invokes the
// entry's decoder on payload.
func (r *Registry) Decode(id byte, payload []byte) (Message, error) {
	idx := int(id)
	if idx < 0 || idx >= len(r.entries) {
		return nil, unknownExtensionId(idx)
	}
	e := r.entries[idx]
	if !e.enabled(r.enabled) {
		name := e.name
		if name == "" {
			name = "handshake"
		}
		return nil, expectExtensionEnabled(name)
	}
	return e.decode(payload)
}

// IsEnabled consults the predicate for msg's registry entry.
func (r *Registry) IsEnabled(msg Message) bool {
	return msg.isEnabled(r.enabled)
}
