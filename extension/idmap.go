package extension

// IDMap translates local extension indices into the numeric ids a single
// peer advertised for them in its handshake. There are N-1 named
// extensions (N = len(Registry.entries)); index 0 (handshake) is implicit
// and always maps to 0, so it has no backing slot here.
type IDMap struct {
	// ids[i] holds the peer's id for local extension i+1. A value of 0
	// means the peer does not support that extension.
	ids [2]byte
}

// Update applies an incremental delta from a peer's handshake. For every
// named extension the handshake mentions, the peer's id replaces the
// stored value (0 clears support). A named extension absent from this
// handshake keeps whatever value it already had.
//
// This is a deliberate deviation from a literal reading of BEP 10 (which
// could be read as "later handshakes replace earlier ones wholesale"): the
// incremental semantics here match the behavior peers actually rely on
// and the deviation is intentional, not an oversight (spec.md §9).
func (m *IDMap) Update(h *Handshake) {
	names := [2]string{"ut_metadata", "ut_pex"}
	for i, name := range names {
		if id, ok := h.ExtensionIDs[name]; ok {
			m.ids[i] = byte(id)
		}
	}
}

// Get returns the peer's id for localID. Local id 0 always maps to 0, ok
// true. For id >= 1, ok is false when the peer has not advertised support
// (stored value 0) or localID is out of range.
func (m *IDMap) Get(localID byte) (peerID byte, ok bool) {
	if localID == 0 {
		return 0, true
	}
	idx := int(localID) - 1
	if idx < 0 || idx >= len(m.ids) {
		return 0, false
	}
	if m.ids[idx] == 0 {
		return 0, false
	}
	return m.ids[idx], true
}

// PeerExtensions derives an Enabled set from the currently stored ids.
func (m *IDMap) PeerExtensions() Enabled {
	_, metadata := m.Get(1)
	_, pex := m.Get(2)
	return Enabled{Metadata: metadata, PeerExchange: pex}
}

// Map is a convenience equal to Get(msg.id()).
func (m *IDMap) Map(msg Message) (peerID byte, ok bool) {
	return m.Get(msg.id())
}
