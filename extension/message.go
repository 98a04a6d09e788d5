package extension

// Message is implemented by every decoded extension message. id reports
// the local registry index the message belongs to; isEnabled consults the
// matching predicate in an Enabled set. Both are unexported: the set of
// implementers is closed to this package.
type Message interface {
	id() byte
	isEnabled(Enabled) bool
}

// Handshake is the BEP 10 extended handshake message (local id 0, always
// enabled).
type Handshake struct {
	// ExtensionIDs maps extension name to the numeric id the sender of this
	// handshake assigns it, in range 0..255. An id of 0 withdraws support.
	ExtensionIDs map[string]int
	// MetadataSize is the total byte length of the info dictionary, if the
	// sender advertised it.
	MetadataSize *int64
	// Extra holds every top-level key not recognized by this codec (port,
	// version, yourip, reqq, ...), preserved for round-tripping.
	Extra *Extra
}

func (*Handshake) id() byte               { return 0 }
func (*Handshake) isEnabled(Enabled) bool { return true }

// Metadata is implemented by the three BEP 9 sub-messages.
type Metadata interface {
	Message
}

// MetadataRequest asks the peer for a metadata piece.
type MetadataRequest struct {
	Piece int64
}

// MetadataData carries one metadata piece.
type MetadataData struct {
	Piece     int64
	TotalSize int64
	Payload   []byte
}

// MetadataReject refuses a MetadataRequest.
type MetadataReject struct {
	Piece int64
}

func (MetadataRequest) id() byte                 { return 1 }
func (MetadataRequest) isEnabled(e Enabled) bool { return e.Metadata }

func (MetadataData) id() byte                 { return 1 }
func (MetadataData) isEnabled(e Enabled) bool { return e.Metadata }

func (MetadataReject) id() byte                 { return 1 }
func (MetadataReject) isEnabled(e Enabled) bool { return e.Metadata }

// PeerExchange is the BEP 11 ut_pex message.
type PeerExchange struct {
	Added       []Endpoint
	AddedFlags  []byte
	Added6      []Endpoint
	Added6Flags []byte
	Dropped     []Endpoint
	Dropped6    []Endpoint
}

func (*PeerExchange) id() byte                 { return 2 }
func (*PeerExchange) isEnabled(e Enabled) bool { return e.PeerExchange }

// Endpoint is an (address, port) pair as carried in a compact peer list.
type Endpoint struct {
	IP   []byte // 4 or 16 bytes
	Port uint16
}

// Peer exchange flag bits (spec.md §3).
const (
	PexFlagPreferEncryption  byte = 1 << 0
	PexFlagSeed              byte = 1 << 1
	PexFlagSupportsUTP       byte = 1 << 2
	PexFlagSupportsHolepunch byte = 1 << 3
	PexFlagReachable         byte = 1 << 4
)
