// Package metadata accumulates BEP 9 metadata pieces into a complete info
// dictionary buffer. It is a session-layer convenience outside the core
// codec: pieces are kept in memory, with an optional on-disk scratch copy
// of the buffer written after each new piece (SPEC_FULL.md §4.1).
package metadata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/gvsurenderreddy-rakoshare/btext/extension"
)

const pieceSize = 16 * 1024

// Assembler accumulates MetadataData messages for a single torrent's info
// dictionary until every piece has arrived.
type Assembler struct {
	totalSize int64
	buf       []byte
	have      []bool
	remaining int

	scratchPath string
	lock        *flock.Flock
}

// NewAssembler creates an Assembler for a metadata blob of totalSize bytes.
func NewAssembler(totalSize int64) *Assembler {
	pieces := int((totalSize + pieceSize - 1) / pieceSize)
	return &Assembler{
		totalSize: totalSize,
		buf:       make([]byte, totalSize),
		have:      make([]bool, pieces),
		remaining: pieces,
	}
}

// WithScratchFile enables an on-disk scratch cache at dir/<infoHash>.meta.part,
// guarded by a file lock so two processes never write the same file at once.
// Safe to call once, immediately after NewAssembler.
func (a *Assembler) WithScratchFile(dir, infoHash string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	a.scratchPath = filepath.Join(dir, infoHash+".meta.part")
	a.lock = flock.New(a.scratchPath + ".lock")
	return nil
}

// AddPiece stores one received piece. It ignores pieces it has already
// recorded (idempotent under retransmission) and reports a mismatch if the
// message's TotalSize disagrees with the size given to NewAssembler — a
// check the core codec itself never performs (spec.md §9, open question 2).
func (a *Assembler) AddPiece(msg extension.MetadataData) error {
	if msg.TotalSize != a.totalSize {
		return fmt.Errorf("metadata: piece %d declares total_size %d, assembler expects %d", msg.Piece, msg.TotalSize, a.totalSize)
	}
	idx := int(msg.Piece)
	if idx < 0 || idx >= len(a.have) {
		return fmt.Errorf("metadata: piece index %d out of range [0,%d)", idx, len(a.have))
	}
	if a.have[idx] {
		return nil
	}

	start := int64(idx) * pieceSize
	end := start + int64(len(msg.Payload))
	if end > a.totalSize {
		return fmt.Errorf("metadata: piece %d payload overruns total_size", idx)
	}
	copy(a.buf[start:end], msg.Payload)
	a.have[idx] = true
	a.remaining--

	if a.scratchPath != "" {
		if err := a.writeScratch(); err != nil {
			return err
		}
	}
	return nil
}

// Complete reports whether every piece has arrived.
func (a *Assembler) Complete() bool { return a.remaining == 0 }

// Bytes returns the assembled buffer. Only meaningful once Complete.
func (a *Assembler) Bytes() []byte { return a.buf }

// NextRequest returns the lowest-indexed piece not yet received, for
// driving a simple sequential fetch loop. The second return is false once
// Complete.
func (a *Assembler) NextRequest() (extension.MetadataRequest, bool) {
	for i, got := range a.have {
		if !got {
			return extension.MetadataRequest{Piece: int64(i)}, true
		}
	}
	return extension.MetadataRequest{}, false
}

func (a *Assembler) writeScratch() error {
	if err := a.lock.Lock(); err != nil {
		return err
	}
	defer a.lock.Unlock()

	tmp := a.scratchPath + ".tmp"
	if err := os.WriteFile(tmp, a.buf, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, a.scratchPath)
}
