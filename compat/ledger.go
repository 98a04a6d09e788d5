// Package compat persists a record of non-compliant peer behavior: every
// time a message only decodes under the lenient bencode parser, spec.md
// §4.6 already calls for a debug-level trace; this package is the
// queryable, persistent form of that same observation
// (SPEC_FULL.md §4.2), distinct from spec.md's explicitly out-of-scope
// "separate distributed cache RPC client" (§1).
package compat

import (
	"database/sql"
	"encoding/base64"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Record is one logged lenient-decode recovery.
type Record struct {
	ID         string
	Extension  string
	PeerAddr   string
	StrictErr  string
	RawBuffer  string // base64
	OccurredAt time.Time
}

// Ledger is a SQLite-backed append-only log of Records.
type Ledger struct {
	db *sql.DB
}

// OpenLedger opens (creating if necessary) the SQLite database at path and
// ensures its schema exists.
func OpenLedger(path string) (*Ledger, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	const schema = `
CREATE TABLE IF NOT EXISTS non_compliant_peer (
	id TEXT PRIMARY KEY,
	extension TEXT NOT NULL,
	peer_addr TEXT NOT NULL,
	strict_err TEXT NOT NULL,
	raw_buffer TEXT NOT NULL,
	occurred_at TIMESTAMP NOT NULL
);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Ledger{db: db}, nil
}

// Close closes the underlying database handle.
func (l *Ledger) Close() error { return l.db.Close() }

// Record appends a row for one lenient-decode recovery. occurredAt is
// passed in by the caller rather than taken from time.Now here, so tests
// stay deterministic.
func (l *Ledger) Record(extensionName, peerAddr string, strictErr error, raw []byte, occurredAt time.Time) (string, error) {
	id := uuid.NewString()
	_, err := l.db.Exec(
		`INSERT INTO non_compliant_peer (id, extension, peer_addr, strict_err, raw_buffer, occurred_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, extensionName, peerAddr, strictErr.Error(), base64.StdEncoding.EncodeToString(raw), occurredAt,
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

// ByPeer returns every recorded recovery for peerAddr, most recent first.
func (l *Ledger) ByPeer(peerAddr string) ([]Record, error) {
	rows, err := l.db.Query(
		`SELECT id, extension, peer_addr, strict_err, raw_buffer, occurred_at FROM non_compliant_peer WHERE peer_addr = ? ORDER BY occurred_at DESC`,
		peerAddr,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Extension, &r.PeerAddr, &r.StrictErr, &r.RawBuffer, &r.OccurredAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Count returns the total number of recorded recoveries.
func (l *Ledger) Count() (int, error) {
	var n int
	err := l.db.QueryRow(`SELECT COUNT(*) FROM non_compliant_peer`).Scan(&n)
	return n, err
}
