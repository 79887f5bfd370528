// Package anchor provides a tip-hash checkpoint store.
//
// The ledger's previous-hash links detect tampering within the chain, but
// replacing or truncating the entire persisted chain leaves a shorter,
// internally consistent ledger behind. Anchors close that gap: each anchor
// records the chain length and tip hash at a point in time in a separate
// database, so a ledger that later verifies clean but is shorter than its
// last anchor, or disagrees with an anchored tip, is exposed.
//
// Anchors are written by the integrity sweep and are themselves
// append-only.
package anchor

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// Anchor is one tip checkpoint.
type Anchor struct {
	// Seq is the anchor's own append sequence.
	Seq int64

	// ChainLength is the ledger length at checkpoint time.
	ChainLength int

	// TipHash is the ledger tip at checkpoint time.
	TipHash string

	// AnchoredAt is when the checkpoint was taken, in UTC.
	AnchoredAt time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS anchors (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    chain_length INTEGER NOT NULL,
    tip_hash TEXT NOT NULL,
    anchored_at TEXT NOT NULL
);
`

// SQLiteStore persists anchors in a SQLite database, kept separate from
// the audit record database so a single compromised file is not enough to
// rewrite history silently.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) the anchor database at path.
func NewSQLiteStore(path string, logger *slog.Logger) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("anchor db path cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open anchor database: %w", err)
	}

	// SQLite supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize anchor schema: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger.With("component", "audit.anchor"),
	}, nil
}

// Record appends a new anchor for the given chain state.
func (s *SQLiteStore) Record(ctx context.Context, chainLength int, tipHash string) (*Anchor, error) {
	now := time.Now().UTC()

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO anchors (chain_length, tip_hash, anchored_at) VALUES (?, ?, ?)",
		chainLength, tipHash, now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record anchor: %w", err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read anchor sequence: %w", err)
	}

	s.logger.Debug("anchor recorded",
		"seq", seq,
		"chain_length", chainLength,
		"tip_hash", tipHash,
	)

	return &Anchor{
		Seq:         seq,
		ChainLength: chainLength,
		TipHash:     tipHash,
		AnchoredAt:  now,
	}, nil
}

// Latest returns the most recent anchor. The boolean reports whether any
// anchor exists yet.
func (s *SQLiteStore) Latest(ctx context.Context) (*Anchor, bool, error) {
	var (
		a  Anchor
		ts string
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT seq, chain_length, tip_hash, anchored_at FROM anchors ORDER BY seq DESC LIMIT 1",
	).Scan(&a.Seq, &a.ChainLength, &a.TipHash, &ts)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load latest anchor: %w", err)
	}

	parsed, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return nil, false, fmt.Errorf("failed to parse anchor timestamp: %w", err)
	}
	a.AnchoredAt = parsed.UTC()
	return &a, true, nil
}

// CheckAgainst compares the current chain state to the latest anchor. It
// returns an error when the chain has shrunk below the anchored length or
// when the anchored tip no longer appears at its anchored position; both
// indicate whole-chain replacement or truncation.
func (s *SQLiteStore) CheckAgainst(ctx context.Context, chainLength int, hashAt func(index int) (string, bool)) error {
	latest, ok, err := s.Latest(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return nil // nothing anchored yet
	}

	if chainLength < latest.ChainLength {
		return fmt.Errorf("chain shrank below anchor: anchored length %d, current %d",
			latest.ChainLength, chainLength)
	}
	if latest.ChainLength > 0 {
		hash, ok := hashAt(latest.ChainLength - 1)
		if !ok || hash != latest.TipHash {
			return fmt.Errorf("anchored tip %q no longer present at position %d",
				latest.TipHash, latest.ChainLength-1)
		}
	}
	return nil
}

// Close closes the anchor database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
