package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"tribunal-hq/minos/pkg/audit"
	"tribunal-hq/minos/pkg/engine"
)

// SQLiteConfig contains configuration for the SQLite storage backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/audit.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStore implements Store using SQLite via mattn/go-sqlite3.
type SQLiteStore struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStore opens the database, applies the schema, and enables WAL
// mode if configured.
func NewSQLiteStore(config *SQLiteConfig, logger *slog.Logger) (*SQLiteStore, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, audit.NewStorageError("sqlite", "open", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &SQLiteStore{
		db:     db,
		config: config,
		logger: logger.With("component", "audit.storage.sqlite"),
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	s.logger.Info("sqlite audit store opened",
		"path", config.Path,
		"wal_mode", config.WALMode,
	)

	return s, nil
}

// initialize applies pragmas and the schema.
func (s *SQLiteStore) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			return audit.NewStorageError("sqlite", "pragma_wal", err)
		}
	}
	if s.config.BusyTimeout > 0 {
		pragma := fmt.Sprintf("PRAGMA busy_timeout=%d", s.config.BusyTimeout.Milliseconds())
		if _, err := s.db.Exec(pragma); err != nil {
			return audit.NewStorageError("sqlite", "pragma_busy_timeout", err)
		}
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return audit.NewStorageError("sqlite", "schema", err)
	}
	if _, err := s.db.Exec(
		"INSERT OR IGNORE INTO schema_version (version) VALUES (?)", SchemaVersion,
	); err != nil {
		return audit.NewStorageError("sqlite", "schema_version", err)
	}
	return nil
}

// Store persists one record. The append sequence column preserves arrival
// order across reloads.
func (s *SQLiteStore) Store(ctx context.Context, record *audit.Record) error {
	contextJSON, err := marshalContext(record.DecisionContext)
	if err != nil {
		return audit.NewStorageError("sqlite", "store", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO audit_records (
			id, timestamp, event_type, actor_kind, actor_id,
			statute_id, subject_id, decision_context,
			result_kind, result_satisfied, result_discretion_issue, result_missing_attribute,
			record_hash, previous_hash
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Timestamp.UTC().Format(time.RFC3339Nano),
		string(record.EventType),
		string(record.Actor.Kind),
		record.Actor.ID,
		record.StatuteID,
		record.SubjectID,
		contextJSON,
		string(record.Result.Kind),
		record.Result.Satisfied,
		record.Result.DiscretionIssue,
		record.Result.MissingAttribute,
		record.RecordHash,
		record.PreviousHash,
	)
	if err != nil {
		return audit.NewStorageError("sqlite", "store", err)
	}
	return nil
}

// LoadAll returns every persisted record ordered by append sequence.
func (s *SQLiteStore) LoadAll(ctx context.Context) ([]audit.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, timestamp, event_type, actor_kind, actor_id,
		       statute_id, subject_id, decision_context,
		       result_kind, result_satisfied, result_discretion_issue, result_missing_attribute,
		       record_hash, previous_hash
		FROM audit_records
		ORDER BY seq ASC`)
	if err != nil {
		return nil, audit.NewStorageError("sqlite", "load", err)
	}
	defer rows.Close()

	var records []audit.Record
	for rows.Next() {
		var (
			r           audit.Record
			ts          string
			eventType   string
			actorKind   string
			actorID     sql.NullString
			contextJSON sql.NullString
			resultKind  string
			issue       sql.NullString
			missing     sql.NullString
			prevHash    sql.NullString
		)

		if err := rows.Scan(
			&r.ID, &ts, &eventType, &actorKind, &actorID,
			&r.StatuteID, &r.SubjectID, &contextJSON,
			&resultKind, &r.Result.Satisfied, &issue, &missing,
			&r.RecordHash, &prevHash,
		); err != nil {
			return nil, audit.NewStorageError("sqlite", "scan", err)
		}

		parsed, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, audit.NewStorageError("sqlite", "parse_timestamp", err)
		}
		r.Timestamp = parsed.UTC()
		r.EventType = audit.EventType(eventType)
		r.Actor = audit.Actor{Kind: audit.ActorKind(actorKind), ID: actorID.String}
		r.Result.Kind = engine.DecisionKind(resultKind)
		r.Result.DiscretionIssue = issue.String
		r.Result.MissingAttribute = missing.String
		r.PreviousHash = prevHash.String

		if contextJSON.Valid && contextJSON.String != "" {
			if err := json.Unmarshal([]byte(contextJSON.String), &r.DecisionContext); err != nil {
				return nil, audit.NewStorageError("sqlite", "parse_context", err)
			}
		}

		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, audit.NewStorageError("sqlite", "load", err)
	}
	return records, nil
}

// Count returns the number of persisted records.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM audit_records").Scan(&count)
	if err != nil {
		return 0, audit.NewStorageError("sqlite", "count", err)
	}
	return count, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// marshalContext serializes the decision context map. encoding/json sorts
// keys, so the stored form is stable; an empty map stores as NULL-ish "".
func marshalContext(ctx map[string]string) (string, error) {
	if len(ctx) == 0 {
		return "", nil
	}
	raw, err := json.Marshal(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to marshal decision context: %w", err)
	}
	return string(raw), nil
}
