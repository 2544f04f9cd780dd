package db

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teranos/promptrev/errors"
	"github.com/teranos/promptrev/logger"
	"github.com/teranos/promptrev/revision"
)

// Ledger records applied revisions in SQLite. It satisfies
// revision.StateStore, so a manager can use it in place of the JSON state
// file when upgrade history (who ran what, when) matters.
type Ledger struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

var _ revision.StateStore = (*Ledger)(nil)

// AppliedRevision is one ledger row.
type AppliedRevision struct {
	Position  int
	RevID     string
	RunID     string
	AppliedAt time.Time
}

// NewLedger wraps an open database, applying schema migrations first.
// log may be nil for silent operation.
func NewLedger(database *sql.DB, log *zap.SugaredLogger) (*Ledger, error) {
	if err := Migrate(database, log); err != nil {
		return nil, errors.Wrap(err, "migrate ledger schema")
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Ledger{db: database, log: log}, nil
}

// OpenLedger opens (creating as needed) the ledger database at path.
func OpenLedger(path string, log *zap.SugaredLogger) (*Ledger, error) {
	database, err := Open(path, log)
	if err != nil {
		return nil, err
	}
	ledger, err := NewLedger(database, log)
	if err != nil {
		database.Close()
		return nil, err
	}
	return ledger, nil
}

// Close releases the underlying database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Load returns the applied sequence in position order. A missing
// applied_revisions table reads as empty with a warning; other query
// failures are errors.
func (l *Ledger) Load() ([]string, error) {
	rows, err := l.db.Query("SELECT rev_id FROM applied_revisions ORDER BY position ASC")
	if err != nil {
		if isMissingTable(err) {
			l.log.Warnw("Ledger schema missing, treating as empty",
				logger.FieldError, err,
			)
			return nil, nil
		}
		return nil, errors.Wrap(err, "query applied revisions")
	}
	defer rows.Close()

	var applied []string
	for rows.Next() {
		var revID string
		if err := rows.Scan(&revID); err != nil {
			return nil, errors.Wrap(err, "scan applied revision")
		}
		applied = append(applied, revID)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate applied revisions")
	}
	return applied, nil
}

// Append records one applied revision with a fresh run id. The UNIQUE
// constraint on rev_id keeps the log append-only.
func (l *Ledger) Append(revID string) error {
	runID := uuid.New().String()
	_, err := l.db.Exec(
		"INSERT INTO applied_revisions (rev_id, run_id) VALUES (?, ?)",
		revID, runID,
	)
	if err != nil {
		return errors.Wrapf(err, "record revision %s", revID)
	}
	l.log.Debugw("Recorded applied revision",
		logger.FieldRevision, revID,
		logger.FieldRunID, runID,
	)
	return nil
}

// Current returns the last applied revision.
func (l *Ledger) Current() (string, bool) {
	var revID string
	err := l.db.QueryRow(
		"SELECT rev_id FROM applied_revisions ORDER BY position DESC LIMIT 1",
	).Scan(&revID)
	if err != nil {
		return "", false
	}
	return revID, true
}

// History returns the full ledger in position order, with timestamps and
// run ids for display.
func (l *Ledger) History() ([]AppliedRevision, error) {
	rows, err := l.db.Query(
		"SELECT position, rev_id, run_id, applied_at FROM applied_revisions ORDER BY position ASC",
	)
	if err != nil {
		return nil, errors.Wrap(err, "query ledger history")
	}
	defer rows.Close()

	var history []AppliedRevision
	for rows.Next() {
		var entry AppliedRevision
		if err := rows.Scan(&entry.Position, &entry.RevID, &entry.RunID, &entry.AppliedAt); err != nil {
			return nil, errors.Wrap(err, "scan ledger row")
		}
		history = append(history, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate ledger history")
	}
	return history, nil
}

// isMissingTable matches SQLite's "no such table" error text.
func isMissingTable(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such table")
}
