package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store is the data access layer for groups, users and messages.
// All methods accept a context for cancellation and timeouts. Write
// operations are atomic per call.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// AddGroup inserts a group, or does nothing if the external group
	// ID is already present.
	AddGroup(ctx context.Context, groupID int64, groupName string) error

	// AddUser inserts a user keyed by the hashed ID, or does nothing if
	// the hash is already present.
	AddUser(ctx context.Context, userIDHash, userName string) error

	// RecordMessage inserts one message row. It fails with
	// ErrMissingUser if the sender is unknown and ErrMissingReference
	// if the group or message type is unknown; nothing is written in
	// either case.
	RecordMessage(ctx context.Context, groupID int64, userIDHash, msgType string, wordCount int, timestamp time.Time) error

	// CountMessages returns the number of messages in the group (or all
	// groups) within the window.
	CountMessages(ctx context.Context, group GroupRef, w Window) (int64, error)

	// CountUserMessages returns the number of messages the user has
	// ever sent in the group (or all groups). The count is deliberately
	// unwindowed: personal stats cover the whole history.
	CountUserMessages(ctx context.Context, userIDHash string, group GroupRef) (int64, error)

	// MessageTypeBreakdown returns per-type message counts within the
	// window, sorted by count descending with ties broken by type ID.
	MessageTypeBreakdown(ctx context.Context, group GroupRef, w Window) ([]TypeCount, error)

	// TopPosters returns the most active posters within the window,
	// sorted by count descending and limited to limit rows.
	TopPosters(ctx context.Context, group GroupRef, w Window, limit int) ([]PosterCount, error)

	// RunMaintenance performs periodic database housekeeping.
	RunMaintenance(ctx context.Context) error
}

// sqlxStore implements Store on top of sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
	now    func() time.Time
}

// NewStore creates a Store backed by the given database connection.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
		now:    time.Now,
	}
}

func (s *sqlxStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: ping failed: %v", ErrStorage, err)
	}
	return nil
}

func (s *sqlxStore) AddGroup(ctx context.Context, groupID int64, groupName string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO groups (group_id, group_name) VALUES (?, ?)`,
		groupID, groupName)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to add group", "group_id", groupID, "error", err)
		return fmt.Errorf("%w: failed to add group %d: %v", ErrStorage, groupID, err)
	}
	return nil
}

func (s *sqlxStore) AddUser(ctx context.Context, userIDHash, userName string) error {
	if userIDHash == "" {
		return fmt.Errorf("%w: empty user hash", ErrStorage)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO users (user_id_hash, user_name) VALUES (?, ?)`,
		userIDHash, userName)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to add user", "error", err)
		return fmt.Errorf("%w: failed to add user: %v", ErrStorage, err)
	}
	return nil
}

// RecordMessage resolves the three foreign keys inside a single
// transaction before inserting, so a missing row surfaces as the right
// taxonomy error and a partial write can never become visible.
func (s *sqlxStore) RecordMessage(ctx context.Context, groupID int64, userIDHash, msgType string, wordCount int, timestamp time.Time) error {
	if wordCount < 0 {
		return fmt.Errorf("%w: negative word count %d", ErrStorage, wordCount)
	}
	if timestamp.IsZero() {
		return fmt.Errorf("%w: zero timestamp", ErrStorage)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %v", ErrStorage, err)
	}
	defer func() {
		if tx != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				s.logger.WarnContext(ctx, "Error rolling back transaction", "error", rbErr)
			}
		}
	}()

	var groupRef int64
	if err := tx.GetContext(ctx, &groupRef, `SELECT id FROM groups WHERE group_id = ?`, groupID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("group %d: %w", groupID, ErrMissingReference)
		}
		return fmt.Errorf("%w: failed to resolve group %d: %v", ErrStorage, groupID, err)
	}

	var userRef int64
	if err := tx.GetContext(ctx, &userRef, `SELECT id FROM users WHERE user_id_hash = ?`, userIDHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMissingUser
		}
		return fmt.Errorf("%w: failed to resolve user: %v", ErrStorage, err)
	}

	var typeRef int64
	if err := tx.GetContext(ctx, &typeRef, `SELECT id FROM message_types WHERE type_name = ?`, msgType); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("message type %q: %w", msgType, ErrMissingReference)
		}
		return fmt.Errorf("%w: failed to resolve message type %q: %v", ErrStorage, msgType, err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO messages (group_id, user_id, msg_type_id, word_count, timestamp) VALUES (?, ?, ?, ?, ?)`,
		groupRef, userRef, typeRef, wordCount, timestamp)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to insert message", "group_id", groupID, "error", err)
		return fmt.Errorf("%w: failed to insert message: %v", ErrStorage, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit message: %v", ErrStorage, err)
	}
	tx = nil

	s.logger.DebugContext(ctx, "Message recorded", "group_id", groupID, "msg_type", msgType)
	return nil
}

func (s *sqlxStore) CountMessages(ctx context.Context, group GroupRef, w Window) (int64, error) {
	where, args := s.scopeClauses(group, w)

	query := `SELECT COUNT(*) FROM messages m` + where
	var count int64
	if err := s.db.GetContext(ctx, &count, query, args...); err != nil {
		s.logger.ErrorContext(ctx, "Failed to count messages", "error", err)
		return 0, fmt.Errorf("%w: failed to count messages: %v", ErrStorage, err)
	}
	return count, nil
}

func (s *sqlxStore) CountUserMessages(ctx context.Context, userIDHash string, group GroupRef) (int64, error) {
	clauses := []string{`m.user_id = (SELECT id FROM users WHERE user_id_hash = ?)`}
	args := []any{userIDHash}
	if !group.All() {
		clauses = append(clauses, `m.group_id = (SELECT id FROM groups WHERE group_id = ?)`)
		args = append(args, group.ID())
	}

	query := `SELECT COUNT(*) FROM messages m WHERE ` + strings.Join(clauses, " AND ")
	var count int64
	if err := s.db.GetContext(ctx, &count, query, args...); err != nil {
		s.logger.ErrorContext(ctx, "Failed to count user messages", "error", err)
		return 0, fmt.Errorf("%w: failed to count user messages: %v", ErrStorage, err)
	}
	return count, nil
}

func (s *sqlxStore) MessageTypeBreakdown(ctx context.Context, group GroupRef, w Window) ([]TypeCount, error) {
	where, args := s.scopeClauses(group, w)

	query := `
        SELECT COUNT(m.id) AS count, t.type_name AS type_name
        FROM messages m
        JOIN message_types t ON t.id = m.msg_type_id` + where + `
        GROUP BY t.id
        ORDER BY count DESC, t.id ASC`

	var rows []TypeCount
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		s.logger.ErrorContext(ctx, "Failed to query type breakdown", "error", err)
		return nil, fmt.Errorf("%w: failed to query type breakdown: %v", ErrStorage, err)
	}
	return rows, nil
}

func (s *sqlxStore) TopPosters(ctx context.Context, group GroupRef, w Window, limit int) ([]PosterCount, error) {
	if limit <= 0 {
		limit = 10
	}
	where, args := s.scopeClauses(group, w)
	args = append(args, limit)

	query := `
        SELECT COUNT(m.id) AS count, u.user_name AS user_name
        FROM messages m
        JOIN users u ON u.id = m.user_id` + where + `
        GROUP BY u.id
        ORDER BY count DESC, u.id ASC
        LIMIT ?`

	var rows []PosterCount
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		s.logger.ErrorContext(ctx, "Failed to query top posters", "error", err)
		return nil, fmt.Errorf("%w: failed to query top posters: %v", ErrStorage, err)
	}
	return rows, nil
}

func (s *sqlxStore) RunMaintenance(ctx context.Context) error {
	start := s.now()
	if _, err := s.db.ExecContext(ctx, `ANALYZE`); err != nil {
		return fmt.Errorf("%w: analyze failed: %v", ErrStorage, err)
	}
	if _, err := s.db.ExecContext(ctx, `VACUUM`); err != nil {
		return fmt.Errorf("%w: vacuum failed: %v", ErrStorage, err)
	}
	s.logger.InfoContext(ctx, "Database maintenance completed", "duration", time.Since(start))
	return nil
}

// scopeClauses builds the WHERE fragment for the group scope and time
// window. The window predicates form a closed set with Go-computed
// bounds passed as parameters; no time expression is interpolated.
func (s *sqlxStore) scopeClauses(group GroupRef, w Window) (string, []any) {
	var clauses []string
	var args []any

	if !group.All() {
		clauses = append(clauses, `m.group_id = (SELECT id FROM groups WHERE group_id = ?)`)
		args = append(args, group.ID())
	}
	now := s.now()
	if start, bounded := w.Start(now); bounded {
		clauses = append(clauses, `m.timestamp >= ?`)
		args = append(args, start)
	}
	if end, bounded := w.End(now); bounded {
		clauses = append(clauses, `m.timestamp < ?`)
		args = append(args, end)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}
