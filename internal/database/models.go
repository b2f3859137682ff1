package database

import "time"

// Group is a Telegram group whose messages are counted. Groups are
// created lazily from the configured allow-list and never deleted.
type Group struct {
	ID        int64  `db:"id"`
	GroupID   int64  `db:"group_id"`
	GroupName string `db:"group_name"`
}

// User is a message sender. UserIDHash is the SHA-512 digest of the raw
// Telegram user ID and the only durable join key; the raw ID is never
// stored.
type User struct {
	ID         int64  `db:"id"`
	UserIDHash string `db:"user_id_hash"`
	UserName   string `db:"user_name"`
}

// MessageType is one entry of the fixed type enumeration, seeded by the
// schema migrations.
type MessageType struct {
	ID       int64  `db:"id"`
	TypeName string `db:"type_name"`
}

// Message is one counted message. Rows are immutable once written and
// always reference existing group, user and type rows.
type Message struct {
	ID        int64     `db:"id"`
	GroupID   int64     `db:"group_id"`
	UserID    int64     `db:"user_id"`
	MsgTypeID int64     `db:"msg_type_id"`
	WordCount int       `db:"word_count"`
	Timestamp time.Time `db:"timestamp"`
}

// TypeCount is one row of a message-type breakdown.
type TypeCount struct {
	Count int64  `db:"count"`
	Type  string `db:"type_name"`
}

// PosterCount is one row of a top-poster leaderboard.
type PosterCount struct {
	Count int64  `db:"count"`
	Name  string `db:"user_name"`
}

// GroupRef selects either a single group (by its external Telegram ID)
// or all groups for the network-wide reports.
type GroupRef struct {
	id  int64
	all bool
}

// GroupID returns a GroupRef scoped to one group.
func GroupID(id int64) GroupRef { return GroupRef{id: id} }

// AllGroups returns a GroupRef covering every group.
func AllGroups() GroupRef { return GroupRef{all: true} }

// All reports whether the ref covers every group.
func (g GroupRef) All() bool { return g.all }

// ID returns the external group ID. Only meaningful when All is false.
func (g GroupRef) ID() int64 { return g.id }
