// Package stats turns storage counts into formatted Telegram report
// messages: a windowed total, a message-type breakdown with percentages,
// and a top-poster leaderboard.
package stats

import (
	"context"
	"fmt"
	"strings"

	"github.com/pandarinos/yve/internal/database"
)

// Reporter renders statistics reports from store queries.
type Reporter struct {
	store           database.Store
	topPostersLimit int
	noDataMsg       string
}

// NewReporter creates a Reporter. noDataMsg is shown when a personal
// report targets a group with no recorded messages.
func NewReporter(store database.Store, topPostersLimit int, noDataMsg string) *Reporter {
	return &Reporter{
		store:           store,
		topPostersLimit: topPostersLimit,
		noDataMsg:       noDataMsg,
	}
}

// Report builds the full statistics message for the group scope and
// window: header, type breakdown, leaderboard. Markdown formatted.
func (r *Reporter) Report(ctx context.Context, group database.GroupRef, w database.Window) (string, error) {
	total, err := r.store.CountMessages(ctx, group, w)
	if err != nil {
		return "", err
	}

	types, err := r.store.MessageTypeBreakdown(ctx, group, w)
	if err != nil {
		return "", err
	}

	posters, err := r.store.TopPosters(ctx, group, w, r.topPostersLimit)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*%d Nachrichten gesamt* _(%s)_", total, w.Label())
	b.WriteString(TypeBreakdown(types, total))
	b.WriteString(Leaderboard(posters))
	return b.String(), nil
}

// UserReport builds the personal statistics line for /me. In a group
// scope it relates the user's whole-history count to the group's
// current-month total; across all groups it reports the plain count.
func (r *Reporter) UserReport(ctx context.Context, userIDHash, displayName string, group database.GroupRef) (string, error) {
	userMsgs, err := r.store.CountUserMessages(ctx, userIDHash, group)
	if err != nil {
		return "", err
	}

	if group.All() {
		return fmt.Sprintf("%d Nachrichten in allen Gruppen.", userMsgs), nil
	}

	total, err := r.store.CountMessages(ctx, group, database.WindowThisMonth)
	if err != nil {
		return "", err
	}
	if total == 0 {
		return fmt.Sprintf("%s:\n%s", EscapeName(displayName), r.noDataMsg), nil
	}

	pct := float64(userMsgs) / float64(total) * 100
	return fmt.Sprintf("%s:\n%d/%d Nachrichten (%.1f%%)", EscapeName(displayName), userMsgs, total, pct), nil
}

// TypeBreakdown renders the per-type counts as a monospace block with
// one percentage decimal. A zero total renders 0.0% for every row
// instead of dividing.
func TypeBreakdown(types []database.TypeCount, total int64) string {
	var b strings.Builder
	b.WriteString("\n\n`")
	for _, tc := range types {
		pct := 0.0
		if total > 0 {
			pct = float64(tc.Count) / float64(total) * 100
		}
		fmt.Fprintf(&b, "%-4d - %10s (%4.1f%%)\n", tc.Count, tc.Type, pct)
	}
	b.WriteString("`\n")
	return b.String()
}

// Leaderboard renders the top-poster list. Display names are user
// controlled and escaped so they cannot break the message markup.
func Leaderboard(posters []database.PosterCount) string {
	var b strings.Builder
	b.WriteString("\n*Highscore*:\n\n")
	for _, pc := range posters {
		fmt.Fprintf(&b, "%s %d Nachrichten\n", EscapeName(pc.Name), pc.Count)
	}
	return b.String()
}

var nameEscaper = strings.NewReplacer(
	"_", "\\_",
	"*", "\\*",
	"`", "\\`",
	"[", "\\[",
)

// EscapeName escapes the characters that are special in Telegram's
// legacy Markdown parse mode.
func EscapeName(name string) string {
	return nameEscaper.Replace(name)
}
