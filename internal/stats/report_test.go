package stats_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/pandarinos/yve/internal/database"
	"github.com/pandarinos/yve/internal/stats"
)

// stubStore serves canned query results.
type stubStore struct {
	total     int64
	userTotal int64
	types     []database.TypeCount
	posters   []database.PosterCount
	err       error
}

func (s *stubStore) Ping(context.Context) error                          { return nil }
func (s *stubStore) AddGroup(context.Context, int64, string) error       { return nil }
func (s *stubStore) AddUser(context.Context, string, string) error       { return nil }
func (s *stubStore) RunMaintenance(context.Context) error                { return nil }
func (s *stubStore) RecordMessage(context.Context, int64, string, string, int, time.Time) error {
	return nil
}

func (s *stubStore) CountMessages(context.Context, database.GroupRef, database.Window) (int64, error) {
	return s.total, s.err
}

func (s *stubStore) CountUserMessages(context.Context, string, database.GroupRef) (int64, error) {
	return s.userTotal, s.err
}

func (s *stubStore) MessageTypeBreakdown(context.Context, database.GroupRef, database.Window) ([]database.TypeCount, error) {
	return s.types, s.err
}

func (s *stubStore) TopPosters(context.Context, database.GroupRef, database.Window, int) ([]database.PosterCount, error) {
	return s.posters, s.err
}

func TestReportComposition(t *testing.T) {
	t.Parallel()

	store := &stubStore{
		total: 4,
		types: []database.TypeCount{
			{Count: 3, Type: "text"},
			{Count: 1, Type: "photo"},
		},
		posters: []database.PosterCount{
			{Count: 3, Name: "Alice"},
			{Count: 1, Name: "Bob"},
		},
	}
	r := stats.NewReporter(store, 10, "keine Daten")

	got, err := r.Report(context.Background(), database.GroupID(-1), database.WindowToday)
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	if !strings.HasPrefix(got, "*4 Nachrichten gesamt* _(Heute)_") {
		t.Errorf("unexpected header: %q", got)
	}
	if !strings.Contains(got, "(75.0%)") {
		t.Errorf("expected 75.0%% for text, got: %q", got)
	}
	if !strings.Contains(got, "(25.0%)") {
		t.Errorf("expected 25.0%% for photo, got: %q", got)
	}
	if !strings.Contains(got, "*Highscore*:") {
		t.Errorf("missing leaderboard header: %q", got)
	}
	if !strings.Contains(got, "Alice 3 Nachrichten") {
		t.Errorf("missing leaderboard row: %q", got)
	}
}

func TestTypeBreakdownPercentagesSumToHundred(t *testing.T) {
	t.Parallel()

	types := []database.TypeCount{
		{Count: 7, Type: "text"},
		{Count: 5, Type: "photo"},
		{Count: 3, Type: "sticker"},
		{Count: 1, Type: "voice"},
	}
	var total int64
	for _, tc := range types {
		total += tc.Count
	}

	out := stats.TypeBreakdown(types, total)

	var sum float64
	for _, tc := range types {
		sum += float64(tc.Count) / float64(total) * 100
	}
	if sum < 99.9 || sum > 100.1 {
		t.Errorf("percentages sum to %.2f, want ~100", sum)
	}
	for _, tc := range types {
		if !strings.Contains(out, tc.Type) {
			t.Errorf("breakdown missing type %q: %q", tc.Type, out)
		}
	}
}

func TestTypeBreakdownZeroTotal(t *testing.T) {
	t.Parallel()

	types := []database.TypeCount{{Count: 0, Type: "text"}}

	// Must not panic and must render a zero percentage.
	out := stats.TypeBreakdown(types, 0)
	if !strings.Contains(out, "( 0.0%)") {
		t.Errorf("expected 0.0%% with zero total, got: %q", out)
	}
}

func TestLeaderboardEscapesNames(t *testing.T) {
	t.Parallel()

	posters := []database.PosterCount{
		{Count: 2, Name: "ev*l_user"},
		{Count: 1, Name: "tick`er [x]"},
	}

	out := stats.Leaderboard(posters)
	if strings.Contains(out, "ev*l") {
		t.Errorf("unescaped asterisk in output: %q", out)
	}
	if !strings.Contains(out, `ev\*l\_user 2 Nachrichten`) {
		t.Errorf("expected escaped name, got: %q", out)
	}
	if !strings.Contains(out, "tick\\`er \\[x] 1 Nachrichten") {
		t.Errorf("expected escaped backtick and bracket, got: %q", out)
	}
}

func TestEscapeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "Alice", want: "Alice"},
		{name: "underscore", input: "a_b", want: `a\_b`},
		{name: "asterisk", input: "a*b", want: `a\*b`},
		{name: "backtick", input: "a`b", want: "a\\`b"},
		{name: "bracket", input: "a[b", want: `a\[b`},
		{name: "all special", input: "_*`[", want: "\\_\\*\\`\\["},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := stats.EscapeName(tt.input); got != tt.want {
				t.Errorf("EscapeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestUserReportGroupScope(t *testing.T) {
	t.Parallel()

	store := &stubStore{total: 40, userTotal: 10}
	r := stats.NewReporter(store, 10, "keine Daten")

	got, err := r.UserReport(context.Background(), "hash", "Alice", database.GroupID(-1))
	if err != nil {
		t.Fatalf("UserReport failed: %v", err)
	}
	want := "Alice:\n10/40 Nachrichten (25.0%)"
	if got != want {
		t.Errorf("UserReport = %q, want %q", got, want)
	}
}

func TestUserReportEmptyGroup(t *testing.T) {
	t.Parallel()

	store := &stubStore{total: 0, userTotal: 0}
	r := stats.NewReporter(store, 10, "keine Daten")

	got, err := r.UserReport(context.Background(), "hash", "Alice", database.GroupID(-1))
	if err != nil {
		t.Fatalf("UserReport failed: %v", err)
	}
	if !strings.Contains(got, "keine Daten") {
		t.Errorf("expected fallback text with empty group, got: %q", got)
	}
}

func TestUserReportAllGroups(t *testing.T) {
	t.Parallel()

	store := &stubStore{userTotal: 123}
	r := stats.NewReporter(store, 10, "keine Daten")

	got, err := r.UserReport(context.Background(), "hash", "Alice", database.AllGroups())
	if err != nil {
		t.Fatalf("UserReport failed: %v", err)
	}
	if got != "123 Nachrichten in allen Gruppen." {
		t.Errorf("UserReport = %q", got)
	}
}

func TestReportPropagatesStoreError(t *testing.T) {
	t.Parallel()

	store := &stubStore{err: fmt.Errorf("%w: boom", database.ErrStorage)}
	r := stats.NewReporter(store, 10, "keine Daten")

	if _, err := r.Report(context.Background(), database.AllGroups(), database.WindowAllTime); err == nil {
		t.Fatal("expected store error to propagate")
	}
}
