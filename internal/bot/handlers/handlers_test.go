package handlers

import (
	"testing"

	"github.com/go-telegram/bot/models"

	"github.com/pandarinos/yve/internal/pager"
)

func TestClassifyMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		msg  *models.Message
		want string
	}{
		{name: "text", msg: &models.Message{Text: "hallo welt"}, want: "text"},
		{name: "photo", msg: &models.Message{Photo: []models.PhotoSize{{}}}, want: "photo"},
		{name: "video", msg: &models.Message{Video: &models.Video{}}, want: "video"},
		{name: "sticker", msg: &models.Message{Sticker: &models.Sticker{}}, want: "sticker"},
		{name: "voice", msg: &models.Message{Voice: &models.Voice{}}, want: "voice"},
		{name: "audio", msg: &models.Message{Audio: &models.Audio{}}, want: "audio"},
		{name: "document", msg: &models.Message{Document: &models.Document{}}, want: "document"},
		{
			// Animations carry a document as well; the animation wins.
			name: "animation over document",
			msg:  &models.Message{Animation: &models.Animation{}, Document: &models.Document{}},
			want: "animation",
		},
		{name: "video note", msg: &models.Message{VideoNote: &models.VideoNote{}}, want: "video_note"},
		{name: "location", msg: &models.Message{Location: &models.Location{}}, want: "location"},
		{name: "contact", msg: &models.Message{Contact: &models.Contact{}}, want: "contact"},
		{name: "poll", msg: &models.Message{Poll: &models.Poll{}}, want: "poll"},
		{
			// A photo with a caption is still a photo, not a text.
			name: "captioned photo",
			msg:  &models.Message{Caption: "schau mal", Photo: []models.PhotoSize{{}}},
			want: "photo",
		},
		{name: "unclassifiable", msg: &models.Message{}, want: ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := classifyMessage(tt.msg); got != tt.want {
				t.Errorf("classifyMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		msg  *models.Message
		want bool
	}{
		{
			name: "leading command",
			msg: &models.Message{
				Text:     "/stats",
				Entities: []models.MessageEntity{{Type: models.MessageEntityTypeBotCommand, Offset: 0, Length: 6}},
			},
			want: true,
		},
		{
			name: "command in the middle of a sentence",
			msg: &models.Message{
				Text:     "probier mal /stats",
				Entities: []models.MessageEntity{{Type: models.MessageEntityTypeBotCommand, Offset: 12, Length: 6}},
			},
			want: false,
		},
		{
			name: "mention entity only",
			msg: &models.Message{
				Text:     "@yve hallo",
				Entities: []models.MessageEntity{{Type: models.MessageEntityTypeMention, Offset: 0, Length: 4}},
			},
			want: false,
		},
		{name: "plain text", msg: &models.Message{Text: "hallo"}, want: false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := isCommand(tt.msg); got != tt.want {
				t.Errorf("isCommand() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSenderName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		user *models.User
		want string
	}{
		{name: "first name preferred", user: &models.User{FirstName: "Alice", Username: "alice42"}, want: "Alice"},
		{name: "username fallback", user: &models.User{Username: "alice42"}, want: "alice42"},
		{name: "nothing set", user: &models.User{}, want: "unknown user"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := senderName(tt.user); got != tt.want {
				t.Errorf("senderName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNavigationMarkup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		controls pager.Controls
		want     []string
	}{
		{name: "backward only", controls: pager.ControlsBackwardOnly, want: []string{"backward"}},
		{name: "both", controls: pager.ControlsBoth, want: []string{"backward", "forward"}},
		{name: "forward only", controls: pager.ControlsForwardOnly, want: []string{"forward"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			markup := navigationMarkup(tt.controls)
			if len(markup.InlineKeyboard) != 1 {
				t.Fatalf("expected a single button row, got %d", len(markup.InlineKeyboard))
			}
			row := markup.InlineKeyboard[0]
			if len(row) != len(tt.want) {
				t.Fatalf("expected %d buttons, got %d", len(tt.want), len(row))
			}
			for i, data := range tt.want {
				if row[i].CallbackData != data {
					t.Errorf("button %d data = %q, want %q", i, row[i].CallbackData, data)
				}
			}
		})
	}
}
