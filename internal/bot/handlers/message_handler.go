package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/pandarinos/yve/internal/database"
	"github.com/pandarinos/yve/internal/identity"
)

const dbOperationTimeout = 5 * time.Second

// NewMessageHandler returns the default handler that records every
// qualifying group message into the statistics database.
func NewMessageHandler(deps HandlerDeps) bot.HandlerFunc {
	return messageHandler{deps}.Handle
}

type messageHandler struct {
	deps HandlerDeps
}

func (h messageHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "message")

	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}
	if isCommand(msg) {
		return
	}

	groupID := msg.Chat.ID
	if !h.deps.Config.Telegram.IsAllowedGroup(groupID) {
		log.DebugContext(ctx, "Message from group outside allow-list skipped", "chat_id", groupID)
		return
	}

	msgType := classifyMessage(msg)
	if msgType == "" {
		log.DebugContext(ctx, "Message with unrecognized type skipped", "chat_id", groupID, "message_id", msg.ID)
		return
	}
	if !h.deps.Config.Telegram.IsAllowedMessageType(msgType) {
		log.DebugContext(ctx, "Message type outside allow-list skipped", "chat_id", groupID, "msg_type", msgType)
		return
	}

	wordCount := len(strings.Fields(msg.Text))
	name := senderName(msg.From)
	timestamp := time.Unix(int64(msg.Date), 0)

	if h.deps.Debug.Enabled() {
		h.sendDebugEcho(ctx, b, msg, msgType, name, wordCount, timestamp)
	}

	hashed := identity.Hash(msg.From.ID)

	dbCtx, cancel := context.WithTimeout(ctx, dbOperationTimeout)
	defer cancel()

	err := h.deps.Store.RecordMessage(dbCtx, groupID, hashed, msgType, wordCount, timestamp)
	if err == nil {
		return
	}

	if errors.Is(err, database.ErrMissingUser) {
		// First message from this sender: register the user and drop
		// this one message instead of retrying the write. The sender is
		// counted from their next message on.
		log.InfoContext(ctx, "Unknown sender, adding user and dropping message", "chat_id", groupID)
		if addErr := h.deps.Store.AddUser(dbCtx, hashed, name); addErr != nil {
			log.ErrorContext(ctx, "Failed to add user", "error", addErr, "chat_id", groupID)
		}
		return
	}

	log.ErrorContext(ctx, "Failed to record message, dropping", "error", err, "chat_id", groupID, "msg_type", msgType)
}

func (h messageHandler) sendDebugEcho(ctx context.Context, b *bot.Bot, msg *models.Message, msgType, name string, wordCount int, timestamp time.Time) {
	text := fmt.Sprintf(
		"DEBUG: ON\n\nGroup ID: %d\nType: %s\nName: %s\nID: %d\nLength: %d\nDate: %s",
		msg.Chat.ID, msgType, name, msg.From.ID, wordCount, timestamp.Format(time.RFC3339))
	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: msg.Chat.ID, Text: text}); err != nil {
		h.deps.Logger.ErrorContext(ctx, "Failed to send debug echo", "error", err, "chat_id", msg.Chat.ID)
	}
}

// isCommand reports whether the message starts with a bot command.
func isCommand(msg *models.Message) bool {
	for _, e := range msg.Entities {
		if e.Type == models.MessageEntityTypeBotCommand && e.Offset == 0 {
			return true
		}
	}
	return false
}

// classifyMessage maps a Telegram message to one entry of the fixed
// message-type enumeration, or "" if no entry applies. Animation is
// checked before document because animations also carry a document.
func classifyMessage(msg *models.Message) string {
	switch {
	case msg.Text != "":
		return "text"
	case len(msg.Photo) > 0:
		return "photo"
	case msg.Video != nil:
		return "video"
	case msg.Sticker != nil:
		return "sticker"
	case msg.Voice != nil:
		return "voice"
	case msg.Audio != nil:
		return "audio"
	case msg.Animation != nil:
		return "animation"
	case msg.Document != nil:
		return "document"
	case msg.VideoNote != nil:
		return "video_note"
	case msg.Location != nil:
		return "location"
	case msg.Contact != nil:
		return "contact"
	case msg.Poll != nil:
		return "poll"
	default:
		return ""
	}
}

// senderName returns the best available display name for a sender.
func senderName(u *models.User) string {
	if u.FirstName != "" {
		return u.FirstName
	}
	if u.Username != "" {
		return u.Username
	}
	return "unknown user"
}
