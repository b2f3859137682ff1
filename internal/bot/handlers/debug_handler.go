package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewDebugHandler returns a handler for the /debug command, which
// toggles the debug echo mode for incoming messages.
func NewDebugHandler(deps HandlerDeps) bot.HandlerFunc {
	return debugHandler{deps}.Handle
}

type debugHandler struct {
	deps HandlerDeps
}

func (h debugHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "debug")

	if update.Message == nil || update.Message.From == nil {
		return
	}
	chatID := update.Message.Chat.ID

	text := h.deps.Config.Messages.DebugOff
	if h.deps.Debug.Toggle() {
		text = h.deps.Config.Messages.DebugOn
	}
	log.InfoContext(ctx, "Debug mode toggled", "user_id", update.Message.From.ID, "state", text)

	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text}); err != nil {
		log.ErrorContext(ctx, "Failed to send debug state", "error", err, "chat_id", chatID)
	}
}
