package handlers

import (
	"context"
	"strconv"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewGroupIDHandler returns a handler for the /gid command, which
// replies with the current chat ID so admins can fill the allow-list.
func NewGroupIDHandler(deps HandlerDeps) bot.HandlerFunc {
	return groupIDHandler{deps}.Handle
}

type groupIDHandler struct {
	deps HandlerDeps
}

func (h groupIDHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "gid")

	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   strconv.FormatInt(chatID, 10),
	}); err != nil {
		log.ErrorContext(ctx, "Failed to send group ID", "error", err, "chat_id", chatID)
	}
}
