package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/pandarinos/yve/internal/database"
	"github.com/pandarinos/yve/internal/identity"
)

// NewMeHandler returns a handler for the /me command. In a group it
// reports the sender's count against that group; in a private chat it
// reports their count across all groups.
func NewMeHandler(deps HandlerDeps) bot.HandlerFunc {
	return meHandler{deps}.Handle
}

type meHandler struct {
	deps HandlerDeps
}

func (h meHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "me")

	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}
	chatID := msg.Chat.ID

	group := database.GroupID(chatID)
	if msg.Chat.Type == models.ChatTypePrivate {
		group = database.AllGroups()
	}

	hashed := identity.Hash(msg.From.ID)
	name := senderName(msg.From)

	reportCtx, cancel := context.WithTimeout(ctx, reportTimeout)
	defer cancel()

	text, err := h.deps.Reporter.UserReport(reportCtx, hashed, name, group)
	if err != nil {
		log.ErrorContext(ctx, "Failed to build user report", "error", err, "chat_id", chatID)
		if _, sendErr := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: h.deps.Config.Messages.GeneralError}); sendErr != nil {
			log.ErrorContext(ctx, "Failed to send error notice", "error", sendErr, "chat_id", chatID)
		}
		return
	}

	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeMarkdownV1,
	}); err != nil {
		log.ErrorContext(ctx, "Failed to send user report", "error", err, "chat_id", chatID)
	}
}
