package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/pandarinos/yve/internal/database"
	"github.com/pandarinos/yve/internal/pager"
)

// NewNavigationHandler returns the callback-query handler for the
// forward/backward buttons on report messages.
func NewNavigationHandler(deps HandlerDeps) bot.HandlerFunc {
	return navigationHandler{deps}.Handle
}

type navigationHandler struct {
	deps HandlerDeps
}

func (h navigationHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "navigation")

	q := update.CallbackQuery
	if q == nil {
		return
	}

	// Answer the callback query unconditionally so the client clears
	// its pending indicator, whether or not the report changes.
	if _, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: q.ID}); err != nil {
		log.WarnContext(ctx, "Failed to answer callback query", "error", err)
	}

	msg := q.Message.Message
	if msg == nil {
		log.DebugContext(ctx, "Callback on inaccessible message ignored")
		return
	}

	dir, ok := pager.ParseDirection(q.Data)
	if !ok {
		log.WarnContext(ctx, "Callback with unknown data ignored", "data", q.Data)
		return
	}

	res := h.deps.Pager.Navigate(msg.ID, dir)
	if !res.Changed {
		log.DebugContext(ctx, "Navigation at window boundary, nothing to do", "message_id", msg.ID)
		return
	}

	chatID := msg.Chat.ID
	group := database.GroupID(chatID)
	if res.Global {
		group = database.AllGroups()
	}

	reportCtx, cancel := context.WithTimeout(ctx, reportTimeout)
	defer cancel()

	text, err := h.deps.Reporter.Report(reportCtx, group, res.Window)
	if err != nil {
		log.ErrorContext(ctx, "Failed to build report for navigation", "error", err, "chat_id", chatID)
		if _, sendErr := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: h.deps.Config.Messages.GeneralError}); sendErr != nil {
			log.ErrorContext(ctx, "Failed to send error notice", "error", sendErr, "chat_id", chatID)
		}
		return
	}

	_, err = b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      chatID,
		MessageID:   msg.ID,
		Text:        text,
		ParseMode:   models.ParseModeMarkdownV1,
		ReplyMarkup: navigationMarkup(pager.ControlsFor(res.Window)),
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to edit report message", "error", err, "chat_id", chatID, "message_id", msg.ID)
		return
	}

	log.InfoContext(ctx, "Report navigated", "chat_id", chatID, "message_id", msg.ID, "window", res.Window)
}
