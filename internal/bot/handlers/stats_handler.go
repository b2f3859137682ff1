package handlers

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/pandarinos/yve/internal/database"
	"github.com/pandarinos/yve/internal/pager"
)

const reportTimeout = 10 * time.Second

// NewStatsHandler returns a handler for the /stats and /networkstats
// commands. With global set, the report aggregates across all groups
// and later navigation on the same message stays network-wide.
func NewStatsHandler(deps HandlerDeps, global bool) bot.HandlerFunc {
	return statsHandler{deps: deps, global: global}.Handle
}

type statsHandler struct {
	deps   HandlerDeps
	global bool
}

func (h statsHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "stats", "global", h.global)

	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}
	chatID := msg.Chat.ID

	group := database.GroupID(chatID)
	if h.global {
		group = database.AllGroups()
	}

	reportCtx, cancel := context.WithTimeout(ctx, reportTimeout)
	defer cancel()

	text, err := h.deps.Reporter.Report(reportCtx, group, database.WindowThisMonth)
	if err != nil {
		log.ErrorContext(ctx, "Failed to build report", "error", err, "chat_id", chatID)
		h.sendPlain(ctx, b, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	sent, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   models.ParseModeMarkdownV1,
		ReplyMarkup: navigationMarkup(pager.ControlsFor(database.WindowThisMonth)),
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send report", "error", err, "chat_id", chatID)
		return
	}

	h.deps.Pager.Track(sent.ID, h.global)
	log.InfoContext(ctx, "Report sent", "chat_id", chatID, "message_id", sent.ID)
}

func (h statsHandler) sendPlain(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text}); err != nil {
		h.deps.Logger.ErrorContext(ctx, "Failed to send error notice", "error", err, "chat_id", chatID)
	}
}
