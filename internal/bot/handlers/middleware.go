// Package handlers contains the Telegram command, message and callback
// handlers, their registration metadata, and the access guard middleware.
package handlers

import (
	"context"
	"fmt"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// AdminOnly guards a handler so only configured admins can invoke it.
// Rejected users get a visible denial naming their ID, and the guarded
// handler is never executed.
func AdminOnly(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
			if update.Message == nil || update.Message.From == nil {
				return
			}

			userID := update.Message.From.ID
			if !deps.Config.Telegram.IsAdmin(userID) {
				chatID := update.Message.Chat.ID
				log := deps.Logger.With("middleware", "admin_only")
				log.WarnContext(ctx, "Unauthorized access attempt", "user_id", userID, "chat_id", chatID)

				_, err := bot.SendMessage(ctx, &tgbot.SendMessageParams{
					ChatID: chatID,
					Text:   fmt.Sprintf(deps.Config.Messages.NotAuthorized, userID),
				})
				if err != nil {
					log.ErrorContext(ctx, "Failed to send denial message", "error", err, "chat_id", chatID)
				}
				return
			}

			next(ctx, bot, update)
		}
	}
}

// GroupChatOnly guards a handler so it only runs in group chats.
// Invocations from private chats get a visible notice.
func GroupChatOnly(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
			if update.Message == nil {
				return
			}

			if update.Message.Chat.Type == models.ChatTypePrivate {
				chatID := update.Message.Chat.ID
				log := deps.Logger.With("middleware", "group_chat_only")
				log.DebugContext(ctx, "Command rejected in private chat", "chat_id", chatID)

				_, err := bot.SendMessage(ctx, &tgbot.SendMessageParams{
					ChatID: chatID,
					Text:   deps.Config.Messages.GroupOnly,
				})
				if err != nil {
					log.ErrorContext(ctx, "Failed to send group-only notice", "error", err, "chat_id", chatID)
				}
				return
			}

			next(ctx, bot, update)
		}
	}
}
