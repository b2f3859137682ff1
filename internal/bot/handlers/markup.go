package handlers

import (
	"github.com/go-telegram/bot/models"

	"github.com/pandarinos/yve/internal/pager"
)

// navigationMarkup builds the inline keyboard for a report message.
// Only the controls valid at the current window are offered.
func navigationMarkup(c pager.Controls) *models.InlineKeyboardMarkup {
	backward := models.InlineKeyboardButton{Text: "<", CallbackData: "backward"}
	forward := models.InlineKeyboardButton{Text: ">", CallbackData: "forward"}

	var row []models.InlineKeyboardButton
	switch c {
	case pager.ControlsBackwardOnly:
		row = []models.InlineKeyboardButton{backward}
	case pager.ControlsForwardOnly:
		row = []models.InlineKeyboardButton{forward}
	default:
		row = []models.InlineKeyboardButton{backward, forward}
	}

	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{row},
	}
}
