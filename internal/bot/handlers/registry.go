package handlers

import (
	tgbot "github.com/go-telegram/bot"
)

// RegisteredHandler bundles a handler with its registration metadata
// and the middleware chain guarding it.
type RegisteredHandler struct {
	HandlerType tgbot.HandlerType
	Pattern     string
	Handler     tgbot.HandlerFunc
	Middleware  []tgbot.Middleware
	MatchType   tgbot.MatchType
}

// RegisterAllCommands returns the full handler table: every bot command
// plus the callback-query handler for report navigation. Guards compose
// outermost-first, so the first failing guard decides the response.
func RegisterAllCommands(deps HandlerDeps) map[string]RegisteredHandler {
	handlers := make(map[string]RegisteredHandler)

	handlers["/help"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "help",
		Handler:     NewHelpHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
	}
	handlers["/me"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "me",
		Handler:     NewMeHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
	}

	groupOnly := []tgbot.Middleware{GroupChatOnly(deps)}

	handlers["/stats"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "stats",
		Handler:     NewStatsHandler(deps, false),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  groupOnly,
	}
	handlers["/networkstats"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "networkstats",
		Handler:     NewStatsHandler(deps, true),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  groupOnly,
	}
	handlers["/gid"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "gid",
		Handler:     NewGroupIDHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  []tgbot.Middleware{GroupChatOnly(deps), AdminOnly(deps)},
	}
	handlers["/debug"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "debug",
		Handler:     NewDebugHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  []tgbot.Middleware{AdminOnly(deps)},
	}

	handlers["navigation"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeCallbackQueryData,
		Pattern:     "",
		Handler:     NewNavigationHandler(deps),
		MatchType:   tgbot.MatchTypePrefix,
	}

	return handlers
}
