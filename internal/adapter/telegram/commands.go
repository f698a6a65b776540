package telegram

import (
	"context"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

type CommandHandler func(ctx context.Context, msg *tgbotapi.Message)

// registerCommands registers all bot commands
func (b *Bot) registerCommands() {
	// Register command handlers
	b.commands = map[string]CommandHandler{
		"start":       b.commandStart,
		"help":        b.commandHelp,
		"language":    b.commandLanguage,
		"newreading":  b.commandNewReading,
		"myreadings":  b.commandMyReadings,
		"stats":       b.commandStats,
		"leaderboard": b.commandLeaderboard,
		"calendar":    b.commandCalendar,
		"toggle":      b.commandToggle,
		"students":    b.commandStudents,
	}

	// Set bot commands for Telegram UI. Admin commands stay hidden.
	commands := []tgbotapi.BotCommand{
		{Command: "newreading", Description: "Log a new reading"},
		{Command: "myreadings", Description: "View and delete my readings"},
		{Command: "stats", Description: "My progress"},
		{Command: "leaderboard", Description: "Top readers"},
		{Command: "calendar", Description: "My Ramadan calendar"},
		{Command: "language", Description: "Change language"},
		{Command: "help", Description: "Show help"},
	}

	if _, err := b.api.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		log.Error().Err(err).Msg("set bot commands")
	}
}

func (b *Bot) commandStart(ctx context.Context, msg *tgbotapi.Message) {
	userID := strconv.FormatInt(msg.From.ID, 10)
	lang := b.service.GetUserLanguage(ctx, userID)

	// Send welcome message
	b.sendMessage(msg.Chat.ID, b.i18n.Get(lang, "welcome.message"))

	// Show surah selection
	b.startReading(ctx, msg.Chat.ID, userID, lang)
}

func (b *Bot) commandHelp(ctx context.Context, msg *tgbotapi.Message) {
	userID := strconv.FormatInt(msg.From.ID, 10)
	lang := b.service.GetUserLanguage(ctx, userID)
	b.sendMessage(msg.Chat.ID, b.i18n.Get(lang, "help.message"))
}

func (b *Bot) commandLanguage(ctx context.Context, msg *tgbotapi.Message) {
	userID := strconv.FormatInt(msg.From.ID, 10)
	lang := b.service.GetUserLanguage(ctx, userID)
	b.sendLanguageSelection(msg.Chat.ID, lang)
}

func (b *Bot) commandNewReading(ctx context.Context, msg *tgbotapi.Message) {
	userID := strconv.FormatInt(msg.From.ID, 10)
	lang := b.service.GetUserLanguage(ctx, userID)
	b.startReading(ctx, msg.Chat.ID, userID, lang)
}

func (b *Bot) commandMyReadings(ctx context.Context, msg *tgbotapi.Message) {
	userID := strconv.FormatInt(msg.From.ID, 10)
	lang := b.service.GetUserLanguage(ctx, userID)

	readings, err := b.service.ListReadings(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("list readings")
		b.sendMessage(msg.Chat.ID, b.i18n.Get(lang, "error.generic"))
		return
	}

	if len(readings) == 0 {
		b.sendMessage(msg.Chat.ID, b.i18n.Get(lang, "readings.empty"))
		return
	}

	b.sendReadingsList(msg.Chat.ID, lang, readings, 0)
}

func (b *Bot) commandStats(ctx context.Context, msg *tgbotapi.Message) {
	userID := strconv.FormatInt(msg.From.ID, 10)
	lang := b.service.GetUserLanguage(ctx, userID)

	stats, err := b.service.UserStats(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("user stats")
		b.sendMessage(msg.Chat.ID, b.i18n.Get(lang, "error.generic"))
		return
	}

	b.sendMessage(msg.Chat.ID, b.formatStats(lang, stats))
}

func (b *Bot) commandLeaderboard(ctx context.Context, msg *tgbotapi.Message) {
	userID := strconv.FormatInt(msg.From.ID, 10)
	lang := b.service.GetUserLanguage(ctx, userID)

	text, keyboard, err := b.leaderboardView(ctx, userID, lang, boardTotal)
	if err != nil {
		log.Error().Err(err).Msg("leaderboard")
		b.sendMessage(msg.Chat.ID, b.i18n.Get(lang, "error.generic"))
		return
	}

	reply := tgbotapi.NewMessage(msg.Chat.ID, text)
	reply.ParseMode = tgbotapi.ModeHTML
	reply.ReplyMarkup = keyboard
	b.send(reply)
}

func (b *Bot) commandCalendar(ctx context.Context, msg *tgbotapi.Message) {
	userID := strconv.FormatInt(msg.From.ID, 10)
	lang := b.service.GetUserLanguage(ctx, userID)

	days, err := b.service.Calendar(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("calendar")
		b.sendMessage(msg.Chat.ID, b.i18n.Get(lang, "error.generic"))
		return
	}

	b.sendMessage(msg.Chat.ID, b.formatCalendar(lang, days))
}

func (b *Bot) commandToggle(ctx context.Context, msg *tgbotapi.Message) {
	userID := strconv.FormatInt(msg.From.ID, 10)
	lang := b.service.GetUserLanguage(ctx, userID)

	enabled, err := b.service.ToggleReadings(ctx, userID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("toggle readings")
		b.sendMessage(msg.Chat.ID, b.i18n.Get(lang, errorKey(err)))
		return
	}

	log.Info().Str("user_id", userID).Bool("enabled", enabled).Msg("readings toggled")
	if enabled {
		b.sendMessage(msg.Chat.ID, b.i18n.Get(lang, "toggle.enabled"))
		return
	}
	b.sendMessage(msg.Chat.ID, b.i18n.Get(lang, "toggle.disabled"))
}

func (b *Bot) commandStudents(ctx context.Context, msg *tgbotapi.Message) {
	userID := strconv.FormatInt(msg.From.ID, 10)
	lang := b.service.GetUserLanguage(ctx, userID)

	students, err := b.service.StudentTotals(ctx, userID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("student totals")
		b.sendMessage(msg.Chat.ID, b.i18n.Get(lang, errorKey(err)))
		return
	}

	if len(students) == 0 {
		b.sendMessage(msg.Chat.ID, b.i18n.Get(lang, "students.empty"))
		return
	}

	text, keyboard := b.formatStudents(lang, students, 0)
	reply := tgbotapi.NewMessage(msg.Chat.ID, text)
	reply.ParseMode = tgbotapi.ModeHTML
	reply.ReplyMarkup = keyboard
	b.send(reply)
}
