package telegram

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/escalopa/odoj-bot/internal/application"
	"github.com/escalopa/odoj-bot/internal/domain"
	"github.com/escalopa/odoj-bot/internal/quran"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

const maxAyahDigits = 3

type Bot struct {
	api      *tgbotapi.BotAPI
	service  *application.ReadingService
	i18n     domain.I18nPort
	commands map[string]CommandHandler
	cancel   context.CancelFunc
}

func NewBot(token string, service *application.ReadingService, i18n domain.I18nPort) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	bot := &Bot{
		api:      api,
		service:  service,
		i18n:     i18n,
		commands: make(map[string]CommandHandler),
	}

	// Register commands
	bot.registerCommands()

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	b.cancel = cancel

	log.Info().Str("account", b.api.Self.UserName).Msg("authorized on telegram")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) Stop() error {
	if b.cancel != nil {
		b.cancel()
	}
	b.api.StopReceivingUpdates()
	return nil
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	userID := getUserID(update)
	if userID == "" {
		return
	}

	lang := b.service.GetUserLanguage(ctx, userID)

	// Handle commands
	if update.Message != nil && update.Message.IsCommand() {
		b.handleCommand(ctx, update.Message, lang)
		return
	}

	// Handle callback queries (button presses)
	if update.CallbackQuery != nil {
		b.handleCallback(ctx, update.CallbackQuery, lang)
		return
	}

	// Handle text messages (typed ayah number)
	if update.Message != nil && update.Message.Text != "" {
		b.handleText(ctx, update.Message, lang)
		return
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, lang domain.Language) {
	handler, exists := b.commands[msg.Command()]
	if !exists {
		b.sendMessage(msg.Chat.ID, b.i18n.Get(lang, "error.unknown_command"))
		return
	}

	handler(ctx, msg)
}

func (b *Bot) handleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery, lang domain.Language) {
	if callback.Message == nil {
		return
	}

	userID := strconv.FormatInt(callback.From.ID, 10)
	data := callback.Data
	answered := false

	// Answer callback to remove loading state, unless an alert was shown
	defer func() {
		if !answered {
			b.request(tgbotapi.NewCallback(callback.ID, ""))
		}
	}()
	alert := func(text string) {
		answered = true
		b.answerCallbackAlert(callback.ID, text)
	}

	if v, ok := strings.CutPrefix(data, "lang:"); ok {
		b.handleLanguageChange(ctx, callback.Message, userID, domain.Language(v))
		return
	}

	if v, ok := strings.CutPrefix(data, "spage:"); ok {
		page, _ := strconv.Atoi(v)
		b.editSurahSelection(ctx, callback.Message, userID, lang, page)
		return
	}

	if v, ok := strings.CutPrefix(data, "surah:"); ok {
		surahNum, err := strconv.Atoi(v)
		if err != nil {
			alert(b.i18n.Get(lang, "error.invalid_input"))
			return
		}
		b.handleSurahSelected(ctx, callback.Message, userID, lang, surahNum, alert)
		return
	}

	if v, ok := strings.CutPrefix(data, "digit:"); ok {
		b.handleDigitInput(ctx, callback.Message, userID, lang, v)
		return
	}

	if v, ok := strings.CutPrefix(data, "rpage:"); ok {
		page, _ := strconv.Atoi(v)
		b.editReadingsList(ctx, callback.Message, userID, lang, page)
		return
	}

	if v, ok := strings.CutPrefix(data, "del:"); ok {
		b.handleDeleteReading(ctx, callback.Message, userID, lang, v, alert)
		return
	}

	if v, ok := strings.CutPrefix(data, "edit:"); ok {
		b.handleEditReading(ctx, callback.Message, userID, lang, v, alert)
		return
	}

	if v, ok := strings.CutPrefix(data, "board:"); ok {
		text, keyboard, err := b.leaderboardView(ctx, userID, lang, v)
		if err != nil {
			log.Error().Err(err).Msg("leaderboard")
			alert(b.i18n.Get(lang, "error.generic"))
			return
		}
		b.editMessage(callback.Message, text, &keyboard)
		return
	}

	if v, ok := strings.CutPrefix(data, "stpage:"); ok {
		page, _ := strconv.Atoi(v)
		b.editStudents(ctx, callback.Message, userID, lang, page, alert)
		return
	}

	if v, ok := strings.CutPrefix(data, "student:"); ok {
		b.showStudentReadings(ctx, callback.Message, userID, lang, v, alert)
		return
	}

	switch data {
	case "clear":
		b.handleClearDigit(ctx, callback.Message, userID, lang)
	case "done":
		b.handleAyahDone(ctx, callback.Message, userID, lang)
	case "submit":
		b.handleSubmit(ctx, callback.Message, callback.From, userID, lang, alert)
	case "cancel":
		if err := b.service.CancelReading(ctx, userID); err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("cancel reading")
			return
		}
		b.editMessage(callback.Message, b.i18n.Get(lang, "reading.cancelled"), nil)
	case "newreading":
		b.request(tgbotapi.NewDeleteMessage(callback.Message.Chat.ID, callback.Message.MessageID))
		b.startReading(ctx, callback.Message.Chat.ID, userID, lang)
	}
}

func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message, lang domain.Language) {
	userID := strconv.FormatInt(msg.From.ID, 10)
	chatID := msg.Chat.ID

	state, err := b.service.GetCurrentState(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("get state")
		b.sendMessage(chatID, b.i18n.Get(lang, "error.generic"))
		return
	}

	// Typed ayah numbers are accepted as well as the keypad
	if state == domain.StateEnterStartAyah || state == domain.StateEnterEndAyah {
		next, err := b.service.HandleAyahInput(ctx, userID, msg.Text)
		if err != nil {
			b.sendMessage(chatID, b.i18n.Get(lang, errorKey(err)))
			return
		}
		_ = b.service.ClearAyahInput(ctx, userID)
		b.sendNextStep(ctx, chatID, userID, lang, next)
		return
	}

	// For other states, show help
	b.sendMessage(chatID, b.i18n.Get(lang, "help.message"))
}

func (b *Bot) handleLanguageChange(ctx context.Context, msg *tgbotapi.Message, userID string, lang domain.Language) {
	if !isSupported(lang) {
		return
	}

	if err := b.service.HandleStart(ctx, userID, lang); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("set language")
		return
	}

	b.editMessage(msg, b.i18n.Get(lang, "language.changed"), nil)
	b.sendSurahSelection(msg.Chat.ID, lang, domain.StateSelectStartSurah, 0)
}

func (b *Bot) handleSurahSelected(ctx context.Context, msg *tgbotapi.Message, userID string, lang domain.Language, surahNum int, alert func(string)) {
	if err := b.service.HandleSurahSelection(ctx, userID, surahNum); err != nil {
		log.Error().Err(err).Str("user_id", userID).Int("surah", surahNum).Msg("select surah")
		alert(b.i18n.Get(lang, errorKey(err)))
		return
	}

	// Clear any previous ayah input
	_ = b.service.ClearAyahInput(ctx, userID)

	text, err := b.ayahPrompt(ctx, userID, lang, "")
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("ayah prompt")
		return
	}
	keyboard := b.ayahKeyboard(lang)
	b.editMessage(msg, text, &keyboard)
}

func (b *Bot) handleDigitInput(ctx context.Context, msg *tgbotapi.Message, userID string, lang domain.Language, digit string) {
	currentInput := b.service.GetAyahInput(ctx, userID)

	// Ayah numbers have at most 3 digits
	if len(currentInput) < maxAyahDigits {
		currentInput += digit
		if err := b.service.SetAyahInput(ctx, userID, currentInput); err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("set ayah input")
			return
		}
	}

	b.refreshAyahPrompt(ctx, msg, userID, lang, currentInput, "")
}

func (b *Bot) handleClearDigit(ctx context.Context, msg *tgbotapi.Message, userID string, lang domain.Language) {
	currentInput := b.service.GetAyahInput(ctx, userID)

	// Remove last digit
	if len(currentInput) > 0 {
		currentInput = currentInput[:len(currentInput)-1]
		if err := b.service.SetAyahInput(ctx, userID, currentInput); err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("set ayah input")
			return
		}
	}

	b.refreshAyahPrompt(ctx, msg, userID, lang, currentInput, "")
}

func (b *Bot) handleAyahDone(ctx context.Context, msg *tgbotapi.Message, userID string, lang domain.Language) {
	ayahInput := b.service.GetAyahInput(ctx, userID)
	if ayahInput == "" {
		b.refreshAyahPrompt(ctx, msg, userID, lang, "", b.i18n.Get(lang, "error.invalid_ayah"))
		return
	}

	next, err := b.service.HandleAyahInput(ctx, userID, ayahInput)
	if err != nil {
		log.Debug().Err(err).Str("user_id", userID).Msg("rejected ayah input")
		b.refreshAyahPrompt(ctx, msg, userID, lang, ayahInput, b.i18n.Get(lang, errorKey(err)))
		return
	}

	// Clear input after successful submission
	_ = b.service.ClearAyahInput(ctx, userID)

	// Replace the keypad with the next step
	b.request(tgbotapi.NewDeleteMessage(msg.Chat.ID, msg.MessageID))
	b.sendNextStep(ctx, msg.Chat.ID, userID, lang, next)
}

// sendNextStep shows the end surah picker or the confirmation screen
func (b *Bot) sendNextStep(ctx context.Context, chatID int64, userID string, lang domain.Language, next domain.State) {
	if next != domain.StateConfirm {
		b.sendSurahSelection(chatID, lang, next, 0)
		return
	}

	r, res, err := b.service.Preview(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("preview reading")
		b.sendMessage(chatID, b.i18n.Get(lang, errorKey(err)))
		return
	}

	msg := tgbotapi.NewMessage(chatID, b.formatConfirm(lang, r, res))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = b.confirmKeyboard(lang)
	b.send(msg)
}

func (b *Bot) handleSubmit(ctx context.Context, msg *tgbotapi.Message, from *tgbotapi.User, userID string, lang domain.Language, alert func(string)) {
	editID, err := b.service.EditingReading(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("get edit id")
		alert(b.i18n.Get(lang, "error.generic"))
		return
	}

	reading, err := b.service.SubmitReading(ctx, userID, displayName(from))
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("submit reading")
		alert(b.i18n.Get(lang, errorKey(err)))
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("reading_id", reading.ID).
		Int("pages", reading.TotalPages).
		Float64("juz", reading.JuzObtained).
		Bool("edited", editID != "").
		Msg("reading saved")

	key := "reading.saved"
	if editID != "" {
		key = "reading.updated"
	}
	text := b.i18n.Get(lang, key, reading.Date, reading.TotalPages, reading.JuzObtained)
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ "+b.i18n.Get(lang, "reading.new"), "newreading"),
		),
	)
	b.editMessage(msg, text, &keyboard)
}

func (b *Bot) handleDeleteReading(ctx context.Context, msg *tgbotapi.Message, userID string, lang domain.Language, readingID string, alert func(string)) {
	if err := b.service.DeleteReading(ctx, userID, readingID); err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("reading_id", readingID).Msg("delete reading")
		alert(b.i18n.Get(lang, errorKey(err)))
		return
	}

	alert(b.i18n.Get(lang, "reading.deleted"))
	b.editReadingsList(ctx, msg, userID, lang, 0)
}

// handleEditReading reopens the range picker for a stored reading
func (b *Bot) handleEditReading(ctx context.Context, msg *tgbotapi.Message, userID string, lang domain.Language, readingID string, alert func(string)) {
	reading, err := b.service.StartEdit(ctx, userID, readingID, lang)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("reading_id", readingID).Msg("edit reading")
		alert(b.i18n.Get(lang, errorKey(err)))
		return
	}

	rng := html.EscapeString(b.service.FormatRange(lang, readingRange(reading)))
	b.editMessage(msg, b.i18n.Get(lang, "reading.editing", reading.Date, rng), nil)
	b.sendSurahSelection(msg.Chat.ID, lang, domain.StateSelectStartSurah, 0)
}

func (b *Bot) editStudents(ctx context.Context, msg *tgbotapi.Message, userID string, lang domain.Language, page int, alert func(string)) {
	students, err := b.service.StudentTotals(ctx, userID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("student totals")
		alert(b.i18n.Get(lang, errorKey(err)))
		return
	}

	if len(students) == 0 {
		b.editMessage(msg, b.i18n.Get(lang, "students.empty"), nil)
		return
	}

	text, keyboard := b.formatStudents(lang, students, page)
	b.editMessage(msg, text, &keyboard)
}

func (b *Bot) showStudentReadings(ctx context.Context, msg *tgbotapi.Message, userID string, lang domain.Language, studentID string, alert func(string)) {
	readings, err := b.service.StudentReadings(ctx, userID, studentID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Str("student_id", studentID).Msg("student readings")
		alert(b.i18n.Get(lang, errorKey(err)))
		return
	}

	text, keyboard := b.formatStudentReadings(lang, readings)
	b.editMessage(msg, text, &keyboard)
}

// startReading resets the session and asks for the start surah
func (b *Bot) startReading(ctx context.Context, chatID int64, userID string, lang domain.Language) {
	if err := b.service.HandleStart(ctx, userID, lang); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("start reading")
		b.sendMessage(chatID, b.i18n.Get(lang, "error.generic"))
		return
	}

	b.sendSurahSelection(chatID, lang, domain.StateSelectStartSurah, 0)
}

// ayahPrompt renders the keypad message for the surah being entered
func (b *Bot) ayahPrompt(ctx context.Context, userID string, lang domain.Language, input string) (string, error) {
	state, err := b.service.GetCurrentState(ctx, userID)
	if err != nil {
		return "", err
	}

	surahNum, err := b.service.GetSelectedSurah(ctx, userID)
	if err != nil {
		return "", err
	}

	key := "ayah.select_start"
	if state == domain.StateEnterEndAyah {
		key = "ayah.select_end"
	}

	text := b.i18n.Get(lang, key, b.i18n.GetSurahName(lang, surahNum), b.service.AyahCount(surahNum))
	if input != "" {
		text += fmt.Sprintf("\n\n📝 %s", input)
	}
	return text, nil
}

func (b *Bot) refreshAyahPrompt(ctx context.Context, msg *tgbotapi.Message, userID string, lang domain.Language, input, warning string) {
	text, err := b.ayahPrompt(ctx, userID, lang, input)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("ayah prompt")
		return
	}
	if warning != "" {
		text += "\n\n⚠️ " + warning
	}

	keyboard := b.ayahKeyboard(lang)
	b.editMessage(msg, text, &keyboard)
}

func (b *Bot) sendSurahSelection(chatID int64, lang domain.Language, state domain.State, page int) {
	msg := tgbotapi.NewMessage(chatID, b.i18n.Get(lang, surahPromptKey(state)))
	msg.ReplyMarkup = b.surahKeyboard(lang, page)
	b.send(msg)
}

func (b *Bot) editSurahSelection(ctx context.Context, msg *tgbotapi.Message, userID string, lang domain.Language, page int) {
	state, err := b.service.GetCurrentState(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("get state")
		return
	}

	keyboard := b.surahKeyboard(lang, page)
	b.editMessage(msg, b.i18n.Get(lang, surahPromptKey(state)), &keyboard)
}

func (b *Bot) sendLanguageSelection(chatID int64, currentLang domain.Language) {
	msg := tgbotapi.NewMessage(chatID, b.i18n.Get(currentLang, "language.select"))
	msg.ReplyMarkup = languageKeyboard()
	b.send(msg)
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	b.send(msg)
}

func (b *Bot) editMessage(msg *tgbotapi.Message, text string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageText(msg.Chat.ID, msg.MessageID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	edit.ReplyMarkup = keyboard
	b.send(edit)
}

func (b *Bot) answerCallbackAlert(callbackID, text string) {
	b.request(tgbotapi.NewCallbackWithAlert(callbackID, text))
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		log.Error().Err(err).Msg("send telegram message")
	}
}

// request is used for calls whose response is not a Message
func (b *Bot) request(c tgbotapi.Chattable) {
	if _, err := b.api.Request(c); err != nil {
		log.Error().Err(err).Msg("telegram request")
	}
}

func surahPromptKey(state domain.State) string {
	if state == domain.StateSelectEndSurah || state == domain.StateEnterEndAyah {
		return "surah.select_end"
	}
	return "surah.select_start"
}

// errorKey maps service errors onto locale keys
func errorKey(err error) string {
	switch {
	case errors.Is(err, quran.ErrUnknownSurah):
		return "error.unknown_surah"
	case errors.Is(err, quran.ErrInvalidAyah):
		return "error.invalid_ayah"
	case errors.Is(err, quran.ErrInvalidRange):
		return "error.invalid_range"
	case errors.Is(err, application.ErrReadingsDisabled):
		return "error.readings_disabled"
	case errors.Is(err, application.ErrNotOwner):
		return "error.not_owner"
	case errors.Is(err, application.ErrNotAdmin):
		return "error.not_admin"
	case errors.Is(err, domain.ErrNotFound):
		return "error.not_found"
	default:
		return "error.generic"
	}
}

func isSupported(lang domain.Language) bool {
	for _, l := range domain.SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

// displayName is what other users see on the leaderboard
func displayName(u *tgbotapi.User) string {
	if u == nil {
		return ""
	}
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" && u.UserName != "" {
		name = "@" + u.UserName
	}
	return name
}

func getUserID(update tgbotapi.Update) string {
	if update.Message != nil && update.Message.From != nil {
		return strconv.FormatInt(update.Message.From.ID, 10)
	}
	if update.CallbackQuery != nil && update.CallbackQuery.From != nil {
		return strconv.FormatInt(update.CallbackQuery.From.ID, 10)
	}
	return ""
}
