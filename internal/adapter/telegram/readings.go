package telegram

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/escalopa/odoj-bot/internal/domain"
	"github.com/escalopa/odoj-bot/internal/quran"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

const (
	readingsPerPage   = 5
	studentsPerPage   = 10
	leaderboardLimit  = 10
	calendarDaysInRow = 5

	// a student's history is cut to its newest entries to stay under the message limit
	studentReadingsShown = 40

	boardDaily = "daily"
	boardTotal = "total"
)

// sendReadingsList sends a paginated list of readings
func (b *Bot) sendReadingsList(chatID int64, lang domain.Language, readings []*domain.Reading, page int) {
	text, keyboard := b.formatReadingsList(lang, readings, page)

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	msg.ParseMode = tgbotapi.ModeHTML
	b.send(msg)
}

// editReadingsList reloads the user's readings into an existing message
func (b *Bot) editReadingsList(ctx context.Context, msg *tgbotapi.Message, userID string, lang domain.Language, page int) {
	readings, err := b.service.ListReadings(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("list readings")
		return
	}

	if len(readings) == 0 {
		b.editMessage(msg, b.i18n.Get(lang, "readings.empty"), nil)
		return
	}

	text, keyboard := b.formatReadingsList(lang, readings, page)
	b.editMessage(msg, text, &keyboard)
}

// formatReadingsList shows the newest readings first, each with edit and delete buttons
func (b *Bot) formatReadingsList(lang domain.Language, readings []*domain.Reading, page int) (string, tgbotapi.InlineKeyboardMarkup) {
	totalPages := max(1, (len(readings)+readingsPerPage-1)/readingsPerPage)
	page = max(0, min(page, totalPages-1))

	start := page * readingsPerPage
	end := min(start+readingsPerPage, len(readings))

	var text strings.Builder
	fmt.Fprintf(&text, "<b>%s</b>\n", b.i18n.Get(lang, "readings.title"))
	fmt.Fprintf(&text, "%s: %d\n\n", b.i18n.Get(lang, "readings.total"), len(readings))

	var rows [][]tgbotapi.InlineKeyboardButton

	for i := start; i < end; i++ {
		r := readings[len(readings)-1-i]

		fmt.Fprintf(&text, "%d. 📅 %s\n📖 %s\n📄 %d · 📚 %.2f\n\n",
			i+1, r.Date, html.EscapeString(b.service.FormatRange(lang, readingRange(r))), r.TotalPages, r.JuzObtained)

		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%s #%d", b.i18n.Get(lang, "reading.edit"), i+1), "edit:"+r.ID),
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%s #%d", b.i18n.Get(lang, "reading.delete"), i+1), "del:"+r.ID),
		))
	}

	rows = append(rows, b.navRow(lang, "rpage", page, totalPages)...)

	// Add new reading button
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("➕ "+b.i18n.Get(lang, "reading.new"), "newreading"),
	))

	return text.String(), tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) formatConfirm(lang domain.Language, r quran.ReadingRange, res quran.ProgressResult) string {
	return b.i18n.Get(lang, "reading.confirm",
		html.EscapeString(b.service.FormatRange(lang, r)), res.TotalPages, res.JuzObtained)
}

func (b *Bot) formatStats(lang domain.Language, stats domain.UserTotal) string {
	return b.i18n.Get(lang, "stats.message",
		stats.Readings, stats.TotalPages, stats.TotalJuz, b.service.KhatamPercent(stats.TotalPages))
}

// leaderboardView renders the daily or all-time board with the switch between them
func (b *Bot) leaderboardView(ctx context.Context, userID string, lang domain.Language, kind string) (string, tgbotapi.InlineKeyboardMarkup, error) {
	var (
		board []domain.UserTotal
		title string
		err   error
	)

	if kind == boardDaily {
		today := b.service.Today()
		title = b.i18n.Get(lang, "leaderboard.daily_title", today)
		board, err = b.service.DailyLeaderboard(ctx, today, leaderboardLimit)
	} else {
		title = b.i18n.Get(lang, "leaderboard.title")
		board, err = b.service.Leaderboard(ctx, leaderboardLimit)
	}
	if err != nil {
		return "", tgbotapi.InlineKeyboardMarkup{}, err
	}

	return b.formatLeaderboard(lang, title, board, userID), b.leaderboardKeyboard(lang), nil
}

func (b *Bot) formatLeaderboard(lang domain.Language, title string, board []domain.UserTotal, userID string) string {
	var text strings.Builder
	fmt.Fprintf(&text, "<b>%s</b>\n\n", title)

	if len(board) == 0 {
		text.WriteString(b.i18n.Get(lang, "leaderboard.empty"))
		return text.String()
	}

	for i, t := range board {
		name := t.UserName
		if name == "" {
			name = b.i18n.Get(lang, "leaderboard.anonymous")
		}
		name = html.EscapeString(name)
		if t.UserID == userID {
			name = "<b>" + name + "</b>"
		}

		fmt.Fprintf(&text, "%s %s: %.2f juz (%d)\n", rankMedal(i), name, t.TotalJuz, t.TotalPages)
	}

	return text.String()
}

// formatCalendar renders the Ramadan days as a grid, marking days with a reading
func (b *Bot) formatCalendar(lang domain.Language, days []domain.CalendarDay) string {
	var text strings.Builder
	fmt.Fprintf(&text, "<b>%s</b>\n\n", b.i18n.Get(lang, "calendar.title"))

	var total float64
	for i, d := range days {
		mark := "⬜"
		if d.HasReading {
			mark = "✅"
			total += d.TotalJuz
		}
		fmt.Fprintf(&text, "%s%02d ", mark, d.Day)
		if (i+1)%calendarDaysInRow == 0 {
			text.WriteString("\n")
		}
	}

	for _, d := range days {
		if d.HasReading {
			fmt.Fprintf(&text, "\n%s (%s): %.2f juz", b.i18n.Get(lang, "calendar.day", d.Day), d.Date, d.TotalJuz)
		}
	}
	if total > 0 {
		fmt.Fprintf(&text, "\n\n📚 %.2f juz", quran.RoundJuz(total))
	}

	return text.String()
}

// formatStudents lists every student with totals and a button opening their readings
func (b *Bot) formatStudents(lang domain.Language, students []domain.UserTotal, page int) (string, tgbotapi.InlineKeyboardMarkup) {
	totalPages := max(1, (len(students)+studentsPerPage-1)/studentsPerPage)
	page = max(0, min(page, totalPages-1))

	start := page * studentsPerPage
	end := min(start+studentsPerPage, len(students))

	var text strings.Builder
	fmt.Fprintf(&text, "<b>%s</b> (%d)\n\n", b.i18n.Get(lang, "students.title"), len(students))

	var rows [][]tgbotapi.InlineKeyboardButton
	for i := start; i < end; i++ {
		st := students[i]
		name := b.studentName(lang, st.UserName)

		fmt.Fprintf(&text, "%d. %s: %.2f juz (%d) · %d×\n",
			i+1, html.EscapeString(name), st.TotalJuz, st.TotalPages, st.Readings)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%d. %s", i+1, name), "student:"+st.UserID),
		))
	}

	rows = append(rows, b.navRow(lang, "stpage", page, totalPages)...)

	return text.String(), tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// formatStudentReadings shows one student's readings oldest first, ending with their totals
func (b *Bot) formatStudentReadings(lang domain.Language, readings []*domain.Reading) (string, tgbotapi.InlineKeyboardMarkup) {
	back := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬅️ "+b.i18n.Get(lang, "nav.back"), "stpage:0"),
	))

	if len(readings) == 0 {
		return b.i18n.Get(lang, "students.no_readings"), back
	}

	var (
		text  strings.Builder
		pages int
		juz   float64
	)
	name := b.studentName(lang, readings[len(readings)-1].UserName)
	fmt.Fprintf(&text, "<b>%s</b>\n\n", html.EscapeString(b.i18n.Get(lang, "students.readings", name)))

	skip := max(0, len(readings)-studentReadingsShown)
	if skip > 0 {
		text.WriteString("…\n")
	}
	for i, r := range readings {
		pages += r.TotalPages
		juz += r.JuzObtained
		if i < skip {
			continue
		}
		fmt.Fprintf(&text, "📅 %s · %s · 📄 %d · 📚 %.2f\n",
			r.Date, html.EscapeString(b.service.FormatRange(lang, readingRange(r))), r.TotalPages, r.JuzObtained)
	}

	fmt.Fprintf(&text, "\n%s: %d · 📄 %d · 📚 %.2f",
		b.i18n.Get(lang, "readings.total"), len(readings), pages, quran.RoundJuz(juz))

	return text.String(), back
}

func (b *Bot) studentName(lang domain.Language, name string) string {
	if name == "" {
		return b.i18n.Get(lang, "leaderboard.anonymous")
	}
	return name
}

func readingRange(r *domain.Reading) quran.ReadingRange {
	return quran.ReadingRange{StartSurah: r.StartSurah, StartAyah: r.StartAyah, EndSurah: r.EndSurah, EndAyah: r.EndAyah}
}

func rankMedal(i int) string {
	switch i {
	case 0:
		return "🥇"
	case 1:
		return "🥈"
	case 2:
		return "🥉"
	default:
		return fmt.Sprintf("%d.", i+1)
	}
}
