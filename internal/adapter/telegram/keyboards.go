package telegram

import (
	"fmt"

	"github.com/escalopa/odoj-bot/internal/adapter/i18n"
	"github.com/escalopa/odoj-bot/internal/domain"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const surahsPerPage = 10

func (b *Bot) surahKeyboard(lang domain.Language, page int) tgbotapi.InlineKeyboardMarkup {
	surahs := b.service.GetAllSurahs()
	totalPages := (len(surahs) + surahsPerPage - 1) / surahsPerPage

	page = max(0, min(page, totalPages-1))
	start := page * surahsPerPage
	end := min(start+surahsPerPage, len(surahs))

	var rows [][]tgbotapi.InlineKeyboardButton

	// Add surah buttons (2 per row)
	for i := start; i < end; i += 2 {
		row := []tgbotapi.InlineKeyboardButton{b.surahButton(lang, surahs[i].Number)}
		if i+1 < end {
			row = append(row, b.surahButton(lang, surahs[i+1].Number))
		}
		rows = append(rows, row)
	}

	rows = append(rows, b.navRow(lang, "spage", page, totalPages)...)

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) surahButton(lang domain.Language, number int) tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonData(
		i18n.FormatSurahButton(lang, b.i18n, number),
		fmt.Sprintf("surah:%d", number),
	)
}

// navRow returns a prev/position/next row, or nothing for a single page
func (b *Bot) navRow(lang domain.Language, prefix string, page, totalPages int) [][]tgbotapi.InlineKeyboardButton {
	if totalPages <= 1 {
		return nil
	}

	var row []tgbotapi.InlineKeyboardButton
	if page > 0 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			"⬅️ "+b.i18n.Get(lang, "nav.prev"),
			fmt.Sprintf("%s:%d", prefix, page-1),
		))
	}
	row = append(row, tgbotapi.NewInlineKeyboardButtonData(
		fmt.Sprintf("%d/%d", page+1, totalPages),
		"noop",
	))
	if page < totalPages-1 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			b.i18n.Get(lang, "nav.next")+" ➡️",
			fmt.Sprintf("%s:%d", prefix, page+1),
		))
	}

	return [][]tgbotapi.InlineKeyboardButton{row}
}

// ayahKeyboard is a telephone-style keypad with backspace and done
func (b *Bot) ayahKeyboard(lang domain.Language) tgbotapi.InlineKeyboardMarkup {
	digitRow := func(digits ...string) []tgbotapi.InlineKeyboardButton {
		row := make([]tgbotapi.InlineKeyboardButton, len(digits))
		for i, d := range digits {
			row[i] = tgbotapi.NewInlineKeyboardButtonData(d, "digit:"+d)
		}
		return row
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		digitRow("1", "2", "3"),
		digitRow("4", "5", "6"),
		digitRow("7", "8", "9"),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ "+b.i18n.Get(lang, "nav.back"), "clear"),
			tgbotapi.NewInlineKeyboardButtonData("0", "digit:0"),
			tgbotapi.NewInlineKeyboardButtonData("✅ "+b.i18n.Get(lang, "nav.done"), "done"),
		),
	)
}

func (b *Bot) confirmKeyboard(lang domain.Language) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.i18n.Get(lang, "reading.submit"), "submit"),
			tgbotapi.NewInlineKeyboardButtonData(b.i18n.Get(lang, "reading.cancel"), "cancel"),
		),
	)
}

func (b *Bot) leaderboardKeyboard(lang domain.Language) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.i18n.Get(lang, "leaderboard.daily"), "board:"+boardDaily),
			tgbotapi.NewInlineKeyboardButtonData(b.i18n.Get(lang, "leaderboard.total"), "board:"+boardTotal),
		),
	)
}

func languageKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🇬🇧 English", "lang:"+string(domain.LangEnglish)),
			tgbotapi.NewInlineKeyboardButtonData("🇮🇩 Bahasa Indonesia", "lang:"+string(domain.LangIndonesian)),
		),
	)
}
