package domain

import "time"

// Reading represents one reported reading session
type Reading struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	UserName    string    `json:"user_name" db:"user_name"`
	Date        string    `json:"date" db:"date"` // YYYY-MM-DD in the app time zone
	StartSurah  int       `json:"start_surah" db:"start_surah"`
	StartAyah   int       `json:"start_ayah" db:"start_ayah"`
	EndSurah    int       `json:"end_surah" db:"end_surah"`
	EndAyah     int       `json:"end_ayah" db:"end_ayah"`
	TotalPages  int       `json:"total_pages" db:"total_pages"`
	JuzObtained float64   `json:"juz_obtained" db:"juz_obtained"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// UserTotal aggregates all readings of one user
type UserTotal struct {
	UserID     string  `json:"user_id"`
	UserName   string  `json:"user_name"`
	TotalPages int     `json:"total_pages"`
	TotalJuz   float64 `json:"total_juz"`
	Readings   int     `json:"readings"`
}

// DailyTotal aggregates readings of one calendar date
type DailyTotal struct {
	Date       string  `json:"date"`
	TotalPages int     `json:"total_pages"`
	TotalJuz   float64 `json:"total_juz"`
}

// CalendarDay is one day of the Ramadan calendar
type CalendarDay struct {
	Day        int     `json:"day"`
	Date       string  `json:"date"`
	TotalJuz   float64 `json:"total_juz"`
	HasReading bool    `json:"has_reading"`
}

// Language represents supported languages
type Language string

const (
	LangEnglish    Language = "en"
	LangIndonesian Language = "id"
)

// SupportedLanguages lists the languages locale files are loaded for
var SupportedLanguages = []Language{LangEnglish, LangIndonesian}
