package domain

import (
	"context"
	"errors"
)

// ErrNotFound is returned by stores when a record does not exist
var ErrNotFound = errors.New("not found")

// ReadingStorePort defines the interface for reading persistence
type ReadingStorePort interface {
	// CreateReading stores a new reading and fills its ID and CreatedAt
	CreateReading(ctx context.Context, reading *Reading) error

	// GetReading retrieves a reading by ID
	GetReading(ctx context.Context, id string) (*Reading, error)

	// ListReadings lists the readings of a user ordered by date
	ListReadings(ctx context.Context, userID string) ([]*Reading, error)

	// ListAllReadings lists every reading ordered by date
	ListAllReadings(ctx context.Context) ([]*Reading, error)

	// UpdateReading overwrites the range and progress of a stored reading.
	// Owner, name and date are kept.
	UpdateReading(ctx context.Context, reading *Reading) error

	// DeleteReading deletes a reading by ID
	DeleteReading(ctx context.Context, id string) error

	// ReadingsEnabled reports whether new readings are accepted
	ReadingsEnabled(ctx context.Context) (bool, error)

	// SetReadingsEnabled switches acceptance of new readings
	SetReadingsEnabled(ctx context.Context, enabled bool) error
}

// FSMPort defines the interface for finite state machine storage
type FSMPort interface {
	// SetState sets the current state for a user
	SetState(ctx context.Context, userID string, state State) error

	// GetState gets the current state for a user
	GetState(ctx context.Context, userID string) (State, error)

	// DeleteState deletes the state for a user
	DeleteState(ctx context.Context, userID string) error

	// SetData sets temporary data for a user's current session
	SetData(ctx context.Context, userID, key, value string) error

	// GetData gets temporary data for a user's current session
	GetData(ctx context.Context, userID, key string) (string, error)

	// DeleteData deletes temporary data for a user
	DeleteData(ctx context.Context, userID, key string) error
}

// I18nPort defines the interface for internationalization
type I18nPort interface {
	// Get retrieves a translated message
	Get(lang Language, key string, args ...interface{}) string

	// GetSurahName retrieves the localized name of a Surah
	GetSurahName(lang Language, surahNumber int) string
}

// BotPort defines the interface for the bot adapter
type BotPort interface {
	// Start starts the bot
	Start(ctx context.Context) error

	// Stop stops the bot
	Stop() error
}

// State represents the FSM states
type State string

const (
	StateStart            State = "start"
	StateSelectStartSurah State = "select_start_surah"
	StateEnterStartAyah   State = "enter_start_ayah"
	StateSelectEndSurah   State = "select_end_surah"
	StateEnterEndAyah     State = "enter_end_ayah"
	StateConfirm          State = "confirm"
)

// SessionData keys
const (
	SessionKeyStartSurah = "start_surah"
	SessionKeyStartAyah  = "start_ayah"
	SessionKeyEndSurah   = "end_surah"
	SessionKeyEndAyah    = "end_ayah"
	SessionKeyAyahInput  = "ayah_input" // Accumulated digit input for ayah number
	SessionKeyLanguage   = "language"
	SessionKeyEditID     = "edit_id" // Reading replaced on submit, empty for a new one
)
