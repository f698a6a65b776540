package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/escalopa/odoj-bot/internal/domain"
	"github.com/escalopa/odoj-bot/internal/quran"
)

const dateLayout = "2006-01-02"

var (
	ErrReadingsDisabled = errors.New("reading input is disabled")
	ErrNotOwner         = errors.New("reading belongs to another user")
	ErrNotAdmin         = errors.New("admin only")
)

var sessionKeys = []string{
	domain.SessionKeyStartSurah,
	domain.SessionKeyStartAyah,
	domain.SessionKeyEndSurah,
	domain.SessionKeyEndAyah,
	domain.SessionKeyAyahInput,
	domain.SessionKeyEditID,
}

// Options carries the settings ReadingService does not get from its ports
type Options struct {
	Location        *time.Location
	RamadanStart    time.Time
	AdminIDs        []string
	DefaultLanguage domain.Language
	Now             func() time.Time
}

// ReadingService handles the business logic for the bot
type ReadingService struct {
	calc  *quran.Calculator
	store domain.ReadingStorePort
	fsm   domain.FSMPort
	i18n  domain.I18nPort

	loc          *time.Location
	ramadanStart time.Time
	admins       map[string]struct{}
	defaultLang  domain.Language
	now          func() time.Time
}

func NewReadingService(calc *quran.Calculator, store domain.ReadingStorePort, fsm domain.FSMPort, i18n domain.I18nPort, opts Options) *ReadingService {
	s := &ReadingService{
		calc:         calc,
		store:        store,
		fsm:          fsm,
		i18n:         i18n,
		loc:          opts.Location,
		ramadanStart: opts.RamadanStart,
		admins:       make(map[string]struct{}, len(opts.AdminIDs)),
		defaultLang:  opts.DefaultLanguage,
		now:          opts.Now,
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.defaultLang == "" {
		s.defaultLang = domain.LangEnglish
	}
	for _, id := range opts.AdminIDs {
		s.admins[strings.TrimSpace(id)] = struct{}{}
	}
	return s
}

// HandleStart resets the session and waits for the start surah
func (s *ReadingService) HandleStart(ctx context.Context, userID string, lang domain.Language) error {
	if err := s.resetSession(ctx, userID); err != nil {
		return err
	}

	if err := s.fsm.SetState(ctx, userID, domain.StateSelectStartSurah); err != nil {
		return fmt.Errorf("set state: %w", err)
	}

	// Store user language
	if err := s.fsm.SetData(ctx, userID, domain.SessionKeyLanguage, string(lang)); err != nil {
		return fmt.Errorf("set language: %w", err)
	}

	return nil
}

// GetCurrentState returns the current state for a user
func (s *ReadingService) GetCurrentState(ctx context.Context, userID string) (domain.State, error) {
	return s.fsm.GetState(ctx, userID)
}

// GetUserLanguage retrieves the user's preferred language
func (s *ReadingService) GetUserLanguage(ctx context.Context, userID string) domain.Language {
	langStr, err := s.fsm.GetData(ctx, userID, domain.SessionKeyLanguage)
	if err != nil || langStr == "" {
		return s.defaultLang
	}
	return domain.Language(langStr)
}

// HandleSurahSelection stores the selected surah for whichever end of the
// range the user is choosing and moves on to its ayah.
func (s *ReadingService) HandleSurahSelection(ctx context.Context, userID string, surahNumber int) error {
	if _, err := s.calc.Table().AyahCount(surahNumber); err != nil {
		return err
	}

	state, err := s.fsm.GetState(ctx, userID)
	if err != nil {
		return fmt.Errorf("get state: %w", err)
	}

	key, next := domain.SessionKeyStartSurah, domain.StateEnterStartAyah
	if state == domain.StateSelectEndSurah || state == domain.StateEnterEndAyah {
		key, next = domain.SessionKeyEndSurah, domain.StateEnterEndAyah
	}

	if err := s.fsm.SetData(ctx, userID, key, strconv.Itoa(surahNumber)); err != nil {
		return fmt.Errorf("set surah: %w", err)
	}

	if err := s.fsm.SetState(ctx, userID, next); err != nil {
		return fmt.Errorf("set state: %w", err)
	}

	return nil
}

// HandleAyahInput validates the entered ayah number and advances the session.
// Entering the end ayah also checks the full range, so a range that ends
// before it starts is rejected here rather than on submit.
func (s *ReadingService) HandleAyahInput(ctx context.Context, userID, input string) (domain.State, error) {
	ayahNumber, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return "", fmt.Errorf("%w: %q", quran.ErrInvalidAyah, input)
	}

	state, err := s.fsm.GetState(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("get state: %w", err)
	}

	surahKey, ayahKey, next := domain.SessionKeyStartSurah, domain.SessionKeyStartAyah, domain.StateSelectEndSurah
	switch state {
	case domain.StateEnterStartAyah:
	case domain.StateEnterEndAyah:
		surahKey, ayahKey, next = domain.SessionKeyEndSurah, domain.SessionKeyEndAyah, domain.StateConfirm
	default:
		return "", fmt.Errorf("unexpected ayah input in state %s", state)
	}

	surahNumber, err := s.sessionInt(ctx, userID, surahKey)
	if err != nil {
		return "", err
	}

	if _, err := s.calc.Table().AbsoluteIndex(surahNumber, ayahNumber); err != nil {
		return "", err
	}

	if next == domain.StateConfirm {
		r, err := s.SessionRange(ctx, userID)
		if err != nil {
			return "", err
		}
		r.EndSurah, r.EndAyah = surahNumber, ayahNumber
		if _, err := s.calc.Compute(r); err != nil {
			return "", err
		}
	}

	if err := s.fsm.SetData(ctx, userID, ayahKey, strconv.Itoa(ayahNumber)); err != nil {
		return "", fmt.Errorf("set ayah: %w", err)
	}

	if err := s.fsm.SetState(ctx, userID, next); err != nil {
		return "", fmt.Errorf("set state: %w", err)
	}

	return next, nil
}

// GetSelectedSurah returns the surah whose ayah is currently being entered
func (s *ReadingService) GetSelectedSurah(ctx context.Context, userID string) (int, error) {
	state, err := s.fsm.GetState(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("get state: %w", err)
	}

	if state == domain.StateEnterEndAyah {
		return s.sessionInt(ctx, userID, domain.SessionKeyEndSurah)
	}
	return s.sessionInt(ctx, userID, domain.SessionKeyStartSurah)
}

// SessionRange returns the range collected so far. End fields are zero until entered.
func (s *ReadingService) SessionRange(ctx context.Context, userID string) (quran.ReadingRange, error) {
	var r quran.ReadingRange
	var err error

	if r.StartSurah, err = s.sessionInt(ctx, userID, domain.SessionKeyStartSurah); err != nil {
		return r, err
	}
	if r.StartAyah, err = s.sessionInt(ctx, userID, domain.SessionKeyStartAyah); err != nil {
		return r, err
	}
	if r.EndSurah, err = s.sessionInt(ctx, userID, domain.SessionKeyEndSurah); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return r, err
	}
	if r.EndAyah, err = s.sessionInt(ctx, userID, domain.SessionKeyEndAyah); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return r, err
	}

	return r, nil
}

// Preview computes the progress of the range collected in the session
func (s *ReadingService) Preview(ctx context.Context, userID string) (quran.ReadingRange, quran.ProgressResult, error) {
	r, err := s.SessionRange(ctx, userID)
	if err != nil {
		return r, quran.ProgressResult{}, err
	}

	res, err := s.calc.Compute(r)
	if err != nil {
		return r, quran.ProgressResult{}, err
	}

	return r, res, nil
}

// SubmitReading computes and stores the reading collected in the session.
// A session opened by StartEdit replaces that reading instead of adding one.
func (s *ReadingService) SubmitReading(ctx context.Context, userID, userName string) (*domain.Reading, error) {
	editID, err := s.EditingReading(ctx, userID)
	if err != nil {
		return nil, err
	}

	if editID != "" {
		r, err := s.SessionRange(ctx, userID)
		if err != nil {
			return nil, err
		}
		reading, err := s.UpdateReading(ctx, userID, editID, r)
		if err != nil {
			return nil, err
		}
		if err := s.CancelReading(ctx, userID); err != nil {
			return nil, err
		}
		return reading, nil
	}

	enabled, err := s.store.ReadingsEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("check readings enabled: %w", err)
	}
	if !enabled {
		return nil, ErrReadingsDisabled
	}

	r, res, err := s.Preview(ctx, userID)
	if err != nil {
		return nil, err
	}

	reading := &domain.Reading{
		UserID:      userID,
		UserName:    userName,
		Date:        s.Today(),
		StartSurah:  r.StartSurah,
		StartAyah:   r.StartAyah,
		EndSurah:    r.EndSurah,
		EndAyah:     r.EndAyah,
		TotalPages:  res.TotalPages,
		JuzObtained: res.JuzObtained,
	}

	if err := s.store.CreateReading(ctx, reading); err != nil {
		return nil, fmt.Errorf("create reading: %w", err)
	}

	if err := s.CancelReading(ctx, userID); err != nil {
		return nil, err
	}

	return reading, nil
}

// StartEdit opens a session whose submit replaces readingID
func (s *ReadingService) StartEdit(ctx context.Context, userID, readingID string, lang domain.Language) (*domain.Reading, error) {
	reading, err := s.ownedReading(ctx, userID, readingID)
	if err != nil {
		return nil, err
	}

	if err := s.HandleStart(ctx, userID, lang); err != nil {
		return nil, err
	}
	if err := s.fsm.SetData(ctx, userID, domain.SessionKeyEditID, readingID); err != nil {
		return nil, fmt.Errorf("set edit id: %w", err)
	}

	return reading, nil
}

// EditingReading returns the reading the session will replace, or "" for a new one
func (s *ReadingService) EditingReading(ctx context.Context, userID string) (string, error) {
	id, err := s.fsm.GetData(ctx, userID, domain.SessionKeyEditID)
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get edit id: %w", err)
	}
	return id, nil
}

// UpdateReading replaces the range of a reading owned by userID and recomputes
// its progress. The date and owner stay as they were.
func (s *ReadingService) UpdateReading(ctx context.Context, userID, readingID string, r quran.ReadingRange) (*domain.Reading, error) {
	stored, err := s.ownedReading(ctx, userID, readingID)
	if err != nil {
		return nil, err
	}

	res, err := s.calc.Compute(r)
	if err != nil {
		return nil, err
	}

	reading := *stored
	reading.StartSurah, reading.StartAyah = r.StartSurah, r.StartAyah
	reading.EndSurah, reading.EndAyah = r.EndSurah, r.EndAyah
	reading.TotalPages, reading.JuzObtained = res.TotalPages, res.JuzObtained

	if err := s.store.UpdateReading(ctx, &reading); err != nil {
		return nil, fmt.Errorf("update reading: %w", err)
	}
	return &reading, nil
}

// CancelReading drops the range collected so far
func (s *ReadingService) CancelReading(ctx context.Context, userID string) error {
	if err := s.resetSession(ctx, userID); err != nil {
		return err
	}
	if err := s.fsm.SetState(ctx, userID, domain.StateStart); err != nil {
		return fmt.Errorf("reset state: %w", err)
	}
	return nil
}

// Calculate computes progress for a range without touching any session
func (s *ReadingService) Calculate(r quran.ReadingRange) (quran.ProgressResult, error) {
	return s.calc.Compute(r)
}

// Today returns the current date in the configured time zone
func (s *ReadingService) Today() string {
	return s.now().In(s.loc).Format(dateLayout)
}

// ListReadings retrieves all readings for a user
func (s *ReadingService) ListReadings(ctx context.Context, userID string) ([]*domain.Reading, error) {
	return s.store.ListReadings(ctx, userID)
}

// DeleteReading deletes a reading owned by userID
func (s *ReadingService) DeleteReading(ctx context.Context, userID, readingID string) error {
	if _, err := s.ownedReading(ctx, userID, readingID); err != nil {
		return err
	}

	if err := s.store.DeleteReading(ctx, readingID); err != nil {
		return fmt.Errorf("delete reading: %w", err)
	}
	return nil
}

func (s *ReadingService) ownedReading(ctx context.Context, userID, readingID string) (*domain.Reading, error) {
	reading, err := s.store.GetReading(ctx, readingID)
	if err != nil {
		return nil, fmt.Errorf("get reading: %w", err)
	}
	if reading.UserID != userID {
		return nil, ErrNotOwner
	}
	return reading, nil
}

// ReadingsEnabled reports whether new readings are accepted
func (s *ReadingService) ReadingsEnabled(ctx context.Context) (bool, error) {
	return s.store.ReadingsEnabled(ctx)
}

// IsAdmin reports whether userID may use the admin commands
func (s *ReadingService) IsAdmin(userID string) bool {
	_, ok := s.admins[userID]
	return ok
}

// ToggleReadings flips reading acceptance and returns the new value
func (s *ReadingService) ToggleReadings(ctx context.Context, userID string) (bool, error) {
	if !s.IsAdmin(userID) {
		return false, ErrNotAdmin
	}

	current, err := s.store.ReadingsEnabled(ctx)
	if err != nil {
		return false, fmt.Errorf("get readings enabled: %w", err)
	}

	if err := s.store.SetReadingsEnabled(ctx, !current); err != nil {
		return current, fmt.Errorf("set readings enabled: %w", err)
	}
	return !current, nil
}

// GetAllSurahs returns all surahs
func (s *ReadingService) GetAllSurahs() []quran.Surah {
	return s.calc.Table().Surahs()
}

// AyahCount returns the number of ayahs of a surah, or 0 for an unknown one
func (s *ReadingService) AyahCount(surahNumber int) int {
	count, err := s.calc.Table().AyahCount(surahNumber)
	if err != nil {
		return 0
	}
	return count
}

// FormatRange renders a range with localized surah names
func (s *ReadingService) FormatRange(lang domain.Language, r quran.ReadingRange) string {
	return fmt.Sprintf("%s %d – %s %d",
		s.i18n.GetSurahName(lang, r.StartSurah), r.StartAyah,
		s.i18n.GetSurahName(lang, r.EndSurah), r.EndAyah,
	)
}

// GetAyahInput gets the accumulated ayah input for a user
func (s *ReadingService) GetAyahInput(ctx context.Context, userID string) string {
	input, err := s.fsm.GetData(ctx, userID, domain.SessionKeyAyahInput)
	if err != nil {
		return ""
	}
	return input
}

// SetAyahInput sets the accumulated ayah input for a user
func (s *ReadingService) SetAyahInput(ctx context.Context, userID, input string) error {
	return s.fsm.SetData(ctx, userID, domain.SessionKeyAyahInput, input)
}

// ClearAyahInput clears the accumulated ayah input for a user
func (s *ReadingService) ClearAyahInput(ctx context.Context, userID string) error {
	return s.fsm.DeleteData(ctx, userID, domain.SessionKeyAyahInput)
}

func (s *ReadingService) resetSession(ctx context.Context, userID string) error {
	for _, key := range sessionKeys {
		if err := s.fsm.DeleteData(ctx, userID, key); err != nil {
			return fmt.Errorf("clear %s: %w", key, err)
		}
	}
	return nil
}

func (s *ReadingService) sessionInt(ctx context.Context, userID, key string) (int, error) {
	raw, err := s.fsm.GetData(ctx, userID, key)
	if err != nil {
		return 0, fmt.Errorf("get %s: %w", key, err)
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}
