package application

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/escalopa/odoj-bot/internal/domain"
	"github.com/escalopa/odoj-bot/internal/quran"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryFSM struct {
	states map[string]domain.State
	data   map[string]string
}

func newMemoryFSM() *memoryFSM {
	return &memoryFSM{states: map[string]domain.State{}, data: map[string]string{}}
}

func (m *memoryFSM) SetState(_ context.Context, userID string, state domain.State) error {
	m.states[userID] = state
	return nil
}

func (m *memoryFSM) GetState(_ context.Context, userID string) (domain.State, error) {
	if st, ok := m.states[userID]; ok {
		return st, nil
	}
	return domain.StateStart, nil
}

func (m *memoryFSM) DeleteState(_ context.Context, userID string) error {
	delete(m.states, userID)
	return nil
}

func (m *memoryFSM) SetData(_ context.Context, userID, key, value string) error {
	m.data[userID+":"+key] = value
	return nil
}

func (m *memoryFSM) GetData(_ context.Context, userID, key string) (string, error) {
	v, ok := m.data[userID+":"+key]
	if !ok {
		return "", fmt.Errorf("session %s: %w", key, domain.ErrNotFound)
	}
	return v, nil
}

func (m *memoryFSM) DeleteData(_ context.Context, userID, key string) error {
	delete(m.data, userID+":"+key)
	return nil
}

type memoryStore struct {
	readings []*domain.Reading
	disabled bool
	nextID   int
}

func (m *memoryStore) CreateReading(_ context.Context, r *domain.Reading) error {
	m.nextID++
	r.ID = fmt.Sprintf("r%d", m.nextID)
	r.CreatedAt = time.Date(2026, 2, 19, 1, 0, 0, 0, time.UTC)
	m.readings = append(m.readings, r)
	return nil
}

func (m *memoryStore) GetReading(_ context.Context, id string) (*domain.Reading, error) {
	for _, r := range m.readings {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, fmt.Errorf("reading %s: %w", id, domain.ErrNotFound)
}

func (m *memoryStore) ListReadings(_ context.Context, userID string) ([]*domain.Reading, error) {
	var out []*domain.Reading
	for _, r := range m.sorted() {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memoryStore) ListAllReadings(_ context.Context) ([]*domain.Reading, error) {
	return m.sorted(), nil
}

func (m *memoryStore) UpdateReading(_ context.Context, r *domain.Reading) error {
	for i, stored := range m.readings {
		if stored.ID == r.ID {
			updated := *stored
			updated.StartSurah, updated.StartAyah = r.StartSurah, r.StartAyah
			updated.EndSurah, updated.EndAyah = r.EndSurah, r.EndAyah
			updated.TotalPages, updated.JuzObtained = r.TotalPages, r.JuzObtained
			m.readings[i] = &updated
			return nil
		}
	}
	return fmt.Errorf("reading %s: %w", r.ID, domain.ErrNotFound)
}

func (m *memoryStore) DeleteReading(_ context.Context, id string) error {
	for i, r := range m.readings {
		if r.ID == id {
			m.readings = append(m.readings[:i], m.readings[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("reading %s: %w", id, domain.ErrNotFound)
}

func (m *memoryStore) ReadingsEnabled(context.Context) (bool, error) {
	return !m.disabled, nil
}

func (m *memoryStore) SetReadingsEnabled(_ context.Context, enabled bool) error {
	m.disabled = !enabled
	return nil
}

func (m *memoryStore) sorted() []*domain.Reading {
	out := append([]*domain.Reading(nil), m.readings...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

type stubI18n struct{}

func (stubI18n) Get(_ domain.Language, key string, _ ...interface{}) string { return key }

func (stubI18n) GetSurahName(_ domain.Language, n int) string { return fmt.Sprintf("Surah %d", n) }

type fixture struct {
	svc   *ReadingService
	fsm   *memoryFSM
	store *memoryStore
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	table, err := quran.NewCanonicalTable()
	require.NoError(t, err)

	wib := time.FixedZone("WIB", 7*3600)
	fsm := newMemoryFSM()
	store := &memoryStore{}
	svc := NewReadingService(quran.NewCalculator(table), store, fsm, stubI18n{}, Options{
		Location:        wib,
		RamadanStart:    time.Date(2026, 2, 19, 0, 0, 0, 0, wib),
		AdminIDs:        []string{"admin"},
		DefaultLanguage: domain.LangIndonesian,
		// 20:00 UTC is already the next day in WIB.
		Now: func() time.Time { return time.Date(2026, 2, 18, 20, 0, 0, 0, time.UTC) },
	})

	return fixture{svc: svc, fsm: fsm, store: store}
}

// enterRange walks the session through both ends of a range.
func (f fixture) enterRange(t *testing.T, user string, r quran.ReadingRange) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, f.svc.HandleStart(ctx, user, domain.LangEnglish))
	f.selectRange(t, user, r)
}

// selectRange enters both ends of a range into an already started session.
func (f fixture) selectRange(t *testing.T, user string, r quran.ReadingRange) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, f.svc.HandleSurahSelection(ctx, user, r.StartSurah))
	next, err := f.svc.HandleAyahInput(ctx, user, fmt.Sprint(r.StartAyah))
	require.NoError(t, err)
	require.Equal(t, domain.StateSelectEndSurah, next)
	require.NoError(t, f.svc.HandleSurahSelection(ctx, user, r.EndSurah))
	next, err = f.svc.HandleAyahInput(ctx, user, fmt.Sprint(r.EndAyah))
	require.NoError(t, err)
	require.Equal(t, domain.StateConfirm, next)
}

func TestReadingFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.HandleStart(ctx, "u1", domain.LangEnglish))
	state, err := f.svc.GetCurrentState(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.StateSelectStartSurah, state)
	assert.Equal(t, domain.LangEnglish, f.svc.GetUserLanguage(ctx, "u1"))

	require.NoError(t, f.svc.HandleSurahSelection(ctx, "u1", 1))
	surah, err := f.svc.GetSelectedSurah(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, surah)

	next, err := f.svc.HandleAyahInput(ctx, "u1", "1")
	require.NoError(t, err)
	assert.Equal(t, domain.StateSelectEndSurah, next)

	require.NoError(t, f.svc.HandleSurahSelection(ctx, "u1", 2))
	surah, err = f.svc.GetSelectedSurah(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, surah)

	next, err = f.svc.HandleAyahInput(ctx, "u1", " 141 ")
	require.NoError(t, err)
	assert.Equal(t, domain.StateConfirm, next)

	r, res, err := f.svc.Preview(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, quran.ReadingRange{StartSurah: 1, StartAyah: 1, EndSurah: 2, EndAyah: 141}, r)
	assert.Equal(t, quran.ProgressResult{TotalPages: 21, JuzObtained: 1}, res)
	assert.Equal(t, "Surah 1 1 – Surah 2 141", f.svc.FormatRange(domain.LangEnglish, r))

	reading, err := f.svc.SubmitReading(ctx, "u1", "Aisyah")
	require.NoError(t, err)
	assert.Equal(t, "r1", reading.ID)
	assert.Equal(t, "2026-02-19", reading.Date)
	assert.Equal(t, 21, reading.TotalPages)
	assert.Equal(t, 1.0, reading.JuzObtained)
	assert.Equal(t, "Aisyah", reading.UserName)

	state, err = f.svc.GetCurrentState(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.StateStart, state)
	_, err = f.svc.SessionRange(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, domain.LangEnglish, f.svc.GetUserLanguage(ctx, "u1"))
}

func TestHandleAyahInputRejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.HandleStart(ctx, "u1", domain.LangEnglish))
	require.NoError(t, f.svc.HandleSurahSelection(ctx, "u1", 1))

	_, err := f.svc.HandleAyahInput(ctx, "u1", "8")
	assert.ErrorIs(t, err, quran.ErrInvalidAyah)

	_, err = f.svc.HandleAyahInput(ctx, "u1", "abc")
	assert.ErrorIs(t, err, quran.ErrInvalidAyah)

	state, err := f.svc.GetCurrentState(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.StateEnterStartAyah, state)
}

func TestHandleAyahInputRejectsBackwardsRange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.HandleStart(ctx, "u1", domain.LangEnglish))
	require.NoError(t, f.svc.HandleSurahSelection(ctx, "u1", 2))
	_, err := f.svc.HandleAyahInput(ctx, "u1", "5")
	require.NoError(t, err)
	require.NoError(t, f.svc.HandleSurahSelection(ctx, "u1", 1))

	_, err = f.svc.HandleAyahInput(ctx, "u1", "1")
	assert.ErrorIs(t, err, quran.ErrInvalidRange)

	state, err := f.svc.GetCurrentState(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.StateEnterEndAyah, state)
}

func TestHandleAyahInputOutsideAyahState(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.HandleAyahInput(context.Background(), "u1", "3")
	assert.Error(t, err)
}

func TestHandleSurahSelectionUnknown(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.HandleStart(ctx, "u1", domain.LangEnglish))
	assert.ErrorIs(t, f.svc.HandleSurahSelection(ctx, "u1", 115), quran.ErrUnknownSurah)
	assert.ErrorIs(t, f.svc.HandleSurahSelection(ctx, "u1", 0), quran.ErrUnknownSurah)
}

func TestSubmitReadingDisabled(t *testing.T) {
	f := newFixture(t)
	f.enterRange(t, "u1", quran.ReadingRange{StartSurah: 1, StartAyah: 1, EndSurah: 1, EndAyah: 7})
	f.store.disabled = true

	_, err := f.svc.SubmitReading(context.Background(), "u1", "")
	assert.ErrorIs(t, err, ErrReadingsDisabled)
	assert.Empty(t, f.store.readings)
}

func TestCancelReading(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.enterRange(t, "u1", quran.ReadingRange{StartSurah: 1, StartAyah: 1, EndSurah: 1, EndAyah: 7})

	require.NoError(t, f.svc.CancelReading(ctx, "u1"))

	state, err := f.svc.GetCurrentState(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.StateStart, state)
	_, _, err = f.svc.Preview(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.store.readings)
}

func TestCalculate(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.Calculate(quran.ReadingRange{StartSurah: 1, StartAyah: 1, EndSurah: 1, EndAyah: 7})
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalPages)

	_, err = f.svc.Calculate(quran.ReadingRange{StartSurah: 2, StartAyah: 5, EndSurah: 1, EndAyah: 1})
	assert.ErrorIs(t, err, quran.ErrInvalidRange)
}

func TestDeleteReading(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.enterRange(t, "u1", quran.ReadingRange{StartSurah: 1, StartAyah: 1, EndSurah: 1, EndAyah: 7})
	reading, err := f.svc.SubmitReading(ctx, "u1", "")
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.DeleteReading(ctx, "u2", reading.ID), ErrNotOwner)
	assert.ErrorIs(t, f.svc.DeleteReading(ctx, "u1", "missing"), domain.ErrNotFound)

	require.NoError(t, f.svc.DeleteReading(ctx, "u1", reading.ID))
	readings, err := f.svc.ListReadings(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, readings)
}

func TestUpdateReading(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.enterRange(t, "u1", quran.ReadingRange{StartSurah: 1, StartAyah: 1, EndSurah: 1, EndAyah: 7})
	reading, err := f.svc.SubmitReading(ctx, "u1", "Aisyah")
	require.NoError(t, err)
	f.store.readings[0].Date = "2026-02-10"

	juz1 := quran.ReadingRange{StartSurah: 1, StartAyah: 1, EndSurah: 2, EndAyah: 141}

	_, err = f.svc.UpdateReading(ctx, "u2", reading.ID, juz1)
	assert.ErrorIs(t, err, ErrNotOwner)
	_, err = f.svc.UpdateReading(ctx, "u1", "missing", juz1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.svc.UpdateReading(ctx, "u1", reading.ID, quran.ReadingRange{StartSurah: 2, StartAyah: 5, EndSurah: 1, EndAyah: 1})
	assert.ErrorIs(t, err, quran.ErrInvalidRange)

	stored, err := f.store.GetReading(ctx, reading.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.TotalPages)
	assert.Equal(t, 7, stored.EndAyah)

	updated, err := f.svc.UpdateReading(ctx, "u1", reading.ID, juz1)
	require.NoError(t, err)
	assert.Equal(t, 21, updated.TotalPages)
	assert.Equal(t, 1.0, updated.JuzObtained)
	assert.Equal(t, "2026-02-10", updated.Date)
	assert.Equal(t, "Aisyah", updated.UserName)

	stored, err = f.store.GetReading(ctx, reading.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.EndSurah)
	assert.Equal(t, 141, stored.EndAyah)
	assert.Equal(t, 21, stored.TotalPages)
	assert.Equal(t, 1.0, stored.JuzObtained)
	assert.Equal(t, "2026-02-10", stored.Date)
}

func TestEditReadingFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.enterRange(t, "u1", quran.ReadingRange{StartSurah: 1, StartAyah: 1, EndSurah: 1, EndAyah: 7})
	reading, err := f.svc.SubmitReading(ctx, "u1", "Aisyah")
	require.NoError(t, err)

	_, err = f.svc.StartEdit(ctx, "u2", reading.ID, domain.LangEnglish)
	assert.ErrorIs(t, err, ErrNotOwner)
	editing, err := f.svc.EditingReading(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, editing)

	got, err := f.svc.StartEdit(ctx, "u1", reading.ID, domain.LangEnglish)
	require.NoError(t, err)
	assert.Equal(t, reading.ID, got.ID)
	editing, err = f.svc.EditingReading(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, reading.ID, editing)

	// edits are accepted while new readings are closed
	f.store.disabled = true
	f.selectRange(t, "u1", quran.ReadingRange{StartSurah: 2, StartAyah: 1, EndSurah: 2, EndAyah: 286})

	updated, err := f.svc.SubmitReading(ctx, "u1", "Aisyah")
	require.NoError(t, err)
	assert.Equal(t, reading.ID, updated.ID)
	assert.Equal(t, 48, updated.TotalPages)
	assert.Equal(t, 2.22, updated.JuzObtained)
	assert.Len(t, f.store.readings, 1)

	editing, err = f.svc.EditingReading(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, editing)
	state, err := f.svc.GetCurrentState(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.StateStart, state)

	// a fresh session after an edit creates a new reading again
	f.store.disabled = false
	f.enterRange(t, "u1", quran.ReadingRange{StartSurah: 1, StartAyah: 1, EndSurah: 1, EndAyah: 7})
	_, err = f.svc.SubmitReading(ctx, "u1", "Aisyah")
	require.NoError(t, err)
	assert.Len(t, f.store.readings, 2)
}

func TestToggleReadings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.False(t, f.svc.IsAdmin("u1"))
	_, err := f.svc.ToggleReadings(ctx, "u1")
	assert.ErrorIs(t, err, ErrNotAdmin)

	enabled, err := f.svc.ToggleReadings(ctx, "admin")
	require.NoError(t, err)
	assert.False(t, enabled)
	assert.True(t, f.store.disabled)

	enabled, err = f.svc.ToggleReadings(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, enabled)

	enabled, err = f.svc.ReadingsEnabled(ctx)
	require.NoError(t, err)
	assert.True(t, enabled)
}

func TestGetUserLanguageDefault(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, domain.LangIndonesian, f.svc.GetUserLanguage(context.Background(), "nobody"))
}

func TestAyahInputHelpers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.Empty(t, f.svc.GetAyahInput(ctx, "u1"))
	require.NoError(t, f.svc.SetAyahInput(ctx, "u1", "14"))
	assert.Equal(t, "14", f.svc.GetAyahInput(ctx, "u1"))
	require.NoError(t, f.svc.ClearAyahInput(ctx, "u1"))
	assert.Empty(t, f.svc.GetAyahInput(ctx, "u1"))
}

func TestSurahHelpers(t *testing.T) {
	f := newFixture(t)

	assert.Len(t, f.svc.GetAllSurahs(), quran.SurahCount)
	assert.Equal(t, 286, f.svc.AyahCount(2))
	assert.Zero(t, f.svc.AyahCount(0))
	assert.Equal(t, "2026-02-19", f.svc.Today())
}
