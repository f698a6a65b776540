package application

import (
	"context"
	"testing"

	"github.com/escalopa/odoj-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedReadings(f fixture) {
	f.store.readings = []*domain.Reading{
		{ID: "a", UserID: "u1", UserName: "Aisyah", Date: "2026-02-19", TotalPages: 21, JuzObtained: 1},
		{ID: "b", UserID: "u2", UserName: "Bilal", Date: "2026-02-19", TotalPages: 1, JuzObtained: 0.05},
		{ID: "c", UserID: "u1", UserName: "Aisyah", Date: "2026-02-20", TotalPages: 20, JuzObtained: 1},
		{ID: "d", UserID: "u2", UserName: "Bilal", Date: "2026-02-21", TotalPages: 48, JuzObtained: 2.22},
		{ID: "e", UserID: "u3", UserName: "Citra", Date: "2026-02-21", TotalPages: 1, JuzObtained: 0.05},
	}
}

func TestUserStats(t *testing.T) {
	f := newFixture(t)
	seedReadings(f)
	ctx := context.Background()

	stats, err := f.svc.UserStats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.UserTotal{UserID: "u1", UserName: "Aisyah", TotalPages: 41, TotalJuz: 2, Readings: 2}, stats)

	stats, err = f.svc.UserStats(ctx, "nobody")
	require.NoError(t, err)
	assert.Equal(t, domain.UserTotal{UserID: "nobody"}, stats)
}

func TestKhatamPercent(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, 0, f.svc.KhatamPercent(0))
	assert.Equal(t, 50, f.svc.KhatamPercent(302))
	assert.Equal(t, 100, f.svc.KhatamPercent(604))
	assert.Equal(t, 100, f.svc.KhatamPercent(900))
}

func TestLeaderboard(t *testing.T) {
	f := newFixture(t)
	seedReadings(f)
	ctx := context.Background()

	board, err := f.svc.Leaderboard(ctx, 0)
	require.NoError(t, err)
	require.Len(t, board, 3)
	assert.Equal(t, "u2", board[0].UserID)
	assert.Equal(t, 2.27, board[0].TotalJuz)
	assert.Equal(t, 49, board[0].TotalPages)
	assert.Equal(t, "u1", board[1].UserID)
	assert.Equal(t, 2.0, board[1].TotalJuz)
	assert.Equal(t, "u3", board[2].UserID)
}

func TestLeaderboardOrderAndLimit(t *testing.T) {
	f := newFixture(t)
	f.store.readings = []*domain.Reading{
		{ID: "1", UserID: "u1", UserName: "Zaid", Date: "2026-02-19", TotalPages: 10, JuzObtained: 0.5},
		{ID: "2", UserID: "u2", UserName: "Amir", Date: "2026-02-19", TotalPages: 10, JuzObtained: 0.5},
		{ID: "3", UserID: "u3", UserName: "Hana", Date: "2026-02-19", TotalPages: 12, JuzObtained: 0.5},
		{ID: "4", UserID: "u4", UserName: "Umar", Date: "2026-02-19", TotalPages: 1, JuzObtained: 0.9},
	}

	board, err := f.svc.Leaderboard(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, board, 3)
	assert.Equal(t, "u4", board[0].UserID)
	assert.Equal(t, "u3", board[1].UserID)
	assert.Equal(t, "u2", board[2].UserID)
}

func TestDailyTotals(t *testing.T) {
	f := newFixture(t)
	seedReadings(f)

	days, err := f.svc.DailyTotals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.DailyTotal{
		{Date: "2026-02-19", TotalPages: 22, TotalJuz: 1.05},
		{Date: "2026-02-20", TotalPages: 20, TotalJuz: 1},
		{Date: "2026-02-21", TotalPages: 49, TotalJuz: 2.27},
	}, days)
}

func TestCalendar(t *testing.T) {
	f := newFixture(t)
	seedReadings(f)

	days, err := f.svc.Calendar(context.Background(), "u2")
	require.NoError(t, err)
	require.Len(t, days, 30)

	assert.Equal(t, domain.CalendarDay{Day: 1, Date: "2026-02-19", TotalJuz: 0.05, HasReading: true}, days[0])
	assert.Equal(t, domain.CalendarDay{Day: 2, Date: "2026-02-20"}, days[1])
	assert.Equal(t, domain.CalendarDay{Day: 3, Date: "2026-02-21", TotalJuz: 2.22, HasReading: true}, days[2])
	assert.Equal(t, "2026-03-20", days[29].Date)
}

func TestDailyLeaderboard(t *testing.T) {
	f := newFixture(t)
	seedReadings(f)
	ctx := context.Background()

	board, err := f.svc.DailyLeaderboard(ctx, "2026-02-21", 0)
	require.NoError(t, err)
	assert.Equal(t, []domain.UserTotal{
		{UserID: "u2", UserName: "Bilal", TotalPages: 48, TotalJuz: 2.22, Readings: 1},
		{UserID: "u3", UserName: "Citra", TotalPages: 1, TotalJuz: 0.05, Readings: 1},
	}, board)

	board, err = f.svc.DailyLeaderboard(ctx, f.svc.Today(), 1)
	require.NoError(t, err)
	require.Len(t, board, 1)
	assert.Equal(t, "u1", board[0].UserID)
	assert.Equal(t, 1.0, board[0].TotalJuz)

	board, err = f.svc.DailyLeaderboard(ctx, "2026-03-01", 10)
	require.NoError(t, err)
	assert.Empty(t, board)
}

func TestStudentTotals(t *testing.T) {
	f := newFixture(t)
	seedReadings(f)
	ctx := context.Background()

	_, err := f.svc.StudentTotals(ctx, "u1")
	assert.ErrorIs(t, err, ErrNotAdmin)

	students, err := f.svc.StudentTotals(ctx, "admin")
	require.NoError(t, err)
	require.Len(t, students, 3)
	assert.Equal(t, "Aisyah", students[0].UserName)
	assert.Equal(t, "Bilal", students[1].UserName)
	assert.Equal(t, 49, students[1].TotalPages)
	assert.Equal(t, 2.27, students[1].TotalJuz)
	assert.Equal(t, "Citra", students[2].UserName)
}

func TestStudentReadings(t *testing.T) {
	f := newFixture(t)
	seedReadings(f)
	ctx := context.Background()

	_, err := f.svc.StudentReadings(ctx, "u1", "u2")
	assert.ErrorIs(t, err, ErrNotAdmin)

	readings, err := f.svc.StudentReadings(ctx, "admin", "u2")
	require.NoError(t, err)
	require.Len(t, readings, 2)
	assert.Equal(t, "b", readings[0].ID)
	assert.Equal(t, "d", readings[1].ID)
}
