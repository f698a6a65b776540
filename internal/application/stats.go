package application

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/escalopa/odoj-bot/internal/domain"
	"github.com/escalopa/odoj-bot/internal/quran"
)

const ramadanDays = 30

// UserStats sums all readings of a user
func (s *ReadingService) UserStats(ctx context.Context, userID string) (domain.UserTotal, error) {
	readings, err := s.store.ListReadings(ctx, userID)
	if err != nil {
		return domain.UserTotal{}, fmt.Errorf("list readings: %w", err)
	}

	totals := totalsByUser(readings)
	if len(totals) == 0 {
		return domain.UserTotal{UserID: userID}, nil
	}
	return totals[0], nil
}

// KhatamPercent is how much of the mushaf pages represent, capped at 100
func (s *ReadingService) KhatamPercent(pages int) int {
	total := s.calc.Table().PageCount()
	return min(100, int(math.Round(float64(pages)/float64(total)*100)))
}

// Leaderboard ranks users by total juz, then pages, then name
func (s *ReadingService) Leaderboard(ctx context.Context, limit int) ([]domain.UserTotal, error) {
	readings, err := s.store.ListAllReadings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all readings: %w", err)
	}

	return rank(totalsByUser(readings), limit), nil
}

// DailyLeaderboard ranks users by what they read on date (YYYY-MM-DD)
func (s *ReadingService) DailyLeaderboard(ctx context.Context, date string, limit int) ([]domain.UserTotal, error) {
	readings, err := s.store.ListAllReadings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all readings: %w", err)
	}

	var onDate []*domain.Reading
	for _, r := range readings {
		if r.Date == date {
			onDate = append(onDate, r)
		}
	}

	return rank(totalsByUser(onDate), limit), nil
}

// StudentTotals lists every user who logged a reading, by name. Admin only.
func (s *ReadingService) StudentTotals(ctx context.Context, adminID string) ([]domain.UserTotal, error) {
	if !s.IsAdmin(adminID) {
		return nil, ErrNotAdmin
	}

	readings, err := s.store.ListAllReadings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all readings: %w", err)
	}

	totals := totalsByUser(readings)
	sort.SliceStable(totals, func(i, j int) bool {
		if totals[i].UserName != totals[j].UserName {
			return totals[i].UserName < totals[j].UserName
		}
		return totals[i].UserID < totals[j].UserID
	})
	return totals, nil
}

// StudentReadings lists one user's readings by date. Admin only.
func (s *ReadingService) StudentReadings(ctx context.Context, adminID, studentID string) ([]*domain.Reading, error) {
	if !s.IsAdmin(adminID) {
		return nil, ErrNotAdmin
	}

	readings, err := s.store.ListReadings(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list readings: %w", err)
	}
	return readings, nil
}

func rank(totals []domain.UserTotal, limit int) []domain.UserTotal {
	sort.SliceStable(totals, func(i, j int) bool {
		a, b := totals[i], totals[j]
		if a.TotalJuz != b.TotalJuz {
			return a.TotalJuz > b.TotalJuz
		}
		if a.TotalPages != b.TotalPages {
			return a.TotalPages > b.TotalPages
		}
		return a.UserName < b.UserName
	})

	if limit > 0 && len(totals) > limit {
		totals = totals[:limit]
	}
	return totals
}

// DailyTotals sums every reading per date, ordered by date
func (s *ReadingService) DailyTotals(ctx context.Context) ([]domain.DailyTotal, error) {
	readings, err := s.store.ListAllReadings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all readings: %w", err)
	}

	byDate := make(map[string]*domain.DailyTotal)
	for _, r := range readings {
		d, ok := byDate[r.Date]
		if !ok {
			d = &domain.DailyTotal{Date: r.Date}
			byDate[r.Date] = d
		}
		d.TotalPages += r.TotalPages
		d.TotalJuz += r.JuzObtained
	}

	result := make([]domain.DailyTotal, 0, len(byDate))
	for _, d := range byDate {
		d.TotalJuz = quran.RoundJuz(d.TotalJuz)
		result = append(result, *d)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })

	return result, nil
}

// Calendar returns the user's juz per day for the 30 days of Ramadan
func (s *ReadingService) Calendar(ctx context.Context, userID string) ([]domain.CalendarDay, error) {
	readings, err := s.store.ListReadings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list readings: %w", err)
	}

	juzByDate := make(map[string]float64)
	for _, r := range readings {
		juzByDate[r.Date] += r.JuzObtained
	}

	days := make([]domain.CalendarDay, ramadanDays)
	for i := range days {
		date := s.ramadanStart.AddDate(0, 0, i).Format(dateLayout)
		juz, ok := juzByDate[date]
		days[i] = domain.CalendarDay{
			Day:        i + 1,
			Date:       date,
			TotalJuz:   quran.RoundJuz(juz),
			HasReading: ok,
		}
	}

	return days, nil
}

// totalsByUser aggregates readings per user in order of first appearance.
// Juz totals are rounded once, after summing.
func totalsByUser(readings []*domain.Reading) []domain.UserTotal {
	index := make(map[string]int)
	var out []domain.UserTotal

	for _, r := range readings {
		i, ok := index[r.UserID]
		if !ok {
			i = len(out)
			index[r.UserID] = i
			out = append(out, domain.UserTotal{UserID: r.UserID})
		}
		t := &out[i]
		if r.UserName != "" {
			t.UserName = r.UserName
		}
		t.TotalPages += r.TotalPages
		t.TotalJuz += r.JuzObtained
		t.Readings++
	}

	for i := range out {
		out[i].TotalJuz = quran.RoundJuz(out[i].TotalJuz)
	}
	return out
}
