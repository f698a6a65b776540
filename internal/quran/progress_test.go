package quran

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	calc := NewCalculator(canonicalTable(t))

	tests := []struct {
		name      string
		r         ReadingRange
		wantPages int
		wantJuz   float64
	}{
		{
			name:      "first juz exactly",
			r:         ReadingRange{StartSurah: 1, StartAyah: 1, EndSurah: 2, EndAyah: 141},
			wantPages: 21,
			wantJuz:   1.00,
		},
		{
			name:      "al-fatihah",
			r:         ReadingRange{StartSurah: 1, StartAyah: 1, EndSurah: 1, EndAyah: 7},
			wantPages: 1,
			wantJuz:   0.05,
		},
		{
			name:      "single ayah",
			r:         ReadingRange{StartSurah: 1, StartAyah: 1, EndSurah: 1, EndAyah: 1},
			wantPages: 1,
			wantJuz:   0.01,
		},
		{
			name:      "second juz exactly",
			r:         ReadingRange{StartSurah: 2, StartAyah: 142, EndSurah: 2, EndAyah: 252},
			wantPages: 20,
			wantJuz:   1.00,
		},
		{
			name:      "first two juz",
			r:         ReadingRange{StartSurah: 1, StartAyah: 1, EndSurah: 2, EndAyah: 252},
			wantPages: 41,
			wantJuz:   2.00,
		},
		{
			name:      "al-baqarah crosses three juz",
			r:         ReadingRange{StartSurah: 2, StartAyah: 1, EndSurah: 2, EndAyah: 286},
			wantPages: 48,
			wantJuz:   2.22,
		},
		{
			name:      "al-kahf crosses juz 15 and 16",
			r:         ReadingRange{StartSurah: 18, StartAyah: 1, EndSurah: 18, EndAyah: 110},
			wantPages: 12,
			wantJuz:   0.53,
		},
		{
			name:      "yasin",
			r:         ReadingRange{StartSurah: 36, StartAyah: 1, EndSurah: 36, EndAyah: 83},
			wantPages: 6,
			wantJuz:   0.32,
		},
		{
			name:      "juz amma",
			r:         ReadingRange{StartSurah: 78, StartAyah: 1, EndSurah: 114, EndAyah: 6},
			wantPages: 23,
			wantJuz:   1.00,
		},
		{
			name:      "whole mushaf",
			r:         ReadingRange{StartSurah: 1, StartAyah: 1, EndSurah: 114, EndAyah: 6},
			wantPages: PageCount,
			wantJuz:   30.00,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.Compute(tt.r)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPages, got.TotalPages)
			assert.Equal(t, tt.wantJuz, got.JuzObtained)
		})
	}
}

func TestComputeErrors(t *testing.T) {
	calc := NewCalculator(canonicalTable(t))

	tests := []struct {
		name string
		r    ReadingRange
		err  error
	}{
		{
			name: "end before start",
			r:    ReadingRange{StartSurah: 2, StartAyah: 5, EndSurah: 1, EndAyah: 1},
			err:  ErrInvalidRange,
		},
		{
			name: "end before start in same surah",
			r:    ReadingRange{StartSurah: 2, StartAyah: 10, EndSurah: 2, EndAyah: 9},
			err:  ErrInvalidRange,
		},
		{
			name: "ayah past end of al-fatihah",
			r:    ReadingRange{StartSurah: 1, StartAyah: 8, EndSurah: 2, EndAyah: 1},
			err:  ErrInvalidAyah,
		},
		{
			name: "invalid end ayah",
			r:    ReadingRange{StartSurah: 1, StartAyah: 1, EndSurah: 1, EndAyah: 8},
			err:  ErrInvalidAyah,
		},
		{
			name: "unknown start surah",
			r:    ReadingRange{StartSurah: 0, StartAyah: 1, EndSurah: 1, EndAyah: 1},
			err:  ErrUnknownSurah,
		},
		{
			name: "unknown end surah",
			r:    ReadingRange{StartSurah: 1, StartAyah: 1, EndSurah: 115, EndAyah: 1},
			err:  ErrUnknownSurah,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.Compute(tt.r)
			assert.ErrorIs(t, err, tt.err)
			assert.Zero(t, got)
		})
	}
}

func TestComputeSinglePositionIsOnePage(t *testing.T) {
	table := canonicalTable(t)
	calc := NewCalculator(table)

	for idx := 0; idx < TotalAyahs; idx += 37 {
		pos, err := table.PositionOf(idx)
		require.NoError(t, err)

		got, err := calc.Compute(ReadingRange{
			StartSurah: pos.Surah, StartAyah: pos.Ayah,
			EndSurah: pos.Surah, EndAyah: pos.Ayah,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, got.TotalPages, "%d:%d", pos.Surah, pos.Ayah)

		seg, ok := table.Juz(table.JuzOf(idx))
		require.True(t, ok)
		assert.Equal(t, RoundJuz(1/float64(seg.Len())), got.JuzObtained, "%d:%d", pos.Surah, pos.Ayah)
	}
}

func TestComputeMonotonic(t *testing.T) {
	table := canonicalTable(t)
	calc := NewCalculator(table)

	start := Position{Surah: 2, Ayah: 100}
	startIdx, err := table.AbsoluteIndex(start.Surah, start.Ayah)
	require.NoError(t, err)

	var prev ProgressResult
	for idx := startIdx; idx < TotalAyahs; idx++ {
		end, err := table.PositionOf(idx)
		require.NoError(t, err)

		got, err := calc.Compute(ReadingRange{
			StartSurah: start.Surah, StartAyah: start.Ayah,
			EndSurah: end.Surah, EndAyah: end.Ayah,
		})
		require.NoError(t, err)
		require.GreaterOrEqual(t, got.TotalPages, prev.TotalPages, "end %d:%d", end.Surah, end.Ayah)
		require.GreaterOrEqual(t, got.JuzObtained, prev.JuzObtained, "end %d:%d", end.Surah, end.Ayah)
		prev = got
	}
}

func TestComputeIsDeterministicAcrossGoroutines(t *testing.T) {
	calc := NewCalculator(canonicalTable(t))
	r := ReadingRange{StartSurah: 3, StartAyah: 50, EndSurah: 9, EndAyah: 12}

	want, err := calc.Compute(r)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]ProgressResult, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = calc.Compute(r)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestRoundJuz(t *testing.T) {
	assert.Equal(t, 0.13, RoundJuz(0.125))
	assert.Equal(t, -0.13, RoundJuz(-0.125))
	assert.Equal(t, 0.38, RoundJuz(0.375))
	assert.Equal(t, 1.5, RoundJuz(1.5))
	assert.Equal(t, 0.0, RoundJuz(0.004))
}

func TestResolver(t *testing.T) {
	r := NewResolver(canonicalTable(t))

	idx, err := r.Resolve(2, 142)
	require.NoError(t, err)
	assert.Equal(t, 148, idx)

	pos, err := r.Position(idx)
	require.NoError(t, err)
	assert.Equal(t, Position{Surah: 2, Ayah: 142}, pos)

	_, err = r.Resolve(1, 8)
	assert.ErrorIs(t, err, ErrInvalidAyah)
	_, err = r.Resolve(200, 1)
	assert.ErrorIs(t, err, ErrUnknownSurah)
}
