package quran

import (
	"fmt"
	"math"
)

// ReadingRange is a reported reading, both ends inclusive.
type ReadingRange struct {
	StartSurah int `json:"start_surah"`
	StartAyah  int `json:"start_ayah"`
	EndSurah   int `json:"end_surah"`
	EndAyah    int `json:"end_ayah"`
}

// ProgressResult is what a reading range is worth.
type ProgressResult struct {
	TotalPages  int     `json:"total_pages"`
	JuzObtained float64 `json:"juz_obtained"`
}

// Calculator computes pages and juz covered by a reading range.
// It holds no mutable state and may be shared between goroutines.
type Calculator struct {
	table    *Table
	resolver Resolver
}

func NewCalculator(table *Table) *Calculator {
	return &Calculator{
		table:    table,
		resolver: NewResolver(table),
	}
}

// Table returns the reference table the calculator reads from.
func (c *Calculator) Table() *Table {
	return c.table
}

// Compute resolves both ends of r and measures the span between them.
//
// Pages are counted inclusively from the page of the first ayah to the page of
// the last. Each juz contributes the fraction of its ayahs that fall inside the
// range; the sum is rounded to two decimals.
func (c *Calculator) Compute(r ReadingRange) (ProgressResult, error) {
	start, err := c.resolver.Resolve(r.StartSurah, r.StartAyah)
	if err != nil {
		return ProgressResult{}, fmt.Errorf("resolve start: %w", err)
	}

	end, err := c.resolver.Resolve(r.EndSurah, r.EndAyah)
	if err != nil {
		return ProgressResult{}, fmt.Errorf("resolve end: %w", err)
	}

	if end < start {
		return ProgressResult{}, fmt.Errorf("%w: %d:%d is before %d:%d",
			ErrInvalidRange, r.EndSurah, r.EndAyah, r.StartSurah, r.StartAyah)
	}

	pages := c.table.PageOf(end) - c.table.PageOf(start) + 1

	var juz float64
	for _, seg := range c.table.JuzSegmentsOverlapping(start, end) {
		overlap := min(end, seg.End-1) - max(start, seg.Start) + 1
		juz += float64(overlap) / float64(seg.Len())
	}

	return ProgressResult{
		TotalPages:  pages,
		JuzObtained: RoundJuz(juz),
	}, nil
}

// RoundJuz rounds v to two decimals, halves away from zero.
func RoundJuz(v float64) float64 {
	return math.Round(v*100) / 100
}
