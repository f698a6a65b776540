package quran

import (
	"fmt"
	"sort"
)

const (
	SurahCount = 114
	PageCount  = 604
	JuzCount   = 30
	TotalAyahs = 6236
)

// Position is a (surah, ayah) pair as written in the mushaf.
type Position struct {
	Surah int `json:"surah"`
	Ayah  int `json:"ayah"`
}

// Surah represents a chapter in the Quran
type Surah struct {
	Number int
	Ayahs  int
}

// JuzSegment is a half-open range [Start, End) of absolute ayah indexes.
type JuzSegment struct {
	Number int
	Start  int
	End    int
}

// Len returns the number of ayahs in the segment.
func (s JuzSegment) Len() int {
	return s.End - s.Start
}

// TableData is the raw input NewTable validates and indexes.
type TableData struct {
	AyahCounts []int
	PageStarts []Position
	JuzStarts  []Position
}

// Canonical returns a fresh copy of the built-in Madani mushaf data.
func Canonical() TableData {
	data := TableData{
		AyahCounts: make([]int, SurahCount),
		PageStarts: make([]Position, PageCount),
		JuzStarts:  make([]Position, JuzCount),
	}
	copy(data.AyahCounts, canonicalAyahCounts[:])
	copy(data.PageStarts, canonicalPageStarts[:])
	copy(data.JuzStarts, canonicalJuzStarts[:])
	return data
}

// Table is the read-only surah/page/juz geometry. It is safe for concurrent use.
type Table struct {
	ayahCounts []int
	// offsets[i] is the absolute index of the first ayah of surah i+1;
	// offsets[SurahCount] is the total ayah count.
	offsets    []int
	pageStarts []int
	juz        []JuzSegment
}

// NewCanonicalTable builds the table from the built-in data.
func NewCanonicalTable() (*Table, error) {
	return NewTable(Canonical())
}

// NewTable validates data and builds the lookup indexes.
// Every invariant violation is reported as ErrConfig.
func NewTable(data TableData) (*Table, error) {
	if len(data.AyahCounts) != SurahCount {
		return nil, fmt.Errorf("%w: %d surahs, want %d", ErrConfig, len(data.AyahCounts), SurahCount)
	}

	t := &Table{
		ayahCounts: make([]int, SurahCount),
		offsets:    make([]int, SurahCount+1),
	}
	copy(t.ayahCounts, data.AyahCounts)

	for i, count := range t.ayahCounts {
		if count < 1 {
			return nil, fmt.Errorf("%w: surah %d has %d ayahs", ErrConfig, i+1, count)
		}
		t.offsets[i+1] = t.offsets[i] + count
	}
	if total := t.offsets[SurahCount]; total != TotalAyahs {
		return nil, fmt.Errorf("%w: ayah counts sum to %d, want %d", ErrConfig, total, TotalAyahs)
	}

	pages, err := t.boundaries("page", data.PageStarts, PageCount)
	if err != nil {
		return nil, err
	}
	t.pageStarts = pages

	juzStarts, err := t.boundaries("juz", data.JuzStarts, JuzCount)
	if err != nil {
		return nil, err
	}
	t.juz = make([]JuzSegment, JuzCount)
	for i, start := range juzStarts {
		end := t.TotalAyahs()
		if i+1 < JuzCount {
			end = juzStarts[i+1]
		}
		t.juz[i] = JuzSegment{Number: i + 1, Start: start, End: end}
	}

	return t, nil
}

// boundaries resolves a list of partition starts and checks that they begin at
// the first ayah and are strictly increasing.
func (t *Table) boundaries(kind string, starts []Position, want int) ([]int, error) {
	if len(starts) != want {
		return nil, fmt.Errorf("%w: %d %s boundaries, want %d", ErrConfig, len(starts), kind, want)
	}

	out := make([]int, len(starts))
	for i, pos := range starts {
		idx, err := t.AbsoluteIndex(pos.Surah, pos.Ayah)
		if err != nil {
			return nil, fmt.Errorf("%w: %s %d starts at %d:%d: %v", ErrConfig, kind, i+1, pos.Surah, pos.Ayah, err)
		}
		if i == 0 && idx != 0 {
			return nil, fmt.Errorf("%w: %s 1 starts at %d:%d, want 1:1", ErrConfig, kind, pos.Surah, pos.Ayah)
		}
		if i > 0 && idx <= out[i-1] {
			return nil, fmt.Errorf("%w: %s %d does not start after %s %d", ErrConfig, kind, i+1, kind, i)
		}
		out[i] = idx
	}

	return out, nil
}

// AyahCount returns the number of ayahs in surah.
func (t *Table) AyahCount(surah int) (int, error) {
	if surah < 1 || surah > SurahCount {
		return 0, fmt.Errorf("%w: %d (want 1..%d)", ErrUnknownSurah, surah, SurahCount)
	}
	return t.ayahCounts[surah-1], nil
}

// AbsoluteIndex returns the zero-based position of (surah, ayah) in reading order.
func (t *Table) AbsoluteIndex(surah, ayah int) (int, error) {
	count, err := t.AyahCount(surah)
	if err != nil {
		return 0, err
	}
	if ayah < 1 || ayah > count {
		return 0, fmt.Errorf("%w: %d (surah %d has %d ayahs)", ErrInvalidAyah, ayah, surah, count)
	}
	return t.offsets[surah-1] + ayah - 1, nil
}

// PositionOf is the inverse of AbsoluteIndex.
func (t *Table) PositionOf(index int) (Position, error) {
	if index < 0 || index >= t.TotalAyahs() {
		return Position{}, fmt.Errorf("%w: absolute index %d out of range", ErrInvalidAyah, index)
	}
	// first surah ending after index
	i := sort.SearchInts(t.offsets[1:], index+1)
	return Position{Surah: i + 1, Ayah: index - t.offsets[i] + 1}, nil
}

// PageOf returns the 1-based page holding index. Callers pass resolved indexes;
// anything before the first ayah reports page 0.
func (t *Table) PageOf(index int) int {
	return sort.SearchInts(t.pageStarts, index+1)
}

// PageStart returns the absolute index at which page begins.
func (t *Table) PageStart(page int) (int, bool) {
	if page < 1 || page > len(t.pageStarts) {
		return 0, false
	}
	return t.pageStarts[page-1], true
}

// JuzOf returns the 1-based juz holding index, or 0 when index is out of range.
func (t *Table) JuzOf(index int) int {
	if index < 0 || index >= t.TotalAyahs() {
		return 0
	}
	i := sort.Search(len(t.juz), func(i int) bool { return t.juz[i].End > index })
	return t.juz[i].Number
}

// Juz returns segment n (1-based).
func (t *Table) Juz(n int) (JuzSegment, bool) {
	if n < 1 || n > len(t.juz) {
		return JuzSegment{}, false
	}
	return t.juz[n-1], true
}

// JuzSegmentsOverlapping returns, in order, every segment intersecting
// [start, endInclusive].
func (t *Table) JuzSegmentsOverlapping(start, endInclusive int) []JuzSegment {
	var out []JuzSegment
	for _, seg := range t.juz {
		if seg.End <= start {
			continue
		}
		if seg.Start > endInclusive {
			break
		}
		out = append(out, seg)
	}
	return out
}

// Surahs lists every surah in order.
func (t *Table) Surahs() []Surah {
	out := make([]Surah, len(t.ayahCounts))
	for i, count := range t.ayahCounts {
		out[i] = Surah{Number: i + 1, Ayahs: count}
	}
	return out
}

func (t *Table) TotalAyahs() int {
	return t.offsets[len(t.offsets)-1]
}

func (t *Table) PageCount() int {
	return len(t.pageStarts)
}

func (t *Table) JuzCount() int {
	return len(t.juz)
}
