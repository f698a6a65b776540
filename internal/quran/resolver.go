package quran

// Resolver turns caller-supplied (surah, ayah) pairs into comparable indexes.
type Resolver struct {
	table *Table
}

func NewResolver(table *Table) Resolver {
	return Resolver{table: table}
}

// Resolve validates (surah, ayah) and returns its absolute index.
// ErrUnknownSurah and ErrInvalidAyah are passed through unchanged.
func (r Resolver) Resolve(surah, ayah int) (int, error) {
	return r.table.AbsoluteIndex(surah, ayah)
}

// Position maps an absolute index back to (surah, ayah).
func (r Resolver) Position(index int) (Position, error) {
	return r.table.PositionOf(index)
}
