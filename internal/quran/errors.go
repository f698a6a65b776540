package quran

import "errors"

var (
	// ErrUnknownSurah is returned for a surah number outside 1..114.
	ErrUnknownSurah = errors.New("unknown surah")
	// ErrInvalidAyah is returned for an ayah number outside the surah.
	ErrInvalidAyah = errors.New("invalid ayah")
	// ErrInvalidRange is returned when the end of a reading precedes its start.
	ErrInvalidRange = errors.New("end position precedes start position")
	// ErrConfig reports a reference table that violates its invariants.
	ErrConfig = errors.New("invalid reference table")
)
