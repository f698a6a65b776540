package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/escalopa/odoj-bot/internal/domain"
	"github.com/jmoiron/sqlx"
)

const readingColumns = `id::text AS id, user_id, user_name, to_char(date, 'YYYY-MM-DD') AS date,
	start_surah, start_ayah, end_surah, end_ayah, total_pages, juz_obtained, created_at`

// Store keeps readings in PostgreSQL
type Store struct {
	db *sqlx.DB
}

var _ domain.ReadingStorePort = (*Store)(nil)

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateReading(ctx context.Context, reading *domain.Reading) error {
	q := `
	INSERT INTO readings (user_id, user_name, date, start_surah, start_ayah, end_surah, end_ayah, total_pages, juz_obtained)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING id::text, created_at`

	row := s.db.QueryRowxContext(ctx, q,
		reading.UserID, reading.UserName, reading.Date,
		reading.StartSurah, reading.StartAyah, reading.EndSurah, reading.EndAyah,
		reading.TotalPages, reading.JuzObtained,
	)
	if err := row.Scan(&reading.ID, &reading.CreatedAt); err != nil {
		return fmt.Errorf("insert reading: %w", err)
	}
	return nil
}

func (s *Store) GetReading(ctx context.Context, id string) (*domain.Reading, error) {
	var reading domain.Reading
	err := s.db.GetContext(ctx, &reading, `SELECT `+readingColumns+` FROM readings WHERE id::text = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("reading %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get reading: %w", err)
	}
	return &reading, nil
}

func (s *Store) ListReadings(ctx context.Context, userID string) ([]*domain.Reading, error) {
	var readings []*domain.Reading
	err := s.db.SelectContext(ctx, &readings, `
		SELECT `+readingColumns+`
		FROM readings
		WHERE user_id = $1
		ORDER BY date, created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("list readings: %w", err)
	}
	return readings, nil
}

func (s *Store) ListAllReadings(ctx context.Context) ([]*domain.Reading, error) {
	var readings []*domain.Reading
	err := s.db.SelectContext(ctx, &readings, `
		SELECT `+readingColumns+`
		FROM readings
		ORDER BY date, created_at`)
	if err != nil {
		return nil, fmt.Errorf("list all readings: %w", err)
	}
	return readings, nil
}

func (s *Store) UpdateReading(ctx context.Context, reading *domain.Reading) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE readings
		SET start_surah = $2, start_ayah = $3, end_surah = $4, end_ayah = $5,
		total_pages = $6, juz_obtained = $7
		WHERE id::text = $1`,
		reading.ID, reading.StartSurah, reading.StartAyah, reading.EndSurah, reading.EndAyah,
		reading.TotalPages, reading.JuzObtained,
	)
	if err != nil {
		return fmt.Errorf("update reading: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("reading %s: %w", reading.ID, domain.ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteReading(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM readings WHERE id::text = $1`, id)
	if err != nil {
		return fmt.Errorf("delete reading: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("reading %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ReadingsEnabled reads the readings_enabled setting. A missing row means enabled.
func (s *Store) ReadingsEnabled(ctx context.Context) (bool, error) {
	var value string
	err := s.db.GetContext(ctx, &value, `SELECT value FROM app_settings WHERE key = 'readings_enabled'`)
	if errors.Is(err, sql.ErrNoRows) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("get readings_enabled: %w", err)
	}
	return value != "false", nil
}

func (s *Store) SetReadingsEnabled(ctx context.Context, enabled bool) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO app_settings (key, value, updated_at)
		VALUES ('readings_enabled', $1, now())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value,
		updated_at = now()`, strconv.FormatBool(enabled))
	if err != nil {
		return fmt.Errorf("set readings_enabled: %w", err)
	}
	return nil
}
