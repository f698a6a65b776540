package supabase

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/escalopa/odoj-bot/internal/domain"
	"github.com/supabase-community/postgrest-go"
)

const (
	readingsTable   = "readings"
	settingsTable   = "app_settings"
	readingsEnabled = "readings_enabled"

	returnRows    = "representation"
	returnMinimal = "minimal"

	responseTimeout = 30 * time.Second
)

var byDate = []string{"date", "created_at"}

// Store keeps readings in Supabase through its PostgREST API
type Store struct {
	client *postgrest.Client
}

var _ domain.ReadingStorePort = (*Store)(nil)

func NewStore(baseURL, apiKey string) *Store {
	client := postgrest.NewClient(strings.TrimRight(baseURL, "/")+"/rest/v1", "public", nil)
	client.SetApiKey(apiKey)
	client.SetAuthToken(apiKey)

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = responseTimeout
	client.Transport.Parent = transport

	return &Store{client: client}
}

type readingRow struct {
	ID          string    `json:"id,omitempty"`
	UserID      string    `json:"user_id"`
	UserName    string    `json:"user_name"`
	Date        string    `json:"date"`
	StartSurah  int       `json:"start_surah"`
	StartAyah   int       `json:"start_ayah"`
	EndSurah    int       `json:"end_surah"`
	EndAyah     int       `json:"end_ayah"`
	TotalPages  int       `json:"total_pages"`
	JuzObtained float64   `json:"juz_obtained"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
}

// rangeUpdate is the PATCH body of UpdateReading
type rangeUpdate struct {
	StartSurah  int     `json:"start_surah"`
	StartAyah   int     `json:"start_ayah"`
	EndSurah    int     `json:"end_surah"`
	EndAyah     int     `json:"end_ayah"`
	TotalPages  int     `json:"total_pages"`
	JuzObtained float64 `json:"juz_obtained"`
}

type settingRow struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// CreateReading inserts a reading and fills its ID and CreatedAt
func (s *Store) CreateReading(ctx context.Context, reading *domain.Reading) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var rows []readingRow
	_, err := s.client.From(readingsTable).
		Insert(toRow(reading), false, "", returnRows, "").
		ExecuteTo(&rows)
	if err != nil {
		return fmt.Errorf("insert reading: %w", err)
	}

	if len(rows) == 0 {
		return fmt.Errorf("insert reading: empty response")
	}

	reading.ID = rows[0].ID
	reading.CreatedAt = rows[0].CreatedAt
	return nil
}

// GetReading retrieves a reading by ID
func (s *Store) GetReading(ctx context.Context, id string) (*domain.Reading, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rows []readingRow
	_, err := s.client.From(readingsTable).
		Select("*", "", false).
		Eq("id", id).
		Limit(1, "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("get reading: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("reading %s: %w", id, domain.ErrNotFound)
	}
	return fromRow(&rows[0]), nil
}

// ListReadings lists the readings of a user ordered by date
func (s *Store) ListReadings(ctx context.Context, userID string) ([]*domain.Reading, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	query := s.client.From(readingsTable).Select("*", "", false).Eq("user_id", userID)
	return list(query)
}

// ListAllReadings lists every reading ordered by date
func (s *Store) ListAllReadings(ctx context.Context) ([]*domain.Reading, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return list(s.client.From(readingsTable).Select("*", "", false))
}

func list(query *postgrest.FilterBuilder) ([]*domain.Reading, error) {
	for _, column := range byDate {
		query = query.Order(column, &postgrest.OrderOpts{Ascending: true})
	}

	var rows []readingRow
	if _, err := query.ExecuteTo(&rows); err != nil {
		return nil, fmt.Errorf("list readings: %w", err)
	}

	readings := make([]*domain.Reading, len(rows))
	for i := range rows {
		readings[i] = fromRow(&rows[i])
	}

	return readings, nil
}

// UpdateReading patches the range and progress of a reading
func (s *Store) UpdateReading(ctx context.Context, reading *domain.Reading) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	update := rangeUpdate{
		StartSurah:  reading.StartSurah,
		StartAyah:   reading.StartAyah,
		EndSurah:    reading.EndSurah,
		EndAyah:     reading.EndAyah,
		TotalPages:  reading.TotalPages,
		JuzObtained: reading.JuzObtained,
	}

	var rows []readingRow
	_, err := s.client.From(readingsTable).
		Update(update, returnRows, "").
		Eq("id", reading.ID).
		ExecuteTo(&rows)
	if err != nil {
		return fmt.Errorf("update reading: %w", err)
	}

	if len(rows) == 0 {
		return fmt.Errorf("reading %s: %w", reading.ID, domain.ErrNotFound)
	}
	return nil
}

// DeleteReading deletes a reading by ID
func (s *Store) DeleteReading(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var rows []readingRow
	_, err := s.client.From(readingsTable).
		Delete(returnRows, "").
		Eq("id", id).
		ExecuteTo(&rows)
	if err != nil {
		return fmt.Errorf("delete reading: %w", err)
	}

	if len(rows) == 0 {
		return fmt.Errorf("reading %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ReadingsEnabled reads the readings_enabled setting. A missing row means enabled.
func (s *Store) ReadingsEnabled(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	var rows []settingRow
	_, err := s.client.From(settingsTable).
		Select("key,value", "", false).
		Eq("key", readingsEnabled).
		ExecuteTo(&rows)
	if err != nil {
		return false, fmt.Errorf("get readings_enabled: %w", err)
	}

	if len(rows) == 0 {
		return true, nil
	}
	return rows[0].Value != "false", nil
}

// SetReadingsEnabled upserts the readings_enabled setting
func (s *Store) SetReadingsEnabled(ctx context.Context, enabled bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	row := settingRow{
		Key:       readingsEnabled,
		Value:     strconv.FormatBool(enabled),
		UpdatedAt: time.Now().UTC(),
	}

	_, _, err := s.client.From(settingsTable).
		Upsert(row, "key", returnMinimal, "").
		Execute()
	if err != nil {
		return fmt.Errorf("set readings_enabled: %w", err)
	}
	return nil
}

func toRow(r *domain.Reading) readingRow {
	return readingRow{
		UserID:      r.UserID,
		UserName:    r.UserName,
		Date:        r.Date,
		StartSurah:  r.StartSurah,
		StartAyah:   r.StartAyah,
		EndSurah:    r.EndSurah,
		EndAyah:     r.EndAyah,
		TotalPages:  r.TotalPages,
		JuzObtained: r.JuzObtained,
	}
}

func fromRow(r *readingRow) *domain.Reading {
	return &domain.Reading{
		ID:          r.ID,
		UserID:      r.UserID,
		UserName:    r.UserName,
		Date:        r.Date,
		StartSurah:  r.StartSurah,
		StartAyah:   r.StartAyah,
		EndSurah:    r.EndSurah,
		EndAyah:     r.EndAyah,
		TotalPages:  r.TotalPages,
		JuzObtained: r.JuzObtained,
		CreatedAt:   r.CreatedAt,
	}
}
