package httpapi

import (
	"errors"
	"net/http"

	"github.com/escalopa/odoj-bot/internal/domain"
	"github.com/escalopa/odoj-bot/internal/quran"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Error codes returned in the "error" field of failed responses
const (
	CodeInvalidRequest = "invalid_request"
	CodeUnknownSurah   = "unknown_surah"
	CodeInvalidAyah    = "invalid_ayah"
	CodeInvalidRange   = "invalid_range"
	CodeInternal       = "internal"
)

type apiError struct {
	Status  int
	Code    string
	Message string
}

type handlerFunc func(c *gin.Context) (any, *apiError)

func resolveEndpoint(h handlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, apiErr := h(c)
		if apiErr != nil {
			c.JSON(apiErr.Status, gin.H{"error": apiErr.Code, "message": apiErr.Message})
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// rangeError maps calculator errors onto stable codes
func rangeError(err error) *apiError {
	switch {
	case errors.Is(err, quran.ErrUnknownSurah):
		return &apiError{Status: http.StatusBadRequest, Code: CodeUnknownSurah, Message: err.Error()}
	case errors.Is(err, quran.ErrInvalidAyah):
		return &apiError{Status: http.StatusBadRequest, Code: CodeInvalidAyah, Message: err.Error()}
	case errors.Is(err, quran.ErrInvalidRange):
		return &apiError{Status: http.StatusBadRequest, Code: CodeInvalidRange, Message: err.Error()}
	default:
		log.Error().Err(err).Msg("compute progress")
		return &apiError{Status: http.StatusInternalServerError, Code: CodeInternal, Message: "internal error"}
	}
}

type progressRequest struct {
	StartSurah *int `json:"start_surah" binding:"required"`
	StartAyah  *int `json:"start_ayah" binding:"required"`
	EndSurah   *int `json:"end_surah" binding:"required"`
	EndAyah    *int `json:"end_ayah" binding:"required"`
}

func (s *Server) computeProgress(c *gin.Context) (any, *apiError) {
	var req progressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, &apiError{Status: http.StatusBadRequest, Code: CodeInvalidRequest, Message: err.Error()}
	}

	res, err := s.service.Calculate(quran.ReadingRange{
		StartSurah: *req.StartSurah,
		StartAyah:  *req.StartAyah,
		EndSurah:   *req.EndSurah,
		EndAyah:    *req.EndAyah,
	})
	if err != nil {
		return nil, rangeError(err)
	}

	return res, nil
}

type surahResponse struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
	Ayahs  int    `json:"ayahs"`
}

func (s *Server) listSurahs(c *gin.Context) (any, *apiError) {
	lang := domain.Language(c.DefaultQuery("lang", string(s.defaultLang)))

	surahs := s.service.GetAllSurahs()
	out := make([]surahResponse, len(surahs))
	for i, surah := range surahs {
		out[i] = surahResponse{
			Number: surah.Number,
			Name:   s.i18n.GetSurahName(lang, surah.Number),
			Ayahs:  surah.Ayahs,
		}
	}

	return out, nil
}

func (s *Server) dailyTotals(c *gin.Context) (any, *apiError) {
	totals, err := s.service.DailyTotals(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("daily totals")
		return nil, &apiError{Status: http.StatusInternalServerError, Code: CodeInternal, Message: "internal error"}
	}

	return totals, nil
}
