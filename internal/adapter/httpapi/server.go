package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/escalopa/odoj-bot/internal/domain"
	"github.com/escalopa/odoj-bot/internal/quran"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 5 * time.Second

// Service is the part of the application the HTTP API exposes
type Service interface {
	Calculate(r quran.ReadingRange) (quran.ProgressResult, error)
	GetAllSurahs() []quran.Surah
	DailyTotals(ctx context.Context) ([]domain.DailyTotal, error)
}

type Server struct {
	service     Service
	i18n        domain.I18nPort
	defaultLang domain.Language
	engine      *gin.Engine
	srv         *http.Server
}

func NewServer(addr string, service Service, i18n domain.I18nPort, defaultLang domain.Language) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		service:     service,
		i18n:        i18n,
		defaultLang: defaultLang,
		engine:      gin.New(),
	}

	s.engine.Use(gin.Recovery(), requestLogger())
	s.engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:   []string{"Content-Length"},
		MaxAge:          12 * time.Hour,
	}))

	s.registerRoutes()

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.srv.Addr).Msg("http server listening")
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.engine.Group("/api")
	api.POST("/progress", resolveEndpoint(s.computeProgress))
	api.GET("/surahs", resolveEndpoint(s.listSurahs))
	api.GET("/stats/daily", resolveEndpoint(s.dailyTotals))
}

// requestLogger logs one line per request
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("http request")
	}
}
