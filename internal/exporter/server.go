package exporter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/prabalesh/proctop/internal/models"
)

// Source produces snapshots. *collector.StatsCollector satisfies it.
type Source interface {
	GetSystemStats() models.SystemStats
	GetProcessList() models.ProcessList
}

// Server exposes snapshots as JSON and Prometheus text over HTTP.
type Server struct {
	source Source
	logger *slog.Logger
	router *gin.Engine

	// serializes sampling so concurrent scrapes see coherent deltas
	mutex sync.Mutex
}

// NewServer builds the router. A nil logger discards output.
func NewServer(source Source, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{source: source, logger: logger}

	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "proctop",
		})
	})
	router.GET("/api/system", s.handleSystem)
	router.GET("/api/processes", s.handleProcesses)
	router.GET("/metrics", s.handleMetrics)

	s.router = router
	return s
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (s *Server) snapshot() (models.SystemStats, models.ProcessList) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.source.GetSystemStats(), s.source.GetProcessList()
}

func (s *Server) handleSystem(c *gin.Context) {
	s.mutex.Lock()
	stats := s.source.GetSystemStats()
	s.mutex.Unlock()
	c.JSON(http.StatusOK, stats)
}

func (s *Server) handleProcesses(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	s.mutex.Lock()
	list := s.source.GetProcessList()
	s.mutex.Unlock()
	c.JSON(http.StatusOK, list.Top(limit))
}

func (s *Server) handleMetrics(c *gin.Context) {
	stats, procs := s.snapshot()

	var buf bytes.Buffer
	if err := WriteText(&buf, Families(stats, procs)); err != nil {
		s.logger.Error("failed to encode metrics", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode metrics"})
		return
	}
	c.Data(http.StatusOK, ContentType, buf.Bytes())
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting exporter", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("stopping exporter")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
