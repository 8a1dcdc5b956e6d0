// Package reportserver is the HTTP face of the report API: a descriptor
// list endpoint and a per-report data endpoint that answers with the
// typed-value envelope.
package reportserver

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tinytelemetry/statview/internal/model"
)

// Server serves the report API.
type Server struct {
	addr      string
	source    *Source
	server    *http.Server
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
}

// NewServer creates a report API server backed by source.
func NewServer(addr string, source *Source) *Server {
	if addr == "" {
		addr = model.DefaultAPIAddr
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:   addr,
		source: source,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)
	r := s.routes()

	s.server = &http.Server{
		Handler:           r,
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	s.startTime = time.Now()

	go s.server.Serve(listener)
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	s.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/api/health", s.handleHealth)
	r.GET("/stats/reports", s.handleListReports)
	r.GET("/stats/reports/:name", s.handleGetReport)
	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"uptime":  time.Since(s.startTime).String(),
		"reports": len(s.source.Descriptors()),
	})
}

func (s *Server) handleListReports(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"reports": s.source.Descriptors()},
	})
}

func (s *Server) handleGetReport(c *gin.Context) {
	name := c.Param("name")

	// start_time arrives in epoch microseconds, duration in seconds.
	startMicros := queryInt(c, "start_time", 0)
	durationSec := queryInt(c, "duration", model.OneWeekSeconds)
	clientLabel := c.Query("client_label")

	payload, ok := s.source.Build(name, startMicros/1_000_000, durationSec, clientLabel)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown report: " + name})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"data": payload},
	})
}

// queryInt parses an integer query parameter, falling back to def on a
// missing or malformed value.
func queryInt(c *gin.Context, key string, def int64) int64 {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return def
	}
	return v
}
