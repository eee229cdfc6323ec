package server

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"CryptoBoard/internal/chart"
	"CryptoBoard/internal/collector"
	"CryptoBoard/internal/config"
	"CryptoBoard/internal/render"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

//go:embed web/index.html
var webFS embed.FS

// Server exposes the dashboard page, its JSON API and the live websocket.
type Server struct {
	engine    *gin.Engine
	http      *http.Server
	store     *render.Store
	chart     *chart.Chart
	hub       *Hub
	collector *collector.Collector
}

// New builds the router. col may be nil, in which case /healthz reports no stats.
func New(cfg *config.Config, store *render.Store, ch *chart.Chart, hub *Hub, col *collector.Collector) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = cfg.Server.AllowedOrigins
	corsCfg.AllowMethods = []string{http.MethodGet, http.MethodOptions}
	engine.Use(cors.New(corsCfg))

	engine.SetHTMLTemplate(template.Must(template.ParseFS(webFS, "web/index.html")))

	s := &Server{
		engine:    engine,
		store:     store,
		chart:     ch,
		hub:       hub,
		collector: col,
	}
	s.routes()

	s.http = &http.Server{
		Addr:        cfg.Server.Listen,
		Handler:     engine,
		ReadTimeout: 5 * time.Second,
		IdleTimeout: 120 * time.Second,
	}
	return s
}

func (s *Server) routes() {
	s.engine.GET("/", s.index)
	s.engine.GET("/healthz", s.health)
	s.engine.GET("/chart.png", s.chartPNG)
	s.engine.GET("/ws", s.serveWS)

	api := s.engine.Group("/api")
	{
		api.GET("/board", s.board)
		api.GET("/chart", s.chartConfig)
	}
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe blocks serving HTTP until Shutdown is called.
func (s *Server) ListenAndServe() error {
	slog.Info("http server listening", slog.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown closes websocket clients and drains HTTP connections.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	return s.http.Shutdown(ctx)
}

func (s *Server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Board": s.store.Board(),
	})
}

func (s *Server) board(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Board())
}

func (s *Server) chartConfig(c *gin.Context) {
	cfg, err := s.chart.Config()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (s *Server) chartPNG(c *gin.Context) {
	width := 0
	if v := c.Query("width"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "width must be a positive integer"})
			return
		}
		width = n
	}
	if !s.chart.Drawn() {
		c.JSON(http.StatusNotFound, gin.H{"error": chart.ErrNotDrawn.Error()})
		return
	}
	c.Header("Content-Type", "image/png")
	c.Header("Cache-Control", "no-cache")
	if err := s.chart.WritePNG(c.Writer, width); err != nil {
		slog.Error("render chart png", slog.Any("error", err))
		c.Status(http.StatusInternalServerError)
	}
}

func (s *Server) health(c *gin.Context) {
	resp := gin.H{
		"status":  "ok",
		"clients": s.hub.Count(),
		"drawn":   s.chart.Drawn(),
	}
	if s.collector != nil {
		resp["fetch"] = s.collector.Stats()
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) serveWS(c *gin.Context) {
	var initial []Message
	if b := s.store.Board(); !b.Empty() {
		initial = append(initial, Message{Type: MessageBoard, Board: &b})
	}
	if cfg, err := s.chart.Config(); err == nil {
		initial = append(initial, Message{Type: MessageChart, Chart: &cfg})
	}
	if err := s.hub.Serve(c.Writer, c.Request, initial); err != nil {
		slog.Warn("websocket upgrade failed", slog.Any("error", err))
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Debug("http request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}
