package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/linkbio/linkbio/internal/api/auth"
	"github.com/linkbio/linkbio/internal/api/handler"
	"github.com/linkbio/linkbio/internal/avatar"
	"github.com/linkbio/linkbio/internal/backend"
	"github.com/linkbio/linkbio/internal/config"
	"github.com/linkbio/linkbio/internal/session"
	"github.com/linkbio/linkbio/internal/static"
)

// RequestIDHeader carries the id assigned to every request.
const RequestIDHeader = "X-Request-ID"

type Server struct {
	cfg        *config.Config
	ginEngine  *gin.Engine
	client     *backend.Client
	httpServer *http.Server
}

func New(cfg *config.Config, debug bool) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.API == nil {
		return nil, fmt.Errorf("api config is required")
	}

	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}
	checkGravatarConfig(cfg.Gravatar)

	ginEngine := gin.New()
	ginEngine.Use(gin.Recovery(), requestID(), requestLogger(), gzip.Gzip(gzip.DefaultCompression))

	s := &Server{
		cfg:       cfg,
		ginEngine: ginEngine,
		client:    backend.New(cfg.API),
	}
	if err := s.setupRoutes(); err != nil {
		return nil, err
	}

	s.httpServer = &http.Server{
		Addr:              cfg.Listen,
		Handler:           s.ginEngine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.ginEngine
}

func (s *Server) setupSession() {
	store := cookie.NewStore([]byte(s.cfg.SessionKey))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   s.cfg.SessionMaxAge,
		HttpOnly: true,
		Secure:   s.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	s.ginEngine.Use(sessions.Sessions(session.Name, store))
}

func (s *Server) setupRoutes() error {
	staticFS, err := static.FS()
	if err != nil {
		return err
	}
	s.ginEngine.StaticFS("/static", http.FS(staticFS))

	h := handler.New(s.client, s.cfg)
	s.ginEngine.GET("/healthz", h.Healthz)

	s.setupSession()

	pages := s.ginEngine.Group("/")
	pages.GET("/", h.Home)

	guest := pages.Group("/", auth.RedirectIfAuthenticated(handler.DashboardPath))
	guest.GET("/login", h.Login)
	guest.POST("/login", h.LoginPost)
	guest.GET("/register", h.Register)
	guest.POST("/register", h.RegisterPost)

	pages.GET("/logout", h.Logout)
	pages.POST("/logout", h.Logout)
	pages.GET("/profile/:username", h.Profile)

	protected := pages.Group("/", auth.RequireAuth())
	protected.GET("/dashboard", h.Dashboard)
	protected.POST("/dashboard/links", h.SaveLink)
	protected.GET("/dashboard/links/:id/delete", h.ConfirmDeleteLink)
	protected.POST("/dashboard/links/:id/delete", h.DeleteLink)
	protected.POST("/settings/theme", h.UpdateTheme)
	protected.POST("/settings/layout", h.UpdateLayout)
	protected.POST("/settings/icons", h.UpdateIcons)

	return nil
}

// Run starts the HTTP server and blocks until it is shut down.
func (s *Server) Run() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("Handled request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"request_id", c.GetString("request_id"),
		)
	}
}

func checkGravatarConfig(cfg *config.GravatarConfig) {
	if cfg == nil || !cfg.Enabled {
		return
	}
	if !avatar.IsValidDefaultImage(cfg.DefaultImage) {
		log.Warn("Invalid gravatar default image, gravatar may fall back to its own default", "default_image", cfg.DefaultImage)
	}
	if !avatar.IsValidRating(cfg.Rating) {
		log.Warn("Invalid gravatar rating", "rating", cfg.Rating)
	}
	if !avatar.IsValidSize(cfg.Size) {
		log.Warn("Invalid gravatar size", "size", cfg.Size)
	}
}
