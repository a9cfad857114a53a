package handler

import (
	"errors"
	"math/rand/v2"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/linkbio/linkbio/internal/api/models"
	"github.com/linkbio/linkbio/internal/backend"
	"github.com/linkbio/linkbio/internal/config"
	"github.com/linkbio/linkbio/internal/inflight"
	"github.com/linkbio/linkbio/internal/session"
	"github.com/linkbio/linkbio/internal/version"
	"github.com/linkbio/linkbio/web/templates/pages"
)

const (
	// DashboardPath is where visitors land after signing in.
	DashboardPath = "/dashboard"
	// LoginPath is the sign in page.
	LoginPath = "/login"

	bubbleCount = 15
)

// Handler serves the browser facing pages.
type Handler struct {
	client   *backend.Client
	config   *config.Config
	inflight *inflight.Guard
}

// New creates a handler calling the backend through client.
func New(client *backend.Client, cfg *config.Config) *Handler {
	return &Handler{
		client:   client,
		config:   cfg,
		inflight: inflight.New(),
	}
}

// api returns a backend client carrying the token of the visitor's session.
// The token is read once here, so the client may be shared between goroutines.
func (h *Handler) api(c *gin.Context) *backend.Client {
	token := session.From(c).Token()
	return h.client.WithTokenSource(backend.TokenSourceFunc(func() string { return token }))
}

func render(c *gin.Context, status int, page string, component templ.Component) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := component.Render(c.Request.Context(), c.Writer); err != nil {
		log.Error("Failed to render "+page+" page", "error", err)
	}
}

func abortWithError(c *gin.Context, err error) {
	if err := c.AbortWithError(http.StatusInternalServerError, err); err != nil {
		log.Error("Failed to abort with error", "error", err)
	}
}

func (h *Handler) Home(c *gin.Context) {
	bubbles := models.NewBubbles(bubbleCount, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))) //nolint:gosec
	render(c, http.StatusOK, "home", pages.Home(bubbles, session.From(c).Toasts()))
}

func (h *Handler) Login(c *gin.Context) {
	render(c, http.StatusOK, "login", pages.Login("", "", session.From(c).Toasts()))
}

func (h *Handler) LoginPost(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")
	if username == "" || password == "" {
		render(c, http.StatusBadRequest, "login", pages.Login(username, "Username and password are required", nil))
		return
	}

	token, err := h.api(c).Login(c.Request.Context(), username, password)
	if err != nil {
		log.Error("Failed to sign in", "username", username, "error", err)
		render(c, http.StatusUnauthorized, "login", pages.Login(username, "Invalid username or password", nil))
		return
	}
	if token.AccessToken == "" {
		log.Error("Backend returned an empty token", "username", username)
		render(c, http.StatusUnauthorized, "login", pages.Login(username, "Invalid username or password", nil))
		return
	}

	if err := session.From(c).SetToken(token.AccessToken); err != nil {
		abortWithError(c, err)
		return
	}
	log.Debug("User signed in", "username", username)
	c.Redirect(http.StatusFound, DashboardPath)
}

func (h *Handler) Register(c *gin.Context) {
	render(c, http.StatusOK, "register", pages.Register(models.RegisterForm{}, "", session.From(c).Toasts()))
}

func (h *Handler) RegisterPost(c *gin.Context) {
	user := backend.NewUser{
		Username: strings.TrimSpace(c.PostForm("username")),
		Email:    strings.TrimSpace(c.PostForm("email")),
		Password: c.PostForm("password"),
		FullName: strings.TrimSpace(c.PostForm("full_name")),
	}
	form := models.RegisterForm{Username: user.Username, FullName: user.FullName, Email: user.Email}

	if _, err := h.api(c).Register(c.Request.Context(), user); err != nil {
		msg := "Registration failed"
		if errors.Is(err, backend.ErrMissingField) {
			msg = "Username, email and password are required"
		}
		log.Error("Failed to register user", "username", user.Username, "error", err)
		render(c, http.StatusBadRequest, "register", pages.Register(form, msg, nil))
		return
	}

	session.From(c).Success("Account created, please sign in")
	c.Redirect(http.StatusFound, LoginPath)
}

func (h *Handler) Logout(c *gin.Context) {
	if err := session.From(c).Clear(); err != nil {
		abortWithError(c, err)
		return
	}
	c.Redirect(http.StatusFound, LoginPath)
}

func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": version.Version,
	})
}
