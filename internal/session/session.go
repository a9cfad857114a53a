// Package session stores the backend token and pending toasts in the visitor's session cookie.
package session

import (
	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/linkbio/linkbio/internal/api/models"
	"github.com/linkbio/linkbio/internal/backend"
)

const (
	// Name is the name of the session cookie.
	Name = "linkbio_session"

	tokenKey = "token"
)

// Session wraps the gin session of a single request.
// It implements backend.TokenSource.
type Session struct {
	s sessions.Session
}

var _ backend.TokenSource = (*Session)(nil)

// From returns the session of the request. The sessions middleware must be installed.
func From(c *gin.Context) *Session {
	return &Session{s: sessions.Default(c)}
}

// Token returns the stored token, or an empty string if the visitor is signed out.
func (s *Session) Token() string {
	token, _ := s.s.Get(tokenKey).(string)
	return token
}

// SetToken stores the token and saves the session.
func (s *Session) SetToken(token string) error {
	s.s.Set(tokenKey, token)
	return s.s.Save()
}

// Clear removes every value from the session and saves it.
func (s *Session) Clear() error {
	s.s.Clear()
	return s.s.Save()
}

// AddToast queues a toast for the next rendered page.
func (s *Session) AddToast(kind models.ToastKind, message string) {
	s.s.AddFlash(message, string(kind))
	if err := s.s.Save(); err != nil {
		log.Error("Failed to save session", "error", err)
	}
}

// Success queues a success toast.
func (s *Session) Success(message string) {
	s.AddToast(models.ToastSuccess, message)
}

// Error queues an error toast.
func (s *Session) Error(message string) {
	s.AddToast(models.ToastError, message)
}

// Toasts returns and removes the queued toasts, success first.
func (s *Session) Toasts() []models.Toast {
	var toasts []models.Toast
	for _, kind := range []models.ToastKind{models.ToastSuccess, models.ToastError} {
		for _, flash := range s.s.Flashes(string(kind)) {
			if msg, ok := flash.(string); ok {
				toasts = append(toasts, models.Toast{Kind: kind, Message: msg})
			}
		}
	}
	if len(toasts) > 0 {
		if err := s.s.Save(); err != nil {
			log.Error("Failed to save session", "error", err)
		}
	}
	return toasts
}
