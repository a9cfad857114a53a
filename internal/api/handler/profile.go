package handler

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/linkbio/linkbio/internal/api/models"
	"github.com/linkbio/linkbio/internal/backend"
	"github.com/linkbio/linkbio/web/templates/pages"
	"golang.org/x/sync/errgroup"
)

// Profile renders the public page of a user. Profile and settings are fetched in parallel
// and fail independently.
func (h *Handler) Profile(c *gin.Context) {
	username := c.Param("username")
	ctx := c.Request.Context()
	client := h.api(c)

	var (
		profile     *backend.PublicProfile
		settings    *backend.Settings
		profileErr  error
		settingsErr error
		g           errgroup.Group
	)
	// Both fetches run to completion; a failure of one must not cancel the other.
	g.Go(func() error {
		profile, profileErr = client.PublicProfile(ctx, username)
		return nil
	})
	g.Go(func() error {
		settings, settingsErr = client.PublicSettings(ctx, username)
		return nil
	})
	g.Wait() //nolint:errcheck

	if settingsErr != nil {
		log.Warn("Failed to fetch public settings, using defaults", "username", username, "error", settingsErr)
	}
	if profileErr != nil {
		log.Error("Failed to fetch public profile", "username", username, "error", profileErr)
		render(c, http.StatusOK, "profile", pages.ProfileLoading())
		return
	}
	render(c, http.StatusOK, "profile", pages.Profile(models.ToProfileView(username, profile, settings)))
}
