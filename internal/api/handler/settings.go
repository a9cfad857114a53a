package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/linkbio/linkbio/internal/api/auth"
	"github.com/linkbio/linkbio/internal/api/models"
	"github.com/linkbio/linkbio/internal/backend"
	"github.com/linkbio/linkbio/internal/inflight"
	"github.com/linkbio/linkbio/internal/session"
	"github.com/linkbio/linkbio/internal/theme"
)

func (h *Handler) UpdateTheme(c *gin.Context) {
	name := c.PostForm("theme")
	if !theme.Valid(name) {
		log.Warn("Rejected unknown theme", "theme", name)
		session.From(c).Error("Failed to update theme")
		c.Redirect(http.StatusFound, DashboardPath)
		return
	}
	h.updateSettings(c, models.FieldTheme,
		backend.SettingsPatch{Theme: &name},
		fmt.Sprintf("Theme updated to %s", name),
		"Failed to update theme",
	)
}

func (h *Handler) UpdateLayout(c *gin.Context) {
	layout := backend.Layout(c.PostForm("layout"))
	if !layout.Valid() {
		log.Warn("Rejected unknown layout", "layout", layout)
		session.From(c).Error("Failed to update layout")
		c.Redirect(http.StatusFound, DashboardPath)
		return
	}
	h.updateSettings(c, models.FieldLayout,
		backend.SettingsPatch{Layout: &layout},
		fmt.Sprintf("Layout changed to %s", layout),
		"Failed to update layout",
	)
}

func (h *Handler) UpdateIcons(c *gin.Context) {
	show, err := strconv.ParseBool(c.PostForm("show_icons"))
	if err != nil {
		log.Warn("Rejected invalid icon setting", "show_icons", c.PostForm("show_icons"))
		session.From(c).Error("Failed to update icons")
		c.Redirect(http.StatusFound, DashboardPath)
		return
	}
	state := "disabled"
	if show {
		state = "enabled"
	}
	h.updateSettings(c, models.FieldIcons,
		backend.SettingsPatch{ShowIcons: &show},
		"Icons "+state,
		"Failed to update icons",
	)
}

// updateSettings sends a single field patch. Only one update per session and field may be pending.
func (h *Handler) updateSettings(c *gin.Context, field models.SettingsField, patch backend.SettingsPatch, success, failure string) {
	sess := session.From(c)
	release, ok := h.inflight.TryAcquire(inflight.Key(c.GetString(auth.TokenKey), string(field)))
	if !ok {
		sess.Error(field.BusyMessage())
		c.Redirect(http.StatusFound, DashboardPath)
		return
	}
	defer release()

	// The returned settings are not used; the redirect re-renders from /settings/me.
	if _, err := h.api(c).UpdateSettings(c.Request.Context(), patch); err != nil {
		log.Error("Failed to update settings", "field", field, "error", err)
		sess.Error(failure)
	} else {
		sess.Success(success)
	}
	c.Redirect(http.StatusFound, DashboardPath)
}
