package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/linkbio/linkbio/internal/api/auth"
	"github.com/linkbio/linkbio/internal/api/models"
	"github.com/linkbio/linkbio/internal/inflight"
	"github.com/linkbio/linkbio/internal/session"
	"github.com/linkbio/linkbio/web/templates/pages"
)

const (
	msgLinkAdded   = "Link added successfully!"
	msgLinkUpdated = "Link updated successfully!"
	msgLinkDeleted = "Link deleted successfully!"
	msgWentWrong   = "Something went wrong!"
)

func (h *Handler) Dashboard(c *gin.Context) {
	form := models.LinkForm{Mode: models.FormIdle}
	if edit := c.Query("edit"); edit != "" {
		if id, err := strconv.Atoi(edit); err == nil {
			form = models.LinkForm{Mode: models.FormEditing, ID: id}
		}
	}
	h.renderDashboard(c, form, nil)
}

// renderDashboard fetches the account, links and settings and renders the dashboard.
// An editing form without title and url is filled from the fetched link.
func (h *Handler) renderDashboard(c *gin.Context, form models.LinkForm, toasts []models.Toast) {
	ctx := c.Request.Context()
	client := h.api(c)
	sess := session.From(c)
	toasts = append(sess.Toasts(), toasts...)

	user, err := client.CurrentUser(ctx)
	if err != nil {
		log.Error("Failed to fetch current user", "error", err)
	}

	links, err := client.MyLinks(ctx)
	if err != nil {
		log.Error("Failed to fetch links", "error", err)
		toasts = append(toasts, models.Toast{Kind: models.ToastError, Message: msgWentWrong})
	}

	if form.Editing() && form.Title == "" && form.URL == "" {
		if link, ok := models.FindLink(links, form.ID); ok {
			form.Title, form.URL = link.Title, link.URL
		} else {
			form = models.LinkForm{Mode: models.FormIdle}
		}
	}

	settings, err := client.MySettings(ctx)
	if err != nil {
		log.Error("Failed to fetch settings", "error", err)
		toasts = append(toasts, models.Toast{Kind: models.ToastError, Message: "Failed to load settings"})
	}

	token := c.GetString(auth.TokenKey)
	view := models.DashboardView{
		User:  models.ToUser(user, h.config.Gravatar),
		Links: links,
		Form:  form,
		Settings: models.ToSettingsView(settings, func(f models.SettingsField) bool {
			return h.inflight.Busy(inflight.Key(token, string(f)))
		}),
		Toasts: toasts,
	}

	render(c, http.StatusOK, "dashboard", pages.Dashboard(view))
}

// SaveLink creates a link, or updates it when an id is posted.
func (h *Handler) SaveLink(c *gin.Context) {
	form := models.LinkForm{
		Mode:  models.FormIdle,
		Title: strings.TrimSpace(c.PostForm("title")),
		URL:   strings.TrimSpace(c.PostForm("url")),
	}
	redirect := DashboardPath
	if rawID := c.PostForm("id"); rawID != "" {
		id, err := strconv.Atoi(rawID)
		if err != nil {
			session.From(c).Error(msgWentWrong)
			c.Redirect(http.StatusFound, DashboardPath)
			return
		}
		form.Mode, form.ID = models.FormEditing, id
		redirect = models.EditURL(id)
	}

	if form.Title == "" || form.URL == "" {
		c.Redirect(http.StatusFound, redirect)
		return
	}

	ctx := c.Request.Context()
	client := h.api(c)
	var (
		err error
		msg string
	)
	if form.Editing() {
		_, err = client.UpdateLink(ctx, form.ID, form.Title, form.URL)
		msg = msgLinkUpdated
	} else {
		_, err = client.AddLink(ctx, form.Title, form.URL)
		msg = msgLinkAdded
	}
	if err != nil {
		log.Error("Failed to save link", "id", form.ID, "error", err)
		// Keep the submitted values so nothing typed is lost.
		h.renderDashboard(c, form, []models.Toast{{Kind: models.ToastError, Message: msgWentWrong}})
		return
	}

	session.From(c).Success(msg)
	c.Redirect(http.StatusFound, DashboardPath)
}

// ConfirmDeleteLink asks for confirmation before a link is deleted.
func (h *Handler) ConfirmDeleteLink(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		session.From(c).Error(msgWentWrong)
		c.Redirect(http.StatusFound, DashboardPath)
		return
	}

	links, err := h.api(c).MyLinks(c.Request.Context())
	if err != nil {
		log.Error("Failed to fetch links", "error", err)
		session.From(c).Error(msgWentWrong)
		c.Redirect(http.StatusFound, DashboardPath)
		return
	}
	link, ok := models.FindLink(links, id)
	if !ok {
		session.From(c).Error(msgWentWrong)
		c.Redirect(http.StatusFound, DashboardPath)
		return
	}

	render(c, http.StatusOK, "delete confirmation", pages.DeleteConfirm(models.DeleteConfirmView{Link: link}))
}

func (h *Handler) DeleteLink(c *gin.Context) {
	sess := session.From(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		sess.Error(msgWentWrong)
		c.Redirect(http.StatusFound, DashboardPath)
		return
	}

	if err := h.api(c).DeleteLink(c.Request.Context(), id); err != nil {
		log.Error("Failed to delete link", "id", id, "error", err)
		sess.Error(msgWentWrong)
	} else {
		sess.Success(msgLinkDeleted)
	}
	c.Redirect(http.StatusFound, DashboardPath)
}
