package handler

import (
	"net/http"
	"net/url"

	"github.com/linkbio/linkbio/internal/api/models"
	"github.com/linkbio/linkbio/internal/backend"
	"github.com/linkbio/linkbio/internal/backend/mock"
	"github.com/linkbio/linkbio/internal/inflight"
)

func (s *HandlerTestSuite) TestSettingsPanel() {
	s.login()

	body := s.get("/dashboard").Body.String()

	s.Contains(body, "Profile Settings")
	for _, name := range []string{"dark", "ocean", "sunset", "neon"} {
		s.Contains(body, `name="theme" value="`+name+`"`)
	}
	s.Contains(body, `name="show_icons" value="false"`)
	s.NotContains(body, `" disabled>`)
}

func (s *HandlerTestSuite) TestUpdateTheme() {
	s.login()

	s.assertRedirect(s.post("/settings/theme", url.Values{"theme": {"dark"}}), DashboardPath)

	s.Equal("dark", s.backend.Settings("alice").Theme)
	s.Contains(s.get("/dashboard").Body.String(), "Theme updated to dark")
}

func (s *HandlerTestSuite) TestUpdateTheme_Idempotent() {
	s.login()

	s.post("/settings/theme", url.Values{"theme": {"dark"}})
	first := s.backend.Settings("alice")
	s.post("/settings/theme", url.Values{"theme": {"dark"}})

	s.Equal(first, s.backend.Settings("alice"))
	s.Len(s.backend.RequestsTo(http.MethodPatch, "/settings"), 2)
}

func (s *HandlerTestSuite) TestUpdateTheme_UnknownThemeRejected() {
	s.login()

	s.assertRedirect(s.post("/settings/theme", url.Values{"theme": {"solarized"}}), DashboardPath)

	s.Empty(s.backend.RequestsTo(http.MethodPatch, "/settings"))
	s.Equal("ocean", s.backend.Settings("alice").Theme)
	s.Contains(s.get("/dashboard").Body.String(), "Failed to update theme")
}

func (s *HandlerTestSuite) TestUpdateTheme_BackendFailure() {
	s.backend.Fail(mock.UpdateSettings)
	s.login()

	s.assertRedirect(s.post("/settings/theme", url.Values{"theme": {"neon"}}), DashboardPath)

	s.Equal("ocean", s.backend.Settings("alice").Theme)
	s.Contains(s.get("/dashboard").Body.String(), "Failed to update theme")
}

func (s *HandlerTestSuite) TestUpdateLayout() {
	s.login()

	s.assertRedirect(s.post("/settings/layout", url.Values{"layout": {"grid"}}), DashboardPath)
	s.Equal(backend.LayoutGrid, s.backend.Settings("alice").Layout)
	s.Contains(s.get("/dashboard").Body.String(), "Layout changed to grid")

	s.post("/settings/layout", url.Values{"layout": {"masonry"}})
	s.Equal(backend.LayoutGrid, s.backend.Settings("alice").Layout)
	s.Contains(s.get("/dashboard").Body.String(), "Failed to update layout")
}

func (s *HandlerTestSuite) TestUpdateIcons() {
	s.login()

	s.assertRedirect(s.post("/settings/icons", url.Values{"show_icons": {"false"}}), DashboardPath)
	s.False(s.backend.Settings("alice").ShowIcons)

	body := s.get("/dashboard").Body.String()
	s.Contains(body, "Icons disabled")
	s.Contains(body, `name="show_icons" value="true"`)

	s.post("/settings/icons", url.Values{"show_icons": {"true"}})
	s.True(s.backend.Settings("alice").ShowIcons)
	s.Contains(s.get("/dashboard").Body.String(), "Icons enabled")
}

func (s *HandlerTestSuite) TestUpdateIcons_InvalidValue() {
	s.login()

	s.post("/settings/icons", url.Values{"show_icons": {"maybe"}})

	s.Empty(s.backend.RequestsTo(http.MethodPatch, "/settings"))
	s.Contains(s.get("/dashboard").Body.String(), "Failed to update icons")
}

func (s *HandlerTestSuite) TestSettings_LoadFailure() {
	s.backend.Fail(mock.MySettings)
	s.login()

	w := s.get("/dashboard")

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "Loading settings...")
	s.Contains(w.Body.String(), "Failed to load settings")
}

func (s *HandlerTestSuite) TestSettings_PendingUpdateBlocksSameField() {
	s.login()

	release, ok := s.handler.inflight.TryAcquire(inflight.Key("abc123", string(models.FieldTheme)))
	s.Require().True(ok)

	body := s.get("/dashboard").Body.String()
	s.Contains(body, `data-field="theme" disabled`)
	s.NotContains(body, `data-field="layout" disabled`)

	s.assertRedirect(s.post("/settings/theme", url.Values{"theme": {"dark"}}), DashboardPath)
	s.Empty(s.backend.RequestsTo(http.MethodPatch, "/settings"))
	s.Equal("ocean", s.backend.Settings("alice").Theme)

	// Other fields are independent.
	s.post("/settings/layout", url.Values{"layout": {"grid"}})
	s.Equal(backend.LayoutGrid, s.backend.Settings("alice").Layout)

	body = s.get("/dashboard").Body.String()
	s.Contains(body, "Theme update already in progress")
	s.Contains(body, "Layout changed to grid")

	release()

	s.post("/settings/theme", url.Values{"theme": {"dark"}})
	s.Equal("dark", s.backend.Settings("alice").Theme)
	s.NotContains(s.get("/dashboard").Body.String(), `data-field="theme" disabled`)
}
