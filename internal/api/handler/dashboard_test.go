package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/linkbio/linkbio/internal/backend"
	"github.com/linkbio/linkbio/internal/backend/mock"
)

func (s *HandlerTestSuite) TestDashboard_EmptyLinks() {
	s.login()

	w := s.get("/dashboard")

	s.Equal(http.StatusOK, w.Code)
	body := w.Body.String()
	s.Contains(body, "No links added yet.")
	s.NotContains(body, "link-row")
	s.Contains(body, `id="link-count" class="text-xs text-gray-500">0 links</span>`)
	s.Contains(body, "Add New Link")
	s.Contains(body, `href="/profile/alice"`)
}

func (s *HandlerTestSuite) TestDashboard_ListsLinksInBackendOrder() {
	s.backend.SetLinks("alice",
		backend.Link{ID: 2, Title: "Blog", URL: "https://blog.example.com"},
		backend.Link{ID: 1, Title: "Shop", URL: "https://shop.example.com"},
	)
	s.login()

	body := s.get("/dashboard").Body.String()

	s.Equal(2, strings.Count(body, "link-row"))
	s.Contains(body, ">2 links</span>")
	s.Less(strings.Index(body, "Blog"), strings.Index(body, "Shop"))
	s.Contains(body, `href="/dashboard?edit=2"`)
	s.Contains(body, `href="/dashboard/links/1/delete"`)
}

func (s *HandlerTestSuite) TestDashboard_UserFetchFailureShowsGuest() {
	s.backend.Fail(mock.CurrentUser)
	s.login()

	w := s.get("/dashboard")

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), ">Guest</span>")
}

func (s *HandlerTestSuite) TestDashboard_LinksFetchFailure() {
	s.backend.Fail(mock.MyLinks)
	s.login()

	w := s.get("/dashboard")

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), msgWentWrong)
	s.Contains(w.Body.String(), "No links added yet.")
}

func (s *HandlerTestSuite) TestAddLink() {
	s.login()

	w := s.post("/dashboard/links", url.Values{"title": {"Blog"}, "url": {"https://example.com"}})
	s.assertRedirect(w, DashboardPath)

	links := s.backend.Links("alice")
	s.Require().Len(links, 1)
	s.Equal("Blog", links[0].Title)
	s.Equal("https://example.com", links[0].URL)

	body := s.get("/dashboard").Body.String()
	s.Contains(body, msgLinkAdded)
	s.Equal(1, strings.Count(body, "link-row"))
	s.Contains(body, ">1 link</span>")
	s.Contains(body, `href="https://example.com"`)

	// Flashes are shown once.
	s.NotContains(s.get("/dashboard").Body.String(), msgLinkAdded)
}

func (s *HandlerTestSuite) TestAddLink_EmptyFieldsAreIgnored() {
	s.login()

	w := s.post("/dashboard/links", url.Values{"title": {"Blog"}, "url": {"  "}})

	s.assertRedirect(w, DashboardPath)
	s.Empty(s.backend.RequestsTo(http.MethodPost, "/links"))
}

func (s *HandlerTestSuite) TestAddLink_FailureKeepsInput() {
	s.backend.Fail(mock.AddLink)
	s.login()

	w := s.post("/dashboard/links", url.Values{"title": {"Blog"}, "url": {"https://example.com"}})

	s.Equal(http.StatusOK, w.Code)
	body := w.Body.String()
	s.Contains(body, msgWentWrong)
	s.Contains(body, `name="title" placeholder="Title" value="Blog"`)
	s.Contains(body, `value="https://example.com"`)
	s.Empty(s.backend.Links("alice"))
}

func (s *HandlerTestSuite) TestEditLink() {
	s.backend.SetLinks("alice", backend.Link{ID: 1, Title: "Blog", URL: "https://example.com"})
	s.login()

	body := s.get("/dashboard?edit=1").Body.String()
	s.Contains(body, "Edit Link")
	s.Contains(body, `name="id" value="1"`)
	s.Contains(body, `value="Blog"`)
	s.Contains(body, "Update")

	w := s.post("/dashboard/links", url.Values{"id": {"1"}, "title": {"Notes"}, "url": {"https://notes.example.com"}})
	s.assertRedirect(w, DashboardPath)

	s.Equal([]backend.Link{{ID: 1, Title: "Notes", URL: "https://notes.example.com"}}, s.backend.Links("alice"))

	body = s.get("/dashboard").Body.String()
	s.Contains(body, msgLinkUpdated)
	s.Contains(body, "Add New Link")
	s.Contains(body, "Notes")
}

func (s *HandlerTestSuite) TestEditLink_UnknownIDFallsBackToAdd() {
	s.login()

	body := s.get("/dashboard?edit=42").Body.String()

	s.Contains(body, "Add New Link")
	s.NotContains(body, `name="id"`)
}

func (s *HandlerTestSuite) TestEditLink_FailureStaysInEditMode() {
	s.backend.SetLinks("alice", backend.Link{ID: 1, Title: "Blog", URL: "https://example.com"})
	s.backend.Fail(mock.UpdateLink)
	s.login()

	w := s.post("/dashboard/links", url.Values{"id": {"1"}, "title": {"Notes"}, "url": {"https://notes.example.com"}})

	s.Equal(http.StatusOK, w.Code)
	body := w.Body.String()
	s.Contains(body, msgWentWrong)
	s.Contains(body, "Edit Link")
	s.Contains(body, `value="Notes"`)
	s.Equal("Blog", s.backend.Links("alice")[0].Title)
}

func (s *HandlerTestSuite) TestEditLink_EmptyFieldsReturnToEditor() {
	s.login()

	w := s.post("/dashboard/links", url.Values{"id": {"3"}, "title": {""}, "url": {"https://example.com"}})

	s.assertRedirect(w, "/dashboard?edit=3")
	s.Empty(s.backend.RequestsTo(http.MethodPut, "/links/3"))
}

func (s *HandlerTestSuite) TestDeleteLink_RemovesOnlyThatLink() {
	s.backend.SetLinks("alice",
		backend.Link{ID: 1, Title: "One", URL: "https://one.example.com"},
		backend.Link{ID: 2, Title: "Two", URL: "https://two.example.com"},
		backend.Link{ID: 3, Title: "Three", URL: "https://three.example.com"},
	)
	s.login()

	w := s.get("/dashboard/links/2/delete")
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "Are you sure you want to delete this link?")
	s.Contains(w.Body.String(), "https://two.example.com")
	s.Empty(s.backend.RequestsTo(http.MethodDelete, "/links/2"), "confirmation must not delete")

	s.assertRedirect(s.post("/dashboard/links/2/delete", nil), DashboardPath)

	s.Equal([]backend.Link{
		{ID: 1, Title: "One", URL: "https://one.example.com"},
		{ID: 3, Title: "Three", URL: "https://three.example.com"},
	}, s.backend.Links("alice"))

	body := s.get("/dashboard").Body.String()
	s.Contains(body, msgLinkDeleted)
	s.Equal(2, strings.Count(body, "link-row"))
}

func (s *HandlerTestSuite) TestDeleteLink_Failure() {
	s.backend.SetLinks("alice", backend.Link{ID: 1, Title: "One", URL: "https://one.example.com"})
	s.backend.Fail(mock.DeleteLink)
	s.login()

	s.assertRedirect(s.post("/dashboard/links/1/delete", nil), DashboardPath)

	s.Len(s.backend.Links("alice"), 1)
	s.Contains(s.get("/dashboard").Body.String(), msgWentWrong)
}

func (s *HandlerTestSuite) TestConfirmDelete_UnknownLink() {
	s.login()

	s.assertRedirect(s.get("/dashboard/links/9/delete"), DashboardPath)
	s.assertRedirect(s.get("/dashboard/links/abc/delete"), DashboardPath)

	s.Contains(s.get("/dashboard").Body.String(), msgWentWrong)
}
