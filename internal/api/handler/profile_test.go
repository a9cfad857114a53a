package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/linkbio/linkbio/internal/backend"
	"github.com/linkbio/linkbio/internal/backend/mock"
)

func (s *HandlerTestSuite) TestProfile() {
	s.backend.SetLinks("alice",
		backend.Link{ID: 1, Title: "Blog", URL: "https://blog.example.com"},
		backend.Link{ID: 2, Title: "Shop", URL: "https://shop.example.com"},
	)
	s.backend.SetSettings("alice", backend.Settings{Theme: "neon", Layout: backend.LayoutGrid, ShowIcons: true})

	w := s.get("/profile/alice")

	s.Equal(http.StatusOK, w.Code)
	body := w.Body.String()
	s.Contains(body, "<h1 class=\"text-3xl font-bold\">Alice</h1>")
	s.Contains(body, "@alice")
	s.Contains(body, `data-theme="neon"`)
	s.Contains(body, "from-black")
	s.Contains(body, `data-layout="grid"`)
	s.Contains(body, "https://api.dicebear.com/8.x/identicon/svg?seed=alice")
	s.Equal(2, strings.Count(body, "profile-link"))
	s.Equal(2, strings.Count(body, "link-icon"))
	s.Less(strings.Index(body, "Blog"), strings.Index(body, "Shop"))
	s.Contains(body, "Powered by")
}

func (s *HandlerTestSuite) TestProfile_IconsHidden() {
	s.backend.SetLinks("alice", backend.Link{ID: 1, Title: "Blog", URL: "https://blog.example.com"})
	s.backend.SetSettings("alice", backend.Settings{Theme: "dark", Layout: backend.LayoutList, ShowIcons: false})

	body := s.get("/profile/alice").Body.String()

	s.Contains(body, `data-layout="list"`)
	s.Equal(1, strings.Count(body, "profile-link"))
	s.NotContains(body, "link-icon")
}

func (s *HandlerTestSuite) TestProfile_UnknownThemeFallsBack() {
	s.backend.SetSettings("alice", backend.Settings{Theme: "solarized", Layout: "masonry", ShowIcons: true})

	body := s.get("/profile/alice").Body.String()

	s.Contains(body, `data-theme="ocean"`)
	s.Contains(body, "from-sky-500")
	s.Contains(body, `data-layout="list"`)
}

func (s *HandlerTestSuite) TestProfile_SettingsFailureUsesDefaults() {
	s.backend.SetLinks("alice", backend.Link{ID: 1, Title: "Blog", URL: "https://blog.example.com"})
	s.backend.Fail(mock.PublicSettings)

	w := s.get("/profile/alice")

	s.Equal(http.StatusOK, w.Code)
	body := w.Body.String()
	s.Contains(body, `data-theme="ocean"`)
	s.Contains(body, `data-layout="list"`)
	s.Contains(body, "link-icon")
	s.Contains(body, "Blog")
}

func (s *HandlerTestSuite) TestProfile_ProfileFailureShowsLoading() {
	s.backend.Fail(mock.PublicProfile)

	w := s.get("/profile/alice")

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "Loading profile...")
	s.NotContains(w.Body.String(), "Powered by")
}

func (s *HandlerTestSuite) TestProfile_UnknownUser() {
	w := s.get("/profile/nobody")

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "Loading profile...")
}

func (s *HandlerTestSuite) TestProfile_SignedInVisitorSendsToken() {
	s.login()

	s.Equal(http.StatusOK, s.get("/profile/alice").Code)

	reqs := s.backend.RequestsTo(http.MethodGet, "/setting/alice")
	s.Require().Len(reqs, 1)
	s.Equal("Bearer abc123", reqs[0].Authorization)
}

func (s *HandlerTestSuite) TestProfile_ParallelRequests() {
	s.backend.SetLinks("alice", backend.Link{ID: 1, Title: "Blog", URL: "https://blog.example.com"})
	s.login()
	signedIn := append([]*http.Cookie(nil), s.cookies...)

	const n = 20
	codes := make([]int, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodGet, "/profile/alice", nil)
			if i%2 == 0 {
				for _, c := range signedIn {
					req.AddCookie(c)
				}
			}
			w := httptest.NewRecorder()
			s.router.ServeHTTP(w, req)
			codes[i] = w.Code
		}()
	}
	wg.Wait()

	for _, code := range codes {
		s.Equal(http.StatusOK, code)
	}
	reqs := s.backend.RequestsTo(http.MethodGet, "/setting/alice")
	s.Require().Len(reqs, n)
	var withToken int
	for _, r := range reqs {
		if r.Authorization == "Bearer abc123" {
			withToken++
		}
	}
	s.Equal(n/2, withToken)
}
