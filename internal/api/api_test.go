package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/linkbio/linkbio/internal/backend"
	"github.com/linkbio/linkbio/internal/backend/mock"
	"github.com/linkbio/linkbio/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *mock.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fake := mock.NewServer()
	fake.AddUser(backend.User{Username: "alice", FullName: "Alice"}, "secret", "abc123")
	backendServer := httptest.NewServer(fake)
	t.Cleanup(backendServer.Close)

	srv, err := New(&config.Config{
		Listen:        "127.0.0.1:0",
		SessionKey:    "test-session-key",
		SessionMaxAge: 3600,
		API:           &config.APIConfig{BaseURL: backendServer.URL},
		Gravatar:      &config.GravatarConfig{Enabled: true, DefaultImage: "nope", Rating: "g", Size: 80},
	}, true)
	require.NoError(t, err)
	return srv, fake
}

func serve(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestNew_RequiresConfig(t *testing.T) {
	_, err := New(nil, true)
	assert.Error(t, err)

	_, err = New(&config.Config{}, true)
	assert.ErrorContains(t, err, "api config is required")
}

func TestHealthz(t *testing.T) {
	srv, fake := newTestServer(t)

	w := serve(srv, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.Empty(t, w.Result().Cookies(), "healthz must not touch the session")
	assert.Empty(t, fake.Requests())
}

func TestRequestID(t *testing.T) {
	srv, _ := newTestServer(t)

	w := serve(srv, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	w = serve(srv, req)
	assert.Equal(t, "req-1", w.Header().Get(RequestIDHeader))
}

func TestStaticAssets(t *testing.T) {
	srv, _ := newTestServer(t)

	w := serve(srv, httptest.NewRequest(http.MethodGet, "/static/app.css", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "@keyframes float-up")
}

func TestGzip(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := serve(srv, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
}

func TestRoutes_SignInFlow(t *testing.T) {
	srv, fake := newTestServer(t)

	w := serve(srv, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	form := url.Values{"username": {"alice"}, "password": {"secret"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = serve(srv, req)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.True(t, cookies[len(cookies)-1].HttpOnly)

	req = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = serve(srv, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dashboard")

	reqs := fake.RequestsTo(http.MethodGet, "/links/me")
	require.Len(t, reqs, 1)
	assert.Equal(t, "Bearer abc123", reqs[0].Authorization)
}
