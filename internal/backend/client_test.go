package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/linkbio/linkbio/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(&config.APIConfig{BaseURL: server.URL + "/"})
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var authHeader string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"username":"alice"}`)
	})

	token := "abc123"
	authed := client.WithTokenSource(TokenSourceFunc(func() string { return token }))

	_, err := authed.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc123", authHeader)

	// The token is read before every request.
	token = ""
	_, err = authed.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Empty(t, authHeader)
}

func TestClient_NoTokenSource(t *testing.T) {
	var authHeader string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"full_name":"Alice","links":[]}`)
	})

	_, err := client.PublicProfile(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, authHeader)
}

func TestClient_WithTokenSourceDoesNotMutateParent(t *testing.T) {
	client := New(&config.APIConfig{BaseURL: "http://localhost:8000"})
	child := client.WithTokenSource(TokenSourceFunc(func() string { return "x" }))

	assert.Nil(t, client.tokens)
	assert.NotNil(t, child.tokens)
	assert.Equal(t, "http://localhost:8000", child.BaseURL())
}

func TestClient_StatusError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"detail":"Not authenticated"}`)
	})

	_, err := client.MyLinks(context.Background())
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "Not authenticated")
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := New(&config.APIConfig{BaseURL: server.URL})
	server.Close()

	_, err := client.MySettings(context.Background())
	require.Error(t, err)

	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
	assert.Contains(t, err.Error(), "error performing request")
}

func TestClient_CanceledContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.MyLinks(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_DecodeError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json`)
	})

	_, err := client.CurrentUser(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error decoding response")
}

func TestClient_Verbs(t *testing.T) {
	type seen struct {
		method      string
		path        string
		contentType string
		body        string
	}
	var got seen
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		got = seen{method: r.Method, path: r.URL.Path, contentType: r.Header.Get("Content-Type"), body: string(body)}
		fmt.Fprint(w, `{}`)
	})
	ctx := context.Background()

	var out map[string]any
	require.NoError(t, client.Put(ctx, "/things/1", map[string]string{"a": "b"}, &out))
	assert.Equal(t, seen{method: http.MethodPut, path: "/things/1", contentType: "application/json", body: `{"a":"b"}`}, got)

	require.NoError(t, client.Patch(ctx, "/things/1", map[string]int{"n": 1}, &out))
	assert.Equal(t, http.MethodPatch, got.method)
	assert.JSONEq(t, `{"n":1}`, got.body)

	require.NoError(t, client.Delete(ctx, "/things/1", nil))
	assert.Equal(t, http.MethodDelete, got.method)
	assert.Empty(t, got.contentType)
	assert.Empty(t, got.body)

	require.NoError(t, client.Get(ctx, "/things", &out))
	assert.Equal(t, http.MethodGet, got.method)
}

func TestLogin_FormEncoded(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/token", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "alice", r.PostForm.Get("username"))
		assert.Equal(t, "secret", r.PostForm.Get("password"))

		_ = json.NewEncoder(w).Encode(Token{AccessToken: "abc123", TokenType: "bearer"})
	})

	token, err := client.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token.AccessToken)
	assert.Equal(t, "bearer", token.TokenType)
}

func TestAPI_MissingFields(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	ctx := context.Background()

	_, err := client.Login(ctx, "", "secret")
	assert.ErrorIs(t, err, ErrMissingField)
	_, err = client.Login(ctx, "alice", "")
	assert.ErrorIs(t, err, ErrMissingField)
	_, err = client.Register(ctx, NewUser{Username: "alice", Password: "x"})
	assert.ErrorIs(t, err, ErrMissingField)
	_, err = client.AddLink(ctx, "", "https://example.com")
	assert.ErrorIs(t, err, ErrMissingField)
	_, err = client.UpdateLink(ctx, 1, "Blog", "")
	assert.ErrorIs(t, err, ErrMissingField)
	_, err = client.UpdateSettings(ctx, SettingsPatch{})
	assert.ErrorIs(t, err, ErrMissingField)
	_, err = client.PublicProfile(ctx, "")
	assert.ErrorIs(t, err, ErrMissingField)
	_, err = client.PublicSettings(ctx, "")
	assert.ErrorIs(t, err, ErrMissingField)

	assert.False(t, called, "no request must be sent for missing fields")
}

func TestUpdateSettings_SendsOnlyChangedField(t *testing.T) {
	var body map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/settings", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		fmt.Fprint(w, `{"id":1,"user_id":7,"theme":"dark","layout":"list","show_icons":true}`)
	})

	theme := "dark"
	settings, err := client.UpdateSettings(context.Background(), SettingsPatch{Theme: &theme})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"theme": "dark"}, body)
	assert.Equal(t, "dark", settings.Theme)
	assert.Equal(t, LayoutList, settings.Layout)
	assert.Equal(t, 7, settings.UserID)
}

func TestUpdateSettings_FalseIconsIsSent(t *testing.T) {
	var body map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		fmt.Fprint(w, `{"theme":"ocean","layout":"list","show_icons":false}`)
	})

	off := false
	_, err := client.UpdateSettings(context.Background(), SettingsPatch{ShowIcons: &off})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"show_icons": false}, body)
}

func TestLinkEndpoints(t *testing.T) {
	var method, path string
	var body linkRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		body = linkRequest{}
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&body)
		}
		switch r.Method {
		case http.MethodDelete:
			fmt.Fprint(w, `{"detail":"deleted"}`)
		default:
			fmt.Fprintf(w, `{"id":3,"title":%q,"url":%q}`, body.Title, body.URL)
		}
	})
	ctx := context.Background()

	link, err := client.AddLink(ctx, "Blog", "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "/links", path)
	assert.Equal(t, Link{ID: 3, Title: "Blog", URL: "https://example.com"}, *link)

	_, err = client.UpdateLink(ctx, 3, "Notes", "https://notes.example.com")
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/links/3", path)
	assert.Equal(t, linkRequest{Title: "Notes", URL: "https://notes.example.com"}, body)

	require.NoError(t, client.DeleteLink(ctx, 3))
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "/links/3", path)
}

func TestPublicEndpoints_EscapeUsername(t *testing.T) {
	var rawPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		rawPath = r.URL.EscapedPath()
		fmt.Fprint(w, `{"theme":"neon","layout":"grid","show_icons":false}`)
	})

	settings, err := client.PublicSettings(context.Background(), "a b")
	require.NoError(t, err)
	assert.Equal(t, "/setting/a%20b", rawPath)
	assert.Equal(t, LayoutGrid, settings.Layout)
}

func TestLayoutValid(t *testing.T) {
	assert.True(t, LayoutList.Valid())
	assert.True(t, LayoutGrid.Valid())
	assert.False(t, Layout("masonry").Valid())
	assert.False(t, Layout("").Valid())
}
