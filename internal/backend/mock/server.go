package mock

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/linkbio/linkbio/internal/backend"
)

// Request records an incoming request as seen by the fake backend.
type Request struct {
	Method        string
	Path          string
	Authorization string
}

type account struct {
	user     backend.User
	password string
	token    string
}

// Server is an in-memory implementation of the link-in-bio backend API for testing.
type Server struct {
	mu sync.RWMutex

	accounts   map[string]*account
	tokens     map[string]string
	links      map[string][]backend.Link
	settings   map[string]*backend.Settings
	nextLinkID int
	nextUserID int
	requests   []Request
	failing    map[Endpoint]bool
}

// Endpoint names a backend operation for error simulation.
type Endpoint string

const (
	Login          Endpoint = "login"
	Register       Endpoint = "register"
	CurrentUser    Endpoint = "current_user"
	MyLinks        Endpoint = "my_links"
	AddLink        Endpoint = "add_link"
	UpdateLink     Endpoint = "update_link"
	DeleteLink     Endpoint = "delete_link"
	MySettings     Endpoint = "my_settings"
	UpdateSettings Endpoint = "update_settings"
	PublicProfile  Endpoint = "public_profile"
	PublicSettings Endpoint = "public_settings"
)

// NewServer creates a new fake backend.
func NewServer() *Server {
	return &Server{
		accounts:   make(map[string]*account),
		tokens:     make(map[string]string),
		links:      make(map[string][]backend.Link),
		settings:   make(map[string]*backend.Settings),
		failing:    make(map[Endpoint]bool),
		nextLinkID: 1,
		nextUserID: 1,
	}
}

// Fail makes the given endpoints answer with 500.
func (s *Server) Fail(endpoints ...Endpoint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range endpoints {
		s.failing[e] = true
	}
}

// Recover undoes Fail for the given endpoints.
func (s *Server) Recover(endpoints ...Endpoint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range endpoints {
		delete(s.failing, e)
	}
}

// fails answers with 500 if e is failing.
func (s *Server) fails(w http.ResponseWriter, e Endpoint) bool {
	s.mu.RLock()
	failing := s.failing[e]
	s.mu.RUnlock()
	if failing {
		detail(w, http.StatusInternalServerError, string(e)+" failed")
	}
	return failing
}

// AddUser registers an account whose login returns token.
func (s *Server) AddUser(user backend.User, password, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addUserLocked(user, password, token)
}

func (s *Server) addUserLocked(user backend.User, password, token string) {
	if user.ID == 0 {
		user.ID = s.nextUserID
		s.nextUserID++
	}
	s.accounts[user.Username] = &account{user: user, password: password, token: token}
	s.tokens[token] = user.Username
	s.settings[user.Username] = &backend.Settings{
		ID:        user.ID,
		UserID:    user.ID,
		Theme:     "ocean",
		Layout:    backend.LayoutList,
		ShowIcons: true,
	}
}

// SetLinks replaces the links of username.
func (s *Server) SetLinks(username string, links ...backend.Link) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range links {
		if l.ID >= s.nextLinkID {
			s.nextLinkID = l.ID + 1
		}
	}
	s.links[username] = append([]backend.Link(nil), links...)
}

// SetSettings replaces the settings of username.
func (s *Server) SetSettings(username string, settings backend.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[username] = &settings
}

// Links returns a copy of the links stored for username.
func (s *Server) Links(username string) []backend.Link {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]backend.Link(nil), s.links[username]...)
}

// Settings returns a copy of the settings stored for username.
func (s *Server) Settings(username string) backend.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.settings[username]; ok {
		return *st
	}
	return backend.Settings{}
}

// Requests returns all requests received so far.
func (s *Server) Requests() []Request {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Request(nil), s.requests...)
}

// RequestsTo returns the requests received for method and path.
func (s *Server) RequestsTo(method, path string) []Request {
	var out []Request
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method:        r.Method,
		Path:          r.URL.Path,
		Authorization: r.Header.Get("Authorization"),
	})
	s.mu.Unlock()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /token", s.login)
	mux.HandleFunc("POST /register", s.register)
	mux.HandleFunc("GET /users/me", s.authed(s.currentUser))
	mux.HandleFunc("GET /links/me", s.authed(s.myLinks))
	mux.HandleFunc("POST /links", s.authed(s.addLink))
	mux.HandleFunc("PUT /links/{id}", s.authed(s.updateLink))
	mux.HandleFunc("DELETE /links/{id}", s.authed(s.deleteLink))
	mux.HandleFunc("GET /settings/me", s.authed(s.mySettings))
	mux.HandleFunc("PATCH /settings", s.authed(s.updateSettings))
	mux.HandleFunc("GET /profile/{username}", s.publicProfile)
	mux.HandleFunc("GET /setting/{username}", s.publicSettings)
	mux.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func detail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

func (s *Server) authed(next func(w http.ResponseWriter, r *http.Request, username string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		s.mu.RLock()
		username, ok := s.tokens[token]
		s.mu.RUnlock()
		if token == "" || !ok {
			detail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		next(w, r, username)
	}
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	if s.fails(w, Login) {
		return
	}
	if err := r.ParseForm(); err != nil {
		detail(w, http.StatusBadRequest, "invalid form")
		return
	}
	s.mu.RLock()
	acc, ok := s.accounts[r.PostForm.Get("username")]
	s.mu.RUnlock()
	if !ok || acc.password != r.PostForm.Get("password") {
		detail(w, http.StatusUnauthorized, "Incorrect username or password")
		return
	}
	writeJSON(w, http.StatusOK, backend.Token{AccessToken: acc.token, TokenType: "bearer"})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	if s.fails(w, Register) {
		return
	}
	var in backend.NewUser
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		detail(w, http.StatusBadRequest, "invalid body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[in.Username]; exists {
		detail(w, http.StatusBadRequest, "Username already registered")
		return
	}
	user := backend.User{Username: in.Username, Email: in.Email, FullName: in.FullName}
	s.addUserLocked(user, in.Password, "token-"+in.Username)
	writeJSON(w, http.StatusOK, s.accounts[in.Username].user)
}

func (s *Server) currentUser(w http.ResponseWriter, _ *http.Request, username string) {
	if s.fails(w, CurrentUser) {
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	writeJSON(w, http.StatusOK, s.accounts[username].user)
}

func (s *Server) myLinks(w http.ResponseWriter, _ *http.Request, username string) {
	if s.fails(w, MyLinks) {
		return
	}
	links := s.Links(username)
	if links == nil {
		links = []backend.Link{}
	}
	writeJSON(w, http.StatusOK, links)
}

type linkBody struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

func (s *Server) addLink(w http.ResponseWriter, r *http.Request, username string) {
	if s.fails(w, AddLink) {
		return
	}
	var in linkBody
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		detail(w, http.StatusBadRequest, "invalid body")
		return
	}
	s.mu.Lock()
	link := backend.Link{ID: s.nextLinkID, Title: in.Title, URL: in.URL}
	s.nextLinkID++
	s.links[username] = append(s.links[username], link)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, link)
}

func (s *Server) updateLink(w http.ResponseWriter, r *http.Request, username string) {
	if s.fails(w, UpdateLink) {
		return
	}
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		detail(w, http.StatusBadRequest, "invalid id")
		return
	}
	var in linkBody
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		detail(w, http.StatusBadRequest, "invalid body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.links[username] {
		if l.ID == id {
			s.links[username][i] = backend.Link{ID: id, Title: in.Title, URL: in.URL}
			writeJSON(w, http.StatusOK, s.links[username][i])
			return
		}
	}
	detail(w, http.StatusNotFound, "Link not found")
}

func (s *Server) deleteLink(w http.ResponseWriter, r *http.Request, username string) {
	if s.fails(w, DeleteLink) {
		return
	}
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		detail(w, http.StatusBadRequest, "invalid id")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	links := s.links[username]
	for i, l := range links {
		if l.ID == id {
			s.links[username] = append(links[:i:i], links[i+1:]...)
			detail(w, http.StatusOK, "Link deleted")
			return
		}
	}
	detail(w, http.StatusNotFound, "Link not found")
}

func (s *Server) mySettings(w http.ResponseWriter, _ *http.Request, username string) {
	if s.fails(w, MySettings) {
		return
	}
	writeJSON(w, http.StatusOK, s.Settings(username))
}

func (s *Server) updateSettings(w http.ResponseWriter, r *http.Request, username string) {
	if s.fails(w, UpdateSettings) {
		return
	}
	var patch backend.SettingsPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		detail(w, http.StatusBadRequest, "invalid body")
		return
	}
	s.mu.Lock()
	st := s.settings[username]
	if patch.Theme != nil {
		st.Theme = *patch.Theme
	}
	if patch.Layout != nil {
		st.Layout = *patch.Layout
	}
	if patch.ShowIcons != nil {
		st.ShowIcons = *patch.ShowIcons
	}
	out := *st
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) publicProfile(w http.ResponseWriter, r *http.Request) {
	if s.fails(w, PublicProfile) {
		return
	}
	username := r.PathValue("username")
	s.mu.RLock()
	acc, ok := s.accounts[username]
	s.mu.RUnlock()
	if !ok {
		detail(w, http.StatusNotFound, "User not found")
		return
	}
	links := s.Links(username)
	if links == nil {
		links = []backend.Link{}
	}
	writeJSON(w, http.StatusOK, backend.PublicProfile{FullName: acc.user.FullName, Links: links})
}

func (s *Server) publicSettings(w http.ResponseWriter, r *http.Request) {
	if s.fails(w, PublicSettings) {
		return
	}
	username := r.PathValue("username")
	s.mu.RLock()
	st, ok := s.settings[username]
	s.mu.RUnlock()
	if !ok {
		detail(w, http.StatusNotFound, "Settings not found")
		return
	}
	writeJSON(w, http.StatusOK, *st)
}
