package backend

// Token represents the payload returned by the token endpoint.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// User represents the authenticated account as returned by the backend.
type User struct {
	ID       int    `json:"id,omitempty"`
	Username string `json:"username"`
	FullName string `json:"full_name,omitempty"`
	Email    string `json:"email,omitempty"`
}

// NewUser is the payload used to create an account.
type NewUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

// Link represents an outbound link owned by a user.
type Link struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Layout controls how links are arranged on the public page.
type Layout string

const (
	LayoutList Layout = "list"
	LayoutGrid Layout = "grid"
)

// Valid reports whether l is a known layout.
func (l Layout) Valid() bool {
	return l == LayoutList || l == LayoutGrid
}

// Settings represents a user's public page preferences.
type Settings struct {
	ID        int    `json:"id,omitempty"`
	UserID    int    `json:"user_id,omitempty"`
	Theme     string `json:"theme"`
	Layout    Layout `json:"layout"`
	ShowIcons bool   `json:"show_icons"`
}

// SettingsPatch is a partial settings update. Only non-nil fields are sent.
type SettingsPatch struct {
	Theme     *string `json:"theme,omitempty"`
	Layout    *Layout `json:"layout,omitempty"`
	ShowIcons *bool   `json:"show_icons,omitempty"`
}

// Empty reports whether the patch carries no field.
func (p SettingsPatch) Empty() bool {
	return p.Theme == nil && p.Layout == nil && p.ShowIcons == nil
}

// PublicProfile is the unauthenticated view of a user.
type PublicProfile struct {
	FullName string `json:"full_name"`
	Links    []Link `json:"links"`
}
