package models

import (
	"fmt"
	"net/url"

	"github.com/linkbio/linkbio/internal/backend"
	"github.com/linkbio/linkbio/internal/theme"
)

// ToastKind is the severity of a toast notification.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

// Toast is a one-shot notification shown on the next rendered page.
type Toast struct {
	Kind    ToastKind
	Message string
}

// User is the dashboard header view of the signed-in account.
type User struct {
	Username  string
	FullName  string
	Email     string
	AvatarURL string
}

// FormMode is the state of the dashboard link form.
type FormMode string

const (
	FormIdle    FormMode = "idle"
	FormEditing FormMode = "editing"
)

// LinkForm holds the link being created or edited.
type LinkForm struct {
	Mode  FormMode
	ID    int
	Title string
	URL   string
}

// Editing reports whether the form edits an existing link.
func (f LinkForm) Editing() bool {
	return f.Mode == FormEditing
}

// SettingsField identifies a single public page setting.
type SettingsField string

const (
	FieldTheme  SettingsField = "theme"
	FieldLayout SettingsField = "layout"
	FieldIcons  SettingsField = "icons"
)

// Label returns the capitalized field name used in notifications.
func (f SettingsField) Label() string {
	switch f {
	case FieldTheme:
		return "Theme"
	case FieldLayout:
		return "Layout"
	case FieldIcons:
		return "Icons"
	default:
		return string(f)
	}
}

// BusyMessage is shown when an update for the field is already pending.
func (f SettingsField) BusyMessage() string {
	return fmt.Sprintf("%s update already in progress", f.Label())
}

// ThemeOption is a selectable theme in the settings panel.
type ThemeOption struct {
	theme.Theme
	Selected bool
}

// SettingsView is the settings panel state.
type SettingsView struct {
	// Loaded is false when the settings could not be fetched.
	Loaded     bool
	Theme      string
	Layout     backend.Layout
	ShowIcons  bool
	Themes     []ThemeOption
	ThemeBusy  bool
	LayoutBusy bool
	IconsBusy  bool
}

// DashboardView is everything rendered on the dashboard.
type DashboardView struct {
	User     User
	Links    []backend.Link
	Form     LinkForm
	Settings SettingsView
	Toasts   []Toast
}

// ProfileURL returns the public page of the signed-in user.
func (d DashboardView) ProfileURL() string {
	return ProfileURL(d.User.Username)
}

// ProfileView is the public page of a user.
type ProfileView struct {
	Username  string
	FullName  string
	AvatarURL string
	Theme     theme.Theme
	Layout    backend.Layout
	ShowIcons bool
	Links     []backend.Link
}

// Grid reports whether links are arranged in a grid.
func (p ProfileView) Grid() bool {
	return p.Layout == backend.LayoutGrid
}

// RegisterForm keeps the submitted sign up values when registration fails.
type RegisterForm struct {
	Username string
	FullName string
	Email    string
}

// DeleteConfirmView is the confirmation step before deleting a link.
type DeleteConfirmView struct {
	Link backend.Link
}

// Bubble is a decorative floating circle on the landing page.
type Bubble struct {
	Left     float64
	Delay    float64
	Duration float64
	Size     float64
	Color    string
}

// Style returns the inline CSS positioning the bubble.
func (b Bubble) Style() string {
	return fmt.Sprintf(
		"left: %.2f%%; bottom: -50px; width: %.0fpx; height: %.0fpx; background-color: %s; animation: float-up %.2fs linear %.2fs infinite;",
		b.Left, b.Size, b.Size, b.Color, b.Duration, b.Delay,
	)
}

// EditURL returns the dashboard path editing the link with the given id.
func EditURL(id int) string {
	return fmt.Sprintf("/dashboard?edit=%d", id)
}

// DeleteURL returns the path of the delete confirmation of the link with the given id.
func DeleteURL(id int) string {
	return fmt.Sprintf("/dashboard/links/%d/delete", id)
}

// ProfileURL returns the path of the public page of username.
func ProfileURL(username string) string {
	return "/profile/" + url.PathEscape(username)
}
