package models

import (
	"math/rand/v2"

	"github.com/linkbio/linkbio/internal/avatar"
	"github.com/linkbio/linkbio/internal/backend"
	"github.com/linkbio/linkbio/internal/config"
	"github.com/linkbio/linkbio/internal/theme"
	"github.com/samber/lo"
)

// GuestName is shown in place of the username when the account could not be loaded.
const GuestName = "Guest"

// DefaultSettings are used on the public page when the settings cannot be fetched.
func DefaultSettings() backend.Settings {
	return backend.Settings{
		Theme:     theme.Default,
		Layout:    backend.LayoutList,
		ShowIcons: true,
	}
}

// ToUser converts a backend user to the dashboard header view. A nil user renders as guest.
func ToUser(u *backend.User, cfg *config.GravatarConfig) User {
	if u == nil || u.Username == "" {
		return User{Username: GuestName}
	}
	return User{
		Username:  u.Username,
		FullName:  u.FullName,
		Email:     u.Email,
		AvatarURL: avatar.Gravatar(u.Email, cfg),
	}
}

// ToSettingsView converts backend settings to the settings panel state.
// busy reports whether an update of the given field is pending.
func ToSettingsView(s *backend.Settings, busy func(SettingsField) bool) SettingsView {
	if busy == nil {
		busy = func(SettingsField) bool { return false }
	}
	view := SettingsView{
		ThemeBusy:  busy(FieldTheme),
		LayoutBusy: busy(FieldLayout),
		IconsBusy:  busy(FieldIcons),
	}
	if s == nil {
		return view
	}

	view.Loaded = true
	view.Theme = s.Theme
	view.Layout = s.Layout
	view.ShowIcons = s.ShowIcons
	view.Themes = lo.Map(theme.All(), func(t theme.Theme, _ int) ThemeOption {
		return ThemeOption{Theme: t, Selected: t.Name == s.Theme}
	})
	return view
}

// ToProfileView builds the public page of username. A nil settings value falls back to the defaults.
func ToProfileView(username string, p *backend.PublicProfile, s *backend.Settings) ProfileView {
	settings := DefaultSettings()
	if s != nil {
		settings = *s
	}
	if !settings.Layout.Valid() {
		settings.Layout = backend.LayoutList
	}

	view := ProfileView{
		Username:  username,
		AvatarURL: avatar.Identicon(username),
		Theme:     theme.Resolve(settings.Theme),
		Layout:    settings.Layout,
		ShowIcons: settings.ShowIcons,
	}
	if p != nil {
		view.FullName = p.FullName
		view.Links = p.Links
	}
	return view
}

// FindLink returns the link with the given id.
func FindLink(links []backend.Link, id int) (backend.Link, bool) {
	return lo.Find(links, func(l backend.Link) bool {
		return l.ID == id
	})
}

var bubbleColors = []string{"#E5D9F2", "#CDC1FF", "#A594F9"}

// NewBubbles generates n bubbles with random position, size and timing.
func NewBubbles(n int, rnd *rand.Rand) []Bubble {
	return lo.Times(n, func(i int) Bubble {
		return Bubble{
			Left:     rnd.Float64() * 100,
			Delay:    rnd.Float64() * 5,
			Duration: 15 + rnd.Float64()*10,
			Size:     20 + rnd.Float64()*40,
			Color:    bubbleColors[i%len(bubbleColors)],
		}
	})
}
