package models

import (
	"math/rand/v2"
	"testing"

	"github.com/linkbio/linkbio/internal/backend"
	"github.com/linkbio/linkbio/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToUser(t *testing.T) {
	assert.Equal(t, User{Username: GuestName}, ToUser(nil, nil))

	u := ToUser(&backend.User{Username: "alice", FullName: "Alice", Email: "test@example.com"}, &config.GravatarConfig{Enabled: true})
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "Alice", u.FullName)
	assert.Contains(t, u.AvatarURL, "https://www.gravatar.com/avatar/")

	u = ToUser(&backend.User{Username: "bob"}, &config.GravatarConfig{Enabled: true})
	assert.Empty(t, u.AvatarURL)
}

func TestToSettingsView(t *testing.T) {
	view := ToSettingsView(nil, nil)
	assert.False(t, view.Loaded)
	assert.Empty(t, view.Themes)

	busy := func(f SettingsField) bool { return f == FieldLayout }
	view = ToSettingsView(&backend.Settings{Theme: "neon", Layout: backend.LayoutGrid, ShowIcons: false}, busy)
	require.True(t, view.Loaded)
	assert.Equal(t, "neon", view.Theme)
	assert.Equal(t, backend.LayoutGrid, view.Layout)
	assert.False(t, view.ShowIcons)
	assert.False(t, view.ThemeBusy)
	assert.True(t, view.LayoutBusy)
	assert.False(t, view.IconsBusy)

	require.Len(t, view.Themes, 4)
	for _, opt := range view.Themes {
		assert.Equal(t, opt.Name == "neon", opt.Selected, opt.Name)
	}
}

func TestToProfileView(t *testing.T) {
	profile := &backend.PublicProfile{
		FullName: "Alice",
		Links:    []backend.Link{{ID: 1, Title: "Blog", URL: "https://example.com"}},
	}

	t.Run("settings missing uses defaults", func(t *testing.T) {
		view := ToProfileView("alice", profile, nil)
		assert.Equal(t, "ocean", view.Theme.Name)
		assert.Equal(t, backend.LayoutList, view.Layout)
		assert.True(t, view.ShowIcons)
		assert.False(t, view.Grid())
		assert.Equal(t, "Alice", view.FullName)
		assert.Len(t, view.Links, 1)
		assert.Equal(t, "https://api.dicebear.com/8.x/identicon/svg?seed=alice", view.AvatarURL)
	})

	t.Run("unknown theme resolves to ocean", func(t *testing.T) {
		view := ToProfileView("alice", profile, &backend.Settings{Theme: "solarized", Layout: backend.LayoutGrid})
		assert.Equal(t, "ocean", view.Theme.Name)
		assert.True(t, view.Grid())
		assert.False(t, view.ShowIcons)
	})

	t.Run("unknown layout renders as list", func(t *testing.T) {
		view := ToProfileView("alice", profile, &backend.Settings{Theme: "dark", Layout: "masonry"})
		assert.Equal(t, "dark", view.Theme.Name)
		assert.Equal(t, backend.LayoutList, view.Layout)
	})
}

func TestFindLink(t *testing.T) {
	links := []backend.Link{{ID: 1, Title: "a"}, {ID: 7, Title: "b"}}

	l, ok := FindLink(links, 7)
	require.True(t, ok)
	assert.Equal(t, "b", l.Title)

	_, ok = FindLink(links, 3)
	assert.False(t, ok)
}

func TestSettingsField(t *testing.T) {
	assert.Equal(t, "Theme update already in progress", FieldTheme.BusyMessage())
	assert.Equal(t, "Layout", FieldLayout.Label())
	assert.Equal(t, "Icons", FieldIcons.Label())
}

func TestNewBubbles(t *testing.T) {
	bubbles := NewBubbles(15, rand.New(rand.NewPCG(1, 2)))
	require.Len(t, bubbles, 15)

	for i, b := range bubbles {
		assert.GreaterOrEqual(t, b.Left, 0.0)
		assert.Less(t, b.Left, 100.0)
		assert.GreaterOrEqual(t, b.Size, 20.0)
		assert.Less(t, b.Size, 60.0)
		assert.GreaterOrEqual(t, b.Duration, 15.0)
		assert.Less(t, b.Duration, 25.0)
		assert.Equal(t, bubbleColors[i%3], b.Color)
		assert.Contains(t, b.Style(), "animation: float-up")
	}
}

func TestProfileURL(t *testing.T) {
	assert.Equal(t, "/profile/alice", ProfileURL("alice"))
	assert.Equal(t, "/profile/a%20b", ProfileURL("a b"))
	assert.Equal(t, "/profile/alice", DashboardView{User: User{Username: "alice"}}.ProfileURL())
}
