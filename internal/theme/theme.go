// Package theme holds the compiled-in registry of public page themes.
package theme

import "github.com/samber/lo"

// Default is the theme used when a stored theme is missing or unknown.
const Default = "ocean"

// Theme describes the Tailwind classes of a public page theme.
type Theme struct {
	Name    string
	Label   string
	BG      string
	Text    string
	Accent  string
	Preview string
}

var names = []string{"dark", "ocean", "sunset", "neon"}

var registry = map[string]Theme{
	"dark": newTheme("dark", "Dark",
		"from-neutral-950 to-neutral-900",
		"text-white",
		"bg-white/10 hover:bg-white/20 border-white/20"),
	"ocean": newTheme("ocean", "Ocean",
		"from-sky-500 to-indigo-600",
		"text-white",
		"bg-white/20 hover:bg-white/30 border-white/20"),
	"sunset": newTheme("sunset", "Sunset",
		"from-orange-500 via-pink-500 to-purple-600",
		"text-white",
		"bg-white/20 hover:bg-white/30 border-white/20"),
	"neon": newTheme("neon", "Neon",
		"from-black via-purple-800 to-indigo-900",
		"text-pink-400",
		"bg-white/10 hover:bg-white/20 border-white/20"),
}

func newTheme(name, label, bg, text, accent string) Theme {
	return Theme{
		Name:    name,
		Label:   label,
		BG:      bg,
		Text:    text,
		Accent:  accent,
		Preview: "bg-gradient-to-b " + bg + " " + text,
	}
}

// Names returns the registered theme names in display order.
func Names() []string {
	return append([]string(nil), names...)
}

// All returns the registered themes in display order.
func All() []Theme {
	return lo.Map(names, func(name string, _ int) Theme {
		return registry[name]
	})
}

// Lookup returns the theme registered under name.
func Lookup(name string) (Theme, bool) {
	t, ok := registry[name]
	return t, ok
}

// Resolve returns the theme registered under name, or the default theme.
func Resolve(name string) Theme {
	if t, ok := registry[name]; ok {
		return t
	}
	return registry[Default]
}

// Valid reports whether name is a registered theme.
func Valid(name string) bool {
	_, ok := registry[name]
	return ok
}
