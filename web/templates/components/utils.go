package components

import (
	"github.com/dustin/go-humanize/english"
	"github.com/linkbio/linkbio/internal/api/models"
)

// LinkCount formats the number of links like "3 links".
func LinkCount(n int) string {
	return english.Plural(n, "link", "")
}

// ToastClass returns the classes of a toast of the given kind.
func ToastClass(kind models.ToastKind) string {
	base := "toast rounded-lg px-4 py-3 text-sm font-medium shadow-lg "
	if kind == models.ToastError {
		return base + "toast-error bg-red-600 text-white"
	}
	return base + "toast-success bg-emerald-600 text-white"
}

// ThemeButtonClass returns the classes of a theme preview button.
func ThemeButtonClass(opt models.ThemeOption) string {
	border := "border-gray-700 hover:border-indigo-400"
	if opt.Selected {
		border = "border-indigo-400 ring-2 ring-indigo-500"
	}
	return "h-20 w-full rounded-xl border-2 " + border + " " + opt.Preview + " transition disabled:opacity-50"
}

// LayoutButtonClass returns the classes of a layout button.
func LayoutButtonClass(active bool) string {
	if active {
		return "rounded-md px-4 py-2 bg-indigo-500 hover:bg-indigo-600 text-white disabled:opacity-50"
	}
	return "rounded-md px-4 py-2 border border-indigo-400 text-indigo-300 hover:bg-indigo-600 hover:text-white disabled:opacity-50"
}

// OnOff renders a boolean switch state.
func OnOff(on bool) string {
	if on {
		return "On"
	}
	return "Off"
}
