package theme

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// AppearanceEnv overrides the system query with "dark" or "light".
const AppearanceEnv = "NEURALBG_APPEARANCE"

// SystemDark reports whether the environment prefers a dark appearance. It
// is only consulted when no preference is stored.
func SystemDark() bool {
	if dark, ok := appearanceOverride(os.Getenv(AppearanceEnv)); ok {
		return dark
	}
	if dark, ok := gtkThemeHint(os.Getenv("GTK_THEME")); ok {
		return dark
	}
	return lipgloss.HasDarkBackground()
}

func appearanceOverride(v string) (bool, bool) {
	dark, err := Parse(strings.ToLower(strings.TrimSpace(v)))
	if err != nil {
		return false, false
	}
	return dark, true
}

// gtkThemeHint recognizes the "Name:dark" variant suffix and "-dark" theme
// names such as Adwaita-dark. Anything else is no answer.
func gtkThemeHint(v string) (bool, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	if strings.HasSuffix(v, ":dark") || strings.HasSuffix(v, "-dark") {
		return true, true
	}
	return false, false
}
