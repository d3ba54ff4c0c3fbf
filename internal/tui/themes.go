package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/huh"
)

// DefaultTheme is used when no theme is selected.
const DefaultTheme = "depsync"

var themes = map[string]func() *huh.Theme{
	DefaultTheme: depsyncTheme,
	"base":       huh.ThemeBase,
	"base16":     huh.ThemeBase16,
	"catppuccin": huh.ThemeCatppuccin,
	"charm":      huh.ThemeCharm,
	"dracula":    huh.ThemeDracula,
}

// active builds the theme for the next prompt; nil means DefaultTheme.
var active func() *huh.Theme

// ThemeNames lists the selectable themes, sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetTheme selects the prompt theme. An empty name restores the default.
func SetTheme(name string) error {
	if name == "" {
		active = nil
		return nil
	}
	build, ok := themes[name]
	if !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(ThemeNames(), ", "))
	}
	active = build
	return nil
}

func currentTheme() *huh.Theme {
	if active == nil {
		return depsyncTheme()
	}
	return active()
}
