package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Palette used by the default depsync theme.
var (
	depsyncBluePrimary = lipgloss.AdaptiveColor{Light: "#1d4ed8", Dark: "#60a5fa"}
	depsyncBlueBright  = lipgloss.AdaptiveColor{Light: "#2563eb", Dark: "#93c5fd"}
	depsyncBlueAccent  = lipgloss.AdaptiveColor{Light: "#0369a1", Dark: "#38bdf8"}

	depsyncTextStrong = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#f9fafb"}
	depsyncTextNormal = lipgloss.AdaptiveColor{Light: "#374151", Dark: "#d1d5db"}
	depsyncTextMuted  = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
	depsyncTextFaint  = lipgloss.AdaptiveColor{Light: "#9ca3af", Dark: "#6b7280"}

	depsyncBorderFocused = lipgloss.AdaptiveColor{Light: "#2563eb", Dark: "#3b82f6"}
	depsyncBorderNormal  = lipgloss.AdaptiveColor{Light: "#d1d5db", Dark: "#374151"}

	depsyncButtonBg          = lipgloss.AdaptiveColor{Light: "#1d4ed8", Dark: "#2563eb"}
	depsyncButtonBgBlurred   = lipgloss.AdaptiveColor{Light: "#e5e7eb", Dark: "#1f2937"}
	depsyncButtonText        = lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#ffffff"}
	depsyncButtonTextBlurred = lipgloss.AdaptiveColor{Light: "#374151", Dark: "#d1d5db"}

	depsyncError = lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"}
)

// depsyncTheme builds the default prompt theme on top of huh.ThemeBase.
func depsyncTheme() *huh.Theme {
	t := huh.ThemeBase()

	button := lipgloss.NewStyle().Padding(0, 1).MarginRight(1).Bold(true)

	t.Focused.Base = t.Focused.Base.
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(depsyncBorderFocused)
	t.Focused.Card = t.Focused.Base
	t.Focused.Title = lipgloss.NewStyle().Foreground(depsyncBluePrimary).Bold(true)
	t.Focused.NoteTitle = t.Focused.Title.MarginBottom(1)
	t.Focused.Description = lipgloss.NewStyle().Foreground(depsyncTextMuted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(depsyncError)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(depsyncError)
	t.Focused.Directory = t.Focused.Directory.Foreground(depsyncBlueAccent)
	t.Focused.File = t.Focused.File.Foreground(depsyncTextNormal)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(depsyncBlueBright)
	t.Focused.NextIndicator = t.Focused.NextIndicator.Foreground(depsyncBlueBright)
	t.Focused.PrevIndicator = t.Focused.PrevIndicator.Foreground(depsyncBlueBright)
	t.Focused.Option = t.Focused.Option.Foreground(depsyncTextNormal)
	t.Focused.MultiSelectSelector = t.Focused.MultiSelectSelector.Foreground(depsyncBlueBright)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(depsyncTextStrong)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(depsyncBlueAccent).SetString("✓ ")
	t.Focused.UnselectedPrefix = lipgloss.NewStyle().Foreground(depsyncTextFaint).SetString("• ")
	t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(depsyncTextNormal)
	t.Focused.FocusedButton = button.Foreground(depsyncButtonText).Background(depsyncButtonBg)
	t.Focused.BlurredButton = button.Foreground(depsyncButtonTextBlurred).Background(depsyncButtonBgBlurred)
	t.Focused.Next = t.Focused.FocusedButton

	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(depsyncBlueBright)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(depsyncTextFaint)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(depsyncBlueAccent)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Focused.Base.BorderForeground(depsyncBorderNormal)
	t.Blurred.Card = t.Blurred.Base
	t.Blurred.Title = t.Focused.Title.Bold(false).Foreground(depsyncTextMuted)
	t.Blurred.NextIndicator = lipgloss.NewStyle()
	t.Blurred.PrevIndicator = lipgloss.NewStyle()

	t.Help.ShortKey = lipgloss.NewStyle().Foreground(depsyncTextMuted)
	t.Help.ShortDesc = lipgloss.NewStyle().Foreground(depsyncTextFaint)
	t.Help.ShortSeparator = lipgloss.NewStyle().Foreground(depsyncTextFaint)
	t.Help.FullKey = t.Help.ShortKey
	t.Help.FullDesc = t.Help.ShortDesc
	t.Help.FullSeparator = t.Help.ShortSeparator

	t.Group.Title = t.Focused.Title
	t.Group.Description = t.Focused.Description
	return t
}
