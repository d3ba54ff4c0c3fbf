package tui

import (
	"github.com/charmbracelet/huh"
)

// Confirm shows a yes/no prompt and returns the answer.
func Confirm(title, description string) (bool, error) {
	var confirmed bool

	field := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed)

	if err := huh.NewForm(huh.NewGroup(field)).WithTheme(currentTheme()).Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}

// MultiSelect shows a multi-select prompt with defaults preselected
// and returns the chosen values.
func MultiSelect(title, description string, options []huh.Option[string], defaults []string) ([]string, error) {
	selected := append([]string(nil), defaults...)

	field := huh.NewMultiSelect[string]().
		Title(title).
		Description(description).
		Options(options...).
		Value(&selected)

	if err := huh.NewForm(huh.NewGroup(field)).WithTheme(currentTheme()).Run(); err != nil {
		return nil, err
	}
	return selected, nil
}
