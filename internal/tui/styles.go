package tui

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	prompt      lipgloss.Style
	cursor      lipgloss.Style
	help        lipgloss.Style
	status      lipgloss.Style
	err         lipgloss.Style
	confirm     lipgloss.Style
	row         lipgloss.Style
	favorite    lipgloss.Style
	highlighted lipgloss.Style
	match       lipgloss.Style
}

func newStyles(flavor catppuccin.Flavor) styles {
	color := func(c catppuccin.Color) lipgloss.Color {
		return lipgloss.Color(c.Hex)
	}

	return styles{
		prompt:      lipgloss.NewStyle().Foreground(color(flavor.Mauve())).Bold(true),
		cursor:      lipgloss.NewStyle().Reverse(true),
		help:        lipgloss.NewStyle().Foreground(color(flavor.Overlay1())),
		status:      lipgloss.NewStyle().Foreground(color(flavor.Text())).Background(color(flavor.Surface0())),
		err:         lipgloss.NewStyle().Foreground(color(flavor.Red())).Bold(true),
		confirm:     lipgloss.NewStyle().Foreground(color(flavor.Peach())).Bold(true),
		row:         lipgloss.NewStyle().Foreground(color(flavor.Text())),
		favorite:    lipgloss.NewStyle().Foreground(color(flavor.Yellow())),
		highlighted: lipgloss.NewStyle().Foreground(color(flavor.Base())).Background(color(flavor.Green())),
		match:       lipgloss.NewStyle().Foreground(color(flavor.Red())).Bold(true),
	}
}
