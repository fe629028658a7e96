package output

import (
	catppuccin "github.com/catppuccin/go"
)

// Flavor maps a theme name to its catppuccin flavor, defaulting to mocha.
func Flavor(theme string) catppuccin.Flavor {
	switch theme {
	case "latte":
		return catppuccin.Latte
	case "frappe":
		return catppuccin.Frappe
	case "macchiato":
		return catppuccin.Macchiato
	default:
		return catppuccin.Mocha
	}
}
