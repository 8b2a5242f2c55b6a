// Package ui holds small helpers for terminal output shared by the
// reporting commands.
package ui

import (
	"github.com/pterm/pterm"
)

func Green(a any) string {
	return pterm.Green(a)
}

func Cyan(a any) string {
	return pterm.Cyan(a)
}

func Magenta(a any) string {
	return pterm.Magenta(a)
}

func Red(a any) string {
	return pterm.Red(a)
}

func Highlight(a any) string {
	return pterm.Bold.Sprint(a)
}
