// Package ui holds the color themes of the limbcheck output: ANSI escape
// codes for streaming text and lipgloss styles for the boxed summaries.
// NO_COLOR and --no-color select a theme that emits no escape codes.
package ui
