// Package logging provides the structured logger used by the limbcheck tool.
// Application code logs through the Logger interface; packages that need a
// zerolog.Logger take it from ZerologAdapter.Zerolog.
package logging
