// Package apperrors defines the typed errors and exit codes of the limbcheck
// tool. Every type carrying a cause implements Unwrap so callers can use
// errors.Is and errors.As across wrapped chains.
package apperrors
