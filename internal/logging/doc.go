// Package logging assembles the structured slog loggers used across
// cityfeed commands.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes a no-op constructor for tests and wiring code that
// cannot fail. Prefer these constructors over hand-rolled slog setup so
// every component emits log lines with the same shape.
package logging
