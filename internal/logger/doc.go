// Package logger provides a structured logging solution using the Zap logging library.
// It keeps a package-level sugared logger behind an atomic level and lets callers
// carry a derived logger in a context, so every entry written on behalf of one
// bridge instance shares the same key-value fields.
package logger
