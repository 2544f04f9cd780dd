package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across promptrev.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Components
	FieldComponent = "component"

	// Files and paths
	FieldFile = "file"
	FieldPath = "path"

	// Revisions
	FieldRevision = "rev_id"
	FieldTarget   = "target"
	FieldRunID    = "run_id"

	// Prompts and rendering
	FieldPrompt = "prompt"
	FieldSpan   = "span"
	FieldKey    = "key"

	// Errors
	FieldError = "error"

	// Counts and timing
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"
)

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	type Engine struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func NewEngine() *Engine {
//	    return &Engine{
//	        logger: logger.ComponentLogger("revision.engine"),
//	    }
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
// Use for sub-operations that need extra context fields.
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
