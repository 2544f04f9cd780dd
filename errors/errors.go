// Package errors provides error handling for promptrev.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints and details for user-facing output
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrNameNotFound) {
//	    // handle unknown prompt
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	"strings"

	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Reporting
var (
	GetReportableStackTrace = crdb.GetReportableStackTrace
)

// GetStack is an alias for GetReportableStackTrace for convenience.
var GetStack = crdb.GetReportableStackTrace

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors for the revision and lookup surfaces.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrDuplicateRevision indicates a revision ID was registered twice
	ErrDuplicateRevision = New("revision already registered")

	// ErrUnknownTarget indicates an upgrade target that matches no registered revision
	ErrUnknownTarget = New("unknown target revision")

	// ErrMigrationApply indicates a revision's transform failed; state is
	// preserved up to the last revision that completed
	ErrMigrationApply = New("migration failed")

	// ErrNameNotFound indicates a prompt name absent from both dynamic
	// values and the reloaded document
	ErrNameNotFound = New("prompt not found")
)

// IsDuplicateRevisionError checks if an error is or wraps ErrDuplicateRevision
func IsDuplicateRevisionError(err error) bool {
	return err != nil && Is(err, ErrDuplicateRevision)
}

// IsUnknownTargetError checks if an error is or wraps ErrUnknownTarget
func IsUnknownTargetError(err error) bool {
	return err != nil && Is(err, ErrUnknownTarget)
}

// IsMigrationApplyError checks if an error is or wraps ErrMigrationApply
func IsMigrationApplyError(err error) bool {
	return err != nil && Is(err, ErrMigrationApply)
}

// IsNameNotFoundError checks if an error is or wraps ErrNameNotFound
func IsNameNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNameNotFound)
}

// NewDuplicateRevisionError creates a duplicate-registration error naming the revision
func NewDuplicateRevisionError(revID string) error {
	return Wrap(ErrDuplicateRevision, Newf("revision %q", revID).Error())
}

// NewUnknownTargetError creates an unknown-target error naming the requested target
func NewUnknownTargetError(target string) error {
	return Wrap(ErrUnknownTarget, Newf("target %q", target).Error())
}

// WrapMigrationApply wraps a transform failure, naming the failing revision
func WrapMigrationApply(err error, revID string) error {
	return Wrapf(Wrap(ErrMigrationApply, err.Error()), "revision %s", revID)
}

// NewNameNotFoundError creates a lookup-miss error enumerating the known names
func NewNameNotFoundError(name string, known []string) error {
	if len(known) == 0 {
		return Wrap(ErrNameNotFound, Newf("prompt %q (no prompts loaded)", name).Error())
	}
	return Wrap(ErrNameNotFound, Newf("prompt %q (known prompts: %s)", name, strings.Join(known, ", ")).Error())
}
