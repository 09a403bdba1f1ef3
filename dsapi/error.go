package dsapi

import (
	"github.com/serum-errors/go-serum"
)

const (
	CodeCmd           = "depship-error-cmd"
	CodeIo            = "depship-error-io"
	CodeSerialization = "depship-error-serialization"
	CodeInvalid       = "depship-error-invalid"
	CodeMissing       = "depship-error-missing"
	CodeGit           = "depship-error-git"
	CodeHosting       = "depship-error-hosting"
	CodeStageFailed   = "depship-error-stage-failed"
)

// ErrorCmd is returned when an external command exits nonzero
// (or cannot be started at all).  The exact command line is carried
// in the details so the operator can inspect and re-invoke by hand.
//
// Errors:
//
//    - depship-error-cmd --
func ErrorCmd(cmdline string, cause error) error {
	result := serum.Errorf(CodeCmd,
		"command failed: %s: %w", cmdline, cause)
	addDetails(result, [][2]string{
		{"cmdline", cmdline},
	})
	return result
}

// ErrorIo wraps generic I/O errors from the Go stdlib
//
// Errors:
//
//    - depship-error-io --
func ErrorIo(context string, path string, cause error) error {
	result := serum.Errorf(CodeIo,
		"io error: %s: %w", context, cause)
	addDetails(result, [][2]string{{"context", context}, {"path", path}})
	return result
}

// ErrorSerialization is returned when a serialization or deserialization error occurs
//
// Errors:
//
//    - depship-error-serialization --
func ErrorSerialization(context string, cause error) error {
	result := serum.Errorf(CodeSerialization,
		"serialization error: %s: %w", context, cause)
	addDetails(result, [][2]string{
		{"context", context},
	})
	return result
}

// ErrorInvalid is returned when user-supplied input is invalid.
// The caller must format the message string.
//
// Errors:
//
//  - depship-error-invalid --
func ErrorInvalid(message string, deets ...[2]string) error {
	opts := make([]serum.WithConstruction, 0, len(deets)+1)
	for _, d := range deets {
		opts = append(opts, serum.WithDetail(d[0], d[1]))
	}
	opts = append(opts, serum.WithMessageLiteral(message))
	return serum.Error(CodeInvalid, opts...)
}

// ErrorMissing is used when an expected file or directory does not exist.
// The "hint" should tell the operator how the artifact normally comes to be.
//
// Errors:
//
//    - depship-error-missing --
func ErrorMissing(path string, hint string) error {
	return serum.Error(CodeMissing,
		serum.WithMessageTemplate("missing at path: {{path|q}} ({{hint}})"),
		serum.WithDetail("path", path),
		serum.WithDetail("hint", hint),
	)
}

// ErrorGit is returned when a go-git error occurs
//
// Errors:
//
//    - depship-error-git --
func ErrorGit(context string, cause error) error {
	result := serum.Errorf(CodeGit, "git error: %s: %w", context, cause)
	addDetails(result, [][2]string{
		{"context", context},
	})
	return result
}

// ErrorHosting is returned when the hosting platform CLI misbehaves in a
// way that is not a plain nonzero exit (e.g. unparseable identity output).
//
// Errors:
//
//    - depship-error-hosting --
func ErrorHosting(context string, cause error) error {
	result := serum.Errorf(CodeHosting, "hosting platform error: %s: %w", context, cause)
	addDetails(result, [][2]string{
		{"context", context},
	})
	return result
}

// ErrorStageFailed is returned when execution of a workflow stage fails.
//
// Errors:
//
//    - depship-error-stage-failed --
func ErrorStageFailed(stageName string, cause error) error {
	result := serum.Errorf(CodeStageFailed, "stage %q failed: %w", stageName, cause)
	addDetails(result, [][2]string{
		{"stageName", stageName},
	})
	return result
}

// addDetails is a helper method to get around the fact that doing a type coercion within
// an exported function is not currently allowed by serum.
func addDetails(err error, details [][2]string) {
	s := err.(*serum.ErrorValue)
	s.Data.Details = append(s.Data.Details, details...)
}
