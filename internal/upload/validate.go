package upload

import (
	"errors"
	"fmt"
)

// MaxFileSize is the largest resume the portal accepts: 10 MiB.
const MaxFileSize = 10 * 1024 * 1024

var allowedExtensions = map[string]struct{}{
	".pdf":  {},
	".doc":  {},
	".docx": {},
}

// AllowedExtensions returns the accepted resume extensions in display order.
func AllowedExtensions() []string {
	return []string{".pdf", ".doc", ".docx"}
}

// ErrValidation tags every file policy rejection.
var ErrValidation = errors.New("validation error")

// ValidationKind identifies which policy rule a file violated.
type ValidationKind string

const (
	KindNoFile          ValidationKind = "no_file"
	KindUnsupportedType ValidationKind = "unsupported_type"
	KindTooLarge        ValidationKind = "too_large"
)

// ValidationError reports a file policy rejection. It resolves locally and
// never reaches the network.
type ValidationError struct {
	Kind ValidationKind
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindNoFile:
		return "no file selected"
	case KindUnsupportedType:
		return "unsupported file type; accepted formats: PDF, DOC, DOCX"
	case KindTooLarge:
		return "file exceeds the 10 MiB limit"
	default:
		return "invalid file"
	}
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Validate checks a candidate file against the portal's type and size policy.
// It has no side effects and is deterministic given the same file metadata.
func Validate(file *CandidateFile) error {
	if file == nil {
		return validationFailure(KindNoFile)
	}
	if _, ok := allowedExtensions[file.Ext()]; !ok {
		return validationFailure(KindUnsupportedType)
	}
	if file.Size > MaxFileSize {
		return validationFailure(KindTooLarge)
	}
	return nil
}

func validationFailure(kind ValidationKind) error {
	return fmt.Errorf("validate file: %w", &ValidationError{Kind: kind})
}
