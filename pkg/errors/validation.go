package errors

import (
	"fmt"
	"strings"
)

// ValidationError reports one invalid field in an options struct or
// document. Field names use the serialized (snake_case) form so API
// clients can match them to request payloads.
type ValidationError struct {
	Field   string // Serialized field name (e.g. "spacing.tier_gap")
	Message string // What is wrong with the value
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every invalid field so callers see all
// problems at once instead of fixing them one by one.
type ValidationErrors []*ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Add appends a field error. Convenient in validation loops:
//
//	var errs errors.ValidationErrors
//	if opts.Spacing.TierGap < 0 {
//	    errs.Add("spacing.tier_gap", "must not be negative")
//	}
//	return errs.AsError()
func (e *ValidationErrors) Add(field, format string, args ...any) {
	*e = append(*e, &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// AsError returns the collection as a config-coded error, or nil when
// no field errors were recorded.
func (e ValidationErrors) AsError() error {
	if len(e) == 0 {
		return nil
	}
	return Wrap(ErrCodeConfig, e, "invalid options")
}
