// Copyright (c) 2026 marsAI. All rights reserved.

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// This package is used in the service layer and by pure domain predicates
// (the submission wizard steps). It ensures that business logic only operates
// on semantically valid data.
package validate

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/marsai/festival/internal/platform/apperr"
	"github.com/marsai/festival/pkg/slug"
)

// Rule identifiers carried in [apperr.FieldError.Rule].
const (
	RuleRequired = "required"
	RuleMaxLen   = "max_len"
	RuleMinLen   = "min_len"
	RuleRange    = "range"
	RuleEmail    = "email"
	RuleURL      = "url"
	RuleSlug     = "slug"
	RuleUUID     = "uuid"
	RuleOneOf    = "one_of"
	RuleDate     = "date"
	RuleColor    = "color"
	RuleCustom   = "custom"
)

// DateLayout is the only accepted calendar date format (HTML date input).
const DateLayout = "2006-01-02"

var (
	// uuidRegex matches a UUIDv4 or UUIDv7 string.
	uuidRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
	// colorRegex matches a #RRGGBB hex color.
	colorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")
)

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, RuleRequired, "This field is required")
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, RuleMaxLen, "Maximum %d characters", max)
	}
	return v
}

// MinLen fails if the Unicode character count is below min.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	if utf8.RuneCountInString(value) < min {
		v.add(field, RuleMinLen, "Minimum %d characters", min)
	}
	return v
}

// Range fails if the value is outside the [min, max] range (inclusive).
func (v *Validator) Range(field string, value, min, max int) *Validator {
	if value < min || value > max {
		v.add(field, RuleRange, "Must be between %d and %d", min, max)
	}
	return v
}

// Email fails if the value is not a valid RFC 5322 email address.
func (v *Validator) Email(field, value string) *Validator {
	if _, err := mail.ParseAddress(value); err != nil {
		v.add(field, RuleEmail, "Must be a valid email address")
	}
	return v
}

// OptionalURL fails if the value is set but is not an absolute http(s) URL.
func (v *Validator) OptionalURL(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		return v
	}
	parsed, err := url.Parse(value)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		v.add(field, RuleURL, "Must be a valid URL")
	}
	return v
}

// Slug fails if the value is not a valid URL slug.
//
// # Format
//
// Slugs must consist only of lowercase letters, digits, and hyphens,
// with no leading or trailing hyphens.
func (v *Validator) Slug(field, value string) *Validator {
	if !slug.Valid(value) {
		v.add(field, RuleSlug, "Must be a valid URL slug (lowercase letters, digits, hyphens only)")
	}
	return v
}

// UUID fails if the value is not a valid UUID string (case-insensitive).
func (v *Validator) UUID(field, value string) *Validator {
	lower := strings.ToLower(value)
	if !uuidRegex.MatchString(lower) {
		v.add(field, RuleUUID, "Must be a valid UUID")
	}
	return v
}

// OneOf fails if the value is not in the allowed set of strings.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.add(field, RuleOneOf, "Must be one of: %s", strings.Join(allowed, ", "))
	return v
}

// Date fails if the value is not a calendar date in [DateLayout].
func (v *Validator) Date(field, value string) *Validator {
	if _, err := time.Parse(DateLayout, value); err != nil {
		v.add(field, RuleDate, "Must be a valid date (YYYY-MM-DD)")
	}
	return v
}

// HexColor fails if the value is not a #RRGGBB color.
func (v *Validator) HexColor(field, value string) *Validator {
	if !colorRegex.MatchString(value) {
		v.add(field, RuleColor, "Must be a hex color (#RRGGBB)")
	}
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("score", score < 1 || score > 10, "Must be between 1 and 10")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, RuleCustom, "%s", message)
	}
	return v
}

// Rule adds a failure under a caller-defined rule identifier if the condition is true.
func (v *Validator) Rule(field, rule string, failed bool, message string) *Validator {
	if failed {
		v.add(field, rule, "%s", message)
	}
	return v
}

// Err returns a [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed.
//
// Call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// Errors returns a copy of the collected field errors.
func (v *Validator) Errors() []apperr.FieldError {
	if len(v.errs) == 0 {
		return nil
	}
	out := make([]apperr.FieldError, len(v.errs))
	copy(out, v.errs)
	return out
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, rule, key string, args ...any) {
	message := key
	if len(args) > 0 {
		message = fmt.Sprintf(key, args...)
	}
	v.errs = append(v.errs, apperr.FieldError{
		Field:   field,
		Rule:    rule,
		Message: message,
		Key:     key,
		Args:    args,
	})
}

// RequiredError is a shortcut to create a single-field validation error.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{
		Field:   field,
		Rule:    RuleRequired,
		Message: message,
		Key:     message,
	})
}
