package validation

import (
	"cmp"
	"fmt"
	"os"
	"strings"
)

// Rule checks one value and describes the violation, if any.
type Rule func() error

// FieldError ties a rule violation to the setting it concerns.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Err.Error() }
func (e *FieldError) Unwrap() error { return e.Err }

// Errors is every violation found in one configuration.
type Errors struct {
	Config string
	List   []error
}

func (e *Errors) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "invalid %s: %d errors", e.Config, len(e.List))
	for _, err := range e.List {
		b.WriteString("\n  ")
		b.WriteString(err.Error())
	}
	return b.String()
}

func (e *Errors) Unwrap() []error { return e.List }

// ConfigValidator applies rules field by field and keeps going after a
// failure so a single run reports every problem.
type ConfigValidator struct {
	config string
	errs   []error
}

func NewConfigValidator(configName string) *ConfigValidator {
	return &ConfigValidator{config: configName}
}

// Field runs rules against field and records each violation.
func (cv *ConfigValidator) Field(field string, rules ...Rule) *ConfigValidator {
	for _, rule := range rules {
		if err := rule(); err != nil {
			cv.errs = append(cv.errs, &FieldError{Field: cv.config + "." + field, Err: err})
		}
	}
	return cv
}

// When runs fn only if condition holds, for settings that depend on others.
func (cv *ConfigValidator) When(condition bool, fn func(*ConfigValidator)) *ConfigValidator {
	if condition {
		fn(cv)
	}
	return cv
}

// Err returns nil, the single violation, or an *Errors holding all of them.
func (cv *ConfigValidator) Err() error {
	switch len(cv.errs) {
	case 0:
		return nil
	case 1:
		return cv.errs[0]
	default:
		return &Errors{Config: cv.config, List: cv.errs}
	}
}

func InRange[T cmp.Ordered](v, lo, hi T) Rule {
	return func() error {
		if v < lo || v > hi {
			return fmt.Errorf("%v is outside [%v, %v]", v, lo, hi)
		}
		return nil
	}
}

func Positive[T cmp.Ordered](v T) Rule {
	return func() error {
		var zero T
		if v <= zero {
			return fmt.Errorf("%v must be positive", v)
		}
		return nil
	}
}

func NotNegative[T cmp.Ordered](v T) Rule {
	return func() error {
		var zero T
		if v < zero {
			return fmt.Errorf("%v must not be negative", v)
		}
		return nil
	}
}

// OneOf accepts v if it matches an allowed value, ignoring case.
func OneOf(v string, allowed ...string) Rule {
	return func() error {
		for _, a := range allowed {
			if strings.EqualFold(v, a) {
				return nil
			}
		}
		return fmt.Errorf("%q must be one of %s", v, strings.Join(allowed, ", "))
	}
}

// Dir requires path to name an existing directory.
func Dir(path string) Rule {
	return func() error {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory", path)
		}
		return nil
	}
}

// DefaultOr returns value unless it is the zero value.
func DefaultOr[T comparable](value, fallback T) T {
	var zero T
	if value == zero {
		return fallback
	}
	return value
}
