package graphql

import (
	"errors"
	"fmt"
)

// LimitConfig bounds the list fields of the schema (interactions, topNodes).
type LimitConfig struct {
	DefaultLimit int // used when the query gives no limit or a negative one
	MaxLimit     int // larger requests are capped here
}

// DefaultLimitConfig suits interaction neighbourhoods of a single protein.
func DefaultLimitConfig() *LimitConfig {
	return &LimitConfig{DefaultLimit: 100, MaxLimit: 1000}
}

func (c *LimitConfig) Validate() error {
	var errs []error
	if c.MaxLimit <= 0 {
		errs = append(errs, fmt.Errorf("max limit must be positive, got %d", c.MaxLimit))
	}
	if c.DefaultLimit <= 0 {
		errs = append(errs, fmt.Errorf("default limit must be positive, got %d", c.DefaultLimit))
	}
	if c.DefaultLimit > c.MaxLimit {
		errs = append(errs, fmt.Errorf("default limit %d exceeds max limit %d", c.DefaultLimit, c.MaxLimit))
	}
	return errors.Join(errs...)
}

// Resolve turns the limit argument of a field into the number of items to
// return. A missing or negative argument selects the default; zero is
// honoured and yields an empty list.
func (c *LimitConfig) Resolve(args map[string]any) int {
	requested, ok := args["limit"].(int)
	switch {
	case !ok || requested < 0:
		return c.DefaultLimit
	case requested > c.MaxLimit:
		return c.MaxLimit
	default:
		return requested
	}
}
