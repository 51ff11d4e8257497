package interactions

import (
	"errors"
	"fmt"
	"strings"
)

// Source identifies a protein interaction database.
type Source string

const (
	BioGRID Source = "BioGRID"
	STRING  Source = "STRING"
)

// AllSources lists the supported databases in display order.
var AllSources = []Source{BioGRID, STRING}

// ErrUnknownSource is returned for a database name outside AllSources.
var ErrUnknownSource = errors.New("unknown interaction source")

// ParseSource maps a database name to a Source, ignoring case and
// surrounding whitespace.
func ParseSource(s string) (Source, error) {
	name := strings.TrimSpace(s)
	for _, src := range AllSources {
		if strings.EqualFold(string(src), name) {
			return src, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSource, s)
}

func (s Source) String() string {
	return string(s)
}

// Valid reports whether s is one of AllSources.
func (s Source) Valid() bool {
	for _, src := range AllSources {
		if s == src {
			return true
		}
	}
	return false
}

// SourceNames returns the names of AllSources.
func SourceNames() []string {
	names := make([]string, len(AllSources))
	for i, s := range AllSources {
		names[i] = string(s)
	}
	return names
}
