package logs

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charliek/ktail/internal/domain"
)

// MaxPatternLength is the maximum allowed length for filter patterns
// to prevent potential DoS attacks from excessively complex patterns
const MaxPatternLength = 256

// Filter applies compiled include/exclude patterns to log messages. Both
// patterns are compiled once at construction; an invalid pattern is a
// configuration error, never a per-message one.
type Filter struct {
	include *regexp.Regexp
	exclude *regexp.Regexp
}

// NewFilter compiles the include and exclude patterns. Empty strings leave
// the corresponding pattern unset.
func NewFilter(include, exclude string) (*Filter, error) {
	f := &Filter{}

	var err error
	f.include, err = compilePattern(include)
	if err != nil {
		return nil, err
	}
	f.exclude, err = compilePattern(exclude)
	if err != nil {
		return nil, err
	}

	return f, nil
}

func compilePattern(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	if len(pattern) > MaxPatternLength {
		return nil, fmt.Errorf("%w: pattern exceeds maximum length of %d characters", domain.ErrInvalidPattern, MaxPatternLength)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPattern, err)
	}
	return re, nil
}

// Keep reports whether the message survives filtering. An exclude match
// always discards, even when the include pattern would match: noise
// suppression wins over inclusion. Patterns are evaluated against the
// message text only.
func (f *Filter) Keep(msg domain.LogMessage) bool {
	if f.exclude != nil && f.exclude.MatchString(msg.Text) {
		return false
	}
	if f.include != nil && !f.include.MatchString(msg.Text) {
		return false
	}
	return true
}

// IsEmpty returns true if neither pattern is set
func (f *Filter) IsEmpty() bool {
	return f.include == nil && f.exclude == nil
}

// Describe returns a short human-readable summary for the status footer.
func (f *Filter) Describe() string {
	var parts []string
	if f.include != nil {
		parts = append(parts, "+"+f.include.String())
	}
	if f.exclude != nil {
		parts = append(parts, "-"+f.exclude.String())
	}
	if len(parts) == 0 {
		return "no filter"
	}
	return strings.Join(parts, " ")
}
