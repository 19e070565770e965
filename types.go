package featmatrix

import (
	"fmt"
	"strings"
)

// FeatureGroup is the ordered list of named variants of one optional capability.
//
// A group never lists its "disabled" variant: [NewMatrix] appends the empty
// token to every group it receives.
type FeatureGroup []string

// Combination is one selection of exactly one token per [FeatureGroup],
// in group-declaration order.
type Combination []string

// String joins the selected tokens with single spaces. See [Join].
func (c Combination) String() string {
	return Join(c)
}

// Join concatenates tokens with a single ASCII space.
//
// Empty tokens are kept as zero-length segments, so a combination where
// some groups are disabled can produce adjacent, leading, or trailing spaces.
// The result is passed verbatim to the external command.
func Join(tokens []string) string {
	return strings.Join(tokens, " ")
}

// Result represents the outcome of one external command invocation.
type Result struct {
	// Code is the process exit code, or non-zero if the process could not
	// be started or did not terminate normally.
	Code int
	// Err is non-nil if the invocation did not complete successfully.
	Err error
}

// OK reports whether the invocation succeeded.
func (r Result) OK() bool {
	return r.Code == 0 && r.Err == nil
}

// CombinationError is returned when the external command fails for a combination.
type CombinationError struct {
	// Features is the joined feature string passed to the command.
	Features string
	// Index is the zero-based position of the combination in enumeration order.
	Index int
	// Code is the exit code reported by the failed invocation.
	Code int
	// Reason is a short description such as "exit status 101"
	// or "terminated by signal SIGKILL".
	Reason string
	// Err is the underlying invocation error, if any.
	Err error
}

// Error implements the error interface.
func (e *CombinationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("features %q: %s: %v", e.Features, e.Reason, e.Err)
	}
	return fmt.Sprintf("features %q: %s", e.Features, e.Reason)
}

// Unwrap returns the underlying invocation error.
func (e *CombinationError) Unwrap() error {
	return e.Err
}

// Command is the external command template.
// The joined feature string is always appended after Args.
type Command struct {
	Name string
	Args []string
}

// Argv returns the full argument vector for the given features string.
func (c Command) Argv(features string) []string {
	argv := make([]string, 0, len(c.Args)+2)
	argv = append(argv, c.Name)
	argv = append(argv, c.Args...)
	return append(argv, features)
}

// String returns the command line without the features argument.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}
