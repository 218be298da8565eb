// Package errors defines the error types reported by the glob-events engine:
// pattern compilation failures, malformed input surfaced from the tokenizer,
// and failures raised by caller-supplied handlers.
package errors

import "fmt"

// Pattern describes an invalid path pattern rejected at registration time.
//
//nolint:errname // public API name uses the pattern-language domain term.
type Pattern struct {
	Pattern string
	Reason  string
}

// Error returns the pattern and the reason it was rejected.
func (e *Pattern) Error() string {
	return fmt.Sprintf("invalid pattern %q: %s", e.Pattern, e.Reason)
}

// Parse reports malformed input surfaced from the underlying tokenizer.
// Line and Column are zero when the tokenizer provides no position.
//
//nolint:errname // public API name, matches the drive-call failure domain.
type Parse struct {
	Line   int
	Column int
	Err    error
}

// Error returns the tokenizer failure with position context when known.
func (e *Parse) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed input at line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("malformed input: %v", e.Err)
}

// Unwrap returns the underlying tokenizer error.
func (e *Parse) Unwrap() error { return e.Err }

// Handler reports an error returned by a caller-supplied handler, with the
// element path that was being processed when it failed.
//
//nolint:errname // public API name, matches the drive-call failure domain.
type Handler struct {
	Path    string
	Element string
	Err     error
}

// Error returns the handler failure with its element context.
func (e *Handler) Error() string {
	return fmt.Sprintf("handler for <%s> at %s: %v", e.Element, e.Path, e.Err)
}

// Unwrap returns the error produced by the handler.
func (e *Handler) Unwrap() error { return e.Err }
