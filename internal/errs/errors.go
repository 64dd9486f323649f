// Package errs is the engine's error taxonomy: ModelError, ParseError,
// InvalidIntent, RuleViolation, and InvariantViolation.
package errs

import (
	"errors"
	"fmt"
)

// Code categorizes an error for callers that branch on error kind instead
// of matching message text.
type Code string

const (
	CodeUnknown          Code = "unknown"
	CodeInvalidArgument  Code = "invalid_argument"
	CodeNotFound         Code = "not_found"
	CodeAlreadyExists    Code = "already_exists"
	CodeInternal         Code = "internal"
	CodeValidation       Code = "validation"
	CodeModel            Code = "model_error"       // ModelError: transport/timeout/non-2xx
	CodeParse            Code = "parse_error"       // ParseError: malformed model JSON after repair
	CodeInvalidIntent    Code = "invalid_intent"    // InvalidIntent: bad/missing/out-of-range tool args
	CodeRuleViolation    Code = "rule_violation"    // RuleViolation: resolvable Intent, failed precondition
	CodeInvariantBreach  Code = "invariant_breach"  // InvariantViolation: unreachable in principle, fatal
)

// Error is the engine's application error: a code, a message, an optional
// wrapped cause, and free-form metadata for context.
type Error struct {
	Code    Code
	Message string
	Cause   error
	Meta    map[string]any
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// WithMeta attaches contextual metadata and returns the receiver for chaining.
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}
	var existing *Error
	if errors.As(err, &existing) {
		return &Error{Code: existing.Code, Message: message, Cause: err, Meta: copyMeta(existing.Meta)}
	}
	return &Error{Code: CodeUnknown, Message: message, Cause: err}
}

func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// ModelError wraps a ModelClient transport failure, non-2xx status, or
// timeout. The turn fails with no state change.
func ModelError(message string, cause error) *Error {
	return &Error{Code: CodeModel, Message: message, Cause: cause}
}

// ParseError wraps malformed JSON from the model surviving jsonrepair. It is
// a recoverable warning: the narrative still returns, only the calling
// inference/relevance step is skipped for the turn.
func ParseError(message string, cause error) *Error {
	return &Error{Code: CodeParse, Message: message, Cause: cause}
}

// InvalidIntent marks a tool call with a missing, malformed, or
// out-of-range argument. Callers should treat this as "no Intent" rather
// than propagate it — see tools.Domain parsers.
func InvalidIntent(message string) *Error {
	return &Error{Code: CodeInvalidIntent, Message: message}
}

// RuleViolation marks a resolvable Intent whose preconditions failed (no
// spell slot, already raging, insufficient gold, ...). This is carried as
// data inside a Resolution, not returned as an error, but the type is used
// by rule functions internally to short-circuit to that Resolution.
func RuleViolation(message string) *Error {
	return &Error{Code: CodeRuleViolation, Message: message}
}

// InvariantViolation marks a violation of a world invariant that should be
// unreachable in principle. Callers that detect one should
// panic rather than swallow it — see world.CheckInvariants.
func InvariantViolation(message string) *Error {
	return &Error{Code: CodeInvariantBreach, Message: message}
}

func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}
	out := make(map[string]any, len(meta))
	for k, v := range meta {
		out[k] = v
	}
	return out
}
