package cronx

import "fmt"

// ErrorKind taxonomizes parse failures per spec.md §7.
type ErrorKind int

const (
	// ErrEmptyInput - input is empty or whitespace-only.
	ErrEmptyInput ErrorKind = iota
	// ErrWrongArity - field count after splitting is not in {4, 5}.
	ErrWrongArity
	// ErrUnknownMacro - an "@"-prefixed input not present in the macro table.
	ErrUnknownMacro
	// ErrBadToken - a sub-part does not lex.
	ErrBadToken
	// ErrOutOfRange - a numeric literal outside its field's allowed range.
	ErrOutOfRange
	// ErrMisplacedExtension - L/LW/W/#/dL used in a field that doesn't
	// support it.
	ErrMisplacedExtension
)

// ParseError is the single error type the parser returns. It carries enough
// structure (field + offending token) for callers such as internal/check to
// build diagnostics without re-parsing the message string.
type ParseError struct {
	Kind   ErrorKind
	Input  string
	Field  string // empty when the error isn't field-scoped (arity, macro, empty)
	Token  string // the offending sub-part, when applicable
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Invalid cron expression [%s]. %s", e.Input, e.Reason)
}

func newEmptyInputError(input string) *ParseError {
	return &ParseError{Kind: ErrEmptyInput, Input: input, Reason: "Empty expression"}
}

func newArityError(input string, got int) *ParseError {
	return &ParseError{
		Kind:   ErrWrongArity,
		Input:  input,
		Reason: fmt.Sprintf("Expected [4 to 5] fields but found [%d] fields", got),
	}
}

func newUnknownMacroError(input string) *ParseError {
	return &ParseError{
		Kind:   ErrUnknownMacro,
		Input:  input,
		Reason: fmt.Sprintf("Unknown macro [%s]", input),
	}
}

func newBadTokenError(input, field, token, reason string) *ParseError {
	return &ParseError{
		Kind:   ErrBadToken,
		Input:  input,
		Field:  field,
		Token:  token,
		Reason: fmt.Sprintf("%s [%s] for field [%s]", reason, token, field),
	}
}

func newOutOfRangeError(input, field, token string) *ParseError {
	return &ParseError{
		Kind:   ErrOutOfRange,
		Input:  input,
		Field:  field,
		Token:  token,
		Reason: fmt.Sprintf("Value [%s] out of range for field [%s]", token, field),
	}
}

func newMisplacedExtensionError(input, field, token string) *ParseError {
	return &ParseError{
		Kind:   ErrMisplacedExtension,
		Input:  input,
		Field:  field,
		Token:  token,
		Reason: fmt.Sprintf("Extension [%s] is not valid for field [%s]", token, field),
	}
}
