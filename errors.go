package docxtpl

import (
	"errors"
	"fmt"

	"docxtpl/expr"
	"docxtpl/format"
	"docxtpl/visit"
)

// ErrorKind names the category of a fatal processing error.
type ErrorKind string

const (
	ErrInvalidExpression ErrorKind = "InvalidExpression"
	ErrUnknownFormat     ErrorKind = "UnknownFormat"
	ErrTypeError         ErrorKind = "TypeError"
	ErrMissingVariable   ErrorKind = "MissingVariable"
	ErrMalformedTemplate ErrorKind = "MalformedTemplate"
	ErrInternal          ErrorKind = "Internal"
)

// EngineError is the classified form of a fatal error, returned inside
// the Result so callers can branch on Kind without unwrapping.
type EngineError struct {
	Kind    ErrorKind
	Message string
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// classify maps an error from the processing pipeline onto the engine's
// error taxonomy.
func classify(err error) *EngineError {
	var ie *expr.InvalidExpressionError
	if errors.As(err, &ie) {
		return &EngineError{Kind: ErrInvalidExpression, Message: ie.Error()}
	}
	var uf *format.UnknownFormatError
	if errors.As(err, &uf) {
		return &EngineError{Kind: ErrUnknownFormat, Message: uf.Error()}
	}
	var te *visit.TypeError
	if errors.As(err, &te) {
		return &EngineError{Kind: ErrTypeError, Message: te.Error()}
	}
	var mv *visit.MissingVariableError
	if errors.As(err, &mv) {
		return &EngineError{Kind: ErrMissingVariable, Message: mv.Name}
	}
	return &EngineError{Kind: ErrInternal, Message: err.Error()}
}
