package formatting

import (
	"fmt"

	"github.com/pkg/errors"
)

// Direction names the leg of a call a formatter was applied on.
type Direction string

const (
	DirectionRequest Direction = "request"
	DirectionResult  Direction = "result"
	DirectionError   Direction = "error"
	DirectionNull    Direction = "null"
)

var (
	ErrIndexOutOfRange          = errors.New("index out of range")
	ErrAmbiguousFormatterSource = errors.New("method formatted by both a static map and a formatters builder")
	ErrErrorSuppressed          = errors.New("error formatter returned no error payload")
	ErrBlockNotFound            = errors.New("block not found")
	ErrTransactionNotFound      = errors.New("transaction not found")
	ErrInvalidHex               = errors.New("invalid hex value")
	ErrInvalidAddress           = errors.New("invalid address")
	ErrUnsupportedType          = errors.New("unsupported value type")
	ErrNoMatchingFormatter      = errors.New("no formatter matches value")
)

// FormatterError is returned when a formatter fails while transforming a
// value. Err is the failure reported by the formatter.
type FormatterError struct {
	Method    string
	Direction Direction
	Value     interface{}
	Err       error
}

func (e *FormatterError) Error() string {
	return fmt.Sprintf("%s %s formatter failed on %s: %v", e.Method, e.Direction, describe(e.Value), e.Err)
}

func (e *FormatterError) Unwrap() error {
	return e.Err
}

// Cause lets errors.Cause from github.com/pkg/errors reach the formatter failure.
func (e *FormatterError) Cause() error {
	return e.Err
}

const maxDescribedValue = 120

func describe(value interface{}) string {
	s := fmt.Sprintf("%v", value)
	if len(s) > maxDescribedValue {
		return s[:maxDescribedValue] + "...snip..."
	}
	return s
}
