package scabi

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
var (
	// ErrNilValue indicates a nil entry in a list of values to (de)serialize.
	ErrNilValue = errors.New("scabi: cannot serialize nil value")

	// ErrOptionalNotLast indicates an optional value placed before the last position.
	ErrOptionalNotLast = errors.New("scabi: an optional value must be last among values")

	// ErrVariadicNotLast indicates variadic values placed before the last position.
	ErrVariadicNotLast = errors.New("scabi: variadic values must be last among values")

	// ErrMultiValueNested indicates optional, variadic or multi used inside a nested type.
	ErrMultiValueNested = errors.New("scabi: multi-value types cannot be nested")

	// ErrCyclicType indicates a custom type that contains itself.
	ErrCyclicType = errors.New("scabi: cyclic custom type reference detected")

	// ErrTypeParameters indicates a type formula with the wrong number of type parameters.
	ErrTypeParameters = errors.New("scabi: invalid number of type parameters")

	// ErrUnexpectedEnd indicates the input ended before a value was fully read.
	ErrUnexpectedEnd = errors.New("scabi: unexpected end of data")

	// ErrTrailingBytes indicates bytes left over after a top-level decode.
	ErrTrailingBytes = errors.New("scabi: unexpected trailing bytes")

	// ErrInvalidUTF8 indicates string data that isn't valid UTF-8.
	ErrInvalidUTF8 = errors.New("scabi: invalid utf-8 string")

	// ErrInvalidBool indicates a bool encoded as something other than 0 or 1.
	ErrInvalidBool = errors.New("scabi: invalid bool encoding")

	// ErrInvalidOptionFlag indicates an option presence byte other than 0 or 1.
	ErrInvalidOptionFlag = errors.New("scabi: invalid option presence flag")

	// ErrMissingFieldsProvider indicates an enum decode without a variant provider.
	ErrMissingFieldsProvider = errors.New("scabi: enum has no fields provider")

	// ErrMissingItemFactory indicates a list or variadic value that can't create items.
	ErrMissingItemFactory = errors.New("scabi: no item factory")

	// ErrUnknownDiscriminant indicates an enum discriminant with no declared variant.
	ErrUnknownDiscriminant = errors.New("scabi: unknown enum discriminant")

	// ErrValueOutOfRange indicates a native number that doesn't fit the target type.
	ErrValueOutOfRange = errors.New("scabi: value out of range")

	// ErrMissingPart indicates there are fewer parts than values to decode.
	ErrMissingPart = errors.New("scabi: not enough parts")

	// ErrLastPartMissing indicates a write into a parts holder with no parts.
	ErrLastPartMissing = errors.New("scabi: no part to append to")

	// ErrEmptySeparator indicates a serializer configured without a parts separator.
	ErrEmptySeparator = errors.New("scabi: parts separator must not be empty")

	// ErrInvalidAddress indicates a malformed address.
	ErrInvalidAddress = errors.New("scabi: invalid address")

	// ErrNoProgress indicates a decode loop whose item consumed no input.
	ErrNoProgress = errors.New("scabi: decoding made no progress")

	// ErrMissingField indicates a struct or enum native value without a declared field.
	ErrMissingField = errors.New("scabi: missing field")
)

// Direction tells whether a list of values is being written (input) or read back (output).
type Direction string

const (
	// Input is the direction of endpoint arguments.
	Input Direction = "input"

	// Output is the direction of endpoint results.
	Output Direction = "output"
)

// EndpointNotFoundError indicates the ABI has no endpoint with the requested name.
type EndpointNotFoundError struct {
	Name string
}

func (e *EndpointNotFoundError) Error() string {
	return fmt.Sprintf("scabi: endpoint %q not found", e.Name)
}

// ArityMismatchError indicates a wrong number of values for an endpoint.
type ArityMismatchError struct {
	Endpoint string
	Expected int
	Actual   int
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("scabi: endpoint %q: invalid value length: expected %d, got %d", e.Endpoint, e.Expected, e.Actual)
}

// UnknownTypeError indicates a type name that is neither built in nor declared.
type UnknownTypeError struct {
	Name string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("scabi: cannot create prototype for type %q", e.Name)
}

// MalformedTypeExpressionError indicates a type expression that cannot be parsed.
type MalformedTypeExpressionError struct {
	Expression string
	Position   int
	Reason     string
}

func (e *MalformedTypeExpressionError) Error() string {
	return fmt.Sprintf("scabi: malformed type expression %q at position %d: %s", e.Expression, e.Position, e.Reason)
}

// TypeMismatchError indicates a native Go value that can't be imported into a value kind.
type TypeMismatchError struct {
	Expected string
	Got      string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("scabi: type mismatch: expected %s, got %s", e.Expected, e.Got)
}

// ParameterError wraps a failure tied to one position in a list of values.
type ParameterError struct {
	Direction Direction
	Index     int
	Err       error
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("scabi: %s value %d: %v", e.Direction, e.Index, e.Err)
}

func (e *ParameterError) Unwrap() error {
	return e.Err
}

// DecodeError reports a decoding failure together with the path of the value
// (field names and element indices, outermost first) where it happened.
type DecodeError struct {
	Path []string
	Err  error
}

func (e *DecodeError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("scabi: cannot decode: %v", e.Err)
	}
	return fmt.Sprintf("scabi: cannot decode %s: %v", strings.Join(e.Path, "."), e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EncodeError reports an encoding or native import failure with the path of the offending value.
type EncodeError struct {
	Path []string
	Err  error
}

func (e *EncodeError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("scabi: cannot encode: %v", e.Err)
	}
	return fmt.Sprintf("scabi: cannot encode %s: %v", strings.Join(e.Path, "."), e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// decodeFieldError tags err with the name of the field being decoded.
func decodeFieldError(name string, err error) error {
	var de *DecodeError
	if errors.As(err, &de) {
		de.Path = append([]string{name}, de.Path...)
		return de
	}
	return &DecodeError{Path: []string{name}, Err: err}
}

// encodeFieldError tags err with the name of the field being encoded.
func encodeFieldError(name string, err error) error {
	var ee *EncodeError
	if errors.As(err, &ee) {
		ee.Path = append([]string{name}, ee.Path...)
		return ee
	}
	return &EncodeError{Path: []string{name}, Err: err}
}

func asDecodeError(err error) error {
	if err == nil {
		return nil
	}
	var de *DecodeError
	if errors.As(err, &de) {
		return err
	}
	return &DecodeError{Err: err}
}

func asEncodeError(err error) error {
	if err == nil {
		return nil
	}
	var ee *EncodeError
	if errors.As(err, &ee) {
		return err
	}
	return &EncodeError{Err: err}
}

func indexSegment(i int) string {
	return fmt.Sprintf("[%d]", i)
}
