package scabi

import (
	"fmt"
	"io"
	"math/big"
	"reflect"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

// Value is anything that can occupy a position in an endpoint's input or
// output list. This is a sealed interface: the set of kinds is fixed by the
// wire format and only types within this package implement it.
type Value interface {
	// isValue is unexported to seal the interface.
	isValue()

	// Clone returns a deep copy that shares no mutable state with the receiver.
	Clone() Value

	// SetNative imports a plain Go value.
	SetNative(native any) error

	// Native exports the content as a plain Go value.
	Native() any
}

// Codable is a Value with a binary form, usable both as a whole part and
// nested inside composites. Optional, variadic and multi values are Values
// but not Codables.
type Codable interface {
	Value

	encodeNested(writer io.Writer) error
	encodeTopLevel(writer io.Writer) error
	decodeNested(reader io.Reader) error
	decodeTopLevel(data []byte) error
}

// Field is a named member of a struct or enum variant.
type Field struct {
	Name  string
	Value Codable
}

// Factory creates blank item values for containers being decoded or imported.
type Factory func() Value

// CodableFactory creates blank nested item values.
type CodableFactory func() Codable

// PrototypeFactory binds a factory to a blueprint: every call returns a fresh clone.
func PrototypeFactory(prototype Codable) CodableFactory {
	return func() Codable {
		return cloneCodable(prototype)
	}
}

func cloneCodable(value Codable) Codable {
	return value.Clone().(Codable)
}

func cloneFields(fields []Field) []Field {
	if fields == nil {
		return nil
	}
	cloned := make([]Field, len(fields))
	for i, field := range fields {
		cloned[i] = Field{Name: field.Name, Value: cloneCodable(field.Value)}
	}
	return cloned
}

func cloneCodables(items []Codable) []Codable {
	if items == nil {
		return nil
	}
	cloned := make([]Codable, len(items))
	for i, item := range items {
		cloned[i] = cloneCodable(item)
	}
	return cloned
}

func cloneValues(items []Value) []Value {
	if items == nil {
		return nil
	}
	cloned := make([]Value, len(items))
	for i, item := range items {
		cloned[i] = item.Clone()
	}
	return cloned
}

func fieldsToNative(fields []Field) map[string]any {
	native := make(map[string]any, len(fields))
	for _, field := range fields {
		native[field.Name] = field.Value.Native()
	}
	return native
}

// setFieldsNative imports a map keyed by field name or a positional slice into fields.
func setFieldsNative(fields []Field, native any, expected string) error {
	if byName, ok := native.(map[string]any); ok {
		for _, field := range fields {
			item, ok := byName[field.Name]
			if !ok {
				return encodeFieldError(field.Name, ErrMissingField)
			}
			if err := field.Value.SetNative(item); err != nil {
				return encodeFieldError(field.Name, err)
			}
		}
		return nil
	}

	items, ok := toAnySlice(native)
	if !ok {
		return &TypeMismatchError{Expected: expected, Got: typeName(native)}
	}
	if len(items) != len(fields) {
		return fmt.Errorf("%w: expected %d fields, got %d", ErrValueOutOfRange, len(fields), len(items))
	}
	for i, field := range fields {
		if err := field.Value.SetNative(items[i]); err != nil {
			return encodeFieldError(field.Name, err)
		}
	}
	return nil
}

// toAnySlice flattens any Go slice or array into []any.
func toAnySlice(native any) ([]any, bool) {
	if items, ok := native.([]any); ok {
		return items, true
	}
	if native == nil {
		return nil, false
	}
	rv := reflect.ValueOf(native)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

func typeName(native any) string {
	if native == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", native)
}

// nativeToBig converts the integer-like Go values accepted by numeric kinds.
func nativeToBig(native any) (*big.Int, bool) {
	switch v := native.(type) {
	case int:
		return big.NewInt(int64(v)), true
	case int8:
		return big.NewInt(int64(v)), true
	case int16:
		return big.NewInt(int64(v)), true
	case int32:
		return big.NewInt(int64(v)), true
	case int64:
		return big.NewInt(v), true
	case uint:
		return new(big.Int).SetUint64(uint64(v)), true
	case uint8:
		return new(big.Int).SetUint64(uint64(v)), true
	case uint16:
		return new(big.Int).SetUint64(uint64(v)), true
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), true
	case uint64:
		return new(big.Int).SetUint64(v), true
	case *big.Int:
		if v == nil {
			return nil, false
		}
		return new(big.Int).Set(v), true
	case big.Int:
		return new(big.Int).Set(&v), true
	case *uint256.Int:
		if v == nil {
			return nil, false
		}
		return v.ToBig(), true
	case *hexutil.Big:
		if v == nil {
			return nil, false
		}
		return new(big.Int).Set(v.ToInt()), true
	case hexutil.Big:
		return new(big.Int).Set(v.ToInt()), true
	case hexutil.Uint64:
		return new(big.Int).SetUint64(uint64(v)), true
	case string:
		return new(big.Int).SetString(v, 0)
	default:
		return nil, false
	}
}

func nativeToUint(native any, bits int) (uint64, error) {
	value, ok := nativeToBig(native)
	if !ok {
		return 0, &TypeMismatchError{Expected: fmt.Sprintf("u%d", bits), Got: typeName(native)}
	}
	if value.Sign() < 0 || value.BitLen() > bits {
		return 0, fmt.Errorf("%w: %s does not fit in u%d", ErrValueOutOfRange, value, bits)
	}
	return value.Uint64(), nil
}

func nativeToInt(native any, bits int) (int64, error) {
	value, ok := nativeToBig(native)
	if !ok {
		return 0, &TypeMismatchError{Expected: fmt.Sprintf("i%d", bits), Got: typeName(native)}
	}
	if !value.IsInt64() {
		return 0, fmt.Errorf("%w: %s does not fit in i%d", ErrValueOutOfRange, value, bits)
	}
	n := value.Int64()
	if bits < 64 {
		limit := int64(1) << (bits - 1)
		if n < -limit || n >= limit {
			return 0, fmt.Errorf("%w: %d does not fit in i%d", ErrValueOutOfRange, n, bits)
		}
	}
	return n, nil
}
