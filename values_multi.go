package scabi

import (
	"fmt"
)

// OptionalValue is zero or one trailing logical value. It occupies no part
// when absent. Value always holds a prototype of the inner type.
type OptionalValue struct {
	Value Value
	IsSet bool
}

// NewOptionalValue creates an absent optional whose value has the type of inner.
func NewOptionalValue(inner Value) *OptionalValue {
	return &OptionalValue{Value: inner}
}

func (v *OptionalValue) isValue() {}

// Clone returns a deep copy.
func (v *OptionalValue) Clone() Value {
	return &OptionalValue{Value: v.Value.Clone(), IsSet: v.IsSet}
}

// SetNative takes nil as absent; anything else is imported into the inner value.
func (v *OptionalValue) SetNative(native any) error {
	if native == nil {
		v.IsSet = false
		return nil
	}
	if err := v.Value.SetNative(native); err != nil {
		return err
	}
	v.IsSet = true
	return nil
}

// Native returns nil when absent, else the inner native value.
func (v *OptionalValue) Native() any {
	if !v.IsSet {
		return nil
	}
	return v.Value.Native()
}

// VariadicValues is zero or more trailing logical values of one type, one
// part group per item. Decoding consumes every remaining part.
type VariadicValues struct {
	Items []Value

	newItem Factory
}

// NewVariadicValues creates an empty variadic whose items are created by newItem.
func NewVariadicValues(newItem Factory) *VariadicValues {
	return &VariadicValues{newItem: newItem}
}

func (v *VariadicValues) isValue() {}

// Clone returns a deep copy. The item factory is shared.
func (v *VariadicValues) Clone() Value {
	return &VariadicValues{Items: cloneValues(v.Items), newItem: v.newItem}
}

func (v *VariadicValues) createItem() (Value, error) {
	if v.newItem == nil {
		return nil, ErrMissingItemFactory
	}
	return v.newItem(), nil
}

// SetNative accepts any slice; each element is imported into a fresh item.
func (v *VariadicValues) SetNative(native any) error {
	elements, ok := toAnySlice(native)
	if !ok {
		return &TypeMismatchError{Expected: "variadic", Got: typeName(native)}
	}
	items := make([]Value, len(elements))
	for i, element := range elements {
		item, err := v.createItem()
		if err != nil {
			return err
		}
		if err := item.SetNative(element); err != nil {
			return encodeFieldError(indexSegment(i), err)
		}
		items[i] = item
	}
	v.Items = items
	return nil
}

// Native returns the items as []any.
func (v *VariadicValues) Native() any {
	native := make([]any, len(v.Items))
	for i, item := range v.Items {
		native[i] = item.Native()
	}
	return native
}

// MultiValue is a fixed group of heterogeneous logical values, each taking its own part(s).
type MultiValue struct {
	Items []Value
}

// NewMultiValue creates a multi-value from item prototypes.
func NewMultiValue(items ...Value) *MultiValue {
	return &MultiValue{Items: items}
}

func (v *MultiValue) isValue() {}

// Clone returns a deep copy.
func (v *MultiValue) Clone() Value {
	return &MultiValue{Items: cloneValues(v.Items)}
}

// SetNative accepts a slice with exactly one element per item.
func (v *MultiValue) SetNative(native any) error {
	elements, ok := toAnySlice(native)
	if !ok {
		return &TypeMismatchError{Expected: "multi", Got: typeName(native)}
	}
	if len(elements) != len(v.Items) {
		return fmt.Errorf("%w: expected %d multi-value items, got %d", ErrValueOutOfRange, len(v.Items), len(elements))
	}
	for i, item := range v.Items {
		if err := item.SetNative(elements[i]); err != nil {
			return encodeFieldError(indexSegment(i), err)
		}
	}
	return nil
}

// Native returns the items as []any.
func (v *MultiValue) Native() any {
	native := make([]any, len(v.Items))
	for i, item := range v.Items {
		native[i] = item.Native()
	}
	return native
}
