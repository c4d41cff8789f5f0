package scabi

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// StructValue is an ordered sequence of named fields. Both modes concatenate
// the nested encodings of the fields.
type StructValue struct {
	Fields []Field
}

func (v *StructValue) isValue() {}

// Clone returns a deep copy of the struct and its fields.
func (v *StructValue) Clone() Value {
	return &StructValue{Fields: cloneFields(v.Fields)}
}

func (v *StructValue) encodeNested(writer io.Writer) error {
	return encodeFields(writer, v.Fields)
}

func (v *StructValue) encodeTopLevel(writer io.Writer) error {
	return v.encodeNested(writer)
}

func (v *StructValue) decodeNested(reader io.Reader) error {
	return decodeFields(reader, v.Fields)
}

func (v *StructValue) decodeTopLevel(data []byte) error {
	return decodeTopLevelNested(data, v)
}

// SetNative accepts a map keyed by field name holding every field, or a positional slice.
func (v *StructValue) SetNative(native any) error {
	return setFieldsNative(v.Fields, native, "struct")
}

// Native returns the fields as a map keyed by field name.
func (v *StructValue) Native() any {
	return fieldsToNative(v.Fields)
}

func encodeFields(writer io.Writer, fields []Field) error {
	for _, field := range fields {
		if err := field.Value.encodeNested(writer); err != nil {
			return encodeFieldError(field.Name, err)
		}
	}
	return nil
}

func decodeFields(reader io.Reader, fields []Field) error {
	for _, field := range fields {
		if err := field.Value.decodeNested(reader); err != nil {
			return decodeFieldError(field.Name, err)
		}
	}
	return nil
}

// VariantProvider supplies the layout of enum variants. VariantFields must
// return fresh blank fields on every call.
type VariantProvider interface {
	VariantFields(discriminant uint8) ([]Field, error)
	VariantName(discriminant uint8) string
	VariantDiscriminant(name string) (uint8, bool)
}

// FieldsProviderFunc adapts a plain discriminant-to-fields function into a
// VariantProvider without variant names.
type FieldsProviderFunc func(discriminant uint8) ([]Field, error)

// VariantFields calls f.
func (f FieldsProviderFunc) VariantFields(discriminant uint8) ([]Field, error) {
	return f(discriminant)
}

// VariantName returns "" since a bare function knows no names.
func (f FieldsProviderFunc) VariantName(uint8) string {
	return ""
}

// VariantDiscriminant always fails to resolve.
func (f FieldsProviderFunc) VariantDiscriminant(string) (uint8, bool) {
	return 0, false
}

// EnumVariant is the native form of an enum value.
type EnumVariant struct {
	Discriminant uint8
	Name         string
	Fields       map[string]any
}

// EnumValue is a discriminant followed by the fields of that variant.
// The field set is owned by the discriminant: decoding replaces it entirely.
type EnumValue struct {
	Discriminant uint8
	Fields       []Field

	provider VariantProvider
}

// NewEnumValue creates a blank enum (discriminant 0) bound to a variant provider.
// A nil provider is allowed for encode-only use.
func NewEnumValue(provider VariantProvider) *EnumValue {
	return &EnumValue{provider: provider}
}

func (v *EnumValue) isValue() {}

// Clone returns a deep copy. The variant provider is shared; it is read-only.
func (v *EnumValue) Clone() Value {
	return &EnumValue{
		Discriminant: v.Discriminant,
		Fields:       cloneFields(v.Fields),
		provider:     v.provider,
	}
}

func (v *EnumValue) encodeNested(writer io.Writer) error {
	if err := writeBytes(writer, []byte{v.Discriminant}); err != nil {
		return err
	}
	return encodeFields(writer, v.Fields)
}

func (v *EnumValue) encodeTopLevel(writer io.Writer) error {
	if v.Discriminant == 0 && len(v.Fields) == 0 {
		return nil
	}
	return v.encodeNested(writer)
}

func (v *EnumValue) decodeNested(reader io.Reader) error {
	if v.provider == nil {
		return ErrMissingFieldsProvider
	}
	data, err := readBytesExactly(reader, DiscriminantSize)
	if err != nil {
		return err
	}
	fields, err := v.provider.VariantFields(data[0])
	if err != nil {
		return err
	}
	v.Discriminant = data[0]
	v.Fields = fields
	return decodeFields(reader, v.Fields)
}

func (v *EnumValue) decodeTopLevel(data []byte) error {
	if len(data) > 0 {
		return decodeTopLevelNested(data, v)
	}

	v.Discriminant = 0
	v.Fields = nil
	if v.provider == nil {
		return nil
	}
	fields, err := v.provider.VariantFields(0)
	if err != nil {
		return err
	}
	if len(fields) > 0 {
		return fmt.Errorf("%w: variant 0 has %d fields", ErrUnexpectedEnd, len(fields))
	}
	return nil
}

// SetNative accepts an EnumVariant, a discriminant as any Go integer, or a variant name.
func (v *EnumValue) SetNative(native any) error {
	var variant EnumVariant
	switch n := native.(type) {
	case EnumVariant:
		variant = n
	case *EnumVariant:
		if n == nil {
			return &TypeMismatchError{Expected: "enum", Got: "nil"}
		}
		variant = *n
	case string:
		if v.provider == nil {
			return ErrMissingFieldsProvider
		}
		discriminant, ok := v.provider.VariantDiscriminant(n)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownDiscriminant, n)
		}
		variant.Discriminant = discriminant
	default:
		discriminant, err := nativeToUint(native, 8)
		if err != nil {
			return err
		}
		variant.Discriminant = uint8(discriminant)
	}

	if variant.Name != "" && v.provider != nil {
		discriminant, ok := v.provider.VariantDiscriminant(variant.Name)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownDiscriminant, variant.Name)
		}
		variant.Discriminant = discriminant
	}

	if v.provider == nil {
		if len(variant.Fields) > 0 {
			return ErrMissingFieldsProvider
		}
		v.Discriminant = variant.Discriminant
		v.Fields = nil
		return nil
	}

	fields, err := v.provider.VariantFields(variant.Discriminant)
	if err != nil {
		return err
	}
	if len(fields) > 0 {
		if err := setFieldsNative(fields, variant.Fields, "enum fields"); err != nil {
			return err
		}
	}
	v.Discriminant = variant.Discriminant
	v.Fields = fields
	return nil
}

// Native returns the value as EnumVariant.
func (v *EnumValue) Native() any {
	variant := EnumVariant{Discriminant: v.Discriminant}
	if v.provider != nil {
		variant.Name = v.provider.VariantName(v.Discriminant)
	}
	if len(v.Fields) > 0 {
		variant.Fields = fieldsToNative(v.Fields)
	}
	return variant
}

// TupleValue is a fixed ordered sequence of heterogeneous values.
type TupleValue struct {
	Items []Codable
}

func (v *TupleValue) isValue() {}

// Clone returns a deep copy of the tuple.
func (v *TupleValue) Clone() Value {
	return &TupleValue{Items: cloneCodables(v.Items)}
}

func (v *TupleValue) encodeNested(writer io.Writer) error {
	for i, item := range v.Items {
		if err := item.encodeNested(writer); err != nil {
			return encodeFieldError(strconv.Itoa(i), err)
		}
	}
	return nil
}

func (v *TupleValue) encodeTopLevel(writer io.Writer) error {
	return v.encodeNested(writer)
}

func (v *TupleValue) decodeNested(reader io.Reader) error {
	for i, item := range v.Items {
		if err := item.decodeNested(reader); err != nil {
			return decodeFieldError(strconv.Itoa(i), err)
		}
	}
	return nil
}

func (v *TupleValue) decodeTopLevel(data []byte) error {
	return decodeTopLevelNested(data, v)
}

// SetNative accepts a slice with exactly one element per tuple item.
func (v *TupleValue) SetNative(native any) error {
	items, ok := toAnySlice(native)
	if !ok {
		return &TypeMismatchError{Expected: "tuple", Got: typeName(native)}
	}
	if len(items) != len(v.Items) {
		return fmt.Errorf("%w: expected %d tuple items, got %d", ErrValueOutOfRange, len(v.Items), len(items))
	}
	for i, item := range v.Items {
		if err := item.SetNative(items[i]); err != nil {
			return encodeFieldError(strconv.Itoa(i), err)
		}
	}
	return nil
}

// Native returns the items as []any.
func (v *TupleValue) Native() any {
	native := make([]any, len(v.Items))
	for i, item := range v.Items {
		native[i] = item.Native()
	}
	return native
}

// ListValue is a homogeneous variable-length sequence. Nested it carries a
// 4-byte item count; at top level the part boundary delimits it.
type ListValue struct {
	Items []Codable

	newItem CodableFactory
}

// NewListValue creates an empty list whose items are created by newItem.
func NewListValue(newItem CodableFactory) *ListValue {
	return &ListValue{newItem: newItem}
}

func (v *ListValue) isValue() {}

// Clone returns a deep copy. The item factory is shared.
func (v *ListValue) Clone() Value {
	return &ListValue{Items: cloneCodables(v.Items), newItem: v.newItem}
}

func (v *ListValue) encodeNested(writer io.Writer) error {
	if err := encodeLength(writer, len(v.Items)); err != nil {
		return err
	}
	return v.encodeTopLevel(writer)
}

func (v *ListValue) encodeTopLevel(writer io.Writer) error {
	for i, item := range v.Items {
		if err := item.encodeNested(writer); err != nil {
			return encodeFieldError(indexSegment(i), err)
		}
	}
	return nil
}

func (v *ListValue) decodeNested(reader io.Reader) error {
	length, err := decodeLength(reader)
	if err != nil {
		return err
	}
	// Every item consumes at least one byte.
	if left, ok := remainingLen(reader); ok && length > left {
		return fmt.Errorf("%w: %d items, %d bytes left", ErrUnexpectedEnd, length, left)
	}
	reader, consumed := trackPosition(reader)
	items := make([]Codable, 0, min(length, 1024))
	for i := 0; i < length; i++ {
		item, err := v.createItem()
		if err != nil {
			return err
		}
		before := consumed()
		if err := item.decodeNested(reader); err != nil {
			return decodeFieldError(indexSegment(i), err)
		}
		if consumed() == before {
			return decodeFieldError(indexSegment(i), ErrNoProgress)
		}
		items = append(items, item)
	}
	v.Items = items
	return nil
}

func (v *ListValue) decodeTopLevel(data []byte) error {
	reader := bytes.NewReader(data)
	items := make([]Codable, 0)
	for i := 0; reader.Len() > 0; i++ {
		item, err := v.createItem()
		if err != nil {
			return err
		}
		before := reader.Len()
		if err := item.decodeNested(reader); err != nil {
			return decodeFieldError(indexSegment(i), err)
		}
		if reader.Len() == before {
			return decodeFieldError(indexSegment(i), ErrNoProgress)
		}
		items = append(items, item)
	}
	v.Items = items
	return nil
}

func (v *ListValue) createItem() (Codable, error) {
	if v.newItem == nil {
		return nil, ErrMissingItemFactory
	}
	return v.newItem(), nil
}

// SetNative accepts any slice; each element is imported into a fresh item.
func (v *ListValue) SetNative(native any) error {
	elements, ok := toAnySlice(native)
	if !ok {
		return &TypeMismatchError{Expected: "List", Got: typeName(native)}
	}
	items := make([]Codable, len(elements))
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
func (v *ListValue) Native() any {
	native := make([]any, len(v.Items))
	for i, item := range v.Items {
		native[i] = item.Native()
	}
	return native
}

// OptionValue is a presence flag and a payload. Value always holds a
// prototype of the payload type so that it can be decoded into.
type OptionValue struct {
	Value Codable
	IsSet bool
}

// NewOptionValue creates an absent option whose payload has the type of inner.
func NewOptionValue(inner Codable) *OptionValue {
	return &OptionValue{Value: inner}
}

func (v *OptionValue) isValue() {}

// Clone returns a deep copy of the option.
func (v *OptionValue) Clone() Value {
	return &OptionValue{Value: cloneCodable(v.Value), IsSet: v.IsSet}
}

func (v *OptionValue) encodeNested(writer io.Writer) error {
	if !v.IsSet {
		return writeBytes(writer, []byte{OptionAbsent})
	}
	if err := writeBytes(writer, []byte{OptionPresent}); err != nil {
		return err
	}
	return v.Value.encodeNested(writer)
}

func (v *OptionValue) encodeTopLevel(writer io.Writer) error {
	if !v.IsSet {
		return nil
	}
	return v.encodeNested(writer)
}

func (v *OptionValue) decodeNested(reader io.Reader) error {
	flag, err := readBytesExactly(reader, 1)
	if err != nil {
		return err
	}
	switch flag[0] {
	case OptionAbsent:
		v.IsSet = false
		return nil
	case OptionPresent:
		v.IsSet = true
		return v.Value.decodeNested(reader)
	default:
		return fmt.Errorf("%w: 0x%02x", ErrInvalidOptionFlag, flag[0])
	}
}

func (v *OptionValue) decodeTopLevel(data []byte) error {
	if len(data) == 0 {
		v.IsSet = false
		return nil
	}
	if data[0] != OptionPresent {
		return fmt.Errorf("%w: 0x%02x", ErrInvalidOptionFlag, data[0])
	}
	return decodeTopLevelNested(data, v)
}

// SetNative takes nil as absent; anything else is imported into the payload.
func (v *OptionValue) SetNative(native any) error {
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

// Native returns nil when absent, else the payload's native value.
func (v *OptionValue) Native() any {
	if !v.IsSet {
		return nil
	}
	return v.Value.Native()
}
