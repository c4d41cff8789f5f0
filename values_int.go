package scabi

import (
	"io"
	"unsafe"
)

type unsignedInteger interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

type signedInteger interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// byteWidth is the nested-mode width of T.
func byteWidth[T unsignedInteger | signedInteger]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

func encodeUintNested[T unsignedInteger](writer io.Writer, value T) error {
	return encodeUnsignedNested(writer, uint64(value), byteWidth[T]())
}

func decodeUintNested[T unsignedInteger](reader io.Reader, target *T) error {
	n, err := decodeUnsignedNested(reader, byteWidth[T]())
	if err != nil {
		return err
	}
	*target = T(n)
	return nil
}

func decodeUintTopLevel[T unsignedInteger](data []byte, target *T) error {
	n, err := decodeUnsignedTopLevel(data, byteWidth[T]())
	if err != nil {
		return err
	}
	*target = T(n)
	return nil
}

func setUintNative[T unsignedInteger](native any, target *T) error {
	n, err := nativeToUint(native, 8*byteWidth[T]())
	if err != nil {
		return err
	}
	*target = T(n)
	return nil
}

func encodeIntNested[T signedInteger](writer io.Writer, value T) error {
	return encodeSignedNested(writer, int64(value), byteWidth[T]())
}

func decodeIntNested[T signedInteger](reader io.Reader, target *T) error {
	n, err := decodeSignedNested(reader, byteWidth[T]())
	if err != nil {
		return err
	}
	*target = T(n)
	return nil
}

func decodeIntTopLevel[T signedInteger](data []byte, target *T) error {
	n, err := decodeSignedTopLevel(data, byteWidth[T]())
	if err != nil {
		return err
	}
	*target = T(n)
	return nil
}

func setIntNative[T signedInteger](native any, target *T) error {
	n, err := nativeToInt(native, 8*byteWidth[T]())
	if err != nil {
		return err
	}
	*target = T(n)
	return nil
}

// U8Value is an unsigned 8-bit integer.
type U8Value struct {
	Value uint8
}

func (v *U8Value) isValue() {}

// Clone returns a copy of the value.
func (v *U8Value) Clone() Value {
	c := *v
	return &c
}

func (v *U8Value) encodeNested(writer io.Writer) error {
	return encodeUintNested(writer, v.Value)
}

func (v *U8Value) encodeTopLevel(writer io.Writer) error {
	return encodeUnsignedTopLevel(writer, uint64(v.Value))
}

func (v *U8Value) decodeNested(reader io.Reader) error {
	return decodeUintNested(reader, &v.Value)
}

func (v *U8Value) decodeTopLevel(data []byte) error {
	return decodeUintTopLevel(data, &v.Value)
}

// SetNative accepts any Go integer, big integer or numeric string within range.
func (v *U8Value) SetNative(native any) error {
	return setUintNative(native, &v.Value)
}

// Native returns the value as uint8.
func (v *U8Value) Native() any {
	return v.Value
}

// U16Value is an unsigned 16-bit integer.
type U16Value struct {
	Value uint16
}

func (v *U16Value) isValue() {}

// Clone returns a copy of the value.
func (v *U16Value) Clone() Value {
	c := *v
	return &c
}

func (v *U16Value) encodeNested(writer io.Writer) error {
	return encodeUintNested(writer, v.Value)
}

func (v *U16Value) encodeTopLevel(writer io.Writer) error {
	return encodeUnsignedTopLevel(writer, uint64(v.Value))
}

func (v *U16Value) decodeNested(reader io.Reader) error {
	return decodeUintNested(reader, &v.Value)
}

func (v *U16Value) decodeTopLevel(data []byte) error {
	return decodeUintTopLevel(data, &v.Value)
}

// SetNative accepts any Go integer, big integer or numeric string within range.
func (v *U16Value) SetNative(native any) error {
	return setUintNative(native, &v.Value)
}

// Native returns the value as uint16.
func (v *U16Value) Native() any {
	return v.Value
}

// U32Value is an unsigned 32-bit integer.
type U32Value struct {
	Value uint32
}

func (v *U32Value) isValue() {}

// Clone returns a copy of the value.
func (v *U32Value) Clone() Value {
	c := *v
	return &c
}

func (v *U32Value) encodeNested(writer io.Writer) error {
	return encodeUintNested(writer, v.Value)
}

func (v *U32Value) encodeTopLevel(writer io.Writer) error {
	return encodeUnsignedTopLevel(writer, uint64(v.Value))
}

func (v *U32Value) decodeNested(reader io.Reader) error {
	return decodeUintNested(reader, &v.Value)
}

func (v *U32Value) decodeTopLevel(data []byte) error {
	return decodeUintTopLevel(data, &v.Value)
}

// SetNative accepts any Go integer, big integer or numeric string within range.
func (v *U32Value) SetNative(native any) error {
	return setUintNative(native, &v.Value)
}

// Native returns the value as uint32.
func (v *U32Value) Native() any {
	return v.Value
}

// U64Value is an unsigned 64-bit integer.
type U64Value struct {
	Value uint64
}

func (v *U64Value) isValue() {}

// Clone returns a copy of the value.
func (v *U64Value) Clone() Value {
	c := *v
	return &c
}

func (v *U64Value) encodeNested(writer io.Writer) error {
	return encodeUintNested(writer, v.Value)
}

func (v *U64Value) encodeTopLevel(writer io.Writer) error {
	return encodeUnsignedTopLevel(writer, uint64(v.Value))
}

func (v *U64Value) decodeNested(reader io.Reader) error {
	return decodeUintNested(reader, &v.Value)
}

func (v *U64Value) decodeTopLevel(data []byte) error {
	return decodeUintTopLevel(data, &v.Value)
}

// SetNative accepts any Go integer, big integer or numeric string within range.
func (v *U64Value) SetNative(native any) error {
	return setUintNative(native, &v.Value)
}

// Native returns the value as uint64.
func (v *U64Value) Native() any {
	return v.Value
}

// I8Value is a signed 8-bit integer. Its top-level form is the minimal
// two's complement encoding, so -1 is 0xff and zero is the empty part.
type I8Value struct {
	Value int8
}

func (v *I8Value) isValue() {}

// Clone returns a copy of the value.
func (v *I8Value) Clone() Value {
	c := *v
	return &c
}

func (v *I8Value) encodeNested(writer io.Writer) error {
	return encodeIntNested(writer, v.Value)
}

func (v *I8Value) encodeTopLevel(writer io.Writer) error {
	return encodeSignedTopLevel(writer, int64(v.Value))
}

func (v *I8Value) decodeNested(reader io.Reader) error {
	return decodeIntNested(reader, &v.Value)
}

func (v *I8Value) decodeTopLevel(data []byte) error {
	return decodeIntTopLevel(data, &v.Value)
}

// SetNative accepts any Go integer, big integer or numeric string within range.
func (v *I8Value) SetNative(native any) error {
	return setIntNative(native, &v.Value)
}

// Native returns the value as int8.
func (v *I8Value) Native() any {
	return v.Value
}

// I16Value is a signed 16-bit integer.
type I16Value struct {
	Value int16
}

func (v *I16Value) isValue() {}

// Clone returns a copy of the value.
func (v *I16Value) Clone() Value {
	c := *v
	return &c
}

func (v *I16Value) encodeNested(writer io.Writer) error {
	return encodeIntNested(writer, v.Value)
}

func (v *I16Value) encodeTopLevel(writer io.Writer) error {
	return encodeSignedTopLevel(writer, int64(v.Value))
}

func (v *I16Value) decodeNested(reader io.Reader) error {
	return decodeIntNested(reader, &v.Value)
}

func (v *I16Value) decodeTopLevel(data []byte) error {
	return decodeIntTopLevel(data, &v.Value)
}

// SetNative accepts any Go integer, big integer or numeric string within range.
func (v *I16Value) SetNative(native any) error {
	return setIntNative(native, &v.Value)
}

// Native returns the value as int16.
func (v *I16Value) Native() any {
	return v.Value
}

// I32Value is a signed 32-bit integer.
type I32Value struct {
	Value int32
}

func (v *I32Value) isValue() {}

// Clone returns a copy of the value.
func (v *I32Value) Clone() Value {
	c := *v
	return &c
}

func (v *I32Value) encodeNested(writer io.Writer) error {
	return encodeIntNested(writer, v.Value)
}

func (v *I32Value) encodeTopLevel(writer io.Writer) error {
	return encodeSignedTopLevel(writer, int64(v.Value))
}

func (v *I32Value) decodeNested(reader io.Reader) error {
	return decodeIntNested(reader, &v.Value)
}

func (v *I32Value) decodeTopLevel(data []byte) error {
	return decodeIntTopLevel(data, &v.Value)
}

// SetNative accepts any Go integer, big integer or numeric string within range.
func (v *I32Value) SetNative(native any) error {
	return setIntNative(native, &v.Value)
}

// Native returns the value as int32.
func (v *I32Value) Native() any {
	return v.Value
}

// I64Value is a signed 64-bit integer.
type I64Value struct {
	Value int64
}

func (v *I64Value) isValue() {}

// Clone returns a copy of the value.
func (v *I64Value) Clone() Value {
	c := *v
	return &c
}

func (v *I64Value) encodeNested(writer io.Writer) error {
	return encodeIntNested(writer, v.Value)
}

func (v *I64Value) encodeTopLevel(writer io.Writer) error {
	return encodeSignedTopLevel(writer, int64(v.Value))
}

func (v *I64Value) decodeNested(reader io.Reader) error {
	return decodeIntNested(reader, &v.Value)
}

func (v *I64Value) decodeTopLevel(data []byte) error {
	return decodeIntTopLevel(data, &v.Value)
}

// SetNative accepts any Go integer, big integer or numeric string within range.
func (v *I64Value) SetNative(native any) error {
	return setIntNative(native, &v.Value)
}

// Native returns the value as int64.
func (v *I64Value) Native() any {
	return v.Value
}
