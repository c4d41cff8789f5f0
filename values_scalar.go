package scabi

import (
	"fmt"
	"io"
	"math/big"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// BoolValue is a boolean. Nested it is one byte; at top level false is the empty part.
type BoolValue struct {
	Value bool
}

func (v *BoolValue) isValue() {}

// Clone returns a copy of the value.
func (v *BoolValue) Clone() Value {
	c := *v
	return &c
}

func (v *BoolValue) encodeNested(writer io.Writer) error {
	if v.Value {
		return writeBytes(writer, []byte{0x01})
	}
	return writeBytes(writer, []byte{0x00})
}

func (v *BoolValue) encodeTopLevel(writer io.Writer) error {
	if v.Value {
		return writeBytes(writer, []byte{0x01})
	}
	return nil
}

func (v *BoolValue) decodeNested(reader io.Reader) error {
	data, err := readBytesExactly(reader, 1)
	if err != nil {
		return err
	}
	return v.decodeByte(data[0])
}

func (v *BoolValue) decodeTopLevel(data []byte) error {
	switch len(data) {
	case 0:
		v.Value = false
		return nil
	case 1:
		return v.decodeByte(data[0])
	default:
		return fmt.Errorf("%w: %d bytes", ErrInvalidBool, len(data))
	}
}

func (v *BoolValue) decodeByte(b byte) error {
	switch b {
	case 0x00:
		v.Value = false
	case 0x01:
		v.Value = true
	default:
		return fmt.Errorf("%w: 0x%02x", ErrInvalidBool, b)
	}
	return nil
}

// SetNative accepts a bool.
func (v *BoolValue) SetNative(native any) error {
	b, ok := native.(bool)
	if !ok {
		return &TypeMismatchError{Expected: "bool", Got: typeName(native)}
	}
	v.Value = b
	return nil
}

// Native returns the value as bool.
func (v *BoolValue) Native() any {
	return v.Value
}

// BigUIntValue is an arbitrary-precision unsigned integer.
// Top-level it is the minimal big-endian magnitude; nested it is length-prefixed.
type BigUIntValue struct {
	Value *big.Int
}

// NewBigUIntValue creates a BigUIntValue holding zero.
func NewBigUIntValue() *BigUIntValue {
	return &BigUIntValue{Value: new(big.Int)}
}

func (v *BigUIntValue) isValue() {}

// Clone returns a deep copy of the value.
func (v *BigUIntValue) Clone() Value {
	return &BigUIntValue{Value: new(big.Int).Set(v.value())}
}

func (v *BigUIntValue) value() *big.Int {
	if v.Value == nil {
		return new(big.Int)
	}
	return v.Value
}

func (v *BigUIntValue) magnitude() ([]byte, error) {
	value := v.value()
	if value.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative BigUint %s", ErrValueOutOfRange, value)
	}
	return value.Bytes(), nil
}

func (v *BigUIntValue) encodeNested(writer io.Writer) error {
	data, err := v.magnitude()
	if err != nil {
		return err
	}
	if err := encodeLength(writer, len(data)); err != nil {
		return err
	}
	return writeBytes(writer, data)
}

func (v *BigUIntValue) encodeTopLevel(writer io.Writer) error {
	data, err := v.magnitude()
	if err != nil {
		return err
	}
	return writeBytes(writer, data)
}

func (v *BigUIntValue) decodeNested(reader io.Reader) error {
	data, err := readLengthPrefixed(reader)
	if err != nil {
		return err
	}
	v.Value = new(big.Int).SetBytes(data)
	return nil
}

func (v *BigUIntValue) decodeTopLevel(data []byte) error {
	v.Value = new(big.Int).SetBytes(data)
	return nil
}

// SetNative accepts any non-negative Go integer, *big.Int, *uint256.Int,
// hexutil.Big or numeric string.
func (v *BigUIntValue) SetNative(native any) error {
	value, ok := nativeToBig(native)
	if !ok {
		return &TypeMismatchError{Expected: "BigUint", Got: typeName(native)}
	}
	if value.Sign() < 0 {
		return fmt.Errorf("%w: negative BigUint %s", ErrValueOutOfRange, value)
	}
	v.Value = value
	return nil
}

// Native returns a copy of the value as *big.Int.
func (v *BigUIntValue) Native() any {
	return new(big.Int).Set(v.value())
}

// BigIntValue is an arbitrary-precision signed integer in minimal two's complement form.
type BigIntValue struct {
	Value *big.Int
}

// NewBigIntValue creates a BigIntValue holding zero.
func NewBigIntValue() *BigIntValue {
	return &BigIntValue{Value: new(big.Int)}
}

func (v *BigIntValue) isValue() {}

// Clone returns a deep copy of the value.
func (v *BigIntValue) Clone() Value {
	return &BigIntValue{Value: new(big.Int).Set(v.value())}
}

func (v *BigIntValue) value() *big.Int {
	if v.Value == nil {
		return new(big.Int)
	}
	return v.Value
}

func (v *BigIntValue) encodeNested(writer io.Writer) error {
	data := bigIntToTwosComplement(v.value())
	if err := encodeLength(writer, len(data)); err != nil {
		return err
	}
	return writeBytes(writer, data)
}

func (v *BigIntValue) encodeTopLevel(writer io.Writer) error {
	return writeBytes(writer, bigIntToTwosComplement(v.value()))
}

func (v *BigIntValue) decodeNested(reader io.Reader) error {
	data, err := readLengthPrefixed(reader)
	if err != nil {
		return err
	}
	v.Value = twosComplementToBigInt(data)
	return nil
}

func (v *BigIntValue) decodeTopLevel(data []byte) error {
	v.Value = twosComplementToBigInt(data)
	return nil
}

// SetNative accepts any Go integer, *big.Int, *uint256.Int, hexutil.Big or
// numeric string.
func (v *BigIntValue) SetNative(native any) error {
	value, ok := nativeToBig(native)
	if !ok {
		return &TypeMismatchError{Expected: "BigInt", Got: typeName(native)}
	}
	v.Value = value
	return nil
}

// Native returns a copy of the value as *big.Int.
func (v *BigIntValue) Native() any {
	return new(big.Int).Set(v.value())
}

// BytesValue is a raw byte sequence.
type BytesValue struct {
	Value []byte
}

func (v *BytesValue) isValue() {}

// Clone returns a deep copy of the value.
func (v *BytesValue) Clone() Value {
	return &BytesValue{Value: common.CopyBytes(v.Value)}
}

func (v *BytesValue) encodeNested(writer io.Writer) error {
	if err := encodeLength(writer, len(v.Value)); err != nil {
		return err
	}
	return writeBytes(writer, v.Value)
}

func (v *BytesValue) encodeTopLevel(writer io.Writer) error {
	return writeBytes(writer, v.Value)
}

func (v *BytesValue) decodeNested(reader io.Reader) error {
	data, err := readLengthPrefixed(reader)
	if err != nil {
		return err
	}
	v.Value = data
	return nil
}

func (v *BytesValue) decodeTopLevel(data []byte) error {
	v.Value = common.CopyBytes(data)
	if v.Value == nil {
		v.Value = []byte{}
	}
	return nil
}

// SetNative accepts []byte, hexutil.Bytes or a string (taken as raw bytes).
func (v *BytesValue) SetNative(native any) error {
	switch b := native.(type) {
	case []byte:
		v.Value = common.CopyBytes(b)
	case hexutil.Bytes:
		v.Value = common.CopyBytes(b)
	case string:
		v.Value = []byte(b)
	default:
		return &TypeMismatchError{Expected: "bytes", Got: typeName(native)}
	}
	return nil
}

// Native returns a copy of the bytes.
func (v *BytesValue) Native() any {
	if v.Value == nil {
		return []byte{}
	}
	return common.CopyBytes(v.Value)
}

// StringValue is a UTF-8 string.
type StringValue struct {
	Value string
}

func (v *StringValue) isValue() {}

// Clone returns a copy of the string value.
func (v *StringValue) Clone() Value {
	c := *v
	return &c
}

func (v *StringValue) encodeNested(writer io.Writer) error {
	if !utf8.ValidString(v.Value) {
		return ErrInvalidUTF8
	}
	if err := encodeLength(writer, len(v.Value)); err != nil {
		return err
	}
	return writeBytes(writer, []byte(v.Value))
}

func (v *StringValue) encodeTopLevel(writer io.Writer) error {
	if !utf8.ValidString(v.Value) {
		return ErrInvalidUTF8
	}
	return writeBytes(writer, []byte(v.Value))
}

func (v *StringValue) decodeNested(reader io.Reader) error {
	data, err := readLengthPrefixed(reader)
	if err != nil {
		return err
	}
	return v.decodeTopLevel(data)
}

func (v *StringValue) decodeTopLevel(data []byte) error {
	if !utf8.Valid(data) {
		return ErrInvalidUTF8
	}
	v.Value = string(data)
	return nil
}

// SetNative accepts a UTF-8 string or []byte.
func (v *StringValue) SetNative(native any) error {
	switch s := native.(type) {
	case string:
		if !utf8.ValidString(s) {
			return ErrInvalidUTF8
		}
		v.Value = s
	case []byte:
		if !utf8.Valid(s) {
			return ErrInvalidUTF8
		}
		v.Value = string(s)
	default:
		return &TypeMismatchError{Expected: "string", Got: typeName(native)}
	}
	return nil
}

// Native returns the value as string.
func (v *StringValue) Native() any {
	return v.Value
}

// AddressValue is a 32-byte account public key. Both modes write the raw 32 bytes.
type AddressValue struct {
	Value Address
}

func (v *AddressValue) isValue() {}

// Clone returns a copy of the value.
func (v *AddressValue) Clone() Value {
	c := *v
	return &c
}

func (v *AddressValue) encodeNested(writer io.Writer) error {
	return writeBytes(writer, v.Value[:])
}

func (v *AddressValue) encodeTopLevel(writer io.Writer) error {
	return v.encodeNested(writer)
}

func (v *AddressValue) decodeNested(reader io.Reader) error {
	data, err := readBytesExactly(reader, AddressLength)
	if err != nil {
		return err
	}
	copy(v.Value[:], data)
	return nil
}

func (v *AddressValue) decodeTopLevel(data []byte) error {
	address, err := NewAddress(data)
	if err != nil {
		return err
	}
	v.Value = address
	return nil
}

// SetNative accepts an Address, a [32]byte, a 32-byte slice, or a bech32 or hex string.
func (v *AddressValue) SetNative(native any) error {
	var (
		address Address
		err     error
	)
	switch a := native.(type) {
	case Address:
		address = a
	case *Address:
		if a == nil {
			return &TypeMismatchError{Expected: "Address", Got: "nil"}
		}
		address = *a
	case [AddressLength]byte:
		address = Address(a)
	case []byte:
		address, err = NewAddress(a)
	case string:
		address, err = ParseAddress(a)
	default:
		return &TypeMismatchError{Expected: "Address", Got: typeName(native)}
	}
	if err != nil {
		return err
	}
	v.Value = address
	return nil
}

// Native returns the value as Address.
func (v *AddressValue) Native() any {
	return v.Value
}
