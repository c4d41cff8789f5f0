package scabi

import (
	"encoding/hex"
	"fmt"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// DefaultPartsSeparator joins hex-encoded parts in contract-call data.
const DefaultPartsSeparator = "@"

// Serializer maps ordered lists of values onto ordered lists of parts and back.
// It follows the MultiversX serialization format:
// https://docs.multiversx.com/developers/data/serialization-overview
type Serializer struct {
	partsSeparator string
	codec          *Codec
}

// NewSerializer creates a serializer that joins textual parts with separator.
func NewSerializer(separator string) (*Serializer, error) {
	if separator == "" {
		return nil, ErrEmptySeparator
	}
	return &Serializer{
		partsSeparator: separator,
		codec:          NewCodec(),
	}, nil
}

// Codec returns the codec used for individual parts.
func (s *Serializer) Codec() *Codec {
	return s.codec
}

// Serialize encodes values and renders the parts as hex joined by the separator.
func (s *Serializer) Serialize(values []Value) (string, error) {
	parts, err := s.SerializeToParts(values)
	if err != nil {
		return "", err
	}
	return s.encodeParts(parts), nil
}

// SerializeToParts encodes values into parts. Nothing is returned on failure.
func (s *Serializer) SerializeToParts(values []Value) ([][]byte, error) {
	return s.serializeToParts(values, Input)
}

// serializeToParts is SerializeToParts with errors reported against direction.
func (s *Serializer) serializeToParts(values []Value, direction Direction) ([][]byte, error) {
	holder := NewPartsHolder(nil)
	if err := s.doSerialize(holder, values, direction); err != nil {
		return nil, err
	}
	return holder.Parts(), nil
}

func (s *Serializer) doSerialize(holder *PartsHolder, values []Value, direction Direction) error {
	for i, value := range values {
		last := i == len(values)-1
		if isNilValue(value) {
			return &ParameterError{Direction: direction, Index: i, Err: ErrNilValue}
		}

		switch v := value.(type) {
		case *OptionalValue:
			// Several optional values would be ambiguous on the wire.
			if !last {
				return &ParameterError{Direction: direction, Index: i, Err: ErrOptionalNotLast}
			}
			if !v.IsSet {
				continue
			}
			if err := s.doSerialize(holder, []Value{v.Value}, direction); err != nil {
				return err
			}
		case *MultiValue:
			for _, item := range v.Items {
				if err := s.doSerialize(holder, []Value{item}, direction); err != nil {
					return err
				}
			}
		case *VariadicValues:
			if !last {
				return &ParameterError{Direction: direction, Index: i, Err: ErrVariadicNotLast}
			}
			for _, item := range v.Items {
				if err := s.doSerialize(holder, []Value{item}, direction); err != nil {
					return err
				}
			}
		case Codable:
			holder.AppendEmptyPart()
			data, err := s.codec.EncodeTopLevel(v)
			if err != nil {
				return err
			}
			if err := holder.AppendToLastPart(data); err != nil {
				return err
			}
		default:
			return &TypeMismatchError{Expected: "codable or multi-value", Got: typeName(value)}
		}
	}
	return nil
}

// Deserialize splits data on the separator, hex-decodes each part and decodes
// them into outputValues.
func (s *Serializer) Deserialize(data string, outputValues []Value) error {
	parts, err := s.decodeIntoParts(data)
	if err != nil {
		return err
	}
	return s.DeserializeParts(parts, outputValues)
}

// DeserializeParts decodes parts into the given (blank) output values in place.
func (s *Serializer) DeserializeParts(parts [][]byte, outputValues []Value) error {
	holder := NewPartsHolder(parts)
	return s.doDeserialize(holder, outputValues)
}

func (s *Serializer) doDeserialize(holder *PartsHolder, values []Value) error {
	for i, value := range values {
		last := i == len(values)-1
		if isNilValue(value) {
			return &ParameterError{Direction: Output, Index: i, Err: ErrNilValue}
		}

		switch v := value.(type) {
		case *OptionalValue:
			if !last {
				return &ParameterError{Direction: Output, Index: i, Err: ErrOptionalNotLast}
			}
			if holder.IsFocusedBeyondLastPart() {
				v.IsSet = false
				continue
			}
			if err := s.doDeserialize(holder, []Value{v.Value}); err != nil {
				return err
			}
			v.IsSet = true
		case *MultiValue:
			for _, item := range v.Items {
				if err := s.doDeserialize(holder, []Value{item}); err != nil {
					return err
				}
			}
		case *VariadicValues:
			if !last {
				return &ParameterError{Direction: Output, Index: i, Err: ErrVariadicNotLast}
			}
			if err := s.deserializeVariadic(holder, v); err != nil {
				return err
			}
		case Codable:
			if err := s.deserializeDirectlyDecodable(holder, v); err != nil {
				return err
			}
		default:
			return &TypeMismatchError{Expected: "codable or multi-value", Got: typeName(value)}
		}
	}
	return nil
}

func (s *Serializer) deserializeVariadic(holder *PartsHolder, value *VariadicValues) error {
	items := make([]Value, 0, holder.NumParts()-holder.FocusedPartIndex())
	for !holder.IsFocusedBeyondLastPart() {
		item, err := value.createItem()
		if err != nil {
			return err
		}
		before := holder.FocusedPartIndex()
		if err := s.doDeserialize(holder, []Value{item}); err != nil {
			return err
		}
		if holder.FocusedPartIndex() == before {
			return &DecodeError{Path: []string{partSegment(before)}, Err: ErrNoProgress}
		}
		items = append(items, item)
	}
	value.Items = items
	return nil
}

func (s *Serializer) deserializeDirectlyDecodable(holder *PartsHolder, value Codable) error {
	index := holder.FocusedPartIndex()
	part, err := holder.ReadWholeFocusedPart()
	if err != nil {
		return &DecodeError{Path: []string{partSegment(index)}, Err: err}
	}
	if err := s.codec.DecodeTopLevel(part, value); err != nil {
		return decodeFieldError(partSegment(index), err)
	}
	return holder.FocusOnNextPart()
}

func (s *Serializer) encodeParts(parts [][]byte) string {
	encoded := make([]string, len(parts))
	for i, part := range parts {
		encoded[i] = common.Bytes2Hex(part)
	}
	return strings.Join(encoded, s.partsSeparator)
}

func (s *Serializer) decodeIntoParts(data string) ([][]byte, error) {
	encoded := strings.Split(data, s.partsSeparator)
	parts := make([][]byte, len(encoded))
	for i, part := range encoded {
		decoded, err := hex.DecodeString(part)
		if err != nil {
			return nil, &DecodeError{Path: []string{partSegment(i)}, Err: err}
		}
		parts[i] = decoded
	}
	return parts, nil
}

// isNilValue catches both nil interfaces and typed nil pointers.
func isNilValue(value Value) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func partSegment(index int) string {
	return fmt.Sprintf("part %d", index)
}
