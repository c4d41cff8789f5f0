package scabi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSerializer(t *testing.T) *Serializer {
	t.Helper()
	serializer, err := NewSerializer(DefaultPartsSeparator)
	require.NoError(t, err)
	return serializer
}

func u8Factory() Value {
	return &U8Value{}
}

func TestNewSerializer(t *testing.T) {
	_, err := NewSerializer("")
	assert.ErrorIs(t, err, ErrEmptySeparator)

	serializer, err := NewSerializer("|")
	require.NoError(t, err)
	assert.NotNil(t, serializer.Codec())

	data, err := serializer.Serialize([]Value{&U8Value{Value: 1}, &U8Value{Value: 2}})
	require.NoError(t, err)
	assert.Equal(t, "01|02", data)
}

func TestSerialize(t *testing.T) {
	serializer := newTestSerializer(t)

	variadicMulti := NewVariadicValues(func() Value {
		return NewMultiValue(&U8Value{}, &StringValue{})
	})
	require.NoError(t, variadicMulti.SetNative([][]any{{1, "a"}, {2, "b"}}))

	presentOptional := NewOptionalValue(&U32Value{})
	require.NoError(t, presentOptional.SetNative(5))

	variadic := NewVariadicValues(u8Factory)
	require.NoError(t, variadic.SetNative([]int{1, 2, 3}))

	tests := []struct {
		name   string
		values []Value
		want   string
	}{
		{
			name:   "no values",
			values: []Value{},
			want:   "",
		},
		{
			name:   "single u32",
			values: []Value{&U32Value{Value: 7}},
			want:   "07",
		},
		{
			name:   "u32 and string",
			values: []Value{&U32Value{Value: 7}, &StringValue{Value: "abc"}},
			want:   "07@616263",
		},
		{
			name:   "zero is an empty part",
			values: []Value{&U8Value{}, &U8Value{Value: 1}},
			want:   "@01",
		},
		{
			name:   "optional absent",
			values: []Value{&U32Value{Value: 7}, NewOptionalValue(&U32Value{})},
			want:   "07",
		},
		{
			name:   "optional present",
			values: []Value{&U32Value{Value: 7}, presentOptional},
			want:   "07@05",
		},
		{
			name:   "variadic",
			values: []Value{variadic},
			want:   "01@02@03",
		},
		{
			name:   "empty variadic",
			values: []Value{&U8Value{Value: 9}, NewVariadicValues(u8Factory)},
			want:   "09",
		},
		{
			name:   "multi expands inline",
			values: []Value{NewMultiValue(&U8Value{Value: 1}, &StringValue{Value: "a"}), &U32Value{Value: 2}},
			want:   "01@61@02",
		},
		{
			name:   "variadic of multi",
			values: []Value{variadicMulti},
			want:   "01@61@02@62",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := serializer.Serialize(tt.values)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSerializeToParts(t *testing.T) {
	serializer := newTestSerializer(t)

	parts, err := serializer.SerializeToParts([]Value{&BoolValue{}, &BoolValue{Value: true}})
	require.NoError(t, err)
	assert.Equal(t, [][]byte{{}, {0x01}}, parts)

	parts, err = serializer.SerializeToParts(nil)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{}, parts)
}

func TestSerializeOrderingErrors(t *testing.T) {
	serializer := newTestSerializer(t)

	tests := []struct {
		name   string
		values []Value
		want   error
		index  int
	}{
		{
			name:   "optional not last",
			values: []Value{NewOptionalValue(&U8Value{}), &U8Value{}},
			want:   ErrOptionalNotLast,
			index:  0,
		},
		{
			name:   "variadic not last",
			values: []Value{&U8Value{}, NewVariadicValues(u8Factory), &U8Value{}},
			want:   ErrVariadicNotLast,
			index:  1,
		},
		{
			name:   "nil value",
			values: []Value{&U8Value{}, nil},
			want:   ErrNilValue,
			index:  1,
		},
		{
			name:   "typed nil value",
			values: []Value{(*U32Value)(nil)},
			want:   ErrNilValue,
			index:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := serializer.Serialize(tt.values)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var paramErr *ParameterError
			require.True(t, errors.As(err, &paramErr))
			assert.Equal(t, Input, paramErr.Direction)
			assert.Equal(t, tt.index, paramErr.Index)

			_, err = serializer.serializeToParts(tt.values, Output)
			require.True(t, errors.As(err, &paramErr))
			assert.Equal(t, Output, paramErr.Direction)
			assert.Equal(t, tt.index, paramErr.Index)
			assert.Contains(t, err.Error(), "output value")

			err = serializer.DeserializeParts([][]byte{{0x01}, {0x02}, {0x03}}, tt.values)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDeserialize(t *testing.T) {
	serializer := newTestSerializer(t)

	t.Run("u32 and string", func(t *testing.T) {
		number, text := &U32Value{}, &StringValue{}
		require.NoError(t, serializer.Deserialize("07@616263", []Value{number, text}))
		assert.Equal(t, uint32(7), number.Value)
		assert.Equal(t, "abc", text.Value)
	})

	t.Run("empty data is one empty part", func(t *testing.T) {
		number := &U32Value{Value: 99}
		require.NoError(t, serializer.Deserialize("", []Value{number}))
		assert.Equal(t, uint32(0), number.Value)
	})

	t.Run("leftover parts are ignored", func(t *testing.T) {
		number := &U32Value{}
		require.NoError(t, serializer.Deserialize("07@08", []Value{number}))
		assert.Equal(t, uint32(7), number.Value)
	})

	t.Run("optional absent", func(t *testing.T) {
		optional := NewOptionalValue(&U32Value{})
		optional.IsSet = true
		require.NoError(t, serializer.Deserialize("07", []Value{&U32Value{}, optional}))
		assert.False(t, optional.IsSet)
		assert.Nil(t, optional.Native())
	})

	t.Run("optional present", func(t *testing.T) {
		optional := NewOptionalValue(&U32Value{})
		require.NoError(t, serializer.Deserialize("07@05", []Value{&U32Value{}, optional}))
		assert.True(t, optional.IsSet)
		assert.Equal(t, uint32(5), optional.Native())
	})

	t.Run("variadic consumes remaining parts", func(t *testing.T) {
		variadic := NewVariadicValues(u8Factory)
		require.NoError(t, serializer.Deserialize("09@01@02@03", []Value{&U8Value{}, variadic}))
		assert.Equal(t, []any{uint8(1), uint8(2), uint8(3)}, variadic.Native())
	})

	t.Run("variadic with nothing left", func(t *testing.T) {
		variadic := NewVariadicValues(u8Factory)
		require.NoError(t, serializer.DeserializeParts([][]byte{{0x09}}, []Value{&U8Value{}, variadic}))
		assert.Equal(t, []any{}, variadic.Native())
	})

	t.Run("variadic of multi", func(t *testing.T) {
		variadic := NewVariadicValues(func() Value {
			return NewMultiValue(&U8Value{}, &StringValue{})
		})
		require.NoError(t, serializer.Deserialize("01@61@02@62", []Value{variadic}))
		assert.Equal(t, []any{
			[]any{uint8(1), "a"},
			[]any{uint8(2), "b"},
		}, variadic.Native())
	})

	t.Run("variadic of multi with a short group", func(t *testing.T) {
		variadic := NewVariadicValues(func() Value {
			return NewMultiValue(&U8Value{}, &StringValue{})
		})
		err := serializer.Deserialize("01@61@02", []Value{variadic})
		assert.ErrorIs(t, err, ErrMissingPart)
	})

	t.Run("variadic items that consume nothing", func(t *testing.T) {
		variadic := NewVariadicValues(func() Value { return NewMultiValue() })
		err := serializer.Deserialize("01", []Value{variadic})
		assert.ErrorIs(t, err, ErrNoProgress)
	})

	t.Run("variadic without factory", func(t *testing.T) {
		err := serializer.Deserialize("01", []Value{&VariadicValues{}})
		assert.ErrorIs(t, err, ErrMissingItemFactory)
	})

	t.Run("multi", func(t *testing.T) {
		multi := NewMultiValue(&U8Value{}, &StringValue{})
		number := &U32Value{}
		require.NoError(t, serializer.Deserialize("01@61@02", []Value{multi, number}))
		assert.Equal(t, []any{uint8(1), "a"}, multi.Native())
		assert.Equal(t, uint32(2), number.Value)
	})

	t.Run("missing part", func(t *testing.T) {
		err := serializer.Deserialize("07", []Value{&U32Value{}, &U32Value{}})
		assert.ErrorIs(t, err, ErrMissingPart)

		var decodeErr *DecodeError
		require.True(t, errors.As(err, &decodeErr))
		assert.Equal(t, []string{"part 1"}, decodeErr.Path)
	})

	t.Run("invalid hex", func(t *testing.T) {
		err := serializer.Deserialize("07@zz", []Value{&U32Value{}, &U32Value{}})
		var decodeErr *DecodeError
		require.True(t, errors.As(err, &decodeErr))
		assert.Equal(t, []string{"part 1"}, decodeErr.Path)
	})

	t.Run("decode failure names the part", func(t *testing.T) {
		err := serializer.Deserialize("07@fffe", []Value{&U32Value{}, &StringValue{}})
		assert.ErrorIs(t, err, ErrInvalidUTF8)

		var decodeErr *DecodeError
		require.True(t, errors.As(err, &decodeErr))
		assert.Equal(t, []string{"part 1"}, decodeErr.Path)
	})

	t.Run("value too wide for its type", func(t *testing.T) {
		err := serializer.Deserialize("0100", []Value{&U8Value{}})
		assert.ErrorIs(t, err, ErrValueOutOfRange)
	})
}

func TestSerializeRoundTrip(t *testing.T) {
	serializer := newTestSerializer(t)

	list := NewListValue(PrototypeFactory(&U16Value{}))
	require.NoError(t, list.SetNative([]uint16{10, 20}))

	option := NewOptionValue(&StringValue{})
	require.NoError(t, option.SetNative("x"))

	values := []Value{
		&BoolValue{Value: true},
		&I32Value{Value: -5},
		list,
		option,
		&StructValue{Fields: []Field{{Name: "n", Value: &U64Value{Value: 42}}}},
	}

	data, err := serializer.Serialize(values)
	require.NoError(t, err)

	decoded := []Value{
		&BoolValue{},
		&I32Value{},
		NewListValue(PrototypeFactory(&U16Value{})),
		NewOptionValue(&StringValue{}),
		&StructValue{Fields: []Field{{Name: "n", Value: &U64Value{}}}},
	}
	require.NoError(t, serializer.Deserialize(data, decoded))

	for i := range values {
		assert.Equal(t, values[i].Native(), decoded[i].Native(), "value %d", i)
	}
}
