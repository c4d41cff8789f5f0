package scabi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const aliceHex = "0139472eff6886771a982f3083da5d421f24c29181e63888228dc81ca60d69e1"

func TestAddressFromBech32(t *testing.T) {
	address, hrp, err := AddressFromBech32(aliceBech32)
	require.NoError(t, err)
	assert.Equal(t, DefaultHRP, hrp)
	assert.Equal(t, aliceHex, address.Hex())
	assert.Equal(t, aliceBech32, address.String())

	encoded, err := address.Bech32(DefaultHRP)
	require.NoError(t, err)
	assert.Equal(t, aliceBech32, encoded)
}

func TestAddressFromHex(t *testing.T) {
	address, err := AddressFromHex(aliceHex)
	require.NoError(t, err)
	assert.Equal(t, aliceBech32, address.String())

	_, err = AddressFromHex("0139")
	assert.ErrorIs(t, err, ErrInvalidAddress)

	_, err = AddressFromHex("zz")
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestParseAddress(t *testing.T) {
	fromBech32, err := ParseAddress(aliceBech32)
	require.NoError(t, err)
	fromHex, err := ParseAddress(aliceHex)
	require.NoError(t, err)
	assert.Equal(t, fromBech32, fromHex)

	for _, invalid := range []string{"", "erd1", "not an address", aliceBech32[:len(aliceBech32)-1] + "x"} {
		_, err := ParseAddress(invalid)
		assert.ErrorIs(t, err, ErrInvalidAddress, invalid)
	}
}

func TestNewAddress(t *testing.T) {
	_, err := NewAddress(make([]byte, 31))
	assert.ErrorIs(t, err, ErrInvalidAddress)

	address, err := NewAddress(make([]byte, AddressLength))
	require.NoError(t, err)
	assert.Equal(t, Address{}, address)
}

func TestAddressIsSmartContract(t *testing.T) {
	alice, err := AddressFromHex(aliceHex)
	require.NoError(t, err)
	assert.False(t, alice.IsSmartContract())

	contract := Address{8: 0x05, 31: 0x01}
	assert.True(t, contract.IsSmartContract())
}

func TestAddressValue(t *testing.T) {
	codec := NewCodec()
	alice, err := AddressFromHex(aliceHex)
	require.NoError(t, err)

	for _, native := range []any{alice, &alice, [AddressLength]byte(alice), alice[:], aliceBech32, aliceHex} {
		value := &AddressValue{}
		require.NoError(t, value.SetNative(native))
		assert.Equal(t, alice, value.Native())

		nested, err := codec.EncodeNested(value)
		require.NoError(t, err)
		assert.Equal(t, alice[:], nested)
	}

	err = (&AddressValue{}).SetNative(42)
	var mismatch *TypeMismatchError
	assert.ErrorAs(t, err, &mismatch)

	err = codec.DecodeTopLevel(make([]byte, 31), &AddressValue{})
	assert.ErrorIs(t, err, ErrInvalidAddress)

	err = codec.DecodeNested(make([]byte, 31), &AddressValue{})
	assert.ErrorIs(t, err, ErrUnexpectedEnd)
}
