package scabi

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

const (
	// AddressLength is the size of an account public key.
	AddressLength = 32

	// DefaultHRP is the human-readable part of mainnet bech32 addresses.
	DefaultHRP = "erd"

	// smartContractPrefixLength is the number of leading zero bytes of contract addresses.
	smartContractPrefixLength = 8
)

// Address is a 32-byte account public key.
type Address [AddressLength]byte

// NewAddress creates an Address from a 32-byte public key.
func NewAddress(pubkey []byte) (Address, error) {
	var address Address
	if len(pubkey) != AddressLength {
		return address, fmt.Errorf("%w: public key has invalid length %d", ErrInvalidAddress, len(pubkey))
	}
	copy(address[:], pubkey)
	return address, nil
}

// AddressFromHex creates an Address from its 64-character hex form.
func AddressFromHex(value string) (Address, error) {
	pubkey, err := hex.DecodeString(value)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	return NewAddress(pubkey)
}

// AddressFromBech32 decodes a bech32 address, returning its human-readable part too.
func AddressFromBech32(value string) (Address, string, error) {
	hrp, data, err := bech32.Decode(value)
	if err != nil {
		return Address{}, "", fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	pubkey, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return Address{}, "", fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	address, err := NewAddress(pubkey)
	if err != nil {
		return Address{}, "", err
	}
	return address, hrp, nil
}

// ParseAddress accepts either a bech32 address or a 64-character hex public key.
func ParseAddress(value string) (Address, error) {
	if len(value) == 2*AddressLength {
		if address, err := AddressFromHex(value); err == nil {
			return address, nil
		}
	}
	address, _, err := AddressFromBech32(value)
	return address, err
}

// Bech32 encodes the address with the given human-readable part.
func (a Address) Bech32(hrp string) (string, error) {
	data, err := bech32.ConvertBits(a[:], 8, 5, true)
	if err != nil {
		return "", err
	}
	return bech32.Encode(hrp, data)
}

// Hex returns the public key as lowercase hex without prefix.
func (a Address) Hex() string {
	return hex.EncodeToString(a[:])
}

// IsSmartContract reports whether the address belongs to a contract.
func (a Address) IsSmartContract() bool {
	return bytes.Equal(a[:smartContractPrefixLength], make([]byte, smartContractPrefixLength))
}

// String returns the bech32 form with the default human-readable part.
func (a Address) String() string {
	encoded, err := a.Bech32(DefaultHRP)
	if err != nil {
		return a.Hex()
	}
	return encoded
}
