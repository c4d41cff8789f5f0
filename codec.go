package scabi

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Encoding constants.
const (
	// LengthPrefixSize is the size of the big-endian length prefix of
	// variable-length values in nested mode.
	LengthPrefixSize = 4

	// DiscriminantSize is the size of an enum discriminant.
	DiscriminantSize = 1

	// OptionAbsent marks a missing option payload.
	OptionAbsent = 0x00

	// OptionPresent marks a present option payload.
	OptionPresent = 0x01
)

// Codec applies the nested or top-level encoding mode to Codable values.
// It holds no state and is safe for concurrent use.
type Codec struct{}

// NewCodec creates a new codec.
func NewCodec() *Codec {
	return &Codec{}
}

// EncodeNested produces the nested (self-delimiting) encoding of value.
func (c *Codec) EncodeNested(value Codable) ([]byte, error) {
	if value == nil {
		return nil, ErrNilValue
	}
	var buf bytes.Buffer
	if err := value.encodeNested(&buf); err != nil {
		return nil, asEncodeError(err)
	}
	return buf.Bytes(), nil
}

// EncodeTopLevel produces the top-level encoding of value, bounded by its part.
func (c *Codec) EncodeTopLevel(value Codable) ([]byte, error) {
	if value == nil {
		return nil, ErrNilValue
	}
	var buf bytes.Buffer
	if err := value.encodeTopLevel(&buf); err != nil {
		return nil, asEncodeError(err)
	}
	return buf.Bytes(), nil
}

// DecodeNested populates value from its nested encoding. All of data must be consumed.
func (c *Codec) DecodeNested(data []byte, value Codable) error {
	if value == nil {
		return ErrNilValue
	}
	reader := bytes.NewReader(data)
	if err := value.decodeNested(reader); err != nil {
		return asDecodeError(err)
	}
	if reader.Len() > 0 {
		return &DecodeError{Err: ErrTrailingBytes}
	}
	return nil
}

// DecodeTopLevel populates value from a whole part.
func (c *Codec) DecodeTopLevel(data []byte, value Codable) error {
	if value == nil {
		return ErrNilValue
	}
	return asDecodeError(value.decodeTopLevel(data))
}

// decodeTopLevelNested decodes a top-level part whose form is the nested form
// bounded by the part, rejecting leftovers.
func decodeTopLevelNested(data []byte, value Codable) error {
	reader := bytes.NewReader(data)
	if err := value.decodeNested(reader); err != nil {
		return err
	}
	if reader.Len() > 0 {
		return ErrTrailingBytes
	}
	return nil
}

func writeBytes(writer io.Writer, data []byte) error {
	_, err := writer.Write(data)
	return err
}

func readBytesExactly(reader io.Reader, n int) ([]byte, error) {
	if n == 0 {
		return []byte{}, nil
	}
	data := make([]byte, n)
	if _, err := io.ReadFull(reader, data); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: wanted %d bytes", ErrUnexpectedEnd, n)
		}
		return nil, err
	}
	return data, nil
}

func encodeLength(writer io.Writer, length int) error {
	if length < 0 || uint64(length) > math.MaxUint32 {
		return fmt.Errorf("%w: length %d", ErrValueOutOfRange, length)
	}
	var prefix [LengthPrefixSize]byte
	binary.BigEndian.PutUint32(prefix[:], uint32(length))
	return writeBytes(writer, prefix[:])
}

func decodeLength(reader io.Reader) (int, error) {
	prefix, err := readBytesExactly(reader, LengthPrefixSize)
	if err != nil {
		return 0, err
	}
	length := uint64(binary.BigEndian.Uint32(prefix))
	if length > math.MaxInt {
		return 0, fmt.Errorf("%w: length %d", ErrValueOutOfRange, length)
	}
	return int(length), nil
}

// remainingLen reports how many bytes reader still holds, when it can tell.
func remainingLen(reader io.Reader) (int, bool) {
	if sized, ok := reader.(interface{ Len() int }); ok {
		return sized.Len(), true
	}
	return 0, false
}

// countingReader counts the bytes read through it.
type countingReader struct {
	io.Reader
	count int
}

func (r *countingReader) Read(p []byte) (int, error) {
	n, err := r.Reader.Read(p)
	r.count += n
	return n, err
}

// trackPosition returns a reader equivalent to reader and a function
// reporting how many bytes have been consumed through it so far.
func trackPosition(reader io.Reader) (io.Reader, func() int) {
	if start, ok := remainingLen(reader); ok {
		return reader, func() int {
			left, _ := remainingLen(reader)
			return start - left
		}
	}
	counting := &countingReader{Reader: reader}
	return counting, func() int { return counting.count }
}

// readLengthPrefixed reads a length prefix and then that many bytes. The
// length is checked against what the reader still holds before allocating.
func readLengthPrefixed(reader io.Reader) ([]byte, error) {
	length, err := decodeLength(reader)
	if err != nil {
		return nil, err
	}
	if left, ok := remainingLen(reader); ok && left < length {
		return nil, fmt.Errorf("%w: wanted %d bytes, have %d", ErrUnexpectedEnd, length, left)
	}
	return readBytesExactly(reader, length)
}

// Fixed-width integers: nested mode is big-endian on exactly width bytes,
// top-level mode drops redundant leading bytes (zero is the empty part).

func encodeUnsignedNested(writer io.Writer, value uint64, width int) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], value)
	return writeBytes(writer, buf[8-width:])
}

func encodeUnsignedTopLevel(writer io.Writer, value uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], value)
	return writeBytes(writer, common.TrimLeftZeroes(buf[:]))
}

func decodeUnsignedNested(reader io.Reader, width int) (uint64, error) {
	data, err := readBytesExactly(reader, width)
	if err != nil {
		return 0, err
	}
	return bigEndianUint(data), nil
}

func decodeUnsignedTopLevel(data []byte, width int) (uint64, error) {
	if len(data) > width {
		return 0, fmt.Errorf("%w: %d bytes for a %d-byte unsigned integer", ErrValueOutOfRange, len(data), width)
	}
	return bigEndianUint(data), nil
}

func encodeSignedNested(writer io.Writer, value int64, width int) error {
	return encodeUnsignedNested(writer, uint64(value), width)
}

func encodeSignedTopLevel(writer io.Writer, value int64) error {
	if value == 0 {
		return nil
	}
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(value))
	return writeBytes(writer, trimSignExtension(buf[:]))
}

func decodeSignedNested(reader io.Reader, width int) (int64, error) {
	data, err := readBytesExactly(reader, width)
	if err != nil {
		return 0, err
	}
	return signExtend(data), nil
}

func decodeSignedTopLevel(data []byte, width int) (int64, error) {
	if len(data) > width {
		return 0, fmt.Errorf("%w: %d bytes for a %d-byte signed integer", ErrValueOutOfRange, len(data), width)
	}
	return signExtend(data), nil
}

func bigEndianUint(data []byte) uint64 {
	var value uint64
	for _, b := range data {
		value = value<<8 | uint64(b)
	}
	return value
}

func signExtend(data []byte) int64 {
	if len(data) == 0 {
		return 0
	}
	shift := uint(64 - 8*len(data))
	return int64(bigEndianUint(data)<<shift) >> shift
}

// trimSignExtension removes leading 0x00 / 0xff bytes that only repeat the sign bit.
func trimSignExtension(data []byte) []byte {
	for len(data) > 1 {
		if data[0] == 0x00 && data[1]&0x80 == 0 {
			data = data[1:]
			continue
		}
		if data[0] == 0xff && data[1]&0x80 != 0 {
			data = data[1:]
			continue
		}
		break
	}
	return data
}

// bigIntToTwosComplement returns the minimal two's complement form of value.
// Zero is the empty sequence.
func bigIntToTwosComplement(value *big.Int) []byte {
	switch value.Sign() {
	case 0:
		return []byte{}
	case 1:
		data := value.Bytes()
		if data[0]&0x80 != 0 {
			return append([]byte{0x00}, data...)
		}
		return data
	}

	size := new(big.Int).Abs(value).BitLen()/8 + 1
	modulus := new(big.Int).Lsh(big.NewInt(1), uint(8*size))
	data := new(big.Int).Add(modulus, value).FillBytes(make([]byte, size))
	return trimSignExtension(data)
}

func twosComplementToBigInt(data []byte) *big.Int {
	value := new(big.Int).SetBytes(data)
	if len(data) > 0 && data[0]&0x80 != 0 {
		modulus := new(big.Int).Lsh(big.NewInt(1), uint(8*len(data)))
		value.Sub(value, modulus)
	}
	return value
}
