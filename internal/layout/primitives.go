// Package layout reads fixed-offset binary account records.
package layout

import (
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

// AddressLength is the width of an on-chain public key.
const AddressLength = 32

var (
	// ErrOutOfRange is returned when a read would pass the end of the buffer.
	ErrOutOfRange = errors.New("read out of range")
	// ErrInvalidBool is returned for a bool byte other than 0 or 1.
	ErrInvalidBool = errors.New("invalid bool byte")
)

func checkRange(buf []byte, offset, width int) error {
	if offset < 0 || width < 0 || offset > len(buf)-width {
		return fmt.Errorf("%w: offset %d width %d length %d", ErrOutOfRange, offset, width, len(buf))
	}
	return nil
}

// ReadUint64LE decodes the unsigned little-endian 64-bit integer at offset.
//
// The result equals hi*2^32 + lo for the 32-bit words at offset+4 and offset.
// uint64 holds the full range, so no precision is lost here; callers that
// convert to float64 are exact only up to 2^53.
func ReadUint64LE(buf []byte, offset int) (uint64, error) {
	if err := checkRange(buf, offset, 8); err != nil {
		return 0, err
	}
	return bin.NewBinDecoder(buf[offset : offset+8]).ReadUint64(bin.LE)
}

// ReadUint32LE decodes the unsigned little-endian 32-bit integer at offset.
func ReadUint32LE(buf []byte, offset int) (uint32, error) {
	if err := checkRange(buf, offset, 4); err != nil {
		return 0, err
	}
	return bin.NewBinDecoder(buf[offset : offset+4]).ReadUint32(bin.LE)
}

// ReadUint8 returns the byte at offset.
func ReadUint8(buf []byte, offset int) (uint8, error) {
	if err := checkRange(buf, offset, 1); err != nil {
		return 0, err
	}
	return buf[offset], nil
}

// ReadBool decodes a one-byte bool. Only 0 and 1 are accepted.
func ReadBool(buf []byte, offset int) (bool, error) {
	b, err := ReadUint8(buf, offset)
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("%w: 0x%02x at offset %d", ErrInvalidBool, b, offset)
	}
}

// ReadBytes returns a copy of length bytes at offset.
func ReadBytes(buf []byte, offset, length int) ([]byte, error) {
	if err := checkRange(buf, offset, length); err != nil {
		return nil, err
	}
	out := make([]byte, length)
	copy(out, buf[offset:offset+length])
	return out, nil
}

// ReadAddress base-58 encodes the span at offset (no checksum, no version byte).
func ReadAddress(buf []byte, offset, length int) (string, error) {
	if err := checkRange(buf, offset, length); err != nil {
		return "", err
	}
	return base58.Encode(buf[offset : offset+length]), nil
}

// ReadPublicKey returns the 32-byte public key at offset.
func ReadPublicKey(buf []byte, offset int) (solana.PublicKey, error) {
	var key solana.PublicKey
	if err := checkRange(buf, offset, AddressLength); err != nil {
		return key, err
	}
	copy(key[:], buf[offset:offset+AddressLength])
	return key, nil
}
