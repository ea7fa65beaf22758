package secrets

import (
	"crypto/subtle"
	"encoding/binary"
	"fmt"

	kerrors "github.com/PolarWolf314/triplo-webui/internal/errors"

	"golang.org/x/crypto/blake2b"
)

// NonceSize is the size of the per-envelope nonce in bytes.
const NonceSize = 16

// DeriveStream returns length bytes of keystream for (key, nonce).
//
// Block c of the stream is BLAKE2b-512 keyed with key over
// nonce || uint64be(c); blocks are concatenated in counter order and the
// result is truncated to length. The same inputs always give the same stream.
//
// A nonce must never be used twice with the same key: two messages encrypted
// under one stream XOR to the XOR of their plaintexts.
func DeriveStream(key, nonce []byte, length int) ([]byte, error) {
	if length < 0 {
		return nil, fmt.Errorf("invalid keystream length %d", length)
	}

	h, err := blake2b.New512(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidKeyLength, err)
	}

	blocks := (length + blake2b.Size - 1) / blake2b.Size
	out := make([]byte, 0, blocks*blake2b.Size)

	var counter [8]byte
	for c := uint64(0); len(out) < length; c++ {
		h.Reset()
		binary.BigEndian.PutUint64(counter[:], c)
		h.Write(nonce)
		h.Write(counter[:])
		out = h.Sum(out)
	}

	return out[:length], nil
}

// Combine XORs data with the start of stream. Encryption and decryption are
// the same operation.
func Combine(data, stream []byte) ([]byte, error) {
	if len(stream) < len(data) {
		return nil, fmt.Errorf("keystream too short: need %d bytes, got %d", len(data), len(stream))
	}

	out := make([]byte, len(data))
	subtle.XORBytes(out, data, stream[:len(data)])
	return out, nil
}
