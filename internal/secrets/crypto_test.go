package secrets

import (
	"bytes"
	"encoding/binary"
	"testing"

	"golang.org/x/crypto/blake2b"
)

func testKey(t *testing.T) []byte {
	t.Helper()
	key, err := CreateSymmetricKey()
	if err != nil {
		t.Fatalf("Failed to create key: %v", err)
	}
	return key
}

func TestDeriveStream_Lengths(t *testing.T) {
	key := testKey(t)
	nonce := bytes.Repeat([]byte{0x42}, NonceSize)

	for _, length := range []int{0, 1, 63, 64, 65, 128, 129, 1000} {
		stream, err := DeriveStream(key, nonce, length)
		if err != nil {
			t.Fatalf("DeriveStream(%d) failed: %v", length, err)
		}
		if len(stream) != length {
			t.Errorf("DeriveStream(%d) returned %d bytes", length, len(stream))
		}
	}
}

func TestDeriveStream_Deterministic(t *testing.T) {
	key := testKey(t)
	nonce := bytes.Repeat([]byte{0x01}, NonceSize)

	a, err := DeriveStream(key, nonce, 300)
	if err != nil {
		t.Fatalf("DeriveStream failed: %v", err)
	}
	b, err := DeriveStream(key, nonce, 300)
	if err != nil {
		t.Fatalf("DeriveStream failed: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatal("Expected identical streams for identical inputs")
	}

	// A shorter stream is a prefix of a longer one.
	short, err := DeriveStream(key, nonce, 70)
	if err != nil {
		t.Fatalf("DeriveStream failed: %v", err)
	}
	if !bytes.Equal(short, a[:70]) {
		t.Fatal("Expected shorter stream to be a prefix of the longer stream")
	}
}

func TestDeriveStream_CounterModeBlocks(t *testing.T) {
	key := testKey(t)
	nonce := bytes.Repeat([]byte{0x07}, NonceSize)

	stream, err := DeriveStream(key, nonce, 2*blake2b.Size)
	if err != nil {
		t.Fatalf("DeriveStream failed: %v", err)
	}

	for c := 0; c < 2; c++ {
		h, err := blake2b.New512(key)
		if err != nil {
			t.Fatalf("blake2b.New512 failed: %v", err)
		}
		var counter [8]byte
		binary.BigEndian.PutUint64(counter[:], uint64(c))
		h.Write(nonce)
		h.Write(counter[:])
		want := h.Sum(nil)

		got := stream[c*blake2b.Size : (c+1)*blake2b.Size]
		if !bytes.Equal(got, want) {
			t.Errorf("Block %d does not match keyed BLAKE2b-512 of nonce||counter", c)
		}
	}
}

func TestDeriveStream_DependsOnKeyAndNonce(t *testing.T) {
	key := testKey(t)
	otherKey := testKey(t)
	nonce := bytes.Repeat([]byte{0x01}, NonceSize)
	otherNonce := bytes.Repeat([]byte{0x02}, NonceSize)

	base, _ := DeriveStream(key, nonce, 64)
	byKey, _ := DeriveStream(otherKey, nonce, 64)
	byNonce, _ := DeriveStream(key, otherNonce, 64)

	if bytes.Equal(base, byKey) {
		t.Error("Expected different streams for different keys")
	}
	if bytes.Equal(base, byNonce) {
		t.Error("Expected different streams for different nonces")
	}
}

func TestDeriveStream_RejectsBadInput(t *testing.T) {
	nonce := make([]byte, NonceSize)

	if _, err := DeriveStream(testKey(t), nonce, -1); err == nil {
		t.Error("Expected error for negative length")
	}
	if _, err := DeriveStream(make([]byte, 65), nonce, 10); err == nil {
		t.Error("Expected error for a key longer than BLAKE2b allows")
	}
}

func TestCombine(t *testing.T) {
	t.Run("IsItsOwnInverse", func(t *testing.T) {
		data := []byte(`{"webui":{"username":"a","password":"b"}}`)
		stream, err := DeriveStream(testKey(t), make([]byte, NonceSize), len(data))
		if err != nil {
			t.Fatalf("DeriveStream failed: %v", err)
		}

		encrypted, err := Combine(data, stream)
		if err != nil {
			t.Fatalf("Combine failed: %v", err)
		}
		if bytes.Equal(encrypted, data) {
			t.Fatal("Expected combined output to differ from input")
		}

		decrypted, err := Combine(encrypted, stream)
		if err != nil {
			t.Fatalf("Combine failed: %v", err)
		}
		if !bytes.Equal(decrypted, data) {
			t.Fatalf("Expected %q, got %q", data, decrypted)
		}
	})

	t.Run("UsesStreamPrefix", func(t *testing.T) {
		out, err := Combine([]byte{0x0f, 0xf0}, []byte{0xff, 0xff, 0x00})
		if err != nil {
			t.Fatalf("Combine failed: %v", err)
		}
		if !bytes.Equal(out, []byte{0xf0, 0x0f}) {
			t.Fatalf("Unexpected output %x", out)
		}
	})

	t.Run("ShortStreamFails", func(t *testing.T) {
		if _, err := Combine([]byte("abc"), []byte("ab")); err == nil {
			t.Fatal("Expected error for short keystream")
		}
	})

	t.Run("EmptyData", func(t *testing.T) {
		out, err := Combine(nil, nil)
		if err != nil {
			t.Fatalf("Combine failed: %v", err)
		}
		if len(out) != 0 {
			t.Fatalf("Expected empty output, got %x", out)
		}
	})
}
