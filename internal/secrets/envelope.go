package secrets

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	kerrors "github.com/PolarWolf314/triplo-webui/internal/errors"
)

const (
	// EnvelopeVersion is the only envelope version this package reads and writes.
	EnvelopeVersion = 1

	// MACSize is the size of the HMAC-SHA256 tag in bytes.
	MACSize = sha256.Size
)

// Envelope is the on-disk form of an encrypted payload. Byte fields hold
// standard base64.
type Envelope struct {
	Version    int    `json:"version"`
	Nonce      string `json:"nonce"`
	Ciphertext string `json:"ciphertext"`
	MAC        string `json:"mac"`
}

// Encrypt seals plaintext under key with a fresh random nonce.
func Encrypt(plaintext, key []byte) (*Envelope, error) {
	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return seal(plaintext, key, nonce)
}

func seal(plaintext, key, nonce []byte) (*Envelope, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d bytes", kerrors.ErrInvalidKeyLength, KeySize, len(key))
	}

	stream, err := DeriveStream(key, nonce, len(plaintext))
	if err != nil {
		return nil, err
	}
	ciphertext, err := Combine(plaintext, stream)
	if err != nil {
		return nil, err
	}

	return &Envelope{
		Version:    EnvelopeVersion,
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		Ciphertext: base64.StdEncoding.EncodeToString(ciphertext),
		MAC:        base64.StdEncoding.EncodeToString(computeMAC(key, nonce, ciphertext)),
	}, nil
}

// Decrypt verifies env and returns its plaintext.
//
// The version is checked first, then the fields are decoded, then the mac is
// compared in constant time. The keystream is only derived once the mac has
// verified; on any failure no plaintext is returned.
func Decrypt(env *Envelope, key []byte) ([]byte, error) {
	if env == nil {
		return nil, fmt.Errorf("%w: no envelope", kerrors.ErrMalformedEnvelope)
	}
	if env.Version != EnvelopeVersion {
		return nil, fmt.Errorf("%w: %d", kerrors.ErrUnsupportedVersion, env.Version)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d bytes", kerrors.ErrInvalidKeyLength, KeySize, len(key))
	}

	nonce, err := decodeField("nonce", env.Nonce)
	if err != nil {
		return nil, err
	}
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: nonce must be %d bytes, got %d", kerrors.ErrMalformedEnvelope, NonceSize, len(nonce))
	}
	ciphertext, err := decodeField("ciphertext", env.Ciphertext)
	if err != nil {
		return nil, err
	}
	mac, err := decodeField("mac", env.MAC)
	if err != nil {
		return nil, err
	}
	if len(mac) != MACSize {
		return nil, fmt.Errorf("%w: mac must be %d bytes, got %d", kerrors.ErrMalformedEnvelope, MACSize, len(mac))
	}

	if !hmac.Equal(mac, computeMAC(key, nonce, ciphertext)) {
		return nil, kerrors.ErrIntegrity
	}

	stream, err := DeriveStream(key, nonce, len(ciphertext))
	if err != nil {
		return nil, err
	}
	return Combine(ciphertext, stream)
}

// Marshal returns the indented JSON written to disk.
func (e *Envelope) Marshal() ([]byte, error) {
	return json.MarshalIndent(e, "", "  ")
}

// UnmarshalEnvelope parses an envelope-shaped JSON document.
//
// A missing or non-integer version is reported as ErrUnsupportedVersion
// before any other field is looked at. Fields of the wrong type are
// reported as ErrMalformedEnvelope.
func UnmarshalEnvelope(data []byte) (*Envelope, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrMalformedEnvelope, err)
	}
	return envelopeFromDocument(doc)
}

func envelopeFromDocument(doc map[string]json.RawMessage) (*Envelope, error) {
	env := &Envelope{}

	if raw, ok := doc["version"]; ok {
		if err := json.Unmarshal(raw, &env.Version); err != nil {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrUnsupportedVersion, raw)
		}
	}
	if env.Version != EnvelopeVersion {
		return nil, fmt.Errorf("%w: %d", kerrors.ErrUnsupportedVersion, env.Version)
	}

	fields := []struct {
		name string
		dst  *string
	}{
		{"nonce", &env.Nonce},
		{"ciphertext", &env.Ciphertext},
		{"mac", &env.MAC},
	}
	for _, f := range fields {
		raw, ok := doc[f.name]
		if !ok {
			return nil, fmt.Errorf("%w: missing %s", kerrors.ErrMalformedEnvelope, f.name)
		}
		if err := json.Unmarshal(raw, f.dst); err != nil {
			return nil, fmt.Errorf("%w: %s is not a string", kerrors.ErrMalformedEnvelope, f.name)
		}
	}

	return env, nil
}

func decodeField(name, value string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrMalformedEnvelope, name, err)
	}
	return b, nil
}

func computeMAC(key, nonce, ciphertext []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(nonce)
	mac.Write(ciphertext)
	return mac.Sum(nil)
}
