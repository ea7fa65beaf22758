package secrets

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"

	kerrors "github.com/PolarWolf314/triplo-webui/internal/errors"
)

// Payload is the decrypted auth configuration: any JSON object. Numbers are
// kept as json.Number so they round-trip unchanged.
type Payload map[string]any

// Clone returns a deep copy of p made through a JSON round-trip.
func (p Payload) Clone() (Payload, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidPayload, err)
	}
	return decodePayload(data)
}

// Source says where a loaded payload came from.
type Source int

const (
	// SourceEnvelope means the payload was decrypted from an envelope.
	SourceEnvelope Source = iota
	// SourceLegacy means a plaintext file was found and has been encrypted.
	SourceLegacy
	// SourceFallback means there was no usable file and the fallback was saved.
	SourceFallback
)

func (s Source) String() string {
	switch s {
	case SourceEnvelope:
		return "envelope"
	case SourceLegacy:
		return "legacy"
	case SourceFallback:
		return "fallback"
	default:
		return fmt.Sprintf("Source(%d)", int(s))
	}
}

// LoadResult is the outcome of Store.LoadDetailed.
type LoadResult struct {
	Payload Payload
	Source  Source
}

// Store reads and writes the encrypted auth config file.
type Store struct {
	path string
	keys KeySource

	mu sync.Mutex
}

// NewStore returns a store for the config file at path, encrypted with the
// key from keys.
func NewStore(path string, keys KeySource) *Store {
	return &Store{path: path, keys: keys}
}

// Path returns the config file location.
func (s *Store) Path() string {
	return s.path
}

// Load returns the decrypted config. A nil fallback means there is none; see
// LoadDetailed.
func (s *Store) Load(fallback Payload) (Payload, error) {
	result, err := s.LoadDetailed(fallback)
	if err != nil {
		return nil, err
	}
	return result.Payload, nil
}

// LoadDetailed returns the decrypted config and where it came from.
//
// When the file is missing, or is not valid JSON, a copy of fallback is saved
// and returned; with a nil fallback the call fails with ErrConfigNotFound or
// ErrInvalidConfig instead. A JSON object without a "ciphertext" key is a
// legacy plaintext file: it is saved encrypted and returned unchanged.
// Envelope errors (ErrUnsupportedVersion, ErrMalformedEnvelope, ErrIntegrity)
// and key errors are always returned.
func (s *Store) LoadDetailed(fallback Payload) (*LoadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		if fallback == nil {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrConfigNotFound, s.path)
		}
		return s.bootstrap(fallback)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read auth config: %w", err)
	}

	var doc map[string]json.RawMessage
	if err := decodeJSON(data, &doc); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) || fallback == nil {
			return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrInvalidConfig, s.path, err)
		}
		return s.bootstrap(fallback)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: %s: top-level value is null", kerrors.ErrInvalidConfig, s.path)
	}

	if _, ok := doc["ciphertext"]; !ok {
		legacy, err := decodePayload(data)
		if err != nil {
			return nil, err
		}
		if err := s.save(legacy); err != nil {
			return nil, fmt.Errorf("failed to migrate legacy auth config: %w", err)
		}
		return &LoadResult{Payload: legacy, Source: SourceLegacy}, nil
	}

	env, err := envelopeFromDocument(doc)
	if err != nil {
		return nil, err
	}
	key, err := s.keys.Key()
	if err != nil {
		return nil, err
	}
	plaintext, err := Decrypt(env, key)
	if err != nil {
		return nil, err
	}
	payload, err := decodePayload(plaintext)
	if err != nil {
		return nil, err
	}

	return &LoadResult{Payload: payload, Source: SourceEnvelope}, nil
}

// Save encrypts p under a fresh nonce and atomically replaces the config file.
func (s *Store) Save(p Payload) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(p)
}

func (s *Store) save(p Payload) error {
	if p == nil {
		return fmt.Errorf("%w: payload is nil", kerrors.ErrInvalidPayload)
	}

	plaintext, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("%w: %v", kerrors.ErrInvalidPayload, err)
	}

	key, err := s.keys.Key()
	if err != nil {
		return err
	}

	env, err := Encrypt(plaintext, key)
	if err != nil {
		return err
	}
	data, err := env.Marshal()
	if err != nil {
		return err
	}

	if err := WriteFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("failed to write auth config %s: %w", s.path, err)
	}
	return nil
}

func (s *Store) bootstrap(fallback Payload) (*LoadResult, error) {
	payload, err := fallback.Clone()
	if err != nil {
		return nil, err
	}
	if err := s.save(payload); err != nil {
		return nil, err
	}
	return &LoadResult{Payload: payload, Source: SourceFallback}, nil
}

// ParsePayload parses data as a JSON object for Save. Anything else is
// ErrInvalidPayload.
func ParsePayload(data []byte) (Payload, error) {
	var payload Payload
	if err := decodeJSON(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", kerrors.ErrInvalidPayload, err)
	}
	if payload == nil {
		return nil, fmt.Errorf("%w: payload must be a JSON object", kerrors.ErrInvalidPayload)
	}
	return payload, nil
}

func decodePayload(data []byte) (Payload, error) {
	var payload Payload
	if err := decodeJSON(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidConfig, err)
	}
	if payload == nil {
		return nil, fmt.Errorf("%w: top-level value is null", kerrors.ErrInvalidConfig)
	}
	return payload, nil
}

// decodeJSON decodes exactly one JSON value from data, keeping numbers as
// json.Number.
func decodeJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("unexpected data after top-level value")
	}
	return nil
}
