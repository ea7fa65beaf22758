package secrets

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	kerrors "github.com/PolarWolf314/triplo-webui/internal/errors"
	"github.com/PolarWolf314/triplo-webui/internal/utils"

	"github.com/zalando/go-keyring"
)

// KeySize is the size of the symmetric key in bytes.
const KeySize = 32

// KeySource provides the symmetric key used to encrypt the auth config.
// Implementations must return the same key for the lifetime of the value.
type KeySource interface {
	Key() ([]byte, error)
}

// CreateSymmetricKey generates a new random symmetric key.
func CreateSymmetricKey() ([]byte, error) {
	symKey := make([]byte, KeySize)
	if _, err := rand.Read(symKey); err != nil {
		return nil, err
	}

	return symKey, nil
}

// EncodeKey returns the on-disk text form of a key.
func EncodeKey(key []byte) []byte {
	out := make([]byte, base64.StdEncoding.EncodedLen(len(key)))
	base64.StdEncoding.Encode(out, key)
	return out
}

// DecodeKey parses the on-disk text form of a key. Keys longer than KeySize
// are truncated to their first KeySize bytes.
func DecodeKey(raw []byte) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrKeyFormat, err)
	}
	if len(key) < KeySize {
		return nil, fmt.Errorf("%w: key must be at least %d bytes, got %d", kerrors.ErrKeyFormat, KeySize, len(key))
	}
	return key[:KeySize:KeySize], nil
}

// FileKeyManager keeps the key in a base64 text file.
type FileKeyManager struct {
	path string

	mu  sync.Mutex
	key []byte
}

var _ KeySource = (*FileKeyManager)(nil)

// NewFileKeyManager returns a manager for the key file at path. Nothing is
// read or created until Key is called.
func NewFileKeyManager(path string) *FileKeyManager {
	return &FileKeyManager{path: path}
}

// Path returns the key file location.
func (m *FileKeyManager) Path() string {
	return m.path
}

// Key returns the key, creating the key file on first use. The key is
// loaded at most once per manager.
func (m *FileKeyManager) Key() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.key == nil {
		key, err := loadOrCreateKeyFile(m.path)
		if err != nil {
			return nil, err
		}
		m.key = key
	}

	return cloneBytes(m.key), nil
}

func loadOrCreateKeyFile(path string) ([]byte, error) {
	key, err := readKeyFile(path)
	if err == nil || !errors.Is(err, fs.ErrNotExist) {
		return key, err
	}

	key, err = CreateSymmetricKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate symmetric key: %w", err)
	}

	created, err := createKeyFile(path, EncodeKey(key))
	if err != nil {
		return nil, fmt.Errorf("failed to save key file %s: %w", path, err)
	}
	if !created {
		// Another writer created the key first; use theirs.
		return readKeyFile(path)
	}

	return key, nil
}

func readKeyFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	key, err := DecodeKey(raw)
	if err != nil {
		return nil, fmt.Errorf("key file %s: %w", path, err)
	}
	return key, nil
}

// createKeyFile writes data to path only if path does not exist yet.
// It reports false when another writer got there first.
//
// The key is written to a temp file and hard-linked into place, so the key
// file never exists with partial content. Filesystems without hard links
// fall back to an exclusive create.
func createKeyFile(path string, data []byte) (bool, error) {
	if err := utils.EnsureParentDir(path); err != nil {
		return false, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".key-*")
	if err != nil {
		return false, err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	restrictFilePermissions(tmp)
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return false, err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return false, err
	}
	if err := tmp.Close(); err != nil {
		return false, err
	}

	err = os.Link(tmpName, path)
	if err == nil {
		restrictPermissions(path)
		return true, nil
	}
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return false, err
	}
	if err := f.Close(); err != nil {
		return false, err
	}
	restrictPermissions(path)
	return true, nil
}

// KeyringKeyManager keeps the key in the OS secret service
// (Keychain, Secret Service, Windows Credential Manager).
type KeyringKeyManager struct {
	service string
	account string

	mu  sync.Mutex
	key []byte
}

var _ KeySource = (*KeyringKeyManager)(nil)

// NewKeyringKeyManager returns a manager for the keyring item identified by
// service and account.
func NewKeyringKeyManager(service, account string) *KeyringKeyManager {
	return &KeyringKeyManager{service: service, account: account}
}

// Key returns the key, storing a new one in the keyring on first use.
func (m *KeyringKeyManager) Key() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.key != nil {
		return cloneBytes(m.key), nil
	}

	secret, err := keyring.Get(m.service, m.account)
	switch {
	case err == nil:
		key, err := DecodeKey([]byte(secret))
		if err != nil {
			return nil, fmt.Errorf("keyring item %s/%s: %w", m.service, m.account, err)
		}
		m.key = key
	case errors.Is(err, keyring.ErrNotFound):
		key, err := CreateSymmetricKey()
		if err != nil {
			return nil, fmt.Errorf("failed to generate symmetric key: %w", err)
		}
		if err := keyring.Set(m.service, m.account, string(EncodeKey(key))); err != nil {
			return nil, fmt.Errorf("failed to store key in keyring: %w", err)
		}
		m.key = key
	default:
		return nil, fmt.Errorf("failed to read key from keyring: %w", err)
	}

	return cloneBytes(m.key), nil
}

// StaticKey is an in-memory key, mainly for tests and embedding.
type StaticKey []byte

var _ KeySource = StaticKey(nil)

// Key returns the first KeySize bytes of k.
func (k StaticKey) Key() ([]byte, error) {
	if len(k) < KeySize {
		return nil, fmt.Errorf("%w: key must be at least %d bytes, got %d", kerrors.ErrKeyFormat, KeySize, len(k))
	}
	return cloneBytes(k[:KeySize]), nil
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
