package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	kerrors "github.com/PolarWolf314/triplo-webui/internal/errors"
	"github.com/PolarWolf314/triplo-webui/internal/secrets"
	"github.com/PolarWolf314/triplo-webui/internal/utils"
)

// Key backends.
const (
	KeyBackendFile    = "file"
	KeyBackendKeyring = "keyring"
)

// Keyring item used by the keyring backend.
const (
	KeyringService = "triplo-webui"
	KeyringAccount = "webui-auth-key"
)

// Environment overrides.
const (
	EnvAuthFile     = "WEBUI_AUTH_FILE"
	EnvKeyFile      = "WEBUI_AUTH_KEY_FILE"
	EnvKeyBackend   = "WEBUI_AUTH_KEY_BACKEND"
	EnvAuditLog     = "WEBUI_AUTH_AUDIT_LOG"
	EnvSettingsFile = "WEBUI_AUTH_SETTINGS"
)

// Settings locate everything the auth commands read and write.
type Settings struct {
	AuthFile   string `toml:"auth_file"`
	KeyFile    string `toml:"key_file"`
	KeyBackend string `toml:"key_backend"`
	AuditLog   string `toml:"audit_log"`
}

// ConfigDir returns the directory holding the default files.
func ConfigDir() string {
	return filepath.Join(utils.ExpandPath("~"), ".config", "Triplo AI")
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() *Settings {
	dir := ConfigDir()
	return &Settings{
		AuthFile:   filepath.Join(dir, "webui-auth.json"),
		KeyFile:    filepath.Join(dir, "webui-auth.key"),
		KeyBackend: KeyBackendFile,
		AuditLog:   filepath.Join(dir, "webui-auth-audit.jsonl"),
	}
}

// SettingsPath returns the settings file to read: explicit if set, then
// $WEBUI_AUTH_SETTINGS, then the default location.
func SettingsPath(explicit string) string {
	if explicit != "" {
		return utils.ExpandPath(explicit)
	}
	if env := os.Getenv(EnvSettingsFile); env != "" {
		return utils.ExpandPath(env)
	}
	return filepath.Join(ConfigDir(), "webui-auth.toml")
}

// LoadSettings layers the settings file at path and the environment over the
// defaults. A missing file is skipped.
func LoadSettings(path string) (*Settings, error) {
	s := DefaultSettings()

	if path != "" {
		var fromFile Settings
		undecoded, err := LoadTOML(path, &fromFile)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrInvalidSettings, path, err)
		case len(undecoded) > 0:
			return nil, fmt.Errorf("%w: %s: unknown keys %s", kerrors.ErrInvalidSettings, path, strings.Join(undecoded, ", "))
		default:
			s.merge(&fromFile)
		}
	}

	s.applyEnv()
	s.expand()

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// SaveSettings writes s to path as TOML.
func SaveSettings(path string, s *Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	return SaveTOML(path, s)
}

// Validate checks that s names a known key backend and has every path set.
func (s *Settings) Validate() error {
	switch s.KeyBackend {
	case KeyBackendFile, KeyBackendKeyring:
	default:
		return fmt.Errorf("%w: %q", kerrors.ErrUnknownKeyBackend, s.KeyBackend)
	}

	if s.AuthFile == "" {
		return fmt.Errorf("%w: auth_file is empty", kerrors.ErrInvalidSettings)
	}
	if s.KeyBackend == KeyBackendFile && s.KeyFile == "" {
		return fmt.Errorf("%w: key_file is empty", kerrors.ErrInvalidSettings)
	}
	return nil
}

// KeySource returns the key manager for the configured backend.
func (s *Settings) KeySource() (secrets.KeySource, error) {
	switch s.KeyBackend {
	case KeyBackendFile:
		return secrets.NewFileKeyManager(s.KeyFile), nil
	case KeyBackendKeyring:
		return secrets.NewKeyringKeyManager(KeyringService, KeyringAccount), nil
	default:
		return nil, fmt.Errorf("%w: %q", kerrors.ErrUnknownKeyBackend, s.KeyBackend)
	}
}

// Store returns the encrypted auth config store described by s.
func (s *Settings) Store() (*secrets.Store, error) {
	keys, err := s.KeySource()
	if err != nil {
		return nil, err
	}
	return secrets.NewStore(s.AuthFile, keys), nil
}

func (s *Settings) merge(o *Settings) {
	if o.AuthFile != "" {
		s.AuthFile = o.AuthFile
	}
	if o.KeyFile != "" {
		s.KeyFile = o.KeyFile
	}
	if o.KeyBackend != "" {
		s.KeyBackend = o.KeyBackend
	}
	if o.AuditLog != "" {
		s.AuditLog = o.AuditLog
	}
}

func (s *Settings) applyEnv() {
	s.merge(&Settings{
		AuthFile:   os.Getenv(EnvAuthFile),
		KeyFile:    os.Getenv(EnvKeyFile),
		KeyBackend: strings.ToLower(strings.TrimSpace(os.Getenv(EnvKeyBackend))),
		AuditLog:   os.Getenv(EnvAuditLog),
	})
}

func (s *Settings) expand() {
	s.AuthFile = utils.ExpandPath(s.AuthFile)
	s.KeyFile = utils.ExpandPath(s.KeyFile)
	s.AuditLog = utils.ExpandPath(s.AuditLog)
}
