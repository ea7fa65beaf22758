package credentials

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"golang.org/x/crypto/bcrypt"

	kerrors "github.com/PolarWolf314/triplo-webui/internal/errors"
	"github.com/PolarWolf314/triplo-webui/internal/secrets"
)

// Service names a login surface.
type Service string

const (
	ServiceWebUI Service = "webui"
	ServiceNoVNC Service = "novnc"
)

// DefaultUsername is the username written when no config exists yet.
const DefaultUsername = "admin"

// generatedPasswordBytes is the entropy of a generated password.
const generatedPasswordBytes = 18

// ParseService returns the Service named by s.
func ParseService(s string) (Service, error) {
	switch Service(strings.ToLower(strings.TrimSpace(s))) {
	case ServiceWebUI:
		return ServiceWebUI, nil
	case ServiceNoVNC:
		return ServiceNoVNC, nil
	default:
		return "", fmt.Errorf("%w: %q", kerrors.ErrUnknownService, s)
	}
}

// Account is a username and password pair.
type Account struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// NoVNC is the noVNC account and whether it defers to the Web UI account.
type NoVNC struct {
	UseWebUICredentials bool `json:"use_webui_credentials"`
	Account
}

// Credentials holds both accounts.
type Credentials struct {
	WebUI Account `json:"webui"`
	NoVNC NoVNC   `json:"novnc"`
}

// Defaults returns credentials for a fresh install: the admin user with a
// random password, shared with noVNC.
func Defaults() (*Credentials, error) {
	password, err := GeneratePassword()
	if err != nil {
		return nil, err
	}

	return &Credentials{
		WebUI: Account{Username: DefaultUsername, Password: password},
		NoVNC: NoVNC{
			UseWebUICredentials: true,
			Account:             Account{Username: DefaultUsername, Password: password},
		},
	}, nil
}

// GeneratePassword returns a random URL-safe password.
func GeneratePassword() (string, error) {
	b := make([]byte, generatedPasswordBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate password: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// FromPayload decodes the credential fields of p. Other keys are ignored, and
// scalar fields are converted leniently ("true" is a valid boolean).
func FromPayload(p secrets.Payload) (*Credentials, error) {
	var c Credentials

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Squash:           true,
		WeaklyTypedInput: true,
		Result:           &c,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(map[string]any(p)); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidConfig, err)
	}

	return &c, nil
}

// Payload returns c in the shape the store persists.
func (c *Credentials) Payload() secrets.Payload {
	return secrets.Payload{
		"webui": map[string]any{
			"username": c.WebUI.Username,
			"password": c.WebUI.Password,
		},
		"novnc": map[string]any{
			"use_webui_credentials": c.NoVNC.UseWebUICredentials,
			"username":              c.NoVNC.Username,
			"password":              c.NoVNC.Password,
		},
	}
}

// Effective returns the account that service actually accepts.
func (c *Credentials) Effective(service Service) (Account, error) {
	switch service {
	case ServiceWebUI:
		return c.WebUI, nil
	case ServiceNoVNC:
		if c.NoVNC.UseWebUICredentials {
			return c.WebUI, nil
		}
		return c.NoVNC.Account, nil
	default:
		return Account{}, fmt.Errorf("%w: %q", kerrors.ErrUnknownService, service)
	}
}

// Check reports whether username and password match the account service
// accepts. An account with an empty username or password never matches.
func (c *Credentials) Check(service Service, username, password string) (bool, error) {
	account, err := c.Effective(service)
	if err != nil {
		return false, err
	}
	if account.Username == "" || account.Password == "" {
		return false, nil
	}

	userOK := subtle.ConstantTimeCompare([]byte(account.Username), []byte(username))
	passOK := subtle.ConstantTimeCompare([]byte(account.Password), []byte(password))
	return userOK&passOK == 1, nil
}

// Htpasswd returns a one-line htpasswd file for the account service accepts,
// with the password hashed by bcrypt.
func (c *Credentials) Htpasswd(service Service) ([]byte, error) {
	account, err := c.Effective(service)
	if err != nil {
		return nil, err
	}
	if account.Username == "" || account.Password == "" {
		return nil, fmt.Errorf("%w: %s account has no username or password", kerrors.ErrInvalidPayload, service)
	}
	if strings.ContainsAny(account.Username, ":\n\r") {
		return nil, fmt.Errorf("%w: %s username contains ':' or a newline", kerrors.ErrInvalidPayload, service)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(account.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash %s password: %w", service, err)
	}

	return []byte(account.Username + ":" + string(hash) + "\n"), nil
}
