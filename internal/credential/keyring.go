// Package credential keeps secrets in the operating system keyring so they
// do not have to live in the config file.
package credential

import (
	"errors"
	"fmt"

	"github.com/99designs/keyring"

	"github.com/listo-app/listo/internal/model"
)

const serviceName = "listo"

// Keys of the secrets Listo stores.
const (
	KeyGeminiAPIKey = "gemini_api_key"
	KeyAdminSecret  = "admin_secret"
)

// Keys lists every known secret key.
var Keys = []string{KeyGeminiAPIKey, KeyAdminSecret}

// ErrNotFound is returned when a secret is not in the keyring.
var ErrNotFound = errors.New("credential not found")

// Getter reads secrets.
type Getter interface {
	Get(key string) (string, error)
}

// System is the operating system keyring.
type System struct{}

// openKeyring returns a configured keyring instance.
func openKeyring() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/listo/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("listo-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// Get retrieves a secret by key.
func (System) Get(key string) (string, error) {
	ring, err := openKeyring()
	if err != nil {
		return "", err
	}

	item, err := ring.Get(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", fmt.Errorf("getting credential %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("getting credential %q: %w", key, err)
	}

	return string(item.Data), nil
}

// Set stores a secret by key.
func (System) Set(key, value string) error {
	if !known(key) {
		return fmt.Errorf("unknown credential %q", key)
	}
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Set(keyring.Item{
		Key:   key,
		Data:  []byte(value),
		Label: "Listo " + key,
	})
	if err != nil {
		return fmt.Errorf("setting credential %q: %w", key, err)
	}

	return nil
}

// Delete removes a secret by key.
func (System) Delete(key string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Remove(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("deleting credential %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("deleting credential %q: %w", key, err)
	}

	return nil
}

func known(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Fill copies secrets from ring into the config fields that are still
// empty. Values set in the config file or the environment win. Secrets that
// are missing from the ring are skipped; other keyring errors are returned.
func Fill(cfg *model.AppConfig, ring Getter) error {
	fields := map[string]*string{
		KeyGeminiAPIKey: &cfg.AI.APIKey,
		KeyAdminSecret:  &cfg.Admin.Secret,
	}
	for _, key := range Keys {
		dst := fields[key]
		if *dst != "" {
			continue
		}
		v, err := ring.Get(key)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		*dst = v
	}
	return nil
}
