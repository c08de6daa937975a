package secrets

import (
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/tartampluch/go-teamroles/internal/config"
)

// Resolve returns a secret value, preferring the explicit value (normally
// read from the environment) and falling back to the OS keyring under the
// application's service name. Scheduled CI runs inject secrets through the
// environment; interactive use keeps tokens out of shell profiles by
// storing them in the keyring instead.
func Resolve(explicit, keyringKey string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	value, err := keyring.Get(config.KeyringService, keyringKey)
	if err != nil {
		return "", fmt.Errorf("%s: %s: %w", config.ErrSecretMissing, keyringKey, err)
	}
	return value, nil
}

// Store saves a secret in the OS keyring for later Resolve calls.
func Store(keyringKey, value string) error {
	return keyring.Set(config.KeyringService, keyringKey, value)
}
