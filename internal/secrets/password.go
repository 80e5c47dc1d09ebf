package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// “Service” groups the watcher's secrets in the OS keychain.
	KeyringService = "vtu-watcher"
)

// GetSMTPPassword resolves the SMTP password: SMTP_PASS env first (the
// CI path, where there is no keychain), then the OS keyring.
func GetSMTPPassword(keyringAccount string) (string, error) {
	if pw := strings.TrimSpace(os.Getenv("SMTP_PASS")); pw != "" {
		return pw, nil
	}

	if strings.TrimSpace(keyringAccount) != "" {
		pw, err := keyring.Get(KeyringService, keyringAccount)
		if err == nil && strings.TrimSpace(pw) != "" {
			return pw, nil
		}
	}

	return "", errors.New("SMTP password not found (set SMTP_PASS or store it in the keychain)")
}

func SetSMTPPassword(keyringAccount string, password string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("password is empty")
	}
	return keyring.Set(KeyringService, keyringAccount, password)
}

func DeleteSMTPPassword(keyringAccount string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, keyringAccount)
}

func SMTPKeyringAccount(username, host string) string {
	return fmt.Sprintf("vtu-watcher:smtp:%s@%s", username, host)
}
