package security

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadOrCreateDeviceKey returns the per-device sealing key, creating a new
// one on first launch. The key never leaves the device; losing it only costs
// the persisted token, which forces a fresh login.
func LoadOrCreateDeviceKey(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		key := strings.TrimSpace(string(data))
		if key != "" {
			return key, nil
		}
	}

	key, err := GenerateSecureKey(64) // 32 bytes hex-encoded
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return "", fmt.Errorf("failed to create key directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(key), 0600); err != nil {
		return "", fmt.Errorf("failed to write device key: %w", err)
	}
	return key, nil
}
