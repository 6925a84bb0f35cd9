package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Credentials is the stored outcome of the auth handshake. The API key and
// secret come from the environment; they are kept here too so the stored
// token can be tied to the key that minted it.
type Credentials struct {
	APIKey   string `json:"api_key"`
	Token    string `json:"token"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// LoadCredentials reads the stored credentials. A missing file returns
// (nil, nil): not authenticated, not an error.
func LoadCredentials(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("decode credentials: %w", err)
	}
	return &creds, nil
}

// SaveCredentials writes the credentials file, readable by the owner only.
func SaveCredentials(path string, creds *Credentials) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

// RemoveCredentials deletes the stored token. Already gone is fine.
func RemoveCredentials(path string) error {
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
