package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"hue-rest-client/internal/domain/model"
	"hue-rest-client/internal/ports"
)

var _ ports.CredentialsRepository = (*JSONCredentialsRepository)(nil)

// JSONCredentialsRepository keeps the bridge credentials in a small JSON
// file.
type JSONCredentialsRepository struct {
	filepath string
	mu       sync.RWMutex
}

// Shape written by older Hue tools, which call the credential "user".
type legacyCredentials struct {
	Host string `json:"host"`
	User string `json:"user"`
}

func NewJSONCredentialsRepository(filepath string) *JSONCredentialsRepository {
	return &JSONCredentialsRepository{filepath: filepath}
}

// Get returns empty credentials when the file does not exist yet.
func (r *JSONCredentialsRepository) Get(ctx context.Context) (*model.Credentials, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := os.ReadFile(r.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			return &model.Credentials{}, nil
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	var creds model.Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("parse credentials %s: %w", r.filepath, err)
	}

	if creds.Credential == "" {
		return r.migrate(data, creds)
	}
	return &creds, nil
}

func (r *JSONCredentialsRepository) migrate(data []byte, creds model.Credentials) (*model.Credentials, error) {
	var legacy legacyCredentials
	if err := json.Unmarshal(data, &legacy); err != nil {
		return &creds, nil
	}
	if legacy.Host != "" {
		creds.Host = legacy.Host
	}
	creds.Credential = legacy.User
	return &creds, nil
}

// Save always writes the current shape, so a migrated file is upgraded on
// the next save.
func (r *JSONCredentialsRepository) Save(ctx context.Context, creds *model.Credentials) error {
	if creds == nil {
		return fmt.Errorf("save credentials: nil credentials")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(r.filepath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create credentials dir: %w", err)
		}
	}
	// The credential grants full control of the bridge.
	return os.WriteFile(r.filepath, data, 0o600)
}
