package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const defaultServer = "http://localhost:8080"

// profile is the persisted CLI session.
type profile struct {
	Server       string `toml:"server"`
	APIPrefix    string `toml:"api_prefix"`
	Email        string `toml:"email,omitempty"`
	AccessToken  string `toml:"access_token,omitempty"`
	RefreshToken string `toml:"refresh_token,omitempty"`
}

func defaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".qualityctl.toml"
	}
	return filepath.Join(home, ".qualityctl.toml")
}

// loadProfile reads path. A missing file yields the default profile.
func loadProfile(path string) (*profile, error) {
	p := &profile{Server: defaultServer, APIPrefix: "/api/v1"}
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	if err := toml.Unmarshal(raw, p); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}
	if p.Server == "" {
		p.Server = defaultServer
	}
	return p, nil
}

// save writes the profile with owner-only permissions since it holds tokens.
func (p *profile) save(path string) error {
	raw, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create profile dir: %w", err)
		}
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}
