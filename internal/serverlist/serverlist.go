// Package serverlist reads and appends to the externally persisted,
// ordered list of Minecraft servers the bot reports on.
package serverlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ServerConfig identifies one queryable Minecraft server.
// WeedEasterEgg follows the original config file semantics: the cosmetic
// emote substitution is enabled unless the field is explicitly false.
type ServerConfig struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	WeedEasterEgg *bool  `json:"weedEasterEgg,omitempty"`
}

// EasterEggEnabled reports whether the cosmetic emote substitution
// is active for this server.
func (s ServerConfig) EasterEggEnabled() bool {
	return s.WeedEasterEgg == nil || *s.WeedEasterEgg
}

// Validate checks that the config names a server and a dialable address.
func (s ServerConfig) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("server name is required")
	}
	host, port, err := net.SplitHostPort(s.Address)
	if err != nil {
		return fmt.Errorf("address must be host:port: %w", err)
	}
	if host == "" || port == "" {
		return fmt.Errorf("address must be host:port, got %q", s.Address)
	}
	return nil
}

// writeMu serializes appends to the shared list file. Concurrent writers
// would otherwise corrupt it; reads go through the atomic rename so they
// always see a complete document.
var writeMu sync.Mutex

// Load reads the ordered server list from path.
func Load(path string) ([]ServerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read server list: %w", err)
	}
	var servers []ServerConfig
	if err := json.Unmarshal(data, &servers); err != nil {
		return nil, fmt.Errorf("failed to parse server list: %w", err)
	}
	return servers, nil
}

// Append adds a server to the end of the list file, creating the file if
// it does not exist. The write is serialized and done as a temp file plus
// atomic rename, so a crash mid-write never leaves a truncated list.
func Append(path string, server ServerConfig) error {
	if err := server.Validate(); err != nil {
		return err
	}

	writeMu.Lock()
	defer writeMu.Unlock()

	servers, err := Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		servers = nil
	}

	for _, existing := range servers {
		if existing.Name == server.Name {
			return fmt.Errorf("server %q already configured", server.Name)
		}
	}
	servers = append(servers, server)

	data, err := json.MarshalIndent(servers, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode server list: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".servers-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace server list: %w", err)
	}
	return nil
}
