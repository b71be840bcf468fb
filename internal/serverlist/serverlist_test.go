package serverlist

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func writeList(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "servers.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write list: %v", err)
	}
	return path
}

func TestLoadPreservesOrder(t *testing.T) {
	path := writeList(t, `[
		{"name": "Vanilla", "address": "a:25565"},
		{"name": "Creative", "address": "b:25565", "weedEasterEgg": false},
		{"name": "UHC", "address": "c:25565"}
	]`)

	servers, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(servers) != 3 {
		t.Fatalf("expected 3 servers, got %d", len(servers))
	}
	for i, name := range []string{"Vanilla", "Creative", "UHC"} {
		if servers[i].Name != name {
			t.Fatalf("server %d: got %q, want %q", i, servers[i].Name, name)
		}
	}
}

func TestEasterEggDefaultsEnabled(t *testing.T) {
	path := writeList(t, `[
		{"name": "Vanilla", "address": "a:25565"},
		{"name": "Creative", "address": "b:25565", "weedEasterEgg": false}
	]`)

	servers, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !servers[0].EasterEggEnabled() {
		t.Error("absent flag should mean enabled")
	}
	if servers[1].EasterEggEnabled() {
		t.Error("explicit false should mean disabled")
	}
}

func TestAppendCreatesAndExtends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "servers.json")

	if err := Append(path, ServerConfig{Name: "Vanilla", Address: "a:25565"}); err != nil {
		t.Fatalf("first Append failed: %v", err)
	}
	if err := Append(path, ServerConfig{Name: "UHC", Address: "b:25565"}); err != nil {
		t.Fatalf("second Append failed: %v", err)
	}

	servers, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(servers) != 2 || servers[0].Name != "Vanilla" || servers[1].Name != "UHC" {
		t.Fatalf("unexpected list: %+v", servers)
	}
}

func TestAppendRejectsDuplicateName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "servers.json")
	if err := Append(path, ServerConfig{Name: "Vanilla", Address: "a:25565"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := Append(path, ServerConfig{Name: "Vanilla", Address: "b:25565"}); err == nil {
		t.Fatal("expected duplicate name to be rejected")
	}
}

func TestAppendValidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "servers.json")
	if err := Append(path, ServerConfig{Name: "", Address: "a:25565"}); err == nil {
		t.Fatal("expected empty name to be rejected")
	}
	if err := Append(path, ServerConfig{Name: "Vanilla", Address: "no-port"}); err == nil {
		t.Fatal("expected bad address to be rejected")
	}
}

func TestAppendConcurrentWriters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "servers.json")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := string(rune('A' + i))
			if err := Append(path, ServerConfig{Name: name, Address: "a:25565"}); err != nil {
				t.Errorf("Append %s failed: %v", name, err)
			}
		}(i)
	}
	wg.Wait()

	servers, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(servers) != 10 {
		t.Fatalf("concurrent appends lost entries: got %d, want 10", len(servers))
	}
}
