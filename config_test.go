package tmi

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
nickname bob
channel foo bar
channel baz
chat-log /tmp/chat.db
debug true
`)
	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != "irc.chat.twitch.tv:6697" || !cfg.TLS {
		t.Errorf("defaults not applied: %#v", cfg)
	}
	if cfg.Nick != "bob" {
		t.Errorf("nick is %q", cfg.Nick)
	}
	if !reflect.DeepEqual(cfg.Channels, []string{"foo", "bar", "baz"}) {
		t.Errorf("channels are %#v", cfg.Channels)
	}
	if cfg.ChatLog != "/tmp/chat.db" {
		t.Errorf("chat log is %q", cfg.ChatLog)
	}
	if !cfg.Debug {
		t.Error("debug not set")
	}
}

func TestLoadConfigFileOverrides(t *testing.T) {
	path := writeConfig(t, `
address 127.0.0.1:6667
tls false
anonymous true
`)
	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != "127.0.0.1:6667" || cfg.TLS || !cfg.Anonymous {
		t.Errorf("config is %#v", cfg)
	}
}

func TestLoadConfigFileRequiresNickname(t *testing.T) {
	path := writeConfig(t, "channel foo\n")
	if _, err := LoadConfigFile(path); err == nil {
		t.Fatal("expected an error for a missing nickname")
	}
}

func TestLoadConfigFileUnknownDirective(t *testing.T) {
	path := writeConfig(t, "nickname bob\nnonsense 1\n")
	if _, err := LoadConfigFile(path); err == nil {
		t.Fatal("expected an error for an unknown directive")
	}
}
