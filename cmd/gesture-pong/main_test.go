package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/gesture-pong/config"
)

// setFlag sets a command-line flag for one test and restores it afterwards
func setFlag(t *testing.T, name, value string) {
	t.Helper()
	f := flag.Lookup(name)
	old := f.Value.String()
	if err := flag.Set(name, value); err != nil {
		t.Fatalf("flag.Set(%s): %v", name, err)
	}
	t.Cleanup(func() { f.Value.Set(old) })
}

func TestFlagOverridesInvalidFileValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pong.toml")
	if err := os.WriteFile(path, []byte("[vision]\nsource = \"carrier-pigeon\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	setFlag(t, "source", config.SourcePointer)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Vision.Source != config.SourcePointer {
		t.Errorf("source = %q, want pointer", cfg.Vision.Source)
	}
}

func TestMuteFlagKeepsAudioAvailable(t *testing.T) {
	cfg := config.Default()
	setFlag(t, "mute", "true")
	applyFlags(cfg)

	if !cfg.Audio.Enabled || !cfg.Audio.Muted {
		t.Errorf("audio = %+v, want enabled and muted", cfg.Audio)
	}
}
