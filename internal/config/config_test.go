package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/metcalfc/skim/internal/rsvp"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	s := rsvp.DefaultSettings()

	if cfg.Reading.WPM != s.WPM {
		t.Errorf("WPM %d, want %d", cfg.Reading.WPM, s.WPM)
	}
	if cfg.Reading.Algorithm != string(rsvp.AlgorithmBasic) {
		t.Errorf("algorithm %q, want basic", cfg.Reading.Algorithm)
	}
	if !cfg.Pauses.Comma || !cfg.Pauses.Period || !cfg.Pauses.Paragraph {
		t.Error("pauses should default on")
	}
	if !cfg.App.Resume {
		t.Error("resume should default on")
	}
	if cfg.App.LogLevel != "warn" {
		t.Errorf("log level %q, want warn", cfg.App.LogLevel)
	}
}

func TestSettingsMapping(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Reading.WPM = 450
	cfg.Reading.WordsPerSlide = 2
	cfg.Reading.Algorithm = "wordFrequency"
	cfg.Pauses.CommaDelay = 150
	cfg.Display.FontSize = 24

	s := cfg.Settings()
	if s.WPM != 450 {
		t.Errorf("WPM %d, want 450", s.WPM)
	}
	if s.WordsPerSlide != 2 {
		t.Errorf("words per slide %d, want 2", s.WordsPerSlide)
	}
	if s.Algorithm != rsvp.AlgorithmWordFrequency {
		t.Errorf("algorithm %q, want wordFrequency", s.Algorithm)
	}
	if s.PauseAfterCommaDelay != 150 {
		t.Errorf("comma delay %v, want 150", s.PauseAfterCommaDelay)
	}
	if s.FontSize != 24 {
		t.Errorf("font size %v, want 24", s.FontSize)
	}
}

func TestLoadDefaultsOnly(t *testing.T) {
	cfg, err := Load(LoadOptions{Defaults: DefaultConfig()})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Reading.WPM != 300 {
		t.Errorf("WPM %d, want default 300", cfg.Reading.WPM)
	}
	if cfg.Display.Font != "monospace" {
		t.Errorf("font %q, want monospace", cfg.Display.Font)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "skim.yaml")
	yaml := "reading:\n  wpm: 420\n  algorithm: wordLength\npauses:\n  comma: false\n"
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(LoadOptions{Defaults: DefaultConfig(), ConfigFile: path})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Reading.WPM != 420 {
		t.Errorf("WPM %d, want 420 from file", cfg.Reading.WPM)
	}
	if cfg.Reading.Algorithm != "wordLength" {
		t.Errorf("algorithm %q, want wordLength", cfg.Reading.Algorithm)
	}
	if cfg.Pauses.Comma {
		t.Error("comma pause should be off per config file")
	}
	// Untouched keys keep their defaults.
	if cfg.Pauses.CommaDelay != 200 {
		t.Errorf("comma delay %v, want default 200", cfg.Pauses.CommaDelay)
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := Load(LoadOptions{
		Defaults:   DefaultConfig(),
		ConfigFile: filepath.Join(t.TempDir(), "absent.yaml"),
	})
	if err == nil {
		t.Error("an explicitly named but missing config file is an error")
	}
}

func TestLoadEnvironmentOverride(t *testing.T) {
	t.Setenv("SKIM_READING_WPM", "510")

	cfg, err := Load(LoadOptions{Defaults: DefaultConfig()})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Reading.WPM != 510 {
		t.Errorf("WPM %d, want 510 from environment", cfg.Reading.WPM)
	}
}
