package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"go-eighties/config"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := config.LoadFile(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Tempo != 120 || cfg.Output.DrumChannel != 10 || cfg.Drums.Kit != "gm" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := config.DefaultConfig()
	cfg.Tempo = 96
	cfg.Arp.Pattern = 3
	cfg.Arp.TransposeSteps = 2
	cfg.Drums.Kit = "rd8"
	cfg.Output.Port = "IAC Driver Bus 1"

	if err := cfg.SaveFile(path); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	got, err := config.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if *got != *cfg {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := "tempo: 140\narp:\n  pattern: 2\n"
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Tempo != 140 || cfg.Arp.Pattern != 2 {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Arp.Root != 48 || cfg.Arp.TransposeDistance != 12 || cfg.Output.ArpChannel != 1 {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestValidateClamps(t *testing.T) {
	cfg := &config.Config{
		Tempo: 5000,
		Arp:   config.ArpConfig{Pattern: 9, TransposeSteps: 0, Root: 200, Gate: 3},
		Drums: config.DrumConfig{Pattern: -1, Kit: "808"},
		Output: config.OutputConfig{
			ArpChannel:  0,
			DrumChannel: 99,
		},
	}
	cfg.Validate()

	if cfg.Tempo != config.MaxTempo {
		t.Errorf("tempo %v", cfg.Tempo)
	}
	if cfg.Arp.Pattern != 2 || cfg.Arp.TransposeSteps != 1 || cfg.Arp.Root != 127 || cfg.Arp.Gate != 0.5 {
		t.Errorf("arp %+v", cfg.Arp)
	}
	if cfg.Drums.Pattern != 2 || cfg.Drums.Kit != "gm" {
		t.Errorf("drums %+v", cfg.Drums)
	}
	if cfg.Output.ArpChannel != 1 || cfg.Output.DrumChannel != 16 {
		t.Errorf("output %+v", cfg.Output)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("tempo: [fast\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := config.LoadFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}
