package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tracklab/evodrive/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("empty dir should not fail: %v", err)
	}
	if om != nil {
		t.Fatal("empty dir should return a nil manager")
	}

	// All methods are nil-receiver safe.
	if err := om.WriteGeneration(GenerationStats{}); err != nil {
		t.Errorf("nil WriteGeneration failed: %v", err)
	}
	if err := om.WriteConfig(config.Default()); err != nil {
		t.Errorf("nil WriteConfig failed: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil Close failed: %v", err)
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager failed: %v", err)
	}

	if err := om.WriteGeneration(GenerationStats{Generation: 1, BestFitness: 1500}); err != nil {
		t.Fatalf("WriteGeneration failed: %v", err)
	}
	if err := om.WriteGeneration(GenerationStats{Generation: 2, BestFitness: 2200}); err != nil {
		t.Fatalf("WriteGeneration failed: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "generations.csv"))
	if err != nil {
		t.Fatalf("reading generations.csv: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header plus 2 records", len(lines))
	}
	if !strings.Contains(lines[0], "generation") || !strings.Contains(lines[0], "best_fitness") {
		t.Errorf("header missing expected columns: %q", lines[0])
	}
	if strings.Contains(lines[1], "generation") {
		t.Error("header repeated in data rows")
	}
	if !strings.HasPrefix(lines[1], "1,") || !strings.HasPrefix(lines[2], "2,") {
		t.Errorf("rows out of order: %q / %q", lines[1], lines[2])
	}
}

func TestOutputManagerWriteConfig(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager failed: %v", err)
	}
	defer om.Close()

	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatalf("WriteConfig failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config.yaml not written: %v", err)
	}
}
